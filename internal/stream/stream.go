// Package stream defines the durable log contract: an append-only ordered
// record log with consumer-group delivery (claim, acknowledge, redeliver).
package stream

import (
	"context"
	"time"
)

// Record is one entry of the durable log. The ID is assigned by the log at
// append time and is strictly increasing across appends. Fields carry the
// payload as strings; numeric semantics are reconstructed by the consumer.
type Record struct {
	ID     string
	Fields map[string]string
}

// Log is the durable log used by the producer and the consumer loop.
//
// Claim blocks up to the given duration waiting for records that have not yet
// been delivered to the group, then returns at most count of them in log
// order. A timeout with nothing to deliver returns an empty slice and no
// error. Records stay pending for the claiming consumer until acknowledged.
type Log interface {
	Append(ctx context.Context, fields map[string]string) (string, error)
	EnsureGroup(ctx context.Context, group string) error
	Claim(ctx context.Context, group, consumer string, count int64, block time.Duration) ([]Record, error)
	Ack(ctx context.Context, group, id string) error
	Len(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}
