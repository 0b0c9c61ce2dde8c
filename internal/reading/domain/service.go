package domain

import (
	"context"
	"errors"
)

// Service is the synchronous surface of the pipeline: producer-side ingest
// and query-side materialized reads.
type Service interface {
	// Ingest validates the reading and appends it to the durable log,
	// returning the assigned record identifier.
	Ingest(ctx context.Context, reading Reading) (string, error)
	// ListBySite returns every materialized reading for the site in append
	// order. Entries that fail to decode are skipped, not fatal.
	ListBySite(ctx context.Context, siteID string) ([]StoredReading, error)
}

var (
	ErrInvalidSiteID       = errors.New("invalid_site_id")
	ErrInvalidDeviceID     = errors.New("invalid_device_id")
	ErrInvalidPowerReading = errors.New("invalid_power_reading")
	ErrInvalidTimestamp    = errors.New("invalid_timestamp")

	ErrRecordTransform = errors.New("record_transform_failed")
)
