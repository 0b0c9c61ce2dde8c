package stream

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryLog is an in-process Log with the same group semantics as the Redis
// implementation: per-group delivery cursor, per-record pending state until
// acknowledged. Used by tests and as a reference for the contract.
type MemoryLog struct {
	mu      sync.Mutex
	records []Record
	seq     int64
	groups  map[string]*memoryGroup
	notify  chan struct{}
}

type memoryGroup struct {
	cursor  int
	pending map[string]string // record ID -> consumer holding it
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{
		groups: make(map[string]*memoryGroup),
		notify: make(chan struct{}),
	}
}

func (l *MemoryLog) Append(ctx context.Context, fields map[string]string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.Lock()
	l.seq++
	id := fmt.Sprintf("%d-0", l.seq)
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	l.records = append(l.records, Record{ID: id, Fields: copied})
	close(l.notify)
	l.notify = make(chan struct{})
	l.mu.Unlock()

	return id, nil
}

func (l *MemoryLog) EnsureGroup(ctx context.Context, group string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.groups[group]; !ok {
		l.groups[group] = &memoryGroup{pending: make(map[string]string)}
	}
	return nil
}

func (l *MemoryLog) Claim(ctx context.Context, group, consumer string, count int64, block time.Duration) ([]Record, error) {
	deadline := time.Now().Add(block)

	for {
		records, notify, err := l.tryClaim(group, consumer, count)
		if err != nil {
			return nil, err
		}
		if len(records) > 0 || block <= 0 {
			return records, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, nil
		}

		timer := time.NewTimer(remaining)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-notify:
			timer.Stop()
		case <-timer.C:
			return nil, nil
		}
	}
}

func (l *MemoryLog) tryClaim(group, consumer string, count int64) ([]Record, <-chan struct{}, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	g, ok := l.groups[group]
	if !ok {
		return nil, nil, fmt.Errorf("no such group %s", group)
	}

	var records []Record
	for g.cursor < len(l.records) && int64(len(records)) < count {
		rec := l.records[g.cursor]
		g.cursor++
		g.pending[rec.ID] = consumer
		records = append(records, rec)
	}
	return records, l.notify, nil
}

func (l *MemoryLog) Ack(ctx context.Context, group, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	g, ok := l.groups[group]
	if !ok {
		return fmt.Errorf("no such group %s", group)
	}
	delete(g.pending, id)
	return nil
}

func (l *MemoryLog) Len(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return int64(len(l.records)), nil
}

func (l *MemoryLog) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Pending reports how many claimed-but-unacknowledged records the group holds.
func (l *MemoryLog) Pending(group string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if g, ok := l.groups[group]; ok {
		return len(g.pending)
	}
	return 0
}

// Groups reports the number of known consumer groups.
func (l *MemoryLog) Groups() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.groups)
}
