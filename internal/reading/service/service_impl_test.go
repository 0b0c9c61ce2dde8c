package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gridstream/gridstream/internal/reading/domain"
	"github.com/gridstream/gridstream/internal/sitestore"
	"github.com/gridstream/gridstream/internal/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(log *stream.MemoryLog, store *sitestore.MemoryStore) domain.Service {
	return NewService(ServiceParam{
		Log:    zap.NewNop(),
		Stream: log,
		Store:  store,
	})
}

func TestIngestValidation(t *testing.T) {
	tests := []struct {
		name        string
		reading     domain.Reading
		expectedErr error
	}{
		{
			name: "empty site id",
			reading: domain.Reading{
				SiteID:       "",
				DeviceID:     "dev-A",
				PowerReading: 10,
				Timestamp:    "2024-01-01T00:00:00Z",
			},
			expectedErr: domain.ErrInvalidSiteID,
		},
		{
			name: "empty device id",
			reading: domain.Reading{
				SiteID:       "site-1",
				DeviceID:     " ",
				PowerReading: 10,
				Timestamp:    "2024-01-01T00:00:00Z",
			},
			expectedErr: domain.ErrInvalidDeviceID,
		},
		{
			name: "empty timestamp",
			reading: domain.Reading{
				SiteID:       "site-1",
				DeviceID:     "dev-A",
				PowerReading: 10,
			},
			expectedErr: domain.ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := stream.NewMemoryLog()
			svc := newTestService(log, sitestore.NewMemoryStore())

			_, err := svc.Ingest(context.Background(), tt.reading)
			assert.ErrorIs(t, err, tt.expectedErr)

			// Rejected readings are never enqueued.
			n, lenErr := log.Len(context.Background())
			require.NoError(t, lenErr)
			assert.Zero(t, n)
		})
	}
}

func TestIngestAppendsOnce(t *testing.T) {
	log := stream.NewMemoryLog()
	svc := newTestService(log, sitestore.NewMemoryStore())

	id, err := svc.Ingest(context.Background(), domain.Reading{
		SiteID:       "site-1",
		DeviceID:     "dev-A",
		PowerReading: 42.5,
		Timestamp:    "2024-01-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	n, err := log.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestIngestSurfacesLogFailure(t *testing.T) {
	svc := NewService(ServiceParam{
		Log:    zap.NewNop(),
		Stream: failingLog{err: errors.New("connection refused")},
		Store:  sitestore.NewMemoryStore(),
	})

	_, err := svc.Ingest(context.Background(), domain.Reading{
		SiteID:       "site-1",
		DeviceID:     "dev-A",
		PowerReading: 1,
		Timestamp:    "2024-01-01T00:00:00Z",
	})
	assert.Error(t, err)
}

func TestListBySiteSkipsCorruptEntries(t *testing.T) {
	store := sitestore.NewMemoryStore()
	svc := newTestService(stream.NewMemoryLog(), store)
	ctx := context.Background()

	good, _ := json.Marshal(domain.StoredReading{
		StreamID:     "1-0",
		SiteID:       "site-1",
		DeviceID:     "dev-A",
		PowerReading: 42.5,
		Timestamp:    "2024-01-01T00:00:00Z",
	})
	require.NoError(t, store.Append(ctx, "site-1", good))
	require.NoError(t, store.Append(ctx, "site-1", []byte("{not json")))
	require.NoError(t, store.Append(ctx, "site-1", good))

	readings, err := svc.ListBySite(ctx, "site-1")
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, 42.5, readings[0].PowerReading)
}

func TestListBySiteEmpty(t *testing.T) {
	svc := newTestService(stream.NewMemoryLog(), sitestore.NewMemoryStore())

	readings, err := svc.ListBySite(context.Background(), "site-without-data")
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestListBySiteSurfacesStoreFailure(t *testing.T) {
	store := sitestore.NewMemoryStore()
	store.FailList = errors.New("connection refused")
	svc := newTestService(stream.NewMemoryLog(), store)

	_, err := svc.ListBySite(context.Background(), "site-1")
	assert.Error(t, err)
}

// failingLog fails every log operation with a transport-style error.
type failingLog struct {
	err error
}

func (f failingLog) Append(context.Context, map[string]string) (string, error) { return "", f.err }
func (f failingLog) EnsureGroup(context.Context, string) error                 { return f.err }
func (f failingLog) Claim(context.Context, string, string, int64, time.Duration) ([]stream.Record, error) {
	return nil, f.err
}
func (f failingLog) Ack(context.Context, string, string) error { return f.err }
func (f failingLog) Len(context.Context) (int64, error)        { return 0, f.err }
func (f failingLog) Ping(context.Context) error                { return f.err }
