package domain

import (
	"testing"

	"github.com/gridstream/gridstream/internal/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsStringifiesPower(t *testing.T) {
	r := Reading{
		SiteID:       "site-1",
		DeviceID:     "dev-A",
		PowerReading: 42.5,
		Timestamp:    "2024-01-01T00:00:00Z",
	}

	fields := r.Fields()
	assert.Equal(t, "site-1", fields["site_id"])
	assert.Equal(t, "dev-A", fields["device_id"])
	assert.Equal(t, "42.5", fields["power_reading"])
	assert.Equal(t, "2024-01-01T00:00:00Z", fields["timestamp"])
}

func TestStoredReadingRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		power float64
	}{
		{"fractional", 42.5},
		{"integral", 1500},
		{"negative", -0.25},
		{"tiny", 0.000001},
		{"large", 9.75e12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reading{
				SiteID:       "site-1",
				DeviceID:     "dev-A",
				PowerReading: tt.power,
				Timestamp:    "2024-01-01T00:00:00Z",
			}

			stored, err := StoredReadingFromRecord(stream.Record{
				ID:     "1-0",
				Fields: r.Fields(),
			})
			require.NoError(t, err)

			assert.Equal(t, "1-0", stored.StreamID)
			assert.Equal(t, r.SiteID, stored.SiteID)
			assert.Equal(t, r.DeviceID, stored.DeviceID)
			assert.Equal(t, tt.power, stored.PowerReading)
			assert.Equal(t, r.Timestamp, stored.Timestamp)
		})
	}
}

func TestStoredReadingFromRecordDefaults(t *testing.T) {
	// A record with missing fields still reconstructs; power defaults to zero.
	stored, err := StoredReadingFromRecord(stream.Record{
		ID:     "7-0",
		Fields: map[string]string{},
	})
	require.NoError(t, err)
	assert.Equal(t, "7-0", stored.StreamID)
	assert.Empty(t, stored.SiteID)
	assert.Zero(t, stored.PowerReading)
}

func TestStoredReadingFromRecordBadPower(t *testing.T) {
	_, err := StoredReadingFromRecord(stream.Record{
		ID: "8-0",
		Fields: map[string]string{
			"site_id":       "site-1",
			"power_reading": "not-a-number",
		},
	})
	assert.ErrorIs(t, err, ErrRecordTransform)
}
