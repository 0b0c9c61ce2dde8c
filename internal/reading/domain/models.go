package domain

import (
	"strconv"

	"github.com/gridstream/gridstream/internal/stream"
)

// Reading is an inbound power reading as accepted by the producer endpoint.
// The timestamp is carried as an opaque ISO-8601 string and never parsed.
type Reading struct {
	SiteID       string  `json:"site_id"`
	DeviceID     string  `json:"device_id"`
	PowerReading float64 `json:"power_reading"`
	Timestamp    string  `json:"timestamp"`
}

// StoredReading is the materialized form of a log record, tagged with the
// record identifier it was reconstructed from.
type StoredReading struct {
	StreamID     string  `json:"stream_id"`
	SiteID       string  `json:"site_id"`
	DeviceID     string  `json:"device_id"`
	PowerReading float64 `json:"power_reading"`
	Timestamp    string  `json:"timestamp"`
}

// Fields serializes the reading for the durable log. The power value crosses
// the log boundary as its shortest decimal string; the consumer parses it
// back (see StoredReadingFromRecord).
func (r Reading) Fields() map[string]string {
	return map[string]string{
		"site_id":       r.SiteID,
		"device_id":     r.DeviceID,
		"power_reading": strconv.FormatFloat(r.PowerReading, 'g', -1, 64),
		"timestamp":     r.Timestamp,
	}
}

// StoredReadingFromRecord reconstructs a stored reading from a claimed log
// record. Absent fields come back zero-valued; an unparseable power value is
// a transform error and the record is left to the caller's poison-record
// policy.
func StoredReadingFromRecord(rec stream.Record) (StoredReading, error) {
	power := rec.Fields["power_reading"]
	if power == "" {
		power = "0"
	}

	value, err := strconv.ParseFloat(power, 64)
	if err != nil {
		return StoredReading{}, ErrRecordTransform
	}

	return StoredReading{
		StreamID:     rec.ID,
		SiteID:       rec.Fields["site_id"],
		DeviceID:     rec.Fields["device_id"],
		PowerReading: value,
		Timestamp:    rec.Fields["timestamp"],
	}, nil
}
