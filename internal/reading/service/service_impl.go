package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gridstream/gridstream/internal/metrics"
	"github.com/gridstream/gridstream/internal/reading/domain"
	"github.com/gridstream/gridstream/internal/sitestore"
	"github.com/gridstream/gridstream/internal/stream"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log     *zap.Logger
	Stream  stream.Log
	Store   sitestore.Store
	Metrics *metrics.Metrics `optional:"true"`
}

type service struct {
	log     *zap.Logger
	stream  stream.Log
	store   sitestore.Store
	metrics *metrics.Metrics
}

func NewService(p ServiceParam) domain.Service {
	return &service{
		log:     p.Log.Named("reading.service"),
		stream:  p.Stream,
		store:   p.Store,
		metrics: p.Metrics,
	}
}

// Ingest appends the reading to the durable log once, synchronously. The
// returned identifier is the caller's confirmation of durable acceptance; the
// endpoint itself never retries.
func (s *service) Ingest(ctx context.Context, reading domain.Reading) (string, error) {
	if err := validate(reading); err != nil {
		return "", err
	}

	id, err := s.stream.Append(ctx, reading.Fields())
	if err != nil {
		s.log.Error("failed to append reading", zap.Error(err), zap.String("site_id", reading.SiteID))
		return "", err
	}

	s.metrics.IncReadingsIngested()
	s.log.Info("added reading to stream",
		zap.String("stream_id", id),
		zap.String("site_id", reading.SiteID),
	)
	return id, nil
}

func (s *service) ListBySite(ctx context.Context, siteID string) ([]domain.StoredReading, error) {
	values, err := s.store.List(ctx, siteID)
	if err != nil {
		s.log.Error("failed to list readings", zap.Error(err), zap.String("site_id", siteID))
		return nil, err
	}

	readings := make([]domain.StoredReading, 0, len(values))
	for _, value := range values {
		var stored domain.StoredReading
		if err := json.Unmarshal(value, &stored); err != nil {
			// Partial-result policy: one corrupt entry never fails the query.
			s.metrics.IncQueryDecodeFailures()
			s.log.Warn("skipping undecodable stored reading",
				zap.Error(err),
				zap.String("site_id", siteID),
			)
			continue
		}
		readings = append(readings, stored)
	}

	s.log.Info("retrieved readings",
		zap.String("site_id", siteID),
		zap.Int("count", len(readings)),
	)
	return readings, nil
}

func validate(reading domain.Reading) error {
	if strings.TrimSpace(reading.SiteID) == "" {
		return domain.ErrInvalidSiteID
	}
	if strings.TrimSpace(reading.DeviceID) == "" {
		return domain.ErrInvalidDeviceID
	}
	if reading.Timestamp == "" {
		return domain.ErrInvalidTimestamp
	}
	return nil
}
