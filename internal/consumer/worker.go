package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gridstream/gridstream/internal/metrics"
	"github.com/gridstream/gridstream/internal/reading/domain"
	"github.com/gridstream/gridstream/internal/sitestore"
	"github.com/gridstream/gridstream/internal/stream"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Stream  stream.Log
	Store   sitestore.Store
	Metrics *metrics.Metrics `optional:"true"`
	Config  Config           `optional:"true"`
	Name    NameFunc         `optional:"true"`
}

// Worker is one consumer identity over the durable log. It claims batches
// under the configured group, materializes each record into the site store,
// and acknowledges every claimed record whether or not its transform
// succeeded (poison records must not block the group's cursor).
type Worker struct {
	log     *zap.Logger
	stream  stream.Log
	store   sitestore.Store
	metrics *metrics.Metrics
	cfg     Config
	name    string
}

func NewWorker(p Params) *Worker {
	nameFn := p.Name
	if nameFn == nil {
		nameFn = DefaultName
	}
	name := nameFn()

	return &Worker{
		log:     p.Log.Named("consumer").With(zap.String("consumer", name)),
		stream:  p.Stream,
		store:   p.Store,
		metrics: p.Metrics,
		cfg:     p.Config.withDefaults(),
		name:    name,
	}
}

// Name returns this worker's consumer identity within the group.
func (w *Worker) Name() string {
	return w.name
}

// RunForever drives the loop until ctx is cancelled. Faults in the
// claim/process cycle itself (log unreachable, ack failure) pause the loop
// for the configured backoff and never terminate it.
func (w *Worker) RunForever(ctx context.Context) {
	w.log.Info("starting message processor", zap.String("group", w.cfg.Group))

	for {
		if ctx.Err() != nil {
			return
		}

		if err := w.ensureGroup(ctx); err != nil {
			if !w.backoff(ctx, err) {
				return
			}
			continue
		}

		for {
			if err := w.RunOnce(ctx); err != nil {
				if !w.backoff(ctx, err) {
					return
				}
				// Re-ensure the group before resuming claims; the fault may
				// have been the group itself going away.
				break
			}
			if ctx.Err() != nil {
				return
			}
		}
	}
}

// RunOnce performs a single claim/process/ack cycle. A cycle that claims
// nothing before the block timeout is a successful no-op.
func (w *Worker) RunOnce(ctx context.Context) error {
	records, err := w.stream.Claim(ctx, w.cfg.Group, w.name, int64(w.cfg.BatchSize), w.cfg.Block)
	if err != nil {
		return err
	}

	for _, rec := range records {
		w.processRecord(ctx, rec)

		if err := w.stream.Ack(ctx, w.cfg.Group, rec.ID); err != nil {
			return err
		}
		w.metrics.IncRecordsAcked()
		w.log.Debug("acknowledged message", zap.String("stream_id", rec.ID))
	}
	return nil
}

// processRecord materializes one claimed record. Failures here are
// per-record: they are logged and counted, and the caller still acks.
func (w *Worker) processRecord(ctx context.Context, rec stream.Record) {
	w.metrics.IncRecordsProcessed()

	stored, err := domain.StoredReadingFromRecord(rec)
	if err != nil {
		w.metrics.IncTransformFailures()
		w.log.Error("error processing message",
			zap.Error(err),
			zap.String("stream_id", rec.ID),
		)
		return
	}

	if stored.SiteID == "" {
		// No entity key to materialize under; the record is still acked.
		return
	}

	value, err := json.Marshal(stored)
	if err != nil {
		w.metrics.IncTransformFailures()
		w.log.Error("error encoding stored reading",
			zap.Error(err),
			zap.String("stream_id", rec.ID),
		)
		return
	}

	if err := w.store.Append(ctx, stored.SiteID, value); err != nil {
		w.metrics.IncTransformFailures()
		w.log.Error("error storing reading",
			zap.Error(err),
			zap.String("stream_id", rec.ID),
			zap.String("site_id", stored.SiteID),
		)
		return
	}

	w.log.Info("stored reading",
		zap.String("stream_id", rec.ID),
		zap.String("site_id", stored.SiteID),
	)
}

func (w *Worker) ensureGroup(ctx context.Context) error {
	return w.stream.EnsureGroup(ctx, w.cfg.Group)
}

// backoff pauses after a cycle fault. It returns false when ctx ended, which
// is the loop's only exit.
func (w *Worker) backoff(ctx context.Context, cause error) bool {
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		return false
	}

	w.log.Error("error in message processor", zap.Error(cause))

	timer := time.NewTimer(w.cfg.Backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
