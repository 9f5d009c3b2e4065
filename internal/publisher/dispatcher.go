package publisher

import (
	"context"
	"time"

	"github.com/anonto42/postcraft/backend/internal/generation"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one submission.
type Result struct {
	Submission Submission
	ExternalID string
	Err        error
}

// Dispatcher fans submissions out to per-platform publishers.
type Dispatcher struct {
	publishers  map[generation.Platform]Publisher
	fallback    Publisher
	concurrency int
	logger      *zap.Logger
}

// NewDispatcher routes every platform to fallback unless overridden with Route.
func NewDispatcher(fallback Publisher, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		publishers:  make(map[generation.Platform]Publisher),
		fallback:    fallback,
		concurrency: len(generation.AllPlatforms),
		logger:      logger,
	}
}

// Route sends a platform's submissions to p.
func (d *Dispatcher) Route(platform generation.Platform, p Publisher) *Dispatcher {
	d.publishers[platform] = p
	return d
}

func (d *Dispatcher) publisherFor(platform generation.Platform) Publisher {
	if p, ok := d.publishers[platform]; ok {
		return p
	}
	return d.fallback
}

// PublishAll publishes every submission concurrently. One failure does not cancel
// the others; results come back in submission order.
func (d *Dispatcher) PublishAll(ctx context.Context, subs []Submission) []Result {
	results := make([]Result, len(subs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(d.concurrency)

	for i, sub := range subs {
		eg.Go(func() error {
			start := time.Now()
			id, err := d.publisherFor(sub.Platform).Publish(egCtx, sub)
			results[i] = Result{Submission: sub, ExternalID: id, Err: err}

			if err != nil {
				d.logger.Warn("publish failed",
					zap.String("platform", string(sub.Platform)),
					zap.String("post_id", sub.PostID),
					zap.Error(err))
				return nil
			}
			d.logger.Info("post published",
				zap.String("platform", string(sub.Platform)),
				zap.String("post_id", sub.PostID),
				zap.String("external_id", id),
				zap.Duration("latency", time.Since(start)))
			return nil
		})
	}

	_ = eg.Wait()
	return results
}
