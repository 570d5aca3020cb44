// internal/core/pipeline.go
// Runs the cat map over the loaded image with cancellation between rounds
package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"arnold-cat-map/internal/catmap"
	"arnold-cat-map/internal/metrics"
)

const defaultProgressEvery = 50

// Result is the outcome of a completed run.
type Result struct {
	Grid       *catmap.Grid
	Iterations int // requested rounds
	Rounds     int // rounds actually computed after period reduction
	Metrics    map[string]float64
	Report     metrics.Report
	Duration   time.Duration
}

// ProcessorOptions configures a Processor.
type ProcessorOptions struct {
	// ReducePeriod folds the requested count modulo the grid period.
	ReducePeriod bool
	// ProgressEvery is the number of rounds between progress callbacks.
	ProgressEvery int
}

// Processor applies the cat map to the image held in ImageData.
type Processor struct {
	imageData   *ImageData
	metricsEval *metrics.Evaluator
	logger      logrus.FieldLogger
	opts        ProcessorOptions

	mu         sync.Mutex
	cancel     context.CancelFunc
	onProgress func(done, total int)
	wg         sync.WaitGroup
}

func NewProcessor(imageData *ImageData, logger logrus.FieldLogger, opts ProcessorOptions) *Processor {
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = defaultProgressEvery
	}
	return &Processor{
		imageData:   imageData,
		metricsEval: metrics.NewEvaluator(),
		logger:      logger,
		opts:        opts,
	}
}

// SetProgressCallback registers a callback invoked from the running goroutine.
// A run keeps the callback that was registered when it started.
func (p *Processor) SetProgressCallback(fn func(done, total int)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onProgress = fn
}

// Run transforms the original image synchronously. On success the result is
// stored in ImageData; on failure or cancellation the stored result is kept.
func (p *Processor) Run(ctx context.Context, iterations int) (*Result, error) {
	if iterations < 0 {
		return nil, fmt.Errorf("%w: iterations must be non-negative, got %d", catmap.ErrInvalidArgument, iterations)
	}
	original := p.imageData.GetOriginal()
	if original == nil {
		return nil, ErrNoImage
	}

	start := time.Now()
	rounds := iterations
	if p.opts.ReducePeriod {
		rounds = p.imageData.ReducedRounds(iterations)
	}

	log := p.logger.WithFields(logrus.Fields{
		"width":      original.Width,
		"height":     original.Height,
		"iterations": iterations,
		"rounds":     rounds,
	})
	log.Debug("PROCESSOR: Starting transform")

	p.mu.Lock()
	onProgress := p.onProgress
	p.mu.Unlock()

	// original is already a private clone; Step never mutates its input.
	working := original
	var err error
	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			log.WithField("completed", i).Info("PROCESSOR: Transform cancelled")
			return nil, err
		}
		if working, err = catmap.Step(working); err != nil {
			return nil, err
		}
		if onProgress != nil && (i+1)%p.opts.ProgressEvery == 0 && ctx.Err() == nil {
			onProgress(i+1, rounds)
		}
	}
	if err := ctx.Err(); err != nil {
		log.WithField("completed", rounds).Info("PROCESSOR: Transform cancelled")
		return nil, err
	}

	if err := p.imageData.SetResult(working, iterations); err != nil {
		return nil, fmt.Errorf("failed to store result: %w", err)
	}

	report := p.metricsEval.GenerateReport(original, working)
	res := &Result{
		Grid:       working,
		Iterations: iterations,
		Rounds:     rounds,
		Metrics:    report.Metrics,
		Report:     report,
		Duration:   time.Since(start),
	}
	log.WithField("duration", res.Duration).Info("PROCESSOR: Transform complete")
	return res, nil
}

// Start runs the transform on a new goroutine, cancelling any run still in
// flight. done is not called for a run that was cancelled, even when the
// cancellation arrives after its last round.
func (p *Processor) Start(iterations int, done func(*Result, error)) {
	ctx, cancel := context.WithCancel(context.Background())

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.cancel = cancel
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()
		res, err := p.Run(ctx, iterations)
		if ctx.Err() != nil {
			return
		}
		done(res, err)
	}()
}

// Wait blocks until every run launched by Start has returned.
func (p *Processor) Wait() {
	p.wg.Wait()
}

// Stop cancels the in-flight run, if any.
func (p *Processor) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
