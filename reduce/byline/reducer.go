package byline

import (
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xrs/reduce/axis"
	"github.com/cwbudde/algo-xrs/reduce/detector"
)

// Option adjusts a Reducer.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	workers int
}

// WithLogger makes the reducer emit one debug record per Accumulate call.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithWorkers limits the number of frames reduced concurrently. Values
// below 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// Reducer applies one calibration, axis and configuration to any number of
// frame batches. It is safe for concurrent use as long as concurrent calls
// write to different accumulators.
type Reducer struct {
	cfg    Config
	axis   axis.Axis
	pixels *detector.Pixels
	opts   options
	pool   *partialPool
}

// New validates the calibration, axis and configuration and prepares a
// Reducer. Every error wraps ErrConfiguration.
func New(cal detector.Calibration, ax axis.Axis, cfg Config, opts ...Option) (*Reducer, error) {
	if err := ax.Validate(); err != nil {
		return nil, configError(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, configError(err)
	}
	px, err := cal.Prepare()
	if err != nil {
		return nil, configError(err)
	}

	o := options{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return &Reducer{
		cfg:    cfg,
		axis:   ax,
		pixels: px,
		opts:   o,
		pool:   newPartialPool(ax.Bins),
	}, nil
}

// Axis returns the energy axis.
func (r *Reducer) Axis() axis.Axis { return r.axis }

// Config returns the processing configuration.
func (r *Reducer) Config() Config { return r.cfg }

// Workers returns the concurrency limit.
func (r *Reducer) Workers() int { return r.opts.workers }

// Accumulate reduces frames into acc. Each frame must have the detector's
// shape and acc must have one entry per axis bin; otherwise an error is
// returned and acc is left untouched. Zero frames is a no-op.
func (r *Reducer) Accumulate(acc *Accumulators, frames ...mat.Matrix) (Report, error) {
	if err := r.check(acc, frames); err != nil {
		return Report{}, err
	}

	var total Report
	if len(frames) == 0 {
		return total, nil
	}

	window := r.opts.workers
	if window > len(frames) {
		window = len(frames)
	}
	parts := make([]*partial, window)

	for start := 0; start < len(frames); start += window {
		end := min(start+window, len(frames))
		batch := frames[start:end]

		var g errgroup.Group
		for n, f := range batch {
			part := r.pool.get()
			parts[n] = part
			g.Go(func() error {
				r.reduceFrame(part, detector.Flatten(f))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return total, err
		}

		// Merge in frame order so the result is independent of scheduling.
		for n := range batch {
			acc.add(&parts[n].acc)
			total.Add(parts[n].report)
			r.pool.put(parts[n])
			parts[n] = nil
		}
	}

	if r.opts.logger != nil {
		r.opts.logger.Debug("byline: frames reduced",
			slog.String("mode", r.cfg.Mode().String()),
			slog.Int("bins", r.axis.Bins),
			slog.Any("report", total),
		)
	}
	return total, nil
}

func (r *Reducer) check(acc *Accumulators, frames []mat.Matrix) error {
	if acc == nil {
		return ErrNilAccumulators
	}
	if n := acc.Len(); n != r.axis.Bins {
		return fmt.Errorf("%w: got %d, want %d", ErrAccumulatorLength, n, r.axis.Bins)
	}
	for s, f := range frames {
		if err := detector.CheckShape(f, r.pixels.Rows, r.pixels.Cols); err != nil {
			return fmt.Errorf("%w: frame %d: %w", ErrFrameShape, s, err)
		}
	}
	return nil
}

// Accumulate is a one-shot reduction of frames into acc.
func Accumulate(acc *Accumulators, frames []mat.Matrix, cal detector.Calibration, ax axis.Axis, cfg Config, opts ...Option) (Report, error) {
	r, err := New(cal, ax, cfg, opts...)
	if err != nil {
		return Report{}, err
	}
	return r.Accumulate(acc, frames...)
}
