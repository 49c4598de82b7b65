package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"Hermes/internal/domain/models"
	drepo "Hermes/internal/domain/repository"
	domsvc "Hermes/internal/domain/service"
	"Hermes/internal/services/layers"
	applogger "Hermes/pkg/logger"
)

// LayerRunner evaluates layers concurrently and joins on all of them.
// A layer that exceeds its timeout contributes a neutral output instead of blocking the cycle.
type LayerRunner struct {
	layers  []domsvc.Layer
	cfg     layers.Config
	timeout time.Duration
	metrics drepo.Metrics
	l       *applogger.Logger
}

func NewLayerRunner(ls []domsvc.Layer, cfg layers.Config, timeout time.Duration, metrics drepo.Metrics, l *applogger.Logger) *LayerRunner {
	if l == nil {
		l = applogger.Nop()
	}
	return &LayerRunner{layers: ls, cfg: cfg, timeout: timeout, metrics: metricsOrNop(metrics), l: l}
}

type layerResult struct {
	name string
	out  models.LayerOutput
	err  error
}

// Run returns every layer's output keyed by name. Any layer error fails the whole run.
func (r *LayerRunner) Run(ctx context.Context) (map[string]models.LayerOutput, error) {
	ch := make(chan layerResult, len(r.layers))
	var wg sync.WaitGroup

	for _, layer := range r.layers {
		wg.Add(1)
		go func(layer domsvc.Layer) {
			defer wg.Done()
			ch <- r.runOne(ctx, layer)
		}(layer)
	}

	go func() { wg.Wait(); close(ch) }()

	outputs := make(map[string]models.LayerOutput, len(r.layers))
	var failed []layerResult
	for res := range ch {
		if res.err != nil {
			failed = append(failed, res)
			continue
		}
		outputs[res.name] = res.out
	}

	if len(failed) > 0 {
		sort.Slice(failed, func(i, j int) bool { return failed[i].name < failed[j].name })
		errs := make([]error, len(failed))
		for i, f := range failed {
			errs[i] = fmt.Errorf("layer %s: %w", f.name, f.err)
		}
		return nil, errors.Join(errs...)
	}
	return outputs, nil
}

func (r *LayerRunner) runOne(parent context.Context, layer domsvc.Layer) layerResult {
	name := layer.Name()
	start := time.Now()

	ctx := parent
	cancel := func() {}
	if r.timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, r.timeout)
	}
	defer cancel()

	done := make(chan layerResult, 1)
	go func() {
		out, err := layer.Run(ctx)
		done <- layerResult{name: name, out: out, err: err}
	}()

	var res layerResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res = layerResult{name: name, err: ctx.Err()}
	}

	timedOut := res.err != nil && parent.Err() == nil && errors.Is(ctx.Err(), context.DeadlineExceeded)
	r.metrics.RecordLayer(name, time.Since(start).Seconds(), timedOut)
	if timedOut {
		r.l.Warn("layer timed out, using neutral output",
			applogger.String("layer", name),
			applogger.Duration("timeout", r.timeout),
		)
		return layerResult{name: name, out: layers.Neutral(r.cfg, name, layers.ReasonTimeout)}
	}
	return res
}
