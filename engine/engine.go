package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/jsphweid/midicoach/analysis"
	"github.com/jsphweid/midicoach/logger"
	"github.com/jsphweid/midicoach/midi"
	"github.com/jsphweid/midicoach/model"
	"github.com/jsphweid/midicoach/recommend"
	"github.com/jsphweid/midicoach/synth"
	"golang.org/x/sync/errgroup"
)

// Cache stores analyses by content hash. Failures never fail an analysis.
type Cache interface {
	Get(ctx context.Context, hash string) (*model.AnalysisResult, bool, error)
	Put(ctx context.Context, hash string, a *model.AnalysisResult) error
}

type Engine struct {
	cache Cache
}

type Option func(*Engine)

func WithCache(c Cache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ContentHash is the cache key of a MIDI byte stream.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Analyze decodes data and extracts its features. Parse errors and
// analysis.ErrEmptyOrUnreadable are returned as is.
func (e *Engine) Analyze(ctx context.Context, data []byte) (*model.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var hash string
	if e.cache != nil {
		hash = ContentHash(data)
		cached, ok, err := e.cache.Get(ctx, hash)
		switch {
		case err != nil:
			logger.Warn("Analysis cache lookup failed", logger.Fields{"hash": hash, "error": err.Error()})
		case ok:
			logger.Debug("Analysis cache hit", logger.Fields{"hash": hash})
			return cached, nil
		default:
			logger.Debug("Analysis cache miss", logger.Fields{"hash": hash})
		}
	}

	score, err := midi.Decode(data)
	if err != nil {
		return nil, err
	}
	res, err := analysis.Extract(score)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if err := e.cache.Put(ctx, hash, res); err != nil {
			logger.Warn("Analysis cache store failed", logger.Fields{"hash": hash, "error": err.Error()})
		}
	}
	return res, nil
}

func (e *Engine) Recommend(a *model.AnalysisResult, prefs model.UserPreferences) model.RecommendationSet {
	return recommend.Recommend(a, prefs)
}

// Synthesize decodes data, adds the requested accompaniment and encodes
// the result as a format 1 file with the input's time base.
func (e *Engine) Synthesize(ctx context.Context, data []byte, a *model.AnalysisResult, prefs model.UserPreferences) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	score, err := midi.Decode(data)
	if err != nil {
		return nil, err
	}
	out, err := synth.Synthesize(score, a, prefs)
	if err != nil {
		return nil, err
	}
	return midi.Encode(out)
}

type Result struct {
	Analysis        *model.AnalysisResult
	Recommendations model.RecommendationSet
	Midi            []byte
}

// Process analyzes data once, then recommends and synthesizes concurrently
// from the same analysis.
func (e *Engine) Process(ctx context.Context, data []byte, prefs model.UserPreferences) (*Result, error) {
	a, err := e.Analyze(ctx, data)
	if err != nil {
		return nil, err
	}

	res := &Result{Analysis: a}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Recommendations = e.Recommend(a, prefs)
		return nil
	})
	g.Go(func() error {
		out, err := e.Synthesize(gctx, data, a, prefs)
		res.Midi = out
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
