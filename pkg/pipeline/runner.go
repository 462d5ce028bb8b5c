package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/archispec/pkg/archimate"
	"github.com/matzehuels/archispec/pkg/cache"
	"github.com/matzehuels/archispec/pkg/errors"
	"github.com/matzehuels/archispec/pkg/io"
	"github.com/matzehuels/archispec/pkg/observability"
	"github.com/matzehuels/archispec/pkg/xmltree"
)

// Runner executes the pipeline with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  cache.WithHooks(c, "conversion"),
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedConversion is the cache entry for one conversion.
type cachedConversion struct {
	Model    json.RawMessage     `json:"model"`
	Warnings []archimate.Warning `json:"warnings,omitempty"`
}

// ConvertFile reads and converts the document at path. The file name and
// modification time become the conversion's FileName and FileDate unless
// already set.
func (r *Runner) ConvertFile(ctx context.Context, path string, opts Options) (*Result, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	if opts.Convert.FileName == "" {
		opts.Convert.FileName = path
	}
	if opts.Convert.FileDate == "" {
		opts.Convert.FileDate = info.ModTime().UTC().Format(time.RFC3339)
	}
	return r.Convert(ctx, data, opts)
}

// Convert parses and converts an in-memory document.
func (r *Runner) Convert(ctx context.Context, data []byte, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}
	if opts.Convert.Logger == nil {
		opts.Convert.Logger = logger
	}
	source := opts.Convert.FileName
	if source == "" {
		source = "<stdin>"
	}

	result := &Result{
		Source:       source,
		DocumentHash: cache.Hash(data),
		Artifacts:    make(map[string][]byte),
	}
	result.Stats.Bytes = len(data)

	key := r.Keyer.ConversionKey(result.DocumentHash, fingerprint(opts.Convert))
	if !opts.Refresh && r.fromCache(ctx, key, result, logger) {
		logger.Debug("conversion cache hit", "source", source)
		observability.Conversion().OnConvertComplete(ctx, source, observability.ConvertStats{
			Resources:  len(result.Model.Resources),
			Statements: len(result.Model.Statements),
			Warnings:   len(result.Warnings),
			Cached:     true,
		}, 0, nil)
	} else if err := r.convert(ctx, data, opts, key, result, logger); err != nil {
		return nil, err
	}

	result.Stats.Resources = len(result.Model.Resources)
	result.Stats.Statements = len(result.Model.Statements)

	renderStart := time.Now()
	artifacts, err := Render(ctx, result.Model, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("converted model",
		"source", source,
		"resources", result.Stats.Resources,
		"statements", result.Stats.Statements,
		"warnings", len(result.Warnings),
		"cached", result.Cached)
	return result, nil
}

func (r *Runner) convert(ctx context.Context, data []byte, opts Options, key string, result *Result, logger *log.Logger) error {
	hooks := observability.Conversion()
	source := result.Source

	hooks.OnParseStart(ctx, source)
	parseStart := time.Now()
	doc, err := xmltree.Parse(bytes.NewReader(data))
	result.Stats.ParseTime = time.Since(parseStart)
	hooks.OnParseComplete(ctx, source, len(data), result.Stats.ParseTime, err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", source)
	}

	hooks.OnConvertStart(ctx, source)
	convertStart := time.Now()
	res, err := archimate.Convert(doc, opts.Convert)
	result.Stats.ConvertTime = time.Since(convertStart)
	if err != nil {
		hooks.OnConvertComplete(ctx, source, observability.ConvertStats{}, result.Stats.ConvertTime, err)
		return err
	}
	for _, w := range res.Warnings {
		hooks.OnItemDropped(ctx, string(w.Kind), w.ID)
	}
	hooks.OnConvertComplete(ctx, source, observability.ConvertStats{
		Resources:  len(res.Model.Resources),
		Statements: len(res.Model.Statements),
		Warnings:   len(res.Warnings),
	}, result.Stats.ConvertTime, nil)

	result.Model = res.Model
	result.Warnings = res.Warnings

	if modelData, err := io.MarshalJSON(res.Model); err == nil {
		entry, err := json.Marshal(cachedConversion{Model: modelData, Warnings: res.Warnings})
		if err == nil {
			if err := r.Cache.Set(ctx, key, entry, opts.TTL); err != nil {
				logger.Warn("cache write failed", "err", err)
			}
		}
	}
	return nil
}

// fromCache fills result from a cached conversion and reports success.
// Unreadable entries are treated as misses.
func (r *Runner) fromCache(ctx context.Context, key string, result *Result, logger *log.Logger) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
		return false
	}
	if !hit {
		return false
	}
	var entry cachedConversion
	if err := json.Unmarshal(data, &entry); err != nil {
		return false
	}
	m, err := io.UnmarshalJSON(entry.Model)
	if err != nil {
		return false
	}
	result.Model = m
	result.Warnings = entry.Warnings
	result.Cached = true
	return true
}

// ConvertFiles converts paths concurrently with at most workers goroutines
// (all at once when workers <= 0). Results keep the order of paths. The
// first error cancels the remaining conversions.
func (r *Runner) ConvertFiles(ctx context.Context, paths []string, opts Options, workers int) ([]*Result, error) {
	results := make([]*Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.ConvertFile(ctx, path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// fingerprint identifies the options that influence conversion output. An
// unset FileDate stays unset, so repeated in-memory conversions of the same
// document share an entry dated by the first conversion.
func fingerprint(opts archimate.Options) string {
	data, _ := json.Marshal(opts)
	return cache.Hash(data)
}
