// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// Dictionary maps translation keys to translated strings for one language.
type Dictionary map[string]string

// Source retrieves the raw dictionary bytes for a language code.
//
// Fetches must be idempotent GETs (or reads): the loader's cache check is
// only a best-effort single-flight guard, and two goroutines racing on a
// cold cache may each issue a fetch for the same code.
type Source interface {
	Fetch(ctx context.Context, code Code) ([]byte, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, code Code) ([]byte, error)

func (f SourceFunc) Fetch(ctx context.Context, code Code) ([]byte, error) {
	return f(ctx, code)
}

// FSSource reads dictionaries named "<code>.json" from a file system,
// typically the embedded languages directory.
func FSSource(fsys fs.FS) Source {
	return SourceFunc(func(_ context.Context, code Code) ([]byte, error) {
		return fs.ReadFile(fsys, string(code)+".json")
	})
}

var errDictionaryInvalid = errors.New("dictionary is not valid JSON")

// loader lazily fetches dictionaries and caches them for the process
// lifetime. Entries are only ever added, never invalidated.
type loader struct {
	mu       sync.Mutex
	cache    map[Code]Dictionary
	source   Source
	fallback Code
	logger   zerolog.Logger
}

func newLoader(source Source, fallback Code, logger zerolog.Logger) *loader {
	return &loader{
		cache:    make(map[Code]Dictionary),
		source:   source,
		fallback: fallback,
		logger:   logger,
	}
}

// Load returns the dictionary for code.
//
// The happy path is one fetch per code per process; later calls return the
// cached value without touching the source. Failures never surface to the
// caller: a failed fetch is logged and retried once with the fallback code,
// and if that also fails an empty dictionary is returned so lookups degrade
// to showing raw keys. Failed codes are not cached, so a later request may
// try again.
func (l *loader) Load(ctx context.Context, code Code) Dictionary {
	if d, ok := l.cached(code); ok {
		return d
	}

	d, err := l.fetch(ctx, code)
	if err == nil {
		l.store(code, d)

		return d
	}

	l.logger.Warn().Err(err).Str("code", string(code)).Msg("Failed to load dictionary")

	if code == l.fallback {
		return Dictionary{}
	}

	// One bounded retry with the fallback code; no recursion, so a
	// misconfigured fallback can't loop.
	if d, ok := l.cached(l.fallback); ok {
		return d
	}

	d, err = l.fetch(ctx, l.fallback)
	if err != nil {
		l.logger.Warn().Err(err).Str("code", string(l.fallback)).Msg("Failed to load fallback dictionary")

		return Dictionary{}
	}

	l.store(l.fallback, d)

	return d
}

// Preload warms the cache for all given codes concurrently.
func (l *loader) Preload(ctx context.Context, codes []Code) {
	const maxConcurrentFetches = 4

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, code := range codes {
		g.Go(func() error {
			l.Load(ctx, code)

			return nil
		})
	}

	// Load never returns an error; Wait only joins the goroutines.
	_ = g.Wait()
}

func (l *loader) cached(code Code) (Dictionary, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	d, ok := l.cache[code]

	return d, ok
}

func (l *loader) store(code Code, d Dictionary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// First writer wins so every caller sees the same dictionary value.
	if _, ok := l.cache[code]; !ok {
		l.cache[code] = d
	}
}

func (l *loader) fetch(ctx context.Context, code Code) (Dictionary, error) {
	raw, err := l.source.Fetch(ctx, code)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(raw) {
		return nil, errDictionaryInvalid
	}

	var d Dictionary
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary for %q: %w", code, err)
	}

	if d == nil {
		d = Dictionary{}
	}

	return d, nil
}

// Load returns the dictionary for code, or for the fallback language when
// code is unsupported.
func (m *Manager) Load(ctx context.Context, code Code) Dictionary {
	if !m.IsSupported(code) {
		code = m.fallback
	}

	return m.loader.Load(ctx, code)
}

// Resolve loads the dictionary pair used to translate a page in code:
// the language's own dictionary plus the fallback dictionary.
func (m *Manager) Resolve(ctx context.Context, code Code) Resolved {
	current := m.Load(ctx, code)

	fallback := current
	if code != m.fallback {
		fallback = m.Load(ctx, m.fallback)
	}

	return Resolved{Current: current, Fallback: fallback}
}

// Preload warms the dictionary cache for every supported language.
func (m *Manager) Preload(ctx context.Context) {
	m.loader.Preload(ctx, m.supported)
}
