/*
	Copyright 2023 Google Inc.

	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at

		https://www.apache.org/licenses/LICENSE-2.0

	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package loader streams a word list into a dictionary.
//
// Loading is a two-stage pipeline.  A single producer scans the input one
// line at a time and packs the words into batches; a configurable number of
// insert workers take batches and add each word to the destination.  Batches
// retired by the workers are recycled by the producer rather than
// reallocated.  The destination must therefore accept concurrent insertions,
// as a prefixtree.Tree does.
//
// Balance the pipeline with BatchSize, Concurrency and BufferSize; the Stats
// returned by Load report where time was spent.
package loader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxLineLength bounds the length of a single word in the input.
const maxLineLength = 1 << 20

// Inserter receives the loaded words.  AddWord is called concurrently from
// every insert worker.
type Inserter interface {
	AddWord(word string)
}

// OptionFn defines a user-supplied option to Load or ReadWords.
type OptionFn func(o *options) error

// BatchSize defines the number of words handed to an insert worker at once.
// Defaults to 5000.
func BatchSize(batchSize uint) OptionFn {
	return func(o *options) error {
		if batchSize == 0 {
			return fmt.Errorf("batch size must be at least 1")
		}
		o.batchSize = batchSize
		return nil
	}
}

// Concurrency defines the number of insert workers.  Defaults to 1.
func Concurrency(concurrency uint) OptionFn {
	return func(o *options) error {
		if concurrency == 0 {
			return fmt.Errorf("concurrency must be at least 1")
		}
		o.concurrency = concurrency
		return nil
	}
}

// BufferSize defines how many filled batches may wait for a worker before
// the producer blocks.  Defaults to 1.
func BufferSize(bufferSize uint) OptionFn {
	return func(o *options) error {
		if bufferSize == 0 {
			return fmt.Errorf("buffer size must be at least 1")
		}
		o.bufferSize = bufferSize
		return nil
	}
}

// KeepEmpty keeps empty lines as empty words.  By default they are skipped.
func KeepEmpty() OptionFn {
	return func(o *options) error {
		o.keepEmpty = true
		return nil
	}
}

// WithLogger sets the logger used to report loading progress.
func WithLogger(logger zerolog.Logger) OptionFn {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

type options struct {
	batchSize   uint
	concurrency uint
	bufferSize  uint
	keepEmpty   bool
	logger      zerolog.Logger
}

func buildOptions(fns ...OptionFn) (*options, error) {
	ret := &options{
		batchSize:   5000,
		concurrency: 1,
		bufferSize:  1,
		logger:      zerolog.Nop(),
	}
	for _, fn := range fns {
		if err := fn(ret); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// scanWords calls fn with every word in r, one per line.  Trailing carriage
// returns are stripped.
func scanWords(r io.Reader, keepEmpty bool, fn func(word string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		word := strings.TrimSuffix(scanner.Text(), "\r")
		if word == "" && !keepEmpty {
			continue
		}
		if err := fn(word); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read words: %w", err)
	}
	return nil
}

// ReadWords reads a whole word list from r, one word per line.  The result
// is never nil.
func ReadWords(r io.Reader, optFns ...OptionFn) ([]string, error) {
	opts, err := buildOptions(optFns...)
	if err != nil {
		return nil, err
	}
	words := []string{}
	err = scanWords(r, opts.keepEmpty, func(word string) error {
		words = append(words, word)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

type batch struct {
	words []string
}

// Load reads words from r, one per line, and adds each to dst.  It blocks
// until every word has been added, r fails, or ctx is done; in the latter two
// cases the words already handed to workers may or may not have been added.
func Load(ctx context.Context, r io.Reader, dst Inserter, optFns ...OptionFn) (*Stats, error) {
	opts, err := buildOptions(optFns...)
	if err != nil {
		return nil, err
	}
	ret := &Stats{
		Workers: make([]*WorkerStats, opts.concurrency),
	}
	start := time.Now()
	eg, ctx := errgroup.WithContext(ctx)
	work := make(chan *batch, opts.bufferSize)
	// Sized so that a retiring worker never blocks on it.
	recycled := make(chan *batch, opts.bufferSize+opts.concurrency+1)

	eg.Go(func() error {
		defer close(work)
		var frameworkDuration time.Duration
		get := func() *batch {
			select {
			case b := <-recycled:
				b.words = b.words[:0]
				return b
			default:
				return &batch{words: make([]string, 0, opts.batchSize)}
			}
		}
		put := func(b *batch) error {
			putStart := time.Now()
			defer func() { frameworkDuration += time.Since(putStart) }()
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case work <- b:
				ret.Batches++
				ret.Words += uint(len(b.words))
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		b := get()
		err := scanWords(r, opts.keepEmpty, func(word string) error {
			b.words = append(b.words, word)
			if uint(len(b.words)) < opts.batchSize {
				return nil
			}
			if err := put(b); err != nil {
				return err
			}
			b = get()
			return nil
		})
		if err == nil && len(b.words) > 0 {
			err = put(b)
		}
		ret.ProducerDuration = time.Since(start) - frameworkDuration
		return err
	})

	for i := range ret.Workers {
		ws := &WorkerStats{Instance: uint(i)}
		ret.Workers[i] = ws
		eg.Go(func() error {
			workerStart := time.Now()
			for b := range work {
				// After a failure, drain the remaining input so the producer
				// can finish.
				if ctx.Err() != nil {
					continue
				}
				workStart := time.Now()
				for _, word := range b.words {
					dst.AddWord(word)
				}
				ws.WorkDuration += time.Since(workStart)
				ws.Batches++
				ws.Words += uint(len(b.words))
				recycled <- b
			}
			ws.StageDuration = time.Since(workerStart)
			return nil
		})
	}

	err = eg.Wait()
	ret.WallDuration = time.Since(start)
	if err != nil {
		opts.logger.Error().Err(err).Uint("words", ret.Words).Msg("Loading words failed")
		return ret, err
	}
	opts.logger.Debug().
		Uint("words", ret.Words).
		Uint("batches", ret.Batches).
		Dur("took", ret.WallDuration).
		Msg("Loaded words")
	return ret, nil
}
