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

// Binary demo is a demonstration of prefix-based word search.
//
// The input dictionary file should be a plain text file with one word per line.
// E.g., via `curl -o words.txt https://raw.githubusercontent.com/dwyl/english-words/a77cb15f4f5beb59c15b945f2415328a6b33c3b0/words.txt`.
//
// Patterns are taken from the command line, or read from stdin one per line
// if none are given:
//
//	demo --dict_file=words.txt --mode=forest --shards=8 aard zyg
//	demo --dict_file=words.txt --incremental < patterns.txt
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/googlestaging/wordsearch/internal/config"
	"github.com/googlestaging/wordsearch/pkg/loader"
	"github.com/googlestaging/wordsearch/pkg/wordsearch"
	"github.com/googlestaging/wordsearch/pkg/wordsearch/baseline"
	"github.com/googlestaging/wordsearch/prefixtree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	config.RegisterFlags(pflag.CommandLine)
	pflag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	cfg, err := config.Load(pflag.CommandLine)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger = logger.Level(cfg.Level())

	start := time.Now()
	dict, tree, err := build(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("dict_file", cfg.DictFile).Msg("Failed to build dictionary")
	}
	logger.Info().Msgf("Dictionary construction took %s.  Added %d words.", time.Since(start), dict.Size())

	metrics := wordsearch.NewMetrics(prometheus.DefaultRegisterer)
	dict = metrics.Instrument(cfg.Mode, dict)
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Str("addr", cfg.MetricsAddr).Msg("Metrics server failed")
			}
		}()
	}

	s := &searcher{
		dict:       dict,
		tree:       tree,
		maxResults: cfg.MaxResults,
		out:        bufio.NewWriter(os.Stdout),
	}
	defer s.out.Flush()
	search := s.search
	if cfg.Incremental {
		search = s.searchIncrementally
	}
	if pflag.NArg() > 0 {
		for _, pattern := range pflag.Args() {
			search(pattern)
		}
		return
	}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		search(strings.TrimSuffix(scanner.Text(), "\r"))
		s.out.Flush()
	}
	if err := scanner.Err(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to read patterns")
	}
}

// build constructs the configured dictionary.  In tree mode, words are
// streamed into the tree as they are read, and the tree is also returned.
func build(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (wordsearch.Dictionary, *prefixtree.Tree, error) {
	f, err := os.Open(cfg.DictFile)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	if cfg.Mode == config.ModeTree {
		concurrency := cfg.Concurrency
		if concurrency == 0 {
			concurrency = runtime.GOMAXPROCS(0)
		}
		tree := prefixtree.NewEmptyTree()
		stats, err := loader.Load(ctx, f, tree,
			loader.BatchSize(uint(cfg.BatchSize)),
			loader.Concurrency(uint(concurrency)),
			loader.BufferSize(uint(concurrency)),
			loader.WithLogger(logger),
		)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug().Msg(stats.String())
		return tree, tree, nil
	}

	words, err := loader.ReadWords(f)
	if err != nil {
		return nil, nil, err
	}
	dict, err := construct(cfg, logger, words)
	return dict, nil, err
}

func construct(cfg *config.Config, logger zerolog.Logger, words []string) (wordsearch.Dictionary, error) {
	switch cfg.Mode {
	case config.ModeForest:
		opts := []prefixtree.Option{prefixtree.WithLogger(logger)}
		if cfg.Shards > 0 {
			opts = append(opts, prefixtree.WithShards(cfg.Shards))
		}
		if cfg.Concurrency > 0 {
			opts = append(opts, prefixtree.WithConcurrency(cfg.Concurrency))
		}
		return prefixtree.NewForest(words, opts...)
	case config.ModeNaive:
		return baseline.NewNaive(words)
	case config.ModeParallel:
		return baseline.NewParallelScan(words)
	case config.ModeSorted:
		return baseline.NewSorted(words)
	case config.ModeRadix:
		return baseline.NewRadix(words)
	case config.ModeHashing:
		return baseline.NewPrefixHash(words)
	default:
		return nil, fmt.Errorf("unsupported mode '%s'", cfg.Mode)
	}
}

type searcher struct {
	dict wordsearch.Dictionary
	// Non-nil in tree mode, where incremental searches use a Cursor.
	tree       *prefixtree.Tree
	maxResults int
	out        *bufio.Writer
}

func (s *searcher) search(pattern string) {
	s.print(pattern, s.dict.FindMatchingWords(pattern))
}

// searchIncrementally reports the matches after each character of pattern.
func (s *searcher) searchIncrementally(pattern string) {
	if s.tree != nil {
		// A probe cursor keeps user input from growing the tree.
		cursor := prefixtree.NewProbeCursor(s.tree.Root(), "")
		for _, char := range pattern {
			matches := cursor.Advance(char)
			s.print(cursor.Prefix(), matches)
		}
		return
	}
	for i := range pattern {
		if i > 0 {
			s.search(pattern[:i])
		}
	}
	s.search(pattern)
}

func (s *searcher) print(pattern string, matches []string) {
	sort.Strings(matches)
	shown := matches
	if s.maxResults > 0 && len(shown) > s.maxResults {
		shown = shown[:s.maxResults]
	}
	fmt.Fprintf(s.out, "%q: %d matches", pattern, len(matches))
	if len(shown) > 0 {
		fmt.Fprintf(s.out, ": %s", strings.Join(shown, " "))
		if len(shown) < len(matches) {
			fmt.Fprint(s.out, " ...")
		}
	}
	fmt.Fprintln(s.out)
}
