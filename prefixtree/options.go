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

package prefixtree

import (
	"fmt"
	"runtime"

	"github.com/googlestaging/wordsearch/pkg/wordsearch"
	"github.com/rs/zerolog"
)

// Option configures the construction of a Tree or a Forest.
type Option func(o *options) error

// WithConcurrency sets the number of goroutines inserting words into a single
// tree during construction.  Defaults to GOMAXPROCS for a Tree, and to
// GOMAXPROCS divided evenly among the shards for a Forest.
func WithConcurrency(concurrency int) Option {
	return func(o *options) error {
		if concurrency < 1 {
			return fmt.Errorf("concurrency must be at least 1, got %d: %w", concurrency, wordsearch.ErrInvalidArgument)
		}
		o.concurrency = concurrency
		return nil
	}
}

// WithShards sets the number of trees in a Forest.  Defaults to the number of
// CPUs.  Ignored by NewTree.
func WithShards(shards int) Option {
	return func(o *options) error {
		if shards < 1 {
			return fmt.Errorf("shard count must be at least 1, got %d: %w", shards, wordsearch.ErrInvalidArgument)
		}
		o.shards = shards
		return nil
	}
}

// WithLogger sets the logger used to report construction progress.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

type options struct {
	// Zero means "pick a default based on the available parallelism".
	concurrency int
	shards      int
	logger      zerolog.Logger
}

func buildOptions(fns ...Option) (*options, error) {
	ret := &options{
		shards: runtime.NumCPU(),
		logger: zerolog.Nop(),
	}
	for _, fn := range fns {
		if err := fn(ret); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// workers returns the insertion concurrency to use when the work is split
// across the given number of independent builds.
func (o *options) workers(builds int) int {
	if o.concurrency > 0 {
		return o.concurrency
	}
	if builds < 1 {
		builds = 1
	}
	return max(1, runtime.GOMAXPROCS(0)/builds)
}

// partition slices words into contiguous buckets of ceil(len(words)/k)
// words each, in input order.  The last bucket may be smaller, and fewer
// than k buckets are returned when the words do not fill them all.
func partition(words []string, k int) [][]string {
	if len(words) == 0 {
		return nil
	}
	size := (len(words) + k - 1) / k
	ret := make([][]string, 0, k)
	for start := 0; start < len(words); start += size {
		end := min(start+size, len(words))
		ret = append(ret, words[start:end:end])
	}
	return ret
}
