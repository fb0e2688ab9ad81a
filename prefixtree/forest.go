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
	"time"

	"github.com/googlestaging/wordsearch/pkg/wordsearch"
	"golang.org/x/sync/errgroup"
)

// Forest is a prefix dictionary sharded across several independent Trees.
// The word list is split into contiguous buckets in input order, one per
// shard; shard boundaries never depend on word content.  Forests are built
// once and are safe for concurrent queries.
type Forest struct {
	shards []*Tree
}

var _ wordsearch.Dictionary = (*Forest)(nil)

// NewForest builds a forest holding every word in words.  The shard trees
// are built in parallel, each with its own concurrent insertion.  NewForest
// returns an error wrapping wordsearch.ErrInvalidArgument if words is nil.
func NewForest(words []string, opts ...Option) (*Forest, error) {
	if err := wordsearch.CheckWords(words); err != nil {
		return nil, err
	}
	o, err := buildOptions(opts...)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	buckets := partition(words, o.shards)
	f := &Forest{shards: make([]*Tree, len(buckets))}
	workers := o.workers(len(buckets))
	var eg errgroup.Group
	for i, bucket := range buckets {
		eg.Go(func() error {
			shard, err := NewTree(bucket,
				WithConcurrency(workers),
				WithLogger(o.logger.With().Int("shard", i).Logger()),
			)
			f.shards[i] = shard
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	o.logger.Debug().
		Int("words", len(words)).
		Int("shards", len(f.shards)).
		Dur("took", time.Since(start)).
		Msg("Built prefix forest")
	return f, nil
}

// FindMatchingWords queries every shard in parallel and concatenates the
// results in shard order: all of shard 0's matches come first, then shard
// 1's, and so on.  Within a shard the order is unspecified.
func (f *Forest) FindMatchingWords(pattern string) []string {
	results := make([][]string, len(f.shards))
	var eg errgroup.Group
	for i, shard := range f.shards {
		eg.Go(func() error {
			results[i] = shard.FindMatchingWords(pattern)
			return nil
		})
	}
	eg.Wait()
	total := 0
	for _, result := range results {
		total += len(result)
	}
	ret := make([]string, 0, total)
	for _, result := range results {
		ret = append(ret, result...)
	}
	return ret
}

// Size returns the number of words across all shards.
func (f *Forest) Size() int {
	ret := 0
	for _, shard := range f.shards {
		ret += shard.Size()
	}
	return ret
}

// Shards returns the forest's trees in shard order.  An empty word list
// yields no shards, and a short one may yield fewer than requested.
func (f *Forest) Shards() []*Tree {
	return append([]*Tree(nil), f.shards...)
}
