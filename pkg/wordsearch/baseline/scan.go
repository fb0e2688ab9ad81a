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

// Package baseline provides straightforward prefix dictionaries used as
// references for the prefix tree: linear scans, a sorted B-tree, a radix tree
// and a full prefix hash.  Each one satisfies wordsearch.Dictionary.
package baseline

import (
	"runtime"
	"strings"

	"github.com/googlestaging/wordsearch/pkg/wordsearch"
	"golang.org/x/sync/errgroup"
)

// Naive answers queries by scanning the whole word list sequentially.
// Results are in input order.
type Naive struct {
	words []string
}

// NewNaive returns a Naive dictionary over words, which it retains.
func NewNaive(words []string) (*Naive, error) {
	if err := wordsearch.CheckWords(words); err != nil {
		return nil, err
	}
	return &Naive{words: words}, nil
}

func (n *Naive) FindMatchingWords(pattern string) []string {
	return appendMatching(nil, n.words, pattern)
}

func (n *Naive) Size() int {
	return len(n.words)
}

// ParallelScan answers queries by scanning contiguous chunks of the word list
// concurrently.  Results are in input order.
type ParallelScan struct {
	words  []string
	chunks int
}

// NewParallelScan returns a ParallelScan dictionary over words, which it
// retains.
func NewParallelScan(words []string) (*ParallelScan, error) {
	if err := wordsearch.CheckWords(words); err != nil {
		return nil, err
	}
	return &ParallelScan{words: words, chunks: runtime.GOMAXPROCS(0)}, nil
}

func (p *ParallelScan) FindMatchingWords(pattern string) []string {
	if len(p.words) == 0 {
		return nil
	}
	size := (len(p.words) + p.chunks - 1) / p.chunks
	results := make([][]string, (len(p.words)+size-1)/size)
	var eg errgroup.Group
	for i := range results {
		chunk := p.words[i*size : min((i+1)*size, len(p.words))]
		eg.Go(func() error {
			results[i] = appendMatching(nil, chunk, pattern)
			return nil
		})
	}
	eg.Wait()
	var ret []string
	for _, result := range results {
		ret = append(ret, result...)
	}
	return ret
}

func (p *ParallelScan) Size() int {
	return len(p.words)
}

func appendMatching(dst, words []string, pattern string) []string {
	for _, word := range words {
		if strings.HasPrefix(word, pattern) {
			dst = append(dst, word)
		}
	}
	return dst
}
