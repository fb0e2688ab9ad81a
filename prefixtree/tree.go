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
	"sync/atomic"
	"time"

	"github.com/googlestaging/wordsearch/pkg/wordsearch"
	"golang.org/x/sync/errgroup"
)

// Tree is a prefix tree over a dictionary of words.  All methods are safe to
// call concurrently; see the package documentation for the consistency of
// queries that race with insertions.
type Tree struct {
	root *Node
	// Counted independently of the nodes' terminal counts.
	size atomic.Int64
}

var _ wordsearch.Dictionary = (*Tree)(nil)

// NewEmptyTree returns a tree holding no words.
func NewEmptyTree() *Tree {
	return &Tree{root: newNode(0)}
}

// NewTree builds a tree holding every word in words.  Words are inserted
// concurrently; the order of insertion is irrelevant to the result.  NewTree
// returns an error wrapping wordsearch.ErrInvalidArgument if words is nil.
func NewTree(words []string, opts ...Option) (*Tree, error) {
	if err := wordsearch.CheckWords(words); err != nil {
		return nil, err
	}
	o, err := buildOptions(opts...)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	t := NewEmptyTree()
	workers := o.workers(1)
	t.insertAll(words, workers)
	o.logger.Debug().
		Int("words", len(words)).
		Int("workers", workers).
		Dur("took", time.Since(start)).
		Msg("Built prefix tree")
	return t, nil
}

// insertAll splits words into one contiguous batch per worker and inserts
// the batches concurrently, blocking until all are done.
func (t *Tree) insertAll(words []string, workers int) {
	t.size.Store(int64(len(words)))
	var eg errgroup.Group
	for _, batch := range partition(words, workers) {
		eg.Go(func() error {
			for _, word := range batch {
				t.root.Insert(word)
			}
			return nil
		})
	}
	eg.Wait()
}

// AddWord inserts a single word.
func (t *Tree) AddWord(word string) {
	t.size.Add(1)
	t.root.Insert(word)
}

// FindMatchingWords returns every word in the tree starting with pattern, in
// unspecified order.
func (t *Tree) FindMatchingWords(pattern string) []string {
	return t.root.FindMatchingWords(pattern)
}

// Size returns the number of words inserted, counting duplicates.
func (t *Tree) Size() int {
	return int(t.size.Load())
}

// Root returns the tree's depth-0 node.
func (t *Tree) Root() *Node {
	return t.root
}

// Cursor returns a new Cursor positioned at the root of the tree.
func (t *Tree) Cursor() *Cursor {
	return NewCursor(t.root, "")
}
