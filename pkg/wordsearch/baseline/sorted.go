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

package baseline

import (
	"strings"

	"github.com/armon/go-radix"
	"github.com/google/btree"
	"github.com/googlestaging/wordsearch/pkg/wordsearch"
)

type sortedEntry struct {
	word  string
	count int
}

func lessEntry(a, b sortedEntry) bool {
	return a.word < b.word
}

// Sorted keeps distinct words in a B-tree with their multiplicity, and
// answers queries with a range scan.  Construction is slow; queries are
// fast.  Results are sorted.
type Sorted struct {
	tree *btree.BTreeG[sortedEntry]
	size int
}

// NewSorted returns a Sorted dictionary holding words.
func NewSorted(words []string) (*Sorted, error) {
	if err := wordsearch.CheckWords(words); err != nil {
		return nil, err
	}
	tree := btree.NewG(32, lessEntry)
	for _, word := range words {
		entry, _ := tree.Get(sortedEntry{word: word})
		tree.ReplaceOrInsert(sortedEntry{word: word, count: entry.count + 1})
	}
	return &Sorted{tree: tree, size: len(words)}, nil
}

func (s *Sorted) FindMatchingWords(pattern string) []string {
	var ret []string
	s.tree.AscendGreaterOrEqual(sortedEntry{word: pattern}, func(entry sortedEntry) bool {
		if !strings.HasPrefix(entry.word, pattern) {
			return false
		}
		for i := 0; i < entry.count; i++ {
			ret = append(ret, entry.word)
		}
		return true
	})
	return ret
}

func (s *Sorted) Size() int {
	return s.size
}

// Radix keeps distinct words in a radix tree with their multiplicity.
// Results are sorted.
type Radix struct {
	tree *radix.Tree
	size int
}

// NewRadix returns a Radix dictionary holding words.
func NewRadix(words []string) (*Radix, error) {
	if err := wordsearch.CheckWords(words); err != nil {
		return nil, err
	}
	tree := radix.New()
	for _, word := range words {
		count, _ := tree.Get(word)
		n, _ := count.(int)
		tree.Insert(word, n+1)
	}
	return &Radix{tree: tree, size: len(words)}, nil
}

func (r *Radix) FindMatchingWords(pattern string) []string {
	var ret []string
	r.tree.WalkPrefix(pattern, func(word string, count interface{}) bool {
		for i := 0; i < count.(int); i++ {
			ret = append(ret, word)
		}
		return false
	})
	return ret
}

func (r *Radix) Size() int {
	return r.size
}
