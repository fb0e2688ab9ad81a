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
	"runtime"

	"github.com/googlestaging/wordsearch/pkg/wordsearch"
	"golang.org/x/sync/errgroup"
)

// PrefixHash maps every prefix of every word to the words having it, so a
// query is a single lookup.  It trades a great deal of memory for query
// speed.  Results are in input order.
type PrefixHash struct {
	prefixToWords map[string][]string
	size          int
}

// NewPrefixHash returns a PrefixHash dictionary holding words.  Contiguous
// chunks of words are indexed concurrently into local maps, which are then
// merged into the global map in input order.
func NewPrefixHash(words []string) (*PrefixHash, error) {
	if err := wordsearch.CheckWords(words); err != nil {
		return nil, err
	}
	ret := &PrefixHash{
		prefixToWords: map[string][]string{},
		size:          len(words),
	}
	if len(words) == 0 {
		return ret, nil
	}
	workers := runtime.GOMAXPROCS(0)
	size := (len(words) + workers - 1) / workers
	locals := make([]map[string][]string, (len(words)+size-1)/size)
	var eg errgroup.Group
	for i := range locals {
		chunk := words[i*size : min((i+1)*size, len(words))]
		eg.Go(func() error {
			local := map[string][]string{}
			for _, word := range chunk {
				for end := 1; end <= len(word); end++ {
					local[word[:end]] = append(local[word[:end]], word)
				}
			}
			locals[i] = local
			return nil
		})
	}
	eg.Wait()
	for _, local := range locals {
		ret.mergeFrom(local)
	}
	ret.prefixToWords[""] = words
	return ret, nil
}

// mergeFrom appends the receiver's lists with the argument's.
func (p *PrefixHash) mergeFrom(other map[string][]string) {
	for prefix, words := range other {
		p.prefixToWords[prefix] = append(p.prefixToWords[prefix], words...)
	}
}

func (p *PrefixHash) FindMatchingWords(pattern string) []string {
	return append([]string(nil), p.prefixToWords[pattern]...)
}

func (p *PrefixHash) Size() int {
	return p.size
}
