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

package wordsearch_test

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/googlestaging/wordsearch/pkg/wordsearch"
	"github.com/googlestaging/wordsearch/pkg/wordsearch/baseline"
	"github.com/googlestaging/wordsearch/prefixtree"
)

const (
	testPattern = "TEST"
	testPrefix  = "TES"
)

func adapt[D wordsearch.Dictionary](fn func([]string) (D, error)) wordsearch.Constructor {
	return func(words []string) (wordsearch.Dictionary, error) {
		d, err := fn(words)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

var implementations = []struct {
	name      string
	construct wordsearch.Constructor
}{
	{"Naive", adapt(baseline.NewNaive)},
	{"ParallelScan", adapt(baseline.NewParallelScan)},
	{"Sorted", adapt(baseline.NewSorted)},
	{"Radix", adapt(baseline.NewRadix)},
	{"PrefixHash", adapt(baseline.NewPrefixHash)},
	{"PrefixTree", adapt(func(words []string) (*prefixtree.Tree, error) {
		return prefixtree.NewTree(words)
	})},
	{"PrefixForest", adapt(func(words []string) (*prefixtree.Forest, error) {
		return prefixtree.NewForest(words, prefixtree.WithShards(4))
	})},
}

// testWords returns every three-letter word over 'A'-'Z', plus every
// word of the form "TES?", in sorted order.
func testWords() []string {
	var ret []string
	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			for c := 'A'; c <= 'Z'; c++ {
				ret = append(ret, string([]rune{a, b, c}))
				if a == 'T' && b == 'E' && c == 'S' {
					for d := 'A'; d <= 'Z'; d++ {
						ret = append(ret, string([]rune{a, b, c, d}))
					}
				}
			}
		}
	}
	return ret
}

func shuffle(words []string) []string {
	ret := append([]string(nil), words...)
	rand.New(rand.NewSource(42)).Shuffle(len(ret), func(i, j int) { ret[i], ret[j] = ret[j], ret[i] })
	return ret
}

func TestExamplePattern(t *testing.T) {
	words := shuffle(testWords())
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			dict, err := impl.construct(words)
			if err != nil {
				t.Fatalf("construct() yielded %v, wanted nil", err)
			}
			if diff := cmp.Diff([]string{testPattern}, dict.FindMatchingWords(testPattern)); diff != "" {
				t.Errorf("FindMatchingWords(%q) diff (-want +got) %s", testPattern, diff)
			}
			// "TES" itself plus its 26 extensions.
			got := dict.FindMatchingWords(testPrefix)
			if len(got) != 27 {
				t.Errorf("FindMatchingWords(%q) returned %d words, wanted 27", testPrefix, len(got))
			}
		})
	}
}

func TestEmptyPattern(t *testing.T) {
	sorted := testWords()
	words := shuffle(sorted)
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			dict, err := impl.construct(words)
			if err != nil {
				t.Fatalf("construct() yielded %v, wanted nil", err)
			}
			got := dict.FindMatchingWords("")
			sort.Strings(got)
			if diff := cmp.Diff(sorted, got); diff != "" {
				t.Errorf("FindMatchingWords(\"\") diff (-want +got) %s", diff)
			}
			if dict.Size() != len(sorted) {
				t.Errorf("Size() = %d, wanted %d", dict.Size(), len(sorted))
			}
		})
	}
}

func TestNoMatch(t *testing.T) {
	words := shuffle(testWords())
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			dict, err := impl.construct(words)
			if err != nil {
				t.Fatalf("construct() yielded %v, wanted nil", err)
			}
			for _, pattern := range []string{"TESTS", "a", "ABCD", "Ä"} {
				if got := dict.FindMatchingWords(pattern); len(got) != 0 {
					t.Errorf("FindMatchingWords(%q) = %v, wanted none", pattern, got)
				}
			}
		})
	}
}

func TestEmptyDictionary(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			dict, err := impl.construct([]string{})
			if err != nil {
				t.Fatalf("construct() yielded %v, wanted nil", err)
			}
			if got := dict.FindMatchingWords(testPattern); len(got) != 0 {
				t.Errorf("FindMatchingWords(%q) = %v, wanted none", testPattern, got)
			}
		})
	}
}

func TestNilDictionary(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			dict, err := impl.construct(nil)
			if !errors.Is(err, wordsearch.ErrInvalidArgument) {
				t.Errorf("construct(nil) yielded %v, wanted ErrInvalidArgument", err)
			}
			if dict != nil {
				t.Errorf("construct(nil) returned %v, wanted nil", dict)
			}
		})
	}
}

func TestDuplicateWord(t *testing.T) {
	// Appended last, so all copies land in the same forest shard.
	words := append(shuffle(testWords()), testPattern, testPattern)
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			dict, err := impl.construct(words)
			if err != nil {
				t.Fatalf("construct() yielded %v, wanted nil", err)
			}
			if diff := cmp.Diff([]string{testPattern, testPattern, testPattern}, dict.FindMatchingWords(testPattern)); diff != "" {
				t.Errorf("FindMatchingWords(%q) diff (-want +got) %s", testPattern, diff)
			}
		})
	}
}

func TestImplementationsAgree(t *testing.T) {
	words := shuffle(append(testWords(), "", "a", "ab", "abc", "ab", "é", "éa", "TEST"))
	var dicts []wordsearch.Dictionary
	for _, impl := range implementations {
		dict, err := impl.construct(words)
		if err != nil {
			t.Fatalf("%s: construct() yielded %v, wanted nil", impl.name, err)
		}
		dicts = append(dicts, dict)
	}
	asMultiset := cmp.Options{cmpopts.SortSlices(func(a, b string) bool { return a < b }), cmpopts.EquateEmpty()}
	for _, pattern := range []string{"", "a", "ab", "abc", "abcd", "é", "\xc3", "T", "TE", "TES", "TEST", "Z", "ZZ", "ZZZ"} {
		want := dicts[0].FindMatchingWords(pattern)
		for i, dict := range dicts[1:] {
			if diff := cmp.Diff(want, dict.FindMatchingWords(pattern), asMultiset); diff != "" {
				t.Errorf("%s.FindMatchingWords(%q) disagrees with %s, diff (-want +got) %s",
					implementations[i+1].name, pattern, implementations[0].name, diff)
			}
		}
	}
}
