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

// Package wordsearch defines the query contract shared by every prefix
// dictionary in this module, along with instrumentation for it.
//
// A Dictionary is built once from a list of words and then answers prefix
// queries: FindMatchingWords(p) returns every stored word beginning with p,
// with duplicates preserved.  The order of the returned words is not part of
// the contract unless an implementation documents otherwise; compare results
// as multisets.
package wordsearch

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every error reporting caller misuse, such
// as building a dictionary from a nil word list.
var ErrInvalidArgument = errors.New("invalid argument")

// Dictionary is a searchable collection of words.
type Dictionary interface {
	// FindMatchingWords returns every stored word that has pattern as a
	// prefix.  The empty pattern matches every word.  A pattern without
	// matches yields an empty (possibly nil) slice.
	FindMatchingWords(pattern string) []string
	// Size returns the number of words stored, counting duplicates.
	Size() int
}

// Constructor builds a Dictionary from a word list.  Implementations must
// return an error wrapping ErrInvalidArgument if words is nil.
type Constructor func(words []string) (Dictionary, error)

// CheckWords returns an ErrInvalidArgument error if words is nil.
func CheckWords(words []string) error {
	if words == nil {
		return fmt.Errorf("input words cannot be nil: %w", ErrInvalidArgument)
	}
	return nil
}
