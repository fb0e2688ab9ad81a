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
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCursorMatchesFindMatchingWords(t *testing.T) {
	words := shuffled(matching(fourLetterWords(), "T"))
	baseline, err := NewTree(words)
	if err != nil {
		t.Fatalf("NewTree() yielded %v, wanted nil", err)
	}
	for _, test := range []struct {
		description string
		newCursor   func(*Tree) *Cursor
	}{{
		description: "materializing",
		newCursor:   (*Tree).Cursor,
	}, {
		description: "probe",
		newCursor: func(tree *Tree) *Cursor {
			return NewProbeCursor(tree.Root(), "")
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			tree, err := NewTree(words)
			if err != nil {
				t.Fatalf("NewTree() yielded %v, wanted nil", err)
			}
			cursor := test.newCursor(tree)
			pattern := "TEST"
			for i, char := range pattern {
				prefix := pattern[:i+1]
				want := baseline.FindMatchingWords(prefix)
				got := cursor.Advance(char)
				if diff := cmp.Diff(want, got, asMultiset); diff != "" {
					t.Errorf("Advance(%q) after %q, diff (-want +got) %s", char, pattern[:i], diff)
				}
				if cursor.Prefix() != prefix {
					t.Errorf("Prefix() = %q, wanted %q", cursor.Prefix(), prefix)
				}
			}
		})
	}
}

func TestCursorAbsentPrefix(t *testing.T) {
	for _, test := range []struct {
		description      string
		newCursor        func(*Tree) *Cursor
		wantMaterialized bool
	}{{
		description:      "materializing",
		newCursor:        (*Tree).Cursor,
		wantMaterialized: true,
	}, {
		description: "probe",
		newCursor: func(tree *Tree) *Cursor {
			return NewProbeCursor(tree.Root(), "")
		},
		wantMaterialized: false,
	}} {
		t.Run(test.description, func(t *testing.T) {
			tree, err := NewTree([]string{"abc", "abd"})
			if err != nil {
				t.Fatalf("NewTree() yielded %v, wanted nil", err)
			}
			cursor := test.newCursor(tree)
			for _, char := range "axy" {
				cursor.Advance(char)
			}
			if got := cursor.Advance('z'); len(got) != 0 {
				t.Errorf("Advance('z') after \"axy\" = %v, wanted none", got)
			}
			materialized := tree.Root().child('a').child('x') != nil
			if materialized != test.wantMaterialized {
				t.Errorf("node for \"ax\" exists: %t, wanted %t", materialized, test.wantMaterialized)
			}
			// Either way, the stored words are unaffected.
			if diff := cmp.Diff([]string{"abc", "abd"}, tree.FindMatchingWords(""), asMultiset); diff != "" {
				t.Errorf("FindMatchingWords(\"\") diff (-want +got) %s", diff)
			}
			if tree.Size() != 2 {
				t.Errorf("Size() = %d, wanted 2", tree.Size())
			}
		})
	}
}

func TestCursorMultibyteRune(t *testing.T) {
	tree, err := NewTree([]string{"héllo", "hélium", "hello", "日本", "日本語"})
	if err != nil {
		t.Fatalf("NewTree() yielded %v, wanted nil", err)
	}
	cursor := tree.Cursor()
	cursor.Advance('h')
	if diff := cmp.Diff([]string{"héllo", "hélium"}, cursor.Advance('é'), asMultiset); diff != "" {
		t.Errorf("Advance('é') diff (-want +got) %s", diff)
	}
	cursor = tree.Cursor()
	cursor.Advance('日')
	if diff := cmp.Diff([]string{"日本", "日本語"}, cursor.Advance('本'), asMultiset); diff != "" {
		t.Errorf("Advance('本') diff (-want +got) %s", diff)
	}
}

func TestCursorFromInnerNode(t *testing.T) {
	tree, err := NewTree([]string{"tea", "ten", "tent", "to"})
	if err != nil {
		t.Fatalf("NewTree() yielded %v, wanted nil", err)
	}
	cursor := NewCursor(tree.Root().child('t'), "t")
	if diff := cmp.Diff([]string{"tea", "ten", "tent"}, cursor.Advance('e'), asMultiset); diff != "" {
		t.Errorf("Advance('e') diff (-want +got) %s", diff)
	}
	if diff := cmp.Diff([]string{"ten", "tent"}, cursor.Advance('n'), asMultiset); diff != "" {
		t.Errorf("Advance('n') diff (-want +got) %s", diff)
	}
}

func TestConcurrentCursors(t *testing.T) {
	tree, err := NewTree(matching(fourLetterWords(), "AB"))
	if err != nil {
		t.Fatalf("NewTree() yielded %v, wanted nil", err)
	}
	var wg sync.WaitGroup
	for _, pattern := range []string{"ABC", "ABQ", "AXE", "ABCD", "ZZZ", "ABZZ"} {
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				cursor := tree.Cursor()
				var got []string
				for _, char := range pattern {
					got = cursor.Advance(char)
				}
				want := matching(matching(fourLetterWords(), "AB"), pattern)
				if diff := cmp.Diff(want, got, asMultiset); diff != "" {
					t.Errorf("cursor over %q diff (-want +got) %s", pattern, diff)
				}
			}()
		}
	}
	wg.Wait()
	if tree.Size() != 26*26 {
		t.Errorf("Size() = %d, wanted %d", tree.Size(), 26*26)
	}
}
