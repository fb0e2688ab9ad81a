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
	"unicode/utf8"
)

// Cursor is an incremental search over a prefix tree.  Each call to Advance
// extends the search prefix by one character and returns the words matching
// the prefix so far, without walking down from the root again.  There is no
// way to rewind a Cursor; create a new one to start over.
//
// A Cursor is not safe for concurrent use, but any number of cursors may
// search the same tree concurrently, alongside insertions.
type Cursor struct {
	node   *Node
	prefix []byte
	// If false, Advance never creates nodes; once the prefix leaves the
	// tree, node is nil and every further Advance matches nothing.
	materialize bool
}

// NewCursor returns a Cursor positioned at node, whose path from the root
// spells prefix.  Advancing it along a character the tree has never seen
// creates the missing (empty) node, exactly as an insertion would.
func NewCursor(node *Node, prefix string) *Cursor {
	return newCursor(node, prefix, true)
}

// NewProbeCursor is like NewCursor, but the returned Cursor never modifies
// the tree: advancing past the stored words yields empty results.
func NewProbeCursor(node *Node, prefix string) *Cursor {
	return newCursor(node, prefix, false)
}

func newCursor(node *Node, prefix string, materialize bool) *Cursor {
	if len(prefix) != node.Depth() {
		panic(fmt.Sprintf("prefixtree: cursor prefix %q does not match node depth %d", prefix, node.Depth()))
	}
	return &Cursor{
		node:        node,
		prefix:      []byte(prefix),
		materialize: materialize,
	}
}

// Advance moves the cursor along r, which may span several bytes, and
// returns every word starting with the accumulated prefix, in unspecified
// order.
func (c *Cursor) Advance(r rune) []string {
	from := len(c.prefix)
	c.prefix = utf8.AppendRune(c.prefix, r)
	for _, char := range c.prefix[from:] {
		switch {
		case c.node == nil:
		case c.materialize:
			c.node = c.node.childFor(char)
		default:
			c.node = c.node.child(char)
		}
	}
	if c.node == nil {
		return nil
	}
	return c.node.CollectWords(string(c.prefix))
}

// Prefix returns the prefix accumulated so far.
func (c *Cursor) Prefix() string {
	return string(c.prefix)
}
