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

// Package prefixtree implements a concurrent prefix tree (trie) for
// prefix-based word lookup.
//
// A Tree is built once from a bulk word list, with insertions fanned out
// across goroutines, and can then be grown with AddWord.  A Forest shards a
// word list contiguously across several independent Trees, building and
// querying them in parallel.  A Cursor narrows a search one character at a
// time, for autocomplete-style lookups.
//
// Nodes only ever grow: children are added if absent and terminal counts are
// incremented, never removed.  Child creation is a per-node, per-character
// compute-if-absent on a lock-free map, so insertions on disjoint paths never
// block each other and racing insertions on the same path agree on a single
// child.  Words are not stored verbatim; a node records how many words end
// at it, and collection rebuilds each word from the path leading there.
//
// Queries running concurrently with insertions are weakly consistent: they
// observe any word fully linked before the relevant subtree walk begins, and
// may or may not observe others.  The order of collected words is
// unspecified.
package prefixtree

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/sync/errgroup"
)

// Node is a prefix tree node.  A node at depth d is reached from the root by
// exactly d bytes, which form the prefix of every word stored at or below it.
type Node struct {
	depth    int
	terminal atomic.Int64
	// Allocated on first child insertion; leaves never pay for a map.
	children atomic.Pointer[xsync.Map[byte, *Node]]
}

func newNode(depth int) *Node {
	return &Node{depth: depth}
}

// Depth returns the length of the prefix this node represents.
func (n *Node) Depth() int {
	return n.depth
}

// Len returns the number of words ending exactly at this node.
func (n *Node) Len() int {
	return int(n.terminal.Load())
}

// child returns the existing child for char, or nil.
func (n *Node) child(char byte) *Node {
	m := n.children.Load()
	if m == nil {
		return nil
	}
	c, _ := m.Load(char)
	return c
}

// childFor returns the child for char, creating it if it does not yet exist.
// Concurrent callers always receive the same child.
func (n *Node) childFor(char byte) *Node {
	if c := n.child(char); c != nil {
		return c
	}
	m := n.children.Load()
	if m == nil {
		m = xsync.NewMap[byte, *Node]()
		if !n.children.CompareAndSwap(nil, m) {
			m = n.children.Load()
		}
	}
	c, _ := m.LoadOrCompute(char, func() (*Node, bool) {
		return newNode(n.depth + 1), false
	})
	return c
}

// Insert inserts the specified word below the receiver.  If the receiver is
// the root of a tree, any word may be inserted; otherwise the word's first
// Depth() bytes are assumed to match the path to the receiver.  Insert is
// safe to call concurrently.
//
// Insert panics if the word is shorter than the receiver's depth, which
// can only happen if the caller descended along the wrong path.
func (n *Node) Insert(word string) {
	if len(word) < n.depth {
		panic(fmt.Sprintf("prefixtree: word %q shorter than node depth %d", word, n.depth))
	}
	node := n
	for node.depth < len(word) {
		node = node.childFor(word[node.depth])
	}
	node.terminal.Add(1)
}

// FindMatchingWords returns every word at or below the receiver that starts
// with pattern.  As with Insert, the first Depth() bytes of pattern are
// assumed to match the path to the receiver.
func (n *Node) FindMatchingWords(pattern string) []string {
	if len(pattern) < n.depth {
		panic(fmt.Sprintf("prefixtree: pattern %q shorter than node depth %d", pattern, n.depth))
	}
	node := n
	for node.depth < len(pattern) {
		node = node.child(pattern[node.depth])
		if node == nil {
			return nil
		}
	}
	return node.CollectWords(pattern)
}

// CollectWords returns every word stored at or below the receiver, given the
// prefix spelled by the path to it.  Each child subtree is collected on its
// own goroutine, so the order of the result is unspecified.
//
// CollectWords is safe to call concurrently with other queries.  If it races
// with insertions, the result may include any subset of the words being
// inserted.
func (n *Node) CollectWords(prefix string) []string {
	m := n.children.Load()
	if m == nil || m.Size() < 2 {
		return n.appendWords(nil, []byte(prefix))
	}
	ret := n.appendTerminals(nil, prefix)
	var chars []byte
	var subtrees []*Node
	m.Range(func(char byte, child *Node) bool {
		chars = append(chars, char)
		subtrees = append(subtrees, child)
		return true
	})
	results := make([][]string, len(subtrees))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, child := range subtrees {
		eg.Go(func() error {
			path := make([]byte, len(prefix)+1, len(prefix)+16)
			copy(path, prefix)
			path[len(prefix)] = chars[i]
			results[i] = child.appendWords(nil, path)
			return nil
		})
	}
	eg.Wait()
	for _, result := range results {
		ret = append(ret, result...)
	}
	return ret
}

// appendWords sequentially appends every word at or below the receiver to
// dst.  path is reused as scratch space by the recursion.
func (n *Node) appendWords(dst []string, path []byte) []string {
	if n.terminal.Load() > 0 {
		dst = n.appendTerminals(dst, string(path))
	}
	if m := n.children.Load(); m != nil {
		m.Range(func(char byte, child *Node) bool {
			dst = child.appendWords(dst, append(path, char))
			return true
		})
	}
	return dst
}

// appendTerminals appends word once per word ending at the receiver.
func (n *Node) appendTerminals(dst []string, word string) []string {
	for i := n.terminal.Load(); i > 0; i-- {
		dst = append(dst, word)
	}
	return dst
}
