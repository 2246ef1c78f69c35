/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package tree is a self-balancing tree engine supporting three algorithms
// (plain BST, red-black, AVL) behind one uniform key/value interface, with
// an iterative Morris in-order traversal that needs no recursion and no
// auxiliary stack.
package tree

// Kind selects the balancing algorithm a Tree uses.
type Kind uint8

const (
	Bst Kind = iota
	Rb
	Avl
)

type node[K any, V any] struct {
	key    K
	value  V
	left   *node[K, V]
	right  *node[K, V]
	parent *node[K, V]
	red    bool  // meaningful for Rb only
	balance int8 // meaningful for Avl only: height(right) - height(left)
}

// Tree is one instance of the chosen algorithm, comparator, and optional
// destroy-notifiers. The comparator is required at construction and
// immutable for the tree's lifetime. Node count is cached.
type Tree[K any, V any] struct {
	kind         Kind
	cmp          func(a, b K) int
	root         *node[K, V]
	count        int
	destroyKey   func(K)
	destroyValue func(V)
}

// New creates an empty tree using the given algorithm and comparator.
// destroyKey/destroyValue may be nil; when set, they are invoked on a
// displaced key/value (Insert replacing an existing key) or on a removed
// node's key/value (Remove, Clear).
func New[K any, V any](kind Kind, cmp func(a, b K) int, destroyKey func(K), destroyValue func(V)) *Tree[K, V] {
	return &Tree[K, V]{
		kind:         kind,
		cmp:          cmp,
		destroyKey:   destroyKey,
		destroyValue: destroyValue,
	}
}

// Nnodes returns the cached node count.
func (t *Tree[K, V]) Nnodes() int {
	if t == nil {
		return 0
	}
	return t.count
}

// Lookup returns the value stored for key, and whether it was found. A nil
// tree is a no-op returning the zero value and false.
func (t *Tree[K, V]) Lookup(key K) (V, bool) {
	var zero V
	if t == nil {
		return zero, false
	}
	n := t.find(key)
	if n == nil {
		return zero, false
	}
	return n.value, true
}

func (t *Tree[K, V]) find(key K) *node[K, V] {
	n := t.root
	for n != nil {
		c := t.cmp(key, n.key)
		switch {
		case c == 0:
			return n
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return nil
}

// Insert creates a node for key/value if no equal-comparing key exists;
// otherwise it replaces the stored value, invoking the destroy callbacks
// on the displaced key and value when set. Reports whether a new node was
// created. A nil tree is a no-op returning false.
func (t *Tree[K, V]) Insert(key K, value V) bool {
	if t == nil {
		return false
	}

	if n := t.find(key); n != nil {
		if t.destroyKey != nil {
			t.destroyKey(n.key)
		}
		if t.destroyValue != nil {
			t.destroyValue(n.value)
		}
		n.key = key
		n.value = value
		return false
	}

	switch t.kind {
	case Rb:
		t.rbInsert(key, value)
	case Avl:
		t.avlInsert(key, value)
	default:
		t.bstInsert(key, value)
	}
	t.count++
	return true
}

// Remove removes at most one node matching key. Reports whether it did.
// A nil tree is a no-op returning false.
func (t *Tree[K, V]) Remove(key K) bool {
	if t == nil {
		return false
	}
	n := t.find(key)
	if n == nil {
		return false
	}

	// Captured before the delete, since the Avl path may copy a
	// successor's key/value into n rather than unlinking n itself.
	removedKey := n.key
	removedValue := n.value

	switch t.kind {
	case Rb:
		t.rbDelete(n)
	case Avl:
		t.avlDelete(n)
	default:
		t.bstDelete(n)
	}
	t.count--

	if t.destroyKey != nil {
		t.destroyKey(removedKey)
	}
	if t.destroyValue != nil {
		t.destroyValue(removedValue)
	}
	return true
}

// Clear iteratively removes all nodes, invoking destroy callbacks if set.
func (t *Tree[K, V]) Clear() {
	if t == nil {
		return
	}
	for t.root != nil {
		t.Remove(t.root.key)
	}
}

// VisitFunc is invoked for each key/value in order. Returning false stops
// traversal early.
type VisitFunc[K any, V any] func(key K, value V) bool

// Foreach traverses the tree in order using Morris's algorithm: no
// recursion, no auxiliary stack. It threads right-pointer links to
// predecessors temporarily and always restores them before returning,
// even when fn stops the traversal early.
func (t *Tree[K, V]) Foreach(fn VisitFunc[K, V]) {
	if t == nil || fn == nil {
		return
	}

	cur := t.root
	stopped := false

	for cur != nil {
		if cur.left == nil {
			if !stopped && !fn(cur.key, cur.value) {
				stopped = true
			}
			cur = cur.right
			continue
		}

		pred := cur.left
		for pred.right != nil && pred.right != cur {
			pred = pred.right
		}

		if pred.right == nil {
			pred.right = cur
			cur = cur.left
			continue
		}

		pred.right = nil
		if !stopped && !fn(cur.key, cur.value) {
			stopped = true
		}
		cur = cur.right
	}
}

func rotateLeft[K any, V any](t *Tree[K, V], x *node[K, V]) {
	y := x.right
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	y.parent = x.parent
	if x.parent == nil {
		t.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

func rotateRight[K any, V any](t *Tree[K, V], x *node[K, V]) {
	y := x.left
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	y.parent = x.parent
	if x.parent == nil {
		t.root = y
	} else if x == x.parent.right {
		x.parent.right = y
	} else {
		x.parent.left = y
	}
	y.right = x
	x.parent = y
}

// transplant replaces the subtree rooted at u with the subtree rooted at v.
func transplant[K any, V any](t *Tree[K, V], u, v *node[K, V]) {
	if u.parent == nil {
		t.root = v
	} else if u == u.parent.left {
		u.parent.left = v
	} else {
		u.parent.right = v
	}
	if v != nil {
		v.parent = u.parent
	}
}

func minNode[K any, V any](n *node[K, V]) *node[K, V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func (t *Tree[K, V]) bstInsert(key K, value V) {
	n := &node[K, V]{key: key, value: value}
	if t.root == nil {
		t.root = n
		return
	}
	p := t.root
	for {
		if t.cmp(key, p.key) < 0 {
			if p.left == nil {
				p.left = n
				n.parent = p
				return
			}
			p = p.left
		} else {
			if p.right == nil {
				p.right = n
				n.parent = p
				return
			}
			p = p.right
		}
	}
}

func (t *Tree[K, V]) bstDelete(n *node[K, V]) {
	switch {
	case n.left == nil:
		transplant(t, n, n.right)
	case n.right == nil:
		transplant(t, n, n.left)
	default:
		s := minNode(n.right)
		if s.parent != n {
			transplant(t, s, s.right)
			s.right = n.right
			s.right.parent = s
		}
		transplant(t, n, s)
		s.left = n.left
		s.left.parent = s
	}
}
