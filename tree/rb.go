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

package tree

// Red-black insert/delete follow the standard CLRS invariants: every node
// is red or black, the root is black, no two red nodes are adjacent, and
// every root-to-leaf path has the same black-node count. A nil child is
// treated as a black leaf (isRed reports false for it) rather than using
// an explicit sentinel node.

func isRed[K any, V any](n *node[K, V]) bool {
	return n != nil && n.red
}

func (t *Tree[K, V]) rbInsert(key K, value V) {
	n := &node[K, V]{key: key, value: value, red: true}

	if t.root == nil {
		t.root = n
		n.red = false
		return
	}

	p := t.root
	for {
		if t.cmp(key, p.key) < 0 {
			if p.left == nil {
				p.left = n
				n.parent = p
				break
			}
			p = p.left
		} else {
			if p.right == nil {
				p.right = n
				n.parent = p
				break
			}
			p = p.right
		}
	}

	t.rbInsertFixup(n)
}

func (t *Tree[K, V]) rbInsertFixup(z *node[K, V]) {
	for isRed(z.parent) {
		gp := z.parent.parent
		if z.parent == gp.left {
			u := gp.right
			if isRed(u) {
				z.parent.red = false
				u.red = false
				gp.red = true
				z = gp
				continue
			}
			if z == z.parent.right {
				z = z.parent
				rotateLeft(t, z)
			}
			z.parent.red = false
			gp.red = true
			rotateRight(t, gp)
		} else {
			u := gp.left
			if isRed(u) {
				z.parent.red = false
				u.red = false
				gp.red = true
				z = gp
				continue
			}
			if z == z.parent.left {
				z = z.parent
				rotateRight(t, z)
			}
			z.parent.red = false
			gp.red = true
			rotateLeft(t, gp)
		}
	}
	t.root.red = false
}

func (t *Tree[K, V]) rbDelete(z *node[K, V]) {
	y := z
	yWasRed := isRed(y)
	var x *node[K, V]
	var xParent *node[K, V]

	switch {
	case z.left == nil:
		x = z.right
		xParent = z.parent
		transplant(t, z, z.right)
	case z.right == nil:
		x = z.left
		xParent = z.parent
		transplant(t, z, z.left)
	default:
		y = minNode(z.right)
		yWasRed = isRed(y)
		x = y.right
		if y.parent == z {
			xParent = y
		} else {
			xParent = y.parent
			transplant(t, y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		transplant(t, z, y)
		y.left = z.left
		y.left.parent = y
		y.red = z.red
	}

	if !yWasRed {
		t.rbDeleteFixup(x, xParent)
	}
}

// rbDeleteFixup restores the red-black invariants after a black node was
// removed. x may be nil (a removed black leaf), so the expected parent is
// threaded through explicitly instead of relying on x.parent.
func (t *Tree[K, V]) rbDeleteFixup(x, parent *node[K, V]) {
	for x != t.root && !isRed(x) {
		if parent == nil {
			break
		}
		if x == parent.left {
			w := parent.right
			if isRed(w) {
				w.red = false
				parent.red = true
				rotateLeft(t, parent)
				w = parent.right
			}
			if !isRed(w.left) && !isRed(w.right) {
				w.red = true
				x = parent
				parent = x.parent
				continue
			}
			if !isRed(w.right) {
				if w.left != nil {
					w.left.red = false
				}
				w.red = true
				rotateRight(t, w)
				w = parent.right
			}
			w.red = parent.red
			parent.red = false
			if w.right != nil {
				w.right.red = false
			}
			rotateLeft(t, parent)
			x = t.root
			parent = nil
		} else {
			w := parent.left
			if isRed(w) {
				w.red = false
				parent.red = true
				rotateRight(t, parent)
				w = parent.left
			}
			if !isRed(w.right) && !isRed(w.left) {
				w.red = true
				x = parent
				parent = x.parent
				continue
			}
			if !isRed(w.left) {
				if w.right != nil {
					w.right.red = false
				}
				w.red = true
				rotateLeft(t, w)
				w = parent.left
			}
			w.red = parent.red
			parent.red = false
			if w.left != nil {
				w.left.red = false
			}
			rotateRight(t, parent)
			x = t.root
			parent = nil
		}
	}
	if x != nil {
		x.red = false
	}
}
