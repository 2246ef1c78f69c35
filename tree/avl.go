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

// AVL insert and delete retrace from the change point toward the root,
// maintaining a balance factor (height(right) - height(left)) in
// {-1, 0, +1} at every node, rebalancing via single or double rotations
// whenever a factor would otherwise reach +-2.

func (t *Tree[K, V]) avlInsert(key K, value V) {
	z := &node[K, V]{key: key, value: value}

	if t.root == nil {
		t.root = z
		return
	}

	p := t.root
	for {
		if t.cmp(key, p.key) < 0 {
			if p.left == nil {
				p.left = z
				z.parent = p
				break
			}
			p = p.left
		} else {
			if p.right == nil {
				p.right = z
				z.parent = p
				break
			}
			p = p.right
		}
	}

	n := z
	x := p
	for x != nil {
		if n == x.right {
			if x.balance > 0 {
				t.avlRebalanceAfterGrow(x, x.right)
				return
			} else if x.balance < 0 {
				x.balance = 0
				return
			}
			x.balance = 1
		} else {
			if x.balance < 0 {
				t.avlRebalanceAfterGrow(x, x.left)
				return
			} else if x.balance > 0 {
				x.balance = 0
				return
			}
			x.balance = -1
		}
		n = x
		x = x.parent
	}
}

// avlRebalanceAfterGrow rotates at x (whose subtree through child z just
// grew by one) back into balance. The new subtree root's height equals
// x's height before the insert, so insert retracing always stops here.
func (t *Tree[K, V]) avlRebalanceAfterGrow(x, z *node[K, V]) {
	if z == x.right {
		if z.balance < 0 {
			avlRotateRightLeft(t, x, z)
		} else {
			avlRotateLeft(t, x, z)
		}
	} else {
		if z.balance > 0 {
			avlRotateLeftRight(t, x, z)
		} else {
			avlRotateRight(t, x, z)
		}
	}
}

func avlRotateLeft[K any, V any](t *Tree[K, V], x, z *node[K, V]) {
	rotateLeft(t, x)
	if z.balance == 0 {
		x.balance = 1
		z.balance = -1
	} else {
		x.balance = 0
		z.balance = 0
	}
}

func avlRotateRight[K any, V any](t *Tree[K, V], x, z *node[K, V]) {
	rotateRight(t, x)
	if z.balance == 0 {
		x.balance = -1
		z.balance = 1
	} else {
		x.balance = 0
		z.balance = 0
	}
}

func avlRotateRightLeft[K any, V any](t *Tree[K, V], x, z *node[K, V]) {
	y := z.left
	b := y.balance
	rotateRight(t, z)
	rotateLeft(t, x)
	switch {
	case b > 0:
		x.balance = -1
		z.balance = 0
	case b < 0:
		x.balance = 0
		z.balance = 1
	default:
		x.balance = 0
		z.balance = 0
	}
	y.balance = 0
}

func avlRotateLeftRight[K any, V any](t *Tree[K, V], x, z *node[K, V]) {
	y := z.right
	b := y.balance
	rotateLeft(t, z)
	rotateRight(t, x)
	switch {
	case b < 0:
		x.balance = 1
		z.balance = 0
	case b > 0:
		x.balance = 0
		z.balance = -1
	default:
		x.balance = 0
		z.balance = 0
	}
	y.balance = 0
}

func (t *Tree[K, V]) avlDelete(n *node[K, V]) {
	if n.left != nil && n.right != nil {
		s := minNode(n.right)
		n.key = s.key
		n.value = s.value
		n = s
	}

	child := n.left
	if child == nil {
		child = n.right
	}

	parent := n.parent
	fromLeft := parent != nil && n == parent.left

	transplant(t, n, child)
	t.avlRetrace(parent, fromLeft)
}

// avlRetrace walks up from the point where a subtree's height decreased
// by one, rebalancing as needed. Unlike insert, a rotation here may not
// restore the pre-deletion height, so the walk can continue to the root.
func (t *Tree[K, V]) avlRetrace(p *node[K, V], fromLeft bool) {
	for p != nil {
		gp := p.parent
		wasLeftOfGp := gp != nil && gp.left == p

		if fromLeft {
			if p.balance > 0 {
				z := p.right
				zb := z.balance
				if zb < 0 {
					avlRotateRightLeft(t, p, z)
				} else {
					avlRotateLeft(t, p, z)
				}
				if zb == 0 {
					return
				}
			} else if p.balance == 0 {
				p.balance = 1
				return
			} else {
				p.balance = 0
			}
		} else {
			if p.balance < 0 {
				z := p.left
				zb := z.balance
				if zb > 0 {
					avlRotateLeftRight(t, p, z)
				} else {
					avlRotateRight(t, p, z)
				}
				if zb == 0 {
					return
				}
			} else if p.balance == 0 {
				p.balance = -1
				return
			} else {
				p.balance = 0
			}
		}

		fromLeft = wasLeftOfGp
		p = gp
	}
}
