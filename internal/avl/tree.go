// Package avl is a height balanced binary search tree whose order comes
// entirely from an injected comparator.
//
// The comparator is allowed to depend on state outside the stored values (the
// sweep compares segments by their distance along the current ray). The tree
// only requires that the order of the stored values does not change between
// the moment it is established and the moment it is relied upon; keeping that
// promise is the caller's job.
package avl

// Compare returns a negative number when a sorts before b, a positive number
// when it sorts after, and zero when they are the same key.
type Compare[T any] func(a, b T) int

type node[T any] struct {
	value       T
	left, right *node[T]
	height      int
}

type Tree[T any] struct {
	root    *node[T]
	compare Compare[T]
	size    int
}

func New[T any](compare Compare[T]) *Tree[T] {
	return &Tree[T]{compare: compare}
}

func (t *Tree[T]) Len() int {
	return t.size
}

func (t *Tree[T]) IsEmpty() bool {
	return t.root == nil
}

// Height counts nodes on the longest root to leaf path. An empty tree has
// height 0 and a single node has height 1.
func (t *Tree[T]) Height() int {
	return height(t.root)
}

// Clear drops every node. The comparator is kept.
func (t *Tree[T]) Clear() {
	t.root = nil
	t.size = 0
}

// Insert adds v. Keys that compare equal to an existing value are rejected,
// and Insert reports false.
func (t *Tree[T]) Insert(v T) bool {
	var inserted bool
	t.root = t.insert(t.root, v, &inserted)
	if inserted {
		t.size++
	}
	return inserted
}

// Remove deletes the value that compares equal to v, reporting whether one was
// found. The search walks the tree with the comparator, so it can only find
// values whose position is still consistent with the current order.
func (t *Tree[T]) Remove(v T) bool {
	var removed bool
	t.root = t.remove(t.root, v, &removed)
	if removed {
		t.size--
	}
	return removed
}

// Search returns the stored value comparing equal to v.
func (t *Tree[T]) Search(v T) (T, bool) {
	n := t.root
	for n != nil {
		c := t.compare(v, n.value)
		switch {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n.value, true
		}
	}
	var zero T
	return zero, false
}

// Min returns the smallest value. No comparisons are made.
func (t *Tree[T]) Min() (T, bool) {
	if t.root == nil {
		var zero T
		return zero, false
	}
	return minNode(t.root).value, true
}

// Max returns the largest value. No comparisons are made.
func (t *Tree[T]) Max() (T, bool) {
	if t.root == nil {
		var zero T
		return zero, false
	}
	n := t.root
	for n.right != nil {
		n = n.right
	}
	return n.value, true
}

// Walk visits values in order until fn returns false.
func (t *Tree[T]) Walk(fn func(T) bool) {
	walk(t.root, fn)
}

// Values returns the values in order.
func (t *Tree[T]) Values() []T {
	values := make([]T, 0, t.size)
	t.Walk(func(v T) bool {
		values = append(values, v)
		return true
	})
	return values
}

func walk[T any](n *node[T], fn func(T) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.left, fn) && fn(n.value) && walk(n.right, fn)
}

func (t *Tree[T]) insert(n *node[T], v T, inserted *bool) *node[T] {
	if n == nil {
		*inserted = true
		return &node[T]{value: v, height: 1}
	}

	c := t.compare(v, n.value)
	switch {
	case c < 0:
		n.left = t.insert(n.left, v, inserted)
	case c > 0:
		n.right = t.insert(n.right, v, inserted)
	default:
		return n
	}

	return rebalance(n)
}

func (t *Tree[T]) remove(n *node[T], v T, removed *bool) *node[T] {
	if n == nil {
		return nil
	}

	c := t.compare(v, n.value)
	switch {
	case c < 0:
		n.left = t.remove(n.left, v, removed)
	case c > 0:
		n.right = t.remove(n.right, v, removed)
	default:
		*removed = true
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		// Two children: pull up the in-order successor. Detaching it by
		// position rather than by key means we never compare the successor
		// against itself.
		var successor *node[T]
		n.right = detachMin(n.right, &successor)
		successor.left = n.left
		successor.right = n.right
		n = successor
	}

	return rebalance(n)
}

func detachMin[T any](n *node[T], detached **node[T]) *node[T] {
	if n.left == nil {
		*detached = n
		return n.right
	}
	n.left = detachMin(n.left, detached)
	return rebalance(n)
}

func minNode[T any](n *node[T]) *node[T] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func height[T any](n *node[T]) int {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *node[T]) update() {
	n.height = 1 + max(height(n.left), height(n.right))
}

func (n *node[T]) balance() int {
	return height(n.left) - height(n.right)
}

// Restore the AVL property at n, assuming both subtrees already satisfy it
// and their heights differ by at most two.
func rebalance[T any](n *node[T]) *node[T] {
	n.update()
	switch b := n.balance(); {
	case b > 1:
		if n.left.balance() < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case b < -1:
		if n.right.balance() > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

/*
	    y            x
	   / \          / \
	  x   c  -->   a   y
	 / \              / \
	a   b            b   c
*/
func rotateRight[T any](y *node[T]) *node[T] {
	x := y.left
	y.left = x.right
	x.right = y
	y.update()
	x.update()
	return x
}

func rotateLeft[T any](x *node[T]) *node[T] {
	y := x.right
	x.right = y.left
	y.left = x
	x.update()
	y.update()
	return y
}
