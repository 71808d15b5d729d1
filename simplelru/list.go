package simplelru

import "golang.org/x/exp/slices"

// handle identifies a node in the arena. A node keeps its handle for as long
// as it is live, no matter how often it moves within the recency order.
type handle int

// root is the sentinel slot. It holds no data: root.next is the most
// recently used node and root.prev the least recently used one.
const root handle = 0

// maxReserve bounds how many slots are allocated ahead of use. Larger caches
// grow their arena by append as entries arrive.
const maxReserve = 1024

type node[K comparable, V any] struct {
	key   K
	value V
	prev  handle
	next  handle
}

// recencyList is a circular doubly-linked list stored in a slice. Slots
// released by remove are kept on a free list and handed out again by
// pushFront, so the arena never grows past the largest live count.
type recencyList[K comparable, V any] struct {
	nodes []node[K, V]
	free  []handle
	len   int
}

func newRecencyList[K comparable, V any](size int) *recencyList[K, V] {
	l := &recencyList[K, V]{}
	l.init(size)
	return l
}

func (l *recencyList[K, V]) init(size int) {
	l.nodes = make([]node[K, V], 1, min(size, maxReserve)+1)
	l.free = l.free[:0]
	l.len = 0
}

// reserve makes room for size live nodes, capped at maxReserve, without
// reallocating.
func (l *recencyList[K, V]) reserve(size int) {
	if need := min(size, maxReserve) + 1 - len(l.nodes); need > 0 {
		l.nodes = slices.Grow(l.nodes, need)
	}
}

func (l *recencyList[K, V]) front() handle { return l.nodes[root].next }

func (l *recencyList[K, V]) back() handle { return l.nodes[root].prev }

func (l *recencyList[K, V]) at(h handle) *node[K, V] { return &l.nodes[h] }

// pushFront stores a new node as the most recently used one.
func (l *recencyList[K, V]) pushFront(key K, value V) handle {
	var h handle
	if n := len(l.free); n > 0 {
		h = l.free[n-1]
		l.free = l.free[:n-1]
		l.nodes[h] = node[K, V]{key: key, value: value}
	} else {
		h = handle(len(l.nodes))
		l.nodes = append(l.nodes, node[K, V]{key: key, value: value})
	}
	l.link(h)
	l.len++
	return h
}

// moveToFront marks h as the most recently used node.
func (l *recencyList[K, V]) moveToFront(h handle) {
	if l.nodes[root].next == h {
		return
	}
	l.unlink(h)
	l.link(h)
}

// remove unlinks h and returns its slot to the free list.
func (l *recencyList[K, V]) remove(h handle) {
	l.unlink(h)
	l.nodes[h] = node[K, V]{}
	l.free = append(l.free, h)
	l.len--
}

// reset drops every node but keeps the arena's backing array.
func (l *recencyList[K, V]) reset() {
	clear(l.nodes)
	l.nodes = l.nodes[:1]
	l.free = l.free[:0]
	l.len = 0
}

// link inserts h right after the sentinel.
func (l *recencyList[K, V]) link(h handle) {
	first := l.nodes[root].next
	l.nodes[h].prev = root
	l.nodes[h].next = first
	l.nodes[first].prev = h
	l.nodes[root].next = h
}

func (l *recencyList[K, V]) unlink(h handle) {
	n := &l.nodes[h]
	l.nodes[n.prev].next = n.next
	l.nodes[n.next].prev = n.prev
	n.prev, n.next = root, root
}
