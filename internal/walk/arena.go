package walk

// arena backs the engine's per-commit state table with dense, slot-indexed
// storage. Slots whose occupants have been proven irrelevant go onto a LIFO
// free list and are handed out again before the backing slice grows, so peak
// memory tracks the widest concurrent frontier rather than the number of
// commits streamed.
type arena struct {
	nodes []node
	free  []int
}

// node is the per-commit record held in a slot.
type node struct {
	state  nodeState
	seeded bool
}

// alloc stores n in a slot and returns its index, reusing the most recently
// freed slot when one is available.
func (a *arena) alloc(n node) int {
	if len(a.free) > 0 {
		slot := a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		a.nodes[slot] = n
		return slot
	}
	a.nodes = append(a.nodes, n)
	return len(a.nodes) - 1
}

// release returns a slot to the reuse pool. The slot must not be read again
// until reallocated.
func (a *arena) release(slot int) {
	a.free = append(a.free, slot)
}

func (a *arena) get(slot int) node {
	return a.nodes[slot]
}

func (a *arena) set(slot int, n node) {
	a.nodes[slot] = n
}
