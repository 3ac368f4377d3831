package artspell

// childRef is a not-yet-flushed (key byte, child offset) pair collected by a
// spineFrame as its descendants are finalized (§4.2 step 2 "Flush").
type childRef struct {
	key byte
	off uint64
}

// spineFrame is one level of the compiler's in-progress spine: the single
// root-to-current-word path the streaming compiler is required to hold in
// memory (§4.2, §5 memory budget). A frame's prefix is fixed when the frame
// is created during Descend and only ever shrinks afterwards, when a later
// word's divergence point falls inside it and it must be split (§4.2 step 2
// "Flush", the split case).
type spineFrame struct {
	depth      int // position in the word where this frame's own prefix starts
	prefix     []byte
	freq       uint32
	branchByte byte // key byte the parent uses to reach this frame (root: unused)
	children   []childRef
}

// endDepth is the position in the word immediately after this frame's own
// compressed prefix — the point at which the next byte (if any) selects one
// of this frame's children.
func (f *spineFrame) endDepth() int {
	return f.depth + len(f.prefix)
}

// addChild records a finalized descendant. A frame can gain a child long
// after an earlier one was attached, or after being split; with sorted input
// the keys still arrive in ascending order, and emit sorts by key before
// encoding regardless.
func (f *spineFrame) addChild(key byte, off uint64) {
	f.children = append(f.children, childRef{key: key, off: off})
}

// sortChildren orders children ascending by key byte using insertion sort.
// Fan-out per node tops out at 256, almost always far fewer, so the
// quadratic worst case never matters and insertion sort avoids the
// interface-dispatch cost of sort.Slice for what is usually a handful of
// entries.
func sortChildren(children []childRef) {
	for i := 1; i < len(children); i++ {
		for j := i; j > 0 && children[j].key < children[j-1].key; j-- {
			children[j], children[j-1] = children[j-1], children[j]
		}
	}
}

// longestCommonPrefixLen returns the number of leading bytes a and b share.
func longestCommonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
