package rectpack

// RowPacker packs rectangles left-to-right along a single row, with no
// padding and no wrapping — a one-shelf specialisation of a shelf
// allocator. This is how the tight atlas is packed (spec §4.2): characters
// are visited in canonical order and each occupies exactly its ink bounds,
// one after another.
type RowPacker struct {
	cursor int
}

// Allocate reserves width w at the current cursor position and advances
// the cursor by w. It never fails: the tight atlas row has no height or
// width limit, it simply grows.
func (p *RowPacker) Allocate(w int) (x int) {
	x = p.cursor
	p.cursor += w
	return x
}

// Width returns the total width consumed so far — the tight atlas's
// final pixel width once every character has been allocated.
func (p *RowPacker) Width() int {
	return p.cursor
}
