// Package rectpack packs fixed-size glyph cells into the two atlas
// layouts crispfont needs: the builder's variable-width grid (the "wide"
// atlas) and the reconstructor's single packed row (the "tight" atlas).
//
// Both allocators are adapted from a classic shelf/grid rectangle packer:
// VariableGrid generalises a uniform grid allocator to columns whose width
// is the maximum cell width of the characters that land in that column;
// RowPacker specialises a shelf allocator to a single, never-wrapping
// shelf.
package rectpack
