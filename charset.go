package crispfont

import (
	"sort"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// excludedCP1252Bytes are Windows-1252 bytes in the 0x80..0x9F block that
// decode to a printable character but are excluded from the curated
// subset: caron letters, the f-with-hook and OE ligature, two spacing
// modifier letters and the single left-pointing angle quote.
var excludedCP1252Bytes = map[byte]bool{
	0x83: true, // ƒ LATIN SMALL LETTER F WITH HOOK
	0x88: true, // ˆ MODIFIER LETTER CIRCUMFLEX ACCENT
	0x8A: true, // Š LATIN CAPITAL LETTER S WITH CARON
	0x8B: true, // ‹ SINGLE LEFT-POINTING ANGLE QUOTATION MARK
	0x8C: true, // Œ LATIN CAPITAL LIGATURE OE
	0x8E: true, // Ž LATIN CAPITAL LETTER Z WITH CARON
	0x98: true, // ˜ SMALL TILDE
	0x9A: true, // š LATIN SMALL LETTER S WITH CARON
}

// excludedLatin1 are Latin-1 Supplement codepoints excluded from the
// canonical set: legacy fraction glyphs, superscript digits and two rarely
// used symbol codepoints, none of which are needed by ordinary UI text.
var excludedLatin1 = map[rune]bool{
	0x00A4: true, // ¤ CURRENCY SIGN
	0x00A6: true, // ¦ BROKEN BAR
	0x00B2: true, // ² SUPERSCRIPT TWO
	0x00B3: true, // ³ SUPERSCRIPT THREE
	0x00B9: true, // ¹ SUPERSCRIPT ONE
	0x00BC: true, // ¼ VULGAR FRACTION ONE QUARTER
	0x00BD: true, // ½ VULGAR FRACTION ONE HALF
	0x00BE: true, // ¾ VULGAR FRACTION THREE QUARTERS
}

// minusSign is appended to the curated CP1252 subset alongside the en and
// em dashes: Windows-1252 itself has no dedicated minus sign distinct from
// ASCII hyphen-minus (already covered by the ASCII range below), but a
// crisp UI glyph set conventionally carries the true Unicode minus for
// numeric displays.
const minusSign = '−'

// fullBlock is appended on its own: used as a placeholder/cursor glyph by
// callers, per spec §3.
const fullBlock = '█'

// buildCharacterSet derives the canonical 204-character inventory:
// ASCII 0x20..0x7E, a curated Windows-1252 subset (0x80..0x9F minus
// excludedCP1252Bytes), the Latin-1 Supplement minus excludedLatin1, plus
// the minus sign and full block. The CP1252 decode table comes from
// golang.org/x/text/encoding/charmap rather than a hand-copied list, so
// the "curated" claim is backed by the real Windows-1252 mapping.
func buildCharacterSet() []rune {
	var runes []rune

	for r := rune(0x20); r <= 0x7E; r++ {
		runes = append(runes, r)
	}

	for b := 0x80; b <= 0x9F; b++ {
		if excludedCP1252Bytes[byte(b)] {
			continue
		}
		r := charmap.Windows1252.DecodeByte(byte(b))
		if r == utf8.RuneError || r < 0x20 || (r >= 0x7F && r <= 0x9F) {
			continue // undefined slot, decodes back to a C0/C1 control
		}
		runes = append(runes, r)
	}
	runes = append(runes, minusSign)

	for r := rune(0x00A0); r <= 0x00FF; r++ {
		if excludedLatin1[r] {
			continue
		}
		runes = append(runes, r)
	}

	runes = append(runes, fullBlock)

	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return runes
}

// CharacterSet is the frozen, ordered 204-character inventory every font
// file must contain in exactly this order (spec §3). Ordering is
// lexicographic by code point.
var CharacterSet = buildCharacterSet()

// characterIndex maps each canonical character to its position in
// CharacterSet, built once at init time for O(1) membership and ordering
// checks during minify/validate.
var characterIndex = func() map[rune]int {
	m := make(map[rune]int, len(CharacterSet))
	for i, r := range CharacterSet {
		m[r] = i
	}
	return m
}()

// CharacterSetSize is the fixed number of characters in CharacterSet.
const CharacterSetSize = 204

// InCanonicalOrder reports whether chars is exactly CharacterSet, in order.
func InCanonicalOrder(chars []rune) bool {
	if len(chars) != len(CharacterSet) {
		return false
	}
	for i, r := range chars {
		if r != CharacterSet[i] {
			return false
		}
	}
	return true
}

// ValidateCharacterSet checks that chars is exactly the canonical set in
// canonical order and returns a *CharacterSetError describing any
// missing, extra, or misordered characters. A nil return means chars is
// the canonical set in canonical order.
func ValidateCharacterSet(chars []rune) error {
	seen := make(map[rune]bool, len(chars))
	var extra []rune
	for _, r := range chars {
		if _, ok := characterIndex[r]; !ok {
			extra = append(extra, r)
		}
		seen[r] = true
	}
	var missing []rune
	for _, r := range CharacterSet {
		if !seen[r] {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		return &CharacterSetError{Missing: missing, Extra: extra}
	}
	if !InCanonicalOrder(chars) {
		return &CharacterSetError{OutOfOrder: true}
	}
	return nil
}
