package crispfont

import "errors"

// Sentinel errors for build-time failure kinds (spec §7). These are fatal:
// the caller must not register or serve the font in question.
var (
	// ErrInvalidCharacterSet is returned when a FontMetrics' characterMetrics
	// does not cover exactly the canonical 204-character set in canonical
	// order.
	ErrInvalidCharacterSet = errors.New("crispfont: character set does not match the canonical set")

	// ErrRoundtripFailure is wrapped by the *RoundtripMismatchError that
	// MinifyWithVerification returns when Expand(Minify(m)) differs from m
	// on an essential field.
	ErrRoundtripFailure = errors.New("crispfont: metrics roundtrip verification failed")

	// ErrLegacyFormat is returned by Expand when the minified blob carries
	// a deprecated "c" (character-list) field.
	ErrLegacyFormat = errors.New("crispfont: minified metrics use a legacy format")

	// ErrMissingMetricsForAtlas names the failure of an atlas arriving
	// before metrics for the same font id. No function in this package
	// returns it: Loader.LoadFont installs metrics before it fetches the
	// atlas, and Reconstruct takes the metrics as an argument.
	ErrMissingMetricsForAtlas = errors.New("crispfont: atlas arrived before its metrics")

	// ErrReconstructionMismatch is returned when a reconstructed atlas fails
	// a dimensional or positional sanity check.
	ErrReconstructionMismatch = errors.New("crispfont: reconstructed atlas failed sanity check")
)

// CharacterSetError describes exactly how a character set failed
// validation, wrapping ErrInvalidCharacterSet.
type CharacterSetError struct {
	// Missing lists canonical characters absent from the input.
	Missing []rune
	// Extra lists input characters outside the canonical set.
	Extra []rune
	// OutOfOrder is true when the input covers the canonical set but not
	// in canonical order.
	OutOfOrder bool
}

func (e *CharacterSetError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return "crispfont: character set is missing canonical characters"
	case len(e.Extra) > 0:
		return "crispfont: character set contains characters outside the canonical set"
	case e.OutOfOrder:
		return "crispfont: character set is out of canonical order"
	default:
		return ErrInvalidCharacterSet.Error()
	}
}

func (e *CharacterSetError) Unwrap() error { return ErrInvalidCharacterSet }

// RoundtripMismatchError names the character and field that failed
// roundtrip verification.
type RoundtripMismatchError struct {
	Char  rune
	Field string
}

func (e *RoundtripMismatchError) Error() string {
	return "crispfont: roundtrip mismatch on field " + e.Field
}

func (e *RoundtripMismatchError) Unwrap() error { return ErrRoundtripFailure }

// ReconstructionError names the font identity and reason a reconstruction
// sanity check failed.
type ReconstructionError struct {
	ID     FontIdentity
	Reason string
}

func (e *ReconstructionError) Error() string {
	return "crispfont: reconstruction mismatch for " + e.ID.String() + ": " + e.Reason
}

func (e *ReconstructionError) Unwrap() error { return ErrReconstructionMismatch }

// StatusCode is a per-draw / per-load outcome. Unlike the sentinel errors
// above, a StatusCode is never fatal: the engine always returns a usable
// (possibly partial, possibly placeholder-filled) result alongside it.
type StatusCode int

const (
	// StatusOK indicates metrics and atlas are both fully loaded.
	StatusOK StatusCode = iota
	// StatusNoMetrics indicates no metrics are available for the font.
	StatusNoMetrics
	// StatusNoAtlas indicates metrics are available but the atlas is not;
	// draws fall back to placeholders.
	StatusNoAtlas
	// StatusPartialMetrics indicates metrics are available for only some
	// characters in the requested string.
	StatusPartialMetrics
	// StatusPartialAtlas indicates atlas positioning is available for only
	// some characters in the requested string.
	StatusPartialAtlas
)

// String renders the status using the on-the-wire names from spec §7.
func (s StatusCode) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusNoMetrics:
		return "NO_METRICS"
	case StatusNoAtlas:
		return "NO_ATLAS"
	case StatusPartialMetrics:
		return "PARTIAL_METRICS"
	case StatusPartialAtlas:
		return "PARTIAL_ATLAS"
	default:
		return "UNKNOWN"
	}
}
