package qr

import (
	"fmt"
	"strings"
)

// Level is a QR error-correction level.
type Level int

const (
	L Level = iota // recovers ~7% of codewords
	M              // recovers ~15% of codewords
	Q              // recovers ~25% of codewords
	H              // recovers ~30% of codewords
)

func (l Level) String() string {
	switch l {
	case L:
		return "L"
	case M:
		return "M"
	case Q:
		return "Q"
	case H:
		return "H"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel parses one of "L", "M", "Q" or "H", case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return L, nil
	case "M":
		return M, nil
	case "Q":
		return Q, nil
	case "H":
		return H, nil
	}

	return 0, fmt.Errorf("unknown error-correction level '%s'", s)
}

// Mode is the data encoding mode used for the payload.
type Mode int

const (
	// ModeAuto picks numeric, then alphanumeric, then byte: the first one
	// that can represent the whole payload.
	ModeAuto Mode = iota
	ModeNumeric
	ModeAlphanumeric
	ModeByte
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeNumeric:
		return "numeric"
	case ModeAlphanumeric:
		return "alphanumeric"
	case ModeByte:
		return "byte"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as produced by Mode.String. An empty string is
// ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "numeric":
		return ModeNumeric, nil
	case "alphanumeric":
		return ModeAlphanumeric, nil
	case "byte":
		return ModeByte, nil
	}

	return 0, fmt.Errorf("unknown encoding mode '%s'", s)
}

// MaskAuto asks the encoder to pick the mask pattern with the lowest penalty.
// A Grid reports it as its mask when the backend does not expose the mask it
// used.
const MaskAuto = -1

// Options configures symbol construction.
type Options struct {
	Level Level
	Mode  Mode
	// Mask is MaskAuto or a fixed pattern in [0, 7].
	Mask int
}

// DefaultOptions returns level M, automatic mode selection and
// penalty-minimizing masking.
func DefaultOptions() Options {
	return Options{
		Level: M,
		Mode:  ModeAuto,
		Mask:  MaskAuto,
	}
}
