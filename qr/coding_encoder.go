package qr

import (
	"github.com/jrh3k5/qrsvg/failure"
	"rsc.io/qr/coding"
)

// CodingEncoder builds symbols with rsc.io/qr/coding. It picks the smallest
// version that fits and, unless a mask is fixed, tries all eight masks and
// keeps the one with the lowest penalty (lowest index on ties).
type CodingEncoder struct {
}

func NewCodingEncoder() *CodingEncoder {
	return &CodingEncoder{}
}

func (*CodingEncoder) Encode(text string, opts Options) (*Grid, error) {
	if text == "" {
		return nil, failure.Encoding("payload is empty")
	}

	if opts.Level < L || opts.Level > H {
		return nil, failure.Encodingf("unsupported error-correction level %v", opts.Level)
	}

	enc, err := selectEncoding(text, opts.Mode)
	if err != nil {
		return nil, err
	}

	level := coding.Level(opts.Level)
	version, err := smallestVersion(enc, level)
	if err != nil {
		return nil, err
	}

	masks, err := candidateMasks(opts.Mask)
	if err != nil {
		return nil, err
	}

	var best *Grid
	bestScore := 0
	for _, mask := range masks {
		plan, err := coding.NewPlan(version, level, coding.Mask(mask))
		if err != nil {
			return nil, failure.WrapEncoding(err, "failed to plan symbol")
		}

		code, err := plan.Encode(enc)
		if err != nil {
			return nil, failure.WrapEncoding(err, "failed to encode payload")
		}

		grid := newSymbol(code.Size, code.Black, int(version), opts.Level, mask)
		if len(masks) == 1 {
			return grid, nil
		}

		if score := Penalty(grid); best == nil || score < bestScore {
			best, bestScore = grid, score
		}
	}

	return best, nil
}

func selectEncoding(text string, mode Mode) (coding.Encoding, error) {
	switch mode {
	case ModeAuto:
		switch {
		case coding.Num(text).Check() == nil:
			return coding.Num(text), nil
		case coding.Alpha(text).Check() == nil:
			return coding.Alpha(text), nil
		default:
			return coding.String(text), nil
		}
	case ModeNumeric:
		enc := coding.Num(text)
		if err := enc.Check(); err != nil {
			return nil, failure.WrapEncoding(err, "payload contains characters unsupported in numeric mode")
		}
		return enc, nil
	case ModeAlphanumeric:
		enc := coding.Alpha(text)
		if err := enc.Check(); err != nil {
			return nil, failure.WrapEncoding(err, "payload contains characters unsupported in alphanumeric mode")
		}
		return enc, nil
	case ModeByte:
		return coding.String(text), nil
	}

	return nil, failure.Encodingf("unsupported encoding mode %v", mode)
}

func smallestVersion(enc coding.Encoding, level coding.Level) (coding.Version, error) {
	for v := coding.Version(coding.MinVersion); v <= coding.MaxVersion; v++ {
		if enc.Bits(v) <= v.DataBytes(level)*8 {
			return v, nil
		}
	}

	return 0, failure.Encodingf("payload exceeds the capacity of a version %d symbol at level %v", coding.MaxVersion, Level(level))
}

func candidateMasks(mask int) ([]int, error) {
	if mask == MaskAuto {
		return []int{0, 1, 2, 3, 4, 5, 6, 7}, nil
	}

	if mask < 0 || mask > 7 {
		return nil, failure.Encodingf("mask pattern %d is out of range", mask)
	}

	return []int{mask}, nil
}
