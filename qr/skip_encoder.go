package qr

import (
	"github.com/jrh3k5/qrsvg/failure"
	qrcode "github.com/skip2/go-qrcode"
)

// SkipEncoder builds symbols with github.com/skip2/go-qrcode. The library
// chooses segment modes and the mask itself, so only ModeAuto and MaskAuto
// are accepted.
type SkipEncoder struct {
}

func NewSkipEncoder() *SkipEncoder {
	return &SkipEncoder{}
}

func (*SkipEncoder) Encode(text string, opts Options) (*Grid, error) {
	if text == "" {
		return nil, failure.Encoding("payload is empty")
	}

	if opts.Mode != ModeAuto {
		return nil, failure.Encodingf("the %s backend cannot force %v mode", BackendSkip2, opts.Mode)
	}

	if opts.Mask != MaskAuto {
		return nil, failure.Encodingf("the %s backend cannot force mask pattern %d", BackendSkip2, opts.Mask)
	}

	recovery, err := recoveryLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	code, err := qrcode.New(text, recovery)
	if err != nil {
		return nil, failure.WrapEncoding(err, "failed to encode payload")
	}
	code.DisableBorder = true

	bitmap := code.Bitmap()
	dark := func(x, y int) bool {
		return bitmap[y][x]
	}

	return newSymbol(len(bitmap), dark, code.VersionNumber, opts.Level, MaskAuto), nil
}

func recoveryLevel(level Level) (qrcode.RecoveryLevel, error) {
	switch level {
	case L:
		return qrcode.Low, nil
	case M:
		return qrcode.Medium, nil
	case Q:
		return qrcode.High, nil
	case H:
		return qrcode.Highest, nil
	}

	return 0, failure.Encodingf("unsupported error-correction level %v", level)
}
