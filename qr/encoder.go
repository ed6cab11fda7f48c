package qr

import "fmt"

// Encoder turns a text payload into a QR symbol.
type Encoder interface {
	// Encode builds the symbol for text. Payloads that cannot be represented
	// with opts fail with a failure.KindEncoding error.
	Encode(text string, opts Options) (*Grid, error)
}

const (
	BackendCoding = "coding"
	BackendSkip2  = "skip2"
)

// NewEncoder resolves a backend name to an Encoder. An empty name selects the
// coding backend.
func NewEncoder(backend string) (Encoder, error) {
	switch backend {
	case "", BackendCoding:
		return NewCodingEncoder(), nil
	case BackendSkip2:
		return NewSkipEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoder backend: %v", backend)
	}
}
