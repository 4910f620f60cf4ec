// Package qr renders credential QR payloads as PNG images. Encoding is a pure
// function of the payload; no state is kept anywhere.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	// DefaultSize is the rendered image edge in pixels, sized for phone screens.
	DefaultSize = 320

	minSize = 128
	maxSize = 1024
)

// Encoder renders payload strings to PNG bytes.
type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodePNG renders the payload at the given edge size. Medium error
// correction matches what commodity phone cameras reliably decode.
func (e *Encoder) EncodePNG(payload string, size int) ([]byte, error) {
	if size < minSize || size > maxSize {
		size = DefaultSize
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return png, nil
}
