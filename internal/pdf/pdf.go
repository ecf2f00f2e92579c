// Package pdf renders the printable documents of the order flow:
// invoices, production label sheets and production summaries.
package pdf

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	qrcode "github.com/skip2/go-qrcode"
)

// qrPNG renders text into a QR code PNG.
func qrPNG(text string, size int) ([]byte, error) {
	data, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return data, nil
}

// barcodePNG renders text as a Code 128 barcode PNG.
func barcodePNG(text string, width, height int) ([]byte, error) {
	code, err := code128.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("encode barcode: %w", err)
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, fmt.Errorf("scale barcode: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("png barcode: %w", err)
	}
	return buf.Bytes(), nil
}
