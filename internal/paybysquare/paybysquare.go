// Package paybysquare encodes payment data into the Pay by Square
// string printed as a QR code on Slovak invoices.
package paybysquare

import (
	"bytes"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"
	"time"

	"github.com/ulikunitz/xz/lzma"
)

// Payment describes a single bank transfer request.
type Payment struct {
	Amount         float64
	Currency       string
	VariableSymbol string
	ConstantSymbol string
	SpecificSymbol string
	Note           string
	IBAN           string
	BIC            string
	DueDate        time.Time
}

const lzmaHeaderSize = 13 // props byte, dict size, uncompressed size

var base32hex = base32.HexEncoding.WithPadding(base32.NoPadding)

// Encode produces the uppercase base32hex string for Payment. Banking
// apps decode it back after scanning the QR code.
func Encode(p Payment) (string, error) {
	if p.IBAN == "" {
		return "", fmt.Errorf("paybysquare: IBAN is required")
	}
	currency := p.Currency
	if currency == "" {
		currency = "EUR"
	}
	dueDate := ""
	if !p.DueDate.IsZero() {
		dueDate = p.DueDate.Format("20060102")
	}

	fields := []string{
		"",  // invoice id
		"1", // number of payments
		"1", // payment option: payment order
		fmt.Sprintf("%.2f", p.Amount),
		currency,
		dueDate,
		p.VariableSymbol,
		p.ConstantSymbol,
		p.SpecificSymbol,
		"", // originator reference
		p.Note,
		"1", // number of accounts
		p.IBAN,
		p.BIC,
		"0", // standing order
		"0", // direct debit
		"",  // beneficiary name
		"",  // beneficiary address 1
		"",  // beneficiary address 2
	}
	data := []byte(strings.Join(fields, "\t"))

	payload := make([]byte, 4+len(data))
	binary.LittleEndian.PutUint32(payload, crc32.ChecksumIEEE(data))
	copy(payload[4:], data)

	compressed, err := compress(payload)
	if err != nil {
		return "", fmt.Errorf("paybysquare: compress: %w", err)
	}

	// 2-byte header (type, version, document type, reserved nibbles)
	// followed by the decompressed payload length, little-endian.
	out := make([]byte, 4, 4+len(compressed))
	binary.LittleEndian.PutUint16(out[2:], uint16(len(payload)))
	out = append(out, compressed...)

	return base32hex.EncodeToString(out), nil
}

// compress runs raw LZMA with a 128 KiB dictionary and strips the
// stream header; the decoder side supplies fixed parameters instead.
func compress(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	cfg := lzma.WriterConfig{
		DictCap: 128 * 1024,
		Size:    int64(len(payload)),
	}
	w, err := cfg.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(payload); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	raw := buf.Bytes()
	if len(raw) < lzmaHeaderSize {
		return nil, fmt.Errorf("lzma stream too short")
	}
	return raw[lzmaHeaderSize:], nil
}
