package paybysquare

import (
	"strings"
	"testing"
	"time"
)

func TestEncodeRequiresIBAN(t *testing.T) {
	_, err := Encode(Payment{Amount: 10})
	if err == nil {
		t.Fatal("expected error for missing IBAN")
	}
}

func TestEncodeProducesBase32Hex(t *testing.T) {
	code, err := Encode(Payment{
		Amount:         123.45,
		VariableSymbol: "20260001",
		Note:           "Faktura 20260001",
		IBAN:           "SK2202000000001572951551",
		DueDate:        time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if code == "" {
		t.Fatal("empty code")
	}

	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUV"
	for _, r := range code {
		if !strings.ContainsRune(alphabet, r) {
			t.Fatalf("character %q outside base32hex alphabet", r)
		}
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	p := Payment{
		Amount:         50,
		VariableSymbol: "20260002",
		IBAN:           "SK2202000000001572951551",
	}
	a, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if a != b {
		t.Errorf("same payment encoded differently:\n%s\n%s", a, b)
	}
}

func TestEncodeDistinguishesPayments(t *testing.T) {
	a, err := Encode(Payment{Amount: 10, VariableSymbol: "1", IBAN: "SK2202000000001572951551"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := Encode(Payment{Amount: 20, VariableSymbol: "1", IBAN: "SK2202000000001572951551"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if a == b {
		t.Error("different amounts encoded identically")
	}
}
