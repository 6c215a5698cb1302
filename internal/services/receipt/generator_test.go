package receipt

import (
	"bytes"
	"testing"
	"time"

	"github.com/passionatedev1128/everwell-sub001/internal/models"
)

func testOrder() *models.Order {
	return &models.Order{
		ID:          "order-1",
		OrderNumber: "EW20260829-A1B2C3",
		UserID:      "user-1",
		Status:      models.OrderStatusPending,
		TotalCents:  42300,
		ShippingAddress: models.ShippingAddress{
			Street: "Rua Augusta", Number: "100", District: "Consolacao",
			City: "Sao Paulo", State: "SP", PostalCode: "01304-000",
		},
		Lines: []models.OrderLine{
			{Name: "CBD Oil 10%", Quantity: 2, UnitPriceCents: 18900},
			{Name: "Hemp Balm", Quantity: 1, UnitPriceCents: 4500},
		},
		CreatedAt: time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC),
	}
}

func TestGenerate(t *testing.T) {
	cfg := Config{PixKey: "pix@everwell.com.br", MerchantName: "Everwell"}

	data, err := Generate(testOrder(), cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("Output is not a PDF, starts with %q", data[:min(len(data), 8)])
	}
	if len(data) < 1024 {
		t.Errorf("PDF suspiciously small: %d bytes", len(data))
	}
}

func TestGenerate_WithoutPixKey(t *testing.T) {
	data, err := Generate(testOrder(), Config{MerchantName: "Everwell"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Output is not a PDF")
	}
}

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
		{4500, "R$ 45,00"},
		{42300, "R$ 423,00"},
		{123456789, "R$ 1.234.567,89"},
		{-4500, "-R$ 45,00"},
	}
	for _, tc := range cases {
		if got := FormatBRL(tc.cents); got != tc.want {
			t.Errorf("FormatBRL(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}
