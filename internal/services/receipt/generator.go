// Package receipt renders a PDF order summary with a PIX payment QR code.
package receipt

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/passionatedev1128/everwell-sub001/internal/models"
	"github.com/skip2/go-qrcode"
)

// Config holds the merchant details printed on every receipt
type Config struct {
	PixKey       string
	MerchantName string
}

// Generate creates an A4 receipt for the order: header, line table, frozen
// total and a PIX QR encoding key, amount and order reference.
func Generate(order *models.Order, cfg Config) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, cfg.MerchantName)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Order %s", order.OrderNumber))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Placed on %s", order.CreatedAt.Format("02/01/2006 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(10)

	// Line table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, line := range order.Lines {
		pdf.CellFormat(90, 7, line.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", line.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, FormatBRL(line.UnitPriceCents), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, FormatBRL(line.SubtotalCents()), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(145, 9, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(35, 9, FormatBRL(order.TotalCents), "T", 1, "R", false, 0, "")
	pdf.Ln(6)

	// Shipping block
	addr := order.ShippingAddress
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, "Ship to")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 5, fmt.Sprintf("%s, %s %s", addr.Street, addr.Number, addr.Complement))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("%s - %s/%s - %s", addr.District, addr.City, addr.State, addr.PostalCode))
	pdf.Ln(10)

	// PIX QR block
	if cfg.PixKey != "" {
		payload := fmt.Sprintf("PIX|%s|%d|%s", cfg.PixKey, order.TotalCents, order.OrderNumber)
		qrPng, err := qrcode.Encode(payload, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("failed to generate payment QR: %w", err)
		}

		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader("pix_qr", opts, bytes.NewReader(qrPng))

		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, "Pay with PIX")
		pdf.Ln(7)
		y := pdf.GetY()
		pdf.ImageOptions("pix_qr", 15, y, 40, 40, false, opts, 0, "")
		pdf.SetXY(60, y+5)
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(120, 5, fmt.Sprintf(
			"Scan the code to pay %s to %s.\nAfter paying, upload the receipt in your orders page so we can confirm the payment.",
			FormatBRL(order.TotalCents), cfg.MerchantName), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatBRL renders integer cents as Brazilian currency, e.g. R$ 45,00
func FormatBRL(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	reais := cents / 100
	rest := cents % 100

	// Thousands separator
	intPart := fmt.Sprintf("%d", reais)
	var out []byte
	for i, d := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, string(out), rest)
}
