package receipt

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Data holds everything printed on a rent payment receipt.
type Data struct {
	TransactionID string
	PaymentMethod string
	Amount        float64
	PaidAt        time.Time

	TenantName string
	TenantNID  string
	OwnerName  string
	OwnerNID   string

	PropertyTitle   string
	PropertyAddress string
	PropertyCity    string

	StartDate time.Time
	EndDate   time.Time
}

const (
	imageWidth = 640
	lineHeight = 18
	marginLeft = 24
	marginTop  = 48
)

// Render draws the receipt as a PNG image.
func Render(d Data) ([]byte, error) {
	lines := []string{
		"RENTNEST RENT PAYMENT RECEIPT",
		"",
		fmt.Sprintf("Transaction ID: %s", d.TransactionID),
		fmt.Sprintf("Payment method: %s", d.PaymentMethod),
		fmt.Sprintf("Amount paid:    %.2f", d.Amount),
		fmt.Sprintf("Paid at:        %s", d.PaidAt.Format("2006-01-02 15:04 MST")),
		"",
		fmt.Sprintf("Tenant: %s (NID %s)", d.TenantName, d.TenantNID),
		fmt.Sprintf("Owner:  %s (NID %s)", d.OwnerName, d.OwnerNID),
		"",
		fmt.Sprintf("Property: %s", d.PropertyTitle),
		fmt.Sprintf("Address:  %s, %s", d.PropertyAddress, d.PropertyCity),
		"",
		fmt.Sprintf("Rental period: %s to %s",
			d.StartDate.Format("2006-01-02"), d.EndDate.Format("2006-01-02")),
		"",
		"This receipt was generated automatically.",
	}

	height := marginTop + lineHeight*(len(lines)+2)
	img := image.NewRGBA(image.Rect(0, 0, imageWidth, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}

	y := marginTop
	for _, line := range lines {
		drawer.Dot = fixed.P(marginLeft, y)
		drawer.DrawString(line)
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode receipt png: %w", err)
	}
	return buf.Bytes(), nil
}
