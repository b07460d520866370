// Package qr renders booking receipts as QR code PNGs.
package qr

import (
	"fmt"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// Receipt is the content encoded on a booking QR code. It is informational only and
// carries no signature.
type Receipt struct {
	BookingID  int64
	UserName   string
	VendorName string
	VisitDate  time.Time
	Status     string
}

func (r Receipt) Payload() string {
	vendor := r.VendorName
	if vendor == "" {
		vendor = "(removed)"
	}

	var b strings.Builder
	b.WriteString("SheSafe booking\n")
	fmt.Fprintf(&b, "Booking ID: %d\n", r.BookingID)
	fmt.Fprintf(&b, "User: %s\n", r.UserName)
	fmt.Fprintf(&b, "Vendor: %s\n", vendor)
	fmt.Fprintf(&b, "Visit: %s\n", r.VisitDate.UTC().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Status: %s", r.Status)
	return b.String()
}

// PNG encodes the receipt payload at the given pixel size (DefaultSize when <= 0).
func PNG(r Receipt, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(r.Payload(), qrcode.Medium, size)
}
