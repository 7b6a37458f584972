package service

import (
	"github.com/google/uuid"
)

// QRCodeService encodes cart tokens as QR codes so a cart can move between devices.
type QRCodeService interface {
	// GenerateCartQR renders a PNG QR code pointing at the cart.
	GenerateCartQR(cartID uuid.UUID) ([]byte, error)

	// ParseCartQR extracts the cart id from QR payload data.
	ParseCartQR(qrData string) (uuid.UUID, error)
}
