// Package qrcode renders cart hand-off QR codes.
package qrcode

import (
	"encoding/json"
	"strings"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize = 256
	payloadType = "cart"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// Payload is the JSON encoded in a cart QR code.
type Payload struct {
	Type   string `json:"type"`
	CartID string `json:"cart_id"`
	URL    string `json:"url,omitempty"`
}

// NewQRCodeService builds the service from the qrcode config section.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, level, baseURL := defaultSize, "M", ""
	if cfg != nil && cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = cfg.QRCode.ErrorCorrectionLevel
		baseURL = strings.TrimRight(cfg.QRCode.BaseURL, "/")
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(level),
		baseURL:              baseURL,
	}
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToUpper(level) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GenerateCartQR renders a PNG whose payload names the cart and, when a base
// URL is configured, the cart resource URL.
func (s *qrcodeService) GenerateCartQR(cartID uuid.UUID) ([]byte, error) {
	payload := Payload{Type: payloadType, CartID: cartID.String()}
	if s.baseURL != "" {
		payload.URL = s.baseURL + "/store/carts/" + payload.CartID + "/"
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseCartQR parses QR code data and returns the cart ID
func (s *qrcodeService) ParseCartQR(qrData string) (uuid.UUID, error) {
	var data Payload
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to unmarshal QR code data")
	}
	if data.Type != payloadType {
		return uuid.Nil, errors.Errorf("invalid QR code type: %s", data.Type)
	}

	cartID, err := uuid.Parse(data.CartID)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse cart ID")
	}

	return cartID, nil
}
