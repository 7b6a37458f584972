package qrcode

import (
	"encoding/json"
	"testing"

	"storefront/config"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func TestRecoveryLevel(t *testing.T) {
	tests := []struct {
		input string
		want  qrcode.RecoveryLevel
	}{
		{"L", qrcode.Low},
		{"m", qrcode.Medium},
		{"Q", qrcode.High},
		{"H", qrcode.Highest},
		{"invalid", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, recoveryLevel(tt.input))
		})
	}
}

func TestQRCodeService_GenerateCartQR(t *testing.T) {
	svc := NewQRCodeService(&config.Config{QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "H"}})

	qrBytes, err := svc.GenerateCartQR(uuid.New())
	require.NoError(t, err)
	require.Greater(t, len(qrBytes), len(pngMagic))
	assert.Equal(t, pngMagic, qrBytes[:len(pngMagic)])
}

func TestQRCodeService_DefaultsWithoutConfig(t *testing.T) {
	svc := NewQRCodeService(&config.Config{}).(*qrcodeService)

	assert.Equal(t, defaultSize, svc.size)
	assert.Equal(t, qrcode.Medium, svc.errorCorrectionLevel)
}

func TestQRCodeService_ParseCartQR(t *testing.T) {
	svc := NewQRCodeService(&config.Config{QRCode: &config.QRCodeConfig{BaseURL: "https://shop.example.com/"}})
	cartID := uuid.New()

	raw, err := json.Marshal(Payload{Type: "cart", CartID: cartID.String()})
	require.NoError(t, err)

	parsed, err := svc.ParseCartQR(string(raw))
	require.NoError(t, err)
	assert.Equal(t, cartID, parsed)

	tests := map[string]string{
		"not json":     "{",
		"wrong type":   `{"type":"subscription","cart_id":"` + cartID.String() + `"}`,
		"invalid uuid": `{"type":"cart","cart_id":"nope"}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseCartQR(input)
			assert.Error(t, err)
		})
	}
}
