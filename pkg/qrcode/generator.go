package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"

	"github.com/dmitrymomot/otpkit/pkg/totp"
)

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrFailedToGenerateQRCode = errors.New("failed to generate QR code")
)

// defaultSize is the size in pixels used when no size is specified
const defaultSize = 256

// Generate creates a QR code image in PNG format with the given content.
// Returns the image as a byte slice or an error if generation fails.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return png, nil
}

// GenerateBase64Image creates a base64 encoded data URI of a QR code with the
// given content, ready for direct embedding in an <img> tag.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}

// GenerateProvisioningQR renders the otpauth key URI for the given credential
// as a PNG QR code, the format authenticator apps scan during enrollment.
func GenerateProvisioningQR(params totp.TOTPParams, size int) ([]byte, error) {
	uri, err := totp.GetTOTPURI(params)
	if err != nil {
		return nil, err
	}
	return Generate(uri, size)
}
