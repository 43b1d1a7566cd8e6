package qrcode_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dmitrymomot/otpkit/pkg/qrcode"
	"github.com/dmitrymomot/otpkit/pkg/totp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("valid content", func(t *testing.T) {
		t.Parallel()
		png, err := qrcode.Generate("otpauth://totp/Acme:alice?secret=JBSWY3DPEHPK3PXP", 256)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, pngMagic), "output must be a PNG")
	})

	t.Run("default size on non-positive input", func(t *testing.T) {
		t.Parallel()
		png, err := qrcode.Generate("content", 0)
		require.NoError(t, err)
		assert.NotEmpty(t, png)
	})

	t.Run("empty content rejected", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.Generate("   ", 256)
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})
}

func TestGenerateBase64Image(t *testing.T) {
	t.Parallel()
	img, err := qrcode.GenerateBase64Image("content", 128)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(img, "data:image/png;base64,"))
}

func TestGenerateProvisioningQR(t *testing.T) {
	t.Parallel()

	t.Run("valid credential", func(t *testing.T) {
		t.Parallel()
		png, err := qrcode.GenerateProvisioningQR(totp.TOTPParams{
			Secret:      "JBSWY3DPEHPK3PXP",
			AccountName: "alice@example.com",
			Issuer:      "Acme",
		}, 256)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, pngMagic))
	})

	t.Run("invalid credential propagates validation error", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.GenerateProvisioningQR(totp.TOTPParams{AccountName: "alice"}, 256)
		assert.ErrorIs(t, err, totp.ErrMissingSecret)
	})
}
