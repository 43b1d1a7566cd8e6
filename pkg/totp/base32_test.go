package totp_test

import (
	"encoding/base32"
	"testing"

	"github.com/dmitrymomot/otpkit/pkg/totp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSecret(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		secret string
		want   []byte
	}{
		{
			name:   "Canonical secret",
			secret: "JBSWY3DPEHPK3PXP",
			want:   []byte{0x48, 0x65, 0x6c, 0x6c, 0x6f, 0x21, 0xde, 0xad, 0xbe, 0xef},
		},
		{
			name:   "Lowercase input",
			secret: "jbswy3dpehpk3pxp",
			want:   []byte{0x48, 0x65, 0x6c, 0x6c, 0x6f, 0x21, 0xde, 0xad, 0xbe, 0xef},
		},
		{
			name:   "Whitespace and padding stripped",
			secret: "JBSW Y3DP EHPK 3PXP====",
			want:   []byte{0x48, 0x65, 0x6c, 0x6c, 0x6f, 0x21, 0xde, 0xad, 0xbe, 0xef},
		},
		{
			name:   "Empty input",
			secret: "",
			want:   []byte{},
		},
		{
			name:   "Fully invalid input",
			secret: "!!!???///111",
			want:   []byte{},
		},
		{
			name:   "Trailing partial byte discarded",
			secret: "A",
			want:   []byte{},
		},
		{
			name:   "Two characters yield one byte",
			secret: "ME",
			want:   []byte{0x61},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, totp.DecodeSecret(tt.secret))
		})
	}
}

func TestDecodeSecretLength(t *testing.T) {
	t.Parallel()
	// Decoded byte count must be floor(5n/8) for n valid characters.
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"
	for n := 0; n <= 64; n++ {
		input := ""
		for i := range n {
			input += string(alphabet[i%len(alphabet)])
		}
		assert.Len(t, totp.DecodeSecret(input), 5*n/8, "n=%d", n)
	}
}

func TestDecodeSecretMatchesStdlib(t *testing.T) {
	t.Parallel()
	// For canonical unpadded input the lenient decoder must agree with
	// encoding/base32.
	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)

	want, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	require.NoError(t, err)

	assert.Equal(t, want, totp.DecodeSecret(secret))
}
