package totp_test

import (
	"testing"

	"github.com/dmitrymomot/otpkit/pkg/totp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURI(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		uri     string
		want    totp.TOTPParams
		wantErr error
	}{
		{
			name: "Issuer label and issuer parameter",
			uri:  "otpauth://totp/Google:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Google",
			want: totp.TOTPParams{
				Secret:      "JBSWY3DPEHPK3PXP",
				AccountName: "alice@example.com",
				Issuer:      "Google",
				Algorithm:   "SHA1",
				Digits:      6,
				Period:      30,
			},
		},
		{
			name: "Issuer parameter wins over label prefix",
			uri:  "otpauth://totp/LabelIssuer:bob?secret=ABCDEFGH&issuer=ParamIssuer",
			want: totp.TOTPParams{
				Secret:      "ABCDEFGH",
				AccountName: "bob",
				Issuer:      "ParamIssuer",
				Algorithm:   "SHA1",
				Digits:      6,
				Period:      30,
			},
		},
		{
			name: "Label prefix used when parameter absent",
			uri:  "otpauth://totp/Acme:carol?secret=ABCDEFGH",
			want: totp.TOTPParams{
				Secret:      "ABCDEFGH",
				AccountName: "carol",
				Issuer:      "Acme",
				Algorithm:   "SHA1",
				Digits:      6,
				Period:      30,
			},
		},
		{
			name: "Percent-encoded label",
			uri:  "otpauth://totp/Big%20Corp:dave%40example.com?secret=ABCDEFGH",
			want: totp.TOTPParams{
				Secret:      "ABCDEFGH",
				AccountName: "dave@example.com",
				Issuer:      "Big Corp",
				Algorithm:   "SHA1",
				Digits:      6,
				Period:      30,
			},
		},
		{
			name: "Custom digits and period",
			uri:  "otpauth://totp/eve?secret=ABCDEFGH&digits=8&period=60",
			want: totp.TOTPParams{
				Secret:      "ABCDEFGH",
				AccountName: "eve",
				Algorithm:   "SHA1",
				Digits:      8,
				Period:      60,
			},
		},
		{
			name: "Missing secret defaults to empty",
			uri:  "otpauth://totp/frank",
			want: totp.TOTPParams{
				AccountName: "frank",
				Algorithm:   "SHA1",
				Digits:      6,
				Period:      30,
			},
		},
		{
			name: "Unparseable digits fall back to default",
			uri:  "otpauth://totp/grace?secret=ABCDEFGH&digits=abc&period=-5",
			want: totp.TOTPParams{
				Secret:      "ABCDEFGH",
				AccountName: "grace",
				Algorithm:   "SHA1",
				Digits:      6,
				Period:      30,
			},
		},
		{
			name:    "HOTP rejected",
			uri:     "otpauth://hotp/Acme:henry?secret=ABCDEFGH&counter=5",
			wantErr: totp.ErrUnsupportedOTPType,
		},
		{
			name:    "Wrong scheme",
			uri:     "https://totp/Acme:iris?secret=ABCDEFGH",
			wantErr: totp.ErrInvalidURI,
		},
		{
			name:    "Not a URI at all",
			uri:     "not a uri",
			wantErr: totp.ErrInvalidURI,
		},
		{
			name:    "Empty string",
			uri:     "",
			wantErr: totp.ErrInvalidURI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := totp.ParseURI(tt.uri)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
