package authenticator

import "github.com/dmitrymomot/otpkit/pkg/totp"

// Account is one enrolled OTP credential. Digits and Period are fixed at
// enrollment time and never mutated afterwards; only deletion changes the set
// of accounts. The JSON shape is the persisted document format.
type Account struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Secret string `json:"secret"`
	Digits int    `json:"digits"`
	Period int    `json:"period"`
}

// AccountParams carries user-supplied enrollment input for Vault.Add.
type AccountParams struct {
	Name   string
	Issuer string
	Secret string // Base32-encoded shared key, whitespace tolerated
	Digits int    // defaults to 6
	Period int    // defaults to 30, in seconds
}

// URI renders the account as an otpauth key URI for export or QR provisioning.
func (a Account) URI() (string, error) {
	return totp.GetTOTPURI(totp.TOTPParams{
		Secret:      a.Secret,
		AccountName: a.Name,
		Issuer:      a.Issuer,
		Digits:      a.Digits,
		Period:      a.Period,
	})
}
