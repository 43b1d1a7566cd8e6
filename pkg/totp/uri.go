package totp

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseURI parses an otpauth key URI into TOTP parameters.
//
// Only time-based credentials are supported: the scheme must be "otpauth" and
// the host exactly "totp" (an "hotp" URI is rejected with ErrUnsupportedOTPType).
// The label is the percent-decoded path without its leading slash; a
// "Issuer:account" label is split on the first colon. A non-empty issuer query
// parameter takes precedence over the label-derived issuer. Missing digits and
// period default to 6 and 30. A missing secret is returned as an empty string;
// enrollment layers are expected to reject it.
func ParseURI(uri string) (TOTPParams, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return TOTPParams{}, ErrInvalidURI
	}
	if u.Scheme != "otpauth" {
		return TOTPParams{}, ErrInvalidURI
	}
	if u.Host != "totp" {
		return TOTPParams{}, ErrUnsupportedOTPType
	}

	label, err := url.PathUnescape(strings.TrimPrefix(u.EscapedPath(), "/"))
	if err != nil {
		return TOTPParams{}, ErrInvalidURI
	}

	params := TOTPParams{
		AccountName: label,
		Algorithm:   DefaultAlgorithm,
		Digits:      DefaultDigits,
		Period:      DefaultPeriod,
	}

	// Label issuer prefix is a fallback; the query parameter wins when set.
	if issuer, name, ok := strings.Cut(label, ":"); ok {
		params.Issuer = issuer
		params.AccountName = name
	}

	q := u.Query()
	if issuer := q.Get("issuer"); issuer != "" {
		params.Issuer = issuer
	}
	params.Secret = q.Get("secret")
	if algorithm := q.Get("algorithm"); algorithm != "" {
		params.Algorithm = strings.ToUpper(algorithm)
	}
	if digits, err := strconv.Atoi(q.Get("digits")); err == nil && digits > 0 {
		params.Digits = digits
	}
	if period, err := strconv.Atoi(q.Get("period")); err == nil && period > 0 {
		params.Period = period
	}

	return params, nil
}
