package totp

import "strings"

// base32Alphabet is the RFC 4648 Base32 alphabet in index order.
const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// DecodeSecret decodes a Base32 secret into raw HMAC key bytes.
//
// Unlike encoding/base32 this decoder is deliberately lenient: the input is
// upper-cased and every character outside the RFC 4648 alphabet A-Z2-7
// (padding, whitespace, separators) is dropped before decoding. Retained
// characters are converted to 5-bit groups, concatenated, and re-grouped into
// bytes; trailing bits that do not fill a complete byte are discarded.
//
// DecodeSecret never fails. An empty or fully invalid input decodes to an
// empty key. Callers that need to reject malformed secrets must validate
// before decoding (see ValidateSecretKeyRegex).
func DecodeSecret(secret string) []byte {
	secret = strings.ToUpper(secret)

	// Output length is floor(5n/8) for n valid characters.
	buf := make([]byte, 0, len(secret)*5/8)

	var bits uint
	var acc uint32
	for _, r := range secret {
		idx := strings.IndexRune(base32Alphabet, r)
		if idx < 0 {
			continue
		}
		acc = acc<<5 | uint32(idx)
		bits += 5
		if bits >= 8 {
			bits -= 8
			buf = append(buf, byte(acc>>bits))
			acc &= 1<<bits - 1
		}
	}

	return buf
}
