// Package totp implements Time-based One-Time Passwords (RFC 6238) on top of
// the HOTP primitive (RFC 4226), together with the surrounding plumbing an
// authenticator needs: a lenient Base32 secret codec, otpauth key URI parsing
// and construction, and AES-256-GCM helpers for encrypting secrets at rest.
//
// By keeping functionality self-contained the package eliminates direct
// dependencies on third-party TOTP libraries while remaining interoperable
// with Google Authenticator, 1Password and compatible applications.
//
// # Two generation surfaces
//
// The package deliberately exposes both a strict and a permissive surface.
//
//   - Strict: GenerateTOTP, GenerateTOTPWithTime and ValidateTOTP require a
//     well-formed Base32 secret and return sentinel errors otherwise. Use
//     these wherever a code is checked, or where a bad secret should be
//     surfaced to the user.
//
//   - Permissive: GenerateCode never fails. The secret runs through the
//     lenient DecodeSecret (invalid characters stripped, trailing bits
//     discarded) and the result is always a zero-padded decimal string of the
//     requested length. Display layers rely on this to stay responsive in the
//     face of garbage input; real validation belongs at the enrollment
//     boundary (TOTPParams.Validate, the authenticator vault).
//
// # Key URIs
//
// ParseURI and GetTOTPURI convert between TOTPParams and the Key Uri Format
// understood by authenticator apps:
//
//	otpauth://totp/Issuer:account?secret=BASE32&issuer=Issuer&digits=6&period=30
//
// Only totp URIs are accepted; hotp import is unsupported.
//
// # Encryption at rest
//
// EncryptSecret and DecryptSecret wrap AES-256-GCM for persisting secrets or
// whole account documents. The key is a base64-encoded 32-byte value loaded
// from TOTP_ENCRYPTION_KEY via LoadConfig and GetEncryptionKey.
//
// # Error Handling
//
// Every exported operation returns a descriptive error that may be wrapped
// using errors.Join. Inspect errors with errors.Is against package level
// sentinels such as ErrInvalidSecret, ErrInvalidURI, ErrUnsupportedOTPType.
//
// # See Also
//
//   - RFC 4226 – HMAC-Based One-Time Password (HOTP) Algorithm
//   - RFC 6238 – Time-Based One-Time Password (TOTP) Algorithm
package totp
