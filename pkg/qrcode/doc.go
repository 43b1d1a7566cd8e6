// Package qrcode renders provisioning QR codes for OTP credentials.
//
// Authenticator apps enroll accounts by scanning an otpauth key URI encoded
// as a QR image; GenerateProvisioningQR produces that image directly from
// totp.TOTPParams, while Generate and GenerateBase64Image encode arbitrary
// content for other display surfaces.
package qrcode
