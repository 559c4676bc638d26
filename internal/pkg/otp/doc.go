// Package otp generates and verifies one-time passwords.
//
// TOTP (RFC 6238) backs authenticator-app 2FA: Generate produces a base32
// shared secret plus the otpauth:// provisioning URI, and Validate checks a
// candidate code with a one-step skew in each direction so modest clock drift
// between the client and the server does not lock users out.
//
// NumericCode produces the one-shot 6-digit codes sent over email for account
// verification; expiry and single-use enforcement belong to the caller.
package otp
