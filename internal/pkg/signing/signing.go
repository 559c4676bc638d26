// Package signing implements the webhook payload signature scheme: hex
// HMAC-SHA256 over the canonical JSON serialization of the payload, keyed by
// the subscriber's secret. Receivers recompute the signature from the body
// they received and compare against the X-Webhook-Signature header.
package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Canonical serializes payload to its canonical JSON form. encoding/json
// sorts object keys, so equal payloads always produce identical bytes.
func Canonical(payload map[string]any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("signing: canonicalize payload: %w", err)
	}

	return body, nil
}

// Sign returns the hex HMAC-SHA256 of the canonical payload under secret.
func Sign(payload map[string]any, secret string) (string, error) {
	body, err := Canonical(payload)
	if err != nil {
		return "", err
	}

	return SignBytes(body, secret), nil
}

// SignBytes signs an already-serialized body.
func SignBytes(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)

	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches payload under secret. The
// comparison is constant time; a short-circuiting string equality would leak
// how much of a forged signature is correct.
func Verify(payload map[string]any, signature, secret string) bool {
	expected, err := Sign(payload, secret)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
