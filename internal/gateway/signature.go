package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignatureHeader is the header carrying the webhook HMAC.
const SignatureHeader = "Coursepay-Signature"

// VerifySignature checks the webhook signature header against the raw body.
// The header format is "v1=<hex hmac-sha256 of the body>". Verification is
// constant-time; an empty secret never verifies.
func VerifySignature(body []byte, header string, secret []byte) bool {
	if len(secret) == 0 {
		return false
	}

	sig, ok := strings.CutPrefix(header, "v1=")
	if !ok {
		return false
	}

	got, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(body)

	return hmac.Equal(got, mac.Sum(nil))
}

// Sign computes the signature header value for a body, used by tests and by
// local tooling that replays webhook payloads.
func Sign(body, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)

	return "v1=" + hex.EncodeToString(mac.Sum(nil))
}
