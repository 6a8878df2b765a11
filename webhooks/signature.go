package webhooks

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// GitHub signs webhook bodies with HMAC-SHA1 and sends the hex digest as
// "sha1=<hex>" in the X-Hub-Signature header.
const signatureAlgorithm = "sha1"

// HubSignatureVerifier validates the X-Hub-Signature header of a GitHub
// webhook delivery. With an empty Secret, or a missing header while
// RequireSignature is unset, verification is skipped; that permissive mode is
// a local-development convenience, not a security feature.
type HubSignatureVerifier struct {
	Secret           string
	RequireSignature bool
}

func (v HubSignatureVerifier) Verify(_ context.Context, body []byte, signatureHeader string) error {
	secret := strings.TrimSpace(v.Secret)
	header := strings.TrimSpace(signatureHeader)

	if secret == "" {
		if v.RequireSignature {
			return badSignatureError("webhooks: signature required but no secret is configured")
		}
		return nil
	}
	if header == "" {
		if v.RequireSignature {
			return badSignatureError("webhooks: signature header is required")
		}
		return nil
	}

	algorithm, digest, found := strings.Cut(header, "=")
	if !found || digest == "" {
		return badSignatureError(fmt.Sprintf("webhooks: malformed signature header %q", header))
	}
	// GitHub sends exactly "sha1=<hex>"; any other token is rejected as-is.
	if algorithm != signatureAlgorithm {
		return badSignatureError(fmt.Sprintf("webhooks: unsupported signature algorithm %q", algorithm))
	}

	provided, err := hex.DecodeString(digest)
	if err != nil {
		return badSignatureError("webhooks: signature digest is not valid hex")
	}

	mac := hmac.New(sha1.New, []byte(secret))
	_, _ = mac.Write(body)
	expected := mac.Sum(nil)

	if subtle.ConstantTimeCompare(provided, expected) != 1 {
		return badSignatureError("webhooks: signature verification failed")
	}
	return nil
}
