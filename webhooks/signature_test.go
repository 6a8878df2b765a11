package webhooks

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repo-activity/core"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha1.New, []byte(secret))
	_, _ = mac.Write(body)
	return "sha1=" + hex.EncodeToString(mac.Sum(nil))
}

func TestHubSignatureVerifier_SkipsWithoutSecret(t *testing.T) {
	verifier := HubSignatureVerifier{}
	if err := verifier.Verify(context.Background(), []byte("any body"), "sha1=deadbeef"); err != nil {
		t.Fatalf("expected skip without secret, got %v", err)
	}
}

func TestHubSignatureVerifier_SkipsWithoutHeaderInPermissiveMode(t *testing.T) {
	verifier := HubSignatureVerifier{Secret: "s3cret"}
	if err := verifier.Verify(context.Background(), []byte("any body"), ""); err != nil {
		t.Fatalf("expected skip without header, got %v", err)
	}
}

func TestHubSignatureVerifier_RequiresHeaderWhenConfigured(t *testing.T) {
	verifier := HubSignatureVerifier{Secret: "s3cret", RequireSignature: true}
	err := verifier.Verify(context.Background(), []byte("any body"), "")
	if err == nil {
		t.Fatalf("expected missing header rejection")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.TextCode != core.ErrorCodeBadSignature {
		t.Fatalf("expected bad signature envelope, got %v", err)
	}
}

func TestHubSignatureVerifier_AcceptsMatchingDigest(t *testing.T) {
	body := []byte(`{"ref":"refs/heads/main"}`)
	verifier := HubSignatureVerifier{Secret: "s3cret", RequireSignature: true}
	if err := verifier.Verify(context.Background(), body, signBody("s3cret", body)); err != nil {
		t.Fatalf("expected matching signature to verify, got %v", err)
	}
}

func TestHubSignatureVerifier_RejectsFlippedDigest(t *testing.T) {
	body := []byte(`{"ref":"refs/heads/main"}`)
	header := signBody("s3cret", body)

	// flip the last hex character
	last := header[len(header)-1]
	flipped := byte('0')
	if last == '0' {
		flipped = '1'
	}
	tampered := header[:len(header)-1] + string(flipped)

	verifier := HubSignatureVerifier{Secret: "s3cret", RequireSignature: true}
	if err := verifier.Verify(context.Background(), body, tampered); err == nil {
		t.Fatalf("expected tampered signature rejection")
	}
}

func TestHubSignatureVerifier_RejectsMalformedHeaders(t *testing.T) {
	verifier := HubSignatureVerifier{Secret: "s3cret", RequireSignature: true}
	body := []byte("payload")

	validDigest := signBody("s3cret", body)[len("sha1="):]

	for _, header := range []string{
		"sha1",
		"sha1=",
		"=abcdef",
		"sha256=" + validDigest,
		"sha1=not-hex",
		"SHA1=" + validDigest,
		"sha1 = " + validDigest,
	} {
		if err := verifier.Verify(context.Background(), body, header); err == nil {
			t.Fatalf("expected rejection for header %q", header)
		}
	}
}
