package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signBody(t *testing.T, key, timestamp string, body []byte) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(timestamp + "."))
	mac.Write(body)
	return "t=" + timestamp + ",v1=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":"invitee.created"}`)
	header := signBody(t, "secret", "1756700000", body)

	if err := VerifySignature(header, body, "secret"); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
	if err := VerifySignature(header, body, "other-key"); err == nil {
		t.Fatalf("wrong key accepted")
	}
	if err := VerifySignature(header, []byte(`{"event":"tampered"}`), "secret"); err == nil {
		t.Fatalf("tampered body accepted")
	}
	if err := VerifySignature("v1=deadbeef", body, "secret"); err == nil {
		t.Fatalf("header without timestamp accepted")
	}
	if err := VerifySignature("", body, "secret"); err == nil {
		t.Fatalf("empty header accepted")
	}
}
