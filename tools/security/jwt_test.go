package security

import (
	"testing"
	"time"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	opts := DefaultOptions([]byte("secret"))
	token, exp, err := Generate(opts, 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatal("expiry must be in the future")
	}
	claims, err := Verify(opts, token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	uid, err := claims.UserID()
	if err != nil || uid != 7 {
		t.Fatalf("subject = %d, %v", uid, err)
	}
}

func TestVerifyRejects(t *testing.T) {
	opts := DefaultOptions([]byte("secret"))
	token, _, _ := Generate(opts, 7)

	if _, err := Verify(DefaultOptions([]byte("other")), token); err == nil {
		t.Fatal("wrong secret must fail")
	}
	if _, err := Verify(opts, token+"x"); err == nil {
		t.Fatal("tampered token must fail")
	}

	expired := opts
	expired.TTL = -time.Hour
	tok, _, err := Generate(expired, 7)
	if err != nil {
		t.Fatalf("generate expired: %v", err)
	}
	if _, err := Verify(opts, tok); err == nil {
		t.Fatal("expired token must fail")
	}
}

func TestUnsupportedAlg(t *testing.T) {
	opts := Options{Secret: []byte("s"), Alg: "RS256"}
	if _, _, err := Generate(opts, 7); err == nil {
		t.Fatal("RS256 must be rejected")
	}
}
