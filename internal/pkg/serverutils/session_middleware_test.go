package serverutils

import (
	"testing"

	"github.com/google/uuid"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	sid := uuid.New()

	token, err := SignSessionToken(secret, sid)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, err := ParseSessionToken(secret, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != sid {
		t.Errorf("session id = %s, want %s", got, sid)
	}
}

func TestSessionTokenRejectsWrongSecret(t *testing.T) {
	token, err := SignSessionToken("secret-a", uuid.New())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseSessionToken("secret-b", token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestSessionTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseSessionToken("secret", "not-a-token"); err == nil {
		t.Error("garbage token was accepted")
	}
}
