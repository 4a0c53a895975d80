package service

import "testing"

func TestSessionTokenRoundtrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	if err := ParseSessionToken(token); err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	InitJWT("test-secret")

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if err := ParseSessionToken(tok); err == nil {
			t.Fatalf("ParseSessionToken(%q) accepted", tok)
		}
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	InitJWT("secret-one")
	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatal(err)
	}

	InitJWT("secret-two")
	if err := ParseSessionToken(token); err == nil {
		t.Fatal("token signed with old secret accepted")
	}
}

func TestDisabledWithoutSecret(t *testing.T) {
	InitJWT("")

	if Enabled() {
		t.Fatal("Enabled() = true with empty secret")
	}
	if _, err := GenerateSessionToken(); err == nil {
		t.Fatal("GenerateSessionToken succeeded without secret")
	}
}
