package utils

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("admin_abc123", "test-secret")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	claims, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.PrincipalID != "admin_abc123" {
		t.Errorf("PrincipalID = %q, want admin_abc123", claims.PrincipalID)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("user_x", "secret-a")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseJWT(token, "secret-b"); err == nil {
		t.Error("ParseJWT with wrong secret succeeded")
	}
}

func TestJWTGarbageToken(t *testing.T) {
	if _, err := ParseJWT("not.a.token", "secret"); err == nil {
		t.Error("ParseJWT on garbage succeeded")
	}
}
