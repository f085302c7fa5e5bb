package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tripcart/globals"
)

func signToken(t *testing.T, userID string) string {
	t.Helper()
	claims := &Claims{
		UserID:    userID,
		Anonymous: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestValidateJWTAcceptsRawAndBearerTokens(t *testing.T) {
	raw := signToken(t, "anon_abc123")

	for _, tok := range []string{raw, "Bearer " + raw} {
		claims, err := ValidateJWT(tok)
		if err != nil {
			t.Fatalf("ValidateJWT(%q): %v", tok[:12], err)
		}
		if claims.UserID != "anon_abc123" {
			t.Errorf("UserID = %q", claims.UserID)
		}
	}
}

func TestValidateJWTRejectsBadTokens(t *testing.T) {
	for _, tok := range []string{"", "Bearer ", "Bearer garbage", "short"} {
		if _, err := ValidateJWT(tok); err == nil {
			t.Errorf("ValidateJWT(%q): expected error", tok)
		}
	}
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	claims := &Claims{
		UserID: "anon_xyz",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ValidateJWT(tok); err == nil {
		t.Error("expected error for expired token")
	}
}
