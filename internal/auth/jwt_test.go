package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestManager_IssueVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, exp, err := m.Issue("sid-1", 42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry should be in the future: %v", exp)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.SessionID != "sid-1" || claims.Subject != "42" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestManager_VerifyRejects(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	other, _, _ := NewManager("other-secret", time.Hour).Issue("sid", 1)
	expired, _, _ := NewManager("test-secret", -time.Minute).Issue("sid", 1)

	wrongType, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		SessionID: "sid",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))

	noneAlg, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		SessionID: "sid",
		TokenType: tokenTypeSession,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong secret", other},
		{"expired", expired},
		{"wrong type", wrongType},
		{"none alg", noneAlg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
