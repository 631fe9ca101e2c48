package tests

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/IvanChernomyrdin/go-authgate/internal/authgate"
)

func testConfig() authgate.Config {
	return authgate.Config{
		SigningKey:    "supersecretkeysupersecretkey123456",
		EncryptionKey: "encryption-secret",
	}
}

type payload struct {
	Role string `json:"role"`
}

// Успешный выпуск и проверка
func TestIssueToken_VerifyToken_OK(t *testing.T) {
	cfg := testConfig()

	token, err := authgate.IssueToken(cfg, "user@example.com", payload{Role: "admin"}, 60)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	// формат JWT: три части через точку
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}

	if !authgate.VerifyToken[payload](cfg, token) {
		t.Fatal("expected token to be valid")
	}
	if authgate.IsTokenExpired[payload](cfg, token) {
		t.Fatal("expected token to be not expired")
	}
}

// Claims восстанавливаются как есть
func TestParseToken_ClaimsRoundTrip(t *testing.T) {
	cfg := testConfig()

	before := time.Now().Unix()
	token, err := authgate.IssueToken(cfg, "subj", payload{Role: "viewer"}, 5)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	after := time.Now().Unix()

	claims, err := authgate.ParseToken[payload](cfg, token)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}

	if claims.Subject != "subj" {
		t.Fatalf("expected subject %q, got %q", "subj", claims.Subject)
	}
	if claims.Data.Role != "viewer" {
		t.Fatalf("expected role %q, got %q", "viewer", claims.Data.Role)
	}
	if claims.IssuedAt < before || claims.IssuedAt > after {
		t.Fatalf("iat out of range: %d", claims.IssuedAt)
	}
	if want := claims.IssuedAt + 5*60; claims.ExpiresAt != want {
		t.Fatalf("expected exp=%d, got %d", want, claims.ExpiresAt)
	}
}

// Payload с динамическим типом (map)
func TestIssueToken_DynamicPayload(t *testing.T) {
	cfg := testConfig()

	data := map[string]any{"scopes": []any{"read", "write"}}
	token, err := authgate.IssueToken(cfg, "subj", data, 10)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	claims, err := authgate.ParseToken[json.RawMessage](cfg, token)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(claims.Data, &got); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if len(got["scopes"].([]any)) != 2 {
		t.Fatalf("unexpected scopes: %v", got["scopes"])
	}
}

// Отрицательное время жизни -> уже истёк
func TestIssueToken_NegativeLifetime(t *testing.T) {
	cfg := testConfig()

	token, err := authgate.IssueToken(cfg, "subj", payload{}, -1)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	if authgate.VerifyToken[payload](cfg, token) {
		t.Fatal("expected expired token to fail verification")
	}
	if !authgate.IsTokenExpired[payload](cfg, token) {
		t.Fatal("expected token to be reported expired")
	}

	// причина отказа — именно истечение срока
	_, err = authgate.ParseToken[payload](cfg, token)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

// Не тот ключ подписи
func TestVerifyToken_WrongKey(t *testing.T) {
	token, err := authgate.IssueToken(testConfig(), "subj", payload{}, 60)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	other := testConfig()
	other.SigningKey = "another-signing-key-which-is-long-enough"

	if authgate.VerifyToken[payload](other, token) {
		t.Fatal("expected verification to fail with different key")
	}
	// невалидный токен репортится как истёкший — задокументированная особенность
	if !authgate.IsTokenExpired[payload](other, token) {
		t.Fatal("expected invalid token to be reported expired")
	}
}

// Мусор вместо токена
func TestVerifyToken_Malformed(t *testing.T) {
	cfg := testConfig()

	for _, tok := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		if authgate.VerifyToken[payload](cfg, tok) {
			t.Fatalf("expected %q to be invalid", tok)
		}
		if !authgate.IsTokenExpired[payload](cfg, tok) {
			t.Fatalf("expected %q to be reported expired", tok)
		}
	}
}

// Подмена алгоритма на none не принимается
func TestVerifyToken_AlgNoneRejected(t *testing.T) {
	cfg := testConfig()

	claims := authgate.NewClaims("subj", payload{}, time.Now(), time.Hour)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if authgate.VerifyToken[payload](cfg, token) {
		t.Fatal("expected alg=none token to be rejected")
	}
}
