package tests

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/IvanChernomyrdin/go-authgate/internal/authgate"
)

func TestEncryptDecrypt_RoundTrip_Success(t *testing.T) {
	cfg := testConfig()

	for _, plain := range []string{
		"hello",
		"",
		`{"text":"секрет"}`,
		"многобайтовый текст и emoji 🔑",
	} {
		blob, err := authgate.Encrypt(cfg, plain)
		if err != nil {
			t.Fatalf("Encrypt(%q) error: %v", plain, err)
		}

		got, err := authgate.Decrypt(cfg, blob)
		if err != nil {
			t.Fatalf("Decrypt error: %v", err)
		}
		if got != plain {
			t.Fatalf("plaintext mismatch: got=%q want=%q", got, plain)
		}
	}
}

// Свежий nonce на каждый вызов: blob'ы разные, оба расшифровываются
func TestEncrypt_NonDeterministic(t *testing.T) {
	cfg := testConfig()
	plain := "same input"

	b1, err := authgate.Encrypt(cfg, plain)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	b2, err := authgate.Encrypt(cfg, plain)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if b1 == b2 {
		t.Fatal("expected different blobs for same plaintext")
	}

	for _, b := range []string{b1, b2} {
		got, err := authgate.Decrypt(cfg, b)
		if err != nil {
			t.Fatalf("Decrypt error: %v", err)
		}
		if got != plain {
			t.Fatalf("plaintext mismatch: got=%q want=%q", got, plain)
		}
	}
}

// Порча любого байта -> ErrAuthFailed, никогда не подменённый plaintext
func TestDecrypt_TamperDetected(t *testing.T) {
	cfg := testConfig()

	blob, err := authgate.Encrypt(cfg, "payload under protection")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		t.Fatalf("decode blob: %v", err)
	}

	// портим по очереди каждый байт: nonce, ciphertext и tag
	for i := range raw {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		tampered[i] ^= 0x01

		_, err := authgate.Decrypt(cfg, base64.StdEncoding.EncodeToString(tampered))
		if !errors.Is(err, authgate.ErrAuthFailed) {
			t.Fatalf("byte %d: expected ErrAuthFailed, got %v", i, err)
		}
	}
}

// Не тот ключ шифрования
func TestDecrypt_WrongKey(t *testing.T) {
	blob, err := authgate.Encrypt(testConfig(), "secret")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	other := testConfig()
	other.EncryptionKey = "different-encryption-secret"

	_, err = authgate.Decrypt(other, blob)
	if !errors.Is(err, authgate.ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}

// Не base64
func TestDecrypt_NotBase64(t *testing.T) {
	_, err := authgate.Decrypt(testConfig(), "%%% not base64 %%%")
	if !errors.Is(err, authgate.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

// Короче nonce -> ErrMalformedInput, без паники
func TestDecrypt_TooShort(t *testing.T) {
	cfg := testConfig()

	for _, n := range []int{0, 1, authgate.NonceSize - 1} {
		blob := base64.StdEncoding.EncodeToString(make([]byte, n))
		_, err := authgate.Decrypt(cfg, blob)
		if !errors.Is(err, authgate.ErrMalformedInput) {
			t.Fatalf("len=%d: expected ErrMalformedInput, got %v", n, err)
		}
	}
}

// Расшифрованные байты не UTF-8 -> ErrInvalidEncoding
func TestDecrypt_NotUTF8(t *testing.T) {
	cfg := testConfig()

	// Go-строка может содержать произвольные байты — шифруем невалидный UTF-8
	blob, err := authgate.Encrypt(cfg, string([]byte{0xff, 0xfe, 0xfd}))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	_, err = authgate.Decrypt(cfg, blob)
	if !errors.Is(err, authgate.ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
}
