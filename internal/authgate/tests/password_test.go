package tests

import (
	"strings"
	"testing"

	"github.com/IvanChernomyrdin/go-authgate/internal/authgate"
)

func defaultParams() authgate.Argon2Params {
	return authgate.Argon2Params{
		Time:      1,
		MemoryKiB: 32 * 1024,
		Threads:   1,
		KeyLen:    32,
		SaltLen:   16,
	}
}

// Хэширование и успешная проверка
func TestHashAndVerifyPassword_OK(t *testing.T) {
	hash, err := authgate.HashPassword("p@ss", defaultParams())
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := authgate.VerifyPassword("p@ss", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatal("expected password to be valid")
	}
}

// Неверный пароль — false без ошибки
func TestVerifyPassword_InvalidPassword(t *testing.T) {
	hash, err := authgate.HashPassword("p@ss", defaultParams())
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := authgate.VerifyPassword("wrong", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if ok {
		t.Fatal("expected password to be invalid")
	}
}

// Пустой пароль
func TestHashPassword_EmptyPassword(t *testing.T) {
	if _, err := authgate.HashPassword("", defaultParams()); err == nil {
		t.Fatal("expected error for empty password")
	}
}

// Битый формат хэша
func TestVerifyPassword_InvalidFormat(t *testing.T) {
	for _, bad := range []string{
		"not-a-valid-hash",
		"bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA", // чужой алгоритм
		"argon2id$v=19$m=oops$c2FsdA$aGFzaA",
	} {
		ok, err := authgate.VerifyPassword("password", bad)
		if err == nil {
			t.Fatalf("expected error for %q", bad)
		}
		if ok {
			t.Fatalf("expected ok=false for %q", bad)
		}
	}
}

// Соль свежая на каждый вызов: хэши разные
func TestHashPassword_DifferentSalt(t *testing.T) {
	params := defaultParams()

	h1, _ := authgate.HashPassword("same-password", params)
	h2, _ := authgate.HashPassword("same-password", params)

	if h1 == h2 {
		t.Fatal("expected different hashes for same password")
	}
}

// Формат самодостаточный: алгоритм и стоимость зашиты в строку
func TestHashPassword_EncodedFormat(t *testing.T) {
	hash, err := authgate.HashPassword("p@ss", defaultParams())
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if !strings.HasPrefix(hash, "argon2id$v=19$m=32768,t=1,p=1$") {
		t.Fatalf("unexpected hash prefix: %q", hash)
	}
	if parts := strings.Split(hash, "$"); len(parts) != 5 {
		t.Fatalf("expected 5 parts, got %d", len(parts))
	}
}

// Fingerprint — детерминированный и в hex
func TestFingerprint(t *testing.T) {
	f1 := authgate.Fingerprint("some input")
	f2 := authgate.Fingerprint("some input")

	if f1 != f2 {
		t.Fatal("expected deterministic fingerprint")
	}
	if len(f1) != 64 { // hex(sha256) = 64 символа
		t.Fatalf("expected 64 hex chars, got %d", len(f1))
	}
	if f1 == authgate.Fingerprint("other input") {
		t.Fatal("expected different fingerprints for different input")
	}

	// известный вектор sha256("abc")
	if got := authgate.Fingerprint("abc"); got != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Fatalf("unexpected fingerprint for \"abc\": %s", got)
	}
}
