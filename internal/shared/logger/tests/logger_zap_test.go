package tests

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/IvanChernomyrdin/go-authgate/internal/shared/logger"
)

func readLog(t *testing.T, dir string) string {
	t.Helper()

	b, err := os.ReadFile(filepath.Join(dir, "http.log"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(b)
}

func TestNewHTTPLogger_CreatesLogFileAndWrites(t *testing.T) {
	// каталог логов свой на тест, чтобы не пересекаться
	dir := t.TempDir()
	t.Setenv("AUTHGATE_LOG_DIR", dir)

	l := logger.NewHTTPLogger()
	l.Info("test message")
	// закрываем буферы zap
	_ = l.Sync()

	s := readLog(t, dir)
	if len(s) == 0 {
		t.Fatalf("expected non-empty log file")
	}
	if !regexp.MustCompile(`\btest message\b`).MatchString(s) {
		t.Fatalf("expected log to contain message, got: %q", s)
	}

	// проверяем формат времени: "HH:MM:SS DD.MM.YYYY"
	timeRe := regexp.MustCompile(`\b\d{2}:\d{2}:\d{2} \d{2}\.\d{2}\.\d{4}\b`)
	if !timeRe.MatchString(s) {
		t.Fatalf("expected custom time format (HH:MM:SS DD.MM.YYYY), got: %q", s)
	}
}

func TestHTTPLogger_LogRequest_WritesStructuredFields(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AUTHGATE_LOG_DIR", dir)

	l := logger.NewHTTPLogger()
	l.LogRequest("POST", "/auth/login", 401, 20, 158.5463)
	l.Sync()

	s := readLog(t, dir)

	mustContain := []string{
		"HTTP request",
		"method", "POST",
		"uri", "/auth/login",
		"status", "401",
		"response_size", "20",
		"duration_ms",
	}
	for _, sub := range mustContain {
		if !regexp.MustCompile(regexp.QuoteMeta(sub)).MatchString(s) {
			t.Fatalf("expected log to contain %q, got: %q", sub, s)
		}
	}
}

func TestHTTPLogger_LogAuthReject_NoTokenInLog(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AUTHGATE_LOG_DIR", dir)

	l := logger.NewHTTPLogger()
	l.LogAuthReject("GET", "/me", "Token expired")
	l.Sync()

	s := readLog(t, dir)

	for _, sub := range []string{"auth reject", "Token expired", "/me"} {
		if !regexp.MustCompile(regexp.QuoteMeta(sub)).MatchString(s) {
			t.Fatalf("expected log to contain %q, got: %q", sub, s)
		}
	}
}
