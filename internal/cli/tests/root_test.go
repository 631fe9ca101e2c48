package tests

import (
	"bytes"
	"strings"
	"testing"

	"github.com/IvanChernomyrdin/go-authgate/internal/cli"
)

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	cmd := cli.NewRootCmd("1.0.0", "2026-08-29")

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}

	want := []string{"token", "encrypt", "decrypt", "password", "fingerprint", "version"}
	for _, w := range want {
		if !names[w] {
			t.Fatalf("expected subcommand %q to exist", w)
		}
	}
}

func TestNewRootCmd_PersistentPreRunE_LoadsKeysFromEnv(t *testing.T) {
	t.Setenv("AUTHGATE_SIGNING_KEY", "supersecretkeysupersecretkey123456")
	t.Setenv("AUTHGATE_ENCRYPTION_KEY", "encryption-secret")

	root := cli.NewRootCmd("1.0.0", "2026-08-29")

	// Важно: чтобы выполнить PersistentPreRunE, нужно реально запустить команду.
	// Возьмём безопасную подкоманду fingerprint, ей не нужны ключи кроме PreRun.
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"fingerprint", "--input", "abc"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got := strings.TrimSpace(out.String()); got == "" {
		t.Fatalf("expected fingerprint output, got empty")
	}
}

func TestNewRootCmd_PersistentPreRunE_ReturnsErrorWithoutKeys(t *testing.T) {
	t.Setenv("AUTHGATE_SIGNING_KEY", "")
	t.Setenv("AUTHGATE_ENCRYPTION_KEY", "")
	t.Setenv("JWT_SIGNING_KEY", "")
	t.Setenv("ENCRYPTION_KEY", "")

	root := cli.NewRootCmd("1.0.0", "2026-08-29")
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"fingerprint", "--input", "abc"})

	if err := root.Execute(); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
