package tests

import (
	"bytes"
	"strings"
	"testing"

	"github.com/IvanChernomyrdin/go-authgate/internal/cli"
)

// полный цикл encrypt -> decrypt
func TestEncryptDecrypt_Roundtrip(t *testing.T) {
	app := testApp()

	enc := cli.NewEncryptCmd(app)

	var encOut bytes.Buffer
	enc.SetOut(&encOut)
	enc.SetErr(&encOut)
	enc.SetArgs([]string{"--plaintext", "db password"})

	if err := enc.Execute(); err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	blob := strings.TrimSpace(encOut.String())
	if blob == "" || blob == "db password" {
		t.Fatalf("unexpected encrypt output: %q", blob)
	}

	dec := cli.NewDecryptCmd(app)

	var decOut bytes.Buffer
	dec.SetOut(&decOut)
	dec.SetErr(&decOut)
	dec.SetArgs([]string{"--blob", blob})

	if err := dec.Execute(); err != nil {
		t.Fatalf("decrypt: %v", err)
	}

	if got := strings.TrimSpace(decOut.String()); got != "db password" {
		t.Fatalf("expected roundtrip plaintext, got %q", got)
	}
}

// мусор на входе decrypt
func TestDecrypt_BadBlob(t *testing.T) {
	app := testApp()

	dec := cli.NewDecryptCmd(app)
	dec.SetOut(new(bytes.Buffer))
	dec.SetErr(new(bytes.Buffer))
	dec.SetArgs([]string{"--blob", "not-base64!!!"})

	if err := dec.Execute(); err == nil {
		t.Fatal("expected error for malformed blob")
	}
}

// известный вектор sha256("abc")
func TestFingerprint_KnownVector(t *testing.T) {
	cmd := cli.NewFingerprintCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--input", "abc"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("fingerprint: %v", err)
	}

	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := strings.TrimSpace(out.String()); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
