package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-authgate/internal/authgate"
)

// NewEncryptCmd создаёт CLI-команду шифрования строки.
//
// Строка шифруется AES-256-GCM со свежим nonce, результат кодируется base64.
// Повторный вызов с теми же аргументами даёт другой результат.
//
// Пример использования:
//
//	authgate encrypt --plaintext "db password"
func NewEncryptCmd(app *App) *cobra.Command {
	var plaintext string

	cmd := &cobra.Command{
		Use:          "encrypt",
		Short:        "Зашифровать строку (AES-256-GCM, вывод base64)",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := authgate.Encrypt(app.Cfg, plaintext)
			if err != nil {
				return fmt.Errorf("encrypt: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), blob)
			return nil
		},
	}

	cmd.Flags().StringVar(&plaintext, "plaintext", "", "string to encrypt")
	cmd.MarkFlagRequired("plaintext")

	return cmd
}

// NewDecryptCmd создаёт CLI-команду расшифровки строки.
//
// Пример использования:
//
//	authgate decrypt --blob "base64..."
func NewDecryptCmd(app *App) *cobra.Command {
	var blob string

	cmd := &cobra.Command{
		Use:          "decrypt",
		Short:        "Расшифровать строку (base64 от encrypt)",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			plaintext, err := authgate.Decrypt(app.Cfg, blob)
			if err != nil {
				return fmt.Errorf("decrypt: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), plaintext)
			return nil
		},
	}

	cmd.Flags().StringVar(&blob, "blob", "", "encrypted string (base64)")
	cmd.MarkFlagRequired("blob")

	return cmd
}

// NewFingerprintCmd создаёт CLI-команду вычисления отпечатка строки.
//
// Отпечаток — hex от SHA-256, не зависит от ключей.
//
// Пример использования:
//
//	authgate fingerprint --input "user@example.com"
func NewFingerprintCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:          "fingerprint",
		Short:        "SHA-256 отпечаток строки (hex)",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), authgate.Fingerprint(input))
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "string to fingerprint")
	cmd.MarkFlagRequired("input")

	return cmd
}
