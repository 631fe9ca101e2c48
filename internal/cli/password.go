package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/IvanChernomyrdin/go-authgate/internal/authgate"
)

// NewPasswordCmd создаёт группу CLI-команд для работы с паролями.
//
// Подкоманды:
//   - hash   — захэшировать пароль (argon2id);
//   - verify — проверить пароль по хэшу.
func NewPasswordCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Хэширование и проверка паролей (argon2id)",
	}

	cmd.AddCommand(NewPasswordHashCmd())
	cmd.AddCommand(NewPasswordVerifyCmd())

	return cmd
}

// NewPasswordHashCmd создаёт CLI-команду хэширования пароля.
//
// Пароль не передаётся флагом, чтобы не утекать в shell history.
// По умолчанию пароль запрашивается интерактивно (скрытый ввод).
// Для скриптов/CI доступен режим чтения пароля из STDIN через флаг
// --password-stdin.
//
// Примеры использования:
//
//	authgate password hash
//	echo "StrongPass123" | authgate password hash --password-stdin
//
// В случае успешного выполнения хэш в формате argon2id выводится в stdout.
func NewPasswordHashCmd() *cobra.Command {
	var passwordFromStdin bool

	cmd := &cobra.Command{
		Use:          "hash",
		Short:        "Захэшировать пароль (argon2id)",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := ReadPassword(cmd, passwordFromStdin)
			if err != nil {
				return err
			}

			hash, err := authgate.HashPassword(pw, authgate.DefaultArgon2Params())
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().BoolVar(&passwordFromStdin, "password-stdin", false, "read password from STDIN")

	return cmd
}

// NewPasswordVerifyCmd создаёт CLI-команду проверки пароля по хэшу.
//
// Хэш передаётся флагом --hash, пароль читается как в hash.
//
// Примеры использования:
//
//	authgate password verify --hash 'argon2id$v=19$...'
//	echo "StrongPass123" | authgate password verify --hash 'argon2id$...' --password-stdin
func NewPasswordVerifyCmd() *cobra.Command {
	var (
		hash              string
		passwordFromStdin bool
	)

	cmd := &cobra.Command{
		Use:          "verify",
		Short:        "Проверить пароль по хэшу argon2id",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := ReadPassword(cmd, passwordFromStdin)
			if err != nil {
				return err
			}

			ok, err := authgate.VerifyPassword(pw, hash)
			if err != nil {
				return fmt.Errorf("verify password: %w", err)
			}
			if !ok {
				return errors.New("password does not match")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "password ok")
			return nil
		},
	}

	cmd.Flags().StringVar(&hash, "hash", "", "argon2id hash to verify against")
	cmd.Flags().BoolVar(&passwordFromStdin, "password-stdin", false, "read password from STDIN")
	cmd.MarkFlagRequired("hash")

	return cmd
}

// readPassword читает пароль для хэширования/проверки.
//
// Режимы:
//   - fromStdin=true: читает пароль из STDIN полностью (удобно для скриптов/CI);
//   - fromStdin=false: читает пароль интерактивно из терминала со скрытым вводом.
//
// Важно:
//   - если fromStdin=false, но stdin не является терминалом, функция вернёт ошибку
//     "stdin is not a terminal; use --password-stdin".
//   - пустой пароль считается ошибкой.
func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		pw := bytes.TrimRight(b, "\r\n")
		if len(pw) == 0 {
			return "", errors.New("empty password on stdin")
		}
		return string(pw), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use --password-stdin")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	pwBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	pw := strings.TrimSpace(string(pwBytes))
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}
