// Package cli реализует командный интерфейс (CLI) оператора AuthGate.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку ключей подписи и шифрования из переменных окружения;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-authgate/internal/authgate"
)

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// В структуре хранится конфигурация криптографического ядра (ключи подписи
// и шифрования). Экземпляр App создаётся при построении root-команды и
// передаётся в подкоманды.
type App struct {
	// Cfg — ключи подписи и шифрования, загруженные из окружения.
	Cfg authgate.Config
}

// loadConfigFromEnv собирает ключи из переменных окружения.
//
// Поддерживаются два набора имён:
//   - AUTHGATE_SIGNING_KEY / AUTHGATE_ENCRYPTION_KEY (приоритетные)
//   - JWT_SIGNING_KEY / ENCRYPTION_KEY (те же, что использует сервер)
func loadConfigFromEnv() (authgate.Config, error) {
	signing := os.Getenv("AUTHGATE_SIGNING_KEY")
	if signing == "" {
		signing = os.Getenv("JWT_SIGNING_KEY")
	}
	encryption := os.Getenv("AUTHGATE_ENCRYPTION_KEY")
	if encryption == "" {
		encryption = os.Getenv("ENCRYPTION_KEY")
	}

	cfg := authgate.Config{SigningKey: signing, EncryptionKey: encryption}
	if err := cfg.Validate(); err != nil {
		return authgate.Config{}, fmt.Errorf("%w (set AUTHGATE_SIGNING_KEY and AUTHGATE_ENCRYPTION_KEY)", err)
	}
	return cfg, nil
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
// В PersistentPreRunE выполняется инициализация состояния приложения:
// загружается .env (если есть) и ключи из переменных окружения.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "authgate",
		Short: "AuthGate CLI — выпуск и проверка токенов, шифрование строк",
		Long: `AuthGate CLI.

Команды:
  token issue    Выпустить JWT (HS256)
  token verify   Проверить подпись и срок жизни токена
  token inspect  Показать клеймы токена
  encrypt        Зашифровать строку (AES-256-GCM)
  decrypt        Расшифровать строку
  password hash  Захэшировать пароль (argon2id)
  password verify Проверить пароль по хэшу
  fingerprint    SHA-256 отпечаток строки
  version        Версия и дата сборки

Ключи берутся из окружения:
  AUTHGATE_SIGNING_KEY (или JWT_SIGNING_KEY)
  AUTHGATE_ENCRYPTION_KEY (или ENCRYPTION_KEY)

Примеры:

Выпустить токен на час:
  authgate token issue --subject user@example.com --lifetime 60

Проверить токен:
  authgate token verify --token "eyJhb..."

Зашифровать строку:
  authgate encrypt --plaintext "db password"
`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env опционален, отсутствие не ошибка
			_ = godotenv.Load()

			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			app.Cfg = cfg
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.AddCommand(NewTokenCmd(app))
	cmd.AddCommand(NewEncryptCmd(app))
	cmd.AddCommand(NewDecryptCmd(app))
	cmd.AddCommand(NewPasswordCmd(app))
	cmd.AddCommand(NewFingerprintCmd())
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
