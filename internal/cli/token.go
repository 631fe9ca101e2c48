package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-authgate/internal/authgate"
)

// NewTokenCmd создаёт группу CLI-команд для работы с JWT.
//
// Подкоманды:
//   - issue   — выпустить токен;
//   - verify  — проверить подпись и срок жизни;
//   - inspect — показать клеймы токена.
func NewTokenCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Работа с JWT (выпуск, проверка, просмотр клеймов)",
	}

	cmd.AddCommand(NewTokenIssueCmd(app))
	cmd.AddCommand(NewTokenVerifyCmd(app))
	cmd.AddCommand(NewTokenInspectCmd(app))

	return cmd
}

// NewTokenIssueCmd создаёт CLI-команду выпуска токена.
//
// Для выполнения команды требуется указать обязательный флаг --subject.
// Время жизни задаётся флагом --lifetime в минутах (по умолчанию 60).
// Произвольные данные можно передать флагом --data (JSON).
//
// Пример использования:
//
//	authgate token issue --subject user@example.com --lifetime 60
//	authgate token issue --subject user@example.com --data '{"role":"admin"}'
//
// В случае успешного выполнения токен выводится в stdout одной строкой.
func NewTokenIssueCmd(app *App) *cobra.Command {
	var (
		subject  string
		lifetime int64
		dataStr  string
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Выпустить JWT (HS256)",
		Long: `Выпустить JWT.

Пример:
  authgate token issue --subject user@example.com --lifetime 60
  authgate token issue --subject user@example.com --data '{"role":"admin"}'
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var data json.RawMessage
			if dataStr != "" {
				if !json.Valid([]byte(dataStr)) {
					return fmt.Errorf("--data must be valid JSON")
				}
				data = json.RawMessage(dataStr)
			} else {
				data = json.RawMessage("null")
			}

			token, err := authgate.IssueToken(app.Cfg, subject, data, lifetime)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "token subject (sub claim)")
	cmd.Flags().Int64Var(&lifetime, "lifetime", 60, "token lifetime in minutes")
	cmd.Flags().StringVar(&dataStr, "data", "", "arbitrary JSON payload (data claim)")
	cmd.MarkFlagRequired("subject")

	return cmd
}

// NewTokenVerifyCmd создаёт CLI-команду проверки токена.
//
// Команда проверяет подпись и срок жизни токена и выводит вердикт.
// Код возврата 0 при валидном токене, иначе ошибка.
//
// Пример использования:
//
//	authgate token verify --token "eyJhb..."
func NewTokenVerifyCmd(app *App) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:          "verify",
		Short:        "Проверить подпись и срок жизни токена",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if authgate.VerifyToken[json.RawMessage](app.Cfg, token) {
				fmt.Fprintln(cmd.OutOrStdout(), "token valid")
				return nil
			}
			if authgate.IsTokenExpired[json.RawMessage](app.Cfg, token) {
				return fmt.Errorf("token invalid or expired")
			}
			return fmt.Errorf("token invalid")
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "token to verify")
	cmd.MarkFlagRequired("token")

	return cmd
}

// NewTokenInspectCmd создаёт CLI-команду просмотра клеймов токена.
//
// Команда разбирает токен с проверкой подписи и выводит клеймы в JSON.
//
// Пример использования:
//
//	authgate token inspect --token "eyJhb..."
func NewTokenInspectCmd(app *App) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:          "inspect",
		Short:        "Показать клеймы токена (с проверкой подписи)",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := authgate.ParseToken[json.RawMessage](app.Cfg, token)
			if err != nil {
				return fmt.Errorf("parse token: %w", err)
			}

			out := struct {
				Subject   string          `json:"sub"`
				IssuedAt  string          `json:"iat"`
				ExpiresAt string          `json:"exp"`
				Data      json.RawMessage `json:"data,omitempty"`
			}{
				Subject:   claims.Subject,
				IssuedAt:  time.Unix(claims.IssuedAt, 0).UTC().Format(time.RFC3339),
				ExpiresAt: time.Unix(claims.ExpiresAt, 0).UTC().Format(time.RFC3339),
				Data:      claims.Data,
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "token to inspect")
	cmd.MarkFlagRequired("token")

	return cmd
}
