package cli

import (
	"github.com/spf13/cobra"
)

// для тестов
var (
	LoadConfig   = loadConfigFromEnv
	ReadPassword = func(cmd *cobra.Command, fromStdin bool) (string, error) {
		return readPassword(cmd, fromStdin)
	}
)
