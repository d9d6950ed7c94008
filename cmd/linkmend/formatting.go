package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/linkmend/pkg/errors"
)

func setVaultEnv(path string) error {
	return os.Setenv("LINKMEND_VAULT_PATH", path)
}

// formatError renders an error for the terminal, with the error code up
// front when the error carries one.
func formatError(err error) string {
	var lmErr *errors.LinkmendError
	if stderrors.As(err, &lmErr) {
		return fmt.Sprintf("%s %s %s",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(string(lmErr.Code)),
			lmErr.Message)
	}
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}
