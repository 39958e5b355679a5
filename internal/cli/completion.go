package cli

import (
	"io"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/spf13/cobra"
)

// GenCompletion writes the completion script of root for shell
func GenCompletion(root *cobra.Command, shell string, w io.Writer) error {
	var err error
	switch shell {
	case "bash":
		err = root.GenBashCompletionV2(w, true)
	case "zsh":
		err = root.GenZshCompletion(w)
	case "fish":
		err = root.GenFishCompletion(w, true)
	case "powershell":
		err = root.GenPowerShellCompletionWithDesc(w)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown shell %q, expected bash, zsh, fish or powershell", shell)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to generate %s completion", shell)
	}
	return nil
}
