package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/grantsscope/wrapped/internal/errors"
	"github.com/grantsscope/wrapped/internal/render"
)

func newLookupCommand(configPath *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "lookup <address>",
		Short: "Show the yearly review for one donor address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, svc, err := setup(*configPath)
			if err != nil {
				return err
			}

			report, err := svc.Lookup(cmd.Context(), args[0])
			if err != nil {
				code := apperrors.GetCode(err)
				log.Debug().Err(err).Str("code", string(code)).Msg("lookup failed")
				return fmt.Errorf("%s [%s]", code.UserMessage(), code)
			}
			return render.Write(cmd.OutOrStdout(), format, report)
		},
	}

	cmd.Flags().StringVar(&format, "format", render.FormatText, "output format (text or json)")

	return cmd
}
