package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/companysearch/internal/tui"
)

func newTUICmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Search interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Log output would corrupt the alternate screen
			svc, closeFn, err := setup(cmd.Context(), opts, io.Discard)
			if err != nil {
				return err
			}
			defer closeFn()

			return tui.Run(cmd.Context(), svc)
		},
	}
}
