package cmd

import (
	"github.com/dailystory/storycheck/cui"
	"github.com/dailystory/storycheck/sys"
	"github.com/spf13/cobra"
)

func cmdPrompt() *cobra.Command {
	return &cobra.Command{
		Use:          "prompt",
		Short:        "Write the sample story prompt without running any check",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				root = sys.ErrWrap(".")(cmd.Flags().GetString("root"))
				log  = buildLogger(cmd)
			)
			log.Debugf("[prompt]\twriting into %s", root)
			return writePrompt(cui.New(cmd.OutOrStdout(), cmd.InOrStdin()), root)
		},
	}
}
