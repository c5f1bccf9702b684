package cmd

import (
	"os"

	"github.com/dailystory/storycheck/check"
	"github.com/dailystory/storycheck/config"
	"github.com/dailystory/storycheck/cui"
	"github.com/dailystory/storycheck/logger"
	"github.com/dailystory/storycheck/sys"
	"github.com/spf13/cobra"
)

const confirmMessage = "是否创建测试提示词文件？(y/n): "

// replaced in tests to keep network and processes out
var newChecker = check.New

var cmdRoot = cmdCheck()

func init() {
	cmdRoot.AddCommand(cmdPrompt())
}

func Execute() {
	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

func cmdCheck() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "storycheck",
		Short:        "Validate the environment of the daily story video generator",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				root       = sys.ErrWrap(".")(cmd.Flags().GetString("root"))
				configPath = sys.ErrWrap(config.DefaultPath)(cmd.Flags().GetString("config"))
				endpoint   = sys.ErrWrap(check.Endpoint)(cmd.Flags().GetString("openai-endpoint"))
				yes        = sys.ErrWrap(false)(cmd.Flags().GetBool("yes"))
				no         = sys.ErrWrap(false)(cmd.Flags().GetBool("no-prompt"))
				strict     = sys.ErrWrap(false)(cmd.Flags().GetBool("strict"))
				log        = buildLogger(cmd)
				console    = cui.New(cmd.OutOrStdout(), cmd.InOrStdin())
			)
			defer log.Destroy()

			if sys.ErrWrap(false)(cmd.Flags().GetBool("log")) {
				path, err := log.Persist()
				if err != nil {
					return err
				}
				log.Debugf("[log]\tpersisting to %s", path)
			}

			report, err := newChecker(
				check.WithRoot(root),
				check.WithConfigPath(configPath),
				check.WithEndpoint(endpoint),
				check.WithConsole(console),
				check.WithLogger(log),
			).Run(cmd.Context())
			if err != nil {
				return err
			}

			if !no && (yes || console.Confirm(confirmMessage)) {
				if err := writePrompt(console, root); err != nil {
					return err
				}
			}

			if strict && report.Failed() {
				return check.ErrChecksFailed
			}
			return nil
		},
	}
	cmd.PersistentFlags().String("root", ".", "Directory the checks are run against")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log every step")
	cmd.Flags().StringP("config", "c", config.DefaultPath, "Settings file, relative to root unless absolute")
	cmd.Flags().String("openai-endpoint", check.Endpoint, "Chat completion endpoint to probe")
	cmd.Flags().BoolP("yes", "y", false, "Create the test prompt without asking")
	cmd.Flags().BoolP("no-prompt", "n", false, "Never create the test prompt")
	cmd.Flags().Bool("strict", false, "Exit with failure if any check did not pass")
	cmd.Flags().Bool("log", false, "Persist logs to the state directory")
	cmd.MarkFlagsMutuallyExclusive("yes", "no-prompt")
	return cmd
}

func buildLogger(cmd *cobra.Command) *logger.Logger {
	return logger.Build(cmd.ErrOrStderr(), sys.ErrWrap(false)(cmd.Flags().GetBool("verbose")))
}

func writePrompt(console *cui.Console, root string) error {
	if _, err := check.WritePrompt(root); err != nil {
		return err
	}
	console.Println("\n已创建测试提示词文件：" + check.PromptBasename)
	return nil
}
