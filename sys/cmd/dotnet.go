package cmd

import (
	"context"

	"github.com/dailystory/storycheck/sys"
)

type DotnetCmd struct {
	runner Runner
}

func Dotnet(runners ...Runner) DotnetCmd {
	return DotnetCmd{sys.First[Runner](runners, ExecRunner{})}
}

// Version probes the .NET runtime silently first, then
// runs again to capture the reported version
func (dotnet DotnetCmd) Version(ctx context.Context) (string, error) {
	if err := dotnet.runner.Run(ctx, "dotnet", "--version"); err != nil {
		return "", err
	}
	return dotnet.runner.Output(ctx, "dotnet", "--version")
}
