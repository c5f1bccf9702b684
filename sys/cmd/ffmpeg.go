package cmd

import (
	"context"
	"runtime"

	"github.com/dailystory/storycheck/sys"
)

type FFmpegCmd struct {
	runner Runner
}

func FFmpeg(runners ...Runner) FFmpegCmd {
	return FFmpegCmd{sys.First[Runner](runners, ExecRunner{})}
}

// Available succeeds if ffmpeg can be reached on the given platform,
// which defaults to the running one
func (ffmpeg FFmpegCmd) Available(ctx context.Context, oses ...string) error {
	switch sys.First(oses, runtime.GOOS) {
	case "windows":
		return ffmpeg.runner.Run(ctx, "ffmpeg", "-version")
	default:
		return ffmpeg.runner.Run(ctx, "which", "ffmpeg")
	}
}
