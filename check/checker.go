package check

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"github.com/dailystory/storycheck/config"
	"github.com/dailystory/storycheck/cui"
	"github.com/dailystory/storycheck/sys"
	"github.com/dailystory/storycheck/sys/cmd"
	"github.com/sirupsen/logrus"
)

const (
	NameConfig    = "config"
	NameOpenAI    = "openai"
	NameAzure     = "azure"
	NameBilibili  = "bilibili"
	NameDirectory = "directory"
	NameFFmpeg    = "ffmpeg"
	NameDotnet    = "dotnet"
)

// Directories are expected relative to the root
var Directories = []string{"output", "logs", "backgrounds"}

type Checker struct {
	root       string
	configPath string
	endpoint   string
	platform   string
	load       config.Loader
	client     sys.Doer
	runner     cmd.Runner
	console    *cui.Console
	log        logrus.FieldLogger
}

type Option func(*Checker)

func WithRoot(root string) Option {
	return func(checker *Checker) { checker.root = root }
}

func WithConfigPath(path string) Option {
	return func(checker *Checker) { checker.configPath = path }
}

func WithEndpoint(endpoint string) Option {
	return func(checker *Checker) { checker.endpoint = endpoint }
}

func WithPlatform(platform string) Option {
	return func(checker *Checker) { checker.platform = platform }
}

func WithLoader(load config.Loader) Option {
	return func(checker *Checker) { checker.load = load }
}

func WithClient(client sys.Doer) Option {
	return func(checker *Checker) { checker.client = client }
}

func WithRunner(runner cmd.Runner) Option {
	return func(checker *Checker) { checker.runner = runner }
}

func WithConsole(console *cui.Console) Option {
	return func(checker *Checker) { checker.console = console }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(checker *Checker) { checker.log = log }
}

// New returns a Checker wired to the real filesystem,
// network and processes unless told otherwise
func New(options ...Option) *Checker {
	checker := &Checker{
		root:       ".",
		configPath: config.DefaultPath,
		endpoint:   Endpoint,
		platform:   runtime.GOOS,
		load:       config.Parse,
		client:     http.DefaultClient,
		runner:     cmd.ExecRunner{},
		log:        logrus.StandardLogger(),
	}
	for _, option := range options {
		option(checker)
	}
	if checker.console == nil {
		checker.console = cui.New(nil, nil)
	}
	return checker
}

// Run goes through every check in order, printing each outcome.
// Only a missing configuration stops it early: the returned error
// is reserved to failures the run cannot report on, like a malformed
// configuration or a directory that cannot be created.
func (checker *Checker) Run(ctx context.Context) (*Report, error) {
	report := new(Report)
	checker.console.Banner("配置检查工具", true)

	path := sys.Within(checker.root, checker.configPath)
	checker.log.Debugf("[config]\tloading %s", path)
	settings, err := checker.load(path)
	if errors.Is(err, config.ErrNotFound) {
		report.Aborted = true
		checker.record(report, NameConfig, false, "配置文件不存在，请先运行 setup.bat")
		return report, nil
	} else if err != nil {
		return report, err
	}
	app := settings.AppConfig

	checker.console.Section("检查OpenAI配置...")
	checker.checkOpenAI(ctx, report, &app)

	checker.console.Section("检查Azure Speech配置...")
	if !app.AzureConfigured() {
		checker.record(report, NameAzure, false, "Azure Speech密钥未配置")
	} else {
		checker.record(report, NameAzure, true, fmt.Sprintf("Azure Speech配置正常 (区域: %s)", app.AzureSpeechRegion))
	}

	checker.console.Section("检查B站配置...")
	if app.UploadConfig.BilibiliCookie == "" {
		checker.record(report, NameBilibili, false, "B站Cookie未配置（自动上传功能不可用）")
	} else {
		checker.record(report, NameBilibili, true, "B站Cookie已配置")
	}

	checker.console.Section("检查目录结构...")
	if err := checker.checkDirectories(report); err != nil {
		return report, err
	}

	checker.console.Section("检查FFmpeg...")
	if err := cmd.FFmpeg(checker.runner).Available(ctx, checker.platform); err != nil {
		checker.log.Debugf("[probe]\tffmpeg: %s", err)
		checker.record(report, NameFFmpeg, false, "FFmpeg未安装，请安装并添加到PATH")
	} else {
		checker.record(report, NameFFmpeg, true, "FFmpeg已安装")
	}

	checker.console.Section("检查.NET Runtime...")
	if version, err := cmd.Dotnet(checker.runner).Version(ctx); err != nil {
		checker.log.Debugf("[probe]\tdotnet: %s", err)
		checker.record(report, NameDotnet, false, ".NET Runtime未安装")
	} else {
		checker.record(report, NameDotnet, true, ".NET Runtime: "+version)
	}

	checker.console.Banner("配置检查完成", false)
	return report, nil
}

func (checker *Checker) checkDirectories(report *Report) error {
	for _, name := range Directories {
		path := sys.Within(checker.root, name)
		if sys.Exists(path) {
			checker.record(report, NameDirectory, true, fmt.Sprintf("目录 %s/ 存在", name))
			continue
		}

		// absence is reported but heals right away
		checker.console.Status(false, fmt.Sprintf("目录 %s/ 不存在", name))
		if err := sys.Mkdir(path); err != nil {
			return fmt.Errorf("cannot create directory %s: %w", path, err)
		}
		checker.log.Debugf("[dirs]\tcreated %s", path)
		checker.record(report, NameDirectory, true, fmt.Sprintf("已创建目录 %s/", name))
	}
	return nil
}

func (checker *Checker) record(report *Report, name string, passed bool, message string) {
	report.Results = append(report.Results, Result{Name: name, Passed: passed, Message: message})
	checker.console.Status(passed, message)
}
