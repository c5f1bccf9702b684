package check

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agiledragon/gomonkey/v2"
	"github.com/dailystory/storycheck/config"
	"github.com/dailystory/storycheck/cui"
	"github.com/dailystory/storycheck/sys"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

const (
	testKey      = "sk-test"
	testSettings = `{
  "AppConfig": {
    "OpenAIApiKey": "sk-test",
    "AzureSpeechKey": "azure-key",
    "AzureSpeechRegion": "eastasia",
    "UploadConfig": {"BilibiliCookie": "SESSDATA=abc"}
  }
}`
)

type fakeClient struct {
	requests []*http.Request
	bodies   []string
	status   int
	body     string
	err      error
}

func (client *fakeClient) Do(request *http.Request) (*http.Response, error) {
	client.requests = append(client.requests, request)
	body, _ := io.ReadAll(request.Body)
	client.bodies = append(client.bodies, string(body))
	if client.err != nil {
		return nil, client.err
	}
	return &http.Response{
		StatusCode: client.status,
		Body:       io.NopCloser(strings.NewReader(client.body)),
		Header:     http.Header{},
	}, nil
}

type fakeRunner struct {
	missing map[string]bool
	calls   []string
}

func (runner *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	runner.calls = append(runner.calls, strings.Join(append([]string{name}, args...), " "))
	if runner.missing[name] {
		return errors.New("exit status 1")
	}
	return nil
}

func (runner *fakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	runner.calls = append(runner.calls, "output:"+strings.Join(append([]string{name}, args...), " "))
	if runner.missing[name] {
		return "", errors.New("exit status 1")
	}
	return "8.0.100", nil
}

type fixture struct {
	root    string
	output  *bytes.Buffer
	client  *fakeClient
	runner  *fakeRunner
	checker *Checker
}

func setup(t *testing.T, settings *string, options ...Option) *fixture {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	f := &fixture{
		root:   t.TempDir(),
		output: new(bytes.Buffer),
		client: &fakeClient{status: http.StatusOK},
		runner: &fakeRunner{missing: map[string]bool{}},
	}
	if settings != nil {
		path := filepath.Join(f.root, config.DefaultPath)
		assert.Nil(t, os.MkdirAll(filepath.Dir(path), 0o755))
		assert.Nil(t, os.WriteFile(path, []byte(*settings), 0o644))
	}
	f.checker = New(append([]Option{
		WithRoot(f.root),
		WithClient(f.client),
		WithRunner(f.runner),
		WithPlatform("linux"),
		WithConsole(cui.New(f.output, strings.NewReader(""))),
	}, options...)...)
	return f
}

func settings(content string) *string {
	return &content
}

func (f *fixture) lines() []string {
	return strings.Split(strings.TrimRight(f.output.String(), "\n"), "\n")
}

func (f *fixture) count(prefix string) (n int) {
	for _, line := range f.lines() {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return
}

func TestRun(t *testing.T) {
	f := setup(t, settings(testSettings))
	for _, name := range Directories {
		assert.Nil(t, os.Mkdir(filepath.Join(f.root, name), 0o755))
	}

	report, err := f.checker.Run(context.Background())
	assert.Nil(t, err)
	assert.False(t, report.Aborted)
	assert.False(t, report.Failed())
	assert.Equal(t, 0, f.count("❌"))
	assert.Contains(t, f.output.String(), "✅ OpenAI API配置正常")
	assert.Contains(t, f.output.String(), "✅ Azure Speech配置正常 (区域: eastasia)")
	assert.Contains(t, f.output.String(), "✅ B站Cookie已配置")
	assert.Contains(t, f.output.String(), "✅ FFmpeg已安装")
	assert.Contains(t, f.output.String(), "✅ .NET Runtime: 8.0.100")
	assert.Contains(t, f.output.String(), "配置检查完成")
	assert.Equal(t, []string{"which ffmpeg", "dotnet --version", "output:dotnet --version"}, f.runner.calls)
}

func TestRunConfigNotFound(t *testing.T) {
	f := setup(t, nil)

	report, err := f.checker.Run(context.Background())
	assert.Nil(t, err)
	assert.True(t, report.Aborted)
	assert.True(t, report.Failed())
	assert.Len(t, report.Results, 1)
	assert.Equal(t, 1, f.count("❌"))
	assert.Equal(t, 0, f.count("✅"))
	assert.Contains(t, f.output.String(), "❌ 配置文件不存在，请先运行 setup.bat")
	assert.NotContains(t, f.output.String(), "配置检查完成")
	assert.Empty(t, f.client.requests)
	assert.Empty(t, f.runner.calls)
	for _, name := range Directories {
		assert.False(t, sys.Exists(filepath.Join(f.root, name)))
	}
}

func TestRunConfigMalformed(t *testing.T) {
	f := setup(t, settings(`{"AppConfig": {`))

	_, err := f.checker.Run(context.Background())
	assert.True(t, errors.Is(err, config.ErrMalformed))
	assert.Empty(t, f.client.requests)
	assert.Empty(t, f.runner.calls)
}

func TestRunEmptyAppConfig(t *testing.T) {
	f := setup(t, settings(`{"AppConfig": {}}`))

	report, err := f.checker.Run(context.Background())
	assert.Nil(t, err)
	assert.True(t, report.Failed())
	assert.Contains(t, f.output.String(), "❌ OpenAI API密钥未配置")
	assert.Contains(t, f.output.String(), "❌ Azure Speech密钥未配置")
	assert.Contains(t, f.output.String(), "❌ B站Cookie未配置（自动上传功能不可用）")
	assert.Empty(t, f.client.requests)
	for _, name := range []string{NameOpenAI, NameAzure, NameBilibili} {
		result, ok := report.Result(name)
		assert.True(t, ok)
		assert.False(t, result.Passed)
	}
}

func TestRunPlaceholders(t *testing.T) {
	f := setup(t, settings(`{"AppConfig": {
		"OpenAIApiKey": "your-openai-api-key-here",
		"AzureSpeechKey": "your-azure-speech-key-here",
		"AzureSpeechRegion": "eastasia"
	}}`))

	_, err := f.checker.Run(context.Background())
	assert.Nil(t, err)
	assert.Empty(t, f.client.requests)
	assert.Contains(t, f.output.String(), "❌ OpenAI API密钥未配置")
	assert.Contains(t, f.output.String(), "❌ Azure Speech密钥未配置")
}

func TestRunOpenAIRequest(t *testing.T) {
	f := setup(t, settings(testSettings))

	_, err := f.checker.Run(context.Background())
	assert.Nil(t, err)
	assert.Len(t, f.client.requests, 1)

	request := f.client.requests[0]
	assert.Equal(t, http.MethodPost, request.Method)
	assert.Equal(t, Endpoint, request.URL.String())
	assert.Equal(t, "Bearer "+testKey, request.Header.Get("Authorization"))
	assert.Equal(t, "application/json", request.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"model":"gpt-3.5-turbo","messages":[{"role":"user","content":"Hello"}],"max_tokens":10}`, f.client.bodies[0])

	deadline, ok := request.Context().Deadline()
	assert.True(t, ok)
	assert.False(t, deadline.IsZero())
}

func TestRunOpenAIEndpoint(t *testing.T) {
	f := setup(t, settings(testSettings), WithEndpoint("http://localhost:8080/v1/chat/completions"))

	_, err := f.checker.Run(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, "http://localhost:8080/v1/chat/completions", f.client.requests[0].URL.String())
}

func TestRunOpenAIStatus(t *testing.T) {
	f := setup(t, settings(testSettings))
	f.client.status = http.StatusTooManyRequests

	report, err := f.checker.Run(context.Background())
	assert.Nil(t, err)
	assert.True(t, report.Failed())
	assert.Contains(t, f.output.String(), "❌ OpenAI API错误: 429\n")
	assert.Len(t, f.client.requests, 1)
}

func TestRunOpenAIStatusReason(t *testing.T) {
	f := setup(t, settings(testSettings))
	f.client.status = http.StatusUnauthorized
	f.client.body = `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`

	_, err := f.checker.Run(context.Background())
	assert.Nil(t, err)
	assert.Contains(t, f.output.String(), "❌ OpenAI API错误: 401 (Incorrect API key provided)")
}

func TestRunOpenAIFailure(t *testing.T) {
	f := setup(t, settings(testSettings))
	f.client.err = errors.New("connection refused")

	report, err := f.checker.Run(context.Background())
	assert.Nil(t, err)
	result, ok := report.Result(NameOpenAI)
	assert.True(t, ok)
	assert.False(t, result.Passed)
	assert.Equal(t, "OpenAI API连接失败: network: connection refused", result.Message)
	assert.Contains(t, f.output.String(), "✅ FFmpeg已安装")
}

func TestRunDirectoriesCreated(t *testing.T) {
	f := setup(t, settings(testSettings))

	_, err := f.checker.Run(context.Background())
	assert.Nil(t, err)
	for _, name := range Directories {
		assert.True(t, sys.Exists(filepath.Join(f.root, name)))
		assert.Contains(t, f.output.String(), "❌ 目录 "+name+"/ 不存在")
		assert.Contains(t, f.output.String(), "✅ 已创建目录 "+name+"/")
		assert.NotContains(t, f.output.String(), "✅ 目录 "+name+"/ 存在")
	}
}

func TestRunDirectoriesExisting(t *testing.T) {
	f := setup(t, settings(testSettings))
	for _, name := range Directories {
		assert.Nil(t, os.Mkdir(filepath.Join(f.root, name), 0o755))
	}

	// monkey patching
	defer gomonkey.ApplyFunc(sys.Mkdir, func(string) error {
		t.Error("no directory should be created")
		return nil
	}).Reset()

	// testing
	_, err := f.checker.Run(context.Background())
	assert.Nil(t, err)
	for _, name := range Directories {
		assert.Contains(t, f.output.String(), "✅ 目录 "+name+"/ 存在")
		assert.NotContains(t, f.output.String(), "已创建目录 "+name+"/")
	}
}

func TestRunDirectoryFailure(t *testing.T) {
	f := setup(t, settings(testSettings))

	// monkey patching
	defer gomonkey.ApplyFunc(os.Mkdir, func(string, os.FileMode) error {
		return os.ErrPermission
	}).Reset()

	// testing
	_, err := f.checker.Run(context.Background())
	assert.True(t, errors.Is(err, os.ErrPermission))
	assert.Empty(t, f.runner.calls)
}

func TestRunToolsMissing(t *testing.T) {
	f := setup(t, settings(testSettings))
	f.runner.missing = map[string]bool{"which": true, "dotnet": true}

	report, err := f.checker.Run(context.Background())
	assert.Nil(t, err)
	assert.True(t, report.Failed())
	assert.Contains(t, f.output.String(), "❌ FFmpeg未安装，请安装并添加到PATH")
	assert.Contains(t, f.output.String(), "❌ .NET Runtime未安装")
	assert.Equal(t, []string{"which ffmpeg", "dotnet --version"}, f.runner.calls)
}

func TestRunWindows(t *testing.T) {
	f := setup(t, settings(testSettings), WithPlatform("windows"))

	_, err := f.checker.Run(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, "ffmpeg -version", f.runner.calls[0])
}

func TestRunLoader(t *testing.T) {
	f := setup(t, nil, WithLoader(func(path string) (*config.Settings, error) {
		return &config.Settings{AppConfig: config.AppConfig{AzureSpeechKey: "k", AzureSpeechRegion: "westeurope"}}, nil
	}))

	_, err := f.checker.Run(context.Background())
	assert.Nil(t, err)
	assert.Contains(t, f.output.String(), "✅ Azure Speech配置正常 (区域: westeurope)")
}
