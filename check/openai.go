package check

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dailystory/storycheck/config"
	"github.com/dailystory/storycheck/sys"
	"github.com/tidwall/gjson"
)

const (
	Endpoint = "https://api.openai.com/v1/chat/completions"

	openAITimeout   = 10 * time.Second
	openAIModel     = "gpt-3.5-turbo"
	errorBodyLimit  = 64 << 10
	errorMessageKey = "error.message"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

func (checker *Checker) checkOpenAI(ctx context.Context, report *Report, app *config.AppConfig) {
	if !app.OpenAIConfigured() {
		checker.record(report, NameOpenAI, false, "OpenAI API密钥未配置")
		return
	}

	payload, err := json.Marshal(chatRequest{
		Model:     openAIModel,
		Messages:  []chatMessage{{Role: "user", Content: "Hello"}},
		MaxTokens: 10,
	})
	if err != nil {
		checker.record(report, NameOpenAI, false, fmt.Sprintf("OpenAI API连接失败: %s", err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, openAITimeout)
	defer cancel()

	checker.log.Debugf("[openai]\tPOST %s", checker.endpoint)
	response, err := sys.HttpRequest(ctx, checker.client, http.MethodPost, checker.endpoint, bytes.NewReader(payload),
		"Authorization:Bearer "+app.OpenAIApiKey,
		"Content-Type:application/json",
	)
	if err != nil {
		checker.record(report, NameOpenAI, false, fmt.Sprintf("OpenAI API连接失败: %s: %s", classify(err), err))
		return
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusOK {
		checker.record(report, NameOpenAI, true, "OpenAI API配置正常")
		return
	}

	message := fmt.Sprintf("OpenAI API错误: %d", response.StatusCode)
	if body, err := io.ReadAll(io.LimitReader(response.Body, errorBodyLimit)); err == nil {
		if reason := gjson.GetBytes(body, errorMessageKey); reason.Exists() && reason.String() != "" {
			message = fmt.Sprintf("%s (%s)", message, reason.String())
		}
	}
	checker.record(report, NameOpenAI, false, message)
}

// classify names the layer a transport error comes from
func classify(err error) string {
	var (
		netErr       net.Error
		dnsErr       *net.DNSError
		certErr      *tls.CertificateVerificationError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		recordErr    tls.RecordHeaderError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.As(err, &dnsErr):
		return "dns"
	case errors.As(err, &certErr),
		errors.As(err, &authorityErr),
		errors.As(err, &hostnameErr),
		errors.As(err, &recordErr):
		return "tls"
	default:
		return "network"
	}
}
