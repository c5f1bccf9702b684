package sys

import (
	"context"
	"io"
	"net/http"
	"strings"
)

type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// HttpRequest issues a request through client, which defaults
// to http.DefaultClient, setting each "Key:Value" header
func HttpRequest(ctx context.Context, client Doer, method, url string, body io.Reader, headers ...string) (*http.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		client = http.DefaultClient
	}

	request, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	for _, header := range headers {
		headerKeyValue := strings.SplitN(header, ":", 2)
		if len(headerKeyValue) != 2 {
			continue
		}
		request.Header.Set(headerKeyValue[0], strings.TrimSpace(headerKeyValue[1]))
	}
	return client.Do(request)
}
