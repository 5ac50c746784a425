// internal/tests/browser_test.go
package tests

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// browser is a cookie-keeping client that does not follow redirects, so tests
// can assert on each Location.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newBrowser(t *testing.T, base string) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &browser{
		t:    t,
		base: base,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.t.Helper()
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp, string(body)
}

func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.base+path, nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *browser) getWithReferer(path, referer string) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.base+path, nil)
	require.NoError(b.t, err)
	req.Header.Set("Referer", referer)
	return b.do(req)
}

func (b *browser) postForm(path string, form url.Values) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.base+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// postMultipart sends fields plus an optional file under fileField.
func (b *browser) postMultipart(path string, fields map[string]string, fileField, fileName string, content []byte) (*http.Response, string) {
	b.t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(b.t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, fileName)
		require.NoError(b.t, err)
		_, err = part.Write(content)
		require.NoError(b.t, err)
	}
	require.NoError(b.t, w.Close())

	req, err := http.NewRequest(http.MethodPost, b.base+path, &body)
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return b.do(req)
}

// follow fetches the Location of a redirect response.
func (b *browser) follow(resp *http.Response) (*http.Response, string) {
	b.t.Helper()
	require.Equal(b.t, http.StatusFound, resp.StatusCode)
	return b.get(resp.Header.Get("Location"))
}

func (b *browser) register(username, password string) {
	b.t.Helper()
	resp, _ := b.postForm("/register", url.Values{"username": {username}, "password": {password}})
	require.Equal(b.t, http.StatusFound, resp.StatusCode)
	require.Equal(b.t, "/", resp.Header.Get("Location"))
}

func (b *browser) logout() {
	b.t.Helper()
	resp, _ := b.get("/logout")
	require.Equal(b.t, http.StatusFound, resp.StatusCode)
}
