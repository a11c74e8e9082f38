package updater

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

const releaseJSON = `{
	"tag_name": "latest",
	"html_url": "https://example.com/release",
	"body": "Nightly build.\nCommit: abcdef1234567890\n",
	"assets": [
		{"name": "ClipX.zip", "browser_download_url": "https://example.com/ClipX.zip"},
		{"name": "checksums.txt", "browser_download_url": "https://example.com/sums"}
	]
}`

func TestCheckFindsNewerRelease(t *testing.T) {
	srv := releaseServer(t, releaseJSON)
	c := New("1111111")
	c.URL = srv.URL

	rel, err := c.Check(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, "abcdef1234567890", rel.RemoteSHA)
	assert.Equal(t, "https://example.com/ClipX.zip", rel.DownloadURL)
}

func TestCheckUpToDateByShortSHA(t *testing.T) {
	srv := releaseServer(t, releaseJSON)
	c := New("abcdef1")
	c.URL = srv.URL

	rel, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rel)
}

func TestCheckUnknownLocalSHAAlwaysUpdates(t *testing.T) {
	srv := releaseServer(t, releaseJSON)
	c := New("")
	c.URL = srv.URL

	rel, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rel)
}

func TestCheckSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	c := New("x")
	c.URL = srv.URL
	_, err := c.Check(context.Background())
	assert.Error(t, err)
}

func TestDownloadRequiresAsset(t *testing.T) {
	c := New("x")
	_, err := c.Download(context.Background(), &Release{})
	assert.Error(t, err)
}
