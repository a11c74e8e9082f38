// Package updater checks GitHub for a newer clipx build and downloads it.
// Releases are published under a rolling "latest" tag whose body names the
// commit it was built from; builds compare that against their own commit to
// decide whether an update is pending.
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"
)

// DefaultReleaseURL is the rolling release endpoint.
const DefaultReleaseURL = "https://api.github.com/repos/sooswastaken/ClipX/releases/tags/latest"

// AssetName is the release asset carrying the app bundle.
const AssetName = "ClipX.zip"

var commitLine = regexp.MustCompile(`Commit:\s*([0-9a-f]{7,40})`)

// Release describes an available update.
type Release struct {
	TagName     string
	HTMLURL     string
	Body        string
	RemoteSHA   string
	DownloadURL string
}

// Checker queries the release endpoint.
type Checker struct {
	URL      string
	LocalSHA string
	Client   *http.Client
}

// New returns a Checker for the default endpoint. localSHA is the commit the
// running binary was built from (empty when built from a dirty tree).
func New(localSHA string) *Checker {
	return &Checker{
		URL:      DefaultReleaseURL,
		LocalSHA: localSHA,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Check fetches the rolling release and reports whether it is newer than the
// running build. Returns (nil, nil) when already up to date.
func (c *Checker) Check(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch release: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release endpoint returned %s", resp.Status)
	}

	var payload struct {
		TagName string `json:"tag_name"`
		HTMLURL string `json:"html_url"`
		Body    string `json:"body"`
		Assets  []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}

	rel := &Release{TagName: payload.TagName, HTMLURL: payload.HTMLURL, Body: payload.Body}
	for _, a := range payload.Assets {
		if a.Name == AssetName {
			rel.DownloadURL = a.BrowserDownloadURL
			break
		}
	}
	if m := commitLine.FindStringSubmatch(payload.Body); m != nil {
		rel.RemoteSHA = m[1]
	}

	if c.LocalSHA != "" && rel.RemoteSHA != "" && sameCommit(c.LocalSHA, rel.RemoteSHA) {
		slog.Debug("already on the latest build", "sha", c.LocalSHA)
		return nil, nil
	}
	return rel, nil
}

// sameCommit compares a short and a long form of the same SHA.
func sameCommit(a, b string) bool {
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

// Download fetches the release asset to a temporary file and returns its
// path. The caller hands the archive to the install/relaunch flow.
func (c *Checker) Download(ctx context.Context, rel *Release) (string, error) {
	if rel == nil || rel.DownloadURL == "" {
		return "", fmt.Errorf("release has no %s asset", AssetName)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rel.DownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned %s", resp.Status)
	}

	f, err := os.CreateTemp("", "clipx-update-*.zip")
	if err != nil {
		return "", fmt.Errorf("temp file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write archive: %w", err)
	}
	slog.Info("update downloaded", "tag", rel.TagName, "path", f.Name())
	return f.Name(), nil
}
