// Package update checks GitHub releases for a newer shopctl build.
package update

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	releasesEndpoint = "https://api.github.com/repos/shopctl/shopctl/releases/latest"
	checkTimeout     = 5 * time.Second
)

// Checker queries a GitHub releases endpoint for the newest published
// version. The zero value is not usable; construct with NewChecker.
type Checker struct {
	Endpoint string
	HTTP     *http.Client
}

func NewChecker() *Checker {
	return &Checker{
		Endpoint: releasesEndpoint,
		HTTP:     &http.Client{Timeout: checkTimeout},
	}
}

// Info describes the outcome of a version check.
type Info struct {
	Current  string
	Latest   string
	URL      string
	Outdated bool
}

type releasePayload struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check reports whether a release newer than current exists. Any
// failure (network, decode, non-200) yields nil so callers never have
// to surface a broken check to the user. Development builds ("dev" or
// empty) are never checked.
func (c *Checker) Check(ctx context.Context, current string) *Info {
	if current == "dev" || current == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var release releasePayload
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil
	}

	info := &Info{
		Current: current,
		Latest:  strings.TrimPrefix(release.TagName, "v"),
		URL:     release.HTMLURL,
	}
	cur, latest := canonical(current), canonical(release.TagName)
	if semver.IsValid(cur) && semver.IsValid(latest) {
		info.Outdated = semver.Compare(latest, cur) > 0
	}
	return info
}

// canonical prefixes a bare version with "v" so semver accepts it.
func canonical(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
