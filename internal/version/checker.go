package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	releasesURL  = "https://api.github.com/repos/gxrwes/CS2QuickSetup/releases/latest"
	checkTimeout = 5 * time.Second
)

type GitHubRelease struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// Update describes the result of a release check
type Update struct {
	Available bool
	Latest    string
	URL       string
}

// Checker queries the release feed
type Checker struct {
	Client *http.Client
	URL    string
}

// NewChecker creates a checker against the project's GitHub releases
func NewChecker() *Checker {
	return &Checker{
		Client: &http.Client{Timeout: checkTimeout},
		URL:    releasesURL,
	}
}

// Check reports whether a release newer than currentVersion is published
func (c *Checker) Check(ctx context.Context, currentVersion string) (Update, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return Update{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "cs2quicksetup/"+currentVersion)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return Update{}, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Update{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return Update{}, fmt.Errorf("failed to decode response: %w", err)
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(currentVersion, "v")

	return Update{
		Available: latest != "" && isNewerVersion(latest, current),
		Latest:    latest,
		URL:       release.HTMLURL,
	}, nil
}

// isNewerVersion compares two semantic versions and returns true if latest > current
// Pre-release and build suffixes are ignored: "1.0.3-beta" compares as 1.0.3
func isNewerVersion(latest, current string) bool {
	latestParts := parseVersion(latest)
	currentParts := parseVersion(current)

	maxLen := max(len(latestParts), len(currentParts))
	for len(latestParts) < maxLen {
		latestParts = append(latestParts, 0)
	}
	for len(currentParts) < maxLen {
		currentParts = append(currentParts, 0)
	}

	for i := 0; i < maxLen; i++ {
		if latestParts[i] > currentParts[i] {
			return true
		}
		if latestParts[i] < currentParts[i] {
			return false
		}
	}

	return false
}

// parseVersion parses a version string into integer parts
func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))
	for _, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		result = append(result, num)
	}

	return result
}
