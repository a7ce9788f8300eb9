package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ethanolivertroy/depfix/internal/cache"
	"github.com/ethanolivertroy/depfix/internal/models"
)

// ErrChangelogNotFound reports a release the fetcher could not locate.
// Callers treat it as a non-fatal omission.
var ErrChangelogNotFound = errors.New("changelog not found")

// Changelog is the retrieved release text for one version of a coordinate.
type Changelog struct {
	Coordinate models.Coordinate `json:"coordinate"`
	Version    string            `json:"version"`
	URL        string            `json:"url"`
	Body       string            `json:"body"`
}

// ChangelogFetcher retrieves release notes from the GitHub releases API for
// coordinates whose repository can be guessed. Responses are cached on disk
// between runs and in memory within a run.
type ChangelogFetcher struct {
	httpClient *http.Client
	cache      *cache.Cache
	memory     *lru.Cache[string, *Changelog]
	token      string
}

// NewChangelogFetcher creates a fetcher. The disk cache and token are both
// optional; a token raises the GitHub API rate limit.
func NewChangelogFetcher(c *cache.Cache, token string, timeout time.Duration) *ChangelogFetcher {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	memory, _ := lru.New[string, *Changelog](256)
	return &ChangelogFetcher{
		httpClient: &http.Client{Timeout: timeout},
		cache:      c,
		memory:     memory,
		token:      token,
	}
}

// Fetch retrieves the changelog for one version of a coordinate. Release
// tag naming varies by project, so both the bare version and a v-prefixed
// tag are tried.
func (f *ChangelogFetcher) Fetch(ctx context.Context, coord models.Coordinate, version string) (*Changelog, error) {
	key := coord.GA() + ":" + version
	if cl, ok := f.memory.Get(key); ok {
		return cl, nil
	}

	repo := guessGitHubRepo(coord)
	if repo == "" {
		return nil, ErrChangelogNotFound
	}

	var lastErr error = ErrChangelogNotFound
	for _, tag := range []string{version, "v" + version} {
		cl, err := f.fetchRelease(ctx, coord, repo, version, tag)
		if err == nil {
			f.memory.Add(key, cl)
			return cl, nil
		}
		if !errors.Is(err, ErrChangelogNotFound) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (f *ChangelogFetcher) fetchRelease(ctx context.Context, coord models.Coordinate, repo, version, tag string) (*Changelog, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/releases/tags/%s", repo, tag)

	var data []byte
	if f.cache != nil {
		if cached, ok := f.cache.Get(url); ok {
			data = cached
		}
	}

	if data == nil {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		if f.token != "" {
			req.Header.Set("Authorization", "Bearer "+f.token)
		}

		resp, err := f.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch release %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrChangelogNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("github API returned status %d for %s", resp.StatusCode, url)
		}

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read release body: %w", err)
		}
		if f.cache != nil {
			f.cache.Set(url, data)
		}
	}

	var rel githubRelease
	if err := json.Unmarshal(data, &rel); err != nil {
		return nil, fmt.Errorf("failed to parse release %s: %w", url, err)
	}
	return &Changelog{
		Coordinate: coord,
		Version:    version,
		URL:        rel.HTMLURL,
		Body:       rel.Body,
	}, nil
}

// githubRelease is the subset of the GitHub release response we use.
type githubRelease struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
}

// knownRepos maps library identities (group:artifact, with a group-level
// fallback) to their GitHub repositories.
var knownRepos = map[string]string{
	// group:artifact entries
	"com.fasterxml.jackson.core:jackson-databind":    "FasterXML/jackson-databind",
	"com.fasterxml.jackson.core:jackson-core":        "FasterXML/jackson-core",
	"com.fasterxml.jackson.core:jackson-annotations": "FasterXML/jackson-annotations",
	"com.google.guava:guava":                         "google/guava",
	"com.google.code.gson:gson":                      "google/gson",
	"org.hibernate.orm:hibernate-core":               "hibernate/hibernate-orm",
	"ch.qos.logback:logback-classic":                 "qos-ch/logback",
	"ch.qos.logback:logback-core":                    "qos-ch/logback",

	// group-level entries
	"org.apache.tomcat.embed":      "apache/tomcat",
	"org.apache.logging.log4j":     "apache/logging-log4j2",
	"org.springframework":          "spring-projects/spring-framework",
	"org.springframework.boot":     "spring-projects/spring-boot",
	"org.springframework.data":     "spring-projects/spring-data-commons",
	"io.netty":                     "netty/netty",
	"io.micrometer":                "micrometer-metrics/micrometer",
	"org.jsoup":                    "jhy/jsoup",
	"commons-io":                   "apache/commons-io",
	"commons-fileupload":           "apache/commons-fileupload",
	"org.apache.commons":           "apache/commons-lang",
}

// guessGitHubRepo resolves a coordinate to a GitHub repository, most
// specific entry first. Unknown libraries return "".
func guessGitHubRepo(coord models.Coordinate) string {
	if repo, ok := knownRepos[coord.GA()]; ok {
		return repo
	}
	if repo, ok := knownRepos[coord.Group]; ok {
		return repo
	}
	// io.github.* groups encode the repo owner directly.
	if owner, ok := strings.CutPrefix(coord.Group, "io.github."); ok {
		return owner + "/" + coord.Artifact
	}
	return ""
}
