package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
	"git.home.luguber.info/inful/agencysite/internal/logfields"
	"git.home.luguber.info/inful/agencysite/internal/metrics"
	"git.home.luguber.info/inful/agencysite/internal/posts"
	"git.home.luguber.info/inful/agencysite/internal/retry"
	"git.home.luguber.info/inful/agencysite/internal/version"
)

const (
	postsEndpoint = "/wp-json/wp/v2/posts"
	// maxPages bounds paging if the server keeps reporting more pages.
	maxPages = 50
)

// WordPressOptions configures a WordPressClient.
type WordPressOptions struct {
	BaseURL     string
	Username    string
	AppPassword string
	PerPage     int
	HTTPClient  *http.Client
	Retry       retry.Policy
	Recorder    metrics.Recorder
}

// WordPressClient reads posts from the WordPress REST API.
type WordPressClient struct {
	httpClient  *http.Client
	baseURL     string
	username    string
	appPassword string
	perPage     int
	policy      retry.Policy
	recorder    metrics.Recorder
}

// NewWordPressClient creates a client for the site at opts.BaseURL.
func NewWordPressClient(opts WordPressOptions) *WordPressClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	perPage := opts.PerPage
	if perPage <= 0 || perPage > 100 {
		perPage = 100
	}
	policy := opts.Retry
	if policy.Validate() != nil {
		policy = retry.DefaultPolicy()
	}
	return &WordPressClient{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		username:    opts.Username,
		appPassword: opts.AppPassword,
		perPage:     perPage,
		policy:      policy,
		recorder:    metrics.OrNoop(opts.Recorder),
	}
}

// AllPosts pages through /wp/v2/posts until X-WP-TotalPages is reached.
func (c *WordPressClient) AllPosts(ctx context.Context) ([]posts.Post, error) {
	start := time.Now()
	var all []posts.Post
	var err error
	defer func() { c.recorder.ObserveCMSFetch("list", time.Since(start), err == nil) }()

	for page := 1; page <= maxPages; page++ {
		q := url.Values{}
		q.Set("_embed", "1")
		q.Set("per_page", strconv.Itoa(c.perPage))
		q.Set("page", strconv.Itoa(page))

		var batch []wpPost
		var header http.Header
		header, err = c.get(ctx, "list", q, &batch)
		if err != nil {
			return nil, err
		}
		for i := range batch {
			all = append(all, batch[i].toPost())
		}

		totalPages, convErr := strconv.Atoi(header.Get("X-WP-TotalPages"))
		if convErr != nil || page >= totalPages || len(batch) == 0 {
			break
		}
	}
	return all, nil
}

// PostBySlug queries /wp/v2/posts?slug=. An empty result is not an error.
func (c *WordPressClient) PostBySlug(ctx context.Context, slug string) (*posts.Post, error) {
	start := time.Now()
	var err error
	defer func() { c.recorder.ObserveCMSFetch("get", time.Since(start), err == nil) }()

	q := url.Values{}
	q.Set("_embed", "1")
	q.Set("slug", slug)

	var batch []wpPost
	if _, err = c.get(ctx, "get", q, &batch); err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, nil
	}
	p := batch[0].toPost()
	return &p, nil
}

// Ping requests a single post id to confirm the REST API answers.
func (c *WordPressClient) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("per_page", "1")
	q.Set("_fields", "id")
	var ignored []json.RawMessage
	_, err := c.get(ctx, "ping", q, &ignored)
	return err
}

func (c *WordPressClient) get(ctx context.Context, op string, query url.Values, result any) (http.Header, error) {
	var header http.Header
	err := retry.Do(ctx, c.policy, func(ctx context.Context) error {
		req, err := c.newRequest(ctx, query)
		if err != nil {
			return err
		}
		header, err = c.doRequest(req, result)
		return err
	}, func(attempt int, err error) {
		c.recorder.IncCMSRetry(op)
		slog.WarnContext(ctx, "Retrying CMS request",
			logfields.Attempt(attempt),
			logfields.Error(err))
	})
	return header, err
}

func (c *WordPressClient) newRequest(ctx context.Context, query url.Values) (*http.Request, error) {
	u := c.baseURL + postsEndpoint + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, errors.CMSError("failed to create request").
			WithCause(err).
			WithContext("url", u).
			Build()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "agencysite/"+version.Version)
	if c.username != "" {
		req.SetBasicAuth(c.username, c.appPassword)
	}
	return req, nil
}

func (c *WordPressClient) doRequest(req *http.Request, result any) (http.Header, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, errors.WrapError(err, errors.CategoryCMS, "cms request canceled").
				WithContext("url", req.URL.String()).
				Build()
		}
		return nil, errors.NetworkError("failed to execute cms request").
			WithCause(err).
			WithContext("url", req.URL.String()).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		limitedBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		bodyStr := strings.ReplaceAll(string(limitedBody), "\n", " ")

		b := errors.CMSError(fmt.Sprintf("cms API error: %s", resp.Status))
		switch {
		case resp.StatusCode == http.StatusNotFound:
			b = errors.NotFoundError("cms endpoint not found")
		case resp.StatusCode == http.StatusTooManyRequests:
			b = b.RateLimit()
		case resp.StatusCode >= 500:
			b = b.Retryable()
		}
		return nil, b.
			WithContext("code", resp.StatusCode).
			WithContext("url", req.URL.String()).
			WithContext("response", bodyStr).
			Build()
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, errors.CMSError("failed to decode cms response").
			WithCause(err).
			WithContext("url", req.URL.String()).
			Build()
	}
	return resp.Header, nil
}
