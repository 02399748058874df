package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/glabrego/resh-cli/internal/logging"
)

const (
	DefaultBaseURL   = "https://www.reddit.com"
	DefaultOAuthURL  = "https://oauth.reddit.com"
	DefaultUserAgent = "resh/0.2 (terminal reddit shell)"

	batchLimit = 100
)

var (
	ErrLoginRequired = errors.New("you must login to view this")
	ErrNotFound      = errors.New("not found")
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL           string
	UserAgent         string
	AccessToken       string
	RequestsPerMinute int
	Timeout           time.Duration
	HTTPClient        *http.Client
}

type Client struct {
	baseURL   string
	userAgent string
	token     string
	timeout   time.Duration
	http      *http.Client
	limiter   *rate.Limiter
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
		if opts.AccessToken != "" {
			baseURL = DefaultOAuthURL
		}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		token:     opts.AccessToken,
		timeout:   timeout,
		http:      httpClient,
		limiter:   limiter,
	}
}

// Authenticated reports whether requests carry a user token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

func (c *Client) Subreddit(ctx context.Context, name string) (*Subreddit, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "r/")
	if name == "" {
		return nil, fmt.Errorf("subreddit name is required")
	}
	item, err := c.getThing(ctx, "/r/"+url.PathEscape(name)+"/about.json", "subreddit")
	if err != nil {
		return nil, err
	}
	sub, ok := item.(*Subreddit)
	if !ok {
		return nil, fmt.Errorf("subreddit %s: %w", name, ErrNotFound)
	}
	return sub, nil
}

func (c *Client) User(ctx context.Context, name string) (*User, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "u/")
	if name == "" {
		return nil, fmt.Errorf("user name is required")
	}
	item, err := c.getThing(ctx, "/user/"+url.PathEscape(name)+"/about.json", "user")
	if err != nil {
		return nil, err
	}
	user, ok := item.(*User)
	if !ok {
		return nil, fmt.Errorf("user %s: %w", name, ErrNotFound)
	}
	return user, nil
}

// Comments returns a submission and its top-level comment items. Replies are
// nested inside each comment; collapsed threads surface as Unknown "more" items.
func (c *Client) Comments(ctx context.Context, submissionID string) (*Submission, []Item, error) {
	submissionID = strings.TrimPrefix(strings.TrimSpace(submissionID), "t3_")
	if submissionID == "" {
		return nil, nil, fmt.Errorf("submission id is required")
	}
	body, err := c.get(ctx, "/comments/"+url.PathEscape(submissionID)+".json", nil, "comments")
	if err != nil {
		return nil, nil, err
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(body, &parts); err != nil {
		return nil, nil, fmt.Errorf("decode comments response: %w", err)
	}
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("decode comments response: expected 2 listings, got %d", len(parts))
	}
	head, _, err := decodeListing(parts[0])
	if err != nil {
		return nil, nil, err
	}
	if len(head) == 0 {
		return nil, nil, fmt.Errorf("submission %s: %w", submissionID, ErrNotFound)
	}
	sub, ok := head[0].(*Submission)
	if !ok {
		return nil, nil, fmt.Errorf("submission %s: unexpected %s", submissionID, KindOf(head[0]))
	}
	comments, _, err := decodeListing(parts[1])
	if err != nil {
		return nil, nil, err
	}
	return sub, comments, nil
}

// Frontpage iterates the front page in the given sort order.
func (c *Client) Frontpage(sort string) *Iterator {
	return c.iterate("/"+sortPath(sort)+".json", nil, false)
}

func (c *Client) SubredditPosts(name, sort string) *Iterator {
	return c.iterate("/r/"+url.PathEscape(name)+"/"+sortPath(sort)+".json", nil, false)
}

func (c *Client) Search(query string) *Iterator {
	q := make(url.Values)
	q.Set("q", query)
	return c.iterate("/search.json", q, false)
}

func (c *Client) SubredditSearch(name, query string) *Iterator {
	q := make(url.Values)
	q.Set("q", query)
	q.Set("restrict_sr", "on")
	return c.iterate("/r/"+url.PathEscape(name)+"/search.json", q, false)
}

// SearchSubreddits iterates subreddits whose name or description match query.
func (c *Client) SearchSubreddits(query string) *Iterator {
	q := make(url.Values)
	q.Set("q", query)
	return c.iterate("/subreddits/search.json", q, false)
}

func (c *Client) MySubreddits() *Iterator {
	return c.iterate("/subreddits/mine/subscriber.json", nil, true)
}

func (c *Client) Inbox() *Iterator {
	return c.iterate("/message/inbox.json", nil, true)
}

func (c *Client) UserOverview(name string) *Iterator {
	return c.iterate("/user/"+url.PathEscape(name)+"/overview.json", nil, false)
}

func (c *Client) iterate(path string, q url.Values, needsLogin bool) *Iterator {
	it := &Iterator{client: c, path: path, query: q}
	if needsLogin && !c.Authenticated() {
		it.err = ErrLoginRequired
		it.done = true
	}
	return it
}

// fetchBatch requests one cursor page of a listing endpoint.
func (c *Client) fetchBatch(ctx context.Context, path string, q url.Values, after string) ([]Item, string, error) {
	params := make(url.Values, len(q)+2)
	for k, v := range q {
		params[k] = v
	}
	params.Set("limit", fmt.Sprintf("%d", batchLimit))
	if after != "" {
		params.Set("after", after)
	}
	body, err := c.get(ctx, path, params, "listing")
	if err != nil {
		return nil, "", err
	}
	return decodeListing(body)
}

func (c *Client) getThing(ctx context.Context, path, resource string) (Item, error) {
	body, err := c.get(ctx, path, nil, resource)
	if err != nil {
		return nil, err
	}
	var t thing
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", resource, err)
	}
	return decodeThing(t)
}

func (c *Client) get(ctx context.Context, path string, q url.Values, resource string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s request throttled: %w", resource, err)
	}
	fullPath := path
	if len(q) > 0 {
		fullPath += "?" + q.Encode()
	}
	req, err := c.newRequest(ctx, http.MethodGet, fullPath, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logging.Warn("reddit request failed", "path", path, "err", err)
		return nil, fmt.Errorf("%s request failed: %w", resource, err)
	}
	defer resp.Body.Close()
	logging.Debug("reddit request", "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", resource, path, ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%s failed with status %d: %w", resource, resp.StatusCode, ErrLoginRequired)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%s failed with status %d: %s", resource, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", resource, err)
	}
	return body, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "bearer "+c.token)
	}
	return req, nil
}

func sortPath(sort string) string {
	switch sort {
	case "new", "top", "rising", "controversial":
		return sort
	default:
		return "hot"
	}
}
