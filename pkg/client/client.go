// Package client implements a polling client for the bookmark API. It keeps a
// single cached copy of the caller's bookmark list and refreshes it on a fixed
// interval, on explicit focus/reconnect triggers, and after every mutation.
// Deletion is optimistic: the item leaves the cache before the server
// confirms, and server truth is re-fetched afterwards either way.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// State is the view state of the cached list.
type State int

const (
	StateLoading State = iota
	StateError
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// ErrUnauthorized is returned when the server rejects the bearer token; the
// caller should obtain a fresh sign-in.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound is returned by Delete when the server reports the bookmark
// absent (or owned by someone else, which looks the same).
var ErrNotFound = errors.New("not found")

// Bookmark mirrors the server's wire shape.
type Bookmark struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// Config configures a Client. BaseURL and Token are required.
type Config struct {
	BaseURL string
	Token   string
	// Interval between background refreshes; defaults to 2s.
	Interval time.Duration
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	// OnChange, when set, is invoked after every refresh with a snapshot of
	// the new state. Called from the poll goroutine.
	OnChange func(State, []Bookmark)
}

// Client is a poll-driven cache over the bookmark list. All exported methods
// are safe for concurrent use.
type Client struct {
	base     string
	token    string
	interval time.Duration
	http     *http.Client
	onChange func(State, []Bookmark)

	mu      sync.RWMutex
	state   State
	list    []Bookmark
	lastErr error

	trigger chan struct{}
	cancel  context.CancelFunc
	done    chan struct{}
}

func New(cfg Config) *Client {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		base:     strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.Token,
		interval: interval,
		http:     hc,
		onChange: cfg.OnChange,
		state:    StateLoading,
		trigger:  make(chan struct{}, 1),
	}
}

// Start begins polling: an immediate fetch, then one per interval, plus any
// queued triggers. Stops when ctx is canceled or Close is called.
func (c *Client) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	go c.loop(ctx)
}

// Close stops the poll loop and waits for it to exit.
func (c *Client) Close() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
}

func (c *Client) loop(ctx context.Context) {
	defer close(c.done)
	c.refresh(ctx)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refresh(ctx)
		case <-c.trigger:
			c.refresh(ctx)
		}
	}
}

// Focus queues a revalidation, mirroring a window-refocus event.
func (c *Client) Focus() { c.Revalidate() }

// Reconnect queues a revalidation, mirroring a network-reconnect event.
func (c *Client) Reconnect() { c.Revalidate() }

// Revalidate queues a fetch of server truth. Multiple pending calls coalesce.
func (c *Client) Revalidate() {
	select {
	case c.trigger <- struct{}{}:
	default:
	}
}

// Snapshot returns the current state, a copy of the cached list, and the last
// fetch error (set only in StateError).
func (c *Client) Snapshot() (State, []Bookmark, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := make([]Bookmark, len(c.list))
	copy(list, c.list)
	return c.state, list, c.lastErr
}

func (c *Client) refresh(ctx context.Context) {
	list, err := c.fetchList(ctx)
	c.mu.Lock()
	if err != nil {
		c.state = StateError
		c.lastErr = err
	} else {
		c.state = StateReady
		c.list = list
		c.lastErr = nil
	}
	state, snapshot := c.state, append([]Bookmark(nil), c.list...)
	c.mu.Unlock()
	if c.onChange != nil {
		c.onChange(state, snapshot)
	}
}

// Add submits a new bookmark. The created item is not injected into the local
// cache; the next refresh surfaces it. On failure the caller keeps its input
// and may resubmit.
func (c *Client) Add(ctx context.Context, url, title string) error {
	body, _ := json.Marshal(map[string]string{"url": url, "title": title})
	resp, err := c.do(ctx, http.MethodPost, "/bookmarks/add", strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return statusErr(resp)
}

// Delete removes the bookmark optimistically: it leaves the local cache
// immediately, then the request is issued, and server truth is re-fetched
// regardless of the outcome. The returned error tells the caller to notify
// the user; the cache itself self-corrects via revalidation.
func (c *Client) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	kept := c.list[:0:0]
	for _, b := range c.list {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	c.list = kept
	c.mu.Unlock()

	resp, err := c.do(ctx, http.MethodPost, "/bookmarks/"+id+"/delete", nil)
	if err != nil {
		c.Revalidate()
		return err
	}
	defer resp.Body.Close()
	if err := statusErr(resp); err != nil {
		c.Revalidate()
		return err
	}
	c.Revalidate()
	return nil
}

func (c *Client) fetchList(ctx context.Context) ([]Bookmark, error) {
	resp, err := c.do(ctx, http.MethodGet, "/bookmarks", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := statusErr(resp); err != nil {
		return nil, err
	}
	var list []Bookmark
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return list, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

func statusErr(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
