// Package rawg is the gateway to the RAWG game catalog API. All calls are
// read-only; non-success upstream responses propagate as *UpstreamError
// and are never retried.
package rawg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/supgamedex/gamedex-api/internal/domain/entity"
)

// ErrNotFound is returned by FetchByID when the catalog has no such game.
var ErrNotFound = errors.New("game not found in catalog")

// UpstreamError carries the status and message of a failed catalog call.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("catalog api: status %d: %s", e.StatusCode, e.Message)
}

// Preset names a fixed date-range + sort-order combination for Filter.
type Preset string

const (
	PresetNone              Preset = ""
	PresetBestOfYear        Preset = "best_of_year"
	PresetPopularRecentYear Preset = "popular_recent_year"
	PresetBestOfAllTime     Preset = "best_of_all_time"
)

// ValidPreset reports whether s names a known time-window preset.
func ValidPreset(s string) bool {
	switch Preset(s) {
	case PresetNone, PresetBestOfYear, PresetPopularRecentYear, PresetBestOfAllTime:
		return true
	}
	return false
}

// FilterOptions are the catalog filter parameters; zero values are omitted
// from the upstream query.
type FilterOptions struct {
	Page      int
	PageSize  int
	Genre     string
	Developer string
	Platform  string
	Search    string
	Preset    Preset
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	now     func() time.Time
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// List fetches one page of catalog games as-is.
func (c *Client) List(ctx context.Context, page, pageSize int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	return c.get(ctx, "/games", q)
}

// SearchByName fetches one page of catalog games matching name.
func (c *Client) SearchByName(ctx context.Context, name string, page, pageSize int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("search", name)
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	return c.get(ctx, "/games", q)
}

// Filter fetches one page of catalog games with the given filters. The
// catalog owns ranking; presets only pin its date range and ordering.
func (c *Client) Filter(ctx context.Context, opts FilterOptions) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("page_size", strconv.Itoa(opts.PageSize))
	if opts.Genre != "" {
		q.Set("genres", opts.Genre)
	}
	if opts.Developer != "" {
		q.Set("developers", opts.Developer)
	}
	if opts.Platform != "" {
		q.Set("platforms", opts.Platform)
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	switch opts.Preset {
	case PresetBestOfYear:
		year := c.now().Year()
		q.Set("dates", fmt.Sprintf("%d-01-01,%d-12-31", year, year))
		q.Set("ordering", "-rating")
	case PresetPopularRecentYear:
		q.Set("dates", "2024-01-01,2025-12-31")
		q.Set("ordering", "-added")
	case PresetBestOfAllTime:
		q.Set("ordering", "-metacritic")
	}
	return c.get(ctx, "/games", q)
}

type gameResponse struct {
	Name            string `json:"name"`
	BackgroundImage string `json:"background_image"`
	Released        string `json:"released"`
	Platforms       []struct {
		Platform struct {
			Name string `json:"name"`
		} `json:"platform"`
	} `json:"platforms"`
}

// FetchByID fetches a single game and normalizes the subset of fields the
// system persists. Platform names are joined into one display string.
func (c *Client) FetchByID(ctx context.Context, rawgID int64) (*entity.Game, error) {
	raw, err := c.get(ctx, "/games/"+strconv.FormatInt(rawgID, 10), url.Values{})
	if err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) && ue.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var g gameResponse
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("decode catalog game %d: %w", rawgID, err)
	}

	names := make([]string, 0, len(g.Platforms))
	for _, p := range g.Platforms {
		if p.Platform.Name != "" {
			names = append(names, p.Platform.Name)
		}
	}
	return &entity.Game{
		RAWGID:          rawgID,
		Name:            g.Name,
		BackgroundImage: g.BackgroundImage,
		Platforms:       strings.Join(names, ", "),
		Released:        g.Released,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (json.RawMessage, error) {
	q.Set("key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: upstreamMessage(body)}
	}
	return body, nil
}

// upstreamMessage extracts RAWG's {"detail": ...} message when present.
func upstreamMessage(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
