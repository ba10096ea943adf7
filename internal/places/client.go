package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/lasosearch/lasso/internal/geo"
	"github.com/lasosearch/lasso/internal/resilience"
)

// Options configures the provider client.
type Options struct {
	BaseURL string
	APIKey  string
	// RequestsPerSecond throttles outbound calls; zero means 5 rps.
	RequestsPerSecond float64
	// PageConcurrency bounds parallel page fetches; zero means 4.
	PageConcurrency int
	Timeout         time.Duration
	// Retry controls backoff on 429/5xx responses; a zero MaxAttempts
	// selects the default policy.
	Retry resilience.RetryConfig
}

// Client is an HTTP client for the places provider's circle-search API.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	limiter     *rate.Limiter
	concurrency int
	retry       resilience.RetryConfig
}

// NewClient creates a places client.
func NewClient(opts Options) *Client {
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	conc := opts.PageConcurrency
	if conc <= 0 {
		conc = 4
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	retry := opts.Retry
	if retry.MaxAttempts == 0 {
		retry = resilience.DefaultRetryConfig()
	}
	return &Client{
		baseURL:     opts.BaseURL,
		apiKey:      opts.APIKey,
		httpClient:  &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
		concurrency: conc,
		retry:       retry,
	}
}

// searchPage is the provider's paginated circle-search response.
type searchPage struct {
	Places     []Place `json:"places"`
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
}

// SearchCircle fetches every place inside the circle, paging through the
// provider's results. The first page is fetched synchronously to learn the
// page count; the remainder are fetched with bounded concurrency. Results
// come back in a stable page-then-index order regardless of fetch timing.
func (c *Client) SearchCircle(ctx context.Context, circle geo.Circle, opts SearchOptions) ([]Place, error) {
	first, err := c.getPage(ctx, circle, opts, 1)
	if err != nil {
		return nil, err
	}

	pages := make([][]Place, first.TotalPages)
	if first.TotalPages > 0 {
		pages[0] = first.Places
	} else {
		pages = [][]Place{first.Places}
	}

	if first.TotalPages > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.concurrency)

		var mu sync.Mutex
		for page := 2; page <= first.TotalPages; page++ {
			g.Go(func() error {
				p, err := c.getPage(gctx, circle, opts, page)
				if err != nil {
					return err
				}
				mu.Lock()
				pages[page-1] = p.Places
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var all []Place
	for _, p := range pages {
		all = append(all, p...)
	}
	if opts.Limit > 0 && len(all) > opts.Limit {
		all = all[:opts.Limit]
	}

	zap.L().Debug("places: circle search complete",
		zap.Float64("radius_m", circle.Radius),
		zap.Int("pages", len(pages)),
		zap.Int("places", len(all)))
	return all, nil
}

// getPage fetches one result page, retrying transient provider failures.
func (c *Client) getPage(ctx context.Context, circle geo.Circle, opts SearchOptions, page int) (*searchPage, error) {
	return resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*searchPage, error) {
		return c.fetchPage(ctx, circle, opts, page)
	})
}

func (c *Client) fetchPage(ctx context.Context, circle geo.Circle, opts SearchOptions, page int) (*searchPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "places: rate limit")
	}

	params := url.Values{
		"lat":    {fmt.Sprintf("%.6f", circle.Center.Lat)},
		"lng":    {fmt.Sprintf("%.6f", circle.Center.Lng)},
		"radius": {fmt.Sprintf("%.0f", circle.Radius)},
		"page":   {fmt.Sprintf("%d", page)},
	}
	if opts.Category != "" {
		params.Set("category", opts.Category)
	}

	reqURL := c.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "places: build request")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "places: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("places: provider returned status %d", resp.StatusCode)
		if resilience.TransientStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "places: read body")
	}

	var sp searchPage
	if err := json.Unmarshal(body, &sp); err != nil {
		return nil, eris.Wrap(err, "places: parse response")
	}
	return &sp, nil
}

// SortByName orders places alphabetically, stable for equal names.
func SortByName(places []Place) {
	sort.SliceStable(places, func(i, j int) bool {
		return places[i].Name < places[j].Name
	})
}

// SortByRating orders places best-first.
func SortByRating(places []Place) {
	sort.SliceStable(places, func(i, j int) bool {
		return places[i].Rating > places[j].Rating
	})
}

// SortByDistance orders places nearest-first relative to ref, filling
// DistanceMeters on every element.
func SortByDistance(places []Place, ref geo.Point) {
	for i := range places {
		places[i].DistanceMeters = geo.Haversine(ref, places[i].Location)
	}
	sort.SliceStable(places, func(i, j int) bool {
		return places[i].DistanceMeters < places[j].DistanceMeters
	})
}
