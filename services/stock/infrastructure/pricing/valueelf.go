// Package pricing implements the Value Elf pricing collaborator client.
//
// Protocol: GET {base}?id={itemID}&quality={quality}. A 200 response body
// is the price in pence; 404 means the collaborator has no price for the
// item (an intentional absence, not a failure); anything else is a
// failure. Timeouts and transport faults surface as per-item failures —
// the enrichment stage never sees a stage-wide abort from here.
package pricing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/ghuser/gildedstock/pkg/cache"
	"github.com/ghuser/gildedstock/pkg/logger"
	"github.com/ghuser/gildedstock/services/stock/domain/models"
)

const (
	requestTimeout = 5 * time.Second
	l1Size         = 1024
)

// cachedPrice is an L1 entry: nil pence records a known "no price" answer.
type cachedPrice struct {
	pence *int
}

// ValueElfClient prices items against the Value Elf service, with an
// in-process LRU in front of the shared Redis price cache. The client-side
// rate limiter keeps a large stock list from hammering the collaborator.
type ValueElfClient struct {
	base    *url.URL
	httpc   *http.Client
	limiter *rate.Limiter
	l1      *lru.Cache[string, cachedPrice]
	l2      *cache.PriceCache // nil disables the shared tier
	log     logger.Logger
}

// NewValueElfClient builds a client for the given endpoint. priceCache may
// be nil when Redis is unavailable; the in-process tier still applies.
func NewValueElfClient(rawURL string, priceCache *cache.PriceCache, log logger.Logger) (*ValueElfClient, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse pricing url: %w", err)
	}
	l1, err := lru.New[string, cachedPrice](l1Size)
	if err != nil {
		return nil, fmt.Errorf("create price lru: %w", err)
	}
	return &ValueElfClient{
		base: base,
		httpc: &http.Client{
			Timeout:   requestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter: rate.NewLimiter(rate.Limit(50), 10),
		l1:      l1,
		l2:      priceCache,
		log:     log,
	}, nil
}

// Price returns the item's price, nil for an intentional absence, or an
// error for a pricing failure.
func (c *ValueElfClient) Price(ctx context.Context, item models.Item) (*models.Price, error) {
	key := fmt.Sprintf("%s:%d", item.ID, item.Quality)

	if hit, ok := c.l1.Get(key); ok {
		return penceToPrice(hit.pence)
	}
	if c.l2 != nil {
		if pence, found, err := c.l2.Get(ctx, item.ID, item.Quality); err == nil && found {
			c.l1.Add(key, cachedPrice{pence: pence})
			return penceToPrice(pence)
		} else if err != nil {
			c.log.WarnContext(ctx, "price cache read failed", "item_id", item.ID, "error", err)
		}
	}

	pence, err := c.fetch(ctx, item)
	if err != nil {
		return nil, err
	}

	c.l1.Add(key, cachedPrice{pence: pence})
	if c.l2 != nil {
		if err := c.l2.Set(ctx, item.ID, item.Quality, pence); err != nil {
			c.log.WarnContext(ctx, "price cache write failed", "item_id", item.ID, "error", err)
		}
	}
	return penceToPrice(pence)
}

func (c *ValueElfClient) fetch(ctx context.Context, item models.Item) (*int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("pricing rate limit: %w", err)
	}

	u := *c.base
	q := u.Query()
	q.Set("id", item.ID.String())
	q.Set("quality", strconv.Itoa(item.Quality))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build pricing request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pricing request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
		if err != nil {
			return nil, fmt.Errorf("read pricing response: %w", err)
		}
		pence, err := strconv.Atoi(strings.TrimSpace(string(body)))
		if err != nil {
			return nil, fmt.Errorf("parse pricing response %q: %w", body, err)
		}
		return &pence, nil
	case http.StatusNotFound:
		return nil, nil // the collaborator knows the item but holds no price
	default:
		return nil, fmt.Errorf("pricing service returned %d", resp.StatusCode)
	}
}

func penceToPrice(pence *int) (*models.Price, error) {
	if pence == nil {
		return nil, nil
	}
	p, err := models.NewPrice(*pence)
	if err != nil {
		return nil, fmt.Errorf("invalid price from collaborator: %w", err)
	}
	return &p, nil
}
