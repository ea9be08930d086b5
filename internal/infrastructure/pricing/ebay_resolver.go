package pricing

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shelfmaster/backend/internal/application/lending"
	"github.com/shelfmaster/backend/internal/domain/shared/valueobject"
	"github.com/shelfmaster/backend/internal/infrastructure/config"
)

// maxResponseSize caps responses read from the eBay API (1MB)
const maxResponseSize = 1 << 20

// booksCategoryID is eBay's marketplace category for books
const booksCategoryID = "267"

// EbayPriceResolver resolves the replacement price of a lost book by
// searching eBay listings for its ISBN. The cheapest listed USD price is
// converted to PHP with the configured rate. Lookup failures are not
// errors: a nil Money means the fine must be entered manually.
type EbayPriceResolver struct {
	cfg        config.PricingConfig
	httpClient *http.Client
	logger     *zap.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewEbayPriceResolver creates a new eBay price resolver
func NewEbayPriceResolver(cfg config.PricingConfig, logger *zap.Logger) *EbayPriceResolver {
	return &EbayPriceResolver{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

// ResolveLostFine looks up the market price of the given ISBN in PHP
func (r *EbayPriceResolver) ResolveLostFine(ctx context.Context, isbn string) (*valueobject.Money, error) {
	if isbn == "" {
		return nil, nil
	}

	usd, err := r.fetchPriceUSD(ctx, isbn)
	if err != nil {
		r.logger.Warn("market price lookup failed",
			zap.String("isbn", isbn),
			zap.Error(err),
		)
		return nil, nil
	}
	if usd == nil {
		return nil, nil
	}

	rate := decimal.NewFromFloat(r.cfg.UsdToPhpRate)
	php := valueobject.NewMoneyPHP(usd.Mul(rate).Round(2))
	return &php, nil
}

type itemSummaryResponse struct {
	ItemSummaries []struct {
		Price struct {
			Value    string `json:"value"`
			Currency string `json:"currency"`
		} `json:"price"`
	} `json:"itemSummaries"`
}

func (r *EbayPriceResolver) fetchPriceUSD(ctx context.Context, isbn string) (*decimal.Decimal, error) {
	token, err := r.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("q", isbn)
	q.Set("category_ids", booksCategoryID)
	endpoint := fmt.Sprintf("%s/item_summary/search?%s", strings.TrimRight(r.cfg.EbayBaseURL, "/"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("item search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, err
	}

	var result itemSummaryResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode item search response: %w", err)
	}

	if len(result.ItemSummaries) == 0 {
		return nil, nil
	}

	price, err := decimal.NewFromString(result.ItemSummaries[0].Price.Value)
	if err != nil || price.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}
	return &price, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// getAccessToken returns a cached client-credentials token, refreshing it
// when within a minute of expiry
func (r *EbayPriceResolver) getAccessToken(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.accessToken != "" && time.Now().Before(r.tokenExpiry.Add(-time.Minute)) {
		return r.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "https://api.ebay.com/oauth/api_scope")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.EbayAuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(r.cfg.EbayClientID + ":" + r.cfg.EbayClientSecret))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", err
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	r.accessToken = token.AccessToken
	r.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return r.accessToken, nil
}

var _ lending.MarketPriceResolver = (*EbayPriceResolver)(nil)
