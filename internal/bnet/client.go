// Package bnet is the typed client for the upstream game-data catalog.
package bnet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/logger"
	"github.com/osse101/FreeLunch_Go/internal/metrics"
)

// Config configures a Client
type Config struct {
	ClientID          string
	ClientSecret      string
	Region            string
	Locale            string
	BaseURL           string
	TokenURL          string
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	RetryWait         time.Duration
	RetryMaxWait      time.Duration
	Timeout           time.Duration
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.BaseURL == "" {
		c.BaseURL = fmt.Sprintf("https://%s.api.blizzard.com", c.Region)
	}
	if c.TokenURL == "" {
		c.TokenURL = DefaultTokenURL
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = DefaultRPS
	}
	if c.Burst <= 0 {
		c.Burst = DefaultBurst
	}
	if c.RetryWait <= 0 {
		c.RetryWait = DefaultRetryWait
	}
	if c.RetryMaxWait < c.RetryWait {
		c.RetryMaxWait = max(DefaultRetryMaxWait, c.RetryWait)
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Client owns the bearer token and issues one request at a time per caller.
// It is safe for concurrent use.
type Client struct {
	cfg       Config
	http      *resty.Client
	tokenHTTP *resty.Client
	limiter   *rate.Limiter

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// New creates a Client. No request is made until the first accessor call.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	c := &Client{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		now:     time.Now,
	}

	c.tokenHTTP = resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		AddRetryCondition(retryTransient)

	c.http = resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		AddRetryCondition(retryTransient).
		AddRetryCondition(retryUnauthorizedOnce)

	c.http.OnBeforeRequest(c.authorize)
	c.http.OnAfterResponse(c.dropRejectedToken)

	return c
}

// retryTransient retries transport failures, 429 and 5xx
func retryTransient(resp *resty.Response, err error) bool {
	if err != nil {
		var upErr *UpstreamError
		switch {
		case errors.As(err, &upErr), errors.Is(err, domain.ErrMalformedResponse):
			return false
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return false
		}
		return true
	}
	if resp == nil {
		return false
	}
	code := resp.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// retryUnauthorizedOnce gives a rejected token exactly one more attempt
func retryUnauthorizedOnce(resp *resty.Response, err error) bool {
	if err != nil || resp == nil {
		return false
	}
	return resp.StatusCode() == http.StatusUnauthorized && resp.Request.Attempt <= 1
}

// authorize runs before every attempt, retries included
func (c *Client) authorize(_ *resty.Client, req *resty.Request) error {
	ctx := req.Context()
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgRateLimitWait, err)
	}
	token, err := c.ensureToken(ctx)
	if err != nil {
		return err
	}
	req.SetAuthToken(token)
	if req.Attempt > 1 {
		logger.FromContext(ctx).Debug(LogMsgRetryingRequest, "url", req.URL, "attempt", req.Attempt)
	}
	return nil
}

func (c *Client) dropRejectedToken(_ *resty.Client, resp *resty.Response) error {
	if resp.StatusCode() == http.StatusUnauthorized {
		logger.FromContext(resp.Request.Context()).Warn(LogMsgTokenRejected)
		c.InvalidateToken()
	}
	return nil
}

// HasValidToken reports whether a cached token exists and is not within TokenExpiryMargin of expiry
func (c *Client) HasValidToken() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validLocked()
}

func (c *Client) validLocked() bool {
	return c.token != "" && c.now().Add(TokenExpiryMargin).Before(c.expiresAt)
}

// InvalidateToken forces the next request to exchange credentials again
func (c *Client) InvalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}

func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.validLocked() {
		return c.token, nil
	}

	var body tokenResponse
	resp, err := c.tokenHTTP.R().
		SetContext(ctx).
		SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret).
		SetFormData(map[string]string{paramGrantType: grantClientCredentials}).
		Post(c.cfg.TokenURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenExchange, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: %w", ErrTokenExchange, &UpstreamError{
			StatusCode: resp.StatusCode(),
			Endpoint:   EndpointToken,
			Body:       snippet(resp.Body()),
		})
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("%w: %w: %w", ErrTokenExchange, domain.ErrMalformedResponse, err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("%w: %w: %s", ErrTokenExchange, domain.ErrMalformedResponse, ErrMsgTokenMissing)
	}

	c.token = body.AccessToken
	c.expiresAt = c.now().Add(time.Duration(body.ExpiresIn) * time.Second)
	metrics.TokenRefreshes.Inc()
	logger.FromContext(ctx).Debug(LogMsgTokenRefreshed, "expires_at", c.expiresAt)
	return c.token, nil
}

// get issues a GET for endpoint and decodes the body into out
func (c *Client) get(ctx context.Context, endpoint string, version domain.GameVersion, path string, params map[string]string, out any) error {
	namespace, err := resolveNamespace(endpoint, version, c.cfg.Region)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(params).
		SetQueryParam(paramNamespace, namespace).
		SetQueryParam(paramLocale, c.cfg.Locale).
		Get(path)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.StatusTransportError).Inc()
		return fmt.Errorf("%s %s: %w", ErrMsgRequestFailed, endpoint, err)
	}
	metrics.UpstreamRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode())).Inc()

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return fmt.Errorf("%w: %s %v", domain.ErrNotFound, endpoint, params)
	case !resp.IsSuccess():
		return &UpstreamError{
			StatusCode: resp.StatusCode(),
			Endpoint:   endpoint,
			Body:       snippet(resp.Body()),
		}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: %s %s: %w", domain.ErrMalformedResponse, ErrMsgDecodeFailed, endpoint, err)
	}
	return nil
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// GetProfessionIndex lists professions
func (c *Client) GetProfessionIndex(ctx context.Context) (*ProfessionIndex, error) {
	var out ProfessionIndex
	if err := c.get(ctx, EndpointProfessionIndex, domain.GameVersionRetail, pathProfessionIndex, nil, &out); err != nil {
		return nil, err
	}
	if out.Professions == nil {
		return nil, fmt.Errorf("%w: %s has no professions", domain.ErrMalformedResponse, EndpointProfessionIndex)
	}
	return &out, nil
}

// GetProfession fetches a profession with its skill tiers
func (c *Client) GetProfession(ctx context.Context, professionID int) (*Profession, error) {
	var out Profession
	params := map[string]string{"professionId": itoa(professionID)}
	if err := c.get(ctx, EndpointProfession, domain.GameVersionRetail, pathProfession, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfessionMedia fetches the media document of a profession
func (c *Client) GetProfessionMedia(ctx context.Context, professionID int) (*Media, error) {
	var out Media
	params := map[string]string{"professionId": itoa(professionID)}
	if err := c.get(ctx, EndpointProfessionMedia, domain.GameVersionRetail, pathProfessionMedia, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSkillTier fetches a skill tier with its categorized recipes
func (c *Client) GetSkillTier(ctx context.Context, professionID, skillTierID int) (*SkillTier, error) {
	var out SkillTier
	params := map[string]string{"professionId": itoa(professionID), "skillTierId": itoa(skillTierID)}
	if err := c.get(ctx, EndpointSkillTier, domain.GameVersionRetail, pathSkillTier, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRecipe fetches a recipe
func (c *Client) GetRecipe(ctx context.Context, recipeID int) (*Recipe, error) {
	var out Recipe
	params := map[string]string{"recipeId": itoa(recipeID)}
	if err := c.get(ctx, EndpointRecipe, domain.GameVersionRetail, pathRecipe, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRecipeMedia fetches the media document of a recipe
func (c *Client) GetRecipeMedia(ctx context.Context, recipeID int) (*Media, error) {
	var out Media
	params := map[string]string{"recipeId": itoa(recipeID)}
	if err := c.get(ctx, EndpointRecipeMedia, domain.GameVersionRetail, pathRecipeMedia, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetItem fetches an item for one game version
func (c *Client) GetItem(ctx context.Context, version domain.GameVersion, itemID int) (*Item, error) {
	var out Item
	params := map[string]string{"itemId": itoa(itemID)}
	if err := c.get(ctx, EndpointItem, version, pathItem, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetItemMedia fetches the media document of an item for one game version
func (c *Client) GetItemMedia(ctx context.Context, version domain.GameVersion, itemID int) (*Media, error) {
	var out Media
	params := map[string]string{"itemId": itoa(itemID)}
	if err := c.get(ctx, EndpointItemMedia, version, pathItemMedia, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetItemClassIndex lists item classes
func (c *Client) GetItemClassIndex(ctx context.Context, version domain.GameVersion) (*ItemClassIndex, error) {
	var out ItemClassIndex
	if err := c.get(ctx, EndpointItemClassIndex, version, pathItemClassIndex, nil, &out); err != nil {
		return nil, err
	}
	if out.ItemClasses == nil {
		return nil, fmt.Errorf("%w: %s has no item_classes", domain.ErrMalformedResponse, EndpointItemClassIndex)
	}
	return &out, nil
}

// GetItemSubclass looks up one class x subclass pair. A missing pair is domain.ErrNotFound.
func (c *Client) GetItemSubclass(ctx context.Context, version domain.GameVersion, classID, subclassID int) (*ItemSubclass, error) {
	var out ItemSubclass
	params := map[string]string{"itemClassId": itoa(classID), "itemSubclassId": itoa(subclassID)}
	if err := c.get(ctx, EndpointItemSubclass, version, pathItemSubclass, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRegionIndex lists region links
func (c *Client) GetRegionIndex(ctx context.Context, version domain.GameVersion) (*RegionIndex, error) {
	var out RegionIndex
	if err := c.get(ctx, EndpointRegionIndex, version, pathRegionIndex, nil, &out); err != nil {
		return nil, err
	}
	if out.Regions == nil {
		return nil, fmt.Errorf("%w: %s has no regions", domain.ErrMalformedResponse, EndpointRegionIndex)
	}
	return &out, nil
}

// GetRegion fetches a region
func (c *Client) GetRegion(ctx context.Context, version domain.GameVersion, regionID int) (*Region, error) {
	var out Region
	params := map[string]string{"regionId": itoa(regionID)}
	if err := c.get(ctx, EndpointRegion, version, pathRegion, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRealmIndex lists realms
func (c *Client) GetRealmIndex(ctx context.Context, version domain.GameVersion) (*RealmIndex, error) {
	var out RealmIndex
	if err := c.get(ctx, EndpointRealmIndex, version, pathRealmIndex, nil, &out); err != nil {
		return nil, err
	}
	if out.Realms == nil {
		return nil, fmt.Errorf("%w: %s has no realms", domain.ErrMalformedResponse, EndpointRealmIndex)
	}
	return &out, nil
}

// GetRealm fetches a realm by slug
func (c *Client) GetRealm(ctx context.Context, version domain.GameVersion, slug string) (*Realm, error) {
	var out Realm
	params := map[string]string{"realmSlug": slug}
	if err := c.get(ctx, EndpointRealm, version, pathRealm, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetConnectedRealmIndex lists connected-realm links
func (c *Client) GetConnectedRealmIndex(ctx context.Context, version domain.GameVersion) (*ConnectedRealmIndex, error) {
	var out ConnectedRealmIndex
	if err := c.get(ctx, EndpointConnectedRealmIdx, version, pathConnectedRealmIdx, nil, &out); err != nil {
		return nil, err
	}
	if out.ConnectedRealms == nil {
		return nil, fmt.Errorf("%w: %s has no connected_realms", domain.ErrMalformedResponse, EndpointConnectedRealmIdx)
	}
	return &out, nil
}

// GetConnectedRealm fetches a connected realm with its member realms
func (c *Client) GetConnectedRealm(ctx context.Context, version domain.GameVersion, connectedRealmID int) (*ConnectedRealm, error) {
	var out ConnectedRealm
	params := map[string]string{"connectedRealmId": itoa(connectedRealmID)}
	if err := c.get(ctx, EndpointConnectedRealm, version, pathConnectedRealm, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAuctionHouseIndex lists the faction houses of a connected realm
func (c *Client) GetAuctionHouseIndex(ctx context.Context, version domain.GameVersion, connectedRealmID int) (*AuctionHouseIndex, error) {
	var out AuctionHouseIndex
	params := map[string]string{"connectedRealmId": itoa(connectedRealmID)}
	if err := c.get(ctx, EndpointAuctionHouseIndex, version, pathAuctionHouseIndex, params, &out); err != nil {
		return nil, err
	}
	if out.Auctions == nil {
		return nil, fmt.Errorf("%w: %s has no auctions", domain.ErrMalformedResponse, EndpointAuctionHouseIndex)
	}
	return &out, nil
}

// GetAuctions fetches the live listings of one faction house
func (c *Client) GetAuctions(ctx context.Context, version domain.GameVersion, connectedRealmID, auctionHouseID int) (*AuctionSnapshot, error) {
	var out AuctionSnapshot
	params := map[string]string{"connectedRealmId": itoa(connectedRealmID), "auctionHouseId": itoa(auctionHouseID)}
	if err := c.get(ctx, EndpointAuctions, version, pathAuctions, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
