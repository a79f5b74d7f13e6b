package bnet

import "time"

// Endpoint labels used in errors and metrics
const (
	EndpointToken             = "token"
	EndpointProfessionIndex   = "profession_index"
	EndpointProfession        = "profession"
	EndpointProfessionMedia   = "profession_media"
	EndpointSkillTier         = "skill_tier"
	EndpointRecipe            = "recipe"
	EndpointRecipeMedia       = "recipe_media"
	EndpointItem              = "item"
	EndpointItemMedia         = "item_media"
	EndpointItemClassIndex    = "item_class_index"
	EndpointItemSubclass      = "item_subclass"
	EndpointRegionIndex       = "region_index"
	EndpointRegion            = "region"
	EndpointRealmIndex        = "realm_index"
	EndpointRealm             = "realm"
	EndpointConnectedRealmIdx = "connected_realm_index"
	EndpointConnectedRealm    = "connected_realm"
	EndpointAuctionHouseIndex = "auction_house_index"
	EndpointAuctions          = "auctions"
)

// Request paths, relative to the API base URL
const (
	pathProfessionIndex   = "/data/wow/profession/index"
	pathProfession        = "/data/wow/profession/{professionId}"
	pathProfessionMedia   = "/data/wow/media/profession/{professionId}"
	pathSkillTier         = "/data/wow/profession/{professionId}/skill-tier/{skillTierId}"
	pathRecipe            = "/data/wow/recipe/{recipeId}"
	pathRecipeMedia       = "/data/wow/media/recipe/{recipeId}"
	pathItem              = "/data/wow/item/{itemId}"
	pathItemMedia         = "/data/wow/media/item/{itemId}"
	pathItemClassIndex    = "/data/wow/item-class/index"
	pathItemSubclass      = "/data/wow/item-class/{itemClassId}/item-subclass/{itemSubclassId}"
	pathRegionIndex       = "/data/wow/region/index"
	pathRegion            = "/data/wow/region/{regionId}"
	pathRealmIndex        = "/data/wow/realm/index"
	pathRealm             = "/data/wow/realm/{realmSlug}"
	pathConnectedRealmIdx = "/data/wow/connected-realm/index"
	pathConnectedRealm    = "/data/wow/connected-realm/{connectedRealmId}"
	pathAuctionHouseIndex = "/data/wow/connected-realm/{connectedRealmId}/auctions/index"
	pathAuctions          = "/data/wow/connected-realm/{connectedRealmId}/auctions/{auctionHouseId}"
)

// Query parameters
const (
	paramNamespace = "namespace"
	paramLocale    = "locale"
	paramGrantType = "grant_type"

	grantClientCredentials = "client_credentials"
	namespaceClassicSuffix = "-classic"
)

// TokenExpiryMargin is how long before expiry a token is treated as stale
const TokenExpiryMargin = 30 * time.Second

// Defaults applied by New when the Config leaves a field zero
const (
	DefaultRegion       = "us"
	DefaultLocale       = "en_US"
	DefaultTokenURL     = "https://oauth.battle.net/token"
	DefaultRPS          = 50.0
	DefaultBurst        = 10
	DefaultRetryWait    = 500 * time.Millisecond
	DefaultRetryMaxWait = 5 * time.Second
	DefaultTimeout      = 30 * time.Second
)

// Error messages
const (
	ErrMsgTokenExchange  = "client credentials exchange failed"
	ErrMsgTokenMissing   = "token response has no access_token"
	ErrMsgRequestFailed  = "upstream request failed"
	ErrMsgDecodeFailed   = "failed to decode upstream response"
	ErrMsgRateLimitWait  = "rate limiter wait aborted"
	ErrMsgUnexpectedHref = "cannot parse id from href"
	ErrMsgUpstreamStatus = "upstream returned status"
)

// Log messages
const (
	LogMsgTokenRefreshed  = "Refreshed upstream access token"
	LogMsgTokenRejected   = "Upstream rejected access token, invalidating"
	LogMsgRetryingRequest = "Retrying upstream request"
)

// bodySnippetLimit bounds the response body kept on UpstreamError
const bodySnippetLimit = 512
