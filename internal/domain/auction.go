package domain

import (
	"fmt"
	"time"
)

// Faction owns an auction house. Upstream identifies houses by faction id.
type Faction string

const (
	FactionAlliance   Faction = "ALLIANCE"
	FactionHorde      Faction = "HORDE"
	FactionBlackwater Faction = "BLACKWATER"
)

// Upstream auction house ids
const (
	FactionIDAlliance   = 2
	FactionIDHorde      = 6
	FactionIDBlackwater = 7
)

// TimeLeft is the upstream listing duration bucket
type TimeLeft string

const (
	TimeLeftShort    TimeLeft = "SHORT"
	TimeLeftMedium   TimeLeft = "MEDIUM"
	TimeLeftLong     TimeLeft = "LONG"
	TimeLeftVeryLong TimeLeft = "VERY_LONG"
)

// DateOf truncates t to a UTC calendar date
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// AuctionHouseKey identifies the auction house of one faction on a connected realm
type AuctionHouseKey struct {
	ConnectedRealmID int
	FactionID        int
}

func (k AuctionHouseKey) String() string {
	return fmt.Sprintf("%d_%d", k.ConnectedRealmID, k.FactionID)
}

// AuctionHouse is a per-realm-per-faction market
type AuctionHouse struct {
	ConnectedRealmID int     `json:"connected_realm_id"`
	FactionID        int     `json:"faction_id"`
	Name             string  `json:"name"`
	Faction          Faction `json:"faction"`
}

func (h *AuctionHouse) Kind() Kind { return KindAuctionHouse }

func (h *AuctionHouse) PrimaryKey() any {
	return AuctionHouseKey{ConnectedRealmID: h.ConnectedRealmID, FactionID: h.FactionID}
}

func (h *AuctionHouse) References() []Reference {
	return []Reference{{Kind: KindConnectedRealm, Key: h.ConnectedRealmID}}
}

// AuctionKey identifies one listing inside one hourly snapshot
type AuctionKey struct {
	House      AuctionHouseKey
	UpdateDate time.Time
	UpdateHour int
	AuctionID  int64
}

func (k AuctionKey) String() string {
	return fmt.Sprintf("%s_%s_%d_%d", k.House, k.UpdateDate.Format("20060102"), k.UpdateHour, k.AuctionID)
}

// Auction is a single listing as seen by one snapshot
type Auction struct {
	House           AuctionHouseKey `json:"auction_house"`
	AuctionID       int64           `json:"auction_id"`
	ItemID          int             `json:"item_id"`
	Quantity        int64           `json:"quantity"`
	BidUnitPrice    *float64        `json:"bid_unit_price,omitempty"`
	BuyoutUnitPrice *float64        `json:"buyout_unit_price,omitempty"`
	TimeLeft        TimeLeft        `json:"time_left"`
	UpdateTime      time.Time       `json:"update_time"`
	UpdateDate      time.Time       `json:"update_date"`
	UpdateHour      int             `json:"update_hour"`
}

func (a *Auction) Kind() Kind { return KindAuction }

func (a *Auction) PrimaryKey() any {
	return AuctionKey{House: a.House, UpdateDate: a.UpdateDate, UpdateHour: a.UpdateHour, AuctionID: a.AuctionID}
}

func (a *Auction) References() []Reference {
	return []Reference{{Kind: KindAuctionHouse, Key: a.House}}
}

// AuctionSummaryKey identifies one hourly bucket of one item on one house
type AuctionSummaryKey struct {
	House      AuctionHouseKey
	ItemID     int
	UpdateDate time.Time
	UpdateHour int
}

func (k AuctionSummaryKey) String() string {
	return fmt.Sprintf("%s_%d_%s_%d", k.House, k.ItemID, k.UpdateDate.Format("20060102"), k.UpdateHour)
}

// AuctionSummary is the hourly aggregate of buyout listings
type AuctionSummary struct {
	House       AuctionHouseKey `json:"auction_house"`
	ItemID      int             `json:"item_id"`
	Quantity    int64           `json:"quantity"`
	VWAP        float64         `json:"vwap"`
	MinPrice    float64         `json:"min_price"`
	MinQuantity int64           `json:"min_quantity"`
	UpdateTime  time.Time       `json:"update_time"`
	UpdateDate  time.Time       `json:"update_date"`
	UpdateHour  int             `json:"update_hour"`
}

func (s *AuctionSummary) Kind() Kind { return KindAuctionSummary }

func (s *AuctionSummary) PrimaryKey() any {
	return AuctionSummaryKey{House: s.House, ItemID: s.ItemID, UpdateDate: s.UpdateDate, UpdateHour: s.UpdateHour}
}

func (s *AuctionSummary) References() []Reference {
	return []Reference{{Kind: KindAuctionHouse, Key: s.House}}
}
