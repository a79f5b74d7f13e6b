package domain

import "fmt"

// ItemClass is the top level of the item taxonomy
type ItemClass struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (c *ItemClass) Kind() Kind      { return KindItemClass }
func (c *ItemClass) PrimaryKey() any { return c.ID }

// ItemClassHierarchyKey identifies a class x subclass pair
type ItemClassHierarchyKey struct {
	ClassID    int
	SubclassID int
}

func (k ItemClassHierarchyKey) String() string {
	return fmt.Sprintf("%d_%d", k.ClassID, k.SubclassID)
}

// ItemClassHierarchy is discovered by probing subclass ids per class
type ItemClassHierarchy struct {
	ClassID     int    `json:"item_class_id"`
	SubclassID  int    `json:"item_subclass_id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

func (h *ItemClassHierarchy) Kind() Kind { return KindItemClassHierarchy }

func (h *ItemClassHierarchy) PrimaryKey() any {
	return ItemClassHierarchyKey{ClassID: h.ClassID, SubclassID: h.SubclassID}
}

func (h *ItemClassHierarchy) References() []Reference {
	return []Reference{{Kind: KindItemClass, Key: h.ClassID}}
}

// ItemDataKey identifies the per-version data of an item
type ItemDataKey struct {
	Version GameVersion
	ItemID  int
}

func (k ItemDataKey) String() string {
	return fmt.Sprintf("%s_%d", k.Version, k.ItemID)
}

// ItemData holds the version-specific attributes of an item
type ItemData struct {
	Version         GameVersion `json:"game_version"`
	ItemID          int         `json:"item_id"`
	Name            string      `json:"name"`
	MediaURL        string      `json:"media_url"`
	MediaFileDataID int         `json:"media_file_data_id"`
	PurchasePrice   int64       `json:"purchase_price"`
	SellPrice       int64       `json:"sell_price"`
	Level           int         `json:"level"`
	RequiredLevel   int         `json:"required_level"`
	Quality         string      `json:"quality"`
	IsVendorItem    bool        `json:"is_vendor_item"`
}

func (d *ItemData) Kind() Kind { return KindItemData }

func (d *ItemData) PrimaryKey() any {
	return ItemDataKey{Version: d.Version, ItemID: d.ItemID}
}

// Item references its class hierarchy and up to one ItemData per version
type Item struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	ClassID     int          `json:"item_class_id"`
	SubclassID  int          `json:"item_subclass_id"`
	ClassicData *ItemDataKey `json:"classic_item_data,omitempty"`
	RetailData  *ItemDataKey `json:"retail_item_data,omitempty"`
}

func (i *Item) Kind() Kind      { return KindItem }
func (i *Item) PrimaryKey() any { return i.ID }

func (i *Item) References() []Reference {
	refs := []Reference{{
		Kind: KindItemClassHierarchy,
		Key:  ItemClassHierarchyKey{ClassID: i.ClassID, SubclassID: i.SubclassID},
	}}
	if i.ClassicData != nil {
		refs = append(refs, Reference{Kind: KindItemData, Key: *i.ClassicData})
	}
	if i.RetailData != nil {
		refs = append(refs, Reference{Kind: KindItemData, Key: *i.RetailData})
	}
	return refs
}
