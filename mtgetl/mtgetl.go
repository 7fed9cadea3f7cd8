// Package mtgetl defines the data model of the card listing pipeline and
// the batch orchestration that turns scraped listings into four normalized
// relational tables linked by generated surrogate keys.
package mtgetl

import (
	"time"

	"github.com/mtgetl/go-mtgetl/mtgcards"
)

// RawListing is one scraped card listing as produced by a Source.
// A multi-faced card is a single listing whose Name, Type, and ManaCost
// may each contain the face separator.
type RawListing struct {
	// The card name as listed
	Name string `json:"name"`

	// The edition text, possibly carrying the known listing prefix
	Edition string `json:"edition"`

	// The listed price, kept as scraped. Accepted but not used downstream.
	Price string `json:"price,omitempty"`

	// The raw type line
	Type string `json:"type"`

	// The space-separated mana symbol token string
	ManaCost string `json:"mana_cost,omitempty"`
}

// CardDetail is one row of the fact table, one per card face.
type CardDetail struct {
	// 1-based dense surrogate key, assigned in processing order
	CardID int `json:"card_id"`

	// Foreign key into the edition lookup table
	EditionID int `json:"edition_id"`

	Name        string `json:"name"`
	SuperType   string `json:"super_type,omitempty"`
	PrimaryType string `json:"primary_type,omitempty"`
	CMC         int    `json:"cmc"`
	IsHybrid    bool   `json:"is_hybrid,omitempty"`
	GenericMana int    `json:"generic_mana,omitempty"`
	IsX         bool   `json:"is_x,omitempty"`
	IsW         bool   `json:"is_w,omitempty"`
	IsU         bool   `json:"is_u,omitempty"`
	IsB         bool   `json:"is_b,omitempty"`
	IsR         bool   `json:"is_r,omitempty"`
	IsG         bool   `json:"is_g,omitempty"`
	IsC         bool   `json:"is_c,omitempty"`
}

func newCardDetail(cardID, editionID int, face mtgcards.CardFace) CardDetail {
	return CardDetail{
		CardID:      cardID,
		EditionID:   editionID,
		Name:        face.Name,
		SuperType:   face.SuperType,
		PrimaryType: face.PrimaryType,
		CMC:         face.CMC,
		IsHybrid:    face.IsHybrid,
		GenericMana: face.GenericMana,
		IsX:         face.IsX,
		IsW:         face.IsW,
		IsU:         face.IsU,
		IsB:         face.IsB,
		IsR:         face.IsR,
		IsG:         face.IsG,
		IsC:         face.IsC,
	}
}

// Edition is one row of the edition dimension table.
type Edition struct {
	Name string `json:"edition_name"`
	ID   int    `json:"edition_id"`
}

// Subtype is one row of the subtype dimension table.
type Subtype struct {
	Name string `json:"subtype_name"`
	ID   int    `json:"subtype_id"`
}

// CardSubtypeLink is one row of the card/subtype many-to-many bridge.
type CardSubtypeLink struct {
	CardID    int `json:"card_id"`
	SubtypeID int `json:"subtype_id"`
}

// Dataset holds the four normalized tables of one orchestrator run.
type Dataset struct {
	Cards    []CardDetail
	Editions []Edition
	Subtypes []Subtype
	Links    []CardSubtypeLink
}

// SourceInfo describes a listing source.
type SourceInfo struct {
	// Full name of the source
	Name string `json:"name"`

	// Shorthand or ID of the source
	Shorthand string `json:"shorthand"`

	// Timestamp of the last Listings() execution
	ListingTimestamp time.Time `json:"listing_ts,omitempty"`
}

// Source is the interface raw listing providers need to implement,
// whether they scrape a remote store or replay a local snapshot.
type Source interface {
	// Return the raw listings. If not already loaded, gather the
	// necessary data first.
	Listings() ([]RawListing, error)

	// Return some information about the source
	Info() SourceInfo
}
