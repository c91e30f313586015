package models

import (
	"time"

	"github.com/google/uuid"
)

// MarketLine is one bookmaker's moneyline quote for a game, in American odds.
// Prices arrive as strings because feeds mix numerics with labels like "EVEN".
type MarketLine struct {
	HomeTeam  string    `db:"home_team" json:"home_team"`
	AwayTeam  string    `db:"away_team" json:"away_team"`
	Book      string    `db:"book" json:"book"`
	MarketKey string    `db:"market_key" json:"market_key"`
	HomePrice string    `db:"home_price" json:"home_price"`
	AwayPrice string    `db:"away_price" json:"away_price"`
	FetchedAt time.Time `db:"fetched_at" json:"fetched_at"`
}

// PropQuote is one bookmaker's quote for a player-prop outcome.
type PropQuote struct {
	Game      string `json:"game"`
	Site      string `json:"site"`
	MarketKey string `json:"market_key"`
	Label     string `json:"label"`
	Price     string `json:"price"`
}

// OddsSnapshot is a point-in-time capture of the market, persisted so line
// movement can be tracked between scoring passes.
type OddsSnapshot struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	GeneratedAt time.Time    `db:"generated_at" json:"generated_at"`
	Lines       []MarketLine `db:"-" json:"lines"`
	Props       []PropQuote  `db:"-" json:"props"`
}
