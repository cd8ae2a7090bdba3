package models

import (
	"encoding/json"
)

// MatchStatus is the upper-cased status label shown on a listing card
type MatchStatus string

const (
	StatusLive    MatchStatus = "LIVE"
	StatusUnknown MatchStatus = "UNKNOWN"
)

// Placeholders written on the wire in place of values that were not found
const (
	NotAvailable = "N/A"
	YetToBat     = "Yet to bat"
	InProgress   = "In Progress"
)

// ListingCard is one match summary parsed from the live-scores listing.
// An empty field means the element was not present on the page.
type ListingCard struct {
	Status    MatchStatus
	Team1     string
	Team2     string
	Score1    string
	Score2    string
	Result    string
	DetailURL string
	Venue     string
	Date      string
}

// HasDetailURL reports whether the card links to a match page
func (c ListingCard) HasDetailURL() bool {
	return c.DetailURL != ""
}

// ScorecardInfo holds the match-level facts read from a scorecard page
type ScorecardInfo struct {
	Toss          string
	PlayerOfMatch string
	RunRate       string
}

// BattingRow is one batter's line in an innings
type BattingRow struct {
	Name       string `json:"name"`
	Runs       string `json:"runs"`
	Balls      string `json:"balls"`
	Fours      string `json:"fours"`
	Sixes      string `json:"sixes"`
	StrikeRate string `json:"strike_rate"`
}

// BowlingRow is one bowler's line in an innings
type BowlingRow struct {
	Name         string `json:"name"`
	Overs        string `json:"overs"`
	Maidens      string `json:"maidens"`
	RunsConceded string `json:"runs_conceded"`
	Wickets      string `json:"wickets"`
	Economy      string `json:"economy"`
}

// InningsEntry holds the batting and bowling tables of one innings
type InningsEntry struct {
	Batting []BattingRow
	Bowling []BowlingRow
}

// MaxInnings is the number of innings captured per match
const MaxInnings = 2

// MatchRecord is the unit sent downstream: one card merged with its scorecard
type MatchRecord struct {
	Card         ListingCard
	Scorecard    ScorecardInfo
	ScorecardURL string
	Innings      []InningsEntry
}

// WireInnings is an innings as encoded for the ingestion endpoint. An absent
// innings encodes as an empty object.
type WireInnings struct {
	Batting *[]BattingRow `json:"batting,omitempty"`
	Bowling *[]BowlingRow `json:"bowling,omitempty"`
}

// WireRecord is the JSON shape accepted by the ingestion endpoint
type WireRecord struct {
	Status           string      `json:"status"`
	Team1            string      `json:"team1"`
	Team2            string      `json:"team2"`
	Score1           string      `json:"score1"`
	Score2           string      `json:"score2"`
	MatchResult      string      `json:"match_result"`
	MatchURL         string      `json:"match_url"`
	Venue            string      `json:"venue"`
	Date             string      `json:"date"`
	Toss             string      `json:"toss"`
	PlayerOfTheMatch string      `json:"player_of_the_match"`
	CurrentRunRate   string      `json:"current_run_rate"`
	Inning1          WireInnings `json:"inning_1"`
	Inning2          WireInnings `json:"inning_2"`
}

// Wire converts the record to its wire shape, substituting placeholders
// for every value that was not found.
func (r MatchRecord) Wire() WireRecord {
	status := string(r.Card.Status)
	if status == "" {
		status = string(StatusUnknown)
	}

	return WireRecord{
		Status:           status,
		Team1:            orDefault(r.Card.Team1, NotAvailable),
		Team2:            orDefault(r.Card.Team2, NotAvailable),
		Score1:           orDefault(r.Card.Score1, NotAvailable),
		Score2:           orDefault(r.Card.Score2, YetToBat),
		MatchResult:      orDefault(r.Card.Result, InProgress),
		MatchURL:         r.ScorecardURL,
		Venue:            orDefault(r.Card.Venue, NotAvailable),
		Date:             orDefault(r.Card.Date, NotAvailable),
		Toss:             orDefault(r.Scorecard.Toss, NotAvailable),
		PlayerOfTheMatch: orDefault(r.Scorecard.PlayerOfMatch, NotAvailable),
		CurrentRunRate:   orDefault(r.Scorecard.RunRate, NotAvailable),
		Inning1:          r.wireInnings(0),
		Inning2:          r.wireInnings(1),
	}
}

func (r MatchRecord) wireInnings(i int) WireInnings {
	if i >= len(r.Innings) || i >= MaxInnings {
		return WireInnings{}
	}

	batting := r.Innings[i].Batting
	if batting == nil {
		batting = []BattingRow{}
	}
	bowling := r.Innings[i].Bowling
	if bowling == nil {
		bowling = []BowlingRow{}
	}
	return WireInnings{Batting: &batting, Bowling: &bowling}
}

// MarshalJSON encodes the record in its wire shape
func (r MatchRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Wire())
}

// Batch is the list of records produced by one polling cycle
type Batch []MatchRecord

// Wire converts every record in the batch
func (b Batch) Wire() []WireRecord {
	out := make([]WireRecord, 0, len(b))
	for _, r := range b {
		out = append(out, r.Wire())
	}
	return out
}

func orDefault(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
