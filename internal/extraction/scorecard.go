package extraction

import (
	"net/url"
	"strings"

	"github.com/williampepple1/cricket-scorecard-scraper/pkg/models"
)

// FindScorecardURL returns the absolute target of the first link whose text
// is exactly "Scorecard".
func FindScorecardURL(doc Query, base *url.URL) (string, bool) {
	for _, link := range doc.FindAll(LinkSelector) {
		text, ok := link.OwnString()
		if !ok || text != ScorecardLinkText {
			continue
		}
		href, _ := link.Attr("href")
		if u := resolve(base, href); u != "" {
			return u, true
		}
	}
	return "", false
}

// ExtractScorecardInfo reads toss, player of the match and run rate
func ExtractScorecardInfo(doc Query) models.ScorecardInfo {
	return models.ScorecardInfo{
		Toss:          metaValue(doc, TossLabel),
		PlayerOfMatch: metaValue(doc, PlayerOfMatchLabel),
		RunRate:       runRate(doc),
	}
}

// metaValue finds the span labelled exactly label and returns the text of
// the span that follows it in document order.
func metaValue(doc Query, label string) string {
	spans := doc.FindAll(MetaLabelSelector)
	for i, span := range spans {
		text, ok := span.OwnString()
		if !ok || text != label {
			continue
		}
		if i+1 < len(spans) {
			return spans[i+1].Text()
		}
		return ""
	}
	return ""
}

func runRate(doc Query) string {
	for _, block := range doc.FindAll(RunRateSelector) {
		text := block.RawText()
		if strings.Contains(text, "RR") || strings.Contains(text, "Run Rate") {
			return strings.TrimSpace(text)
		}
	}
	return ""
}

// ExtractInnings reads up to models.MaxInnings innings. The first panel is
// the page header and is never an innings; later panels count only when
// they hold a batting table followed by a bowling table.
func ExtractInnings(doc Query) []models.InningsEntry {
	panels := doc.FindAll(InningsPanel)

	var innings []models.InningsEntry
	for i := 1; i < len(panels) && len(innings) < models.MaxInnings; i++ {
		tables := panels[i].FindAll(TableSelector)
		if len(tables) < 2 {
			continue
		}
		innings = append(innings, models.InningsEntry{
			Batting: battingRows(tables[0]),
			Bowling: bowlingRows(tables[1]),
		})
	}
	return innings
}

func battingRows(table Element) []models.BattingRow {
	rows := []models.BattingRow{}
	for _, cols := range bodyRows(table) {
		if len(cols) < battingMinColumns {
			continue
		}
		rows = append(rows, models.BattingRow{
			Name:       cols[0].Text(),
			Runs:       cols[2].Text(),
			Balls:      cols[3].Text(),
			Fours:      cols[5].Text(),
			Sixes:      cols[6].Text(),
			StrikeRate: cols[7].Text(),
		})
	}
	return rows
}

func bowlingRows(table Element) []models.BowlingRow {
	rows := []models.BowlingRow{}
	for _, cols := range bodyRows(table) {
		if len(cols) < bowlingMinColumns {
			continue
		}
		rows = append(rows, models.BowlingRow{
			Name:         cols[0].Text(),
			Overs:        cols[1].Text(),
			Maidens:      cols[2].Text(),
			RunsConceded: cols[3].Text(),
			Wickets:      cols[4].Text(),
			Economy:      cols[5].Text(),
		})
	}
	return rows
}

// bodyRows returns the data cells of every row after the header row
func bodyRows(table Element) [][]Element {
	rows := table.FindAll(RowSelector)
	if len(rows) <= 1 {
		return nil
	}

	out := make([][]Element, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, row.FindAll(CellSelector))
	}
	return out
}
