package extraction

import (
	"net/url"
	"strings"

	"github.com/williampepple1/cricket-scorecard-scraper/pkg/models"
)

// ListingCards returns at most limit listing cards in document order
func ListingCards(doc Query, limit int) []Element {
	cards := doc.FindAll(ListingCardSelector)
	if limit >= 0 && len(cards) > limit {
		cards = cards[:limit]
	}
	return cards
}

// ExtractCard reads one listing card. Missing elements leave their field
// empty; the card itself never fails to extract.
func ExtractCard(card Query, base *url.URL) models.ListingCard {
	var out models.ListingCard

	if status, ok := card.FindFirst(StatusSelector); ok {
		out.Status = models.MatchStatus(strings.ToUpper(status.Text()))
	}

	teams := card.FindAll(TeamNameSelector)
	out.Team1 = textAt(teams, 0)
	out.Team2 = textAt(teams, 1)

	scores := card.FindAll(ScoreSelector)
	out.Score1 = textAt(scores, 0)
	out.Score2 = textAt(scores, 1)

	if result, ok := card.FindFirst(ResultSelector); ok {
		out.Result = result.Text()
	}

	if link, ok := card.FindFirst(LinkSelector); ok {
		href, _ := link.Attr("href")
		out.DetailURL = resolve(base, href)
	}

	if span, ok := card.FindFirst(VenueDateSelector); ok {
		out.Venue, out.Date = splitVenueDate(span.RawText())
	}

	return out
}

// splitVenueDate reads "<match>, <venue>, <date>, ..." positionally
func splitVenueDate(text string) (venue, date string) {
	parts := strings.Split(text, ",")
	if len(parts) < 3 {
		return "", ""
	}
	return strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])
}

func textAt(elems []Element, i int) string {
	if i >= len(elems) {
		return ""
	}
	return elems[i].Text()
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
