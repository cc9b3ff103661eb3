package extractor

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"estate-intel/models"
)

var (
	// currencyRe captures dollar amounts like "$450,000" or "$1,200.50"
	currencyRe = regexp.MustCompile(`\$\s?([\d,]+(?:\.\d+)?)`)
	// bedRe captures "3 bed" / "3 bedrooms"
	bedRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:bed|bedroom)`)
	// bathRe captures "2.5 bath" / "2 bathrooms"
	bathRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:bath|bathroom)`)
	// areaRe captures the value and its unit so sqm can be converted
	areaRe = regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?)\s*(sq\.?\s?ft|square\s?feet|sqm|m2|m²)`)
	// cityRe captures "Austin, TX" style locality mentions
	cityRe  = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)*)\s*,\s*[A-Z]{2}\b`)
	spaceRe = regexp.MustCompile(`\s+`)
)

const (
	// Currency amounts at or below this are page chrome (fees, promos),
	// not a listing price.
	minPlausiblePrice = 10000
	sqftPerSqm        = 10.7639
)

var propertyTypes = []string{"house", "apartment", "condo", "townhouse", "duplex", "villa", "land"}

// stringRule and numberRule are single extraction heuristics. Rules for a
// field run in priority order and the first one returning non-nil wins;
// a field with no matching rule stays absent.
type (
	stringRule func(doc *goquery.Document, text string) *string
	numberRule func(doc *goquery.Document, text string) *float64
)

var (
	titleRules = []stringRule{titleFromOGMeta, titleFromTitleTag, titleFromH1}
	priceRules = []numberRule{priceFromAttributes, priceFromText}
	cityRules  = []stringRule{cityFromOGMeta, cityFromText}
)

// Extract parses raw listing HTML into a Listing. It is a pure function of
// its inputs: fields that no rule matches are left nil, and a matched string
// that fails numeric parsing also leaves its field nil rather than erroring.
func Extract(html, sourceURL string) (*models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("extract: parse html: %w", err)
	}

	text := condense(doc.Text())

	listing := &models.Listing{
		URL:          sourceURL,
		SourceDomain: domainOf(sourceURL),
		ScrapedAt:    time.Now(),
	}

	listing.Title = firstString(doc, text, titleRules)
	listing.Price = firstNumber(doc, text, priceRules)
	listing.City = firstString(doc, text, cityRules)
	listing.Baths = matchNumber(bathRe, text)
	listing.AreaSqft = extractArea(text)
	listing.PropertyType = detectPropertyType(text)

	if beds := matchNumber(bedRe, text); beds != nil {
		n := int(*beds)
		listing.Beds = &n
	}

	return listing, nil
}

func firstString(doc *goquery.Document, text string, rules []stringRule) *string {
	for _, rule := range rules {
		if v := rule(doc, text); v != nil {
			return v
		}
	}
	return nil
}

func firstNumber(doc *goquery.Document, text string, rules []numberRule) *float64 {
	for _, rule := range rules {
		if v := rule(doc, text); v != nil {
			return v
		}
	}
	return nil
}

func titleFromOGMeta(doc *goquery.Document, _ string) *string {
	return nonEmptyAttr(doc.Find(`meta[property="og:title"]`), "content")
}

func titleFromTitleTag(doc *goquery.Document, _ string) *string {
	return nonEmptyText(doc.Find("title"))
}

func titleFromH1(doc *goquery.Document, _ string) *string {
	return nonEmptyText(doc.Find("h1"))
}

// priceFromAttributes scans content= and value= attributes (meta tags,
// hidden inputs) for currency amounts. Pages repeat the price in several
// places, so all plausible candidates are collected and the smallest wins.
func priceFromAttributes(doc *goquery.Document, _ string) *float64 {
	var candidates []float64
	for _, attr := range []string{"content", "value"} {
		doc.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			raw, _ := s.Attr(attr)
			candidates = append(candidates, currencyCandidates(raw)...)
		})
	}
	return minPlausible(candidates)
}

func priceFromText(_ *goquery.Document, text string) *float64 {
	return minPlausible(currencyCandidates(text))
}

func cityFromOGMeta(doc *goquery.Document, _ string) *string {
	return nonEmptyAttr(doc.Find(`meta[property="og:locality"]`), "content")
}

func cityFromText(_ *goquery.Document, text string) *string {
	m := cityRe.FindStringSubmatch(text)
	if len(m) < 2 {
		return nil
	}
	city := m[1]
	return &city
}

// extractArea returns the area normalized to square feet; square-meter
// values are converted.
func extractArea(text string) *float64 {
	m := areaRe.FindStringSubmatch(text)
	if len(m) < 3 {
		return nil
	}
	val := parseNumber(m[1])
	if val == nil {
		return nil
	}

	unit := strings.ToLower(m[2])
	if unit == "sqm" || unit == "m2" || unit == "m²" {
		converted := *val * sqftPerSqm
		return &converted
	}
	return val
}

func detectPropertyType(text string) *string {
	lowered := strings.ToLower(text)
	for _, t := range propertyTypes {
		if strings.Contains(lowered, t) {
			capitalized := strings.ToUpper(t[:1]) + t[1:]
			return &capitalized
		}
	}
	return nil
}

func matchNumber(re *regexp.Regexp, text string) *float64 {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return nil
	}
	return parseNumber(m[1])
}

// currencyCandidates returns every parseable dollar amount in s.
func currencyCandidates(s string) []float64 {
	var out []float64
	for _, m := range currencyRe.FindAllStringSubmatch(s, -1) {
		if v := parseNumber(m[1]); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// minPlausible drops candidates at or below the plausibility floor and
// returns the smallest survivor, or nil.
func minPlausible(candidates []float64) *float64 {
	var best *float64
	for _, c := range candidates {
		if c <= minPlausiblePrice {
			continue
		}
		v := c
		if best == nil || v < *best {
			best = &v
		}
	}
	return best
}

// parseNumber strips thousand separators and parses a float; nil on failure.
func parseNumber(s string) *float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

func nonEmptyAttr(sel *goquery.Selection, attr string) *string {
	raw, ok := sel.First().Attr(attr)
	if !ok {
		return nil
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func nonEmptyText(sel *goquery.Selection) *string {
	if sel.Length() == 0 {
		return nil
	}
	trimmed := condense(sel.First().Text())
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// condense collapses runs of whitespace into single spaces.
func condense(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
