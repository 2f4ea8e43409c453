// Source connector for mangaupdates.com. Search results and series pages
// are scraped from the site's HTML.
package mangaupdates

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/mangotag/mangotag/internal/comicinfo"
	"github.com/mangotag/mangotag/internal/models"
	"github.com/mangotag/mangotag/internal/source"
)

var (
	seriesHrefRe = regexp.MustCompile(`www\.mangaupdates\.com/series/([^/]+)/`)
	yearRe       = regexp.MustCompile(`^(\d{4})`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Placeholder strings the site mixes into field value lists. They are
// page chrome, not data, and are stripped by exact match.
var (
	genreChrome      = []string{"Search for series of same genre(s)"}
	categoriesChrome = []string{"Log in to vote!", "Show all (some hidden)"}
)

// MangaUpdatesProvider implements the source Provider interface for
// MangaUpdates.
type MangaUpdatesProvider struct {
	client  *source.Client
	baseURL string
}

func New(client *source.Client) *MangaUpdatesProvider {
	return &MangaUpdatesProvider{
		client:  client,
		baseURL: "https://www.mangaupdates.com",
	}
}

func (p *MangaUpdatesProvider) GetInfo() models.ProviderInfo {
	return models.ProviderInfo{
		ID:   "mangaupdates",
		Name: "MangaUpdates",
	}
}

func (p *MangaUpdatesProvider) Search(name string) ([]models.SearchResult, error) {
	query := strings.ReplaceAll(strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " ")), " ", "+")
	searchURL := fmt.Sprintf("%s/series.html?search=%s", p.baseURL, query)

	page, err := p.client.GetHTML(searchURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	var results []models.SearchResult
	doc.Find("div.col-12.col-lg-6.p-3.text").Each(func(i int, s *goquery.Selection) {
		titleLink := s.Find(`div.flex-column > div.text > a[alt="Series Info"]`)
		if titleLink.Length() != 1 {
			return
		}
		match := seriesHrefRe.FindStringSubmatch(titleLink.AttrOr("href", ""))
		if match == nil {
			return
		}
		identifier := match[1]
		title := strings.TrimSpace(titleLink.Text())

		yearNode := s.Find("div.d-flex.flex-column.h-100 div.text:last-child")
		if yearNode.Length() != 1 {
			return
		}
		year := "???"
		if ym := yearRe.FindStringSubmatch(strings.TrimSpace(yearNode.Text())); ym != nil {
			year = ym[1]
		}

		genresNode := s.Find("div.textsmall a")
		if genresNode.Length() != 1 {
			return
		}
		genres := genresNode.AttrOr("title", "")

		results = append(results, models.SearchResult{
			Identifier:  identifier,
			Title:       title,
			Description: fmt.Sprintf("%s (%s) - %s", title, year, genres),
		})
	})

	if len(results) == 0 {
		return nil, source.ErrNoResults
	}
	return results, nil
}

func (p *MangaUpdatesProvider) Fetch(identifier string) (*comicinfo.Record, error) {
	seriesURL := fmt.Sprintf("%s/series/%s", p.baseURL, identifier)

	page, err := p.client.GetHTML(seriesURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(doc.Find("span.releasestitle").First().Text())
	if title == "" {
		return nil, fmt.Errorf("no series title found on page for '%s'", identifier)
	}

	record := comicinfo.New()
	record.Set(comicinfo.FieldTitle, title)
	record.Set(comicinfo.FieldSeries, title)
	record.Set(comicinfo.FieldWeb, seriesURL)

	if summary, ok := p.parseSummary(doc); ok {
		record.Set(comicinfo.FieldSummary, summary)
	}
	if year, ok := p.parseSingleSection("Year", doc); ok {
		record.Set(comicinfo.FieldYear, year)
	}
	if authors := p.parseMultiSection("Author(s)", doc); len(authors) > 0 {
		record.Set(comicinfo.FieldWriter, strings.Join(authors, ","))
	}
	if artists := p.parseMultiSection("Artist(s)", doc); len(artists) > 0 {
		record.Set(comicinfo.FieldPenciller, strings.Join(artists, ","))
	}
	if publishers := p.parseMultiSection("Original Publisher", doc); len(publishers) > 0 {
		record.Set(comicinfo.FieldPublisher, strings.Join(publishers, ","))
	}
	if names := p.parseMultiSection("Associated Names", doc); len(names) > 0 {
		record.PutNote("associated_names", names)
	}
	if genres := stripChrome(p.parseMultiSection("Genre", doc), genreChrome); len(genres) > 0 {
		record.Set(comicinfo.FieldGenre, strings.Join(genres, ","))
	}
	if categories := stripChrome(p.parseMultiSection("Categories", doc), categoriesChrome); len(categories) > 0 {
		record.Set(comicinfo.FieldTags, strings.Join(categories, ","))
	}

	return record, nil
}

// parseSummary prefers the expanded description block and falls back to
// the labeled Description section on pages without one.
func (p *MangaUpdatesProvider) parseSummary(doc *goquery.Document) (string, bool) {
	descMore := doc.Find("div#div_desc_more")
	if descMore.Length() > 0 {
		// Only the first text node; the rest of the block is the
		// "Less..." toggle.
		for _, node := range descMore.Nodes {
			if c := node.FirstChild; c != nil && c.Type == html.TextNode {
				summary := strings.TrimSpace(c.Data)
				if summary != "" {
					return summary, true
				}
			}
		}
	}
	return p.parseSingleSection("Description", doc)
}

func (p *MangaUpdatesProvider) parseSingleSection(label string, doc *goquery.Document) (string, bool) {
	values := p.parseMultiSection(label, doc)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// parseMultiSection locates a "div.sCat" header by its exact label and
// returns the cleaned, sorted lines of text from the sibling value div.
func (p *MangaUpdatesProvider) parseMultiSection(label string, doc *goquery.Document) []string {
	header := doc.Find("div.sCat").FilterFunction(func(i int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == label
	}).First()
	if header.Length() == 0 {
		return nil
	}

	valueNode := header.NextAllFiltered("div").First()
	if valueNode.Length() == 0 {
		return nil
	}

	var parts []string
	for _, node := range valueNode.Nodes {
		collectText(node, &parts)
	}

	var values []string
	for _, part := range parts {
		for _, line := range strings.Split(part, "\n") {
			line = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
			if line != "" {
				values = append(values, line)
			}
		}
	}
	sort.Strings(values)
	return values
}

// collectText appends every text node under n, one entry per node, so
// values separated only by markup still split into distinct lines.
func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		*parts = append(*parts, n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

func stripChrome(values, chrome []string) []string {
	if len(values) == 0 {
		return nil
	}
	var cleaned []string
	for _, value := range values {
		keep := true
		for _, literal := range chrome {
			if value == literal {
				keep = false
				break
			}
		}
		if keep {
			cleaned = append(cleaned, value)
		}
	}
	return cleaned
}
