// Package deckbox crawls the deckbox.org card listing pages and produces
// the raw listing rows consumed by the normalization pipeline.
package deckbox

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/corpix/uarand"
	colly "github.com/gocolly/colly/v2"
	cleanhttp "github.com/hashicorp/go-cleanhttp"
	retryablehttp "github.com/hashicorp/go-retryablehttp"

	"github.com/mtgetl/go-mtgetl/mtgetl"
)

const (
	defaultConcurrency = 4

	dbxListingURL = "https://deckbox.org/games/mtg/cards"
)

type Deckbox struct {
	LogCallback    mtgetl.LogCallbackFunc
	MaxConcurrency int

	// Stop after this many listing pages, 0 crawls everything
	PageLimit int

	listingDate time.Time
	listings    []mtgetl.RawListing

	client *retryablehttp.Client
}

func NewScraper() *Deckbox {
	dbx := Deckbox{}
	dbx.MaxConcurrency = defaultConcurrency
	dbx.client = retryablehttp.NewClient()
	dbx.client.Logger = nil
	return &dbx
}

func (dbx *Deckbox) printf(format string, a ...interface{}) {
	if dbx.LogCallback != nil {
		dbx.LogCallback("[DBX] "+format, a...)
	}
}

// totalPages fetches the first listing page and reads the page count out
// of the pagination controls ("1 of 1427").
func (dbx *Deckbox) totalPages() (int, error) {
	resp, err := dbx.client.Get(dbxListingURL)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, err
	}

	var totalPages int
	doc.Find(`div[class="pagination_controls"] span`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		fields := strings.Split(s.Text(), "of")
		num, err := strconv.Atoi(strings.TrimSpace(fields[len(fields)-1]))
		if err != nil {
			return true
		}
		totalPages = num
		return false
	})
	if totalPages == 0 {
		return 0, fmt.Errorf("could not determine the total page count")
	}

	return totalPages, nil
}

type responseChan struct {
	page    int
	listing mtgetl.RawListing
}

// parseListingRow reads one row of the set_cards listing table.
func parseListingRow(row *goquery.Selection) (mtgetl.RawListing, bool) {
	columns := row.Find("td")
	if columns.Length() < 5 {
		return mtgetl.RawListing{}, false
	}

	cardName := strings.TrimSpace(columns.Eq(0).Find(`a[class="simple"]`).Text())
	if cardName == "" {
		return mtgetl.RawListing{}, false
	}

	edition, found := columns.Eq(1).Find("svg").Attr("data-title")
	if !found {
		edition = "N/A"
	}

	price := strings.Replace(strings.TrimSpace(columns.Eq(2).Text()), "$", "", -1)
	typeLine := strings.TrimSpace(columns.Eq(3).Text())

	// The mana cost is rendered as one svg per symbol, with the symbol
	// itself hidden in a sym_* class
	var symbols []string
	columns.Eq(4).Find("svg").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		if !strings.Contains(class, "mtg_mana") {
			return
		}
		for _, field := range strings.Fields(class) {
			if strings.HasPrefix(field, "sym_") {
				symbols = append(symbols, field)
				break
			}
		}
	})

	return mtgetl.RawListing{
		Name:     cardName,
		Edition:  edition,
		Price:    price,
		Type:     typeLine,
		ManaCost: strings.Join(symbols, " "),
	}, true
}

func (dbx *Deckbox) scrape() error {
	totalPages, err := dbx.totalPages()
	if err != nil {
		return err
	}
	pageLimit := totalPages
	if dbx.PageLimit > 0 && dbx.PageLimit < totalPages {
		pageLimit = dbx.PageLimit
	}
	dbx.printf("Crawling %d of %d listing pages", pageLimit, totalPages)

	channel := make(chan responseChan)

	c := colly.NewCollector(
		colly.AllowedDomains("deckbox.org"),

		colly.Async(true),
	)

	c.SetClient(cleanhttp.DefaultClient())

	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		RandomDelay: 1 * time.Second,
		Parallelism: dbx.MaxConcurrency,
	})

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", uarand.GetRandom())
	})

	c.OnError(func(r *colly.Response, err error) {
		dbx.printf("Error fetching listing page %s: %s", r.Request.URL, err.Error())
	})

	c.OnHTML(`table[class="set_cards"] tr[data-id]`, func(e *colly.HTMLElement) {
		page, _ := strconv.Atoi(e.Request.URL.Query().Get("p"))

		listing, ok := parseListingRow(e.DOM)
		if !ok {
			return
		}

		channel <- responseChan{
			page:    page,
			listing: listing,
		}
	})

	// Pages land out of order when crawling asynchronously, regroup
	// them so the snapshot order only depends on the listing order
	pages := map[int][]mtgetl.RawListing{}
	done := make(chan struct{})
	go func() {
		for record := range channel {
			pages[record.page] = append(pages[record.page], record.listing)
		}
		close(done)
	}()

	for i := 1; i <= pageLimit; i++ {
		c.Visit(fmt.Sprintf("%s?p=%d", dbxListingURL, i))
	}
	c.Wait()
	close(channel)
	<-done

	for i := 1; i <= pageLimit; i++ {
		dbx.listings = append(dbx.listings, pages[i]...)
	}

	dbx.listingDate = time.Now()

	return nil
}

func (dbx *Deckbox) Listings() ([]mtgetl.RawListing, error) {
	if len(dbx.listings) > 0 {
		return dbx.listings, nil
	}

	err := dbx.scrape()
	if err != nil {
		return nil, err
	}

	return dbx.listings, nil
}

func (dbx *Deckbox) Info() (info mtgetl.SourceInfo) {
	info.Name = "Deckbox"
	info.Shorthand = "DBX"
	info.ListingTimestamp = dbx.listingDate
	return
}
