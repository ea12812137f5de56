package universe

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"StockSentinel/internal/model"
)

// ISIN listing pages for the two boards. Both are Big5-encoded HTML tables
// whose first column holds "code<full-width space>name".
const (
	listedURL = "https://isin.twse.com.tw/isin/C_public.jsp?strMode=2"
	otcURL    = "https://isin.twse.com.tw/isin/C_public.jsp?strMode=4"
)

// fullWidthSpace separates the security code from its name in the listing.
const fullWidthSpace = "　"

var codeRe = regexp.MustCompile(`^\d{4}$`)

// TwseISINLister fetches the full listed + over-the-counter universe from the
// TWSE ISIN service. A board that fails to fetch contributes nothing; the run
// continues with whatever was retrieved.
type TwseISINLister struct {
	Client *http.Client
}

// NewTwseISINLister creates a lister with optional proxy support.
func NewTwseISINLister(proxyURL string) *TwseISINLister {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TwseISINLister{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (l *TwseISINLister) Name() string { return "twse-isin" }

// List returns the combined universe, listed board first.
func (l *TwseISINLister) List() ([]model.Security, error) {
	listed, err := l.fetchBoard(listedURL, model.MarketListed)
	if err != nil {
		log.Warn().Err(err).Msg("fetch listed universe failed")
	}
	otc, err := l.fetchBoard(otcURL, model.MarketOTC)
	if err != nil {
		log.Warn().Err(err).Msg("fetch OTC universe failed")
	}
	log.Info().Int("listed", len(listed)).Int("otc", len(otc)).Msg("universe fetched")
	return append(listed, otc...), nil
}

func (l *TwseISINLister) fetchBoard(boardURL string, market model.Market) ([]model.Security, error) {
	req, err := http.NewRequest("GET", boardURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("isin fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("isin: status %d", resp.StatusCode)
	}

	// The page is served as Big5.
	reader := transform.NewReader(resp.Body, traditionalchinese.Big5.NewDecoder())
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("isin parse: %w", err)
	}

	var secs []model.Security
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cell := strings.TrimSpace(row.Find("td").First().Text())
		if !strings.Contains(cell, fullWidthSpace) {
			return
		}
		parts := strings.SplitN(cell, fullWidthSpace, 2)
		code := strings.TrimSpace(parts[0])
		name := strings.TrimSpace(parts[1])
		// Ordinary shares carry four-digit codes; warrants, ETFs with longer
		// codes and section headers are dropped here.
		if !codeRe.MatchString(code) || name == "" {
			return
		}
		secs = append(secs, model.Security{Code: code, Name: name, Market: market})
	})
	return secs, nil
}
