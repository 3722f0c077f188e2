package jobs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"linkedinsight/backend/internal/constants"
	apperrors "linkedinsight/backend/pkg/errors"
	"linkedinsight/backend/pkg/logger"
)

// Scraper reads public job search result pages
type Scraper struct {
	baseURL    *url.URL
	httpClient *http.Client
	delay      time.Duration
	logger     *zap.Logger
}

// NewScraper creates a scraper for the job board at baseURL.
// delay is waited between result cards.
func NewScraper(baseURL string, delay time.Duration) (*Scraper, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, apperrors.NewConfigValidationFailed("SCRAPER_BASE_URL", fmt.Sprintf("invalid URL %q", baseURL))
	}

	return &Scraper{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		delay:      delay,
		logger:     logger.Get(),
	}, nil
}

// Scrape fetches up to limit postings matching query
func (s *Scraper) Scrape(ctx context.Context, query string, limit int) ([]Job, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewInvalidArgument("query", "Query must be a non-empty string")
	}
	if limit <= 0 {
		return nil, apperrors.NewInvalidArgument("limit", "Limit must be a positive integer")
	}

	searchURL := fmt.Sprintf("%s/jobs?q=%s&l=", s.baseURL.String(), url.QueryEscape(query))
	s.logger.Info("Scraping jobs", zap.String("query", query), zap.String("url", searchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, apperrors.NewScrapeFailed(constants.SourceIndeed, searchURL, err)
	}

	// Set headers to look like a browser
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewScrapeFailed(constants.SourceIndeed, searchURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewScrapeFailed(constants.SourceIndeed, searchURL, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, apperrors.NewScrapeFailed(constants.SourceIndeed, searchURL, err)
	}

	jobs, err := s.parseCards(ctx, doc, limit)
	if err != nil {
		return jobs, err
	}

	s.logger.Info("Scraped jobs", zap.String("query", query), zap.Int("count", len(jobs)))
	return jobs, nil
}

func (s *Scraper) parseCards(ctx context.Context, doc *goquery.Document, limit int) ([]Job, error) {
	cards := doc.Find("div.job_seen_beacon")
	if cards.Length() == 0 {
		cards = doc.Find("a[data-jk]")
	}

	jobs := []Job{}
	now := time.Now().UTC()

	for i := 0; i < cards.Length() && i < limit; i++ {
		if i > 0 && s.delay > 0 {
			select {
			case <-ctx.Done():
				return jobs, apperrors.NewContextCancelled("scrape", ctx.Err())
			case <-time.After(s.delay):
			}
		}

		card := cards.Eq(i)
		title := firstText(card, "h2.jobTitle", "a.jcs-JobTitle", "h2", "a")
		if title == "" {
			// Anchor cards carry the title as their own text
			if goquery.NodeName(card) == "a" {
				title = cleanText(card.Text())
			}
		}
		if title == "" {
			s.logger.Debug("Skipping job card without title", zap.Int("index", i))
			continue
		}

		jobs = append(jobs, Job{
			Title:       title,
			Company:     orNA(firstText(card, "span.companyName", "a.companyName", `span[data-testid="company-name"]`)),
			Location:    orNA(firstText(card, "div.companyLocation", `div[data-testid="text-location"]`)),
			Description: firstText(card, "div.job-snippet", "span.job-snippet"),
			URL:         s.cardURL(card),
			Source:      constants.SourceIndeed,
			ScrapedAt:   now,
		})
	}
	return jobs, nil
}

func (s *Scraper) cardURL(card *goquery.Selection) string {
	href, ok := card.Attr("href")
	if !ok {
		href, ok = card.Find("a[href]").First().Attr("href")
	}
	if !ok || strings.TrimSpace(href) == "" {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return s.baseURL.ResolveReference(ref).String()
}

// firstText returns the cleaned text of the first selector that matches
func firstText(card *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if found := card.Find(sel).First(); found.Length() > 0 {
			if text := cleanText(found.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
