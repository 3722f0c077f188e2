package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "linkedinsight/backend/pkg/errors"
)

const cardsFixture = `<html><body>
<div class="job_seen_beacon">
  <h2 class="jobTitle"><a href="/rc/clk?jk=abc"> Senior  Go Engineer </a></h2>
  <span class="companyName">Acme</span>
  <div class="companyLocation">Remote</div>
  <div class="job-snippet">Experience with Kubernetes and Docker required.</div>
</div>
<div class="job_seen_beacon">
  <span data-testid="company-name">Globex</span>
</div>
<div class="job_seen_beacon">
  <a class="jcs-JobTitle" href="https://example.com/job/2">Data Engineer</a>
  <span data-testid="company-name">Initech</span>
  <div data-testid="text-location">Austin, TX</div>
</div>
</body></html>`

const anchorFixture = `<html><body>
<a data-jk="1" href="/viewjob?jk=1">Backend Developer</a>
<a data-jk="2" href="/viewjob?jk=2">Platform Engineer</a>
</body></html>`

func newFixtureServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs", r.URL.Path)
		assert.Equal(t, "go developer", r.URL.Query().Get("q"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestScrape_ParsesCards(t *testing.T) {
	server := newFixtureServer(t, http.StatusOK, cardsFixture)
	s, err := NewScraper(server.URL, 0)
	require.NoError(t, err)

	jobs, err := s.Scrape(context.Background(), "go developer", 10)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Senior Go Engineer", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "Remote", jobs[0].Location)
	assert.Equal(t, server.URL+"/rc/clk?jk=abc", jobs[0].URL)
	assert.Equal(t, "Experience with Kubernetes and Docker required.", jobs[0].Description)
	assert.Equal(t, "indeed", jobs[0].Source)

	assert.Equal(t, "Data Engineer", jobs[1].Title)
	assert.Equal(t, "Initech", jobs[1].Company)
	assert.Equal(t, "Austin, TX", jobs[1].Location)
	assert.Equal(t, "https://example.com/job/2", jobs[1].URL)
	assert.Empty(t, jobs[1].Description)
}

func TestScrape_AnchorFallbackAndLimit(t *testing.T) {
	server := newFixtureServer(t, http.StatusOK, anchorFixture)
	s, err := NewScraper(server.URL, 0)
	require.NoError(t, err)

	jobs, err := s.Scrape(context.Background(), " go developer ", 1)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Backend Developer", jobs[0].Title)
	assert.Equal(t, "N/A", jobs[0].Company)
	assert.Equal(t, server.URL+"/viewjob?jk=1", jobs[0].URL)
}

func TestScrape_HTTPError(t *testing.T) {
	server := newFixtureServer(t, http.StatusServiceUnavailable, "busy")
	s, err := NewScraper(server.URL, 0)
	require.NoError(t, err)

	_, err = s.Scrape(context.Background(), "go developer", 5)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeScrape))
}

func TestScrape_Validation(t *testing.T) {
	s, err := NewScraper("https://www.indeed.com", 0)
	require.NoError(t, err)

	_, err = s.Scrape(context.Background(), "  ", 5)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
	_, err = s.Scrape(context.Background(), "go", 0)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))

	_, err = NewScraper("not a url", 0)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConfig))
}
