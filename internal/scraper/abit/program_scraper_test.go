package abit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/abitbot/abit-advisor-go/internal/errors"
	"github.com/abitbot/abit-advisor-go/internal/scraper"
)

const programPageHTML = `<!DOCTYPE html>
<html>
<head><title>Искусственный интеллект</title></head>
<body>
<div id="__next"><h1>Искусственный интеллект</h1></div>
<script id="__NEXT_DATA__" type="application/json">{
  "props": {
    "pageProps": {
      "apiProgram": {"id": 15840, "title": "Искусственный интеллект"},
      "examDates": [{"date": "2026-07-15", "label": "экзамен"}],
      "admission_quotas": {"budget": 25, "contract": 50}
    }
  }
}</script>
</body>
</html>`

func fixtureDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractProgram(t *testing.T) {
	t.Parallel()
	program, err := ExtractProgram(fixtureDoc(t, programPageHTML), "ai")
	require.NoError(t, err)

	assert.Equal(t, "ai", program.Slug)
	assert.Equal(t, int64(15840), program.ProgramID)
	assert.Equal(t, "Искусственный интеллект", program.Title)
	assert.JSONEq(t, `[{"date": "2026-07-15", "label": "экзамен"}]`, string(program.ExamDates))
	assert.JSONEq(t, `{"budget": 25, "contract": 50}`, string(program.AdmissionQuotas))
	assert.Empty(t, program.StudyPlanFile)
	assert.Empty(t, program.StudyPlanText)
}

func TestExtractProgramMissingOptionalFields(t *testing.T) {
	t.Parallel()
	html := `<html><body><script id="__NEXT_DATA__">{
		"props": {"pageProps": {"apiProgram": {"id": 7, "title": "AI Product"}}}
	}</script></body></html>`

	program, err := ExtractProgram(fixtureDoc(t, html), "ai_product")
	require.NoError(t, err)
	assert.Empty(t, program.ExamDates)
	assert.Empty(t, program.AdmissionQuotas)
}

func TestExtractProgramFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		html string
	}{
		{
			name: "data block absent",
			html: `<html><body><div id="__next">rendered page</div></body></html>`,
		},
		{
			name: "data block empty",
			html: `<html><body><script id="__NEXT_DATA__"></script></body></html>`,
		},
		{
			name: "data block not JSON",
			html: `<html><body><script id="__NEXT_DATA__">window.__DATA__ = {};</script></body></html>`,
		},
		{
			name: "program section absent",
			html: `<html><body><script id="__NEXT_DATA__">{"props":{"pageProps":{}}}</script></body></html>`,
		},
		{
			name: "program id absent",
			html: `<html><body><script id="__NEXT_DATA__">{"props":{"pageProps":{"apiProgram":{"title":"AI"}}}}</script></body></html>`,
		},
		{
			name: "program title absent",
			html: `<html><body><script id="__NEXT_DATA__">{"props":{"pageProps":{"apiProgram":{"id":15840}}}}</script></body></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ExtractProgram(fixtureDoc(t, tt.html), "ai")
			require.Error(t, err)

			var extractionErr *domerrors.ExtractionError
			require.ErrorAs(t, err, &extractionErr)
			assert.Equal(t, "ai", extractionErr.Slug)
		})
	}
}

func TestExtractProgramMissingBlockSentinel(t *testing.T) {
	t.Parallel()
	_, err := ExtractProgram(fixtureDoc(t, `<html><body></body></html>`), "ai")
	assert.ErrorIs(t, err, domerrors.ErrDataBlockMissing)
}

func TestScrapeProgram(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(programPageHTML))
	}))
	defer server.Close()

	s := NewWithBaseURLs(scraper.NewClient(5*time.Second, 0), server.URL, server.URL)
	program, err := s.ScrapeProgram(context.Background(), "ai")
	require.NoError(t, err)

	assert.Equal(t, "/program/master/ai", gotPath)
	assert.Equal(t, "Искусственный интеллект", program.Title)
	assert.Equal(t, server.URL+"/constructor-ep/api/v1/static/programs/15840/plan/abit/pdf", program.StudyPlanURL)
}

func TestScrapeProgramNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	s := NewWithBaseURLs(scraper.NewClient(5*time.Second, 0), server.URL, server.URL)
	_, err := s.ScrapeProgram(context.Background(), "no_such_program")
	require.Error(t, err)

	var fetchErr *domerrors.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

func TestProductionURLs(t *testing.T) {
	t.Parallel()
	s := New(scraper.NewClient(5*time.Second, 0))
	assert.Equal(t, "https://abit.itmo.ru/program/master/ai_product", s.PageURL("ai_product"))
	assert.Equal(t, "https://api.itmo.su/constructor-ep/api/v1/static/programs/42/plan/abit/pdf", s.PlanURL(42))
}
