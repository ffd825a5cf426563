// Package abit scrapes the admission site: program pages and the
// study plan documents they reference.
package abit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	domerrors "github.com/abitbot/abit-advisor-go/internal/errors"
	"github.com/abitbot/abit-advisor-go/internal/scraper"
	"github.com/abitbot/abit-advisor-go/internal/storage"
)

const (
	// DefaultSiteURL hosts the program pages.
	DefaultSiteURL = "https://abit.itmo.ru"
	// DefaultAPIURL hosts the study plan documents.
	DefaultAPIURL = "https://api.itmo.su"

	programPagePath = "/program/master/%s"
	studyPlanPath   = "/constructor-ep/api/v1/static/programs/%d/plan/abit/pdf"

	// ID of the server-rendered hydration payload embedded in every
	// program page.
	dataBlockID = "__NEXT_DATA__"
)

// Scraper fetches program pages and study plans from the admission site.
type Scraper struct {
	client  *scraper.Client
	siteURL string
	apiURL  string
}

// New creates a scraper against the production admission site.
func New(client *scraper.Client) *Scraper {
	return NewWithBaseURLs(client, DefaultSiteURL, DefaultAPIURL)
}

// NewWithBaseURLs creates a scraper against custom base URLs.
func NewWithBaseURLs(client *scraper.Client, siteURL, apiURL string) *Scraper {
	return &Scraper{
		client:  client,
		siteURL: strings.TrimRight(siteURL, "/"),
		apiURL:  strings.TrimRight(apiURL, "/"),
	}
}

// PageURL returns the program page URL for a slug.
func (s *Scraper) PageURL(slug string) string {
	return s.siteURL + fmt.Sprintf(programPagePath, slug)
}

// PlanURL returns the study plan PDF URL for a program ID.
func (s *Scraper) PlanURL(programID int64) string {
	return s.apiURL + fmt.Sprintf(studyPlanPath, programID)
}

// pageData mirrors the parts of the hydration payload we read.
// Everything else in the blob is ignored.
type pageData struct {
	Props struct {
		PageProps pageProps `json:"pageProps"`
	} `json:"props"`
}

type pageProps struct {
	APIProgram      *apiProgram     `json:"apiProgram"`
	ExamDates       json.RawMessage `json:"examDates"`
	AdmissionQuotas json.RawMessage `json:"admission_quotas"`
}

type apiProgram struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// ScrapeProgram fetches a program page and extracts its record.
// URL: https://abit.itmo.ru/program/master/{slug}
// The returned record has no study plan file or text yet; the caller
// fills those after downloading the document.
func (s *Scraper) ScrapeProgram(ctx context.Context, slug string) (*storage.Program, error) {
	doc, err := s.client.GetDocument(ctx, s.PageURL(slug))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch program page: %w", err)
	}

	program, err := ExtractProgram(doc, slug)
	if err != nil {
		return nil, err
	}
	program.StudyPlanURL = s.PlanURL(program.ProgramID)
	return program, nil
}

// ExtractProgram pulls the program record out of an already-parsed
// program page. StudyPlanURL is left for the caller to fill since it
// depends on the scraper's base URL.
func ExtractProgram(doc *goquery.Document, slug string) (*storage.Program, error) {
	raw := strings.TrimSpace(doc.Find("script#" + dataBlockID).Text())
	if raw == "" {
		return nil, domerrors.NewExtractionError(slug, domerrors.ErrDataBlockMissing)
	}

	var data pageData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, domerrors.NewExtractionError(slug, fmt.Errorf("malformed data block: %w", err))
	}

	props := data.Props.PageProps
	if props.APIProgram == nil {
		return nil, domerrors.NewExtractionError(slug, fmt.Errorf("data block has no program section"))
	}
	if props.APIProgram.ID == 0 {
		return nil, domerrors.NewExtractionError(slug, fmt.Errorf("data block has no program id"))
	}
	if props.APIProgram.Title == "" {
		return nil, domerrors.NewExtractionError(slug, fmt.Errorf("data block has no program title"))
	}

	return &storage.Program{
		Slug:            slug,
		ProgramID:       props.APIProgram.ID,
		Title:           props.APIProgram.Title,
		ExamDates:       props.ExamDates,
		AdmissionQuotas: props.AdmissionQuotas,
	}, nil
}
