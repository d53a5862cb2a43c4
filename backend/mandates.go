package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"
)

// Mandate is a statutory PDF document published for a given academic year.
type Mandate struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	AcademicYear string    `json:"academicYear"`
	PDFURL       string    `json:"pdfUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MandateInput is the create/update payload for a mandate document.
type MandateInput struct {
	Title        string `json:"title"`
	AcademicYear string `json:"academicYear"`
	PDFURL       string `json:"pdfUrl"`
}

// AcademicYear groups mandate documents on the public mandates page.
type AcademicYear struct {
	ID   string `json:"id"`
	Year string `json:"year"`
}

var academicYearPattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// ValidateAcademicYear checks the YYYY-YYYY format and that the two years
// are consecutive. The backend re-validates; this is the pre-submit check.
func ValidateAcademicYear(year string) error {
	m := academicYearPattern.FindStringSubmatch(year)
	if m == nil {
		return fmt.Errorf("academic year must have the form YYYY-YYYY, got %q", year)
	}
	from, _ := strconv.Atoi(m[1])
	to, _ := strconv.Atoi(m[2])
	if to != from+1 {
		return fmt.Errorf("academic year %q must span two consecutive years", year)
	}
	return nil
}

func (in MandateInput) Validate() error {
	if in.Title == "" {
		return fmt.Errorf("mandate title is required")
	}
	if in.PDFURL == "" {
		return fmt.Errorf("mandate PDF URL is required")
	}
	return ValidateAcademicYear(in.AcademicYear)
}

// ListMandates returns mandate documents, optionally restricted to one
// academic year.
func (c *Client) ListMandates(ctx context.Context, academicYear string) ([]Mandate, error) {
	q := url.Values{}
	if academicYear != "" {
		q.Set("year", academicYear)
	}
	var out []Mandate
	if err := c.do(ctx, http.MethodGet, "/mandates", nil, &out, WithQuery(q)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateMandate(ctx context.Context, in MandateInput) (Mandate, error) {
	if err := in.Validate(); err != nil {
		return Mandate{}, err
	}
	var out Mandate
	if err := c.do(ctx, http.MethodPost, "/mandates", in, &out); err != nil {
		return Mandate{}, err
	}
	return out, nil
}

func (c *Client) UpdateMandate(ctx context.Context, id string, in MandateInput) (Mandate, error) {
	if err := in.Validate(); err != nil {
		return Mandate{}, err
	}
	var out Mandate
	if err := c.do(ctx, http.MethodPut, "/mandates/"+url.PathEscape(id), in, &out); err != nil {
		return Mandate{}, err
	}
	return out, nil
}

func (c *Client) DeleteMandate(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/mandates/"+url.PathEscape(id), nil, nil)
}

// ListAcademicYears returns the years available for grouping mandates.
func (c *Client) ListAcademicYears(ctx context.Context) ([]AcademicYear, error) {
	var out []AcademicYear
	if err := c.do(ctx, http.MethodGet, "/mandates/years", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAcademicYear(ctx context.Context, year string) (AcademicYear, error) {
	if err := ValidateAcademicYear(year); err != nil {
		return AcademicYear{}, err
	}
	var out AcademicYear
	if err := c.do(ctx, http.MethodPost, "/mandates/years", map[string]string{"year": year}, &out); err != nil {
		return AcademicYear{}, err
	}
	return out, nil
}

func (c *Client) DeleteAcademicYear(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/mandates/years/"+url.PathEscape(id), nil, nil)
}
