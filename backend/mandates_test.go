package backend_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
)

func TestValidateAcademicYear(t *testing.T) {
	t.Run("consecutive years pass", func(t *testing.T) {
		require.NoError(t, backend.ValidateAcademicYear("2024-2025"))
		require.NoError(t, backend.ValidateAcademicYear("1999-2000"))
	})

	t.Run("gap rejected", func(t *testing.T) {
		err := backend.ValidateAcademicYear("2024-2026")
		require.Error(t, err)
		require.Contains(t, err.Error(), "consecutive")
	})

	t.Run("reversed rejected", func(t *testing.T) {
		require.Error(t, backend.ValidateAcademicYear("2025-2024"))
	})

	t.Run("same year rejected", func(t *testing.T) {
		require.Error(t, backend.ValidateAcademicYear("2024-2024"))
	})

	t.Run("malformed rejected", func(t *testing.T) {
		for _, year := range []string{"", "2024", "2024-25", "24-25", "2024/2025", " 2024-2025"} {
			require.Error(t, backend.ValidateAcademicYear(year), "year %q", year)
		}
	})
}

func TestMandateInput_Validate(t *testing.T) {
	valid := backend.MandateInput{
		Title:        "AICTE approval",
		AcademicYear: "2025-2026",
		PDFURL:       "https://cdn.example.com/mandates/aicte.pdf",
	}
	require.NoError(t, valid.Validate())

	t.Run("missing title", func(t *testing.T) {
		in := valid
		in.Title = ""
		require.Error(t, in.Validate())
	})

	t.Run("missing pdf url", func(t *testing.T) {
		in := valid
		in.PDFURL = ""
		require.Error(t, in.Validate())
	})

	t.Run("bad academic year", func(t *testing.T) {
		in := valid
		in.AcademicYear = "2025-2027"
		require.Error(t, in.Validate())
	})
}

func TestCreateAcademicYear_RejectsBeforeNetwork(t *testing.T) {
	var hits int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		writeEnvelope(w, http.StatusOK, nil)
	}))
	defer ts.Close()

	c, err := backend.New(ts.URL, nil)
	require.NoError(t, err)

	_, err = c.CreateAcademicYear(context.Background(), "2024-2030")
	require.Error(t, err)
	require.EqualValues(t, 0, atomic.LoadInt64(&hits), "invalid year must never reach the backend")
}

func TestListMandates_YearFilter(t *testing.T) {
	var gotYear string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotYear = r.URL.Query().Get("year")
		writeEnvelope(w, http.StatusOK, []backend.Mandate{{ID: "m1", Title: "Fee structure", AcademicYear: "2025-2026"}})
	}))
	defer ts.Close()

	c, err := backend.New(ts.URL, nil)
	require.NoError(t, err)

	mandates, err := c.ListMandates(context.Background(), "2025-2026")
	require.NoError(t, err)
	require.Len(t, mandates, 1)
	require.Equal(t, "2025-2026", gotYear)
}
