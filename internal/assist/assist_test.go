package assist

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathways/internal/intent"
	"pathways/internal/lookup"
	dErrors "pathways/pkg/domain-errors"
	"pathways/pkg/requestcontext"
)

type stubLookup struct {
	lastQuery    string
	lastPostcode string
	services     []lookup.Location
	adjustments  lookup.Adjustments
}

func (s *stubLookup) SearchServices(query, postcode string) []lookup.Location {
	s.lastQuery = query
	s.lastPostcode = postcode
	return s.services
}

func (s *stubLookup) InclusivityAdjustments(postcode string) lookup.Adjustments {
	return s.adjustments
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGuide(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	t.Run("birth message yields full guidance", func(t *testing.T) {
		stub := &stubLookup{
			services: []lookup.Location{
				{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"},
			},
			adjustments: lookup.Adjustments{Postcode: "2150", LanguageSupport: true},
		}
		service := New(stub, discard())

		guidance, err := service.Guide(ctx, "I need to register my baby born 3 days ago, postcode 2150")
		require.NoError(t, err)

		assert.Equal(t, intent.IntentBirthRegistration, guidance.Intent)
		assert.Equal(t, "2150", guidance.Entities.Postcode)
		assert.Equal(t, "2025-01-12", guidance.SuggestedBabyDOB)
		assert.Len(t, guidance.NearestServices, 3)
		assert.True(t, guidance.Inclusivity.LanguageSupport)
		assert.Equal(t, "2150", stub.lastPostcode)
	})

	t.Run("missing postcode falls back to default", func(t *testing.T) {
		stub := &stubLookup{}
		service := New(stub, discard())

		guidance, err := service.Guide(ctx, "help with medicare")
		require.NoError(t, err)

		assert.Equal(t, intent.IntentMedicareEnrolment, guidance.Intent)
		assert.Equal(t, defaultPostcode, stub.lastPostcode)
		assert.Empty(t, guidance.SuggestedBabyDOB)
		assert.NotNil(t, guidance.NearestServices)
	})

	t.Run("empty message rejected", func(t *testing.T) {
		_, err := New(&stubLookup{}, discard()).Guide(ctx, "")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func TestHandleAssist(t *testing.T) {
	router := chi.NewRouter()
	NewHandler(New(&stubLookup{}, discard()), discard()).Register(router)

	t.Run("returns guidance", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/assist",
			strings.NewReader(`{"message":"my baby was born yesterday"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty message is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/assist", strings.NewReader(`{"message":""}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
