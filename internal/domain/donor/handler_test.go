package donor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/chikitsa/chikitsa/internal/platform/auth"
	"github.com/chikitsa/chikitsa/internal/platform/httperr"
)

func authedContext(e *echo.Echo, method string, userID uuid.UUID, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/api/v1/donors/me", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	ctx := context.WithValue(req.Context(), auth.UserIDKey, userID.String())
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_UpdateMe(t *testing.T) {
	repo := newMockRepo()
	h := NewHandler(NewService(repo))
	e := echo.New()

	id := uuid.New()
	if err := repo.Upsert(context.Background(), id, nil); err != nil {
		t.Fatal(err)
	}

	c, rec := authedContext(e, http.MethodPut, id, `{"bloodGroup":"B-","availability":"UNAVAILABLE"}`)
	if err := h.UpdateMe(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var d Donor
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if d.Availability != Unavailable {
		t.Errorf("availability = %s, want UNAVAILABLE", d.Availability)
	}
	if d.BloodGroup == nil || *d.BloodGroup != "B-" {
		t.Errorf("blood group = %v, want B-", d.BloodGroup)
	}
}

func TestHandler_Me_Unauthenticated(t *testing.T) {
	h := NewHandler(NewService(newMockRepo()))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/donors/me", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if err := h.Me(c); !httperr.IsKind(err, httperr.KindUnauthorized) {
		t.Errorf("expected unauthorized, got %v", err)
	}
}
