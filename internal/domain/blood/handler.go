package blood

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/chikitsa/chikitsa/internal/platform/auth"
	"github.com/chikitsa/chikitsa/internal/platform/httperr"
)

const roleHospitalAdmin = "HOSPITAL_ADMIN"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the blood request endpoints. Reads and the stats
// summary are public; creation and lifecycle transitions require a hospital
// admin; responding requires any authenticated user who holds a donor
// registration.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/blood-requests", h.ListActive)
	api.GET("/blood-requests/:id", h.Get)
	api.GET("/blood-requests/stats/summary", h.StatsSummary)

	admin := auth.RequireRole(roleHospitalAdmin)
	api.POST("/blood-requests", h.Create, admin)
	api.POST("/blood-requests/:id/fulfill", h.Fulfill, admin)
	api.POST("/blood-requests/:id/cancel", h.Cancel, admin)

	api.POST("/blood-requests/:id/respond", h.Respond)
}

func (h *Handler) ListActive(c echo.Context) error {
	requests, err := h.svc.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"requests": requests})
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperr.Validation("invalid blood request id")
	}
	req, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"request": req})
}

type createRequestRequest struct {
	HospitalID          string    `json:"hospitalId"`
	PatientNameOrCode   string    `json:"patientNameOrCode"`
	BloodGroupRequired  string    `json:"bloodGroupRequired"`
	UrgencyLevel        string    `json:"urgencyLevel"`
	NeededBy            time.Time `json:"neededBy"`
	LocationDescription *string   `json:"locationDescription"`
	ContactPersonName   *string   `json:"contactPersonName"`
	ContactPhone        *string   `json:"contactPhone"`
	Notes               *string   `json:"notes"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("invalid request body")
	}
	hospitalID, err := uuid.Parse(req.HospitalID)
	if err != nil {
		return httperr.Validation("invalid hospital id")
	}

	created, err := h.svc.CreateRequest(c.Request().Context(), CreateRequestInput{
		HospitalID:          hospitalID,
		PatientNameOrCode:   req.PatientNameOrCode,
		BloodGroupRequired:  req.BloodGroupRequired,
		UrgencyLevel:        req.UrgencyLevel,
		NeededBy:            req.NeededBy,
		LocationDescription: req.LocationDescription,
		ContactPersonName:   req.ContactPersonName,
		ContactPhone:        req.ContactPhone,
		Notes:               req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"request": created})
}

func (h *Handler) Respond(c echo.Context) error {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperr.Validation("invalid blood request id")
	}
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	result, err := h.svc.Respond(c.Request().Context(), requestID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) StatsSummary(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) Fulfill(c echo.Context) error {
	return h.transition(c, h.svc.Fulfill)
}

func (h *Handler) Cancel(c echo.Context) error {
	return h.transition(c, h.svc.Cancel)
}

func (h *Handler) transition(c echo.Context, fn func(ctx context.Context, id uuid.UUID) (*Request, error)) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperr.Validation("invalid blood request id")
	}
	req, err := fn(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"request": req})
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	raw := auth.UserIDFromContext(c.Request().Context())
	if raw == "" {
		return uuid.Nil, httperr.Unauthorized("authentication required")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, httperr.Unauthorized("invalid token subject")
	}
	return userID, nil
}
