package appointment

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/chikitsa/chikitsa/internal/platform/auth"
	"github.com/chikitsa/chikitsa/internal/platform/httperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/appointments", h.Book)
	api.GET("/appointments", h.List)
	api.GET("/appointments/:id", h.Get)
}

type bookRequest struct {
	HospitalID        string    `json:"hospitalId"`
	DoctorID          *string   `json:"doctorId"`
	RequestedDateTime time.Time `json:"requestedDateTime"`
	Notes             *string   `json:"notes"`
}

func (h *Handler) Book(c echo.Context) error {
	patientID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("invalid request body")
	}
	if req.HospitalID == "" {
		return httperr.Validation("hospital id and requested date/time are required")
	}
	hospitalID, err := uuid.Parse(req.HospitalID)
	if err != nil {
		return httperr.Validation("invalid hospital id")
	}

	var doctorID *uuid.UUID
	if req.DoctorID != nil && *req.DoctorID != "" {
		id, err := uuid.Parse(*req.DoctorID)
		if err != nil {
			return httperr.Validation("invalid doctor id")
		}
		doctorID = &id
	}

	result, err := h.svc.Book(c.Request().Context(), patientID, BookInput{
		HospitalID:        hospitalID,
		DoctorID:          doctorID,
		RequestedDateTime: req.RequestedDateTime,
		Notes:             req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) List(c echo.Context) error {
	patientID, err := currentUserID(c)
	if err != nil {
		return err
	}
	appointments, err := h.svc.List(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"appointments": appointments})
}

func (h *Handler) Get(c echo.Context) error {
	patientID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperr.Validation("invalid appointment id")
	}
	a, err := h.svc.Get(c.Request().Context(), id, patientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"appointment": a})
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
