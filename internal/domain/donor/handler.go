package donor

import (
	"net/http"

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
	api.GET("/donors/me", h.Me)
	api.PUT("/donors/me", h.UpdateMe)
}

func (h *Handler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

type updateProfileRequest struct {
	BloodGroup   *string `json:"bloodGroup"`
	Availability *string `json:"availability"`
}

func (h *Handler) UpdateMe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("invalid request body")
	}

	d, err := h.svc.UpdateProfile(c.Request().Context(), userID, UpdateProfileInput{
		BloodGroup:   req.BloodGroup,
		Availability: req.Availability,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
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
