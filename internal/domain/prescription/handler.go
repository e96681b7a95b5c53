package prescription

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
	api.GET("/prescriptions", h.List)
	api.GET("/prescriptions/:id", h.Get)
	api.POST("/prescriptions/:id/order", h.CreateOrder)
}

func (h *Handler) List(c echo.Context) error {
	patientID, err := currentUserID(c)
	if err != nil {
		return err
	}
	prescriptions, err := h.svc.List(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"prescriptions": prescriptions})
}

func (h *Handler) Get(c echo.Context) error {
	patientID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperr.Validation("invalid prescription id")
	}
	p, err := h.svc.Get(c.Request().Context(), id, patientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"prescription": p})
}

type orderRequest struct {
	DeliveryAddress string `json:"deliveryAddress"`
	ContactPhone    string `json:"contactPhone"`
}

func (h *Handler) CreateOrder(c echo.Context) error {
	patientID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperr.Validation("invalid prescription id")
	}

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("invalid request body")
	}

	order, err := h.svc.CreateOrder(c.Request().Context(), id, patientID, OrderInput{
		DeliveryAddress: req.DeliveryAddress,
		ContactPhone:    req.ContactPhone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"order": order})
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
