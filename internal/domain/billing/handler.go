package billing

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/obcare/obcare/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	readGroup.GET("/patients/:id/billing/recommendations", h.GetRecommendations)
}

// GetRecommendations runs the engine for one patient. An episode that fails
// the engine's preconditions still answers 200 with an empty list; that is
// the signal callers branch on.
func (h *Handler) GetRecommendations(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	entries, err := h.svc.Recommendations(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	if entries == nil {
		entries = []Entry{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": entries})
}
