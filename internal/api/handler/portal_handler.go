package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gnanalytica/website/internal/api/metrics"
	"github.com/gnanalytica/website/internal/core/domain"
	"github.com/gnanalytica/website/internal/core/ports"
)

// PortalHandler serves the JSON portal API.
type PortalHandler struct {
	portalService ports.PortalService
}

func NewPortalHandler(portalService ports.PortalService) *PortalHandler {
	return &PortalHandler{portalService: portalService}
}

type applicationResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	Launchable  bool   `json:"launchable"`
}

type applicationsResponse struct {
	Applications []applicationResponse `json:"applications"`
	Total        int                   `json:"total"`
	Active       int                   `json:"active"`
}

func toApplicationResponses(apps []domain.Application) []applicationResponse {
	out := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, applicationResponse{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			URL:         a.URL,
			Status:      string(a.Status),
			StatusLabel: a.Status.Label(),
			Launchable:  a.Launchable(),
		})
	}
	return out
}

// Applications lists the applications the caller may launch.
//
// @Summary      Portal applications
// @Tags         portal
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  applicationsResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/portal/applications [get]
func (h *PortalHandler) Applications(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	view, err := h.portalService.View(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	metrics.RecordPortalView(sess.Role, view.Total)

	return c.JSON(http.StatusOK, applicationsResponse{
		Applications: toApplicationResponses(view.Applications),
		Total:        view.Total,
		Active:       view.Active,
	})
}

// Catalog lists the full application catalog. Admin only.
//
// @Summary      Application catalog
// @Tags         portal
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   applicationResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/catalog [get]
func (h *PortalHandler) Catalog(c echo.Context) error {
	return c.JSON(http.StatusOK, toApplicationResponses(h.portalService.Catalog()))
}
