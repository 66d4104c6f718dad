package department

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler serves the department catalog.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Register mounts the department routes on the given group.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/departments", h.List)
	g.GET("/departments/:id", h.Get)
}

// List returns all departments.
func (h *Handler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, List())
}

// Get returns a single department by id.
func (h *Handler) Get(c echo.Context) error {
	d, ok := Lookup(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "department not found")
	}
	return c.JSON(http.StatusOK, d)
}
