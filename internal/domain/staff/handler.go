package staff

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ftk-keit/medi-application/internal/platform/auth"
)

type Handler struct {
	jwt auth.JWTConfig
}

func NewHandler(jwt auth.JWTConfig) *Handler {
	return &Handler{jwt: jwt}
}

// RegisterPublicRoutes mounts the login endpoint outside the auth middleware.
func (h *Handler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
}

// RegisterRoutes mounts the authenticated staff routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/staff", h.List, auth.RequireRole("hr"))
	api.GET("/auth/me", h.Me)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	token, err := auth.IssueToken(h.jwt, user.Username, user.Username, user.Role, user.Department)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not issue token")
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// Me returns the directory entry for the authenticated user.
func (h *Handler) Me(c echo.Context) error {
	username := auth.UsernameFromContext(c.Request().Context())
	user, ok := Lookup(username)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, List())
}
