package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// publicReads lists route patterns whose GETs bypass authentication:
// infrastructure endpoints and the public blood-request and hospital reads
// (the emergency board is visible without an account).
var publicReads = map[string]bool{
	"/":                                    true,
	"/health":                              true,
	"/health/db":                           true,
	"/api/v1/blood-requests":               true,
	"/api/v1/blood-requests/:id":           true,
	"/api/v1/blood-requests/stats/summary": true,
	"/api/v1/hospitals":                    true,
	"/api/v1/hospitals/:id":                true,
}

// publicWrites lists the unauthenticated POST endpoints: the auth endpoints
// themselves.
var publicWrites = map[string]bool{
	"/api/v1/auth/register": true,
	"/api/v1/auth/login":    true,
}

// Skipper reports whether the matched route should skip authentication.
// It keys on c.Path() (the route pattern), not the raw URL, so path
// parameters cannot be used to slip past the gate. The method matters:
// GET /api/v1/blood-requests is public while POST on the same pattern is
// the authenticated create.
func Skipper(c echo.Context) bool {
	switch c.Request().Method {
	case http.MethodGet, http.MethodHead:
		return publicReads[c.Path()]
	case http.MethodPost:
		return publicWrites[c.Path()]
	default:
		return false
	}
}
