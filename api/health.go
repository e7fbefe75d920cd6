package api

import (
	"net/http"
)

// HealthCheck endpoint
func (a *API) HealthCheck(w http.ResponseWriter, r *http.Request) error {
	return sendJSON(w, http.StatusOK, map[string]bool{
		"ok": true,
	})
}

func (a *API) routeNotFound(w http.ResponseWriter, r *http.Request) error {
	return notFoundError("Not found: %s", r.URL.Path)
}

func (a *API) methodNotAllowed(w http.ResponseWriter, r *http.Request) error {
	return httpError(http.StatusMethodNotAllowed, "Method %s not allowed", r.Method)
}
