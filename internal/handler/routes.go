package handler

import (
	"net/http"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, users *UserHandler) {
	mux.HandleFunc("GET /health", HandleHealth)

	mux.HandleFunc("GET /api/users", users.HandleList)
	mux.HandleFunc("POST /api/users", RequireJSON(users.HandleCreate))
	mux.HandleFunc("GET /api/users/{id}", users.HandleGet)
	mux.HandleFunc("PUT /api/users/{id}", RequireJSON(users.HandleUpdate))
	mux.HandleFunc("DELETE /api/users/{id}", users.HandleDelete)

	// Known paths with an unregistered method land here instead of the mux
	// default: the method patterns above are more specific and win.
	mux.HandleFunc("/health", handleMethodNotAllowed)
	mux.HandleFunc("/api/users", handleMethodNotAllowed)
	mux.HandleFunc("/api/users/{id}", handleMethodNotAllowed)

	// Everything else is an unknown endpoint.
	mux.HandleFunc("/", handleNotFound)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Endpoint not found")
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
