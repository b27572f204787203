package handler

import (
	"net/http"
	"time"
)

// ServiceName identifies this service in the health payload.
const ServiceName = "user-service"

type healthData struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// HandleHealth responds with a 200 OK and a health payload inside the
// standard envelope.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, healthData{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   ServiceName,
	}, "")
}
