package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// storeTimeout bounds every document-store round trip made from a handler.
const storeTimeout = 10 * time.Second

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
