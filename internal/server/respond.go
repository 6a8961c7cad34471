package server

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Response already committed; nothing useful to do.
		return
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), HTTPStatus(err))
}
