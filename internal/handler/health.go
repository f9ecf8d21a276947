package handler

import "net/http"

// Health reports whether the server is accepting requests.
func Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
