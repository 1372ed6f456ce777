// internal/controller/respond.go
package controller

import (
    "encoding/json"
    "net/http"

    appErrors "github.com/ziljnk/content-generation/internal/errors"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(v)
}

// writeError maps the app error taxonomy onto status codes.
func writeError(w http.ResponseWriter, err error) {
    switch {
    case appErrors.IsInvalidRequest(err), appErrors.IsInvalidTransition(err):
        http.Error(w, err.Error(), http.StatusBadRequest)
    case appErrors.IsNotFound(err), appErrors.IsProfileNotFound(err):
        http.Error(w, err.Error(), http.StatusNotFound)
    case appErrors.IsNotConfigured(err):
        http.Error(w, err.Error(), http.StatusServiceUnavailable)
    default:
        http.Error(w, err.Error(), http.StatusInternalServerError)
    }
}
