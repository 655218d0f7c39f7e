package handlers

import "net/http"

// Version identifiers, overridden at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

// VersionResponse represents the version endpoint response
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// VersionHandler handles the /version endpoint
func VersionHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, VersionResponse{Version: Version, Commit: Commit})
}
