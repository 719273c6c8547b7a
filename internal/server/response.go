// Package server mounts a built device.Data/[]device.Registration pair
// onto a gorilla/mux router: the descriptor root, the well-known
// redirect, every declared route, and a debug _invoke alias per route,
// grounded on the teacher's internal/router/router.go and
// internal/device/common/common.go JSONResponse pattern.
package server

import (
	"encoding/json"
	"net/http"

	internaldevice "ascotgo/internal/device"
)

// JSONResponse writes jsonBody as the response with httpCode, matching
// the teacher's device.JSONResponse signature.
func JSONResponse(w http.ResponseWriter, httpCode int, jsonBody []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpCode)
	w.Write(jsonBody)
}

// WriteActionError serializes an ActionError and writes it with HTTP
// 500, the contract spec.md §6/§7 assigns every device handler failure.
func WriteActionError(w http.ResponseWriter, actionErr internaldevice.ActionError) {
	body, err := json.Marshal(actionErr)
	if err != nil {
		JSONResponse(w, http.StatusInternalServerError, []byte(`{"error":"Internal","description":"failed to marshal error body"}`))
		return
	}
	JSONResponse(w, http.StatusInternalServerError, body)
}
