package server

import (
	"io"
	"net/http"
	"time"
)

// detectClient is used for calls to the object-detection service. Uploads
// can be large, so the timeout is generous.
var detectClient = &http.Client{Timeout: 60 * time.Second}

// handleDetectionHealth handles GET /v1/detection/health, passing through
// the detection service's health status.
func (s *TrackerServer) handleDetectionHealth(w http.ResponseWriter, r *http.Request) {
	if s.detectURL == "" {
		writeError(w, http.StatusServiceUnavailable, "detection service not configured")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, s.detectURL+"/health", nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build request")
		return
	}

	resp, err := detectClient.Do(req)
	if err != nil {
		writeError(w, http.StatusBadGateway, "detection service unreachable")
		return
	}
	defer resp.Body.Close()

	copyResponse(w, resp)
}

// handleDetect handles POST /v1/detection/detect, forwarding the multipart
// upload to the detection service unchanged.
func (s *TrackerServer) handleDetect(w http.ResponseWriter, r *http.Request) {
	if s.detectURL == "" {
		writeError(w, http.StatusServiceUnavailable, "detection service not configured")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, s.detectURL+"/detect", r.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build request")
		return
	}
	req.Header.Set("Content-Type", r.Header.Get("Content-Type"))
	req.ContentLength = r.ContentLength

	resp, err := detectClient.Do(req)
	if err != nil {
		writeError(w, http.StatusBadGateway, "detection service unreachable")
		return
	}
	defer resp.Body.Close()

	copyResponse(w, resp)
}

// copyResponse relays an upstream response to the client.
func copyResponse(w http.ResponseWriter, resp *http.Response) {
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}
