package gateway

import (
	"log"
	"net/http"

	"github.com/alphabetz/alphabetz/internal/convertgen"
	"github.com/alphabetz/alphabetz/internal/questiongen"
)

const (
	msgMissingSettings   = "Missing required settings fields (tenseCategories, forms, voices, questionTypes, questionCount)."
	msgMissingParameters = "Missing required parameters for single conversion."
	msgGenerateFailed    = "Generation failed"
	msgConvertFailed     = "Conversion Generation failed"
)

// GenerateRequest is the /generate body.
type GenerateRequest struct {
	Settings *questiongen.Settings `json:"settings"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	provider, ok := s.provider(w, r, false)
	if !ok {
		return
	}

	var body GenerateRequest
	if err := decodeBody(w, r, &body); err != nil || body.Settings == nil || body.Settings.Validate() != nil {
		writeError(w, http.StatusBadRequest, msgMissingSettings, "")
		return
	}

	qs, err := questiongen.New(provider, questiongen.DefaultConfig()).Generate(r.Context(), *body.Settings)
	if err != nil {
		log.Printf("GENERATION ERROR: %v", err)
		writeUpstreamError(w, msgGenerateFailed, err)
		return
	}
	writeJSON(w, http.StatusOK, questiongen.Batch(qs))
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertgen.Request
	if err := decodeBody(w, r, &req); err != nil || req.Validate() != nil {
		writeError(w, http.StatusBadRequest, msgMissingParameters, "")
		return
	}

	// The client retries throttled conversions; nothing else is retried.
	provider, ok := s.provider(w, r, true)
	if !ok {
		return
	}

	res, err := convertgen.New(provider).Convert(r.Context(), req)
	if err != nil {
		log.Printf("CONVERSION ERROR: %v", err)
		writeUpstreamError(w, msgConvertFailed, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
