package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/joestump/ambient-prompt/internal/generator"
	"github.com/joestump/ambient-prompt/internal/metrics"
)

// MissingConceptMessage is returned with 400 when the concept parameter is absent or blank.
const MissingConceptMessage = "Missing required parameter: concept"

type promptAPIHandler struct {
	generator generator.Generator
	examples  []string
}

// InitialPrompt generates a composition prompt from the concept query parameter.
// GET /api/initial-prompt?concept=...
//
// @Summary      Generate a prompt
// @Description  Expands a seed concept into an ambient-music composition prompt
// @Tags         Prompts
// @Produce      json
// @Param        concept  query     string  true  "Seed concept"
// @Success      200      {object}  PromptResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      429      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /initial-prompt [get]
func (h *promptAPIHandler) InitialPrompt(w http.ResponseWriter, r *http.Request) {
	concept := strings.TrimSpace(r.URL.Query().Get("concept"))
	if concept == "" {
		metrics.GenerationsTotal.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, MissingConceptMessage, "BAD_REQUEST")
		return
	}

	start := time.Now()
	prompt, err := h.generator.Generate(r.Context(), concept)
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Printf("api: generate prompt (request %s): %v", middleware.GetReqID(r.Context()), err)
		metrics.GenerationsTotal.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, "Failed to generate prompt", "GENERATION_FAILED")
		return
	}

	metrics.GenerationsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, PromptResponse{Prompt: prompt})
}

// Examples lists example seed concepts for inspiration.
// GET /api/examples
//
// @Summary      List example seeds
// @Tags         Prompts
// @Produce      json
// @Success      200  {object}  ExamplesResponse
// @Router       /examples [get]
func (h *promptAPIHandler) Examples(w http.ResponseWriter, r *http.Request) {
	examples := h.examples
	if examples == nil {
		examples = []string{}
	}
	writeJSON(w, http.StatusOK, ExamplesResponse{Examples: examples})
}
