// Package server is the bundled reference implementation of the scoring
// service protocol: POST {base}/analyze/ and {base}/suggest/. It exists for
// local development and integration tests; the client works against any
// service speaking the same contract.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"taskpilot/internal/scoring"
	"taskpilot/internal/task"
)

// suggestLimit caps how many tasks a suggest response returns.
const suggestLimit = 3

type Server struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{log: log}
}

// Handler builds the service mux with permissive CORS, so a browser client
// on another origin can talk to a locally running instance.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/api/tasks/analyze/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.handleAnalyze(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/api/tasks/suggest/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.handleSuggest(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(mux)
}

type analyzeBody struct {
	Strategy string      `json:"strategy"`
	Tasks    []task.Task `json:"tasks"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body analyzeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	strategy := body.Strategy
	if strategy == "" {
		strategy = scoring.DefaultStrategy
	}
	scorer, err := scoring.ForStrategy(strategy)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateBatch(body.Tasks); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	scored, err := scorer.ScoreAll(body.Tasks)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.Debug("analyzed tasks", zap.String("strategy", strategy), zap.Int("count", len(scored)))
	writeJSON(w, map[string]any{
		"tasks":    scored,
		"strategy": strategy,
		"count":    len(scored),
	})
}

type suggestBody struct {
	Tasks []task.Task `json:"tasks"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var body suggestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateBatch(body.Tasks); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	scorer, err := scoring.ForStrategy(scoring.DefaultStrategy)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	scored, err := scorer.ScoreAll(body.Tasks)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(scored) > suggestLimit {
		scored = scored[:suggestLimit]
	}

	s.log.Debug("suggested tasks", zap.Int("count", len(scored)))
	writeJSON(w, map[string]any{
		"suggested_tasks": scored,
		"reason": fmt.Sprintf(
			"Top %d tasks picked for today based on their urgency, importance, effort and dependencies.",
			len(scored)),
	})
}

// validateBatch applies the shared task checks plus graph sanity. Returns a
// user-facing message, empty when the batch is fine.
func validateBatch(tasks []task.Task) string {
	if len(tasks) == 0 {
		return "tasks must not be empty"
	}
	for i, t := range tasks {
		if err := task.Validate(t); err != nil {
			return fmt.Sprintf("task %d: %s", i, err.Error())
		}
	}
	if scoring.HasCycle(tasks) {
		return scoring.ErrCircularDeps.Error()
	}
	return ""
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
