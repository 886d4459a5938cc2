package matching

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts under /projects/{projectID}/matching.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	RawDescription string  `json:"raw_description"`
	Matched        bool    `json:"matched"`
	AccountNumber  string  `json:"account_number,omitempty"`
	AccountName    string  `json:"account_name,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	rawDesc := r.URL.Query().Get("raw_description")
	if rawDesc == "" {
		http.Error(w, "raw_description query parameter is required", http.StatusBadRequest)
		return
	}

	sug, err := h.svc.Suggest(r.Context(), projectID, rawDesc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := suggestResponse{RawDescription: rawDesc}
	if sug != nil {
		resp.Matched = true
		resp.AccountNumber = sug.AccountNumber
		resp.AccountName = sug.AccountName
		resp.Confidence = sug.Confidence
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type learnRequest struct {
	Pattern       string `json:"pattern"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Pattern) == "" || strings.TrimSpace(req.AccountNumber) == "" {
		http.Error(w, "pattern and account_number are required", http.StatusBadRequest)
		return
	}

	err = h.svc.Learn(r.Context(), projectID, matching.Mapping{
		Pattern:       req.Pattern,
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		AccountName:   strings.TrimSpace(req.AccountName),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
