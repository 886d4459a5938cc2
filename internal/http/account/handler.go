package account

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/upload"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
)

type Handler struct {
	svc       *account.Service
	importSvc *importer.Service
}

func NewHandler(svc *account.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

// Routes mounts under /projects/{projectID}/accounts.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/import", h.importChart)
}

type accountResponse struct {
	Number              string             `json:"number"`
	Name                string             `json:"name"`
	Type                account.Type       `json:"type"`
	DetailType          account.DetailType `json:"detail_type,omitempty"`
	Description         string             `json:"description,omitempty"`
	IsCustom            bool               `json:"is_custom"`
	ParentAccountNumber string             `json:"parent_account_number,omitempty"`
}

func toResponseList(accounts []account.Account) []accountResponse {
	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = accountResponse{
			Number:              a.Number,
			Name:                a.Name,
			Type:                a.Type,
			DetailType:          a.DetailType,
			Description:         a.Description,
			IsCustom:            a.IsCustom,
			ParentAccountNumber: a.ParentAccountNumber,
		}
	}

	return resp
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	accounts, err := h.svc.List(r.Context(), projectID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(accounts)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) importChart(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	file, format, err := upload.File(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	parsed, err := h.importSvc.ParseChart(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	chart, err := h.svc.ReplaceChart(r.Context(), projectID, parsed)
	if err != nil {
		if errors.Is(err, account.ErrInvalidAccount) || errors.Is(err, account.ErrDuplicateNumber) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		slog.Error("failed to replace chart", "project_id", projectID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	slog.Info("chart imported", "project_id", projectID, "accounts", len(chart))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponseList(chart)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
