package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/export"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/project"
)

type Handler struct {
	svc           *export.Service
	defaultFormat string
}

func NewHandler(svc *export.Service, defaultFormat string) *Handler {
	return &Handler{svc: svc, defaultFormat: defaultFormat}
}

// Routes mounts under /projects/{projectID}/export.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.download)
	r.Post("/files", h.files)
}

// exportRequest selects the target and artifacts. Omitted include flags
// default to true.
type exportRequest struct {
	Format              string `json:"format"`
	IncludeAccounts     *bool  `json:"include_chart_of_accounts,omitempty"`
	IncludeTransactions *bool  `json:"include_transactions,omitempty"`
	IncludeSummary      *bool  `json:"include_summary,omitempty"`
}

func (req exportRequest) selection(defaultFormat string) (export.Selection, error) {
	format := req.Format
	if format == "" {
		format = defaultFormat
	}

	target, err := export.ParseTarget(format)
	if err != nil {
		return export.Selection{}, err
	}

	include := func(b *bool) bool {
		return b == nil || *b
	}

	return export.Selection{
		Target:              target,
		IncludeAccounts:     include(req.IncludeAccounts),
		IncludeTransactions: include(req.IncludeTransactions),
		IncludeSummary:      include(req.IncludeSummary),
	}, nil
}

type fileResponse struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

func (h *Handler) parse(w http.ResponseWriter, r *http.Request) (uuid.UUID, export.Selection, bool) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return uuid.Nil, export.Selection{}, false
	}

	var req exportRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return uuid.Nil, export.Selection{}, false
		}
	}

	sel, err := req.selection(h.defaultFormat)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return uuid.Nil, export.Selection{}, false
	}

	return projectID, sel, true
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	projectID, sel, ok := h.parse(w, r)
	if !ok {
		return
	}

	out, err := h.svc.Export(r.Context(), projectID, sel)
	if err != nil {
		writeError(w, projectID, err)
		return
	}

	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Content)))

	if _, err := w.Write(out.Content); err != nil {
		slog.Error("failed to write export", "project_id", projectID, "error", err)
	}
}

func (h *Handler) files(w http.ResponseWriter, r *http.Request) {
	projectID, sel, ok := h.parse(w, r)
	if !ok {
		return
	}

	artifacts, err := h.svc.Files(r.Context(), projectID, sel)
	if err != nil {
		writeError(w, projectID, err)
		return
	}

	resp := make([]fileResponse, len(artifacts))
	for i, a := range artifacts {
		resp[i] = fileResponse{
			Filename:    a.Filename,
			Content:     string(a.Content),
			ContentType: a.ContentType,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, projectID uuid.UUID, err error) {
	switch {
	case errors.Is(err, export.ErrNothingToExport):
		http.Error(w, "Nothing to export: the project has no accounts or transactions for the selected files.", http.StatusUnprocessableEntity)
	case errors.Is(err, export.ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, export.ErrUnknownTarget):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, project.ErrNotFound):
		http.Error(w, "project not found", http.StatusNotFound)
	default:
		slog.Error("export failed", "project_id", projectID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
