package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/auth"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/upload"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/matching"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

type Handler struct {
	svc        *transaction.Service
	accountSvc *account.Service
	matchSvc   *matching.Service
	importSvc  *importer.Service
}

func NewHandler(
	svc *transaction.Service,
	accountSvc *account.Service,
	matchSvc *matching.Service,
	importSvc *importer.Service,
) *Handler {
	return &Handler{
		svc:        svc,
		accountSvc: accountSvc,
		matchSvc:   matchSvc,
		importSvc:  importSvc,
	}
}

// ProjectRoutes mounts under /projects/{projectID}/transactions.
func (h *Handler) ProjectRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/import", h.importLedger)
	r.Post("/import/confirm", h.confirmImport)
}

// Routes mounts under /transactions.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/{id}", h.get)
	r.Patch("/{id}/review", h.review)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	filter := transaction.ListFilter{ProjectID: projectID}

	if s := r.URL.Query().Get("reviewed"); s != "" {
		reviewed, err := strconv.ParseBool(s)
		if err != nil {
			http.Error(w, "reviewed must be true or false", http.StatusBadRequest)
			return
		}

		filter.Reviewed = new(reviewed)
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) importLedger(w http.ResponseWriter, r *http.Request) {
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

	params, err := h.importSvc.ParseLedger(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.matchSvc.Apply(r.Context(), projectID, params)

	result, err := h.svc.ImportBatch(r.Context(), projectID, params)
	if err != nil {
		slog.Error("failed to import ledger", "project_id", projectID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if len(result.Conflicts) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)

		if err := json.NewEncoder(w).Encode(toConflictResponse(result)); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(result.Imported)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type confirmRequest struct {
	Params []createParamsDTO `json:"params"`
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]transaction.CreateParams, 0, len(req.Params))
	for i, p := range req.Params {
		if p.Direction != transaction.Debit && p.Direction != transaction.Credit {
			http.Error(w, fmt.Sprintf("params[%d]: direction must be debit or credit", i), http.StatusBadRequest)
			return
		}

		params = append(params, p.toParams())
	}

	txs, err := h.svc.CreateBatch(r.Context(), projectID, params)
	if err != nil {
		slog.Error("failed to confirm import", "project_id", projectID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type reviewRequest struct {
	AccountNumber string `json:"account_number"`
}

// review books a transaction against an account of its project's chart and
// remembers the raw description for future suggestions.
func (h *Handler) review(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	number := strings.TrimSpace(req.AccountNumber)
	if number == "" {
		http.Error(w, "account_number is required", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	acc, err := h.accountSvc.Lookup(r.Context(), tx.ProjectID, number)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			http.Error(w, "account "+number+" is not in the project's chart", http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	reviewed, err := h.svc.Review(r.Context(), id, acc.Number, acc.Name)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	slog.Info("transaction reviewed",
		"transaction_id", id,
		"account", acc.Number,
		"reviewer", auth.Subject(r.Context()),
	)

	if reviewed.RawDescription != "" {
		err := h.matchSvc.Learn(r.Context(), reviewed.ProjectID, matching.Mapping{
			Pattern:       reviewed.RawDescription,
			AccountNumber: acc.Number,
			AccountName:   acc.Name,
		})
		if err != nil {
			slog.Warn("failed to learn mapping", "transaction_id", id, "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(reviewed)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
