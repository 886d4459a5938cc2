package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

type transactionResponse struct {
	ID                     string                `json:"id"`
	ProjectID              uuid.UUID             `json:"project_id"`
	Date                   string                `json:"date"`
	Description            string                `json:"description"`
	RawDescription         string                `json:"raw_description,omitempty"`
	Amount                 decimal.Decimal       `json:"amount"`
	Direction              transaction.Direction `json:"direction"`
	Vendor                 string                `json:"vendor,omitempty"`
	SuggestedAccountNumber string                `json:"suggested_account_number,omitempty"`
	SuggestedAccountName   string                `json:"suggested_account_name,omitempty"`
	ReviewedAccountNumber  string                `json:"reviewed_account_number,omitempty"`
	ReviewedAccountName    string                `json:"reviewed_account_name,omitempty"`
	Confidence             float64               `json:"confidence"`
	IsReviewed             bool                  `json:"is_reviewed"`
	CreatedAt              time.Time             `json:"created_at"`
	UpdatedAt              *time.Time            `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:                     tx.ID,
		ProjectID:              tx.ProjectID,
		Date:                   tx.Date,
		Description:            tx.Description,
		RawDescription:         tx.RawDescription,
		Amount:                 tx.Amount,
		Direction:              tx.Direction,
		Vendor:                 tx.Vendor,
		SuggestedAccountNumber: tx.SuggestedAccountNumber,
		SuggestedAccountName:   tx.SuggestedAccountName,
		ReviewedAccountNumber:  tx.ReviewedAccountNumber,
		ReviewedAccountName:    tx.ReviewedAccountName,
		Confidence:             tx.Confidence,
		IsReviewed:             tx.IsReviewed,
		CreatedAt:              tx.CreatedAt,
		UpdatedAt:              tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type createParamsDTO struct {
	Date                   string                `json:"date"`
	Description            string                `json:"description"`
	RawDescription         string                `json:"raw_description"`
	Amount                 decimal.Decimal       `json:"amount"`
	Direction              transaction.Direction `json:"direction"`
	Vendor                 string                `json:"vendor,omitempty"`
	SuggestedAccountNumber string                `json:"suggested_account_number,omitempty"`
	SuggestedAccountName   string                `json:"suggested_account_name,omitempty"`
	Confidence             float64               `json:"confidence,omitempty"`
}

func toParamsDTO(p transaction.CreateParams) createParamsDTO {
	return createParamsDTO{
		Date:                   p.Date,
		Description:            p.Description,
		RawDescription:         p.RawDescription,
		Amount:                 p.Amount,
		Direction:              p.Direction,
		Vendor:                 p.Vendor,
		SuggestedAccountNumber: p.SuggestedAccountNumber,
		SuggestedAccountName:   p.SuggestedAccountName,
		Confidence:             p.Confidence,
	}
}

func (d createParamsDTO) toParams() transaction.CreateParams {
	return transaction.CreateParams{
		Date:                   d.Date,
		Description:            d.Description,
		RawDescription:         d.RawDescription,
		Amount:                 d.Amount.Abs(),
		Direction:              d.Direction,
		Vendor:                 d.Vendor,
		SuggestedAccountNumber: d.SuggestedAccountNumber,
		SuggestedAccountName:   d.SuggestedAccountName,
		Confidence:             d.Confidence,
	}
}

type conflictDTO struct {
	Incoming createParamsDTO     `json:"incoming"`
	Existing transactionResponse `json:"existing"`
}

type importConflictResponse struct {
	New       []createParamsDTO `json:"new"`
	Conflicts []conflictDTO     `json:"conflicts"`
}

type importSuccessResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

func toSuccessResponse(txs []*transaction.Transaction) importSuccessResponse {
	return importSuccessResponse{
		Imported:     len(txs),
		Transactions: toResponseList(txs),
	}
}

func toConflictResponse(result *transaction.ImportResult) importConflictResponse {
	resp := importConflictResponse{
		New:       make([]createParamsDTO, 0, len(result.New)),
		Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
	}

	for _, p := range result.New {
		resp.New = append(resp.New, toParamsDTO(p))
	}

	for _, c := range result.Conflicts {
		resp.Conflicts = append(resp.Conflicts, conflictDTO{
			Incoming: toParamsDTO(c.Incoming),
			Existing: toResponse(c.Existing),
		})
	}

	return resp
}
