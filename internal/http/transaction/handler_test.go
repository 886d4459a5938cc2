package transaction_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	txhttp "github.com/MrJamesThe3rd/ledgerbridge/internal/http/transaction"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/matching"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

type mocks struct {
	tx       *transaction.MockRepository
	importTx *transaction.MockImportTx
	accounts *account.MockRepository
	matching *matching.MockRepository
}

func newRouter(t *testing.T) (http.Handler, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		tx:       transaction.NewMockRepository(ctrl),
		importTx: transaction.NewMockImportTx(ctrl),
		accounts: account.NewMockRepository(ctrl),
		matching: matching.NewMockRepository(ctrl),
	}

	h := txhttp.NewHandler(
		transaction.NewService(m.tx),
		account.NewService(m.accounts),
		matching.NewService(m.matching),
		importer.NewService(),
	)

	r := chi.NewRouter()
	r.Route("/projects/{projectID}/transactions", h.ProjectRoutes)
	r.Route("/transactions", h.Routes)

	return r, m
}

func uploadRequest(t *testing.T, path, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

const ledgerCSV = "Date,Description,Amount,Payee\r\n" +
	"2024-01-15,STAPLES #123,-42.50,Staples\r\n" +
	"2024-01-20,Client payment,1250.00,Globex\r\n"

func TestHandler_List(t *testing.T) {
	projectID := uuid.New()

	type testCase struct {
		name       string
		query      string
		wantFilter *transaction.ListFilter
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "all",
			wantFilter: &transaction.ListFilter{ProjectID: projectID},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unreviewed only",
			query:      "?reviewed=false",
			wantFilter: &transaction.ListFilter{ProjectID: projectID, Reviewed: new(false)},
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad filter",
			query:      "?reviewed=maybe",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, m := newRouter(t)

			if tc.wantFilter != nil {
				m.tx.EXPECT().ListTransactions(gomock.Any(), *tc.wantFilter).Return([]*transaction.Transaction{
					{ID: "tx-1", ProjectID: projectID, Date: "2024-01-15", Amount: decimal.RequireFromString("42.5")},
				}, nil)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String()+"/transactions/"+tc.query, nil))

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"amount":"42.5"`)
			}
		})
	}
}

func TestHandler_ImportLedger(t *testing.T) {
	projectID := uuid.New()

	t.Run("imports and applies suggestions", func(t *testing.T) {
		router, m := newRouter(t)

		m.matching.EXPECT().FindMatch(gomock.Any(), projectID, "STAPLES #123").
			Return(&matching.Mapping{Pattern: "STAPLES", AccountNumber: "6100", AccountName: "Office Supplies"}, nil)
		m.matching.EXPECT().FindMatch(gomock.Any(), projectID, "Client payment").Return(nil, nil)

		m.tx.EXPECT().BeginImport(gomock.Any(), projectID).Return(m.importTx, nil)
		m.importTx.EXPECT().FindDuplicates(gomock.Any(), gomock.Len(2)).Return(nil, nil)
		m.importTx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, txs []*transaction.Transaction) error {
				assert.Equal(t, "6100", txs[0].SuggestedAccountNumber)
				assert.Empty(t, txs[1].SuggestedAccountNumber)

				for _, tx := range txs {
					tx.ID = uuid.NewString()
				}

				return nil
			})
		m.importTx.EXPECT().Commit().Return(nil)
		m.importTx.EXPECT().Rollback().Return(nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, uploadRequest(t, "/projects/"+projectID.String()+"/transactions/import", "ledger.csv", ledgerCSV))

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var got struct {
			Imported int `json:"imported"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, 2, got.Imported)
	})

	t.Run("conflicts are reported without writing", func(t *testing.T) {
		router, m := newRouter(t)

		m.matching.EXPECT().FindMatch(gomock.Any(), projectID, gomock.Any()).Return(nil, nil).Times(2)

		m.tx.EXPECT().BeginImport(gomock.Any(), projectID).Return(m.importTx, nil)
		m.importTx.EXPECT().FindDuplicates(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{{
			ID:             "existing",
			Date:           "2024-01-15",
			Amount:         decimal.RequireFromString("42.50"),
			Direction:      transaction.Debit,
			RawDescription: "STAPLES #123",
		}}, nil)
		m.importTx.EXPECT().Rollback().Return(nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, uploadRequest(t, "/projects/"+projectID.String()+"/transactions/import", "ledger.csv", ledgerCSV))

		require.Equal(t, http.StatusConflict, rec.Code)

		var got struct {
			New       []map[string]any `json:"new"`
			Conflicts []map[string]any `json:"conflicts"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Len(t, got.New, 1)
		assert.Len(t, got.Conflicts, 1)
	})

	t.Run("unreadable upload", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, uploadRequest(t, "/projects/"+projectID.String()+"/transactions/import", "ledger.csv", "foo,bar\r\n1,2\r\n"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_ConfirmImport(t *testing.T) {
	projectID := uuid.New()
	path := "/projects/" + projectID.String() + "/transactions/import/confirm"

	t.Run("creates every param", func(t *testing.T) {
		router, m := newRouter(t)

		m.tx.EXPECT().BeginImport(gomock.Any(), projectID).Return(m.importTx, nil)
		m.importTx.EXPECT().CreateTransactions(gomock.Any(), gomock.Len(1)).
			DoAndReturn(func(_ any, txs []*transaction.Transaction) error {
				assert.True(t, decimal.RequireFromString("42.50").Equal(txs[0].Amount))
				assert.Equal(t, transaction.Debit, txs[0].Direction)

				return nil
			})
		m.importTx.EXPECT().Commit().Return(nil)
		m.importTx.EXPECT().Rollback().Return(nil)

		body := `{"params":[{"date":"2024-01-15","description":"Staples","raw_description":"STAPLES #123","amount":"42.50","direction":"debit"}]}`

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("rejects unknown direction", func(t *testing.T) {
		router, _ := newRouter(t)

		body := `{"params":[{"date":"2024-01-15","amount":"1.00","direction":"sideways"}]}`

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Review(t *testing.T) {
	projectID := uuid.New()

	chart := []account.Account{
		{Number: "1000", Name: "Checking", Type: account.TypeAsset},
		{Number: "6100", Name: "Office Supplies", Type: account.TypeExpense},
	}

	pending := &transaction.Transaction{
		ID:             "tx-1",
		ProjectID:      projectID,
		RawDescription: "STAPLES #123",
	}

	type testCase struct {
		name       string
		body       string
		setupMock  func(m mocks)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "books account and learns pattern",
			body: `{"account_number":" 6100 "}`,
			setupMock: func(m mocks) {
				m.tx.EXPECT().GetTransaction(gomock.Any(), "tx-1").Return(pending, nil)
				m.accounts.EXPECT().ListAccounts(gomock.Any(), projectID).Return(chart, nil)
				m.tx.EXPECT().ReviewTransaction(gomock.Any(), "tx-1", "6100", "Office Supplies").
					Return(&transaction.Transaction{
						ID:                    "tx-1",
						ProjectID:             projectID,
						RawDescription:        "STAPLES #123",
						ReviewedAccountNumber: "6100",
						ReviewedAccountName:   "Office Supplies",
						IsReviewed:            true,
					}, nil)
				m.matching.EXPECT().CreateMapping(gomock.Any(), projectID, matching.Mapping{
					Pattern:       "STAPLES #123",
					AccountNumber: "6100",
					AccountName:   "Office Supplies",
				}).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing account",
			body:       `{"account_number":""}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "account outside chart",
			body: `{"account_number":"9999"}`,
			setupMock: func(m mocks) {
				m.tx.EXPECT().GetTransaction(gomock.Any(), "tx-1").Return(pending, nil)
				m.accounts.EXPECT().ListAccounts(gomock.Any(), projectID).Return(chart, nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown transaction",
			body: `{"account_number":"6100"}`,
			setupMock: func(m mocks) {
				m.tx.EXPECT().GetTransaction(gomock.Any(), "tx-1").Return(nil, transaction.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, m := newRouter(t)

			if tc.setupMock != nil {
				tc.setupMock(m)
			}

			req := httptest.NewRequest(http.MethodPatch, "/transactions/tx-1/review", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())
		})
	}
}
