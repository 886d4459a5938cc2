package export_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/export"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/project"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

type mocks struct {
	projects     *export.MockProjectSource
	accounts     *export.MockAccountSource
	transactions *export.MockTransactionSource
}

func newService(t *testing.T) (*export.Service, mocks) {
	ctrl := gomock.NewController(t)

	m := mocks{
		projects:     export.NewMockProjectSource(ctrl),
		accounts:     export.NewMockAccountSource(ctrl),
		transactions: export.NewMockTransactionSource(ctrl),
	}

	svc := export.NewService(m.projects, m.accounts, m.transactions,
		export.WithClock(func() time.Time { return exportDate }),
	)

	return svc, m
}

func ledgerPtrs() []*transaction.Transaction {
	txs := ledger()
	out := make([]*transaction.Transaction, len(txs))

	for i := range txs {
		out[i] = &txs[i]
	}

	return out
}

func TestService_Export(t *testing.T) {
	projectID := uuid.New()
	acme := &project.Project{ID: projectID, Name: "Acme Co."}

	type testCase struct {
		name         string
		sel          export.Selection
		setupMock    func(m mocks)
		wantFilename string
		wantType     string
		wantErr      bool
		wantErrIs    error
	}

	tests := []testCase{
		{
			name: "ChartOnlySkipsLedger",
			sel:  export.Selection{Target: export.TargetQBO, IncludeAccounts: true},
			setupMock: func(m mocks) {
				m.projects.EXPECT().Get(gomock.Any(), projectID).Return(acme, nil)
				m.accounts.EXPECT().List(gomock.Any(), projectID).Return(chart(), nil)
			},
			wantFilename: "AcmeCo_QBO_ChartOfAccounts_2024-03-05.csv",
			wantType:     export.ContentTypeCSV,
		},
		{
			name: "LedgerLoadedOnceForTwoArtifacts",
			sel:  export.Selection{Target: export.TargetQBD, IncludeTransactions: true, IncludeSummary: true},
			setupMock: func(m mocks) {
				m.projects.EXPECT().Get(gomock.Any(), projectID).Return(acme, nil)
				m.transactions.EXPECT().
					List(gomock.Any(), transaction.ListFilter{ProjectID: projectID}).
					Return(ledgerPtrs(), nil).
					Times(1)
			},
			wantFilename: "AcmeCo_QBD_Export_2024-03-05.zip",
			wantType:     export.ContentTypeZip,
		},
		{
			name: "NothingToExport",
			sel:  export.Selection{Target: export.TargetXero, IncludeAccounts: true, IncludeSummary: true},
			setupMock: func(m mocks) {
				m.projects.EXPECT().Get(gomock.Any(), projectID).Return(acme, nil)
				m.accounts.EXPECT().List(gomock.Any(), projectID).Return(nil, nil)
				m.transactions.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantErr:   true,
			wantErrIs: export.ErrNothingToExport,
		},
		{
			name:      "UnknownTarget",
			sel:       export.Selection{Target: "sage", IncludeAccounts: true},
			setupMock: func(m mocks) {},
			wantErr:   true,
			wantErrIs: export.ErrUnknownTarget,
		},
		{
			name: "ProjectNotFound",
			sel:  export.Selection{Target: export.TargetQBO, IncludeAccounts: true},
			setupMock: func(m mocks) {
				m.projects.EXPECT().Get(gomock.Any(), projectID).Return(nil, project.ErrNotFound)
			},
			wantErr:   true,
			wantErrIs: project.ErrNotFound,
		},
		{
			name: "LedgerError",
			sel:  export.Selection{Target: export.TargetQBO, IncludeTransactions: true},
			setupMock: func(m mocks) {
				m.projects.EXPECT().Get(gomock.Any(), projectID).Return(acme, nil)
				m.transactions.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			got, err := svc.Export(context.Background(), projectID, tt.sel)

			if tt.wantErr {
				require.Error(t, err)

				if tt.wantErrIs != nil {
					assert.ErrorIs(t, err, tt.wantErrIs)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantFilename, got.Filename)
			assert.Equal(t, tt.wantType, got.ContentType)
			assert.NotEmpty(t, got.Content)
		})
	}
}

func TestService_Files(t *testing.T) {
	projectID := uuid.New()
	svc, m := newService(t)

	m.projects.EXPECT().Get(gomock.Any(), projectID).Return(&project.Project{ID: projectID, Name: "Acme Co."}, nil)
	m.accounts.EXPECT().List(gomock.Any(), projectID).Return(chart(), nil)
	m.transactions.EXPECT().List(gomock.Any(), transaction.ListFilter{ProjectID: projectID}).Return(ledgerPtrs(), nil)

	got, err := svc.Files(context.Background(), projectID, export.Selection{
		Target:              export.TargetQBO,
		IncludeAccounts:     true,
		IncludeTransactions: true,
		IncludeSummary:      true,
	})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "AcmeCo_QBO_ChartOfAccounts_2024-03-05.csv", got[0].Filename)
	assert.Equal(t, "AcmeCo_QBO_Transactions_2024-03-05.csv", got[1].Filename)
	assert.Equal(t, "AcmeCo_QBO_AccountSummary_2024-03-05.csv", got[2].Filename)
}

func TestService_Files_Nothing(t *testing.T) {
	projectID := uuid.New()
	svc, m := newService(t)

	m.projects.EXPECT().Get(gomock.Any(), projectID).Return(&project.Project{ID: projectID, Name: "Acme"}, nil)

	_, err := svc.Files(context.Background(), projectID, export.Selection{Target: export.TargetQBO})
	assert.ErrorIs(t, err, export.ErrNothingToExport)
}

// The scenario bookkeepers hit most: a reviewed supplies purchase whose
// description contains a comma, exported to every target.
func TestService_Export_ReviewedSuppliesPurchase(t *testing.T) {
	projectID := uuid.New()

	want := map[export.Target]string{
		export.TargetQBO:  "2024-01-15,\"Misc, supplies\",-42.50,6100 - Office Supplies,Staples,Expense\r\n",
		export.TargetQBD:  "TRNS\tGENERAL JOURNAL\t01/15/2024\tOffice Supplies\tStaples\t42.50\tMisc, supplies\r\n",
		export.TargetXero: "15/01/2024,-42.50,Staples,\"Misc, supplies\",0000abcd,6100\r\n",
	}

	for _, target := range export.Targets() {
		t.Run(string(target), func(t *testing.T) {
			svc, m := newService(t)

			m.projects.EXPECT().Get(gomock.Any(), projectID).Return(&project.Project{ID: projectID, Name: "Acme"}, nil)
			m.transactions.EXPECT().List(gomock.Any(), gomock.Any()).Return(ledgerPtrs()[:1], nil)

			got, err := svc.Export(context.Background(), projectID, export.Selection{Target: target, IncludeTransactions: true})
			require.NoError(t, err)
			assert.Contains(t, string(got.Content), want[target])
		})
	}
}
