package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/matching"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

func TestService_Suggest(t *testing.T) {
	projectID := uuid.New()

	type testCase struct {
		name      string
		raw       string
		setupMock func(m *matching.MockRepository)
		want      *matching.Suggestion
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Match",
			raw:  "STAPLES 0042",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), projectID, "STAPLES 0042").Return(&matching.Mapping{
					Pattern:       "STAPLES",
					AccountNumber: "6100",
					AccountName:   "Office Supplies",
				}, nil)
			},
			want: &matching.Suggestion{AccountNumber: "6100", AccountName: "Office Supplies", Confidence: 7.0 / 12.0},
		},
		{
			name: "ExactMatch",
			raw:  "RENT",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), projectID, "RENT").Return(&matching.Mapping{
					Pattern:       "RENT",
					AccountNumber: "6200",
					AccountName:   "Rent",
				}, nil)
			},
			want: &matching.Suggestion{AccountNumber: "6200", AccountName: "Rent", Confidence: 1},
		},
		{
			name: "NoMatch",
			raw:  "UNKNOWN",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), projectID, "UNKNOWN").Return(nil, nil)
			},
		},
		{
			name: "RepoError",
			raw:  "X",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), projectID, "X").Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := matching.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := matching.NewService(repo).Suggest(context.Background(), projectID, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)

			if tt.want == nil {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.want.AccountNumber, got.AccountNumber)
			assert.Equal(t, tt.want.AccountName, got.AccountName)
			assert.InDelta(t, tt.want.Confidence, got.Confidence, 1e-9)
		})
	}
}

func TestService_Apply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	projectID := uuid.New()
	repo := matching.NewMockRepository(ctrl)

	repo.EXPECT().FindMatch(gomock.Any(), projectID, "STAPLES").Return(&matching.Mapping{
		Pattern:       "STAPLES",
		AccountNumber: "6100",
		AccountName:   "Office Supplies",
	}, nil)
	repo.EXPECT().FindMatch(gomock.Any(), projectID, "MYSTERY").Return(nil, errors.New("db error"))

	params := []transaction.CreateParams{
		{RawDescription: "STAPLES"},
		{RawDescription: "MYSTERY"},
		{RawDescription: "ALREADY", SuggestedAccountNumber: "1000"},
	}

	matching.NewService(repo).Apply(context.Background(), projectID, params)

	assert.Equal(t, "6100", params[0].SuggestedAccountNumber)
	assert.Equal(t, "Office Supplies", params[0].SuggestedAccountName)
	assert.Empty(t, params[1].SuggestedAccountNumber)
	assert.Equal(t, "1000", params[2].SuggestedAccountNumber)
}

func TestService_Learn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	projectID := uuid.New()
	repo := matching.NewMockRepository(ctrl)

	repo.EXPECT().CreateMapping(gomock.Any(), projectID, matching.Mapping{
		Pattern:       "STAPLES",
		AccountNumber: "6100",
		AccountName:   "Office Supplies",
	}).Return(nil)

	err := matching.NewService(repo).Learn(context.Background(), projectID, matching.Mapping{
		Pattern:       "  STAPLES ",
		AccountNumber: "6100",
		AccountName:   "Office Supplies",
	})
	assert.NoError(t, err)
}
