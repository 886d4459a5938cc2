package matching_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	matchinghttp "github.com/MrJamesThe3rd/ledgerbridge/internal/http/matching"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/matching"
)

func newRouter(repo matching.Repository) http.Handler {
	r := chi.NewRouter()
	r.Route("/projects/{projectID}/matching", matchinghttp.NewHandler(matching.NewService(repo)).Routes)

	return r
}

func TestHandler_Suggest(t *testing.T) {
	projectID := uuid.New()
	raw := "STAPLES STORE 42"

	type testCase struct {
		name        string
		query       string
		setupMock   func(*matching.MockRepository)
		wantStatus  int
		wantMatched bool
	}

	tests := []testCase{
		{
			name:  "match",
			query: "?raw_description=" + url.QueryEscape(raw),
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), projectID, raw).
					Return(&matching.Mapping{Pattern: "STAPLES", AccountNumber: "6100", AccountName: "Office Supplies"}, nil)
			},
			wantStatus:  http.StatusOK,
			wantMatched: true,
		},
		{
			name:  "no match",
			query: "?raw_description=" + url.QueryEscape(raw),
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), projectID, raw).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing description",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := matching.NewMockRepository(ctrl)

			if tc.setupMock != nil {
				tc.setupMock(repo)
			}

			rec := httptest.NewRecorder()
			newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String()+"/matching/suggest"+tc.query, nil))

			require.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus != http.StatusOK {
				return
			}

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tc.wantMatched, got["matched"])

			if tc.wantMatched {
				assert.Equal(t, "6100", got["account_number"])
				assert.InDelta(t, 7.0/16.0, got["confidence"], 1e-9)
			}
		})
	}
}

func TestHandler_Learn(t *testing.T) {
	projectID := uuid.New()

	type testCase struct {
		name       string
		body       string
		setupMock  func(*matching.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "created",
			body: `{"pattern":" STAPLES ","account_number":"6100","account_name":"Office Supplies"}`,
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().CreateMapping(gomock.Any(), projectID, matching.Mapping{
					Pattern:       "STAPLES",
					AccountNumber: "6100",
					AccountName:   "Office Supplies",
				}).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing account",
			body:       `{"pattern":"STAPLES"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := matching.NewMockRepository(ctrl)

			if tc.setupMock != nil {
				tc.setupMock(repo)
			}

			req := httptest.NewRequest(http.MethodPost, "/projects/"+projectID.String()+"/matching/", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			newRouter(repo).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
