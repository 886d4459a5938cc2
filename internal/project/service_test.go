package project_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/project"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		input     string
		setupMock func(m *project.MockRepository)
		wantName  string
		wantErr   error
	}

	tests := []testCase{
		{
			name:  "Success",
			input: "  Acme Co.  ",
			setupMock: func(m *project.MockRepository) {
				m.EXPECT().
					CreateProject(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *project.Project) error {
						p.ID = uuid.New()
						p.CreatedAt = time.Now()
						return nil
					})
			},
			wantName: "Acme Co.",
		},
		{
			name:    "BlankName",
			input:   "   ",
			wantErr: project.ErrInvalidName,
		},
		{
			name:  "RepoError",
			input: "Acme",
			setupMock: func(m *project.MockRepository) {
				m.EXPECT().CreateProject(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := project.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := project.NewService(repo).Create(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := project.NewMockRepository(ctrl)
	repo.EXPECT().GetProject(gomock.Any(), id).Return(nil, project.ErrNotFound)

	_, err := project.NewService(repo).Get(context.Background(), id)
	assert.ErrorIs(t, err, project.ErrNotFound)
}
