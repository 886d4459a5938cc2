package project

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("project not found")
	ErrInvalidName = errors.New("project name is required")
)

// Project groups the documents, chart of accounts and ledger of one client.
type Project struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
