// Package store keeps the in-memory list of uploaded screenshots and
// the per-image generated artifacts, each keyed by a unique id. Every
// image's state is independent; nothing here persists across restarts.
package store

import (
	"errors"
	"time"

	"github.com/hxaxnxa/Image-to-React/internal/types"
)

var ErrUploadNotFound = errors.New("upload not found")

// Upload is one screenshot and everything generated from it.
type Upload struct {
	ID          string
	Filename    string
	MimeType    string
	Image       []byte
	Description string
	CreatedAt   time.Time
	Generated   map[types.CodeFormat]types.NormalizedCode
}

type Store interface {
	Put(u *Upload) error
	Get(id string) (*Upload, error)
	// List returns uploads in upload order.
	List() ([]*Upload, error)
	SetDescription(id, description string) error
	SetGenerated(id string, code types.NormalizedCode) error
	Delete(id string) error
}
