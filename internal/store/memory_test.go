package store

import (
	"errors"
	"testing"
	"time"

	"github.com/hxaxnxa/Image-to-React/internal/types"
)

func newUpload(id string, at time.Time) *Upload {
	return &Upload{
		ID:        id,
		Filename:  id + ".png",
		MimeType:  "image/png",
		Image:     []byte{0x89},
		CreatedAt: at,
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Put(newUpload("a", time.Now())); err != nil {
		t.Fatal(err)
	}

	u, err := s.Get("a")
	if err != nil {
		t.Fatal(err)
	}
	if u.Filename != "a.png" {
		t.Errorf("Filename = %q", u.Filename)
	}
	if u.Generated == nil {
		t.Error("Generated map was not initialized")
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("Get(missing) = %v, want ErrUploadNotFound", err)
	}
}

func TestMemoryStoreListOrder(t *testing.T) {
	s := NewMemoryStore()
	base := time.Now()
	s.Put(newUpload("later", base.Add(time.Minute)))
	s.Put(newUpload("earlier", base))

	uploads, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(uploads) != 2 {
		t.Fatalf("len = %d, want 2", len(uploads))
	}
	if uploads[0].ID != "earlier" || uploads[1].ID != "later" {
		t.Errorf("order = [%s %s], want upload order", uploads[0].ID, uploads[1].ID)
	}
}

func TestMemoryStoreSetters(t *testing.T) {
	s := NewMemoryStore()
	s.Put(newUpload("a", time.Now()))

	if err := s.SetDescription("a", "a login form"); err != nil {
		t.Fatal(err)
	}
	code := types.NormalizedCode{Text: "source", Format: types.FormatReactMUI, ComponentName: "GeneratedComponent"}
	if err := s.SetGenerated("a", code); err != nil {
		t.Fatal(err)
	}

	u, _ := s.Get("a")
	if u.Description != "a login form" {
		t.Errorf("Description = %q", u.Description)
	}
	if got := u.Generated[types.FormatReactMUI]; got != code {
		t.Errorf("Generated = %+v", got)
	}

	if err := s.SetDescription("missing", "x"); !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("SetDescription(missing) = %v", err)
	}
	if err := s.SetGenerated("missing", code); !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("SetGenerated(missing) = %v", err)
	}
}

func TestMemoryStoreGetReturnsSnapshot(t *testing.T) {
	s := NewMemoryStore()
	s.Put(newUpload("a", time.Now()))

	u, _ := s.Get("a")
	u.Description = "mutated by the caller"
	u.Generated[types.FormatFlutter] = types.NormalizedCode{Text: "x"}

	fresh, _ := s.Get("a")
	if fresh.Description != "" {
		t.Error("caller mutation leaked into the store")
	}
	if len(fresh.Generated) != 0 {
		t.Error("caller map write leaked into the store")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	s.Put(newUpload("a", time.Now()))

	if err := s.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("a"); !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("Get after delete = %v", err)
	}
	if err := s.Delete("a"); !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("second Delete = %v", err)
	}
}
