package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"photosuite/internal/domain"
)

// Blob is the content behind a displayable reference.
type Blob struct {
	Data      []byte
	MediaType string
	Name      string
}

// Ref is a handle to a Blob that the browser can display through URL().
// The zero Ref refers to nothing.
type Ref struct {
	ID string
}

// IsZero reports whether r refers to nothing.
func (r Ref) IsZero() bool {
	return r.ID == ""
}

// URL is the path the presentation layer embeds in <img src>.
func (r Ref) URL() string {
	if r.IsZero() {
		return ""
	}
	return "/refs/" + r.ID
}

// Refs tracks live displayable references. Every Acquire must be paired with
// exactly one Release.
type Refs struct {
	mu   sync.Mutex
	live map[string]Blob
}

// NewRefs returns an empty registry.
func NewRefs() *Refs {
	return &Refs{live: make(map[string]Blob)}
}

// Acquire registers b and returns a fresh reference to it.
func (r *Refs) Acquire(b Blob) Ref {
	id := uuid.NewString()
	r.mu.Lock()
	r.live[id] = b
	r.mu.Unlock()
	return Ref{ID: id}
}

// Release revokes ref. Releasing a reference that is not live fails with
// domain.ErrReferenceReleased and has no other effect.
func (r *Refs) Release(ref Ref) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.live[ref.ID]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrReferenceReleased, ref.ID)
	}
	delete(r.live, ref.ID)
	return nil
}

// Lookup returns the blob behind a live reference id.
func (r *Refs) Lookup(id string) (Blob, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.live[id]
	return b, ok
}

// Live returns the number of references not yet released.
func (r *Refs) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}
