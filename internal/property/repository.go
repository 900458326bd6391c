package property

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"propview/internal/store"
)

const (
	table       = "properties"
	imageBucket = "property-image"
)

// Repository provides the application's query shapes over the remote
// store. It holds no local state: every read re-fetches and every
// write is a network call.
type Repository struct {
	client *store.Client
}

// NewRepository creates a property repository backed by client.
func NewRepository(client *store.Client) *Repository {
	return &Repository{client: client}
}

// ListAll returns every property, newest-created first. No properties
// is an empty slice, not an error.
func (r *Repository) ListAll(ctx context.Context) ([]*Property, error) {
	return r.list(ctx, store.Query{
		Table:      table,
		OrderBy:    "created_at",
		Descending: true,
	})
}

// ListByContact returns properties whose contact exactly matches,
// newest-created first. The contact string is an unverified ownership
// key: two users entering the same number see the same listings.
func (r *Repository) ListByContact(ctx context.Context, contact string) ([]*Property, error) {
	return r.list(ctx, store.Query{
		Table:      table,
		EqColumn:   "contact",
		EqValue:    contact,
		OrderBy:    "created_at",
		Descending: true,
	})
}

func (r *Repository) list(ctx context.Context, q store.Query) ([]*Property, error) {
	props := []*Property{}
	if err := r.client.Select(ctx, q, &props); err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	return props, nil
}

// GetByID returns the property with the given id.
func (r *Repository) GetByID(ctx context.Context, id string) (*Property, error) {
	var p Property
	err := r.client.Select(ctx, store.Query{
		Table:    table,
		EqColumn: "id",
		EqValue:  id,
		Single:   true,
	}, &p)
	if errors.Is(err, store.ErrNoRows) {
		return nil, ErrNotFound
	}
	if errors.Is(err, store.ErrMultipleRows) {
		return nil, ErrAmbiguous
	}
	if err != nil {
		return nil, fmt.Errorf("fetching property %s: %w", id, err)
	}
	return &p, nil
}

// GetByIDs returns the subset of properties whose ids were found, in
// no particular order. Callers re-order with ReorderByIDs when the
// requested order matters.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]*Property, error) {
	if len(ids) == 0 {
		return []*Property{}, nil
	}
	return r.list(ctx, store.Query{
		Table:    table,
		InColumn: "id",
		InValues: ids,
	})
}

// Create validates the draft and inserts it. The store assigns id and
// created_at.
func (r *Repository) Create(ctx context.Context, d Draft) (*Property, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	var p Property
	if err := r.client.Insert(ctx, table, d, &p); err != nil {
		return nil, fmt.Errorf("creating property: %w", err)
	}
	return &p, nil
}

// Update applies a partial update to the property with the given id.
func (r *Repository) Update(ctx context.Context, id string, d Draft) (*Property, error) {
	var p Property
	err := r.client.Update(ctx, table, id, d, &p)
	if errors.Is(err, store.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating property %s: %w", id, err)
	}
	return &p, nil
}

// Delete removes the property with the given id. The store does not
// distinguish deleting a missing id from success; any error it does
// report is surfaced as-is.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, table, id); err != nil {
		return fmt.Errorf("deleting property %s: %w", id, err)
	}
	return nil
}

// UploadImage stores the image bytes under a collision-resistant key
// and returns its public URL.
func (r *Repository) UploadImage(ctx context.Context, data []byte, fileName string) (string, error) {
	key := objectKey(fileName)
	contentType := http.DetectContentType(data)

	if err := r.client.Upload(ctx, imageBucket, key, data, contentType); err != nil {
		return "", &UploadError{Key: key, Err: err}
	}
	return r.client.PublicURL(imageBucket, key), nil
}

// objectKey derives a bucket key from the upload time, a uuid
// fragment, and the original extension.
func objectKey(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}
