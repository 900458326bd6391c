package property

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"propview/internal/store"
)

// fakeStore emulates the remote table and bucket endpoints the
// repository relies on.
type fakeStore struct {
	t       *testing.T
	rows    []map[string]interface{}
	uploads map[string][]byte
}

func newFakeStore(t *testing.T) *fakeStore {
	return &fakeStore{t: t, uploads: map[string][]byte{}}
}

func (f *fakeStore) addRow(id, title, contact string, price int64, createdAt time.Time) {
	f.rows = append(f.rows, map[string]interface{}{
		"id":         id,
		"title":      title,
		"location":   "Test Town",
		"price":      price,
		"contact":    contact,
		"created_at": createdAt.UTC().Format(time.RFC3339),
	})
}

func (f *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/object/") {
		f.serveUpload(w, r)
		return
	}
	if r.URL.Path != "/properties" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		f.serveSelect(w, r)
	case http.MethodPost:
		f.serveInsert(w, r)
	case http.MethodPatch:
		f.servePatch(w, r)
	case http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (f *fakeStore) serveSelect(w http.ResponseWriter, r *http.Request) {
	matched := []map[string]interface{}{}

	idFilter := r.URL.Query().Get("id")
	contactFilter := r.URL.Query().Get("contact")

	for _, row := range f.rows {
		if idFilter != "" && !matchFilter(idFilter, row["id"].(string)) {
			continue
		}
		if contactFilter != "" && !matchFilter(contactFilter, row["contact"].(string)) {
			continue
		}
		matched = append(matched, row)
	}

	if r.URL.Query().Get("order") == "created_at.desc" {
		sort.Slice(matched, func(i, j int) bool {
			return matched[i]["created_at"].(string) > matched[j]["created_at"].(string)
		})
	}

	writeRows(f.t, w, matched)
}

func (f *fakeStore) serveInsert(w http.ResponseWriter, r *http.Request) {
	var draft map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	draft["id"] = "generated-id"
	draft["created_at"] = time.Now().UTC().Format(time.RFC3339)
	f.rows = append(f.rows, draft)

	w.WriteHeader(http.StatusCreated)
	writeRows(f.t, w, []map[string]interface{}{draft})
}

func (f *fakeStore) servePatch(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	idFilter := r.URL.Query().Get("id")
	for _, row := range f.rows {
		if matchFilter(idFilter, row["id"].(string)) {
			for k, v := range patch {
				row[k] = v
			}
			writeRows(f.t, w, []map[string]interface{}{row})
			return
		}
	}
	writeRows(f.t, w, []map[string]interface{}{})
}

func (f *fakeStore) serveUpload(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/object/property-image/")
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	f.uploads[key] = body
	writeRows(f.t, w, nil)
}

// matchFilter handles eq.<v> and in.(<v>,...) filter expressions.
func matchFilter(filter, value string) bool {
	if v, ok := strings.CutPrefix(filter, "eq."); ok {
		return v == value
	}
	if v, ok := strings.CutPrefix(filter, "in."); ok {
		v = strings.TrimPrefix(v, "(")
		v = strings.TrimSuffix(v, ")")
		for _, candidate := range strings.Split(v, ",") {
			if candidate == value {
				return true
			}
		}
	}
	return false
}

func writeRows(t *testing.T, w http.ResponseWriter, rows interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if rows == nil {
		rows = map[string]string{}
	}
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		t.Errorf("writing response: %v", err)
	}
}

func testRepo(t *testing.T, fake *fakeStore) *Repository {
	t.Helper()

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client, err := store.NewClient("https://example.invalid", "test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	store.SetTestURLs(client, server.URL, server.URL)
	return NewRepository(client)
}

func TestListAllNewestFirst(t *testing.T) {
	fake := newFakeStore(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fake.addRow("a", "Oldest", "1111111111", 100, base)
	fake.addRow("b", "Newest", "1111111111", 200, base.Add(2*time.Hour))
	fake.addRow("c", "Middle", "2222222222", 300, base.Add(time.Hour))
	repo := testRepo(t, fake)

	props, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}

	if len(props) != 3 {
		t.Fatalf("got %d properties, want 3", len(props))
	}
	for i := 1; i < len(props); i++ {
		if props[i].CreatedAt.After(props[i-1].CreatedAt) {
			t.Errorf("properties out of order at %d: %v after %v", i, props[i].CreatedAt, props[i-1].CreatedAt)
		}
	}
	if props[0].ID != "b" {
		t.Errorf("first = %q, want %q", props[0].ID, "b")
	}
}

func TestListAllEmpty(t *testing.T) {
	repo := testRepo(t, newFakeStore(t))

	props, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(props) != 0 {
		t.Errorf("got %d properties, want 0", len(props))
	}
}

func TestListByContact(t *testing.T) {
	fake := newFakeStore(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fake.addRow("a", "Mine", "1111111111", 100, base)
	fake.addRow("b", "Theirs", "2222222222", 200, base.Add(time.Hour))
	fake.addRow("c", "Also mine", "1111111111", 300, base.Add(2*time.Hour))
	repo := testRepo(t, fake)

	props, err := repo.ListByContact(context.Background(), "1111111111")
	if err != nil {
		t.Fatalf("list by contact: %v", err)
	}

	if len(props) != 2 {
		t.Fatalf("got %d properties, want 2", len(props))
	}
	if props[0].ID != "c" || props[1].ID != "a" {
		t.Errorf("order = %s, %s; want c, a", props[0].ID, props[1].ID)
	}
}

func TestGetByID(t *testing.T) {
	fake := newFakeStore(t)
	fake.addRow("a", "House", "1111111111", 100, time.Now())
	repo := testRepo(t, fake)

	p, err := repo.GetByID(context.Background(), "a")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if p.Title != "House" {
		t.Errorf("title = %q, want %q", p.Title, "House")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := testRepo(t, newFakeStore(t))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetByIDAmbiguous(t *testing.T) {
	fake := newFakeStore(t)
	now := time.Now()
	fake.addRow("dupe", "First", "1111111111", 100, now)
	fake.addRow("dupe", "Second", "1111111111", 200, now)
	repo := testRepo(t, fake)

	_, err := repo.GetByID(context.Background(), "dupe")
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("err = %v, want ErrAmbiguous", err)
	}
}

func TestGetByIDsSubset(t *testing.T) {
	fake := newFakeStore(t)
	now := time.Now()
	fake.addRow("a", "A", "1111111111", 100, now)
	fake.addRow("b", "B", "1111111111", 200, now)
	repo := testRepo(t, fake)

	props, err := repo.GetByIDs(context.Background(), []string{"b", "missing", "a"})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("got %d properties, want 2", len(props))
	}

	ordered := ReorderByIDs([]string{"b", "missing", "a"}, props)
	if len(ordered) != 2 || ordered[0].ID != "b" || ordered[1].ID != "a" {
		t.Errorf("ordered = %+v, want b then a", ordered)
	}
}

func TestGetByIDsEmpty(t *testing.T) {
	repo := testRepo(t, newFakeStore(t))

	props, err := repo.GetByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(props) != 0 {
		t.Errorf("got %d properties, want 0", len(props))
	}
}

func TestCreate(t *testing.T) {
	fake := newFakeStore(t)
	repo := testRepo(t, fake)

	price := int64(4500000)
	p, err := repo.Create(context.Background(), Draft{
		Title:    "New Flat",
		Location: "Indiranagar",
		Price:    &price,
		Contact:  "9876543210",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if p.ID == "" {
		t.Error("expected store-assigned id")
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected store-assigned created_at")
	}
	if p.Price != 4500000 {
		t.Errorf("price = %d, want 4500000", p.Price)
	}
}

func TestCreateMissingPrice(t *testing.T) {
	fake := newFakeStore(t)
	repo := testRepo(t, fake)

	_, err := repo.Create(context.Background(), Draft{
		Title:    "No Price",
		Location: "Somewhere",
	})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if validationErr.Field != "price" {
		t.Errorf("field = %q, want %q", validationErr.Field, "price")
	}
	if len(fake.rows) != 0 {
		t.Error("invalid draft must not create a row")
	}
}

func TestUpdate(t *testing.T) {
	fake := newFakeStore(t)
	fake.addRow("a", "Old Title", "1111111111", 100, time.Now())
	repo := testRepo(t, fake)

	p, err := repo.Update(context.Background(), "a", Draft{Title: "New Title"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Title != "New Title" {
		t.Errorf("title = %q, want %q", p.Title, "New Title")
	}
}

func TestUpdateNotFound(t *testing.T) {
	repo := testRepo(t, newFakeStore(t))

	_, err := repo.Update(context.Background(), "missing", Draft{Title: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := testRepo(t, newFakeStore(t))

	// The store treats deleting a missing id as success.
	if err := repo.Delete(context.Background(), "anything"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

var keyPattern = regexp.MustCompile(`^\d{13}-[0-9a-f]{8}\.png$`)

func TestUploadImage(t *testing.T) {
	fake := newFakeStore(t)
	repo := testRepo(t, fake)

	data := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	url, err := repo.UploadImage(context.Background(), data, "photo.PNG")
	if err != nil {
		t.Fatalf("upload image: %v", err)
	}

	if len(fake.uploads) != 1 {
		t.Fatalf("got %d uploads, want 1", len(fake.uploads))
	}
	for key, stored := range fake.uploads {
		if !keyPattern.MatchString(key) {
			t.Errorf("key = %q, want millis-uuid with lowercased extension", key)
		}
		if string(stored) != string(data) {
			t.Error("stored bytes differ from uploaded bytes")
		}
		if !strings.HasSuffix(url, "/object/public/property-image/"+key) {
			t.Errorf("url = %q does not point at key %q", url, key)
		}
	}
}

func TestUploadImageKeysDistinct(t *testing.T) {
	a := objectKey("photo.png")
	time.Sleep(2 * time.Millisecond)
	b := objectKey("photo.png")
	if a == b {
		t.Errorf("keys collide: %q", a)
	}
}

func TestUploadImageFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInsufficientStorage)
		if _, err := w.Write([]byte(`{"message": "bucket full"}`)); err != nil {
			t.Errorf("writing response: %v", err)
		}
	}))
	t.Cleanup(server.Close)

	client, err := store.NewClient("https://example.invalid", "key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	store.SetTestURLs(client, server.URL, server.URL)
	repo := NewRepository(client)

	_, err = repo.UploadImage(context.Background(), []byte("x"), "a.jpg")

	var uploadErr *UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("err = %v, want *UploadError", err)
	}
}
