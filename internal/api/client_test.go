package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func TestParseBaseURL_Normalizes(t *testing.T) {
	u, err := parseBaseURL("localhost:3001")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "localhost:3001" {
		t.Fatalf("base = %q, want http://localhost:3001", u.String())
	}

	u, err = parseBaseURL("https://example.com/api?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("   "); err == nil {
		t.Fatal("parseBaseURL accepted empty url, want error")
	}
}

func TestClient_ListEndpointsAndBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth, gotAccept, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/photos":
			_ = json.NewEncoder(w).Encode([]Photo{{ID: 7, Title: "Dunes", WorkID: 2}})
		case "/api/works":
			_ = json.NewEncoder(w).Encode([]Work{{ID: 2, Title: "Desert", PhotoCount: 4}})
		case "/api/works/2/photos":
			_ = json.NewEncoder(w).Encode([]Photo{{ID: 7, WorkID: 2}})
		case "/api/categories":
			_ = json.NewEncoder(w).Encode([]Category{{ID: 1, Name: "Ensaios", Slug: "ensaios"}})
		case "/api/health":
			_ = json.NewEncoder(w).Encode(Health{Message: "ok", JWTConfigured: true})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticToken("tok-123"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	photos, err := c.ListPhotos(ctx)
	if err != nil {
		t.Fatalf("ListPhotos returned error: %v", err)
	}
	if len(photos) != 1 || photos[0].ID != 7 {
		t.Fatalf("ListPhotos = %#v, want one photo id=7", photos)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}

	works, err := c.ListWorks(ctx)
	if err != nil {
		t.Fatalf("ListWorks returned error: %v", err)
	}
	if len(works) != 1 || works[0].PhotoCount != 4 {
		t.Fatalf("ListWorks = %#v, want photo_count=4", works)
	}

	workPhotos, err := c.ListWorkPhotos(ctx, 2)
	if err != nil {
		t.Fatalf("ListWorkPhotos returned error: %v", err)
	}
	if len(workPhotos) != 1 || gotPath != "/api/works/2/photos" {
		t.Fatalf("ListWorkPhotos path = %q items = %d", gotPath, len(workPhotos))
	}

	if _, err := c.ListWorkPhotos(ctx, 0); err == nil {
		t.Fatal("ListWorkPhotos accepted zero id, want error")
	}

	cats, err := c.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if len(cats) != 1 || cats[0].Slug != "ensaios" {
		t.Fatalf("ListCategories = %#v, want slug ensaios", cats)
	}

	health, err := c.FetchHealth(ctx)
	if err != nil {
		t.Fatalf("FetchHealth returned error: %v", err)
	}
	if !health.JWTConfigured || health.Message != "ok" {
		t.Fatalf("FetchHealth = %#v", health)
	}
}

func TestClient_EmptyTokenOmitsAuthorization(t *testing.T) {
	t.Parallel()

	var sawAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_ = json.NewEncoder(w).Encode([]Photo{})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticToken(""))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.ListPhotos(context.Background()); err != nil {
		t.Fatalf("ListPhotos returned error: %v", err)
	}
	if sawAuth {
		t.Fatal("request carried Authorization header without a token")
	}
}

func TestClient_CreatePhotoMultipart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sunset.jpg")
	if err := os.WriteFile(path, []byte("jpeg-bytes"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var gotContentType string
	fields := map[string]string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for _, name := range []string{"title", "description", "category_id", "work_id", "is_featured"} {
			fields[name] = r.FormValue(name)
		}
		file, header, err := r.FormFile("photo")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer func() { _ = file.Close() }()
		if header.Filename != "sunset.jpg" {
			http.Error(w, "bad filename", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Photo{ID: 31, Title: r.FormValue("title")})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticToken("tok"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	created, err := c.CreatePhoto(context.Background(), PhotoUploadRequest{
		Path:       path,
		Title:      "Sunset",
		CategoryID: 3,
		WorkID:     0,
		IsFeatured: true,
	})
	if err != nil {
		t.Fatalf("CreatePhoto returned error: %v", err)
	}
	if created.ID != 31 || created.Title != "Sunset" {
		t.Fatalf("CreatePhoto = %#v, want id=31 title=Sunset", created)
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data; boundary=") {
		t.Fatalf("Content-Type = %q, want multipart with boundary", gotContentType)
	}
	if fields["title"] != "Sunset" || fields["category_id"] != "3" || fields["is_featured"] != "true" {
		t.Fatalf("form fields = %v", fields)
	}
	if fields["work_id"] != "" {
		t.Fatalf("work_id = %q, want empty for unassigned", fields["work_id"])
	}
}

func TestClient_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPut:
			var update PhotoUpdate
			_ = json.NewDecoder(r.Body).Decode(&update)
			_ = json.NewEncoder(w).Encode(Photo{ID: update.ID, Title: update.Title})
		case r.Method == http.MethodDelete:
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "deleted"})
		case r.Method == http.MethodPost:
			_ = json.NewEncoder(w).Encode(Work{ID: 9, Title: "New Work"})
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticToken("tok"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	updated, err := c.UpdatePhoto(ctx, PhotoUpdate{ID: 5, Title: "Renamed"})
	if err != nil {
		t.Fatalf("UpdatePhoto returned error: %v", err)
	}
	if updated.Title != "Renamed" || gotPath != "/api/photos/5" || gotMethod != http.MethodPut {
		t.Fatalf("UpdatePhoto %s %s -> %#v", gotMethod, gotPath, updated)
	}

	if err := c.DeletePhoto(ctx, 5); err != nil {
		t.Fatalf("DeletePhoto returned error: %v", err)
	}
	if gotPath != "/api/photos/5" || gotMethod != http.MethodDelete {
		t.Fatalf("DeletePhoto %s %s", gotMethod, gotPath)
	}

	work, err := c.CreateWork(ctx, WorkUpdate{Title: "New Work", CategoryID: 1})
	if err != nil {
		t.Fatalf("CreateWork returned error: %v", err)
	}
	if work.ID != 9 {
		t.Fatalf("CreateWork = %#v, want id=9", work)
	}

	if err := c.DeleteWork(ctx, 9); err != nil {
		t.Fatalf("DeleteWork returned error: %v", err)
	}
	if gotPath != "/api/works/9" {
		t.Fatalf("DeleteWork path = %q", gotPath)
	}

	if err := c.DeletePhoto(ctx, 0); err == nil {
		t.Fatal("DeletePhoto accepted zero id, want error")
	}
	if err := c.DeleteWork(ctx, -1); err == nil {
		t.Fatal("DeleteWork accepted negative id, want error")
	}
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		w.Header().Set("Content-Type", "application/json")
		if creds["password"] == "right" {
			_ = json.NewEncoder(w).Encode(LoginResponse{Success: true, Token: "abc", User: User{Username: "admin"}})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(LoginResponse{Success: false, Error: "invalid credentials"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	ok, err := c.Login(ctx, "admin", "right")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !ok.Success || ok.Token != "abc" || ok.User.Username != "admin" {
		t.Fatalf("Login = %#v, want success token=abc", ok)
	}

	rejected, err := c.Login(ctx, "admin", "wrong")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rejected.Success || rejected.Error != "invalid credentials" {
		t.Fatalf("Login = %#v, want rejection with server message", rejected)
	}
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/photos":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"database unavailable"}`))
		case "/api/works":
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<!DOCTYPE html><html><body>Bad Gateway</body></html>"))
		case "/api/categories":
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("plain text failure"))
		case "/api/works/4":
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	_, err = c.ListPhotos(ctx)
	if err == nil || err.Error() != "database unavailable" {
		t.Fatalf("error = %v, want server json message verbatim", err)
	}

	_, err = c.ListWorks(ctx)
	if err == nil || !strings.Contains(err.Error(), "unexpected response") {
		t.Fatalf("error = %v, want html translated to generic message", err)
	}
	if IsNotFound(err) {
		t.Fatal("IsNotFound = true for 502")
	}

	_, err = c.ListCategories(ctx)
	if err == nil || err.Error() != "HTTP 503" {
		t.Fatalf("error = %v, want HTTP 503 fallback", err)
	}

	err = c.DeleteWork(ctx, 4)
	if !IsNotFound(err) {
		t.Fatalf("error = %v, want 404 detected by IsNotFound", err)
	}
}
