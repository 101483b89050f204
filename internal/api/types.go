package api

import "time"

// Photo mirrors a photo record as returned by /api/photos.
// WorkID is zero for photos not attached to any work; the server encodes
// that as null and encoding/json leaves the field at its zero value.
type Photo struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	CategorySlug string `json:"category_slug"`
	WorkID       int64  `json:"work_id"`
	IsFeatured   bool   `json:"is_featured"`
	Order        int    `json:"order"`
	CreatedAt    string `json:"created_at"`
}

// Assigned reports whether the photo belongs to a work.
func (p Photo) Assigned() bool {
	return p.WorkID != 0
}

// Category returns the identifier used for gallery filtering, preferring
// the denormalized slug the server sends for display filtering.
func (p Photo) Category() string {
	if p.CategorySlug != "" {
		return p.CategorySlug
	}
	return p.CategoryName
}

// Work mirrors a work record as returned by /api/works. A work groups
// photos by reference; PhotoCount is derived server-side.
type Work struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	CategoryID    int64  `json:"category_id"`
	CategoryName  string `json:"category_name"`
	CategorySlug  string `json:"category_slug"`
	CoverPhotoURL string `json:"cover_photo_url"`
	IsFeatured    bool   `json:"is_featured"`
	PhotoCount    int    `json:"photo_count"`
	CreatedAt     string `json:"created_at"`
}

// Category returns the identifier used for gallery filtering.
func (w Work) Category() string {
	if w.CategorySlug != "" {
		return w.CategorySlug
	}
	return w.CategoryName
}

// Category is a flat lookup entry from /api/categories.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// User describes the admin account returned by the auth endpoints.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// LoginResponse mirrors /api/auth/login. On rejection the server answers
// with Success=false and a human-readable Error.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    User   `json:"user"`
	Error   string `json:"error"`
}

// VerifyResponse mirrors /api/auth/verify.
type VerifyResponse struct {
	User User `json:"user"`
}

// Health mirrors /api/health, the liveness probe.
type Health struct {
	Message            string `json:"message"`
	JWTConfigured      bool   `json:"jwt_configured"`
	DatabaseConfigured bool   `json:"database_configured"`
}

// ContactMessage is the payload for /api/contact.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactResponse mirrors the /api/contact acknowledgement.
type ContactResponse struct {
	Message string `json:"message"`
}

// WorkUpdate is the payload for creating a work. The server assigns the
// id and cover photo, which is why work creation is followed by a reload
// rather than an optimistic insert.
type WorkUpdate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  int64  `json:"category_id"`
	IsFeatured  bool   `json:"is_featured"`
}

// PhotoUpdate is the payload for PUT /api/photos/:id.
type PhotoUpdate struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  int64  `json:"category_id"`
	WorkID      int64  `json:"work_id"`
	IsFeatured  bool   `json:"is_featured"`
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (p Photo) ParsedCreatedAt() time.Time {
	return parseTime(p.CreatedAt)
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (w Work) ParsedCreatedAt() time.Time {
	return parseTime(w.CreatedAt)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
