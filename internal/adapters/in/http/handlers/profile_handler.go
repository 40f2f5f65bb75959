// internal/adapters/in/http/handlers/profile_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"onlineshop/internal/adapters/in/http/middleware"
	uc "onlineshop/internal/application/usecase"
)

// avatar uploads are small profile pictures, cap the form at 10 MiB
const maxAvatarUploadBytes = 10 << 20

// ProfileHandler serves /me: the signed-in user's profile and avatar upload.
type ProfileHandler struct {
	profiles *uc.ProfileService
}

func NewProfileHandler(profiles *uc.ProfileService) http.Handler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	uid, email, ok := middleware.CurrentUIDAndEmail(r)
	if !ok {
		writeErr(w, uc.ErrNotAuthenticated)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/me":
		h.get(w, r, uid)
	case r.Method == http.MethodPut && r.URL.Path == "/me":
		h.upsert(w, r, uid, email)
	case r.Method == http.MethodPost && r.URL.Path == "/me/avatar":
		h.uploadAvatar(w, r, uid)
	default:
		notFound(w)
	}
}

// GET /me
func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request, uid string) {
	profile, err := h.profiles.Get(r.Context(), uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// PUT /me
// Creates or updates the profile document. Email comes from the verified
// token when the body omits it.
func (h *ProfileHandler) upsert(w http.ResponseWriter, r *http.Request, uid, tokenEmail string) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, uc.ErrInvalidArgument)
		return
	}

	email := strings.TrimSpace(body.Email)
	if email == "" {
		email = tokenEmail
	}

	profile, err := h.profiles.Upsert(r.Context(), uid, email, strings.TrimSpace(body.Name))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// POST /me/avatar
// Multipart form with one "file" part. The image is re-uploaded to the image
// host and the resulting URL is stored on the profile.
func (h *ProfileHandler) uploadAvatar(w http.ResponseWriter, r *http.Request, uid string) {
	if err := r.ParseMultipartForm(maxAvatarUploadBytes); err != nil {
		writeErr(w, uc.ErrInvalidArgument)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeErr(w, uc.ErrInvalidArgument)
		return
	}
	defer file.Close()

	url, err := h.profiles.UploadAvatar(r.Context(), uid, header.Filename, file)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"avatarUrl": url})
}
