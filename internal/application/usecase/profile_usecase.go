// internal/application/usecase/profile_usecase.go
package usecase

import (
	"context"
	"io"
	"log"
	"strings"

	userdom "onlineshop/internal/domain/user"
)

// ImageUploader is the image-hosting collaborator: it accepts file bytes and
// returns the hosted URL to store as avtUrl.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// ProfileService reads and updates the storefront-owned user record.
type ProfileService struct {
	repo     userdom.Repository
	uploader ImageUploader // optional
}

func NewProfileService(repo userdom.Repository, uploader ImageUploader) *ProfileService {
	return &ProfileService{repo: repo, uploader: uploader}
}

// Get returns the profile for the uid, or ErrNotFound.
func (s *ProfileService) Get(ctx context.Context, uid string) (*userdom.Profile, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrNotAuthenticated
	}
	p, err := s.repo.GetByUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// Upsert writes the profile record, preserving an existing avatar URL when
// the input leaves it empty. Used both for registration (first write after
// sign-up) and for later edits.
func (s *ProfileService) Upsert(ctx context.Context, uid, email, name string) (*userdom.Profile, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrNotAuthenticated
	}

	p, err := userdom.New(id, email, name)
	if err != nil {
		return nil, ErrInvalidArgument
	}

	if existing, err := s.repo.GetByUID(ctx, id); err == nil && existing != nil {
		p.AvatarURL = existing.AvatarURL
		if p.Email == "" {
			p.Email = existing.Email
		}
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UploadAvatar sends the image to the hosting collaborator and stores the
// returned URL on the profile. Returns the hosted URL.
func (s *ProfileService) UploadAvatar(ctx context.Context, uid, filename string, r io.Reader) (string, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return "", ErrNotAuthenticated
	}
	if s.uploader == nil {
		return "", ErrInvalidArgument
	}

	url, err := s.uploader.Upload(ctx, filename, r)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateAvatarURL(ctx, id, url); err != nil {
		// the image is hosted but the profile write failed; surface the
		// failure, the caller may retry the profile write
		log.Printf("[profile_service] avatar url write failed uid=%q err=%v", id, err)
		return "", err
	}
	return url, nil
}
