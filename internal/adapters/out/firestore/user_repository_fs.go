// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	userdom "onlineshop/internal/domain/user"
)

// UserRepositoryFS implements user.Repository using Firestore.
//
// Collection design:
// - Users/{uid} -> {email, name, avtUrl}
type UserRepositoryFS struct {
	Client *firestore.Client
}

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client}
}

func (r *UserRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("Users")
}

// GetByUID returns (nil, nil) if not found (nil policy).
func (r *UserRepositoryFS) GetByUID(ctx context.Context, uid string) (*userdom.Profile, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("user_repository_fs: firestore client is nil")
	}
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, errors.New("user_repository_fs: uid is empty")
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	data := snap.Data()
	return &userdom.Profile{
		UID:       id, // docId is the source of truth
		Email:     asString(data["email"]),
		Name:      asString(data["name"]),
		AvatarURL: asString(data["avtUrl"]),
	}, nil
}

func (r *UserRepositoryFS) Upsert(ctx context.Context, p userdom.Profile) error {
	if r == nil || r.Client == nil {
		return errors.New("user_repository_fs: firestore client is nil")
	}
	id := strings.TrimSpace(p.UID)
	if id == "" {
		return errors.New("user_repository_fs: Upsert requires profile.UID as docId")
	}

	_, err := r.col().Doc(id).Set(ctx, map[string]any{
		"email":  p.Email,
		"name":   p.Name,
		"avtUrl": p.AvatarURL,
	})
	return err
}

// UpdateAvatarURL merges only the avtUrl field, creating the document when
// the profile does not exist yet.
func (r *UserRepositoryFS) UpdateAvatarURL(ctx context.Context, uid, url string) error {
	if r == nil || r.Client == nil {
		return errors.New("user_repository_fs: firestore client is nil")
	}
	id := strings.TrimSpace(uid)
	if id == "" {
		return errors.New("user_repository_fs: uid is empty")
	}

	_, err := r.col().Doc(id).Set(ctx, map[string]any{
		"avtUrl": url,
	}, firestore.MergeAll)
	return err
}
