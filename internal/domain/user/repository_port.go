// internal/domain/user/repository_port.go
package user

import "context"

// Repository is a persistence port for user profiles.
//
// Storage design (Firestore):
// - Users/{uid} -> {email, name, avtUrl}
type Repository interface {
	// GetByUID returns (nil, nil) when no profile exists for the uid.
	GetByUID(ctx context.Context, uid string) (*Profile, error)

	// Upsert creates or fully overwrites the profile document.
	Upsert(ctx context.Context, p Profile) error

	// UpdateAvatarURL sets only the avtUrl field.
	UpdateAvatarURL(ctx context.Context, uid, url string) error
}
