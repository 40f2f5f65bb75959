// internal/domain/user/entity.go
package user

import (
	"errors"
	"strings"
)

var ErrInvalidProfile = errors.New("user: invalid profile")

// Profile is the storefront-owned slice of a user record.
// The avatar URL is produced by the image-hosting collaborator; this layer
// only stores the returned string.
type Profile struct {
	UID       string `json:"uid" firestore:"uid"`
	Email     string `json:"email" firestore:"email"`
	Name      string `json:"name" firestore:"name"`
	AvatarURL string `json:"avtUrl" firestore:"avtUrl"`
}

func New(uid, email, name string) (Profile, error) {
	p := Profile{
		UID:   strings.TrimSpace(uid),
		Email: strings.TrimSpace(email),
		Name:  strings.TrimSpace(name),
	}
	if p.UID == "" {
		return Profile{}, ErrInvalidProfile
	}
	return p, nil
}
