// internal/infra/secrets/provider.go
package secrets

import (
	"context"
	"errors"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

var errNotConfigured = errors.New("secrets: provider not configured")

// Provider resolves secret values from Google Secret Manager.
// It is a fallback for settings that are not present in the environment,
// e.g. the SendGrid API key or the Cloudinary upload preset.
type Provider struct {
	sm        *secretmanager.Client
	projectID string
}

func NewProvider(sm *secretmanager.Client, projectID string) *Provider {
	return &Provider{sm: sm, projectID: strings.TrimSpace(projectID)}
}

// Get reads the latest version of the named secret and returns its
// payload trimmed of surrounding whitespace.
func (p *Provider) Get(ctx context.Context, secretID string) (string, error) {
	if p == nil || p.sm == nil {
		return "", errNotConfigured
	}
	id := strings.TrimSpace(secretID)
	if id == "" {
		return "", errors.New("secrets: secretID is empty")
	}
	if p.projectID == "" {
		return "", errors.New("secrets: projectID is empty")
	}

	name := "projects/" + p.projectID + "/secrets/" + id + "/versions/latest"
	resp, err := p.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.New("secrets: AccessSecretVersion failed (" + name + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.New("secrets: empty payload (" + name + ")")
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
