// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	httpin "onlineshop/internal/adapters/in/http"
	outfs "onlineshop/internal/adapters/out/firestore"
	usecase "onlineshop/internal/application/usecase"
	appcfg "onlineshop/internal/infra/config"
	"onlineshop/internal/infra/cloudinary"
	"onlineshop/internal/infra/mail"
	"onlineshop/internal/infra/secrets"
)

// Secret Manager fallback ids for settings absent from the environment.
const (
	secretCloudinaryPreset = "cloudinary-upload-preset"
	secretSendGridAPIKey   = "sendgrid-api-key"
)

// Container owns the external clients and the wired usecases.
//
// Firestore is strict (init error aborts). Firebase Auth, Secret Manager,
// SendGrid and Cloudinary are best-effort: a missing piece disables its
// feature with a WARN instead of failing boot.
type Container struct {
	Config *appcfg.Config

	firestoreClient *firestore.Client
	secretManager   *secretmanager.Client
	firebaseAuth    *firebaseauth.Client

	cartUC    *usecase.CartStore
	orderUC   *usecase.OrderService
	catalogUC *usecase.Catalog
	profileUC *usecase.ProfileService
}

// NewContainer initializes clients, repositories and usecases.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}
	if strings.TrimSpace(cfg.FirestoreProjectID) == "" {
		return nil, errors.New("di: projectID is empty (set FIRESTORE_PROJECT_ID or GCP_PROJECT_ID)")
	}

	c := &Container{Config: cfg}

	// Credentials file (optional; mainly for local dev)
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds)
	}
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[di] using credentials file for GCP clients")
	} else {
		log.Printf("[di] using Application Default Credentials")
	}

	// 1) Firestore (strict)
	fsClient, err := firestore.NewClient(ctx, cfg.FirestoreProjectID, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("di: firestore.NewClient failed (project=%s): %w", cfg.FirestoreProjectID, err)
	}
	c.firestoreClient = fsClient
	log.Printf("[di] Firestore connected project=%s", cfg.FirestoreProjectID)

	// 2) Secret Manager (best-effort)
	if sm, err := secretmanager.NewClient(ctx, clientOpts...); err != nil {
		log.Printf("[di] WARN: secretmanager.NewClient failed: %v (secret fallbacks disabled)", err)
	} else {
		c.secretManager = sm
	}

	// 3) Firebase Auth (best-effort; without it authenticated routes answer 503)
	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, clientOpts...)
	if err != nil {
		log.Printf("[di] WARN: firebase app init failed: %v", err)
	} else if authClient, err := fbApp.Auth(ctx); err != nil {
		log.Printf("[di] WARN: firebase auth init failed: %v", err)
	} else {
		c.firebaseAuth = authClient
		log.Printf("[di] Firebase Auth initialized")
	}

	// 4) Settings with Secret Manager fallback
	provider := secrets.NewProvider(c.secretManager, cfg.FirestoreProjectID)
	uploadPreset := resolveSetting(ctx, provider, cfg.CloudinaryUploadPreset, secretCloudinaryPreset)
	sendgridKey := resolveSetting(ctx, provider, cfg.SendGridAPIKey, secretSendGridAPIKey)

	// 5) Repositories
	cartRepo := outfs.NewCartRepositoryFS(fsClient)
	orderRepo := outfs.NewOrderRepositoryFS(fsClient)
	catalogRepo := outfs.NewCatalogRepositoryFS(fsClient)
	userRepo := outfs.NewUserRepositoryFS(fsClient)

	// 6) Outbound collaborators
	var mailer usecase.Mailer
	if sendgridKey != "" && cfg.SendGridFrom != "" {
		mailer = mail.NewSendGridMailer(sendgridKey, cfg.SendGridFrom)
		log.Printf("[di] SendGrid mailer initialized from=%s", cfg.SendGridFrom)
	} else {
		log.Printf("[di] SendGrid mailer not configured (confirmation mail disabled)")
	}

	var uploader usecase.ImageUploader
	if cfg.CloudinaryCloudName != "" && uploadPreset != "" {
		uploader = cloudinary.NewHTTPUploader(cfg.CloudinaryCloudName, uploadPreset)
		log.Printf("[di] Cloudinary uploader initialized cloud=%s", cfg.CloudinaryCloudName)
	} else {
		log.Printf("[di] Cloudinary uploader not configured (avatar upload disabled)")
	}

	// 7) Usecases
	c.cartUC = usecase.NewCartStore(cartRepo)
	c.orderUC = usecase.NewOrderService(orderRepo, userRepo, mailer)
	c.catalogUC = usecase.NewCatalog(catalogRepo)
	c.profileUC = usecase.NewProfileService(userRepo, uploader)

	return c, nil
}

// RouterDeps bundles the wired usecases for the HTTP router.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		CartUC:       c.cartUC,
		OrderUC:      c.orderUC,
		CatalogUC:    c.catalogUC,
		ProfileUC:    c.profileUC,
		FirebaseAuth: c.firebaseAuth,
	}
}

// Close releases external clients. Safe to call once at shutdown.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.secretManager != nil {
		_ = c.secretManager.Close()
	}
	if c.firestoreClient != nil {
		_ = c.firestoreClient.Close()
	}
}

// resolveSetting prefers the env value and falls back to Secret Manager.
func resolveSetting(ctx context.Context, provider *secrets.Provider, envValue, secretID string) string {
	if v := strings.TrimSpace(envValue); v != "" {
		return v
	}
	v, err := provider.Get(ctx, secretID)
	if err != nil {
		log.Printf("[di] secret %q not resolved: %v", secretID, err)
		return ""
	}
	return v
}
