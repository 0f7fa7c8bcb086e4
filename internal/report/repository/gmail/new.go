package gmail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"eod-extractor/internal/report/repository"
	"eod-extractor/pkg/log"
)

// Config holds Gmail API access parameters.
type Config struct {
	CredentialsPath string
	User            string // mailbox to read, "me" targets the authenticated account
	RatePerMinute   int
}

type implRepository struct {
	service *gmail.Service
	user    string
	limiter *rate.Limiter
	l       log.Logger
}

// New creates a Gmail-backed MailRepository from a credentials JSON file.
func New(ctx context.Context, cfg Config, l log.Logger) (repository.MailRepository, error) {
	if cfg.CredentialsPath == "" {
		return nil, errors.New("gmail: credentials path is required")
	}
	data, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	svc, err := newService(ctx, data)
	if err != nil {
		return nil, err
	}
	return newWithService(svc, cfg, l), nil
}

// NewFromHTTP creates a Gmail-backed MailRepository from a pre-configured HTTP client.
func NewFromHTTP(ctx context.Context, httpClient *http.Client, cfg Config, l log.Logger) (repository.MailRepository, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return newWithService(svc, cfg, l), nil
}

func newWithService(svc *gmail.Service, cfg Config, l log.Logger) repository.MailRepository {
	user := cfg.User
	if user == "" {
		user = "me"
	}
	perMinute := cfg.RatePerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	return &implRepository{
		service: svc,
		user:    user,
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1),
		l:       l,
	}
}

// newService builds the API service from Service Account JSON, falling
// back to OAuth2 installed-app credentials paired with a token.json
// produced by scripts/gmail-auth.
func newService(ctx context.Context, credentialsJSON []byte) (*gmail.Service, error) {
	config, err := google.JWTConfigFromJSON(credentialsJSON, gmail.GmailReadonlyScope)
	if err == nil {
		svc, svcErr := gmail.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx)))
		if svcErr != nil {
			return nil, fmt.Errorf("failed to create gmail service: %w", svcErr)
		}
		return svc, nil
	}

	var oauthCreds struct {
		Installed struct {
			ClientID     string   `json:"client_id"`
			ClientSecret string   `json:"client_secret"`
			RedirectURIs []string `json:"redirect_uris"`
		} `json:"installed"`
	}
	if jsonErr := json.Unmarshal(credentialsJSON, &oauthCreds); jsonErr != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     oauthCreds.Installed.ClientID,
		ClientSecret: oauthCreds.Installed.ClientSecret,
		Scopes:       []string{gmail.GmailReadonlyScope},
		Endpoint:     google.Endpoint,
	}

	tokenData, tokenErr := os.ReadFile("token.json")
	if tokenErr != nil {
		return nil, errors.New("google credentials are OAuth Desktop type but no token.json found: run scripts/gmail-auth first")
	}

	var tok oauth2.Token
	if jsonErr := json.Unmarshal(tokenData, &tok); jsonErr != nil {
		return nil, fmt.Errorf("failed to parse token.json: %w", jsonErr)
	}

	svc, svcErr := gmail.NewService(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, &tok)))
	if svcErr != nil {
		return nil, fmt.Errorf("failed to create gmail service from OAuth token: %w", svcErr)
	}
	return svc, nil
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("report/repository/gmail.%s", method)
}
