package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/YashMagare365/mess-management-backend/internal/domain"
)

type NewAccount struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// Provider issues account identities and attaches custom claims to them.
type Provider interface {
	// CreateAccount fails on duplicate email or weak password.
	CreateAccount(ctx context.Context, account NewAccount) (*domain.IdentityAccount, error)
	// SetCustomClaims fails if the uid is unknown.
	SetCustomClaims(ctx context.Context, uid string, claims map[string]any) error
}

type httpProvider struct {
	baseURL    string
	credential string
	client     *http.Client
}

// NewHTTPProvider returns a Provider backed by the identity service's admin
// REST API, authorized with the service-account credential.
func NewHTTPProvider(baseURL, credential string, client *http.Client) Provider {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpProvider{baseURL: baseURL, credential: credential, client: client}
}

func (p *httpProvider) CreateAccount(ctx context.Context, account NewAccount) (*domain.IdentityAccount, error) {
	var out domain.IdentityAccount
	if err := p.post(ctx, "/v1/accounts", account, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *httpProvider) SetCustomClaims(ctx context.Context, uid string, claims map[string]any) error {
	body := struct {
		Claims map[string]any `json:"claims"`
	}{Claims: claims}
	return p.post(ctx, "/v1/accounts/"+uid+":setCustomClaims", body, nil)
}

func (p *httpProvider) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.credential)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("identity request rejected: %s", apiErr.Error)
		}
		return fmt.Errorf("identity request failed with status %d", resp.StatusCode)
	}

	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}
