package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SupabaseVerifier resolves a bearer token via Supabase's "who is this
// token" endpoint (GET {url}/auth/v1/user). The outbound call carries an
// explicit deadline so a provider outage surfaces as an auth failure rather
// than a hung request.
type SupabaseVerifier struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewSupabaseVerifier(baseURL, serviceKey string) *SupabaseVerifier {
	return &SupabaseVerifier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type supabaseUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	AppMetadata  map[string]interface{} `json:"app_metadata"`
}

func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (*Claim, error) {
	if token == "" {
		return nil, ErrInvalidCredential
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.serviceKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned status %d", ErrInvalidCredential, resp.StatusCode)
	}

	var user supabaseUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: malformed provider response: %v", ErrInvalidCredential, err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: provider response missing subject", ErrInvalidCredential)
	}

	claim := &Claim{
		Subject:   user.ID,
		Email:     user.Email,
		Name:      metaString(user.UserMetadata, "name", "full_name"),
		AvatarURL: metaString(user.UserMetadata, "avatar_url", "picture"),
		Provider:  "supabase",
		Roles:     collectRoles(user.UserMetadata, user.AppMetadata),
	}
	if p := metaString(user.AppMetadata, "provider"); p != "" {
		claim.Provider = p
	}
	return claim, nil
}

func metaString(meta map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := meta[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// collectRoles gathers role hints from both metadata blocks; Supabase stores
// either a single "role" string or a "roles" array depending on how the
// account was provisioned.
func collectRoles(metas ...map[string]interface{}) []string {
	var roles []string
	for _, meta := range metas {
		if s, ok := meta["role"].(string); ok && s != "" {
			roles = append(roles, strings.ToLower(s))
		}
		if list, ok := meta["roles"].([]interface{}); ok {
			for _, item := range list {
				if s, ok := item.(string); ok && s != "" {
					roles = append(roles, strings.ToLower(s))
				}
			}
		}
	}
	return roles
}
