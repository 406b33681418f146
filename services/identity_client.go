// services/identity_client.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// IdentityClient talks to the external identity service. This backend never
// stores credentials — all account operations are proxied.
type IdentityClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewIdentityClient(baseURL, token string) *IdentityClient {
	return &IdentityClient{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SignUpResponse is what the identity service returns for a created account.
type SignUpResponse struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// SessionResponse describes an authenticated session.
type SessionResponse struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
}

// IdentityError carries the identity service's own status and message so
// handlers can surface it verbatim (bad credentials, duplicate account).
type IdentityError struct {
	StatusCode int
	Message    string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("identity service: %d %s", e.StatusCode, e.Message)
}

// SignUp creates an account. The referral code, if any, travels as signup
// metadata so the signup sync worker can credit it even when the inline
// referral processing path is skipped.
func (c *IdentityClient) SignUp(email, password, displayName, referralCode string) (*SignUpResponse, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
		"metadata": map[string]string{
			"display_name":  displayName,
			"referral_code": strings.ToUpper(strings.TrimSpace(referralCode)),
		},
	}
	var out SignUpResponse
	if err := c.post("/auth/signup", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignIn exchanges credentials for a session.
func (c *IdentityClient) SignIn(email, password string) (*SessionResponse, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	var out SessionResponse
	if err := c.post("/auth/signin", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignOut revokes the given access token.
func (c *IdentityClient) SignOut(accessToken string) error {
	body := map[string]interface{}{"access_token": accessToken}
	return c.post("/auth/signout", body, nil)
}

// GetSession validates an access token and returns the session it belongs to.
func (c *IdentityClient) GetSession(accessToken string) (*SessionResponse, error) {
	body := map[string]interface{}{"access_token": accessToken}
	var out SessionResponse
	if err := c.post("/auth/session", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *IdentityClient) post(path string, payload interface{}, out interface{}) error {
	url := fmt.Sprintf("%s%s", c.BaseURL, path)

	jsonData, _ := json.Marshal(payload)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		log.Printf("IdentityService %s returned %d: %s", path, resp.StatusCode, string(respBody))
		var msg struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(respBody, &msg)
		if msg.Error == "" {
			msg.Error = http.StatusText(resp.StatusCode)
		}
		return &IdentityError{StatusCode: resp.StatusCode, Message: msg.Error}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return err
		}
	}
	return nil
}
