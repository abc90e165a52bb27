package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"firebase.google.com/go/v4/auth"
)

type FirebaseAuthClient struct {
	client     *auth.Client
	apiKey     string
	httpClient *http.Client
}

func NewFirebaseAuthClient(client *auth.Client, apiKey string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}

	return user.UID, nil
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

func (f *FirebaseAuthClient) GenerateToken(ctx context.Context, uid string) (string, error) {
	token, err := f.client.CustomToken(ctx, uid)
	if err != nil {
		return "", err
	}

	return token, nil
}

func (f *FirebaseAuthClient) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	params := (&auth.UserToUpdate{}).
		Password(newPassword)

	_, err := f.client.UpdateUser(ctx, uid, params)
	return err
}

func (f *FirebaseAuthClient) DeleteUser(ctx context.Context, uid string) error {
	return f.client.DeleteUser(ctx, uid)
}

// TestConnection verifies the Auth client is reachable by listing a single
// user page. Used by the readiness probe.
func (f *FirebaseAuthClient) TestConnection(ctx context.Context) error {
	iter := f.client.Users(ctx, "")
	_, err := iter.Next()
	if err != nil && err.Error() != "no more items in iterator" {
		return err
	}
	return nil
}

// SignInWithEmailPassword exchanges credentials for a Firebase ID token via
// the Identity Toolkit REST API. The Admin SDK has no password sign-in.
func (f *FirebaseAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	idToken, _, err := f.SignInWithEmailPasswordWithRefresh(email, password)
	return idToken, err
}

func (f *FirebaseAuthClient) SignInWithEmailPasswordWithRefresh(email, password string) (string, string, error) {
	if f.apiKey == "" {
		return "", "", fmt.Errorf("firebase api key not configured")
	}

	reqBody, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", "", err
	}

	endpoint := fmt.Sprintf("https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key=%s", f.apiKey)
	resp, err := f.httpClient.Post(endpoint, "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			return "", "", fmt.Errorf("sign-in failed: %s", errResp.Error.Message)
		}
		return "", "", fmt.Errorf("sign-in failed with status %d", resp.StatusCode)
	}

	var result struct {
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", "", err
	}

	return result.IDToken, result.RefreshToken, nil
}

// RefreshIdToken exchanges a refresh token for a fresh ID token pair via the
// secure token endpoint.
func (f *FirebaseAuthClient) RefreshIdToken(refreshToken string) (string, string, error) {
	if f.apiKey == "" {
		return "", "", fmt.Errorf("firebase api key not configured")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	endpoint := fmt.Sprintf("https://securetoken.googleapis.com/v1/token?key=%s", f.apiKey)
	resp, err := f.httpClient.Post(endpoint, "application/x-www-form-urlencoded", bytes.NewReader([]byte(form.Encode())))
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("token refresh failed with status %d", resp.StatusCode)
	}

	var result struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", "", err
	}

	return result.IDToken, result.RefreshToken, nil
}

func (f *FirebaseAuthClient) exchangeCustomTokenForIDToken(customToken string) (string, error) {
	reqBody, err := json.Marshal(map[string]interface{}{
		"token":             customToken,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("https://identitytoolkit.googleapis.com/v1/accounts:signInWithCustomToken?key=%s", f.apiKey)
	resp, err := f.httpClient.Post(endpoint, "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("custom token exchange failed with status %d", resp.StatusCode)
	}

	var result struct {
		IDToken string `json:"idToken"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	return result.IDToken, nil
}

// GenerateLongLivedToken mints a custom token for the UID and, when an API
// key is configured, exchanges it for a real ID token so clients can use it
// against endpoints that verify with the Admin SDK.
func (f *FirebaseAuthClient) GenerateLongLivedToken(ctx context.Context, uid string) (string, error) {
	customToken, err := f.client.CustomToken(ctx, uid)
	if err != nil {
		return "", err
	}

	if f.apiKey != "" {
		return f.exchangeCustomTokenForIDToken(customToken)
	}

	return customToken, nil
}
