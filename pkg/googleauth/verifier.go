package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-jose/go-jose/v3"
)

const defaultJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

var (
	ErrInvalidToken     = errors.New("invalid identity token")
	ErrTokenExpired     = errors.New("identity token expired")
	ErrIssuerMismatch   = errors.New("identity token issuer mismatch")
	ErrAudienceMismatch = errors.New("identity token audience mismatch")
)

// Claims are the ID token fields the platform cares about
type Claims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Issuer        string `json:"iss"`
	Audience      string `json:"aud"`
	Expiry        int64  `json:"exp"`
}

// Verifier checks Google-issued ID tokens against the published JWKS.
// Keys are cached for an hour; an unknown kid forces one refresh before
// the token is rejected.
type Verifier struct {
	issuer     string
	audience   string
	jwksURL    string
	httpClient *http.Client

	mu      sync.RWMutex
	keys    *jose.JSONWebKeySet
	fetched time.Time
}

// NewVerifier creates a verifier bound to one issuer and OAuth client ID
func NewVerifier(issuer, audience string) *Verifier {
	return &Verifier{
		issuer:     issuer,
		audience:   audience,
		jwksURL:    defaultJWKSURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify checks the token's signature and claims and returns them
func (v *Verifier) Verify(ctx context.Context, token string) (*Claims, error) {
	jws, err := jose.ParseSigned(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if len(jws.Signatures) == 0 {
		return nil, ErrInvalidToken
	}
	kid := jws.Signatures[0].Header.KeyID

	key, err := v.keyFor(ctx, kid)
	if err != nil {
		return nil, err
	}

	payload, err := jws.Verify(key)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrInvalidToken
	}

	if claims.Issuer != v.issuer {
		return nil, ErrIssuerMismatch
	}
	if claims.Audience != v.audience {
		return nil, ErrAudienceMismatch
	}
	if claims.Expiry != 0 && time.Now().Unix() > claims.Expiry {
		return nil, ErrTokenExpired
	}

	return &claims, nil
}

func (v *Verifier) keyFor(ctx context.Context, kid string) (jose.JSONWebKey, error) {
	if key, ok := v.cachedKey(kid); ok {
		return key, nil
	}
	if err := v.refresh(ctx); err != nil {
		return jose.JSONWebKey{}, err
	}
	if key, ok := v.cachedKey(kid); ok {
		return key, nil
	}
	return jose.JSONWebKey{}, ErrInvalidToken
}

func (v *Verifier) cachedKey(kid string) (jose.JSONWebKey, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.keys == nil || time.Since(v.fetched) > time.Hour {
		return jose.JSONWebKey{}, false
	}
	if matches := v.keys.Key(kid); len(matches) > 0 {
		return matches[0], true
	}
	return jose.JSONWebKey{}, false
}

func (v *Verifier) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return err
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("jwks fetch failed")
	}

	var set jose.JSONWebKeySet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return err
	}
	if len(set.Keys) == 0 {
		return errors.New("jwks response contained no keys")
	}

	v.mu.Lock()
	v.keys = &set
	v.fetched = time.Now()
	v.mu.Unlock()
	return nil
}
