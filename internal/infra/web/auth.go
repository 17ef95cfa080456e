// File: internal/infra/web/auth.go
package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ===== Session/JWT primitives =====

// The wizard session id never travels in the clear: the browser holds a
// signed cookie and the server resolves it back to the redis session. A
// forged or expired cookie just means a fresh funnel.

type SessionCookieConfig struct {
	HMACSecret   []byte
	CookieName   string
	CookieDomain string
	SecureCookie bool
	TTL          time.Duration
}

type SessionManager struct{ cfg SessionCookieConfig }

func NewSessionManager(secret string, secure bool, domain string, ttl time.Duration) *SessionManager {
	return &SessionManager{cfg: SessionCookieConfig{
		HMACSecret:   []byte(secret),
		CookieName:   "funnel_session",
		CookieDomain: domain, // "" is fine if you want host-only cookie
		SecureCookie: secure, // true in prod (TLS)
		TTL:          ttl,
	}}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (m *SessionManager) Mint(w http.ResponseWriter, sessionID string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
			Subject:   sessionID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.cfg.HMACSecret)
	if err != nil {
		return "", err
	}

	c := &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    signed,
		Path:     "/",
		Domain:   m.cfg.CookieDomain,
		MaxAge:   int(m.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, c)
	return signed, nil
}

func (m *SessionManager) Clear(w http.ResponseWriter) {
	c := &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   m.cfg.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, c)
}

// SessionIDFromRequest resolves the wizard session id from the bearer
// header or the session cookie.
func (m *SessionManager) SessionIDFromRequest(r *http.Request) (string, error) {
	if hdr := r.Header.Get("Authorization"); hdr != "" {
		if strings.HasPrefix(strings.ToLower(hdr), "bearer ") {
			return m.parse(strings.TrimSpace(hdr[7:]))
		}
	}
	if c, err := r.Cookie(m.cfg.CookieName); err == nil {
		return m.parse(c.Value)
	}
	return "", errors.New("missing session token")
}

func (m *SessionManager) parse(tok string) (string, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return m.cfg.HMACSecret, nil
	})
	if err != nil || !tkn.Valid || claims.SessionID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.SessionID, nil
}
