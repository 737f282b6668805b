package auth

import (
	"net/http"
	"time"

	"myapp_backend/internal/config"
)

// EmailCookieName is the informational cookie readable by browser scripts.
// It is never trusted for authentication.
const EmailCookieName = "userEmail"

// CookieOptions controls how the session and email cookies are issued.
type CookieOptions struct {
	SessionName string
	Secure      bool
	EmailMaxAge time.Duration
}

// NewCookieOptions derives cookie settings from config; Secure follows release mode.
func NewCookieOptions(cfg *config.Config) CookieOptions {
	return CookieOptions{
		SessionName: cfg.SessionCookieName,
		Secure:      cfg.IsRelease(),
		EmailMaxAge: cfg.EmailCookieMaxAge,
	}
}

func (o CookieOptions) setSession(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     o.SessionName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (o CookieOptions) setEmail(w http.ResponseWriter, email string) {
	http.SetCookie(w, &http.Cookie{
		Name:     EmailCookieName,
		Value:    email,
		Path:     "/",
		MaxAge:   int(o.EmailMaxAge.Seconds()),
		HttpOnly: false,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (o CookieOptions) clear(w http.ResponseWriter) {
	for _, name := range []string{o.SessionName, EmailCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name == o.SessionName,
			Secure:   o.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
