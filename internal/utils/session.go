// internal/utils/session.go
package utils

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/nexcart/storefront/internal/config"
	"github.com/nexcart/storefront/internal/models"
)

const (
	sessionContextKey = "session"
	sessionIssuer     = "nexcart"

	// maxPendingFlashes bounds flashes queued by redirects nobody followed.
	maxPendingFlashes = 5
)

type Flash struct {
	Category models.FlashCategory `json:"category"`
	Message  string               `json:"message"`
}

// Session is everything a visitor carries between requests.
type Session struct {
	UserID  *uint       `json:"user_id,omitempty"`
	Cart    models.Cart `json:"cart"`
	Flashes []Flash     `json:"flashes,omitempty"`
}

func (s *Session) LogIn(userID uint) {
	id := userID
	s.UserID = &id
}

func (s *Session) LogOut() {
	s.UserID = nil
}

func (s *Session) IsAuthenticated() bool {
	return s.UserID != nil
}

// AddFlash queues a message, dropping the oldest once maxPendingFlashes are pending.
func (s *Session) AddFlash(category models.FlashCategory, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
	if n := len(s.Flashes); n > maxPendingFlashes {
		s.Flashes = append([]Flash(nil), s.Flashes[n-maxPendingFlashes:]...)
	}
}

// PopFlashes returns pending flashes and forgets them.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}

type SessionClaims struct {
	Session
	jwt.RegisteredClaims
}

// SessionStore keeps the session in an HMAC-signed cookie.
type SessionStore struct {
	secret     []byte
	cookieName string
	maxAge     int
	secure     bool
}

func NewSessionStore(cfg config.SessionConfig) *SessionStore {
	return &SessionStore{
		secret:     []byte(cfg.SecretKey),
		cookieName: cfg.CookieName,
		maxAge:     cfg.MaxAge,
		secure:     cfg.Secure,
	}
}

func (s *SessionStore) CookieName() string {
	return s.cookieName
}

func (s *SessionStore) Encode(sess *Session) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Session: *sess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.maxAge) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *SessionStore) Decode(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		if claims.Issuer != sessionIssuer {
			return nil, errors.New("invalid session issuer")
		}
		sess := claims.Session
		return &sess, nil
	}

	return nil, errors.New("invalid session")
}

// Load returns the request's session. A missing, expired or tampered cookie
// yields an empty session. The result is cached on the context.
func (s *SessionStore) Load(c *gin.Context) *Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if sess, ok := v.(*Session); ok {
			return sess
		}
	}

	sess := &Session{}
	if raw, err := c.Cookie(s.cookieName); err == nil && raw != "" {
		if decoded, err := s.Decode(raw); err == nil {
			sess = decoded
		}
	}

	c.Set(sessionContextKey, sess)
	return sess
}

// Save writes the session cookie. Call it before writing the response body.
func (s *SessionStore) Save(c *gin.Context, sess *Session) error {
	value, err := s.Encode(sess)
	if err != nil {
		return err
	}

	c.Set(sessionContextKey, sess)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, value, s.maxAge, "/", "", s.secure, true)
	return nil
}
