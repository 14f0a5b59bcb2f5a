package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RefreshTTL    = 30 * 24 * time.Hour
	RefreshCookie = "rt"
)

// Sessoes emite e rotaciona tokens. O refresh fica só como hash no banco.
type Sessoes struct {
	DB           *gorm.DB
	Keys         *Keys
	CookieSecure bool // false em localhost, true em produção (HTTPS)
}

func NewSessoes(db *gorm.DB, keys *Keys, cookieSecure bool) *Sessoes {
	return &Sessoes{DB: db, Keys: keys, CookieSecure: cookieSecure}
}

// TokenResponse é o corpo devolvido no login e no refresh.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func novoTokenResponse(access string) TokenResponse {
	return TokenResponse{AccessToken: access, TokenType: "Bearer", ExpiresIn: int(AccessTTL.Seconds())}
}

func genRaw() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashRaw(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

func (s *Sessoes) setRTCookie(w http.ResponseWriter, raw string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    raw,
		Path:     "/auth", // cobre /auth/refresh e /auth/logout
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

func (s *Sessoes) clearRTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (s *Sessoes) novoRefresh(w http.ResponseWriter, userID uint, isAdmin bool, familyID string) error {
	raw, err := genRaw()
	if err != nil {
		return err
	}
	rt := RefreshToken{
		UserID:    userID,
		FamilyID:  familyID,
		Hash:      hashRaw(raw),
		IsAdmin:   isAdmin,
		ExpiresAt: time.Now().Add(RefreshTTL),
	}
	if err := s.DB.Create(&rt).Error; err != nil {
		return err
	}
	s.setRTCookie(w, raw, rt.ExpiresAt)
	return nil
}

// IssueTokensOnLogin é chamado depois de validar usuário e senha.
func (s *Sessoes) IssueTokensOnLogin(w http.ResponseWriter, userID uint, isAdmin bool) (TokenResponse, error) {
	access, err := s.Keys.GenerateAccessToken(userID, isAdmin)
	if err != nil {
		return TokenResponse{}, err
	}
	if err := s.novoRefresh(w, userID, isAdmin, uuid.NewString()); err != nil {
		return TokenResponse{}, err
	}
	return novoTokenResponse(access), nil
}

// Refresh trata POST /auth/refresh
func (s *Sessoes) Refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(RefreshCookie)
	if err != nil || c.Value == "" {
		http.Error(w, "no refresh", http.StatusUnauthorized)
		return
	}

	var cur RefreshToken
	if err := s.DB.Where("hash = ?", hashRaw(c.Value)).First(&cur).Error; err != nil {
		s.clearRTCookie(w)
		http.Error(w, "invalid refresh", http.StatusUnauthorized)
		return
	}
	if cur.RevokedAt != nil || time.Now().After(cur.ExpiresAt) {
		s.clearRTCookie(w)
		http.Error(w, "expired refresh", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	if err := s.DB.Model(&cur).Update("revoked_at", &now).Error; err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}

	// preserva o papel salvo no refresh
	access, err := s.Keys.GenerateAccessToken(cur.UserID, cur.IsAdmin)
	if err != nil {
		s.clearRTCookie(w)
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	if err := s.novoRefresh(w, cur.UserID, cur.IsAdmin, cur.FamilyID); err != nil {
		s.clearRTCookie(w)
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(novoTokenResponse(access))
}

// Logout trata POST /auth/logout
func (s *Sessoes) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(RefreshCookie); err == nil && c.Value != "" {
		now := time.Now()
		_ = s.DB.Model(&RefreshToken{}).Where("hash = ?", hashRaw(c.Value)).Update("revoked_at", &now).Error
	}
	s.clearRTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
