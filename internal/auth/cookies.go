package auth

import (
	"net/http"
	"time"
)

// Nomes dos cookies expostos ao front.
const (
	CookieAccess  = "accessToken"
	CookieRefresh = "refreshToken"
	// CookieRole é legível por script — só dica de UI, nunca autoridade.
	CookieRole = "userRole"
)

// Em localhost (http://) precisa ser Secure=false; em produção COOKIE_SECURE=true.
func (s *ServicoToken) setCookie(w http.ResponseWriter, nome, valor string, httpOnly bool, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     nome,
		Value:    valor,
		Path:     "/",
		HttpOnly: httpOnly,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// EscreverCookies grava o trio accessToken/refreshToken/userRole.
func (s *ServicoToken) EscreverCookies(w http.ResponseWriter, access, refresh, papel string) {
	now := time.Now()
	s.setCookie(w, CookieAccess, access, true, now.Add(s.ttlAccess))
	s.setCookie(w, CookieRefresh, refresh, true, now.Add(s.ttlRefresh))
	s.setCookie(w, CookieRole, papel, false, now.Add(s.ttlRefresh))
}

// LimparCookies apaga o trio no logout ou em refresh inválido.
func (s *ServicoToken) LimparCookies(w http.ResponseWriter) {
	for _, nome := range []string{CookieAccess, CookieRefresh, CookieRole} {
		http.SetCookie(w, &http.Cookie{
			Name:     nome,
			Value:    "",
			Path:     "/",
			HttpOnly: nome != CookieRole,
			Secure:   s.cookieSecure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}

// EmitirTokensNoLogin gera access + refresh e grava os cookies. Usado no
// login e no cadastro.
func (s *ServicoToken) EmitirTokensNoLogin(w http.ResponseWriter, userID uint, email, papel string) (string, error) {
	access, err := s.GerarAccessToken(userID, email, papel)
	if err != nil {
		return "", err
	}
	raw, err := s.GerarRefreshToken()
	if err != nil {
		return "", err
	}
	if _, err := s.SalvarRefreshToken(userID, email, papel, raw); err != nil {
		return "", err
	}
	s.EscreverCookies(w, access, raw, papel)
	return access, nil
}
