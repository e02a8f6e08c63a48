package auth

import (
	"errors"
	"net/http"

	"github.com/VerdeRaiz/api-ong/internal/utils"
)

// RefreshHTTPHandler troca o refresh token do cookie por um novo access
// token. POST /auth/refresh
func (s *ServicoToken) RefreshHTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(CookieRefresh)
		if err != nil || c.Value == "" {
			utils.RespondErro(w, http.StatusUnauthorized, "refresh token ausente")
			return
		}

		access, novoRaw, claims, err := s.RenovarAccessToken(c.Value)
		if err != nil {
			s.LimparCookies(w)
			if errors.Is(err, ErrRefreshDesconhecido) || errors.Is(err, ErrRefreshRevogado) {
				utils.RespondErro(w, http.StatusUnauthorized, "refresh token inválido")
				return
			}
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao renovar sessão")
			return
		}

		s.EscreverCookies(w, access, novoRaw, claims.Papel)
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"access_token": access,
			"token_type":   "Bearer",
			"expires_in":   int(s.ttlAccess.Seconds()),
		})
	}
}

// LogoutHTTPHandler revoga o refresh token e limpa os cookies. Idempotente.
// POST /auth/logout
func (s *ServicoToken) LogoutHTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(CookieRefresh); err == nil && c.Value != "" {
			_ = s.RemoverRefreshToken(c.Value)
		}
		s.LimparCookies(w)
		w.WriteHeader(http.StatusNoContent)
	}
}
