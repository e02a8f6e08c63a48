package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/VerdeRaiz/api-ong/internal/utils"
)

type ctxKey string

const (
	CtxUserID ctxKey = "usuarioID"
	CtxEmail  ctxKey = "email"
	CtxPapel  ctxKey = "papel"
)

// UserIDDoContexto devolve a identidade autenticada anexada pelo gate.
func UserIDDoContexto(ctx context.Context) uint {
	id, _ := ctx.Value(CtxUserID).(uint)
	return id
}

// PapelDoContexto devolve o papel autenticado anexado pelo gate.
func PapelDoContexto(ctx context.Context) string {
	p, _ := ctx.Value(CtxPapel).(string)
	return p
}

const RotaLogin = "/auth/login"

// Política declarativa de autorização: prefixo de rota → papéis permitidos.
// ADMIN é superusuário e passa em qualquer área do painel. Avaliada uma vez
// por requisição, na ordem (prefixos mais específicos primeiro).
var politicaPainel = []struct {
	Prefixo string
	Papeis  []string
}{
	{"/dashboard/admin", []string{PapelAdmin}},
	{"/dashboard/volunteer", []string{PapelVoluntario}},
	{"/dashboard/sponsor", []string{PapelPatrocinador}},
}

func papelPermitido(caminho, papel string) bool {
	for _, regra := range politicaPainel {
		if strings.HasPrefix(caminho, regra.Prefixo) {
			if papel == PapelAdmin {
				return true
			}
			for _, p := range regra.Papeis {
				if p == papel {
					return true
				}
			}
			return false
		}
	}
	return true
}

// tokenDaRequisicao lê o access token do cookie, com fallback para o header
// Authorization: Bearer.
func tokenDaRequisicao(r *http.Request) string {
	if c, err := r.Cookie(CookieAccess); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// autenticar implementa o núcleo do gate: valida o access token e, se ele
// estiver ausente ou vencido, faz UMA tentativa de refresh inline, rotacionando
// o refresh token e regravando os cookies.
func (s *ServicoToken) autenticar(w http.ResponseWriter, r *http.Request) *Claims {
	claims, err := s.ValidarAccessToken(tokenDaRequisicao(r))
	if err == nil && claims != nil {
		return claims
	}

	c, errCookie := r.Cookie(CookieRefresh)
	if errCookie != nil || c.Value == "" {
		return nil
	}
	access, novoRaw, claims, err := s.RenovarAccessToken(c.Value)
	if err != nil {
		s.LimparCookies(w)
		return nil
	}
	s.EscreverCookies(w, access, novoRaw, claims.Papel)
	return claims
}

func comIdentidade(r *http.Request, claims *Claims) *http.Request {
	ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
	ctx = context.WithValue(ctx, CtxEmail, claims.Email)
	ctx = context.WithValue(ctx, CtxPapel, claims.Papel)
	return r.WithContext(ctx)
}

// RotaDoPainel devolve o sub-painel de cada papel.
func RotaDoPainel(papel string) string {
	switch papel {
	case PapelAdmin:
		return "/dashboard/admin"
	case PapelVoluntario:
		return "/dashboard/volunteer"
	case PapelPatrocinador:
		return "/dashboard/sponsor"
	}
	return ""
}

// MiddlewarePainel protege as rotas /dashboard/*: qualquer falha de
// autenticação ou de papel redireciona para o login em vez de renderizar
// página parcial.
func (s *ServicoToken) MiddlewarePainel(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := s.autenticar(w, r)
		if claims == nil {
			http.Redirect(w, r, RotaLogin, http.StatusSeeOther)
			return
		}

		caminho := r.URL.Path
		if caminho == "/dashboard" || caminho == "/dashboard/" {
			destino := RotaDoPainel(claims.Papel)
			if destino == "" {
				http.Redirect(w, r, RotaLogin, http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, destino, http.StatusSeeOther)
			return
		}

		if !papelPermitido(caminho, claims.Papel) {
			http.Redirect(w, r, RotaLogin, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, comIdentidade(r, claims))
	})
}

// MiddlewareAPI protege rotas de API: 401 JSON em falha de autenticação.
// Faz o mesmo refresh inline do painel.
func (s *ServicoToken) MiddlewareAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		claims := s.autenticar(w, r)
		if claims == nil {
			utils.RespondErro(w, http.StatusUnauthorized, "credenciais ausentes ou inválidas")
			return
		}
		next.ServeHTTP(w, comIdentidade(r, claims))
	})
}

// RequerPapel limita a rota aos papéis informados; ADMIN sempre passa.
func RequerPapel(papeis ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			papel := PapelDoContexto(r.Context())
			if papel == PapelAdmin {
				next.ServeHTTP(w, r)
				return
			}
			for _, p := range papeis {
				if p == papel {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.RespondErro(w, http.StatusForbidden, "papel sem permissão para esta rota")
		})
	}
}
