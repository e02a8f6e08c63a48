package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func servidorPainel(s *ServicoToken) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(PapelDoContexto(r.Context())))
	})
	return s.MiddlewarePainel(ok)
}

func requisicaoComAccess(t *testing.T, s *ServicoToken, caminho, papel string) *http.Request {
	t.Helper()
	token, err := s.GerarAccessToken(1, "t@v.org", papel)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodGet, caminho, nil)
	r.AddCookie(&http.Cookie{Name: CookieAccess, Value: token})
	return r
}

func TestPainelSemCredenciaisRedireciona(t *testing.T) {
	s := novoServicoComBanco(t)
	w := httptest.NewRecorder()

	servidorPainel(s).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, RotaLogin, w.Header().Get("Location"))
}

func TestVoluntarioNaAreaAdminRedireciona(t *testing.T) {
	s := novoServicoComBanco(t)
	w := httptest.NewRecorder()

	servidorPainel(s).ServeHTTP(w, requisicaoComAccess(t, s, "/dashboard/admin/usuarios", PapelVoluntario))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, RotaLogin, w.Header().Get("Location"))
}

func TestAdminEhSuperusuarioNosPaineis(t *testing.T) {
	s := novoServicoComBanco(t)

	for _, caminho := range []string{"/dashboard/admin/usuarios", "/dashboard/volunteer", "/dashboard/sponsor"} {
		w := httptest.NewRecorder()
		servidorPainel(s).ServeHTTP(w, requisicaoComAccess(t, s, caminho, PapelAdmin))
		assert.Equal(t, http.StatusOK, w.Code, caminho)
		assert.Equal(t, PapelAdmin, w.Body.String())
	}
}

func TestRaizDoPainelRedirecionaPorPapel(t *testing.T) {
	s := novoServicoComBanco(t)
	w := httptest.NewRecorder()

	servidorPainel(s).ServeHTTP(w, requisicaoComAccess(t, s, "/dashboard", PapelPatrocinador))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard/sponsor", w.Header().Get("Location"))
}

func TestPapelDesconhecidoVaiParaLogin(t *testing.T) {
	s := novoServicoComBanco(t)
	w := httptest.NewRecorder()

	servidorPainel(s).ServeHTTP(w, requisicaoComAccess(t, s, "/dashboard", "GERENTE"))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, RotaLogin, w.Header().Get("Location"))
}

func TestRefreshInlineRenovaSessao(t *testing.T) {
	s := novoServicoComBanco(t)

	raw, err := s.GerarRefreshToken()
	require.NoError(t, err)
	_, err = s.SalvarRefreshToken(8, "v@v.org", PapelVoluntario, raw)
	require.NoError(t, err)

	// sem access token, só o cookie de refresh
	r := httptest.NewRequest(http.MethodGet, "/dashboard/volunteer", nil)
	r.AddCookie(&http.Cookie{Name: CookieRefresh, Value: raw})
	w := httptest.NewRecorder()

	servidorPainel(s).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	// o gate regravou os cookies com tokens novos
	cookies := w.Result().Cookies()
	var access, refresh string
	for _, c := range cookies {
		switch c.Name {
		case CookieAccess:
			access = c.Value
		case CookieRefresh:
			refresh = c.Value
		}
	}
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, raw, refresh)

	// e o refresh antigo foi rotacionado (uso único)
	_, _, _, err = s.RenovarAccessToken(raw)
	assert.ErrorIs(t, err, ErrRefreshRevogado)
}

func TestRefreshInvalidoNaoTentaDeNovo(t *testing.T) {
	s := novoServicoComBanco(t)

	r := httptest.NewRequest(http.MethodGet, "/dashboard/volunteer", nil)
	r.AddCookie(&http.Cookie{Name: CookieRefresh, Value: "invalido"})
	w := httptest.NewRecorder()

	servidorPainel(s).ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, RotaLogin, w.Header().Get("Location"))
}

func TestAPIAceitaBearerComoFallback(t *testing.T) {
	s := novoServicoComBanco(t)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protegido := s.MiddlewareAPI(RequerPapel(PapelAdmin)(ok))

	token, err := s.GerarAccessToken(2, "adm@v.org", PapelAdmin)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protegido.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	// sem credencial nenhuma: 401
	w = httptest.NewRecorder()
	protegido.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/usuarios", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIPapelErradoRecebe403(t *testing.T) {
	s := novoServicoComBanco(t)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protegido := s.MiddlewareAPI(RequerPapel(PapelAdmin)(ok))

	token, err := s.GerarAccessToken(3, "vol@v.org", PapelVoluntario)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protegido.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
