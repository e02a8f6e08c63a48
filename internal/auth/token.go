package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/VerdeRaiz/api-ong/internal/config"
)

// Papéis aceitos na borda da API.
const (
	PapelAdmin        = "ADMIN"
	PapelPatrocinador = "SPONSOR"
	PapelVoluntario   = "VOLUNTEER"
)

// PapelValido informa se o papel é um dos três conhecidos.
func PapelValido(p string) bool {
	return p == PapelAdmin || p == PapelPatrocinador || p == PapelVoluntario
}

var (
	ErrSegredoAusente = errors.New("segredo de assinatura não configurado")
	ErrTokenInvalido  = errors.New("token inválido ou expirado")
)

// Claims do access token: identidade + papel para o RBAC.
type Claims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Papel  string `json:"role"`
	jwt.RegisteredClaims
}

// ServicoToken emite e valida os dois tipos de token. Injetado via
// construtor — nada de estado global de pacote.
type ServicoToken struct {
	db           *gorm.DB
	segredo      []byte
	ttlAccess    time.Duration
	ttlRefresh   time.Duration
	cookieSecure bool
}

func NovoServicoToken(db *gorm.DB, cfg *config.Config) *ServicoToken {
	return &ServicoToken{
		db:           db,
		segredo:      cfg.SegredoJWT,
		ttlAccess:    cfg.AccessTTL,
		ttlRefresh:   cfg.RefreshTTL,
		cookieSecure: cfg.CookieSecure,
	}
}

// GerarAccessToken assina um JWT HS256 com o TTL configurado.
func (s *ServicoToken) GerarAccessToken(userID uint, email, papel string) (string, error) {
	return s.gerarComTTL(userID, email, papel, s.ttlAccess)
}

func (s *ServicoToken) gerarComTTL(userID uint, email, papel string, ttl time.Duration) (string, error) {
	if len(s.segredo) == 0 {
		return "", ErrSegredoAusente
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Papel:  papel,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.segredo)
}

// ValidarAccessToken valida assinatura e expiração. Token vazio não é erro:
// significa requisição anônima e retorna (nil, nil).
func (s *ServicoToken) ValidarAccessToken(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, nil
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.segredo, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalido
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrTokenInvalido
	}
	return claims, nil
}
