package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRefreshDesconhecido = errors.New("refresh token desconhecido")
	ErrRefreshRevogado     = errors.New("refresh token revogado ou expirado")
)

// RefreshToken é guardado apenas como hash; o valor cru só existe no cookie
// do cliente. Email e Papel ficam na linha para o refresh reemitir o access
// token sem consultar a tabela de usuários.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	FamiliaID string `gorm:"index"`
	Hash      string `gorm:"uniqueIndex"`
	Email     string
	Papel     string
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

// GerarRefreshToken devolve 32 bytes aleatórios em base64url.
func (s *ServicoToken) GerarRefreshToken() (string, error) {
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

// SalvarRefreshToken persiste o hash do token cru para o usuário, abrindo
// uma nova família de tokens.
func (s *ServicoToken) SalvarRefreshToken(userID uint, email, papel, raw string) (*RefreshToken, error) {
	rt := &RefreshToken{
		UserID:    userID,
		FamiliaID: uuid.NewString(),
		Hash:      hashRaw(raw),
		Email:     email,
		Papel:     papel,
		ExpiresAt: time.Now().Add(s.ttlRefresh),
	}
	if err := s.db.Create(rt).Error; err != nil {
		return nil, err
	}
	return rt, nil
}

// RenovarAccessToken troca um refresh token válido por um novo access token.
// Rotação de uso único: a linha atual é revogada e uma nova é criada na
// mesma família.
func (s *ServicoToken) RenovarAccessToken(raw string) (access, novoRaw string, claims *Claims, err error) {
	if raw == "" {
		return "", "", nil, ErrRefreshDesconhecido
	}

	var atual RefreshToken
	if err := s.db.Where("hash = ?", hashRaw(raw)).First(&atual).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", nil, ErrRefreshDesconhecido
		}
		return "", "", nil, err
	}
	if atual.RevokedAt != nil || time.Now().After(atual.ExpiresAt) {
		return "", "", nil, ErrRefreshRevogado
	}

	now := time.Now()
	if err := s.db.Model(&atual).Update("revoked_at", &now).Error; err != nil {
		return "", "", nil, err
	}

	access, err = s.GerarAccessToken(atual.UserID, atual.Email, atual.Papel)
	if err != nil {
		return "", "", nil, err
	}

	novoRaw, err = s.GerarRefreshToken()
	if err != nil {
		return "", "", nil, err
	}
	novo := RefreshToken{
		UserID:    atual.UserID,
		FamiliaID: atual.FamiliaID,
		Hash:      hashRaw(novoRaw),
		Email:     atual.Email,
		Papel:     atual.Papel,
		ExpiresAt: time.Now().Add(s.ttlRefresh),
	}
	if err := s.db.Create(&novo).Error; err != nil {
		return "", "", nil, err
	}

	claims = &Claims{UserID: atual.UserID, Email: atual.Email, Papel: atual.Papel}
	return access, novoRaw, claims, nil
}

// RemoverRefreshToken revoga o token no logout. Idempotente: token ausente
// não é erro.
func (s *ServicoToken) RemoverRefreshToken(raw string) error {
	if raw == "" {
		return nil
	}
	now := time.Now()
	return s.db.Model(&RefreshToken{}).
		Where("hash = ? AND revoked_at IS NULL", hashRaw(raw)).
		Update("revoked_at", &now).Error
}
