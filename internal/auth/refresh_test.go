package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/VerdeRaiz/api-ong/internal/config"
)

func abrirBancoTeste(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&RefreshToken{}))
	return db
}

func novoServicoComBanco(t *testing.T) *ServicoToken {
	t.Helper()
	cfg := &config.Config{
		SegredoJWT: []byte("segredo-de-teste"),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
	return NovoServicoToken(abrirBancoTeste(t), cfg)
}

func TestRotacaoDeRefreshToken(t *testing.T) {
	s := novoServicoComBanco(t)

	raw, err := s.GerarRefreshToken()
	require.NoError(t, err)
	_, err = s.SalvarRefreshToken(10, "ana@verderaiz.org", PapelPatrocinador, raw)
	require.NoError(t, err)

	access, novoRaw, claims, err := s.RenovarAccessToken(raw)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEqual(t, raw, novoRaw)
	assert.Equal(t, PapelPatrocinador, claims.Papel)

	// o access emitido carrega o papel original
	decodificado, err := s.ValidarAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, PapelPatrocinador, decodificado.Papel)
	assert.Equal(t, uint(10), decodificado.UserID)

	// rotação de uso único: o token antigo não serve mais
	_, _, _, err = s.RenovarAccessToken(raw)
	assert.ErrorIs(t, err, ErrRefreshRevogado)

	// o novo continua válido
	_, _, _, err = s.RenovarAccessToken(novoRaw)
	assert.NoError(t, err)
}

func TestRefreshDesconhecido(t *testing.T) {
	s := novoServicoComBanco(t)

	_, _, _, err := s.RenovarAccessToken("nunca-existiu")
	assert.ErrorIs(t, err, ErrRefreshDesconhecido)

	_, _, _, err = s.RenovarAccessToken("")
	assert.ErrorIs(t, err, ErrRefreshDesconhecido)
}

func TestRefreshExpirado(t *testing.T) {
	s := novoServicoComBanco(t)

	raw, err := s.GerarRefreshToken()
	require.NoError(t, err)
	rt, err := s.SalvarRefreshToken(3, "p@q.org", PapelVoluntario, raw)
	require.NoError(t, err)

	require.NoError(t, s.db.Model(rt).Update("expires_at", time.Now().Add(-time.Hour)).Error)

	_, _, _, err = s.RenovarAccessToken(raw)
	assert.ErrorIs(t, err, ErrRefreshRevogado)
}

func TestRemoverRefreshTokenIdempotente(t *testing.T) {
	s := novoServicoComBanco(t)

	raw, err := s.GerarRefreshToken()
	require.NoError(t, err)
	_, err = s.SalvarRefreshToken(5, "z@w.org", PapelVoluntario, raw)
	require.NoError(t, err)

	require.NoError(t, s.RemoverRefreshToken(raw))
	// repetir não é erro, e token removido não renova
	require.NoError(t, s.RemoverRefreshToken(raw))
	require.NoError(t, s.RemoverRefreshToken("inexistente"))

	_, _, _, err = s.RenovarAccessToken(raw)
	assert.ErrorIs(t, err, ErrRefreshRevogado)
}
