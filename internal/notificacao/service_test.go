package notificacao

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func abrirBancoTeste(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Notificacao{}))
	return db
}

// difusorFake conta broadcasts para os testes de ordenação.
type difusorFake struct {
	enviadas []*Notificacao
}

func (d *difusorFake) BroadcastNotificacao(n *Notificacao) {
	d.enviadas = append(d.enviadas, n)
}

// repositorioFalho simula banco indisponível.
type repositorioFalho struct {
	Repository
}

func (repositorioFalho) Criar(*gorm.DB, *Notificacao) error {
	return errors.New("banco indisponível")
}

func TestCriarENotificarPersisteEDepoisTransmite(t *testing.T) {
	db := abrirBancoTeste(t)
	fake := &difusorFake{}
	s := NovoServico(db, fake)

	n, err := s.CriarENotificar("Nova campanha", "Plantio de mudas", TipoSucesso)
	require.NoError(t, err)
	require.NotZero(t, n.ID)

	// linha no banco e exatamente um broadcast
	var total int64
	require.NoError(t, db.Model(&Notificacao{}).Count(&total).Error)
	assert.EqualValues(t, 1, total)
	require.Len(t, fake.enviadas, 1)
	assert.Equal(t, n.ID, fake.enviadas[0].ID)
}

func TestFalhaDePersistenciaNuncaTransmite(t *testing.T) {
	fake := &difusorFake{}
	s := &Servico{DB: abrirBancoTeste(t), Repository: repositorioFalho{}, Difusor: fake}

	_, err := s.CriarENotificar("Título", "Descrição", TipoInfo)
	require.Error(t, err)
	assert.Empty(t, fake.enviadas)
}

func TestTipoInvalidoEhRejeitado(t *testing.T) {
	fake := &difusorFake{}
	s := NovoServico(abrirBancoTeste(t), fake)

	_, err := s.CriarENotificar("Título", "Descrição", "URGENTE")
	require.Error(t, err)
	assert.Empty(t, fake.enviadas)

	var total int64
	require.NoError(t, s.DB.Model(&Notificacao{}).Count(&total).Error)
	assert.Zero(t, total)
}

func TestNotificarSemBloquearEngoleErro(t *testing.T) {
	fake := &difusorFake{}
	s := &Servico{DB: abrirBancoTeste(t), Repository: repositorioFalho{}, Difusor: fake}

	// não entra em pânico nem propaga
	s.NotificarSemBloquear("Título", "Descrição", TipoInfo)
	assert.Empty(t, fake.enviadas)
}
