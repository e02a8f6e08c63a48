package configuracao

import (
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
	require.NoError(t, db.AutoMigrate(&Configuracao{}))
	return db
}

func TestDefinirFazUpsertPelaChave(t *testing.T) {
	db := abrirBancoTeste(t)
	repo := NewRepository()

	_, err := repo.Definir(db, "titulo_site", "Verde Raiz")
	require.NoError(t, err)

	c, err := repo.Definir(db, "titulo_site", "Verde Raiz ONG")
	require.NoError(t, err)
	assert.Equal(t, "Verde Raiz ONG", c.Valor)

	// upsert: continua uma linha só
	var total int64
	require.NoError(t, db.Model(&Configuracao{}).Count(&total).Error)
	assert.EqualValues(t, 1, total)
}

func TestBuscarChaveInexistente(t *testing.T) {
	db := abrirBancoTeste(t)
	repo := NewRepository()

	_, err := repo.Buscar(db, "nao-existe")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListarOrdenaPorChave(t *testing.T) {
	db := abrirBancoTeste(t)
	repo := NewRepository()

	for _, chave := range []string{"zebra", "alfa", "meio"} {
		_, err := repo.Definir(db, chave, "v")
		require.NoError(t, err)
	}

	itens, err := repo.Listar(db)
	require.NoError(t, err)
	require.Len(t, itens, 3)
	assert.Equal(t, "alfa", itens[0].Chave)
	assert.Equal(t, "zebra", itens[2].Chave)
}
