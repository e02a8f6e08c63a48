package contato

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/VerdeRaiz/api-ong/internal/auditoria"
	"github.com/VerdeRaiz/api-ong/internal/config"
	"github.com/VerdeRaiz/api-ong/internal/mailer"
	"github.com/VerdeRaiz/api-ong/internal/notificacao"
)

func novoHandlerDeTeste(t *testing.T) *Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Contato{}, &notificacao.Notificacao{}, &auditoria.AuditLog{}))

	return NewHandler(db,
		notificacao.NovoServico(db, nil),
		auditoria.NovoRecorder(db),
		mailer.NovoCliente(&config.Config{}),
	)
}

func TestContatoPublicoCriaNotificacao(t *testing.T) {
	h := novoHandlerDeTeste(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/contatos", bytes.NewReader([]byte(
		`{"nome":"João","email":"joao@x.org","assunto":"Voluntariado","mensagem":"Quero ajudar"}`,
	)))
	h.Criar(w, r)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var contatos, notificacoes int64
	require.NoError(t, h.DB.Model(&Contato{}).Count(&contatos).Error)
	require.NoError(t, h.DB.Model(&notificacao.Notificacao{}).Count(&notificacoes).Error)
	assert.EqualValues(t, 1, contatos)
	assert.EqualValues(t, 1, notificacoes)
}

func TestContatoIncompletoEh400(t *testing.T) {
	h := novoHandlerDeTeste(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/contatos", bytes.NewReader([]byte(`{"nome":"João"}`)))
	h.Criar(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var total int64
	require.NoError(t, h.DB.Model(&Contato{}).Count(&total).Error)
	assert.Zero(t, total)
}
