package contato

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/VerdeRaiz/api-ong/internal/auditoria"
	"github.com/VerdeRaiz/api-ong/internal/auth"
	"github.com/VerdeRaiz/api-ong/internal/mailer"
	"github.com/VerdeRaiz/api-ong/internal/notificacao"
	"github.com/VerdeRaiz/api-ong/internal/utils"
)

type contatoRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Assunto  string `json:"assunto"`
	Mensagem string `json:"mensagem"`
}

type Handler struct {
	DB           *gorm.DB
	Repository   Repository
	Notificacoes *notificacao.Servico
	Auditoria    *auditoria.Recorder
	Mailer       *mailer.Cliente
}

func NewHandler(db *gorm.DB, notif *notificacao.Servico, rec *auditoria.Recorder, correio *mailer.Cliente) *Handler {
	return &Handler{
		DB:           db,
		Repository:   NewRepository(),
		Notificacoes: notif,
		Auditoria:    rec,
		Mailer:       correio,
	}
}

// Criar recebe o formulário público; notificação e e-mail para o admin são
// efeitos colaterais de melhor esforço. POST /contatos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req contatoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Nome == "" || req.Email == "" || req.Mensagem == "" {
		utils.RespondErro(w, http.StatusBadRequest, "nome, email e mensagem são obrigatórios")
		return
	}

	c := &Contato{
		Nome:     req.Nome,
		Email:    req.Email,
		Assunto:  req.Assunto,
		Mensagem: req.Mensagem,
	}
	if err := h.Repository.Criar(h.DB, c); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar contato")
		return
	}

	h.Notificacoes.NotificarSemBloquear(
		"Novo contato",
		fmt.Sprintf("%s enviou uma mensagem: %s", c.Nome, c.Assunto),
		notificacao.TipoInfo,
	)
	h.Mailer.AlertaContato(c.Nome, c.Email, c.Assunto)

	utils.RespondJSON(w, http.StatusCreated, c)
}

// Listar pagina as mensagens recebidas. GET /contatos
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	pagina, limite := utils.Paginacao(r)
	contatos, total, err := h.Repository.Listar(h.DB, pagina, limite)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar contatos")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"itens": contatos,
		"total": total,
		"page":  pagina,
		"limit": limite,
	})
}

// MarcarRespondido sinaliza que o contato foi tratado.
// PATCH /contatos/{id}/respondido
func (h *Handler) MarcarRespondido(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	if err := h.Repository.MarcarRespondido(h.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondErro(w, http.StatusNotFound, "contato não encontrado")
			return
		}
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar contato")
		return
	}
	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "contato",
		EntidadeID:     id,
		Acao:           auditoria.AcaoAtualizar,
		ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
		Alteracoes:     map[string]bool{"respondido": true},
	})
	w.WriteHeader(http.StatusNoContent)
}

// Deletar remove uma mensagem. DELETE /contatos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	if _, err := h.Repository.BuscarPorID(h.DB, id); err != nil {
		utils.RespondErro(w, http.StatusNotFound, "contato não encontrado")
		return
	}
	if err := h.Repository.Deletar(h.DB, id); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao remover contato")
		return
	}
	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "contato",
		EntidadeID:     id,
		Acao:           auditoria.AcaoDeletar,
		ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
	})
	w.WriteHeader(http.StatusNoContent)
}
