package notificacao

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/VerdeRaiz/api-ong/internal/auditoria"
	"github.com/VerdeRaiz/api-ong/internal/auth"
	"github.com/VerdeRaiz/api-ong/internal/utils"
)

type criarNotificacaoRequest struct {
	Titulo    string `json:"titulo"`
	Descricao string `json:"descricao"`
	Tipo      string `json:"tipo"`
}

// Handler expõe o CRUD de notificações do back office.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Servico    *Servico
	Auditoria  *auditoria.Recorder
}

func NewHandler(db *gorm.DB, servico *Servico, rec *auditoria.Recorder) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Servico:    servico,
		Auditoria:  rec,
	}
}

// Listar devolve página + contagem de não lidas. GET /notificacoes
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	pagina, limite := utils.Paginacao(r)
	itens, total, err := h.Repository.Listar(h.DB, pagina, limite)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar notificações")
		return
	}
	naoLidas, err := h.Repository.ContarNaoLidas(h.DB)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar notificações")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"itens":    itens,
		"total":    total,
		"naoLidas": naoLidas,
		"page":     pagina,
		"limit":    limite,
	})
}

// Criar persiste e transmite uma notificação de autoria do admin.
// POST /notificacoes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarNotificacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Titulo == "" || !TipoValido(req.Tipo) {
		utils.RespondErro(w, http.StatusBadRequest, "titulo e tipo (INFO|WARNING|SUCCESS) são obrigatórios")
		return
	}

	n, err := h.Servico.CriarENotificar(req.Titulo, req.Descricao, req.Tipo)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao criar notificação")
		return
	}

	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "notificacao",
		EntidadeID:     n.ID,
		Acao:           auditoria.AcaoCriar,
		ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
		Alteracoes:     req,
	})
	utils.RespondJSON(w, http.StatusCreated, n)
}

// MarcarLida marca uma notificação como lida. PATCH /notificacoes/{id}/lida
func (h *Handler) MarcarLida(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	if err := h.Repository.MarcarLida(h.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondErro(w, http.StatusNotFound, "notificação não encontrada")
			return
		}
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar notificação")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarcarTodasLidas zera o contador de não lidas. PATCH /notificacoes/lidas
func (h *Handler) MarcarTodasLidas(w http.ResponseWriter, r *http.Request) {
	if err := h.Repository.MarcarTodasLidas(h.DB); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar notificações")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Deletar remove uma notificação. DELETE /notificacoes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	if _, err := h.Repository.BuscarPorID(h.DB, id); err != nil {
		utils.RespondErro(w, http.StatusNotFound, "notificação não encontrada")
		return
	}
	if err := h.Repository.Deletar(h.DB, id); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao remover notificação")
		return
	}
	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "notificacao",
		EntidadeID:     id,
		Acao:           auditoria.AcaoDeletar,
		ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
	})
	w.WriteHeader(http.StatusNoContent)
}
