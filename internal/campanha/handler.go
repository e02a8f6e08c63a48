package campanha

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/VerdeRaiz/api-ong/internal/auditoria"
	"github.com/VerdeRaiz/api-ong/internal/auth"
	"github.com/VerdeRaiz/api-ong/internal/utils"
)

type campanhaRequest struct {
	Titulo    string  `json:"titulo"`
	Slug      string  `json:"slug"`
	Descricao string  `json:"descricao"`
	Meta      float64 `json:"meta"`
	Imagem    string  `json:"imagem"`
	Ativa     *bool   `json:"ativa"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Auditoria  *auditoria.Recorder
}

func NewHandler(db *gorm.DB, rec *auditoria.Recorder) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Auditoria: rec}
}

// ListarPublicas devolve campanhas ativas, paginadas. GET /campanhas
func (h *Handler) ListarPublicas(w http.ResponseWriter, r *http.Request) {
	h.listar(w, r, true)
}

// ListarTodas devolve todas as campanhas para o back office. GET /admin/campanhas
func (h *Handler) ListarTodas(w http.ResponseWriter, r *http.Request) {
	h.listar(w, r, false)
}

func (h *Handler) listar(w http.ResponseWriter, r *http.Request, somenteAtivas bool) {
	pagina, limite := utils.Paginacao(r)
	campanhas, total, err := h.Repository.Listar(h.DB, pagina, limite, somenteAtivas)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar campanhas")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"itens": campanhas,
		"total": total,
		"page":  pagina,
		"limit": limite,
	})
}

// BuscarPorID devolve uma campanha. GET /campanhas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "campanha não encontrada")
		return
	}
	utils.RespondJSON(w, http.StatusOK, c)
}

// Criar cadastra uma campanha. POST /campanhas
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req campanhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Titulo == "" {
		utils.RespondErro(w, http.StatusBadRequest, "titulo é obrigatório")
		return
	}
	if req.Slug == "" {
		req.Slug = gerarSlug(req.Titulo)
	}

	c := &Campanha{
		Titulo:    req.Titulo,
		Slug:      req.Slug,
		Descricao: req.Descricao,
		Meta:      req.Meta,
		Imagem:    req.Imagem,
		Ativa:     req.Ativa == nil || *req.Ativa,
	}
	if err := h.Repository.Criar(h.DB, c); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "erro ao criar campanha", "slug já em uso?")
		return
	}

	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "campanha",
		EntidadeID:     c.ID,
		Acao:           auditoria.AcaoCriar,
		ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
		Alteracoes:     req,
	})
	utils.RespondJSON(w, http.StatusCreated, c)
}

// Atualizar altera uma campanha. PUT /campanhas/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req campanhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	c, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "campanha não encontrada")
		return
	}

	if req.Titulo != "" {
		c.Titulo = req.Titulo
	}
	if req.Slug != "" {
		c.Slug = req.Slug
	}
	if req.Descricao != "" {
		c.Descricao = req.Descricao
	}
	if req.Meta > 0 {
		c.Meta = req.Meta
	}
	if req.Imagem != "" {
		c.Imagem = req.Imagem
	}
	if req.Ativa != nil {
		c.Ativa = *req.Ativa
	}
	if err := h.Repository.Salvar(h.DB, c); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar campanha")
		return
	}

	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "campanha",
		EntidadeID:     c.ID,
		Acao:           auditoria.AcaoAtualizar,
		ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
		Alteracoes:     req,
	})
	utils.RespondJSON(w, http.StatusOK, c)
}

// Deletar remove uma campanha. DELETE /campanhas/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	if _, err := h.Repository.BuscarPorID(h.DB, id); err != nil {
		utils.RespondErro(w, http.StatusNotFound, "campanha não encontrada")
		return
	}
	if err := h.Repository.Deletar(h.DB, id); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao remover campanha")
		return
	}
	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "campanha",
		EntidadeID:     id,
		Acao:           auditoria.AcaoDeletar,
		ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
	})
	w.WriteHeader(http.StatusNoContent)
}

// gerarSlug normaliza o título para uso na URL.
func gerarSlug(titulo string) string {
	s := strings.ToLower(strings.TrimSpace(titulo))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
