package postagem

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/VerdeRaiz/api-ong/internal/auditoria"
	"github.com/VerdeRaiz/api-ong/internal/auth"
	"github.com/VerdeRaiz/api-ong/internal/utils"
)

type postagemRequest struct {
	Titulo    string `json:"titulo"`
	Slug      string `json:"slug"`
	Resumo    string `json:"resumo"`
	Conteudo  string `json:"conteudo"`
	Imagem    string `json:"imagem"`
	Publicada *bool  `json:"publicada"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Auditoria  *auditoria.Recorder
}

func NewHandler(db *gorm.DB, rec *auditoria.Recorder) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Auditoria: rec}
}

// ListarPublicadas devolve o blog público. GET /postagens
func (h *Handler) ListarPublicadas(w http.ResponseWriter, r *http.Request) {
	h.listar(w, r, true)
}

// ListarTodas inclui rascunhos, para o back office. GET /admin/postagens
func (h *Handler) ListarTodas(w http.ResponseWriter, r *http.Request) {
	h.listar(w, r, false)
}

func (h *Handler) listar(w http.ResponseWriter, r *http.Request, somentePublicadas bool) {
	pagina, limite := utils.Paginacao(r)
	postagens, total, err := h.Repository.Listar(h.DB, pagina, limite, somentePublicadas)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar postagens")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"itens": postagens,
		"total": total,
		"page":  pagina,
		"limit": limite,
	})
}

// BuscarPorSlug devolve uma postagem publicada. GET /postagens/{slug}
func (h *Handler) BuscarPorSlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.Repository.BuscarPorSlug(h.DB, mux.Vars(r)["slug"])
	if err != nil || !p.Publicada {
		utils.RespondErro(w, http.StatusNotFound, "postagem não encontrada")
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

// Criar cadastra uma postagem; o autor vem da identidade autenticada.
// POST /postagens
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req postagemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Titulo == "" || req.Slug == "" {
		utils.RespondErro(w, http.StatusBadRequest, "titulo e slug são obrigatórios")
		return
	}

	p := &Postagem{
		Titulo:    req.Titulo,
		Slug:      req.Slug,
		Resumo:    req.Resumo,
		Conteudo:  req.Conteudo,
		Imagem:    req.Imagem,
		AutorID:   auth.UserIDDoContexto(r.Context()),
		Publicada: req.Publicada != nil && *req.Publicada,
	}
	if err := h.Repository.Criar(h.DB, p); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "erro ao criar postagem", "slug já em uso?")
		return
	}

	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "postagem",
		EntidadeID:     p.ID,
		Acao:           auditoria.AcaoCriar,
		ExecutadoPorID: p.AutorID,
		Alteracoes:     req,
	})
	utils.RespondJSON(w, http.StatusCreated, p)
}

// Atualizar altera uma postagem. PUT /postagens/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req postagemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	p, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "postagem não encontrada")
		return
	}

	if req.Titulo != "" {
		p.Titulo = req.Titulo
	}
	if req.Slug != "" {
		p.Slug = req.Slug
	}
	if req.Resumo != "" {
		p.Resumo = req.Resumo
	}
	if req.Conteudo != "" {
		p.Conteudo = req.Conteudo
	}
	if req.Imagem != "" {
		p.Imagem = req.Imagem
	}
	if req.Publicada != nil {
		p.Publicada = *req.Publicada
	}
	if err := h.Repository.Salvar(h.DB, p); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar postagem")
		return
	}

	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "postagem",
		EntidadeID:     p.ID,
		Acao:           auditoria.AcaoAtualizar,
		ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
		Alteracoes:     req,
	})
	utils.RespondJSON(w, http.StatusOK, p)
}

// Deletar remove uma postagem. DELETE /postagens/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	if _, err := h.Repository.BuscarPorID(h.DB, id); err != nil {
		utils.RespondErro(w, http.StatusNotFound, "postagem não encontrada")
		return
	}
	if err := h.Repository.Deletar(h.DB, id); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao remover postagem")
		return
	}
	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "postagem",
		EntidadeID:     id,
		Acao:           auditoria.AcaoDeletar,
		ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
	})
	w.WriteHeader(http.StatusNoContent)
}
