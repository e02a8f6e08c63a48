package galeria

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/VerdeRaiz/api-ong/internal/auditoria"
	"github.com/VerdeRaiz/api-ong/internal/auth"
	"github.com/VerdeRaiz/api-ong/internal/utils"
)

type imagemRequest struct {
	Titulo  string `json:"titulo"`
	URL     string `json:"url"`
	Legenda string `json:"legenda"`
}

// DifusorGaleria é o pedaço do hub que a galeria usa para avisar os clientes
// conectados que o acervo mudou.
type DifusorGaleria interface {
	BroadcastGaleria(data any)
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Difusor    DifusorGaleria
	Auditoria  *auditoria.Recorder
}

func NewHandler(db *gorm.DB, difusor DifusorGaleria, rec *auditoria.Recorder) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Difusor: difusor, Auditoria: rec}
}

// Listar devolve a galeria pública. GET /galeria
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	pagina, limite := utils.Paginacao(r)
	imagens, total, err := h.Repository.Listar(h.DB, pagina, limite)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar galeria")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"itens": imagens,
		"total": total,
		"page":  pagina,
		"limit": limite,
	})
}

// Criar adiciona uma imagem e transmite gallery_update. POST /galeria
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req imagemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.URL == "" {
		utils.RespondErro(w, http.StatusBadRequest, "url é obrigatória")
		return
	}

	i := &Imagem{Titulo: req.Titulo, URL: req.URL, Legenda: req.Legenda}
	if err := h.Repository.Criar(h.DB, i); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar imagem")
		return
	}

	if h.Difusor != nil {
		h.Difusor.BroadcastGaleria(map[string]any{"acao": "criada", "imagem": i})
	}
	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "galeria",
		EntidadeID:     i.ID,
		Acao:           auditoria.AcaoCriar,
		ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
		Alteracoes:     req,
	})
	utils.RespondJSON(w, http.StatusCreated, i)
}

// Deletar remove uma imagem e transmite gallery_update. DELETE /galeria/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	if _, err := h.Repository.BuscarPorID(h.DB, id); err != nil {
		utils.RespondErro(w, http.StatusNotFound, "imagem não encontrada")
		return
	}
	if err := h.Repository.Deletar(h.DB, id); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao remover imagem")
		return
	}

	if h.Difusor != nil {
		h.Difusor.BroadcastGaleria(map[string]any{"acao": "removida", "id": id})
	}
	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "galeria",
		EntidadeID:     id,
		Acao:           auditoria.AcaoDeletar,
		ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
	})
	w.WriteHeader(http.StatusNoContent)
}
