package configuracao

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/VerdeRaiz/api-ong/internal/auditoria"
	"github.com/VerdeRaiz/api-ong/internal/auth"
	"github.com/VerdeRaiz/api-ong/internal/utils"
)

type definirRequest struct {
	Valor string `json:"valor"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Auditoria  *auditoria.Recorder
}

func NewHandler(db *gorm.DB, rec *auditoria.Recorder) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Auditoria: rec}
}

// Listar devolve todas as configurações. GET /configuracoes
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	itens, err := h.Repository.Listar(h.DB)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar configurações")
		return
	}
	utils.RespondJSON(w, http.StatusOK, itens)
}

// Buscar devolve uma configuração pela chave. GET /configuracoes/{chave}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	c, err := h.Repository.Buscar(h.DB, mux.Vars(r)["chave"])
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "configuração não encontrada")
		return
	}
	utils.RespondJSON(w, http.StatusOK, c)
}

// Definir grava (upsert) o valor de uma chave. PUT /configuracoes/{chave}
func (h *Handler) Definir(w http.ResponseWriter, r *http.Request) {
	chave := mux.Vars(r)["chave"]
	var req definirRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	c, err := h.Repository.Definir(h.DB, chave, req.Valor)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao gravar configuração")
		return
	}

	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "configuracao",
		EntidadeID:     c.ID,
		Acao:           auditoria.AcaoAtualizar,
		ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
		Alteracoes:     map[string]string{"chave": chave, "valor": req.Valor},
	})
	utils.RespondJSON(w, http.StatusOK, c)
}
