package auditoria

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/VerdeRaiz/api-ong/internal/utils"
)

// Handler expõe a trilha de auditoria para o back office.
type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// Listar pagina a trilha, mais recente primeiro. GET /auditoria
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	pagina, limite := utils.Paginacao(r)

	var total int64
	if err := h.DB.Model(&AuditLog{}).Count(&total).Error; err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao consultar auditoria")
		return
	}

	var linhas []AuditLog
	err := h.DB.Order("created_at DESC").
		Offset((pagina - 1) * limite).
		Limit(limite).
		Find(&linhas).Error
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao consultar auditoria")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"itens": linhas,
		"total": total,
		"page":  pagina,
		"limit": limite,
	})
}
