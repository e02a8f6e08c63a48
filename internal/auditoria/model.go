package auditoria

import "time"

// Ações registradas.
const (
	AcaoCriar     = "CREATE"
	AcaoAtualizar = "UPDATE"
	AcaoDeletar   = "DELETE"
)

// AuditLog é append-only: a aplicação nunca atualiza nem apaga linhas daqui.
type AuditLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Entidade       string    `gorm:"index" json:"entidade"`
	EntidadeID     uint      `gorm:"index" json:"entidadeId"`
	Acao           string    `json:"acao"`
	ExecutadoPorID uint      `gorm:"index" json:"executadoPorId"`
	Alteracoes     string    `json:"alteracoes"`
	CreatedAt      time.Time `json:"createdAt"`
}
