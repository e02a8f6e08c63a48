package configuracao

import "time"

// Configuracao é chave/valor modelado no schema — nada de SQL cru para
// ajustes do site.
type Configuracao struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Chave     string    `gorm:"uniqueIndex" json:"chave"`
	Valor     string    `json:"valor"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
