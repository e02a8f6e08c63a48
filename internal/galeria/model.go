package galeria

import "gorm.io/gorm"

// Imagem é um item da galeria pública.
type Imagem struct {
	gorm.Model
	Titulo  string `json:"titulo"`
	URL     string `json:"url"`
	Legenda string `json:"legenda"`
}
