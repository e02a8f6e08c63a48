package campanha

import "gorm.io/gorm"

// Campanha é uma frente de arrecadação da ONG.
type Campanha struct {
	gorm.Model
	Titulo     string  `json:"titulo"`
	Slug       string  `json:"slug" gorm:"uniqueIndex"`
	Descricao  string  `json:"descricao"`
	Meta       float64 `json:"meta"`
	Arrecadado float64 `json:"arrecadado"`
	Imagem     string  `json:"imagem"`
	Ativa      bool    `json:"ativa"`
}
