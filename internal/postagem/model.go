package postagem

import "gorm.io/gorm"

// Postagem é um artigo do blog da ONG.
type Postagem struct {
	gorm.Model
	Titulo    string `json:"titulo"`
	Slug      string `json:"slug" gorm:"uniqueIndex"`
	Resumo    string `json:"resumo"`
	Conteudo  string `json:"conteudo"`
	Imagem    string `json:"imagem"`
	AutorID   uint   `json:"autorId" gorm:"index"`
	Publicada bool   `json:"publicada"`
}
