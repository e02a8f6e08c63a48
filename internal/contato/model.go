package contato

import "gorm.io/gorm"

// Contato é uma mensagem enviada pelo formulário público do site.
type Contato struct {
	gorm.Model
	Nome       string `json:"nome"`
	Email      string `json:"email"`
	Assunto    string `json:"assunto"`
	Mensagem   string `json:"mensagem"`
	Respondido bool   `json:"respondido"`
}
