package notificacao

import "gorm.io/gorm"

// Tipos expostos na borda da API e no socket.
const (
	TipoInfo    = "INFO"
	TipoAlerta  = "WARNING"
	TipoSucesso = "SUCCESS"
)

// TipoValido informa se o tipo é um dos três conhecidos.
func TipoValido(t string) bool {
	return t == TipoInfo || t == TipoAlerta || t == TipoSucesso
}

type Notificacao struct {
	gorm.Model
	Titulo    string `json:"titulo"`
	Descricao string `json:"descricao"`
	Tipo      string `json:"tipo"`
	Lida      bool   `json:"lida"`
}
