package usuario

import "gorm.io/gorm"

// Usuario é a identidade do sistema. Papel usa os valores expostos na borda
// (ADMIN | SPONSOR | VOLUNTEER); a senha nunca sai no JSON.
type Usuario struct {
	gorm.Model
	Nome       string `json:"nome"`
	Sobrenome  string `json:"sobrenome"`
	Email      string `json:"email" gorm:"uniqueIndex"`
	Senha      string `json:"-"`
	Papel      string `json:"papel" gorm:"index"`
	Verificado bool   `json:"verificado"`
}
