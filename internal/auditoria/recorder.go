package auditoria

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"
)

// Entrada descreve uma mutação administrativa.
type Entrada struct {
	Entidade       string
	EntidadeID     uint
	Acao           string
	ExecutadoPorID uint
	Alteracoes     any
}

// Recorder grava a trilha de auditoria em melhor esforço: falha vira log e é
// engolida, nunca bloqueia nem derruba a ação que a originou.
type Recorder struct {
	DB *gorm.DB
}

func NovoRecorder(db *gorm.DB) *Recorder {
	return &Recorder{DB: db}
}

// Registrar é o caminho de melhor esforço usado pelos handlers.
func (r *Recorder) Registrar(e Entrada) {
	if err := r.criar(e); err != nil {
		log.Printf("auditoria: falha ao registrar %s/%s #%d: %v", e.Entidade, e.Acao, e.EntidadeID, err)
	}
}

// criar é o caminho que devolve erro, exercitado direto pelos testes.
func (r *Recorder) criar(e Entrada) error {
	alteracoes := ""
	if e.Alteracoes != nil {
		b, err := json.Marshal(e.Alteracoes)
		if err != nil {
			return err
		}
		alteracoes = string(b)
	}
	linha := AuditLog{
		Entidade:       e.Entidade,
		EntidadeID:     e.EntidadeID,
		Acao:           e.Acao,
		ExecutadoPorID: e.ExecutadoPorID,
		Alteracoes:     alteracoes,
	}
	return r.DB.Create(&linha).Error
}
