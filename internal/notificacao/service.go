package notificacao

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// Difusor é o que o serviço precisa do hub. Interface para os testes
// substituírem o socket real.
type Difusor interface {
	BroadcastNotificacao(n *Notificacao)
}

// Servico compõe persistência e broadcast.
type Servico struct {
	DB         *gorm.DB
	Repository Repository
	Difusor    Difusor
}

func NovoServico(db *gorm.DB, difusor Difusor) *Servico {
	return &Servico{DB: db, Repository: NewRepository(), Difusor: difusor}
}

// CriarENotificar persiste primeiro e só então transmite: nunca chega ao
// socket uma notificação que não existe no banco. Erro de broadcast é
// registrado e engolido; erro de persistência volta ao chamador.
func (s *Servico) CriarENotificar(titulo, descricao, tipo string) (*Notificacao, error) {
	if !TipoValido(tipo) {
		return nil, fmt.Errorf("tipo de notificação inválido: %q", tipo)
	}
	n := &Notificacao{Titulo: titulo, Descricao: descricao, Tipo: tipo}
	if err := s.Repository.Criar(s.DB, n); err != nil {
		return nil, err
	}
	if s.Difusor != nil {
		s.Difusor.BroadcastNotificacao(n)
	}
	return n, nil
}

// NotificarSemBloquear é a variante fire-and-forget usada pelos fluxos em que
// a notificação é efeito colateral (cadastro, contato): falha vira log, nunca
// erro para o chamador.
func (s *Servico) NotificarSemBloquear(titulo, descricao, tipo string) {
	if _, err := s.CriarENotificar(titulo, descricao, tipo); err != nil {
		log.Printf("notificacao: falha ao criar %q: %v", titulo, err)
	}
}
