package mailer

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/VerdeRaiz/api-ong/internal/config"
)

// Cliente envia e-mails via SendGrid em melhor esforço: sem chave configurada
// ou com erro de envio, só loga. Nenhum fluxo depende do e-mail chegar.
type Cliente struct {
	chave      string
	remetente  string
	emailAdmin string
}

func NovoCliente(cfg *config.Config) *Cliente {
	return &Cliente{
		chave:      cfg.SendGridKey,
		remetente:  cfg.EmailRemetente,
		emailAdmin: cfg.EmailAdmin,
	}
}

func (c *Cliente) enviar(destino, assunto, corpo string) {
	if c.chave == "" || destino == "" {
		return
	}
	de := mail.NewEmail("Verde Raiz", c.remetente)
	para := mail.NewEmail("", destino)
	msg := mail.NewSingleEmail(de, assunto, para, corpo, corpo)
	if _, err := sendgrid.NewSendClient(c.chave).Send(msg); err != nil {
		log.Printf("mailer: falha ao enviar %q para %s: %v", assunto, destino, err)
	}
}

// AlertaContato avisa o admin que chegou mensagem pelo formulário público.
func (c *Cliente) AlertaContato(nome, email, assunto string) {
	corpo := fmt.Sprintf("Novo contato de %s <%s>: %s", nome, email, assunto)
	go c.enviar(c.emailAdmin, "Novo contato no site", corpo)
}

// BoasVindas confirma o cadastro para o novo usuário.
func (c *Cliente) BoasVindas(nome, email string) {
	corpo := fmt.Sprintf("Olá %s, seu cadastro na Verde Raiz foi recebido.", nome)
	go c.enviar(email, "Bem-vindo à Verde Raiz", corpo)
}
