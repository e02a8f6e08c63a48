package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Valor sentinela que não pode ir para produção.
const SegredoPlaceholder = "troque-este-segredo"

var ErrSegredoInvalido = errors.New("JWT_SECRET ausente ou igual ao placeholder")

// Config concentra tudo que vem do ambiente. Fonte única de verdade para os
// TTLs dos tokens: login e refresh usam as mesmas constantes.
type Config struct {
	Porta        string
	SegredoJWT   []byte
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	CookieSecure bool
	OrigensCORS  []string

	EmailAdmin     string
	EmailRemetente string
	SendGridKey    string
}

// Carregar lê o .env (se existir) e monta a configuração. Retorna erro fatal
// quando o segredo de assinatura não está definido ou ainda é o placeholder.
func Carregar() (*Config, error) {
	_ = godotenv.Load()

	segredo := os.Getenv("JWT_SECRET")
	if segredo == "" || segredo == SegredoPlaceholder {
		return nil, ErrSegredoInvalido
	}

	cfg := &Config{
		Porta:          valorOuPadrao("PORT", "8080"),
		SegredoJWT:     []byte(segredo),
		AccessTTL:      time.Duration(inteiroOuPadrao("ACCESS_TOKEN_TTL_MIN", 15)) * time.Minute,
		RefreshTTL:     time.Duration(inteiroOuPadrao("REFRESH_TOKEN_TTL_DIAS", 7)) * 24 * time.Hour,
		CookieSecure:   os.Getenv("COOKIE_SECURE") == "true",
		EmailAdmin:     os.Getenv("ADMIN_EMAIL"),
		EmailRemetente: valorOuPadrao("MAIL_FROM", "nao-responda@verderaiz.org"),
		SendGridKey:    os.Getenv("SENDGRID_API_KEY"),
	}

	if origens := os.Getenv("CORS_ORIGINS"); origens != "" {
		for _, o := range strings.Split(origens, ",") {
			cfg.OrigensCORS = append(cfg.OrigensCORS, strings.TrimSpace(o))
		}
	} else {
		cfg.OrigensCORS = []string{"http://localhost:3000"}
	}

	return cfg, nil
}

func valorOuPadrao(chave, padrao string) string {
	if v := os.Getenv(chave); v != "" {
		return v
	}
	return padrao
}

func inteiroOuPadrao(chave string, padrao int) int {
	v, err := strconv.Atoi(os.Getenv(chave))
	if err != nil || v <= 0 {
		return padrao
	}
	return v
}
