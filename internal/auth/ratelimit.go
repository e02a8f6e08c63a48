package auth

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/VerdeRaiz/api-ong/internal/utils"
)

// LimitadorIP aplica rate limit por IP nas rotas de credencial (login e
// cadastro), para frear força bruta.
type LimitadorIP struct {
	mu         sync.Mutex
	visitantes map[string]*rate.Limiter
	porSegundo rate.Limit
	rajada     int
}

func NovoLimitadorIP(porSegundo float64, rajada int) *LimitadorIP {
	return &LimitadorIP{
		visitantes: make(map[string]*rate.Limiter),
		porSegundo: rate.Limit(porSegundo),
		rajada:     rajada,
	}
}

func (l *LimitadorIP) limitador(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.visitantes[ip]
	if !ok {
		lim = rate.NewLimiter(l.porSegundo, l.rajada)
		l.visitantes[ip] = lim
	}
	return lim
}

// Middleware responde 429 quando o IP estoura o limite.
func (l *LimitadorIP) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !l.limitador(ip).Allow() {
			utils.RespondErro(w, http.StatusTooManyRequests, "muitas tentativas, aguarde")
			return
		}
		next(w, r)
	}
}
