package notificacao

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Intervalo do heartbeat: conexão que não deu sinal de vida desde o tick
// anterior é fechada e sai do registro.
const HeartbeatIntervalo = 60 * time.Second

// mensagemCliente cobre os dois tipos aceitos do cliente: auth e ping.
type mensagemCliente struct {
	Type   string `json:"type"`
	UserID uint   `json:"userId"`
}

type mensagemServidor struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type conexao struct {
	userID uint
	viva   bool
}

// Hub é o registro de conexões do canal de notificações. Serviço explícito
// com ciclo de vida Iniciar/Encerrar, criado e possuído pelo main — nunca
// singleton de pacote. Todo acesso ao registro (e toda escrita em conexão)
// passa pelo mutex, porque o servidor HTTP atende em múltiplas goroutines.
type Hub struct {
	upgrader  websocket.Upgrader
	intervalo time.Duration

	mu    sync.Mutex
	conns map[*websocket.Conn]*conexao

	cancelar context.CancelFunc
	feito    chan struct{}
}

func NovoHub() *Hub {
	return NovoHubComIntervalo(HeartbeatIntervalo)
}

// NovoHubComIntervalo existe para os testes encurtarem o heartbeat.
func NovoHubComIntervalo(intervalo time.Duration) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		intervalo: intervalo,
		conns:     make(map[*websocket.Conn]*conexao),
		feito:     make(chan struct{}),
	}
}

// Iniciar dispara a goroutine do heartbeat. Encerrar (ou o cancelamento do
// contexto) a interrompe.
func (h *Hub) Iniciar(ctx context.Context) {
	ctx, h.cancelar = context.WithCancel(ctx)
	go func() {
		defer close(h.feito)
		ticker := time.NewTicker(h.intervalo)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.heartbeat()
			}
		}
	}()
}

// Encerrar para o heartbeat e fecha todas as conexões abertas.
func (h *Hub) Encerrar() {
	if h.cancelar != nil {
		h.cancelar()
		<-h.feito
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.Close()
	}
	h.conns = make(map[*websocket.Conn]*conexao)
}

// heartbeat fecha quem não respondeu desde o tick anterior e pinga o resto.
func (h *Hub) heartbeat() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, c := range h.conns {
		if !c.viva {
			_ = conn.Close()
			delete(h.conns, conn)
			continue
		}
		c.viva = false
		if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
			_ = conn.Close()
			delete(h.conns, conn)
		}
	}
}

// ServirWS faz o upgrade e registra a conexão. GET /ws/notifications
func (h *Hub) ServirWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("notificacao: erro no upgrade: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = &conexao{viva: true}
	h.mu.Unlock()

	go h.lerConexao(conn)
}

// lerConexao processa as mensagens do cliente até a conexão cair. Qualquer
// mensagem (inclusive pong de controle) marca a conexão como viva.
func (h *Hub) lerConexao(conn *websocket.Conn) {
	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		_ = conn.Close()
	}()

	conn.SetPongHandler(func(string) error {
		h.marcarViva(conn)
		return nil
	})

	for {
		_, dados, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("notificacao: leitura encerrada: %v", err)
			}
			return
		}
		h.marcarViva(conn)

		var msg mensagemCliente
		if err := json.Unmarshal(dados, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "auth":
			h.mu.Lock()
			if c, ok := h.conns[conn]; ok {
				c.userID = msg.UserID
			}
			h.mu.Unlock()
		case "ping":
			h.enviar(conn, mensagemServidor{Type: "pong"})
		}
	}
}

func (h *Hub) marcarViva(conn *websocket.Conn) {
	h.mu.Lock()
	if c, ok := h.conns[conn]; ok {
		c.viva = true
	}
	h.mu.Unlock()
}

// enviar serializa e escreve em uma conexão; em erro, a conexão sai do
// registro sem afetar as demais.
func (h *Hub) enviar(conn *websocket.Conn, msg mensagemServidor) {
	dados, err := json.Marshal(msg)
	if err != nil {
		log.Printf("notificacao: erro ao serializar mensagem: %v", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.escreverLocked(conn, dados)
}

func (h *Hub) escreverLocked(conn *websocket.Conn, dados []byte) {
	if err := conn.WriteMessage(websocket.TextMessage, dados); err != nil {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}

// BroadcastNotificacao envia a notificação para todas as conexões abertas,
// sem filtro de identidade. Falha em uma conexão não derruba a entrega nas
// outras.
func (h *Hub) BroadcastNotificacao(n *Notificacao) {
	h.broadcast(mensagemServidor{Type: "notification", Data: n})
}

// BroadcastGaleria avisa os clientes que a galeria mudou.
func (h *Hub) BroadcastGaleria(data any) {
	h.broadcast(mensagemServidor{Type: "gallery_update", Data: data})
}

func (h *Hub) broadcast(msg mensagemServidor) {
	dados, err := json.Marshal(msg)
	if err != nil {
		log.Printf("notificacao: erro ao serializar broadcast: %v", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		h.escreverLocked(conn, dados)
	}
}

// EnviarParaUsuario entrega só às conexões que se autenticaram com o userID
// via mensagem {"type":"auth"}.
func (h *Hub) EnviarParaUsuario(userID uint, n *Notificacao) {
	dados, err := json.Marshal(mensagemServidor{Type: "notification", Data: n})
	if err != nil {
		log.Printf("notificacao: erro ao serializar mensagem: %v", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, c := range h.conns {
		if c.userID == userID && userID != 0 {
			h.escreverLocked(conn, dados)
		}
	}
}

// temUsuario informa se alguma conexão se autenticou com o userID.
func (h *Hub) temUsuario(userID uint) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.conns {
		if c.userID == userID {
			return true
		}
	}
	return false
}

// TotalConexoes existe para testes e para o endpoint de saúde.
func (h *Hub) TotalConexoes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
