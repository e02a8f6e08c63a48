package notificacao

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iniciarHubDeTeste(t *testing.T, intervalo time.Duration) (*Hub, string) {
	t.Helper()
	hub := NovoHubComIntervalo(intervalo)
	hub.Iniciar(context.Background())
	t.Cleanup(hub.Encerrar)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServirWS))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func conectar(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func lerMensagem(t *testing.T, conn *websocket.Conn) mensagemServidor {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg mensagemServidor
	_, dados, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(dados, &msg))
	return msg
}

func TestBroadcastEntregaATodos(t *testing.T) {
	hub, url := iniciarHubDeTeste(t, time.Hour)

	c1 := conectar(t, url)
	c2 := conectar(t, url)
	c3 := conectar(t, url)

	require.Eventually(t, func() bool { return hub.TotalConexoes() == 3 }, time.Second, 10*time.Millisecond)

	hub.BroadcastNotificacao(&Notificacao{Titulo: "Olá"})

	for _, c := range []*websocket.Conn{c1, c2, c3} {
		msg := lerMensagem(t, c)
		assert.Equal(t, "notification", msg.Type)
	}
}

func TestConexaoFechadaNaoDerrubaAsDemais(t *testing.T) {
	hub, url := iniciarHubDeTeste(t, time.Hour)

	c1 := conectar(t, url)
	c2 := conectar(t, url)
	c3 := conectar(t, url)

	require.Eventually(t, func() bool { return hub.TotalConexoes() == 3 }, time.Second, 10*time.Millisecond)

	require.NoError(t, c2.Close())
	// o loop de leitura percebe o fechamento e tira a conexão do registro
	require.Eventually(t, func() bool { return hub.TotalConexoes() == 2 }, time.Second, 10*time.Millisecond)

	hub.BroadcastNotificacao(&Notificacao{Titulo: "Ainda de pé"})

	for _, c := range []*websocket.Conn{c1, c3} {
		msg := lerMensagem(t, c)
		assert.Equal(t, "notification", msg.Type)
	}
}

func TestEnviarParaUsuarioFiltraPorAuth(t *testing.T) {
	hub, url := iniciarHubDeTeste(t, time.Hour)

	autenticado := conectar(t, url)
	anonimo := conectar(t, url)

	require.Eventually(t, func() bool { return hub.TotalConexoes() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, autenticado.WriteJSON(map[string]any{"type": "auth", "userId": 7}))
	require.Eventually(t, func() bool { return hub.temUsuario(7) }, time.Second, 10*time.Millisecond)

	hub.EnviarParaUsuario(7, &Notificacao{Titulo: "Só para você"})

	msg := lerMensagem(t, autenticado)
	assert.Equal(t, "notification", msg.Type)

	// o anônimo não recebe nada
	require.NoError(t, anonimo.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := anonimo.ReadMessage()
	assert.Error(t, err)
}

func TestPingRecebePong(t *testing.T) {
	_, url := iniciarHubDeTeste(t, time.Hour)

	conn := conectar(t, url)
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "ping"}))

	msg := lerMensagem(t, conn)
	assert.Equal(t, "pong", msg.Type)
}

func TestHeartbeatRemoveConexaoMuda(t *testing.T) {
	hub, url := iniciarHubDeTeste(t, 50*time.Millisecond)

	// cliente que nunca lê: não processa pings, logo nunca responde
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.TotalConexoes() == 1 }, time.Second, 10*time.Millisecond)

	// dois ticks sem pong: a conexão sai do registro
	require.Eventually(t, func() bool { return hub.TotalConexoes() == 0 }, 2*time.Second, 20*time.Millisecond)
}

func TestHeartbeatMantemConexaoAtiva(t *testing.T) {
	hub, url := iniciarHubDeTeste(t, 50*time.Millisecond)

	conn := conectar(t, url)
	// leitor ativo: o handler default do gorilla responde aos pings
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	require.Eventually(t, func() bool { return hub.TotalConexoes() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 1, hub.TotalConexoes())
}
