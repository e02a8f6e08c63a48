package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/VerdeRaiz/api-ong/internal/auditoria"
	"github.com/VerdeRaiz/api-ong/internal/auth"
	"github.com/VerdeRaiz/api-ong/internal/campanha"
	"github.com/VerdeRaiz/api-ong/internal/config"
	"github.com/VerdeRaiz/api-ong/internal/configuracao"
	"github.com/VerdeRaiz/api-ong/internal/contato"
	"github.com/VerdeRaiz/api-ong/internal/galeria"
	"github.com/VerdeRaiz/api-ong/internal/mailer"
	"github.com/VerdeRaiz/api-ong/internal/notificacao"
	"github.com/VerdeRaiz/api-ong/internal/obs"
	"github.com/VerdeRaiz/api-ong/internal/postagem"
	"github.com/VerdeRaiz/api-ong/internal/usuario"
	"github.com/VerdeRaiz/api-ong/internal/utils"
	"github.com/VerdeRaiz/api-ong/internal/utils/db"
)

func main() {
	cfg, err := config.Carregar()
	if err != nil {
		log.Fatal("Erro de configuração:", err)
	}

	conexao, err := db.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := conexao.AutoMigrate(
		&usuario.Usuario{},
		&auth.RefreshToken{},
		&campanha.Campanha{},
		&postagem.Postagem{},
		&galeria.Imagem{},
		&contato.Contato{},
		&configuracao.Configuracao{},
		&notificacao.Notificacao{},
		&auditoria.AuditLog{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	obs.Init()

	// Serviços
	tokens := auth.NovoServicoToken(conexao, cfg)
	hub := notificacao.NovoHub()
	hub.Iniciar(context.Background())
	defer hub.Encerrar()

	servicoNotif := notificacao.NovoServico(conexao, hub)
	recorder := auditoria.NovoRecorder(conexao)
	correio := mailer.NovoCliente(cfg)
	limitador := auth.NovoLimitadorIP(1, 5)

	// Handlers
	usuarioHandler := usuario.NewHandler(conexao, tokens, servicoNotif, recorder, correio)
	campanhaHandler := campanha.NewHandler(conexao, recorder)
	postagemHandler := postagem.NewHandler(conexao, recorder)
	galeriaHandler := galeria.NewHandler(conexao, hub, recorder)
	contatoHandler := contato.NewHandler(conexao, servicoNotif, recorder, correio)
	configHandler := configuracao.NewHandler(conexao, recorder)
	notifHandler := notificacao.NewHandler(conexao, servicoNotif, recorder)
	auditoriaHandler := auditoria.NewHandler(conexao)

	// Router
	r := mux.NewRouter()
	r.Use(obs.Instrument)

	r.Handle("/metrics", obs.Handler()).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{"status": "ok", "conexoesWS": hub.TotalConexoes()})
	}).Methods("GET")

	// Canal em tempo real das notificações
	r.HandleFunc("/ws/notifications", hub.ServirWS).Methods("GET")

	// Autenticação
	r.HandleFunc("/auth/login", limitador.Middleware(usuarioHandler.Login)).Methods("POST")
	r.HandleFunc("/auth/register", limitador.Middleware(usuarioHandler.Registrar)).Methods("POST")
	r.HandleFunc("/auth/refresh", tokens.RefreshHTTPHandler()).Methods("POST")
	r.HandleFunc("/auth/logout", tokens.LogoutHTTPHandler()).Methods("POST")

	// Rotas públicas
	r.HandleFunc("/campanhas", campanhaHandler.ListarPublicas).Methods("GET")
	r.HandleFunc("/campanhas/{id:[0-9]+}", campanhaHandler.BuscarPorID).Methods("GET")
	r.HandleFunc("/postagens", postagemHandler.ListarPublicadas).Methods("GET")
	r.HandleFunc("/postagens/{slug}", postagemHandler.BuscarPorSlug).Methods("GET")
	r.HandleFunc("/galeria", galeriaHandler.Listar).Methods("GET")
	r.HandleFunc("/contatos", contatoHandler.Criar).Methods("POST")

	// Painéis por papel: o gate redireciona para o login em qualquer falha
	painel := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"papel":   auth.PapelDoContexto(r.Context()),
			"caminho": r.URL.Path,
		})
	})
	r.PathPrefix("/dashboard").Handler(tokens.MiddlewarePainel(painel))

	// Back office (API autenticada, só ADMIN)
	admin := r.PathPrefix("/").Subrouter()
	admin.Use(tokens.MiddlewareAPI, auth.RequerPapel(auth.PapelAdmin))

	admin.HandleFunc("/usuarios", usuarioHandler.Criar).Methods("POST")
	admin.HandleFunc("/usuarios", usuarioHandler.Listar).Methods("GET")
	admin.HandleFunc("/usuarios/lote/verificar", usuarioHandler.LoteVerificar).Methods("POST")
	admin.HandleFunc("/usuarios/lote/papel", usuarioHandler.LoteAlterarPapel).Methods("POST")
	admin.HandleFunc("/usuarios/{id:[0-9]+}", usuarioHandler.BuscarPorID).Methods("GET")
	admin.HandleFunc("/usuarios/{id:[0-9]+}", usuarioHandler.Atualizar).Methods("PUT")
	admin.HandleFunc("/usuarios/{id:[0-9]+}", usuarioHandler.Deletar).Methods("DELETE")

	admin.HandleFunc("/admin/campanhas", campanhaHandler.ListarTodas).Methods("GET")
	admin.HandleFunc("/campanhas", campanhaHandler.Criar).Methods("POST")
	admin.HandleFunc("/campanhas/{id:[0-9]+}", campanhaHandler.Atualizar).Methods("PUT")
	admin.HandleFunc("/campanhas/{id:[0-9]+}", campanhaHandler.Deletar).Methods("DELETE")

	admin.HandleFunc("/admin/postagens", postagemHandler.ListarTodas).Methods("GET")
	admin.HandleFunc("/postagens", postagemHandler.Criar).Methods("POST")
	admin.HandleFunc("/postagens/{id:[0-9]+}", postagemHandler.Atualizar).Methods("PUT")
	admin.HandleFunc("/postagens/{id:[0-9]+}", postagemHandler.Deletar).Methods("DELETE")

	admin.HandleFunc("/galeria", galeriaHandler.Criar).Methods("POST")
	admin.HandleFunc("/galeria/{id:[0-9]+}", galeriaHandler.Deletar).Methods("DELETE")

	admin.HandleFunc("/contatos", contatoHandler.Listar).Methods("GET")
	admin.HandleFunc("/contatos/{id:[0-9]+}/respondido", contatoHandler.MarcarRespondido).Methods("PATCH")
	admin.HandleFunc("/contatos/{id:[0-9]+}", contatoHandler.Deletar).Methods("DELETE")

	admin.HandleFunc("/configuracoes", configHandler.Listar).Methods("GET")
	admin.HandleFunc("/configuracoes/{chave}", configHandler.Buscar).Methods("GET")
	admin.HandleFunc("/configuracoes/{chave}", configHandler.Definir).Methods("PUT")

	admin.HandleFunc("/notificacoes", notifHandler.Listar).Methods("GET")
	admin.HandleFunc("/notificacoes", notifHandler.Criar).Methods("POST")
	admin.HandleFunc("/notificacoes/lidas", notifHandler.MarcarTodasLidas).Methods("PATCH")
	admin.HandleFunc("/notificacoes/{id:[0-9]+}/lida", notifHandler.MarcarLida).Methods("PATCH")
	admin.HandleFunc("/notificacoes/{id:[0-9]+}", notifHandler.Deletar).Methods("DELETE")

	admin.HandleFunc("/auditoria", auditoriaHandler.Listar).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.OrigensCORS,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	servidor := &http.Server{
		Addr:    ":" + cfg.Porta,
		Handler: c.Handler(r),
	}

	go func() {
		log.Printf("Servidor rodando em http://localhost:%s", cfg.Porta)
		if err := servidor.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	parar := make(chan os.Signal, 1)
	signal.Notify(parar, os.Interrupt, syscall.SIGTERM)
	<-parar

	ctx, cancelar := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelar()
	if err := servidor.Shutdown(ctx); err != nil {
		log.Printf("Erro no shutdown: %v", err)
	}
	hub.Encerrar()
}
