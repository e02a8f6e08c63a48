package usuario

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/VerdeRaiz/api-ong/internal/auditoria"
	"github.com/VerdeRaiz/api-ong/internal/auth"
	"github.com/VerdeRaiz/api-ong/internal/mailer"
	"github.com/VerdeRaiz/api-ong/internal/notificacao"
	"github.com/VerdeRaiz/api-ong/internal/utils"
)

// request DTOs
type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type criarUsuarioRequest struct {
	Nome      string `json:"nome"`
	Sobrenome string `json:"sobrenome"`
	Email     string `json:"email"`
	Senha     string `json:"senha"`
	Papel     string `json:"papel"`
}

type atualizarUsuarioRequest struct {
	Nome      string `json:"nome"`
	Sobrenome string `json:"sobrenome"`
	Email     string `json:"email"`
	Senha     string `json:"senha"`
}

type loteRequest struct {
	IDs   []uint `json:"ids"`
	Papel string `json:"papel,omitempty"`
}

// itemLote é o resultado por alvo das operações em lote: sem rollback, cada
// id é processado de forma independente.
type itemLote struct {
	ID   uint   `json:"id"`
	Erro string `json:"erro,omitempty"`
}

// Handler encapsula DB, repository e os serviços laterais.
type Handler struct {
	DB           *gorm.DB
	Repository   Repository
	Tokens       *auth.ServicoToken
	Notificacoes *notificacao.Servico
	Auditoria    *auditoria.Recorder
	Mailer       *mailer.Cliente
}

func NewHandler(db *gorm.DB, tokens *auth.ServicoToken, notif *notificacao.Servico, rec *auditoria.Recorder, correio *mailer.Cliente) *Handler {
	return &Handler{
		DB:           db,
		Repository:   NewRepository(),
		Tokens:       tokens,
		Notificacoes: notif,
		Auditoria:    rec,
		Mailer:       correio,
	}
}

// Login valida credenciais e emite o par de tokens. A resposta inclui o
// destino do painel conforme o papel. POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Email == "" || req.Senha == "" {
		utils.RespondErro(w, http.StatusBadRequest, "email e senha são obrigatórios")
		return
	}

	u, err := h.Repository.BuscarPorEmail(h.DB, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		utils.RespondErro(w, http.StatusUnauthorized, "credenciais inválidas")
		return
	}
	if !utils.VerificarSenha(u.Senha, req.Senha) {
		utils.RespondErro(w, http.StatusUnauthorized, "credenciais inválidas")
		return
	}

	access, err := h.Tokens.EmitirTokensNoLogin(w, u.ID, u.Email, u.Papel)
	if err != nil {
		// segredo ausente/placeholder é erro de configuração, não do cliente
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao iniciar sessão")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"token":    access,
		"papel":    u.Papel,
		"redirect": auth.RotaDoPainel(u.Papel),
	})
}

// Registrar cria contas públicas (SPONSOR ou VOLUNTEER, nunca ADMIN) e
// dispara a notificação de novo cadastro. POST /auth/register
func (h *Handler) Registrar(w http.ResponseWriter, r *http.Request) {
	var req criarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Papel == "" {
		req.Papel = auth.PapelVoluntario
	}
	if req.Papel == auth.PapelAdmin || !auth.PapelValido(req.Papel) {
		utils.RespondErro(w, http.StatusBadRequest, "papel inválido para cadastro público")
		return
	}

	u, err := h.criarUsuario(req)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Notificacoes.NotificarSemBloquear(
		"Novo cadastro",
		fmt.Sprintf("%s (%s) se cadastrou como %s", u.Nome, u.Email, u.Papel),
		notificacao.TipoInfo,
	)
	h.Mailer.BoasVindas(u.Nome, u.Email)

	access, err := h.Tokens.EmitirTokensNoLogin(w, u.ID, u.Email, u.Papel)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao iniciar sessão")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"token":    access,
		"papel":    u.Papel,
		"redirect": auth.RotaDoPainel(u.Papel),
	})
}

// criarUsuario concentra validação, regra de admin único e hash de senha.
func (h *Handler) criarUsuario(req criarUsuarioRequest) (*Usuario, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Nome == "" || req.Email == "" || len(req.Senha) < 6 {
		return nil, errors.New("nome, email e senha (mínimo 6 caracteres) são obrigatórios")
	}
	if !auth.PapelValido(req.Papel) {
		return nil, errors.New("papel inválido")
	}

	// No máximo um ADMIN no momento da criação.
	if req.Papel == auth.PapelAdmin {
		existe, err := h.Repository.ExisteAdmin(h.DB)
		if err != nil {
			return nil, errors.New("erro ao validar papel")
		}
		if existe {
			return nil, errors.New("já existe um administrador cadastrado")
		}
	}

	if _, err := h.Repository.BuscarPorEmail(h.DB, req.Email); err == nil {
		return nil, errors.New("email já cadastrado")
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		return nil, errors.New("erro ao processar senha")
	}

	u := &Usuario{
		Nome:      req.Nome,
		Sobrenome: req.Sobrenome,
		Email:     req.Email,
		Senha:     hash,
		Papel:     req.Papel,
	}
	if err := h.Repository.Criar(h.DB, u); err != nil {
		return nil, errors.New("erro ao criar usuário")
	}
	return u, nil
}

// Criar cadastra usuário pelo back office (qualquer papel, admin único
// continua valendo). POST /usuarios
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	u, err := h.criarUsuario(req)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "usuario",
		EntidadeID:     u.ID,
		Acao:           auditoria.AcaoCriar,
		ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
		Alteracoes:     map[string]string{"email": u.Email, "papel": u.Papel},
	})
	utils.RespondJSON(w, http.StatusCreated, u)
}

// Listar pagina os usuários. GET /usuarios
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	pagina, limite := utils.Paginacao(r)
	usuarios, total, err := h.Repository.Listar(h.DB, pagina, limite)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar usuários")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"itens": usuarios,
		"total": total,
		"page":  pagina,
		"limit": limite,
	})
}

// BuscarPorID devolve um usuário. GET /usuarios/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	u, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "usuário não encontrado")
		return
	}
	utils.RespondJSON(w, http.StatusOK, u)
}

// Atualizar altera dados básicos (e opcionalmente a senha). PUT /usuarios/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req atualizarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	u, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "usuário não encontrado")
		return
	}

	if req.Nome != "" {
		u.Nome = req.Nome
	}
	if req.Sobrenome != "" {
		u.Sobrenome = req.Sobrenome
	}
	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if outro, err := h.Repository.BuscarPorEmail(h.DB, email); err == nil && outro.ID != u.ID {
			utils.RespondErro(w, http.StatusBadRequest, "email já cadastrado")
			return
		}
		u.Email = email
	}
	if req.Senha != "" {
		hash, err := utils.HashSenha(req.Senha)
		if err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao processar senha")
			return
		}
		u.Senha = hash
	}
	if err := h.Repository.Salvar(h.DB, u); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar usuário")
		return
	}

	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "usuario",
		EntidadeID:     u.ID,
		Acao:           auditoria.AcaoAtualizar,
		ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
		Alteracoes:     req,
	})
	utils.RespondJSON(w, http.StatusOK, u)
}

// Deletar remove um usuário. DELETE /usuarios/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	if _, err := h.Repository.BuscarPorID(h.DB, id); err != nil {
		utils.RespondErro(w, http.StatusNotFound, "usuário não encontrado")
		return
	}
	if err := h.Repository.Deletar(h.DB, id); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao remover usuário")
		return
	}
	h.Auditoria.Registrar(auditoria.Entrada{
		Entidade:       "usuario",
		EntidadeID:     id,
		Acao:           auditoria.AcaoDeletar,
		ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
	})
	w.WriteHeader(http.StatusNoContent)
}

// LoteVerificar marca os ids como verificados, um a um; falhas são
// reportadas por item e os sucessos não são desfeitos.
// POST /usuarios/lote/verificar
func (h *Handler) LoteVerificar(w http.ResponseWriter, r *http.Request) {
	var req loteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
		utils.RespondErro(w, http.StatusBadRequest, "informe a lista de ids")
		return
	}
	h.executarLote(w, r, req, func(u *Usuario, _ loteRequest) {
		u.Verificado = true
	})
}

// LoteAlterarPapel troca o papel dos ids informados (nunca para ADMIN).
// POST /usuarios/lote/papel
func (h *Handler) LoteAlterarPapel(w http.ResponseWriter, r *http.Request) {
	var req loteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
		utils.RespondErro(w, http.StatusBadRequest, "informe a lista de ids")
		return
	}
	if req.Papel == "" || req.Papel == auth.PapelAdmin || !auth.PapelValido(req.Papel) {
		utils.RespondErro(w, http.StatusBadRequest, "papel inválido para operação em lote")
		return
	}
	h.executarLote(w, r, req, func(u *Usuario, req loteRequest) {
		u.Papel = req.Papel
	})
}

func (h *Handler) executarLote(w http.ResponseWriter, r *http.Request, req loteRequest, aplicar func(*Usuario, loteRequest)) {
	sucessos := 0
	var falhas []itemLote
	for _, id := range req.IDs {
		u, err := h.Repository.BuscarPorID(h.DB, id)
		if err != nil {
			falhas = append(falhas, itemLote{ID: id, Erro: "usuário não encontrado"})
			continue
		}
		aplicar(u, req)
		if err := h.Repository.Salvar(h.DB, u); err != nil {
			falhas = append(falhas, itemLote{ID: id, Erro: "erro ao salvar"})
			continue
		}
		sucessos++
		h.Auditoria.Registrar(auditoria.Entrada{
			Entidade:       "usuario",
			EntidadeID:     id,
			Acao:           auditoria.AcaoAtualizar,
			ExecutadoPorID: auth.UserIDDoContexto(r.Context()),
			Alteracoes:     req,
		})
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"sucessos": sucessos,
		"falhas":   falhas,
	})
}
