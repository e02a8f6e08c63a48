package utils

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// RespondJSON escreve o corpo como JSON com o status informado.
func RespondJSON(w http.ResponseWriter, status int, corpo any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if corpo != nil {
		_ = json.NewEncoder(w).Encode(corpo)
	}
}

// RespondErro padroniza o envelope de erro da API: {"error": ..., "details": ...}.
func RespondErro(w http.ResponseWriter, status int, mensagem string, detalhes ...string) {
	corpo := map[string]any{"error": mensagem}
	if len(detalhes) > 0 {
		corpo["details"] = detalhes[0]
	}
	RespondJSON(w, status, corpo)
}

// IDDaRota extrai o parâmetro {id} da rota como uint.
func IDDaRota(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// Paginacao lê ?page= e ?limit= com limites sensatos.
func Paginacao(r *http.Request) (pagina, limite int) {
	pagina, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if pagina < 1 {
		pagina = 1
	}
	limite, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limite < 1 || limite > 100 {
		limite = 20
	}
	return pagina, limite
}
