// internal/tabelapreco/handler.go
package tabelapreco

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/KromaEnergia/api-comissao/internal/logger"
	"github.com/KromaEnergia/api-comissao/internal/organizacao"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	Repo Repositorio
}

func NewHandler(repo Repositorio) *Handler {
	return &Handler{Repo: repo}
}

func escreverJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// POST /tabela-precos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizacao.DoContexto(r.Context())
	if !ok {
		http.Error(w, "Organização não informada", http.StatusBadRequest)
		return
	}

	var dto ItemTabelaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := dto.validar(true); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item := ItemTabela{
		OrganizacaoID: orgID,
		Codigo:        strings.TrimSpace(dto.Codigo),
		Ativo:         true,
	}
	dto.aplicar(&item)

	err := h.Repo.Criar(r.Context(), &item)
	if errors.Is(err, ErrCodigoDuplicado) {
		http.Error(w, "Código já cadastrado", http.StatusConflict)
		return
	}
	if err != nil {
		logger.Error("Erro ao criar item de tabela", zap.Uint("organizacao_id", orgID), zap.Error(err))
		http.Error(w, "Erro ao criar item de tabela", http.StatusInternalServerError)
		return
	}

	escreverJSON(w, http.StatusCreated, item)
}

// GET /tabela-precos
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizacao.DoContexto(r.Context())
	if !ok {
		http.Error(w, "Organização não informada", http.StatusBadRequest)
		return
	}

	itens, err := h.Repo.ListarPorOrganizacao(r.Context(), orgID)
	if err != nil {
		logger.Error("Erro ao listar tabela de preços", zap.Uint("organizacao_id", orgID), zap.Error(err))
		http.Error(w, "Erro ao listar tabela de preços", http.StatusInternalServerError)
		return
	}
	escreverJSON(w, http.StatusOK, itens)
}

// buscar resolve o {id} da rota dentro da organização do contexto
func (h *Handler) buscar(w http.ResponseWriter, r *http.Request) (*ItemTabela, bool) {
	orgID, ok := organizacao.DoContexto(r.Context())
	if !ok {
		http.Error(w, "Organização não informada", http.StatusBadRequest)
		return nil, false
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		http.Error(w, "ID do item inválido", http.StatusBadRequest)
		return nil, false
	}

	item, err := h.Repo.BuscarPorID(r.Context(), orgID, uint(id))
	if errors.Is(err, ErrNaoEncontrado) {
		http.Error(w, "Item não encontrado", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		logger.Error("Erro ao buscar item de tabela", zap.Int("id", id), zap.Error(err))
		http.Error(w, "Erro ao buscar item", http.StatusInternalServerError)
		return nil, false
	}
	return item, true
}

// GET /tabela-precos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	item, ok := h.buscar(w, r)
	if !ok {
		return
	}
	escreverJSON(w, http.StatusOK, item)
}

// PUT /tabela-precos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	item, ok := h.buscar(w, r)
	if !ok {
		return
	}

	var dto ItemTabelaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := dto.validar(false); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dto.aplicar(item)
	if err := h.Repo.Atualizar(r.Context(), item); err != nil {
		logger.Error("Erro ao atualizar item de tabela", zap.Uint("id", item.ID), zap.Error(err))
		http.Error(w, "Erro ao atualizar item", http.StatusInternalServerError)
		return
	}
	escreverJSON(w, http.StatusOK, item)
}

// DELETE /tabela-precos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	item, ok := h.buscar(w, r)
	if !ok {
		return
	}
	if err := h.Repo.Deletar(r.Context(), item); err != nil {
		logger.Error("Erro ao deletar item de tabela", zap.Uint("id", item.ID), zap.Error(err))
		http.Error(w, "Erro ao deletar item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
