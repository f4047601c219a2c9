package parcela

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/KromaEnergia/api-comissao/internal/logger"
	"github.com/KromaEnergia/api-comissao/internal/organizacao"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	Repo  Repositorio
	agora func() time.Time
}

func NewHandler(repo Repositorio) *Handler {
	return &Handler{Repo: repo, agora: time.Now}
}

// GET /vendas/{id}/parcelas
func (h *Handler) ListarPorVenda(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizacao.DoContexto(r.Context())
	if !ok {
		http.Error(w, "Organização não informada", http.StatusBadRequest)
		return
	}
	vendaID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || vendaID <= 0 {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}

	parcelas, err := h.Repo.ListarPorVenda(r.Context(), orgID, uint(vendaID))
	if err != nil {
		logger.Error("Erro ao buscar parcelas", zap.Int("venda_id", vendaID), zap.Error(err))
		http.Error(w, "Erro ao buscar parcelas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(parcelas)
}

// PATCH /parcelas/{pid}/status
// Permite: "Pendente", "Pago", "Cancelada". Uma parcela já "Pago" não é rebaixada.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizacao.DoContexto(r.Context())
	if !ok {
		http.Error(w, "Organização não informada", http.StatusBadRequest)
		return
	}
	pid, err := strconv.Atoi(mux.Vars(r)["pid"])
	if err != nil || pid <= 0 {
		http.Error(w, "ID da parcela inválido", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	atual, err := h.Repo.BuscarPorID(r.Context(), orgID, uint(pid))
	if errors.Is(err, ErrNaoEncontrada) {
		http.Error(w, "Parcela não encontrada", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("Erro ao buscar parcela", zap.Int("parcela_id", pid), zap.Error(err))
		http.Error(w, "Erro ao buscar parcela", http.StatusInternalServerError)
		return
	}

	if err := ValidarTransicao(atual.Status, payload.Status); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Repo.AtualizarStatus(r.Context(), atual.ID, payload.Status, h.agora()); err != nil {
		logger.Error("Erro ao atualizar status da parcela", zap.Int("parcela_id", pid), zap.Error(err))
		http.Error(w, "Erro ao atualizar status da parcela", http.StatusInternalServerError)
		return
	}

	parcela, err := h.Repo.BuscarPorID(r.Context(), orgID, atual.ID)
	if err != nil {
		http.Error(w, "Erro ao buscar parcela atualizada", http.StatusInternalServerError)
		return
	}

	logger.Info("Status de parcela atualizado",
		zap.Uint("parcela_id", parcela.ID),
		zap.String("de", atual.Status),
		zap.String("para", parcela.Status),
	)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(parcela)
}
