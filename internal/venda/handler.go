// internal/venda/handler.go
package venda

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/KromaEnergia/api-comissao/internal/icms"
	"github.com/KromaEnergia/api-comissao/internal/logger"
	"github.com/KromaEnergia/api-comissao/internal/organizacao"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var um = decimal.NewFromInt(1)

// Handler gerencia as rotas de vendas.
type Handler struct {
	Service *Service
	// ValidarUFEstrita recusa UFs fora da tabela em vez de cair na alíquota padrão.
	ValidarUFEstrita bool
}

func NewHandler(svc *Service, validarUFEstrita bool) *Handler {
	return &Handler{Service: svc, ValidarUFEstrita: validarUFEstrita}
}

func escreverJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func naoNegativo(d decimal.Decimal, campo string) error {
	if d.IsNegative() {
		return errors.Errorf("%s não pode ser negativo", campo)
	}
	return nil
}

// validar confere o DTO antes de chegar ao cálculo, que aceita qualquer número.
func (h *Handler) validar(dto LiquidacaoDTO) error {
	if !dto.Pagamento.Tipo.Valido() {
		return errors.New("tipoPagamento inválido. Use 'avista', 'parcelado_boleto' ou 'parcelado_cartao'")
	}
	if dto.Pagamento.QtdParcelas < 0 {
		return errors.New("qtdParcelas não pode ser negativo")
	}

	checagens := []struct {
		valor decimal.Decimal
		campo string
	}{
		{dto.ValorNota, "valorNota"},
		{dto.Pagamento.ValorEntrada, "valorEntrada"},
		{dto.Pagamento.ValorParcela, "valorParcela"},
		{dto.PrecoTabela.Decimal, "precoTabela"},
	}
	for _, c := range checagens {
		if err := naoNegativo(c.valor, c.campo); err != nil {
			return err
		}
	}

	if dto.ComissaoPct.Valid && (dto.ComissaoPct.Decimal.IsNegative() || dto.ComissaoPct.Decimal.GreaterThan(cem)) {
		return errors.New("comissaoPct deve estar entre 0 e 100")
	}
	for _, a := range []decimal.NullDecimal{dto.AliquotaIcmsOrigem, dto.AliquotaIcmsDestino} {
		if a.Valid && (a.Decimal.IsNegative() || a.Decimal.GreaterThan(um)) {
			return errors.New("alíquota de ICMS deve estar entre 0 e 1")
		}
	}

	if h.ValidarUFEstrita {
		for _, uf := range []string{dto.UFOrigem, dto.UFDestino} {
			if strings.TrimSpace(uf) != "" && !icms.UFValida(uf) {
				return errors.Errorf("UF desconhecida: %s", uf)
			}
		}
	}
	return nil
}

func (h *Handler) lerLiquidacao(w http.ResponseWriter, r *http.Request, exigirVendedor bool) (uint, LiquidacaoDTO, bool) {
	var dto LiquidacaoDTO
	orgID, ok := organizacao.DoContexto(r.Context())
	if !ok {
		http.Error(w, "Organização não informada", http.StatusBadRequest)
		return 0, dto, false
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return 0, dto, false
	}
	if err := h.validar(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, dto, false
	}
	if exigirVendedor && dto.VendedorID == 0 {
		http.Error(w, "vendedorId é obrigatório", http.StatusBadRequest)
		return 0, dto, false
	}
	return orgID, dto, true
}

func (h *Handler) erroLiquidacao(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPrecoNaoInformado):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrItemNaoEncontrado):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		logger.Error("Erro ao liquidar venda", zap.Error(err))
		http.Error(w, "Erro ao calcular comissão", http.StatusInternalServerError)
	}
}

// POST /vendas/simulacao
func (h *Handler) Simular(w http.ResponseWriter, r *http.Request) {
	orgID, dto, ok := h.lerLiquidacao(w, r, false)
	if !ok {
		return
	}
	sim, err := h.Service.Simular(r.Context(), orgID, dto)
	if err != nil {
		h.erroLiquidacao(w, err)
		return
	}
	escreverJSON(w, http.StatusOK, sim)
}

// POST /vendas
func (h *Handler) Registrar(w http.ResponseWriter, r *http.Request) {
	orgID, dto, ok := h.lerLiquidacao(w, r, true)
	if !ok {
		return
	}
	v, err := h.Service.Registrar(r.Context(), orgID, dto)
	if err != nil {
		h.erroLiquidacao(w, err)
		return
	}
	escreverJSON(w, http.StatusCreated, v)
}

// GET /vendas?vendedorId=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizacao.DoContexto(r.Context())
	if !ok {
		http.Error(w, "Organização não informada", http.StatusBadRequest)
		return
	}

	var vendedorID uint64
	if raw := r.URL.Query().Get("vendedorId"); raw != "" {
		var err error
		if vendedorID, err = strconv.ParseUint(raw, 10, 64); err != nil {
			http.Error(w, "vendedorId inválido", http.StatusBadRequest)
			return
		}
	}

	vendas, err := h.Service.Listar(r.Context(), orgID, uint(vendedorID))
	if err != nil {
		logger.Error("Erro ao listar vendas", zap.Error(err))
		http.Error(w, "Erro ao buscar vendas", http.StatusInternalServerError)
		return
	}
	escreverJSON(w, http.StatusOK, vendas)
}

func idDaRota(r *http.Request, nome string) (uint, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[nome])
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// GET /vendas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizacao.DoContexto(r.Context())
	if !ok {
		http.Error(w, "Organização não informada", http.StatusBadRequest)
		return
	}
	id, ok := idDaRota(r, "id")
	if !ok {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}

	v, err := h.Service.BuscarPorID(r.Context(), orgID, id)
	if errors.Is(err, ErrNaoEncontrada) {
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("Erro ao buscar venda", zap.Uint("venda_id", id), zap.Error(err))
		http.Error(w, "Erro ao buscar venda", http.StatusInternalServerError)
		return
	}
	escreverJSON(w, http.StatusOK, v)
}

// DELETE /vendas/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizacao.DoContexto(r.Context())
	if !ok {
		http.Error(w, "Organização não informada", http.StatusBadRequest)
		return
	}
	id, ok := idDaRota(r, "id")
	if !ok {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}

	err := h.Service.Remover(r.Context(), orgID, id)
	if errors.Is(err, ErrNaoEncontrada) {
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("Erro ao deletar venda", zap.Uint("venda_id", id), zap.Error(err))
		http.Error(w, "Erro ao deletar venda", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /vendedores/{id}/resumo
func (h *Handler) ResumoVendedor(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizacao.DoContexto(r.Context())
	if !ok {
		http.Error(w, "Organização não informada", http.StatusBadRequest)
		return
	}
	vendedorID, ok := idDaRota(r, "id")
	if !ok {
		http.Error(w, "ID do vendedor inválido", http.StatusBadRequest)
		return
	}

	resumo, err := h.Service.ResumoPorVendedor(r.Context(), orgID, vendedorID)
	if err != nil {
		logger.Error("Erro ao montar resumo do vendedor", zap.Uint("vendedor_id", vendedorID), zap.Error(err))
		http.Error(w, "Erro ao montar resumo", http.StatusInternalServerError)
		return
	}
	escreverJSON(w, http.StatusOK, resumo)
}
