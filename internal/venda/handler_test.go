package venda

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KromaEnergia/api-comissao/internal/organizacao"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corpoAVista = `{
	"vendedorId": 3,
	"numeroNota": "000123",
	"precoTabela": "20000",
	"comissaoPct": "8",
	"ufOrigem": "SP",
	"ufDestino": "RJ",
	"valorNota": "22000",
	"pagamento": {"tipoPagamento": "avista"}
}`

func requisicao(method, body string, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req = req.WithContext(organizacao.ComID(req.Context(), org))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func TestHandler_SimularValidacao(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		estrita bool
		status  int
	}{
		{name: "ok", body: corpoAVista, status: http.StatusOK},
		{name: "json quebrado", body: `{`, status: http.StatusBadRequest},
		{name: "tipo desconhecido", body: `{"precoTabela":"1","comissaoPct":"1","valorNota":"1","pagamento":{"tipoPagamento":"pix"}}`, status: http.StatusBadRequest},
		{name: "valor negativo", body: `{"precoTabela":"1","comissaoPct":"1","valorNota":"-1","pagamento":{"tipoPagamento":"avista"}}`, status: http.StatusBadRequest},
		{name: "parcela negativa", body: `{"precoTabela":"1","comissaoPct":"1","valorNota":"1","pagamento":{"tipoPagamento":"parcelado_boleto","valorParcela":"-5","qtdParcelas":2}}`, status: http.StatusBadRequest},
		{name: "quantidade negativa", body: `{"precoTabela":"1","comissaoPct":"1","valorNota":"1","pagamento":{"tipoPagamento":"parcelado_cartao","qtdParcelas":-1}}`, status: http.StatusBadRequest},
		{name: "comissao acima de 100", body: `{"precoTabela":"1","comissaoPct":"150","valorNota":"1","pagamento":{"tipoPagamento":"avista"}}`, status: http.StatusBadRequest},
		{name: "aliquota acima de 1", body: `{"precoTabela":"1","comissaoPct":"1","aliquotaIcmsDestino":"12","valorNota":"1","pagamento":{"tipoPagamento":"avista"}}`, status: http.StatusBadRequest},
		{name: "uf desconhecida sem validacao estrita", body: `{"precoTabela":"1","comissaoPct":"1","ufDestino":"XX","valorNota":"1","pagamento":{"tipoPagamento":"avista"}}`, status: http.StatusOK},
		{name: "uf desconhecida com validacao estrita", body: `{"precoTabela":"1","comissaoPct":"1","ufDestino":"XX","valorNota":"1","pagamento":{"tipoPagamento":"avista"}}`, estrita: true, status: http.StatusBadRequest},
		{name: "sem preco nem item", body: `{"valorNota":"1","pagamento":{"tipoPagamento":"avista"}}`, status: http.StatusBadRequest},
		{name: "item inexistente", body: `{"codigoItem":"NOPE","valorNota":"1","pagamento":{"tipoPagamento":"avista"}}`, status: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(novoAmbiente().svc, tt.estrita)
			w := httptest.NewRecorder()
			h.Simular(w, requisicao(http.MethodPost, tt.body, nil))
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestHandler_SimularResposta(t *testing.T) {
	h := NewHandler(novoAmbiente().svc, false)
	w := httptest.NewRecorder()
	h.Simular(w, requisicao(http.MethodPost, corpoAVista, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var sim SimulacaoDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sim))
	assertDecimal(t, "2654.152", sim.Resultado.ComissaoTotal, "comissaoTotal")
	assertDecimal(t, "22000", sim.Entrada.ValorFaturadoNota, "valorFaturadoNota")
}

func TestHandler_RegistrarEBuscar(t *testing.T) {
	a := novoAmbiente()
	h := NewHandler(a.svc, false)

	w := httptest.NewRecorder()
	h.Registrar(w, requisicao(http.MethodPost, corpoAVista, nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var criada Venda
	require.NoError(t, json.NewDecoder(w.Body).Decode(&criada))
	assert.Equal(t, uint(1), criada.ID)

	w = httptest.NewRecorder()
	h.BuscarPorID(w, requisicao(http.MethodGet, "", map[string]string{"id": "1"}))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.BuscarPorID(w, requisicao(http.MethodGet, "", map[string]string{"id": "99"}))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.Deletar(w, requisicao(http.MethodDelete, "", map[string]string{"id": "1"}))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	h.Deletar(w, requisicao(http.MethodDelete, "", map[string]string{"id": "1"}))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_RegistrarExigeVendedor(t *testing.T) {
	h := NewHandler(novoAmbiente().svc, false)
	body := strings.Replace(corpoAVista, `"vendedorId": 3,`, "", 1)

	w := httptest.NewRecorder()
	h.Registrar(w, requisicao(http.MethodPost, body, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_RegistrarNotaPequena(t *testing.T) {
	h := NewHandler(novoAmbiente().svc, true)
	body := strings.NewReplacer(`"valorNota": "22000"`, `"valorNota": "1"`, `"ufDestino": "RJ"`, `"ufDestino": "SP"`).Replace(corpoAVista)

	w := httptest.NewRecorder()
	h.Registrar(w, requisicao(http.MethodPost, body, nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var criada Venda
	require.NoError(t, json.NewDecoder(w.Body).Decode(&criada))
	assert.True(t, criada.MargemNegativa)
	assert.Equal(t, "-1839900", criada.ComissaoFinalPct.String())
}

func TestHandler_ListarFiltraVendedor(t *testing.T) {
	a := novoAmbiente()
	h := NewHandler(a.svc, false)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		h.Registrar(w, requisicao(http.MethodPost, corpoAVista, nil))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req := requisicao(http.MethodGet, "", nil)
	req.URL.RawQuery = "vendedorId=3"
	w := httptest.NewRecorder()
	h.Listar(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var vendas []Venda
	require.NoError(t, json.NewDecoder(w.Body).Decode(&vendas))
	assert.Len(t, vendas, 2)

	req = requisicao(http.MethodGet, "", nil)
	req.URL.RawQuery = "vendedorId=abc"
	w = httptest.NewRecorder()
	h.Listar(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ResumoVendedor(t *testing.T) {
	a := novoAmbiente()
	h := NewHandler(a.svc, false)
	w := httptest.NewRecorder()
	h.Registrar(w, requisicao(http.MethodPost, corpoAVista, nil))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	h.ResumoVendedor(w, requisicao(http.MethodGet, "", map[string]string{"id": "3"}))
	require.Equal(t, http.StatusOK, w.Code)

	var resumo ResumoVendedorDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resumo))
	assert.Equal(t, 1, resumo.QtdVendas)
	assertDecimal(t, "12.0643", resumo.ComissaoMediaPct, "comissaoMediaPct")

	w = httptest.NewRecorder()
	h.ResumoVendedor(w, requisicao(http.MethodGet, "", map[string]string{"id": "0"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_SemOrganizacao(t *testing.T) {
	h := NewHandler(novoAmbiente().svc, false)
	w := httptest.NewRecorder()
	h.Simular(w, httptest.NewRequest(http.MethodPost, "/vendas/simulacao", strings.NewReader(corpoAVista)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
