// internal/venda/dto.go
package venda

import (
	"time"

	"github.com/KromaEnergia/api-comissao/internal/overprice"
	"github.com/KromaEnergia/api-comissao/internal/parcela"
	"github.com/KromaEnergia/api-comissao/internal/valorpresente"
	"github.com/shopspring/decimal"
)

// LiquidacaoDTO é o corpo de POST /vendas e POST /vendas/simulacao.
//
// PrecoTabela, ComissaoPct e as alíquotas são opcionais: quando vêm preenchidos
// têm prioridade sobre a tabela de preços e sobre a tabela de ICMS.
type LiquidacaoDTO struct {
	VendedorID  uint       `json:"vendedorId"`
	NumeroNota  string     `json:"numeroNota"`
	DataEmissao *time.Time `json:"dataEmissao,omitempty"`
	CodigoItem  string     `json:"codigoItem"`

	PrecoTabela decimal.NullDecimal `json:"precoTabela"`
	ComissaoPct decimal.NullDecimal `json:"comissaoPct"`

	UFOrigem            string              `json:"ufOrigem"`
	UFDestino           string              `json:"ufDestino"`
	AliquotaIcmsOrigem  decimal.NullDecimal `json:"aliquotaIcmsOrigem"`
	AliquotaIcmsDestino decimal.NullDecimal `json:"aliquotaIcmsDestino"`

	ValorNota decimal.Decimal                   `json:"valorNota"`
	Pagamento valorpresente.CronogramaPagamento `json:"pagamento"`
}

// SimulacaoDTO é a resposta de POST /vendas/simulacao.
type SimulacaoDTO struct {
	Entrada        overprice.EntradaLiquidacao   `json:"entrada"`
	Resultado      overprice.ResultadoLiquidacao `json:"resultado"`
	MargemNegativa bool                          `json:"margemNegativa"`
	Parcelas       []parcela.Parcela             `json:"parcelas"`
}

// ResumoVendedorDTO agrega as vendas de um vendedor.
// ComissaoMediaPct é ponderada pelo valor de nota (comissão total / faturado * 100).
type ResumoVendedorDTO struct {
	VendedorID           uint            `json:"vendedorId"`
	QtdVendas            int             `json:"qtdVendas"`
	TotalFaturado        decimal.Decimal `json:"totalFaturado"`
	ComissaoTotal        decimal.Decimal `json:"comissaoTotal"`
	ComissaoMediaPct     decimal.Decimal `json:"comissaoMediaPct"`
	VendasMargemNegativa int             `json:"vendasMargemNegativa"`
}
