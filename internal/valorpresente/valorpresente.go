// internal/valorpresente/valorpresente.go
package valorpresente

import (
	"github.com/shopspring/decimal"
)

// TipoPagamento identifica a forma de pagamento de uma venda.
type TipoPagamento string

const (
	AVista          TipoPagamento = "avista"
	ParceladoBoleto TipoPagamento = "parcelado_boleto"
	ParceladoCartao TipoPagamento = "parcelado_cartao"
)

var (
	// Juros mensais usados para trazer as parcelas a valor presente.
	TaxaMensalBoleto = decimal.NewFromFloat(0.022)
	TaxaMensalCartao = decimal.NewFromFloat(0.035)

	one = decimal.NewFromInt(1)
)

// Valido informa se o tipo é um dos tipos conhecidos.
func (t TipoPagamento) Valido() bool {
	switch t {
	case AVista, ParceladoBoleto, ParceladoCartao:
		return true
	}
	return false
}

// TaxaMensal retorna os juros mensais da forma de pagamento.
// À vista e tipos desconhecidos não têm desconto (taxa zero).
func TaxaMensal(tipo TipoPagamento) decimal.Decimal {
	switch tipo {
	case ParceladoBoleto:
		return TaxaMensalBoleto
	case ParceladoCartao:
		return TaxaMensalCartao
	default:
		return decimal.Zero
	}
}

// ValorPresente desconta uma série de parcelas iguais pela fórmula de
// anuidade postecipada: PV = parcela * (1 - (1+i)^-n) / i.
//
// Sem parcelas o resultado é zero; com taxa zero (ou negativa) não há
// desconto e o resultado é parcela * n.
func ValorPresente(valorParcela decimal.Decimal, qtdParcelas int, taxaMensal decimal.Decimal) decimal.Decimal {
	if qtdParcelas <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(qtdParcelas))
	if taxaMensal.LessThanOrEqual(decimal.Zero) {
		return valorParcela.Mul(n)
	}

	fator := one.Add(taxaMensal).Pow(n)
	descontado := one.Sub(one.Div(fator))
	return valorParcela.Mul(descontado).Div(taxaMensal)
}

// FatorDesconto retorna 1/(1+i)^periodo, usado para descontar uma única parcela.
func FatorDesconto(taxaMensal decimal.Decimal, periodo int) decimal.Decimal {
	if periodo <= 0 || taxaMensal.LessThanOrEqual(decimal.Zero) {
		return one
	}
	return one.Div(one.Add(taxaMensal).Pow(decimal.NewFromInt(int64(periodo))))
}

// ValorEfetivoVenda é o valor "real" da venda usado no cálculo de over price.
// À vista devolve o valor da nota; parcelado devolve entrada + valor presente das parcelas.
// O valor da nota continua sendo a base do percentual final de comissão.
func ValorEfetivoVenda(
	tipo TipoPagamento,
	valorNota decimal.Decimal,
	valorEntrada decimal.Decimal,
	valorParcela decimal.Decimal,
	qtdParcelas int,
) decimal.Decimal {
	if tipo == AVista {
		return valorNota
	}
	return valorEntrada.Add(ValorPresente(valorParcela, qtdParcelas, TaxaMensal(tipo)))
}
