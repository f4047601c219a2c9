package valorpresente

import "github.com/shopspring/decimal"

// CronogramaPagamento descreve como a venda será paga.
type CronogramaPagamento struct {
	Tipo         TipoPagamento   `json:"tipoPagamento"`
	ValorEntrada decimal.Decimal `json:"valorEntrada"`
	ValorParcela decimal.Decimal `json:"valorParcela"`
	QtdParcelas  int             `json:"qtdParcelas"`
}

// Normalizar garante que uma venda à vista não carregue parcelas
// e que quantidades negativas virem zero.
func (c CronogramaPagamento) Normalizar() CronogramaPagamento {
	if c.Tipo == AVista {
		c.QtdParcelas = 0
		c.ValorParcela = decimal.Zero
		return c
	}
	if c.QtdParcelas < 0 {
		c.QtdParcelas = 0
	}
	return c
}

// TotalNominal soma entrada e parcelas sem desconto.
func (c CronogramaPagamento) TotalNominal() decimal.Decimal {
	c = c.Normalizar()
	return c.ValorEntrada.Add(c.ValorParcela.Mul(decimal.NewFromInt(int64(c.QtdParcelas))))
}

// ValorEfetivo aplica ValorEfetivoVenda ao cronograma.
func (c CronogramaPagamento) ValorEfetivo(valorNota decimal.Decimal) decimal.Decimal {
	c = c.Normalizar()
	return ValorEfetivoVenda(c.Tipo, valorNota, c.ValorEntrada, c.ValorParcela, c.QtdParcelas)
}
