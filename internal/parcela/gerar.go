package parcela

import (
	"time"

	"github.com/KromaEnergia/api-comissao/internal/valorpresente"
	"github.com/shopspring/decimal"
)

// GerarParcelas expande o cronograma em linhas de recebimento.
//
// A entrada (se houver) vence na emissão e não sofre desconto. A parcela i
// vence i meses depois e é descontada por 1/(1+taxa)^i, de modo que a soma
// dos valores descontados das mensais bate com valorpresente.ValorPresente.
func GerarParcelas(c valorpresente.CronogramaPagamento, dataEmissao time.Time) []Parcela {
	c = c.Normalizar()
	taxa := valorpresente.TaxaMensal(c.Tipo)

	parcelas := make([]Parcela, 0, c.QtdParcelas+1)
	if c.ValorEntrada.GreaterThan(decimal.Zero) {
		parcelas = append(parcelas, Parcela{
			Numero:          0,
			Valor:           c.ValorEntrada,
			ValorDescontado: c.ValorEntrada,
			DataVencimento:  dataEmissao,
			Status:          StatusPendente,
		})
	}
	for i := 1; i <= c.QtdParcelas; i++ {
		parcelas = append(parcelas, Parcela{
			Numero:          i,
			Valor:           c.ValorParcela,
			ValorDescontado: c.ValorParcela.Mul(valorpresente.FatorDesconto(taxa, i)),
			DataVencimento:  dataEmissao.AddDate(0, i, 0),
			Status:          StatusPendente,
		})
	}
	return parcelas
}

// TotalDescontado soma os valores descontados das parcelas.
func TotalDescontado(parcelas []Parcela) decimal.Decimal {
	total := decimal.Zero
	for _, p := range parcelas {
		total = total.Add(p.ValorDescontado)
	}
	return total
}
