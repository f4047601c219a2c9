// internal/overprice/calculo.go
package overprice

import (
	"github.com/shopspring/decimal"
)

var (
	aliquotaPisCofins = decimal.NewFromFloat(0.0925)
	aliquotaIrCsll    = decimal.NewFromFloat(0.34)

	// diferenças de alíquota até esta tolerância são tratadas como iguais
	toleranciaAliquota = decimal.NewFromFloat(0.001)

	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// AliquotaPisCofins incide sobre o over price já descontado do ICMS.
func AliquotaPisCofins() decimal.Decimal { return aliquotaPisCofins }

// AliquotaIrCsll incide sobre o saldo após PIS/COFINS.
func AliquotaIrCsll() decimal.Decimal { return aliquotaIrCsll }

// EntradaLiquidacao reúne os valores necessários para liquidar a comissão de uma venda.
//
// ValorRealFaturado é o valor trazido a valor presente (base do over price);
// ValorFaturadoNota é o total bruto da nota (base do percentual final).
type EntradaLiquidacao struct {
	ValorRealFaturado   decimal.Decimal `json:"valorRealFaturado"`
	ValorFaturadoNota   decimal.Decimal `json:"valorFaturadoNota"`
	PrecoTabela         decimal.Decimal `json:"precoTabela"`
	ComissaoPct         decimal.Decimal `json:"comissaoPct"`
	AliquotaIcmsOrigem  decimal.Decimal `json:"aliquotaIcmsOrigem"`
	AliquotaIcmsDestino decimal.Decimal `json:"aliquotaIcmsDestino"`
}

// ResultadoLiquidacao é o resultado completo do cálculo; nunca é devolvido parcialmente.
type ResultadoLiquidacao struct {
	PrecoTabelaAjustado decimal.Decimal `json:"precoTabelaAjustado"`
	OverPrice           decimal.Decimal `json:"overPrice"`
	DeducaoIcms         decimal.Decimal `json:"deducaoIcms"`
	DeducaoPisCofins    decimal.Decimal `json:"deducaoPisCofins"`
	DeducaoIrCsll       decimal.Decimal `json:"deducaoIrCsll"`
	OverPriceLiquido    decimal.Decimal `json:"overPriceLiquido"`
	ComissaoPedido      decimal.Decimal `json:"comissaoPedido"`
	ComissaoTotal       decimal.Decimal `json:"comissaoTotal"`
	ComissaoFinalPct    decimal.Decimal `json:"comissaoFinalPct"`
}

// MargemNegativa indica que a venda saiu abaixo do preço de tabela ajustado.
func (r ResultadoLiquidacao) MargemNegativa() bool {
	return r.OverPrice.LessThanOrEqual(decimal.Zero)
}

// Arredondado devolve uma cópia com todos os campos arredondados em `casas` decimais.
func (r ResultadoLiquidacao) Arredondado(casas int32) ResultadoLiquidacao {
	return ResultadoLiquidacao{
		PrecoTabelaAjustado: r.PrecoTabelaAjustado.Round(casas),
		OverPrice:           r.OverPrice.Round(casas),
		DeducaoIcms:         r.DeducaoIcms.Round(casas),
		DeducaoPisCofins:    r.DeducaoPisCofins.Round(casas),
		DeducaoIrCsll:       r.DeducaoIrCsll.Round(casas),
		OverPriceLiquido:    r.OverPriceLiquido.Round(casas),
		ComissaoPedido:      r.ComissaoPedido.Round(casas),
		ComissaoTotal:       r.ComissaoTotal.Round(casas),
		ComissaoFinalPct:    r.ComissaoFinalPct.Round(casas),
	}
}

// etapaDeducao é um passo da cascata: desconta uma alíquota do saldo e grava o valor deduzido.
type etapaDeducao struct {
	aliquota func(in EntradaLiquidacao) decimal.Decimal
	campo    func(r *ResultadoLiquidacao) *decimal.Decimal
}

// A ordem importa: cada etapa incide sobre o que sobrou da anterior.
var cascata = []etapaDeducao{
	{
		aliquota: func(in EntradaLiquidacao) decimal.Decimal { return in.AliquotaIcmsDestino },
		campo:    func(r *ResultadoLiquidacao) *decimal.Decimal { return &r.DeducaoIcms },
	},
	{
		aliquota: func(EntradaLiquidacao) decimal.Decimal { return aliquotaPisCofins },
		campo:    func(r *ResultadoLiquidacao) *decimal.Decimal { return &r.DeducaoPisCofins },
	},
	{
		aliquota: func(EntradaLiquidacao) decimal.Decimal { return aliquotaIrCsll },
		campo:    func(r *ResultadoLiquidacao) *decimal.Decimal { return &r.DeducaoIrCsll },
	},
}

func aplicarDeducao(saldo, aliquota decimal.Decimal) (deducao, restante decimal.Decimal) {
	deducao = saldo.Mul(aliquota)
	return deducao, saldo.Sub(deducao)
}

// AjustarPrecoTabela rebaseia o preço de tabela do ICMS de origem para o de destino.
// Alíquotas iguais (dentro da tolerância) ou origem zerada mantêm o preço.
func AjustarPrecoTabela(precoTabela, origem, destino decimal.Decimal) decimal.Decimal {
	if origem.Sub(destino).Abs().LessThanOrEqual(toleranciaAliquota) || origem.IsZero() {
		return precoTabela
	}
	divisor := one.Sub(origem)
	if divisor.LessThanOrEqual(decimal.Zero) {
		return precoTabela
	}
	return precoTabela.Div(divisor).Mul(one.Sub(destino))
}

// Calcular executa a liquidação de over price e comissão de uma venda.
func Calcular(in EntradaLiquidacao) ResultadoLiquidacao {
	res := ResultadoLiquidacao{
		DeducaoIcms:      decimal.Zero,
		DeducaoPisCofins: decimal.Zero,
		DeducaoIrCsll:    decimal.Zero,
	}

	// 1) preço de tabela com ICMS do destino
	res.PrecoTabelaAjustado = AjustarPrecoTabela(in.PrecoTabela, in.AliquotaIcmsOrigem, in.AliquotaIcmsDestino)

	// 2) over price
	res.OverPrice = in.ValorRealFaturado.Sub(res.PrecoTabelaAjustado)

	// 3/4) impostos só incidem sobre margem positiva; margem negativa passa integral
	if res.OverPrice.GreaterThan(decimal.Zero) {
		saldo := res.OverPrice
		for _, etapa := range cascata {
			var deducao decimal.Decimal
			deducao, saldo = aplicarDeducao(saldo, etapa.aliquota(in))
			*etapa.campo(&res) = deducao
		}
		res.OverPriceLiquido = saldo
	} else {
		res.OverPriceLiquido = res.OverPrice
	}

	// 5) comissão do pedido sobre o preço de tabela nominal
	res.ComissaoPedido = in.ComissaoPct.Div(hundred).Mul(in.PrecoTabela)

	// 6) comissão total
	res.ComissaoTotal = res.ComissaoPedido.Add(res.OverPriceLiquido)

	// 7) percentual final sobre o valor bruto da nota
	res.ComissaoFinalPct = decimal.Zero
	if in.ValorFaturadoNota.GreaterThan(decimal.Zero) {
		res.ComissaoFinalPct = res.ComissaoTotal.Div(in.ValorFaturadoNota).Mul(hundred)
	}

	return res
}
