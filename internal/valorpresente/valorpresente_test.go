package valorpresente

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTaxaMensal(t *testing.T) {
	tests := []struct {
		tipo TipoPagamento
		want decimal.Decimal
	}{
		{AVista, decimal.Zero},
		{ParceladoBoleto, dec("0.022")},
		{ParceladoCartao, dec("0.035")},
		{TipoPagamento("pix"), decimal.Zero},
		{TipoPagamento(""), decimal.Zero},
	}
	for _, tt := range tests {
		t.Run(string(tt.tipo), func(t *testing.T) {
			assert.True(t, tt.want.Equal(TaxaMensal(tt.tipo)))
		})
	}
}

func TestValorPresente_SemParcelas(t *testing.T) {
	for _, n := range []int{0, -1, -12} {
		got := ValorPresente(dec("1000"), n, dec("0.022"))
		assert.True(t, got.IsZero(), "n=%d obtido %s", n, got)
	}
}

func TestValorPresente_TaxaZero(t *testing.T) {
	tests := []struct {
		parcela string
		n       int
		taxa    string
		want    string
	}{
		{"1000", 12, "0", "12000"},
		{"333.33", 3, "0", "999.99"},
		{"250", 4, "-0.01", "1000"},
	}
	for _, tt := range tests {
		got := ValorPresente(dec(tt.parcela), tt.n, dec(tt.taxa))
		assert.True(t, dec(tt.want).Equal(got), "esperado %s, obtido %s", tt.want, got)
	}
}

func TestValorPresente_Boleto12x(t *testing.T) {
	got := ValorPresente(dec("1000"), 12, dec("0.022"))

	assert.True(t, got.LessThan(dec("12000")))
	assert.Equal(t, "10446.60", got.StringFixed(2))
}

func TestValorPresente_Cartao12x(t *testing.T) {
	got := ValorPresente(dec("1000"), 12, dec("0.035"))
	assert.Equal(t, "9663.33", got.StringFixed(2))

	// juros maiores descontam mais
	boleto := ValorPresente(dec("1000"), 12, TaxaMensalBoleto)
	assert.True(t, got.LessThan(boleto))
}

func TestValorPresente_UmaParcela(t *testing.T) {
	// uma parcela vencendo em 30 dias: 1022 / 1.022 = 1000
	got := ValorPresente(dec("1022"), 1, dec("0.022"))
	assert.Equal(t, "1000.00", got.StringFixed(2))
}

func TestFatorDesconto(t *testing.T) {
	assert.True(t, FatorDesconto(dec("0.022"), 0).Equal(decimal.NewFromInt(1)))
	assert.True(t, FatorDesconto(decimal.Zero, 5).Equal(decimal.NewFromInt(1)))

	// soma dos fatores de cada período reproduz o valor presente
	soma := decimal.Zero
	for i := 1; i <= 12; i++ {
		soma = soma.Add(dec("1000").Mul(FatorDesconto(dec("0.022"), i)))
	}
	pv := ValorPresente(dec("1000"), 12, dec("0.022"))
	assert.Equal(t, pv.StringFixed(6), soma.StringFixed(6))
}

func TestValorEfetivoVenda(t *testing.T) {
	t.Run("a vista devolve valor da nota", func(t *testing.T) {
		got := ValorEfetivoVenda(AVista, dec("22000"), dec("5000"), dec("1000"), 12)
		assert.True(t, dec("22000").Equal(got))
	})

	t.Run("boleto soma entrada e valor presente", func(t *testing.T) {
		got := ValorEfetivoVenda(ParceladoBoleto, dec("17000"), dec("5000"), dec("1000"), 12)
		want := dec("5000").Add(ValorPresente(dec("1000"), 12, TaxaMensalBoleto))
		assert.True(t, want.Equal(got))
		assert.True(t, got.LessThan(dec("17000")))
	})

	t.Run("cartao sem parcelas devolve so a entrada", func(t *testing.T) {
		got := ValorEfetivoVenda(ParceladoCartao, dec("3000"), dec("3000"), dec("0"), 0)
		assert.True(t, dec("3000").Equal(got))
	})

	t.Run("tipo desconhecido nao desconta", func(t *testing.T) {
		got := ValorEfetivoVenda(TipoPagamento("pix"), dec("9999"), dec("100"), dec("300"), 3)
		assert.True(t, dec("1000").Equal(got))
	})
}

func TestCronogramaPagamento(t *testing.T) {
	c := CronogramaPagamento{
		Tipo:         AVista,
		ValorEntrada: dec("0"),
		ValorParcela: dec("500"),
		QtdParcelas:  6,
	}.Normalizar()
	assert.Equal(t, 0, c.QtdParcelas)
	assert.True(t, c.ValorParcela.IsZero())
	assert.True(t, c.ValorEfetivo(dec("2500")).Equal(dec("2500")))

	p := CronogramaPagamento{
		Tipo:         ParceladoBoleto,
		ValorEntrada: dec("1000"),
		ValorParcela: dec("1000"),
		QtdParcelas:  -3,
	}.Normalizar()
	assert.Equal(t, 0, p.QtdParcelas)
	assert.True(t, p.TotalNominal().Equal(dec("1000")))

	q := CronogramaPagamento{
		Tipo:         ParceladoCartao,
		ValorEntrada: dec("2000"),
		ValorParcela: dec("1000"),
		QtdParcelas:  10,
	}
	assert.True(t, q.TotalNominal().Equal(dec("12000")))
	assert.True(t, q.ValorEfetivo(dec("12000")).LessThan(q.TotalNominal()))
}

func TestTipoPagamento_Valido(t *testing.T) {
	assert.True(t, AVista.Valido())
	assert.True(t, ParceladoBoleto.Valido())
	assert.True(t, ParceladoCartao.Valido())
	assert.False(t, TipoPagamento("cheque").Valido())
}
