package icms

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolverAliquota(t *testing.T) {
	tests := []struct {
		name string
		uf   string
		want decimal.Decimal
	}{
		{name: "SP sul/sudeste", uf: "SP", want: decimal.NewFromFloat(0.12)},
		{name: "RS sul/sudeste", uf: "RS", want: decimal.NewFromFloat(0.12)},
		{name: "BA nordeste", uf: "BA", want: decimal.NewFromFloat(0.07)},
		{name: "AM norte", uf: "AM", want: decimal.NewFromFloat(0.07)},
		{name: "DF centro-oeste", uf: "DF", want: decimal.NewFromFloat(0.07)},
		{name: "ES excecao do sudeste", uf: "ES", want: decimal.NewFromFloat(0.07)},
		{name: "importado", uf: UFImportado, want: decimal.NewFromFloat(0.04)},
		{name: "importado minusculo", uf: "importado", want: decimal.NewFromFloat(0.04)},
		{name: "minusculo", uf: "mg", want: decimal.NewFromFloat(0.12)},
		{name: "com espacos", uf: " pe ", want: decimal.NewFromFloat(0.07)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolverAliquota(tt.uf)
			assert.True(t, tt.want.Equal(got), "esperado %s, obtido %s", tt.want, got)
		})
	}
}

func TestResolverAliquota_Desconhecida(t *testing.T) {
	for _, uf := range []string{"", "XX", "BR", "S", "SPX", "EX"} {
		got := ResolverAliquota(uf)
		assert.True(t, AliquotaPadrao().Equal(got), "uf %q: esperado padrao, obtido %s", uf, got)
		assert.True(t, decimal.NewFromFloat(0.12).Equal(got))
	}
}

func TestResolverAliquota_CaseInsensitive(t *testing.T) {
	for uf := range Tabela() {
		lower := ResolverAliquota(strings.ToLower(uf))
		upper := ResolverAliquota(uf)
		assert.True(t, lower.Equal(upper), "uf %s", uf)
	}
}

func TestTabela(t *testing.T) {
	tab := Tabela()
	// 27 UFs + chave de importado
	assert.Len(t, tab, 28)

	var sete, doze int
	for uf, aliquota := range tab {
		assert.True(t, aliquota.GreaterThanOrEqual(decimal.Zero) && aliquota.LessThanOrEqual(decimal.NewFromInt(1)), uf)
		switch {
		case aliquota.Equal(decimal.NewFromFloat(0.07)):
			sete++
		case aliquota.Equal(decimal.NewFromFloat(0.12)):
			doze++
		}
	}
	assert.Equal(t, 21, sete)
	assert.Equal(t, 6, doze)

	// cópia não altera a tabela interna
	tab["SP"] = decimal.Zero
	assert.True(t, ResolverAliquota("SP").Equal(decimal.NewFromFloat(0.12)))
}

func TestUFValida(t *testing.T) {
	assert.True(t, UFValida("sc"))
	assert.True(t, UFValida(UFImportado))
	assert.False(t, UFValida(""))
	assert.False(t, UFValida("ZZ"))
}
