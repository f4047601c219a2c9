// internal/icms/aliquota.go
package icms

import (
	"strings"

	"github.com/shopspring/decimal"
)

// UFImportado é a chave reservada para mercadoria importada (não é um estado).
const UFImportado = "IMPORTADO"

var (
	aliquotaPadrao        = decimal.NewFromFloat(0.12)
	aliquotaNorteNordeste = decimal.NewFromFloat(0.07)
	aliquotaSulSudeste    = decimal.NewFromFloat(0.12)
	aliquotaImportado     = decimal.NewFromFloat(0.04)
)

// AliquotaPadrao é usada quando a UF não está na tabela.
func AliquotaPadrao() decimal.Decimal { return aliquotaPadrao }

// tabela de ICMS interestadual por UF de destino
var tabela = map[string]decimal.Decimal{
	// Norte
	"AC": aliquotaNorteNordeste,
	"AM": aliquotaNorteNordeste,
	"AP": aliquotaNorteNordeste,
	"PA": aliquotaNorteNordeste,
	"RO": aliquotaNorteNordeste,
	"RR": aliquotaNorteNordeste,
	"TO": aliquotaNorteNordeste,
	// Nordeste
	"AL": aliquotaNorteNordeste,
	"BA": aliquotaNorteNordeste,
	"CE": aliquotaNorteNordeste,
	"MA": aliquotaNorteNordeste,
	"PB": aliquotaNorteNordeste,
	"PE": aliquotaNorteNordeste,
	"PI": aliquotaNorteNordeste,
	"RN": aliquotaNorteNordeste,
	"SE": aliquotaNorteNordeste,
	// Centro-Oeste
	"DF": aliquotaNorteNordeste,
	"GO": aliquotaNorteNordeste,
	"MS": aliquotaNorteNordeste,
	"MT": aliquotaNorteNordeste,
	// Espírito Santo fica na faixa de 7% apesar de ser Sudeste
	"ES": aliquotaNorteNordeste,
	// Sul e Sudeste
	"MG": aliquotaSulSudeste,
	"PR": aliquotaSulSudeste,
	"RJ": aliquotaSulSudeste,
	"RS": aliquotaSulSudeste,
	"SC": aliquotaSulSudeste,
	"SP": aliquotaSulSudeste,

	UFImportado: aliquotaImportado,
}

func normalizar(uf string) string {
	return strings.ToUpper(strings.TrimSpace(uf))
}

// ResolverAliquota retorna a alíquota de ICMS interestadual da UF informada.
// A busca ignora maiúsculas/minúsculas; UF vazia ou desconhecida cai em AliquotaPadrao.
func ResolverAliquota(uf string) decimal.Decimal {
	if aliquota, ok := tabela[normalizar(uf)]; ok {
		return aliquota
	}
	return aliquotaPadrao
}

// UFValida informa se a UF (ou a chave de importado) consta na tabela.
func UFValida(uf string) bool {
	_, ok := tabela[normalizar(uf)]
	return ok
}

// Tabela devolve uma cópia da tabela de alíquotas.
func Tabela() map[string]decimal.Decimal {
	copia := make(map[string]decimal.Decimal, len(tabela))
	for uf, aliquota := range tabela {
		copia[uf] = aliquota
	}
	return copia
}
