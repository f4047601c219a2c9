package tabelapreco

import (
	"strings"

	"github.com/KromaEnergia/api-comissao/internal/icms"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ItemTabelaDTO é usado em POST /tabela-precos e PUT /tabela-precos/{id}.
// No PUT o código é ignorado: ele identifica o item e não muda.
type ItemTabelaDTO struct {
	Codigo      string          `json:"codigo"`
	Descricao   string          `json:"descricao"`
	PrecoTabela decimal.Decimal `json:"precoTabela"`
	ComissaoPct decimal.Decimal `json:"comissaoPct"`
	UFOrigem    string          `json:"ufOrigem"`
	Ativo       *bool           `json:"ativo,omitempty"`
}

var cem = decimal.NewFromInt(100)

func (d ItemTabelaDTO) validar(exigirCodigo bool) error {
	if exigirCodigo && strings.TrimSpace(d.Codigo) == "" {
		return errors.New("código é obrigatório")
	}
	if d.PrecoTabela.IsNegative() {
		return errors.New("preço de tabela não pode ser negativo")
	}
	if d.ComissaoPct.IsNegative() || d.ComissaoPct.GreaterThan(cem) {
		return errors.New("comissão deve estar entre 0 e 100")
	}
	if !icms.UFValida(d.UFOrigem) {
		return errors.New("UF de origem inválida")
	}
	return nil
}

func (d ItemTabelaDTO) aplicar(item *ItemTabela) {
	item.Descricao = strings.TrimSpace(d.Descricao)
	item.PrecoTabela = d.PrecoTabela
	item.ComissaoPct = d.ComissaoPct
	item.UFOrigem = strings.ToUpper(strings.TrimSpace(d.UFOrigem))
	if d.Ativo != nil {
		item.Ativo = *d.Ativo
	}
}
