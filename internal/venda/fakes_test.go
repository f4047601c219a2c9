package venda

import (
	"context"
	"sync"

	"github.com/KromaEnergia/api-comissao/internal/eventos"
	"github.com/KromaEnergia/api-comissao/internal/parcela"
	"github.com/KromaEnergia/api-comissao/internal/tabelapreco"
	"github.com/pkg/errors"
)

type repoFake struct {
	vendas   map[uint]*Venda
	deletada []uint
	falha    error
}

func novoRepoFake() *repoFake {
	return &repoFake{vendas: map[uint]*Venda{}}
}

func (f *repoFake) Registrar(_ context.Context, v *Venda, parcelas []parcela.Parcela) error {
	if f.falha != nil {
		return f.falha
	}
	v.ID = uint(len(f.vendas) + 1)
	for i := range parcelas {
		parcelas[i].ID = uint(i + 1)
		parcelas[i].VendaID = v.ID
		parcelas[i].OrganizacaoID = v.OrganizacaoID
	}
	v.Parcelas = parcelas
	copia := *v
	f.vendas[v.ID] = &copia
	return nil
}

func (f *repoFake) BuscarPorID(_ context.Context, organizacaoID, id uint) (*Venda, error) {
	v, ok := f.vendas[id]
	if !ok || v.OrganizacaoID != organizacaoID {
		return nil, ErrNaoEncontrada
	}
	copia := *v
	return &copia, nil
}

func (f *repoFake) Listar(_ context.Context, organizacaoID, vendedorID uint) ([]Venda, error) {
	if f.falha != nil {
		return nil, f.falha
	}
	var out []Venda
	for id := uint(1); id <= uint(len(f.vendas)); id++ {
		v, ok := f.vendas[id]
		if !ok || v.OrganizacaoID != organizacaoID {
			continue
		}
		if vendedorID != 0 && v.VendedorID != vendedorID {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (f *repoFake) Deletar(_ context.Context, v *Venda) error {
	delete(f.vendas, v.ID)
	f.deletada = append(f.deletada, v.ID)
	return nil
}

type catalogoFake map[string]tabelapreco.ItemTabela

func (c catalogoFake) BuscarPorCodigo(_ context.Context, organizacaoID uint, codigo string) (*tabelapreco.ItemTabela, error) {
	item, ok := c[codigo]
	if !ok || item.OrganizacaoID != organizacaoID {
		return nil, errors.Wrap(tabelapreco.ErrNaoEncontrado, "buscar item de tabela por código")
	}
	return &item, nil
}

type eventoPublicado struct {
	tipo  eventos.TipoEvento
	org   uint
	chave string
}

type publicadorFake struct {
	mu        sync.Mutex
	publicado []eventoPublicado
	falha     error
}

func (p *publicadorFake) Publicar(_ context.Context, tipo eventos.TipoEvento, organizacaoID uint, chave string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.falha != nil {
		return p.falha
	}
	p.publicado = append(p.publicado, eventoPublicado{tipo: tipo, org: organizacaoID, chave: chave})
	return nil
}

func (p *publicadorFake) Close() error { return nil }

type medidorFake struct {
	liquidacoes map[string]int
	falhas      int
}

func novoMedidorFake() *medidorFake {
	return &medidorFake{liquidacoes: map[string]int{}}
}

func (m *medidorFake) RegistrarLiquidacao(operacao string, margemNegativa bool) {
	chave := operacao + "/positiva"
	if margemNegativa {
		chave = operacao + "/negativa"
	}
	m.liquidacoes[chave]++
}

func (m *medidorFake) RegistrarFalhaEvento() { m.falhas++ }
