package tabelapreco

import (
	"context"

	"github.com/pkg/errors"
)

// repoFake guarda os itens em memória e conta as chamadas a BuscarPorCodigo.
type repoFake struct {
	itens        map[uint]*ItemTabela
	proximoID    uint
	buscasCodigo int
	falha        error
}

func novoRepoFake(itens ...ItemTabela) *repoFake {
	f := &repoFake{itens: map[uint]*ItemTabela{}}
	for i := range itens {
		item := itens[i]
		f.proximoID++
		if item.ID == 0 {
			item.ID = f.proximoID
		}
		f.itens[item.ID] = &item
	}
	return f
}

// Criar recusa código repetido só entre itens não apagados, como o índice parcial do banco.
func (f *repoFake) Criar(_ context.Context, item *ItemTabela) error {
	if f.falha != nil {
		return f.falha
	}
	for _, existente := range f.itens {
		if existente.OrganizacaoID == item.OrganizacaoID && existente.Codigo == item.Codigo {
			return ErrCodigoDuplicado
		}
	}
	f.proximoID++
	item.ID = f.proximoID
	copia := *item
	f.itens[item.ID] = &copia
	return nil
}

func (f *repoFake) BuscarPorID(_ context.Context, organizacaoID, id uint) (*ItemTabela, error) {
	item, ok := f.itens[id]
	if !ok || item.OrganizacaoID != organizacaoID {
		return nil, ErrNaoEncontrado
	}
	copia := *item
	return &copia, nil
}

func (f *repoFake) BuscarPorCodigo(_ context.Context, organizacaoID uint, codigo string) (*ItemTabela, error) {
	f.buscasCodigo++
	if f.falha != nil {
		return nil, errors.Wrap(f.falha, "buscar item de tabela por código")
	}
	for _, item := range f.itens {
		if item.OrganizacaoID == organizacaoID && item.Codigo == codigo && item.Ativo {
			copia := *item
			return &copia, nil
		}
	}
	return nil, ErrNaoEncontrado
}

func (f *repoFake) ListarPorOrganizacao(_ context.Context, organizacaoID uint) ([]ItemTabela, error) {
	if f.falha != nil {
		return nil, f.falha
	}
	var out []ItemTabela
	for _, item := range f.itens {
		if item.OrganizacaoID == organizacaoID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *repoFake) Atualizar(_ context.Context, item *ItemTabela) error {
	if f.falha != nil {
		return f.falha
	}
	copia := *item
	f.itens[item.ID] = &copia
	return nil
}

func (f *repoFake) Deletar(_ context.Context, item *ItemTabela) error {
	if f.falha != nil {
		return f.falha
	}
	delete(f.itens, item.ID)
	return nil
}
