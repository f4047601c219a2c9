// internal/parcela/repository.go
package parcela

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrNaoEncontrada = errors.New("parcela não encontrada")

type Repositorio interface {
	CriarEmLote(ctx context.Context, parcelas []Parcela) error
	BuscarPorID(ctx context.Context, organizacaoID, id uint) (*Parcela, error)
	ListarPorVenda(ctx context.Context, organizacaoID, vendaID uint) ([]Parcela, error)
	AtualizarStatus(ctx context.Context, id uint, status string, dataPagamento time.Time) error
}

// Repository encapsula o acesso a dados das parcelas.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// CriarEmLote cria várias parcelas de uma vez (ignora se vazio).
func (r *Repository) CriarEmLote(ctx context.Context, parcelas []Parcela) error {
	if len(parcelas) == 0 {
		return nil
	}
	if err := r.DB.WithContext(ctx).Create(&parcelas).Error; err != nil {
		return errors.Wrap(err, "criar parcelas")
	}
	return nil
}

func (r *Repository) BuscarPorID(ctx context.Context, organizacaoID, id uint) (*Parcela, error) {
	var p Parcela
	err := r.DB.WithContext(ctx).
		Where("organizacao_id = ?", organizacaoID).
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNaoEncontrada
	}
	if err != nil {
		return nil, errors.Wrap(err, "buscar parcela")
	}
	return &p, nil
}

func (r *Repository) ListarPorVenda(ctx context.Context, organizacaoID, vendaID uint) ([]Parcela, error) {
	var parcelas []Parcela
	err := r.DB.WithContext(ctx).
		Where("organizacao_id = ? AND venda_id = ?", organizacaoID, vendaID).
		Order("numero ASC").
		Find(&parcelas).Error
	if err != nil {
		return nil, errors.Wrap(err, "listar parcelas da venda")
	}
	return parcelas, nil
}

// AtualizarStatus grava o status; só "Pago" mantém data_pagamento, os demais zeram (NULL).
func (r *Repository) AtualizarStatus(ctx context.Context, id uint, status string, dataPagamento time.Time) error {
	updates := map[string]interface{}{"status": status}
	if status == StatusPago {
		updates["data_pagamento"] = &dataPagamento
	} else {
		updates["data_pagamento"] = nil
	}
	err := r.DB.WithContext(ctx).
		Model(&Parcela{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return errors.Wrap(err, "atualizar status da parcela")
	}
	return nil
}
