// internal/venda/repository.go
package venda

import (
	"context"

	"github.com/KromaEnergia/api-comissao/internal/parcela"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrNaoEncontrada = errors.New("venda não encontrada")

type Repositorio interface {
	Registrar(ctx context.Context, v *Venda, parcelas []parcela.Parcela) error
	BuscarPorID(ctx context.Context, organizacaoID, id uint) (*Venda, error)
	Listar(ctx context.Context, organizacaoID, vendedorID uint) ([]Venda, error)
	Deletar(ctx context.Context, v *Venda) error
}

// Repository encapsula operações de banco para Venda.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Registrar grava a venda e as parcelas na mesma transação.
func (r *Repository) Registrar(ctx context.Context, v *Venda, parcelas []parcela.Parcela) (err error) {
	tx := r.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "iniciar transação")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = tx.Omit("Parcelas").Create(v).Error; err != nil {
		return errors.Wrap(err, "criar venda")
	}

	for i := range parcelas {
		parcelas[i].VendaID = v.ID
		parcelas[i].OrganizacaoID = v.OrganizacaoID
	}
	if err = parcela.NewRepository(tx).CriarEmLote(ctx, parcelas); err != nil {
		return err
	}

	if err = tx.Commit().Error; err != nil {
		return errors.Wrap(err, "confirmar transação")
	}
	v.Parcelas = parcelas
	return nil
}

func (r *Repository) BuscarPorID(ctx context.Context, organizacaoID, id uint) (*Venda, error) {
	var v Venda
	err := r.DB.WithContext(ctx).
		Preload("Parcelas", func(db *gorm.DB) *gorm.DB { return db.Order("numero ASC") }).
		Where("organizacao_id = ?", organizacaoID).
		First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNaoEncontrada
	}
	if err != nil {
		return nil, errors.Wrap(err, "buscar venda")
	}
	return &v, nil
}

// Listar retorna as vendas da organização; vendedorID 0 não filtra.
func (r *Repository) Listar(ctx context.Context, organizacaoID, vendedorID uint) ([]Venda, error) {
	q := r.DB.WithContext(ctx).Where("organizacao_id = ?", organizacaoID)
	if vendedorID != 0 {
		q = q.Where("vendedor_id = ?", vendedorID)
	}
	var vendas []Venda
	if err := q.Order("data_emissao DESC").Find(&vendas).Error; err != nil {
		return nil, errors.Wrap(err, "listar vendas")
	}
	return vendas, nil
}

// Deletar faz soft delete da venda e cancela as parcelas ainda pendentes.
func (r *Repository) Deletar(ctx context.Context, v *Venda) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(v).Error; err != nil {
			return errors.Wrap(err, "deletar venda")
		}
		err := tx.Model(&parcela.Parcela{}).
			Where("venda_id = ? AND status = ?", v.ID, parcela.StatusPendente).
			Update("status", parcela.StatusCancelada).Error
		if err != nil {
			return errors.Wrap(err, "cancelar parcelas da venda")
		}
		return nil
	})
}
