// internal/tabelapreco/repository.go
package tabelapreco

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrNaoEncontrado indica que o item não existe na tabela da organização.
var ErrNaoEncontrado = errors.New("item de tabela não encontrado")

// ErrCodigoDuplicado indica que a organização já tem um item vigente com o mesmo código.
var ErrCodigoDuplicado = errors.New("código já cadastrado na tabela de preços")

// Repositorio é o acesso a dados usado pelo handler e pelo serviço de vendas.
type Repositorio interface {
	Criar(ctx context.Context, item *ItemTabela) error
	BuscarPorID(ctx context.Context, organizacaoID, id uint) (*ItemTabela, error)
	BuscarPorCodigo(ctx context.Context, organizacaoID uint, codigo string) (*ItemTabela, error)
	ListarPorOrganizacao(ctx context.Context, organizacaoID uint) ([]ItemTabela, error)
	Atualizar(ctx context.Context, item *ItemTabela) error
	Deletar(ctx context.Context, item *ItemTabela) error
}

// Repository encapsula as operações de banco da tabela de preços.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func traduzirErro(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNaoEncontrado
	}
	return errors.Wrap(err, op)
}

func (r *Repository) Criar(ctx context.Context, item *ItemTabela) error {
	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCodigoDuplicado
		}
		return errors.Wrap(err, "criar item de tabela")
	}
	return nil
}

func (r *Repository) BuscarPorID(ctx context.Context, organizacaoID, id uint) (*ItemTabela, error) {
	var item ItemTabela
	err := r.DB.WithContext(ctx).
		Where("organizacao_id = ?", organizacaoID).
		First(&item, id).Error
	if err != nil {
		return nil, traduzirErro(err, "buscar item de tabela por id")
	}
	return &item, nil
}

// BuscarPorCodigo retorna apenas itens ativos.
func (r *Repository) BuscarPorCodigo(ctx context.Context, organizacaoID uint, codigo string) (*ItemTabela, error) {
	var item ItemTabela
	err := r.DB.WithContext(ctx).
		Where("organizacao_id = ? AND codigo = ? AND ativo = ?", organizacaoID, codigo, true).
		First(&item).Error
	if err != nil {
		return nil, traduzirErro(err, "buscar item de tabela por código")
	}
	return &item, nil
}

func (r *Repository) ListarPorOrganizacao(ctx context.Context, organizacaoID uint) ([]ItemTabela, error) {
	var itens []ItemTabela
	err := r.DB.WithContext(ctx).
		Where("organizacao_id = ?", organizacaoID).
		Order("codigo ASC").
		Find(&itens).Error
	if err != nil {
		return nil, errors.Wrap(err, "listar tabela de preços")
	}
	return itens, nil
}

// Atualizar salva todos os campos (Save exige PK).
func (r *Repository) Atualizar(ctx context.Context, item *ItemTabela) error {
	if err := r.DB.WithContext(ctx).Save(item).Error; err != nil {
		return errors.Wrap(err, "atualizar item de tabela")
	}
	return nil
}

// Deletar faz soft delete (o model tem gorm.DeletedAt).
func (r *Repository) Deletar(ctx context.Context, item *ItemTabela) error {
	if err := r.DB.WithContext(ctx).Delete(item).Error; err != nil {
		return errors.Wrap(err, "deletar item de tabela")
	}
	return nil
}
