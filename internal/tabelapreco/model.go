// internal/tabelapreco/model.go
package tabelapreco

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemTabela é uma linha da tabela de preços de uma organização.
// UFOrigem é o estado cujo ICMS já está embutido no PrecoTabela.
type ItemTabela struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrganizacaoID uint            `gorm:"not null;uniqueIndex:idx_item_org_codigo_vigente,where:deleted_at IS NULL" json:"organizacaoId"`
	Codigo        string          `gorm:"size:60;not null;uniqueIndex:idx_item_org_codigo_vigente,where:deleted_at IS NULL" json:"codigo"`
	Descricao     string          `gorm:"size:255" json:"descricao"`
	PrecoTabela   decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"precoTabela"`
	ComissaoPct   decimal.Decimal `gorm:"type:numeric(6,3);not null;default:0" json:"comissaoPct"`
	UFOrigem      string          `gorm:"size:10;not null" json:"ufOrigem"`
	Ativo         bool            `gorm:"not null;default:true" json:"ativo"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (ItemTabela) TableName() string {
	return "tabela_precos"
}

// indiceLegado cobria também as linhas apagadas e impedia recriar um código removido.
const indiceLegado = "idx_item_org_codigo"

// Migrate cria a tabela no banco de dados.
// O código é único só entre itens não apagados (índice parcial).
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&ItemTabela{}); err != nil {
		return err
	}
	if db.Migrator().HasIndex(&ItemTabela{}, indiceLegado) {
		return db.Migrator().DropIndex(&ItemTabela{}, indiceLegado)
	}
	return nil
}
