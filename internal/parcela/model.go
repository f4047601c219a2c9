// internal/parcela/model.go
package parcela

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPendente  = "Pendente"
	StatusPago      = "Pago"
	StatusCancelada = "Cancelada"
)

// Parcela é um recebimento previsto de uma venda.
// Numero 0 é a entrada; as mensais começam em 1.
type Parcela struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	VendaID         uint            `gorm:"not null;index" json:"vendaId"`
	OrganizacaoID   uint            `gorm:"not null;index" json:"organizacaoId"`
	Numero          int             `gorm:"not null" json:"numero"`
	Valor           decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"valor"`
	ValorDescontado decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"valorDescontado"`
	DataVencimento  time.Time       `gorm:"not null" json:"dataVencimento"`
	Status          string          `gorm:"size:50;not null;default:'Pendente';index" json:"status"`
	DataPagamento   *time.Time      `json:"dataPagamento"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (Parcela) TableName() string {
	return "parcelas"
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Parcela{})
}
