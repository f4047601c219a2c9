// internal/venda/model.go
package venda

import (
	"time"

	"github.com/KromaEnergia/api-comissao/internal/overprice"
	"github.com/KromaEnergia/api-comissao/internal/parcela"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Venda guarda as entradas e o resultado da liquidação de uma nota.
// ValorFaturadoNota (bruto) e ValorRealFaturado (a valor presente) ficam em colunas separadas.
type Venda struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Referencia    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"referencia"`
	OrganizacaoID uint      `gorm:"not null;index" json:"organizacaoId"`
	VendedorID    uint      `gorm:"not null;index" json:"vendedorId"`
	NumeroNota    string    `gorm:"size:60" json:"numeroNota"`
	CodigoItem    string    `gorm:"size:60" json:"codigoItem"`
	DataEmissao   time.Time `gorm:"not null" json:"dataEmissao"`

	UFOrigem            string          `gorm:"size:10" json:"ufOrigem"`
	UFDestino           string          `gorm:"size:10" json:"ufDestino"`
	AliquotaIcmsOrigem  decimal.Decimal `gorm:"type:numeric(10,6);not null;default:0" json:"aliquotaIcmsOrigem"`
	AliquotaIcmsDestino decimal.Decimal `gorm:"type:numeric(10,6);not null;default:0" json:"aliquotaIcmsDestino"`

	TipoPagamento string          `gorm:"size:30;not null" json:"tipoPagamento"`
	ValorEntrada  decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"valorEntrada"`
	ValorParcela  decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"valorParcela"`
	QtdParcelas   int             `gorm:"not null;default:0" json:"qtdParcelas"`

	ValorFaturadoNota decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"valorFaturadoNota"`
	ValorRealFaturado decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"valorRealFaturado"`
	PrecoTabela       decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"precoTabela"`
	ComissaoPct       decimal.Decimal `gorm:"type:numeric(6,3);not null;default:0" json:"comissaoPct"`

	PrecoTabelaAjustado decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"precoTabelaAjustado"`
	OverPrice           decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"overPrice"`
	DeducaoIcms         decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"deducaoIcms"`
	DeducaoPisCofins    decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"deducaoPisCofins"`
	DeducaoIrCsll       decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"deducaoIrCsll"`
	OverPriceLiquido    decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"overPriceLiquido"`
	ComissaoPedido      decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"comissaoPedido"`
	ComissaoTotal       decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"comissaoTotal"`
	ComissaoFinalPct    decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"comissaoFinalPct"`
	MargemNegativa      bool            `gorm:"not null;default:false;index" json:"margemNegativa"`

	Parcelas []parcela.Parcela `gorm:"foreignKey:VendaID;constraint:OnDelete:CASCADE" json:"parcelas"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (Venda) TableName() string {
	return "vendas"
}

// aplicarResultado copia o resultado arredondado para as colunas da venda.
// As colunas de resultado são numeric sem precisão: margem negativa sobre nota pequena
// gera percentuais de qualquer magnitude.
func (v *Venda) aplicarResultado(res overprice.ResultadoLiquidacao) {
	r := res.Arredondado(2)
	v.PrecoTabelaAjustado = r.PrecoTabelaAjustado
	v.OverPrice = r.OverPrice
	v.DeducaoIcms = r.DeducaoIcms
	v.DeducaoPisCofins = r.DeducaoPisCofins
	v.DeducaoIrCsll = r.DeducaoIrCsll
	v.OverPriceLiquido = r.OverPriceLiquido
	v.ComissaoPedido = r.ComissaoPedido
	v.ComissaoTotal = r.ComissaoTotal
	v.ComissaoFinalPct = res.ComissaoFinalPct.Round(4)
	v.MargemNegativa = res.MargemNegativa()
}

// Migrate cria as tabelas de vendas e parcelas.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Venda{}, &parcela.Parcela{})
}
