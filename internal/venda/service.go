// internal/venda/service.go
package venda

import (
	"context"
	"strings"
	"time"

	"github.com/KromaEnergia/api-comissao/internal/eventos"
	"github.com/KromaEnergia/api-comissao/internal/icms"
	"github.com/KromaEnergia/api-comissao/internal/logger"
	"github.com/KromaEnergia/api-comissao/internal/overprice"
	"github.com/KromaEnergia/api-comissao/internal/parcela"
	"github.com/KromaEnergia/api-comissao/internal/tabelapreco"
	"github.com/KromaEnergia/api-comissao/internal/valorpresente"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrPrecoNaoInformado = errors.New("informe codigoItem ou precoTabela e comissaoPct")
	ErrItemNaoEncontrado = errors.New("item não encontrado na tabela de preços")
)

var cem = decimal.NewFromInt(100)

// catalogo é a parte da tabela de preços usada no cálculo.
type catalogo interface {
	BuscarPorCodigo(ctx context.Context, organizacaoID uint, codigo string) (*tabelapreco.ItemTabela, error)
}

// medidor recebe as contagens de liquidação (implementado por metricas.Metricas).
type medidor interface {
	RegistrarLiquidacao(operacao string, margemNegativa bool)
	RegistrarFalhaEvento()
}

type medidorNulo struct{}

func (medidorNulo) RegistrarLiquidacao(string, bool) {}
func (medidorNulo) RegistrarFalhaEvento() {}

// Service liga tabela de ICMS, valor presente e over price às vendas persistidas.
type Service struct {
	repo       Repositorio
	catalogo   catalogo
	publicador eventos.Publicador
	medidor    medidor
	agora      func() time.Time
}

func NewService(repo Repositorio, cat catalogo, pub eventos.Publicador, med medidor) *Service {
	if pub == nil {
		pub = eventos.PublicadorNulo{}
	}
	if med == nil {
		med = medidorNulo{}
	}
	return &Service{
		repo:       repo,
		catalogo:   cat,
		publicador: pub,
		medidor:    med,
		agora:      time.Now,
	}
}

// liquidacao é o cálculo completo de uma venda antes de persistir.
type liquidacao struct {
	entrada    overprice.EntradaLiquidacao
	resultado  overprice.ResultadoLiquidacao
	cronograma valorpresente.CronogramaPagamento
	parcelas   []parcela.Parcela
	ufOrigem   string
	ufDestino  string
	emissao    time.Time
}

// resolverCatalogo busca preço e comissão; valores explícitos no DTO vencem a tabela.
func (s *Service) resolverCatalogo(ctx context.Context, organizacaoID uint, dto LiquidacaoDTO) (preco, pct decimal.Decimal, ufOrigem string, err error) {
	ufOrigem = dto.UFOrigem
	if dto.PrecoTabela.Valid && dto.ComissaoPct.Valid {
		return dto.PrecoTabela.Decimal, dto.ComissaoPct.Decimal, ufOrigem, nil
	}

	codigo := strings.TrimSpace(dto.CodigoItem)
	if codigo == "" || s.catalogo == nil {
		return preco, pct, ufOrigem, ErrPrecoNaoInformado
	}
	item, err := s.catalogo.BuscarPorCodigo(ctx, organizacaoID, codigo)
	if errors.Is(err, tabelapreco.ErrNaoEncontrado) {
		return preco, pct, ufOrigem, ErrItemNaoEncontrado
	}
	if err != nil {
		return preco, pct, ufOrigem, err
	}

	preco, pct = item.PrecoTabela, item.ComissaoPct
	if dto.PrecoTabela.Valid {
		preco = dto.PrecoTabela.Decimal
	}
	if dto.ComissaoPct.Valid {
		pct = dto.ComissaoPct.Decimal
	}
	if strings.TrimSpace(ufOrigem) == "" {
		ufOrigem = item.UFOrigem
	}
	return preco, pct, ufOrigem, nil
}

func aliquota(explicita decimal.NullDecimal, uf string) decimal.Decimal {
	if explicita.Valid {
		return explicita.Decimal
	}
	return icms.ResolverAliquota(uf)
}

// liquidar monta a entrada na ordem ICMS -> valor presente -> over price.
func (s *Service) liquidar(ctx context.Context, organizacaoID uint, dto LiquidacaoDTO) (*liquidacao, error) {
	preco, pct, ufOrigem, err := s.resolverCatalogo(ctx, organizacaoID, dto)
	if err != nil {
		return nil, err
	}

	emissao := s.agora()
	if dto.DataEmissao != nil && !dto.DataEmissao.IsZero() {
		emissao = *dto.DataEmissao
	}

	cronograma := dto.Pagamento.Normalizar()
	if cronograma.Tipo == valorpresente.AVista {
		// à vista a nota inteira vence na emissão
		cronograma.ValorEntrada = dto.ValorNota
	}

	entrada := overprice.EntradaLiquidacao{
		ValorRealFaturado:   cronograma.ValorEfetivo(dto.ValorNota),
		ValorFaturadoNota:   dto.ValorNota,
		PrecoTabela:         preco,
		ComissaoPct:         pct,
		AliquotaIcmsOrigem:  aliquota(dto.AliquotaIcmsOrigem, ufOrigem),
		AliquotaIcmsDestino: aliquota(dto.AliquotaIcmsDestino, dto.UFDestino),
	}

	return &liquidacao{
		entrada:    entrada,
		resultado:  overprice.Calcular(entrada),
		cronograma: cronograma,
		parcelas:   parcela.GerarParcelas(cronograma, emissao),
		ufOrigem:   strings.ToUpper(strings.TrimSpace(ufOrigem)),
		ufDestino:  strings.ToUpper(strings.TrimSpace(dto.UFDestino)),
		emissao:    emissao,
	}, nil
}

// Simular calcula a liquidação sem gravar nada.
func (s *Service) Simular(ctx context.Context, organizacaoID uint, dto LiquidacaoDTO) (*SimulacaoDTO, error) {
	l, err := s.liquidar(ctx, organizacaoID, dto)
	if err != nil {
		return nil, err
	}
	s.medidor.RegistrarLiquidacao("simulacao", l.resultado.MargemNegativa())

	return &SimulacaoDTO{
		Entrada:        l.entrada,
		Resultado:      l.resultado,
		MargemNegativa: l.resultado.MargemNegativa(),
		Parcelas:       l.parcelas,
	}, nil
}

// Registrar calcula, grava venda + parcelas e publica venda.liquidada.
// Falha na publicação não desfaz a venda; fica no log e na métrica.
func (s *Service) Registrar(ctx context.Context, organizacaoID uint, dto LiquidacaoDTO) (*Venda, error) {
	l, err := s.liquidar(ctx, organizacaoID, dto)
	if err != nil {
		return nil, err
	}

	v := &Venda{
		Referencia:          uuid.New(),
		OrganizacaoID:       organizacaoID,
		VendedorID:          dto.VendedorID,
		NumeroNota:          strings.TrimSpace(dto.NumeroNota),
		CodigoItem:          strings.TrimSpace(dto.CodigoItem),
		DataEmissao:         l.emissao,
		UFOrigem:            l.ufOrigem,
		UFDestino:           l.ufDestino,
		AliquotaIcmsOrigem:  l.entrada.AliquotaIcmsOrigem,
		AliquotaIcmsDestino: l.entrada.AliquotaIcmsDestino,
		TipoPagamento:       string(l.cronograma.Tipo),
		ValorEntrada:        l.cronograma.ValorEntrada,
		ValorParcela:        l.cronograma.ValorParcela,
		QtdParcelas:         l.cronograma.QtdParcelas,
		ValorFaturadoNota:   l.entrada.ValorFaturadoNota,
		ValorRealFaturado:   l.entrada.ValorRealFaturado.Round(2),
		PrecoTabela:         l.entrada.PrecoTabela,
		ComissaoPct:         l.entrada.ComissaoPct,
	}
	v.aplicarResultado(l.resultado)

	if err := s.repo.Registrar(ctx, v, l.parcelas); err != nil {
		return nil, errors.Wrap(err, "registrar venda")
	}
	s.medidor.RegistrarLiquidacao("registro", v.MargemNegativa)

	logger.Info("Venda liquidada",
		zap.String("referencia", v.Referencia.String()),
		zap.Uint("organizacao_id", organizacaoID),
		zap.Uint("vendedor_id", v.VendedorID),
		zap.String("comissao_total", v.ComissaoTotal.String()),
		zap.Bool("margem_negativa", v.MargemNegativa),
	)

	if err := s.publicador.Publicar(ctx, eventos.VendaLiquidada, organizacaoID, v.Referencia.String(), v); err != nil {
		s.medidor.RegistrarFalhaEvento()
		logger.Warn("Venda gravada sem evento", zap.String("referencia", v.Referencia.String()), zap.Error(err))
	}
	return v, nil
}

func (s *Service) BuscarPorID(ctx context.Context, organizacaoID, id uint) (*Venda, error) {
	return s.repo.BuscarPorID(ctx, organizacaoID, id)
}

func (s *Service) Listar(ctx context.Context, organizacaoID, vendedorID uint) ([]Venda, error) {
	return s.repo.Listar(ctx, organizacaoID, vendedorID)
}

// Remover apaga a venda (parcelas pendentes são canceladas) e publica venda.removida.
func (s *Service) Remover(ctx context.Context, organizacaoID, id uint) error {
	v, err := s.repo.BuscarPorID(ctx, organizacaoID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Deletar(ctx, v); err != nil {
		return err
	}

	dados := map[string]interface{}{"id": v.ID, "referencia": v.Referencia}
	if err := s.publicador.Publicar(ctx, eventos.VendaRemovida, organizacaoID, v.Referencia.String(), dados); err != nil {
		s.medidor.RegistrarFalhaEvento()
		logger.Warn("Venda removida sem evento", zap.String("referencia", v.Referencia.String()), zap.Error(err))
	}
	return nil
}

// ResumoPorVendedor agrega as vendas gravadas de um vendedor.
func (s *Service) ResumoPorVendedor(ctx context.Context, organizacaoID, vendedorID uint) (ResumoVendedorDTO, error) {
	vendas, err := s.repo.Listar(ctx, organizacaoID, vendedorID)
	if err != nil {
		return ResumoVendedorDTO{}, err
	}
	return MontarResumoVendedor(vendedorID, vendas), nil
}

// MontarResumoVendedor soma faturamento e comissão; o percentual médio usa o valor de nota.
func MontarResumoVendedor(vendedorID uint, vendas []Venda) ResumoVendedorDTO {
	resumo := ResumoVendedorDTO{
		VendedorID:       vendedorID,
		QtdVendas:        len(vendas),
		TotalFaturado:    decimal.Zero,
		ComissaoTotal:    decimal.Zero,
		ComissaoMediaPct: decimal.Zero,
	}
	for _, v := range vendas {
		resumo.TotalFaturado = resumo.TotalFaturado.Add(v.ValorFaturadoNota)
		resumo.ComissaoTotal = resumo.ComissaoTotal.Add(v.ComissaoTotal)
		if v.MargemNegativa {
			resumo.VendasMargemNegativa++
		}
	}
	if resumo.TotalFaturado.GreaterThan(decimal.Zero) {
		resumo.ComissaoMediaPct = resumo.ComissaoTotal.Div(resumo.TotalFaturado).Mul(cem).Round(4)
	}
	return resumo
}
