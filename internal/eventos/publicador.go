package eventos

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/KromaEnergia/api-comissao/internal/config"
	"github.com/KromaEnergia/api-comissao/internal/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// TipoEvento identifica o evento publicado.
type TipoEvento string

const (
	VendaLiquidada TipoEvento = "venda.liquidada"
	VendaRemovida  TipoEvento = "venda.removida"
)

// Evento é o envelope gravado no tópico.
type Evento struct {
	ID            string          `json:"id"`
	Tipo          TipoEvento      `json:"tipo"`
	OrganizacaoID uint            `json:"organizacaoId"`
	Chave         string          `json:"chave"`
	Dados         json.RawMessage `json:"dados"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Publicador envia eventos de domínio para fora do serviço.
type Publicador interface {
	Publicar(ctx context.Context, tipo TipoEvento, organizacaoID uint, chave string, dados interface{}) error
	Close() error
}

// NovoEvento monta o envelope com id e horário.
func NovoEvento(tipo TipoEvento, organizacaoID uint, chave string, dados interface{}) (*Evento, error) {
	payload, err := json.Marshal(dados)
	if err != nil {
		return nil, errors.Wrap(err, "serializar dados do evento")
	}
	return &Evento{
		ID:            uuid.NewString(),
		Tipo:          tipo,
		OrganizacaoID: organizacaoID,
		Chave:         chave,
		Dados:         payload,
		Timestamp:     time.Now().UTC(),
	}, nil
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublicador publica eventos de venda no Kafka.
type KafkaPublicador struct {
	writer messageWriter
	topic  string
	log    *zap.Logger
}

func NewKafkaPublicador(cfg config.KafkaConfig) *KafkaPublicador {
	return newKafkaPublicador(novoWriter(cfg), cfg.Topic)
}

// novoWriter publica uma mensagem por chamada; sem BatchTimeout o writer segura cada envio por 1s.
func novoWriter(cfg config.KafkaConfig) *kafka.Writer {
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 10 * time.Millisecond
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: batchTimeout,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
}

func newKafkaPublicador(w messageWriter, topic string) *KafkaPublicador {
	return &KafkaPublicador{
		writer: w,
		topic:  topic,
		log:    logger.With(zap.String("componente", "kafka-publicador"), zap.String("topico", topic)),
	}
}

func (p *KafkaPublicador) Publicar(ctx context.Context, tipo TipoEvento, organizacaoID uint, chave string, dados interface{}) error {
	evento, err := NovoEvento(tipo, organizacaoID, chave, dados)
	if err != nil {
		return err
	}
	valor, err := json.Marshal(evento)
	if err != nil {
		return errors.Wrap(err, "serializar evento")
	}

	// chave por venda mantém a ordem dos eventos dentro da partição
	msg := kafka.Message{
		Key:   []byte(evento.Chave),
		Value: valor,
		Headers: []kafka.Header{
			{Key: "tipo_evento", Value: []byte(evento.Tipo)},
			{Key: "evento_id", Value: []byte(evento.ID)},
			{Key: "organizacao_id", Value: []byte(strconv.FormatUint(uint64(organizacaoID), 10))},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Falha ao publicar evento",
			zap.String("evento_id", evento.ID),
			zap.String("tipo", string(evento.Tipo)),
			zap.Error(err),
		)
		return errors.Wrap(err, "publicar evento")
	}

	p.log.Info("Evento publicado",
		zap.String("evento_id", evento.ID),
		zap.String("tipo", string(evento.Tipo)),
		zap.String("chave", evento.Chave),
	)
	return nil
}

func (p *KafkaPublicador) Close() error {
	p.log.Info("Fechando publicador Kafka")
	return p.writer.Close()
}

// PublicadorNulo é usado quando o Kafka está desligado.
type PublicadorNulo struct{}

func (PublicadorNulo) Publicar(ctx context.Context, tipo TipoEvento, organizacaoID uint, chave string, dados interface{}) error {
	logger.Debug("Kafka desabilitado, evento descartado", zap.String("tipo", string(tipo)), zap.String("chave", chave))
	return nil
}

func (PublicadorNulo) Close() error { return nil }

// NovoPublicador escolhe a implementação conforme a configuração.
func NovoPublicador(cfg config.KafkaConfig) Publicador {
	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		return PublicadorNulo{}
	}
	return NewKafkaPublicador(cfg)
}
