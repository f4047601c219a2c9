package tabelapreco

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/KromaEnergia/api-comissao/internal/config"
	"github.com/KromaEnergia/api-comissao/internal/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	itemKeyPrefix   = "tabela_preco:"
	defaultCacheTTL = 5 * time.Minute
)

// kv é o subconjunto do cliente Redis usado pelo cache.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RepositorioComCache faz read-through no Redis para BuscarPorCodigo,
// que é a consulta feita a cada cálculo de venda.
type RepositorioComCache struct {
	Repositorio
	client kv
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisClient cria o cliente Redis a partir da configuração.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRepositorioComCache(repo Repositorio, client kv, ttl time.Duration) *RepositorioComCache {
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	return &RepositorioComCache{
		Repositorio: repo,
		client:      client,
		ttl:         ttl,
		log:         logger.With(zap.String("componente", "cache-tabela-preco")),
	}
}

func chaveItem(organizacaoID uint, codigo string) string {
	return fmt.Sprintf("%s%d:%s", itemKeyPrefix, organizacaoID, codigo)
}

func (c *RepositorioComCache) BuscarPorCodigo(ctx context.Context, organizacaoID uint, codigo string) (*ItemTabela, error) {
	key := chaveItem(organizacaoID, codigo)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var item ItemTabela
		if jsonErr := json.Unmarshal(data, &item); jsonErr == nil {
			c.log.Debug("Cache hit", zap.String("chave", key))
			return &item, nil
		}
		c.log.Warn("Entrada de cache inválida", zap.String("chave", key))
	case err == redis.Nil:
		c.log.Debug("Cache miss", zap.String("chave", key))
	default:
		// Redis fora do ar não impede o cálculo; cai direto no banco
		c.log.Error("Erro ao ler cache", zap.String("chave", key), zap.Error(err))
	}

	item, err := c.Repositorio.BuscarPorCodigo(ctx, organizacaoID, codigo)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(item); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.log.Error("Erro ao gravar cache", zap.String("chave", key), zap.Error(err))
		}
	}
	return item, nil
}

func (c *RepositorioComCache) Atualizar(ctx context.Context, item *ItemTabela) error {
	if err := c.Repositorio.Atualizar(ctx, item); err != nil {
		return err
	}
	c.invalidar(ctx, item)
	return nil
}

func (c *RepositorioComCache) Deletar(ctx context.Context, item *ItemTabela) error {
	if err := c.Repositorio.Deletar(ctx, item); err != nil {
		return err
	}
	c.invalidar(ctx, item)
	return nil
}

func (c *RepositorioComCache) invalidar(ctx context.Context, item *ItemTabela) {
	key := chaveItem(item.OrganizacaoID, item.Codigo)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Error("Erro ao invalidar cache", zap.String("chave", key), zap.Error(err))
	}
}
