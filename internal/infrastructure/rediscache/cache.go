// Package rediscache implementa o cache de visões do dashboard sobre Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vncerqueira/estoquebar-api/internal/application/dto"
	appledger "github.com/vncerqueira/estoquebar-api/internal/application/ledger"
	"github.com/vncerqueira/estoquebar-api/internal/application/report"
	"github.com/vncerqueira/estoquebar-api/pkg/config"
	"github.com/vncerqueira/estoquebar-api/pkg/logger"
)

const (
	summaryKey    = "dash:summary"
	dashboardScan = "dash:*"
)

var (
	_ report.SummaryCache       = (*Cache)(nil)
	_ appledger.ViewInvalidator = (*Cache)(nil)
)

// Cache guarda agregações do dashboard em Redis com TTL. Com Addr vazio o
// cliente fica nulo e todas as operações viram no-op: a aplicação funciona
// sem Redis, só que sempre consultando o Postgres.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// New cria o cache. Devolve um cache desativado (client nulo) quando Addr está vazio.
func New(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *Cache {
	if cfg.Addr == "" {
		log.Info().Msg("Redis desativado (REDIS_ADDR vazio); dashboard sem cache")
		return &Cache{ttl: cfg.TTL, log: log}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("Redis inacessível; dashboard sem cache")
		_ = client.Close()
		return &Cache{ttl: cfg.TTL, log: log}
	}

	log.Info().Str("addr", cfg.Addr).Dur("ttl", cfg.TTL).Msg("cache Redis conectado")
	return &Cache{client: client, ttl: cfg.TTL, log: log}
}

// GetSummary lê o resumo cacheado. Erros e misses resultam em ok=false.
func (c *Cache) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("falha lendo cache do dashboard")
		}
		return nil, false
	}

	var summary dto.DashboardSummaryDTO
	if err := json.Unmarshal(raw, &summary); err != nil {
		c.log.Warn().Err(err).Msg("cache do dashboard corrompido; descartando")
		_ = c.client.Del(ctx, summaryKey).Err()
		return nil, false
	}
	return &summary, true
}

// SetSummary grava o resumo com TTL. Falha de escrita só gera log: o cache é otimização.
func (c *Cache) SetSummary(ctx context.Context, summary *dto.DashboardSummaryDTO) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		c.log.Warn().Err(err).Msg("falha serializando resumo do dashboard")
		return
	}
	if err := c.client.Set(ctx, summaryKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("falha gravando cache do dashboard")
	}
}

// InvalidateDashboards apaga todas as chaves de dashboard após um commit do
// ledger. Usa SCAN iterativo em vez de KEYS para não bloquear o Redis.
func (c *Cache) InvalidateDashboards(ctx context.Context) {
	if c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, dashboardScan, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", iter.Val()).Msg("falha invalidando chave de dashboard")
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Msg("falha no SCAN de invalidação do dashboard")
	}
}

// Close encerra a conexão com o Redis.
func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
