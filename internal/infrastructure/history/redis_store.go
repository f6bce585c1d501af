// Package history implementa el historial local de facturas generadas como
// lista append-only en Redis: cada generación agrega una entrada (factura
// completa + timestamp) al final de la lista, sin clave de negocio.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/invoice-studio/internal/application/billing"
)

const historyKey = "invoice-studio:history"

var _ appbilling.HistoryStore = (*RedisStore)(nil)

// RedisStore historial sobre Redis (RPUSH/LRANGE sobre una sola lista).
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore construye el store y verifica la conexión.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

// Close cierra la conexión subyacente.
func (s *RedisStore) Close() error { return s.rdb.Close() }

// Append agrega una entrada al final del historial.
func (s *RedisStore) Append(ctx context.Context, entry appbilling.HistoryEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("serializar entrada de historial: %w", err)
	}
	if err := s.rdb.RPush(ctx, historyKey, raw).Err(); err != nil {
		return fmt.Errorf("rpush historial: %w", err)
	}
	return nil
}

// List devuelve el historial completo en orden de generación.
func (s *RedisStore) List(ctx context.Context) ([]appbilling.HistoryEntry, error) {
	raws, err := s.rdb.LRange(ctx, historyKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange historial: %w", err)
	}

	entries := make([]appbilling.HistoryEntry, 0, len(raws))
	for i, raw := range raws {
		var e appbilling.HistoryEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("entrada de historial %d corrupta: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Stats deriva estadísticas básicas del historial: cantidad de facturas
// generadas y suma de sus totales.
func (s *RedisStore) Stats(ctx context.Context) (appbilling.HistoryStats, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return appbilling.HistoryStats{}, err
	}

	stats := appbilling.HistoryStats{
		TotalInvoices: len(entries),
		TotalRevenue:  decimal.Zero,
	}
	for _, e := range entries {
		stats.TotalRevenue = stats.TotalRevenue.Add(e.Invoice.Total)
	}
	return stats, nil
}
