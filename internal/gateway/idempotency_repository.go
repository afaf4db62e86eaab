package gateway

import (
	"context"
	"time"
)

// CachedResponse é a resposta HTTP gravada para repetição idempotente.
type CachedResponse struct {
	StatusCode int
	Body       []byte
}

// IdempotencyRepository guarda respostas por Idempotency-Key.
// A implementação concreta (Redis) fica em infra.
type IdempotencyRepository interface {
	// Get retorna a resposta cacheada, ou nil quando a chave não existe.
	Get(ctx context.Context, key string) (*CachedResponse, error)

	// Save grava a resposta com tempo de vida limitado.
	Save(ctx context.Context, key string, response CachedResponse, ttl time.Duration) error
}
