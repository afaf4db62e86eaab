package gateway

import "context"

// EventPublisher publica eventos de avaliação de instrução no broker.
// O usecase só conhece este contrato, não o RabbitMQ.
type EventPublisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body interface{}) error
}
