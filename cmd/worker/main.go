package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-InstructFlow-Payment-Instructions-API/internal/infra/mongodb"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Estrutura do evento que vem do RabbitMQ (JSON)
type InstructionEvent struct {
	EventID       string `json:"event_id"`
	Type          string `json:"type"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	DebitAccount  string `json:"debit_account"`
	CreditAccount string `json:"credit_account"`
	Status        string `json:"status"`
	StatusCode    string `json:"status_code"`
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("Arquivo .env não encontrado, usando variáveis de ambiente")
	}

	mongoUser := os.Getenv("MONGO_USER")
	mongoPass := os.Getenv("MONGO_PASS")
	mongoHost := os.Getenv("MONGO_HOST")
	if mongoHost == "" {
		mongoHost = "localhost"
	}
	mongoURI := "mongodb://" + mongoUser + ":" + mongoPass + "@" + mongoHost + ":27017"

	clientOptions := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(clientOptions)
	if err != nil {
		log.Fatal().Err(err).Msg("Erro ao criar client MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Erro ao desconectar Mongo")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("MongoDB não está respondendo")
	}
	log.Info().Msg("✅ Conectado ao MongoDB!")
	auditRepo := mongodb.NewAuditRepository(mongoClient, "instructflow_audit")

	rabbitUser := os.Getenv("RABBITMQ_USER")
	rabbitPass := os.Getenv("RABBITMQ_PASS")
	rabbitHost := os.Getenv("RABBITMQ_HOST")
	if rabbitHost == "" {
		rabbitHost = "localhost"
	}

	rabbitURL := "amqp://" + rabbitUser + ":" + rabbitPass + "@" + rabbitHost + ":5672/"
	conn, err := amqp.DialConfig(rabbitURL, amqp.Config{
		Properties: amqp.Table{
			"connection_name": "InstructionAuditWorker_Consumer",
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Erro ao conectar no RabbitMQ")
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Error().Err(err).Msg("Erro ao fechar conexão RabbitMQ")
		}
	}()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("Erro ao abrir canal")
	}
	defer func() {
		if err := ch.Close(); err != nil {
			log.Error().Err(err).Msg("Erro ao fechar canal RabbitMQ")
		}
	}()

	// Prefetch Count = 1: uma mensagem por vez, espera o Ack antes da próxima
	if err := ch.Qos(1, 0, false); err != nil {
		log.Fatal().Err(err).Msg("Erro ao configurar QoS")
	}

	// Declarações idempotentes: exchange, fila e bind
	err = ch.ExchangeDeclare(
		"instruction_events", // name
		"topic",              // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Erro ao declarar exchange")
	}

	q, err := ch.QueueDeclare(
		"instruction_audit_queue", // name
		true,                      // durable (sobrevive a restart do server)
		false,                     // delete when unused
		false,                     // exclusive
		false,                     // no-wait
		nil,                       // arguments
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Erro ao declarar fila")
	}

	// "Tudo que começar com 'instruction.' vai para a fila de auditoria"
	err = ch.QueueBind(
		q.Name,               // queue name
		"instruction.#",      // routing key (# é curinga)
		"instruction_events", // exchange
		false,
		nil,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Erro ao fazer bind da fila")
	}

	msgs, err := ch.Consume(
		q.Name,                     // queue
		"instruction_audit_worker", // consumer tag
		false,                      // auto-ack desligado: ack manual após gravar
		false,                      // exclusive
		false,                      // no-local
		false,                      // no-wait
		nil,                        // args
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Erro ao registrar consumidor")
	}

	// Monitoramento de queda de conexão
	notifyClose := make(chan *amqp.Error)
	ch.NotifyClose(notifyClose)

	log.Info().Msgf("Worker iniciado. Aguardando mensagens na fila %s...", q.Name)

	go func() {
		for {
			select {
			case err := <-notifyClose:
				if err != nil {
					log.Error().Err(err).Msg("Canal RabbitMQ fechado")
					os.Exit(1) // deixa o orquestrador subir o worker de novo
				}
				return
			case d, ok := <-msgs:
				if !ok {
					log.Error().Msg("Canal de mensagens fechado")
					os.Exit(1)
				}

				var event InstructionEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					log.Error().Err(err).Msg("Erro ao decodificar JSON")
					if err := d.Nack(false, false); err != nil {
						log.Error().Err(err).Msg("Erro ao enviar Nack (JSON inválido)")
					}
					continue
				}

				audit := mongodb.InstructionAudit{
					ID:            event.EventID,
					Type:          event.Type,
					Amount:        event.Amount,
					Currency:      event.Currency,
					DebitAccount:  event.DebitAccount,
					CreditAccount: event.CreditAccount,
					Status:        event.Status,
					StatusCode:    event.StatusCode,
				}

				saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				if err := auditRepo.Save(saveCtx, audit); err != nil {
					log.Error().Err(err).Msg("Erro ao salvar no Mongo")
					// requeue para tentar de novo quando o Mongo voltar
					if err := d.Nack(false, true); err != nil {
						log.Error().Err(err).Msg("Erro ao enviar Nack (Mongo erro)")
					}
					cancel()
					continue
				}
				cancel()

				if err := d.Ack(false); err != nil {
					log.Error().Err(err).Msg("Erro ao enviar Ack")
				}
				log.Info().Str("event_id", event.EventID).Msg("Auditoria gravada no MongoDB")
			}
		}
	}()

	// Graceful Shutdown (bloqueia a main até receber sinal)
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	<-stopChan

	log.Info().Msg("Shutting down worker...")
}
