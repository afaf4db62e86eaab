package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-InstructFlow-Payment-Instructions-API/internal/gateway"
	"github.com/Guilherme-G-Cadilhe/Go-InstructFlow-Payment-Instructions-API/internal/infra/http/handler"
	internalMiddleware "github.com/Guilherme-G-Cadilhe/Go-InstructFlow-Payment-Instructions-API/internal/infra/http/middleware"
	"github.com/Guilherme-G-Cadilhe/Go-InstructFlow-Payment-Instructions-API/internal/infra/rabbitmq"
	redisInfra "github.com/Guilherme-G-Cadilhe/Go-InstructFlow-Payment-Instructions-API/internal/infra/redis"
	"github.com/Guilherme-G-Cadilhe/Go-InstructFlow-Payment-Instructions-API/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Configuração de Logs (Zerolog - estruturado e rápido)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Em produção (Docker/K8s) não existe arquivo .env, só variáveis reais.
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("Arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}
	ctx := context.Background()

	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr: redisHost + ":6379",
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("Não foi possível conectar ao Redis (Idempotência desabilitada)")
	} else {
		log.Info().Msg("✅ Conectado ao Redis!")
	}

	rabbitUser := os.Getenv("RABBITMQ_USER")
	rabbitPass := os.Getenv("RABBITMQ_PASS")
	rabbitHost := os.Getenv("RABBITMQ_HOST")
	if rabbitHost == "" {
		rabbitHost = "localhost"
	}

	rabbitURL := fmt.Sprintf("amqp://%s:%s@%s:5672/", rabbitUser, rabbitPass, rabbitHost)
	rabbitConn, err := amqp.DialConfig(rabbitURL, amqp.Config{
		Properties: amqp.Table{
			"connection_name": "InstructionAPI_Publisher",
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("Falha ao conectar no RabbitMQ (Eventos não serão enviados)")
	} else {
		defer rabbitConn.Close()
		log.Info().Msg("✅ Conectado ao RabbitMQ!")
	}

	var eventPublisher gateway.EventPublisher
	if rabbitConn != nil {
		ch, err := rabbitConn.Channel()
		if err != nil {
			log.Fatal().Err(err).Msg("Falha ao abrir canal RabbitMQ")
		}
		defer ch.Close()

		// Declarar Exchange (Tópico)
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
			log.Fatal().Err(err).Msg("Falha ao declarar Exchange")
		}

		eventPublisher = rabbitmq.NewPublisher(ch)
	}

	// Infraestrutura → UseCase → Handler
	idempotencyRepo := redisInfra.NewIdempotencyRepository(redisClient)
	processUseCase := usecase.NewProcessInstruction(eventPublisher)
	instructionHandler := handler.NewInstructionHandler(processUseCase)

	// Configuração do Servidor HTTP (Router Chi)
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer) // evita crash se der panic
	router.Use(middleware.Timeout(60 * time.Second))
	idempotencyMiddleware := internalMiddleware.Idempotency(idempotencyRepo)

	// Health Check (para o Docker saber se estamos vivos)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("Falha ao escrever resposta de health check")
		}
	})

	router.Group(func(r chi.Router) {
		r.Use(idempotencyMiddleware)
		r.Post("/payment-instructions", instructionHandler.Process)
	})

	port := ":8080"
	log.Info().Msgf("🚀 Servidor rodando na porta %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatal().Err(err).Msg("Falha ao iniciar servidor HTTP")
	}
}
