package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Guilherme-G-Cadilhe/Go-InstructFlow-Payment-Instructions-API/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-InstructFlow-Payment-Instructions-API/internal/usecase"
	"github.com/rs/zerolog/log"
)

// InstructionHandler expõe a avaliação de instruções via HTTP
type InstructionHandler struct {
	processUseCase *usecase.ProcessInstructionUseCase
}

func NewInstructionHandler(uc *usecase.ProcessInstructionUseCase) *InstructionHandler {
	return &InstructionHandler{
		processUseCase: uc,
	}
}

// DTOs do envelope externo. Tags JSON em snake_case (padrão de APIs).
type accountPayload struct {
	ID       string `json:"id"`
	Balance  int64  `json:"balance"`
	Currency string `json:"currency"`
}

type processInstructionRequest struct {
	Accounts    []accountPayload `json:"accounts"`
	Instruction string           `json:"instruction"`
}

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    *domain.Outcome `json:"data"`
}

// Mensagens fixas do envelope (o detalhe fica em data.status_reason).
const (
	messageExecuted = "Transaction executed successfully"
	messageFailed   = "Transaction failed"
)

// Process avalia uma instrução de pagamento contra as contas enviadas.
// Sucesso e pendente respondem 200; qualquer falha responde 400 com o
// Outcome de falha no corpo.
func (h *InstructionHandler) Process(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req processInstructionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	// Validação de esquema do envelope. O core assume que esta forma
	// vale e não revalida.
	if msg, ok := validateEnvelope(&req); !ok {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	accounts := make([]domain.Account, 0, len(req.Accounts))
	for _, a := range req.Accounts {
		accounts = append(accounts, domain.Account{
			ID:       a.ID,
			Balance:  a.Balance,
			Currency: a.Currency,
		})
	}

	outcome, err := h.processUseCase.Execute(ctx, usecase.ProcessInstructionInput{
		Accounts:    accounts,
		Instruction: strings.TrimSpace(req.Instruction),
	})
	if err != nil {
		// Falha semântica classificada: reconstruir o Outcome de falha
		// ecoando as contas originais, saldos intocados.
		var instructionErr *domain.InstructionError
		if errors.As(err, &instructionErr) {
			views := make([]domain.AccountView, 0, len(accounts))
			for _, account := range accounts {
				views = append(views, domain.ViewUnchanged(account))
			}
			failed := domain.FailedOutcome(instructionErr.Code, views)
			respondJSON(w, http.StatusBadRequest, apiResponse{
				Status:  domain.StatusFailed,
				Message: messageFailed,
				Data:    &failed,
			})
			return
		}

		log.Error().Err(err).Msg("Erro interno ao avaliar instrução")
		respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	// Falha estrutural (SY03) já chega como Outcome pronto do core.
	if outcome.Status == domain.StatusFailed {
		respondJSON(w, http.StatusBadRequest, apiResponse{
			Status:  domain.StatusFailed,
			Message: messageFailed,
			Data:    outcome,
		})
		return
	}

	respondJSON(w, http.StatusOK, apiResponse{
		Status:  outcome.Status,
		Message: messageExecuted,
		Data:    outcome,
	})
}

// validateEnvelope confere a forma externa da requisição: lista de contas
// não vazia com id/moeda preenchidos e instrução não vazia após trim.
func validateEnvelope(req *processInstructionRequest) (string, bool) {
	if strings.TrimSpace(req.Instruction) == "" {
		return "Campo instruction é obrigatório", false
	}
	if len(req.Accounts) == 0 {
		return "Campo accounts não pode ser vazio", false
	}
	for _, a := range req.Accounts {
		if strings.TrimSpace(a.ID) == "" || strings.TrimSpace(a.Currency) == "" {
			return "Toda conta precisa de id e currency", false
		}
	}
	return "", true
}

// Helpers para resposta JSON
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Falha ao codificar resposta JSON")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
