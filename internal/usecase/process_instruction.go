package usecase

import (
	"context"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-InstructFlow-Payment-Instructions-API/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-InstructFlow-Payment-Instructions-API/internal/gateway"
	"github.com/Guilherme-G-Cadilhe/Go-InstructFlow-Payment-Instructions-API/internal/instruction"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ProcessInstructionInput carrega a instrução crua e o snapshot das contas.
// DTO para não acoplar a API HTTP ao UseCase.
type ProcessInstructionInput struct {
	Accounts    []domain.Account
	Instruction string
}

// ProcessInstructionUseCase executa o pipeline completo:
// parse → validação sintática → regras de negócio → simulação de saldo.
// É computação pura sobre a entrada; nenhum estado sobrevive à chamada.
type ProcessInstructionUseCase struct {
	eventPublisher gateway.EventPublisher
}

func NewProcessInstruction(publisher gateway.EventPublisher) *ProcessInstructionUseCase {
	return &ProcessInstructionUseCase{
		eventPublisher: publisher,
	}
}

// Execute avalia a instrução contra as contas fornecidas.
//
// Falha estrutural (texto não casa com nenhum dialeto) é resolvida aqui
// mesmo: Outcome "failed"/SY03 com contas vazias, erro nil. Falha
// semântica (regra de negócio violada) sobe como *domain.InstructionError
// para o handler reconstruir o Outcome de falha ecoando as contas.
func (u *ProcessInstructionUseCase) Execute(ctx context.Context, input ProcessInstructionInput) (*domain.Outcome, error) {
	draft := instruction.Parse(input.Instruction)
	if draft == nil {
		outcome := domain.FailedOutcome(domain.CodeUnparseable, nil)
		return &outcome, nil
	}

	// Validação sintática dos campos, em ordem fixa e fail-fast:
	// a primeira violação decide o código de status.
	amount, err := domain.ValidateAmount(draft.Amount)
	if err != nil {
		return nil, err
	}
	currency, err := domain.ValidateCurrency(draft.Currency)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateAccountID(draft.DebitAccount); err != nil {
		return nil, err
	}
	if err := domain.ValidateAccountID(draft.CreditAccount); err != nil {
		return nil, err
	}
	// Auto-transferência é rejeitada antes de qualquer lookup de conta.
	if draft.DebitAccount == draft.CreditAccount {
		return nil, domain.ErrSameAccount
	}

	// Regras de negócio contra o snapshot de contas.
	debitAccount, ok := findAccount(input.Accounts, draft.DebitAccount)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	creditAccount, ok := findAccount(input.Accounts, draft.CreditAccount)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if debitAccount.CurrencyUpper() != creditAccount.CurrencyUpper() {
		return nil, domain.ErrCurrencyMismatch
	}
	if debitAccount.CurrencyUpper() != currency {
		return nil, domain.ErrCurrencyMismatch
	}

	deferred := false
	if draft.ExecuteBy != nil {
		if err := domain.ValidateExecuteBy(*draft.ExecuteBy); err != nil {
			return nil, err
		}
		today := time.Now().UTC().Format("2006-01-02")
		deferred = domain.IsDeferred(*draft.ExecuteBy, today)
	}

	// Saldo só é exigido quando a execução é imediata; agendamento
	// futuro assume que os fundos existirão na data.
	if !deferred && debitAccount.Balance < amount {
		return nil, domain.ErrInsufficientFunds
	}

	outcome := u.buildOutcome(input.Accounts, draft, amount, currency, deferred)
	u.publishEvaluated(ctx, &outcome)
	return &outcome, nil
}

// buildOutcome simula os saldos e monta a resposta final. As duas contas
// envolvidas saem na mesma ordem relativa em que entraram na lista.
func (u *ProcessInstructionUseCase) buildOutcome(accounts []domain.Account, draft *domain.Draft, amount int64, currency string, deferred bool) domain.Outcome {
	status, code := domain.StatusSuccessful, domain.CodeSuccess
	if deferred {
		status, code = domain.StatusPending, domain.CodePending
	}

	views := make([]domain.AccountView, 0, 2)
	for _, account := range accounts {
		switch account.ID {
		case draft.DebitAccount:
			balance := account.Balance
			if !deferred {
				balance -= amount
			}
			views = append(views, domain.ViewWithBalance(account, balance))
		case draft.CreditAccount:
			balance := account.Balance
			if !deferred {
				balance += amount
			}
			views = append(views, domain.ViewWithBalance(account, balance))
		}
	}

	instructionType := string(draft.Type)
	return domain.Outcome{
		Type:          &instructionType,
		Amount:        &amount,
		Currency:      &currency,
		DebitAccount:  &draft.DebitAccount,
		CreditAccount: &draft.CreditAccount,
		ExecuteBy:     draft.ExecuteBy,
		Status:        status,
		StatusReason:  domain.StatusReason(code),
		StatusCode:    code,
		Accounts:      views,
	}
}

// publishEvaluated emite o evento de auditoria. Falha de broker é apenas
// logada — a avaliação já aconteceu e a resposta HTTP não depende disso.
func (u *ProcessInstructionUseCase) publishEvaluated(ctx context.Context, outcome *domain.Outcome) {
	if u.eventPublisher == nil {
		return
	}
	event := map[string]interface{}{
		"event_id":       uuid.NewString(),
		"type":           *outcome.Type,
		"amount":         *outcome.Amount,
		"currency":       *outcome.Currency,
		"debit_account":  *outcome.DebitAccount,
		"credit_account": *outcome.CreditAccount,
		"status":         outcome.Status,
		"status_code":    outcome.StatusCode,
	}
	if err := u.eventPublisher.Publish(ctx, "instruction_events", "instruction.evaluated", event); err != nil {
		log.Error().Err(err).Msg("Falha ao publicar evento de instrução avaliada")
	}
}

// findAccount busca por igualdade exata de id (case-sensitive).
func findAccount(accounts []domain.Account, id string) (domain.Account, bool) {
	for _, account := range accounts {
		if account.ID == id {
			return account, true
		}
	}
	return domain.Account{}, false
}
