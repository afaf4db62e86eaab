package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-InstructFlow-Payment-Instructions-API/internal/domain"
)

// stubPublisher conta publicações para verificar o fluxo de eventos.
type stubPublisher struct {
	published []map[string]interface{}
	failWith  error
}

func (s *stubPublisher) Publish(_ context.Context, _, _ string, body interface{}) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.published = append(s.published, body.(map[string]interface{}))
	return nil
}

func testAccounts() []domain.Account {
	return []domain.Account{
		{ID: "A1", Balance: 1000, Currency: "usd"},
		{ID: "A2", Balance: 0, Currency: "USD"},
	}
}

func execute(t *testing.T, accounts []domain.Account, instruction string) (*domain.Outcome, error) {
	t.Helper()
	uc := NewProcessInstruction(nil)
	return uc.Execute(context.Background(), ProcessInstructionInput{
		Accounts:    accounts,
		Instruction: instruction,
	})
}

func TestExecuteImmediateTransfer(t *testing.T) {
	outcome, err := execute(t, testAccounts(), "DEBIT 500 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Status != domain.StatusSuccessful {
		t.Errorf("status = %q, want %q", outcome.Status, domain.StatusSuccessful)
	}
	if outcome.StatusCode != domain.CodeSuccess {
		t.Errorf("status_code = %q, want %q", outcome.StatusCode, domain.CodeSuccess)
	}
	if *outcome.Type != "DEBIT" || *outcome.Amount != 500 || *outcome.Currency != "USD" {
		t.Errorf("transfer fields = %v/%v/%v, want DEBIT/500/USD", *outcome.Type, *outcome.Amount, *outcome.Currency)
	}
	if *outcome.DebitAccount != "A1" || *outcome.CreditAccount != "A2" {
		t.Errorf("accounts = %q/%q, want A1/A2", *outcome.DebitAccount, *outcome.CreditAccount)
	}
	if outcome.ExecuteBy != nil {
		t.Errorf("execute_by = %v, want nil", *outcome.ExecuteBy)
	}

	expected := []domain.AccountView{
		{ID: "A1", Balance: 500, BalanceBefore: 1000, Currency: "USD"},
		{ID: "A2", Balance: 500, BalanceBefore: 0, Currency: "USD"},
	}
	if !reflect.DeepEqual(outcome.Accounts, expected) {
		t.Errorf("accounts = %+v, want %+v", outcome.Accounts, expected)
	}
}

func TestExecuteDialectsAreEquivalent(t *testing.T) {
	debit, err := execute(t, testAccounts(), "DEBIT 500 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2")
	if err != nil {
		t.Fatalf("debit dialect: %v", err)
	}
	credit, err := execute(t, testAccounts(), "CREDIT 500 USD TO ACCOUNT A2 FOR DEBIT FROM ACCOUNT A1")
	if err != nil {
		t.Fatalf("credit dialect: %v", err)
	}

	if *debit.DebitAccount != *credit.DebitAccount || *debit.CreditAccount != *credit.CreditAccount {
		t.Errorf("dialects disagree on roles: DEBIT %q/%q vs CREDIT %q/%q",
			*debit.DebitAccount, *debit.CreditAccount, *credit.DebitAccount, *credit.CreditAccount)
	}
	if !reflect.DeepEqual(debit.Accounts, credit.Accounts) {
		t.Errorf("simulated accounts differ between dialects")
	}
}

func TestExecuteCaseInsensitiveInstruction(t *testing.T) {
	outcome, err := execute(t, testAccounts(), "debit 100 usd from account A1 for credit to account A2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.StatusCode != domain.CodeSuccess {
		t.Errorf("status_code = %q, want %q", outcome.StatusCode, domain.CodeSuccess)
	}
	if *outcome.Currency != "USD" {
		t.Errorf("currency = %q, want USD", *outcome.Currency)
	}
}

func TestExecuteUnparseableInstruction(t *testing.T) {
	outcome, err := execute(t, testAccounts(), "TRANSFER 100 USD")
	if err != nil {
		t.Fatalf("structural failure must not be an error, got: %v", err)
	}

	if outcome.Status != domain.StatusFailed {
		t.Errorf("status = %q, want %q", outcome.Status, domain.StatusFailed)
	}
	if outcome.StatusCode != domain.CodeUnparseable {
		t.Errorf("status_code = %q, want %q", outcome.StatusCode, domain.CodeUnparseable)
	}
	if len(outcome.Accounts) != 0 {
		t.Errorf("accounts = %+v, want empty", outcome.Accounts)
	}
	if outcome.Type != nil || outcome.Amount != nil || outcome.Currency != nil {
		t.Error("transfer fields must be null on a structural failure")
	}
}

func TestExecuteSemanticFailures(t *testing.T) {
	accounts := []domain.Account{
		{ID: "A1", Balance: 1000, Currency: "USD"},
		{ID: "A2", Balance: 0, Currency: "USD"},
		{ID: "B1", Balance: 500, Currency: "NGN"},
	}

	testCases := []struct {
		name        string
		instruction string
		wantCode    string
	}{
		{
			name:        "negative amount",
			instruction: "DEBIT -5 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2",
			wantCode:    domain.CodeInvalidAmount,
		},
		{
			name:        "decimal amount",
			instruction: "DEBIT 5.5 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2",
			wantCode:    domain.CodeInvalidAmount,
		},
		{
			name:        "zero amount",
			instruction: "DEBIT 0 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2",
			wantCode:    domain.CodeInvalidAmount,
		},
		{
			name:        "non numeric amount",
			instruction: "DEBIT abc USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2",
			wantCode:    domain.CodeInvalidAmount,
		},
		{
			name:        "unsupported currency",
			instruction: "DEBIT 100 EUR FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2",
			wantCode:    domain.CodeUnsupportedCurrency,
		},
		{
			name:        "invalid account id syntax",
			instruction: "DEBIT 100 USD FROM ACCOUNT A_1 FOR CREDIT TO ACCOUNT A2",
			wantCode:    domain.CodeInvalidAccountID,
		},
		{
			name:        "self transfer",
			instruction: "DEBIT 100 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A1",
			wantCode:    domain.CodeSameAccount,
		},
		{
			name:        "debit account not found",
			instruction: "DEBIT 100 USD FROM ACCOUNT X9 FOR CREDIT TO ACCOUNT A2",
			wantCode:    domain.CodeAccountNotFound,
		},
		{
			name:        "credit account not found",
			instruction: "DEBIT 100 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT X9",
			wantCode:    domain.CodeAccountNotFound,
		},
		{
			name:        "cross account currency mismatch",
			instruction: "DEBIT 100 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT B1",
			wantCode:    domain.CodeCurrencyMismatch,
		},
		{
			name:        "instruction currency differs from accounts",
			instruction: "DEBIT 100 GBP FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2",
			wantCode:    domain.CodeCurrencyMismatch,
		},
		{
			name:        "insufficient funds",
			instruction: "DEBIT 2000 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2",
			wantCode:    domain.CodeInsufficientFunds,
		},
		{
			name:        "malformed execution date",
			instruction: "DEBIT 100 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2 ON 2025-13-01",
			wantCode:    domain.CodeInvalidDate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			outcome, err := execute(t, accounts, tc.instruction)
			if outcome != nil {
				t.Fatalf("expected nil outcome on semantic failure, got %+v", outcome)
			}
			var instructionErr *domain.InstructionError
			if !errors.As(err, &instructionErr) {
				t.Fatalf("expected *domain.InstructionError, got %v", err)
			}
			if instructionErr.Code != tc.wantCode {
				t.Errorf("code = %q, want %q", instructionErr.Code, tc.wantCode)
			}
		})
	}
}

func TestExecuteFailFastOrder(t *testing.T) {
	// Instrução múltiplamente inválida: valor decimal E moeda não
	// suportada E conta inexistente. O primeiro validador decide.
	_, err := execute(t, testAccounts(), "DEBIT 5.5 EUR FROM ACCOUNT X9 FOR CREDIT TO ACCOUNT A2")
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("err = %v, want ErrInvalidAmount (amount check runs first)", err)
	}

	// Auto-transferência vence o lookup: a conta nem está na lista.
	_, err = execute(t, testAccounts(), "DEBIT 100 USD FROM ACCOUNT Z1 FOR CREDIT TO ACCOUNT Z1")
	if !errors.Is(err, domain.ErrSameAccount) {
		t.Errorf("err = %v, want ErrSameAccount (self check precedes lookup)", err)
	}
}

func TestExecuteDeferredTransfer(t *testing.T) {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	outcome, err := execute(t, testAccounts(),
		"DEBIT 500 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2 ON "+tomorrow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Status != domain.StatusPending {
		t.Errorf("status = %q, want %q", outcome.Status, domain.StatusPending)
	}
	if outcome.StatusCode != domain.CodePending {
		t.Errorf("status_code = %q, want %q", outcome.StatusCode, domain.CodePending)
	}
	if outcome.ExecuteBy == nil || *outcome.ExecuteBy != tomorrow {
		t.Errorf("execute_by = %v, want %q", outcome.ExecuteBy, tomorrow)
	}
	for _, account := range outcome.Accounts {
		if account.Balance != account.BalanceBefore {
			t.Errorf("deferred transfer must not move balances: %+v", account)
		}
	}
}

func TestExecuteDeferredSkipsFundsCheck(t *testing.T) {
	// Agendamento futuro não exige saldo hoje.
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	outcome, err := execute(t, testAccounts(),
		"DEBIT 999999 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2 ON "+tomorrow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.StatusCode != domain.CodePending {
		t.Errorf("status_code = %q, want %q", outcome.StatusCode, domain.CodePending)
	}
}

func TestExecutePastDateRunsImmediately(t *testing.T) {
	outcome, err := execute(t, testAccounts(),
		"DEBIT 500 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2 ON 2020-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.StatusCode != domain.CodeSuccess {
		t.Errorf("status_code = %q, want %q", outcome.StatusCode, domain.CodeSuccess)
	}
	if outcome.Accounts[0].Balance == outcome.Accounts[0].BalanceBefore {
		t.Error("past-dated transfer must execute immediately")
	}
}

func TestExecutePreservesInputAccountOrder(t *testing.T) {
	// A2 vem antes de A1 na entrada; a resposta mantém essa ordem,
	// não a ordem débito-depois-crédito.
	accounts := []domain.Account{
		{ID: "A2", Balance: 0, Currency: "USD"},
		{ID: "A1", Balance: 1000, Currency: "USD"},
	}
	outcome, err := execute(t, accounts, "DEBIT 500 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Accounts[0].ID != "A2" || outcome.Accounts[1].ID != "A1" {
		t.Errorf("account order = %q,%q, want A2,A1", outcome.Accounts[0].ID, outcome.Accounts[1].ID)
	}
}

func TestExecuteOmitsUninvolvedAccounts(t *testing.T) {
	accounts := append(testAccounts(), domain.Account{ID: "C3", Balance: 42, Currency: "USD"})
	outcome, err := execute(t, accounts, "DEBIT 500 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.Accounts) != 2 {
		t.Errorf("accounts = %+v, want only the two involved", outcome.Accounts)
	}
}

func TestExecuteIsIdempotent(t *testing.T) {
	first, err := execute(t, testAccounts(), "DEBIT 500 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := execute(t, testAccounts(), "DEBIT 500 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("pipeline is not idempotent: %+v vs %+v", first, second)
	}
}

func TestExecutePublishesEvaluationEvent(t *testing.T) {
	publisher := &stubPublisher{}
	uc := NewProcessInstruction(publisher)

	_, err := uc.Execute(context.Background(), ProcessInstructionInput{
		Accounts:    testAccounts(),
		Instruction: "DEBIT 500 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(publisher.published) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.published))
	}
	event := publisher.published[0]
	if event["status_code"] != domain.CodeSuccess {
		t.Errorf("event status_code = %v, want %q", event["status_code"], domain.CodeSuccess)
	}
	if event["event_id"] == "" {
		t.Error("event must carry an event_id")
	}
}

func TestExecutePublishFailureDoesNotFailEvaluation(t *testing.T) {
	publisher := &stubPublisher{failWith: errors.New("broker down")}
	uc := NewProcessInstruction(publisher)

	outcome, err := uc.Execute(context.Background(), ProcessInstructionInput{
		Accounts:    testAccounts(),
		Instruction: "DEBIT 500 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2",
	})
	if err != nil {
		t.Fatalf("publish failure leaked into the evaluation: %v", err)
	}
	if outcome.StatusCode != domain.CodeSuccess {
		t.Errorf("status_code = %q, want %q", outcome.StatusCode, domain.CodeSuccess)
	}
}

func TestExecuteNoSemanticEventOnFailure(t *testing.T) {
	publisher := &stubPublisher{}
	uc := NewProcessInstruction(publisher)

	_, err := uc.Execute(context.Background(), ProcessInstructionInput{
		Accounts:    testAccounts(),
		Instruction: "DEBIT 2000 USD FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2",
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if len(publisher.published) != 0 {
		t.Errorf("failed evaluation must not publish events, got %d", len(publisher.published))
	}
}
