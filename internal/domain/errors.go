package domain

// InstructionError é a falha semântica classificada do pipeline:
// uma instrução estruturalmente válida que viola uma regra de negócio.
// O código viaja junto para o handler montar o Outcome de falha.
type InstructionError struct {
	Code string
}

func (e *InstructionError) Error() string {
	return StatusReason(e.Code)
}

// Uma instância por código, no estilo de erros sentinela.
// Comparáveis com errors.Is; o handler extrai o código com errors.As.
var (
	ErrInvalidAmount       = &InstructionError{Code: CodeInvalidAmount}
	ErrUnsupportedCurrency = &InstructionError{Code: CodeUnsupportedCurrency}
	ErrInvalidAccountID    = &InstructionError{Code: CodeInvalidAccountID}
	ErrSameAccount         = &InstructionError{Code: CodeSameAccount}
	ErrAccountNotFound     = &InstructionError{Code: CodeAccountNotFound}
	ErrCurrencyMismatch    = &InstructionError{Code: CodeCurrencyMismatch}
	ErrInsufficientFunds   = &InstructionError{Code: CodeInsufficientFunds}
	ErrInvalidDate         = &InstructionError{Code: CodeInvalidDate}
)
