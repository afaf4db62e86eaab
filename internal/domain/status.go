package domain

// Códigos de status estáveis do contrato da API.
// São constantes de processo, imutáveis — clientes dependem do valor exato.
const (
	CodeSuccess             = "AP00" // Execução imediata bem sucedida
	CodePending             = "AP02" // Execução agendada (data futura)
	CodeInvalidAmount       = "AM01" // Valor inválido, negativo, decimal ou zero
	CodeCurrencyMismatch    = "CU01" // Moedas das contas (ou da instrução) divergem
	CodeUnsupportedCurrency = "CU02" // Moeda fora da whitelist
	CodeInsufficientFunds   = "AC01" // Saldo insuficiente na conta de débito
	CodeSameAccount         = "AC02" // Débito e crédito na mesma conta
	CodeAccountNotFound     = "AC03" // Conta não está na lista enviada
	CodeInvalidAccountID    = "AC04" // Identificador de conta com caractere inválido
	CodeInvalidDate         = "DT01" // Data de execução fora do formato YYYY-MM-DD

	// Reservados na tabela do contrato. A gramática atual colapsa toda
	// falha estrutural em SY03; não inventar gatilhos novos para estes.
	CodeMissingKeyword      = "SY01"
	CodeInvalidKeywordOrder = "SY02"
	CodeUnparseable         = "SY03" // Instrução que não casa com nenhum dialeto
)

// Status finais de um Outcome.
const (
	StatusSuccessful = "successful"
	StatusPending    = "pending"
	StatusFailed     = "failed"
)

// statusReasons é o catálogo de mensagens legíveis por humanos.
// O código de status é o contrato; o texto pode evoluir livremente.
var statusReasons = map[string]string{
	CodeSuccess:             "Transaction executed successfully",
	CodePending:             "Transaction scheduled for future execution",
	CodeInvalidAmount:       "Instruction amount must be a positive whole number",
	CodeCurrencyMismatch:    "Account and instruction currencies do not match",
	CodeUnsupportedCurrency: "Currency is not supported",
	CodeInsufficientFunds:   "Insufficient funds in debit account",
	CodeSameAccount:         "Debit and credit accounts must be different",
	CodeAccountNotFound:     "Account not found",
	CodeInvalidAccountID:    "Account id contains invalid characters",
	CodeInvalidDate:         "Execution date must be in YYYY-MM-DD format",
	CodeMissingKeyword:      "Instruction is missing a required keyword",
	CodeInvalidKeywordOrder: "Instruction keywords are out of order",
	CodeUnparseable:         "Instruction could not be parsed",
}

// StatusReason resolve a mensagem de um código. Código desconhecido devolve
// o próprio código para nunca responder status_reason vazio.
func StatusReason(code string) string {
	if reason, ok := statusReasons[code]; ok {
		return reason
	}
	return code
}

// SupportedCurrencies é a whitelist fixa de moedas aceitas nas instruções.
var SupportedCurrencies = map[string]bool{
	"NGN": true,
	"USD": true,
	"GBP": true,
	"GHS": true,
}
