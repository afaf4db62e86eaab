package domain

// InstructionType identifica o dialeto que casou com a instrução.
type InstructionType string

const (
	TypeDebit  InstructionType = "DEBIT"
	TypeCredit InstructionType = "CREDIT"
)

// Draft é o resultado intermediário do parser: os tokens crus capturados
// pela gramática, antes de qualquer validação de conteúdo.
// Amount ainda é string aqui — vira inteiro só depois da checagem sintática.
type Draft struct {
	Type          InstructionType
	Amount        string
	Currency      string // já em maiúsculas, conteúdo ainda não validado
	DebitAccount  string
	CreditAccount string
	ExecuteBy     *string // cláusula ON opcional; nil quando ausente
}

// Complete informa se o casamento estrutural produziu todos os tokens
// obrigatórios. Um draft incompleto é tratado como instrução não parseável.
func (d *Draft) Complete() bool {
	return d.Amount != "" &&
		d.Currency != "" &&
		d.DebitAccount != "" &&
		d.CreditAccount != ""
}

// Outcome é o resultado estruturado de uma avaliação, no formato do
// contrato da API (snake_case). Campos ponteiro ficam null num Outcome
// de falha.
type Outcome struct {
	Type          *string       `json:"type"`
	Amount        *int64        `json:"amount"`
	Currency      *string       `json:"currency"`
	DebitAccount  *string       `json:"debit_account"`
	CreditAccount *string       `json:"credit_account"`
	ExecuteBy     *string       `json:"execute_by"`
	Status        string        `json:"status"`
	StatusReason  string        `json:"status_reason"`
	StatusCode    string        `json:"status_code"`
	Accounts      []AccountView `json:"accounts"`
}

// FailedOutcome monta o Outcome de falha para um código de status.
// As contas ecoadas chegam prontas (vazias no caso de erro de sintaxe).
func FailedOutcome(code string, accounts []AccountView) Outcome {
	if accounts == nil {
		// Sempre serializar "accounts": [] em vez de null.
		accounts = []AccountView{}
	}
	return Outcome{
		Status:       StatusFailed,
		StatusReason: StatusReason(code),
		StatusCode:   code,
		Accounts:     accounts,
	}
}
