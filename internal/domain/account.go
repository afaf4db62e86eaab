package domain

import "strings"

// Account é o snapshot de conta fornecido pelo chamador na requisição.
// Clean Architecture: a entidade não sabe o que é JSON nem HTTP.
// Saldos são inteiros — não existe valor fracionado neste domínio.
type Account struct {
	ID       string
	Balance  int64
	Currency string
}

// CurrencyUpper normaliza a moeda para comparação e para a resposta.
func (a Account) CurrencyUpper() string {
	return strings.ToUpper(a.Currency)
}

// AccountView é a conta como aparece no Outcome: o saldo simulado
// pós-transação emparelhado com o saldo original de entrada.
type AccountView struct {
	ID            string `json:"id"`
	Balance       int64  `json:"balance"`
	BalanceBefore int64  `json:"balance_before"`
	Currency      string `json:"currency"`
}

// ViewUnchanged monta a AccountView de uma conta que não mudou
// (transferência adiada, ou eco das contas num Outcome de falha).
func ViewUnchanged(a Account) AccountView {
	return AccountView{
		ID:            a.ID,
		Balance:       a.Balance,
		BalanceBefore: a.Balance,
		Currency:      a.CurrencyUpper(),
	}
}

// ViewWithBalance monta a AccountView com o saldo simulado.
func ViewWithBalance(a Account, balance int64) AccountView {
	return AccountView{
		ID:            a.ID,
		Balance:       balance,
		BalanceBefore: a.Balance,
		Currency:      a.CurrencyUpper(),
	}
}
