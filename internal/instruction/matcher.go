package instruction

import (
	"strings"

	"github.com/Guilherme-G-Cadilhe/Go-InstructFlow-Payment-Instructions-API/internal/domain"
)

// Parse tenta os dois dialetos suportados, DEBIT primeiro. Retorna nil
// quando nenhum casa ou quando o casamento deixa token obrigatório vazio —
// falha estrutural, nunca erro.
func Parse(text string) *domain.Draft {
	for _, match := range []func(string) *domain.Draft{matchDebit, matchCredit} {
		if draft := match(text); draft != nil && draft.Complete() {
			return draft
		}
	}
	return nil
}

// matchDebit casa o dialeto
//
//	DEBIT <valor> <moeda> FROM ACCOUNT <contaDébito>
//	FOR CREDIT TO ACCOUNT <contaCrédito> [ON <data>]
func matchDebit(text string) *domain.Draft {
	c := &cursor{text: text}
	if !c.keyword("DEBIT") {
		return nil
	}
	amount := c.word()
	currency := c.word()
	if !c.keyword("FROM") || !c.keyword("ACCOUNT") {
		return nil
	}
	debitAccount := c.word()
	if !c.keyword("FOR") || !c.keyword("CREDIT") ||
		!c.keyword("TO") || !c.keyword("ACCOUNT") {
		return nil
	}
	creditAccount := c.word()

	draft := &domain.Draft{
		Type:          domain.TypeDebit,
		Amount:        amount,
		Currency:      strings.ToUpper(currency),
		DebitAccount:  debitAccount,
		CreditAccount: creditAccount,
	}
	draft.ExecuteBy = matchExecuteBy(c)
	return draft
}

// matchCredit casa o dialeto simétrico
//
//	CREDIT <valor> <moeda> TO ACCOUNT <contaCrédito>
//	FOR DEBIT FROM ACCOUNT <contaDébito> [ON <data>]
func matchCredit(text string) *domain.Draft {
	c := &cursor{text: text}
	if !c.keyword("CREDIT") {
		return nil
	}
	amount := c.word()
	currency := c.word()
	if !c.keyword("TO") || !c.keyword("ACCOUNT") {
		return nil
	}
	creditAccount := c.word()
	if !c.keyword("FOR") || !c.keyword("DEBIT") ||
		!c.keyword("FROM") || !c.keyword("ACCOUNT") {
		return nil
	}
	debitAccount := c.word()

	draft := &domain.Draft{
		Type:          domain.TypeCredit,
		Amount:        amount,
		Currency:      strings.ToUpper(currency),
		DebitAccount:  debitAccount,
		CreditAccount: creditAccount,
	}
	draft.ExecuteBy = matchExecuteBy(c)
	return draft
}

// matchExecuteBy consome a cláusula final opcional "ON <data>".
// Ausência da cláusula não é erro; um "ON" sem data vira um executeBy
// vazio e cai na validação de formato de data mais adiante.
func matchExecuteBy(c *cursor) *string {
	if !c.keyword("ON") {
		return nil
	}
	date := c.word()
	return &date
}
