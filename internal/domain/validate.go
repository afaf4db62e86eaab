package domain

import (
	"strconv"
	"strings"
)

// Validadores sintáticos de campo. Rodam na ordem fixa definida pelo
// usecase; o primeiro que falhar decide o código de status da resposta.

// ValidateAmount checa a sintaxe do token de valor e o converte.
// Negativos e decimais são rejeitados pela presença de '-' ou '.'
// (erro de sintaxe, não de faixa) e o inteiro precisa ser maior que zero.
func ValidateAmount(raw string) (int64, error) {
	if raw == "" ||
		strings.ContainsRune(raw, '-') ||
		strings.ContainsRune(raw, '.') {
		return 0, ErrInvalidAmount
	}
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}

// ValidateCurrency checa a moeda contra a whitelist e devolve a forma
// normalizada em maiúsculas.
func ValidateCurrency(raw string) (string, error) {
	currency := strings.ToUpper(raw)
	if !SupportedCurrencies[currency] {
		return "", ErrUnsupportedCurrency
	}
	return currency, nil
}

// ValidateAccountID aceita apenas letras ASCII, dígitos, '-', '.' e '@'.
func ValidateAccountID(id string) error {
	if id == "" {
		return ErrInvalidAccountID
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '.' || r == '@':
		default:
			return ErrInvalidAccountID
		}
	}
	return nil
}

// ValidateExecuteBy checa o formato YYYY-MM-DD por faixas numéricas:
// ano 1000–9999, mês 1–12, dia 1–31. De propósito NÃO valida o
// calendário — 2025-02-30 passa. Comportamento herdado do contrato.
func ValidateExecuteBy(date string) error {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return ErrInvalidDate
	}
	year, ok := dateField(parts[0], 4)
	if !ok || year < 1000 {
		return ErrInvalidDate
	}
	month, ok := dateField(parts[1], 2)
	if !ok || month < 1 || month > 12 {
		return ErrInvalidDate
	}
	day, ok := dateField(parts[2], 2)
	if !ok || day < 1 || day > 31 {
		return ErrInvalidDate
	}
	return nil
}

func dateField(s string, width int) (int, bool) {
	if len(s) != width {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsDeferred decide o agendamento: data estritamente depois de hoje (UTC)
// adia a execução. A comparação é lexicográfica entre datas ISO, que para
// YYYY-MM-DD equivale à comparação cronológica.
func IsDeferred(executeBy, todayUTC string) bool {
	return executeBy > todayUTC
}
