// Package instruction implementa a gramática textual das instruções de
// pagamento: busca sequencial de palavras-chave com um cursor explícito
// sobre o texto cru. Nenhum token é interpretado aqui — conteúdo é
// problema dos validadores.
package instruction

import "strings"

// FindKeyword localiza a primeira ocorrência de keyword em text a partir
// de from, sem diferenciar maiúsculas. O casamento é puramente textual
// (substring), sem fronteira de palavra — uma keyword pode casar dentro
// de um token maior. Retorna -1 quando não encontra.
func FindKeyword(text, keyword string, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(text) {
		return -1
	}
	idx := strings.Index(
		strings.ToUpper(text[from:]),
		strings.ToUpper(keyword),
	)
	if idx < 0 {
		return -1
	}
	return from + idx
}

// ExtractWord devolve a maior sequência de caracteres sem espaço/tab a
// partir de from (espaços à esquerda são descartados) e a posição logo
// após a palavra. Palavra vazia é válida — fim do texto, por exemplo.
func ExtractWord(text string, from int) (string, int) {
	if from < 0 {
		from = 0
	}
	start := from
	for start < len(text) && isSpace(text[start]) {
		start++
	}
	end := start
	for end < len(text) && !isSpace(text[end]) {
		end++
	}
	return text[start:end], end
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// cursor percorre a instrução da esquerda para a direita. Cada passo da
// gramática avança a posição para estritamente depois da região casada,
// garantindo a ordem fixa das palavras-chave.
type cursor struct {
	text string
	pos  int
}

// keyword tenta casar kw a partir da posição atual. Sucesso move o
// cursor para depois da keyword; fracasso não move nada.
func (c *cursor) keyword(kw string) bool {
	idx := FindKeyword(c.text, kw, c.pos)
	if idx < 0 {
		return false
	}
	c.pos = idx + len(kw)
	return true
}

// word consome o próximo token a partir da posição atual.
func (c *cursor) word() string {
	w, next := ExtractWord(c.text, c.pos)
	c.pos = next
	return w
}
