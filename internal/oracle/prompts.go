package oracle

import (
	"fmt"
	"strings"

	"github.com/taiwoajasa245/verbum-dei-api/internal/bible"
)

func searchPrompt(req SearchRequest) string {
	_, translation := bible.ResolveTranslation(req.Translation)

	var b strings.Builder
	b.WriteString("Você é uma API de Busca Bíblica Católica.\n")
	fmt.Fprintf(&b, "O usuário pesquisou: %q.\n\n", req.Query)
	b.WriteString("TAREFA:\n")
	b.WriteString("1. Identifique se a busca é uma referência (ex: \"Gn 3,15-20\", \"João 3:16\", \"Salmos 23\") ou um tema (ex: \"Fé\", \"Eucaristia\").\n")
	b.WriteString("2. Retorne os versículos exatos da Bíblia Católica, incluindo os deuterocanônicos (Tobias, Judite, 1 e 2 Macabeus, Sabedoria, Eclesiástico, Baruc).\n")
	fmt.Fprintf(&b, "3. Use a tradução %s.\n", translation)
	b.WriteString("4. Se for uma referência a um capítulo ou intervalo, retorne TODOS os versículos do capítulo ou intervalo, em ordem.\n")
	b.WriteString("5. Se for um tema, retorne os 10 versículos mais relevantes e marque isPrimary=true em no máximo 3 deles.\n")
	if req.Book != "" {
		fmt.Fprintf(&b, "6. Retorne apenas versículos do livro %s; exclua qualquer outro livro.\n", req.Book)
	}
	b.WriteString("\nMantenha fidelidade total ao texto bíblico. Retorne APENAS o JSON array.")
	return b.String()
}

func commentaryPrompt(v bible.Verse) string {
	return fmt.Sprintf(`Atue como um teólogo católico fiel ao Magistério da Igreja, à Sagrada Tradição e ao Catecismo da Igreja Católica.

Passagem:
Livro: %s
Capítulo: %d
Versículo: %d
Texto: %q

Produza:
- theological: comentário teológico e pastoral, reverente, com no máximo 200 palavras.
- patristic: uma citação ou paráfrase fiel de um Padre ou Doutor da Igreja sobre esta passagem.
- patristicSource: o autor e, se possível, a obra da citação.
- jerusalem: opcionalmente, uma breve nota histórico-crítica no estilo da Bíblia de Jerusalém.

Evite interpretações que contradigam a doutrina católica. Retorne APENAS o JSON.`,
		v.Book, v.Chapter, v.Verse, v.Text)
}

func crossReferencePrompt(v bible.Verse) string {
	return fmt.Sprintf(`Você é um exegeta católico.
Para a passagem %s (%q), indique de 3 a 4 referências cruzadas da Bíblia Católica:
tipologia entre Antigo e Novo Testamento, cumprimento de profecias ou paralelos temáticos.
Para cada uma, informe a referência, o texto e o motivo da conexão em uma frase.
Retorne APENAS o JSON array.`, v.Reference(), v.Text)
}
