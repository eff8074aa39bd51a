package oracle

import "google.golang.org/genai"

func searchSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"book":      {Type: genai.TypeString, Description: "Nome do livro bíblico em Português (Cânon Católico)"},
				"chapter":   {Type: genai.TypeInteger, Description: "Número do capítulo"},
				"verse":     {Type: genai.TypeInteger, Description: "Número do versículo"},
				"text":      {Type: genai.TypeString, Description: "Texto do versículo na tradução solicitada"},
				"isPrimary": {Type: genai.TypeBoolean, Description: "Verdadeiro para os até 3 versículos mais centrais de uma busca temática"},
			},
			Required:         []string{"book", "chapter", "verse", "text"},
			PropertyOrdering: []string{"book", "chapter", "verse", "text", "isPrimary"},
		},
	}
}

func commentarySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"theological":     {Type: genai.TypeString, Description: "Comentário teológico à luz do Magistério e do Catecismo"},
			"patristic":       {Type: genai.TypeString, Description: "Citação ou paráfrase de um Padre da Igreja sobre a passagem"},
			"patristicSource": {Type: genai.TypeString, Description: "Autor e obra da citação patrística"},
			"jerusalem":       {Type: genai.TypeString, Description: "Nota histórico-crítica no estilo da Bíblia de Jerusalém"},
		},
		Required:         []string{"theological", "patristic", "patristicSource"},
		PropertyOrdering: []string{"theological", "patristic", "patristicSource", "jerusalem"},
	}
}

func crossReferenceSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"reference": {Type: genai.TypeString, Description: "Referência bíblica, ex: Isaías 7,14"},
				"text":      {Type: genai.TypeString, Description: "Texto do versículo referenciado"},
				"reason":    {Type: genai.TypeString, Description: "Por que a passagem se conecta ao versículo"},
			},
			Required:         []string{"reference", "text", "reason"},
			PropertyOrdering: []string{"reference", "text", "reason"},
		},
	}
}
