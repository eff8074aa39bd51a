package bible

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

type BookGroup string

const (
	GroupPentateuch      BookGroup = "Pentateuco"
	GroupHistorical      BookGroup = "Livros Históricos"
	GroupWisdom          BookGroup = "Livros Sapienciais"
	GroupProphetic       BookGroup = "Livros Proféticos"
	GroupGospels         BookGroup = "Evangelhos"
	GroupActs            BookGroup = "Atos dos Apóstolos"
	GroupPaulineEpistles BookGroup = "Cartas Paulinas"
	GroupGeneralEpistles BookGroup = "Cartas Católicas"
	GroupRevelation      BookGroup = "Apocalipse"
)

// Book is one entry of the Catholic canon.
type Book struct {
	Name             string    `json:"name"`
	Group            BookGroup `json:"group"`
	Order            int       `json:"order"`
	Deuterocanonical bool      `json:"deuterocanonical,omitempty"`
}

// Books lists the 73 books of the Catholic canon in canonical order.
var Books = []Book{
	{"Gênesis", GroupPentateuch, 1, false},
	{"Êxodo", GroupPentateuch, 2, false},
	{"Levítico", GroupPentateuch, 3, false},
	{"Números", GroupPentateuch, 4, false},
	{"Deuteronômio", GroupPentateuch, 5, false},
	{"Josué", GroupHistorical, 6, false},
	{"Juízes", GroupHistorical, 7, false},
	{"Rute", GroupHistorical, 8, false},
	{"1 Samuel", GroupHistorical, 9, false},
	{"2 Samuel", GroupHistorical, 10, false},
	{"1 Reis", GroupHistorical, 11, false},
	{"2 Reis", GroupHistorical, 12, false},
	{"1 Crônicas", GroupHistorical, 13, false},
	{"2 Crônicas", GroupHistorical, 14, false},
	{"Esdras", GroupHistorical, 15, false},
	{"Neemias", GroupHistorical, 16, false},
	{"Tobias", GroupHistorical, 17, true},
	{"Judite", GroupHistorical, 18, true},
	{"Ester", GroupHistorical, 19, false},
	{"1 Macabeus", GroupHistorical, 20, true},
	{"2 Macabeus", GroupHistorical, 21, true},
	{"Jó", GroupWisdom, 22, false},
	{"Salmos", GroupWisdom, 23, false},
	{"Provérbios", GroupWisdom, 24, false},
	{"Eclesiastes", GroupWisdom, 25, false},
	{"Cântico dos Cânticos", GroupWisdom, 26, false},
	{"Sabedoria", GroupWisdom, 27, true},
	{"Eclesiástico", GroupWisdom, 28, true},
	{"Isaías", GroupProphetic, 29, false},
	{"Jeremias", GroupProphetic, 30, false},
	{"Lamentações", GroupProphetic, 31, false},
	{"Baruc", GroupProphetic, 32, true},
	{"Ezequiel", GroupProphetic, 33, false},
	{"Daniel", GroupProphetic, 34, false},
	{"Oseias", GroupProphetic, 35, false},
	{"Joel", GroupProphetic, 36, false},
	{"Amós", GroupProphetic, 37, false},
	{"Abdias", GroupProphetic, 38, false},
	{"Jonas", GroupProphetic, 39, false},
	{"Miqueias", GroupProphetic, 40, false},
	{"Naum", GroupProphetic, 41, false},
	{"Habacuc", GroupProphetic, 42, false},
	{"Sofonias", GroupProphetic, 43, false},
	{"Ageu", GroupProphetic, 44, false},
	{"Zacarias", GroupProphetic, 45, false},
	{"Malaquias", GroupProphetic, 46, false},
	{"Mateus", GroupGospels, 47, false},
	{"Marcos", GroupGospels, 48, false},
	{"Lucas", GroupGospels, 49, false},
	{"João", GroupGospels, 50, false},
	{"Atos dos Apóstolos", GroupActs, 51, false},
	{"Romanos", GroupPaulineEpistles, 52, false},
	{"1 Coríntios", GroupPaulineEpistles, 53, false},
	{"2 Coríntios", GroupPaulineEpistles, 54, false},
	{"Gálatas", GroupPaulineEpistles, 55, false},
	{"Efésios", GroupPaulineEpistles, 56, false},
	{"Filipenses", GroupPaulineEpistles, 57, false},
	{"Colossenses", GroupPaulineEpistles, 58, false},
	{"1 Tessalonicenses", GroupPaulineEpistles, 59, false},
	{"2 Tessalonicenses", GroupPaulineEpistles, 60, false},
	{"1 Timóteo", GroupPaulineEpistles, 61, false},
	{"2 Timóteo", GroupPaulineEpistles, 62, false},
	{"Tito", GroupPaulineEpistles, 63, false},
	{"Filemom", GroupPaulineEpistles, 64, false},
	{"Hebreus", GroupPaulineEpistles, 65, false},
	{"Tiago", GroupGeneralEpistles, 66, false},
	{"1 Pedro", GroupGeneralEpistles, 67, false},
	{"2 Pedro", GroupGeneralEpistles, 68, false},
	{"1 João", GroupGeneralEpistles, 69, false},
	{"2 João", GroupGeneralEpistles, 70, false},
	{"3 João", GroupGeneralEpistles, 71, false},
	{"Judas", GroupGeneralEpistles, 72, false},
	{"Apocalipse", GroupRevelation, 73, false},
}

// Fold returns a comparison key for s: NFC-normalized, trimmed and case-folded.
// "JOÃO", "joão" and a decomposed "João" all fold to the same key.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

var booksByKey = func() map[string]Book {
	m := make(map[string]Book, len(Books))
	for _, b := range Books {
		m[Fold(b.Name)] = b
	}
	return m
}()

// LookupBook finds a canonical book by name, ignoring case and Unicode normalization.
func LookupBook(name string) (Book, bool) {
	b, ok := booksByKey[Fold(name)]
	return b, ok
}

// BooksByGroup returns the canon grouped for display, each group in canonical order.
func BooksByGroup() map[BookGroup][]Book {
	out := make(map[BookGroup][]Book)
	for _, b := range Books {
		out[b.Group] = append(out[b.Group], b)
	}
	return out
}

const DefaultTranslation = "AVE_MARIA"

var Translations = map[string]string{
	"AVE_MARIA":    "Bíblia Ave Maria (Português)",
	"CNBB":         "Bíblia CNBB (Português)",
	"JERUSALEM":    "Bíblia de Jerusalém (Português)",
	"NVI":          "Nova Versão Internacional (Português)",
	"VULGATA":      "Vulgata Clementina (Latim)",
	"DOUAY_RHEIMS": "Douay-Rheims (Inglês)",
}

// ResolveTranslation maps a translation key to a known key and its display name.
// Unknown or empty keys fall back to DefaultTranslation.
func ResolveTranslation(key string) (string, string) {
	key = strings.ToUpper(strings.TrimSpace(key))
	if name, ok := Translations[key]; ok {
		return key, name
	}
	return DefaultTranslation, Translations[DefaultTranslation]
}

// TranslationKeys returns the known translation keys sorted alphabetically.
func TranslationKeys() []string {
	keys := make([]string, 0, len(Translations))
	for k := range Translations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
