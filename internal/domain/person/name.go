package person

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name es el nombre descompuesto que expone la API.
type Name struct {
	First  string
	Middle string
	Last   string
}

// NameCasing política de mayúsculas al recomponer el nombre para almacenarlo.
type NameCasing string

const (
	NameCasingPreserve NameCasing = "preserve"
	NameCasingUpper    NameCasing = "upper"
)

// SplitName descompone un nombre completo por bloques de espacios:
// 1 token → First; 2 → First + Last; 3 o más → First, Last y el resto como Middle.
func SplitName(fullName string) Name {
	tokens := strings.Fields(fullName)
	switch len(tokens) {
	case 0:
		return Name{}
	case 1:
		return Name{First: tokens[0]}
	case 2:
		return Name{First: tokens[0], Last: tokens[1]}
	default:
		return Name{
			First:  tokens[0],
			Middle: strings.Join(tokens[1:len(tokens)-1], " "),
			Last:   tokens[len(tokens)-1],
		}
	}
}

// JoinName recompone el nombre con un espacio entre partes no vacías y aplica la política de mayúsculas.
func JoinName(n Name, casing NameCasing) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{n.First, n.Middle, n.Last} {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			parts = append(parts, p)
		}
	}
	full := strings.Join(parts, " ")
	if casing == NameCasingUpper {
		// cases.Caser no se comparte entre goroutines.
		return cases.Upper(language.Und).String(full)
	}
	return full
}
