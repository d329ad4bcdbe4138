package sanitize

import (
	"regexp"
	"strings"
)

// MaxLen - максимальная длина имени файла по умолчанию
const MaxLen = 100

var (
	// Пробельные символы, включая юникодные (NBSP, тонкий и идеографический пробелы)
	whitespaceRe = regexp.MustCompile(`[\s\v\p{Z}\x{85}]+`)
	forbiddenRe  = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// Sanitize приводит произвольную строку к безопасному имени файла
// длиной не больше MaxLen
func Sanitize(name string) string {
	return SanitizeMax(name, MaxLen)
}

// SanitizeMax приводит произвольную строку к безопасному имени файла:
// пробельные последовательности заменяются на подчеркивание, остальные
// символы вне [A-Za-z0-9._-] удаляются. Пустой результат заменяется на "utt".
func SanitizeMax(name string, maxLen int) string {
	name = strings.TrimSpace(name)
	name = whitespaceRe.ReplaceAllString(name, "_")
	name = forbiddenRe.ReplaceAllString(name, "")
	if name == "" {
		return "utt"
	}
	if len(name) > maxLen {
		name = name[:maxLen]
	}
	return name
}
