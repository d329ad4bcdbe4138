package runner

import (
	"fmt"
	"strings"

	"voice-cloner/internal/sanitize"
	"voice-cloner/pkg/models"
)

// slugWords - сколько первых слов реплики попадает в имя файла
const slugWords = 6

// slug строит короткую выжимку текста для имени файла
func slug(text string) string {
	words := strings.Fields(text)
	if len(words) > slugWords {
		words = words[:slugWords]
	}
	return sanitize.Sanitize(strings.Join(words, " "))
}

// DetailedFileName строит имя файла реплики для подробного варианта
func DetailedFileName(index int, u models.Utterance) string {
	rid := sanitize.Sanitize(u.ID)
	s := slug(u.Text)
	if s == "" {
		return fmt.Sprintf("%03d_%s.wav", index, rid)
	}
	return fmt.Sprintf("%03d_%s_%s.wav", index, rid, s)
}

// AdvancedFileName строит имя файла реплики для многоязычного варианта
func AdvancedFileName(index int, u models.Utterance, lang string) string {
	rid := sanitize.Sanitize(u.ID)
	s := slug(u.Text)
	if s == "" {
		s = "utt"
	}
	return fmt.Sprintf("%03d_%s_%s.%s.wav", index, rid, s, lang)
}

// ParseLanguages разбирает список языков через запятую,
// пустые элементы отбрасываются
func ParseLanguages(raw string) []string {
	var languages []string
	for _, lang := range strings.Split(raw, ",") {
		lang = strings.TrimSpace(lang)
		if lang != "" {
			languages = append(languages, lang)
		}
	}
	return languages
}
