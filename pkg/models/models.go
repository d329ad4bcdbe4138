package models

// Utterance представляет одну реплику из входного CSV
type Utterance struct {
	ID   string `json:"id"`   // идентификатор строки, по умолчанию её порядковый номер
	Text string `json:"text"` // непустой текст для озвучивания
}

// SynthesisJob представляет задание на синтез одного WAV файла
type SynthesisJob struct {
	Index      int       `json:"index"` // порядковый номер реплики, с единицы
	Utterance  Utterance `json:"utterance"`
	Language   string    `json:"language,omitempty"` // пустая строка - модель выбирает сама
	OutputPath string    `json:"output_path"`
}

// Constants для вариантов запуска
const (
	VariantSimple   = "simple"
	VariantDetailed = "detailed"
	VariantAdvanced = "advanced"
)

// IsValidVariant проверяет корректность варианта запуска
func IsValidVariant(variant string) bool {
	switch variant {
	case VariantSimple, VariantDetailed, VariantAdvanced:
		return true
	default:
		return false
	}
}
