package tts

import "context"

// SynthesisRequest описывает один запрос на синтез речи с клонированием голоса
type SynthesisRequest struct {
	Text       string // текст для озвучивания
	SpeakerWav string // путь к WAV файлу с образцом голоса
	Language   string // код языка; пустая строка - модель выбирает сама
	OutputPath string // путь к итоговому WAV файлу
}

// Engine представляет интерфейс движка синтеза речи
type Engine interface {
	// Render синтезирует речь и записывает результат в req.OutputPath
	Render(ctx context.Context, req SynthesisRequest) error
	// Name возвращает название движка
	Name() string
}
