package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep/wav"
	"go.uber.org/zap"
)

// MinReferenceDuration - минимальная рекомендуемая длительность образца голоса.
// Более короткие записи заметно ухудшают клонирование.
const MinReferenceDuration = 3 * time.Second

// Info содержит характеристики WAV файла с образцом голоса
type Info struct {
	Duration    time.Duration `json:"duration"`
	SampleRate  int           `json:"sample_rate"`
	NumChannels int           `json:"num_channels"`
	Precision   int           `json:"precision"` // байт на сэмпл одного канала
}

// IsTooShort сообщает, что образец короче рекомендуемого минимума
func (i *Info) IsTooShort() bool {
	return i.Duration < MinReferenceDuration
}

// Inspector читает характеристики аудио файлов
type Inspector struct {
	logger *zap.Logger
}

// NewInspector создает новый инспектор аудио
func NewInspector(logger *zap.Logger) *Inspector {
	return &Inspector{
		logger: logger,
	}
}

// Inspect декодирует WAV файл и возвращает его характеристики
func (ins *Inspector) Inspect(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования wav: %w", err)
	}
	defer streamer.Close()

	info := &Info{
		Duration:    format.SampleRate.D(streamer.Len()),
		SampleRate:  int(format.SampleRate),
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	}

	ins.logger.Debug("образец голоса прочитан",
		zap.String("file", path),
		zap.Duration("duration", info.Duration),
		zap.Int("sample_rate", info.SampleRate),
		zap.Int("channels", info.NumChannels))

	return info, nil
}
