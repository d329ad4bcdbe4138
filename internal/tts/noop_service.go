package tts

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"
)

// Формат файла-заглушки: моно PCM16, 16 кГц
var noopFormat = beep.Format{SampleRate: 16000, NumChannels: 1, Precision: 2}

// silenceDuration - длительность тишины в файле-заглушке
const silenceDuration = 200 * time.Millisecond

// NoopEngine записывает короткий тихий WAV вместо настоящего синтеза.
// Позволяет прогнать весь пайплайн без установленной модели.
type NoopEngine struct {
	logger *zap.Logger
}

// NewNoopEngine создает новый заглушечный движок
func NewNoopEngine(logger *zap.Logger) *NoopEngine {
	return &NoopEngine{
		logger: logger,
	}
}

// Name возвращает название движка
func (e *NoopEngine) Name() string {
	return "noop"
}

// Render записывает тихий WAV в req.OutputPath
func (e *NoopEngine) Render(ctx context.Context, req SynthesisRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(req.OutputPath)
	if err != nil {
		return fmt.Errorf("ошибка создания аудио файла: %w", err)
	}
	defer f.Close()

	silence := beep.Silence(noopFormat.SampleRate.N(silenceDuration))
	if err := wav.Encode(f, silence, noopFormat); err != nil {
		return fmt.Errorf("ошибка записи аудио файла: %w", err)
	}

	e.logger.Debug("записан тихий wav",
		zap.String("out_path", req.OutputPath),
		zap.Duration("duration", silenceDuration))

	return nil
}
