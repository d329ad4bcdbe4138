package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"voice-cloner/internal/lines"
	"voice-cloner/internal/metrics"
	"voice-cloner/internal/tts"
	"voice-cloner/pkg/models"
)

// simpleSentence - фиксированная фраза для быстрой проверки клонирования
const simpleSentence = "Hello, this is a quick voice cloning test."

// simpleFileName - имя итогового файла быстрой проверки
const simpleFileName = "simple_demo.wav"

// Runner выполняет варианты озвучивания поверх выбранного движка.
// Задания выполняются строго последовательно, первая ошибка
// останавливает весь прогон.
type Runner struct {
	engine  tts.Engine
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewRunner создает новый исполнитель вариантов
func NewRunner(engine tts.Engine, m *metrics.Metrics, logger *zap.Logger) *Runner {
	return &Runner{
		engine:  engine,
		metrics: m,
		logger:  logger,
	}
}

// RunSimple озвучивает одну фиксированную фразу в outDir/simple_demo.wav
func (r *Runner) RunSimple(ctx context.Context, speakerWav, outDir, language string) error {
	outPath := filepath.Join(outDir, simpleFileName)

	if err := r.synthesizeToFile(ctx, models.VariantSimple, simpleSentence, speakerWav, outPath, language); err != nil {
		return err
	}
	fmt.Printf("[simple] Wrote: %s\n", outPath)

	return nil
}

// RunDetailed озвучивает каждую реплику CSV в отдельный файл
func (r *Runner) RunDetailed(ctx context.Context, speakerWav, csvPath, outDir, language string) error {
	utterances, err := lines.Load(csvPath, r.logger)
	if err != nil {
		return err
	}
	r.metrics.RecordLinesLoaded(len(utterances))

	jobs := PlanDetailed(utterances, outDir, language)
	for n, job := range jobs {
		if err := r.synthesizeJob(ctx, models.VariantDetailed, speakerWav, job); err != nil {
			return err
		}
		r.metrics.RecordProgress(n+1, len(jobs))
		fmt.Printf("[detailed] %d/%d -> %s\n", job.Index, len(utterances), job.OutputPath)
	}

	return nil
}

// RunAdvanced озвучивает каждую реплику CSV на каждом из языков,
// раскладывая файлы по подкаталогам языков
func (r *Runner) RunAdvanced(ctx context.Context, speakerWav, csvPath, outDir string, languages []string) error {
	utterances, err := lines.Load(csvPath, r.logger)
	if err != nil {
		return err
	}
	r.metrics.RecordLinesLoaded(len(utterances))

	jobs := PlanAdvanced(utterances, outDir, languages)
	for n, job := range jobs {
		if err := r.synthesizeJob(ctx, models.VariantAdvanced, speakerWav, job); err != nil {
			return err
		}
		r.metrics.RecordProgress(n+1, len(jobs))
		fmt.Printf("[advanced:%s] %d/%d -> %s\n", job.Language, job.Index, len(utterances), job.OutputPath)
	}

	return nil
}

// PlanDetailed строит задания подробного варианта: файл на каждую реплику
func PlanDetailed(utterances []models.Utterance, outDir, language string) []models.SynthesisJob {
	jobs := make([]models.SynthesisJob, 0, len(utterances))
	for i, u := range utterances {
		jobs = append(jobs, models.SynthesisJob{
			Index:      i + 1,
			Utterance:  u,
			Language:   language,
			OutputPath: filepath.Join(outDir, DetailedFileName(i+1, u)),
		})
	}
	return jobs
}

// PlanAdvanced строит задания многоязычного варианта:
// файл на каждую пару реплика-язык, в порядке перечисления языков
func PlanAdvanced(utterances []models.Utterance, outDir string, languages []string) []models.SynthesisJob {
	jobs := make([]models.SynthesisJob, 0, len(utterances)*len(languages))
	for i, u := range utterances {
		for _, lang := range languages {
			jobs = append(jobs, models.SynthesisJob{
				Index:      i + 1,
				Utterance:  u,
				Language:   lang,
				OutputPath: filepath.Join(outDir, lang, AdvancedFileName(i+1, u, lang)),
			})
		}
	}
	return jobs
}

// synthesizeJob синтезирует одно задание
func (r *Runner) synthesizeJob(ctx context.Context, variant, speakerWav string, job models.SynthesisJob) error {
	return r.synthesizeToFile(ctx, variant, job.Utterance.Text, speakerWav, job.OutputPath, job.Language)
}

// synthesizeToFile готовит каталог и синтезирует один файл.
// Существующий файл перезаписывается без предупреждения.
func (r *Runner) synthesizeToFile(ctx context.Context, variant, text, speakerWav, outPath, language string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("ошибка создания каталога %s: %w", filepath.Dir(outPath), err)
	}

	start := time.Now()
	err := r.engine.Render(ctx, tts.SynthesisRequest{
		Text:       text,
		SpeakerWav: speakerWav,
		Language:   language,
		OutputPath: outPath,
	})
	r.metrics.RecordSynthesis(variant, err == nil, time.Since(start).Seconds(), r.engine.Name())
	if err != nil {
		return fmt.Errorf("ошибка синтеза %s: %w", outPath, err)
	}

	return nil
}
