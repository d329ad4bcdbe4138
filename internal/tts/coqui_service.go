package tts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// CoquiEngine синтезирует речь через CLI Coqui TTS с клонированием голоса
type CoquiEngine struct {
	logger  *zap.Logger
	model   string
	useCUDA bool
	timeout time.Duration
	ttsPath string // Путь к исполняемому файлу tts
}

// NewCoquiEngine создает новый движок Coqui TTS.
// Бинарь tts проверяется сразу, чтобы не падать посреди длинного прогона.
func NewCoquiEngine(cfg *EngineConfig, logger *zap.Logger) (*CoquiEngine, error) {
	e := &CoquiEngine{
		logger:  logger,
		model:   cfg.Model,
		useCUDA: cfg.UseCUDA,
		timeout: cfg.Timeout,
		ttsPath: cfg.BinPath,
	}

	if err := e.checkCoquiTTS(); err != nil {
		return nil, fmt.Errorf("coqui tts не установлен: %w", err)
	}

	return e, nil
}

// Name возвращает название движка
func (e *CoquiEngine) Name() string {
	return "coqui"
}

// Render синтезирует речь и записывает результат в req.OutputPath
func (e *CoquiEngine) Render(ctx context.Context, req SynthesisRequest) error {
	e.logger.Info("🎵 генерируем аудио через Coqui TTS",
		zap.String("text", req.Text),
		zap.String("language", req.Language),
		zap.String("out_path", req.OutputPath))

	// Нулевой таймаут оставляет синтез без ограничения по времени
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	args := []string{
		"--text", req.Text,
		"--model_name", e.model,
		"--speaker_wav", req.SpeakerWav,
		"--out_path", req.OutputPath,
	}
	if req.Language != "" {
		args = append(args, "--language_idx", req.Language)
	}
	if e.useCUDA {
		args = append(args, "--use_cuda", "true")
	} else {
		args = append(args, "--use_cuda", "false")
	}

	cmd := exec.CommandContext(ctx, e.ttsPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		e.logger.Error("ошибка выполнения coqui tts",
			zap.Error(err),
			zap.ByteString("output", output))
		return fmt.Errorf("ошибка выполнения coqui tts: %w", err)
	}

	// Проверяем, что аудио файл был создан
	if _, err := os.Stat(req.OutputPath); os.IsNotExist(err) {
		e.logger.Error("аудио файл не был создан", zap.String("filename", req.OutputPath))
		return fmt.Errorf("аудио файл не был создан: %s", req.OutputPath)
	}

	e.logger.Info("🎵 аудио успешно сгенерировано",
		zap.String("out_path", req.OutputPath))

	return nil
}

// checkCoquiTTS проверяет, что Coqui TTS установлен
func (e *CoquiEngine) checkCoquiTTS() error {
	// Пробуем разные пути к TTS
	ttsPaths := []string{
		"tts",                  // Глобальный путь
		"/usr/local/bin/tts",   // Симлинк
		"/opt/tts_env/bin/tts", // Volume mount
	}

	// Явно заданный путь проверяем без перебора
	if e.ttsPath != "" {
		ttsPaths = []string{e.ttsPath}
	}

	var lastErr error
	for _, ttsPath := range ttsPaths {
		cmd := exec.Command(ttsPath, "--version")
		output, err := cmd.Output()
		if err == nil {
			e.logger.Debug("coqui tts найден",
				zap.String("path", ttsPath),
				zap.String("version", string(output)))
			// Сохраняем рабочий путь
			e.ttsPath = ttsPath
			return nil
		}
		lastErr = err
	}

	return fmt.Errorf("coqui tts не найден ни в одном из путей: %w", lastErr)
}
