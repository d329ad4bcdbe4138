package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ServerEngine синтезирует речь через HTTP API внешнего TTS сервера.
// Образец голоса загружается на сервер вместе с каждым запросом.
type ServerEngine struct {
	logger  *zap.Logger
	baseURL string
	client  *http.Client
}

// NewServerEngine создает новый движок TTS сервера
func NewServerEngine(cfg *EngineConfig, logger *zap.Logger) *ServerEngine {
	return &ServerEngine{
		logger:  logger,
		baseURL: cfg.ServerURL,
		client: &http.Client{
			Timeout: cfg.Timeout, // Таймаут для генерации аудио; 0 - без ограничения
		},
	}
}

// Name возвращает название движка
func (e *ServerEngine) Name() string {
	return "server"
}

// Render синтезирует речь и записывает результат в req.OutputPath
func (e *ServerEngine) Render(ctx context.Context, req SynthesisRequest) error {
	e.logger.Info("🎵 генерируем аудио через TTS сервер",
		zap.String("text", req.Text),
		zap.String("language", req.Language),
		zap.Int("text_length", len(req.Text)))

	audioData, err := e.generateAudio(ctx, req)
	if err != nil {
		return fmt.Errorf("ошибка генерации аудио: %w", err)
	}

	if err := os.WriteFile(req.OutputPath, audioData, 0644); err != nil {
		return fmt.Errorf("ошибка записи аудио файла: %w", err)
	}

	e.logger.Info("🎵 аудио успешно сгенерировано",
		zap.String("out_path", req.OutputPath),
		zap.Int("audio_size", len(audioData)))

	return nil
}

// generateAudio отправляет запрос к TTS серверу и получает аудио
func (e *ServerEngine) generateAudio(ctx context.Context, req SynthesisRequest) ([]byte, error) {
	// Проверяем существование образца голоса
	if _, err := os.Stat(req.SpeakerWav); os.IsNotExist(err) {
		return nil, fmt.Errorf("образец голоса не найден: %s", req.SpeakerWav)
	}

	file, err := os.Open(req.SpeakerWav)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия образца голоса: %w", err)
	}
	defer file.Close()

	// Создаем multipart form data
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	// Добавляем поля формы
	_ = writer.WriteField("text", req.Text)
	if req.Language != "" {
		_ = writer.WriteField("language", req.Language)
	}

	// Добавляем образец голоса
	part, err := writer.CreateFormFile("speaker_wav", filepath.Base(req.SpeakerWav))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания формы: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("ошибка копирования образца голоса: %w", err)
	}

	writer.Close()

	url := fmt.Sprintf("%s/api/tts", e.baseURL)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, body)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	e.logger.Info("🎵 отправляем запрос к TTS серверу",
		zap.String("url", url),
		zap.String("text", req.Text))

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("неожиданный статус от TTS сервера: %d, тело: %s", resp.StatusCode, respBody)
	}

	// Читаем аудио данные
	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения аудио данных: %w", err)
	}

	return audioData, nil
}
