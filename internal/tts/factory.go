package tts

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// EngineConfig содержит настройки движка синтеза
type EngineConfig struct {
	Kind      string        // coqui, server, noop
	Model     string        // название модели Coqui TTS
	UseCUDA   bool          // использовать GPU при синтезе
	BinPath   string        // явный путь к бинарю tts; пусто - ищем по известным путям
	ServerURL string        // адрес TTS сервера для движка server
	Timeout   time.Duration // таймаут синтеза одного файла; 0 - без ограничения
}

// NewEngine создает движок синтеза на основе конфигурации
func NewEngine(cfg *EngineConfig, logger *zap.Logger) (Engine, error) {
	switch cfg.Kind {
	case "coqui":
		engine, err := NewCoquiEngine(cfg, logger)
		if err != nil {
			return nil, err
		}
		return engine, nil
	case "server":
		return NewServerEngine(cfg, logger), nil
	case "noop":
		return NewNoopEngine(logger), nil
	default:
		return nil, fmt.Errorf("неподдерживаемый TTS движок: %s. Поддерживаются: 'coqui', 'server', 'noop'", cfg.Kind)
	}
}
