package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voice-cloner/internal/audio"
	"voice-cloner/internal/config"
	"voice-cloner/internal/metrics"
	"voice-cloner/internal/runner"
	"voice-cloner/internal/tts"
	"voice-cloner/pkg/models"

	"go.uber.org/zap"
)

func main() {
	var (
		variant    = flag.String("variant", models.VariantSimple, "Вариант запуска: simple, detailed или advanced")
		speakerWav = flag.String("speaker-wav", config.DefaultSpeakerWav, "Путь к WAV файлу с образцом голоса")
		inputCSV   = flag.String("input-csv", config.DefaultInputCSV, "Путь к входному CSV (для detailed/advanced)")
		outDir     = flag.String("outdir", config.DefaultOutputDir, "Каталог для итоговых WAV файлов")
		model      = flag.String("model", config.DefaultModel, "Название модели Coqui TTS")
		language   = flag.String("language", config.DefaultLanguage, "Код языка для simple/detailed (например, 'en', 'fr-fr')")
		langs      = flag.String("langs", config.DefaultAdvancedLangs, "Языки для advanced через запятую (например, 'en,fr-fr,pt-br')")
		cpu        = flag.Bool("cpu", false, "Принудительно использовать CPU")
	)
	flag.Parse()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера
	logger, err := initLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if !models.IsValidVariant(*variant) {
		logger.Fatal("неизвестный вариант запуска",
			zap.String("variant", *variant),
			zap.Strings("supported", []string{models.VariantSimple, models.VariantDetailed, models.VariantAdvanced}))
	}

	// Без образца голоса синтез не запускаем
	if _, err := os.Stat(*speakerWav); err != nil {
		logger.Fatal("образец голоса не найден",
			zap.String("speaker_wav", *speakerWav),
			zap.Error(err))
	}

	inspectReference(*speakerWav, logger)

	fmt.Printf("Loading model: %s (CPU=%s)\n", *model, cpuMode(*cpu))

	// Инициализация TTS движка
	engine, err := tts.NewEngine(&tts.EngineConfig{
		Kind:      cfg.TTS.Engine,
		Model:     *model,
		UseCUDA:   !*cpu,
		BinPath:   cfg.TTS.BinPath,
		ServerURL: cfg.TTS.ServerURL,
		Timeout:   time.Duration(cfg.TTS.TimeoutSeconds) * time.Second,
	}, logger)
	if err != nil {
		logger.Fatal("ошибка создания TTS движка", zap.Error(err))
	}

	logger.Info("TTS движок инициализирован",
		zap.String("engine", engine.Name()),
		zap.String("model", *model),
		zap.Bool("cpu", *cpu))

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		logger.Fatal("ошибка создания каталога результатов",
			zap.String("outdir", *outDir),
			zap.Error(err))
	}

	// Инициализация метрик
	metricsSystem := metrics.New(logger)

	// Создание контекста для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Обработка сигналов: прерывание останавливает прогон после текущего задания
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Warn("получен сигнал завершения, останавливаем синтез", zap.String("signal", sig.String()))
		cancel()
	}()

	// Запуск HTTP сервера метрик для длинных прогонов
	if cfg.Metrics.Addr != "" {
		metricsHandler := metrics.NewHandler(metricsSystem, logger)
		go startMetricsServer(ctx, cfg.Metrics.Addr, metricsHandler, logger)
	}

	run := runner.NewRunner(engine, metricsSystem, logger)

	switch *variant {
	case models.VariantSimple:
		err = run.RunSimple(ctx, *speakerWav, *outDir, *language)
	case models.VariantDetailed:
		err = run.RunDetailed(ctx, *speakerWav, *inputCSV, *outDir, *language)
	case models.VariantAdvanced:
		languages := runner.ParseLanguages(*langs)
		if len(languages) == 0 {
			logger.Fatal("не задан ни один язык для варианта advanced", zap.String("langs", *langs))
		}
		err = run.RunAdvanced(ctx, *speakerWav, *inputCSV, *outDir, languages)
	}
	if err != nil {
		logger.Fatal("ошибка выполнения",
			zap.String("variant", *variant),
			zap.Error(err))
	}

	fmt.Println("Done. See the `outputs` folder for results.")
}

// initLogger инициализирует логгер. Журнал пишется в stderr,
// stdout остается за строками прогресса.
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.App.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = cfg.App.GetLogLevel()

	return zapCfg.Build()
}

// cpuMode возвращает подпись режима устройства для стартовой строки
func cpuMode(cpu bool) string {
	if cpu {
		return "yes"
	}
	return "auto"
}

// inspectReference читает характеристики образца голоса.
// Проблемы с чтением не останавливают запуск, существование файла уже проверено.
func inspectReference(path string, logger *zap.Logger) {
	info, err := audio.NewInspector(logger).Inspect(path)
	if err != nil {
		logger.Warn("не удалось прочитать образец голоса",
			zap.String("file", path),
			zap.Error(err))
		return
	}

	logger.Info("образец голоса",
		zap.String("file", path),
		zap.Duration("duration", info.Duration),
		zap.Int("sample_rate", info.SampleRate),
		zap.Int("channels", info.NumChannels))

	if info.IsTooShort() {
		logger.Warn("образец голоса короче рекомендуемого минимума, качество клонирования может пострадать",
			zap.Duration("duration", info.Duration),
			zap.Duration("min_duration", audio.MinReferenceDuration))
	}
}

// startMetricsServer запускает HTTP сервер для метрик
func startMetricsServer(ctx context.Context, addr string, handler *metrics.Handler, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler.MetricsHandler())
	mux.HandleFunc("/health", handler.HealthHandler)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	logger.Info("HTTP сервер метрик запущен", zap.String("address", server.Addr))

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("ошибка HTTP сервера метрик", zap.Error(err))
		}
	}()

	// Ожидание сигнала завершения
	<-ctx.Done()

	// Graceful shutdown HTTP сервера
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("ошибка при остановке HTTP сервера метрик", zap.Error(err))
	}

	logger.Info("HTTP сервер метрик остановлен")
}
