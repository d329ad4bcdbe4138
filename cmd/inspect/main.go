package main

import (
	"flag"
	"fmt"
	"log"

	"voice-cloner/internal/config"
	"voice-cloner/internal/lines"
	"voice-cloner/internal/runner"
	"voice-cloner/pkg/models"

	"go.uber.org/zap"
)

func main() {
	var (
		inputCSV = flag.String("input-csv", config.DefaultInputCSV, "Путь к входному CSV")
		outDir   = flag.String("outdir", config.DefaultOutputDir, "Каталог, в который пойдут WAV файлы")
		language = flag.String("language", config.DefaultLanguage, "Код языка для detailed плана")
		langs    = flag.String("langs", config.DefaultAdvancedLangs, "Языки для advanced плана через запятую")
		advanced = flag.Bool("advanced", false, "Построить план для advanced вместо detailed")
	)
	flag.Parse()

	// Инициализация логгера
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Ошибка инициализации логгера:", err)
	}
	defer logger.Sync()

	// Загрузка строк из CSV
	utterances, err := lines.Load(*inputCSV, logger)
	if err != nil {
		logger.Fatal("Ошибка загрузки CSV", zap.Error(err))
	}

	var jobs []models.SynthesisJob
	if *advanced {
		languages := runner.ParseLanguages(*langs)
		if len(languages) == 0 {
			logger.Fatal("не задан ни один язык для advanced плана", zap.String("langs", *langs))
		}
		jobs = runner.PlanAdvanced(utterances, *outDir, languages)
	} else {
		jobs = runner.PlanDetailed(utterances, *outDir, *language)
	}

	fmt.Printf("Строк в CSV: %d, файлов будет создано: %d\n", len(utterances), len(jobs))
	for _, job := range jobs {
		fmt.Printf("%3d  id=%-10s  [%s]  %s\n", job.Index, job.Utterance.ID, job.Language, job.OutputPath)
	}

	logger.Info("План синтеза построен",
		zap.Int("utterances", len(utterances)),
		zap.Int("jobs", len(jobs)))
}
