package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics содержит все метрики приложения
type Metrics struct {
	logger *zap.Logger

	// Счетчики
	synthesisJobs *prometheus.CounterVec

	// Гистограммы
	synthesisDuration *prometheus.HistogramVec

	// Gauge метрики
	linesLoaded prometheus.Gauge
	runProgress prometheus.Gauge

	// Мьютекс для thread-safety
	mu sync.RWMutex
}

// New создает новый экземпляр метрик
func New(logger *zap.Logger) *Metrics {
	m := &Metrics{
		logger: logger,

		// Счетчики заданий синтеза
		synthesisJobs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synthesis_jobs_total",
				Help: "Общее количество заданий синтеза",
			},
			[]string{"variant", "status"}, // variant: simple, detailed, advanced; status: success, failed
		),

		// Гистограмма времени синтеза
		synthesisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "synthesis_duration_seconds",
				Help:    "Время синтеза одного файла в секундах",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"engine"}, // coqui, server, noop
		),

		// Gauge строк входного CSV
		linesLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "csv_lines_loaded",
				Help: "Количество реплик, прочитанных из входного CSV",
			},
		),

		// Gauge прогресса текущего запуска
		runProgress: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "run_progress_ratio",
				Help: "Доля выполненных заданий текущего запуска",
			},
		),
	}

	// Регистрируем все метрики
	prometheus.MustRegister(
		m.synthesisJobs,
		m.synthesisDuration,
		m.linesLoaded,
		m.runProgress,
	)

	return m
}

// IncrementCounter увеличивает счетчик
func (m *Metrics) IncrementCounter(name string, labels ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var counter *prometheus.CounterVec

	switch name {
	case "synthesis_jobs_total":
		counter = m.synthesisJobs
	default:
		m.logger.Error("неизвестная метрика", zap.String("name", name))
		return
	}

	counter.WithLabelValues(labels...).Inc()
	m.logger.Debug("метрика увеличена", zap.String("metric", name), zap.Int("count", len(labels)))
}

// SetGauge устанавливает значение gauge метрики
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var gauge prometheus.Gauge

	switch name {
	case "csv_lines_loaded":
		gauge = m.linesLoaded
	case "run_progress_ratio":
		gauge = m.runProgress
	default:
		m.logger.Error("неизвестная gauge метрика", zap.String("name", name))
		return
	}

	gauge.Set(value)
	m.logger.Debug("метрика установлена", zap.String("metric", name), zap.Float64("value", value))
}

// ObserveHistogram добавляет наблюдение в гистограмму
func (m *Metrics) ObserveHistogram(name string, value float64, labels ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch name {
	case "synthesis_duration_seconds":
		m.synthesisDuration.WithLabelValues(labels...).Observe(value)
	default:
		m.logger.Error("неизвестная гистограмма", zap.String("name", name))
		return
	}

	m.logger.Debug("гистограмма обновлена", zap.String("metric", name), zap.Float64("value", value))
}

// RecordSynthesis записывает результат синтеза одного файла
func (m *Metrics) RecordSynthesis(variant string, success bool, seconds float64, engine string) {
	status := "success"
	if !success {
		status = "failed"
	}

	m.IncrementCounter("synthesis_jobs_total", variant, status)
	m.ObserveHistogram("synthesis_duration_seconds", seconds, engine)
}

// RecordLinesLoaded записывает количество реплик входного CSV
func (m *Metrics) RecordLinesLoaded(count int) {
	m.SetGauge("csv_lines_loaded", float64(count))
}

// RecordProgress записывает прогресс текущего запуска
func (m *Metrics) RecordProgress(done, total int) {
	if total <= 0 {
		return
	}
	m.SetGauge("run_progress_ratio", float64(done)/float64(total))
}

// Handler возвращает HTTP handler для метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
