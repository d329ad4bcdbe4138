package runner

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"voice-cloner/internal/metrics"
	"voice-cloner/internal/tts"
	"voice-cloner/pkg/models"
)

// Общие метрики для всех тестов пакета: prometheus
// не позволяет регистрировать одни и те же метрики дважды
var testMetrics = metrics.New(zap.NewNop())

// fakeEngine пишет заглушку вместо настоящего синтеза и запоминает запросы
type fakeEngine struct {
	requests []tts.SynthesisRequest
	err      error
}

func (f *fakeEngine) Render(ctx context.Context, req tts.SynthesisRequest) error {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(req.OutputPath, []byte("wav"), 0644)
}

func (f *fakeEngine) Name() string {
	return "fake"
}

// writeInputCSV создает временный входной CSV
func writeInputCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("не удалось записать тестовый CSV: %v", err)
	}
	return path
}

func TestRunSimple(t *testing.T) {
	engine := &fakeEngine{}
	outDir := filepath.Join(t.TempDir(), "outputs")
	r := NewRunner(engine, testMetrics, zap.NewNop())

	err := r.RunSimple(context.Background(), "speaker.wav", outDir, "en")

	assert.NoError(t, err)
	assert.Len(t, engine.requests, 1)
	assert.Equal(t, "Hello, this is a quick voice cloning test.", engine.requests[0].Text)
	assert.Equal(t, "speaker.wav", engine.requests[0].SpeakerWav)
	assert.Equal(t, "en", engine.requests[0].Language)
	assert.FileExists(t, filepath.Join(outDir, "simple_demo.wav"))
}

func TestRunDetailed(t *testing.T) {
	engine := &fakeEngine{}
	outDir := filepath.Join(t.TempDir(), "outputs")
	csvPath := writeInputCSV(t, "id,text\n7,Hello world this is a test sentence\n2,Short line\n")
	r := NewRunner(engine, testMetrics, zap.NewNop())

	err := r.RunDetailed(context.Background(), "speaker.wav", csvPath, outDir, "en")

	assert.NoError(t, err)
	assert.Len(t, engine.requests, 2)
	assert.FileExists(t, filepath.Join(outDir, "001_7_Hello_world_this_is_a_test.wav"))
	assert.FileExists(t, filepath.Join(outDir, "002_2_Short_line.wav"))
	assert.Equal(t, "en", engine.requests[0].Language)
	assert.Equal(t, "Hello world this is a test sentence", engine.requests[0].Text)
}

func TestRunAdvanced(t *testing.T) {
	engine := &fakeEngine{}
	outDir := filepath.Join(t.TempDir(), "outputs")
	csvPath := writeInputCSV(t, "text\nBonjour\n")
	r := NewRunner(engine, testMetrics, zap.NewNop())

	err := r.RunAdvanced(context.Background(), "speaker.wav", csvPath, outDir, []string{"en", "fr-fr"})

	assert.NoError(t, err)
	assert.Len(t, engine.requests, 2)
	assert.FileExists(t, filepath.Join(outDir, "en", "001_1_Bonjour.en.wav"))
	assert.FileExists(t, filepath.Join(outDir, "fr-fr", "001_1_Bonjour.fr-fr.wav"))
	assert.Equal(t, "en", engine.requests[0].Language)
	assert.Equal(t, "fr-fr", engine.requests[1].Language)
}

func TestRunDetailedStopsOnEngineError(t *testing.T) {
	engine := &fakeEngine{err: errors.New("модель не загружена")}
	csvPath := writeInputCSV(t, "text\nOne\nTwo\nThree\n")
	r := NewRunner(engine, testMetrics, zap.NewNop())

	err := r.RunDetailed(context.Background(), "speaker.wav", csvPath, t.TempDir(), "en")

	assert.Error(t, err)
	// Прогон останавливается на первом же задании
	assert.Len(t, engine.requests, 1)
}

func TestRunDetailedMissingCSV(t *testing.T) {
	engine := &fakeEngine{}
	r := NewRunner(engine, testMetrics, zap.NewNop())

	err := r.RunDetailed(context.Background(), "speaker.wav", filepath.Join(t.TempDir(), "nope.csv"), t.TempDir(), "en")

	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Empty(t, engine.requests)
}

func TestPlanDetailed(t *testing.T) {
	utts := []models.Utterance{
		{ID: "a", Text: "One"},
		{ID: "b", Text: "Two"},
	}

	jobs := PlanDetailed(utts, "out", "en")

	assert.Len(t, jobs, 2)
	assert.Equal(t, 1, jobs[0].Index)
	assert.Equal(t, filepath.Join("out", "001_a_One.wav"), jobs[0].OutputPath)
	assert.Equal(t, 2, jobs[1].Index)
	assert.Equal(t, "en", jobs[1].Language)
}

func TestPlanAdvancedOrder(t *testing.T) {
	utts := []models.Utterance{
		{ID: "a", Text: "One"},
		{ID: "b", Text: "Two"},
	}

	jobs := PlanAdvanced(utts, "out", []string{"en", "fr-fr"})

	// Языки перебираются внутри каждой реплики
	assert.Len(t, jobs, 4)
	assert.Equal(t, filepath.Join("out", "en", "001_a_One.en.wav"), jobs[0].OutputPath)
	assert.Equal(t, filepath.Join("out", "fr-fr", "001_a_One.fr-fr.wav"), jobs[1].OutputPath)
	assert.Equal(t, 2, jobs[2].Index)
	assert.Equal(t, "en", jobs[2].Language)
}
