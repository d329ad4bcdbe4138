package tts

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

// newTestEngine создает движок, направленный на тестовый сервер
func newTestEngine(baseURL string) *ServerEngine {
	return NewServerEngine(&EngineConfig{
		Kind:      "server",
		ServerURL: baseURL,
		Timeout:   5 * time.Second,
	}, zap.NewNop())
}

// writeSpeakerWav создает временный файл с образцом голоса
func writeSpeakerWav(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "speaker.wav")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("не удалось записать образец голоса: %v", err)
	}
	return path
}

func TestServerEngineRender(t *testing.T) {
	fakeAudio := []byte("FAKE-WAV-DATA")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("ожидался метод POST, получен %s", r.Method)
		}
		if r.URL.Path != "/api/tts" {
			t.Errorf("ожидался путь /api/tts, получен %s", r.URL.Path)
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ошибка разбора multipart формы: %v", err)
		}
		if got := r.FormValue("text"); got != "Hello" {
			t.Errorf("ожидался текст 'Hello', получен '%s'", got)
		}
		if got := r.FormValue("language"); got != "en" {
			t.Errorf("ожидался язык 'en', получен '%s'", got)
		}

		file, _, err := r.FormFile("speaker_wav")
		if err != nil {
			t.Fatalf("образец голоса не пришел: %v", err)
		}
		defer file.Close()
		uploaded, _ := io.ReadAll(file)
		if string(uploaded) != "REFERENCE" {
			t.Errorf("ожидалось содержимое образца 'REFERENCE', получено '%s'", uploaded)
		}

		w.WriteHeader(http.StatusOK)
		w.Write(fakeAudio)
	}))
	defer server.Close()

	engine := newTestEngine(server.URL)
	outPath := filepath.Join(t.TempDir(), "out.wav")

	err := engine.Render(context.Background(), SynthesisRequest{
		Text:       "Hello",
		SpeakerWav: writeSpeakerWav(t, "REFERENCE"),
		Language:   "en",
		OutputPath: outPath,
	})
	if err != nil {
		t.Fatalf("ошибка синтеза: %v", err)
	}

	written, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("итоговый файл не записан: %v", err)
	}
	if string(written) != string(fakeAudio) {
		t.Errorf("содержимое файла не совпадает с ответом сервера")
	}
}

func TestServerEngineOmitsEmptyLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ошибка разбора multipart формы: %v", err)
		}
		if _, ok := r.MultipartForm.Value["language"]; ok {
			t.Error("поле language не должно передаваться для пустого языка")
		}
		w.Write([]byte("wav"))
	}))
	defer server.Close()

	engine := newTestEngine(server.URL)

	err := engine.Render(context.Background(), SynthesisRequest{
		Text:       "Hello",
		SpeakerWav: writeSpeakerWav(t, "REFERENCE"),
		OutputPath: filepath.Join(t.TempDir(), "out.wav"),
	})
	if err != nil {
		t.Fatalf("ошибка синтеза: %v", err)
	}
}

func TestServerEngineBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	engine := newTestEngine(server.URL)

	err := engine.Render(context.Background(), SynthesisRequest{
		Text:       "Hello",
		SpeakerWav: writeSpeakerWav(t, "REFERENCE"),
		OutputPath: filepath.Join(t.TempDir(), "out.wav"),
	})
	if err == nil {
		t.Error("ожидалась ошибка при статусе 500")
	}
}

func TestServerEngineMissingSpeakerWav(t *testing.T) {
	engine := newTestEngine("http://localhost:5002")

	err := engine.Render(context.Background(), SynthesisRequest{
		Text:       "Hello",
		SpeakerWav: filepath.Join(t.TempDir(), "nope.wav"),
		OutputPath: filepath.Join(t.TempDir(), "out.wav"),
	})
	if err == nil {
		t.Error("ожидалась ошибка для несуществующего образца голоса")
	}
}
