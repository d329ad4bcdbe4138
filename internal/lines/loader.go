package lines

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"voice-cloner/pkg/models"
)

// Ошибки разбора входного CSV
var (
	// ErrNoHeader возвращается, когда в CSV нет строки заголовка
	ErrNoHeader = errors.New("в CSV нет строки заголовка")
	// ErrNoTextLines возвращается, когда в CSV нет ни одной непустой строки текста
	ErrNoTextLines = errors.New("в CSV нет непустых строк текста")
)

// textColumnCandidates - названия колонок с текстом в порядке приоритета
var textColumnCandidates = []string{"text", "sentence", "utterance", "message"}

// idColumn - колонка с идентификатором строки, сравнивается без приведения регистра
const idColumn = "id"

// Load читает CSV файл и возвращает список реплик для озвучивания.
// Колонка с текстом выбирается по заголовку без учета регистра, при отсутствии
// кандидатов берется первая колонка. Строки с пустым текстом пропускаются,
// но учитываются в нумерации.
func Load(path string, logger *zap.Logger) ([]models.Utterance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия входного CSV: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)

	// Пустая первая строка означает файл без заголовка,
	// csv.Reader пропустил бы ее молча
	if b, err := br.Peek(1); err == nil && (b[0] == '\n' || b[0] == '\r') {
		return nil, ErrNoHeader
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1 // строки могут быть разной длины
	reader.LazyQuotes = true    // одиночная кавычка внутри поля не ломает разбор

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения заголовка CSV: %w", err)
	}

	// Убираем BOM из первой ячейки заголовка
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	textCol := findTextColumn(header)
	idCol := findColumn(header, idColumn)

	logger.Debug("колонки CSV определены",
		zap.Strings("header", header),
		zap.Int("text_col", textCol),
		zap.Int("id_col", idCol))

	var utterances []models.Utterance
	for idx := 1; ; idx++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения строки %d входного CSV: %w", idx, err)
		}

		text := strings.TrimSpace(cell(record, textCol))
		if text == "" {
			continue
		}

		id := ""
		if idCol >= 0 {
			id = cell(record, idCol)
		}
		if id == "" {
			id = strconv.Itoa(idx)
		}

		utterances = append(utterances, models.Utterance{ID: id, Text: text})
	}

	if len(utterances) == 0 {
		return nil, ErrNoTextLines
	}

	logger.Info("входной CSV прочитан",
		zap.String("file", path),
		zap.Int("lines", len(utterances)))

	return utterances, nil
}

// findTextColumn возвращает индекс колонки с текстом.
// Кандидаты проверяются в порядке приоритета, названия сравниваются
// в нижнем регистре.
func findTextColumn(header []string) int {
	for _, cand := range textColumnCandidates {
		for i, name := range header {
			if strings.ToLower(name) == cand {
				return i
			}
		}
	}
	return 0
}

// findColumn возвращает индекс колонки с точным названием или -1
func findColumn(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// cell читает ячейку строки, отсутствующие ячейки считаются пустыми
func cell(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return record[col]
}
