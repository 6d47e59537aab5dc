package xlsx

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// maxSheetNameLength ограничение Excel на длину имени листа
const maxSheetNameLength = 31

const defaultSheetName = "Sheet"

// символы, запрещённые Excel в имени листа
var sheetNameReplacer = strings.NewReplacer(":", "-", "\\", "-", "/", "-", "?", "-", "*", "-", "[", "(", "]", ")")

// ErrNoSheet возвращается при записи до создания листа
var ErrNoSheet = errors.New("xlsx: no active sheet")

// Writer построчная запись таблиц в .xlsx поверх excelize
type Writer struct {
	file         *excelize.File
	currentSheet string
	currentRow   int
}

// NewWriter создает пустую книгу
func NewWriter() *Writer {
	return &Writer{file: excelize.NewFile()}
}

// AddSheet добавляет лист и делает его текущим. Первый вызов переименовывает лист по умолчанию.
func (w *Writer) AddSheet(name string) error {
	name = sheetName(name)

	if w.currentSheet == "" {
		if err := w.file.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("rename sheet %s: %w", name, err)
		}
	} else if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	w.currentSheet = name
	w.currentRow = 1
	return nil
}

// WriteHeader пишет строку заголовков жирным шрифтом
func (w *Writer) WriteHeader(columns []string) error {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	if err := w.WriteRow(row); err != nil {
		return err
	}

	if len(columns) == 0 {
		return nil
	}

	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	startCell, err := excelize.CoordinatesToCellName(1, w.currentRow-1)
	if err != nil {
		return err
	}
	endCell, err := excelize.CoordinatesToCellName(len(columns), w.currentRow-1)
	if err != nil {
		return err
	}
	if err := w.file.SetCellStyle(w.currentSheet, startCell, endCell, style); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}
	return nil
}

// sheetName приводит имя к правилам Excel: без запрещённых символов,
// не длиннее 31 символа и без апострофа в начале или конце
func sheetName(name string) string {
	name = sheetNameReplacer.Replace(strings.TrimSpace(name))
	if runes := []rune(name); len(runes) > maxSheetNameLength {
		name = string(runes[:maxSheetNameLength])
	}
	name = strings.TrimSpace(strings.Trim(name, "'"))
	if name == "" {
		return defaultSheetName
	}
	return name
}

// WriteRow пишет строку значений в текущий лист
func (w *Writer) WriteRow(row []interface{}) error {
	if w.currentSheet == "" {
		return ErrNoSheet
	}

	for i, val := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, val); err != nil {
			return err
		}
	}

	w.currentRow++
	return nil
}

// Save пишет книгу в writer
func (w *Writer) Save(out io.Writer) error {
	return w.file.Write(out)
}

// Close освобождает ресурсы
func (w *Writer) Close() error {
	return w.file.Close()
}
