package model

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Reference dataset columns used to enumerate clause-type categories.
const (
	textColumn  = "clean_text"
	labelColumn = "clause_type"
)

// LoadClassMap builds the category-code-to-label map from the reference
// dataset. Rows with a blank text or label are dropped; the remaining
// distinct labels are sorted and enumerated from zero, matching the
// category encoding the classifier artifact was trained with. CSV and XLSX
// datasets are supported, dispatched by extension.
func LoadClassMap(path string) (map[int]string, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSXRows(path)
	default:
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("reference dataset %s is empty", path)
	}

	textIdx, labelIdx := -1, -1
	for i, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case textColumn:
			textIdx = i
		case labelColumn:
			labelIdx = i
		}
	}
	if textIdx < 0 || labelIdx < 0 {
		return nil, fmt.Errorf("reference dataset %s is missing %q or %q column", path, textColumn, labelColumn)
	}

	seen := make(map[string]struct{})
	for _, row := range rows[1:] {
		if textIdx >= len(row) || labelIdx >= len(row) {
			continue
		}
		text := strings.TrimSpace(row[textIdx])
		label := strings.TrimSpace(row[labelIdx])
		if text == "" || label == "" {
			continue
		}
		seen[label] = struct{}{}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("reference dataset %s has no usable rows", path)
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	classMap := make(map[int]string, len(labels))
	for code, label := range labels {
		classMap[code] = label
	}
	return classMap, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read reference dataset %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open reference dataset: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("reference dataset %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read reference dataset %s: %w", path, err)
	}
	return rows, nil
}
