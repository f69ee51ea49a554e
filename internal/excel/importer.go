package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/boilerbuddy/internal/database"
	"github.com/example/boilerbuddy/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines how a topic catalog spreadsheet is read
type ImportConfig struct {
	FilePath        string // Path to the Excel or CSV file
	IDColumn        int    // Column index of the topic id
	NameColumn      int    // Column index of the topic name
	CoverageColumn  int    // Column index of the coverage tag
	FrequencyColumn int    // Column index of the frequency estimate
	SheetName       string // Name of the sheet to import
	StartRow        int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:        path,
		IDColumn:        0,
		NameColumn:      1,
		CoverageColumn:  2,
		FrequencyColumn: 3,
		SheetName:       "Sheet1",
		StartRow:        2, // skip the header row
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportTopics loads the topic catalog from an Excel or CSV file
func ImportTopics(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	topicRepo := database.NewTopicRepository()

	position := 0
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		if err := importRow(row, config, topicRepo, position); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		result.Imported++
		position++
	}

	return result, nil
}

func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	result := &ImportResult{Errors: make([]string, 0)}
	topicRepo := database.NewTopicRepository()

	rowNum := 0
	position := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++

		if err := importRow(row, config, topicRepo, position); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		result.Imported++
		position++
	}

	return result, nil
}

// importRow upserts one catalog row. Position preserves spreadsheet
// order, which the priority ranker uses as its tie-breaker.
func importRow(row []string, config ImportConfig, repo *database.TopicRepository, position int) error {
	id := cell(row, config.IDColumn)
	name := cell(row, config.NameColumn)
	if id == "" || name == "" {
		return fmt.Errorf("missing topic id or name")
	}

	frequency := 0
	if raw := cell(row, config.FrequencyColumn); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid frequency %q", raw)
		}
		frequency = n
	}

	return repo.Upsert(&models.Topic{
		ID:                id,
		Name:              name,
		Coverage:          cell(row, config.CoverageColumn),
		FrequencyEstimate: frequency,
		Position:          position,
	})
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
