package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"crossval/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// DataReader loads a numeric dataset from an Excel or CSV file. Every
// column but the last is a feature; the last column is the label.
type DataReader struct {
	filePath  string
	fileType  string // "xlsx" or "csv"
	hasHeader bool
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(filePath string, hasHeader bool) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, hasHeader: hasHeader}
}

// ReadDataset reads the file into an aligned feature matrix and label
// vector
func (r *DataReader) ReadDataset() (dataset.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return dataset.Dataset{}, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return dataset.Dataset{}, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return dataset.Dataset{}, err
	}

	ds, err := r.processRows(rows)
	if err != nil {
		return dataset.Dataset{}, err
	}
	ds.Name = filepath.Base(r.filePath)
	return ds, nil
}

// readExcelRows reads raw string rows from Sheet1
func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	return rows, nil
}

// readCSVRows reads raw string rows from a CSV file
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// processRows parses raw string rows into features and labels. The last
// column is the label; all columns must parse as float64.
func (r *DataReader) processRows(rows [][]string) (dataset.Dataset, error) {
	start := 0
	if r.hasHeader {
		start = 1
	}
	if len(rows) <= start {
		return dataset.Dataset{}, fmt.Errorf("file has no data rows")
	}

	width := len(rows[start])
	if width < 2 {
		return dataset.Dataset{}, fmt.Errorf("need at least one feature column and one label column, got %d columns", width)
	}

	features := make([][]float64, 0, len(rows)-start)
	labels := make([]float64, 0, len(rows)-start)

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) != width {
			return dataset.Dataset{}, fmt.Errorf("row %d has %d columns, expected %d", i+1, len(row), width)
		}

		values := make([]float64, width)
		for j, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return dataset.Dataset{}, fmt.Errorf("row %d column %d: %q is not numeric", i+1, j+1, cell)
			}
			values[j] = v
		}

		features = append(features, values[:width-1])
		labels = append(labels, values[width-1])
	}

	return dataset.New(features, labels), nil
}
