package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write temp CSV: %v", err)
	}
	return path
}

func TestReadDataset_CSVWithHeader(t *testing.T) {
	path := writeTempCSV(t, "x1,x2,label\n1,2,0\n3,4,1\n5,6,0\n")

	ds, err := NewDataReader(path, true).ReadDataset()
	if err != nil {
		t.Fatalf("ReadDataset failed: %v", err)
	}

	if ds.Len() != 3 {
		t.Fatalf("got %d samples, want 3", ds.Len())
	}
	if ds.Width() != 2 {
		t.Fatalf("got width %d, want 2", ds.Width())
	}
	if ds.Labels[1] != 1 {
		t.Errorf("labels[1] = %v, want 1", ds.Labels[1])
	}
	if ds.Features[2][1] != 6 {
		t.Errorf("features[2][1] = %v, want 6", ds.Features[2][1])
	}
	if err := ds.Validate(); err != nil {
		t.Errorf("loaded dataset fails validation: %v", err)
	}
}

func TestReadDataset_CSVWithoutHeader(t *testing.T) {
	path := writeTempCSV(t, "1,0\n2,1\n")

	ds, err := NewDataReader(path, false).ReadDataset()
	if err != nil {
		t.Fatalf("ReadDataset failed: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("got %d samples, want 2", ds.Len())
	}
}

func TestReadDataset_NonNumericCellIsAnError(t *testing.T) {
	path := writeTempCSV(t, "x,label\n1,0\nabc,1\n")

	if _, err := NewDataReader(path, true).ReadDataset(); err == nil {
		t.Fatal("expected an error for a non-numeric cell")
	}
}

func TestReadDataset_SingleColumnIsAnError(t *testing.T) {
	path := writeTempCSV(t, "label\n0\n1\n")

	if _, err := NewDataReader(path, true).ReadDataset(); err == nil {
		t.Fatal("expected an error for a file without feature columns")
	}
}

func TestReadDataset_MissingFile(t *testing.T) {
	if _, err := NewDataReader("/nonexistent/data.csv", true).ReadDataset(); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestReadDataset_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"x", "label"},
		{1.5, 0},
		{2.5, 1},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to build cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("failed to write row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	f.Close()

	ds, err := NewDataReader(path, true).ReadDataset()
	if err != nil {
		t.Fatalf("ReadDataset failed: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("got %d samples, want 2", ds.Len())
	}
	if ds.Features[0][0] != 1.5 || ds.Labels[1] != 1 {
		t.Errorf("unexpected data: %+v / %+v", ds.Features, ds.Labels)
	}
}
