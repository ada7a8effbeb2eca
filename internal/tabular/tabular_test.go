package tabular

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pkg.jsn.cam/tablegen/internal/generator"
)

var testRef = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func buildDataset(t *testing.T, seed uint64) *generator.Dataset {
	t.Helper()
	ds, err := generator.Build(generator.Params{
		CustomerCount: 100,
		ProductCount:  50,
		OrderCount:    500,
		Seed:          seed,
		Reference:     testRef,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return ds
}

func TestSerializeHeaders(t *testing.T) {
	ds := buildDataset(t, 42)
	dir := t.TempDir()

	tests := []struct {
		table  generator.Table
		file   string
		header string
		rows   int
	}{
		{ds.Customers, "customers_full.csv", "customer_id,customer_name,email,region,status,customer_lifetime_value,created_date,updated_date", 100},
		{ds.Products, "products_full.csv", "product_id,product_name,category,unit_price,stock_quantity,created_date,updated_at", 50},
		{ds.Orders, "orders_2025-03-14.csv", "order_id,customer_id,product_id,order_date,quantity,unit_price,order_amount,order_status,last_modified_date", 500},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			info, err := Serialize(tt.table, path)
			if err != nil {
				t.Fatalf("Serialize failed: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile failed: %v", err)
			}
			lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
			if lines[0] != tt.header {
				t.Errorf("header = %q, want %q", lines[0], tt.header)
			}
			if len(lines)-1 != tt.rows {
				t.Errorf("got %d data rows, want %d", len(lines)-1, tt.rows)
			}
			if info.Rows != tt.rows {
				t.Errorf("info.Rows = %d, want %d", info.Rows, tt.rows)
			}
			if info.Bytes != int64(len(data)) {
				t.Errorf("info.Bytes = %d, file has %d", info.Bytes, len(data))
			}
		})
	}
}

func TestSerializeQuotesCategory(t *testing.T) {
	ds := buildDataset(t, 42)

	var buf bytes.Buffer
	if err := Write(&buf, ds.Products); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	for i, p := range ds.Products {
		if p.Category == "Home & Garden" {
			line := strings.Split(buf.String(), "\n")[i+1]
			if !strings.Contains(line, ",Home & Garden,") {
				t.Errorf("line %q should carry the category verbatim", line)
			}
		}
	}
}

func TestSerializeDeterministic(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()

	a, err := Serialize(buildDataset(t, 42).Orders, filepath.Join(dirA, "orders.csv"))
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	b, err := Serialize(buildDataset(t, 42).Orders, filepath.Join(dirB, "orders.csv"))
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	if a.SHA256 != b.SHA256 {
		t.Errorf("hashes differ for the same seed: %s vs %s", a.SHA256, b.SHA256)
	}

	dataA, _ := os.ReadFile(a.Path)
	dataB, _ := os.ReadFile(b.Path)
	if !bytes.Equal(dataA, dataB) {
		t.Error("files differ for the same seed")
	}
}

func TestSerializeUnwritable(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the output directory should be
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := Serialize(buildDataset(t, 1).Customers, filepath.Join(blocker, "customers_full.csv"))
	if err == nil {
		t.Fatal("Serialize should fail when the directory is a file")
	}
	if !errors.Is(err, generator.ErrIO) {
		t.Errorf("error %v should match ErrIO", err)
	}
	var ioErr *generator.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error %T should be *generator.IOError", err)
	}
}

func TestSerializeLeavesNoTempOnRenameFailure(t *testing.T) {
	dir := t.TempDir()
	// Renaming a file over a non-empty directory fails
	target := filepath.Join(dir, "orders.csv")
	if err := os.MkdirAll(filepath.Join(target, "child"), 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	if _, err := Serialize(buildDataset(t, 1).Orders, target); !errors.Is(err, generator.ErrIO) {
		t.Fatalf("Serialize error = %v, want ErrIO", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
}
