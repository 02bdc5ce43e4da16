package sorter

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/jmylchreest/invoicesort/pkg/invoice"
)

func ptr(s string) *string { return &s }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestEnsureFolders_Idempotent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		if err := EnsureFolders(dir); err != nil {
			t.Fatalf("EnsureFolders #%d: %v", i, err)
		}
	}
	for _, sub := range []string{InvoicesDir, NonInvoicesDir} {
		info, err := os.Stat(filepath.Join(dir, sub))
		if err != nil || !info.IsDir() {
			t.Errorf("%s missing: %v", sub, err)
		}
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name string
		rec  invoice.Record
		want string
	}{
		{
			name: "invoice renamed",
			rec:  invoice.Record{FileName: "a.pdf", IsInvoice: true, InvoiceDate: ptr("2024-03-01"), SellerName: ptr("Acme Corp."), FirstItem: ptr("Widget #1")},
			want: "invoices/2024-03-01-AcmeCorp-Widget1.pdf",
		},
		{
			name: "non-invoice keeps name",
			rec:  invoice.Record{FileName: "b.png"},
			want: "non-invoices/b.png",
		},
		{
			name: "fallback record",
			rec:  invoice.Fallback("d.jpg"),
			want: "non-invoices/d.jpg",
		},
		{
			name: "null fields",
			rec:  invoice.Record{FileName: "e.gif", IsInvoice: true},
			want: "invoices/UnknownDate-UnknownSeller-UnknownItem.gif",
		},
		{
			name: "date with separators stays in folder",
			rec:  invoice.Record{FileName: "f.pdf", IsInvoice: true, InvoiceDate: ptr("../2024/01/01"), SellerName: ptr("S"), FirstItem: ptr("I")},
			want: "invoices/20240101-S-I.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, tt.rec.FileName), "content")

			got, err := Sort(dir, tt.rec)
			if err != nil {
				t.Fatalf("Sort: %v", err)
			}
			want := filepath.Join(dir, filepath.FromSlash(tt.want))
			if got != want {
				t.Errorf("Sort() = %s, want %s", got, want)
			}
			if !exists(want) {
				t.Errorf("%s not created", want)
			}
			if exists(filepath.Join(dir, tt.rec.FileName)) {
				t.Errorf("source still present")
			}
		})
	}
}

func TestSort_CollisionLeavesSource(t *testing.T) {
	dir := t.TempDir()
	if err := EnsureFolders(dir); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, NonInvoicesDir, "b.png"), "old")
	writeFile(t, filepath.Join(dir, "b.png"), "new")

	_, err := Sort(dir, invoice.Record{FileName: "b.png"})
	if !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("err = %v, want ErrDestinationExists", err)
	}

	if b, _ := os.ReadFile(filepath.Join(dir, NonInvoicesDir, "b.png")); string(b) != "old" {
		t.Errorf("destination overwritten: %q", b)
	}
	if !exists(filepath.Join(dir, "b.png")) {
		t.Error("source should stay in place")
	}
}

func TestSort_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if _, err := Sort(dir, invoice.Record{FileName: "gone.pdf"}); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestDestination_SanitizedNames(t *testing.T) {
	allowed := regexp.MustCompile(`^[A-Za-z0-9-]+\.pdf$`)
	rec := invoice.Record{
		FileName:    "x.pdf",
		IsInvoice:   true,
		InvoiceDate: ptr("2024-05-06"),
		SellerName:  ptr("Ünïcødé & Sons/Ltd"),
		FirstItem:   ptr("Item: 1\\2"),
	}
	dst := Destination(rec)
	if filepath.Dir(dst) != InvoicesDir {
		t.Fatalf("destination %s escapes invoices folder", dst)
	}
	if base := filepath.Base(dst); !allowed.MatchString(base) {
		t.Errorf("unexpected characters in %q", base)
	}
}
