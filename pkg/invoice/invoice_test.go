package invoice

import (
	"errors"
	"testing"
)

func ptr(s string) *string { return &s }

func TestFindJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "bare object",
			input: `{"a":1}`,
			want:  `{"a":1}`,
		},
		{
			name:  "markdown fence",
			input: "```json\n{\"a\": {\"b\": 2}}\n```",
			want:  `{"a": {"b": 2}}`,
		},
		{
			name:  "prose around object",
			input: `Sure! Here it is: {"isInvoice": false} Let me know.`,
			want:  `{"isInvoice": false}`,
		},
		{
			name:  "brace inside string",
			input: `{"note": "has } brace", "x": 1}`,
			want:  `{"note": "has } brace", "x": 1}`,
		},
		{
			name:  "first of two objects",
			input: `{"a":1} and {"b":2}`,
			want:  `{"a":1}`,
		},
		{
			name:  "skips broken leading brace",
			input: `oops { not json {"a":1}`,
			want:  `{"a":1}`,
		},
		{
			name:    "no object",
			input:   "I cannot read this document.",
			wantErr: ErrNoJSONObject,
		},
		{
			name:    "unterminated",
			input:   `{"a": 1`,
			wantErr: ErrNoJSONObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindJSONObject(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"full invoice", `{"isInvoice":true,"invoiceDate":"2024-03-01","sellerName":"Acme","firstItem":"Widget"}`, false},
		{"nulls allowed", `{"isInvoice":false,"invoiceDate":null,"sellerName":null,"firstItem":null}`, false},
		{"extra keys ignored", `{"isInvoice":false,"invoiceDate":null,"sellerName":null,"firstItem":null,"confidence":0.9}`, false},
		{"missing key", `{"isInvoice":true,"invoiceDate":"2024-03-01","sellerName":"Acme"}`, true},
		{"wrong bool type", `{"isInvoice":"yes","invoiceDate":null,"sellerName":null,"firstItem":null}`, true},
		{"wrong string type", `{"isInvoice":true,"invoiceDate":20240301,"sellerName":null,"firstItem":null}`, true},
		{"not an object", `[1,2]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJSONSchema_Strict(t *testing.T) {
	if _, ok := JSONSchema(false)["additionalProperties"]; ok {
		t.Error("non-strict schema should not close additionalProperties")
	}
	if v, ok := JSONSchema(true)["additionalProperties"]; !ok || v != false {
		t.Errorf("strict schema additionalProperties = %v, want false", v)
	}
}

func TestParse(t *testing.T) {
	text := "```json\n{\"isInvoice\": true, \"invoiceDate\": \"2024-03-01\", \"sellerName\": \"Acme Corp.\", \"firstItem\": null}\n```"

	rec, err := Parse("a.pdf", text)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if rec.FileName != "a.pdf" || !rec.IsInvoice {
		t.Errorf("unexpected record: %+v", rec)
	}
	if Value(rec.InvoiceDate) != "2024-03-01" || Value(rec.SellerName) != "Acme Corp." {
		t.Errorf("unexpected fields: %+v", rec)
	}
	if rec.FirstItem != nil {
		t.Errorf("FirstItem = %q, want nil", *rec.FirstItem)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse("a.pdf", "no json here"); !errors.Is(err, ErrNoJSONObject) {
		t.Errorf("err = %v, want ErrNoJSONObject", err)
	}
	if _, err := Parse("a.pdf", `{"isInvoice": 1}`); err == nil {
		t.Error("expected schema error")
	}
}

func TestFallback(t *testing.T) {
	rec := Fallback("scan.png")
	if rec.FileName != "scan.png" || rec.IsInvoice {
		t.Errorf("unexpected fallback: %+v", rec)
	}
	if rec.InvoiceDate != nil || rec.SellerName != nil || rec.FirstItem != nil {
		t.Errorf("fallback fields should be nil: %+v", rec)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corp.", "AcmeCorp"},
		{"Widget #1", "Widget1"},
		{"../../etc", "etc"},
		{"Müller GmbH", "MllerGmbH"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-01", "2024-03-01"},
		{"2024/03/01", "20240301"},
		{"../2024-01-01", "2024-01-01"},
		{"1 Mar 2024", "1Mar2024"},
	}
	for _, tt := range tests {
		if got := SanitizeDate(tt.in); got != tt.want {
			t.Errorf("SanitizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "all fields",
			rec:  Record{FileName: "a.pdf", IsInvoice: true, InvoiceDate: ptr("2024-03-01"), SellerName: ptr("Acme Corp."), FirstItem: ptr("Widget #1")},
			want: "2024-03-01-AcmeCorp-Widget1.pdf",
		},
		{
			name: "all null",
			rec:  Record{FileName: "scan.jpeg", IsInvoice: true},
			want: "UnknownDate-UnknownSeller-UnknownItem.jpeg",
		},
		{
			name: "empty after sanitize kept",
			rec:  Record{FileName: "x.png", IsInvoice: true, InvoiceDate: ptr("2024-01-01"), SellerName: ptr("***"), FirstItem: ptr("Pen")},
			want: "2024-01-01--Pen.png",
		},
		{
			name: "extension case preserved",
			rec:  Record{FileName: "Receipt.PDF", IsInvoice: true, InvoiceDate: ptr("2024-02-02"), SellerName: ptr("Shop"), FirstItem: ptr("Tea")},
			want: "2024-02-02-Shop-Tea.PDF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.rec); got != tt.want {
				t.Errorf("FileName() = %q, want %q", got, tt.want)
			}
		})
	}
}
