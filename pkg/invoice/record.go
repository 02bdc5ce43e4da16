// Package invoice defines the per-file classification record and the rules
// that turn a model response into one.
package invoice

import (
	"encoding/json"
	"fmt"
)

// Record is the classification and extraction result for one file.
// The extracted fields are only meaningful when IsInvoice is true and may
// still be nil when the model could not read them.
type Record struct {
	FileName    string  `json:"fileName" yaml:"fileName"`
	IsInvoice   bool    `json:"isInvoice" yaml:"isInvoice"`
	InvoiceDate *string `json:"invoiceDate" yaml:"invoiceDate"`
	SellerName  *string `json:"sellerName" yaml:"sellerName"`
	FirstItem   *string `json:"firstItem" yaml:"firstItem"`
}

// Fallback returns the record used when classification fails for any reason.
// It is indistinguishable from a confirmed non-invoice.
func Fallback(fileName string) Record {
	return Record{FileName: fileName}
}

// payload is the model-facing shape, without the file name.
type payload struct {
	IsInvoice   bool    `json:"isInvoice"`
	InvoiceDate *string `json:"invoiceDate"`
	SellerName  *string `json:"sellerName"`
	FirstItem   *string `json:"firstItem"`
}

// Parse locates the first JSON object in text, validates it against the
// record schema and returns the resulting record for fileName.
func Parse(fileName, text string) (Record, error) {
	raw, err := FindJSONObject(text)
	if err != nil {
		return Record{}, err
	}
	if err := Validate(raw); err != nil {
		return Record{}, err
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}

	return Record{
		FileName:    fileName,
		IsInvoice:   p.IsInvoice,
		InvoiceDate: p.InvoiceDate,
		SellerName:  p.SellerName,
		FirstItem:   p.FirstItem,
	}, nil
}

// Value dereferences an optional field, returning "" for nil.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
