package invoice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// JSONSchema returns the JSON Schema of the model response.
// strict closes the object to unknown keys, which structured-output APIs
// require; local validation tolerates extra keys and ignores them.
func JSONSchema(strict bool) map[string]any {
	nullableString := func(desc string) map[string]any {
		return map[string]any{
			"type":        []any{"string", "null"},
			"description": desc,
		}
	}

	s := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"isInvoice": map[string]any{
				"type":        "boolean",
				"description": "Whether the document is an invoice",
			},
			"invoiceDate": nullableString("Invoice date in YYYY-MM-DD format"),
			"sellerName":  nullableString("Seller's company name"),
			"firstItem":   nullableString("First item name from the list of goods/services"),
		},
		"required": []any{"isInvoice", "invoiceDate", "sellerName", "firstItem"},
	}
	if strict {
		s["additionalProperties"] = false
	}
	return s
}

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := json.Marshal(JSONSchema(false))
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("invoice.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("invoice.json")
})

// Validate checks a JSON document against the record schema.
func Validate(data []byte) error {
	schema, err := compiled()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
