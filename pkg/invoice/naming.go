package invoice

import (
	"path/filepath"
	"regexp"
)

// Placeholders used when a field is null.
const (
	UnknownDate   = "UnknownDate"
	UnknownSeller = "UnknownSeller"
	UnknownItem   = "UnknownItem"
)

var (
	nonAlnum     = regexp.MustCompile(`[^A-Za-z0-9]`)
	nonDateChars = regexp.MustCompile(`[^A-Za-z0-9-]`)
)

// Sanitize deletes every character outside [A-Za-z0-9].
func Sanitize(s string) string {
	return nonAlnum.ReplaceAllString(s, "")
}

// SanitizeDate deletes every character outside [A-Za-z0-9-], keeping
// YYYY-MM-DD intact while making separators and dots impossible.
func SanitizeDate(s string) string {
	return nonDateChars.ReplaceAllString(s, "")
}

// FileName derives the destination name of an invoice:
// {date}-{seller}-{item}{ext}, ext taken from the original name as-is.
// Only nil triggers a placeholder; a value that sanitizes to "" is kept.
func FileName(rec Record) string {
	date := UnknownDate
	if rec.InvoiceDate != nil {
		date = SanitizeDate(*rec.InvoiceDate)
	}
	seller := UnknownSeller
	if rec.SellerName != nil {
		seller = Sanitize(*rec.SellerName)
	}
	item := UnknownItem
	if rec.FirstItem != nil {
		item = Sanitize(*rec.FirstItem)
	}
	return date + "-" + seller + "-" + item + filepath.Ext(rec.FileName)
}
