package inventory

import (
	"strings"
)

// Field is the stable internal identifier set for reagent columns. Locale
// labels exist only at the import/export and display boundary; nothing else
// keys on them, so switching language cannot change a record's identity.
type Field string

const (
	FieldName          Field = "name"
	FieldSupplier      Field = "supplier"
	FieldCatalogNumber Field = "catalog_number"
	FieldCASNumber     Field = "cas_number"
	FieldInternalID    Field = "internal_id"
	FieldBatchNumber   Field = "batch_number"
	FieldDateReceived  Field = "date_received"
	FieldExpiryDate    Field = "expiry_date"
	FieldExpiryNote    Field = "expiry_note"
	FieldStockQuantity Field = "stock_quantity"
	FieldOpeningDate   Field = "opening_date"
	FieldLocation      Field = "location"
)

// FieldOrder is the fixed column order of the tabular formats.
var FieldOrder = []Field{
	FieldName,
	FieldSupplier,
	FieldCatalogNumber,
	FieldCASNumber,
	FieldInternalID,
	FieldBatchNumber,
	FieldDateReceived,
	FieldExpiryDate,
	FieldExpiryNote,
	FieldStockQuantity,
	FieldOpeningDate,
	FieldLocation,
}

// labelSets maps a display label to its field, per language. Lab files
// circulate with either header set, so import accepts both (plus the internal
// identifiers themselves, which our own exports may carry).
var labelSets = map[string]map[Field]string{
	"en": {
		FieldName:          "Reagent Name",
		FieldSupplier:      "Supplier",
		FieldCatalogNumber: "Catalog Number",
		FieldCASNumber:     "CAS Number",
		FieldInternalID:    "Internal Lab ID",
		FieldBatchNumber:   "Batch Number",
		FieldDateReceived:  "Date Received",
		FieldExpiryDate:    "Expiry Date",
		FieldExpiryNote:    "Expiry Note",
		FieldStockQuantity: "Stock Quantity",
		FieldOpeningDate:   "Opening Date",
		FieldLocation:      "Physical Location",
	},
	"he": {
		FieldName:          "שם הריאגנט",
		FieldSupplier:      "ספק",
		FieldCatalogNumber: "מספר קטלוגי",
		FieldCASNumber:     "מספר CAS",
		FieldInternalID:    "מספר פנימי במעבדה",
		FieldBatchNumber:   "מספר אצווה",
		FieldDateReceived:  "תאריך קבלה",
		FieldExpiryDate:    "תוקף",
		FieldExpiryNote:    "הערת תוקף",
		FieldStockQuantity: "כמות במלאי",
		FieldOpeningDate:   "תאריך פתיחה",
		FieldLocation:      "מיקום פיזי",
	},
}

// labelIndex is every known label, normalized, pointing at its field.
var labelIndex = func() map[string]Field {
	idx := make(map[string]Field)
	for _, set := range labelSets {
		for field, label := range set {
			idx[normalizeLabel(label)] = field
		}
	}
	for _, field := range FieldOrder {
		idx[normalizeLabel(string(field))] = field
	}
	return idx
}()

func normalizeLabel(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ResolveHeader maps header cells to fields and reports which required
// fields the header is missing. Unrecognized columns are ignored rather than
// rejected; extra columns in hand-maintained spreadsheets are common.
func ResolveHeader(header []string) (map[int]Field, []Field) {
	byIndex := make(map[int]Field, len(header))
	seen := make(map[Field]bool, len(FieldOrder))
	for i, cell := range header {
		if field, ok := labelIndex[normalizeLabel(cell)]; ok && !seen[field] {
			byIndex[i] = field
			seen[field] = true
		}
	}

	var missing []Field
	for _, field := range FieldOrder {
		if !seen[field] {
			missing = append(missing, field)
		}
	}
	return byIndex, missing
}

// Labels returns the display header row for a language, in column order.
// Unknown languages fall back to English.
func Labels(lang string) []string {
	set, ok := labelSets[lang]
	if !ok {
		set = labelSets["en"]
	}
	out := make([]string, 0, len(FieldOrder))
	for _, field := range FieldOrder {
		out = append(out, set[field])
	}
	return out
}
