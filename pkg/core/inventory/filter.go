package inventory

import (
	// 外部依赖
	"strconv"
	"strings"

	// 内部引用
	dates "github.com/chemstack/labstock/pkg/common/dates"
	model "github.com/chemstack/labstock/pkg/model"
)

// FilterSet maps a field to a substring pattern. An empty pattern is
// inactive. Active patterns AND together; matching is case-insensitive
// substring containment against the field's display text, so an unknown date
// or empty field fails any active filter on it.
type FilterSet map[Field]string

// Match reports whether the record passes every active filter.
func (f FilterSet) Match(record *model.Reagent) bool {
	for field, pattern := range f {
		if pattern == "" {
			continue
		}
		value := fieldText(record, field)
		if !strings.Contains(strings.ToLower(value), strings.ToLower(pattern)) {
			return false
		}
	}
	return true
}

// ApplyFilters keeps the matching subsequence in original order. An empty
// filter set is the identity.
func ApplyFilters(records []*model.Reagent, filters FilterSet) []*model.Reagent {
	out := make([]*model.Reagent, 0, len(records))
	for _, record := range records {
		if filters.Match(record) {
			out = append(out, record)
		}
	}
	return out
}

// fieldText renders one field the way export and display do, which is also
// the text filters match against.
func fieldText(r *model.Reagent, field Field) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldSupplier:
		return r.Supplier
	case FieldCatalogNumber:
		return r.CatalogNumber
	case FieldCASNumber:
		return r.CASNumber
	case FieldInternalID:
		return r.InternalID
	case FieldBatchNumber:
		return r.BatchNumber
	case FieldDateReceived:
		return dates.Format(r.DateReceived)
	case FieldExpiryDate:
		return dates.Format(r.ExpiryDate)
	case FieldExpiryNote:
		return r.ExpiryNote
	case FieldStockQuantity:
		return strconv.Itoa(r.StockQuantity)
	case FieldOpeningDate:
		return dates.Format(r.OpeningDate)
	case FieldLocation:
		return r.Location
	default:
		return ""
	}
}
