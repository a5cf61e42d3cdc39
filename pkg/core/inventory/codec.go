package inventory

import (
	// 外部依赖
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	// 内部引用
	code "github.com/chemstack/labstock/pkg/common/code"
	dates "github.com/chemstack/labstock/pkg/common/dates"
	model "github.com/chemstack/labstock/pkg/model"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// DetectFormat picks the codec from a filename, defaulting to xlsx, the
// format lab inventory files actually circulate in.
func DetectFormat(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return FormatCSV
	}
	return FormatXLSX
}

// DecodeRecords parses a tabular file into reagent records. The header must
// contain every one of the twelve columns, in any language the label table
// knows and in any order; otherwise SchemaMismatch, and the caller performs
// no mutation. Row cells go through the date normalizer; the quantity cell
// is coerced to a non-negative integer, with missing or unparseable values
// taking quantityFallback uniformly.
func DecodeRecords(r io.Reader, format Format, quantityFallback int) ([]*model.Reagent, error) {
	rows, err := readRows(r, format)
	if err != nil {
		return nil, code.ImportErr.WithErr(err)
	}
	if len(rows) == 0 {
		return nil, code.SchemaMismatch.WithMsg("file has no header row")
	}

	byIndex, missing := ResolveHeader(rows[0])
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, f := range missing {
			names = append(names, string(f))
		}
		return nil, code.SchemaMismatch.WithMsgf("missing required columns: %s", strings.Join(names, ", "))
	}

	records := make([]*model.Reagent, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		record := &model.Reagent{}
		for i, field := range byIndex {
			cell := ""
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			setField(record, field, cell, quantityFallback)
		}
		records = append(records, record)
	}
	return records, nil
}

// EncodeRecords serializes records in the fixed column order, dates in the
// unambiguous day format, with the header in the requested label language.
func EncodeRecords(records []*model.Reagent, format Format, lang string) ([]byte, error) {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, Labels(lang))
	for _, record := range records {
		row := make([]string, 0, len(FieldOrder))
		for _, field := range FieldOrder {
			row = append(row, fieldText(record, field))
		}
		rows = append(rows, row)
	}
	return writeRows(rows, format)
}

// EncodeUsage serializes the consumption ledger: one row per use-one-unit
// event, read-only to external viewers.
func EncodeUsage(events []*model.UsageEvent, format Format) ([]byte, error) {
	rows := make([][]string, 0, len(events)+1)
	rows = append(rows, []string{"Date", "Reagent Name", "Batch Number", "Used By"})
	for _, event := range events {
		rows = append(rows, []string{
			event.OccurredAt.Format("2006-01-02 15:04:05"),
			event.ReagentName,
			event.BatchNumber,
			event.Actor,
		})
	}
	return writeRows(rows, format)
}

func readRows(r io.Reader, format Format) ([][]string, error) {
	if format == FormatCSV {
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1 // ragged rows are the row parser's problem
		return reader.ReadAll()
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	// Raw cell values keep date cells as serial numbers, which the
	// normalizer converts without locale guessing.
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

func writeRows(rows [][]string, format Format) ([]byte, error) {
	if format == FormatCSV {
		buf := &bytes.Buffer{}
		w := csv.NewWriter(buf)
		if err := w.WriteAll(rows); err != nil {
			return nil, code.ExportErr.WithErr(err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, code.ExportErr.WithErr(err)
		}
		return buf.Bytes(), nil
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, code.ExportErr.WithErr(err)
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return nil, code.ExportErr.WithErr(err)
		}
	}
	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, code.ExportErr.WithErr(err)
	}
	return buf.Bytes(), nil
}

func setField(r *model.Reagent, field Field, cell string, quantityFallback int) {
	switch field {
	case FieldName:
		r.Name = cell
	case FieldSupplier:
		r.Supplier = cell
	case FieldCatalogNumber:
		r.CatalogNumber = cell
	case FieldCASNumber:
		r.CASNumber = cell
	case FieldInternalID:
		r.InternalID = cell
	case FieldBatchNumber:
		r.BatchNumber = cell
	case FieldDateReceived:
		r.DateReceived = dates.Normalize(cell)
	case FieldExpiryDate:
		r.ExpiryDate = dates.Normalize(cell)
	case FieldExpiryNote:
		r.ExpiryNote = cell
	case FieldStockQuantity:
		r.StockQuantity = coerceQuantity(cell, quantityFallback)
	case FieldOpeningDate:
		r.OpeningDate = dates.Normalize(cell)
	case FieldLocation:
		r.Location = cell
	}
}

// coerceQuantity applies the import quantity policy: missing, unparseable
// and negative cells all take the fallback. Spreadsheets sometimes store
// integers as "3.0", so a clean float is accepted too.
func coerceQuantity(cell string, fallback int) int {
	if cell == "" {
		return fallback
	}
	if n, err := strconv.Atoi(cell); err == nil {
		if n < 0 {
			return fallback
		}
		return n
	}
	if fl, err := strconv.ParseFloat(cell, 64); err == nil && fl == float64(int(fl)) {
		if int(fl) < 0 {
			return fallback
		}
		return int(fl)
	}
	return fallback
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
