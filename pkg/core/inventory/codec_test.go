package inventory

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	code "github.com/chemstack/labstock/pkg/common/code"
	dates "github.com/chemstack/labstock/pkg/common/dates"
	model "github.com/chemstack/labstock/pkg/model"
)

const csvHeader = "Reagent Name,Supplier,Catalog Number,CAS Number,Internal Lab ID," +
	"Batch Number,Date Received,Expiry Date,Expiry Note,Stock Quantity,Opening Date,Physical Location"

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"reagents.csv", FormatCSV},
		{"REAGENTS.CSV", FormatCSV},
		{"reagents.xlsx", FormatXLSX},
		{"reagents", FormatXLSX},
		{"", FormatXLSX},
	}
	for _, tt := range tests {
		if got := DetectFormat(tt.filename); got != tt.want {
			t.Errorf("DetectFormat(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDecodeRecordsCSV(t *testing.T) {
	in := csvHeader + "\n" +
		"NaOH,Merck,m-101,1310-73-2,LAB-7,B42,2024-01-15,2025-01-15,opened once,3,2024-02-01,Shelf 2\n"

	records, err := DecodeRecords(strings.NewReader(in), FormatCSV, 1)
	if err != nil {
		t.Fatalf("DecodeRecords err: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	r := records[0]
	if r.Name != "NaOH" || r.Supplier != "Merck" || r.CASNumber != "1310-73-2" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if r.StockQuantity != 3 {
		t.Fatalf("quantity = %d, want 3", r.StockQuantity)
	}
	if !dates.Equal(r.ExpiryDate, date(2025, 1, 15)) {
		t.Fatalf("expiry = %v, want 2025-01-15", r.ExpiryDate)
	}
}

func TestDecodeRecordsSchemaMismatch(t *testing.T) {
	in := "Reagent Name,Supplier\nNaOH,Merck\n"

	_, err := DecodeRecords(strings.NewReader(in), FormatCSV, 1)
	if !errors.Is(err, code.SchemaMismatch) {
		t.Fatalf("err = %v, want SchemaMismatch", err)
	}
}

func TestDecodeRecordsEmptyFile(t *testing.T) {
	_, err := DecodeRecords(strings.NewReader(""), FormatCSV, 1)
	if !errors.Is(err, code.SchemaMismatch) {
		t.Fatalf("err = %v, want SchemaMismatch", err)
	}
}

func TestDecodeRecordsQuantityPolicy(t *testing.T) {
	in := csvHeader + "\n" +
		"A,,,,,,,,,,,\n" + // blank quantity
		"B,,,,,,,,,lots,,\n" + // unparseable
		"C,,,,,,,,,-2,,\n" + // negative
		"D,,,,,,,,,3.0,,\n" + // spreadsheet float
		"E,,,,,,,,,7,,\n"

	records, err := DecodeRecords(strings.NewReader(in), FormatCSV, 5)
	if err != nil {
		t.Fatalf("DecodeRecords err: %v", err)
	}

	want := []int{5, 5, 5, 3, 7}
	for i, w := range want {
		if records[i].StockQuantity != w {
			t.Errorf("record %s quantity = %d, want %d", records[i].Name, records[i].StockQuantity, w)
		}
	}
}

func TestDecodeRecordsSkipsBlankRows(t *testing.T) {
	in := csvHeader + "\n" +
		",,,,,,,,,,,\n" +
		"NaOH,,,,,,,,,1,,\n" +
		"\n"

	records, err := DecodeRecords(strings.NewReader(in), FormatCSV, 1)
	if err != nil {
		t.Fatalf("DecodeRecords err: %v", err)
	}
	if len(records) != 1 || records[0].Name != "NaOH" {
		t.Fatalf("got %d records, want the single NaOH row", len(records))
	}
}

func TestDecodeRecordsUnparseableDateBecomesUnknown(t *testing.T) {
	in := csvHeader + "\n" +
		"NaOH,,,,,,soon,n/a,,1,,\n"

	records, err := DecodeRecords(strings.NewReader(in), FormatCSV, 1)
	if err != nil {
		t.Fatalf("DecodeRecords err: %v", err)
	}
	if records[0].DateReceived != nil || records[0].ExpiryDate != nil {
		t.Fatalf("junk dates should normalize to unknown, got %+v", records[0])
	}
}

func roundTrip(t *testing.T, format Format) {
	t.Helper()
	original := []*model.Reagent{
		{
			Name:          "Hydrochloric Acid",
			Supplier:      "Sigma",
			CatalogNumber: "H-77",
			CASNumber:     "7647-01-0",
			InternalID:    "LAB-3",
			BatchNumber:   "B9",
			DateReceived:  date(2024, 1, 10),
			ExpiryDate:    date(2025, 3, 1),
			ExpiryNote:    "check cap seal",
			StockQuantity: 4,
			OpeningDate:   date(2024, 2, 2),
			Location:      "Fridge A",
		},
		{
			Name:          "Ethanol",
			StockQuantity: 2,
		},
	}

	encoded, err := EncodeRecords(original, format, "en")
	if err != nil {
		t.Fatalf("EncodeRecords err: %v", err)
	}
	decoded, err := DecodeRecords(bytes.NewReader(encoded), format, 1)
	if err != nil {
		t.Fatalf("DecodeRecords err: %v", err)
	}
	if len(decoded) != len(original) {
		t.Fatalf("got %d records, want %d", len(decoded), len(original))
	}

	for i := range original {
		a, b := original[i], decoded[i]
		if a.Name != b.Name || a.Supplier != b.Supplier || a.CatalogNumber != b.CatalogNumber ||
			a.CASNumber != b.CASNumber || a.InternalID != b.InternalID || a.BatchNumber != b.BatchNumber ||
			a.ExpiryNote != b.ExpiryNote || a.StockQuantity != b.StockQuantity || a.Location != b.Location {
			t.Fatalf("record %d text fields differ:\n got %+v\nwant %+v", i, b, a)
		}
		if !dates.Equal(a.DateReceived, b.DateReceived) ||
			!dates.Equal(a.ExpiryDate, b.ExpiryDate) ||
			!dates.Equal(a.OpeningDate, b.OpeningDate) {
			t.Fatalf("record %d dates differ:\n got %+v\nwant %+v", i, b, a)
		}
	}
}

func TestRoundTripCSV(t *testing.T)  { roundTrip(t, FormatCSV) }
func TestRoundTripXLSX(t *testing.T) { roundTrip(t, FormatXLSX) }

func TestRoundTripHebrewHeader(t *testing.T) {
	original := []*model.Reagent{{Name: "אתנול", StockQuantity: 2, Location: "מקרר"}}

	encoded, err := EncodeRecords(original, FormatCSV, "he")
	if err != nil {
		t.Fatalf("EncodeRecords err: %v", err)
	}
	decoded, err := DecodeRecords(bytes.NewReader(encoded), FormatCSV, 1)
	if err != nil {
		t.Fatalf("hebrew header should import: %v", err)
	}
	if decoded[0].Name != "אתנול" || decoded[0].StockQuantity != 2 {
		t.Fatalf("got %+v", decoded[0])
	}
}

func TestEncodeUsage(t *testing.T) {
	events := []*model.UsageEvent{
		{
			OccurredAt:  time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
			ReagentName: "NaOH",
			BatchNumber: "B42",
			Actor:       "dana",
		},
	}

	out, err := EncodeUsage(events, FormatCSV)
	if err != nil {
		t.Fatalf("EncodeUsage err: %v", err)
	}

	text := string(out)
	for _, want := range []string{"Date,Reagent Name,Batch Number,Used By", "2024-05-01 09:30:00", "NaOH", "dana"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}
