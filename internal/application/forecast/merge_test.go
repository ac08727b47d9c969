package forecast

import (
	"sort"
	"testing"
	"time"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
)

func hist(date string, v float64, category string) entity.DataPoint {
	return entity.DataPoint{Date: date, Actual: entity.Float(v), Category: category}
}

func fc(date string, v float64, category string) entity.DataPoint {
	return entity.DataPoint{Date: date, Forecast: entity.Float(v), Category: category}
}

func TestMergeScenarioA(t *testing.T) {
	historical := []entity.DataPoint{hist("2024-01-01", 100, "Electronics")}
	forecast := []entity.DataPoint{fc("2024-02-01", 120, "Electronics")}

	merged := Merge(historical, forecast, "Electronics")
	if len(merged) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(merged))
	}

	jan, feb := merged[0], merged[1]
	if jan.Actual == nil || *jan.Actual != 100 || jan.Forecast != nil {
		t.Errorf("january row = %+v, want actual 100 and no forecast", jan)
	}
	if feb.Forecast == nil || *feb.Forecast != 120 || feb.Actual != nil {
		t.Errorf("february row = %+v, want forecast 120 and no actual", feb)
	}
}

func TestMergeSortsAndIsIdempotent(t *testing.T) {
	historical := []entity.DataPoint{
		hist("2024-03-01", 3, "A"),
		hist("2023-12-01", 1, "B"),
		hist("2024-01", 2, "A"),
	}
	forecast := []entity.DataPoint{
		fc("2024-02-01", 5, "A"),
		fc("2023-11-01T00:00:00Z", 4, "B"),
	}

	merged := Merge(historical, forecast, "")
	if len(merged) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(merged))
	}
	if !sort.SliceIsSorted(merged, func(i, j int) bool { return merged[i].Date.Before(merged[j].Date) }) {
		t.Fatalf("rows not sorted: %+v", merged)
	}

	again := append([]entity.MergedPoint(nil), merged...)
	sortByDate(again)
	for i := range merged {
		if merged[i].RawDate != again[i].RawDate {
			t.Fatalf("re-sorting changed order at %d", i)
		}
	}
}

func TestMergeFilterConsistency(t *testing.T) {
	historical := []entity.DataPoint{
		hist("2024-01-01", 1, "Electronics"),
		hist("2024-01-01", 2, "Clothing"),
		hist("2024-02-01", 3, ""),
	}
	forecast := []entity.DataPoint{
		fc("2024-03-01", 4, "Clothing"),
		fc("2024-03-01", 5, "Electronics"),
	}

	for _, category := range []string{"Electronics", "Clothing", "Beauty"} {
		for _, row := range Merge(historical, forecast, category) {
			if row.Category != category {
				t.Errorf("category %q: found row of %q", category, row.Category)
			}
		}
	}

	if got := len(Merge(historical, forecast, "")); got != 5 {
		t.Errorf("no filter: expected 5 rows, got %d", got)
	}
}

func TestMergeKeepsSameDateRowsApart(t *testing.T) {
	historical := []entity.DataPoint{hist("2024-05-01", 10, "")}
	forecast := []entity.DataPoint{fc("2024-05-01", 11, "")}

	merged := Merge(historical, forecast, "")
	if len(merged) != 2 {
		t.Fatalf("expected rows not to be coalesced, got %d", len(merged))
	}
	if merged[0].Origin != entity.OriginHistorical || merged[1].Origin != entity.OriginForecast {
		t.Errorf("stable sort must keep historical first on ties: %+v", merged)
	}
}

func TestMergeEmpty(t *testing.T) {
	if got := Merge(nil, nil, ""); len(got) != 0 {
		t.Fatalf("expected empty merge, got %+v", got)
	}
	if got := Merge([]entity.DataPoint{}, []entity.DataPoint{}, "Electronics"); len(got) != 0 {
		t.Fatalf("expected empty merge, got %+v", got)
	}
}

func TestMergeDropsMalformedDatesButTableKeepsThem(t *testing.T) {
	historical := []entity.DataPoint{
		hist("not-a-date", 1, ""),
		hist("2024-02-01", 2, ""),
	}
	forecast := []entity.DataPoint{fc("2024-13-01", 3, "")}

	chart := Merge(historical, forecast, "")
	if len(chart) != 1 || chart[0].RawDate != "2024-02-01" {
		t.Fatalf("chart path should keep only the valid row, got %+v", chart)
	}

	table := MergeForTable(historical, forecast, "")
	if len(table) != 3 {
		t.Fatalf("table path should keep every row, got %d", len(table))
	}
	if table[0].RawDate != "2024-02-01" {
		t.Errorf("dated rows come first, got %q", table[0].RawDate)
	}
	if table[1].RawDate != "not-a-date" || table[2].RawDate != "2024-13-01" {
		t.Errorf("undated rows keep input order, got %q, %q", table[1].RawDate, table[2].RawDate)
	}
	if FormatLabel(table[1].Date, table[1].RawDate) != "not-a-date" {
		t.Errorf("undated label should be the raw string")
	}
}

func TestMergeKeepsWrittenMonthForOffsetDates(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{date: "2024-02-01T00:00:00+02:00", want: "Feb 2024"},
		{date: "2024-03-31T23:30:00-05:00", want: "Mar 2024"},
		{date: "2024-04-01T00:00:00Z", want: "Apr 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			merged := Merge([]entity.DataPoint{hist(tt.date, 1, "")}, nil, "")
			if len(merged) != 1 {
				t.Fatalf("expected 1 row, got %d", len(merged))
			}
			if merged[0].Label != tt.want {
				t.Errorf("label = %q, want %q", merged[0].Label, tt.want)
			}
			if merged[0].Date.Location() != time.UTC {
				t.Errorf("date not in UTC: %v", merged[0].Date)
			}
		})
	}
}
