package segment

import (
	"testing"
	"time"

	"babajina/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// purchases 生成某客户在若干天的购买记录，每天一笔
func purchases(customer string, amount float64, days ...time.Time) []model.SalesRecord {
	records := make([]model.SalesRecord, 0, len(days))
	for _, d := range days {
		records = append(records, model.SalesRecord{
			Date:       d,
			CustomerID: customer,
			Revenue:    amount,
		})
	}
	return records
}

func TestCompute_FiveQuintiles(t *testing.T) {
	t.Parallel()

	asOf := date(2024, time.December, 31)

	// 五个客户恰好覆盖五个分位：
	// A 最近 0 天 / 5 次 / 500，……，E 40 天 / 1 次 / 100
	var sales []model.SalesRecord
	sales = append(sales, purchases("A", 100,
		date(2024, time.December, 27), date(2024, time.December, 28),
		date(2024, time.December, 29), date(2024, time.December, 30),
		date(2024, time.December, 31))...)
	sales = append(sales, purchases("B", 100,
		date(2024, time.December, 18), date(2024, time.December, 19),
		date(2024, time.December, 20), date(2024, time.December, 21))...)
	sales = append(sales, purchases("C", 100,
		date(2024, time.December, 9), date(2024, time.December, 10),
		date(2024, time.December, 11))...)
	sales = append(sales, purchases("D", 100,
		date(2024, time.November, 30), date(2024, time.December, 1))...)
	sales = append(sales, purchases("E", 100,
		date(2024, time.November, 21))...)

	rows := Compute(sales, asOf)
	if len(rows) != 5 {
		t.Fatalf("want 5 customers, got %d", len(rows))
	}

	tests := []struct {
		id       string
		recency  int
		freq     int
		monetary float64
		rScore   int
		fScore   int
		segment  model.Segment
	}{
		{"A", 0, 5, 500, 5, 5, model.SegmentChampions},
		{"B", 10, 4, 400, 4, 4, model.SegmentChampions},
		{"C", 20, 3, 300, 3, 3, model.SegmentLoyal},
		{"D", 30, 2, 200, 2, 2, model.SegmentHibernating},
		{"E", 40, 1, 100, 1, 1, model.SegmentHibernating},
	}
	for i, tt := range tests {
		got := rows[i]
		if got.CustomerID != tt.id {
			t.Fatalf("row %d customer = %s, want %s", i, got.CustomerID, tt.id)
		}
		if got.RecencyDays != tt.recency || got.Frequency != tt.freq || got.Monetary != tt.monetary {
			t.Errorf("%s RFM = (%d, %d, %v), want (%d, %d, %v)",
				tt.id, got.RecencyDays, got.Frequency, got.Monetary, tt.recency, tt.freq, tt.monetary)
		}
		if got.RScore != tt.rScore || got.FScore != tt.fScore {
			t.Errorf("%s scores = R%d F%d, want R%d F%d", tt.id, got.RScore, got.FScore, tt.rScore, tt.fScore)
		}
		if got.Segment != tt.segment {
			t.Errorf("%s segment = %s, want %s", tt.id, got.Segment, tt.segment)
		}
	}
}

func TestCompute_SmallPopulationNeutralScores(t *testing.T) {
	t.Parallel()

	// 不同取值不足 5 个，三项全部给中性分 3
	sales := append(
		purchases("A", 100, date(2024, time.June, 1)),
		purchases("B", 200, date(2024, time.June, 10))...)

	rows := Compute(sales, date(2024, time.June, 30))
	if len(rows) != 2 {
		t.Fatalf("want 2 customers, got %d", len(rows))
	}
	for _, r := range rows {
		if r.RScore != 3 || r.FScore != 3 || r.MScore != 3 {
			t.Errorf("%s scores = R%d F%d M%d, want all 3", r.CustomerID, r.RScore, r.FScore, r.MScore)
		}
		if r.Segment != model.SegmentLoyal {
			t.Errorf("%s segment = %s, want %s", r.CustomerID, r.Segment, model.SegmentLoyal)
		}
	}
}

func TestCompute_Accumulation(t *testing.T) {
	t.Parallel()

	// 同一天多笔只算一次频次，金额照常累加
	sales := []model.SalesRecord{
		{Date: date(2024, time.March, 5), CustomerID: "A", Revenue: 30},
		{Date: date(2024, time.March, 5), CustomerID: "A", Revenue: 70},
		{Date: date(2024, time.March, 8), CustomerID: "A", Revenue: 50},
	}

	rows := Compute(sales, date(2024, time.March, 10))
	if len(rows) != 1 {
		t.Fatalf("want 1 customer, got %d", len(rows))
	}
	got := rows[0]
	if got.Frequency != 2 {
		t.Errorf("frequency = %d, want 2 (distinct days)", got.Frequency)
	}
	if got.Monetary != 150 {
		t.Errorf("monetary = %v, want 150", got.Monetary)
	}
	if got.RecencyDays != 2 {
		t.Errorf("recency = %d, want 2", got.RecencyDays)
	}
}

func TestCompute_NoCustomerIDs(t *testing.T) {
	t.Parallel()

	sales := []model.SalesRecord{
		{Date: date(2024, time.March, 5), Revenue: 30},
		{Date: date(2024, time.March, 6), Revenue: 40},
	}
	if rows := Compute(sales, time.Time{}); rows != nil {
		t.Fatalf("want nil result without customer ids, got %+v", rows)
	}
	if rows := Compute(nil, time.Time{}); rows != nil {
		t.Fatalf("want nil result on empty input, got %+v", rows)
	}
}

func TestCompute_ZeroAsOfUsesMaxDate(t *testing.T) {
	t.Parallel()

	sales := purchases("A", 100, date(2024, time.May, 1), date(2024, time.May, 20))
	rows := Compute(sales, time.Time{})
	if len(rows) != 1 || rows[0].RecencyDays != 0 {
		t.Fatalf("zero asOf should fall back to max date, got %+v", rows)
	}

	// asOf 早于最近购买时近度不为负
	rows = Compute(sales, date(2024, time.May, 10))
	if rows[0].RecencyDays != 0 {
		t.Fatalf("recency should clamp at 0, got %d", rows[0].RecencyDays)
	}
}

func TestClassify_AllPairsCovered(t *testing.T) {
	t.Parallel()

	known := map[model.Segment]bool{
		model.SegmentChampions:   true,
		model.SegmentLoyal:       true,
		model.SegmentRecent:      true,
		model.SegmentAtRisk:      true,
		model.SegmentPromising:   true,
		model.SegmentHibernating: true,
	}
	for r := 1; r <= 5; r++ {
		for f := 1; f <= 5; f++ {
			if s := classify(r, f); !known[s] {
				t.Errorf("classify(%d, %d) = %q, not a known segment", r, f, s)
			}
		}
	}

	// 抽查几个边界组合
	if s := classify(5, 1); s != model.SegmentRecent {
		t.Errorf("classify(5, 1) = %s, want %s", s, model.SegmentRecent)
	}
	if s := classify(1, 5); s != model.SegmentAtRisk {
		t.Errorf("classify(1, 5) = %s, want %s", s, model.SegmentAtRisk)
	}
	if s := classify(2, 3); s != model.SegmentPromising {
		t.Errorf("classify(2, 3) = %s, want %s", s, model.SegmentPromising)
	}
}

func TestCounts(t *testing.T) {
	t.Parallel()

	rows := []model.CustomerRFM{
		{CustomerID: "A", Segment: model.SegmentHibernating},
		{CustomerID: "B", Segment: model.SegmentChampions},
		{CustomerID: "C", Segment: model.SegmentHibernating},
	}

	counts := Counts(rows)
	if len(counts) != 2 {
		t.Fatalf("want 2 segments, got %+v", counts)
	}
	if counts[0].Segment != model.SegmentChampions || counts[0].Count != 1 {
		t.Errorf("first row = %+v, want Champions 1", counts[0])
	}
	if counts[1].Segment != model.SegmentHibernating || counts[1].Count != 2 {
		t.Errorf("second row = %+v, want Hibernating 2", counts[1])
	}

	if got := Counts(nil); len(got) != 0 {
		t.Fatalf("empty input should yield no rows, got %+v", got)
	}
}
