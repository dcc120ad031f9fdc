package calculator

import (
	"math"
	"testing"
	"time"

	"babajina/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sale(y int, m time.Month, d int, category string, revenue float64) model.SalesRecord {
	return model.SalesRecord{Date: date(y, m, d), Category: category, Revenue: revenue}
}

func TestMonthlyRevenue(t *testing.T) {
	t.Parallel()

	sales := []model.SalesRecord{
		sale(2024, time.January, 5, "Toys", 100),
		sale(2024, time.January, 20, "Toys", 50),
		sale(2024, time.February, 3, "Christmas", 200),
	}

	points := MonthlyRevenue(sales, nil)
	if len(points) != 2 {
		t.Fatalf("want 2 months, got %d", len(points))
	}
	if !points[0].Month.Equal(date(2024, time.January, 1)) || points[0].Revenue != 150 {
		t.Fatalf("unexpected january point: %+v", points[0])
	}
	if points[1].Revenue != 200 {
		t.Fatalf("unexpected february point: %+v", points[1])
	}

	// 品类过滤
	filtered := MonthlyRevenue(sales, []string{"Christmas"})
	if len(filtered) != 1 || filtered[0].Revenue != 200 {
		t.Fatalf("category filter failed: %+v", filtered)
	}

	// 空输入
	if got := MonthlyRevenue(nil, nil); len(got) != 0 {
		t.Fatalf("empty input should yield empty series, got %+v", got)
	}
}

func TestSeasonalForecast_ReferenceAverage(t *testing.T) {
	t.Parallel()

	// 2023-01 $100 与 2024-01 $300 -> 1月参照均值 $200 -> 2025-01 预测 $200
	sales := []model.SalesRecord{
		sale(2023, time.January, 15, "Toys", 100),
		sale(2024, time.January, 20, "Toys", 300),
	}

	_, forecast := MonthlyRevenueWithForecast(sales, nil, 2024, 2025)
	if len(forecast) != 1 {
		t.Fatalf("want 1 forecast point, got %d", len(forecast))
	}
	if !forecast[0].Month.Equal(date(2025, time.January, 1)) {
		t.Fatalf("forecast month = %v, want 2025-01", forecast[0].Month)
	}
	if forecast[0].Revenue != 200 {
		t.Fatalf("forecast revenue = %v, want 200", forecast[0].Revenue)
	}
}

func TestSeasonalForecast_FullYear(t *testing.T) {
	t.Parallel()

	// 历史每个月份都有观测时，预测序列恰好 12 个点
	var sales []model.SalesRecord
	for m := time.January; m <= time.December; m++ {
		sales = append(sales, sale(2023, m, 10, "Toys", float64(100*int(m))))
	}

	_, forecast := MonthlyRevenueWithForecast(sales, nil, 2024, 2025)
	if len(forecast) != 12 {
		t.Fatalf("want 12 forecast points, got %d", len(forecast))
	}
	for i, p := range forecast {
		if p.Month.Year() != 2025 || p.Month.Month() != time.Month(i+1) {
			t.Fatalf("forecast point %d has month %v", i, p.Month)
		}
	}
}

func TestSeasonalForecast_CutoffExcludesLaterYears(t *testing.T) {
	t.Parallel()

	sales := []model.SalesRecord{
		sale(2023, time.March, 1, "Toys", 100),
		sale(2025, time.March, 1, "Toys", 900), // 晚于截止年，不进参照表
	}

	_, forecast := MonthlyRevenueWithForecast(sales, nil, 2024, 2026)
	if len(forecast) != 1 || forecast[0].Revenue != 100 {
		t.Fatalf("cutoff not applied: %+v", forecast)
	}

	// 截止年之前完全无数据 -> 预测为空
	_, forecast = MonthlyRevenueWithForecast(sales, nil, 2022, 2025)
	if len(forecast) != 0 {
		t.Fatalf("want empty forecast, got %+v", forecast)
	}
}

func TestConcentration(t *testing.T) {
	t.Parallel()

	orders := []model.SupplierOrder{
		{Shop: "A", OrderAmount: 600, Year: 2024},
		{Shop: "B", OrderAmount: 300, Year: 2024},
		{Shop: "C", OrderAmount: 100, Year: 2024},
	}

	got := Concentration(orders, nil)
	if got.Top2Share != 90 {
		t.Fatalf("top2 share = %v, want 90", got.Top2Share)
	}
	if len(got.Ranked) != 3 || got.Ranked[0].Shop != "A" || got.Ranked[2].Shop != "C" {
		t.Fatalf("unexpected ranking: %+v", got.Ranked)
	}

	// 只有一家时份额 100
	single := Concentration(orders[:1], nil)
	if single.Top2Share != 100 {
		t.Fatalf("single supplier share = %v, want 100", single.Top2Share)
	}

	// 空输入份额 0，不报错
	empty := Concentration(nil, nil)
	if empty.Top2Share != 0 || len(empty.Ranked) != 0 {
		t.Fatalf("empty input should yield 0 share: %+v", empty)
	}

	// 年份过滤
	mixed := append(orders, model.SupplierOrder{Shop: "D", OrderAmount: 9000, Year: 2023})
	filtered := Concentration(mixed, []int{2024})
	if filtered.Top2Share != 90 {
		t.Fatalf("year filter failed: %v", filtered.Top2Share)
	}
}

func TestRentalUtilization_MonthBoundary(t *testing.T) {
	t.Parallel()

	// Leo 2024-03-30 ~ 2024-04-02：三月 2/31 ≈ 6.5%，四月 2/30 ≈ 6.7%
	rentals := []model.Rental{
		{Mascot: "Leo", Start: date(2024, time.March, 30), End: date(2024, time.April, 2)},
	}

	cells := RentalUtilization(rentals)
	if len(cells) != 2 {
		t.Fatalf("want 2 cells, got %d", len(cells))
	}
	if cells[0].BookedDays != 2 || cells[0].Utilization != 6.5 {
		t.Fatalf("march cell: %+v", cells[0])
	}
	if cells[1].BookedDays != 2 || cells[1].Utilization != 6.7 {
		t.Fatalf("april cell: %+v", cells[1])
	}
}

func TestRentalUtilization_OverlapNoDoubleCount(t *testing.T) {
	t.Parallel()

	overlapping := []model.Rental{
		{Mascot: "Leo", Start: date(2024, time.May, 1), End: date(2024, time.May, 10)},
		{Mascot: "Leo", Start: date(2024, time.May, 5), End: date(2024, time.May, 15)},
	}
	union := []model.Rental{
		{Mascot: "Leo", Start: date(2024, time.May, 1), End: date(2024, time.May, 15)},
	}

	got := RentalUtilization(overlapping)
	want := RentalUtilization(union)
	if len(got) != 1 || len(want) != 1 {
		t.Fatalf("want single cell each, got %d / %d", len(got), len(want))
	}
	if got[0].BookedDays != 15 || got[0].BookedDays != want[0].BookedDays {
		t.Fatalf("overlap double-counted: got %d days, union %d days", got[0].BookedDays, want[0].BookedDays)
	}
	if got[0].Utilization > 100 {
		t.Fatalf("utilization above 100%%: %v", got[0].Utilization)
	}
}

func TestRentalUtilization_Bounds(t *testing.T) {
	t.Parallel()

	// 整月预订 -> 恰好 100%
	rentals := []model.Rental{
		{Mascot: "Mia", Start: date(2024, time.June, 1), End: date(2024, time.June, 30)},
	}
	cells := RentalUtilization(rentals)
	if len(cells) != 1 || cells[0].Utilization != 100 {
		t.Fatalf("full month should be 100%%: %+v", cells)
	}

	if got := RentalUtilization(nil); len(got) != 0 {
		t.Fatalf("empty input should yield no cells, got %+v", got)
	}
}

func TestRevenueByCategory_Partition(t *testing.T) {
	t.Parallel()

	sales := []model.SalesRecord{
		sale(2024, time.January, 5, "Toys", 100),
		sale(2024, time.January, 6, "Christmas", 250.5),
		sale(2024, time.February, 7, "Toys", 49.5),
		sale(2024, time.March, 1, "Halloween", 0),
	}

	totals := RevenueByCategory(sales, nil)

	var sum, want float64
	for _, ct := range totals {
		sum += ct.Revenue
	}
	for _, r := range sales {
		want += r.Revenue
	}
	if math.Abs(sum-want) > 1e-9 {
		t.Fatalf("partition property violated: sum %v, want %v", sum, want)
	}
	if totals[0].Category != "Christmas" {
		t.Fatalf("expected descending order, got %+v", totals)
	}

	// 零收入品类仍然保留桶
	found := false
	for _, ct := range totals {
		if ct.Category == "Halloween" {
			found = true
		}
	}
	if !found {
		t.Fatal("zero-revenue category should keep its bucket")
	}
}

func TestOrderAmountByCategoryYear(t *testing.T) {
	t.Parallel()

	orders := []model.SupplierOrder{
		{Shop: "A", Category: "Plush", OrderAmount: 100, Year: 2023},
		{Shop: "B", Category: "Plush", OrderAmount: 200, Year: 2023},
		{Shop: "A", Category: "Plush", OrderAmount: 50, Year: 2024},
		{Shop: "C", Category: "Dolls", OrderAmount: 70, Year: 2023},
	}

	totals := OrderAmountByCategoryYear(orders)
	if len(totals) != 3 {
		t.Fatalf("want 3 groups, got %d", len(totals))
	}
	if totals[0].Category != "Dolls" || totals[0].Total != 70 {
		t.Fatalf("unexpected first group: %+v", totals[0])
	}
	if totals[1].Category != "Plush" || totals[1].Year != 2023 || totals[1].Total != 300 {
		t.Fatalf("unexpected plush 2023 group: %+v", totals[1])
	}
}
