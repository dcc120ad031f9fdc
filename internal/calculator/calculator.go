package calculator

import (
	"math"
	"sort"
	"time"

	"babajina/internal/model"
	"babajina/internal/parser"
)

// FilterSalesByCategory 按品类过滤销售记录（空过滤 = 不过滤）
func FilterSalesByCategory(sales []model.SalesRecord, categories []string) []model.SalesRecord {
	if len(categories) == 0 {
		return sales
	}

	want := make(map[string]bool, len(categories))
	for _, c := range categories {
		want[c] = true
	}

	var filtered []model.SalesRecord
	for _, r := range sales {
		if want[r.Category] {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// MonthlyRevenue 按月汇总收入，返回按月份升序的序列
func MonthlyRevenue(sales []model.SalesRecord, categories []string) []model.MonthlyPoint {
	sales = FilterSalesByCategory(sales, categories)

	sums := make(map[time.Time]float64)
	for _, r := range sales {
		sums[parser.MonthStart(r.Date)] += r.Revenue
	}

	points := make([]model.MonthlyPoint, 0, len(sums))
	for month, revenue := range sums {
		points = append(points, model.MonthlyPoint{Month: month, Revenue: revenue})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Month.Before(points[j].Month)
	})
	return points
}

// SeasonalForecast 季节均值预测：预测年每月 = 历史年份（≤ cutoffYear）同月份的均值
// 某月份没有历史观测时该月缺席（由调用方决定如何呈现）
func SeasonalForecast(actual []model.MonthlyPoint, cutoffYear, forecastYear int) []model.MonthlyPoint {
	sums := make(map[time.Month]float64)
	counts := make(map[time.Month]int)
	for _, p := range actual {
		if p.Month.Year() > cutoffYear {
			continue
		}
		sums[p.Month.Month()] += p.Revenue
		counts[p.Month.Month()]++
	}

	var forecast []model.MonthlyPoint
	for m := time.January; m <= time.December; m++ {
		n := counts[m]
		if n == 0 {
			continue
		}
		forecast = append(forecast, model.MonthlyPoint{
			Month:   time.Date(forecastYear, m, 1, 0, 0, 0, 0, time.UTC),
			Revenue: sums[m] / float64(n),
		})
	}
	return forecast
}

// MonthlyRevenueWithForecast 月度收入序列 + 季节均值预测序列
func MonthlyRevenueWithForecast(sales []model.SalesRecord, categories []string, cutoffYear, forecastYear int) (actual, forecast []model.MonthlyPoint) {
	actual = MonthlyRevenue(sales, categories)
	forecast = SeasonalForecast(actual, cutoffYear, forecastYear)
	return actual, forecast
}

// Concentration 供应商集中度：按店铺汇总订单额并降序排名，计算前两名份额
// 总额为 0 时份额为 0，不产生除零
func Concentration(orders []model.SupplierOrder, years []int) model.SupplierConcentration {
	wantYear := make(map[int]bool, len(years))
	for _, y := range years {
		wantYear[y] = true
	}

	sums := make(map[string]float64)
	var total float64
	for _, o := range orders {
		if len(years) > 0 && !wantYear[o.Year] {
			continue
		}
		sums[o.Shop] += o.OrderAmount
		total += o.OrderAmount
	}

	ranked := make([]model.SupplierTotal, 0, len(sums))
	for shop, sum := range sums {
		ranked = append(ranked, model.SupplierTotal{Shop: shop, Total: sum})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Shop < ranked[j].Shop
	})

	share := 0.0
	if total > 0 {
		top2 := 0.0
		for i := 0; i < len(ranked) && i < 2; i++ {
			top2 += ranked[i].Total
		}
		share = top2 / total * 100
	}

	return model.SupplierConcentration{Top2Share: share, Ranked: ranked}
}

// mascotMonth 利用率分组键
type mascotMonth struct {
	mascot string
	month  time.Time
}

// RentalUtilization 人偶月度利用率
// 区间按天展开（含首尾），同一人偶同一天的重叠预订先去重再计数，
// 保证利用率不会超过 100%；无预订的月份不产生行
func RentalUtilization(rentals []model.Rental) []model.UtilizationCell {
	// 按 (人偶, 日) 去重
	booked := make(map[string]map[time.Time]bool)
	for _, r := range rentals {
		days := booked[r.Mascot]
		if days == nil {
			days = make(map[time.Time]bool)
			booked[r.Mascot] = days
		}
		for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
			days[d] = true
		}
	}

	counts := make(map[mascotMonth]int)
	for mascot, days := range booked {
		for d := range days {
			counts[mascotMonth{mascot: mascot, month: parser.MonthStart(d)}]++
		}
	}

	cells := make([]model.UtilizationCell, 0, len(counts))
	for key, n := range counts {
		daysInMonth := parser.DaysInMonth(key.month)
		cells = append(cells, model.UtilizationCell{
			Mascot:      key.mascot,
			Month:       key.month,
			BookedDays:  n,
			DaysInMonth: daysInMonth,
			Utilization: round1(float64(n) / float64(daysInMonth) * 100),
		})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Mascot != cells[j].Mascot {
			return cells[i].Mascot < cells[j].Mascot
		}
		return cells[i].Month.Before(cells[j].Month)
	})
	return cells
}

// RevenueByCategory 按品类汇总收入，按收入降序
func RevenueByCategory(sales []model.SalesRecord, categories []string) []model.CategoryTotal {
	sales = FilterSalesByCategory(sales, categories)

	sums := make(map[string]float64)
	for _, r := range sales {
		sums[r.Category] += r.Revenue
	}

	totals := make([]model.CategoryTotal, 0, len(sums))
	for cat, sum := range sums {
		totals = append(totals, model.CategoryTotal{Category: cat, Revenue: sum})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Revenue != totals[j].Revenue {
			return totals[i].Revenue > totals[j].Revenue
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// OrderAmountByCategoryYear 按品类×年份汇总订单额
func OrderAmountByCategoryYear(orders []model.SupplierOrder) []model.ShopYearTotal {
	type key struct {
		category string
		year     int
	}

	sums := make(map[key]float64)
	for _, o := range orders {
		sums[key{category: o.Category, year: o.Year}] += o.OrderAmount
	}

	totals := make([]model.ShopYearTotal, 0, len(sums))
	for k, sum := range sums {
		totals = append(totals, model.ShopYearTotal{Category: k.category, Year: k.year, Total: sum})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Category != totals[j].Category {
			return totals[i].Category < totals[j].Category
		}
		return totals[i].Year < totals[j].Year
	})
	return totals
}

// round1 四舍五入到一位小数
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
