package kpi

import (
	"fmt"

	"babajina/internal/calculator"
	"babajina/internal/loader"
	"babajina/internal/model"
)

// Card 仪表盘 KPI 卡片
type Card struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Note  string  `json:"note,omitempty"` // 副标题（同比、月份名等）
}

// activeWindowDays 活跃客户代理口径的回看窗口
const activeWindowDays = 180

// BuildSummary 计算仪表盘摘要卡片
// referenceYear 为销售总额卡片的口径年（默认取预测参照截止年）
func BuildSummary(snapshot *loader.Snapshot, categories []string, referenceYear, forecastYear int) []Card {
	sales := calculator.FilterSalesByCategory(snapshot.Sales, categories)

	cards := []Card{
		totalSalesCard(sales, referenceYear),
		peakForecastCard(snapshot.Sales, categories, referenceYear, forecastYear),
		supplierDependenceCard(snapshot.Suppliers),
		activeCustomersCard(sales),
	}
	return cards
}

// totalSalesCard 口径年销售总额，附同比
func totalSalesCard(sales []model.SalesRecord, year int) Card {
	var current, previous float64
	for _, r := range sales {
		switch r.Date.Year() {
		case year:
			current += r.Revenue
		case year - 1:
			previous += r.Revenue
		}
	}

	note := ""
	if previous > 0 {
		growth := (current - previous) / previous * 100
		note = formatGrowth(growth, year-1)
	}

	return Card{
		ID:    "total_sales",
		Name:  "Total Sales",
		Value: current,
		Unit:  "$",
		Note:  note,
	}
}

// peakForecastCard 预测年收入最高的月份
func peakForecastCard(sales []model.SalesRecord, categories []string, cutoffYear, forecastYear int) Card {
	_, forecast := calculator.MonthlyRevenueWithForecast(sales, categories, cutoffYear, forecastYear)

	card := Card{
		ID:   "peak_forecast_month",
		Name: "Peak Month",
		Unit: "$",
		Note: "—",
	}
	for _, p := range forecast {
		if p.Revenue > card.Value {
			card.Value = p.Revenue
			card.Note = p.Month.Month().String()
		}
	}
	return card
}

// supplierDependenceCard 前两名供应商份额
func supplierDependenceCard(orders []model.SupplierOrder) Card {
	concentration := calculator.Concentration(orders, nil)
	return Card{
		ID:    "supplier_dependence",
		Name:  "Supplier Dependence",
		Value: concentration.Top2Share,
		Unit:  "%",
		Note:  "Top 2 share",
	}
}

// activeCustomersCard 活跃客户代理口径：最近 180 天的销售笔数
func activeCustomersCard(sales []model.SalesRecord) Card {
	card := Card{
		ID:   "active_customers",
		Name: "Active Customers (proxy)",
		Unit: "orders",
		Note: "last 180 days",
	}
	if len(sales) == 0 {
		return card
	}

	maxDate := sales[0].Date
	for _, r := range sales {
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
	}
	cutoff := maxDate.AddDate(0, 0, -activeWindowDays)

	count := 0
	for _, r := range sales {
		if r.Date.After(cutoff) {
			count++
		}
	}
	card.Value = float64(count)
	return card
}

// formatGrowth 同比文案
func formatGrowth(growth float64, baseYear int) string {
	return fmt.Sprintf("%+.1f%% vs %d", growth, baseYear)
}
