package model

import "time"

// MonthlyPoint 月度收入点（Month 为该月第一天）
type MonthlyPoint struct {
	Month   time.Time `json:"month"`
	Revenue float64   `json:"revenue"`
}

// SupplierTotal 单个供应商的订单总额（按总额降序排名）
type SupplierTotal struct {
	Shop  string  `json:"shop"`
	Total float64 `json:"total"`
}

// SupplierConcentration 供应商集中度
type SupplierConcentration struct {
	Top2Share float64         `json:"top2Share"` // 前两名份额（%）
	Ranked    []SupplierTotal `json:"ranked"`
}

// UtilizationCell 某人偶某月的利用率
type UtilizationCell struct {
	Mascot      string    `json:"mascot"`
	Month       time.Time `json:"month"`
	BookedDays  int       `json:"bookedDays"`
	DaysInMonth int       `json:"daysInMonth"`
	Utilization float64   `json:"utilization"` // %，保留一位小数
}

// CategoryTotal 按品类汇总的收入
type CategoryTotal struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// ShopYearTotal 按品类×年份汇总的订单额
type ShopYearTotal struct {
	Category string  `json:"category"`
	Year     int     `json:"year"`
	Total    float64 `json:"total"`
}
