package kpi

// baseBasket 模拟器的基准客单价（美元）
const baseBasket = 28.0

// SimulationInput 配送补贴模拟输入
type SimulationInput struct {
	MonthlyOrders   int     `json:"monthlyOrders" binding:"min=0"`
	SubsidyPerOrder float64 `json:"subsidyPerOrder" binding:"min=0"`
	BasketUpliftPct float64 `json:"basketUpliftPct" binding:"min=0"`
	GrossMarginPct  float64 `json:"grossMarginPct" binding:"min=0"`
}

// SimulationResult 配送补贴模拟结果
type SimulationResult struct {
	NewBasket   float64 `json:"newBasket"`
	GrossProfit float64 `json:"grossProfit"`
	SubsidyCost float64 `json:"subsidyCost"`
	NetImpact   float64 `json:"netImpact"` // 月度净影响
}

// SimulateDeliverySubsidy 配送补贴净影响测算
// 净影响 = 提升后客单价 × 毛利率 × 单量 − 补贴 × 单量
func SimulateDeliverySubsidy(in SimulationInput) SimulationResult {
	orders := float64(in.MonthlyOrders)
	newBasket := baseBasket * (1 + in.BasketUpliftPct/100)
	grossProfit := newBasket * (in.GrossMarginPct / 100) * orders
	subsidyCost := in.SubsidyPerOrder * orders

	return SimulationResult{
		NewBasket:   newBasket,
		GrossProfit: grossProfit,
		SubsidyCost: subsidyCost,
		NetImpact:   grossProfit - subsidyCost,
	}
}
