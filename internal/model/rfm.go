package model

// Segment RFM 客户分群
type Segment string

const (
	SegmentChampions   Segment = "Champions"
	SegmentLoyal       Segment = "Loyal"
	SegmentRecent      Segment = "Recent"
	SegmentAtRisk      Segment = "At Risk"
	SegmentHibernating Segment = "Hibernating"
	SegmentPromising   Segment = "Promising"
)

// CustomerRFM 单客户 RFM 结果
type CustomerRFM struct {
	CustomerID  string  `json:"customerId"`
	RecencyDays int     `json:"recencyDays"`
	Frequency   int     `json:"frequency"` // 不同购买日数
	Monetary    float64 `json:"monetary"`
	RScore      int     `json:"rScore"` // 1-5，5 最好（最近）
	FScore      int     `json:"fScore"`
	MScore      int     `json:"mScore"`
	Segment     Segment `json:"segment"`
}

// SegmentCount 分群人数
type SegmentCount struct {
	Segment Segment `json:"segment"`
	Count   int     `json:"count"`
}
