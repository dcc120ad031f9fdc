package model

import "time"

// DatasetKind 数据集类型
type DatasetKind string

const (
	DatasetSales     DatasetKind = "sales"
	DatasetSuppliers DatasetKind = "suppliers"
	DatasetRentals   DatasetKind = "rentals"
)

// UnknownLabel 文本字段缺失时的占位值（保证分组汇总不丢行）
const UnknownLabel = "Unknown"

// SalesRecord 统一口径销售记录
type SalesRecord struct {
	RowNo       int       `json:"rowNo"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	CustomerID  string    `json:"customerId,omitempty"`
	Revenue     float64   `json:"revenue"`
}

// SupplierOrder 统一口径供应商订单记录
type SupplierOrder struct {
	RowNo       int     `json:"rowNo"`
	Shop        string  `json:"shop"`
	Category    string  `json:"category"`
	OrderAmount float64 `json:"orderAmount"`
	Year        int     `json:"year,omitempty"`
}

// Rental 统一口径人偶租赁记录（End >= Start）
type Rental struct {
	RowNo  int       `json:"rowNo"`
	Mascot string    `json:"mascot"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}
