package parser

import (
	"babajina/internal/model"
)

// fieldSpec 单个统一口径字段的别名规则
// patterns 为整名正则（按优先级），contains 为包含式兜底关键词
type fieldSpec struct {
	field    string
	required bool
	patterns []string
	contains []string
}

// FieldDate 统一口径字段名
const (
	FieldDate        = "date"
	FieldRevenue     = "revenue"
	FieldQuantity    = "quantity"
	FieldUnitPrice   = "unit_price"
	FieldCategory    = "category"
	FieldSubcategory = "subcategory"
	FieldCustomerID  = "customer_id"

	FieldShop        = "shop"
	FieldOrderAmount = "order_amount"
	FieldPrice       = "price"
	FieldCartons     = "cartons"
	FieldYear        = "year"
	FieldOrderDate   = "order_date"

	FieldMascot = "mascot"
	FieldStart  = "start"
	FieldEnd    = "end"
)

// salesFields 销售表字段规则
// revenue/quantity/unit_price 在列级都不是必填：解析器在三者全缺时才报告 revenue 不可解析
var salesFields = []fieldSpec{
	{
		field:    FieldDate,
		required: true,
		patterns: []string{`date|order date|order_date|sale date|sale_date|invoice date|invoice_date|transaction date|transaction_date`},
		contains: []string{"date"},
	},
	{
		field:    FieldRevenue,
		patterns: []string{`total amount|total_amount|amount|revenue|total|sales amount|sales_amount|total sales|total_sales`},
		contains: []string{"amount", "revenue", "total"},
	},
	{
		field:    FieldQuantity,
		patterns: []string{`quantity|qty|units`},
		contains: []string{"qty", "quantity"},
	},
	{
		field:    FieldUnitPrice,
		patterns: []string{`unit price|unit_price|price|unit cost|unit_cost`},
		contains: []string{"price"},
	},
	{
		field:    FieldCategory,
		required: true,
		patterns: []string{`category|product category|product_category`},
		contains: []string{"category"},
	},
	{
		field:    FieldSubcategory,
		patterns: []string{`subcategory|sub category|sub_category`},
		contains: []string{"subcat"},
	},
	{
		field:    FieldCustomerID,
		patterns: []string{`customer id|customer_id|customerid|customer|client id|client_id|customer code|customer_code`},
		contains: []string{"customer", "client"},
	},
}

// supplierFields 供应商订单表字段规则
var supplierFields = []fieldSpec{
	{
		field:    FieldShop,
		required: true,
		patterns: []string{`shop|supplier|vendor|store|shop name|shop_name|supplier name|supplier_name`},
		contains: []string{"supplier", "shop", "vendor"},
	},
	{
		field:    FieldCategory,
		patterns: []string{`category|product category|product_category`},
		contains: []string{"category"},
	},
	{
		field:    FieldOrderAmount,
		patterns: []string{`order amount|order_amount|amount|order total|order_total|total|order value|order_value`},
		contains: []string{"amount", "total"},
	},
	{
		field:    FieldPrice,
		patterns: []string{`price|unit price|unit_price`},
		contains: []string{"price"},
	},
	{
		field:    FieldCartons,
		patterns: []string{`cartons|carton count|carton_count|boxes|qty|quantity`},
		contains: []string{"carton", "qty"},
	},
	{
		field:    FieldYear,
		patterns: []string{`year|order year|order_year`},
		contains: []string{"year"},
	},
	{
		field:    FieldOrderDate,
		patterns: []string{`date|order date|order_date`},
		contains: []string{"date"},
	},
}

// rentalFields 租赁表字段规则
var rentalFields = []fieldSpec{
	{
		field:    FieldMascot,
		required: true,
		patterns: []string{`mascot|mascot name|mascot_name|character`},
		contains: []string{"mascot"},
	},
	{
		field:    FieldStart,
		required: true,
		patterns: []string{`start|start date|start_date|from|rental start|rental_start`},
		contains: []string{"start"},
	},
	{
		field:    FieldEnd,
		required: true,
		patterns: []string{`end|end date|end_date|to|rental end|rental_end`},
		contains: []string{"end"},
	},
}

// fieldsFor 按数据集类型取字段规则
func fieldsFor(kind model.DatasetKind) []fieldSpec {
	switch kind {
	case model.DatasetSales:
		return salesFields
	case model.DatasetSuppliers:
		return supplierFields
	case model.DatasetRentals:
		return rentalFields
	}
	return nil
}

// ResolveColumns 解析表头，返回字段映射与未解析到的必填字段
// 规则优先级高于列顺序；整名匹配优先于包含式兜底；已被占用的列不再复用
func ResolveColumns(kind model.DatasetKind, headers []string) ([]FieldMapping, []string) {
	specs := fieldsFor(kind)

	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeColumnName(h)
	}

	claimed := make(map[int]bool)
	var mappings []FieldMapping
	var missing []string

	for _, spec := range specs {
		idx := resolveOne(spec, normalized, claimed)
		if idx < 0 {
			if spec.required {
				missing = append(missing, spec.field)
			}
			continue
		}
		claimed[idx] = true
		mappings = append(mappings, FieldMapping{
			Field:       spec.field,
			ColumnIndex: idx,
			ColumnName:  headers[idx],
		})
	}

	return mappings, missing
}

// resolveOne 按规则优先级查找单个字段的列
func resolveOne(spec fieldSpec, columns []string, claimed map[int]bool) int {
	for _, pattern := range spec.patterns {
		for idx, col := range columns {
			if col == "" || claimed[idx] {
				continue
			}
			if MatchPattern(col, pattern) {
				return idx
			}
		}
	}
	for idx, col := range columns {
		if col == "" || claimed[idx] {
			continue
		}
		if ContainsAny(col, spec.contains) {
			return idx
		}
	}
	return -1
}

// MappingIndex 便捷查询：字段名 -> 列索引（未解析为 -1）
func MappingIndex(mappings []FieldMapping, field string) int {
	for _, m := range mappings {
		if m.Field == field {
			return m.ColumnIndex
		}
	}
	return -1
}
