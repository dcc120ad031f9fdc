package parser

import "babajina/internal/model"

// FieldMapping 字段映射结果
type FieldMapping struct {
	Field       string `json:"field"`       // 统一口径字段名
	ColumnIndex int    `json:"columnIndex"` // Excel 列索引
	ColumnName  string `json:"columnName"`  // 原始列名
}

// ParseResult 单数据集解析结果（诊断信息随数据一起返回，不走日志侧信道）
type ParseResult struct {
	Kind          model.DatasetKind `json:"kind"`
	SheetName     string            `json:"sheetName"`
	Status        string            `json:"status"` // ok / unresolved / empty
	Mappings      []FieldMapping    `json:"mappings"`
	MissingFields []string          `json:"missingFields,omitempty"` // 无法解析的必填字段
	TotalRows     int               `json:"totalRows"`               // 数据行总数（不含表头）
	ImportedRows  int               `json:"importedRows"`
	RejectedRows  int               `json:"rejectedRows"` // 日期/金额无法解析被丢弃的行
}

// StatusOK 必填字段全部解析成功
const (
	StatusOK         = "ok"
	StatusUnresolved = "unresolved"
	StatusEmpty      = "empty"
)

// Resolved 判断某字段是否解析到了列
func (r *ParseResult) Resolved(field string) bool {
	for _, m := range r.Mappings {
		if m.Field == field {
			return true
		}
	}
	return false
}
