package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"babajina/internal/model"
)

// SalesParser 销售表解析器
type SalesParser struct {
	file *excelize.File
}

// NewSalesParser 创建销售表解析器
func NewSalesParser(file *excelize.File) *SalesParser {
	return &SalesParser{file: file}
}

// Parse 解析销售数据。sheetName 为空时取第一个 Sheet
// 必填字段不可解析时返回空结果与诊断，不抛错给调用方
func (p *SalesParser) Parse(sheetName string) ([]model.SalesRecord, *ParseResult, error) {
	rows, sheetName, err := readRows(p.file, sheetName)
	if err != nil {
		return nil, nil, err
	}

	result := &ParseResult{
		Kind:      model.DatasetSales,
		SheetName: sheetName,
		Status:    StatusOK,
	}

	if len(rows) < 2 {
		result.Status = StatusEmpty
		return nil, result, nil
	}

	mappings, missing := ResolveColumns(model.DatasetSales, rows[0])

	// 金额三列全缺时才算 revenue 不可解析
	hasRevenue := MappingIndex(mappings, FieldRevenue) >= 0
	hasDerived := MappingIndex(mappings, FieldQuantity) >= 0 || MappingIndex(mappings, FieldUnitPrice) >= 0
	if !hasRevenue && !hasDerived {
		missing = append(missing, FieldRevenue)
	}

	result.Mappings = mappings
	result.MissingFields = missing
	result.TotalRows = len(rows) - 1

	if len(missing) > 0 {
		result.Status = StatusUnresolved
		return nil, result, nil
	}

	dateIdx := MappingIndex(mappings, FieldDate)
	revenueIdx := MappingIndex(mappings, FieldRevenue)
	qtyIdx := MappingIndex(mappings, FieldQuantity)
	priceIdx := MappingIndex(mappings, FieldUnitPrice)
	catIdx := MappingIndex(mappings, FieldCategory)
	subcatIdx := MappingIndex(mappings, FieldSubcategory)
	customerIdx := MappingIndex(mappings, FieldCustomerID)

	var records []model.SalesRecord
	for rowNo := 1; rowNo < len(rows); rowNo++ {
		row := rows[rowNo]
		if isBlankRow(row) {
			result.TotalRows--
			continue
		}

		date, ok := ParseDate(cell(row, dateIdx))
		if !ok {
			result.RejectedRows++
			continue
		}

		var revenue float64
		if revenueIdx >= 0 {
			revenue, ok = ParseAmount(cell(row, revenueIdx))
		} else {
			revenue, ok = deriveAmount(cell(row, qtyIdx), cell(row, priceIdx))
		}
		if !ok || revenue < 0 {
			result.RejectedRows++
			continue
		}

		records = append(records, model.SalesRecord{
			RowNo:       rowNo + 1,
			Date:        date,
			Category:    textOrUnknown(cell(row, catIdx)),
			Subcategory: strings.TrimSpace(cell(row, subcatIdx)),
			CustomerID:  strings.TrimSpace(cell(row, customerIdx)),
			Revenue:     revenue,
		})
	}

	result.ImportedRows = len(records)
	return records, result, nil
}

// readRows 读取 Sheet 的全部行；sheetName 为空时取第一个 Sheet
func readRows(file *excelize.File, sheetName string) ([][]string, string, error) {
	if sheetName == "" {
		sheets := file.GetSheetList()
		if len(sheets) == 0 {
			return nil, "", fmt.Errorf("workbook has no sheets")
		}
		sheetName = sheets[0]
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, sheetName, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	return rows, sheetName, nil
}

// cell 安全取单元格（行短于列索引时返回空串）
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// isBlankRow 整行为空
func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// textOrUnknown 文本字段缺失时回退到占位值，保证分组不丢行
func textOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.UnknownLabel
	}
	return s
}

// deriveAmount 数量×单价 口径：缺失因子按 0，非数字视为不可解析
func deriveAmount(qty, price string) (float64, bool) {
	q, ok := ParseAmount(qty)
	if !ok {
		return 0, false
	}
	p, ok := ParseAmount(price)
	if !ok {
		return 0, false
	}
	return q * p, true
}
