package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"babajina/internal/model"
)

// SupplierParser 供应商订单表解析器
type SupplierParser struct {
	file *excelize.File
}

// NewSupplierParser 创建供应商订单表解析器
func NewSupplierParser(file *excelize.File) *SupplierParser {
	return &SupplierParser{file: file}
}

// Parse 解析供应商订单数据。sheetName 为空时取第一个 Sheet
func (p *SupplierParser) Parse(sheetName string) ([]model.SupplierOrder, *ParseResult, error) {
	rows, sheetName, err := readRows(p.file, sheetName)
	if err != nil {
		return nil, nil, err
	}

	result := &ParseResult{
		Kind:      model.DatasetSuppliers,
		SheetName: sheetName,
		Status:    StatusOK,
	}

	if len(rows) < 2 {
		result.Status = StatusEmpty
		return nil, result, nil
	}

	mappings, missing := ResolveColumns(model.DatasetSuppliers, rows[0])

	// 订单额可由 单价×箱数 推导，两路都缺才算不可解析
	hasAmount := MappingIndex(mappings, FieldOrderAmount) >= 0
	hasDerived := MappingIndex(mappings, FieldPrice) >= 0 || MappingIndex(mappings, FieldCartons) >= 0
	if !hasAmount && !hasDerived {
		missing = append(missing, FieldOrderAmount)
	}

	result.Mappings = mappings
	result.MissingFields = missing
	result.TotalRows = len(rows) - 1

	if len(missing) > 0 {
		result.Status = StatusUnresolved
		return nil, result, nil
	}

	shopIdx := MappingIndex(mappings, FieldShop)
	catIdx := MappingIndex(mappings, FieldCategory)
	amountIdx := MappingIndex(mappings, FieldOrderAmount)
	priceIdx := MappingIndex(mappings, FieldPrice)
	cartonsIdx := MappingIndex(mappings, FieldCartons)
	yearIdx := MappingIndex(mappings, FieldYear)
	dateIdx := MappingIndex(mappings, FieldOrderDate)

	var records []model.SupplierOrder
	for rowNo := 1; rowNo < len(rows); rowNo++ {
		row := rows[rowNo]
		if isBlankRow(row) {
			result.TotalRows--
			continue
		}

		var amount float64
		var ok bool
		if amountIdx >= 0 {
			amount, ok = ParseAmount(cell(row, amountIdx))
		} else {
			amount, ok = deriveAmount(cell(row, priceIdx), cell(row, cartonsIdx))
		}
		if !ok || amount < 0 {
			result.RejectedRows++
			continue
		}

		records = append(records, model.SupplierOrder{
			RowNo:       rowNo + 1,
			Shop:        textOrUnknown(cell(row, shopIdx)),
			Category:    textOrUnknown(cell(row, catIdx)),
			OrderAmount: amount,
			Year:        parseOrderYear(cell(row, yearIdx), cell(row, dateIdx)),
		})
	}

	result.ImportedRows = len(records)
	return records, result, nil
}

// parseOrderYear 年份列优先，缺失时从日期列推断；两路都失败返回 0
func parseOrderYear(yearCell, dateCell string) int {
	s := strings.TrimSpace(yearCell)
	if s != "" {
		if v, ok := ParseAmount(s); ok && v >= 1900 && v <= 2200 {
			return int(v)
		}
	}
	if t, ok := ParseDate(dateCell); ok {
		return t.Year()
	}
	return 0
}
