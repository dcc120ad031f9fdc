package parser

import (
	"github.com/xuri/excelize/v2"

	"babajina/internal/model"
)

// RentalParser 人偶租赁表解析器
type RentalParser struct {
	file *excelize.File
}

// NewRentalParser 创建租赁表解析器
func NewRentalParser(file *excelize.File) *RentalParser {
	return &RentalParser{file: file}
}

// Parse 解析租赁数据。sheetName 为空时取第一个 Sheet
// 起止日期无法解析或 end < start 的区间被丢弃并计数
func (p *RentalParser) Parse(sheetName string) ([]model.Rental, *ParseResult, error) {
	rows, sheetName, err := readRows(p.file, sheetName)
	if err != nil {
		return nil, nil, err
	}

	result := &ParseResult{
		Kind:      model.DatasetRentals,
		SheetName: sheetName,
		Status:    StatusOK,
	}

	if len(rows) < 2 {
		result.Status = StatusEmpty
		return nil, result, nil
	}

	mappings, missing := ResolveColumns(model.DatasetRentals, rows[0])
	result.Mappings = mappings
	result.MissingFields = missing
	result.TotalRows = len(rows) - 1

	if len(missing) > 0 {
		result.Status = StatusUnresolved
		return nil, result, nil
	}

	mascotIdx := MappingIndex(mappings, FieldMascot)
	startIdx := MappingIndex(mappings, FieldStart)
	endIdx := MappingIndex(mappings, FieldEnd)

	var records []model.Rental
	for rowNo := 1; rowNo < len(rows); rowNo++ {
		row := rows[rowNo]
		if isBlankRow(row) {
			result.TotalRows--
			continue
		}

		start, ok := ParseDate(cell(row, startIdx))
		if !ok {
			result.RejectedRows++
			continue
		}
		end, ok := ParseDate(cell(row, endIdx))
		if !ok || end.Before(start) {
			result.RejectedRows++
			continue
		}

		records = append(records, model.Rental{
			RowNo:  rowNo + 1,
			Mascot: textOrUnknown(cell(row, mascotIdx)),
			Start:  start,
			End:    end,
		})
	}

	result.ImportedRows = len(records)
	return records, result, nil
}
