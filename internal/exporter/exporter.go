package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"babajina/internal/loader"
	"babajina/internal/model"
)

const dateLayout = "2006-01-02"

// ExportCSV 导出单个统一口径数据集为 CSV，返回文件路径
// 文件名带唯一后缀，避免并发导出互相覆盖
func ExportCSV(snapshot *loader.Snapshot, kind model.DatasetKind, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", kind, uuid.NewString()[:8]))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := writeDataset(w, snapshot, kind); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}
	return path, nil
}

// writeDataset 写出单数据集的表头与数据行
func writeDataset(w *csv.Writer, snapshot *loader.Snapshot, kind model.DatasetKind) error {
	switch kind {
	case model.DatasetSales:
		if err := w.Write([]string{"date", "category", "subcategory", "customer_id", "revenue"}); err != nil {
			return err
		}
		for _, r := range snapshot.Sales {
			if err := w.Write(salesRow(r)); err != nil {
				return err
			}
		}
	case model.DatasetSuppliers:
		if err := w.Write([]string{"shop", "category", "order_amount", "year"}); err != nil {
			return err
		}
		for _, r := range snapshot.Suppliers {
			if err := w.Write(supplierRow(r)); err != nil {
				return err
			}
		}
	case model.DatasetRentals:
		if err := w.Write([]string{"mascot", "start", "end"}); err != nil {
			return err
		}
		for _, r := range snapshot.Rentals {
			if err := w.Write(rentalRow(r)); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown dataset kind: %s", kind)
	}
	return nil
}

func salesRow(r model.SalesRecord) []string {
	return []string{
		r.Date.Format(dateLayout),
		r.Category,
		r.Subcategory,
		r.CustomerID,
		strconv.FormatFloat(r.Revenue, 'f', -1, 64),
	}
}

func supplierRow(r model.SupplierOrder) []string {
	year := ""
	if r.Year > 0 {
		year = strconv.Itoa(r.Year)
	}
	return []string{
		r.Shop,
		r.Category,
		strconv.FormatFloat(r.OrderAmount, 'f', -1, 64),
		year,
	}
}

func rentalRow(r model.Rental) []string {
	return []string{
		r.Mascot,
		r.Start.Format(dateLayout),
		r.End.Format(dateLayout),
	}
}

// ExportWorkbook 导出一个包含三张统一口径表的工作簿
func ExportWorkbook(snapshot *loader.Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSalesSheet(f, snapshot.Sales); err != nil {
		return "", err
	}
	if err := writeSupplierSheet(f, snapshot.Suppliers); err != nil {
		return "", err
	}
	if err := writeRentalSheet(f, snapshot.Rentals); err != nil {
		return "", err
	}

	// excelize 默认创建的 Sheet1 让位给销售表
	f.DeleteSheet("Sheet1")

	path := filepath.Join(dir, fmt.Sprintf("normalized_%s.xlsx", uuid.NewString()[:8]))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

func writeSalesSheet(f *excelize.File, records []model.SalesRecord) error {
	const sheet = "Sales"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &[]string{"date", "category", "subcategory", "customer_id", "revenue"}); err != nil {
		return err
	}
	for i, r := range records {
		cellName, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{r.Date.Format(dateLayout), r.Category, r.Subcategory, r.CustomerID, r.Revenue}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeSupplierSheet(f *excelize.File, records []model.SupplierOrder) error {
	const sheet = "Suppliers"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &[]string{"shop", "category", "order_amount", "year"}); err != nil {
		return err
	}
	for i, r := range records {
		cellName, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{r.Shop, r.Category, r.OrderAmount, r.Year}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeRentalSheet(f *excelize.File, records []model.Rental) error {
	const sheet = "Rentals"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &[]string{"mascot", "start", "end"}); err != nil {
		return err
	}
	for i, r := range records {
		cellName, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{r.Mascot, r.Start.Format(dateLayout), r.End.Format(dateLayout)}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			return err
		}
	}
	return nil
}
