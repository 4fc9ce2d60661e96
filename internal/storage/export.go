package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

const reportsDir = "reports"

var orderExportHeaders = []string{
	"ID", "User ID", "Listing", "Hours", "Night", "Price",
	"Original Price", "Savings", "Status", "Created At",
}

func orderExportRow(order Order) []interface{} {
	night := "no"
	if order.Night {
		night = "yes"
	}
	return []interface{}{
		order.ID,
		order.UserID,
		order.ListingID,
		order.Hours,
		night,
		order.Price,
		order.OriginalPrice,
		order.Savings,
		order.Status,
		order.CreatedAt.Format("2006-01-02 15:04"),
	}
}

// ExportOrderToExcel writes a single order report and returns the file
// path.
func (s *PostgresStorage) ExportOrderToExcel(ctx context.Context, order Order) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet("Order")
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}

	rows := [][2]interface{}{
		{"Order ID", order.ID},
		{"User ID", order.UserID},
		{"Listing", order.ListingID},
		{"Hours", order.Hours},
		{"Night rate", order.Night},
		{"Price", order.Price},
		{"Original price", order.OriginalPrice},
		{"Savings", order.Savings},
		{"Status", order.Status},
		{"Created At", order.CreatedAt.Format("2006-01-02 15:04")},
	}
	for i, row := range rows {
		f.SetCellValue("Order", fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue("Order", fmt.Sprintf("B%d", i+1), row[1])
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle("Order", "A1", fmt.Sprintf("A%d", len(rows)), style)

	f.SetActiveSheet(index)

	filename := fmt.Sprintf("order_%d_%s.xlsx",
		order.ID,
		order.CreatedAt.Format("20060102_1504"))
	filepath := fmt.Sprintf("%s/%s", reportsDir, filename)

	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	if err := f.SaveAs(filepath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}

	return filepath, nil
}

// ExportAllOrdersToExcel writes all orders into reports/<filename>.xlsx
// and returns the file path.
func (s *PostgresStorage) ExportAllOrdersToExcel(ctx context.Context, filename string) (string, error) {
	const query = `
        SELECT id, user_id, listing_id::text, hours, night, price,
               original_price, savings, status, created_at
        FROM orders ORDER BY created_at DESC
    `
	var orders []Order
	err := s.db.SelectContext(ctx, &orders, query)
	if err != nil {
		return "", fmt.Errorf("failed to fetch orders: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet("Orders")
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}

	for col, header := range orderExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue("Orders", cell, header)
	}

	for row, order := range orders {
		for col, value := range orderExportRow(order) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue("Orders", cell, value)
		}
	}

	f.SetActiveSheet(index)

	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	filepath := fmt.Sprintf("%s/%s.xlsx", reportsDir, filename)
	if err := f.SaveAs(filepath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}

	return filepath, nil
}
