package generate_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"marmoraria-pro/internal/service/calc"
	"marmoraria-pro/internal/storage"
)

type ReportStorage interface {
	GetProjects(ctx context.Context) ([]*storage.Project, error)
}

type GenerateExcelService struct {
	storage ReportStorage
}

func NewGenerateService(storage ReportStorage) *GenerateExcelService {
	return &GenerateExcelService{storage: storage}
}

var reportHeaders = []string{
	"Pedido", "Cliente", "Telefone", "Status", "Recebido", "Prazo",
	"Ambientes", "Total", "Concluído", "Comissão (%)", "Valor Comissão",
}

// GenerateExcel builds the management XLSX over the filtered project list.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, search string, status storage.ProjectStatus) ([]byte, error) {
	projects, err := g.storage.GetProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch data: %w", err)
	}
	projects = calc.Filter(projects, search, status)

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Projetos"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	for i, name := range reportHeaders {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}

	lastCol, _ := excelize.CoordinatesToCellName(len(reportHeaders), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	for rowIdx, p := range projects {
		rowNum := rowIdx + 2

		f.SetCellValue(sheet, cellName(1, rowNum), p.OrderNumber)
		f.SetCellValue(sheet, cellName(2, rowNum), p.ClientName)
		f.SetCellValue(sheet, cellName(3, rowNum), p.ClientPhone)
		f.SetCellValue(sheet, cellName(4, rowNum), string(p.Status))
		f.SetCellValue(sheet, cellName(5, rowNum), p.ReceivedDate)
		f.SetCellValue(sheet, cellName(6, rowNum), p.DeadlineDate)
		f.SetCellValue(sheet, cellName(7, rowNum), len(p.Environments))
		f.SetCellValue(sheet, cellName(8, rowNum), calc.ProjectTotal(p).Float64())
		f.SetCellValue(sheet, cellName(9, rowNum), calc.CompletedTotal(p).Float64())
		f.SetCellValue(sheet, cellName(10, rowNum), p.CommissionPercentage)
		f.SetCellValue(sheet, cellName(11, rowNum), calc.Commission(p).Float64())
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(sheet, "A", "K", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
