package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/dto"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = errors.New("该月份暂无公平性数据")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 报表导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
type ExportService interface {
	// ExportFairnessReport 导出综合公平性报表为 Excel (.xlsx)
	ExportFairnessReport(ctx context.Context, clinicID string, year, month int) (*bytes.Buffer, string, error)
}

type exportService struct {
	report FairnessReportService
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(report FairnessReportService, logger *zap.Logger) ExportService {
	return &exportService{report: report, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportFairnessReport — 导出综合公平性报表
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "年度累计"：四个维度的 behind/on_track/ahead 明细
//   - Sheet "月度得分"：加权得分与容差带
//   - Sheet "排班建议"：每维度 behind 员工（优先级升序）

func (s *exportService) ExportFairnessReport(ctx context.Context, clinicID string, year, month int) (*bytes.Buffer, string, error) {
	report, err := s.report.GetComprehensiveFairnessReport(ctx, clinicID, year, month)
	if err != nil {
		return nil, "", err
	}
	if len(report.Monthly) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── Sheet 1: 年度累计 ──
	yearlySheet := "年度累计"
	idx, _ := f.NewSheet(yearlySheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(yearlySheet, "A", "A", 12)
	f.SetColWidth(yearlySheet, "B", "C", 14)
	f.SetColWidth(yearlySheet, "D", "G", 11)

	headers := []string{"维度", "姓名", "类别", "累计实际", "累计目标", "差值", "状态"}
	for i, h := range headers {
		f.SetCellValue(yearlySheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(yearlySheet, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	row := 2
	yearlySections := []struct {
		label   string
		entries []dto.YearlyStaffStatus
	}{
		{"夜诊", report.NightShift},
		{"周末", report.WeekendWork},
		{"公休日", report.HolidayWork},
		{"公休日邻近", report.HolidayAdjacent},
	}
	for _, section := range yearlySections {
		for _, e := range section.entries {
			f.SetCellValue(yearlySheet, cell("A", row), section.label)
			f.SetCellValue(yearlySheet, cell("B", row), e.StaffName)
			f.SetCellValue(yearlySheet, cell("C", row), e.CategoryName)
			f.SetCellValue(yearlySheet, cell("D", row), e.CurrentCount)
			f.SetCellValue(yearlySheet, cell("E", row), e.Target)
			f.SetCellValue(yearlySheet, cell("F", row), e.Diff)
			f.SetCellValue(yearlySheet, cell("G", row), e.Status)
			row++
		}
	}

	// ── Sheet 2: 月度得分 ──
	monthlySheet := "月度得分"
	f.NewSheet(monthlySheet)
	f.SetColWidth(monthlySheet, "A", "A", 14)
	f.SetColWidth(monthlySheet, "B", "F", 11)

	monthlyHeaders := []string{"姓名", "得分", "均值", "下限", "上限", "状态"}
	for i, h := range monthlyHeaders {
		f.SetCellValue(monthlySheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(monthlySheet, "A1", cell(colName(len(monthlyHeaders)-1), 1), headerStyle)

	row = 2
	for _, m := range report.Monthly {
		f.SetCellValue(monthlySheet, cell("A", row), m.StaffName)
		f.SetCellValue(monthlySheet, cell("B", row), m.Score)
		f.SetCellValue(monthlySheet, cell("C", row), m.AverageScore)
		f.SetCellValue(monthlySheet, cell("D", row), m.MinRequired)
		f.SetCellValue(monthlySheet, cell("E", row), m.MaxAllowed)
		f.SetCellValue(monthlySheet, cell("F", row), m.Status)
		row++
	}

	// ── Sheet 3: 排班建议 ──
	recSheet := "排班建议"
	f.NewSheet(recSheet)
	f.SetColWidth(recSheet, "A", "A", 24)
	f.SetColWidth(recSheet, "B", "B", 14)
	f.SetColWidth(recSheet, "C", "C", 11)

	recHeaders := []string{"建议类型", "姓名", "优先级"}
	for i, h := range recHeaders {
		f.SetCellValue(recSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(recSheet, "A1", cell(colName(len(recHeaders)-1), 1), headerStyle)

	row = 2
	for _, rec := range report.Recommendations {
		for _, e := range rec.Entries {
			f.SetCellValue(recSheet, cell("A", row), rec.Type)
			f.SetCellValue(recSheet, cell("B", row), e.StaffName)
			f.SetCellValue(recSheet, cell("C", row), e.Priority)
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("公平性报表_%d-%02d.xlsx", year, month)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
