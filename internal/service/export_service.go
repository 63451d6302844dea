package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"staff-registry/internal/model"
	"staff-registry/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmptyRoster  = errors.New("员工名单为空，无可导出内容")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 将员工名单导出为 Excel (.xlsx)，按部门、姓名排序
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportRoster 导出员工名单为 Excel
	ExportRoster(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportRoster — 导出员工名单为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "员工名单"
//   - 表头: | ID | 姓名 | 邮箱 | 部门 | 入职日期 |
//   - 排序: 部门升序，部门内按姓名升序
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportRoster(ctx context.Context) (*bytes.Buffer, string, error) {
	// 1. 查询全量员工
	emps, err := s.repo.Employee.List(ctx)
	if err != nil {
		s.logger.Error("查询员工名单失败", zap.Error(err))
		return nil, "", err
	}
	if len(emps) == 0 {
		return nil, "", ErrExportEmptyRoster
	}

	// 2. 按部门 + 姓名排序
	sorted := make([]model.Employee, len(emps))
	copy(sorted, emps)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Department != sorted[j].Department {
			return sorted[i].Department < sorted[j].Department
		}
		return sorted[i].FullName < sorted[j].FullName
	})

	// 3. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "员工名单"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 22)
	f.SetColWidth(sheetName, "C", "C", 30)
	f.SetColWidth(sheetName, "D", "D", 16)
	f.SetColWidth(sheetName, "E", "E", 14)

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	headers := []string{"ID", "姓名", "邮箱", "部门", "入职日期"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 1), h)
	}
	f.SetCellStyle(sheetName, "A1", "E1", headerStyle)

	// 数据行
	row := 2
	for _, emp := range sorted {
		f.SetCellValue(sheetName, cell("A", row), emp.ID)
		f.SetCellValue(sheetName, cell("B", row), emp.FullName)
		f.SetCellValue(sheetName, cell("C", row), emp.Email)
		f.SetCellValue(sheetName, cell("D", row), emp.Department)
		f.SetCellValue(sheetName, cell("E", row), emp.HireDate.UTC().Format("2006-01-02"))
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("员工名单_%s.xlsx", time.Now().UTC().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
