package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/PrinceKarma/swe-642-hw3/internal/model"
	"github.com/PrinceKarma/swe-642-hw3/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

const exportSheet = "Surveys"

// exportHeaders 表头，与 JSON 字段名保持一致便于对照
var exportHeaders = []string{
	"id", "firstName", "lastName", "email", "phoneNumber",
	"streetAddress", "city", "state", "zipCode", "surveyDate",
	"recommendation", "campusLiked", "interestSource", "comments",
	"createdAt", "updatedAt",
}

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置下载响应头；
// 每条问卷一行，按 id 升序，无数据时仅输出表头
type ExportService interface {
	// ExportSurveys 导出全部问卷为 Excel
	ExportSurveys(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportSurveys — 导出全部问卷为 Excel
// ═══════════════════════════════════════════════════════════
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportSurveys(ctx context.Context) (*bytes.Buffer, string, error) {
	surveys, err := s.repo.Survey.List(ctx)
	if err != nil {
		s.logger.Error("查询问卷列表失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		s.logger.Error("删除默认 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	if err := writeHeader(f); err != nil {
		s.logger.Error("写入表头失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	// 数据行
	for i := range surveys {
		row := i + 2
		for col, v := range surveyRow(&surveys[i]) {
			if err := f.SetCellValue(exportSheet, cell(colName(col), row), v); err != nil {
				s.logger.Error("写入单元格失败", zap.Int("row", row), zap.Error(err))
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("surveys_%s.xlsx", s.now().UTC().Format("20060102"))
	s.logger.Info("问卷导出完成", zap.Int("rows", len(surveys)))
	return buf, filename, nil
}

// ── 辅助函数 ──

// writeHeader 设置列宽、表头样式并冻结首行
func writeHeader(f *excelize.File) error {
	last := colName(len(exportHeaders) - 1)

	if err := f.SetColWidth(exportSheet, "A", "A", 8); err != nil {
		return fmt.Errorf("set id column width: %w", err)
	}
	if err := f.SetColWidth(exportSheet, "B", last, 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("new header style: %w", err)
	}

	for i, h := range exportHeaders {
		if err := f.SetCellValue(exportSheet, cell(colName(i), 1), h); err != nil {
			return fmt.Errorf("header %s: %w", h, err)
		}
	}
	if err := f.SetCellStyle(exportSheet, "A1", cell(last, 1), headerStyle); err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	return f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func surveyRow(survey *model.Survey) []interface{} {
	features := survey.Features()
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = string(f)
	}

	return []interface{}{
		survey.ID,
		survey.FirstName,
		survey.LastName,
		survey.Email,
		derefString(survey.PhoneNumber),
		survey.StreetAddress,
		survey.City,
		survey.State,
		survey.ZipCode,
		survey.SurveyDate.String(),
		string(survey.Recommendation),
		strings.Join(names, ","),
		string(survey.InterestSource),
		derefString(survey.Comments),
		survey.CreatedAt.UTC().Format(time.RFC3339),
		survey.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
