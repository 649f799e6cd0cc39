package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/PrinceKarma/swe-642-hw3/internal/model"
	"github.com/PrinceKarma/swe-642-hw3/internal/repository"
)

// ── 测试辅助 ──

func setupTestExportService() (*exportService, *mockSurveyRepo) {
	surveyRepo := newMockSurveyRepo()
	repo := &repository.Repository{Survey: surveyRepo}
	svc := NewExportService(repo, zap.NewNop()).(*exportService)
	svc.now = func() time.Time { return time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC) }
	return svc, surveyRepo
}

func seedSurvey(t *testing.T, repo *mockSurveyRepo, firstName string, features ...model.CampusFeature) {
	t.Helper()
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	s := &model.Survey{
		FirstName:      firstName,
		LastName:       "Lee",
		Email:          "a@x.com",
		StreetAddress:  "1 Main St",
		City:           "Fairfax",
		State:          "VA",
		ZipCode:        "22030",
		SurveyDate:     model.NewDate(2024, time.May, 1),
		Recommendation: model.RecommendationLikely,
		InterestSource: model.InterestSourceWebsite,
	}
	s.CreatedAt = now
	s.UpdatedAt = now
	s.SetFeatures(features)
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("写入测试数据失败: %v", err)
	}
}

func openWorkbook(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("无法解析导出的 Excel: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

// ── ExportSurveys 测试 ──

func TestExportService_ExportSurveys_Empty(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, filename, err := svc.ExportSurveys(context.Background())
	if err != nil {
		t.Fatalf("空库导出应成功: %v", err)
	}
	if filename != "surveys_20240502.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}

	f := openWorkbook(t, buf)
	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("读取 Sheet 失败: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("空库应仅含表头，实际 %d 行", len(rows))
	}
	if rows[0][0] != "id" || rows[0][len(rows[0])-1] != "updatedAt" {
		t.Errorf("表头不符: %v", rows[0])
	}
}

func TestExportService_ExportSurveys_Rows(t *testing.T) {
	svc, repo := setupTestExportService()
	seedSurvey(t, repo, "Ann", model.CampusFeatureLibrary, model.CampusFeatureSports)
	seedSurvey(t, repo, "Bob", model.CampusFeatureCampus)

	buf, _, err := svc.ExportSurveys(context.Background())
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}

	f := openWorkbook(t, buf)
	rows, _ := f.GetRows(exportSheet)
	if len(rows) != 3 {
		t.Fatalf("期望 1 行表头 + 2 行数据，实际 %d 行", len(rows))
	}

	ann := rows[1]
	if ann[0] != "1" || ann[1] != "Ann" {
		t.Errorf("首行应为 id=1 的 Ann，实际=%v", ann[:2])
	}
	if ann[9] != "2024-05-01" {
		t.Errorf("surveyDate 列不符: %s", ann[9])
	}
	if ann[11] != "LIBRARY,SPORTS" {
		t.Errorf("campusLiked 列不符: %s", ann[11])
	}
	if rows[2][1] != "Bob" {
		t.Errorf("第二行应为 Bob，实际=%s", rows[2][1])
	}
}

func TestExportService_ExportSurveys_RepoError(t *testing.T) {
	svc, repo := setupTestExportService()
	repo.failWith = errMockDB

	_, _, err := svc.ExportSurveys(context.Background())
	if !errors.Is(err, errMockDB) {
		t.Errorf("期望透传存储错误，实际: %v", err)
	}
}

func TestExportService_ExportSurveys_HeaderLayout(t *testing.T) {
	svc, repo := setupTestExportService()
	seedSurvey(t, repo, "Ann", model.CampusFeatureLibrary)

	buf, _, err := svc.ExportSurveys(context.Background())
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	f := openWorkbook(t, buf)

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != exportSheet {
		t.Errorf("应仅保留 %s，实际=%v", exportSheet, sheets)
	}

	panes, err := f.GetPanes(exportSheet)
	if err != nil {
		t.Fatalf("读取冻结窗格失败: %v", err)
	}
	if !panes.Freeze || panes.YSplit != 1 {
		t.Errorf("表头应冻结首行，实际=%+v", panes)
	}

	last := colName(len(exportHeaders) - 1)
	for _, c := range []string{"A1", cell(last, 1)} {
		style, err := f.GetCellStyle(exportSheet, c)
		if err != nil || style == 0 {
			t.Errorf("%s 应带表头样式，实际 style=%d err=%v", c, style, err)
		}
	}
	if style, _ := f.GetCellStyle(exportSheet, "A2"); style != 0 {
		t.Errorf("数据行不应带表头样式，实际 style=%d", style)
	}
}

func TestWriteHeader_MissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeHeader(f); err == nil {
		t.Error("目标 Sheet 不存在时应返回错误")
	}
}
