//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/PrinceKarma/swe-642-hw3/internal/model"
	"github.com/PrinceKarma/swe-642-hw3/internal/repository"
	"github.com/PrinceKarma/swe-642-hw3/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=survey password=survey_password dbname=survey_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 与生产一致：使用 SQL 迁移建表
	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取底层 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "迁移失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

func newSurvey(t *testing.T) *model.Survey {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	s := &model.Survey{
		FirstName:      "集成",
		LastName:       "测试",
		Email:          fmt.Sprintf("it%d@example.com", time.Now().UnixNano()),
		StreetAddress:  "4400 University Dr",
		City:           "Fairfax",
		State:          "VA",
		ZipCode:        "22030",
		SurveyDate:     model.NewDate(2024, time.May, 1),
		Recommendation: model.RecommendationVeryLikely,
		InterestSource: model.InterestSourceFriends,
	}
	s.CreatedAt = now
	s.UpdatedAt = now
	s.SetFeatures([]model.CampusFeature{model.CampusFeatureStudents, model.CampusFeatureDormRooms})
	return s
}

// ═══════════════════════════════════════════════════════════
// Tests
// ═══════════════════════════════════════════════════════════

func TestSurvey_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSurveyRepo(testDB)

	s := newSurvey(t)
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	t.Cleanup(func() { _ = repo.Delete(ctx, s.ID) })

	got, err := repo.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if len(got.CampusLiked) != 2 {
		t.Errorf("期望 2 个校园特色，实际=%d", len(got.CampusLiked))
	}
	if got.SurveyDate.String() != "2024-05-01" {
		t.Errorf("surveyDate 不符: %s", got.SurveyDate)
	}

	got.State = "MD"
	got.UpdatedAt = got.UpdatedAt.Add(time.Second)
	got.SetFeatures([]model.CampusFeature{model.CampusFeatureLibrary})
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update 失败: %v", err)
	}

	again, _ := repo.GetByID(ctx, s.ID)
	if again.State != "MD" || len(again.CampusLiked) != 1 {
		t.Errorf("更新未生效: %+v", again)
	}

	if err := repo.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	if _, err := repo.GetByID(ctx, s.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("删除后应查不到，实际: %v", err)
	}
}

func TestSurvey_IDsNotReused(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSurveyRepo(testDB)

	first := newSurvey(t)
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}

	second := newSurvey(t)
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	t.Cleanup(func() { _ = repo.Delete(ctx, second.ID) })

	if second.ID <= first.ID {
		t.Errorf("ID 不应复用: first=%d second=%d", first.ID, second.ID)
	}
}

func TestSurvey_TimestampCheckConstraint(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSurveyRepo(testDB)

	s := newSurvey(t)
	s.UpdatedAt = s.CreatedAt.Add(-time.Hour)
	if err := repo.Create(ctx, s); err == nil {
		_ = repo.Delete(ctx, s.ID)
		t.Error("updated_at 早于 created_at 应被 CHECK 约束拒绝")
	}
}

func TestSurvey_CascadeOnRawDelete(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSurveyRepo(testDB)

	s := newSurvey(t)
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	// 绕过 Repository 直接删主表，外键级联应清理关联行
	if err := testDB.Exec("DELETE FROM surveys WHERE id = ?", s.ID).Error; err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	var n int64
	testDB.Model(&model.SurveyCampusLiked{}).Where("survey_id = ?", s.ID).Count(&n)
	if n != 0 {
		t.Errorf("外键级联未生效，残留=%d", n)
	}
}
