package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/PrinceKarma/swe-642-hw3/internal/model"
)

// SurveyRepository 问卷数据访问接口
// 不存在的记录统一返回 gorm.ErrRecordNotFound
type SurveyRepository interface {
	Create(ctx context.Context, survey *model.Survey) error
	GetByID(ctx context.Context, id uint64) (*model.Survey, error)
	List(ctx context.Context) ([]model.Survey, error)
	Update(ctx context.Context, survey *model.Survey) error
	Exists(ctx context.Context, id uint64) (bool, error)
	Delete(ctx context.Context, id uint64) error
	Count(ctx context.Context) (int64, error)
}

type surveyRepo struct {
	db *gorm.DB
}

// NewSurveyRepo 创建 SurveyRepository 实例
func NewSurveyRepo(db *gorm.DB) SurveyRepository {
	return &surveyRepo{db: db}
}

// Create 主表与多选项在同一事务内写入
func (r *surveyRepo) Create(ctx context.Context, survey *model.Survey) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(survey).Error; err != nil {
			return err
		}
		return insertFeatures(tx, survey)
	})
}

func (r *surveyRepo) GetByID(ctx context.Context, id uint64) (*model.Survey, error) {
	var survey model.Survey
	err := r.db.WithContext(ctx).
		Preload("CampusLiked").
		Where("id = ?", id).
		First(&survey).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepo) List(ctx context.Context) ([]model.Survey, error) {
	surveys := make([]model.Survey, 0)
	err := r.db.WithContext(ctx).
		Preload("CampusLiked").
		Order("id ASC").
		Find(&surveys).Error
	return surveys, err
}

// Update 整体覆盖除 id/created_at 外的所有列，并替换多选项集合
func (r *surveyRepo) Update(ctx context.Context, survey *model.Survey) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(survey).
			Select("*").
			Omit("id", "created_at", clause.Associations).
			Updates(survey)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("survey_id = ?", survey.ID).
			Delete(&model.SurveyCampusLiked{}).Error; err != nil {
			return err
		}
		return insertFeatures(tx, survey)
	})
}

func (r *surveyRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Survey{}).
		Where("id = ?", id).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

// Delete 物理删除；先删关联行，不依赖外键级联
func (r *surveyRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("survey_id = ?", id).
			Delete(&model.SurveyCampusLiked{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Survey{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *surveyRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Survey{}).Count(&n).Error
	return n, err
}

func insertFeatures(tx *gorm.DB, survey *model.Survey) error {
	if len(survey.CampusLiked) == 0 {
		return nil
	}
	for i := range survey.CampusLiked {
		survey.CampusLiked[i].SurveyID = survey.ID
	}
	return tx.Create(&survey.CampusLiked).Error
}
