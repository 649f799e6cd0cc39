package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/PrinceKarma/swe-642-hw3/internal/dto"
	"github.com/PrinceKarma/swe-642-hw3/internal/model"
	"github.com/PrinceKarma/swe-642-hw3/internal/repository"
	pkgerrors "github.com/PrinceKarma/swe-642-hw3/pkg/errors"
)

// ── 问卷模块业务错误 ──

// ErrSurveyNotFound 问卷不存在；具体错误为携带 ID 的 *pkgerrors.NotFoundError
var ErrSurveyNotFound = pkgerrors.ErrNotFound

const surveyResource = "Survey"

// SurveyService 问卷业务接口
type SurveyService interface {
	Create(ctx context.Context, req *dto.SurveyRequest) (*dto.SurveyResponse, error)
	List(ctx context.Context) ([]dto.SurveyResponse, error)
	GetByID(ctx context.Context, id uint64) (*dto.SurveyResponse, error)
	Update(ctx context.Context, id uint64, req *dto.SurveyRequest) (*dto.SurveyResponse, error)
	Delete(ctx context.Context, id uint64) error
	Count(ctx context.Context) (int64, error)
}

type surveyService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewSurveyService 创建 SurveyService 实例
func NewSurveyService(repo *repository.Repository, logger *zap.Logger) SurveyService {
	return &surveyService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// ────────────────────── Create ──────────────────────

func (s *surveyService) Create(ctx context.Context, req *dto.SurveyRequest) (*dto.SurveyResponse, error) {
	survey := &model.Survey{}
	applyRequest(survey, req)

	now := s.now()
	survey.CreatedAt = now
	survey.UpdatedAt = now

	if err := s.repo.Survey.Create(ctx, survey); err != nil {
		s.logger.Error("创建问卷失败", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("问卷创建成功", zap.Uint64("id", survey.ID))
	return toSurveyResponse(survey), nil
}

// ────────────────────── List ──────────────────────

func (s *surveyService) List(ctx context.Context) ([]dto.SurveyResponse, error) {
	surveys, err := s.repo.Survey.List(ctx)
	if err != nil {
		s.logger.Error("列出问卷失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SurveyResponse, 0, len(surveys))
	for i := range surveys {
		result = append(result, *toSurveyResponse(&surveys[i]))
	}

	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *surveyService) GetByID(ctx context.Context, id uint64) (*dto.SurveyResponse, error) {
	survey, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSurveyResponse(survey), nil
}

// ────────────────────── Update ──────────────────────

func (s *surveyService) Update(ctx context.Context, id uint64, req *dto.SurveyRequest) (*dto.SurveyResponse, error) {
	survey, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	applyRequest(survey, req)

	// updatedAt 必须严格前移（时钟回拨或同一微秒内的连续更新）
	now := s.now()
	if !now.After(survey.UpdatedAt) {
		now = survey.UpdatedAt.Add(time.Microsecond)
	}
	survey.UpdatedAt = now

	if err := s.repo.Survey.Update(ctx, survey); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 读取与更新之间被并发删除
			return nil, pkgerrors.NotFound(surveyResource, id)
		}
		s.logger.Error("更新问卷失败", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("问卷更新成功", zap.Uint64("id", id))
	return toSurveyResponse(survey), nil
}

// ────────────────────── Delete ──────────────────────

func (s *surveyService) Delete(ctx context.Context, id uint64) error {
	exists, err := s.repo.Survey.Exists(ctx, id)
	if err != nil {
		s.logger.Error("查询问卷失败", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	if !exists {
		return pkgerrors.NotFound(surveyResource, id)
	}

	if err := s.repo.Survey.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound(surveyResource, id)
		}
		s.logger.Error("删除问卷失败", zap.Uint64("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("问卷删除成功", zap.Uint64("id", id))
	return nil
}

// ────────────────────── Count ──────────────────────

func (s *surveyService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Survey.Count(ctx)
	if err != nil {
		s.logger.Error("统计问卷失败", zap.Error(err))
		return 0, err
	}
	return n, nil
}

// ── 内部辅助方法 ──

func (s *surveyService) find(ctx context.Context, id uint64) (*model.Survey, error) {
	survey, err := s.repo.Survey.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(surveyResource, id)
		}
		s.logger.Error("查询问卷失败", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	return survey, nil
}

// applyRequest 将请求中除 id/时间戳外的全部字段写到记录上
func applyRequest(survey *model.Survey, req *dto.SurveyRequest) {
	survey.FirstName = req.FirstName
	survey.LastName = req.LastName
	survey.Email = req.Email
	survey.PhoneNumber = req.PhoneNumber
	survey.StreetAddress = req.StreetAddress
	survey.City = req.City
	survey.State = req.State
	survey.ZipCode = req.ZipCode
	if req.SurveyDate != nil {
		survey.SurveyDate = *req.SurveyDate
	}
	survey.Recommendation = req.Recommendation
	survey.SetFeatures(req.CampusLiked)
	survey.InterestSource = req.InterestSource
	survey.Comments = req.Comments
}

func toSurveyResponse(survey *model.Survey) *dto.SurveyResponse {
	return &dto.SurveyResponse{
		ID:             survey.ID,
		FirstName:      survey.FirstName,
		LastName:       survey.LastName,
		Email:          survey.Email,
		PhoneNumber:    survey.PhoneNumber,
		StreetAddress:  survey.StreetAddress,
		City:           survey.City,
		State:          survey.State,
		ZipCode:        survey.ZipCode,
		SurveyDate:     survey.SurveyDate,
		Recommendation: survey.Recommendation,
		CampusLiked:    survey.Features(),
		InterestSource: survey.InterestSource,
		Comments:       survey.Comments,
		// 驱动可能按会话时区返回，统一输出 UTC
		CreatedAt:      survey.CreatedAt.UTC(),
		UpdatedAt:      survey.UpdatedAt.UTC(),
	}
}
