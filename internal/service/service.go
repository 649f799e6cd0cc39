package service

import (
	"go.uber.org/zap"

	"github.com/PrinceKarma/swe-642-hw3/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Survey SurveyService
	Export ExportService
}

// NewService 创建 Service 聚合
func NewService(repo *repository.Repository, logger *zap.Logger) *Service {
	return &Service{
		Survey: NewSurveyService(repo, logger),
		Export: NewExportService(repo, logger),
	}
}
