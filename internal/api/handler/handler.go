package handler

import "github.com/PrinceKarma/swe-642-hw3/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Survey *SurveyHandler
	Export *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Survey: NewSurveyHandler(svc.Survey),
		Export: NewExportHandler(svc.Export),
	}
}
