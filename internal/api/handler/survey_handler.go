package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PrinceKarma/swe-642-hw3/internal/dto"
	"github.com/PrinceKarma/swe-642-hw3/internal/model"
	"github.com/PrinceKarma/swe-642-hw3/internal/service"
	"github.com/PrinceKarma/swe-642-hw3/pkg/response"
	"github.com/PrinceKarma/swe-642-hw3/pkg/validation"
)

// SurveyHandler 问卷模块 HTTP 处理器
type SurveyHandler struct {
	surveySvc service.SurveyService
}

// NewSurveyHandler 创建 SurveyHandler
func NewSurveyHandler(surveySvc service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// CreateSurvey 提交问卷
// POST /api/surveys
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	var req dto.SurveyRequest
	if !bindSurvey(c, &req) {
		return
	}

	survey, err := h.surveySvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSurveyError(c, err)
		return
	}

	response.Created(c, survey)
}

// ListSurveys 获取全部问卷
// GET /api/surveys
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	surveys, err := h.surveySvc.List(c.Request.Context())
	if err != nil {
		h.handleSurveyError(c, err)
		return
	}

	response.OK(c, surveys)
}

// CountSurveys 统计问卷数量，响应体为裸整数
// GET /api/surveys/count
func (h *SurveyHandler) CountSurveys(c *gin.Context) {
	n, err := h.surveySvc.Count(c.Request.Context())
	if err != nil {
		h.handleSurveyError(c, err)
		return
	}

	response.OK(c, n)
}

// GetSurvey 获取问卷详情
// GET /api/surveys/:id
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	id, ok := parseSurveyID(c)
	if !ok {
		return
	}

	survey, err := h.surveySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSurveyError(c, err)
		return
	}

	response.OK(c, survey)
}

// UpdateSurvey 整体替换问卷
// PUT /api/surveys/:id
func (h *SurveyHandler) UpdateSurvey(c *gin.Context) {
	id, ok := parseSurveyID(c)
	if !ok {
		return
	}

	var req dto.SurveyRequest
	if !bindSurvey(c, &req) {
		return
	}

	survey, err := h.surveySvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleSurveyError(c, err)
		return
	}

	response.OK(c, survey)
}

// DeleteSurvey 删除问卷
// DELETE /api/surveys/:id
func (h *SurveyHandler) DeleteSurvey(c *gin.Context) {
	id, ok := parseSurveyID(c)
	if !ok {
		return
	}

	if err := h.surveySvc.Delete(c.Request.Context(), id); err != nil {
		h.handleSurveyError(c, err)
		return
	}

	response.NoContent(c)
}

// ── 错误映射 ──

func (h *SurveyHandler) handleSurveyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSurveyNotFound):
		response.NotFound(c, response.CodeSurveyNotFound, err.Error())
	default:
		response.InternalError(c)
	}
}

// ── 请求解析辅助 ──

// parseSurveyID 解析路径中的数字 ID；失败时已写入 400
// 上限为 BIGINT 最大值，超出部分驱动无法编码
func parseSurveyID(c *gin.Context) (uint64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("Invalid survey ID: %s", raw))
		return 0, false
	}
	return id, true
}

// bindSurvey 绑定并校验请求体；失败时已写入 400
func bindSurvey(c *gin.Context, req *dto.SurveyRequest) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	if fields, ok := validation.FieldErrors(err); ok {
		response.ValidationError(c, fields)
		return false
	}

	var (
		typeErr *json.UnmarshalTypeError
		sizeErr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &sizeErr):
		response.BodyTooLarge(c)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		response.ValidationError(c, []response.FieldError{{
			Field: typeErr.Field,
			Error: fmt.Sprintf("has invalid type %s", typeErr.Value),
		}})
	case errors.Is(err, model.ErrInvalidDate):
		response.ValidationError(c, []response.FieldError{{
			Field: "surveyDate",
			Error: "must be a date in YYYY-MM-DD format",
		}})
	default:
		response.BadRequest(c, "Malformed JSON request")
	}
	return false
}
