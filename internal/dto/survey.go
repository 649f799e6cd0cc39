package dto

import (
	"time"

	"github.com/PrinceKarma/swe-642-hw3/internal/model"
)

// ── 问卷模块 DTO ──

// SurveyRequest 创建/更新问卷请求（PUT 为整体替换，规则与 POST 相同）
type SurveyRequest struct {
	FirstName      string                `json:"firstName"      binding:"required,notblank"`
	LastName       string                `json:"lastName"       binding:"required,notblank"`
	Email          string                `json:"email"          binding:"required,notblank,email"`
	PhoneNumber    *string               `json:"phoneNumber"`
	StreetAddress  string                `json:"streetAddress"  binding:"required,notblank"`
	City           string                `json:"city"           binding:"required,notblank"`
	State          string                `json:"state"          binding:"required,notblank"`
	ZipCode        string                `json:"zipCode"        binding:"required,zipcode"`
	SurveyDate     *model.Date           `json:"surveyDate"     binding:"required"`
	Recommendation model.Recommendation  `json:"recommendation" binding:"required,enum"`
	CampusLiked    []model.CampusFeature `json:"campusLiked"    binding:"required,min=1,dive,enum"`
	InterestSource model.InterestSource  `json:"interestSource" binding:"required,enum"`
	Comments       *string               `json:"comments"`
}

// SurveyResponse 问卷响应
type SurveyResponse struct {
	ID             uint64                `json:"id"`
	FirstName      string                `json:"firstName"`
	LastName       string                `json:"lastName"`
	Email          string                `json:"email"`
	PhoneNumber    *string               `json:"phoneNumber"`
	StreetAddress  string                `json:"streetAddress"`
	City           string                `json:"city"`
	State          string                `json:"state"`
	ZipCode        string                `json:"zipCode"`
	SurveyDate     model.Date            `json:"surveyDate"`
	Recommendation model.Recommendation  `json:"recommendation"`
	CampusLiked    []model.CampusFeature `json:"campusLiked"`
	InterestSource model.InterestSource  `json:"interestSource"`
	Comments       *string               `json:"comments"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}
