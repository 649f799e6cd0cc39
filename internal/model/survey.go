package model

// ── 枚举 ──

// Recommendation 推荐意愿
type Recommendation string

const (
	RecommendationVeryLikely Recommendation = "VERY_LIKELY"
	RecommendationLikely     Recommendation = "LIKELY"
	RecommendationUnlikely   Recommendation = "UNLIKELY"
)

// IsValid 是否为已定义取值
func (r Recommendation) IsValid() bool {
	switch r {
	case RecommendationVeryLikely, RecommendationLikely, RecommendationUnlikely:
		return true
	}
	return false
}

// CampusFeature 最喜欢的校园特色
type CampusFeature string

const (
	CampusFeatureStudents   CampusFeature = "STUDENTS"
	CampusFeatureLocation   CampusFeature = "LOCATION"
	CampusFeatureCampus     CampusFeature = "CAMPUS"
	CampusFeatureAtmosphere CampusFeature = "ATMOSPHERE"
	CampusFeatureDormRooms  CampusFeature = "DORM_ROOMS"
	CampusFeatureSports     CampusFeature = "SPORTS"
	CampusFeatureLibrary    CampusFeature = "LIBRARY"
)

// CampusFeatures 全部取值，顺序即导出时的展示顺序
var CampusFeatures = []CampusFeature{
	CampusFeatureStudents,
	CampusFeatureLocation,
	CampusFeatureCampus,
	CampusFeatureAtmosphere,
	CampusFeatureDormRooms,
	CampusFeatureSports,
	CampusFeatureLibrary,
}

// IsValid 是否为已定义取值
func (f CampusFeature) IsValid() bool {
	for _, v := range CampusFeatures {
		if f == v {
			return true
		}
	}
	return false
}

// InterestSource 了解学校的渠道
type InterestSource string

const (
	InterestSourceFriends    InterestSource = "FRIENDS"
	InterestSourceTelevision InterestSource = "TELEVISION"
	InterestSourceInternet   InterestSource = "INTERNET"
	InterestSourceWebsite    InterestSource = "WEBSITE"
	InterestSourceOther      InterestSource = "OTHER"
)

// IsValid 是否为已定义取值
func (s InterestSource) IsValid() bool {
	switch s {
	case InterestSourceFriends, InterestSourceTelevision, InterestSourceInternet,
		InterestSourceWebsite, InterestSourceOther:
		return true
	}
	return false
}

// ── 表结构 ──

// Survey 学生调查问卷 — 对应 surveys
type Survey struct {
	ID             uint64              `gorm:"primaryKey;autoIncrement"`
	FirstName      string              `gorm:"type:varchar(100);not null"`
	LastName       string              `gorm:"type:varchar(100);not null"`
	Email          string              `gorm:"type:varchar(255);not null"`
	PhoneNumber    *string             `gorm:"type:varchar(20)"`
	StreetAddress  string              `gorm:"type:varchar(255);not null"`
	City           string              `gorm:"type:varchar(100);not null"`
	State          string              `gorm:"type:varchar(50);not null"`
	ZipCode        string              `gorm:"type:varchar(10);not null"`
	SurveyDate     Date                `gorm:"type:date;not null"`
	Recommendation Recommendation      `gorm:"type:varchar(20);not null"`
	CampusLiked    []SurveyCampusLiked `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
	InterestSource InterestSource      `gorm:"type:varchar(20);not null"`
	Comments       *string             `gorm:"type:text"`
	BaseModel
}

// TableName 指定表名
func (Survey) TableName() string { return "surveys" }

// Features 返回校园特色取值列表
func (s *Survey) Features() []CampusFeature {
	out := make([]CampusFeature, 0, len(s.CampusLiked))
	for _, c := range s.CampusLiked {
		out = append(out, c.Feature)
	}
	return out
}

// SetFeatures 以集合语义替换校园特色（去重，保留首次出现顺序）
func (s *Survey) SetFeatures(features []CampusFeature) {
	seen := make(map[CampusFeature]bool, len(features))
	rows := make([]SurveyCampusLiked, 0, len(features))
	for _, f := range features {
		if seen[f] {
			continue
		}
		seen[f] = true
		rows = append(rows, SurveyCampusLiked{SurveyID: s.ID, Feature: f})
	}
	s.CampusLiked = rows
}

// SurveyCampusLiked 问卷多选项关联表 — 对应 survey_campus_liked
type SurveyCampusLiked struct {
	SurveyID uint64        `gorm:"primaryKey;autoIncrement:false"`
	Feature  CampusFeature `gorm:"column:campus_liked;type:varchar(20);primaryKey"`
}

// TableName 指定表名
func (SurveyCampusLiked) TableName() string { return "survey_campus_liked" }
