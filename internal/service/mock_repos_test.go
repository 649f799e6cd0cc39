package service

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/PrinceKarma/swe-642-hw3/internal/model"
)

var errMockDB = errors.New("mock db failure")

// ── Mock SurveyRepository ──

type mockSurveyRepo struct {
	surveys map[uint64]*model.Survey
	nextID  uint64
	// failWith 非 nil 时所有方法返回该错误
	failWith error
}

func newMockSurveyRepo() *mockSurveyRepo {
	return &mockSurveyRepo{surveys: make(map[uint64]*model.Survey), nextID: 1}
}

// clone 避免调用方修改 mock 内部状态
func clone(s *model.Survey) *model.Survey {
	cp := *s
	cp.CampusLiked = append([]model.SurveyCampusLiked(nil), s.CampusLiked...)
	return &cp
}

func (m *mockSurveyRepo) Create(_ context.Context, survey *model.Survey) error {
	if m.failWith != nil {
		return m.failWith
	}
	survey.ID = m.nextID
	m.nextID++
	survey.SetFeatures(survey.Features())
	m.surveys[survey.ID] = clone(survey)
	return nil
}

func (m *mockSurveyRepo) GetByID(_ context.Context, id uint64) (*model.Survey, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if s, ok := m.surveys[id]; ok {
		return clone(s), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSurveyRepo) List(_ context.Context) ([]model.Survey, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	result := make([]model.Survey, 0, len(m.surveys))
	for _, s := range m.surveys {
		result = append(result, *clone(s))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockSurveyRepo) Update(_ context.Context, survey *model.Survey) error {
	if m.failWith != nil {
		return m.failWith
	}
	prev, ok := m.surveys[survey.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	next := clone(survey)
	next.CreatedAt = prev.CreatedAt
	m.surveys[survey.ID] = next
	return nil
}

func (m *mockSurveyRepo) Exists(_ context.Context, id uint64) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	_, ok := m.surveys[id]
	return ok, nil
}

func (m *mockSurveyRepo) Delete(_ context.Context, id uint64) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.surveys[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.surveys, id)
	return nil
}

func (m *mockSurveyRepo) Count(_ context.Context) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	return int64(len(m.surveys)), nil
}
