package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.May, 1)

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal 失败: %v", err)
	}
	if string(b) != `"2024-05-01"` {
		t.Errorf("期望 \"2024-05-01\"，实际=%s", b)
	}

	var parsed Date
	if err := json.Unmarshal([]byte(`"2024-05-01"`), &parsed); err != nil {
		t.Fatalf("Unmarshal 失败: %v", err)
	}
	if !parsed.Equal(d.Time) {
		t.Errorf("期望 %s，实际 %s", d, parsed)
	}

	for _, bad := range []string{`"05/01/2024"`, `"2024-13-01"`, `20240501`, `""`} {
		if err := json.Unmarshal([]byte(bad), &parsed); err == nil {
			t.Errorf("非法日期 %s 应报错", bad)
		}
	}
}

func TestDate_Scan(t *testing.T) {
	var d Date

	if err := d.Scan(time.Date(2024, 5, 1, 13, 45, 0, 0, time.FixedZone("EDT", -4*3600))); err != nil {
		t.Fatalf("Scan(time.Time) 失败: %v", err)
	}
	if d.String() != "2024-05-01" {
		t.Errorf("期望 2024-05-01，实际=%s", d)
	}

	if err := d.Scan("2023-12-31"); err != nil || d.String() != "2023-12-31" {
		t.Errorf("Scan(string) 结果不符: %s, %v", d, err)
	}
	if err := d.Scan([]byte("2022-01-02 00:00:00+00:00")); err != nil || d.String() != "2022-01-02" {
		t.Errorf("Scan([]byte) 结果不符: %s, %v", d, err)
	}
	if err := d.Scan(42); err == nil {
		t.Error("Scan(int) 应报错")
	}

	// 首尾空白先去掉再截断；去掉后长度不足不能越界
	if err := d.Scan(" 2021-07-04 10:00:00"); err != nil || d.String() != "2021-07-04" {
		t.Errorf("Scan(带前导空白) 结果不符: %s, %v", d, err)
	}
	for _, raw := range []string{"  2024-5-1", "\t2024-5-1\n", "          "} {
		if err := d.Scan(raw); err == nil {
			t.Errorf("Scan(%q) 应报错", raw)
		}
	}

	v, err := NewDate(2024, time.February, 29).Value()
	if err != nil || v != "2024-02-29" {
		t.Errorf("Value 结果不符: %v, %v", v, err)
	}
}

func TestEnums_IsValid(t *testing.T) {
	if !RecommendationLikely.IsValid() || Recommendation("MAYBE").IsValid() {
		t.Error("Recommendation.IsValid 结果不符")
	}
	if !CampusFeatureLibrary.IsValid() || !CampusFeatureDormRooms.IsValid() || CampusFeature("POOL").IsValid() {
		t.Error("CampusFeature.IsValid 结果不符")
	}
	if !InterestSourceWebsite.IsValid() || InterestSource("").IsValid() {
		t.Error("InterestSource.IsValid 结果不符")
	}
}

func TestSurvey_SetFeatures_Dedup(t *testing.T) {
	s := &Survey{ID: 7}
	s.SetFeatures([]CampusFeature{CampusFeatureSports, CampusFeatureLibrary, CampusFeatureSports})

	got := s.Features()
	if len(got) != 2 || got[0] != CampusFeatureSports || got[1] != CampusFeatureLibrary {
		t.Errorf("期望 [SPORTS LIBRARY]，实际=%v", got)
	}
	for _, row := range s.CampusLiked {
		if row.SurveyID != 7 {
			t.Errorf("关联行 SurveyID 应为 7，实际=%d", row.SurveyID)
		}
	}
}

func TestDate_InvalidWrapsSentinel(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"2024/05/01"`), &d)
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际: %v", err)
	}
	if _, err := ParseDate("tomorrow"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("ParseDate 应返回 ErrInvalidDate，实际: %v", err)
	}
}
