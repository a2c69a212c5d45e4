package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func newVisitFixture(failOpen bool) (VisitService, *fakeArticleRepo, *fakeCache) {
	articleRepo := newFakeArticleRepo(publishedArticle(1, true))
	c := newFakeCache()
	return NewVisitService(articleRepo, c, failOpen), articleRepo, c
}

func TestRecordVisitFirstVisit(t *testing.T) {
	s, articleRepo, c := newVisitFixture(true)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	if err := s.RecordVisit(context.Background(), "visitor-a", "/articles/1", 1, now); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}

	if len(articleRepo.increments) != 1 {
		t.Fatalf("increments: got %d, want 1", len(articleRepo.increments))
	}
	call := articleRepo.increments[0]
	if call.id != 1 || !call.pv || !call.uv {
		t.Errorf("increment call: got %+v, want id=1 pv=true uv=true", call)
	}

	// 账本里写入了两个带正确过期时间的标记
	pvKey := "pv:visitor-a:/articles/1"
	uvKey := "uv:visitor-a:2026-08-29:/articles/1"
	if _, ok := c.data[pvKey]; !ok {
		t.Errorf("missing pv marker %q", pvKey)
	}
	if _, ok := c.data[uvKey]; !ok {
		t.Errorf("missing uv marker %q", uvKey)
	}
	if c.ttls[pvKey] != pvWindow {
		t.Errorf("pv ttl: got %v, want %v", c.ttls[pvKey], pvWindow)
	}
	if c.ttls[uvKey] != uvWindow {
		t.Errorf("uv ttl: got %v, want %v", c.ttls[uvKey], uvWindow)
	}
}

// 窗口内的重复访问一次都不计，也不应发起数据库更新。
func TestRecordVisitDedupWithinWindow(t *testing.T) {
	s, articleRepo, _ := newVisitFixture(true)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	for i := 0; i < 3; i++ {
		if err := s.RecordVisit(context.Background(), "visitor-a", "/articles/1", 1, now.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("RecordVisit #%d: %v", i, err)
		}
	}

	if len(articleRepo.increments) != 1 {
		t.Fatalf("increments: got %d, want 1", len(articleRepo.increments))
	}
	if got := articleRepo.articles[0].PV; got != 1 {
		t.Errorf("pv: got %d, want 1", got)
	}
	if got := articleRepo.articles[0].UV; got != 1 {
		t.Errorf("uv: got %d, want 1", got)
	}
}

// pv 窗口到期而 uv 窗口未到期时，只有 pv 计数。
func TestRecordVisitPVWindowExpired(t *testing.T) {
	s, articleRepo, c := newVisitFixture(true)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	if err := s.RecordVisit(context.Background(), "visitor-a", "/articles/1", 1, now); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}
	// 模拟 pv 标记过期
	delete(c.data, "pv:visitor-a:/articles/1")

	if err := s.RecordVisit(context.Background(), "visitor-a", "/articles/1", 1, now.Add(2*time.Minute)); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}

	if len(articleRepo.increments) != 2 {
		t.Fatalf("increments: got %d, want 2", len(articleRepo.increments))
	}
	second := articleRepo.increments[1]
	if !second.pv || second.uv {
		t.Errorf("second call: got pv=%v uv=%v, want pv=true uv=false", second.pv, second.uv)
	}
	if got := articleRepo.articles[0].PV; got != 2 {
		t.Errorf("pv: got %d, want 2", got)
	}
	if got := articleRepo.articles[0].UV; got != 1 {
		t.Errorf("uv: got %d, want 1", got)
	}
}

// 跨自然日访问使用不同的 uv 键，同一访客在两天各计一次 uv。
func TestRecordVisitNewDay(t *testing.T) {
	s, articleRepo, c := newVisitFixture(true)
	day1 := time.Date(2026, 8, 29, 23, 59, 0, 0, time.Local)
	day2 := time.Date(2026, 8, 30, 0, 1, 0, 0, time.Local)

	if err := s.RecordVisit(context.Background(), "visitor-a", "/articles/1", 1, day1); err != nil {
		t.Fatalf("RecordVisit day1: %v", err)
	}
	// pv 标记一分钟后过期，uv 标记仍在 24 小时窗口内但日期已变
	delete(c.data, "pv:visitor-a:/articles/1")

	if err := s.RecordVisit(context.Background(), "visitor-a", "/articles/1", 1, day2); err != nil {
		t.Fatalf("RecordVisit day2: %v", err)
	}

	if got := articleRepo.articles[0].UV; got != 2 {
		t.Errorf("uv across days: got %d, want 2", got)
	}
	if _, ok := c.data["uv:visitor-a:2026-08-29:/articles/1"]; !ok {
		t.Error("missing day1 uv marker")
	}
	if _, ok := c.data["uv:visitor-a:2026-08-30:/articles/1"]; !ok {
		t.Error("missing day2 uv marker")
	}
}

// 不同访客与不同路径互不影响。
func TestRecordVisitIndependentKeys(t *testing.T) {
	s, articleRepo, _ := newVisitFixture(true)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	if err := s.RecordVisit(context.Background(), "visitor-a", "/articles/1", 1, now); err != nil {
		t.Fatalf("RecordVisit a: %v", err)
	}
	if err := s.RecordVisit(context.Background(), "visitor-b", "/articles/1", 1, now); err != nil {
		t.Fatalf("RecordVisit b: %v", err)
	}

	if got := articleRepo.articles[0].PV; got != 2 {
		t.Errorf("pv: got %d, want 2", got)
	}
	if got := articleRepo.articles[0].UV; got != 2 {
		t.Errorf("uv: got %d, want 2", got)
	}
}

// 缓存故障时的策略由配置决定：fail open 继续计数，fail closed 跳过。
func TestRecordVisitCacheDown(t *testing.T) {
	cases := []struct {
		failOpen       string
		open           bool
		wantIncrements int
	}{
		{"open", true, 1},
		{"closed", false, 0},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("fail_%s", tc.failOpen), func(t *testing.T) {
			s, articleRepo, c := newVisitFixture(tc.open)
			c.getErr = errors.New("redis: connection refused")
			now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

			if err := s.RecordVisit(context.Background(), "visitor-a", "/articles/1", 1, now); err != nil {
				t.Fatalf("RecordVisit: %v", err)
			}
			if len(articleRepo.increments) != tc.wantIncrements {
				t.Errorf("increments: got %d, want %d", len(articleRepo.increments), tc.wantIncrements)
			}
		})
	}
}

// 标记写入失败不阻断计数，窗口过期后自愈。
func TestRecordVisitMarkerWriteFails(t *testing.T) {
	s, articleRepo, c := newVisitFixture(true)
	c.setErr = errors.New("redis: connection refused")
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	if err := s.RecordVisit(context.Background(), "visitor-a", "/articles/1", 1, now); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}
	if len(articleRepo.increments) != 1 {
		t.Errorf("increments: got %d, want 1", len(articleRepo.increments))
	}
}

// 数据库更新失败必须向上返回错误。
func TestRecordVisitIncrementError(t *testing.T) {
	s, articleRepo, _ := newVisitFixture(true)
	articleRepo.incrementErr = errors.New("mysql has gone away")
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	if err := s.RecordVisit(context.Background(), "visitor-a", "/articles/1", 1, now); err == nil {
		t.Fatal("expected error from failed increment")
	}
}
