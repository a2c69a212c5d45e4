package service

import (
	"errors"
	"testing"

	"go-blog/internal/model"
)

func TestCreateTag(t *testing.T) {
	s := NewTagService(newFakeTagRepo(model.Tag{ID: 1, Name: "golang"}))
	owner := &model.User{ID: 1, Role: model.RoleAdmin}

	if _, err := s.CreateTag("golang", owner); !errors.Is(err, ErrTagNameTaken) {
		t.Errorf("duplicate name: got %v, want ErrTagNameTaken", err)
	}

	tag, err := s.CreateTag("数据库", owner)
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if tag.ID == 0 || tag.Name != "数据库" {
		t.Errorf("created tag: got %+v", tag)
	}
}

func TestUpdateTag(t *testing.T) {
	s := NewTagService(newFakeTagRepo(
		model.Tag{ID: 1, Name: "golang"},
		model.Tag{ID: 2, Name: "redis"},
	))

	if _, err := s.UpdateTag(2, "golang"); !errors.Is(err, ErrTagNameTaken) {
		t.Errorf("rename to taken name: got %v, want ErrTagNameTaken", err)
	}
	// 改成自己当前的名称不算冲突
	if _, err := s.UpdateTag(1, "golang"); err != nil {
		t.Errorf("rename to own name: got %v, want nil", err)
	}
	tag, err := s.UpdateTag(2, "缓存")
	if err != nil {
		t.Fatalf("UpdateTag: %v", err)
	}
	if tag.Name != "缓存" {
		t.Errorf("renamed tag: got %q", tag.Name)
	}
}

func TestDeleteTagExcludedFromList(t *testing.T) {
	repo := newFakeTagRepo(model.Tag{ID: 1, Name: "golang"})
	s := NewTagService(repo)

	if err := s.DeleteTag(1); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}
	tags, err := s.ListTags()
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("tags after delete: got %d, want 0", len(tags))
	}
}
