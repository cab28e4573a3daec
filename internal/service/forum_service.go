package service

import (
	"fmt"
	"strings"

	"thoughts-system/internal/model"
	"thoughts-system/internal/repository"
)

// ForumService 论坛服务
type ForumService struct {
	forumRepo   *repository.ForumRepository
	userRepo    *repository.UserRepository
	thoughtRepo *repository.ThoughtRepository
	thoughtSvc  *ThoughtService
}

// NewForumService 创建ForumService实例
func NewForumService(
	forumRepo *repository.ForumRepository,
	userRepo *repository.UserRepository,
	thoughtRepo *repository.ThoughtRepository,
	thoughtSvc *ThoughtService,
) *ForumService {
	return &ForumService{
		forumRepo:   forumRepo,
		userRepo:    userRepo,
		thoughtRepo: thoughtRepo,
		thoughtSvc:  thoughtSvc,
	}
}

// ForumSummary 列表视图聚合：论坛 + 创建者
type ForumSummary struct {
	Forum   *model.Forum
	Creator *model.User
}

// ForumDetail 详情视图聚合：论坛 + 创建者 + 论坛下的动态
type ForumDetail struct {
	Forum   *model.Forum
	Creator *model.User
	Posts   []*ThoughtSummary
}

// CreateForum 创建论坛
func (s *ForumService) CreateForum(creatorID uint, title, description string) (*model.Forum, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}

	if _, err := s.userRepo.GetByID(creatorID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	forum := &model.Forum{
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatorID:   creatorID,
	}
	if err := s.forumRepo.Create(forum); err != nil {
		return nil, err
	}
	return forum, nil
}

// ListForums 获取全部论坛（带创建者）
func (s *ForumService) ListForums() ([]*ForumSummary, error) {
	forums, err := s.forumRepo.List()
	if err != nil {
		return nil, err
	}

	summaries := make([]*ForumSummary, 0, len(forums))
	for _, f := range forums {
		creator, err := s.userRepo.GetByID(f.CreatorID)
		if err != nil && !repository.IsNotFound(err) {
			return nil, err
		}
		summaries = append(summaries, &ForumSummary{Forum: f, Creator: creator})
	}
	return summaries, nil
}

// GetForum 获取论坛详情（创建者 + 论坛下的动态）
func (s *ForumService) GetForum(forumID uint) (*ForumDetail, error) {
	forum, err := s.forumRepo.GetByID(forumID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	creator, err := s.userRepo.GetByID(forum.CreatorID)
	if err != nil && !repository.IsNotFound(err) {
		return nil, err
	}

	thoughts, err := s.thoughtRepo.ListByForumID(forumID)
	if err != nil {
		return nil, err
	}
	posts, err := s.thoughtSvc.buildSummaries(thoughts)
	if err != nil {
		return nil, err
	}

	return &ForumDetail{Forum: forum, Creator: creator, Posts: posts}, nil
}
