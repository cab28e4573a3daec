package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"thoughts-system/internal/model"
	"thoughts-system/internal/repository"
	"thoughts-system/pkg/redis"
)

// MaxThoughtTextLen 动态与评论内容的最大长度（字符数）
const MaxThoughtTextLen = 280

// ThoughtService 动态服务：发布、删除、评论与点赞
type ThoughtService struct {
	thoughtRepo *repository.ThoughtRepository
	userRepo    *repository.UserRepository
	forumRepo   *repository.ForumRepository
}

// NewThoughtService 创建ThoughtService实例
func NewThoughtService(
	thoughtRepo *repository.ThoughtRepository,
	userRepo *repository.UserRepository,
	forumRepo *repository.ForumRepository,
) *ThoughtService {
	return &ThoughtService{
		thoughtRepo: thoughtRepo,
		userRepo:    userRepo,
		forumRepo:   forumRepo,
	}
}

// ThoughtSummary 列表视图聚合：动态 + 计数
type ThoughtSummary struct {
	Thought      *model.Thought
	LikeCount    int64
	CommentCount int64
}

// ThoughtDetail 详情视图聚合：动态 + 评论 + 点赞用户
type ThoughtDetail struct {
	Thought   *model.Thought
	Comments  []*model.Comment
	Likers    []*model.User
	LikeCount int64
	Liked     bool // 当前请求用户是否已点赞（未认证时恒为false）
}

// validateText 校验动态/评论内容
func validateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: text is required", ErrInvalidArgument)
	}
	if utf8.RuneCountInString(text) > MaxThoughtTextLen {
		return "", fmt.Errorf("%w: text exceeds %d characters", ErrInvalidArgument, MaxThoughtTextLen)
	}
	return text, nil
}

// CreateThought 发布动态
// forumID 非空时动态归属该论坛；作者用户名冗余写入展示字段
func (s *ThoughtService) CreateThought(authorID uint, text string, forumID *uint) (*model.Thought, error) {
	text, err := validateText(text)
	if err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if forumID != nil {
		if _, err := s.forumRepo.GetByID(*forumID); err != nil {
			if repository.IsNotFound(err) {
				return nil, fmt.Errorf("%w: forum", ErrNotFound)
			}
			return nil, err
		}
	}

	thought := &model.Thought{
		Text:     text,
		AuthorID: author.ID,
		Author:   author.Username,
		ForumID:  forumID,
	}
	if err := s.thoughtRepo.Create(thought); err != nil {
		return nil, err
	}

	// 列表缓存失效，下一次读取回源
	_ = redis.InvalidateRecentThoughts()

	return thought, nil
}

// ListThoughts 获取动态列表（最新优先）
// 不带用户名过滤的第一页走Redis缓存，其余直接查库
func (s *ThoughtService) ListThoughts(username string, page, pageSize int) ([]*ThoughtSummary, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	if username == "" && page == 1 && pageSize <= redis.MaxFeedThoughts {
		if cached, err := redis.GetCachedRecentThoughts(); err == nil {
			if summaries, ok := feedFromCache(cached, pageSize); ok {
				return summaries, nil
			}
		}

		// 缓存未命中或条数不足，按缓存容量查库，异步回填后返回请求页
		summaries, err := s.listFromDB("", redis.MaxFeedThoughts, 0)
		if err != nil {
			return nil, err
		}
		go func() {
			_ = redis.CacheRecentThoughts(summariesToCache(summaries))
		}()
		if len(summaries) > pageSize {
			summaries = summaries[:pageSize]
		}
		return summaries, nil
	}

	return s.listFromDB(username, pageSize, offset)
}

// feedFromCache 从缓存取一页动态
// 缓存条数不足以覆盖请求页时不使用缓存，避免短页截断真实数据
func feedFromCache(cached []redis.CachedThought, pageSize int) ([]*ThoughtSummary, bool) {
	if len(cached) < pageSize {
		return nil, false
	}
	return summariesFromCache(cached[:pageSize]), true
}

// listFromDB 从数据库读取动态列表并补齐计数
func (s *ThoughtService) listFromDB(username string, limit, offset int) ([]*ThoughtSummary, error) {
	thoughts, err := s.thoughtRepo.List(username, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.buildSummaries(thoughts)
}

// buildSummaries 为动态列表补齐点赞/评论计数
// 点赞计数先批量查Redis，缺失的回源数据库并回填
func (s *ThoughtService) buildSummaries(thoughts []*model.Thought) ([]*ThoughtSummary, error) {
	ids := make([]uint, 0, len(thoughts))
	for _, t := range thoughts {
		ids = append(ids, t.ID)
	}
	cachedCounts, err := redis.BatchGetLikeCounts(ids)
	if err != nil {
		cachedCounts = map[uint]int64{}
	}

	summaries := make([]*ThoughtSummary, 0, len(thoughts))
	for _, t := range thoughts {
		likeCount, ok := cachedCounts[t.ID]
		if !ok {
			likeCount, err = s.thoughtRepo.CountLikes(t.ID)
			if err != nil {
				return nil, err
			}
			_ = redis.SetLikeCount(t.ID, likeCount)
		}
		commentCount, err := s.thoughtRepo.CountComments(t.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &ThoughtSummary{
			Thought:      t,
			LikeCount:    likeCount,
			CommentCount: commentCount,
		})
	}
	return summaries, nil
}

// summariesToCache 聚合结构转缓存格式
func summariesToCache(summaries []*ThoughtSummary) []redis.CachedThought {
	cached := make([]redis.CachedThought, 0, len(summaries))
	for _, s := range summaries {
		cached = append(cached, redis.CachedThought{
			ID:           s.Thought.ID,
			Text:         s.Thought.Text,
			AuthorID:     s.Thought.AuthorID,
			Author:       s.Thought.Author,
			ForumID:      s.Thought.ForumID,
			LikeCount:    s.LikeCount,
			CommentCount: s.CommentCount,
			CreatedAt:    s.Thought.CreatedAt,
		})
	}
	return cached
}

// summariesFromCache 缓存格式转聚合结构
func summariesFromCache(cached []redis.CachedThought) []*ThoughtSummary {
	summaries := make([]*ThoughtSummary, 0, len(cached))
	for _, c := range cached {
		summaries = append(summaries, &ThoughtSummary{
			Thought: &model.Thought{
				ID:        c.ID,
				Text:      c.Text,
				AuthorID:  c.AuthorID,
				Author:    c.Author,
				ForumID:   c.ForumID,
				CreatedAt: c.CreatedAt,
			},
			LikeCount:    c.LikeCount,
			CommentCount: c.CommentCount,
		})
	}
	return summaries
}

// GetThought 获取动态详情
// viewerID 为当前请求用户ID，未认证时传0（Liked恒为false）
func (s *ThoughtService) GetThought(thoughtID, viewerID uint) (*ThoughtDetail, error) {
	thought, err := s.thoughtRepo.GetByID(thoughtID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.buildDetail(thought, viewerID)
}

// buildDetail 组装动态详情
func (s *ThoughtService) buildDetail(thought *model.Thought, viewerID uint) (*ThoughtDetail, error) {
	comments, err := s.thoughtRepo.ListComments(thought.ID)
	if err != nil {
		return nil, err
	}
	likers, err := s.thoughtRepo.ListLikers(thought.ID)
	if err != nil {
		return nil, err
	}
	likeCount, err := s.likeCount(thought.ID)
	if err != nil {
		return nil, err
	}

	liked := false
	if viewerID > 0 {
		liked, err = s.thoughtRepo.HasLiked(viewerID, thought.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ThoughtDetail{
		Thought:   thought,
		Comments:  comments,
		Likers:    likers,
		LikeCount: likeCount,
		Liked:     liked,
	}, nil
}

// likeCount 获取点赞计数（优先从Redis获取，缺失时回源数据库并回填）
func (s *ThoughtService) likeCount(thoughtID uint) (int64, error) {
	count, err := redis.GetLikeCount(thoughtID)
	if err == nil && count >= 0 {
		return count, nil
	}

	dbCount, err := s.thoughtRepo.CountLikes(thoughtID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetLikeCount(thoughtID, dbCount)
	return dbCount, nil
}

// RemoveThought 删除动态（仅作者可删）
// 动态、评论、点赞在同一事务中删除，不会留下悬挂引用
func (s *ThoughtService) RemoveThought(userID, thoughtID uint) (*model.Thought, error) {
	thought, err := s.thoughtRepo.GetByID(thoughtID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// 权限校验使用稳定的作者ID，而不是冗余的用户名
	if thought.AuthorID != userID {
		return nil, ErrForbidden
	}

	if err := s.thoughtRepo.DeleteCascade(thoughtID); err != nil {
		return nil, err
	}

	_ = redis.DelLikeCount(thoughtID)
	_ = redis.InvalidateRecentThoughts()

	return thought, nil
}

// AddComment 添加评论（任何认证用户可评论任何动态）
// 返回更新后的动态详情
func (s *ThoughtService) AddComment(userID, thoughtID uint, text string) (*ThoughtDetail, error) {
	text, err := validateText(text)
	if err != nil {
		return nil, err
	}

	thought, err := s.thoughtRepo.GetByID(thoughtID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	author, err := s.userRepo.GetByID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		ThoughtID: thought.ID,
		Text:      text,
		AuthorID:  author.ID,
		Author:    author.Username,
	}
	if err := s.thoughtRepo.AddComment(comment); err != nil {
		return nil, err
	}

	_ = redis.InvalidateRecentThoughts()

	return s.buildDetail(thought, userID)
}

// RemoveComment 删除评论（仅评论作者可删）
// 非作者删除返回 ErrForbidden，评论列表不变
func (s *ThoughtService) RemoveComment(userID, thoughtID, commentID uint) (*ThoughtDetail, error) {
	thought, err := s.thoughtRepo.GetByID(thoughtID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment, err := s.thoughtRepo.GetCommentByID(commentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if comment.ThoughtID != thought.ID {
		return nil, ErrNotFound
	}

	// 权限校验使用稳定的作者ID：用户名变更不会破坏鉴权
	if comment.AuthorID != userID {
		return nil, ErrForbidden
	}

	if err := s.thoughtRepo.DeleteComment(commentID); err != nil {
		return nil, err
	}

	_ = redis.InvalidateRecentThoughts()

	return s.buildDetail(thought, userID)
}

// ToggleLike 点赞/取消点赞切换
// 切换由数据库唯一索引保证原子性，重复并发请求最终点赞数只能是0或1
// 点赞只改数据，不做任何消息推送
func (s *ThoughtService) ToggleLike(userID, thoughtID uint) (*ThoughtDetail, error) {
	thought, err := s.thoughtRepo.GetByID(thoughtID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	liked, err := s.thoughtRepo.ToggleLike(userID, thoughtID)
	if err != nil {
		return nil, err
	}

	// 点赞计数缓存尽力维护，失败时下次读取回源
	if liked {
		_ = redis.IncrementLikeCount(thoughtID)
	} else {
		_ = redis.DecrementLikeCount(thoughtID)
	}
	_ = redis.InvalidateRecentThoughts()

	return s.buildDetail(thought, userID)
}
