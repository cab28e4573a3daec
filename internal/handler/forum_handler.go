package handler

import (
	"thoughts-system/internal/service"
	"thoughts-system/pkg/jwt"
	"thoughts-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// ForumHandler 论坛处理器
type ForumHandler struct {
	service *service.ForumService
}

// NewForumHandler 创建ForumHandler实例
func NewForumHandler(s *service.ForumService) *ForumHandler {
	return &ForumHandler{service: s}
}

// ListForums 获取全部论坛
func (h *ForumHandler) ListForums(c *gin.Context) {
	summaries, err := h.service.ListForums()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	infos := make([]*response.ForumInfo, 0, len(summaries))
	for _, s := range summaries {
		infos = append(infos, response.FilterForumInfo(s.Forum, s.Creator))
	}
	response.Success(c, infos)
}

// GetForum 获取论坛详情（创建者与论坛下的动态已解析）
func (h *ForumHandler) GetForum(c *gin.Context) {
	forumID := parseIDParam(c, "forum_id")
	if forumID == 0 {
		response.BadRequest(c, "invalid forum_id")
		return
	}

	detail, err := h.service.GetForum(forumID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	posts := make([]*response.ThoughtInfo, 0, len(detail.Posts))
	for _, p := range detail.Posts {
		posts = append(posts, response.FilterThoughtInfo(p.Thought, p.LikeCount, p.CommentCount))
	}

	response.Success(c, gin.H{
		"forum": response.FilterForumInfo(detail.Forum, detail.Creator),
		"posts": posts,
	})
}

// CreateForum 创建论坛（需要JWT认证）
func (h *ForumHandler) CreateForum(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)

	type req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	forum, err := h.service.CreateForum(userID, r.Title, r.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, "论坛创建成功", response.FilterForumInfo(forum, nil))
}
