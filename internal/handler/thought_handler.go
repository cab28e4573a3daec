package handler

import (
	"strconv"

	"thoughts-system/internal/service"
	"thoughts-system/pkg/jwt"
	"thoughts-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// ThoughtHandler 动态处理器：发布、删除、评论与点赞
type ThoughtHandler struct {
	service *service.ThoughtService
}

// NewThoughtHandler 创建ThoughtHandler实例
func NewThoughtHandler(s *service.ThoughtService) *ThoughtHandler {
	return &ThoughtHandler{service: s}
}

// ListThoughts 获取动态列表，支持 ?username= 过滤
func (h *ThoughtHandler) ListThoughts(c *gin.Context) {
	username := c.Query("username")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	summaries, err := h.service.ListThoughts(username, page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	infos := make([]*response.ThoughtInfo, 0, len(summaries))
	for _, s := range summaries {
		infos = append(infos, response.FilterThoughtInfo(s.Thought, s.LikeCount, s.CommentCount))
	}
	response.Success(c, infos)
}

// GetThought 获取动态详情（评论与点赞用户已解析）
func (h *ThoughtHandler) GetThought(c *gin.Context) {
	thoughtID := parseIDParam(c, "thought_id")
	if thoughtID == 0 {
		response.BadRequest(c, "invalid thought_id")
		return
	}

	// 未认证访问时viewerID为0，liked恒为false
	viewerID := jwt.GetUserIDUint(c)

	detail, err := h.service.GetThought(thoughtID, viewerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, filterDetail(detail))
}

// CreateThought 发布动态（需要JWT认证）
func (h *ThoughtHandler) CreateThought(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)

	type req struct {
		Text    string `json:"text" binding:"required"`
		ForumID *uint  `json:"forum_id"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	thought, err := h.service.CreateThought(userID, r.Text, r.ForumID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, "发布成功", response.FilterThoughtInfo(thought, 0, 0))
}

// DeleteThought 删除动态（需要JWT认证，仅作者可删）
func (h *ThoughtHandler) DeleteThought(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	thoughtID := parseIDParam(c, "thought_id")
	if thoughtID == 0 {
		response.BadRequest(c, "invalid thought_id")
		return
	}

	thought, err := h.service.RemoveThought(userID, thoughtID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", response.FilterThoughtInfo(thought, 0, 0))
}

// AddComment 添加评论（需要JWT认证）
func (h *ThoughtHandler) AddComment(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	thoughtID := parseIDParam(c, "thought_id")
	if thoughtID == 0 {
		response.BadRequest(c, "invalid thought_id")
		return
	}

	type req struct {
		Text string `json:"text" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	detail, err := h.service.AddComment(userID, thoughtID, r.Text)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, "评论成功", filterDetail(detail))
}

// DeleteComment 删除评论（需要JWT认证，仅评论作者可删）
func (h *ThoughtHandler) DeleteComment(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	thoughtID := parseIDParam(c, "thought_id")
	commentID := parseIDParam(c, "comment_id")
	if thoughtID == 0 || commentID == 0 {
		response.BadRequest(c, "invalid thought_id or comment_id")
		return
	}

	detail, err := h.service.RemoveComment(userID, thoughtID, commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除评论成功", filterDetail(detail))
}

// LikeThought 点赞/取消点赞切换（需要JWT认证）
func (h *ThoughtHandler) LikeThought(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	thoughtID := parseIDParam(c, "thought_id")
	if thoughtID == 0 {
		response.BadRequest(c, "invalid thought_id")
		return
	}

	detail, err := h.service.ToggleLike(userID, thoughtID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	msg := "已取消点赞"
	if detail.Liked {
		msg = "点赞成功"
	}
	response.SuccessWithMessage(c, msg, filterDetail(detail))
}

// filterDetail 组装动态详情响应
func filterDetail(d *service.ThoughtDetail) *response.ThoughtDetail {
	return response.FilterThoughtDetail(d.Thought, d.Comments, d.Likers, d.LikeCount, d.Liked)
}
