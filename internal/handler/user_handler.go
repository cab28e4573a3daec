package handler

import (
	"thoughts-system/internal/service"
	"thoughts-system/pkg/jwt"
	"thoughts-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器：注册、登录、主页查询与好友关系
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler 创建UserHandler实例
func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// Register 用户注册
func (h *UserHandler) Register(c *gin.Context) {
	type req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, token, err := h.service.Register(r.Username, r.Email, r.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, "注册成功", &response.AuthResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: token,
	})
}

// Login 用户登录
func (h *UserHandler) Login(c *gin.Context) {
	type req struct {
		UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
		Password        string `json:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, token, err := h.service.Login(r.UsernameOrEmail, r.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, "登录成功", &response.AuthResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: token,
	})
}

// Me 获取当前用户主页（需要JWT认证）
func (h *UserHandler) Me(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "用户未认证")
		return
	}

	profile, err := h.service.GetProfile(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, filterProfile(profile))
}

// ListUsers 获取全部用户（带动态数）
func (h *UserHandler) ListUsers(c *gin.Context) {
	summaries, err := h.service.ListUsers()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	items := make([]*response.UserListItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, response.FilterUserListItem(s.User, s.ThoughtCount))
	}
	response.Success(c, items)
}

// GetUser 按用户名获取用户主页
func (h *UserHandler) GetUser(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.BadRequest(c, "username is required")
		return
	}

	profile, err := h.service.GetProfileByUsername(username)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, filterProfile(profile))
}

// AddFriend 添加好友（需要JWT认证）
// 关系是有向的：只出现在发起方的好友列表中
func (h *UserHandler) AddFriend(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	friendID := parseIDParam(c, "friend_id")
	if friendID == 0 {
		response.BadRequest(c, "invalid friend_id")
		return
	}

	list, err := h.service.AddFriend(userID, friendID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, "添加好友成功", &response.FriendsResponse{
		User:    response.FilterUserInfo(list.User),
		Friends: response.FilterUserList(list.Friends),
	})
}

// RemoveFriend 删除好友（需要JWT认证）
func (h *UserHandler) RemoveFriend(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	friendID := parseIDParam(c, "friend_id")
	if friendID == 0 {
		response.BadRequest(c, "invalid friend_id")
		return
	}

	list, err := h.service.RemoveFriend(userID, friendID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除好友成功", &response.FriendsResponse{
		User:    response.FilterUserInfo(list.User),
		Friends: response.FilterUserList(list.Friends),
	})
}

// filterProfile 组装用户主页响应
func filterProfile(p *service.Profile) *response.ProfileResponse {
	thoughts := make([]*response.ThoughtInfo, 0, len(p.Thoughts))
	for _, t := range p.Thoughts {
		thoughts = append(thoughts, response.FilterThoughtInfo(t.Thought, t.LikeCount, t.CommentCount))
	}
	return &response.ProfileResponse{
		User:     response.FilterUserInfo(p.User),
		Thoughts: thoughts,
		Friends:  response.FilterUserList(p.Friends),
	}
}
