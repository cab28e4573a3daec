package response

import (
	"net/http"

	"thoughts-system/internal/model"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`            // 状态码：0表示成功，其他表示错误
	Message string      `json:"message"`         // 响应消息
	Data    interface{} `json:"data,omitempty"`  // 响应数据
	Error   string      `json:"error,omitempty"` // 错误详情（仅在开发环境显示）
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带自定义消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// Unauthorized 401错误
func Unauthorized(c *gin.Context, message string) {
	Error(c, 401, message)
}

// Forbidden 403错误
func Forbidden(c *gin.Context, message string) {
	Error(c, 403, message)
}

// NotFound 404错误
func NotFound(c *gin.Context, message string) {
	Error(c, 404, message)
}

// Conflict 409错误（用户名/邮箱等唯一约束冲突）
func Conflict(c *gin.Context, message string) {
	Error(c, 409, message)
}

// InternalError 500错误
func InternalError(c *gin.Context, message string) {
	Error(c, 500, message)
}

// UserInfo 用户信息（隐藏敏感字段）
type UserInfo struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// FilterUserInfo 过滤用户信息，隐藏敏感字段
func FilterUserInfo(user *model.User) *UserInfo {
	if user == nil {
		return nil
	}

	return &UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// FilterUserList 批量过滤用户信息
func FilterUserList(users []*model.User) []*UserInfo {
	infos := make([]*UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, FilterUserInfo(u))
	}
	return infos
}

// UserListItem 用户列表条目（带动态数）
type UserListItem struct {
	UserInfo
	ThoughtCount int64 `json:"thought_count"`
}

// FilterUserListItem 过滤用户列表条目
func FilterUserListItem(user *model.User, thoughtCount int64) *UserListItem {
	if user == nil {
		return nil
	}

	return &UserListItem{
		UserInfo:     *FilterUserInfo(user),
		ThoughtCount: thoughtCount,
	}
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID        uint   `json:"id"`
	ThoughtID uint   `json:"thought_id"`
	Text      string `json:"text"`
	AuthorID  uint   `json:"author_id"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

// FilterCommentInfo 过滤评论信息
func FilterCommentInfo(comment *model.Comment) *CommentInfo {
	if comment == nil {
		return nil
	}

	return &CommentInfo{
		ID:        comment.ID,
		ThoughtID: comment.ThoughtID,
		Text:      comment.Text,
		AuthorID:  comment.AuthorID,
		Author:    comment.Author,
		CreatedAt: comment.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// FilterCommentList 批量过滤评论信息
func FilterCommentList(comments []*model.Comment) []*CommentInfo {
	infos := make([]*CommentInfo, 0, len(comments))
	for _, cm := range comments {
		infos = append(infos, FilterCommentInfo(cm))
	}
	return infos
}

// ThoughtInfo 动态信息（列表视图：只带计数）
type ThoughtInfo struct {
	ID           uint   `json:"id"`
	Text         string `json:"text"`
	AuthorID     uint   `json:"author_id"`
	Author       string `json:"author"`
	ForumID      *uint  `json:"forum_id,omitempty"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
	CreatedAt    string `json:"created_at"`
}

// FilterThoughtInfo 过滤动态信息（计数由调用方提供）
func FilterThoughtInfo(thought *model.Thought, likeCount, commentCount int64) *ThoughtInfo {
	if thought == nil {
		return nil
	}

	return &ThoughtInfo{
		ID:           thought.ID,
		Text:         thought.Text,
		AuthorID:     thought.AuthorID,
		Author:       thought.Author,
		ForumID:      thought.ForumID,
		LikeCount:    likeCount,
		CommentCount: commentCount,
		CreatedAt:    thought.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ThoughtDetail 动态详情（带评论和点赞用户）
type ThoughtDetail struct {
	ThoughtInfo
	Comments []*CommentInfo `json:"comments"`
	Likes    []*UserInfo    `json:"likes"`
	Liked    bool           `json:"liked"` // 当前请求用户是否已点赞
}

// FilterThoughtDetail 组装动态详情
func FilterThoughtDetail(thought *model.Thought, comments []*model.Comment, likers []*model.User, likeCount int64, liked bool) *ThoughtDetail {
	if thought == nil {
		return nil
	}

	return &ThoughtDetail{
		ThoughtInfo: *FilterThoughtInfo(thought, likeCount, int64(len(comments))),
		Comments:    FilterCommentList(comments),
		Likes:       FilterUserList(likers),
		Liked:       liked,
	}
}

// ForumInfo 论坛信息
type ForumInfo struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatorID   uint      `json:"creator_id"`
	Creator     *UserInfo `json:"creator,omitempty"`
	CreatedAt   string    `json:"created_at"`
}

// FilterForumInfo 过滤论坛信息
func FilterForumInfo(forum *model.Forum, creator *model.User) *ForumInfo {
	if forum == nil {
		return nil
	}

	return &ForumInfo{
		ID:          forum.ID,
		Title:       forum.Title,
		Description: forum.Description,
		CreatorID:   forum.CreatorID,
		Creator:     FilterUserInfo(creator),
		CreatedAt:   forum.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}

// ProfileResponse 用户主页响应（me / user 查询）
type ProfileResponse struct {
	User     *UserInfo      `json:"user"`
	Thoughts []*ThoughtInfo `json:"thoughts"`
	Friends  []*UserInfo    `json:"friends"`
}

// FriendsResponse 好友操作响应
type FriendsResponse struct {
	User    *UserInfo   `json:"user"`
	Friends []*UserInfo `json:"friends"`
}
