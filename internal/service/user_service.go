package service

import (
	"fmt"
	"strings"

	"thoughts-system/internal/model"
	"thoughts-system/internal/repository"
	"thoughts-system/pkg/jwt"
	"thoughts-system/pkg/password"
)

// UserService 用户服务：注册、登录、主页查询与好友关系
type UserService struct {
	repo        *repository.UserRepository
	friendRepo  *repository.FriendshipRepository
	thoughtRepo *repository.ThoughtRepository
	jwtService  *jwt.JWTService
}

// NewUserService 创建UserService实例
func NewUserService(
	repo *repository.UserRepository,
	friendRepo *repository.FriendshipRepository,
	thoughtRepo *repository.ThoughtRepository,
	jwtService *jwt.JWTService,
) *UserService {
	return &UserService{
		repo:        repo,
		friendRepo:  friendRepo,
		thoughtRepo: thoughtRepo,
		jwtService:  jwtService,
	}
}

// Profile 用户主页聚合（me / user 查询的返回结构）
type Profile struct {
	User     *model.User
	Thoughts []*ThoughtSummary
	Friends  []*model.User
}

// FriendList 好友操作的返回结构
type FriendList struct {
	User    *model.User
	Friends []*model.User
}

// Register 注册
// 注册成功即签发token（与登录等价）
func (s *UserService) Register(username, email, plainPassword string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || plainPassword == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", ErrInvalidArgument)
	}

	// 唯一性预检查（数据库唯一索引兜底）
	exists, err := s.repo.ExistsUsernameOrEmail(username, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", fmt.Errorf("%w: username or email taken", ErrConflict)
	}

	// 密码哈希
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 登录（用户名或邮箱 + 密码）
func (s *UserService) Login(identifier, plainPassword string) (*model.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plainPassword == "" {
		return nil, "", fmt.Errorf("%w: identifier and password are required", ErrInvalidArgument)
	}
	u, err := s.repo.GetByUsernameOrEmail(identifier)
	if err != nil {
		if repository.IsNotFound(err) {
			// 不泄露用户是否存在
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !password.Verify(plainPassword, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.signToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// signToken 签发访问令牌，用户ID作为Subject
func (s *UserService) signToken(user *model.User) (string, error) {
	return s.jwtService.GenerateToken(
		fmt.Sprintf("%d", user.ID),
		map[string]interface{}{"username": user.Username},
	)
}

// GetProfile 获取用户主页（按ID，me查询）
func (s *UserService) GetProfile(userID uint) (*Profile, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.buildProfile(user)
}

// GetProfileByUsername 获取用户主页（按用户名，user查询）
func (s *UserService) GetProfileByUsername(username string) (*Profile, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.buildProfile(user)
}

// buildProfile 组装用户主页：用户本体 + 其动态（带计数） + 好友列表
func (s *UserService) buildProfile(user *model.User) (*Profile, error) {
	thoughts, err := s.thoughtRepo.List(user.Username, 100, 0)
	if err != nil {
		return nil, err
	}
	summaries := make([]*ThoughtSummary, 0, len(thoughts))
	for _, t := range thoughts {
		likeCount, err := s.thoughtRepo.CountLikes(t.ID)
		if err != nil {
			return nil, err
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
	friends, err := s.friendRepo.ListFriends(user.ID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Thoughts: summaries, Friends: friends}, nil
}

// UserSummary 用户列表视图聚合：用户 + 动态数
type UserSummary struct {
	User         *model.User
	ThoughtCount int64
}

// ListUsers 获取全部用户（带动态数）
func (s *UserService) ListUsers() ([]*UserSummary, error) {
	users, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	summaries := make([]*UserSummary, 0, len(users))
	for _, u := range users {
		count, err := s.thoughtRepo.CountByAuthorID(u.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &UserSummary{User: u, ThoughtCount: count})
	}
	return summaries, nil
}

// AddFriend 添加好友
// 关系是有向的：只写入发起方一侧，对方的好友列表不受影响
// 重复添加是幂等操作；不允许添加自己
func (s *UserService) AddFriend(userID, friendID uint) (*FriendList, error) {
	if userID == friendID {
		return nil, fmt.Errorf("%w: cannot friend yourself", ErrInvalidArgument)
	}

	// 目标用户必须存在
	if _, err := s.repo.GetByID(friendID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.friendRepo.AddFriend(userID, friendID); err != nil {
		return nil, err
	}
	return s.buildFriendList(userID)
}

// RemoveFriend 删除好友（目标不在列表中时为无操作）
func (s *UserService) RemoveFriend(userID, friendID uint) (*FriendList, error) {
	if err := s.friendRepo.RemoveFriend(userID, friendID); err != nil {
		return nil, err
	}
	return s.buildFriendList(userID)
}

// buildFriendList 返回更新后的用户及其好友列表
func (s *UserService) buildFriendList(userID uint) (*FriendList, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	friends, err := s.friendRepo.ListFriends(userID)
	if err != nil {
		return nil, err
	}
	return &FriendList{User: user, Friends: friends}, nil
}
