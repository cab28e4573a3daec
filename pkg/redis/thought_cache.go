package redis

import (
	"encoding/json"
	"fmt"
	"time"
)

// 动态列表缓存相关常量
const (
	RecentThoughtsKey = "thoughts:feed:recent" // 最新动态列表缓存key
)

// 缓存配置（从配置文件获取）
var (
	FeedCacheTTL    = 10 * time.Minute // 动态列表缓存TTL
	MaxFeedThoughts = 50               // 最大缓存动态数
)

// SetCacheConfig 设置缓存配置
func SetCacheConfig(feedTTL, likeCountTTL time.Duration, maxFeedThoughts int) {
	if feedTTL > 0 {
		FeedCacheTTL = feedTTL
	}
	if likeCountTTL > 0 {
		LikeCountTTL = likeCountTTL
	}
	if maxFeedThoughts > 0 {
		MaxFeedThoughts = maxFeedThoughts
	}
}

// CachedThought 缓存的动态结构
type CachedThought struct {
	ID           uint      `json:"id"`
	Text         string    `json:"text"`
	AuthorID     uint      `json:"author_id"`
	Author       string    `json:"author"`
	ForumID      *uint     `json:"forum_id,omitempty"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// CacheRecentThoughts 缓存最新动态列表
func CacheRecentThoughts(thoughts []CachedThought) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	// 限制缓存数量
	if len(thoughts) > MaxFeedThoughts {
		thoughts = thoughts[:MaxFeedThoughts]
	}

	data, err := json.Marshal(thoughts)
	if err != nil {
		return fmt.Errorf("序列化动态列表失败: %w", err)
	}

	if err := Set(RecentThoughtsKey, data, FeedCacheTTL); err != nil {
		return fmt.Errorf("缓存动态列表失败: %w", err)
	}

	return nil
}

// GetCachedRecentThoughts 获取缓存的最新动态列表
func GetCachedRecentThoughts() ([]CachedThought, error) {
	if client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}

	data, err := Get(RecentThoughtsKey)
	if err != nil {
		return nil, err
	}

	var thoughts []CachedThought
	if err := json.Unmarshal([]byte(data), &thoughts); err != nil {
		return nil, fmt.Errorf("反序列化动态列表失败: %w", err)
	}

	return thoughts, nil
}

// InvalidateRecentThoughts 失效最新动态列表缓存
// 任何动态/点赞/评论变更后调用，下一次读取回源数据库
// 服务端是唯一数据源，客户端在变更后重新拉取即可拿到一致结果
func InvalidateRecentThoughts() error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	return Del(RecentThoughtsKey)
}
