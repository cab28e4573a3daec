package redis

import (
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// 点赞计数相关常量
const (
	LikeCountKeyPrefix = "thoughts:likes:" // 点赞计数key前缀
)

// LikeCountTTL 点赞计数缓存TTL（可通过配置覆盖）
var LikeCountTTL = 24 * time.Hour

// IncrementLikeCount 增加动态点赞计数
func IncrementLikeCount(thoughtID uint) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", LikeCountKeyPrefix, thoughtID)

	// 使用Redis INCR命令原子性增加计数
	if err := client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("增加点赞计数失败: %w", err)
	}

	// 设置TTL，计数仅作缓存，过期后从数据库回填
	if err := client.Expire(ctx, key, LikeCountTTL).Err(); err != nil {
		return fmt.Errorf("设置点赞计数TTL失败: %w", err)
	}

	return nil
}

// DecrementLikeCount 减少动态点赞计数
func DecrementLikeCount(thoughtID uint) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", LikeCountKeyPrefix, thoughtID)

	if err := client.Decr(ctx, key).Err(); err != nil {
		return fmt.Errorf("减少点赞计数失败: %w", err)
	}

	// 如果计数为0或负数，删除key
	count, err := client.Get(ctx, key).Int64()
	if err == nil && count <= 0 {
		client.Del(ctx, key)
	}

	return nil
}

// GetLikeCount 获取动态点赞计数
// key不存在时返回-1，表示需要从数据库获取
func GetLikeCount(thoughtID uint) (int64, error) {
	if client == nil {
		return 0, fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", LikeCountKeyPrefix, thoughtID)

	result, err := client.Get(ctx, key).Result()
	if err != nil {
		if err.Error() == "redis: nil" {
			return -1, nil
		}
		return 0, fmt.Errorf("获取点赞计数失败: %w", err)
	}

	count, err := strconv.ParseInt(result, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("解析点赞计数失败: %w", err)
	}

	return count, nil
}

// SetLikeCount 设置动态点赞计数（用于数据库回填）
func SetLikeCount(thoughtID uint, count int64) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", LikeCountKeyPrefix, thoughtID)

	if err := client.Set(ctx, key, count, LikeCountTTL).Err(); err != nil {
		return fmt.Errorf("设置点赞计数失败: %w", err)
	}

	return nil
}

// DelLikeCount 删除动态点赞计数（动态被删除时调用）
func DelLikeCount(thoughtID uint) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", LikeCountKeyPrefix, thoughtID)
	return client.Del(ctx, key).Err()
}

// BatchGetLikeCounts 批量获取点赞计数
// 缓存缺失的动态不会出现在结果中，由调用方回源数据库
func BatchGetLikeCounts(thoughtIDs []uint) (map[uint]int64, error) {
	if client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}

	result := make(map[uint]int64)
	if len(thoughtIDs) == 0 {
		return result, nil
	}

	// 使用Pipeline批量获取
	pipe := client.Pipeline()
	cmds := make(map[uint]*redis.StringCmd, len(thoughtIDs))
	for _, id := range thoughtIDs {
		key := fmt.Sprintf("%s%d", LikeCountKeyPrefix, id)
		cmds[id] = pipe.Get(ctx, key)
	}

	// Exec在部分key缺失时返回redis.Nil，逐个检查命令结果即可
	_, _ = pipe.Exec(ctx)

	for id, cmd := range cmds {
		val, err := cmd.Result()
		if err != nil {
			continue
		}
		count, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			continue
		}
		result[id] = count
	}

	return result, nil
}
