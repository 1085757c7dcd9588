package service

import (
	"context"
	"encoding/json"
	"exam_hub_backend/internal/model"
	"exam_hub_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	examCacheTTL = time.Minute
	// 失效后的一段时间内拒绝回写，覆盖读库与写缓存之间的窗口
	examCacheTombstoneTTL = 5 * time.Second
)

// ExamCache 按文件 key 缓存试卷，供文件下载路径使用
type ExamCache interface {
	GetByFileID(ctx context.Context, fileID string) (*model.Exam, bool)
	Set(ctx context.Context, exam *model.Exam)
	Invalidate(ctx context.Context, exam *model.Exam)
}

type NopExamCache struct{}

func (NopExamCache) GetByFileID(context.Context, string) (*model.Exam, bool) { return nil, false }
func (NopExamCache) Set(context.Context, *model.Exam)                        {}
func (NopExamCache) Invalidate(context.Context, *model.Exam)                 {}

// RedisExamCache 缓存失败只记日志，不影响主流程
type RedisExamCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisExamCache(rdb *redis.Client) *RedisExamCache {
	return &RedisExamCache{Client: rdb, TTL: examCacheTTL}
}

func examCacheKey(fileID string) string {
	return "exam:file:" + fileID
}

func examTombstoneKey(fileID string) string {
	return "exam:file:" + fileID + ":invalidated"
}

func (c *RedisExamCache) GetByFileID(ctx context.Context, fileID string) (*model.Exam, bool) {
	raw, err := c.Client.Get(ctx, examCacheKey(fileID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("exam cache get failed", zap.String("fileId", fileID), zap.Error(err))
		}
		return nil, false
	}
	var exam model.Exam
	if err := json.Unmarshal(raw, &exam); err != nil {
		return nil, false
	}
	return &exam, true
}

// Set 先写入再检查失效标记，与 Invalidate 的先标记后删除配合，
// 任意交错下都不会留下失效前读到的旧数据
func (c *RedisExamCache) Set(ctx context.Context, exam *model.Exam) {
	if exam.FileID == "" {
		return
	}
	raw, err := json.Marshal(exam)
	if err != nil {
		return
	}
	key := examCacheKey(exam.FileID)
	if err := c.Client.Set(ctx, key, raw, c.TTL).Err(); err != nil {
		logger.Log.Warn("exam cache set failed", zap.Uint("examId", exam.ID), zap.Error(err))
		return
	}
	n, err := c.Client.Exists(ctx, examTombstoneKey(exam.FileID)).Result()
	if err != nil || n > 0 {
		c.Client.Del(ctx, key)
	}
}

func (c *RedisExamCache) Invalidate(ctx context.Context, exam *model.Exam) {
	if exam.FileID == "" {
		return
	}
	if err := c.Client.Set(ctx, examTombstoneKey(exam.FileID), 1, examCacheTombstoneTTL).Err(); err != nil {
		logger.Log.Warn("exam cache tombstone failed", zap.Uint("examId", exam.ID), zap.Error(err))
	}
	if err := c.Client.Del(ctx, examCacheKey(exam.FileID)).Err(); err != nil {
		logger.Log.Warn("exam cache invalidate failed", zap.Uint("examId", exam.ID), zap.Error(err))
	}
}
