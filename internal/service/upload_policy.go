package service

import (
	"exam_hub_backend/internal/config"
	"exam_hub_backend/internal/util"
	"io"
	"sync"
)

// UploadPolicy 上传白名单，配置热更新时整体替换
type UploadPolicy struct {
	mu  sync.RWMutex
	cfg config.UploadConfig
}

func NewUploadPolicy(cfg config.UploadConfig) *UploadPolicy {
	return &UploadPolicy{cfg: cfg}
}

func (p *UploadPolicy) Update(cfg config.UploadConfig) {
	p.mu.Lock()
	p.cfg = cfg
	p.mu.Unlock()
}

func (p *UploadPolicy) snapshot() config.UploadConfig {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

func (p *UploadPolicy) maxBytes() int64 {
	mb := p.snapshot().MaxSizeMB
	if mb <= 0 {
		return 0
	}
	return mb << 20
}

// CheckExamFile 返回嗅探到的 MIME 类型和可继续读取完整内容的 Reader
func (p *UploadPolicy) CheckExamFile(r io.Reader, size int64) (string, io.Reader, error) {
	return p.check(r, size, p.snapshot().ExamContentTypes)
}

func (p *UploadPolicy) CheckAnswerFile(r io.Reader, size int64) (string, io.Reader, error) {
	return p.check(r, size, p.snapshot().AnswerContentTypes)
}

func (p *UploadPolicy) check(r io.Reader, size int64, allowed []string) (string, io.Reader, error) {
	if max := p.maxBytes(); max > 0 && size > max {
		return "", nil, util.ErrFileTooLarge
	}
	if size == 0 {
		return "", nil, util.ErrEmptyFile
	}
	return util.ValidateMimeType(r, allowed)
}
