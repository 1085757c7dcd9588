package service

import (
	"context"
	"errors"
	"exam_hub_backend/internal/model"
	"exam_hub_backend/internal/util"
	"exam_hub_backend/pkg/monitoring"
	"time"
)

// FileResolution 二选一：RedirectURL 非空时重定向，否则以 Blob 内联输出
type FileResolution struct {
	RedirectURL  string
	Blob         *Blob
	ContentType  string
	OriginalName string
	CacheMaxAge  time.Duration
	// Private 为 true 时不允许共享缓存
	Private bool
}

func (r *FileResolution) IsRedirect() bool {
	return r.RedirectURL != ""
}

// FileResolver 试卷文件下载：兼容迁移前的外部 URL 与 Blob 存储
type FileResolver struct {
	Exams   ExamStore
	Storage BlobStore
	Cache   ExamCache
}

func NewFileResolver(exams ExamStore, storage BlobStore, cache ExamCache) *FileResolver {
	if cache == nil {
		cache = NopExamCache{}
	}
	return &FileResolver{Exams: exams, Storage: storage, Cache: cache}
}

func redirectTo(u string) *FileResolution {
	monitoring.FileResolutions.WithLabelValues("redirect").Inc()
	return &FileResolution{RedirectURL: u}
}

// Resolve 只解析试卷记录中存储的文件引用：外部 URL 必须与某份试卷的历史地址完全一致才重定向，
// Blob key 需找到所属试卷，试卷仍保留历史 URL 时优先重定向，未启用的试卷拒绝访问
func (r *FileResolver) Resolve(ctx context.Context, raw string) (*FileResolution, error) {
	ref := model.ParseFileRef(raw)
	var (
		exam *model.Exam
		err  error
	)
	switch ref.Kind {
	case model.FileRefExternalURL:
		exam, err = r.Exams.FindByFileURL(ctx, ref.Value)
	case model.FileRefBlobKey:
		exam, err = r.examByFileID(ctx, ref.Value)
	default:
		monitoring.FileResolutions.WithLabelValues("invalid").Inc()
		return nil, util.ErrInvalidReference
	}
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			monitoring.FileResolutions.WithLabelValues("not_found").Inc()
		}
		return nil, err
	}
	return r.resolveExam(ctx, exam)
}

func (r *FileResolver) resolveExam(ctx context.Context, exam *model.Exam) (*FileResolution, error) {
	if legacy, ok := exam.LegacyURL(); ok {
		return redirectTo(legacy), nil
	}

	stored := exam.FileRef()
	if !stored.IsBlobKey() {
		monitoring.FileResolutions.WithLabelValues("invalid").Inc()
		return nil, util.ErrInvalidReference
	}

	if !exam.IsActive {
		monitoring.FileResolutions.WithLabelValues("forbidden").Inc()
		return nil, util.ErrExamInactive
	}

	blob, err := r.Storage.Get(ctx, stored.Value)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			monitoring.FileResolutions.WithLabelValues("not_found").Inc()
		}
		return nil, err
	}

	monitoring.FileResolutions.WithLabelValues("stream").Inc()
	return &FileResolution{
		Blob:         blob,
		ContentType:  firstNonEmpty(blob.ContentType, exam.ContentType, util.MimeOctetStream),
		OriginalName: firstNonEmpty(blob.OriginalName, exam.OriginalName, stored.Value),
		CacheMaxAge:  util.FileCacheMaxAge,
	}, nil
}

func (r *FileResolver) examByFileID(ctx context.Context, fileID string) (*model.Exam, error) {
	if exam, ok := r.Cache.GetByFileID(ctx, fileID); ok {
		return exam, nil
	}
	exam, err := r.Exams.FindByFileID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	r.Cache.Set(ctx, exam)
	return exam, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
