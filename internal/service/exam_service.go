package service

import (
	"context"
	"exam_hub_backend/internal/model"
	"exam_hub_backend/internal/util"
	"exam_hub_backend/pkg/logger"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

type ExamService struct {
	Exams   ExamStore
	Storage BlobStore
	Cache   ExamCache
	Policy  *UploadPolicy
}

func NewExamService(exams ExamStore, storage BlobStore, cache ExamCache, policy *UploadPolicy) *ExamService {
	if cache == nil {
		cache = NopExamCache{}
	}
	return &ExamService{Exams: exams, Storage: storage, Cache: cache, Policy: policy}
}

// UploadedFile 上传文件，Size 为 -1 表示未知
type UploadedFile struct {
	Reader   io.Reader
	Size     int64
	Filename string
}

type CreateExamInput struct {
	Title           string
	DurationMinutes int
	File            *UploadedFile
}

func validateExamInput(in CreateExamInput) error {
	verr := &util.ValidationError{}
	title := strings.TrimSpace(in.Title)
	if n := utf8.RuneCountInString(title); n == 0 {
		verr.Add("title", "is required")
	} else if n > model.ExamTitleMaxLen {
		verr.Add("title", "must be at most 100 characters")
	}
	if in.DurationMinutes < model.ExamMinDurationMin || in.DurationMinutes > model.ExamMaxDurationMin {
		verr.Add("durationMinutes", "must be between 1 and 300")
	}
	if in.File == nil {
		verr.Add("file", "is required")
	}
	return verr.OrNil()
}

// CreateExam 先写文件再写记录，记录写入失败时删除已上传的文件
func (s *ExamService) CreateExam(ctx context.Context, creator model.Principal, in CreateExamInput) (*model.Exam, error) {
	if _, ok := creator.(model.TeacherPrincipal); !ok {
		return nil, util.ErrForbidden
	}
	if err := validateExamInput(in); err != nil {
		return nil, err
	}

	contentType, body, err := s.Policy.CheckExamFile(in.File.Reader, in.File.Size)
	if err != nil {
		return nil, err
	}

	originalName := filepath.Base(in.File.Filename)
	key, err := s.Storage.Put(ctx, body, in.File.Size, BlobInfo{
		ContentType:  contentType,
		OriginalName: originalName,
		Metadata: map[string]string{
			"uploaded-by": "teacher",
			"kind":        "exam",
		},
	})
	if err != nil {
		return nil, err
	}

	exam := &model.Exam{
		Title:           strings.TrimSpace(in.Title),
		FileID:          key,
		ContentType:     contentType,
		OriginalName:    originalName,
		DurationMinutes: in.DurationMinutes,
		CreatorID:       creator.UserID(),
		IsActive:        true,
	}
	if err := s.Exams.Create(ctx, exam); err != nil {
		s.discardBlob(ctx, key)
		return nil, err
	}

	logger.Log.Info("exam created",
		zap.Uint("examId", exam.ID),
		zap.Uint("creatorId", exam.CreatorID),
		zap.String("fileId", key),
	)
	return exam, nil
}

func (s *ExamService) discardBlob(ctx context.Context, key string) {
	if err := s.Storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		logger.Log.Error("failed to discard orphan blob", zap.String("key", key), zap.Error(err))
	}
}

func (s *ExamService) ListExams(ctx context.Context, p model.Principal) ([]model.Exam, error) {
	scope, ok := ExamScopeFor(p)
	if !ok {
		return nil, util.ErrForbidden
	}
	exams, err := s.Exams.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	return FilterExams(p, exams), nil
}

func (s *ExamService) GetExam(ctx context.Context, p model.Principal, id uint) (*model.Exam, error) {
	exam, err := s.Exams.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanViewExam(p, exam) {
		return nil, util.ErrForbidden
	}
	return exam, nil
}

// SetActive 启用或取消试卷，只允许创建者操作
func (s *ExamService) SetActive(ctx context.Context, p model.Principal, id uint, active bool) (*model.Exam, error) {
	exam, err := s.Exams.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanToggleExam(p, exam) {
		return nil, util.ErrNotExamOwner
	}
	// 更新前后各清一次缓存，避免并发下载把旧状态写回
	s.Cache.Invalidate(ctx, exam)
	if err := s.Exams.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	exam.IsActive = active
	s.Cache.Invalidate(ctx, exam)

	logger.Log.Info("exam active flag changed", zap.Uint("examId", id), zap.Bool("active", active))
	return exam, nil
}
