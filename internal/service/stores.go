package service

import (
	"context"
	"exam_hub_backend/internal/model"
	"exam_hub_backend/internal/repository"
	"time"
)

// 服务依赖的持久化接口，由 repository 包中的 gorm 实现满足

type ExamStore interface {
	Create(ctx context.Context, exam *model.Exam) error
	FindByID(ctx context.Context, id uint) (*model.Exam, error)
	FindByFileID(ctx context.Context, fileID string) (*model.Exam, error)
	FindByFileURL(ctx context.Context, fileURL string) (*model.Exam, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*model.Exam, error)
	List(ctx context.Context, scope repository.ExamScope) ([]model.Exam, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

type AttemptStore interface {
	Create(ctx context.Context, attempt *model.ExamAttempt) error
	FindByID(ctx context.Context, id uint) (*model.ExamAttempt, error)
	FindByStudentAndExam(ctx context.Context, studentID, examID uint) (*model.ExamAttempt, error)
	Resume(ctx context.Context, id uint, now time.Time) error
	SaveTime(ctx context.Context, id uint, remaining int, status model.AttemptStatus, now time.Time) error
	MarkExpired(ctx context.Context, id uint) error
	MarkCompleted(ctx context.Context, id uint, now time.Time) error
}

type SubmissionStore interface {
	Create(ctx context.Context, s *model.Submission) error
	FindByID(ctx context.Context, id uint) (*model.Submission, error)
	FindByStudentAndExam(ctx context.Context, studentID, examID uint) (*model.Submission, error)
	List(ctx context.Context, scope repository.SubmissionScope) ([]model.Submission, error)
}

var (
	_ ExamStore       = (*repository.ExamRepository)(nil)
	_ AttemptStore    = (*repository.ExamAttemptRepository)(nil)
	_ SubmissionStore = (*repository.SubmissionRepository)(nil)
	_ BlobStore       = (*StorageService)(nil)
	_ BlobStore       = (*LocalBlobStore)(nil)
	_ BlobStore       = (*MinioBlobStore)(nil)
	_ BlobStore       = (*OSSBlobStore)(nil)
)
