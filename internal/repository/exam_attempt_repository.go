package repository

import (
	"context"
	"exam_hub_backend/internal/model"
	"exam_hub_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type ExamAttemptRepository struct {
	DB *gorm.DB
}

func NewExamAttemptRepository(db *gorm.DB) *ExamAttemptRepository {
	return &ExamAttemptRepository{DB: db}
}

// Create 依赖 (student_id, exam_id) 唯一索引，冲突时返回 util.ErrDuplicateConflict
func (r *ExamAttemptRepository) Create(ctx context.Context, attempt *model.ExamAttempt) error {
	if err := r.DB.WithContext(ctx).Create(attempt).Error; err != nil {
		if IsDuplicateKey(err) {
			return util.ErrDuplicateConflict
		}
		return err
	}
	return nil
}

func (r *ExamAttemptRepository) FindByID(ctx context.Context, id uint) (*model.ExamAttempt, error) {
	var a model.ExamAttempt
	if err := r.DB.WithContext(ctx).First(&a, id).Error; err != nil {
		if IsNotFound(err) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByStudentAndExam 未开始作答时返回 (nil, nil)
func (r *ExamAttemptRepository) FindByStudentAndExam(ctx context.Context, studentID, examID uint) (*model.ExamAttempt, error) {
	var a model.ExamAttempt
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		First(&a).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *ExamAttemptRepository) update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.DB.WithContext(ctx).Model(&model.ExamAttempt{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ExamAttemptRepository) Resume(ctx context.Context, id uint, now time.Time) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":           model.AttemptStarted,
		"last_accessed_at": now,
	})
}

func (r *ExamAttemptRepository) SaveTime(ctx context.Context, id uint, remaining int, status model.AttemptStatus, now time.Time) error {
	return r.update(ctx, id, map[string]interface{}{
		"time_remaining_seconds": remaining,
		"status":                 status,
		"last_accessed_at":       now,
	})
}

// MarkExpired 只在未完成时生效，避免覆盖并发的完成操作
func (r *ExamAttemptRepository) MarkExpired(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Model(&model.ExamAttempt{}).
		Where("id = ? AND status <> ?", id, model.AttemptCompleted).
		Updates(map[string]interface{}{
			"time_remaining_seconds": 0,
			"status":                 model.AttemptExpired,
		}).Error
}

func (r *ExamAttemptRepository) MarkCompleted(ctx context.Context, id uint, now time.Time) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":           model.AttemptCompleted,
		"is_completed":     true,
		"last_accessed_at": now,
	})
}
