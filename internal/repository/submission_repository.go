package repository

import (
	"context"
	"exam_hub_backend/internal/model"
	"exam_hub_backend/internal/util"

	"gorm.io/gorm"
)

// SubmissionScope 列表查询范围，ExamCreatorID 为 0 表示全部
type SubmissionScope struct {
	ExamCreatorID uint
	ExamID        uint
}

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// Create 依赖 (student_id, exam_id) 唯一索引，冲突时返回 util.ErrDuplicateSubmission
func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	if err := r.DB.WithContext(ctx).Create(s).Error; err != nil {
		if IsDuplicateKey(err) {
			return util.ErrDuplicateSubmission
		}
		return err
	}
	return nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id uint) (*model.Submission, error) {
	var s model.Submission
	if err := r.DB.WithContext(ctx).First(&s, id).Error; err != nil {
		if IsNotFound(err) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByStudentAndExam 未提交时返回 (nil, nil)
func (r *SubmissionRepository) FindByStudentAndExam(ctx context.Context, studentID, examID uint) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		First(&s).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) List(ctx context.Context, scope SubmissionScope) ([]model.Submission, error) {
	var ss []model.Submission
	query := r.DB.WithContext(ctx).Model(&model.Submission{})
	if scope.ExamCreatorID > 0 {
		query = query.Joins("JOIN exams ON exams.id = submissions.exam_id").
			Where("exams.creator_id = ?", scope.ExamCreatorID)
	}
	if scope.ExamID > 0 {
		query = query.Where("submissions.exam_id = ?", scope.ExamID)
	}
	err := query.Order("submissions.submitted_at desc").Find(&ss).Error
	return ss, err
}
