package repository

import (
	"context"
	"exam_hub_backend/internal/model"
	"exam_hub_backend/internal/util"

	"gorm.io/gorm"
)

// ExamScope 列表查询范围，零值表示不限制
type ExamScope struct {
	ActiveOnly bool
	CreatorID  uint
}

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(ctx context.Context, exam *model.Exam) error {
	return r.DB.WithContext(ctx).Create(exam).Error
}

func (r *ExamRepository) FindByID(ctx context.Context, id uint) (*model.Exam, error) {
	var e model.Exam
	if err := r.DB.WithContext(ctx).First(&e, id).Error; err != nil {
		if IsNotFound(err) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExamRepository) FindByFileID(ctx context.Context, fileID string) (*model.Exam, error) {
	var e model.Exam
	if err := r.DB.WithContext(ctx).Where("file_id = ?", fileID).First(&e).Error; err != nil {
		if IsNotFound(err) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindByFileURL 按历史外部地址精确匹配
func (r *ExamRepository) FindByFileURL(ctx context.Context, fileURL string) (*model.Exam, error) {
	var e model.Exam
	if err := r.DB.WithContext(ctx).Where("file_url = ?", fileURL).First(&e).Error; err != nil {
		if IsNotFound(err) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExamRepository) List(ctx context.Context, scope ExamScope) ([]model.Exam, error) {
	var exams []model.Exam
	query := r.DB.WithContext(ctx).Model(&model.Exam{})
	if scope.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if scope.CreatorID > 0 {
		query = query.Where("creator_id = ?", scope.CreatorID)
	}
	err := query.Order("created_at desc").Find(&exams).Error
	return exams, err
}

// FindByIDs 批量查询，结果以 ID 为键
func (r *ExamRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*model.Exam, error) {
	result := make(map[uint]*model.Exam, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var exams []model.Exam
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&exams).Error; err != nil {
		return nil, err
	}
	for i := range exams {
		result[exams[i].ID] = &exams[i]
	}
	return result, nil
}

func (r *ExamRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.DB.WithContext(ctx).Model(&model.Exam{}).Where("id = ?", id).Update("is_active", active).Error
}
