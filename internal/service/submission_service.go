package service

import (
	"context"
	"errors"
	"exam_hub_backend/internal/model"
	"exam_hub_backend/internal/repository"
	"exam_hub_backend/internal/util"
	"exam_hub_backend/pkg/logger"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SubmissionService 每个学生每场考试只接受一次答案提交
type SubmissionService struct {
	Exams       ExamStore
	Submissions SubmissionStore
	Storage     BlobStore
	Policy      *UploadPolicy
	Now         func() time.Time
}

func NewSubmissionService(exams ExamStore, submissions SubmissionStore, storage BlobStore, policy *UploadPolicy) *SubmissionService {
	return &SubmissionService{
		Exams:       exams,
		Submissions: submissions,
		Storage:     storage,
		Policy:      policy,
		Now:         time.Now,
	}
}

// SubmitInput File 与 AnswerURL 二选一
type SubmitInput struct {
	ExamID    uint
	File      *UploadedFile
	AnswerURL string
}

func validateSubmitInput(in SubmitInput) error {
	verr := &util.ValidationError{}
	if in.ExamID == 0 {
		verr.Add("examId", "is required")
	}
	answerURL := strings.TrimSpace(in.AnswerURL)
	switch {
	case in.File == nil && answerURL == "":
		verr.Add("file", "is required")
	case in.File != nil && answerURL != "":
		verr.Add("answerUrl", "cannot be combined with file")
	case answerURL != "" && !model.ParseFileRef(answerURL).IsExternal():
		verr.Add("answerUrl", "must be an absolute URL")
	}
	return verr.OrNil()
}

// Submit 与作答状态无关：没有完成的作答也可以提交。
// 唯一索引冲突视为重复提交，已写入的文件会被删除。
func (s *SubmissionService) Submit(ctx context.Context, studentID uint, in SubmitInput) (*model.Submission, error) {
	if err := validateSubmitInput(in); err != nil {
		return nil, err
	}

	if _, err := s.Exams.FindByID(ctx, in.ExamID); err != nil {
		return nil, err
	}

	existing, err := s.Submissions.FindByStudentAndExam(ctx, studentID, in.ExamID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrDuplicateSubmission
	}

	sub := &model.Submission{
		StudentID:   studentID,
		ExamID:      in.ExamID,
		SubmittedAt: s.Now(),
		Status:      model.SubmissionSubmitted,
	}

	var storedKey string
	if in.File != nil {
		contentType, body, err := s.Policy.CheckAnswerFile(in.File.Reader, in.File.Size)
		if err != nil {
			return nil, err
		}
		sub.ContentType = contentType
		sub.OriginalName = filepath.Base(in.File.Filename)
		storedKey, err = s.Storage.Put(ctx, body, in.File.Size, BlobInfo{
			ContentType:  contentType,
			OriginalName: sub.OriginalName,
			Metadata: map[string]string{
				"kind":       "answer",
				"student-id": util.FormatID(studentID),
				"exam-id":    util.FormatID(in.ExamID),
			},
		})
		if err != nil {
			return nil, err
		}
		sub.AnswerRef = storedKey
	} else {
		sub.AnswerRef = model.ParseFileRef(strings.TrimSpace(in.AnswerURL)).Value
	}

	if err := s.Submissions.Create(ctx, sub); err != nil {
		if storedKey != "" {
			s.discardBlob(ctx, storedKey)
		}
		if errors.Is(err, util.ErrDuplicateConflict) {
			return nil, util.ErrDuplicateSubmission
		}
		return nil, err
	}

	logger.Log.Info("answer submitted",
		zap.Uint("submissionId", sub.ID),
		zap.Uint("studentId", studentID),
		zap.Uint("examId", in.ExamID),
		zap.Bool("blob", storedKey != ""),
	)
	return sub, nil
}

func (s *SubmissionService) discardBlob(ctx context.Context, key string) {
	if err := s.Storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		logger.Log.Error("failed to discard orphan blob", zap.String("key", key), zap.Error(err))
	}
}

// List 管理员看全部，教师只看自己试卷下的提交，学生无全量列表
func (s *SubmissionService) List(ctx context.Context, p model.Principal) ([]model.Submission, error) {
	scope, ok := SubmissionScopeFor(p)
	if !ok {
		return nil, util.ErrForbidden
	}
	subs, err := s.Submissions.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	return s.filter(ctx, p, subs)
}

// ListForExam 试卷创建者与管理员看该试卷的全部提交，学生只看到自己的
func (s *SubmissionService) ListForExam(ctx context.Context, p model.Principal, examID uint) ([]model.Submission, error) {
	exam, err := s.Exams.FindByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	switch v := p.(type) {
	case model.StudentPrincipal:
		sub, err := s.Submissions.FindByStudentAndExam(ctx, v.ID, examID)
		if err != nil {
			return nil, err
		}
		if sub == nil {
			return []model.Submission{}, nil
		}
		return []model.Submission{*sub}, nil
	case model.TeacherPrincipal:
		if exam.CreatorID != v.ID {
			return nil, util.ErrNotExamOwner
		}
	case model.AdminPrincipal:
	default:
		return nil, util.ErrForbidden
	}

	subs, err := s.Submissions.List(ctx, repository.SubmissionScope{ExamID: examID})
	if err != nil {
		return nil, err
	}
	lookup := func(uint) *model.Exam { return exam }
	return FilterSubmissions(p, subs, lookup), nil
}

func (s *SubmissionService) filter(ctx context.Context, p model.Principal, subs []model.Submission) ([]model.Submission, error) {
	if len(subs) == 0 {
		return subs, nil
	}
	ids := make([]uint, 0, len(subs))
	seen := make(map[uint]struct{}, len(subs))
	for _, sub := range subs {
		if _, ok := seen[sub.ExamID]; !ok {
			seen[sub.ExamID] = struct{}{}
			ids = append(ids, sub.ExamID)
		}
	}
	exams, err := s.Exams.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return FilterSubmissions(p, subs, func(id uint) *model.Exam { return exams[id] }), nil
}

// ResolveAnswer 下载答案文件，外部 URL 重定向，存储中的文件以私有缓存输出
func (s *SubmissionService) ResolveAnswer(ctx context.Context, p model.Principal, submissionID uint) (*FileResolution, error) {
	sub, err := s.Submissions.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	var exam *model.Exam
	if _, ok := p.(model.TeacherPrincipal); ok {
		if exam, err = s.Exams.FindByID(ctx, sub.ExamID); err != nil {
			return nil, err
		}
	}
	if !CanViewSubmission(p, sub, exam) {
		return nil, util.ErrForbidden
	}

	ref := sub.AnswerFileRef()
	switch ref.Kind {
	case model.FileRefExternalURL:
		return &FileResolution{RedirectURL: ref.Value}, nil
	case model.FileRefBlobKey:
	default:
		return nil, util.ErrInvalidReference
	}

	blob, err := s.Storage.Get(ctx, ref.Value)
	if err != nil {
		return nil, err
	}
	return &FileResolution{
		Blob:         blob,
		ContentType:  firstNonEmpty(blob.ContentType, sub.ContentType, util.MimeOctetStream),
		OriginalName: firstNonEmpty(blob.OriginalName, sub.OriginalName, ref.Value),
		Private:      true,
	}, nil
}
