package service

import (
	"context"
	"errors"
	"exam_hub_backend/internal/model"
	"exam_hub_backend/internal/util"
	"exam_hub_backend/pkg/logger"
	"exam_hub_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

// AttemptService 作答计时状态机
//
// 剩余时间以检查点形式持久化，读取时按首次开始时间计算已用时间，
// 不需要后台计时任务。
type AttemptService struct {
	Exams       ExamStore
	Attempts    AttemptStore
	Submissions SubmissionStore
	Now         func() time.Time
}

func NewAttemptService(exams ExamStore, attempts AttemptStore, submissions SubmissionStore) *AttemptService {
	return &AttemptService{
		Exams:       exams,
		Attempts:    attempts,
		Submissions: submissions,
		Now:         time.Now,
	}
}

// AttemptView 返回给客户端的作答状态
type AttemptView struct {
	AttemptID            uint                `json:"attemptId"`
	ExamID               uint                `json:"examId"`
	Status               model.AttemptStatus `json:"status"`
	TimeRemainingSeconds int                 `json:"timeRemainingSeconds"`
	IsCompleted          bool                `json:"isCompleted"`
	StartedAt            time.Time           `json:"startedAt"`
	LastAccessedAt       time.Time           `json:"lastAccessedAt"`
	Resumed              bool                `json:"resumed,omitempty"`
}

func viewOf(a *model.ExamAttempt) *AttemptView {
	return &AttemptView{
		AttemptID:            a.ID,
		ExamID:               a.ExamID,
		Status:               a.Status,
		TimeRemainingSeconds: a.TimeRemainingSeconds,
		IsCompleted:          a.IsCompleted,
		StartedAt:            a.StartedAt,
		LastAccessedAt:       a.LastAccessedAt,
	}
}

func transition(attemptID uint, status model.AttemptStatus) {
	monitoring.AttemptTransitions.WithLabelValues(string(status)).Inc()
	logger.Log.Debug("attempt transition", zap.Uint("attemptId", attemptID), zap.String("status", string(status)))
}

// Start 开始或继续作答。已提交过答案或已完成的作答不能再开始；
// 已存在未完成的记录时原地继续，不重置剩余时间。
func (s *AttemptService) Start(ctx context.Context, studentID, examID uint) (*AttemptView, error) {
	exam, err := s.Exams.FindByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	sub, err := s.Submissions.FindByStudentAndExam(ctx, studentID, examID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		return nil, util.ErrAlreadySubmitted
	}

	now := s.Now()
	attempt, err := s.Attempts.FindByStudentAndExam(ctx, studentID, examID)
	if err != nil {
		return nil, err
	}

	if attempt == nil {
		attempt = &model.ExamAttempt{
			StudentID:            studentID,
			ExamID:               examID,
			StartedAt:            now,
			LastAccessedAt:       now,
			TimeRemainingSeconds: exam.DurationSeconds(),
			Status:               model.AttemptStarted,
		}
		err := s.Attempts.Create(ctx, attempt)
		if err == nil {
			transition(attempt.ID, model.AttemptStarted)
			logger.Log.Info("exam attempt started",
				zap.Uint("attemptId", attempt.ID),
				zap.Uint("studentId", studentID),
				zap.Uint("examId", examID),
			)
			return viewOf(attempt), nil
		}
		if !errors.Is(err, util.ErrDuplicateConflict) {
			return nil, err
		}
		// 并发请求已先创建了记录，按继续作答处理
		attempt, err = s.Attempts.FindByStudentAndExam(ctx, studentID, examID)
		if err != nil {
			return nil, err
		}
		if attempt == nil {
			return nil, util.ErrDuplicateConflict
		}
	}

	if attempt.IsCompleted {
		return nil, util.ErrAlreadyCompleted
	}

	if err := s.Attempts.Resume(ctx, attempt.ID, now); err != nil {
		return nil, err
	}
	attempt.Status = model.AttemptStarted
	attempt.LastAccessedAt = now
	transition(attempt.ID, model.AttemptStarted)

	view := viewOf(attempt)
	view.Resumed = true
	return view, nil
}

// GetStatus 没有作答记录时返回 (nil, nil)
func (s *AttemptService) GetStatus(ctx context.Context, studentID, examID uint) (*AttemptView, error) {
	attempt, err := s.Attempts.FindByStudentAndExam(ctx, studentID, examID)
	if err != nil || attempt == nil {
		return nil, err
	}

	now := s.Now()
	elapsed := int(now.Sub(attempt.StartedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := attempt.TimeRemainingSeconds - elapsed
	if remaining < 0 {
		remaining = 0
	}

	if remaining <= 0 && attempt.Status != model.AttemptCompleted {
		if attempt.Status != model.AttemptExpired || attempt.TimeRemainingSeconds != 0 {
			if err := s.Attempts.MarkExpired(ctx, attempt.ID); err != nil {
				return nil, err
			}
			transition(attempt.ID, model.AttemptExpired)
		}
		attempt.Status = model.AttemptExpired
		attempt.TimeRemainingSeconds = 0
		return viewOf(attempt), nil
	}

	view := viewOf(attempt)
	view.TimeRemainingSeconds = remaining
	return view, nil
}

func (s *AttemptService) ownedAttempt(ctx context.Context, attemptID, studentID uint) (*model.ExamAttempt, error) {
	attempt, err := s.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	// 不属于本人的记录按不存在处理
	if attempt.StudentID != studentID {
		return nil, util.ErrAttemptNotFound
	}
	return attempt, nil
}

// UpdateTime 客户端上报剩余时间，负数按 0 处理，归零即过期。
// 已完成的作答不再接受计时更新，原样返回。
func (s *AttemptService) UpdateTime(ctx context.Context, attemptID, studentID uint, remaining int) (*AttemptView, error) {
	attempt, err := s.ownedAttempt(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt.Finished() {
		return viewOf(attempt), nil
	}

	if remaining < 0 {
		remaining = 0
	}
	status := attempt.Status
	if remaining == 0 {
		status = model.AttemptExpired
	}

	now := s.Now()
	if err := s.Attempts.SaveTime(ctx, attempt.ID, remaining, status, now); err != nil {
		return nil, err
	}
	if status != attempt.Status {
		transition(attempt.ID, status)
	}
	attempt.TimeRemainingSeconds = remaining
	attempt.Status = status
	attempt.LastAccessedAt = now
	return viewOf(attempt), nil
}

// Pause 离开作答页面时暂停，仅对进行中的作答生效
func (s *AttemptService) Pause(ctx context.Context, attemptID, studentID uint) (*AttemptView, error) {
	attempt, err := s.ownedAttempt(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptStarted || attempt.Finished() {
		return viewOf(attempt), nil
	}

	now := s.Now()
	if err := s.Attempts.SaveTime(ctx, attempt.ID, attempt.TimeRemainingSeconds, model.AttemptPaused, now); err != nil {
		return nil, err
	}
	transition(attempt.ID, model.AttemptPaused)
	attempt.Status = model.AttemptPaused
	attempt.LastAccessedAt = now
	return viewOf(attempt), nil
}

// Complete 无条件完成，即使已经过期
func (s *AttemptService) Complete(ctx context.Context, attemptID, studentID uint) (*AttemptView, error) {
	attempt, err := s.ownedAttempt(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if err := s.Attempts.MarkCompleted(ctx, attempt.ID, now); err != nil {
		return nil, err
	}
	transition(attempt.ID, model.AttemptCompleted)
	logger.Log.Info("exam attempt completed",
		zap.Uint("attemptId", attempt.ID),
		zap.Uint("studentId", studentID),
		zap.String("previousStatus", string(attempt.Status)),
	)

	attempt.Status = model.AttemptCompleted
	attempt.IsCompleted = true
	attempt.LastAccessedAt = now
	return viewOf(attempt), nil
}
