package model

import "time"

type AttemptStatus string

const (
	AttemptStarted   AttemptStatus = "started"
	AttemptPaused    AttemptStatus = "paused"
	AttemptCompleted AttemptStatus = "completed"
	AttemptExpired   AttemptStatus = "expired"
)

// swagger:model ExamAttempt
type ExamAttempt struct {
	BaseModel
	StudentID            uint          `gorm:"uniqueIndex:idx_attempt_student_exam;not null" json:"studentId"`
	ExamID               uint          `gorm:"uniqueIndex:idx_attempt_student_exam;index;not null" json:"examId"`
	StartedAt            time.Time     `json:"startedAt"`
	LastAccessedAt       time.Time     `json:"lastAccessedAt"`
	TimeRemainingSeconds int           `gorm:"not null;default:0" json:"timeRemainingSeconds"`
	Status               AttemptStatus `gorm:"size:20;not null;default:'started'" json:"status"`
	IsCompleted          bool          `gorm:"default:false" json:"isCompleted"`
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}

// Finished 完成后计时不再变化
func (a *ExamAttempt) Finished() bool {
	return a.IsCompleted || a.Status == AttemptCompleted
}
