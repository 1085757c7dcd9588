package model

import "time"

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
	SubmissionLate      SubmissionStatus = "late"
)

// swagger:model Submission
type Submission struct {
	BaseModel
	StudentID    uint             `gorm:"uniqueIndex:idx_submission_student_exam;not null" json:"studentId"`
	ExamID       uint             `gorm:"uniqueIndex:idx_submission_student_exam;index;not null" json:"examId"`
	AnswerRef    string           `gorm:"size:1024;not null" json:"answerRef"`
	ContentType  string           `gorm:"size:100" json:"contentType,omitempty"`
	OriginalName string           `gorm:"size:255" json:"originalName,omitempty"`
	SubmittedAt  time.Time        `json:"submittedAt"`
	Status       SubmissionStatus `gorm:"size:20;not null;default:'submitted'" json:"status"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) AnswerFileRef() FileRef {
	return ParseFileRef(s.AnswerRef)
}
