package service

import (
	"exam_hub_backend/internal/model"
	"exam_hub_backend/internal/repository"
)

// 访问策略：纯函数，不持有状态

// ExamScopeFor 将可见性规则转换为查询范围，未知身份返回 false
// 学生只看启用的试卷，教师只看自己创建的（不论是否启用），管理员看全部
func ExamScopeFor(p model.Principal) (repository.ExamScope, bool) {
	switch v := p.(type) {
	case model.StudentPrincipal:
		return repository.ExamScope{ActiveOnly: true}, true
	case model.TeacherPrincipal:
		return repository.ExamScope{CreatorID: v.ID}, true
	case model.AdminPrincipal:
		return repository.ExamScope{}, true
	}
	return repository.ExamScope{}, false
}

func CanViewExam(p model.Principal, exam *model.Exam) bool {
	switch v := p.(type) {
	case model.StudentPrincipal:
		return exam.IsActive
	case model.TeacherPrincipal:
		return exam.CreatorID == v.ID
	case model.AdminPrincipal:
		return true
	}
	return false
}

// CanToggleExam 只有创建者可以启用/取消试卷
func CanToggleExam(p model.Principal, exam *model.Exam) bool {
	return p != nil && exam.CreatorID == p.UserID() && p.Role() == model.Teacher
}

func FilterExams(p model.Principal, exams []model.Exam) []model.Exam {
	visible := make([]model.Exam, 0, len(exams))
	for i := range exams {
		if CanViewExam(p, &exams[i]) {
			visible = append(visible, exams[i])
		}
	}
	return visible
}

// SubmissionScopeFor 学生没有全量列表，返回 false
func SubmissionScopeFor(p model.Principal) (repository.SubmissionScope, bool) {
	switch v := p.(type) {
	case model.AdminPrincipal:
		return repository.SubmissionScope{}, true
	case model.TeacherPrincipal:
		return repository.SubmissionScope{ExamCreatorID: v.ID}, true
	}
	return repository.SubmissionScope{}, false
}

// CanViewSubmission 管理员、试卷创建者、提交者本人可见
func CanViewSubmission(p model.Principal, sub *model.Submission, exam *model.Exam) bool {
	switch v := p.(type) {
	case model.AdminPrincipal:
		return true
	case model.TeacherPrincipal:
		return exam != nil && exam.ID == sub.ExamID && exam.CreatorID == v.ID
	case model.StudentPrincipal:
		return sub.StudentID == v.ID
	}
	return false
}

// FilterSubmissions examLookup 用于查找提交所属试卷
func FilterSubmissions(p model.Principal, subs []model.Submission, examLookup func(examID uint) *model.Exam) []model.Submission {
	if _, ok := p.(model.StudentPrincipal); ok {
		return []model.Submission{}
	}
	visible := make([]model.Submission, 0, len(subs))
	for i := range subs {
		if CanViewSubmission(p, &subs[i], examLookup(subs[i].ExamID)) {
			visible = append(visible, subs[i])
		}
	}
	return visible
}
