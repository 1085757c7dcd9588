package service

import (
	"exam_hub_backend/internal/model"
	"exam_hub_backend/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleExams() []model.Exam {
	exams := []model.Exam{
		{Title: "a", CreatorID: 1, IsActive: true},
		{Title: "b", CreatorID: 1, IsActive: false},
		{Title: "c", CreatorID: 2, IsActive: true},
		{Title: "d", CreatorID: 2, IsActive: false},
	}
	for i := range exams {
		exams[i].ID = uint(i + 1)
	}
	return exams
}

func titles(exams []model.Exam) []string {
	out := make([]string, 0, len(exams))
	for _, e := range exams {
		out = append(out, e.Title)
	}
	return out
}

func TestFilterExams(t *testing.T) {
	exams := sampleExams()

	assert.Equal(t, []string{"a", "c"}, titles(FilterExams(model.StudentPrincipal{ID: 7}, exams)))
	assert.Equal(t, []string{"a", "b"}, titles(FilterExams(model.TeacherPrincipal{ID: 1}, exams)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, titles(FilterExams(model.AdminPrincipal{ID: 9}, exams)))
	assert.Empty(t, FilterExams(nil, exams))
}

func TestExamScopeFor(t *testing.T) {
	scope, ok := ExamScopeFor(model.StudentPrincipal{ID: 7})
	assert.True(t, ok)
	assert.Equal(t, repository.ExamScope{ActiveOnly: true}, scope)

	scope, ok = ExamScopeFor(model.TeacherPrincipal{ID: 3})
	assert.True(t, ok)
	assert.Equal(t, repository.ExamScope{CreatorID: 3}, scope)

	_, ok = ExamScopeFor(nil)
	assert.False(t, ok)
}

func TestCanToggleExam(t *testing.T) {
	exam := &model.Exam{CreatorID: 1}

	assert.True(t, CanToggleExam(model.TeacherPrincipal{ID: 1}, exam))
	assert.False(t, CanToggleExam(model.TeacherPrincipal{ID: 2}, exam))
	assert.False(t, CanToggleExam(model.AdminPrincipal{ID: 1}, exam))
	assert.False(t, CanToggleExam(model.StudentPrincipal{ID: 1}, exam))
}

func TestFilterSubmissions(t *testing.T) {
	exams := map[uint]*model.Exam{
		1: {CreatorID: 10},
		2: {CreatorID: 20},
	}
	exams[1].ID = 1
	exams[2].ID = 2
	lookup := func(id uint) *model.Exam { return exams[id] }

	subs := []model.Submission{
		{StudentID: 1, ExamID: 1},
		{StudentID: 2, ExamID: 1},
		{StudentID: 1, ExamID: 2},
		{StudentID: 3, ExamID: 3},
	}

	assert.Len(t, FilterSubmissions(model.AdminPrincipal{ID: 1}, subs, lookup), 4)
	assert.Len(t, FilterSubmissions(model.TeacherPrincipal{ID: 10}, subs, lookup), 2)
	assert.Len(t, FilterSubmissions(model.TeacherPrincipal{ID: 20}, subs, lookup), 1)
	assert.Empty(t, FilterSubmissions(model.StudentPrincipal{ID: 1}, subs, lookup))
}
