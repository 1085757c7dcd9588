package service

import (
	"context"
	"exam_hub_backend/internal/model"
	"exam_hub_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attemptFixture struct {
	exams       *memExamStore
	attempts    *memAttemptStore
	submissions *memSubmissionStore
	clock       *fixedClock
	svc         *AttemptService
	exam        *model.Exam
}

func newAttemptFixture(t *testing.T) *attemptFixture {
	t.Helper()
	exams := newMemExamStore()
	attempts := newMemAttemptStore()
	subs := newMemSubmissionStore(exams)
	clock := &fixedClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}

	svc := NewAttemptService(exams, attempts, subs)
	svc.Now = clock.Now

	exam := &model.Exam{Title: "Physics", FileID: model.GenerateUUID(), DurationMinutes: 60, CreatorID: 10, IsActive: true}
	require.NoError(t, exams.Create(context.Background(), exam))

	return &attemptFixture{exams: exams, attempts: attempts, submissions: subs, clock: clock, svc: svc, exam: exam}
}

func TestStartCreatesAttempt(t *testing.T) {
	f := newAttemptFixture(t)
	ctx := context.Background()

	view, err := f.svc.Start(ctx, 1, f.exam.ID)
	require.NoError(t, err)
	assert.Equal(t, 3600, view.TimeRemainingSeconds)
	assert.Equal(t, model.AttemptStarted, view.Status)
	assert.False(t, view.Resumed)
	assert.Equal(t, f.clock.now, view.StartedAt)
}

func TestStartUnknownExam(t *testing.T) {
	f := newAttemptFixture(t)

	_, err := f.svc.Start(context.Background(), 1, 999)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestStartResumesWithoutResettingTime(t *testing.T) {
	f := newAttemptFixture(t)
	ctx := context.Background()

	first, err := f.svc.Start(ctx, 1, f.exam.ID)
	require.NoError(t, err)

	f.clock.Advance(10 * time.Minute)
	_, err = f.svc.UpdateTime(ctx, first.AttemptID, 1, 3000)
	require.NoError(t, err)
	_, err = f.svc.Pause(ctx, first.AttemptID, 1)
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	again, err := f.svc.Start(ctx, 1, f.exam.ID)
	require.NoError(t, err)
	assert.True(t, again.Resumed)
	assert.Equal(t, first.AttemptID, again.AttemptID)
	assert.Equal(t, 3000, again.TimeRemainingSeconds)
	assert.Equal(t, model.AttemptStarted, again.Status)
	assert.Equal(t, f.clock.now, again.LastAccessedAt)
}

func TestStartFromExpiredKeepsZeroTime(t *testing.T) {
	f := newAttemptFixture(t)
	ctx := context.Background()

	view, err := f.svc.Start(ctx, 1, f.exam.ID)
	require.NoError(t, err)
	_, err = f.svc.UpdateTime(ctx, view.AttemptID, 1, 0)
	require.NoError(t, err)

	again, err := f.svc.Start(ctx, 1, f.exam.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStarted, again.Status)
	assert.Equal(t, 0, again.TimeRemainingSeconds)
}

func TestStartRaceResumesExistingRow(t *testing.T) {
	f := newAttemptFixture(t)
	f.attempts.raceOnCreate = true

	view, err := f.svc.Start(context.Background(), 1, f.exam.ID)
	require.NoError(t, err)
	assert.True(t, view.Resumed)
	assert.Len(t, f.attempts.attempts, 1)
}

func TestStartRejectedAfterSubmission(t *testing.T) {
	f := newAttemptFixture(t)
	ctx := context.Background()
	require.NoError(t, f.submissions.Create(ctx, &model.Submission{StudentID: 1, ExamID: f.exam.ID, AnswerRef: "https://example.com/a.pdf"}))

	_, err := f.svc.Start(ctx, 1, f.exam.ID)
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)
	assert.Empty(t, f.attempts.attempts)
}

func TestStartRejectedAfterCompletion(t *testing.T) {
	f := newAttemptFixture(t)
	ctx := context.Background()

	view, err := f.svc.Start(ctx, 1, f.exam.ID)
	require.NoError(t, err)
	_, err = f.svc.Complete(ctx, view.AttemptID, 1)
	require.NoError(t, err)

	_, err = f.svc.Start(ctx, 1, f.exam.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyCompleted)
}

func TestGetStatusWithoutAttempt(t *testing.T) {
	f := newAttemptFixture(t)

	view, err := f.svc.GetStatus(context.Background(), 1, f.exam.ID)
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestGetStatusComputesLiveRemaining(t *testing.T) {
	f := newAttemptFixture(t)
	ctx := context.Background()

	started, err := f.svc.Start(ctx, 1, f.exam.ID)
	require.NoError(t, err)

	f.clock.Advance(100 * time.Second)
	view, err := f.svc.GetStatus(ctx, 1, f.exam.ID)
	require.NoError(t, err)
	assert.Equal(t, 3500, view.TimeRemainingSeconds)
	assert.Equal(t, model.AttemptStarted, view.Status)

	// 读取不改写检查点
	stored, err := f.attempts.FindByID(ctx, started.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, 3600, stored.TimeRemainingSeconds)
}

func TestGetStatusExpiresAndPersists(t *testing.T) {
	f := newAttemptFixture(t)
	ctx := context.Background()

	started, err := f.svc.Start(ctx, 1, f.exam.ID)
	require.NoError(t, err)

	f.clock.Advance(3700 * time.Second)
	view, err := f.svc.GetStatus(ctx, 1, f.exam.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptExpired, view.Status)
	assert.Equal(t, 0, view.TimeRemainingSeconds)

	stored, err := f.attempts.FindByID(ctx, started.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptExpired, stored.Status)
	assert.Equal(t, 0, stored.TimeRemainingSeconds)
}

func TestGetStatusKeepsCompleted(t *testing.T) {
	f := newAttemptFixture(t)
	ctx := context.Background()

	started, err := f.svc.Start(ctx, 1, f.exam.ID)
	require.NoError(t, err)
	_, err = f.svc.Complete(ctx, started.AttemptID, 1)
	require.NoError(t, err)

	f.clock.Advance(2 * time.Hour)
	view, err := f.svc.GetStatus(ctx, 1, f.exam.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, view.Status)
	assert.True(t, view.IsCompleted)
	assert.Equal(t, 0, view.TimeRemainingSeconds)
}

func TestRemainingTimeNeverIncreasesWithoutUpdate(t *testing.T) {
	f := newAttemptFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, 1, f.exam.ID)
	require.NoError(t, err)

	last := 3600
	for i := 0; i < 10; i++ {
		f.clock.Advance(7 * time.Minute)
		view, err := f.svc.GetStatus(ctx, 1, f.exam.ID)
		require.NoError(t, err)
		assert.LessOrEqual(t, view.TimeRemainingSeconds, last)
		last = view.TimeRemainingSeconds
	}
	assert.Equal(t, 0, last)
}

func TestUpdateTimeClampsAndExpires(t *testing.T) {
	f := newAttemptFixture(t)
	ctx := context.Background()

	started, err := f.svc.Start(ctx, 1, f.exam.ID)
	require.NoError(t, err)

	view, err := f.svc.UpdateTime(ctx, started.AttemptID, 1, 1200)
	require.NoError(t, err)
	assert.Equal(t, 1200, view.TimeRemainingSeconds)
	assert.Equal(t, model.AttemptStarted, view.Status)

	view, err = f.svc.UpdateTime(ctx, started.AttemptID, 1, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, view.TimeRemainingSeconds)
	assert.Equal(t, model.AttemptExpired, view.Status)
}

func TestUpdateTimeOtherStudentIsNotFound(t *testing.T) {
	f := newAttemptFixture(t)
	ctx := context.Background()

	started, err := f.svc.Start(ctx, 1, f.exam.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateTime(ctx, started.AttemptID, 2, 100)
	assert.ErrorIs(t, err, util.ErrNotFound)
	_, err = f.svc.Complete(ctx, started.AttemptID, 2)
	assert.ErrorIs(t, err, util.ErrNotFound)
	_, err = f.svc.UpdateTime(ctx, 12345, 1, 100)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestUpdateTimeIgnoredAfterCompletion(t *testing.T) {
	f := newAttemptFixture(t)
	ctx := context.Background()

	started, err := f.svc.Start(ctx, 1, f.exam.ID)
	require.NoError(t, err)
	_, err = f.svc.Complete(ctx, started.AttemptID, 1)
	require.NoError(t, err)

	view, err := f.svc.UpdateTime(ctx, started.AttemptID, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, view.Status)
}

func TestCompleteAfterExpiry(t *testing.T) {
	f := newAttemptFixture(t)
	ctx := context.Background()

	started, err := f.svc.Start(ctx, 1, f.exam.ID)
	require.NoError(t, err)
	f.clock.Advance(2 * time.Hour)
	_, err = f.svc.GetStatus(ctx, 1, f.exam.ID)
	require.NoError(t, err)

	view, err := f.svc.Complete(ctx, started.AttemptID, 1)
	require.NoError(t, err)
	assert.True(t, view.IsCompleted)
	assert.Equal(t, model.AttemptCompleted, view.Status)
}

func TestPauseOnlyFromStarted(t *testing.T) {
	f := newAttemptFixture(t)
	ctx := context.Background()

	started, err := f.svc.Start(ctx, 1, f.exam.ID)
	require.NoError(t, err)

	view, err := f.svc.Pause(ctx, started.AttemptID, 1)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptPaused, view.Status)
	assert.Equal(t, 3600, view.TimeRemainingSeconds)

	_, err = f.svc.Complete(ctx, started.AttemptID, 1)
	require.NoError(t, err)
	view, err = f.svc.Pause(ctx, started.AttemptID, 1)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, view.Status)
}
