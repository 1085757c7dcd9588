package service

import (
	"bytes"
	"context"
	"exam_hub_backend/internal/config"
	"exam_hub_backend/internal/model"
	"exam_hub_backend/internal/repository"
	"exam_hub_backend/internal/util"
	"io"
	"sort"
	"sync"
	"time"
)

// 内存实现，服务层测试不依赖数据库

type memExamStore struct {
	mu     sync.Mutex
	nextID uint
	exams  map[uint]*model.Exam
}

func newMemExamStore() *memExamStore {
	return &memExamStore{exams: map[uint]*model.Exam{}}
}

func (s *memExamStore) Create(ctx context.Context, exam *model.Exam) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	exam.ID = s.nextID
	cp := *exam
	s.exams[exam.ID] = &cp
	return nil
}

func (s *memExamStore) FindByID(ctx context.Context, id uint) (*model.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.exams[id]
	if !ok {
		return nil, util.ErrExamNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *memExamStore) FindByFileID(ctx context.Context, fileID string) (*model.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.exams {
		if e.FileID == fileID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, util.ErrExamNotFound
}

func (s *memExamStore) FindByFileURL(ctx context.Context, fileURL string) (*model.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.exams {
		if e.FileURL == fileURL {
			cp := *e
			return &cp, nil
		}
	}
	return nil, util.ErrExamNotFound
}

func (s *memExamStore) FindByIDs(ctx context.Context, ids []uint) (map[uint]*model.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uint]*model.Exam, len(ids))
	for _, id := range ids {
		if e, ok := s.exams[id]; ok {
			cp := *e
			out[id] = &cp
		}
	}
	return out, nil
}

func (s *memExamStore) List(ctx context.Context, scope repository.ExamScope) ([]model.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Exam
	for _, e := range s.exams {
		if scope.ActiveOnly && !e.IsActive {
			continue
		}
		if scope.CreatorID > 0 && e.CreatorID != scope.CreatorID {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memExamStore) SetActive(ctx context.Context, id uint, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.exams[id]; ok {
		e.IsActive = active
	}
	return nil
}

type memAttemptStore struct {
	mu       sync.Mutex
	nextID   uint
	attempts map[uint]*model.ExamAttempt
	// raceOnCreate 为 true 时 Create 先插入同一记录再返回冲突，模拟并发创建
	raceOnCreate bool
}

func newMemAttemptStore() *memAttemptStore {
	return &memAttemptStore{attempts: map[uint]*model.ExamAttempt{}}
}

func (s *memAttemptStore) insert(a *model.ExamAttempt) {
	s.nextID++
	a.ID = s.nextID
	cp := *a
	s.attempts[a.ID] = &cp
}

func (s *memAttemptStore) Create(ctx context.Context, a *model.ExamAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raceOnCreate {
		s.raceOnCreate = false
		other := *a
		s.insert(&other)
		return util.ErrDuplicateConflict
	}
	for _, existing := range s.attempts {
		if existing.StudentID == a.StudentID && existing.ExamID == a.ExamID {
			return util.ErrDuplicateConflict
		}
	}
	s.insert(a)
	return nil
}

func (s *memAttemptStore) FindByID(ctx context.Context, id uint) (*model.ExamAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[id]
	if !ok {
		return nil, util.ErrAttemptNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *memAttemptStore) FindByStudentAndExam(ctx context.Context, studentID, examID uint) (*model.ExamAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.attempts {
		if a.StudentID == studentID && a.ExamID == examID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memAttemptStore) with(id uint, fn func(a *model.ExamAttempt)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.attempts[id]; ok {
		fn(a)
	}
	return nil
}

func (s *memAttemptStore) Resume(ctx context.Context, id uint, now time.Time) error {
	return s.with(id, func(a *model.ExamAttempt) {
		a.Status = model.AttemptStarted
		a.LastAccessedAt = now
	})
}

func (s *memAttemptStore) SaveTime(ctx context.Context, id uint, remaining int, status model.AttemptStatus, now time.Time) error {
	return s.with(id, func(a *model.ExamAttempt) {
		a.TimeRemainingSeconds = remaining
		a.Status = status
		a.LastAccessedAt = now
	})
}

func (s *memAttemptStore) MarkExpired(ctx context.Context, id uint) error {
	return s.with(id, func(a *model.ExamAttempt) {
		if a.Status != model.AttemptCompleted {
			a.Status = model.AttemptExpired
			a.TimeRemainingSeconds = 0
		}
	})
}

func (s *memAttemptStore) MarkCompleted(ctx context.Context, id uint, now time.Time) error {
	return s.with(id, func(a *model.ExamAttempt) {
		a.Status = model.AttemptCompleted
		a.IsCompleted = true
		a.LastAccessedAt = now
	})
}

type memSubmissionStore struct {
	mu     sync.Mutex
	nextID uint
	subs   map[uint]*model.Submission
	exams  *memExamStore
	// skipLookup 让 FindByStudentAndExam 看不到已有记录，模拟检查与插入之间的竞争
	skipLookup bool
}

func newMemSubmissionStore(exams *memExamStore) *memSubmissionStore {
	return &memSubmissionStore{subs: map[uint]*model.Submission{}, exams: exams}
}

func (s *memSubmissionStore) Create(ctx context.Context, sub *model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.subs {
		if existing.StudentID == sub.StudentID && existing.ExamID == sub.ExamID {
			return util.ErrDuplicateSubmission
		}
	}
	s.nextID++
	sub.ID = s.nextID
	cp := *sub
	s.subs[sub.ID] = &cp
	return nil
}

func (s *memSubmissionStore) FindByID(ctx context.Context, id uint) (*model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[id]
	if !ok {
		return nil, util.ErrSubmissionNotFound
	}
	cp := *sub
	return &cp, nil
}

func (s *memSubmissionStore) FindByStudentAndExam(ctx context.Context, studentID, examID uint) (*model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.skipLookup {
		return nil, nil
	}
	for _, sub := range s.subs {
		if sub.StudentID == studentID && sub.ExamID == examID {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memSubmissionStore) List(ctx context.Context, scope repository.SubmissionScope) ([]model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Submission
	for _, sub := range s.subs {
		if scope.ExamID > 0 && sub.ExamID != scope.ExamID {
			continue
		}
		if scope.ExamCreatorID > 0 {
			e, err := s.exams.FindByID(ctx, sub.ExamID)
			if err != nil || e.CreatorID != scope.ExamCreatorID {
				continue
			}
		}
		out = append(out, *sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memBlob struct {
	data []byte
	info BlobInfo
}

type memBlobStore struct {
	mu      sync.Mutex
	blobs   map[string]memBlob
	gets    int
	deletes []string
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: map[string]memBlob{}}
}

func (s *memBlobStore) Put(ctx context.Context, reader io.Reader, size int64, info BlobInfo) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	key := model.GenerateUUID()
	s.mu.Lock()
	s.blobs[key] = memBlob{data: data, info: info}
	s.mu.Unlock()
	return key, nil
}

func (s *memBlobStore) Get(ctx context.Context, key string) (*Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	b, ok := s.blobs[key]
	if !ok {
		return nil, util.ErrFileNotFound
	}
	return &Blob{
		Key:          key,
		Body:         io.NopCloser(bytes.NewReader(b.data)),
		Size:         int64(len(b.data)),
		ContentType:  b.info.ContentType,
		OriginalName: b.info.OriginalName,
		Metadata:     b.info.Metadata,
	}, nil
}

func (s *memBlobStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, key)
	delete(s.blobs, key)
	return nil
}

func (s *memBlobStore) Ready(ctx context.Context) error { return nil }

func (s *memBlobStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func pdfUpload(name string) *UploadedFile {
	return &UploadedFile{Reader: bytes.NewReader(pdfBytes), Size: int64(len(pdfBytes)), Filename: name}
}

func testUploadPolicy() *UploadPolicy {
	return NewUploadPolicy(config.UploadConfig{
		ExamContentTypes:   []string{util.MimePDF},
		AnswerContentTypes: []string{util.MimePDF, "image/"},
		MaxSizeMB:          1,
	})
}
