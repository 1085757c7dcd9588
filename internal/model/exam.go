package model

const (
	ExamTitleMaxLen    = 100
	ExamMinDurationMin = 1
	ExamMaxDurationMin = 300
)

// swagger:model Exam
type Exam struct {
	BaseModel
	Title           string `gorm:"size:100;not null" json:"title"`
	FileID          string `gorm:"size:64;index" json:"fileId,omitempty"`
	FileURL         string `gorm:"size:1024" json:"fileUrl,omitempty"` // 迁移前的外部地址
	ContentType     string `gorm:"size:100" json:"contentType,omitempty"`
	OriginalName    string `gorm:"size:255" json:"originalName,omitempty"`
	DurationMinutes int    `gorm:"not null" json:"durationMinutes"`
	CreatorID       uint   `gorm:"index;not null" json:"creatorId"`
	IsActive        bool   `gorm:"not null" json:"isActive"`
}

func (Exam) TableName() string {
	return "exams"
}

// FileRef 读取时确定文件引用类型：新数据优先 FileID，老数据只有 FileURL
func (e *Exam) FileRef() FileRef {
	if e.FileID != "" {
		return ParseFileRef(e.FileID)
	}
	return ParseFileRef(e.FileURL)
}

// LegacyURL 返回已填充的历史外部地址
func (e *Exam) LegacyURL() (string, bool) {
	if e.FileURL == "" {
		return "", false
	}
	ref := ParseFileRef(e.FileURL)
	if !ref.IsExternal() {
		return "", false
	}
	return ref.Value, true
}

func (e *Exam) DurationSeconds() int {
	return e.DurationMinutes * 60
}
