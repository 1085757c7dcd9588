package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// Principal 已认证的请求方，认证时解析一次，下游按具体类型分支
type Principal interface {
	UserID() uint
	Role() UserRole
	principal()
}

type StudentPrincipal struct{ ID uint }

type TeacherPrincipal struct{ ID uint }

type AdminPrincipal struct{ ID uint }

func (p StudentPrincipal) UserID() uint   { return p.ID }
func (p StudentPrincipal) Role() UserRole { return Student }
func (StudentPrincipal) principal()       {}

func (p TeacherPrincipal) UserID() uint   { return p.ID }
func (p TeacherPrincipal) Role() UserRole { return Teacher }
func (TeacherPrincipal) principal()       {}

func (p AdminPrincipal) UserID() uint   { return p.ID }
func (p AdminPrincipal) Role() UserRole { return Admin }
func (AdminPrincipal) principal()       {}

// NewPrincipal 根据角色字符串构造 Principal，未知角色返回 false
func NewPrincipal(id uint, role UserRole) (Principal, bool) {
	switch role {
	case Student:
		return StudentPrincipal{ID: id}, true
	case Teacher:
		return TeacherPrincipal{ID: id}, true
	case Admin:
		return AdminPrincipal{ID: id}, true
	}
	return nil, false
}
