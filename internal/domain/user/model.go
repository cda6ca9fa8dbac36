package user

import "time"

// Role determines which capability set a user holds. Immutable after creation.
type Role string

const (
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
)

// Valid reports whether the role is one of the known role tags.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleProfessor
}

// User is the base identity shared by both roles. Exactly one of Student or
// Professor is populated, selected by Role.
type User struct {
	ID        string            `json:"id"`
	NUSP      string            `json:"nusp"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      Role              `json:"role"`
	Student   *StudentProfile   `json:"student,omitempty"`
	Professor *ProfessorProfile `json:"professor,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// StudentProfile holds the student-specific payload.
type StudentProfile struct {
	Course      string `json:"course"`
	IdealPeriod int    `json:"ideal_period"`
	// ResumeFileName is set when a résumé is on file. The binary content is
	// fetched separately.
	ResumeFileName string `json:"resume_file_name,omitempty"`
}

// ProfessorProfile holds the professor-specific payload.
type ProfessorProfile struct {
	Faculty    string `json:"faculty"`
	Department string `json:"department"`
}

// Resume is a student's uploaded résumé. A student holds at most one;
// uploading a new one replaces it.
type Resume struct {
	FileName string `json:"file_name"`
	Content  []byte `json:"content"`
}
