package project

import "time"

// Project is a scientific-initiation listing owned by one professor.
// ProfessorName, Faculty and Department are snapshots taken from the owner at
// creation time and are not kept in sync afterwards.
type Project struct {
	ID                 string   `json:"id"`
	ProfessorID        string   `json:"professor_id"`
	ProfessorName      string   `json:"professor_name"`
	Faculty            string   `json:"faculty"`
	Department         string   `json:"department"`
	Title              string   `json:"title"`
	Area               string   `json:"area"`
	Theme              string   `json:"theme"`
	Duration           string   `json:"duration"`
	Description        string   `json:"description"`
	Keywords           []string `json:"keywords"`
	HasScholarship     bool     `json:"has_scholarship"`
	ScholarshipDetails string   `json:"scholarship_details,omitempty"`
	// Vacancies is the number of currently open seats. Never negative.
	Vacancies int `json:"vacancies"`
	// PostedVacancies is the originally posted seat count. Seat releases are
	// capped here so decline/cancel cycling cannot inflate Vacancies past it.
	PostedVacancies int       `json:"posted_vacancies"`
	PostedDate      time.Time `json:"posted_date"`
}
