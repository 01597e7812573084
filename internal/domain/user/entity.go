package user

import "time"

type Type string

const (
	TypeStudent Type = "student"
	TypeMentor  Type = "mentor"
	TypeAdmin   Type = "admin"
)

func (t Type) Valid() bool {
	switch t {
	case TypeStudent, TypeMentor, TypeAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	UserType     Type      `json:"userType"`
	Phone        string    `json:"phone,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Profile struct {
	ID                   int64    `json:"id"`
	UserID               int64    `json:"userId"`
	Education            []string `json:"education"`
	Skills               []string `json:"skills"`
	CareerGoals          []string `json:"careerGoals"`
	Achievements         []string `json:"achievements"`
	Experience           []string `json:"experience"`
	CompletionPercentage int      `json:"completionPercentage"`
}

// Completion is the share of filled profile sections, in steps of 20.
func (p Profile) Completion() int {
	sections := [][]string{p.Education, p.Skills, p.CareerGoals, p.Achievements, p.Experience}
	filled := 0
	for _, s := range sections {
		if len(s) > 0 {
			filled++
		}
	}
	return filled * 100 / len(sections)
}
