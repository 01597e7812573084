package resume

import "time"

type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type Content struct {
	PersonalInfo   PersonalInfo `json:"personalInfo"`
	Objective      string       `json:"objective"`
	Education      []string     `json:"education"`
	Experience     []string     `json:"experience"`
	Skills         []string     `json:"skills"`
	Certifications []string     `json:"certifications"`
	Projects       []string     `json:"projects"`
	Awards         []string     `json:"awards"`
}

type Resume struct {
	ID                     int64     `json:"id"`
	UserID                 int64     `json:"userId"`
	Title                  string    `json:"title"`
	Content                Content   `json:"content"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
	Score                  int       `json:"score"`
	ImprovementSuggestions []string  `json:"improvementSuggestions"`
}
