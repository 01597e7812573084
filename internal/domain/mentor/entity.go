package mentor

type Mentor struct {
	ID             int64               `json:"id"`
	UserID         int64               `json:"userId"`
	Company        string              `json:"company"`
	Position       string              `json:"position"`
	Specialization []string            `json:"specialization"`
	Availability   map[string][]string `json:"availability"`
	Verified       bool                `json:"verified"`
}
