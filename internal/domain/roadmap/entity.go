package roadmap

type MilestoneStatus string

const (
	StatusCompleted  MilestoneStatus = "completed"
	StatusInProgress MilestoneStatus = "in-progress"
	StatusPending    MilestoneStatus = "pending"
	StatusLocked     MilestoneStatus = "locked"
)

func (s MilestoneStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusInProgress, StatusPending, StatusLocked:
		return true
	}
	return false
}

type Milestone struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      MilestoneStatus `json:"status"`
}

type Roadmap struct {
	ID               int64       `json:"id"`
	UserID           int64       `json:"userId"`
	Milestones       []Milestone `json:"milestones"`
	CurrentMilestone int64       `json:"currentMilestone"`
}
