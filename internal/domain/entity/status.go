package entity

type Status struct {
	ID          StatusID
	Account     Account
	Content     string
	Attachments []Media
}

func (s Status) Identity() StatusID { return s.ID }

func (s Status) Equal(other Status) bool { return s.ID == other.ID }

type Media struct {
	ID          MediaID
	Type        string
	URL         string
	Description string
}

func (m Media) Identity() MediaID { return m.ID }

func (m Media) Equal(other Media) bool { return m.ID == other.ID }

// Relationship describes how the logged-in user relates to Target.
type Relationship struct {
	Target     Username
	Following  bool
	FollowedBy bool
}
