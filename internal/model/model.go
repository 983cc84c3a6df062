package model

import "time"

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Company struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Domain   string    `json:"domain,omitempty"`
	Industry string    `json:"industry,omitempty"`
	Notes    string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ContactStatus string

const (
	ContactStatusLead     ContactStatus = "lead"
	ContactStatusActive   ContactStatus = "active"
	ContactStatusCustomer ContactStatus = "customer"
	ContactStatusChurned  ContactStatus = "churned"
)

type Contact struct {
	ID        string        `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Email     string        `json:"email,omitempty"`
	Phone     string        `json:"phone,omitempty"`
	CompanyID *string       `json:"companyId,omitempty"`
	Status    ContactStatus `json:"status"`
	OwnerID   string        `json:"ownerId,omitempty"`
	// Notes is free-form markdown shown in the detail view.
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c Contact) FullName() string {
	switch {
	case c.FirstName == "" && c.LastName == "":
		return "(unnamed)"
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type Pipeline struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Stage struct {
	ID         string `json:"id"`
	PipelineID string `json:"pipelineId"`
	Name       string `json:"name"`
	// Order is the 0-based position within the pipeline.
	Order int `json:"order"`
	// Probability is the win likelihood in percent used for weighted forecasts.
	Probability int `json:"probability"`
}

type DealStatus string

const (
	DealStatusOpen DealStatus = "open"
	DealStatusWon  DealStatus = "won"
	DealStatusLost DealStatus = "lost"
)

type Deal struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Amount     int64      `json:"amount"` // minor units (cents)
	Currency   string     `json:"currency,omitempty"`
	ContactID  string     `json:"contactId"`
	CompanyID  *string    `json:"companyId,omitempty"`
	PipelineID string     `json:"pipelineId"`
	StageID    string     `json:"stageId"`
	// CloseDate is the expected (or actual) close month, YYYY-MM.
	CloseDate string     `json:"closeDate,omitempty"`
	Status    DealStatus `json:"status"`
	OwnerID   string     `json:"ownerId,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type Task struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Notes     string  `json:"notes,omitempty"`
	ContactID *string `json:"contactId,omitempty"`
	DealID    *string `json:"dealId,omitempty"`
	// DueDate is date-only, YYYY-MM-DD.
	DueDate   string    `json:"dueDate,omitempty"`
	Done      bool      `json:"done"`
	OwnerID   string    `json:"ownerId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ActivityKind string

const (
	ActivityCall    ActivityKind = "call"
	ActivityEmail   ActivityKind = "email"
	ActivityMeeting ActivityKind = "meeting"
	ActivityNote    ActivityKind = "note"
)

type Activity struct {
	ID        string       `json:"id"`
	Kind      ActivityKind `json:"kind"`
	Summary   string       `json:"summary"`
	// Body is free-form markdown.
	Body       string    `json:"body,omitempty"`
	ContactID  *string   `json:"contactId,omitempty"`
	DealID     *string   `json:"dealId,omitempty"`
	UserID     string    `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
}
