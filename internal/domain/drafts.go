package domain

import (
	"time"

	"github.com/google/uuid"
)

// Drafts are the display-form inputs accepted from callers. Enum fields are
// their string types here; the mapper package converts a draft into the wire
// request shape (integers) right before the call is made, so the two enum
// representations never mix outside the API boundary.

// ClientDraft is the display-form input for creating a client
type ClientDraft struct {
	Name       string
	Industry   string
	ClientType ClientType
	Email      string
	Phone      string
	Website    string
}

// ContactDraft is the display-form input for creating a contact
type ContactDraft struct {
	ClientID         uuid.UUID
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Title            string
	IsPrimaryContact bool
}

// OpportunityDraft is the display-form input for creating an opportunity
type OpportunityDraft struct {
	ClientID          uuid.UUID
	ContactID         *uuid.UUID
	Name              string
	Description       string
	Stage             OpportunityStage
	EstimatedValue    float64
	Currency          string
	Probability       int
	ExpectedCloseDate *time.Time
}

// ProposalDraft is the display-form input for creating a proposal
type ProposalDraft struct {
	OpportunityID uuid.UUID
	Title         string
	Currency      string
	ValidUntil    *time.Time
	LineItems     []LineItemInput
}

// PricingRequestDraft is the display-form input for creating a pricing request
type PricingRequestDraft struct {
	ClientID      *uuid.UUID
	OpportunityID *uuid.UUID
	Title         string
	Description   string
	Priority      PricingPriority
	NeededBy      *time.Time
}

// ContractDraft is the display-form input for creating a contract
type ContractDraft struct {
	ClientID      uuid.UUID
	OpportunityID *uuid.UUID
	ProposalID    *uuid.UUID
	Title         string
	Value         float64
	Currency      string
	StartDate     *time.Time
	EndDate       *time.Time
}

// ActivityDraft is the display-form input for scheduling an activity
type ActivityDraft struct {
	Subject       string
	ActivityType  ActivityType
	RelatedToType RelatedEntityType
	RelatedToID   uuid.UUID
	ScheduledAt   *time.Time
	AssignedToID  *uuid.UUID
	Notes         string
}

// NoteDraft is the display-form input for attaching a note
type NoteDraft struct {
	RelatedToType RelatedEntityType
	RelatedToID   uuid.UUID
	Body          string
}
