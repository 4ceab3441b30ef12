package domain

import (
	"time"

	"github.com/google/uuid"
)

// Request payloads are the exact wire shapes sent to the backend. Enum fields
// are integers here; the entity action layer converts from display strings
// through the wire tables in enums.go before building a payload.

// CreateClientRequest creates a new client
type CreateClientRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Industry   string `json:"industry,omitempty" validate:"max=100"`
	ClientType int    `json:"clientType" validate:"required,gte=1,lte=4"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty" validate:"max=50"`
	Website    string `json:"website,omitempty" validate:"omitempty,url"`
}

// CreateContactRequest creates a new contact under a client
type CreateContactRequest struct {
	ClientID         uuid.UUID `json:"clientId" validate:"required"`
	FirstName        string    `json:"firstName" validate:"required,max=100"`
	LastName         string    `json:"lastName" validate:"required,max=100"`
	Email            string    `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone            string    `json:"phone,omitempty" validate:"max=50"`
	Title            string    `json:"title,omitempty" validate:"max=100"`
	IsPrimaryContact bool      `json:"isPrimaryContact"`
}

// CreateOpportunityRequest creates a new opportunity for a client
type CreateOpportunityRequest struct {
	ClientID          uuid.UUID  `json:"clientId" validate:"required"`
	ContactID         *uuid.UUID `json:"contactId,omitempty"`
	Name              string     `json:"name" validate:"required,max=200"`
	Description       string     `json:"description,omitempty"`
	Stage             int        `json:"stage" validate:"required,gte=1,lte=6"`
	EstimatedValue    float64    `json:"estimatedValue" validate:"gte=0"`
	Currency          string     `json:"currency" validate:"required,len=3"`
	Probability       int        `json:"probability" validate:"gte=0,lte=100"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate,omitempty"`
}

// ChangeStagePayload is the transition payload for PUT /opportunities/{id}/stage.
// A loss reason is mandatory when the target stage is Closed Lost (6); the
// rule is enforced as a struct-level refinement registered by the contract
// package, not as a separate code path.
type ChangeStagePayload struct {
	Stage      int     `json:"stage" validate:"required,gte=1,lte=6"`
	Notes      *string `json:"notes"`
	LossReason *string `json:"lossReason"`
}

// AssignPayload assigns an entity to a user
type AssignPayload struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
}

// LineItemInput is a proposal line item as supplied on create.
// LineTotal is computed server-side and never sent.
type LineItemInput struct {
	Description string  `json:"description" validate:"required,max=500"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
	Discount    float64 `json:"discount" validate:"gte=0,lte=100"`
	TaxRate     float64 `json:"taxRate" validate:"gte=0,lte=100"`
}

// CreateProposalRequest creates a new draft proposal for an opportunity
type CreateProposalRequest struct {
	OpportunityID uuid.UUID       `json:"opportunityId" validate:"required"`
	Title         string          `json:"title" validate:"required,max=200"`
	Currency      string          `json:"currency" validate:"required,len=3"`
	ValidUntil    *time.Time      `json:"validUntil,omitempty"`
	LineItems     []LineItemInput `json:"lineItems,omitempty" validate:"dive"`
}

// RejectProposalPayload carries the mandatory rejection reason
type RejectProposalPayload struct {
	Reason string `json:"reason" validate:"required"`
}

// CreatePricingRequestRequest creates a new pricing request
type CreatePricingRequestRequest struct {
	ClientID      *uuid.UUID `json:"clientId,omitempty"`
	OpportunityID *uuid.UUID `json:"opportunityId,omitempty"`
	Title         string     `json:"title" validate:"required,max=200"`
	Description   string     `json:"description,omitempty"`
	Priority      int        `json:"priority" validate:"required,gte=1,lte=4"`
	NeededBy      *time.Time `json:"neededBy,omitempty"`
}

// CreateContractRequest creates a contract from an approved proposal
type CreateContractRequest struct {
	ClientID      uuid.UUID  `json:"clientId" validate:"required"`
	OpportunityID *uuid.UUID `json:"opportunityId,omitempty"`
	ProposalID    *uuid.UUID `json:"proposalId,omitempty"`
	Title         string     `json:"title" validate:"required,max=200"`
	Value         float64    `json:"value" validate:"gte=0"`
	Currency      string     `json:"currency" validate:"required,len=3"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
}

// CreateRenewalPayload is the body for POST /contracts/{id}/renewals
type CreateRenewalPayload struct {
	RenewalOpportunityID *uuid.UUID `json:"renewalOpportunityId,omitempty"`
	Notes                string     `json:"notes,omitempty"`
}

// CreateActivityRequest schedules a new activity
type CreateActivityRequest struct {
	Subject       string     `json:"subject" validate:"required,max=200"`
	ActivityType  int        `json:"activityType" validate:"required,gte=1,lte=3"`
	RelatedToType int        `json:"relatedToType" validate:"required,gte=1,lte=5"`
	RelatedToID   uuid.UUID  `json:"relatedToId" validate:"required"`
	ScheduledAt   *time.Time `json:"scheduledAt,omitempty"`
	AssignedToID  *uuid.UUID `json:"assignedToId,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// CreateNoteRequest attaches a note to an entity
type CreateNoteRequest struct {
	RelatedToType int       `json:"relatedToType" validate:"required,gte=1,lte=5"`
	RelatedToID   uuid.UUID `json:"relatedToId" validate:"required"`
	Body          string    `json:"body" validate:"required"`
}
