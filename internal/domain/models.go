package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents a role string carried by the auth session.
// Roles are supplied by the external identity collaborator as a flat list.
type UserRole string

const (
	RoleAdmin        UserRole = "Admin"
	RoleSalesManager UserRole = "SalesManager"
	RoleSalesRep     UserRole = "SalesRep"
	RoleViewer       UserRole = "Viewer"
)

// IsManagerClass reports whether the role is authorized for approval,
// rejection and assignment actions.
func (r UserRole) IsManagerClass() bool {
	return r == RoleAdmin || r == RoleSalesManager
}

// IsValid reports whether the role is one this application knows about
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSalesManager, RoleSalesRep, RoleViewer:
		return true
	}
	return false
}

// Client represents an organization in the CRM.
// Contact/opportunity/contract counts are derived by the backend and read-only.
type Client struct {
	ID               uuid.UUID  `json:"id" validate:"required"`
	Name             string     `json:"name" validate:"required,max=200"`
	Industry         string     `json:"industry,omitempty" validate:"max=100"`
	ClientType       ClientType `json:"clientType" validate:"required,enum"`
	Email            string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone            string     `json:"phone,omitempty" validate:"max=50"`
	Website          string     `json:"website,omitempty" validate:"omitempty,url"`
	ContactCount     int        `json:"contactCount"`
	OpportunityCount int        `json:"opportunityCount"`
	ContractCount    int        `json:"contractCount"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Contact represents an individual person belonging to exactly one client.
// At most one contact per client carries IsPrimaryContact; the backend
// enforces this and the value is consumed as given.
type Contact struct {
	ID               uuid.UUID `json:"id" validate:"required"`
	ClientID         uuid.UUID `json:"clientId" validate:"required"`
	FirstName        string    `json:"firstName" validate:"required,max=100"`
	LastName         string    `json:"lastName" validate:"required,max=100"`
	Email            string    `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone            string    `json:"phone,omitempty" validate:"max=50"`
	Title            string    `json:"title,omitempty" validate:"max=100"`
	IsPrimaryContact bool      `json:"isPrimaryContact"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FullName returns the contact's full name
func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Opportunity represents a sales deal in the pipeline
type Opportunity struct {
	ID                uuid.UUID        `json:"id" validate:"required"`
	ClientID          uuid.UUID        `json:"clientId" validate:"required"`
	ContactID         *uuid.UUID       `json:"contactId,omitempty"`
	Name              string           `json:"name" validate:"required,max=200"`
	Description       string           `json:"description,omitempty"`
	Stage             OpportunityStage `json:"stage" validate:"required,enum"`
	EstimatedValue    float64          `json:"estimatedValue" validate:"gte=0"`
	Currency          string           `json:"currency" validate:"required,len=3"`
	Probability       int              `json:"probability" validate:"gte=0,lte=100"`
	ExpectedCloseDate *time.Time       `json:"expectedCloseDate,omitempty"`
	OwnerID           *uuid.UUID       `json:"ownerId,omitempty"`
	LossReason        string           `json:"lossReason,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// IsClosed reports whether the opportunity has reached a terminal stage
func (o *Opportunity) IsClosed() bool {
	return o.Stage == StageClosedWon || o.Stage == StageClosedLost
}

// StageHistoryEntry is the append-only audit record of a stage transition
type StageHistoryEntry struct {
	ID            uuid.UUID         `json:"id" validate:"required"`
	OpportunityID uuid.UUID         `json:"opportunityId" validate:"required"`
	FromStage     *OpportunityStage `json:"fromStage,omitempty" validate:"omitempty,enum"`
	ToStage       OpportunityStage  `json:"toStage" validate:"required,enum"`
	Notes         string            `json:"notes,omitempty"`
	LossReason    string            `json:"lossReason,omitempty"`
	ChangedByName string            `json:"changedByName,omitempty"`
	ChangedAt     time.Time         `json:"changedAt"`
}

// Proposal represents a priced offer for one opportunity
type Proposal struct {
	ID              uuid.UUID      `json:"id" validate:"required"`
	OpportunityID   uuid.UUID      `json:"opportunityId" validate:"required"`
	ClientID        uuid.UUID      `json:"clientId" validate:"required"`
	Title           string         `json:"title" validate:"required,max=200"`
	Status          ProposalStatus `json:"status" validate:"required,enum"`
	TotalAmount     float64        `json:"totalAmount" validate:"gte=0"`
	Currency        string         `json:"currency" validate:"required,len=3"`
	ValidUntil      *time.Time     `json:"validUntil,omitempty"`
	SubmittedAt     *time.Time     `json:"submittedAt,omitempty"`
	DecidedAt       *time.Time     `json:"decidedAt,omitempty"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
	LineItems       []LineItem     `json:"lineItems,omitempty" validate:"dive"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// IsTerminal reports whether the proposal reached a final status
func (p *Proposal) IsTerminal() bool {
	return p.Status == ProposalStatusApproved || p.Status == ProposalStatusRejected
}

// LineItem is a child line of a proposal. LineTotal is computed by the backend.
type LineItem struct {
	ID          uuid.UUID `json:"id" validate:"required"`
	ProposalID  uuid.UUID `json:"proposalId" validate:"required"`
	Description string    `json:"description" validate:"required,max=500"`
	Quantity    float64   `json:"quantity" validate:"gt=0"`
	UnitPrice   float64   `json:"unitPrice" validate:"gte=0"`
	Discount    float64   `json:"discount" validate:"gte=0,lte=100"`
	TaxRate     float64   `json:"taxRate" validate:"gte=0,lte=100"`
	LineTotal   float64   `json:"lineTotal"`
}

// PricingRequest represents a pricing work item, optionally linked to a
// client and/or opportunity and assignable to a user
type PricingRequest struct {
	ID            uuid.UUID       `json:"id" validate:"required"`
	ClientID      *uuid.UUID      `json:"clientId,omitempty"`
	OpportunityID *uuid.UUID      `json:"opportunityId,omitempty"`
	Title         string          `json:"title" validate:"required,max=200"`
	Description   string          `json:"description,omitempty"`
	Priority      PricingPriority `json:"priority" validate:"required,enum"`
	Status        PricingStatus   `json:"status" validate:"required,enum"`
	AssignedToID  *uuid.UUID      `json:"assignedToId,omitempty"`
	NeededBy      *time.Time      `json:"neededBy,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Contract represents a signed agreement with a client.
// IsExpiringSoon and DaysUntilExpiry are derived by the backend.
type Contract struct {
	ID              uuid.UUID      `json:"id" validate:"required"`
	ClientID        uuid.UUID      `json:"clientId" validate:"required"`
	OpportunityID   *uuid.UUID     `json:"opportunityId,omitempty"`
	ProposalID      *uuid.UUID     `json:"proposalId,omitempty"`
	Title           string         `json:"title" validate:"required,max=200"`
	Status          ContractStatus `json:"status" validate:"required,enum"`
	Value           float64        `json:"value" validate:"gte=0"`
	Currency        string         `json:"currency" validate:"required,len=3"`
	StartDate       *time.Time     `json:"startDate,omitempty"`
	EndDate         *time.Time     `json:"endDate,omitempty"`
	IsExpiringSoon  bool           `json:"isExpiringSoon"`
	DaysUntilExpiry *int           `json:"daysUntilExpiry,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// ContractRenewal is a child record spawned when a contract is renewed
type ContractRenewal struct {
	ID                   uuid.UUID  `json:"id" validate:"required"`
	ContractID           uuid.UUID  `json:"contractId" validate:"required"`
	RenewalOpportunityID *uuid.UUID `json:"renewalOpportunityId,omitempty"`
	Notes                string     `json:"notes,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
}

// Activity represents a scheduled task, meeting or call linked
// polymorphically to another entity via (RelatedToType, RelatedToID)
type Activity struct {
	ID            uuid.UUID         `json:"id" validate:"required"`
	Subject       string            `json:"subject" validate:"required,max=200"`
	ActivityType  ActivityType      `json:"activityType" validate:"required,enum"`
	RelatedToType RelatedEntityType `json:"relatedToType" validate:"required,enum"`
	RelatedToID   uuid.UUID         `json:"relatedToId" validate:"required"`
	Status        ActivityStatus    `json:"status" validate:"required,enum"`
	ScheduledAt   *time.Time        `json:"scheduledAt,omitempty"`
	CompletedAt   *time.Time        `json:"completedAt,omitempty"`
	AssignedToID  *uuid.UUID        `json:"assignedToId,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// Note is a free-form annotation attached to another entity
type Note struct {
	ID            uuid.UUID         `json:"id" validate:"required"`
	RelatedToType RelatedEntityType `json:"relatedToType" validate:"required,enum"`
	RelatedToID   uuid.UUID         `json:"relatedToId" validate:"required"`
	Body          string            `json:"body" validate:"required"`
	AuthorName    string            `json:"authorName,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// User represents a user as returned by the backend
type User struct {
	ID          uuid.UUID `json:"id" validate:"required"`
	DisplayName string    `json:"displayName" validate:"required"`
	Email       string    `json:"email" validate:"required,email"`
	Roles       []string  `json:"roles"`
}
