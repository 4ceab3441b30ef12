package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// The backend emits enum fields as display strings on read but expects their
// wire integers on write, and some endpoints still return the integer form.
// Each enumeration below keeps a single bidirectional lookup table; the
// integer form is confined to the API boundary and never reaches the guard
// layer or the workflow engine.

// OpportunityStage is the pipeline position of an opportunity (wire 1-6)
type OpportunityStage string

const (
	StageLead        OpportunityStage = "Lead"
	StageQualified   OpportunityStage = "Qualified"
	StageProposal    OpportunityStage = "Proposal"
	StageNegotiation OpportunityStage = "Negotiation"
	StageClosedWon   OpportunityStage = "Closed Won"
	StageClosedLost  OpportunityStage = "Closed Lost"
)

// WireClosedLost is the wire integer of the Closed Lost stage, the only
// transition target that requires a loss reason.
const WireClosedLost = 6

var opportunityStageWire = map[OpportunityStage]int{
	StageLead:        1,
	StageQualified:   2,
	StageProposal:    3,
	StageNegotiation: 4,
	StageClosedWon:   5,
	StageClosedLost:  WireClosedLost,
}

// IsValid checks if the OpportunityStage is a valid enum value
func (s OpportunityStage) IsValid() bool {
	_, ok := opportunityStageWire[s]
	return ok
}

// Wire returns the integer form the backend expects on write
func (s OpportunityStage) Wire() int {
	return opportunityStageWire[s]
}

// StageFromWire resolves a wire integer to its display stage
func StageFromWire(code int) (OpportunityStage, bool) {
	return fromWire(opportunityStageWire, code)
}

// UnmarshalJSON accepts both the display string and the wire integer
func (s *OpportunityStage) UnmarshalJSON(data []byte) error {
	return unmarshalFlex(data, opportunityStageWire, s)
}

// ProposalStatus is the 4-state lifecycle of a proposal (wire 1-4).
// Transitions are one-directional: Draft -> Submitted -> Approved|Rejected.
type ProposalStatus string

const (
	ProposalStatusDraft     ProposalStatus = "Draft"
	ProposalStatusSubmitted ProposalStatus = "Submitted"
	ProposalStatusApproved  ProposalStatus = "Approved"
	ProposalStatusRejected  ProposalStatus = "Rejected"
)

var proposalStatusWire = map[ProposalStatus]int{
	ProposalStatusDraft:     1,
	ProposalStatusSubmitted: 2,
	ProposalStatusApproved:  3,
	ProposalStatusRejected:  4,
}

// IsValid checks if the ProposalStatus is a valid enum value
func (s ProposalStatus) IsValid() bool {
	_, ok := proposalStatusWire[s]
	return ok
}

// Wire returns the integer form the backend expects on write
func (s ProposalStatus) Wire() int {
	return proposalStatusWire[s]
}

// ProposalStatusFromWire resolves a wire integer to its display status
func ProposalStatusFromWire(code int) (ProposalStatus, bool) {
	return fromWire(proposalStatusWire, code)
}

// UnmarshalJSON accepts both the display string and the wire integer
func (s *ProposalStatus) UnmarshalJSON(data []byte) error {
	return unmarshalFlex(data, proposalStatusWire, s)
}

// PricingPriority is the priority of a pricing request (wire 1-4)
type PricingPriority string

const (
	PriorityLow    PricingPriority = "Low"
	PriorityMedium PricingPriority = "Medium"
	PriorityHigh   PricingPriority = "High"
	PriorityUrgent PricingPriority = "Urgent"
)

var pricingPriorityWire = map[PricingPriority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

// IsValid checks if the PricingPriority is a valid enum value
func (p PricingPriority) IsValid() bool {
	_, ok := pricingPriorityWire[p]
	return ok
}

// Wire returns the integer form the backend expects on write
func (p PricingPriority) Wire() int {
	return pricingPriorityWire[p]
}

// UnmarshalJSON accepts both the display string and the wire integer
func (p *PricingPriority) UnmarshalJSON(data []byte) error {
	return unmarshalFlex(data, pricingPriorityWire, p)
}

// PricingStatus is the lifecycle of a pricing request (wire 1-3)
type PricingStatus string

const (
	PricingStatusPending    PricingStatus = "Pending"
	PricingStatusInProgress PricingStatus = "In Progress"
	PricingStatusCompleted  PricingStatus = "Completed"
)

var pricingStatusWire = map[PricingStatus]int{
	PricingStatusPending:    1,
	PricingStatusInProgress: 2,
	PricingStatusCompleted:  3,
}

// IsValid checks if the PricingStatus is a valid enum value
func (s PricingStatus) IsValid() bool {
	_, ok := pricingStatusWire[s]
	return ok
}

// Wire returns the integer form the backend expects on write
func (s PricingStatus) Wire() int {
	return pricingStatusWire[s]
}

// UnmarshalJSON accepts both the display string and the wire integer
func (s *PricingStatus) UnmarshalJSON(data []byte) error {
	return unmarshalFlex(data, pricingStatusWire, s)
}

// ContractStatus is the lifecycle of a contract (wire 1-5)
type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "Draft"
	ContractStatusActive    ContractStatus = "Active"
	ContractStatusExpired   ContractStatus = "Expired"
	ContractStatusRenewed   ContractStatus = "Renewed"
	ContractStatusCancelled ContractStatus = "Cancelled"
)

var contractStatusWire = map[ContractStatus]int{
	ContractStatusDraft:     1,
	ContractStatusActive:    2,
	ContractStatusExpired:   3,
	ContractStatusRenewed:   4,
	ContractStatusCancelled: 5,
}

// IsValid checks if the ContractStatus is a valid enum value
func (s ContractStatus) IsValid() bool {
	_, ok := contractStatusWire[s]
	return ok
}

// Wire returns the integer form the backend expects on write
func (s ContractStatus) Wire() int {
	return contractStatusWire[s]
}

// UnmarshalJSON accepts both the display string and the wire integer
func (s *ContractStatus) UnmarshalJSON(data []byte) error {
	return unmarshalFlex(data, contractStatusWire, s)
}

// ActivityStatus is the lifecycle of an activity (wire 1-3)
type ActivityStatus string

const (
	ActivityStatusScheduled ActivityStatus = "Scheduled"
	ActivityStatusCompleted ActivityStatus = "Completed"
	ActivityStatusCancelled ActivityStatus = "Cancelled"
)

var activityStatusWire = map[ActivityStatus]int{
	ActivityStatusScheduled: 1,
	ActivityStatusCompleted: 2,
	ActivityStatusCancelled: 3,
}

// IsValid checks if the ActivityStatus is a valid enum value
func (s ActivityStatus) IsValid() bool {
	_, ok := activityStatusWire[s]
	return ok
}

// Wire returns the integer form the backend expects on write
func (s ActivityStatus) Wire() int {
	return activityStatusWire[s]
}

// UnmarshalJSON accepts both the display string and the wire integer
func (s *ActivityStatus) UnmarshalJSON(data []byte) error {
	return unmarshalFlex(data, activityStatusWire, s)
}

// ActivityType classifies an activity (wire 1-3)
type ActivityType string

const (
	ActivityTypeTask    ActivityType = "Task"
	ActivityTypeMeeting ActivityType = "Meeting"
	ActivityTypeCall    ActivityType = "Call"
)

var activityTypeWire = map[ActivityType]int{
	ActivityTypeTask:    1,
	ActivityTypeMeeting: 2,
	ActivityTypeCall:    3,
}

// IsValid checks if the ActivityType is a valid enum value
func (t ActivityType) IsValid() bool {
	_, ok := activityTypeWire[t]
	return ok
}

// Wire returns the integer form the backend expects on write
func (t ActivityType) Wire() int {
	return activityTypeWire[t]
}

// UnmarshalJSON accepts both the display string and the wire integer
func (t *ActivityType) UnmarshalJSON(data []byte) error {
	return unmarshalFlex(data, activityTypeWire, t)
}

// ClientType is the closed category of a client (wire 1-4)
type ClientType string

const (
	ClientTypeProspect   ClientType = "Prospect"
	ClientTypeStandard   ClientType = "Standard"
	ClientTypeKeyAccount ClientType = "Key Account"
	ClientTypePartner    ClientType = "Partner"
)

var clientTypeWire = map[ClientType]int{
	ClientTypeProspect:   1,
	ClientTypeStandard:   2,
	ClientTypeKeyAccount: 3,
	ClientTypePartner:    4,
}

// IsValid checks if the ClientType is a valid enum value
func (t ClientType) IsValid() bool {
	_, ok := clientTypeWire[t]
	return ok
}

// Wire returns the integer form the backend expects on write
func (t ClientType) Wire() int {
	return clientTypeWire[t]
}

// UnmarshalJSON accepts both the display string and the wire integer
func (t *ClientType) UnmarshalJSON(data []byte) error {
	return unmarshalFlex(data, clientTypeWire, t)
}

// RelatedEntityType identifies the target of a polymorphic link
type RelatedEntityType string

const (
	RelatedToClient      RelatedEntityType = "Client"
	RelatedToOpportunity RelatedEntityType = "Opportunity"
	RelatedToProposal    RelatedEntityType = "Proposal"
	RelatedToContract    RelatedEntityType = "Contract"
	RelatedToActivity    RelatedEntityType = "Activity"
)

var relatedEntityTypeWire = map[RelatedEntityType]int{
	RelatedToClient:      1,
	RelatedToOpportunity: 2,
	RelatedToProposal:    3,
	RelatedToContract:    4,
	RelatedToActivity:    5,
}

// IsValid checks if the RelatedEntityType is a valid enum value
func (t RelatedEntityType) IsValid() bool {
	_, ok := relatedEntityTypeWire[t]
	return ok
}

// Wire returns the integer form the backend expects on write
func (t RelatedEntityType) Wire() int {
	return relatedEntityTypeWire[t]
}

// UnmarshalJSON accepts both the display string and the wire integer
func (t *RelatedEntityType) UnmarshalJSON(data []byte) error {
	return unmarshalFlex(data, relatedEntityTypeWire, t)
}

// fromWire inverts a wire table for a single lookup
func fromWire[T ~string](table map[T]int, code int) (T, bool) {
	for label, c := range table {
		if c == code {
			return label, true
		}
	}
	var zero T
	return zero, false
}

// unmarshalFlex decodes an enum field that may arrive as either its display
// string or its wire integer. Unknown values are preserved as-is when the
// string form is used so response validation can report them by field path.
func unmarshalFlex[T ~string](data []byte, table map[T]int, dst *T) error {
	if len(data) == 0 {
		return fmt.Errorf("empty enum value")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*dst = T(s)
		return nil
	}
	code, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("enum value must be a string or integer: %w", err)
	}
	label, ok := fromWire(table, code)
	if !ok {
		return fmt.Errorf("unknown enum wire value %d", code)
	}
	*dst = label
	return nil
}
