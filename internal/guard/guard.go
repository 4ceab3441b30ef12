// Package guard encodes every business rule that gates a sales-cycle
// mutation. Guards are pure functions over a read-only context snapshot:
// they perform no I/O, never mutate, and never panic. A denial is a normal
// outcome, not an error; it always carries a human-readable reason the
// caller must surface next to the disabled action.
package guard

import (
	"strings"

	"github.com/meridiancrm/salescycle/internal/domain"
)

// SalesCycleCtx is the read-only snapshot a guard decides on. Entity fields
// are nil when the entity does not exist yet in the deal being evaluated.
// UserRoles is the flat role list supplied by the session collaborator.
type SalesCycleCtx struct {
	Client         *domain.Client
	Contact        *domain.Contact
	Opportunity    *domain.Opportunity
	Proposal       *domain.Proposal
	Contract       *domain.Contract
	PricingRequest *domain.PricingRequest
	UserRoles      []domain.UserRole
}

// HasManagerRole reports whether the snapshot carries a manager-class role
// (Admin or SalesManager)
func (c *SalesCycleCtx) HasManagerRole() bool {
	for _, r := range c.UserRoles {
		if r.IsManagerClass() {
			return true
		}
	}
	return false
}

// Result is the outcome of a guard evaluation. Reason is set on denial.
type Result struct {
	Allowed bool
	Reason  string
}

func allow() Result {
	return Result{Allowed: true}
}

func deny(reason string) Result {
	return Result{Allowed: false, Reason: reason}
}

// CreateClient gates the first workflow step. Creating a client has no
// preconditions.
func CreateClient(ctx *SalesCycleCtx) Result {
	return allow()
}

// CreateContact requires an existing client to attach the contact to
func CreateContact(ctx *SalesCycleCtx) Result {
	if ctx.Client == nil {
		return deny("Create the client before adding a contact")
	}
	return allow()
}

// CreateOpportunity requires an existing client
func CreateOpportunity(ctx *SalesCycleCtx) Result {
	if ctx.Client == nil {
		return deny("Create the client before opening an opportunity")
	}
	return allow()
}

// CreateProposal requires an open opportunity
func CreateProposal(ctx *SalesCycleCtx) Result {
	if ctx.Opportunity == nil {
		return deny("Create the opportunity before drafting a proposal")
	}
	if ctx.Opportunity.IsClosed() {
		return deny("The opportunity is closed; no new proposal can be drafted")
	}
	return allow()
}

// SubmitProposal requires an existing proposal in Draft status
func SubmitProposal(ctx *SalesCycleCtx) Result {
	if ctx.Proposal == nil {
		return deny("No proposal exists yet")
	}
	if ctx.Proposal.Status != domain.ProposalStatusDraft {
		return deny("Only a Draft proposal can be submitted")
	}
	return allow()
}

// ApproveProposal requires a Submitted proposal and a manager-class role
func ApproveProposal(ctx *SalesCycleCtx) Result {
	if ctx.Proposal == nil {
		return deny("No proposal exists yet")
	}
	if ctx.Proposal.Status != domain.ProposalStatusSubmitted {
		return deny("Only a Submitted proposal can be approved")
	}
	if !ctx.HasManagerRole() {
		return deny("Approving a proposal requires the Admin or SalesManager role")
	}
	return allow()
}

// RejectProposal requires a Submitted proposal and a manager-class role
func RejectProposal(ctx *SalesCycleCtx) Result {
	if ctx.Proposal == nil {
		return deny("No proposal exists yet")
	}
	if ctx.Proposal.Status != domain.ProposalStatusSubmitted {
		return deny("Only a Submitted proposal can be rejected")
	}
	if !ctx.HasManagerRole() {
		return deny("Rejecting a proposal requires the Admin or SalesManager role")
	}
	return allow()
}

// CreateContract requires the source proposal to be Approved
func CreateContract(ctx *SalesCycleCtx) Result {
	if ctx.Proposal == nil {
		return deny("No proposal exists; a contract needs an Approved proposal")
	}
	if ctx.Proposal.Status != domain.ProposalStatusApproved {
		return deny("The proposal must be Approved before a contract can be created")
	}
	return allow()
}

// AdvanceStage gates an opportunity stage transition. A transition into
// Closed Lost must carry a non-empty loss reason; no other stage requires one.
func AdvanceStage(ctx *SalesCycleCtx, target domain.OpportunityStage, lossReason string) Result {
	if ctx.Opportunity == nil {
		return deny("No opportunity exists yet")
	}
	if !target.IsValid() {
		return deny("Unknown target stage")
	}
	if target == domain.StageClosedLost && strings.TrimSpace(lossReason) == "" {
		return deny("A loss reason is required when closing an opportunity as lost")
	}
	return allow()
}

// AssignPricingRequest requires an existing, non-completed request and a
// manager-class role
func AssignPricingRequest(ctx *SalesCycleCtx) Result {
	if ctx.PricingRequest == nil {
		return deny("No pricing request exists yet")
	}
	if ctx.PricingRequest.Status == domain.PricingStatusCompleted {
		return deny("A completed pricing request cannot be reassigned")
	}
	if !ctx.HasManagerRole() {
		return deny("Assigning a pricing request requires the Admin or SalesManager role")
	}
	return allow()
}

// CompletePricingRequest requires the request to be In Progress
func CompletePricingRequest(ctx *SalesCycleCtx) Result {
	if ctx.PricingRequest == nil {
		return deny("No pricing request exists yet")
	}
	if ctx.PricingRequest.Status != domain.PricingStatusInProgress {
		return deny("Only an In Progress pricing request can be completed")
	}
	return allow()
}
