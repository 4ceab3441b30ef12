package workflow

import (
	"github.com/meridiancrm/salescycle/internal/domain"
	"github.com/meridiancrm/salescycle/internal/guard"
)

// StepID identifies one of the six ordered sales-cycle steps
type StepID string

const (
	StepCreateClient      StepID = "create_client"
	StepCreateContact     StepID = "create_contact"
	StepCreateOpportunity StepID = "create_opportunity"
	StepCreateProposal    StepID = "create_proposal"
	StepApproveProposal   StepID = "approve_proposal"
	StepCreateContract    StepID = "create_contract"
)

// StepState is the visual state of a step: finish (done), process (active)
// or wait (not yet reachable or blocked)
type StepState string

const (
	StateFinish  StepState = "finish"
	StateProcess StepState = "process"
	StateWait    StepState = "wait"
)

// StepView is the rendering contract for one step. Locked distinguishes a
// guard-blocked step from one that is merely pending; Reason carries the
// guard's explanation when Locked is set.
type StepView struct {
	ID     StepID    `json:"id"`
	Title  string    `json:"title"`
	Label  string    `json:"label"`
	State  StepState `json:"state"`
	Locked bool      `json:"locked"`
	Reason string    `json:"reason,omitempty"`
	Busy   bool      `json:"busy"`
}

// step pairs a completion predicate with the guard that gates its action
type step struct {
	id      StepID
	title   string
	isDone  func(*guard.SalesCycleCtx) bool
	guardFn func(*guard.SalesCycleCtx) guard.Result
	label   func(*guard.SalesCycleCtx) string
}

// steps is the ordered sales cycle. The proposal step is bimodal: while no
// proposal exists its action navigates to the creation form, once a Draft
// exists the same step submits it directly, and the label follows the mode.
var steps = []step{
	{
		id:      StepCreateClient,
		title:   "Client",
		isDone:  func(c *guard.SalesCycleCtx) bool { return c.Client != nil },
		guardFn: guard.CreateClient,
		label:   func(*guard.SalesCycleCtx) string { return "Create Client" },
	},
	{
		id:      StepCreateContact,
		title:   "Contact",
		isDone:  func(c *guard.SalesCycleCtx) bool { return c.Contact != nil },
		guardFn: guard.CreateContact,
		label:   func(*guard.SalesCycleCtx) string { return "Add Contact" },
	},
	{
		id:      StepCreateOpportunity,
		title:   "Opportunity",
		isDone:  func(c *guard.SalesCycleCtx) bool { return c.Opportunity != nil },
		guardFn: guard.CreateOpportunity,
		label:   func(*guard.SalesCycleCtx) string { return "Create Opportunity" },
	},
	{
		id:    StepCreateProposal,
		title: "Proposal",
		isDone: func(c *guard.SalesCycleCtx) bool {
			return c.Proposal != nil && c.Proposal.Status != domain.ProposalStatusDraft
		},
		guardFn: func(c *guard.SalesCycleCtx) guard.Result {
			if c.Proposal == nil {
				return guard.CreateProposal(c)
			}
			return guard.SubmitProposal(c)
		},
		label: func(c *guard.SalesCycleCtx) string {
			if c.Proposal == nil {
				return "Create Proposal"
			}
			return "Submit Proposal"
		},
	},
	{
		id:    StepApproveProposal,
		title: "Approval",
		isDone: func(c *guard.SalesCycleCtx) bool {
			return c.Proposal != nil && c.Proposal.Status == domain.ProposalStatusApproved
		},
		guardFn: guard.ApproveProposal,
		label:   func(*guard.SalesCycleCtx) string { return "Approve Proposal" },
	},
	{
		id:      StepCreateContract,
		title:   "Contract",
		isDone:  func(c *guard.SalesCycleCtx) bool { return c.Contract != nil },
		guardFn: guard.CreateContract,
		label:   func(*guard.SalesCycleCtx) string { return "Create Contract" },
	},
}
