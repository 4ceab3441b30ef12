// Package workflow implements the sales-cycle state machine: six ordered
// steps from client creation to contract creation, each gated by a guard.
// The engine renders step affordances, dispatches guarded actions, and
// routes successes through a caller-supplied refresh callback. It owns only
// its local busy/error state; entity state lives with the caller and is
// passed in as a snapshot per call.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/meridiancrm/salescycle/internal/api"
	"github.com/meridiancrm/salescycle/internal/domain"
	"github.com/meridiancrm/salescycle/internal/guard"
)

// ErrActionInFlight is returned when a dispatch is attempted while a
// mutation for this engine instance is still outstanding
var ErrActionInFlight = errors.New("an action is already in flight for this workflow")

// ErrEngineClosed is returned when dispatching on a closed engine
var ErrEngineClosed = errors.New("workflow engine is closed")

// Recorder appends a successful guarded mutation to a local audit trail.
// Recording failures never fail the workflow.
type Recorder interface {
	Record(ctx context.Context, action, entity, entityID, actor string) error
}

// Config wires the engine's collaborator seams. Navigate hands control to an
// external form screen; OnRefresh re-reads the entity context after a
// successful mutation; OnSessionExpired fires when the backend reports an
// expired session (401).
type Config struct {
	Proposals        *api.ProposalService
	Navigate         func(path string)
	OnRefresh        func(ctx context.Context) error
	OnSessionExpired func()
	Recorder         Recorder
	Actor            string
	Logger           *zap.Logger
}

// Engine is the sales-cycle workflow state machine. One instance is scoped
// to one deal; instances share nothing.
type Engine struct {
	proposals        *api.ProposalService
	navigate         func(string)
	onRefresh        func(context.Context) error
	onSessionExpired func()
	recorder         Recorder
	actor            string
	logger           *zap.Logger

	mu       sync.Mutex
	busyStep *StepID
	lastErr  error
	closed   bool
}

// NewEngine creates a workflow engine for one deal context
func NewEngine(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	navigate := cfg.Navigate
	if navigate == nil {
		navigate = func(string) {}
	}
	return &Engine{
		proposals:        cfg.Proposals,
		navigate:         navigate,
		onRefresh:        cfg.OnRefresh,
		onSessionExpired: cfg.OnSessionExpired,
		recorder:         cfg.Recorder,
		actor:            cfg.Actor,
		logger:           logger,
	}
}

// ActiveStep computes the first step that is neither done nor blocked. A
// blocked step is never active: when every remaining step is guarded off,
// there is no active step and the second return is false.
func (e *Engine) ActiveStep(snap *guard.SalesCycleCtx) (StepID, bool) {
	for _, s := range steps {
		if s.isDone(snap) {
			continue
		}
		if s.guardFn(snap).Allowed {
			return s.id, true
		}
	}
	return "", false
}

// Steps renders the full step list for the given snapshot
func (e *Engine) Steps(snap *guard.SalesCycleCtx) []StepView {
	active, hasActive := e.ActiveStep(snap)

	e.mu.Lock()
	busy := e.busyStep
	e.mu.Unlock()

	views := make([]StepView, len(steps))
	for i, s := range steps {
		g := s.guardFn(snap)
		view := StepView{
			ID:    s.id,
			Title: s.title,
			Label: s.label(snap),
		}
		switch {
		case s.isDone(snap):
			view.State = StateFinish
		case hasActive && s.id == active:
			view.State = StateProcess
		default:
			view.State = StateWait
		}
		if !s.isDone(snap) && !g.Allowed {
			view.Locked = true
			view.Reason = g.Reason
		}
		if busy != nil && *busy == s.id {
			view.Busy = true
		}
		views[i] = view
	}
	return views
}

// Err returns the error recorded by the most recent dispatch, if any. The
// slot is reset when the next mutation starts.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Close marks the engine as abandoned. An outstanding mutation finishes its
// network call but its resolution is ignored: no action log entry, no
// refresh.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
}

// Dispatch fires the action of a step. Creation steps hand off to the
// navigation seam; submit and approve fire their mutation directly. A guard
// denial is returned as a normal result, never as an error, and triggers
// neither a network call nor a refresh.
func (e *Engine) Dispatch(ctx context.Context, snap *guard.SalesCycleCtx, id StepID) (guard.Result, error) {
	switch id {
	case StepCreateClient:
		return e.StartCreateClient(snap), nil
	case StepCreateContact:
		return e.StartCreateContact(snap), nil
	case StepCreateOpportunity:
		return e.StartCreateOpportunity(snap), nil
	case StepCreateProposal:
		if snap.Proposal == nil {
			return e.StartCreateProposal(snap), nil
		}
		return e.SubmitProposal(ctx, snap)
	case StepApproveProposal:
		return e.ApproveProposal(ctx, snap)
	case StepCreateContract:
		return e.StartCreateContract(snap), nil
	default:
		return guard.Result{}, fmt.Errorf("unknown workflow step %q", id)
	}
}

// StartCreateClient opens the client creation form
func (e *Engine) StartCreateClient(snap *guard.SalesCycleCtx) guard.Result {
	g := guard.CreateClient(snap)
	if g.Allowed {
		e.navigate("/clients/new")
	}
	return g
}

// StartCreateContact opens the contact creation form for the deal's client
func (e *Engine) StartCreateContact(snap *guard.SalesCycleCtx) guard.Result {
	g := guard.CreateContact(snap)
	if g.Allowed {
		e.navigate("/contacts/new?" + url.Values{"clientId": {snap.Client.ID.String()}}.Encode())
	}
	return g
}

// StartCreateOpportunity opens the opportunity creation form
func (e *Engine) StartCreateOpportunity(snap *guard.SalesCycleCtx) guard.Result {
	g := guard.CreateOpportunity(snap)
	if g.Allowed {
		params := url.Values{"clientId": {snap.Client.ID.String()}}
		if snap.Contact != nil {
			params.Set("contactId", snap.Contact.ID.String())
		}
		e.navigate("/opportunities/new?" + params.Encode())
	}
	return g
}

// StartCreateProposal opens the proposal creation form
func (e *Engine) StartCreateProposal(snap *guard.SalesCycleCtx) guard.Result {
	g := guard.CreateProposal(snap)
	if g.Allowed {
		e.navigate("/proposals/new?" + url.Values{"opportunityId": {snap.Opportunity.ID.String()}}.Encode())
	}
	return g
}

// StartCreateContract opens the contract creation form, gated on the
// proposal being Approved
func (e *Engine) StartCreateContract(snap *guard.SalesCycleCtx) guard.Result {
	g := guard.CreateContract(snap)
	if g.Allowed {
		params := url.Values{
			"clientId":   {snap.Proposal.ClientID.String()},
			"proposalId": {snap.Proposal.ID.String()},
		}
		if snap.Opportunity != nil {
			params.Set("opportunityId", snap.Opportunity.ID.String())
		}
		e.navigate("/contracts/new?" + params.Encode())
	}
	return g
}

// SubmitProposal fires the submit mutation for the deal's draft proposal
func (e *Engine) SubmitProposal(ctx context.Context, snap *guard.SalesCycleCtx) (guard.Result, error) {
	g := guard.SubmitProposal(snap)
	return e.runMutation(ctx, StepCreateProposal, g, "submit_proposal", snap.Proposal, func(ctx context.Context) error {
		_, err := e.proposals.Submit(ctx, snap.Proposal.ID)
		return err
	})
}

// ApproveProposal fires the approve mutation. Confirmation is the caller's
// concern; no payload is sent.
func (e *Engine) ApproveProposal(ctx context.Context, snap *guard.SalesCycleCtx) (guard.Result, error) {
	g := guard.ApproveProposal(snap)
	return e.runMutation(ctx, StepApproveProposal, g, "approve_proposal", snap.Proposal, func(ctx context.Context) error {
		_, err := e.proposals.Approve(ctx, snap.Proposal.ID)
		return err
	})
}

// RejectProposal fires the reject mutation. The mutation does not fire until
// the reason is non-empty; the reason is always transmitted.
func (e *Engine) RejectProposal(ctx context.Context, snap *guard.SalesCycleCtx, reason string) (guard.Result, error) {
	g := guard.RejectProposal(snap)
	if g.Allowed && strings.TrimSpace(reason) == "" {
		g = guard.Result{Allowed: false, Reason: "A rejection reason is required"}
	}
	return e.runMutation(ctx, StepApproveProposal, g, "reject_proposal", snap.Proposal, func(ctx context.Context) error {
		_, err := e.proposals.Reject(ctx, snap.Proposal.ID, reason)
		return err
	})
}

// runMutation is the single dispatch path for direct mutations. Ordering is
// fixed: guard, busy flag, mutation, action log, refresh. Refresh never runs
// after a denial or a failed call, and the busy flag is always cleared.
func (e *Engine) runMutation(ctx context.Context, id StepID, g guard.Result, action string, proposal *domain.Proposal, fn func(context.Context) error) (guard.Result, error) {
	if !g.Allowed {
		e.logger.Debug("workflow action denied by guard",
			zap.String("action", action),
			zap.String("reason", g.Reason),
		)
		return g, nil
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return g, ErrEngineClosed
	}
	if e.busyStep != nil {
		e.mu.Unlock()
		return g, ErrActionInFlight
	}
	e.busyStep = &id
	e.lastErr = nil
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.busyStep = nil
		e.mu.Unlock()
	}()

	if err := fn(ctx); err != nil {
		e.mu.Lock()
		e.lastErr = err
		e.mu.Unlock()

		if ae, ok := domain.AsAPIError(err); ok && ae.IsSessionExpired() && e.onSessionExpired != nil {
			e.onSessionExpired()
		}
		e.logger.Error("workflow action failed",
			zap.String("action", action),
			zap.Error(err),
		)
		return g, err
	}

	e.mu.Lock()
	abandoned := e.closed
	e.mu.Unlock()
	if abandoned {
		// The caller went away while the call was outstanding; ignore the
		// resolution rather than refreshing into the void.
		return g, nil
	}

	if e.recorder != nil && proposal != nil {
		if err := e.recorder.Record(ctx, action, "proposal", proposal.ID.String(), e.actor); err != nil {
			e.logger.Warn("failed to record workflow action", zap.Error(err))
		}
	}

	if e.onRefresh != nil {
		if err := e.onRefresh(ctx); err != nil {
			e.mu.Lock()
			e.lastErr = err
			e.mu.Unlock()
			return g, fmt.Errorf("action succeeded but refresh failed: %w", err)
		}
	}
	return g, nil
}
