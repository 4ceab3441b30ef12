package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridiancrm/salescycle/internal/api"
	"github.com/meridiancrm/salescycle/internal/auth"
	"github.com/meridiancrm/salescycle/internal/config"
	"github.com/meridiancrm/salescycle/internal/domain"
	"github.com/meridiancrm/salescycle/internal/guard"
	"github.com/meridiancrm/salescycle/internal/logger"
	"github.com/meridiancrm/salescycle/internal/store"
	"github.com/meridiancrm/salescycle/internal/workflow"
)

const usage = `Usage: salescycle <command> [arguments]

Commands:
  status  -opportunity <id> | -client <id>   show the sales-cycle step list
  advance -opportunity <id> | -client <id>   dispatch the active step
  submit  -opportunity <id>                  submit the draft proposal
  approve -opportunity <id>                  approve the submitted proposal
  reject  -opportunity <id> -reason <text>   reject the submitted proposal
  log     [-entity <id>]                     show the local action log
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the wired collaborators for one CLI invocation
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	session   *auth.Session
	clients   *api.ClientService
	contacts  *api.ContactService
	opps      *api.OpportunityService
	proposals *api.ProposalService
	contracts *api.ContractService
	actionLog *store.ActionLog
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}
	command := os.Args[1]

	ctx := context.Background()

	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	session, err := auth.NewSession(cfg.API.Token)
	if err != nil {
		return fmt.Errorf("failed to read session from token: %w", err)
	}
	log = logger.WithUser(log, session.UserID.String(), session.DisplayName)

	client := api.NewClient(&cfg.API, log)

	actionLog, err := store.NewActionLog(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open action log: %w", err)
	}
	defer func() { _ = actionLog.Close() }()

	a := &app{
		cfg:       cfg,
		log:       log,
		session:   session,
		clients:   api.NewClientService(client, log),
		contacts:  api.NewContactService(client, log),
		opps:      api.NewOpportunityService(client, log),
		proposals: api.NewProposalService(client, log),
		contracts: api.NewContractService(client, log),
		actionLog: actionLog,
	}

	switch command {
	case "status":
		return a.cmdStatus(ctx, os.Args[2:])
	case "advance":
		return a.cmdAdvance(ctx, os.Args[2:])
	case "submit":
		return a.cmdProposalAction(ctx, os.Args[2:], "submit")
	case "approve":
		return a.cmdProposalAction(ctx, os.Args[2:], "approve")
	case "reject":
		return a.cmdProposalAction(ctx, os.Args[2:], "reject")
	case "log":
		return a.cmdLog(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// dealFlags parses the -opportunity / -client selector shared by the
// workflow commands
func dealFlags(name string, args []string) (oppID, clientID uuid.UUID, reason string, err error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	oppFlag := fs.String("opportunity", "", "opportunity id")
	clientFlag := fs.String("client", "", "client id")
	reasonFlag := fs.String("reason", "", "rejection reason")
	if err = fs.Parse(args); err != nil {
		return
	}
	if *oppFlag != "" {
		if oppID, err = uuid.Parse(*oppFlag); err != nil {
			err = fmt.Errorf("invalid opportunity id: %w", err)
			return
		}
	}
	if *clientFlag != "" {
		if clientID, err = uuid.Parse(*clientFlag); err != nil {
			err = fmt.Errorf("invalid client id: %w", err)
			return
		}
	}
	reason = *reasonFlag
	return
}

// loadSnapshot assembles the deal context the guards and the engine read.
// Everything hangs off the opportunity when one is given; otherwise off the
// client for the early steps.
func (a *app) loadSnapshot(ctx context.Context, oppID, clientID uuid.UUID) (*guard.SalesCycleCtx, error) {
	snap := &guard.SalesCycleCtx{UserRoles: a.session.Roles}

	if oppID != uuid.Nil {
		opp, err := a.opps.Get(ctx, oppID)
		if err != nil {
			return nil, fmt.Errorf("failed to load opportunity: %w", err)
		}
		snap.Opportunity = opp
		clientID = opp.ClientID
	}

	if clientID == uuid.Nil {
		return snap, nil
	}

	client, err := a.clients.Get(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	snap.Client = client

	contacts, err := a.contacts.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	if len(contacts) > 0 {
		snap.Contact = &contacts[0]
	}

	if snap.Opportunity == nil {
		return snap, nil
	}

	proposals, err := a.proposals.ListByOpportunity(ctx, snap.Opportunity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposals: %w", err)
	}
	if len(proposals) > 0 {
		// Most recent proposal drives the cycle
		snap.Proposal = &proposals[len(proposals)-1]
	}

	if snap.Proposal != nil {
		contracts, err := a.contracts.ListByClient(ctx, clientID)
		if err != nil {
			return nil, fmt.Errorf("failed to load contracts: %w", err)
		}
		for i := range contracts {
			c := &contracts[i]
			if c.ProposalID != nil && *c.ProposalID == snap.Proposal.ID {
				snap.Contract = c
				break
			}
		}
	}

	return snap, nil
}

func (a *app) newEngine() *workflow.Engine {
	return workflow.NewEngine(workflow.Config{
		Proposals: a.proposals,
		Navigate: func(path string) {
			fmt.Printf("Open in the CRM: %s\n", path)
		},
		OnSessionExpired: func() {
			fmt.Fprintln(os.Stderr, domain.MessageForStatus(401))
		},
		Recorder: a.actionLog,
		Actor:    a.session.DisplayName,
		Logger:   a.log,
	})
}

func (a *app) cmdStatus(ctx context.Context, args []string) error {
	oppID, clientID, _, err := dealFlags("status", args)
	if err != nil {
		return err
	}
	snap, err := a.loadSnapshot(ctx, oppID, clientID)
	if err != nil {
		return err
	}

	engine := a.newEngine()
	for _, view := range engine.Steps(snap) {
		marker := " "
		switch view.State {
		case workflow.StateFinish:
			marker = "x"
		case workflow.StateProcess:
			marker = ">"
		}
		line := fmt.Sprintf("[%s] %s", marker, view.Title)
		if view.State == workflow.StateProcess {
			line += fmt.Sprintf("  (next: %s)", view.Label)
		}
		if view.Locked {
			line += fmt.Sprintf("  — locked: %s", view.Reason)
		}
		fmt.Println(line)
	}
	return nil
}

func (a *app) cmdAdvance(ctx context.Context, args []string) error {
	oppID, clientID, _, err := dealFlags("advance", args)
	if err != nil {
		return err
	}
	snap, err := a.loadSnapshot(ctx, oppID, clientID)
	if err != nil {
		return err
	}

	engine := a.newEngine()
	stepID, ok := engine.ActiveStep(snap)
	if !ok {
		fmt.Println("No step can be dispatched right now.")
		return nil
	}

	res, err := engine.Dispatch(ctx, snap, stepID)
	if err != nil {
		return err
	}
	if !res.Allowed {
		fmt.Printf("Not allowed: %s\n", res.Reason)
		return nil
	}
	fmt.Println("Done.")
	return nil
}

func (a *app) cmdProposalAction(ctx context.Context, args []string, action string) error {
	oppID, clientID, reason, err := dealFlags(action, args)
	if err != nil {
		return err
	}
	if oppID == uuid.Nil {
		return fmt.Errorf("-opportunity is required")
	}
	snap, err := a.loadSnapshot(ctx, oppID, clientID)
	if err != nil {
		return err
	}

	engine := a.newEngine()
	var res guard.Result
	switch action {
	case "submit":
		res, err = engine.SubmitProposal(ctx, snap)
	case "approve":
		res, err = engine.ApproveProposal(ctx, snap)
	case "reject":
		res, err = engine.RejectProposal(ctx, snap, reason)
	}
	if err != nil {
		return err
	}
	if !res.Allowed {
		fmt.Printf("Not allowed: %s\n", res.Reason)
		return nil
	}
	fmt.Println("Done.")
	return nil
}

func (a *app) cmdLog(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("log", flag.ContinueOnError)
	entity := fs.String("entity", "", "filter by entity id")
	limit := fs.Int("limit", 20, "number of entries")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var entries []store.ActionEntry
	var err error
	if *entity != "" {
		entries, err = a.actionLog.ForEntity(ctx, *entity)
	} else {
		entries, err = a.actionLog.Recent(ctx, *limit)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No recorded actions.")
		return nil
	}
	for _, e := range entries {
		actor := e.Actor
		if actor == "" {
			actor = "unknown"
		}
		fmt.Printf("%s  %-18s %s/%s  by %s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.Action,
			e.Entity,
			strings.Split(e.EntityID, "-")[0],
			actor,
		)
	}
	return nil
}
