package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meridiancrm/salescycle/internal/api"
	"github.com/meridiancrm/salescycle/internal/config"
	"github.com/meridiancrm/salescycle/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*api.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.NewClient(&config.APIConfig{
		BaseURL: srv.URL,
		Token:   "test-token",
		Timeout: 5,
	}, zap.NewNop())
	return client, srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func validClient() domain.Client {
	return domain.Client{
		ID:         uuid.New(),
		Name:       "Acme Industries",
		ClientType: domain.ClientTypeStandard,
	}
}

func validProposal(status domain.ProposalStatus) domain.Proposal {
	return domain.Proposal{
		ID:            uuid.New(),
		OpportunityID: uuid.New(),
		ClientID:      uuid.New(),
		Title:         "Platform licence",
		Status:        status,
		Currency:      "USD",
	}
}

func TestDo_InvalidRequestNeverReachesNetwork(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))

	// name missing, clientType out of range
	bad := domain.CreateClientRequest{ClientType: 9}
	err := client.Post(context.Background(), "/clients", bad, nil, nil)

	require.Error(t, err)
	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.PhaseRequest, verr.Phase)
	assert.Equal(t, int32(0), hits.Load(), "a request failing its contract must not be transmitted")
}

func TestDo_SendsBearerTokenAndJSONHeaders(t *testing.T) {
	var gotAuth, gotContentType string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		writeJSON(t, w, validClient())
	}))

	req := domain.CreateClientRequest{
		Name:       "Acme Industries",
		ClientType: domain.ClientTypeStandard.Wire(),
	}
	var out domain.Client
	require.NoError(t, client.Post(context.Background(), "/clients", req, &out, nil))

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestDo_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		status         int
		wantMessage    string
		sessionExpired bool
	}{
		{http.StatusBadRequest, "Please check the required fields", false},
		{http.StatusUnauthorized, "Your session has expired, please log in again", true},
		{http.StatusForbidden, "You do not have permission for this action", false},
		{http.StatusNotFound, "The requested resource was not found", false},
		{http.StatusConflict, "Conflict, the record may already exist", false},
		{http.StatusInternalServerError, "The server could not process the request, please try again later", false},
		{http.StatusBadGateway, "The server could not process the request, please try again later", false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			var out domain.Client
			err := client.Get(context.Background(), "/clients/whatever", nil, &out)
			require.Error(t, err)

			ae, ok := domain.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, ae.Status)
			assert.Equal(t, tt.wantMessage, ae.Message)
			assert.Equal(t, tt.sessionExpired, ae.IsSessionExpired())
		})
	}
}

func TestDo_BackendDetailIsCarried(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"client name already in use"}`))
	}))

	var out domain.Client
	err := client.Get(context.Background(), "/clients/x", nil, &out)
	ae, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "client name already in use", ae.Detail)
}

func TestDo_InvalidResponseFailsContract(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// name missing
		writeJSON(t, w, map[string]any{
			"id":         uuid.New().String(),
			"clientType": "Standard",
		})
	}))

	var out domain.Client
	err := client.Get(context.Background(), "/clients/x", nil, &out)
	require.Error(t, err)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.PhaseResponse, verr.Phase)
}

func TestDo_MalformedResponseBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))

	var out domain.Client
	err := client.Get(context.Background(), "/clients/x", nil, &out)
	require.Error(t, err)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.PhaseResponse, verr.Phase)
}

func TestClientService_ListUnwrapsPagedEnvelope(t *testing.T) {
	first := validClient()
	second := validClient()

	r := chi.NewRouter()
	r.Get("/clients", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "2", req.URL.Query().Get("pageNumber"))
		assert.Equal(t, "10", req.URL.Query().Get("pageSize"))
		writeJSON(t, w, map[string]any{
			"items":      []domain.Client{first, second},
			"pageNumber": 2,
			"pageSize":   10,
			"totalCount": 12,
		})
	})

	client, _ := newTestClient(t, r)
	svc := api.NewClientService(client, zap.NewNop())

	items, total, err := svc.List(context.Background(), api.ListOptions{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
}

func TestProposalService_ListByOpportunityUsesDirectArray(t *testing.T) {
	oppID := uuid.New()
	proposal := validProposal(domain.ProposalStatusDraft)

	r := chi.NewRouter()
	r.Get("/proposals", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, oppID.String(), req.URL.Query().Get("opportunityId"))
		writeJSON(t, w, []domain.Proposal{proposal})
	})

	client, _ := newTestClient(t, r)
	svc := api.NewProposalService(client, zap.NewNop())

	proposals, err := svc.ListByOpportunity(context.Background(), oppID)
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, domain.ProposalStatusDraft, proposals[0].Status)
}

func TestProposalService_SubmitFollowedByCompanionRead(t *testing.T) {
	proposal := validProposal(domain.ProposalStatusDraft)
	var gets atomic.Int32

	r := chi.NewRouter()
	r.Put("/proposals/{id}/submit", func(w http.ResponseWriter, req *http.Request) {
		proposal.Status = domain.ProposalStatusSubmitted
		writeJSON(t, w, proposal)
	})
	r.Get("/proposals/{id}", func(w http.ResponseWriter, req *http.Request) {
		gets.Add(1)
		assert.Equal(t, proposal.ID.String(), chi.URLParam(req, "id"))
		writeJSON(t, w, proposal)
	})

	client, _ := newTestClient(t, r)
	svc := api.NewProposalService(client, zap.NewNop())

	updated, err := svc.Submit(context.Background(), proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusSubmitted, updated.Status)
	assert.Equal(t, int32(1), gets.Load(), "every mutation is followed by a companion read")
}

func TestProposalService_RejectTransmitsReason(t *testing.T) {
	proposal := validProposal(domain.ProposalStatusSubmitted)
	var body domain.RejectProposalPayload

	r := chi.NewRouter()
	r.Put("/proposals/{id}/reject", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		proposal.Status = domain.ProposalStatusRejected
		proposal.RejectionReason = body.Reason
		writeJSON(t, w, proposal)
	})
	r.Get("/proposals/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(t, w, proposal)
	})

	client, _ := newTestClient(t, r)
	svc := api.NewProposalService(client, zap.NewNop())

	updated, err := svc.Reject(context.Background(), proposal.ID, "Scope too broad")
	require.NoError(t, err)
	assert.Equal(t, "Scope too broad", body.Reason)
	assert.Equal(t, domain.ProposalStatusRejected, updated.Status)
}

func TestProposalService_RejectWithoutReasonFailsBeforeTransport(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	svc := api.NewProposalService(client, zap.NewNop())

	_, err := svc.Reject(context.Background(), uuid.New(), "")
	require.Error(t, err)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.PhaseRequest, verr.Phase)
	assert.Equal(t, int32(0), hits.Load())
}

func TestOpportunityService_ChangeStageSendsWireInteger(t *testing.T) {
	opp := domain.Opportunity{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		Name:     "Expansion deal",
		Stage:    domain.StageNegotiation,
		Currency: "USD",
	}
	var body domain.ChangeStagePayload

	r := chi.NewRouter()
	r.Put("/opportunities/{id}/stage", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		opp.Stage = domain.StageClosedLost
		opp.LossReason = "Lost on pricing"
		writeJSON(t, w, opp)
	})
	r.Get("/opportunities/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(t, w, opp)
	})

	client, _ := newTestClient(t, r)
	svc := api.NewOpportunityService(client, zap.NewNop())

	updated, err := svc.ChangeStage(context.Background(), opp.ID, domain.StageClosedLost, "", "Lost on pricing")
	require.NoError(t, err)
	assert.Equal(t, domain.WireClosedLost, body.Stage)
	require.NotNil(t, body.LossReason)
	assert.Equal(t, "Lost on pricing", *body.LossReason)
	assert.Equal(t, domain.StageClosedLost, updated.Stage)
}

func TestOpportunityService_ChangeStageToClosedLostNeedsReason(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	svc := api.NewOpportunityService(client, zap.NewNop())

	_, err := svc.ChangeStage(context.Background(), uuid.New(), domain.StageClosedLost, "", "")
	require.Error(t, err)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.PhaseRequest, verr.Phase)
	assert.Equal(t, int32(0), hits.Load())
}

func TestDo_ResponseAcceptsWireIntegerEnums(t *testing.T) {
	// Some endpoints still emit the integer form; the flexible decoder maps
	// it back to the display string before validation.
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"id":         uuid.New().String(),
			"name":       "Acme Industries",
			"clientType": 2,
		})
	}))

	var out domain.Client
	require.NoError(t, client.Get(context.Background(), "/clients/x", nil, &out))
	assert.Equal(t, domain.ClientTypeStandard, out.ClientType)
}
