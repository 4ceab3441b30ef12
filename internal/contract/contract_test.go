package contract_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridiancrm/salescycle/internal/contract"
	"github.com/meridiancrm/salescycle/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestCheck_ValidPayloadPasses(t *testing.T) {
	req := domain.CreateClientRequest{
		Name:       "Acme Industries",
		ClientType: domain.ClientTypeProspect.Wire(),
		Email:      "sales@acme.example",
	}
	assert.NoError(t, contract.Check(req, domain.PhaseRequest))
}

func TestCheck_MissingRequiredFieldReportsJSONPath(t *testing.T) {
	req := domain.CreateClientRequest{
		ClientType: domain.ClientTypeStandard.Wire(),
	}
	err := contract.Check(req, domain.PhaseRequest)
	require.Error(t, err)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.PhaseRequest, verr.Phase)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "name")
}

func TestCheck_PhaseIsCarried(t *testing.T) {
	bad := domain.CreateClientRequest{}

	reqErr := contract.Check(bad, domain.PhaseRequest)
	respErr := contract.Check(bad, domain.PhaseResponse)

	reqVerr, ok := domain.AsValidationError(reqErr)
	require.True(t, ok)
	respVerr, ok := domain.AsValidationError(respErr)
	require.True(t, ok)

	assert.Equal(t, domain.PhaseRequest, reqVerr.Phase)
	assert.Equal(t, domain.PhaseResponse, respVerr.Phase)
}

func TestChangeStage_ClosedLostRequiresLossReason(t *testing.T) {
	t.Run("closed lost without reason fails", func(t *testing.T) {
		payload := domain.ChangeStagePayload{Stage: domain.WireClosedLost}
		err := contract.Check(payload, domain.PhaseRequest)
		require.Error(t, err)

		verr, ok := domain.AsValidationError(err)
		require.True(t, ok)
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "lossReason", verr.Fields[0].Field)
	})

	t.Run("closed lost with blank reason fails", func(t *testing.T) {
		payload := domain.ChangeStagePayload{
			Stage:      domain.WireClosedLost,
			LossReason: strPtr("   "),
		}
		assert.Error(t, contract.Check(payload, domain.PhaseRequest))
	})

	t.Run("closed lost with reason passes", func(t *testing.T) {
		payload := domain.ChangeStagePayload{
			Stage:      domain.WireClosedLost,
			LossReason: strPtr("Budget cut"),
		}
		assert.NoError(t, contract.Check(payload, domain.PhaseRequest))
	})

	t.Run("other stages need no reason", func(t *testing.T) {
		for stage := 1; stage <= 5; stage++ {
			payload := domain.ChangeStagePayload{Stage: stage}
			assert.NoError(t, contract.Check(payload, domain.PhaseRequest), "stage %d", stage)
		}
	})

	t.Run("out of range stage fails", func(t *testing.T) {
		assert.Error(t, contract.Check(domain.ChangeStagePayload{Stage: 7}, domain.PhaseRequest))
		assert.Error(t, contract.Check(domain.ChangeStagePayload{Stage: 0}, domain.PhaseRequest))
	})
}

func TestCheck_EnumTagRejectsUnknownValues(t *testing.T) {
	client := domain.Client{
		ID:         uuid.New(),
		Name:       "Acme",
		ClientType: domain.ClientType("Franchise"),
	}
	err := contract.Check(client, domain.PhaseResponse)
	require.Error(t, err)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.PhaseResponse, verr.Phase)
}

func TestCheck_NestedLineItemPathIncludesIndex(t *testing.T) {
	req := domain.CreateProposalRequest{
		OpportunityID: uuid.New(),
		Title:         "Renewal proposal",
		Currency:      "USD",
		LineItems: []domain.LineItemInput{
			{Description: "Licences", Quantity: 2, UnitPrice: 100},
			{Description: "", Quantity: 0, UnitPrice: 50},
		},
	}
	err := contract.Check(req, domain.PhaseRequest)
	require.Error(t, err)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)

	var sawIndexedField bool
	for _, f := range verr.Fields {
		if f.Field == "lineItems[1].description" || f.Field == "lineItems[1].quantity" {
			sawIndexedField = true
		}
	}
	assert.True(t, sawIndexedField, "expected an indexed field path, got %v", verr.Fields)
}

func TestRejectPayload_ReasonRequired(t *testing.T) {
	assert.Error(t, contract.Check(domain.RejectProposalPayload{}, domain.PhaseRequest))
	assert.NoError(t, contract.Check(domain.RejectProposalPayload{Reason: "Scope too broad"}, domain.PhaseRequest))
}

func TestPage_ValidatesItemsElementWise(t *testing.T) {
	good := domain.Client{ID: uuid.New(), Name: "Acme", ClientType: domain.ClientTypeStandard}
	bad := domain.Client{ID: uuid.New(), ClientType: domain.ClientTypeStandard}

	page := contract.Page[domain.Client]{
		Items:      []domain.Client{good, bad},
		PageNumber: 1,
		PageSize:   20,
		TotalCount: 2,
	}
	err := contract.Check(page, domain.PhaseResponse)
	require.Error(t, err)

	page.Items = []domain.Client{good}
	page.TotalCount = 1
	assert.NoError(t, contract.Check(page, domain.PhaseResponse))
}

func TestEnumUnmarshal_AcceptsStringAndWireInt(t *testing.T) {
	t.Run("display string", func(t *testing.T) {
		var s domain.OpportunityStage
		require.NoError(t, json.Unmarshal([]byte(`"Closed Lost"`), &s))
		assert.Equal(t, domain.StageClosedLost, s)
	})

	t.Run("wire integer", func(t *testing.T) {
		var s domain.OpportunityStage
		require.NoError(t, json.Unmarshal([]byte(`6`), &s))
		assert.Equal(t, domain.StageClosedLost, s)
	})

	t.Run("unknown integer errors", func(t *testing.T) {
		var s domain.OpportunityStage
		assert.Error(t, json.Unmarshal([]byte(`42`), &s))
	})

	t.Run("unknown string is kept for the validator to reject", func(t *testing.T) {
		var s domain.OpportunityStage
		require.NoError(t, json.Unmarshal([]byte(`"Paused"`), &s))
		assert.False(t, s.IsValid())
	})
}

func TestEnumWireTables_RoundTrip(t *testing.T) {
	t.Run("opportunity stages", func(t *testing.T) {
		for _, stage := range []domain.OpportunityStage{
			domain.StageLead, domain.StageQualified, domain.StageProposal,
			domain.StageNegotiation, domain.StageClosedWon, domain.StageClosedLost,
		} {
			back, ok := domain.StageFromWire(stage.Wire())
			require.True(t, ok)
			assert.Equal(t, stage, back)
		}
	})

	t.Run("proposal statuses", func(t *testing.T) {
		for _, status := range []domain.ProposalStatus{
			domain.ProposalStatusDraft, domain.ProposalStatusSubmitted,
			domain.ProposalStatusApproved, domain.ProposalStatusRejected,
		} {
			back, ok := domain.ProposalStatusFromWire(status.Wire())
			require.True(t, ok)
			assert.Equal(t, status, back)
		}
	})
}
