// Package mapper converts display-form drafts into the wire request shapes
// the backend expects. All enum string-to-integer conversion funnels through
// here and the wire tables in the domain package; nothing else performs it.
package mapper

import (
	"github.com/meridiancrm/salescycle/internal/domain"
)

// ToCreateClientRequest converts a ClientDraft to its wire request
func ToCreateClientRequest(d *domain.ClientDraft) *domain.CreateClientRequest {
	return &domain.CreateClientRequest{
		Name:       d.Name,
		Industry:   d.Industry,
		ClientType: d.ClientType.Wire(),
		Email:      d.Email,
		Phone:      d.Phone,
		Website:    d.Website,
	}
}

// ToCreateContactRequest converts a ContactDraft to its wire request
func ToCreateContactRequest(d *domain.ContactDraft) *domain.CreateContactRequest {
	return &domain.CreateContactRequest{
		ClientID:         d.ClientID,
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		Email:            d.Email,
		Phone:            d.Phone,
		Title:            d.Title,
		IsPrimaryContact: d.IsPrimaryContact,
	}
}

// ToCreateOpportunityRequest converts an OpportunityDraft to its wire request
func ToCreateOpportunityRequest(d *domain.OpportunityDraft) *domain.CreateOpportunityRequest {
	return &domain.CreateOpportunityRequest{
		ClientID:          d.ClientID,
		ContactID:         d.ContactID,
		Name:              d.Name,
		Description:       d.Description,
		Stage:             d.Stage.Wire(),
		EstimatedValue:    d.EstimatedValue,
		Currency:          d.Currency,
		Probability:       d.Probability,
		ExpectedCloseDate: d.ExpectedCloseDate,
	}
}

// ToChangeStagePayload builds the stage-transition payload for an
// opportunity. Empty notes and loss reason are transmitted as JSON null.
func ToChangeStagePayload(stage domain.OpportunityStage, notes, lossReason string) *domain.ChangeStagePayload {
	p := &domain.ChangeStagePayload{Stage: stage.Wire()}
	if notes != "" {
		p.Notes = &notes
	}
	if lossReason != "" {
		p.LossReason = &lossReason
	}
	return p
}

// ToCreateProposalRequest converts a ProposalDraft to its wire request
func ToCreateProposalRequest(d *domain.ProposalDraft) *domain.CreateProposalRequest {
	return &domain.CreateProposalRequest{
		OpportunityID: d.OpportunityID,
		Title:         d.Title,
		Currency:      d.Currency,
		ValidUntil:    d.ValidUntil,
		LineItems:     d.LineItems,
	}
}

// ToCreatePricingRequestRequest converts a PricingRequestDraft to its wire request
func ToCreatePricingRequestRequest(d *domain.PricingRequestDraft) *domain.CreatePricingRequestRequest {
	return &domain.CreatePricingRequestRequest{
		ClientID:      d.ClientID,
		OpportunityID: d.OpportunityID,
		Title:         d.Title,
		Description:   d.Description,
		Priority:      d.Priority.Wire(),
		NeededBy:      d.NeededBy,
	}
}

// ToCreateContractRequest converts a ContractDraft to its wire request
func ToCreateContractRequest(d *domain.ContractDraft) *domain.CreateContractRequest {
	return &domain.CreateContractRequest{
		ClientID:      d.ClientID,
		OpportunityID: d.OpportunityID,
		ProposalID:    d.ProposalID,
		Title:         d.Title,
		Value:         d.Value,
		Currency:      d.Currency,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
	}
}

// ToCreateActivityRequest converts an ActivityDraft to its wire request
func ToCreateActivityRequest(d *domain.ActivityDraft) *domain.CreateActivityRequest {
	return &domain.CreateActivityRequest{
		Subject:       d.Subject,
		ActivityType:  d.ActivityType.Wire(),
		RelatedToType: d.RelatedToType.Wire(),
		RelatedToID:   d.RelatedToID,
		ScheduledAt:   d.ScheduledAt,
		AssignedToID:  d.AssignedToID,
		Notes:         d.Notes,
	}
}

// ToCreateNoteRequest converts a NoteDraft to its wire request
func ToCreateNoteRequest(d *domain.NoteDraft) *domain.CreateNoteRequest {
	return &domain.CreateNoteRequest{
		RelatedToType: d.RelatedToType.Wire(),
		RelatedToID:   d.RelatedToID,
		Body:          d.Body,
	}
}
