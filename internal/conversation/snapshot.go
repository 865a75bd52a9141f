// internal/conversation/snapshot.go
package conversation

import (
	"loan-assistant/internal/common/status"
	"loan-assistant/internal/models"
)

// Snapshot is the immutable view of a session after one transition. Nothing
// reachable from a snapshot is shared with the engine.
type Snapshot struct {
	Version      int                       `json:"version"`
	SessionID    string                    `json:"sessionId"`
	State        State                     `json:"-"`
	Step         Step                      `json:"step"`
	Application  *models.LoanApplication   `json:"application,omitempty"`
	Messages     []models.Message          `json:"messages"`
	Pending      *status.Event             `json:"pending,omitempty"`
	ConsentGiven bool                      `json:"consentGiven"`
	CreditScore  *models.CreditScoreRecord `json:"creditScore,omitempty"`
	QuickReplies []string                  `json:"quickReplies,omitempty"`
}

// LastMessage returns the newest transcript entry, if any.
func (s Snapshot) LastMessage() (models.Message, bool) {
	if len(s.Messages) == 0 {
		return models.Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// Result is what a finished application hands back to the caller.
type Result struct {
	Application  models.LoanApplication `json:"application"`
	Sanction     *models.SanctionLetter `json:"sanction,omitempty"`
	Disbursement *models.Disbursement   `json:"disbursement,omitempty"`
}

// SnapshotListener receives every published snapshot, in order.
type SnapshotListener func(Snapshot)

func cloneApplication(a *models.LoanApplication) *models.LoanApplication {
	if a == nil {
		return nil
	}
	cp := *a
	if a.SelectedOffer != nil {
		offer := a.SelectedOffer.Clone()
		cp.SelectedOffer = &offer
	}
	return &cp
}

func cloneLetter(l *models.SanctionLetter) *models.SanctionLetter {
	if l == nil {
		return nil
	}
	cp := *l
	cp.Terms = append([]string(nil), l.Terms...)
	return &cp
}
