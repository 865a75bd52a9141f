// internal/lending/eligibility.go
package lending

import "loan-assistant/internal/models"

// ScoreThreshold is the minimum bureau score for approval on the consent path.
const ScoreThreshold = 700

const (
	ReasonScoreBelowThreshold = "credit score below threshold"
	ReasonManualReview        = "requested amount exceeds twice the pre-approved limit"
)

// ManualReviewOptions are offered to the applicant after a manual-review rejection.
var ManualReviewOptions = []string{"appeal", "contact support", "reapply later", "add co-applicant"}

type Outcome string

const (
	OutcomeInstant         Outcome = "instant"
	OutcomeConsentRequired Outcome = "consent_required"
	OutcomeManualReview    Outcome = "manual_review"
)

// PreEligibility is the result of the one-time check made before any credit pull.
type PreEligibility struct {
	Outcome   Outcome `json:"outcome"`
	Requested int64   `json:"requested"`
	Limit     int64   `json:"limit"`
}

// EvaluatePreEligibility classifies the request against the pre-approved limit.
func EvaluatePreEligibility(requested, preApprovedLimit int64) PreEligibility {
	p := PreEligibility{Requested: requested, Limit: preApprovedLimit}
	switch {
	case requested <= preApprovedLimit:
		p.Outcome = OutcomeInstant
	case requested <= 2*preApprovedLimit:
		p.Outcome = OutcomeConsentRequired
	default:
		p.Outcome = OutcomeManualReview
	}
	return p
}

type Decision struct {
	Approved bool   `json:"approved"`
	Score    int    `json:"score"`
	Reason   string `json:"reason,omitempty"`
}

// Decide applies the fixed threshold.
func Decide(score int) Decision {
	return DecideWithThreshold(score, ScoreThreshold)
}

func DecideWithThreshold(score, threshold int) Decision {
	if score >= threshold {
		return Decision{Approved: true, Score: score}
	}
	return Decision{Approved: false, Score: score, Reason: ReasonScoreBelowThreshold}
}

// Evaluation is the full decision for given inputs. On the consent path with
// no score yet, Status stays draft and CreditPullRequired is set.
type Evaluation struct {
	Outcome            Outcome                  `json:"outcome"`
	Status             models.ApplicationStatus `json:"status"`
	Reason             string                   `json:"reason,omitempty"`
	CreditPullRequired bool                     `json:"creditPullRequired"`
	Options            []string                 `json:"options,omitempty"`
}

// Evaluate composes the pre-eligibility split with the score decision. It is
// pure: the score is ignored on the instant and manual-review paths.
func Evaluate(requested, preApprovedLimit int64, score *int) Evaluation {
	pre := EvaluatePreEligibility(requested, preApprovedLimit)
	switch pre.Outcome {
	case OutcomeInstant:
		return Evaluation{Outcome: pre.Outcome, Status: models.StatusApproved}
	case OutcomeManualReview:
		return Evaluation{
			Outcome: pre.Outcome,
			Status:  models.StatusRejected,
			Reason:  ReasonManualReview,
			Options: append([]string(nil), ManualReviewOptions...),
		}
	}

	eval := Evaluation{Outcome: pre.Outcome, CreditPullRequired: true}
	if score == nil {
		eval.Status = models.StatusDraft
		return eval
	}
	d := Decide(*score)
	if d.Approved {
		eval.Status = models.StatusApproved
	} else {
		eval.Status = models.StatusRejected
		eval.Reason = d.Reason
	}
	return eval
}
