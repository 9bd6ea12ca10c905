package review

// Outcome is the single aggregate status committed for a whole record.
type Outcome string

const (
	OutcomeApproved  Outcome = "approved"
	OutcomeCorrected Outcome = "corrected"
	OutcomeOnHold    Outcome = "on_hold"
	OutcomeRejected  Outcome = "rejected"
)

// ResolveOutcome derives the aggregate outcome from the per-row
// dispositions and the presence of corrections. Rules are evaluated
// top to bottom; the first match wins:
//
//  1. any row rejected            -> rejected
//  2. any correction recorded     -> corrected
//  3. any row flagged             -> on_hold
//  4. every row approved          -> approved
//  5. anything else               -> on_hold
//
// Rejection is a hard stop and must not be softened into a correction
// or approval. A correction means at least one field was wrong, which
// outranks a flag. Full approval requires unanimity; a record left
// partly pending goes on hold rather than silently through.
func ResolveOutcome(board *StatusBoard, corrections *CorrectionSet) Outcome {
	if board.Any(DispositionRejected) {
		return OutcomeRejected
	}
	if !corrections.Empty() {
		return OutcomeCorrected
	}
	if board.Any(DispositionFlagged) {
		return OutcomeOnHold
	}
	if board.Every(DispositionApproved) {
		return OutcomeApproved
	}
	return OutcomeOnHold
}
