package dialogue

// Reply templates for each step of the intake flow. The review prompt takes
// the product name; the confirmation takes the reviewer name then the product.
const (
	PromptProduct      = "Which product is this review for?"
	PromptName         = "What's your name?"
	PromptReviewFmt    = "Please send your review for %s."
	ConfirmationFmt    = "Thanks %s — your review for %s has been recorded."
	ApologyUnavailable = "Sorry, we couldn't record your review just now. Please send it again in a moment."
)
