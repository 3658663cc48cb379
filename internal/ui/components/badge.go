package components

import (
	"vapi-dashboard-tui/internal/models"
	"vapi-dashboard-tui/internal/ui/styles"
)

// EvaluationBadge renders a colored outcome label for a call.
func EvaluationBadge(status models.EvaluationStatus) string {
	return styles.GetEvaluationStyle(status).Render(string(status))
}

// EvaluationSymbol returns a compact one-character marker for table rows.
func EvaluationSymbol(status models.EvaluationStatus) string {
	switch status {
	case models.EvaluationSuccessful:
		return styles.EvaluationSuccessStyle.Render("✓")
	case models.EvaluationFailed:
		return styles.EvaluationFailedStyle.Render("✗")
	default:
		return styles.EvaluationNoAnswerStyle.Render("·")
	}
}
