package notification

import (
	"fmt"
	"strings"

	"gymadmin/internal/domain"
)

// Subject and body builders for the email side channel. Pure functions of
// the transaction type; swapping the wording never touches the fan-out
// invariants.

func subjectFor(t domain.TransactionType) string {
	return fmt.Sprintf("%s %s", entityLabel(t), verbLabel(t))
}

func messageFor(t domain.TransactionType, issuerName string) string {
	return fmt.Sprintf("%s %s a %s", issuerName, pastVerb(t), strings.ToLower(entityLabel(t)))
}

func entityLabel(t domain.TransactionType) string {
	switch t.RelationField() {
	case domain.RelationActivity:
		return "Activity"
	case domain.RelationPlan:
		return "Plan"
	case domain.RelationDiary:
		return "Diary"
	case domain.RelationRoutine:
		return "Routine"
	case domain.RelationPresetRoutine:
		return "Preset routine"
	case domain.RelationNutritionalPlan:
		return "Nutritional plan"
	case domain.RelationPresetNutritionalPlan:
		return "Preset nutritional plan"
	case domain.RelationInvoice:
		return "Invoice"
	case domain.RelationPayment:
		return "Payment"
	default:
		return "User"
	}
}

func verbLabel(t domain.TransactionType) string {
	s := string(t)
	switch {
	case strings.HasSuffix(s, "_CREATED"):
		return "created"
	case strings.HasSuffix(s, "_UPDATED"):
		return "updated"
	case strings.HasSuffix(s, "_DELETED"):
		return "deleted"
	case strings.HasSuffix(s, "_REPLICATED"):
		return "replicated"
	case strings.HasPrefix(s, "ASSIGN_"):
		return "assigned"
	case strings.HasPrefix(s, "UNASSIGN_"):
		return "unassigned"
	default:
		return "changed"
	}
}

func pastVerb(t domain.TransactionType) string {
	return verbLabel(t)
}
