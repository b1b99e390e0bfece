package reminder

import (
	"fmt"

	"github.com/segyhp/reminder-engine/internal/domain"
	"github.com/segyhp/reminder-engine/pkg/utils"
)

// ComposeMessage renders the pt-BR reminder text for an already classified payment.
func ComposeMessage(clientName string, r domain.ReminderResult) string {
	amount := utils.FormatBRL(r.Amount)
	due := utils.FormatDateBR(r.DueDate)

	switch r.Bucket {
	case domain.BucketOverdue:
		return fmt.Sprintf(
			"Olá %s, sua parcela de %s está atrasada há %s, desde %s. "+
				"Com multa e juros, o valor total é de %s. Por favor, efetue o pagamento o quanto antes.",
			clientName, amount, daysLabel(r.DaysLate), due, utils.FormatBRL(r.CorrectedAmount),
		)
	case domain.BucketDueToday:
		return fmt.Sprintf("Olá %s, sua parcela de %s vence hoje, %s. Por favor, efetue o pagamento.",
			clientName, amount, due)
	case domain.BucketDueSoon:
		return fmt.Sprintf("Olá %s, lembramos que sua parcela de %s vence em breve, no dia %s.",
			clientName, amount, due)
	default:
		return fmt.Sprintf("Olá %s, lembramos que sua parcela de %s vence no dia %s.",
			clientName, amount, due)
	}
}

func daysLabel(days int) string {
	if days == 1 {
		return "1 dia"
	}
	return fmt.Sprintf("%d dias", days)
}
