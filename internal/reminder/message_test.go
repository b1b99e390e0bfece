package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComposeMessage(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		due      [3]int
		ref      [3]int
		expected string
	}{
		{
			name:   "overdue",
			amount: "100.00",
			due:    [3]int{2025, 1, 5},
			ref:    [3]int{2025, 1, 10},
			expected: "Olá Maria, sua parcela de R$100,00 está atrasada há 5 dias, desde 05/01/2025. " +
				"Com multa e juros, o valor total é de R$105,50. Por favor, efetue o pagamento o quanto antes.",
		},
		{
			name:   "overdue one day",
			amount: "100.00",
			due:    [3]int{2025, 1, 5},
			ref:    [3]int{2025, 1, 6},
			expected: "Olá Maria, sua parcela de R$100,00 está atrasada há 1 dia, desde 05/01/2025. " +
				"Com multa e juros, o valor total é de R$105,10. Por favor, efetue o pagamento o quanto antes.",
		},
		{
			name:     "due today",
			amount:   "100.00",
			due:      [3]int{2025, 1, 5},
			ref:      [3]int{2025, 1, 5},
			expected: "Olá Maria, sua parcela de R$100,00 vence hoje, 05/01/2025. Por favor, efetue o pagamento.",
		},
		{
			name:     "due soon",
			amount:   "250.00",
			due:      [3]int{2025, 1, 10},
			ref:      [3]int{2025, 1, 8},
			expected: "Olá Maria, lembramos que sua parcela de R$250,00 vence em breve, no dia 10/01/2025.",
		},
		{
			name:     "due later",
			amount:   "1250.00",
			due:      [3]int{2025, 1, 20},
			ref:      [3]int{2025, 1, 8},
			expected: "Olá Maria, lembramos que sua parcela de R$1.250,00 vence no dia 20/01/2025.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(
				dec(tt.amount),
				date(tt.due[0], monthOf(tt.due[1]), tt.due[2]),
				"Maria",
				date(tt.ref[0], monthOf(tt.ref[1]), tt.ref[2]),
			)
			assert.Equal(t, tt.expected, result.Message)
		})
	}
}

func TestComposeMessage_RoundsOnlyForPresentation(t *testing.T) {
	// 33.33 * 0.03 / 30 = 0.03333 per day; 7 days = 0.23331
	result := Classify(dec("33.33"), date(2025, 1, 1), "Ana", date(2025, 1, 8))

	assert.True(t, result.TotalInterest.Equal(dec("0.23331")))
	assert.True(t, result.CorrectedAmount.Equal(dec("35.22981")))
	assert.Contains(t, result.Message, "R$35,23")
}

func monthOf(m int) time.Month {
	return time.Month(m)
}
