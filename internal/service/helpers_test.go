package service

import (
	"github.com/segyhp/reminder-engine/internal/config"
	"github.com/segyhp/reminder-engine/internal/domain"
	"github.com/segyhp/reminder-engine/internal/mocks"

	"github.com/stretchr/testify/mock"
)

func testConfig() *config.Config {
	return &config.Config{
		Scheduler: config.SchedulerConfig{Timezone: "UTC"},
		Business: config.BusinessConfig{
			LateFeeRate:          "0.05",
			MonthlyInterestRate:  "0.03",
			InterestDaysPerMonth: 30,
			DueSoonDays:          3,
		},
		Reminder: config.ReminderConfig{CountryCode: "55", DaysAhead: 3, Dedup: true},
		Backlog:  config.BacklogConfig{ResponsibleUser: "ops@test"},
	}
}

// newBacklog returns a backlog service whose repository accepts any entry
func newBacklog() (*BacklogService, *mocks.MockBacklogRepository) {
	repo := &mocks.MockBacklogRepository{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.BacklogEntry")).Return(nil).Maybe()
	return NewBacklogService(repo, testConfig(), nil), repo
}

// loggedDescriptions returns the descriptions of every backlog entry written through repo
func loggedDescriptions(repo *mocks.MockBacklogRepository) []string {
	var out []string
	for _, call := range repo.Calls {
		if call.Method == "Create" {
			out = append(out, call.Arguments.Get(1).(*domain.BacklogEntry).Description)
		}
	}
	return out
}
