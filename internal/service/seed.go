package service

import (
	"context"
	"fmt"

	"github.com/spec-kit/ticket-queue/internal/domain"
)

type sampleTicket struct {
	title       string
	description string
	client      string
	priority    domain.TicketPriority
}

var sampleTickets = []sampleTicket{
	{"Login error", "Users cannot access the system", "Juan Pérez", domain.TicketPriorityHigh},
	{"Application slowness", "The web application is very slow", "María García", domain.TicketPriorityMedium},
	{"Reports bug", "Reports are not generated correctly", "Carlos López", domain.TicketPriorityHigh},
	{"New feature request", "Add advanced filters", "Ana Rodríguez", domain.TicketPriorityLow},
	{"Server error 500", "Recurring internal server error", "Luis Martín", domain.TicketPriorityCritical},
}

// assignedSamples is how many sample tickets start in progress with a technician.
const assignedSamples = 2

// SeedSampleData loads the demo fixture. The first tickets are moved to in-progress
// and assigned before registration, so only creation actions are recorded.
func SeedSampleData(ctx context.Context, m *TicketManager) []domain.Ticket {
	seeded := make([]domain.Ticket, 0, len(sampleTickets))
	for i, sample := range sampleTickets {
		ticket := domain.NewTicket(sample.title, sample.description, sample.client, sample.priority)
		if i < assignedSamples {
			ticket.SetStatus(domain.TicketStatusInProgress)
			ticket.Assign(fmt.Sprintf("Technician %d", i+1))
		}
		snapshot := *ticket.Clone()
		if m.AddTicket(ctx, ticket) {
			seeded = append(seeded, snapshot)
		}
	}
	return seeded
}
