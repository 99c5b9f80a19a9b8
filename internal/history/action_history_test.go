package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/spec-kit/ticket-queue/internal/domain"
)

func action(n int) domain.Action {
	return domain.Action{
		Type:        domain.ActionTicketCreated,
		Payload:     domain.TicketCreatedPayload{TicketID: fmt.Sprintf("T-%d", n)},
		Description: fmt.Sprintf("action %d", n),
	}
}

func descriptions(actions []domain.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Description
	}
	return out
}

func TestNewActionHistoryDefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, NewActionHistory(0).Cap())
	assert.Equal(t, DefaultCapacity, NewActionHistory(-3).Cap())
	assert.Equal(t, 7, NewActionHistory(7).Cap())
}

func TestPushEvictsOldestAtCapacity(t *testing.T) {
	h := NewActionHistory(DefaultCapacity)
	for i := 1; i <= 51; i++ {
		h.Push(action(i))
	}

	require.Equal(t, 50, h.Len())
	all := h.All()
	assert.Equal(t, "action 51", all[0].Description)
	assert.Equal(t, "action 2", all[len(all)-1].Description)
	assert.NotContains(t, descriptions(all), "action 1")
}

func TestPopIsLIFOThenEmpty(t *testing.T) {
	h := NewActionHistory(10)
	for i := 1; i <= 3; i++ {
		h.Push(action(i))
	}

	var popped []string
	for i := 0; i < 5; i++ {
		a, ok := h.Pop()
		if !ok {
			assert.Equal(t, domain.Action{}, a)
			continue
		}
		popped = append(popped, a.Description)
	}
	assert.Equal(t, []string{"action 3", "action 2", "action 1"}, popped)
	assert.True(t, h.IsEmpty())
}

func TestPeekDoesNotRemove(t *testing.T) {
	h := NewActionHistory(3)
	_, ok := h.Peek()
	assert.False(t, ok)

	h.Push(action(1))
	h.Push(action(2))
	a, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, "action 2", a.Description)
	assert.Equal(t, 2, h.Len())
}

func TestGetRecent(t *testing.T) {
	h := NewActionHistory(5)
	for i := 1; i <= 7; i++ {
		h.Push(action(i))
	}

	assert.Equal(t, []string{"action 7", "action 6"}, descriptions(h.GetRecent(2)))
	assert.Equal(t, []string{"action 7", "action 6", "action 5", "action 4", "action 3"}, descriptions(h.GetRecent(100)))
	assert.Empty(t, h.GetRecent(0))
	assert.Empty(t, h.GetRecent(-1))
	assert.Equal(t, 5, h.Len(), "GetRecent must not mutate")
}

func TestPopAfterWraparoundThenPush(t *testing.T) {
	h := NewActionHistory(3)
	for i := 1; i <= 5; i++ {
		h.Push(action(i))
	}
	a, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, "action 5", a.Description)

	h.Push(action(6))
	h.Push(action(7))
	assert.Equal(t, []string{"action 7", "action 6", "action 4"}, descriptions(h.All()))

	h.Clear()
	assert.True(t, h.IsEmpty())
	h.Push(action(8))
	assert.Equal(t, []string{"action 8"}, descriptions(h.All()))
}

// Any interleaving of pushes and pops matches a plain slice model that drops
// its first element when a push would exceed capacity.
func TestHistoryMatchesSliceModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 8).Draw(t, "capacity")
		h := NewActionHistory(capacity)
		var model []string

		ops := rapid.SliceOfN(rapid.Bool(), 0, 60).Draw(t, "ops")
		for i, push := range ops {
			if push {
				if len(model) == capacity {
					model = model[1:]
				}
				a := action(i)
				h.Push(a)
				model = append(model, a.Description)
			} else {
				a, ok := h.Pop()
				if len(model) == 0 {
					if ok {
						t.Fatalf("pop on empty model returned %q", a.Description)
					}
					continue
				}
				want := model[len(model)-1]
				model = model[:len(model)-1]
				if !ok || a.Description != want {
					t.Fatalf("pop = %q, %v; want %q", a.Description, ok, want)
				}
			}
			if h.Len() != len(model) {
				t.Fatalf("len = %d; want %d", h.Len(), len(model))
			}
		}

		got := descriptions(h.All())
		for i := range model {
			if got[i] != model[len(model)-1-i] {
				t.Fatalf("All()[%d] = %q; want %q", i, got[i], model[len(model)-1-i])
			}
		}
	})
}
