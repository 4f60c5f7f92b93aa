package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"eventmanagement/internal/model"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

// memoryTickets implements Querier over an in-memory tickets table, honoring
// the guard and clamp semantics of the ledger statements so the repository
// methods can be driven end to end.
type memoryTickets struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*model.Ticket
}

func newMemoryTickets() *memoryTickets {
	return &memoryTickets{rows: map[int64]*model.Ticket{}}
}

func (m *memoryTickets) seed(t model.Ticket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t.ID = m.nextID
	m.rows[t.EventID] = &t
}

func (m *memoryTickets) left(eventID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[eventID].TicketsLeft
}

func (m *memoryTickets) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case strings.Contains(sql, "tickets_left = tickets_left -"):
		eventID, qty := args[0].(int64), args[1].(int)
		t, ok := m.rows[eventID]
		if !ok || t.TicketsLeft < qty {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		}
		t.TicketsLeft -= qty
		return pgconn.NewCommandTag("UPDATE 1"), nil
	case strings.Contains(sql, "LEAST"):
		eventID, name, capacity := args[0].(int64), args[1].(string), args[2].(int)
		t, ok := m.rows[eventID]
		if !ok {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		}
		t.EventName = name
		t.MaxTickets = capacity
		if t.TicketsLeft > capacity {
			t.TicketsLeft = capacity
		}
		return pgconn.NewCommandTag("UPDATE 1"), nil
	case strings.Contains(sql, "INSERT INTO tickets"):
		eventID := args[0].(int64)
		if _, ok := m.rows[eventID]; ok {
			return pgconn.NewCommandTag("INSERT 0 0"), nil
		}
		capacity := args[2].(int)
		m.nextID++
		m.rows[eventID] = &model.Ticket{
			ID: m.nextID, EventID: eventID, EventName: args[1].(string),
			MaxTickets: capacity, TicketsLeft: capacity,
		}
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	return pgconn.CommandTag{}, fmt.Errorf("unexpected exec: %s", sql)
}

func (m *memoryTickets) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case strings.Contains(sql, "FROM tickets WHERE event_id"):
		t, ok := m.rows[args[0].(int64)]
		if !ok {
			return fakeRow{func(dest ...any) error { return pgx.ErrNoRows }}
		}
		row := *t
		return fakeRow{func(dest ...any) error {
			*(dest[0].(*int64)) = row.ID
			*(dest[1].(*int64)) = row.EventID
			*(dest[2].(*string)) = row.EventName
			*(dest[3].(*int)) = row.MaxTickets
			*(dest[4].(*int)) = row.TicketsLeft
			return nil
		}}
	case strings.Contains(sql, "INSERT INTO tickets"):
		eventID := args[0].(int64)
		if _, ok := m.rows[eventID]; ok {
			return fakeRow{func(dest ...any) error { return pgx.ErrNoRows }}
		}
		m.nextID++
		id := m.nextID
		m.rows[eventID] = &model.Ticket{
			ID: id, EventID: eventID, EventName: args[1].(string),
			MaxTickets: args[2].(int), TicketsLeft: args[3].(int),
		}
		return fakeRow{func(dest ...any) error {
			*(dest[0].(*int64)) = id
			return nil
		}}
	}
	return fakeRow{func(dest ...any) error { return fmt.Errorf("unexpected query: %s", sql) }}
}

func (m *memoryTickets) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("unexpected query: %s", sql)
}

func TestReserve_GuardHoldsOnLastSeat(t *testing.T) {
	t.Parallel()

	store := newMemoryTickets()
	store.seed(model.Ticket{EventID: 7, EventName: "GopherCon", MaxTickets: 100, TicketsLeft: 1})
	repo := NewTicketRepository()

	affected, err := repo.Reserve(context.Background(), store, 7, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 1 {
		t.Fatalf("first reserve affected %d rows, want 1", affected)
	}

	affected, err = repo.Reserve(context.Background(), store, 7, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("second reserve affected %d rows, want 0", affected)
	}
	if got := store.left(7); got != 0 {
		t.Errorf("tickets_left = %d, want 0", got)
	}
}

func TestReserve_ConcurrentCallersOneSeat(t *testing.T) {
	t.Parallel()

	store := newMemoryTickets()
	store.seed(model.Ticket{EventID: 7, EventName: "GopherCon", MaxTickets: 100, TicketsLeft: 1})
	repo := NewTicketRepository()

	results := make(chan int64, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			affected, err := repo.Reserve(context.Background(), store, 7, 1)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results <- affected
		}()
	}
	wg.Wait()
	close(results)

	var successes int64
	for affected := range results {
		successes += affected
	}
	if successes != 1 {
		t.Errorf("exactly one caller should win the last seat, got %d", successes)
	}
	if got := store.left(7); got != 0 {
		t.Errorf("tickets_left = %d, want 0", got)
	}
}

func TestReserve_RejectsOversizedRequest(t *testing.T) {
	t.Parallel()

	store := newMemoryTickets()
	store.seed(model.Ticket{EventID: 7, EventName: "GopherCon", MaxTickets: 100, TicketsLeft: 2})
	repo := NewTicketRepository()

	affected, err := repo.Reserve(context.Background(), store, 7, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("reserve affected %d rows, want 0", affected)
	}
	if got := store.left(7); got != 2 {
		t.Errorf("tickets_left = %d, want 2 untouched", got)
	}
}

func TestSync_CapacityRaiseNeverRestoresSoldSeats(t *testing.T) {
	t.Parallel()

	// 60 of 100 seats sold, then capacity raised to 150.
	store := newMemoryTickets()
	store.seed(model.Ticket{EventID: 7, EventName: "GopherCon", MaxTickets: 100, TicketsLeft: 40})
	repo := NewTicketRepository()

	if err := repo.Sync(context.Background(), store, 7, "GopherCon", 150); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ledger, err := repo.Get(context.Background(), store, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ledger.MaxTickets != 150 {
		t.Errorf("max_tickets = %d, want 150", ledger.MaxTickets)
	}
	if ledger.TicketsLeft != 40 {
		t.Errorf("tickets_left = %d, want 40 (sold seats stay sold)", ledger.TicketsLeft)
	}
}

func TestSync_CapacityCutClampsRemaining(t *testing.T) {
	t.Parallel()

	store := newMemoryTickets()
	store.seed(model.Ticket{EventID: 7, EventName: "GopherCon", MaxTickets: 100, TicketsLeft: 40})
	repo := NewTicketRepository()

	if err := repo.Sync(context.Background(), store, 7, "GopherCon", 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ledger, err := repo.Get(context.Background(), store, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ledger.TicketsLeft != 30 {
		t.Errorf("tickets_left = %d, want 30 (clamped to new capacity)", ledger.TicketsLeft)
	}
}

func TestSync_CreatesMissingRowAtFullCapacity(t *testing.T) {
	t.Parallel()

	store := newMemoryTickets()
	repo := NewTicketRepository()

	if err := repo.Sync(context.Background(), store, 7, "GopherCon", 120); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ledger, err := repo.Get(context.Background(), store, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ledger.MaxTickets != 120 || ledger.TicketsLeft != 120 {
		t.Errorf("ledger = %d/%d, want 120/120", ledger.TicketsLeft, ledger.MaxTickets)
	}
}

func TestEnsure_SeedsFromBookedCount(t *testing.T) {
	t.Parallel()

	store := newMemoryTickets()
	repo := NewTicketRepository()

	ledger, err := repo.Ensure(context.Background(), store, 7, "GopherCon", 100, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ledger.TicketsLeft != 40 {
		t.Errorf("tickets_left = %d, want 40", ledger.TicketsLeft)
	}

	// A second call must not reset the remaining count.
	if _, err := repo.Reserve(context.Background(), store, 7, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ledger, err = repo.Ensure(context.Background(), store, 7, "GopherCon", 100, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ledger.TicketsLeft != 30 {
		t.Errorf("tickets_left = %d after re-ensure, want 30", ledger.TicketsLeft)
	}
}

func TestEnsure_FloorsAtZero(t *testing.T) {
	t.Parallel()

	store := newMemoryTickets()
	repo := NewTicketRepository()

	ledger, err := repo.Ensure(context.Background(), store, 7, "GopherCon", 50, 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ledger.TicketsLeft != 0 {
		t.Errorf("tickets_left = %d, want 0", ledger.TicketsLeft)
	}
}
