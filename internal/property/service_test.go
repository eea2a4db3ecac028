package property

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// stubProbe answers overlap and activity questions per property ID.
type stubProbe struct {
	overlapping map[string]bool
	active      map[string]bool
}

func (p *stubProbe) HasOverlap(ctx context.Context, propertyID string, start, end time.Time, excludeBookingID string) (bool, error) {
	return p.overlapping[propertyID], nil
}

func (p *stubProbe) HasActiveAt(ctx context.Context, propertyID string, at time.Time) (bool, error) {
	return p.active[propertyID], nil
}

func newTestService() (*service, *MemoryRepository, *stubProbe) {
	repo := NewMemoryRepository()
	probe := &stubProbe{
		overlapping: make(map[string]bool),
		active:      make(map[string]bool),
	}
	svc := &service{
		repo:     repo,
		bookings: probe,
		now:      func() time.Time { return testNow },
	}
	return svc, repo, probe
}

func validCreate(customerID string) CreateRequest {
	return CreateRequest{
		CustomerID:   customerID,
		Name:         "Lake Cabin",
		Type:         "cabin",
		Description:  "quiet place by the lake",
		MinTime:      2,
		MaxTime:      6,
		PricePerHour: 80,
	}
}

func TestCreateProperty(t *testing.T) {
	svc, _, _ := newTestService()

	p, err := svc.Create(context.Background(), validCreate("owner"))
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "owner", p.CustomerID)
}

func TestCreatePropertyValidation(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr error
	}{
		{
			name:    "empty name",
			mutate:  func(r *CreateRequest) { r.Name = "  " },
			wantErr: ErrEmptyName,
		},
		{
			name:    "min time below one",
			mutate:  func(r *CreateRequest) { r.MinTime = 0 },
			wantErr: ErrInvalidMinTime,
		},
		{
			name:    "min time equal to max time",
			mutate:  func(r *CreateRequest) { r.MinTime = 6 },
			wantErr: ErrInvalidTime,
		},
		{
			name:    "min time above max time",
			mutate:  func(r *CreateRequest) { r.MinTime, r.MaxTime = 6, 2 },
			wantErr: ErrInvalidTime,
		},
		{
			name:    "non-positive price",
			mutate:  func(r *CreateRequest) { r.PricePerHour = 0 },
			wantErr: ErrInvalidPrice,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreate("owner")
			tc.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUpdateProperty(t *testing.T) {
	svc, _, _ := newTestService()

	p, err := svc.Create(context.Background(), validCreate("owner"))
	require.NoError(t, err)

	t.Run("only the owner may update", func(t *testing.T) {
		name := "New Name"
		_, err := svc.Update(context.Background(), p.ID, "intruder", UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotOwnedByCustomer)
	})

	t.Run("absent fields stay untouched", func(t *testing.T) {
		name := "Forest Cabin"
		updated, err := svc.Update(context.Background(), p.ID, "owner", UpdateRequest{Name: &name})
		require.NoError(t, err)

		assert.Equal(t, "Forest Cabin", updated.Name)
		assert.Equal(t, p.Type, updated.Type)
		assert.Equal(t, p.Description, updated.Description)
		assert.Equal(t, p.MinTime, updated.MinTime)
		assert.Equal(t, p.MaxTime, updated.MaxTime)
		assert.Equal(t, p.PricePerHour, updated.PricePerHour)
		require.NotNil(t, updated.UpdatedAt)
		assert.Equal(t, testNow, *updated.UpdatedAt)
	})

	t.Run("the time pair is validated after patching", func(t *testing.T) {
		minTime := 10
		_, err := svc.Update(context.Background(), p.ID, "owner", UpdateRequest{MinTime: &minTime})
		assert.ErrorIs(t, err, ErrInvalidTime)
	})

	t.Run("both bounds may move together", func(t *testing.T) {
		minTime, maxTime := 4, 12
		updated, err := svc.Update(context.Background(), p.ID, "owner", UpdateRequest{MinTime: &minTime, MaxTime: &maxTime})
		require.NoError(t, err)
		assert.Equal(t, 4, updated.MinTime)
		assert.Equal(t, 12, updated.MaxTime)
	})
}

func TestFindAvailable(t *testing.T) {
	svc, repo, probe := newTestService()

	seed := func(name, typ string, price float64) *Property {
		p := &Property{
			CustomerID:   "owner",
			Name:         name,
			Type:         typ,
			Description:  name + " listing",
			MinTime:      1,
			MaxTime:      8,
			PricePerHour: price,
		}
		require.NoError(t, repo.Create(context.Background(), p))
		return p
	}

	cabin := seed("Lake Cabin", "cabin", 80)
	loft := seed("City Loft", "apartment", 120)
	house := seed("Beach House", "house", 200)

	start := testNow.Add(24 * time.Hour)
	end := start.Add(3 * time.Hour)

	t.Run("invalid period is rejected", func(t *testing.T) {
		_, err := svc.FindAvailable(context.Background(), AvailabilityQuery{StartDate: end, EndDate: start})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("booked properties are filtered out", func(t *testing.T) {
		probe.overlapping[loft.ID] = true
		defer delete(probe.overlapping, loft.ID)

		found, err := svc.FindAvailable(context.Background(), AvailabilityQuery{StartDate: start, EndDate: end})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, cabin.ID, found[0].ID)
		assert.Equal(t, house.ID, found[1].ID)
	})

	t.Run("text filters narrow the result", func(t *testing.T) {
		found, err := svc.FindAvailable(context.Background(), AvailabilityQuery{
			StartDate: start,
			EndDate:   end,
			Name:      "beach",
		})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, house.ID, found[0].ID)
	})

	t.Run("results can be ordered by price descending", func(t *testing.T) {
		found, err := svc.FindAvailable(context.Background(), AvailabilityQuery{
			StartDate:      start,
			EndDate:        end,
			OrderBy:        "pricePerHour",
			OrderDirection: "desc",
		})
		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, house.ID, found[0].ID)
		assert.Equal(t, loft.ID, found[1].ID)
		assert.Equal(t, cabin.ID, found[2].ID)
	})
}

func TestDeleteProperty(t *testing.T) {
	svc, repo, probe := newTestService()

	p, err := svc.Create(context.Background(), validCreate("owner"))
	require.NoError(t, err)

	t.Run("only the owner may delete", func(t *testing.T) {
		err := svc.Delete(context.Background(), p.ID, "intruder")
		assert.ErrorIs(t, err, ErrNotOwnedByCustomer)
	})

	t.Run("an in-progress booking blocks deletion", func(t *testing.T) {
		probe.active[p.ID] = true
		defer delete(probe.active, p.ID)

		err := svc.Delete(context.Background(), p.ID, "owner")
		assert.ErrorIs(t, err, ErrHasActiveBookings)
	})

	t.Run("future bookings do not block deletion", func(t *testing.T) {
		// The probe only reports in-progress bookings, so a property with
		// purely future bookings deletes cleanly.
		require.NoError(t, svc.Delete(context.Background(), p.ID, "owner"))

		_, err := repo.GetByID(context.Background(), p.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
