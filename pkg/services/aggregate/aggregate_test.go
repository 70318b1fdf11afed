package aggregate

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/fg-sync/pkg/models/domain"
)

func TestDay(t *testing.T) {
	assert.Equal(t, "2025-03-10", Day("2025-03-10 14:00:00"))
	assert.Equal(t, "2025-03-10", Day("2025-03-10"))
	assert.Equal(t, "", Day(""))
	assert.Equal(t, "", Day("10/03/2025"))
}

func TestPack_SameDayOrderCompany(t *testing.T) {
	rows := []domain.PackRow{
		{ActionDate: "2025-03-10 08:00:00", OrderRef: "OA/1", Company: "Main Co", Qty: 2, PackValue: 20},
		{ActionDate: "2025-03-10 13:00:00", OrderRef: "OA/1", Company: "Main Co", Qty: 3, PackValue: 30},
		{ActionDate: "2025-03-10 23:59:59", OrderRef: "OA/1", Company: "Main Co", Qty: 5, PackValue: 50},
	}

	got := Pack(rows)

	require.Len(t, got, 1)
	assert.Equal(t, domain.PackRow{
		ActionDate: "2025-03-10",
		OrderRef:   "OA/1",
		Company:    "Main Co",
		Qty:        10,
		PackValue:  100,
	}, got[0])
}

func TestPack_MissingKeysAreKept(t *testing.T) {
	rows := []domain.PackRow{
		{ActionDate: "", OrderRef: "", Company: "", Qty: 1, PackValue: 1},
		{ActionDate: "garbage", OrderRef: "", Company: "", Qty: 2, PackValue: 2},
		{ActionDate: "2025-03-10", OrderRef: "OA/1", Company: "", Qty: 4, PackValue: 4},
	}

	got := Pack(rows)

	require.Len(t, got, 2)
	assert.Equal(t, domain.PackRow{Qty: 3, PackValue: 3}, got[0])
	assert.Equal(t, "2025-03-10", got[1].ActionDate)
}

func TestPack_Ordering(t *testing.T) {
	rows := []domain.PackRow{
		{ActionDate: "2025-03-11 01:00:00", OrderRef: "OA/1", Company: "B"},
		{ActionDate: "2025-03-10 01:00:00", OrderRef: "OA/9", Company: "A"},
		{ActionDate: "2025-03-10 01:00:00", OrderRef: "OA/2", Company: "B"},
		{ActionDate: "2025-03-10 01:00:00", OrderRef: "OA/2", Company: "A"},
	}

	got := Pack(rows)

	require.Len(t, got, 4)
	assert.True(t, slices.IsSortedFunc(got, func(a, b domain.PackRow) int {
		if a.ActionDate != b.ActionDate {
			if a.ActionDate < b.ActionDate {
				return -1
			}
			return 1
		}
		if a.OrderRef < b.OrderRef {
			return -1
		}
		if a.OrderRef > b.OrderRef {
			return 1
		}
		return 0
	}))
	assert.Equal(t, "A", got[0].Company)
	assert.Equal(t, "B", got[1].Company)
	assert.Equal(t, "OA/9", got[2].OrderRef)
}

func TestPack_PreservesTotalsAndIgnoresInputOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	days := []string{"2025-03-01 09:00:00", "2025-03-01 18:00:00", "2025-03-02", "", "bad"}
	refs := []string{"OA/1", "OA/2", ""}
	companies := []string{"Main Co", "Second Co", ""}

	rows := make([]domain.PackRow, 200)
	var wantQty, wantValue float64
	for i := range rows {
		qty := float64(rng.Intn(50))
		price := float64(rng.Intn(20))
		rows[i] = domain.PackRow{
			ActionDate: days[rng.Intn(len(days))],
			OrderRef:   refs[rng.Intn(len(refs))],
			Company:    companies[rng.Intn(len(companies))],
			Qty:        qty,
			PackValue:  qty * price,
		}
		wantQty += qty
		wantValue += qty * price
	}

	got := Pack(rows)

	var gotQty, gotValue float64
	for _, r := range got {
		gotQty += r.Qty
		gotValue += r.PackValue
	}
	assert.InDelta(t, wantQty, gotQty, 1e-9)
	assert.InDelta(t, wantValue, gotValue, 1e-9)

	shuffled := slices.Clone(rows)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	assert.Equal(t, got, Pack(shuffled))
}

func TestPack_FractionalSumsIgnoreInputOrder(t *testing.T) {
	rows := []domain.PackRow{
		{ActionDate: "2025-03-10 08:00:00", OrderRef: "OA/1", Company: "Main Co", Qty: 0.1, PackValue: 0.1},
		{ActionDate: "2025-03-10 09:00:00", OrderRef: "OA/1", Company: "Main Co", Qty: 0.2, PackValue: 0.2},
		{ActionDate: "2025-03-10 10:00:00", OrderRef: "OA/1", Company: "Main Co", Qty: 0.3, PackValue: 0.3},
	}
	reversed := slices.Clone(rows)
	slices.Reverse(reversed)

	forward := Pack(rows)
	backward := Pack(reversed)

	require.Len(t, forward, 1)
	assert.Equal(t, forward, backward)
	assert.InDelta(t, 0.6, forward[0].Qty, 1e-12)
}

func TestPack_FractionalShuffles(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rows := make([]domain.PackRow, 100)
	for i := range rows {
		qty := float64(rng.Intn(1000)) / 10
		rows[i] = domain.PackRow{
			ActionDate: "2025-03-10",
			OrderRef:   []string{"OA/1", "OA/2"}[i%2],
			Company:    "Main Co",
			Qty:        qty,
			PackValue:  qty * 1.37,
		}
	}
	want := Pack(rows)

	for range 10 {
		shuffled := slices.Clone(rows)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, want, Pack(shuffled))
	}
}
