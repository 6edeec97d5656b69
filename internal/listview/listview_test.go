package listview

import (
	"fmt"
	"reflect"
	"testing"
)

type rideRow struct {
	ID       int
	Pickup   string
	Drop     string
	Status   string
	Date     string
	BookedAt string
}

func rideSchema() Schema[rideRow] {
	return Schema[rideRow]{
		TextFields: []string{"pickup_location", "drop_location"},
		DateField:  "booking_date",
		Get: func(r rideRow, key string) (any, bool) {
			switch key {
			case "id":
				return r.ID, true
			case "pickup_location":
				return r.Pickup, true
			case "drop_location":
				return r.Drop, true
			case "status":
				return r.Status, true
			case "booking_date":
				return r.Date, true
			case "booked_at", "booking.booked_at":
				return r.BookedAt, true
			}
			return nil, false
		},
	}
}

func makeRides(n int) []rideRow {
	out := make([]rideRow, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, rideRow{
			ID:     i,
			Pickup: fmt.Sprintf("Hotel %d", i),
			Drop:   "City Center",
			Status: "pending",
			Date:   "2024-05-01",
		})
	}
	return out
}

func TestQueryPageLengthInvariant(t *testing.T) {
	schema := rideSchema()
	rides := makeRides(23)

	for page := 1; page <= 3; page++ {
		res := schema.Query(rides, Params{Page: page, PageSize: 10})
		if res.TotalCount != 23 || res.TotalPages != 3 {
			t.Fatalf("page %d: totals wrong: count=%d pages=%d", page, res.TotalCount, res.TotalPages)
		}
		want := 10
		if page == 3 {
			want = 3
		}
		if len(res.PageItems) != want {
			t.Fatalf("page %d: got %d items, want %d", page, len(res.PageItems), want)
		}
	}
}

func TestQueryEmptySetHasZeroPages(t *testing.T) {
	schema := rideSchema()
	res := schema.Query(nil, Params{Page: 1, PageSize: 10})
	if res.TotalPages != 0 || res.TotalCount != 0 || len(res.PageItems) != 0 {
		t.Fatalf("empty input should yield zero pages, got %+v", res)
	}

	res = schema.Query(makeRides(5), Params{
		Filters: Filters{Status: "completed"},
		Page:    1, PageSize: 10,
	})
	if res.TotalPages != 0 || len(res.PageItems) != 0 {
		t.Fatalf("fully filtered input should yield zero pages, got %+v", res)
	}
}

func TestQueryOutOfRangePageClamps(t *testing.T) {
	schema := rideSchema()
	rides := makeRides(23)

	res := schema.Query(rides, Params{Page: 99, PageSize: 10})
	if res.Page != 3 || len(res.PageItems) != 3 {
		t.Fatalf("page should clamp to last, got page=%d items=%d", res.Page, len(res.PageItems))
	}

	res = schema.Query(rides, Params{Page: -4, PageSize: 10})
	if res.Page != 1 || len(res.PageItems) != 10 {
		t.Fatalf("page should clamp to first, got page=%d items=%d", res.Page, len(res.PageItems))
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	schema := rideSchema()
	rides := makeRides(23)
	rides[2].Pickup = "Airport T1"
	rides[7].Pickup = "Airport T2"

	f := Filters{Text: "airport"}
	once := schema.filter(rides, f)
	twice := schema.filter(once, f)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filtering twice changed the result: %v vs %v", once, twice)
	}
	if len(once) != 2 {
		t.Fatalf("expected 2 airport rows, got %d", len(once))
	}
}

func TestStatusAllIsNoOp(t *testing.T) {
	schema := rideSchema()
	rides := makeRides(10)
	rides[0].Status = "completed"

	all := schema.Query(rides, Params{Filters: Filters{Status: StatusAll}, Page: 1, PageSize: 50})
	if all.TotalCount != 10 {
		t.Fatalf("status=all must not filter, got %d rows", all.TotalCount)
	}
}

func TestStatusFilterCaseInsensitive(t *testing.T) {
	schema := rideSchema()
	rides := makeRides(4)
	rides[1].Status = "Completed"

	res := schema.Query(rides, Params{Filters: Filters{Status: "COMPLETED"}, Page: 1, PageSize: 10})
	if res.TotalCount != 1 || res.PageItems[0].ID != 2 {
		t.Fatalf("case-insensitive status match failed: %+v", res)
	}
}

func TestDateFilterTruncatesToDay(t *testing.T) {
	schema := rideSchema()
	rides := makeRides(3)
	rides[1].Date = "2024-06-15 09:30:00"
	rides[2].Date = "2024-06-16"

	res := schema.Query(rides, Params{Filters: Filters{Date: "2024-06-15"}, Page: 1, PageSize: 10})
	if res.TotalCount != 1 || res.PageItems[0].ID != 2 {
		t.Fatalf("date filter should compare day prefixes, got %+v", res)
	}
}

func TestCombinedFiltersScenario(t *testing.T) {
	// 23 bookings, 12 completed, 5 of those mention "airport".
	schema := rideSchema()
	rides := makeRides(23)
	for i := 0; i < 12; i++ {
		rides[i].Status = "completed"
	}
	for i := 0; i < 5; i++ {
		rides[i].Pickup = fmt.Sprintf("Airport Gate %d", i+1)
	}

	res := schema.Query(rides, Params{
		Filters: Filters{Status: "completed", Text: "airport"},
		Page:    1, PageSize: 10,
	})
	if len(res.PageItems) != 5 || res.TotalPages != 1 {
		t.Fatalf("want 5 items on 1 page, got %d items / %d pages", len(res.PageItems), res.TotalPages)
	}
}

func TestSortByNestedDateKeyDescending(t *testing.T) {
	schema := rideSchema()
	rides := []rideRow{
		{ID: 1, BookedAt: "2024-01-01"},
		{ID: 2, BookedAt: "2024-03-01"},
		{ID: 3, BookedAt: "2024-02-01"},
	}

	res := schema.Query(rides, Params{
		Sort: &Sort{Key: "booking.booked_at", Direction: Descending},
		Page: 1, PageSize: 10,
	})
	got := []int{res.PageItems[0].ID, res.PageItems[1].ID, res.PageItems[2].ID}
	if !reflect.DeepEqual(got, []int{2, 3, 1}) {
		t.Fatalf("descending booked_at order wrong: %v", got)
	}
}

func TestSortToggleRoundTrips(t *testing.T) {
	schema := rideSchema()
	rides := makeRides(8)
	for i := range rides {
		rides[i].Pickup = fmt.Sprintf("Stop %c", 'H'-i)
	}

	base := schema.Query(rides, Params{Page: 1, PageSize: 50}).PageItems

	asc := schema.Query(base, Params{
		Sort: &Sort{Key: "pickup_location", Direction: Ascending},
		Page: 1, PageSize: 50,
	}).PageItems
	back := schema.Query(asc, Params{
		Sort: &Sort{Key: "pickup_location", Direction: Descending},
		Page: 1, PageSize: 50,
	}).PageItems

	if !reflect.DeepEqual(back, base) {
		t.Fatalf("asc then desc should restore order:\nbase=%v\nback=%v", base, back)
	}
}

func TestSortNumericLookingStrings(t *testing.T) {
	schema := Schema[rideRow]{
		Get: func(r rideRow, key string) (any, bool) { return r.Pickup, true },
	}
	rides := []rideRow{{Pickup: "100"}, {Pickup: "9"}, {Pickup: "25"}}

	res := schema.Query(rides, Params{
		Sort: &Sort{Key: "pickup_location", Direction: Ascending},
		Page: 1, PageSize: 10,
	})
	got := []string{res.PageItems[0].Pickup, res.PageItems[1].Pickup, res.PageItems[2].Pickup}
	if !reflect.DeepEqual(got, []string{"9", "25", "100"}) {
		t.Fatalf("numeric-looking values must compare as floats: %v", got)
	}
}

func TestCompareBooleans(t *testing.T) {
	if compareValues(true, false, false) != -1 {
		t.Fatal("true must order before false")
	}
	if compareValues(false, true, false) != 1 {
		t.Fatal("false must order after true")
	}
	if compareValues(true, true, false) != 0 {
		t.Fatal("equal booleans must tie")
	}
}

func TestWindowAlgorithm(t *testing.T) {
	cases := []struct {
		total, current int
		pages          []int
		ellipsis       bool
		last           int
	}{
		{12, 1, []int{1, 2, 3, 4, 5}, true, 12},
		{12, 3, []int{1, 2, 3, 4, 5}, true, 12},
		{12, 6, []int{4, 5, 6, 7, 8}, true, 12},
		{12, 10, []int{8, 9, 10, 11, 12}, false, 0},
		{12, 12, []int{8, 9, 10, 11, 12}, false, 0},
		{4, 2, []int{1, 2, 3, 4}, false, 0},
		{5, 5, []int{1, 2, 3, 4, 5}, false, 0},
		{0, 1, []int{}, false, 0},
	}

	for _, tc := range cases {
		w := Window(tc.total, tc.current)
		if !reflect.DeepEqual(w.Pages, tc.pages) || w.Ellipsis != tc.ellipsis || w.Last != tc.last {
			t.Fatalf("Window(%d,%d) = %+v, want pages=%v ellipsis=%v last=%d",
				tc.total, tc.current, w, tc.pages, tc.ellipsis, tc.last)
		}
	}
}
