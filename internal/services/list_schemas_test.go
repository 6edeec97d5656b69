package services

import (
	"fmt"
	"testing"

	"transferhub/internal/domain/models"
	"transferhub/internal/listview"
)

func vehicleFleet(n int) []models.Vehicle {
	out := make([]models.Vehicle, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, models.Vehicle{
			ID:          int64(i),
			SupplierID:  3,
			PlateNumber: fmt.Sprintf("NL-%02d-AB", i),
			Seats:       4,
			Active:      i%2 == 0,
		})
	}
	return out
}

func TestVehiclePageSearchMissExcludesEverything(t *testing.T) {
	page := PageOf(VehicleSchema(), vehicleFleet(25), listview.Params{
		Filters:  listview.Filters{Text: "nomatch"},
		Page:     1,
		PageSize: 10,
	})
	if page.TotalCount != 0 || len(page.PageItems) != 0 {
		t.Fatalf("got %d items (total %d), want none", len(page.PageItems), page.TotalCount)
	}
	if page.TotalPages != 0 || len(page.Window.Pages) != 0 {
		t.Fatalf("empty result should have no pages, got %+v", page.Window)
	}
}

func TestVehiclePageSizeBoundsThePage(t *testing.T) {
	page := PageOf(VehicleSchema(), vehicleFleet(25), listview.Params{Page: 2, PageSize: 10})
	if len(page.PageItems) != 10 || page.Page != 2 || page.TotalPages != 3 || page.TotalCount != 25 {
		t.Fatalf("got items=%d page=%d totalPages=%d totalCount=%d",
			len(page.PageItems), page.Page, page.TotalPages, page.TotalCount)
	}
	if len(page.Window.Pages) != 3 || page.Window.Ellipsis {
		t.Fatalf("window = %+v", page.Window)
	}
	if page.PageItems[0].ID != 11 {
		t.Fatalf("page 2 should start at id 11, got %d", page.PageItems[0].ID)
	}
}

func TestVehicleStatusFilterReadsActiveFlag(t *testing.T) {
	page := PageOf(VehicleSchema(), vehicleFleet(10), listview.Params{
		Filters: listview.Filters{Status: "inactive"},
	})
	if page.TotalCount != 5 {
		t.Fatalf("total = %d, want 5 inactive vehicles", page.TotalCount)
	}
	for _, v := range page.PageItems {
		if v.Active {
			t.Fatalf("active vehicle %d leaked through inactive filter", v.ID)
		}
	}
}

func TestAdminPageSearchesNameAndEmail(t *testing.T) {
	admins := []models.Admin{
		{ID: 1, Name: "Ann Lee", Email: "ann@example.com", Status: "active"},
		{ID: 2, Name: "Bob Roy", Email: "bob@example.com", Status: "active"},
		{ID: 3, Name: "Cara Fox", Email: "cara@example.com", Status: "suspended"},
	}

	page := PageOf(AdminSchema(), admins, listview.Params{Filters: listview.Filters{Text: "bob"}})
	if page.TotalCount != 1 || page.PageItems[0].ID != 2 {
		t.Fatalf("search bob: %+v", page.PageItems)
	}

	page = PageOf(AdminSchema(), admins, listview.Params{Filters: listview.Filters{Status: "suspended"}})
	if page.TotalCount != 1 || page.PageItems[0].ID != 3 {
		t.Fatalf("status suspended: %+v", page.PageItems)
	}
}

func TestTransferPageSortsByPrice(t *testing.T) {
	transfers := []models.Transfer{
		{ID: 1, Price: 90, Currency: "EUR", Active: true},
		{ID: 2, Price: 40, Currency: "EUR", Active: true},
		{ID: 3, Price: 65, Currency: "EUR", Active: true},
	}

	page := PageOf(TransferSchema(), transfers, listview.Params{
		Sort: &listview.Sort{Key: "price", Direction: listview.Descending},
	})
	if page.PageItems[0].ID != 1 || page.PageItems[1].ID != 3 || page.PageItems[2].ID != 2 {
		t.Fatalf("descending price order wrong: %+v", page.PageItems)
	}
}

func TestZonePageFiltersByName(t *testing.T) {
	zones := []models.Zone{
		{ID: 1, Name: "Airport North"},
		{ID: 2, Name: "Harbour"},
		{ID: 3, Name: "Airport South"},
	}

	page := PageOf(ZoneSchema(), zones, listview.Params{Filters: listview.Filters{Text: "airport"}})
	if page.TotalCount != 2 {
		t.Fatalf("total = %d, want 2 airport zones", page.TotalCount)
	}
}
