package eventstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	eventstore "github.com/autoatlas-mx/autoatlas/internal/app/store/events"
	rsvpstore "github.com/autoatlas-mx/autoatlas/internal/app/store/rsvps"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/autoatlas-mx/autoatlas/internal/testutil"
)

func TestStore_Upcoming_FiltersHiddenAndPast(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateEvent(ctx, "Pasado", "2020-01-15", nil)
	fixtures.CreateEvent(ctx, "Mañana", "2099-06-02", nil)
	fixtures.CreateEvent(ctx, "Hoy", "2099-06-01", nil)

	hidden, err := store.Create(ctx, models.Event{
		Title:   "Privado",
		Date:    "2099-06-03",
		Visible: false,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Upcoming(ctx, "2099-06-01", 10)
	if err != nil {
		t.Fatalf("Upcoming failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming events, got %d", len(got))
	}
	if got[0].Title != "Hoy" || got[1].Title != "Mañana" {
		t.Errorf("expected ascending date order, got %q then %q", got[0].Title, got[1].Title)
	}
	for _, e := range got {
		if e.ID == hidden.ID {
			t.Error("hidden event leaked into upcoming list")
		}
	}
}

func TestStore_Upcoming_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateEvent(ctx, "Uno", "2099-01-01", nil)
	fixtures.CreateEvent(ctx, "Dos", "2099-01-02", nil)
	fixtures.CreateEvent(ctx, "Tres", "2099-01-03", nil)

	got, err := store.Upcoming(ctx, "2099-01-01", 2)
	if err != nil {
		t.Fatalf("Upcoming failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected limit of 2, got %d", len(got))
	}
}

func TestStore_List_BrandFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	kia := fixtures.CreateBrand(ctx, "Kia", true)
	fixtures.CreateEvent(ctx, "Kia Fest", "2099-03-01", &kia.ID)
	fixtures.CreateEvent(ctx, "Expo general", "2099-03-02", nil)

	got, err := store.List(ctx, eventstore.ListFilter{BrandID: &kia.ID})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event for the brand, got %d", len(got))
	}
	if got[0].Title != "Kia Fest" {
		t.Errorf("expected the brand's event, got %q", got[0].Title)
	}
}

func TestStore_Delete_CascadesRSVPs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	rsvps := rsvpstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	event := fixtures.CreateEvent(ctx, "Expo", "2099-05-01", nil)
	user := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleUser)

	if _, err := rsvps.Create(ctx, event.ID, user.ID); err != nil {
		t.Fatalf("rsvp Create failed: %v", err)
	}

	if err := store.Delete(ctx, event.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.GetByID(ctx, event.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected the event gone after delete, got %v", err)
	}
	n, err := rsvps.CountByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("CountByEvent failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected RSVPs removed with the event, got %d", n)
	}
}

func TestStore_Update_Capacity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	event := fixtures.CreateEvent(ctx, "Expo", "2099-05-01", nil)

	cap := 50
	capPtr := &cap
	if err := store.Update(ctx, event.ID, eventstore.EventUpdate{Capacity: &capPtr}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := store.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Capacity == nil || *got.Capacity != 50 {
		t.Errorf("expected capacity 50, got %v", got.Capacity)
	}

	// A nil inner pointer clears the cap entirely.
	var clear *int
	if err := store.Update(ctx, event.ID, eventstore.EventUpdate{Capacity: &clear}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err = store.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Capacity != nil {
		t.Errorf("expected capacity cleared, got %d", *got.Capacity)
	}
}
