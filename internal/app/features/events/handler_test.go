package events_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autoatlas-mx/autoatlas/internal/app/features/events"
	eventstore "github.com/autoatlas-mx/autoatlas/internal/app/store/events"
	rsvpstore "github.com/autoatlas-mx/autoatlas/internal/app/store/rsvps"
	"github.com/autoatlas-mx/autoatlas/internal/domain/models"
	"github.com/autoatlas-mx/autoatlas/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*events.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := events.NewHandler(eventstore.New(db), rsvpstore.New(db), 0, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func TestHandleRSVP_RequiresVerification(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e, err := handler.Events.Create(ctx, models.Event{
		Title:                "Prueba de manejo",
		Date:                 "2099-05-01",
		Visible:              true,
		RequiresVerification: true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	plain := fixtures.CreateUser(ctx, "Simple", "simple@example.com", models.RoleUser)

	req := testutil.NewRequest("POST", "/events/"+e.ID.Hex()+"/rsvp")
	req = testutil.WithChiURLParam(req, "id", e.ID.Hex())
	req = testutil.WithUser(req, testutil.TestUser{
		ID: plain.ID.Hex(), Name: plain.Name, Email: plain.Email, Role: models.RoleUser,
	})

	rec := httptest.NewRecorder()
	handler.HandleRSVP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}

	// A verified account gets through.
	verified := fixtures.CreateUser(ctx, "Verificada", "ver@example.com", models.RoleVerifiedUser)
	req = testutil.NewRequest("POST", "/events/"+e.ID.Hex()+"/rsvp")
	req = testutil.WithChiURLParam(req, "id", e.ID.Hex())
	req = testutil.WithUser(req, testutil.TestUser{
		ID: verified.ID.Hex(), Name: verified.Name, Email: verified.Email, Role: models.RoleVerifiedUser,
	})

	rec = httptest.NewRecorder()
	handler.HandleRSVP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func TestHandleRSVP_Full(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cap := 1
	e, err := handler.Events.Create(ctx, models.Event{
		Title:    "Evento chico",
		Date:     "2099-05-01",
		Visible:  true,
		Capacity: &cap,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	first := fixtures.CreateUser(ctx, "Uno", "uno@example.com", models.RoleUser)
	if _, err := handler.RSVPs.Create(ctx, e.ID, first.ID); err != nil {
		t.Fatalf("rsvp Create failed: %v", err)
	}

	second := fixtures.CreateUser(ctx, "Dos", "dos@example.com", models.RoleUser)
	req := testutil.NewRequest("POST", "/events/"+e.ID.Hex()+"/rsvp")
	req = testutil.WithChiURLParam(req, "id", e.ID.Hex())
	req = testutil.WithUser(req, testutil.TestUser{
		ID: second.ID.Hex(), Name: second.Name, Email: second.Email, Role: models.RoleUser,
	})

	rec := httptest.NewRecorder()
	handler.HandleRSVP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestHandleRSVP_HiddenEvent(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e, err := handler.Events.Create(ctx, models.Event{
		Title:   "Privado",
		Date:    "2099-05-01",
		Visible: false,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	user := fixtures.CreateUser(ctx, "Diana", "diana@example.com", models.RoleUser)

	req := testutil.NewRequest("POST", "/events/"+e.ID.Hex()+"/rsvp")
	req = testutil.WithChiURLParam(req, "id", e.ID.Hex())
	req = testutil.WithUser(req, testutil.TestUser{
		ID: user.ID.Hex(), Name: user.Name, Email: user.Email, Role: models.RoleUser,
	})

	rec := httptest.NewRecorder()
	handler.HandleRSVP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestHandleCreate_BrandScope(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	kia := fixtures.CreateBrand(ctx, "Kia", true)
	mazda := fixtures.CreateBrand(ctx, "Mazda", true)

	// A brand admin may not create events under another brand.
	body := `{"title":"Expo ajena","date":"2099-07-01","brand_id":"` + mazda.ID.Hex() + `","visible":true}`
	req := testutil.NewJSONRequest("POST", "/events", body)
	req = testutil.WithUser(req, testutil.BrandAdminUser(kia.ID))

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}

	// Their own brand is fine.
	body = `{"title":"Expo propia","date":"2099-07-01","brand_id":"` + kia.ID.Hex() + `","visible":true}`
	req = testutil.NewJSONRequest("POST", "/events", body)
	req = testutil.WithUser(req, testutil.BrandAdminUser(kia.ID))

	rec = httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var created models.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if created.BrandID == nil || *created.BrandID != kia.ID {
		t.Error("expected event bound to the admin's brand")
	}
}

func TestHandleCreate_BrandlessNeedsAdmin(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	kia := fixtures.CreateBrand(ctx, "Kia", true)

	body := `{"title":"Expo general","date":"2099-07-01","visible":true}`
	req := testutil.NewJSONRequest("POST", "/events", body)
	req = testutil.WithUser(req, testutil.BrandAdminUser(kia.ID))

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}

	req = testutil.NewJSONRequest("POST", "/events", body)
	req = testutil.WithUser(req, testutil.AdminUser())

	rec = httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func TestHandleUpdate_CapacityNullVsAbsent(t *testing.T) {
	handler, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cap := 50
	e, err := handler.Events.Create(ctx, models.Event{
		Title:    "Expo",
		Date:     "2099-05-01",
		Visible:  true,
		Capacity: &cap,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	patch := func(body string) {
		t.Helper()
		req := testutil.NewJSONRequest("PATCH", "/events/"+e.ID.Hex(), body)
		req = testutil.WithChiURLParam(req, "id", e.ID.Hex())
		req = testutil.WithUser(req, testutil.AdminUser())
		rec := httptest.NewRecorder()
		handler.HandleUpdate(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("patch %s: expected status %d, got %d: %s", body, http.StatusOK, rec.Code, rec.Body.String())
		}
	}

	// An absent capacity field leaves the cap alone.
	patch(`{"location":"CDMX"}`)
	got, err := handler.Events.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Capacity == nil || *got.Capacity != 50 {
		t.Fatalf("expected capacity untouched at 50, got %v", got.Capacity)
	}

	// An explicit null clears it.
	patch(`{"capacity":null}`)
	got, err = handler.Events.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Capacity != nil {
		t.Errorf("expected capacity cleared, got %d", *got.Capacity)
	}

	// A number sets it again.
	patch(`{"capacity":25}`)
	got, err = handler.Events.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Capacity == nil || *got.Capacity != 25 {
		t.Errorf("expected capacity 25, got %v", got.Capacity)
	}
}

func TestHandleUpdate_CapacityBelowOne(t *testing.T) {
	handler, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e, err := handler.Events.Create(ctx, models.Event{
		Title:   "Expo",
		Date:    "2099-05-01",
		Visible: true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := testutil.NewJSONRequest("PATCH", "/events/"+e.ID.Hex(), `{"capacity":0}`)
	req = testutil.WithChiURLParam(req, "id", e.ID.Hex())
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.HandleUpdate(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}
}

func TestServeAdminList_BrandScoped(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	kia := fixtures.CreateBrand(ctx, "Kia", true)
	mazda := fixtures.CreateBrand(ctx, "Mazda", true)
	fixtures.CreateEvent(ctx, "Kia Fest", "2099-03-01", &kia.ID)
	fixtures.CreateEvent(ctx, "Mazda Day", "2099-03-02", &mazda.ID)

	req := testutil.NewRequest("GET", "/events/all")
	req = testutil.WithUser(req, testutil.BrandAdminUser(kia.ID))

	rec := httptest.NewRecorder()
	handler.ServeAdminList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var got []models.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Kia Fest" {
		t.Errorf("expected only the admin's brand events, got %d", len(got))
	}

	// A full admin sees everything.
	req = testutil.NewRequest("GET", "/events/all")
	req = testutil.WithUser(req, testutil.AdminUser())

	rec = httptest.NewRecorder()
	handler.ServeAdminList(rec, req)

	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 events for admin, got %d", len(got))
	}
}
