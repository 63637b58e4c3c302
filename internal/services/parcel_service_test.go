package services

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"tramex/internal/models"
	"tramex/internal/pagination"
	"tramex/internal/testutil"
)

func TestCreateParcel(t *testing.T) {
	t.Run("generates_tracking_number_and_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewParcelService(db)

		parcel, err := svc.Create(&models.Parcel{
			Direction:     models.DirectionKinshasaToDubai,
			SenderName:    "Jean Mukendi",
			RecipientName: "Ali Hassan",
			WeightKg:      decimal.NewFromFloat(3.2),
			CreatedBy:     1,
		})
		testutil.AssertNoError(t, err)

		if !strings.HasPrefix(parcel.TrackingNumber, "TRX-") {
			t.Errorf("expected TRX tracking number, got %s", parcel.TrackingNumber)
		}
		if parcel.Status != models.ParcelReceived {
			t.Errorf("expected received status, got %s", parcel.Status)
		}
		if parcel.Priority != models.PriorityStandard {
			t.Errorf("expected standard priority, got %s", parcel.Priority)
		}
		if parcel.Currency != "USD" {
			t.Errorf("expected USD default, got %s", parcel.Currency)
		}
	})

	t.Run("requires_party_names", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewParcelService(db)

		_, err := svc.Create(&models.Parcel{Direction: models.DirectionKinshasaToDubai})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_weight", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewParcelService(db)

		_, err := svc.Create(&models.Parcel{
			Direction:     models.DirectionKinshasaToDubai,
			SenderName:    "A",
			RecipientName: "B",
			WeightKg:      decimal.NewFromInt(-1),
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestTrackParcel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewParcelService(db)
	user := testutil.CreateTestUser(t, db)
	parcel := testutil.CreateTestParcel(t, db, user.ID)

	found, err := svc.Track(parcel.TrackingNumber)
	testutil.AssertNoError(t, err)
	if found.ID != parcel.ID {
		t.Errorf("expected parcel %d, got %d", parcel.ID, found.ID)
	}

	_, err = svc.Track("TRX-19700101-XXXXXXXX")
	testutil.AssertAppError(t, err, "PARCEL_NOT_FOUND")
}

func TestUpdateParcelStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewParcelService(db)
	user := testutil.CreateTestUser(t, db)
	parcel := testutil.CreateTestParcel(t, db, user.ID)

	// Parcels move freely between states, including backwards.
	for _, status := range []models.ParcelStatus{
		models.ParcelInTransit,
		models.ParcelDelayed,
		models.ParcelInTransit,
		models.ParcelDelivered,
	} {
		updated, err := svc.UpdateStatus(parcel.ID, status)
		testutil.AssertNoError(t, err)
		if updated.Status != status {
			t.Errorf("expected status %s, got %s", status, updated.Status)
		}
	}
}

func TestListParcels(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewParcelService(db)
	user := testutil.CreateTestUser(t, db)

	first := testutil.CreateTestParcel(t, db, user.ID)
	testutil.CreateTestParcel(t, db, user.ID)

	_, err := svc.UpdateStatus(first.ID, models.ParcelInTransit)
	testutil.AssertNoError(t, err)

	status := models.ParcelInTransit
	result, err := svc.List(pagination.PageRequest{}, ParcelFilter{Status: &status})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 {
		t.Errorf("expected 1 parcel in transit, got %d", result.TotalItems)
	}
}
