package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"carservice-api/database"
	"carservice-api/models"
)

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func setupTestStore(t *testing.T) *gorm.DB {
	t.Helper()
	return database.NewTestDB(t)
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test User", Email: email, Password: "hash"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createCar(t *testing.T, db *gorm.DB, userID, brand, model string) *models.Car {
	t.Helper()
	car := &models.Car{UserID: userID, Brand: brand, Model: model, Year: 2020, CurrentMileage: 40000, PlateNumber: "AB-" + brand}
	require.NoError(t, NewCarRepository(db).Create(context.Background(), car))
	return car
}

func dayOffset(days int) *time.Time {
	d := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return &d
}

func intPtr(v int) *int { return &v }

func reminderIDs(reminders []models.Reminder) []string {
	ids := make([]string, 0, len(reminders))
	for _, r := range reminders {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestReminderRepository_ReplacePending(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()
	repo := NewReminderRepository(db)

	user := createUser(t, db, "owner@example.com")
	car := createCar(t, db, user.ID, "Toyota", "Corolla")

	first := &models.Reminder{CarID: car.ID, ServiceTypeID: 1, DueDate: dayOffset(10), DueMileage: intPtr(50000)}
	require.NoError(t, repo.ReplacePending(ctx, first))

	second := &models.Reminder{CarID: car.ID, ServiceTypeID: 1, DueDate: dayOffset(20), DueMileage: intPtr(55000)}
	require.NoError(t, repo.ReplacePending(ctx, second))

	count, err := repo.CountPending(ctx, car.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var pending models.Reminder
	require.NoError(t, db.Where("car_id = ? AND status = ?", car.ID, models.ReminderStatusPending).First(&pending).Error)
	assert.Equal(t, second.ID, pending.ID)
	assert.Equal(t, 55000, *pending.DueMileage)
	assert.Nil(t, pending.LastNotifiedAt)

	// Another service type on the same car is independent.
	other := &models.Reminder{CarID: car.ID, ServiceTypeID: 2, DueMileage: intPtr(80000)}
	require.NoError(t, repo.ReplacePending(ctx, other))
	count, err = repo.CountPending(ctx, car.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestReminderRepository_DueQueries(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()
	repo := NewReminderRepository(db)

	user := createUser(t, db, "due@example.com")
	car := createCar(t, db, user.ID, "Honda", "Civic")

	overdue := &models.Reminder{CarID: car.ID, ServiceTypeID: 1, DueDate: dayOffset(-5)}
	soon := &models.Reminder{CarID: car.ID, ServiceTypeID: 2, DueDate: dayOffset(2)}
	later := &models.Reminder{CarID: car.ID, ServiceTypeID: 3, DueDate: dayOffset(10)}
	mileageOnly := &models.Reminder{CarID: car.ID, ServiceTypeID: 4, DueMileage: intPtr(60000)}
	for _, r := range []*models.Reminder{overdue, soon, later, mileageOnly} {
		require.NoError(t, repo.ReplacePending(ctx, r))
	}

	notifiedBefore := testNow.Add(-24 * time.Hour)

	found, err := repo.FindOverdue(ctx, testNow, notifiedBefore)
	require.NoError(t, err)
	assert.Equal(t, []string{overdue.ID}, reminderIDs(found))
	require.NotNil(t, found[0].Car)
	require.NotNil(t, found[0].Car.User)
	assert.Equal(t, user.ID, found[0].Car.User.ID)
	require.NotNil(t, found[0].ServiceType)

	found, err = repo.FindUpcoming(ctx, testNow, testNow.Add(72*time.Hour), notifiedBefore)
	require.NoError(t, err)
	assert.Equal(t, []string{soon.ID}, reminderIDs(found))

	// Recently notified reminders drop out until the throttle elapses.
	require.NoError(t, repo.MarkNotified(ctx, overdue.ID, testNow.Add(-2*time.Hour)))
	found, err = repo.FindOverdue(ctx, testNow, notifiedBefore)
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, repo.MarkNotified(ctx, overdue.ID, testNow.Add(-25*time.Hour)))
	found, err = repo.FindOverdue(ctx, testNow, notifiedBefore)
	require.NoError(t, err)
	assert.Equal(t, []string{overdue.ID}, reminderIDs(found))

	assert.ErrorIs(t, repo.MarkNotified(ctx, "missing", testNow), models.ErrNotFound)
}

func TestReminderRepository_Resolve(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()
	repo := NewReminderRepository(db)

	user := createUser(t, db, "resolve@example.com")
	car := createCar(t, db, user.ID, "Mazda", "3")

	reminder := &models.Reminder{CarID: car.ID, ServiceTypeID: 1, DueDate: dayOffset(-1)}
	require.NoError(t, repo.ReplacePending(ctx, reminder))

	assert.ErrorIs(t, repo.Resolve(ctx, reminder.ID, models.ReminderStatusPending), models.ErrInvalidStatusTransition)

	require.NoError(t, repo.Resolve(ctx, reminder.ID, models.ReminderStatusCompleted))
	assert.ErrorIs(t, repo.Resolve(ctx, reminder.ID, models.ReminderStatusDismissed), models.ErrInvalidStatusTransition)

	var stored models.Reminder
	require.NoError(t, db.First(&stored, "id = ?", reminder.ID).Error)
	assert.Equal(t, models.ReminderStatusCompleted, stored.Status)
	assert.Nil(t, stored.PendingKey)

	// Resolved reminders are never scanned.
	found, err := repo.FindOverdue(ctx, testNow, testNow)
	require.NoError(t, err)
	assert.Empty(t, found)

	// The pending slot is free again.
	next := &models.Reminder{CarID: car.ID, ServiceTypeID: 1, DueDate: dayOffset(30)}
	require.NoError(t, repo.ReplacePending(ctx, next))
}

func TestReminderRepository_UserScoping(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()
	repo := NewReminderRepository(db)

	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	aliceCar := createCar(t, db, alice.ID, "Ford", "Focus")
	bobCar := createCar(t, db, bob.ID, "Kia", "Rio")

	aliceReminder := &models.Reminder{CarID: aliceCar.ID, ServiceTypeID: 1, DueDate: dayOffset(-3)}
	bobReminder := &models.Reminder{CarID: bobCar.ID, ServiceTypeID: 1, DueDate: dayOffset(4)}
	require.NoError(t, repo.ReplacePending(ctx, aliceReminder))
	require.NoError(t, repo.ReplacePending(ctx, bobReminder))

	_, err := repo.FindForUser(ctx, bob.ID, aliceReminder.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	found, err := repo.FindForUser(ctx, alice.ID, aliceReminder.ID)
	require.NoError(t, err)
	assert.Equal(t, aliceCar.ID, found.Car.ID)

	list, total, err := repo.ListPendingForUser(ctx, alice.ID, "", Page{}.Normalize(15))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{aliceReminder.ID}, reminderIDs(list))

	overdue, total, err := repo.ListOverdueForUser(ctx, bob.ID, testNow, Page{}.Normalize(15))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, overdue)

	upcoming, err := repo.ListUpcomingForCar(ctx, bobCar.ID, testNow)
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)
}

func TestCarRepository_ListForUser(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()
	repo := NewCarRepository(db)

	user := createUser(t, db, "garage@example.com")
	other := createUser(t, db, "other@example.com")
	createCar(t, db, user.ID, "Toyota", "Corolla")
	createCar(t, db, user.ID, "Honda", "Civic")
	createCar(t, db, user.ID, "Toyota", "Yaris")
	createCar(t, db, other.ID, "Toyota", "Camry")

	cars, total, err := repo.ListForUser(ctx, user.ID, CarListOptions{Page: Page{}.Normalize(12)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, cars, 3)

	cars, total, err = repo.ListForUser(ctx, user.ID, CarListOptions{Search: "toyota", SortBy: "model", SortDir: "asc", Page: Page{}.Normalize(12)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, cars, 2)
	assert.Equal(t, "Corolla", cars[0].Model)
	assert.Equal(t, "Yaris", cars[1].Model)

	cars, total, err = repo.ListForUser(ctx, user.ID, CarListOptions{SortBy: "brand; DROP TABLE cars", Page: Page{Page: 2, PerPage: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, cars, 1)
}

func TestCarRepository_DeleteCascades(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()
	cars := NewCarRepository(db)

	user := createUser(t, db, "delete@example.com")
	car := createCar(t, db, user.ID, "BMW", "320i")

	record := &models.ServiceRecord{CarID: car.ID, ServiceTypeID: 1, ServiceDate: *dayOffset(-10), MileageAtService: 39000}
	require.NoError(t, NewServiceRecordRepository(db).Create(ctx, record))
	require.NoError(t, NewReminderRepository(db).ReplacePending(ctx, &models.Reminder{CarID: car.ID, ServiceTypeID: 1, DueMileage: intPtr(39000)}))

	assert.ErrorIs(t, cars.Delete(ctx, "someone-else", car.ID), models.ErrNotFound)
	require.NoError(t, cars.Delete(ctx, user.ID, car.ID))

	var remaining int64
	require.NoError(t, db.Model(&models.Reminder{}).Where("car_id = ?", car.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
	require.NoError(t, db.Model(&models.ServiceRecord{}).Where("car_id = ?", car.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)

	_, err := cars.FindForUser(ctx, user.ID, car.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCarRepository_ServiceTotals(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()

	user := createUser(t, db, "totals@example.com")
	car := createCar(t, db, user.ID, "Audi", "A4")

	total, count, err := NewCarRepository(db).ServiceTotals(ctx, car.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Zero(t, count)

	records := NewServiceRecordRepository(db)
	for _, cost := range []float64{100.5, 49.5} {
		c := cost
		require.NoError(t, records.Create(ctx, &models.ServiceRecord{CarID: car.ID, ServiceTypeID: 1, ServiceDate: *dayOffset(-1), MileageAtService: 1000, Cost: &c}))
	}
	require.NoError(t, records.Create(ctx, &models.ServiceRecord{CarID: car.ID, ServiceTypeID: 2, ServiceDate: *dayOffset(-1), MileageAtService: 1000}))

	total, count, err = NewCarRepository(db).ServiceTotals(ctx, car.ID)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, total, 0.001)
	assert.Equal(t, int64(3), count)
}

func TestServiceRecordRepository_Filters(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()
	repo := NewServiceRecordRepository(db)

	user := createUser(t, db, "history@example.com")
	other := createUser(t, db, "stranger@example.com")
	car := createCar(t, db, user.ID, "VW", "Golf")
	otherCar := createCar(t, db, other.ID, "VW", "Polo")

	oil := &models.ServiceRecord{CarID: car.ID, ServiceTypeID: 1, ServiceDate: *dayOffset(-60), MileageAtService: 30000, ServiceProvider: "Quick Lube"}
	brakes := &models.ServiceRecord{CarID: car.ID, ServiceTypeID: 2, ServiceDate: *dayOffset(-5), MileageAtService: 35000, Notes: "front pads"}
	foreign := &models.ServiceRecord{CarID: otherCar.ID, ServiceTypeID: 1, ServiceDate: *dayOffset(-5), MileageAtService: 1000}
	for _, r := range []*models.ServiceRecord{oil, brakes, foreign} {
		require.NoError(t, repo.Create(ctx, r))
	}

	page := Page{}.Normalize(15)

	records, total, err := repo.ListForUser(ctx, user.ID, models.ServiceRecordFilter{}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, records, 2)
	assert.Equal(t, brakes.ID, records[0].ID, "newest first")

	records, _, err = repo.ListForUser(ctx, user.ID, models.ServiceRecordFilter{ServiceTypeID: 1}, page)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, oil.ID, records[0].ID)

	records, _, err = repo.ListForUser(ctx, user.ID, models.ServiceRecordFilter{DateFrom: dayOffset(-10)}, page)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, brakes.ID, records[0].ID)

	records, _, err = repo.ListForUser(ctx, user.ID, models.ServiceRecordFilter{Search: "lube"}, page)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, oil.ID, records[0].ID)

	_, err = repo.FindForUser(ctx, user.ID, foreign.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, user.ID, foreign.ID), models.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, user.ID, oil.ID))

	all, err := repo.ListAllForUser(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestNotificationRepository_Inbox(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()
	repo := NewNotificationRepository(db)

	user := createUser(t, db, "inbox@example.com")
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &models.Notification{
			UserID: user.ID,
			Type:   models.NotificationTypeReminderDue,
			Data:   models.ReminderPayload{Message: "Oil Change due for Toyota Corolla"},
		}))
	}

	list, total, err := repo.ListForUser(ctx, user.ID, "", Page{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	assert.Equal(t, "Oil Change due for Toyota Corolla", list[0].Data.Message)

	require.NoError(t, repo.MarkRead(ctx, user.ID, list[0].ID))
	assert.ErrorIs(t, repo.MarkRead(ctx, "intruder", list[1].ID), models.ErrNotFound)

	stats, err := repo.Stats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationStats{UnreadCount: 2, TotalCount: 3}, stats)

	changed, err := repo.MarkAllRead(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)
}

func TestUserRepository(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	user := createUser(t, db, "  Driver@Example.com ")
	assert.Equal(t, "driver@example.com", user.Email)

	err := repo.Create(ctx, &models.User{Name: "Dup", Email: "DRIVER@example.com", Password: "x"})
	assert.ErrorIs(t, err, models.ErrEmailTaken)

	found, err := repo.FindByEmail(ctx, "driver@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestServiceTypeRepository(t *testing.T) {
	db := setupTestStore(t)
	ctx := context.Background()
	repo := NewServiceTypeRepository(db)

	types, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, types, len(database.DefaultServiceTypes()))

	grouped, err := repo.ListGrouped(ctx)
	require.NoError(t, err)
	assert.Len(t, grouped["Engine"], 3)
	assert.Len(t, grouped["Tires"], 2)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
