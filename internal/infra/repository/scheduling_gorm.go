package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
	"github.com/SereniteSpa01/spa-scheduler/internal/schedule"
)

// SchedulingGormRepository implémente booking.Repository et
// availability.Repository sur Postgres.
type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Catalogue
// --------------------------------------------------

func (r *SchedulingGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", serviceID, true).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *SchedulingGormRepository) GetServiceVariation(
	ctx context.Context,
	serviceID uint,
	variationID uint,
) (*models.ServiceVariation, error) {

	var v models.ServiceVariation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND service_id = ?", variationID, serviceID).
		First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *SchedulingGormRepository) GetClient(
	ctx context.Context,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, clientID).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *SchedulingGormRepository) GetOrCreateClient(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	client = models.Client{
		Name:  name,
		Phone: phone,
		Email: email,
	}
	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateBooking(
	ctx context.Context,
	bk *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(bk).Error
}

func (r *SchedulingGormRepository) GetBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var bk models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("ServiceVariation").
		First(&bk, bookingID).Error; err != nil {
		return nil, err
	}
	return &bk, nil
}

func (r *SchedulingGormRepository) SaveBooking(
	ctx context.Context,
	bk *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(bk).Error
}

func (r *SchedulingGormRepository) DeleteBooking(
	ctx context.Context,
	bookingID uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, bookingID).Error
}

// --------------------------------------------------
// Break
// --------------------------------------------------

func (r *SchedulingGormRepository) GetBreak(
	ctx context.Context,
	id uint,
) (*models.Break, error) {

	var br models.Break
	if err := r.db.WithContext(ctx).First(&br, id).Error; err != nil {
		return nil, err
	}
	return &br, nil
}

func (r *SchedulingGormRepository) SaveBreak(
	ctx context.Context,
	br *models.Break,
) error {
	return r.db.WithContext(ctx).Save(br).Error
}

// --------------------------------------------------
// Conflits
// --------------------------------------------------

func (r *SchedulingGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		q := tx.
			Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"professional_id = ? AND status NOT IN ('CANCELLED', 'NO_SHOW') AND start_time < ? AND end_time > ?",
				professionalID, end, start,
			)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}
		return nil
	})
}

func (r *SchedulingGormRepository) AssertSlotSchedulable(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) error {

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var blocks []models.AvailabilityBlock
	if err := r.db.WithContext(ctx).
		Where(
			"professional_id = ? AND date >= ? AND date < ?",
			professionalID, dayStart, dayEnd,
		).
		Find(&blocks).Error; err != nil {
		return err
	}

	startMins := start.Hour()*60 + start.Minute()
	endMins := end.Hour()*60 + end.Minute()

	for i := range blocks {
		b := &blocks[i]
		if b.IsFullDay() {
			return httperr.ErrBusiness("blocked_day")
		}
		if b.StartTime == nil || b.EndTime == nil {
			continue
		}
		bs, err1 := schedule.MinutesOfDay(*b.StartTime)
		be, err2 := schedule.MinutesOfDay(*b.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if startMins < be && endMins > bs {
			return httperr.ErrBusiness("blocked_period")
		}
	}

	weekday := int(start.Weekday())

	var breaks []models.Break
	if err := r.db.WithContext(ctx).
		Where(
			"professional_id = ? AND is_active = ? AND (day_of_week IS NULL OR day_of_week = ?)",
			professionalID, true, weekday,
		).
		Find(&breaks).Error; err != nil {
		return err
	}

	for i := range breaks {
		br := &breaks[i]
		bs, err1 := schedule.MinutesOfDay(br.StartTime)
		be, err2 := schedule.MinutesOfDay(br.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if startMins < be && endMins > bs {
			return httperr.ErrBusiness("on_break")
		}
	}

	return nil
}

// --------------------------------------------------
// Disponibilités (gabarit hebdomadaire / jours)
// --------------------------------------------------

func (r *SchedulingGormRepository) ListWeeklyTemplate(
	ctx context.Context,
	professionalID uint,
) ([]models.WeeklyAvailability, error) {

	var tpl []models.WeeklyAvailability
	if err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("weekday ASC").
		Find(&tpl).Error; err != nil {
		return nil, err
	}
	return tpl, nil
}

func (r *SchedulingGormRepository) DayAvailabilityExists(
	ctx context.Context,
	professionalID uint,
	date time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DayAvailability{}).
		Where("professional_id = ? AND date = ?", professionalID, date).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SchedulingGormRepository) CreateDayAvailability(
	ctx context.Context,
	day *models.DayAvailability,
) error {
	return r.db.WithContext(ctx).Create(day).Error
}
