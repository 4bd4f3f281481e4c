package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SereniteSpa01/spa-scheduler/internal/config"
	"github.com/SereniteSpa01/spa-scheduler/internal/dto"
	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
	"github.com/SereniteSpa01/spa-scheduler/internal/middleware"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
	"github.com/SereniteSpa01/spa-scheduler/internal/schedule"
	"github.com/SereniteSpa01/spa-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

// CalendarHandler assemble la vue d'une journée : colonnes selon le rôle,
// états d'occupation par cran, géométrie des cartes. La navigation de date
// est le paramètre ?date ; chaque mutation côté client est suivie d'un
// refetch de cette vue.
type CalendarHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewCalendarHandler(db *gorm.DB, cfg *config.Config) *CalendarHandler {
	return &CalendarHandler{db: db, cfg: cfg}
}

// ======================================================
// VIEW
// ======================================================

func (h *CalendarHandler) View(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	loc := timezone.Location(h.cfg.Timezone)

	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = timezone.NowIn(h.cfg.Timezone).Format("2006-01-02")
	}

	date, err := timezone.ParseDate(h.cfg.Timezone, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date invalide.")
		return
	}

	search := strings.ToLower(strings.TrimSpace(c.Query("search")))

	// ----------------------------------------------
	// Colonnes : un professionnel voit la sienne, admin et réception
	// voient tous les professionnels actifs, sans filtre de catégorie.
	// ----------------------------------------------

	var professionals []models.User
	if models.SeesAllColumns(role) {
		if err := h.db.
			Where("active = ? AND role IN ?", true, []string{models.RoleMassage, models.RoleEsthetics}).
			Order("name ASC").
			Find(&professionals).Error; err != nil {
			httperr.Internal(c, "failed_to_load_calendar", "Erreur lors du chargement du calendrier.")
			return
		}
	} else {
		var me models.User
		if err := h.db.First(&me, userID).Error; err != nil {
			httperr.Internal(c, "failed_to_load_calendar", "Erreur lors du chargement du calendrier.")
			return
		}
		professionals = []models.User{me}
	}

	ids := make([]uint, 0, len(professionals))
	for _, p := range professionals {
		ids = append(ids, p.ID)
	}

	// ----------------------------------------------
	// Données de la journée
	// ----------------------------------------------

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	var bookings []models.Booking
	if err := h.db.
		Preload("Client").
		Preload("Service").
		Preload("ServiceVariation").
		Where(
			"professional_id IN ? AND status <> 'CANCELLED' AND start_time >= ? AND start_time < ?",
			ids, dayStart, dayEnd,
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_load_calendar", "Erreur lors du chargement du calendrier.")
		return
	}

	var blocks []models.AvailabilityBlock
	if err := h.db.
		Where("professional_id IN ? AND date >= ? AND date < ?", ids, dayStart, dayEnd).
		Find(&blocks).Error; err != nil {
		httperr.Internal(c, "failed_to_load_calendar", "Erreur lors du chargement du calendrier.")
		return
	}

	weekday := int(date.Weekday())
	var breaks []models.Break
	if err := h.db.
		Where(
			"professional_id IN ? AND is_active = ? AND (day_of_week IS NULL OR day_of_week = ?)",
			ids, true, weekday,
		).
		Find(&breaks).Error; err != nil {
		httperr.Internal(c, "failed_to_load_calendar", "Erreur lors du chargement du calendrier.")
		return
	}

	view := h.buildView(calendarDay{
		date:          date,
		dateStr:       dateStr,
		search:        search,
		loc:           loc,
		professionals: professionals,
		bookings:      bookings,
		blocks:        blocks,
		breaks:        breaks,
	})

	c.JSON(200, view)
}

// ======================================================
// ASSEMBLAGE
// ======================================================

// calendarDay regroupe les données chargées pour une journée avant assemblage.
type calendarDay struct {
	date    time.Time
	dateStr string
	search  string
	loc     *time.Location

	professionals []models.User
	bookings      []models.Booking
	blocks        []models.AvailabilityBlock
	breaks        []models.Break
}

// buildView produit la vue complète d'une journée : une colonne par
// professionnel, états d'occupation cran par cran et géométrie des cartes.
// Le filtre de recherche ne touche jamais aux données chargées, seulement à
// ce qui sort dans la vue.
func (h *CalendarHandler) buildView(day calendarDay) dto.CalendarViewDTO {
	slots := schedule.GenerateTimeSlots(h.cfg.GridStartHour, h.cfg.GridEndHour, h.cfg.GridSlotMinutes)

	view := dto.CalendarViewDTO{
		Date: day.dateStr,
		Grid: dto.GridParamsDTO{
			StartHour:       h.cfg.GridStartHour,
			EndHour:         h.cfg.GridEndHour,
			IntervalMinutes: h.cfg.GridSlotMinutes,
			SlotHeightPx:    h.cfg.SlotHeightPx,
		},
		Slots: slots,
	}

	for _, p := range day.professionals {
		col := dto.CalendarColumnDTO{
			ProfessionalID:   p.ID,
			ProfessionalName: p.Name,
			Role:             p.Role,
			PhotoURL:         p.PhotoURL,
			SlotStates:       make([]dto.SlotStateDTO, 0, len(slots)),
		}

		for _, slot := range slots {
			occ := schedule.Resolve(p.ID, day.date, slot.Time, day.blocks, day.breaks)
			state := dto.SlotStateDTO{
				Time:           slot.Time,
				IsHourBoundary: slot.IsHourBoundary,
				State:          occ.Kind,
				Reason:         occ.Reason,
				Label:          occ.Label,
			}
			if occ.Block != nil {
				state.BlockID = &occ.Block.ID
			}
			if occ.BreakRef != nil {
				state.BreakID = &occ.BreakRef.ID
			}
			col.SlotStates = append(col.SlotStates, state)
		}

		for i := range day.bookings {
			bk := &day.bookings[i]
			if bk.ProfessionalID != p.ID {
				continue
			}
			if day.search != "" && !strings.Contains(strings.ToLower(bk.Client.Name), day.search) {
				continue
			}

			iv, err := schedule.NewInterval(bk.StartTime.In(day.loc), bk.EndTime.In(day.loc))
			if err != nil {
				log.Printf("calendar: booking %d has invalid interval, skipping", bk.ID)
				continue
			}
			pos := schedule.ComputePosition(iv, h.cfg.GridStartHour, h.cfg.SlotHeightPx, h.cfg.GridSlotMinutes)

			serviceName := bk.Service.Name
			if bk.ServiceVariation != nil {
				serviceName += " — " + bk.ServiceVariation.Name
			}

			col.Bookings = append(col.Bookings, dto.BookingCardDTO{
				ID:          bk.ID,
				Status:      bk.Status,
				Top:         pos.Top,
				Height:      pos.Height,
				Start:       bk.StartTime,
				End:         bk.EndTime,
				ClientID:    bk.ClientID,
				ClientName:  bk.Client.Name,
				ServiceName: serviceName,
				Notes:       bk.Notes,
			})
		}

		for i := range day.breaks {
			br := &day.breaks[i]
			if br.ProfessionalID != p.ID {
				continue
			}
			iv, err := schedule.IntervalFromParts(day.dateStr, br.StartTime, br.EndTime, day.loc)
			if err != nil {
				log.Printf("calendar: break %d has invalid times, skipping", br.ID)
				continue
			}
			pos := schedule.ComputePosition(iv, h.cfg.GridStartHour, h.cfg.SlotHeightPx, h.cfg.GridSlotMinutes)

			col.Breaks = append(col.Breaks, dto.BreakCardDTO{
				ID:     br.ID,
				Label:  br.Label,
				Top:    pos.Top,
				Height: pos.Height,
				Start:  br.StartTime,
				End:    br.EndTime,
			})
		}

		view.Columns = append(view.Columns, col)
	}

	return view
}
