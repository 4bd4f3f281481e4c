package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
	"github.com/SereniteSpa01/spa-scheduler/internal/httpresp"
	"github.com/SereniteSpa01/spa-scheduler/internal/middleware"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
	"github.com/SereniteSpa01/spa-scheduler/internal/schedule"
	ucBooking "github.com/SereniteSpa01/spa-scheduler/internal/usecase/booking"
)

type BreakHandler struct {
	db     *gorm.DB
	moveUC *ucBooking.MoveBreak
}

func NewBreakHandler(db *gorm.DB, moveUC *ucBooking.MoveBreak) *BreakHandler {
	return &BreakHandler{db: db, moveUC: moveUC}
}

// --------- Requests ---------

type CreateBreakRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	StartTime      string `json:"start_time" binding:"required"`
	EndTime        string `json:"end_time" binding:"required"`
	DayOfWeek      *int   `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	Label          string `json:"label" binding:"required"`
}

type UpdateBreakRequest struct {
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	DayOfWeek *int    `json:"day_of_week,omitempty" binding:"omitempty,min=0,max=6"`
	AllDays   *bool   `json:"all_days,omitempty"`
	Label     *string `json:"label,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

type MoveBreakRequest struct {
	TargetProfessionalID uint   `json:"target_professional_id" binding:"required"`
	TargetTime           string `json:"target_time" binding:"required"`
}

// --------- Handlers ---------

func (h *BreakHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if !validHMOrder(req.StartTime, req.EndTime) {
		httperr.BadRequest(c, "invalid_break_times", "L'heure de fin doit suivre l'heure de début.")
		return
	}

	br := models.Break{
		ProfessionalID: req.ProfessionalID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		DayOfWeek:      req.DayOfWeek,
		Label:          strings.TrimSpace(req.Label),
		IsActive:       true,
	}

	if err := h.db.Create(&br).Error; err != nil {
		httperr.Internal(c, "failed_to_create_break", "Erreur lors de la création de la pause.")
		return
	}

	writeAudit(h.db, &userID, "break_created", "break", &br.ID, nil)

	httpresp.Created(c, br)
}

func (h *BreakHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Break{})

	if ids := c.QueryArray("professional_ids"); len(ids) > 0 {
		q = q.Where("professional_id IN ?", ids)
	}
	// par défaut les pauses inactives sortent aussi : le modal d'édition
	// permet de les réactiver; ?active=true filtre pour le rendu
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}
	// ?date=2006-01-02 réduit au jour de semaine de cette date, les pauses
	// sans jour (tous les jours) restent incluses
	if dateStr := c.Query("date"); dateStr != "" {
		wd, ok := weekdayOf(dateStr)
		if !ok {
			httperr.BadRequest(c, "invalid_date", "Date invalide.")
			return
		}
		q = q.Where("day_of_week IS NULL OR day_of_week = ?", wd)
	}

	var breaks []models.Break
	if err := q.Order("professional_id ASC, start_time ASC").Find(&breaks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_breaks", "Erreur lors du chargement des pauses.")
		return
	}

	c.JSON(200, breaks)
}

func (h *BreakHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var br models.Break
	if err := h.db.First(&br, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "break_not_found", "Pause introuvable.")
		return
	}

	var req UpdateBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.StartTime != nil {
		br.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		br.EndTime = *req.EndTime
	}
	if !validHMOrder(br.StartTime, br.EndTime) {
		httperr.BadRequest(c, "invalid_break_times", "L'heure de fin doit suivre l'heure de début.")
		return
	}

	// all_days=true remet la pause sur tous les jours (day_of_week NULL)
	if req.AllDays != nil && *req.AllDays {
		br.DayOfWeek = nil
	} else if req.DayOfWeek != nil {
		br.DayOfWeek = req.DayOfWeek
	}

	if req.Label != nil {
		br.Label = strings.TrimSpace(*req.Label)
	}
	if req.IsActive != nil {
		br.IsActive = *req.IsActive
	}

	if err := h.db.Save(&br).Error; err != nil {
		httperr.Internal(c, "failed_to_update_break", "Erreur lors de la mise à jour de la pause.")
		return
	}

	writeAudit(h.db, &userID, "break_updated", "break", &br.ID, nil)

	c.JSON(200, br)
}

func (h *BreakHandler) Move(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req MoveBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	br, err := h.moveUC.Execute(c.Request.Context(), ucBooking.MoveBreakInput{
		RequestedBy:          userID,
		BreakID:              id,
		TargetProfessionalID: req.TargetProfessionalID,
		TargetTime:           req.TargetTime,
	})
	if err != nil {
		writeBusinessError(c, err, "Impossible de déplacer la pause.")
		return
	}

	c.JSON(200, br)
}

func (h *BreakHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	res := h.db.Delete(&models.Break{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_break", "Erreur lors de la suppression de la pause.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "break_not_found", "Pause introuvable.")
		return
	}

	writeAudit(h.db, &userID, "break_deleted", "break", &id, nil)

	c.JSON(200, gin.H{"status": "ok"})
}

func validHMOrder(startHM, endHM string) bool {
	s, err1 := schedule.MinutesOfDay(startHM)
	e, err2 := schedule.MinutesOfDay(endHM)
	return err1 == nil && err2 == nil && s < e
}

// weekdayOf rend le jour de semaine (0 = dimanche) d'une date "2006-01-02".
// Le jour de semaine d'une date civile ne dépend pas du fuseau.
func weekdayOf(dateStr string) (int, bool) {
	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return 0, false
	}
	return int(d.Weekday()), true
}
