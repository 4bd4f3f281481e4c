package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SereniteSpa01/spa-scheduler/internal/config"
	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
	"github.com/SereniteSpa01/spa-scheduler/internal/middleware"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
	"github.com/SereniteSpa01/spa-scheduler/internal/timezone"
	ucSchedule "github.com/SereniteSpa01/spa-scheduler/internal/usecase/schedule"
)

type AvailabilityHandler struct {
	db         *gorm.DB
	cfg        *config.Config
	generateUC *ucSchedule.GeneratePeriod
}

func NewAvailabilityHandler(
	db *gorm.DB,
	cfg *config.Config,
	generateUC *ucSchedule.GeneratePeriod,
) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, cfg: cfg, generateUC: generateUC}
}

// --------- Requests ---------

type WeeklyDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WeeklyUpdateRequest struct {
	ProfessionalID uint              `json:"professional_id" binding:"required"`
	Days           []WeeklyDayConfig `json:"days" binding:"required"`
}

type UpdateDayRequest struct {
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	IsAvailable *bool   `json:"is_available" binding:"required"`
	Reason      *string `json:"reason,omitempty"`
}

type GeneratePeriodRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	StartDate      string `json:"start_date" binding:"required"`
	EndDate        string `json:"end_date" binding:"required"`
}

// --------- Gabarit hebdomadaire ---------

func (h *AvailabilityHandler) GetWeekly(c *gin.Context) {
	pid := c.Query("professional_id")
	if pid == "" {
		httperr.BadRequest(c, "missing_professional", "Professionnel obligatoire.")
		return
	}

	var tpl []models.WeeklyAvailability
	if err := h.db.
		Where("professional_id = ?", pid).
		Order("weekday ASC").
		Find(&tpl).Error; err != nil {

		httperr.Internal(c, "failed_to_get_weekly", "Erreur lors du chargement du gabarit.")
		return
	}

	c.JSON(200, tpl)
}

// UpdateWeekly remplace le gabarit au complet, comme l'éditeur l'envoie.
func (h *AvailabilityHandler) UpdateWeekly(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req WeeklyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	for _, d := range req.Days {
		if d.Active && !validHMOrder(d.StartTime, d.EndTime) {
			httperr.BadRequest(c, "invalid_hours", "L'heure de fin doit suivre l'heure de début.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("professional_id = ?", req.ProfessionalID).
			Delete(&models.WeeklyAvailability{}).Error; err != nil {
			return err
		}

		var toCreate []models.WeeklyAvailability
		for _, d := range req.Days {
			toCreate = append(toCreate, models.WeeklyAvailability{
				ProfessionalID: req.ProfessionalID,
				Weekday:        d.Weekday,
				Active:         d.Active,
				StartTime:      d.StartTime,
				EndTime:        d.EndTime,
			})
		}

		if len(toCreate) > 0 {
			if err := tx.Create(&toCreate).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_weekly", "Erreur lors de la sauvegarde du gabarit.")
		return
	}

	writeAudit(h.db, &userID, "weekly_template_updated", "weekly_availability", nil, gin.H{
		"professional_id": req.ProfessionalID,
	})

	c.JSON(200, gin.H{"status": "ok"})
}

// --------- Horaire d'une journée ---------

func (h *AvailabilityHandler) UpdateDay(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var day models.DayAvailability
	if err := h.db.First(&day, id).Error; err != nil {
		httperr.NotFound(c, "day_not_found", "Journée introuvable.")
		return
	}

	var req UpdateDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.StartTime != nil {
		day.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		day.EndTime = *req.EndTime
	}
	if day.StartTime != "" && day.EndTime != "" && !validHMOrder(day.StartTime, day.EndTime) {
		httperr.BadRequest(c, "invalid_hours", "L'heure de fin doit suivre l'heure de début.")
		return
	}
	if req.IsAvailable != nil {
		day.IsAvailable = *req.IsAvailable
	}
	if req.Reason != nil {
		day.Reason = *req.Reason
	}

	if err := h.db.Save(&day).Error; err != nil {
		httperr.Internal(c, "failed_to_update_day", "Erreur lors de la mise à jour de la journée.")
		return
	}

	writeAudit(h.db, &userID, "day_availability_updated", "day_availability", &day.ID, nil)

	c.JSON(200, day)
}

// --------- Génération de période ---------

func (h *AvailabilityHandler) GeneratePeriod(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req GeneratePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	start, err := timezone.ParseDate(h.cfg.Timezone, req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date de début invalide.")
		return
	}
	end, err := timezone.ParseDate(h.cfg.Timezone, req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date de fin invalide.")
		return
	}

	result, err := h.generateUC.Execute(c.Request.Context(), ucSchedule.GeneratePeriodInput{
		RequestedBy:    userID,
		ProfessionalID: req.ProfessionalID,
		StartDate:      start,
		EndDate:        end,
	})
	if err != nil {
		writeBusinessError(c, err, "Erreur lors de la génération de l'horaire.")
		return
	}

	c.JSON(200, result)
}
