package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SereniteSpa01/spa-scheduler/internal/config"
	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
	"github.com/SereniteSpa01/spa-scheduler/internal/httpresp"
	"github.com/SereniteSpa01/spa-scheduler/internal/middleware"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
	"github.com/SereniteSpa01/spa-scheduler/internal/timezone"
)

type BlockHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewBlockHandler(db *gorm.DB, cfg *config.Config) *BlockHandler {
	return &BlockHandler{db: db, cfg: cfg}
}

// --------- Requests ---------

// Deux modes : journée complète (aucune heure) ou période (les deux heures).
type CreateBlockRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	Date           string `json:"date" binding:"required"`

	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`

	Reason string `json:"reason"`
}

// --------- Handlers ---------

func (h *BlockHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	date, err := timezone.ParseDate(h.cfg.Timezone, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date invalide.")
		return
	}

	// période : les deux bornes, fin après début; journée : aucune borne
	if (req.StartTime == nil) != (req.EndTime == nil) {
		httperr.BadRequest(c, "invalid_block_times", "Une période exige heure de début et heure de fin.")
		return
	}
	if req.StartTime != nil && !validHMOrder(*req.StartTime, *req.EndTime) {
		httperr.BadRequest(c, "invalid_block_times", "L'heure de fin doit suivre l'heure de début.")
		return
	}

	block := models.AvailabilityBlock{
		ProfessionalID: req.ProfessionalID,
		Date:           date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Reason:         req.Reason,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_block", "Erreur lors de la création du blocage.")
		return
	}

	writeAudit(h.db, &userID, "block_created", "availability_block", &block.ID, nil)

	httpresp.Created(c, block)
}

func (h *BlockHandler) List(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date obligatoire.")
		return
	}

	date, err := timezone.ParseDate(h.cfg.Timezone, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date invalide.")
		return
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	q := h.db.Where("date >= ? AND date < ?", dayStart, dayEnd)

	if ids := c.QueryArray("professional_ids"); len(ids) > 0 {
		q = q.Where("professional_id IN ?", ids)
	}

	var blocks []models.AvailabilityBlock
	if err := q.Order("professional_id ASC").Find(&blocks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocks", "Erreur lors du chargement des blocages.")
		return
	}

	httpresp.List(c, blocks)
}

// Delete supprime un blocage de période par id. Le déblocage d'une journée
// complète passe par UnblockDay : les deux genres de blocage ne sont pas
// interchangeables côté stockage.
func (h *BlockHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var block models.AvailabilityBlock
	if err := h.db.First(&block, id).Error; err != nil {
		httperr.NotFound(c, "block_not_found", "Blocage introuvable.")
		return
	}

	if block.IsFullDay() {
		httperr.BadRequest(c, "not_a_period_block", "Utiliser le déblocage de journée pour ce blocage.")
		return
	}

	if err := h.db.Delete(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_block", "Erreur lors de la suppression du blocage.")
		return
	}

	writeAudit(h.db, &userID, "block_deleted", "availability_block", &id, nil)

	c.JSON(200, gin.H{"status": "ok"})
}

// UnblockDay retire le blocage journée complète d'un professionnel à une
// date donnée.
func (h *BlockHandler) UnblockDay(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	pid := c.Query("professional_id")
	dateStr := c.Query("date")
	if pid == "" || dateStr == "" {
		httperr.BadRequest(c, "missing_parameters", "Professionnel et date obligatoires.")
		return
	}

	date, err := timezone.ParseDate(h.cfg.Timezone, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date invalide.")
		return
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	res := h.db.
		Where(
			"professional_id = ? AND date >= ? AND date < ? AND start_time IS NULL AND end_time IS NULL",
			pid, dayStart, dayEnd,
		).
		Delete(&models.AvailabilityBlock{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_unblock_day", "Erreur lors du déblocage.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "block_not_found", "Aucune journée bloquée à cette date.")
		return
	}

	writeAudit(h.db, &userID, "day_unblocked", "availability_block", nil, gin.H{
		"professional_id": pid,
		"date":            dateStr,
	})

	c.JSON(200, gin.H{"status": "ok"})
}
