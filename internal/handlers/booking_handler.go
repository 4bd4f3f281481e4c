package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SereniteSpa01/spa-scheduler/internal/config"
	domain "github.com/SereniteSpa01/spa-scheduler/internal/domain/booking"
	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
	"github.com/SereniteSpa01/spa-scheduler/internal/lock"
	"github.com/SereniteSpa01/spa-scheduler/internal/middleware"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
	"github.com/SereniteSpa01/spa-scheduler/internal/timezone"
	ucBooking "github.com/SereniteSpa01/spa-scheduler/internal/usecase/booking"
	"github.com/SereniteSpa01/spa-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db     *gorm.DB
	cfg    *config.Config
	locker lock.Locker

	createUC *ucBooking.CreateBooking
	updateUC *ucBooking.UpdateBooking
	moveUC   *ucBooking.MoveBooking
	statusUC *ucBooking.ChangeStatus
	deleteUC *ucBooking.DeleteBooking
}

func NewBookingHandler(
	db *gorm.DB,
	cfg *config.Config,
	locker lock.Locker,
	createUC *ucBooking.CreateBooking,
	updateUC *ucBooking.UpdateBooking,
	moveUC *ucBooking.MoveBooking,
	statusUC *ucBooking.ChangeStatus,
	deleteUC *ucBooking.DeleteBooking,
) *BookingHandler {
	return &BookingHandler{
		db:       db,
		cfg:      cfg,
		locker:   locker,
		createUC: createUC,
		updateUC: updateUC,
		moveUC:   moveUC,
		statusUC: statusUC,
		deleteUC: deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ProfessionalID uint `json:"professional_id" binding:"required"`

	ClientID *uint `json:"client_id"`

	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	ServiceID          uint  `json:"service_id" binding:"required"`
	ServiceVariationID *uint `json:"service_variation_id"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	Notes       string `json:"notes"`
	RemindSMS   bool   `json:"remind_sms"`
	RemindEmail bool   `json:"remind_email"`
}

type UpdateBookingRequest struct {
	Date *string `json:"date,omitempty"`
	Time *string `json:"time,omitempty"`

	ServiceID          *uint `json:"service_id,omitempty"`
	ServiceVariationID *uint `json:"service_variation_id,omitempty"`

	Notes       *string `json:"notes,omitempty"`
	RemindSMS   *bool   `json:"remind_sms,omitempty"`
	RemindEmail *bool   `json:"remind_email,omitempty"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type MoveBookingRequest struct {
	TargetProfessionalID uint   `json:"target_professional_id" binding:"required"`
	TargetTime           string `json:"target_time" binding:"required"`
	TargetDate           string `json:"target_date"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.ClientEmail != "" {
		req.ClientEmail = validators.NormalizeEmail(req.ClientEmail)
		if !validators.IsEmailDomainValid(req.ClientEmail) {
			httperr.BadRequest(c, "invalid_client_email", "Le domaine du courriel n'existe pas.")
			return
		}
	}

	// garde anti double soumission : un même Idempotency-Key ne passe qu'une fois
	release, ok := h.acquireSubmitGuard(c)
	if !ok {
		return
	}

	bk, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		RequestedBy:        userID,
		ProfessionalID:     req.ProfessionalID,
		ClientID:           req.ClientID,
		ClientName:         req.ClientName,
		ClientPhone:        req.ClientPhone,
		ClientEmail:        req.ClientEmail,
		ServiceID:          req.ServiceID,
		ServiceVariationID: req.ServiceVariationID,
		Date:               req.Date,
		Time:               req.Time,
		Notes:              req.Notes,
		RemindSMS:          req.RemindSMS,
		RemindEmail:        req.RemindEmail,
	})
	if err != nil {
		// la clé est libérée pour qu'une resoumission corrigée puisse passer
		release()
		writeBusinessError(c, err, "Erreur lors de la création du rendez-vous.")
		return
	}

	c.JSON(201, bk)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

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

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	q := h.db.
		Preload("Client").
		Preload("Service").
		Preload("ServiceVariation").
		Where("start_time >= ? AND start_time < ?", start, end)

	// un professionnel ne voit que sa propre colonne
	if models.HoldsCalendar(role) {
		q = q.Where("professional_id = ?", userID)
	} else if pid := c.Query("professional_id"); pid != "" {
		q = q.Where("professional_id = ?", pid)
	}

	var bookings []models.Booking
	if err := q.Order("start_time ASC").Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Erreur lors du chargement des rendez-vous.")
		return
	}

	c.JSON(200, bookings)
}

// ======================================================
// UPDATE (édition partielle depuis le panneau latéral)
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	bk, err := h.updateUC.Execute(c.Request.Context(), ucBooking.UpdateBookingInput{
		RequestedBy:        userID,
		BookingID:          id,
		Date:               req.Date,
		Time:               req.Time,
		ServiceID:          req.ServiceID,
		ServiceVariationID: req.ServiceVariationID,
		Notes:              req.Notes,
		RemindSMS:          req.RemindSMS,
		RemindEmail:        req.RemindEmail,
	})
	if err != nil {
		writeBusinessError(c, err, "Erreur lors de la mise à jour.")
		return
	}

	c.JSON(200, bk)
}

// ======================================================
// STATUS / ARRIVED
// ======================================================

func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	h.changeStatus(c, "")
}

// Arrived : raccourci du menu contextuel, équivaut à status=ARRIVED et
// déclenche la notification d'arrivée.
func (h *BookingHandler) Arrived(c *gin.Context) {
	h.changeStatus(c, string(domain.StatusArrived))
}

func (h *BookingHandler) changeStatus(c *gin.Context, forced string) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	status := forced
	if status == "" {
		var req ChangeStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Données invalides.")
			return
		}
		status = req.Status
	}

	bk, err := h.statusUC.Execute(c.Request.Context(), ucBooking.ChangeStatusInput{
		RequestedBy: userID,
		BookingID:   id,
		Status:      status,
	})
	if err != nil {
		writeBusinessError(c, err, "Erreur lors du changement de statut.")
		return
	}

	c.JSON(200, bk)
}

// ======================================================
// MOVE (glisser-déposer)
// ======================================================

func (h *BookingHandler) Move(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req MoveBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	release, ok := h.acquireSubmitGuard(c)
	if !ok {
		return
	}

	bk, err := h.moveUC.Execute(c.Request.Context(), ucBooking.MoveBookingInput{
		RequestedBy:          userID,
		BookingID:            id,
		TargetProfessionalID: req.TargetProfessionalID,
		TargetTime:           req.TargetTime,
		TargetDate:           req.TargetDate,
	})
	if err != nil {
		release()
		writeBusinessError(c, err, "Impossible de déplacer le rendez-vous.")
		return
	}

	c.JSON(200, bk)
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), userID, id); err != nil {
		writeBusinessError(c, err, "Erreur lors de la suppression.")
		return
	}

	c.JSON(200, gin.H{"status": "ok"})
}

// ======================================================
// HELPERS
// ======================================================

// La fonction de libération n'est appelée que si la mutation échoue : un
// succès laisse la clé expirer avec son TTL pour absorber les doubles clics.
func (h *BookingHandler) acquireSubmitGuard(c *gin.Context) (func(), bool) {
	noop := func() {}

	key := c.GetHeader("Idempotency-Key")
	if key == "" {
		return noop, true
	}

	ok, err := h.locker.Lock(c.Request.Context(), key, 30*time.Second)
	if err != nil {
		// redis indisponible : on laisse passer plutôt que de bloquer l'API
		return noop, true
	}
	if !ok {
		httperr.Conflict(c, "duplicate_submission", "Requête déjà en cours de traitement.")
		return noop, false
	}

	return func() {
		_ = h.locker.Unlock(c.Request.Context(), key)
	}, true
}
