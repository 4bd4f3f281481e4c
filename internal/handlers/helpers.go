package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
)

// Messages humains pour les codes métier. Le code machine est toujours
// remonté tel quel ; le message sert l'affichage direct côté client.
var businessMessages = map[string]string{
	"time_conflict":            "Conflit d'horaire : un autre rendez-vous occupe cette plage.",
	"blocked_day":              "La journée est bloquée pour ce professionnel.",
	"blocked_period":           "Cette plage est bloquée pour ce professionnel.",
	"on_break":                 "Cette plage tombe sur une pause.",
	"booking_not_found":        "Rendez-vous introuvable.",
	"break_not_found":          "Pause introuvable.",
	"service_not_found":        "Service introuvable.",
	"variation_not_found":      "Variante introuvable.",
	"client_not_found":         "Client introuvable.",
	"invalid_date_or_time":     "Date ou heure invalide.",
	"invalid_duration":         "Durée invalide.",
	"invalid_status":           "Statut inconnu.",
	"invalid_period":           "Période invalide.",
	"empty_weekly_template":    "Aucun gabarit hebdomadaire défini.",
	"ambiguous_client_payload": "Indiquer un client existant ou un nouveau client, pas les deux.",
	"missing_client_fields":    "Nom et téléphone obligatoires pour un nouveau client.",
	"invalid_break_times":      "Heures de pause invalides.",
	"break_past_midnight":      "La pause déborderait sur le jour suivant.",
}

// writeBusinessError mappe une erreur métier vers 400 avec son code et son
// message ; tout le reste devient un 500 générique. Les échecs de mutation
// sont toujours convertis en réponse, jamais relancés.
func writeBusinessError(c *gin.Context, err error, fallback string) {
	if code := httperr.BusinessCode(err); code != "" {
		msg := businessMessages[code]
		if msg == "" {
			msg = fallback
		}
		httperr.BadRequest(c, code, msg)
		return
	}
	httperr.Internal(c, "internal_error", fallback)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return 0, false
	}
	return uint(n), true
}

func writeAudit(
	db *gorm.DB,
	userID *uint,
	action string,
	entity string,
	entityID *uint,
	meta any,
) {

	var payload string
	if meta != nil {
		if b, err := json.Marshal(meta); err == nil {
			payload = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: payload,
	}

	db.Create(&entry)
}
