package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
	"github.com/SereniteSpa01/spa-scheduler/internal/httpresp"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
)

type PractitionerHandler struct {
	db *gorm.DB
}

func NewPractitionerHandler(db *gorm.DB) *PractitionerHandler {
	return &PractitionerHandler{db: db}
}

// List retourne les utilisateurs actifs, filtrables par rôle. Sans filtre,
// seuls les rôles professionnels sortent : c'est la liste des colonnes
// possibles du calendrier et du sélecteur de l'éditeur.
func (h *PractitionerHandler) List(c *gin.Context) {
	role := strings.TrimSpace(c.Query("role"))

	q := h.db.Where("active = ?", true)

	if role != "" {
		q = q.Where("role = ?", role)
	} else {
		q = q.Where("role IN ?", []string{models.RoleMassage, models.RoleEsthetics})
	}

	var users []models.User
	if err := q.Order("name ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Erreur lors du chargement des professionnels.")
		return
	}

	httpresp.List(c, users)
}
