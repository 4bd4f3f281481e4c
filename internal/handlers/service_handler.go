package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
	"github.com/SereniteSpa01/spa-scheduler/internal/httpresp"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// Option aplatie pour le sélecteur de l'éditeur : une entrée par service et
// par variante, étiquetée nom + variante + durée.
type ServiceOption struct {
	ServiceID   uint    `json:"service_id"`
	VariationID *uint   `json:"variation_id"`
	Label       string  `json:"label"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
}

// ListCatalog retourne les catégories avec leurs services et variantes,
// plus la liste aplatie catégories → services → variantes.
func (h *ServiceHandler) ListCatalog(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))

	q := h.db.
		Preload("Services", "active = ?", true).
		Preload("Services.Variations")

	if category != "" {
		q = q.Where("LOWER(name) = LOWER(?)", category)
	}

	var categories []models.ServiceCategory
	if err := q.Order("name ASC").Find(&categories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erreur lors du chargement du catalogue.")
		return
	}

	var options []ServiceOption
	for _, cat := range categories {
		for _, svc := range cat.Services {
			if len(svc.Variations) == 0 {
				options = append(options, ServiceOption{
					ServiceID:   svc.ID,
					Label:       fmt.Sprintf("%s (%d min)", svc.Name, svc.DurationMin),
					DurationMin: svc.DurationMin,
					Price:       svc.Price,
				})
				continue
			}
			for _, v := range svc.Variations {
				vID := v.ID
				options = append(options, ServiceOption{
					ServiceID:   svc.ID,
					VariationID: &vID,
					Label:       fmt.Sprintf("%s — %s (%d min)", svc.Name, v.Name, v.DurationMin),
					DurationMin: v.DurationMin,
					Price:       v.Price,
				})
			}
		}
	}

	httpresp.OK(c, gin.H{
		"categories": categories,
		"options":    options,
	})
}
