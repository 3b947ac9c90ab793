package api

import (
	"math"

	"github.com/weplanet/ecoquest/internal/models"
)

type missionDTO struct {
	MissionID        *int64   `json:"mission_id"`
	Title            *string  `json:"title"`
	Description      string   `json:"description"`
	DefaultPoint     *float64 `json:"default_point"`
	BaseCO2Reduction *float64 `json:"base_co2_reduction"`
}

func (d missionDTO) toModel(op string) (models.Mission, error) {
	if d.MissionID == nil || d.Title == nil || d.DefaultPoint == nil {
		return models.Mission{}, malformed(op, "mission_id, title and default_point are required")
	}
	return models.Mission{
		ID:               *d.MissionID,
		Title:            *d.Title,
		Description:      d.Description,
		BasePoints:       round(d.DefaultPoint),
		BaseCO2Reduction: round(d.BaseCO2Reduction),
	}, nil
}

type statusDTO struct {
	LockedToday *bool  `json:"lockedToday"`
	Date        string `json:"date"`
}

type badgeAwardDTO struct {
	BadgeID    int    `json:"badge_id"`
	Name       string `json:"name"`
	BadgeName  string `json:"badge_name"`
	BadgeImage string `json:"badge_image"`
}

func (d *badgeAwardDTO) toModel() *models.BadgeAward {
	if d == nil {
		return nil
	}
	name := d.Name
	if name == "" {
		name = d.BadgeName
	}
	if name == "" && d.BadgeID == 0 {
		return nil
	}
	return &models.BadgeAward{BadgeID: d.BadgeID, Name: name, Image: d.BadgeImage}
}

type completeDTO struct {
	OK          bool           `json:"ok"`
	ActivityID  int64          `json:"activity_id"`
	Mission     *missionDTO    `json:"mission"`
	Badge       *badgeAwardDTO `json:"badge"`
	LockedToday bool           `json:"lockedToday"`
}

func (d completeDTO) toModel() models.CompletionResult {
	res := models.CompletionResult{
		OK:          d.OK,
		ActivityID:  d.ActivityID,
		Badge:       d.Badge.toModel(),
		LockedToday: d.LockedToday,
	}
	// The echoed mission is optional; only trust it when it carries points.
	if d.Mission != nil && d.Mission.DefaultPoint != nil {
		m := models.Mission{
			Description:      d.Mission.Description,
			BasePoints:       round(d.Mission.DefaultPoint),
			BaseCO2Reduction: round(d.Mission.BaseCO2Reduction),
		}
		if d.Mission.MissionID != nil {
			m.ID = *d.Mission.MissionID
		}
		if d.Mission.Title != nil {
			m.Title = *d.Mission.Title
		}
		res.Mission = &m
	}
	return res
}

type badgeDTO struct {
	BadgeID      *int   `json:"badge_id"`
	BadgeName    string `json:"badge_name"`
	Description  string `json:"description"`
	CategoryName string `json:"category_name"`
	BadgeImage   string `json:"badge_image"`
	UnlockOrder  int    `json:"unlock_order"`
}

func (d badgeDTO) toModel(op string) (models.BadgeCatalogEntry, error) {
	if d.BadgeID == nil {
		return models.BadgeCatalogEntry{}, malformed(op, "badge_id is required")
	}
	order := d.UnlockOrder
	if order == 0 {
		order = *d.BadgeID
	}
	return models.BadgeCatalogEntry{
		BadgeID:     *d.BadgeID,
		Name:        d.BadgeName,
		Description: d.Description,
		Category:    d.CategoryName,
		Image:       d.BadgeImage,
		UnlockOrder: order,
	}, nil
}

type progressDTO struct {
	TotalPoints            *float64 `json:"total_points"`
	TotalCO2Reduction      *float64 `json:"total_co2_reduction"`
	CurrentBadgeCount      *float64 `json:"current_badge_count"`
	TotalMissionsCompleted *float64 `json:"total_missions_completed"`
}

func (d progressDTO) toModel(op string) (models.UserProgress, error) {
	if d.TotalPoints == nil || d.TotalCO2Reduction == nil || d.CurrentBadgeCount == nil || d.TotalMissionsCompleted == nil {
		return models.UserProgress{}, malformed(op, "progress fields are required")
	}
	return models.UserProgress{
		TotalPoints:            round(d.TotalPoints),
		TotalCO2Reduction:      round(d.TotalCO2Reduction),
		CurrentBadgeCount:      round(d.CurrentBadgeCount),
		TotalMissionsCompleted: round(d.TotalMissionsCompleted),
	}, nil
}

type summaryDTO struct {
	Month string   `json:"month"`
	Sugi  *float64 `json:"sugi"`
	CO2G  *float64 `json:"co2_g"`
}

func (d summaryDTO) toModel(op string) (models.EcoSummary, error) {
	if d.Sugi == nil || d.CO2G == nil {
		return models.EcoSummary{}, malformed(op, "sugi and co2_g are required")
	}
	return models.EcoSummary{Month: d.Month, CedarTrees: *d.Sugi, CO2Grams: round(d.CO2G)}, nil
}

func round(v *float64) int {
	if v == nil {
		return 0
	}
	return int(math.Round(*v))
}
