package testutil

import (
	"fmt"

	"github.com/weplanet/ecoquest/internal/models"
)

// MissionBuilder provides fluent API for creating test missions.
type MissionBuilder struct {
	mission models.Mission
}

func NewMission() *MissionBuilder {
	return &MissionBuilder{
		mission: models.Mission{
			ID:               1,
			Title:            "Test Mission",
			Description:      "Do something green",
			BasePoints:       20,
			BaseCO2Reduction: 100,
		},
	}
}

func (b *MissionBuilder) WithID(id int64) *MissionBuilder {
	b.mission.ID = id
	return b
}

func (b *MissionBuilder) WithTitle(title string) *MissionBuilder {
	b.mission.Title = title
	return b
}

func (b *MissionBuilder) WithPoints(points, co2 int) *MissionBuilder {
	b.mission.BasePoints = points
	b.mission.BaseCO2Reduction = co2
	return b
}

func (b *MissionBuilder) Build() models.Mission {
	return b.mission
}

// CatalogBuilder creates badge catalogs with unlock orders 1..n.
type CatalogBuilder struct {
	size     int
	category string
}

func NewCatalog(size int) *CatalogBuilder {
	return &CatalogBuilder{size: size, category: "Animals"}
}

func (b *CatalogBuilder) WithCategory(c string) *CatalogBuilder {
	b.category = c
	return b
}

func (b *CatalogBuilder) Build() []models.BadgeCatalogEntry {
	out := make([]models.BadgeCatalogEntry, 0, b.size)
	for i := 1; i <= b.size; i++ {
		out = append(out, models.BadgeCatalogEntry{
			BadgeID:     i,
			Name:        fmt.Sprintf("Badge %d", i),
			Description: fmt.Sprintf("Description %d", i),
			Category:    b.category,
			Image:       fmt.Sprintf("/images/badge_%d.png", i),
			UnlockOrder: i,
		})
	}
	return out
}

// ProgressBuilder provides fluent API for creating user progress.
type ProgressBuilder struct {
	progress models.UserProgress
}

func NewProgress() *ProgressBuilder {
	return &ProgressBuilder{progress: models.InitialProgress()}
}

func (b *ProgressBuilder) WithBadges(n int) *ProgressBuilder {
	b.progress.CurrentBadgeCount = n
	return b
}

func (b *ProgressBuilder) WithMissions(n, points, co2 int) *ProgressBuilder {
	b.progress.TotalMissionsCompleted = n
	b.progress.TotalPoints = points
	b.progress.TotalCO2Reduction = co2
	return b
}

func (b *ProgressBuilder) Build() models.UserProgress {
	return b.progress
}
