package reward

import (
	"sort"

	"github.com/weplanet/ecoquest/internal/models"
)

// Mystery placeholder shown for badges that are not unlocked yet.
const (
	MysteryName        = "???"
	MysteryDescription = "Complete missions to unlock!"
	MysteryCategory    = "Unknown"
	MysteryImage       = "/images/mystery_badge.png"
)

// ProjectBadges maps the catalog to display entries for a badge count. An
// entry is unlocked iff its unlock order is at most count; locked entries
// carry the mystery placeholder. The result is sorted by unlock order.
func ProjectBadges(catalog []models.BadgeCatalogEntry, count int) []models.BadgeDisplay {
	out := make([]models.BadgeDisplay, 0, len(catalog))
	for _, b := range catalog {
		d := models.BadgeDisplay{
			BadgeID:     b.BadgeID,
			UnlockOrder: b.UnlockOrder,
			Unlocked:    b.UnlockOrder <= count,
		}
		if d.Unlocked {
			d.DisplayName = b.Name
			d.DisplayDescription = b.Description
			d.DisplayCategory = b.Category
			d.DisplayImage = b.Image
		} else {
			d.DisplayName = MysteryName
			d.DisplayDescription = MysteryDescription
			d.DisplayCategory = MysteryCategory
			d.DisplayImage = MysteryImage
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UnlockOrder < out[j].UnlockOrder
	})
	return out
}

// UnlockedCount counts the unlocked entries of a projection.
func UnlockedCount(displays []models.BadgeDisplay) int {
	n := 0
	for _, d := range displays {
		if d.Unlocked {
			n++
		}
	}
	return n
}

// SeedCatalog is the built-in catalog used when no catalog could be
// fetched. Only the first badge has real content.
func SeedCatalog() []models.BadgeCatalogEntry {
	seed := make([]models.BadgeCatalogEntry, 0, 8)
	seed = append(seed, models.BadgeCatalogEntry{
		BadgeID:     1,
		Name:        "Giant Panda",
		Description: "A gentle animal whose bamboo forest home is shrinking. Protecting forests in China matters.",
		Category:    "Endangered animals",
		Image:       "/images/badges/panda.png",
		UnlockOrder: 1,
	})
	for id := 2; id <= 8; id++ {
		seed = append(seed, models.BadgeCatalogEntry{
			BadgeID:     id,
			Name:        "Earned badge",
			Description: "Badge earned through eco activity",
			Category:    "Eco badge",
			Image:       MysteryImage,
			UnlockOrder: id,
		})
	}
	return seed
}
