package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/weplanet/ecoquest/internal/models"
)

// ProgressReport is the data exported to PDF.
type ProgressReport struct {
	Generated time.Time
	UserID    string
	Progress  models.UserProgress
	Displays  []models.BadgeDisplay
	Summary   *models.EcoSummary
	Offline   bool
}

// WriteProgressReport renders rep into dir and returns the file path.
func WriteProgressReport(dir string, rep ProgressReport) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Eco Progress Report: %s", rep.Generated.Format("2006-01-02")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("User: %s", rep.UserID))
	pdf.Ln(6)
	if rep.Offline {
		pdf.Cell(0, 8, "Data source: offline snapshot")
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Totals
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Totals")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	p := rep.Progress
	pdf.Cell(0, 8, fmt.Sprintf("Points: %d", p.TotalPoints))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("CO2 reduction: %s", FormatCO2(p.TotalCO2Reduction)))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Missions completed: %d", p.TotalMissionsCompleted))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Badges: %d", p.CurrentBadgeCount))
	pdf.Ln(10)

	if rep.Summary != nil {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, fmt.Sprintf("This month (%s)", rep.Summary.Month))
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, fmt.Sprintf("%s saved, the yearly absorption of %.2f cedar trees.", FormatCO2(rep.Summary.CO2Grams), rep.Summary.CedarTrees))
		pdf.Ln(10)
	}

	// Badges
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Badges")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	if len(rep.Displays) == 0 {
		pdf.Cell(0, 8, "  - No badges yet.")
		pdf.Ln(8)
	}
	for _, d := range rep.Displays {
		status := "[ ]"
		if d.Unlocked {
			status = "[x]"
		}
		line := fmt.Sprintf("%s #%d %s", status, d.UnlockOrder, d.DisplayName)
		if d.Unlocked && d.DisplayCategory != "" {
			line += " (" + d.DisplayCategory + ")"
		}
		pdf.Cell(0, 8, line)
		pdf.Ln(6)
	}

	filename := filepath.Join(dir, fmt.Sprintf("ecoquest_report_%s.pdf", rep.Generated.Format("2006-01-02")))
	if err := pdf.OutputFileAndClose(filename); err != nil {
		return "", err
	}
	return filename, nil
}
