package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	pipeline "Facade/internal/calc/pipeline"
	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Project string          `json:"project"`
	Author  string          `json:"author"`
	Title   string          `json:"title"`
	Notes   string          `json:"notes"`
	Run     *pipeline.Input `json:"run,omitempty"`
}

type Handler struct{}

// Generate renders a feasibility report; with a run payload attached it
// executes the pipeline and prints the stage scores.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Curtain-Wall Unit Feasibility Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	if input.Run != nil {
		res, err := pipeline.Run(*input.Run)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeRun(pdf, input.Run.Params.Name, res)
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, input.Notes, "", "L", false)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func writeRun(pdf *gofpdf.Fpdf, name string, res pipeline.Result) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Profile: %s", name))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)

	lines := []string{
		fmt.Sprintf("Aggregate parameter score: %.2f", res.Validation.AggregateScore),
		fmt.Sprintf("Projected area: %.3f m2, frame weight: %.2f kN", res.Geometry.ProjectedAreaM2, res.Geometry.FrameWeightKN),
		fmt.Sprintf("Wind pressure index: %.2f", res.Structural.WindPressureIndex),
		fmt.Sprintf("Dead load index: %.2f", res.Structural.DeadLoadIndex),
		fmt.Sprintf("Stability index: %.2f", res.Structural.StabilityIndex),
		fmt.Sprintf("Residual deviation: %.3f mm (converged: %t, %d iterations)",
			res.Correction.ResidualDeviationMM, res.Correction.Converged, res.Correction.IterationsUsed),
		fmt.Sprintf("Assembly fit score: %.2f", res.Correction.AssemblyFitScore),
	}
	for _, line := range lines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	for _, c := range res.Association.Correlations {
		pdf.Cell(0, 6, fmt.Sprintf("%s correlation: %.3f", c.Stage, c.Correlation))
		pdf.Ln(6)
	}
	pdf.Ln(4)
}
