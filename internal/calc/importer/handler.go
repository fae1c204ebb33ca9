package importer

import (
	"encoding/json"
	"fmt"
	"net/http"

	params "Facade/internal/calc/params"
	pipeline "Facade/internal/calc/pipeline"
	"github.com/xuri/excelize/v2"
)

type Handler struct{}

type ImportResult struct {
	Count   int               `json:"count"`
	Results []pipeline.Result `json:"results"`
}

// Params reads an xlsx of parameter rows and runs the pipeline on each.
// Bad rows are skipped, not fatal.
func (h *Handler) Params(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	var results []pipeline.Result
	for i := 1; i < len(rows); i++ {
		set, err := parseRow(rows[i])
		if err != nil {
			continue
		}
		res, err := pipeline.Run(pipeline.Input{Params: set})
		if err != nil {
			continue
		}
		results = append(results, res)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ImportResult{Count: len(results), Results: results})
}

// expected columns: id, name, width_m, height_m, depth_m, curvature_m,
// tilt_deg, spacing_m, thickness_m, wind_zone, wind_speed_ms, thermal_c,
// material
func parseRow(row []string) (params.Set, error) {
	if len(row) < 9 {
		return params.Set{}, fmt.Errorf("bad row")
	}
	set := params.Set{ID: row[0], Name: row[1]}

	var err error
	if set.ModuleWidthM, err = toFloat(row[2]); err != nil {
		return params.Set{}, err
	}
	if set.ModuleHeightM, err = toFloat(row[3]); err != nil {
		return params.Set{}, err
	}
	if set.ModuleDepthM, err = toFloat(row[4]); err != nil {
		return params.Set{}, err
	}
	if set.CurvatureRadiusM, err = toFloat(row[5]); err != nil {
		return params.Set{}, err
	}
	if set.TiltAngleDeg, err = toFloat(row[6]); err != nil {
		return params.Set{}, err
	}
	if set.MullionSpacingM, err = toFloat(row[7]); err != nil {
		return params.Set{}, err
	}
	if set.PanelThicknessM, err = toFloat(row[8]); err != nil {
		return params.Set{}, err
	}
	if len(row) > 9 && row[9] != "" {
		set.WindZone = params.WindZone(row[9])
	}
	if len(row) > 10 && row[10] != "" {
		set.WindSpeedMS, _ = toFloat(row[10])
	}
	if len(row) > 11 && row[11] != "" {
		set.ThermalGradientC, _ = toFloat(row[11])
	}
	if len(row) > 12 && row[12] != "" {
		set.Material = params.Material(row[12])
	}
	return set, nil
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%f", &v)
	return v, err
}
