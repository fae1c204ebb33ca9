package batch

import (
	"fmt"

	pipeline "Facade/internal/calc/pipeline"
)

type Input struct {
	Items []pipeline.Input `json:"items"`
}

type Result struct {
	Results []pipeline.Result `json:"results"`
}

// Calculate runs the full pipeline over every item; the first failing item
// aborts the batch. Batch runs never touch a session trace.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	out := Result{Results: make([]pipeline.Result, 0, len(in.Items))}
	for _, item := range in.Items {
		res, err := pipeline.Run(item)
		if err != nil {
			return Result{}, err
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
