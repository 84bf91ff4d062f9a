package dto

import "github.com/yuqie6/ScopeClicks/internal/calculator"

type AdjustmentDTO struct {
	Axis      string  `json:"axis"`
	Clicks    int     `json:"clicks"`
	Direction string  `json:"direction"`
	RawClicks float64 `json:"raw_clicks"`
	Angle     float64 `json:"angle,omitempty"`
	AngleUnit string  `json:"angle_unit,omitempty"`
}

type ClicksDTO struct {
	Result     ResultDTO     `json:"result"`
	Current    int           `json:"current"`
	Adjustment AdjustmentDTO `json:"adjustment"`
}

type CorrectionDTO struct {
	Result       ResultDTO     `json:"result"`
	Elevation    AdjustmentDTO `json:"elevation"`
	Windage      AdjustmentDTO `json:"windage"`
	NewElevation int           `json:"new_elevation"`
	NewWindage   int           `json:"new_windage"`
	Saved        bool          `json:"saved"`
}

type ConversionDTO struct {
	Input    float64 `json:"input"`
	From     string  `json:"from"`
	Output   float64 `json:"output"`
	To       string  `json:"to"`
	Distance string  `json:"distance,omitempty"`
	MOAModel string  `json:"moa_model,omitempty"`
}

func NewAdjustmentDTO(a calculator.Adjustment) AdjustmentDTO {
	return AdjustmentDTO{
		Axis:      string(a.Axis),
		Clicks:    a.Clicks,
		Direction: a.Direction.String(),
		RawClicks: a.RawClicks,
		Angle:     a.Angle,
		AngleUnit: string(a.AngleUnit),
	}
}
