package dto

import "github.com/yuqie6/ScopeClicks/internal/schema"

type WeaponDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Caliber string `json:"caliber"`
}

type AmmunitionDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Caliber string `json:"caliber"`
}

type DistanceDTO struct {
	ID      int64   `json:"id"`
	Value   float64 `json:"distance"`
	Unit    string  `json:"unit"`
	Display string  `json:"display"`
}

type ResultDTO struct {
	ID           int64  `json:"id"`
	WeaponID     int64  `json:"weapon_id"`
	AmmunitionID int64  `json:"ammunition_id"`
	DistanceID   int64  `json:"distance_id"`
	Clicks       int    `json:"result"`
	Display      string `json:"display"`
}

func NewWeaponDTO(w schema.Weapon) WeaponDTO {
	return WeaponDTO{ID: w.ID, Name: w.Name, Caliber: w.Caliber}
}

func NewAmmunitionDTO(a schema.Ammunition) AmmunitionDTO {
	return AmmunitionDTO{ID: a.ID, Name: a.Name, Caliber: a.Caliber}
}

func NewDistanceDTO(d schema.Distance) DistanceDTO {
	return DistanceDTO{ID: d.ID, Value: d.Value, Unit: string(d.Unit), Display: d.Display()}
}

func NewResultDTO(r schema.Result) ResultDTO {
	return ResultDTO{
		ID:           r.ID,
		WeaponID:     r.WeaponID,
		AmmunitionID: r.AmmunitionID,
		DistanceID:   r.DistanceID,
		Clicks:       r.Clicks,
		Display:      r.Display(),
	}
}

func WeaponDTOs(items []schema.Weapon) []WeaponDTO {
	out := make([]WeaponDTO, 0, len(items))
	for _, w := range items {
		out = append(out, NewWeaponDTO(w))
	}
	return out
}

func AmmunitionDTOs(items []schema.Ammunition) []AmmunitionDTO {
	out := make([]AmmunitionDTO, 0, len(items))
	for _, a := range items {
		out = append(out, NewAmmunitionDTO(a))
	}
	return out
}

func DistanceDTOs(items []schema.Distance) []DistanceDTO {
	out := make([]DistanceDTO, 0, len(items))
	for _, d := range items {
		out = append(out, NewDistanceDTO(d))
	}
	return out
}

func ResultDTOs(items []schema.Result) []ResultDTO {
	out := make([]ResultDTO, 0, len(items))
	for _, r := range items {
		out = append(out, NewResultDTO(r))
	}
	return out
}
