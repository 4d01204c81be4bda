package domain

import "math"

const balancedPressureBand = 0.1

// PriceBand inclusive price interval.
type PriceBand struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// VolumeProfile distribution of traded volume across bucketed price levels.
// This is a value object built fresh for every analysis call.
type VolumeProfile struct {
	// PointOfControl price bucket holding the most traded volume.
	PointOfControl float64 `json:"point_of_control"`
	// ValueArea band around the point of control covering ~68% of volume.
	ValueArea PriceBand `json:"value_area"`
	// BuyingPressure fraction of total volume inside the value area.
	BuyingPressure float64 `json:"buying_pressure"`
	// SellingPressure complement of BuyingPressure, the two sum to 1.
	SellingPressure float64 `json:"selling_pressure"`
	// Strength share of total volume concentrated at the point of control.
	Strength float64 `json:"strength"`
}

// NeutralVolumeProfile is the fixed profile used when no usable volume data
// exists: balanced pressures and mid strength around the given price.
func NeutralVolumeProfile(price float64) VolumeProfile {
	return VolumeProfile{
		PointOfControl:  price,
		ValueArea:       PriceBand{Low: price, High: price},
		BuyingPressure:  0.5,
		SellingPressure: 0.5,
		Strength:        0.5,
	}
}

// Balanced returns true when neither side of the profile dominates.
func (v VolumeProfile) Balanced() bool {
	return math.Abs(v.BuyingPressure-v.SellingPressure) < balancedPressureBand
}
