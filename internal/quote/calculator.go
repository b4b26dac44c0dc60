// Package quote implements the delivery quote calculator. Given a customer
// location and the fixed branch registry it produces per-branch distance,
// estimated delivery time and delivery cost, and selects the nearest branch.
package quote

import (
	"errors"
	"math"

	"github.com/foodsspot/beeline/internal/models"
)

// ErrEmptyRegistry is returned when a calculator is constructed without any branches.
var ErrEmptyRegistry = errors.New("branch registry is empty")

// Params holds the pricing and timing parameters applied to every quote.
// They are supplied once at startup and never change afterwards.
type Params struct {
	CostPerKm          float64 // CostPerKm is the delivery charge per kilometre, in PKR.
	AverageSpeedKmph   float64 // AverageSpeedKmph is the assumed rider travel speed.
	MinCookingTimeMins float64 // MinCookingTimeMins is added to every travel time estimate.
	MinDeliveryCharge  float64 // MinDeliveryCharge is the cost floor applied before rounding, in PKR.
}

// Calculator computes delivery quotes against a fixed, ordered branch registry.
// It holds no mutable state, performs no I/O and is safe for concurrent use.
type Calculator struct {
	branches []models.Branch
	params   Params
}

// NewCalculator creates a calculator over the given registry. The registry is
// copied so later changes to the caller's slice cannot affect quoting, and its
// order determines how distance ties are broken. An empty registry is a
// configuration error.
func NewCalculator(branches []models.Branch, params Params) (*Calculator, error) {
	if len(branches) == 0 {
		return nil, ErrEmptyRegistry
	}

	owned := make([]models.Branch, len(branches))
	copy(owned, branches)

	return &Calculator{branches: owned, params: params}, nil
}

// Result carries one quote per branch plus the nearest-branch selection.
type Result struct {
	Nearest models.Quote   // Nearest is the quote of the branch with the smallest raw distance.
	All     []models.Quote // All holds one quote per branch, in registry order.
}

// Calculate produces a quote for every branch in registry order and picks the
// nearest one. Selection compares raw distances, before any display rounding,
// and a strict comparison keeps the earlier branch on exact ties.
func (c *Calculator) Calculate(customer models.Coordinates) Result {
	quotes := make([]models.Quote, 0, len(c.branches))
	nearestIdx := 0
	minDistance := math.Inf(1)

	for idx, branch := range c.branches {
		distanceKm := haversineKm(customer, branch.Location)

		travelMins := distanceKm / c.params.AverageSpeedKmph * 60
		totalMins := travelMins + c.params.MinCookingTimeMins

		rawCost := distanceKm * c.params.CostPerKm
		cost := math.Max(rawCost, c.params.MinDeliveryCharge)

		quotes = append(quotes, models.Quote{
			BranchName:       branch.Name,
			DistanceKm:       math.Round(distanceKm*100) / 100,
			EstimatedMinutes: ceilToMultiple(totalMins, 5),
			TotalAmountPKR:   ceilToMultiple(cost, 10),
		})

		if distanceKm < minDistance {
			minDistance = distanceKm
			nearestIdx = idx
		}
	}

	return Result{Nearest: quotes[nearestIdx], All: quotes}
}

// Branches returns the registry the calculator quotes against, in order.
func (c *Calculator) Branches() []models.Branch {
	out := make([]models.Branch, len(c.branches))
	copy(out, c.branches)
	return out
}

// ceilToMultiple rounds x up to the next multiple of m.
// Values that are already exact multiples are unchanged.
func ceilToMultiple(x float64, m int) int {
	return int(math.Ceil(x/float64(m))) * m
}
