package models

// Branch represents a single pickup location with a display name and a fixed position.
type Branch struct {
	Name     string      // Name is the human-readable branch name.
	Location Coordinates // Location is the fixed position of the branch.
}

// Quote holds the computed delivery figures for one branch relative to one
// customer location. Values are kept as typed numerics; string encoding for
// the wire is the transport layer's concern.
type Quote struct {
	BranchName       string  // BranchName is the name of the quoted branch.
	DistanceKm       float64 // DistanceKm is the great-circle distance, rounded to 2 decimal places.
	EstimatedMinutes int     // EstimatedMinutes is cooking plus travel time, rounded up to a multiple of 5.
	TotalAmountPKR   int     // TotalAmountPKR is the delivery charge, rounded up to a multiple of 10.
}
