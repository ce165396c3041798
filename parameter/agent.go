package parameter

import "time"

// Patrol
const (
	// WaypointArriveDistance is the flat distance at which a patroller advances to the next waypoint
	WaypointArriveDistance = 30.0

	DroneSpeed      = 6.0
	CleanerSpeed    = 2.0
	DroneSpotRadius = 8.0
	DroneLoseRadius = 14.0
)

// Venting
const (
	VentInForce    = 100.0
	VentInTime     = 1 * time.Second
	VentOutSpeed   = 100.0
	VentOutTime    = 1 * time.Second
	VentCameraHold = 1 * time.Second
)

// Laser
const (
	LaserDefaultThickness = 0.2
	LaserDefaultLength    = 12.0
)
