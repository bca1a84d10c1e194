package parameter

// Camera follows the player pack centroid and zooms out as the pack grows
// zoom = max(CameraMinZoom, CameraBaseZoom / size^CameraZoomExponent)
const (
	// CameraSmoothing is the per-frame fraction of the remaining distance covered
	CameraSmoothing = 0.1

	CameraBaseZoom     = 0.5
	CameraMinZoom      = 0.08
	CameraZoomExponent = 0.25

	// CameraInitialZoom matches the kernel's default zoom before the first frame
	CameraInitialZoom = 0.25

	// CameraEnabled controls whether camera following is active
	// When false the camera stays at the origin with the initial zoom
	CameraEnabled = true
)
