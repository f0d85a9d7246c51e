package gfx

// Framebuffer is the active scanout surface of a device, plus the
// physical placement the driver mapped it from. It is owned by whichever
// device mapped it and becomes invalid when unmapped.
type Framebuffer struct {
	Surface

	// PhysAddr is the bus address of the scanout memory (informational
	// on the host, load-bearing on real hardware).
	PhysAddr uint64
	Size     uint64

	// Back is the optional back buffer for double buffering. Nil until
	// buffering is enabled.
	Back *Surface

	HWCursor bool
}

// NewFramebuffer wraps an allocated surface as a scanout target.
func NewFramebuffer(s *Surface, physAddr uint64) *Framebuffer {
	return &Framebuffer{
		Surface:  *s,
		PhysAddr: physAddr,
		Size:     uint64(len(s.Pix)),
	}
}
