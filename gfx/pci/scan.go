package pci

import "prism/gfx"

// Legacy VGA window used by the no-PCI fallback device.
const (
	legacyVGABase = 0xA0000
	legacyVGASize = 128 * 1024
)

// Detector walks the PCI bus and owns the resulting device table. It is
// a single-owner structure like the rest of the stack: no locking, the
// caller serializes.
type Detector struct {
	cs      ConfigSpace
	log     gfx.Logger
	devices []*Device
}

// NewDetector builds a detector over the given configuration-space
// collaborator.
func NewDetector(cs ConfigSpace, log gfx.Logger) *Detector {
	if log == nil {
		log = gfx.NopLogger
	}
	return &Detector{cs: cs, log: log}
}

// Devices returns the detected device table in scan order.
func (d *Detector) Devices() []*Device { return d.devices }

// Primary returns the primary display device, or nil before Probe.
func (d *Detector) Primary() *Device {
	for _, dev := range d.devices {
		if dev.Primary {
			return dev
		}
	}
	return nil
}

// Probe enumerates every (bus, slot, function) triple, records each
// display-class device, and enables its memory, I/O, and bus-master
// decoding. When the whole bus holds no display controller a legacy VGA
// device is synthesized so the stack always has something to draw on.
// The first device found becomes primary.
func (d *Detector) Probe() error {
	if d.cs == nil {
		return gfx.ErrInvalidParameter
	}
	d.devices = d.devices[:0]

	for bus := 0; bus < 256; bus++ {
		for slot := 0; slot < 32; slot++ {
			for fn := 0; fn < 8; fn++ {
				dev := d.probeOne(uint8(bus), uint8(slot), uint8(fn))
				if dev == nil {
					continue
				}
				if len(d.devices) == 0 {
					dev.Primary = true
				}
				d.devices = append(d.devices, dev)
				d.log.Infof("pci: display controller %s %q", dev, dev.Name)
			}
		}
	}

	if len(d.devices) == 0 {
		d.log.Warnf("pci: no display controller found, synthesizing legacy VGA")
		d.devices = append(d.devices, SetupLegacyVGA())
	}
	return nil
}

func (d *Detector) probeOne(bus, slot, fn uint8) *Device {
	vendor := d.cs.Read16(bus, slot, fn, regVendorID)
	if vendor == invalidVendor || vendor == 0 {
		return nil
	}
	if d.cs.Read8(bus, slot, fn, regClassCode) != classDisplay {
		return nil
	}

	dev := &Device{
		VendorID: vendor,
		DeviceID: d.cs.Read16(bus, slot, fn, regDeviceID),
		Revision: d.cs.Read8(bus, slot, fn, regRevision),
		Bus:      bus,
		Slot:     slot,
		Fn:       fn,
	}
	dev.Type = Identify(dev.VendorID, dev.DeviceID)
	dev.Name = DeviceName(dev.VendorID, dev.DeviceID)

	// BAR0 holds the linear framebuffer, BAR1 the register window. This
	// is a convention of the supported parts, not a PCI rule.
	dev.Framebuffer = d.readBAR(bus, slot, fn, regBAR0)
	dev.MMIO = d.readBAR(bus, slot, fn, regBAR1)
	dev.Caps.VRAMSize = dev.Framebuffer.Size

	d.enable(bus, slot, fn)
	return dev
}

// readBAR recovers a BAR's base and size with the standard
// write-all-ones, read back, restore sequence.
func (d *Detector) readBAR(bus, slot, fn uint8, off uint16) Region {
	orig := d.cs.Read32(bus, slot, fn, off)
	if orig == 0 {
		return Region{}
	}

	d.cs.Write32(bus, slot, fn, off, 0xFFFFFFFF)
	probe := d.cs.Read32(bus, slot, fn, off)
	d.cs.Write32(bus, slot, fn, off, orig)

	var base, size uint64
	if orig&1 == 1 {
		// I/O space BAR: 2-byte granularity.
		base = uint64(orig &^ 0x3)
		size = uint64(^(probe &^ 0x3) + 1)
	} else {
		base = uint64(orig &^ 0xF)
		size = uint64(^(probe &^ 0xF) + 1)
	}
	if probe == 0 {
		size = 0
	}
	return Region{Base: base, Size: size}
}

func (d *Detector) enable(bus, slot, fn uint8) {
	cmd := d.cs.Read16(bus, slot, fn, regCommand)
	d.cs.Write16(bus, slot, fn, regCommand, cmd|cmdIOSpace|cmdMemSpace|cmdBusMaster)
}

// SetupLegacyVGA synthesizes the device used when PCI detection comes up
// empty: the legacy VGA window at 0xA0000 with an 80x25 text mode.
func SetupLegacyVGA() *Device {
	return &Device{
		Type:        TypeVGA,
		Name:        "Legacy VGA",
		Framebuffer: Region{Base: legacyVGABase, Size: legacyVGASize},
		Caps: Capabilities{
			MaxWidth:  720,
			MaxHeight: 400,
			MaxBPP:    4,
			VRAMSize:  legacyVGASize,
		},
		Mode: gfx.VideoMode{
			Width:  80,
			Height: 25,
			Text:   true,
			Number: 0x03,
		},
		Primary: true,
	}
}
