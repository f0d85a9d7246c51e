// Package pci discovers display controllers on the PCI bus and binds
// each one to a registered display driver.
//
// Raw configuration-space access is a collaborator, not part of this
// package: anything implementing ConfigSpace works, whether it pokes
// ECAM mappings on real hardware or a simulated bus in tests.
package pci

import (
	"fmt"

	"prism/gfx"
	"prism/gfx/driver"
)

// ConfigSpace reads and writes PCI configuration registers keyed by
// (bus, device, function, offset).
type ConfigSpace interface {
	Read8(bus, dev, fn uint8, off uint16) uint8
	Read16(bus, dev, fn uint8, off uint16) uint16
	Read32(bus, dev, fn uint8, off uint16) uint32
	Write16(bus, dev, fn uint8, off uint16, v uint16)
	Write32(bus, dev, fn uint8, off uint16, v uint32)
}

// Standard configuration-space offsets.
const (
	regVendorID  = 0x00
	regDeviceID  = 0x02
	regCommand   = 0x04
	regRevision  = 0x08
	regClassCode = 0x0B
	regSubclass  = 0x0A
	regBAR0      = 0x10
	regBAR1      = 0x14
)

// Command register bits.
const (
	cmdIOSpace   = 1 << 0
	cmdMemSpace  = 1 << 1
	cmdBusMaster = 1 << 2
)

const (
	invalidVendor = 0xFFFF
	classDisplay  = 0x03
)

// DeviceType is the coarse classification the matching policy keys on.
type DeviceType uint8

const (
	TypeUnknown DeviceType = iota
	TypeVGA
	TypeVESA
	TypeIntelHD
	TypeNvidia
	TypeAMD
	TypeVMware
	TypeBochsVBE
)

func (t DeviceType) String() string {
	switch t {
	case TypeVGA:
		return "vga"
	case TypeVESA:
		return "vesa"
	case TypeIntelHD:
		return "intel-hd"
	case TypeNvidia:
		return "nvidia"
	case TypeAMD:
		return "amd"
	case TypeVMware:
		return "vmware"
	case TypeBochsVBE:
		return "bochs-vbe"
	}
	return "unknown"
}

// Region is a physical memory range claimed by a BAR.
type Region struct {
	Base uint64
	Size uint64
}

// Capabilities summarizes what the hardware can do, as far as the
// detector can tell without a driver.
type Capabilities struct {
	MaxWidth  int
	MaxHeight int
	MaxBPP    int
	VRAMSize  uint64
	Accel2D   bool
	HWCursor  bool
	VSync     bool
}

// Device is one detected display controller.
type Device struct {
	VendorID uint16
	DeviceID uint16
	Revision uint8

	Bus  uint8
	Slot uint8
	Fn   uint8

	Type DeviceType
	Name string

	Framebuffer Region // BAR0 by convention
	MMIO        Region // BAR1 by convention

	Caps Capabilities
	Mode gfx.VideoMode

	// Driver is non-nil only after a successful match.
	Driver driver.Driver

	Primary bool
}

func (d *Device) String() string {
	return fmt.Sprintf("%04x:%04x rev %02x at %02x:%02x.%d (%s)",
		d.VendorID, d.DeviceID, d.Revision, d.Bus, d.Slot, d.Fn, d.Type)
}
