package pci

import (
	"prism/gfx"
	"prism/gfx/driver"
)

// genericDriverFor maps a device type to the generic driver name tried
// when the database's recommendation is not registered.
func genericDriverFor(t DeviceType) string {
	switch t {
	case TypeVGA:
		return "vga_text"
	case TypeBochsVBE:
		return "bochs_bga"
	case TypeVMware:
		return "vmware_svga"
	}
	return "vesa"
}

// FindDriverFor resolves the driver for a device. Precedence, first
// match wins:
//
//  1. the database's recommended driver, if currently registered;
//  2. the generic driver for the device's type, degrading to "vesa"
//     when the type's own driver is not registered;
//  3. any registered driver with text-mode support, as a last-resort
//     degraded mode.
//
// Exhausting all three returns ErrNotSupported.
func FindDriverFor(reg *driver.Registry, dev *Device) (driver.Driver, error) {
	if reg == nil || dev == nil {
		return nil, gfx.ErrInvalidParameter
	}
	if d := reg.Find(RecommendedDriver(dev.VendorID, dev.DeviceID)); d != nil {
		return d, nil
	}
	if d := reg.Find(genericDriverFor(dev.Type)); d != nil {
		return d, nil
	}
	if d := reg.Find("vesa"); d != nil {
		return d, nil
	}
	if d := reg.TextCapable(); d != nil {
		return d, nil
	}
	return nil, gfx.ErrNotSupported
}

// LoadDriverFor runs FindDriverFor and binds the result to the device.
func LoadDriverFor(reg *driver.Registry, dev *Device) (driver.Driver, error) {
	d, err := FindDriverFor(reg, dev)
	if err != nil {
		return nil, err
	}
	dev.Driver = d
	return d, nil
}

// FallbackToVESA retries against the named universal driver, then the
// text escape hatch. Used when the matched driver failed to initialize.
func FallbackToVESA(reg *driver.Registry, dev *Device) (driver.Driver, error) {
	return fallbackTo(reg, dev, "vesa")
}

// FallbackToText binds any text-capable driver as the last resort.
func FallbackToText(reg *driver.Registry, dev *Device) (driver.Driver, error) {
	if reg == nil || dev == nil {
		return nil, gfx.ErrInvalidParameter
	}
	if d := reg.TextCapable(); d != nil {
		dev.Driver = d
		return d, nil
	}
	return nil, gfx.ErrNotSupported
}

func fallbackTo(reg *driver.Registry, dev *Device, name string) (driver.Driver, error) {
	if reg == nil || dev == nil {
		return nil, gfx.ErrInvalidParameter
	}
	if d := reg.Find(name); d != nil {
		dev.Driver = d
		return d, nil
	}
	return FallbackToText(reg, dev)
}
