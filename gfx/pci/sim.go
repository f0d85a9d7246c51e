package pci

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SimBus is an in-memory ConfigSpace. The host build and the tests run
// the real Probe/matching code against it; only the register file is
// simulated, including the write-ones BAR sizing handshake.
type SimBus struct {
	devices map[simAddr]*simDevice
}

type simAddr struct {
	bus, slot, fn uint8
}

type simBar struct {
	base uint32
	size uint32
	cur  uint32
}

type simDevice struct {
	vendor   uint16
	device   uint16
	revision uint8
	class    uint8
	command  uint16
	bars     [2]simBar
}

// SimDeviceConfig describes one simulated device, YAML-loadable.
type SimDeviceConfig struct {
	Bus      uint8           `yaml:"bus"`
	Slot     uint8           `yaml:"slot"`
	Fn       uint8           `yaml:"fn"`
	Vendor   uint16          `yaml:"vendor"`
	Device   uint16          `yaml:"device"`
	Revision uint8           `yaml:"revision"`
	Class    uint8           `yaml:"class"`
	BAR0     SimRegionConfig `yaml:"bar0"`
	BAR1     SimRegionConfig `yaml:"bar1"`
}

// SimRegionConfig is a BAR as declared in a topology file. Size must be
// a power of two, as on real hardware.
type SimRegionConfig struct {
	Base uint32 `yaml:"base"`
	Size uint32 `yaml:"size"`
}

// SimTopology is the root of a bus description file.
type SimTopology struct {
	Devices []SimDeviceConfig `yaml:"devices"`
}

// NewSimBus builds a simulated bus from device descriptions.
func NewSimBus(devs ...SimDeviceConfig) *SimBus {
	b := &SimBus{devices: make(map[simAddr]*simDevice)}
	for _, c := range devs {
		b.Add(c)
	}
	return b
}

// LoadSimBus reads a YAML topology file and builds the bus it describes.
func LoadSimBus(path string) (*SimBus, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var topo SimTopology
	if err := yaml.Unmarshal(raw, &topo); err != nil {
		return nil, fmt.Errorf("pci: parse %s: %w", path, err)
	}
	if len(topo.Devices) == 0 {
		return nil, fmt.Errorf("pci: %s declares no devices", path)
	}
	return NewSimBus(topo.Devices...), nil
}

// Add installs one more device on the bus.
func (b *SimBus) Add(c SimDeviceConfig) {
	d := &simDevice{
		vendor:   c.Vendor,
		device:   c.Device,
		revision: c.Revision,
		class:    c.Class,
	}
	d.bars[0] = simBar{base: c.BAR0.Base, size: c.BAR0.Size, cur: c.BAR0.Base}
	d.bars[1] = simBar{base: c.BAR1.Base, size: c.BAR1.Size, cur: c.BAR1.Base}
	b.devices[simAddr{c.Bus, c.Slot, c.Fn}] = d
}

// Command returns the command register of the device at the given
// location, for asserting that Probe enabled decoding.
func (b *SimBus) Command(bus, slot, fn uint8) uint16 {
	if d := b.devices[simAddr{bus, slot, fn}]; d != nil {
		return d.command
	}
	return 0
}

func (b *SimBus) read32(bus, dev, fn uint8, off uint16) uint32 {
	d := b.devices[simAddr{bus, dev, fn}]
	if d == nil {
		return 0xFFFFFFFF
	}
	switch off &^ 0x3 {
	case 0x00:
		return uint32(d.device)<<16 | uint32(d.vendor)
	case 0x04:
		return uint32(d.command)
	case 0x08:
		return uint32(d.class)<<24 | uint32(d.revision)
	case regBAR0:
		return d.bars[0].cur
	case regBAR1:
		return d.bars[1].cur
	}
	return 0
}

func (b *SimBus) Read8(bus, dev, fn uint8, off uint16) uint8 {
	return uint8(b.read32(bus, dev, fn, off) >> (8 * (off & 0x3)))
}

func (b *SimBus) Read16(bus, dev, fn uint8, off uint16) uint16 {
	return uint16(b.read32(bus, dev, fn, off) >> (8 * (off & 0x2)))
}

func (b *SimBus) Read32(bus, dev, fn uint8, off uint16) uint32 {
	return b.read32(bus, dev, fn, off)
}

func (b *SimBus) Write16(bus, dev, fn uint8, off uint16, v uint16) {
	d := b.devices[simAddr{bus, dev, fn}]
	if d == nil {
		return
	}
	if off&^0x3 == regCommand {
		d.command = v
	}
}

func (b *SimBus) Write32(bus, dev, fn uint8, off uint16, v uint32) {
	d := b.devices[simAddr{bus, dev, fn}]
	if d == nil {
		return
	}
	var bar *simBar
	switch off &^ 0x3 {
	case regBAR0:
		bar = &d.bars[0]
	case regBAR1:
		bar = &d.bars[1]
	default:
		return
	}
	if bar.size == 0 {
		bar.cur = 0
		return
	}
	if v == 0xFFFFFFFF {
		// Sizing probe: the device reports its address mask.
		bar.cur = ^(bar.size - 1)
		return
	}
	bar.cur = v
}
