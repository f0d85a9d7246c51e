package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"prism/drivers/hostfb"
	"prism/drivers/vgatext"
	"prism/gfx/display"
	"prism/gfx/driver"
	"prism/gfx/pci"
	"prism/gfx/wm"
	"prism/hal"
	"prism/internal/logging"
)

func main() {
	var headless bool
	var cfg hal.HeadlessConfig
	var busFile string
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&busFile, "bus", "", "YAML PCI topology to simulate (default: one Bochs adapter).")
	flag.Parse()

	log := logging.New("prism")

	bus, err := simBus(busFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	gm := display.New(display.Config{
		ConfigSpace: bus,
		Drivers: []driver.Driver{
			hostfb.New(""),
			vgatext.New(),
		},
		Logger: log,
	})
	if err := gm.Init(); err != nil {
		log.Errorf("graphics init failed: %v", err)
		os.Exit(1)
	}
	if err := gm.SetMode(800, 600, 32, 60); err != nil {
		log.Errorf("mode set failed: %v", err)
		os.Exit(1)
	}

	demo := newDemo(gm, wm.NewManager(gm, log))
	app := hal.App{
		Title:   "prism",
		Step:    demo.step,
		Scanout: gm.Framebuffer,
	}

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, app, cfg); err != nil && err != context.Canceled {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	if err := hal.RunWindow(app); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// simBus loads the requested topology, or synthesizes the single Bochs
// adapter QEMU would give us.
func simBus(path string) (*pci.SimBus, error) {
	if path != "" {
		return pci.LoadSimBus(path)
	}
	return pci.NewSimBus(pci.SimDeviceConfig{
		Bus: 0, Slot: 2, Fn: 0,
		Vendor: pci.VendorBochs, Device: 0x1111, Revision: 2,
		Class: 0x03,
		BAR0:  pci.SimRegionConfig{Base: 0xE0000000, Size: 16 * 1024 * 1024},
		BAR1:  pci.SimRegionConfig{Base: 0xF0000000, Size: 0x1000},
	}), nil
}
