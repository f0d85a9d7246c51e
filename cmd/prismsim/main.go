// prismsim runs graphics hardware detection against a simulated PCI bus
// and reports which driver the matching policy would bind to each
// device. It is the tool for answering "what happens on this box with
// these drivers built in" without booting anything.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"prism/drivers/hostfb"
	"prism/drivers/vgatext"
	"prism/gfx/driver"
	"prism/gfx/pci"
	"prism/internal/buildinfo"
	"prism/internal/logging"
)

type simConfig struct {
	Devices []pci.SimDeviceConfig `mapstructure:"devices"`
	Drivers []string              `mapstructure:"drivers"`
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgFile string
	var driverNames []string

	cmd := &cobra.Command{
		Use:     "prismsim",
		Short:   "Simulate graphics hardware detection and driver matching",
		Version: buildinfo.Short(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}
			if len(driverNames) > 0 {
				cfg.Drivers = driverNames
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "simulation config file (YAML)")
	cmd.Flags().StringSliceVarP(&driverNames, "driver", "d", nil,
		"driver to register (repeatable); overrides the config's list")
	return cmd
}

func loadConfig(path string) (simConfig, error) {
	v := viper.New()
	v.SetDefault("drivers", []string{"vesa", "vga_text"})
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("prismsim")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return simConfig{}, err
		}
	}
	var cfg simConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return simConfig{}, err
	}
	if len(cfg.Devices) == 0 {
		// Default topology: the Bochs adapter QEMU gives a guest.
		cfg.Devices = []pci.SimDeviceConfig{{
			Bus: 0, Slot: 2, Fn: 0,
			Vendor: pci.VendorBochs, Device: 0x1111, Revision: 2,
			Class: 0x03,
			BAR0:  pci.SimRegionConfig{Base: 0xE0000000, Size: 16 * 1024 * 1024},
			BAR1:  pci.SimRegionConfig{Base: 0xF0000000, Size: 0x1000},
		}}
	}
	return cfg, nil
}

// buildDriver makes a registrable driver for a configured name. Text
// names get the cell-grid driver; everything else is a host framebuffer
// under that name, which is all a simulation needs to exercise the
// matching policy.
func buildDriver(name string) driver.Driver {
	if name == "vga_text" {
		return vgatext.New()
	}
	return hostfb.New(name)
}

func run(cfg simConfig) error {
	log := logging.New("prismsim")

	reg := driver.NewRegistry(log)
	for _, name := range cfg.Drivers {
		if err := reg.Register(buildDriver(name)); err != nil {
			return fmt.Errorf("register %q: %w", name, err)
		}
	}

	bus := pci.NewSimBus(cfg.Devices...)
	det := pci.NewDetector(bus, log)
	if err := det.Probe(); err != nil {
		return err
	}

	for _, dev := range det.Devices() {
		fmt.Printf("%s\n", dev)
		fmt.Printf("  name:        %s\n", dev.Name)
		fmt.Printf("  framebuffer: %#x (%d MiB)\n", dev.Framebuffer.Base, dev.Framebuffer.Size>>20)
		fmt.Printf("  mmio:        %#x (%d KiB)\n", dev.MMIO.Base, dev.MMIO.Size>>10)
		fmt.Printf("  recommended: %s\n", pci.RecommendedDriver(dev.VendorID, dev.DeviceID))

		d, err := pci.LoadDriverFor(reg, dev)
		if err != nil {
			fmt.Printf("  matched:     none (%v)\n", err)
			continue
		}
		fmt.Printf("  matched:     %s %s (caps %s)\n", d.Name(), d.Version(), capsString(d.Caps()))
	}
	return nil
}

func capsString(c driver.Caps) string {
	var parts []string
	for _, f := range []struct {
		cap  driver.Caps
		name string
	}{
		{driver.CapTextMode, "text"},
		{driver.CapGraphicsMode, "graphics"},
		{driver.CapAccel3D, "3d"},
		{driver.CapHWCursor, "cursor"},
		{driver.CapVSync, "vsync"},
		{driver.CapDefault, "default"},
	} {
		if c.Has(f.cap) {
			parts = append(parts, f.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}
