package pci

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifyExactMatch(t *testing.T) {
	assert.Equal(t, TypeBochsVBE, Identify(VendorBochs, 0x1111))
	assert.Equal(t, TypeVMware, Identify(VendorVMware, 0x0405))
	assert.Equal(t, TypeIntelHD, Identify(VendorIntel, 0x0166))
	assert.Equal(t, TypeVESA, Identify(VendorCirrus, 0x00B8))
}

func TestIdentifyVendorFallback(t *testing.T) {
	// Parts missing from the database classify by vendor family.
	assert.Equal(t, TypeIntelHD, Identify(VendorIntel, 0xBEEF))
	assert.Equal(t, TypeNvidia, Identify(VendorNvidia, 0xBEEF))
	assert.Equal(t, TypeAMD, Identify(VendorAMD, 0xBEEF))
	assert.Equal(t, TypeVMware, Identify(VendorVMware, 0xBEEF))
	assert.Equal(t, TypeBochsVBE, Identify(VendorBochs, 0xBEEF))
	assert.Equal(t, TypeUnknown, Identify(0xDEAD, 0xBEEF))
}

func TestRecommendedDriver(t *testing.T) {
	tests := []struct {
		vendor, device uint16
		want           string
	}{
		{VendorBochs, 0x1111, "bochs_bga"},
		{VendorVMware, 0x0405, "vmware_svga"},
		{VendorIntel, 0x0416, "intel_hd"},
		{VendorNvidia, 0x13C2, "nvidia"},
		{VendorAMD, 0x67DF, "amd"},
		// Vendor heuristics for unknown parts.
		{VendorVMware, 0xBEEF, "vmware_svga"},
		{VendorBochs, 0xBEEF, "bochs_bga"},
		// Universal fallback.
		{0xDEAD, 0xBEEF, "vesa"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RecommendedDriver(tt.vendor, tt.device),
			"%04x:%04x", tt.vendor, tt.device)
	}
}

func TestDeviceName(t *testing.T) {
	assert.Equal(t, "Bochs Graphics Adapter", DeviceName(VendorBochs, 0x1111))
	assert.Equal(t, "Intel Display Controller", DeviceName(VendorIntel, 0xBEEF))
	assert.Equal(t, "Unknown Display Controller", DeviceName(0xDEAD, 0xBEEF))
}
