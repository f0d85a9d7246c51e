package pci

// Well-known display vendors.
const (
	VendorIntel  = 0x8086
	VendorNvidia = 0x10DE
	VendorAMD    = 0x1002
	VendorATI    = 0x1022
	VendorVMware = 0x15AD
	VendorBochs  = 0x1234
	VendorRedHat = 0x1B36
	VendorCirrus = 0x1013
	VendorMatrox = 0x102B
)

type dbEntry struct {
	vendor uint16
	device uint16
	name   string
	typ    DeviceType
	driver string
}

// deviceDB is the static exact-match database. Order does not matter;
// lookups are by (vendor, device).
var deviceDB = []dbEntry{
	{VendorBochs, 0x1111, "Bochs Graphics Adapter", TypeBochsVBE, "bochs_bga"},
	{VendorRedHat, 0x0100, "QXL Paravirtual Graphics", TypeVESA, "vesa"},
	{VendorVMware, 0x0405, "VMware SVGA II", TypeVMware, "vmware_svga"},
	{VendorCirrus, 0x00B8, "Cirrus Logic GD 5446", TypeVESA, "vesa"},

	{VendorIntel, 0x0102, "Intel HD Graphics 2000", TypeIntelHD, "intel_hd"},
	{VendorIntel, 0x0116, "Intel HD Graphics 3000", TypeIntelHD, "intel_hd"},
	{VendorIntel, 0x0166, "Intel HD Graphics 4000", TypeIntelHD, "intel_hd"},
	{VendorIntel, 0x0416, "Intel HD Graphics 4600", TypeIntelHD, "intel_hd"},
	{VendorIntel, 0x1916, "Intel HD Graphics 520", TypeIntelHD, "intel_hd"},
	{VendorIntel, 0x5916, "Intel HD Graphics 620", TypeIntelHD, "intel_hd"},

	{VendorNvidia, 0x0A20, "NVIDIA GT216", TypeNvidia, "nvidia"},
	{VendorNvidia, 0x1180, "NVIDIA GTX 680", TypeNvidia, "nvidia"},
	{VendorNvidia, 0x13C2, "NVIDIA GTX 970", TypeNvidia, "nvidia"},
	{VendorNvidia, 0x1B81, "NVIDIA GTX 1070", TypeNvidia, "nvidia"},

	{VendorAMD, 0x6779, "AMD Radeon HD 6450", TypeAMD, "amd"},
	{VendorAMD, 0x67DF, "AMD Radeon RX 480", TypeAMD, "amd"},
	{VendorAMD, 0x731F, "AMD Radeon RX 5700", TypeAMD, "amd"},

	{VendorMatrox, 0x0522, "Matrox G200e", TypeVESA, "vesa"},
}

func dbLookup(vendor, device uint16) (dbEntry, bool) {
	for _, e := range deviceDB {
		if e.vendor == vendor && e.device == device {
			return e, true
		}
	}
	return dbEntry{}, false
}

// Identify classifies a controller. Exact database matches win; unknown
// parts from a known vendor fall back to the vendor's family; anything
// else is TypeUnknown.
func Identify(vendor, device uint16) DeviceType {
	if e, ok := dbLookup(vendor, device); ok {
		return e.typ
	}
	switch vendor {
	case VendorIntel:
		return TypeIntelHD
	case VendorNvidia:
		return TypeNvidia
	case VendorAMD, VendorATI:
		return TypeAMD
	case VendorVMware:
		return TypeVMware
	case VendorBochs:
		return TypeBochsVBE
	}
	return TypeUnknown
}

// DeviceName returns a human-readable part name, best effort.
func DeviceName(vendor, device uint16) string {
	if e, ok := dbLookup(vendor, device); ok {
		return e.name
	}
	switch vendor {
	case VendorIntel:
		return "Intel Display Controller"
	case VendorNvidia:
		return "NVIDIA Display Controller"
	case VendorAMD, VendorATI:
		return "AMD Display Controller"
	case VendorVMware:
		return "VMware Display Controller"
	case VendorBochs:
		return "Bochs Display Controller"
	}
	return "Unknown Display Controller"
}

// RecommendedDriver names the driver the database prefers for a part.
// Misses degrade to per-vendor heuristics and finally to "vesa", the
// universal fallback.
func RecommendedDriver(vendor, device uint16) string {
	if e, ok := dbLookup(vendor, device); ok {
		return e.driver
	}
	switch vendor {
	case VendorVMware:
		return "vmware_svga"
	case VendorBochs:
		return "bochs_bga"
	case VendorIntel:
		return "intel_hd"
	case VendorNvidia:
		return "nvidia"
	case VendorAMD, VendorATI:
		return "amd"
	}
	return "vesa"
}
