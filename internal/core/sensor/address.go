package sensor

// Register map layout of the Lambda controller: each structural device type
// owns a fixed address block, each instance a 100-register slice within it.
var deviceBaseAddress = map[string]uint16{
	"hp":   1000,
	"boil": 2000,
	"buff": 3000,
	"sol":  4000,
	"hc":   5000,
}

// GenerateBaseAddresses returns the base register address per instance index
// (1..count) for a device-type prefix. Unknown prefixes yield an empty map.
func GenerateBaseAddresses(prefix string, count int) map[int]uint16 {
	addresses := make(map[int]uint16, count)
	base, ok := deviceBaseAddress[prefix]
	if !ok {
		return addresses
	}
	for idx := 1; idx <= count; idx++ {
		addresses[idx] = base + uint16(idx-1)*100
	}
	return addresses
}
