package sensor

// Template describes one sensor slot of a device-type template. For the
// instance-indexed sets (hp, boil, buff, sol, hc) RelativeAddress is an offset
// from the instance base address; for the general set it is the absolute
// register address.
type Template struct {
	ID              string
	Name            string
	RelativeAddress uint16
	Unit            string
	Scale           float64
	StateClass      string
	DeviceClass     string
	DataType        string
	Precision       *int
	TxtMapping      bool
	DeviceType      string
	OverrideName    string
}

// DeviceTemplate binds a device-type prefix and instance count to its
// template entries.
type DeviceTemplate struct {
	Prefix  string
	Count   int
	Entries []Template
}

const (
	STATE_CLASS_MEASUREMENT      = "measurement"
	STATE_CLASS_TOTAL            = "total"
	STATE_CLASS_TOTAL_INCREASING = "total_increasing"

	DEVICE_CLASS_TEMPERATURE = "temperature"
	DEVICE_CLASS_POWER       = "power"
	DEVICE_CLASS_ENERGY      = "energy"
)

// Descriptor is one fully resolved sensor of an installation. Descriptors are
// built once during enumeration; the only field that changes afterwards is the
// cached effective id (see EffectiveID).
type Descriptor struct {
	DeclaredID      string
	Name            string
	Unit            string
	Address         uint16
	RelativeAddress uint16
	Scale           float64
	StateClass      string
	DeviceClass     string
	DataType        string
	DeviceType      string
	TxtMapping      bool
	Precision       *int
	EntityID        string
	UniqueID        string

	legacyNames bool
	overrides   map[string]string
	effectiveID string
}

// EffectiveID returns the id used to look up this sensor's value in the
// coordinator snapshot. With legacy naming an override can rename the sensor
// after construction; the transition is one-way and the result is cached, so
// repeated calls are idempotent. DeclaredID stays untouched for diagnostics.
// Enumerate resolves every descriptor before returning, so descriptors coming
// out of it are safe for concurrent readers; the lazy path only matters for
// hand-built descriptors.
func (d *Descriptor) EffectiveID() string {
	if d.effectiveID != "" {
		return d.effectiveID
	}
	id := d.DeclaredID
	if d.legacyNames {
		if override, ok := d.overrides[id]; ok && override != "" {
			id = override
		}
	}
	d.effectiveID = id
	return id
}

// DisplayName returns the reported name, which follows the override once the
// effective id has resolved to it.
func (d *Descriptor) DisplayName() string {
	if id := d.EffectiveID(); id != d.DeclaredID {
		return id
	}
	return d.Name
}

// Decoded is the result of decoding a raw snapshot value: a number, a state
// label or nothing at all.
type Decoded struct {
	Kind   DecodedKind
	Number float64
	Text   string
}

type DecodedKind int

const (
	DecodedAbsent DecodedKind = iota
	DecodedNumber
	DecodedText
)

func AbsentValue() Decoded {
	return Decoded{Kind: DecodedAbsent}
}

func NumberValue(value float64) Decoded {
	return Decoded{Kind: DecodedNumber, Number: value}
}

func TextValue(value string) Decoded {
	return Decoded{Kind: DecodedText, Text: value}
}

// EffectiveScale returns the configured scale factor, defaulting to 1.
func (d *Descriptor) EffectiveScale() float64 {
	if d.Scale == 0 {
		return 1
	}
	return d.Scale
}

func Precision(p int) *int {
	return &p
}
