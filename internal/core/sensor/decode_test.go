package sensor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func numericDescriptor() *Descriptor {
	return &Descriptor{
		DeclaredID: "hp1_flow_line_temperature",
		Name:       "HP1 Flow Line Temperature",
		Unit:       "°C",
		DeviceType: "HP",
	}
}

func stateDescriptor() *Descriptor {
	return &Descriptor{
		DeclaredID: "hp1_operating_state",
		Name:       "HP1 Operating State",
		DeviceType: "HP",
		TxtMapping: true,
	}
}

func TestDecodeNumeric(t *testing.T) {
	assert := assert.New(t)
	d := numericDescriptor()

	decoded := d.Decode(map[string]any{"hp1_flow_line_temperature": 35.5}, zap.NewNop())
	assert.Equal(DecodedNumber, decoded.Kind)
	assert.Equal(35.5, decoded.Number)

	decoded = d.Decode(map[string]any{"hp1_flow_line_temperature": "35.5"}, zap.NewNop())
	assert.Equal(DecodedNumber, decoded.Kind)
	assert.Equal(35.5, decoded.Number)
}

func TestDecodeNumericGarbageIsAbsent(t *testing.T) {
	d := numericDescriptor()
	decoded := d.Decode(map[string]any{"hp1_flow_line_temperature": "abc"}, zap.NewNop())
	assert.Equal(t, DecodedAbsent, decoded.Kind)
}

func TestDecodeMissingSnapshot(t *testing.T) {
	assert := assert.New(t)
	d := numericDescriptor()

	assert.Equal(DecodedAbsent, d.Decode(nil, zap.NewNop()).Kind)
	assert.Equal(DecodedAbsent, d.Decode(map[string]any{}, zap.NewNop()).Kind)
	assert.Equal(DecodedAbsent, d.Decode(map[string]any{"other_sensor": 1.0}, zap.NewNop()).Kind)
	assert.Equal(DecodedAbsent, d.Decode(map[string]any{"hp1_flow_line_temperature": nil}, zap.NewNop()).Kind)
}

func TestDecodeStateMapping(t *testing.T) {
	assert := assert.New(t)
	d := stateDescriptor()

	// raw values arrive as strings or numbers, both decode through the table
	decoded := d.Decode(map[string]any{"hp1_operating_state": "2"}, zap.NewNop())
	assert.Equal(DecodedText, decoded.Kind)
	assert.Equal("DHW", decoded.Text)

	decoded = d.Decode(map[string]any{"hp1_operating_state": 1}, zap.NewNop())
	assert.Equal("CH", decoded.Text)

	// float-then-int truncation
	decoded = d.Decode(map[string]any{"hp1_operating_state": 5.9}, zap.NewNop())
	assert.Equal("DEFROST", decoded.Text)
}

func TestDecodeStateUnknownCode(t *testing.T) {
	d := stateDescriptor()
	decoded := d.Decode(map[string]any{"hp1_operating_state": 99}, zap.NewNop())
	assert.Equal(t, "Unknown state (99)", decoded.Text)
}

func TestDecodeStateNonNumericRaw(t *testing.T) {
	d := stateDescriptor()
	decoded := d.Decode(map[string]any{"hp1_operating_state": "zz"}, zap.NewNop())
	assert.Equal(t, "Unknown state (zz)", decoded.Text)
}

func TestDecodeStateMissingMappingTable(t *testing.T) {
	d := &Descriptor{
		DeclaredID: "hp1_bogus_attribute",
		Name:       "HP1 Bogus Attribute",
		DeviceType: "HP",
		TxtMapping: true,
	}
	decoded := d.Decode(map[string]any{"hp1_bogus_attribute": 1}, zap.NewNop())
	assert.Equal(t, "Unknown mapping for state (1)", decoded.Text)
}

func TestDecodeStateLookupError(t *testing.T) {
	orig := lookupStateMapping
	lookupStateMapping = func(key string) (map[int]string, bool, error) {
		return nil, false, errors.New("registry corrupted")
	}
	defer func() { lookupStateMapping = orig }()

	d := stateDescriptor()
	decoded := d.Decode(map[string]any{"hp1_operating_state": 2}, zap.NewNop())
	assert.Equal(t, "Error loading mappings (2)", decoded.Text)
}

func TestDecodeGeneralStateSensors(t *testing.T) {
	assert := assert.New(t)

	ambient := &Descriptor{
		DeclaredID: "ambient_operating_state",
		Name:       "Ambient Operating State",
		DeviceType: "main",
		TxtMapping: true,
	}
	decoded := ambient.Decode(map[string]any{"ambient_operating_state": 1}, zap.NewNop())
	assert.Equal("AUTOMATIK", decoded.Text)

	// hyphen in the display name normalizes to an underscore
	emgr := &Descriptor{
		DeclaredID: "emgr_operating_state",
		Name:       "E-Manager Operating State",
		DeviceType: "main",
		TxtMapping: true,
	}
	decoded = emgr.Decode(map[string]any{"emgr_operating_state": 4}, zap.NewNop())
	assert.Equal("OFFLINE", decoded.Text)
}

func TestDecodeUsesEffectiveId(t *testing.T) {
	d := &Descriptor{
		DeclaredID:  "hp1_flow_line_temperature",
		Name:        "HP1 Flow Line Temperature",
		DeviceType:  "HP",
		legacyNames: true,
		overrides:   map[string]string{"hp1_flow_line_temperature": "supply_temp"},
	}
	decoded := d.Decode(map[string]any{"supply_temp": 41.2}, zap.NewNop())
	assert.Equal(t, DecodedNumber, decoded.Kind)
	assert.Equal(t, 41.2, decoded.Number)
	assert.Equal(t, "supply_temp", d.DisplayName())
}

func TestDecodeIdempotent(t *testing.T) {
	snapshot := map[string]any{
		"hp1_operating_state":       2,
		"hp1_flow_line_temperature": 35.5,
	}
	state := stateDescriptor()
	numeric := numericDescriptor()

	assert.Equal(t, state.Decode(snapshot, zap.NewNop()), state.Decode(snapshot, zap.NewNop()))
	assert.Equal(t, numeric.Decode(snapshot, zap.NewNop()), numeric.Decode(snapshot, zap.NewNop()))
}

func TestStateMappingKey(t *testing.T) {
	assert := assert.New(t)

	d := &Descriptor{Name: "HP1 Operating State", DeviceType: "HP"}
	assert.Equal("HP_OPERATING_STATE", d.stateMappingKey())

	d = &Descriptor{Name: "BOIL2 Circulation Pump State", DeviceType: "BOIL"}
	assert.Equal("BOIL_CIRCULATION_PUMP_STATE", d.stateMappingKey())

	// no instance token to strip
	d = &Descriptor{Name: "Ambient Operating State", DeviceType: "main"}
	assert.Equal("MAIN_AMBIENT_OPERATING_STATE", d.stateMappingKey())

	d = &Descriptor{Name: "E-Manager Operating State", DeviceType: "main"}
	assert.Equal("MAIN_E_MANAGER_OPERATING_STATE", d.stateMappingKey())

	// "HP" alone is not an instance token
	d = &Descriptor{Name: "HP Export State", DeviceType: "HP"}
	assert.Equal("HP_HP_EXPORT_STATE", d.stateMappingKey())
}
