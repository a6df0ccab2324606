package sensor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func flowTempTemplate() []Template {
	return []Template{
		{ID: "flow_temp", Name: "Flow Temp", RelativeAddress: 5, Unit: "°C", Scale: 0.01, DataType: "int16"},
	}
}

func TestEnumerateModernNaming(t *testing.T) {
	assert := assert.New(t)

	descriptors, err := Enumerate(Params{
		Templates: []DeviceTemplate{{Prefix: "hp", Count: 1, Entries: flowTempTemplate()}},
		General:   []Template{},
	}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	d := descriptors[0]
	assert.Equal("hp1_flow_temp", d.DeclaredID)
	assert.Equal("hp1_flow_temp", d.EffectiveID())
	assert.Equal("sensor.hp1_flow_temp", d.EntityID)
	assert.Equal("hp1_flow_temp", d.UniqueID)
	assert.Equal("HP1 Flow Temp", d.Name)
	assert.Equal(DEVICE_CLASS_TEMPERATURE, d.DeviceClass)
	assert.Equal("HP", d.DeviceType)
	assert.Equal(uint16(1005), d.Address)
}

func TestEnumerateLegacyNaming(t *testing.T) {
	assert := assert.New(t)

	descriptors, err := Enumerate(Params{
		Templates:   []DeviceTemplate{{Prefix: "hp", Count: 1, Entries: flowTempTemplate()}},
		General:     []Template{},
		LegacyNames: true,
		NamePrefix:  "eu08l",
	}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	assert.Equal("sensor.eu08l_hp1_flow_temp", descriptors[0].EntityID)
	assert.Equal("eu08l_hp1_flow_temp", descriptors[0].UniqueID)
}

func TestEnumerateLegacyOverride(t *testing.T) {
	assert := assert.New(t)

	descriptors, err := Enumerate(Params{
		Templates:   []DeviceTemplate{{Prefix: "hp", Count: 1, Entries: flowTempTemplate()}},
		General:     []Template{},
		LegacyNames: true,
		NamePrefix:  "eu08l",
		Overrides:   map[string]string{"hp1_flow_temp": "supply_temp"},
	}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	d := descriptors[0]
	assert.Equal("hp1_flow_temp", d.DeclaredID)
	assert.Equal("supply_temp", d.Name)
	assert.Equal("sensor.eu08l_supply_temp", d.EntityID)
	assert.Equal("eu08l_supply_temp", d.UniqueID)
	// lookup id follows the override, declared id stays stable
	assert.Equal("supply_temp", d.EffectiveID())
	assert.Equal("supply_temp", d.EffectiveID(), "resolution is idempotent")
	assert.Equal("supply_temp", d.DisplayName())
}

func TestEnumerateOverrideIgnoredWithoutLegacyNames(t *testing.T) {
	descriptors, err := Enumerate(Params{
		Templates: []DeviceTemplate{{Prefix: "hp", Count: 1, Entries: flowTempTemplate()}},
		General:   []Template{},
		Overrides: map[string]string{"hp1_flow_temp": "supply_temp"},
	}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	assert.Equal(t, "sensor.hp1_flow_temp", descriptors[0].EntityID)
	assert.Equal(t, "hp1_flow_temp", descriptors[0].EffectiveID())
}

func TestEnumerateClimateTemplate(t *testing.T) {
	assert := assert.New(t)

	entries := []Template{
		{ID: "room_device_temperature", Name: "Room Temperature Heating Circuit %d", RelativeAddress: 4, Unit: "°C", DataType: "int16", DeviceType: "Climate"},
	}
	descriptors, err := Enumerate(Params{
		Templates: []DeviceTemplate{{Prefix: "hc", Count: 2, Entries: entries}},
		General:   []Template{},
	}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, descriptors, 2)

	assert.Equal("Room Temperature Heating Circuit 1", descriptors[0].Name)
	assert.Equal("hc1_room_device_temperature", descriptors[0].DeclaredID)
	assert.Equal("sensor.hc1_room_device_temperature", descriptors[0].EntityID)
	assert.Equal("Room Temperature Heating Circuit 2", descriptors[1].Name)
	// structural prefix wins over the template's device-type override
	assert.Equal("HC", descriptors[0].DeviceType)
}

func TestEnumerateSkipsDisabledRegisters(t *testing.T) {
	entries := []Template{
		{ID: "a", Name: "A", RelativeAddress: 0},
		{ID: "b", Name: "B", RelativeAddress: 1},
		{ID: "c", Name: "C", RelativeAddress: 2},
	}
	descriptors, err := Enumerate(Params{
		Templates: []DeviceTemplate{{Prefix: "hp", Count: 2, Entries: entries}},
		General:   []Template{},
		RegisterDisabled: func(address uint16) bool {
			return address == 1001 || address == 1102
		},
	}, zap.NewNop())
	require.NoError(t, err)

	// 3 entries x 2 instances - 2 disabled
	assert.Len(t, descriptors, 4)
	for _, d := range descriptors {
		assert.NotEqual(t, uint16(1001), d.Address)
		assert.NotEqual(t, uint16(1102), d.Address)
	}
}

func TestEnumerateGeneralSensors(t *testing.T) {
	assert := assert.New(t)

	general := []Template{
		{ID: "ambient_temperature", Name: "Ambient Temperature", RelativeAddress: 2, Unit: "°C", OverrideName: "ambient_temp"},
	}

	// modern naming ignores the override name
	descriptors, err := Enumerate(Params{General: general}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal("ambient_temperature", descriptors[0].DeclaredID)
	assert.Equal("sensor.ambient_temperature", descriptors[0].EntityID)
	assert.Equal(DEVICE_CLASS_TEMPERATURE, descriptors[0].DeviceClass)
	assert.Equal("main", descriptors[0].DeviceType)

	// legacy naming applies it as both name and id
	descriptors, err = Enumerate(Params{
		General:     general,
		LegacyNames: true,
		NamePrefix:  "eu08l",
	}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal("ambient_temp", descriptors[0].DeclaredID)
	assert.Equal("ambient_temp", descriptors[0].Name)
	assert.Equal("sensor.eu08l_ambient_temp", descriptors[0].EntityID)
	assert.Equal("eu08l_ambient_temp", descriptors[0].UniqueID)
}

func TestEnumerateDuplicateUniqueIdFails(t *testing.T) {
	entries := []Template{
		{ID: "temp_a", Name: "Temp A", RelativeAddress: 0},
		{ID: "temp_b", Name: "Temp B", RelativeAddress: 1},
	}
	_, err := Enumerate(Params{
		Templates:   []DeviceTemplate{{Prefix: "hp", Count: 1, Entries: entries}},
		General:     []Template{},
		LegacyNames: true,
		NamePrefix:  "eu08l",
		Overrides: map[string]string{
			"hp1_temp_a": "outdoor_temp",
			"hp1_temp_b": "outdoor_temp",
		},
	}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate unique id")
}

func TestEnumerateDefaultTemplatesUniqueAndDeterministic(t *testing.T) {
	params := Params{
		Templates: DefaultDeviceTemplates(2, 1, 1, 1, 2),
		General:   GeneralTemplates(),
	}
	first, err := Enumerate(params, zap.NewNop())
	require.NoError(t, err)

	expected := 2*len(HPTemplates()) + len(BoilTemplates()) + len(BuffTemplates()) +
		len(SolTemplates()) + 2*len(HCTemplates()) + len(GeneralTemplates())
	assert.Len(t, first, expected)

	second, err := Enumerate(params, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, first, second, "enumeration output is deterministic")
}

func TestEnumerateSharedDescriptorsConcurrentLookup(t *testing.T) {
	descriptors, err := Enumerate(Params{
		Templates:   DefaultDeviceTemplates(1, 1, 0, 0, 1),
		General:     GeneralTemplates(),
		LegacyNames: true,
		NamePrefix:  "eu08l",
		Overrides:   map[string]string{"hp1_flow_line_temperature": "supply_temp"},
	}, zap.NewNop())
	require.NoError(t, err)

	// the same slice backs the polling and the discovery side, so id lookups
	// from both must be read-only after enumeration
	results := make([][]string, 2)
	var wg sync.WaitGroup
	for g := range results {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			ids := make([]string, 0, len(descriptors))
			for i := range descriptors {
				ids = append(ids, descriptors[i].EffectiveID())
			}
			results[g] = ids
		}(g)
	}
	wg.Wait()

	assert.Equal(t, results[0], results[1])
	assert.Contains(t, results[0], "supply_temp")
}

func TestGenerateBaseAddresses(t *testing.T) {
	assert := assert.New(t)

	addresses := GenerateBaseAddresses("hp", 3)
	assert.Equal(uint16(1000), addresses[1])
	assert.Equal(uint16(1100), addresses[2])
	assert.Equal(uint16(1200), addresses[3])

	assert.Equal(uint16(2000), GenerateBaseAddresses("boil", 1)[1])
	assert.Equal(uint16(3000), GenerateBaseAddresses("buff", 1)[1])
	assert.Equal(uint16(4000), GenerateBaseAddresses("sol", 1)[1])
	assert.Equal(uint16(5000), GenerateBaseAddresses("hc", 1)[1])

	assert.Empty(GenerateBaseAddresses("unknown", 2))
}

func TestInferDeviceClass(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(DEVICE_CLASS_TEMPERATURE, InferDeviceClass("°C", ""))
	assert.Equal(DEVICE_CLASS_POWER, InferDeviceClass("W", ""))
	assert.Equal(DEVICE_CLASS_ENERGY, InferDeviceClass("Wh", ""))
	assert.Equal("", InferDeviceClass("l/h", ""))
	assert.Equal(DEVICE_CLASS_POWER, InferDeviceClass("kW", DEVICE_CLASS_POWER), "explicit class wins")
}
