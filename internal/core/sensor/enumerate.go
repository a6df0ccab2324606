package sensor

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Params are the per-installation inputs of sensor enumeration.
type Params struct {
	Templates        []DeviceTemplate
	General          []Template
	LegacyNames      bool
	NamePrefix       string
	Overrides        map[string]string
	RegisterDisabled func(address uint16) bool
}

var structuralPrefixes = map[string]bool{
	"hp":   true,
	"boil": true,
	"hc":   true,
	"buff": true,
	"sol":  true,
}

// InferDeviceClass resolves the device class from the unit when no explicit
// class is set. Shared by the instance-indexed and general enumeration paths.
func InferDeviceClass(unit, explicit string) string {
	if explicit != "" {
		return explicit
	}
	switch unit {
	case "°C":
		return DEVICE_CLASS_TEMPERATURE
	case "W":
		return DEVICE_CLASS_POWER
	case "Wh":
		return DEVICE_CLASS_ENERGY
	}
	return ""
}

// Enumerate materializes the full descriptor list for an installation.
// Entries on disabled registers are skipped silently. Enumeration fails if two
// descriptors would share a unique id, which can only happen through a
// misconfigured override table.
func Enumerate(params Params, logger *zap.Logger) ([]Descriptor, error) {
	var descriptors []Descriptor

	for _, template := range params.Templates {
		baseAddresses := GenerateBaseAddresses(template.Prefix, template.Count)
		for idx := 1; idx <= template.Count; idx++ {
			baseAddress := baseAddresses[idx]
			for _, entry := range template.Entries {
				address := baseAddress + entry.RelativeAddress
				if params.RegisterDisabled != nil && params.RegisterDisabled(address) {
					logger.Debug("skipping sensor, register disabled",
						zap.String("sensor", fmt.Sprintf("%s%d_%s", template.Prefix, idx, entry.ID)),
						zap.Uint16("address", address))
					continue
				}

				descriptor := instanceDescriptor(params, template.Prefix, idx, entry)
				descriptor.Address = address
				descriptor.RelativeAddress = entry.RelativeAddress
				descriptors = append(descriptors, descriptor)
			}
		}
	}

	for _, entry := range params.General {
		address := entry.RelativeAddress
		if params.RegisterDisabled != nil && params.RegisterDisabled(address) {
			logger.Debug("skipping general sensor, register disabled",
				zap.String("sensor", entry.ID),
				zap.Uint16("address", address))
			continue
		}
		descriptor := generalDescriptor(params, entry, logger)
		descriptor.Address = address
		descriptor.RelativeAddress = entry.RelativeAddress
		descriptors = append(descriptors, descriptor)
	}

	if err := checkUniqueIds(descriptors); err != nil {
		return nil, err
	}
	// resolve effective ids now: the slice is later shared across actors,
	// so concurrent lookups must not write the cache
	for i := range descriptors {
		descriptors[i].EffectiveID()
	}
	logger.Debug("enumerated sensors", zap.Int("count", len(descriptors)))
	return descriptors, nil
}

func instanceDescriptor(params Params, prefix string, idx int, entry Template) Descriptor {
	declaredID := fmt.Sprintf("%s%d_%s", prefix, idx, entry.ID)

	var name, entityID, uniqueID string

	overrideName := ""
	if params.LegacyNames {
		overrideName = params.Overrides[declaredID]
	}
	switch {
	case overrideName != "":
		// Override replaces the derived name entirely.
		name = overrideName
		entityID = fmt.Sprintf("sensor.%s_%s", params.NamePrefix, overrideName)
		uniqueID = fmt.Sprintf("%s_%s", params.NamePrefix, overrideName)
	case prefix == "hc" && entry.DeviceType == "Climate":
		// Climate-style templates carry the instance index in the name format.
		name = fmt.Sprintf(entry.Name, idx)
		entityID, uniqueID = derivedIds(params, declaredID)
	default:
		name = fmt.Sprintf("%s%d %s", strings.ToUpper(prefix), idx, entry.Name)
		entityID, uniqueID = derivedIds(params, declaredID)
	}

	deviceType := entry.DeviceType
	if structuralPrefixes[prefix] {
		deviceType = strings.ToUpper(prefix)
	} else if deviceType == "" {
		deviceType = "main"
	}

	return Descriptor{
		DeclaredID:  declaredID,
		Name:        name,
		Unit:        entry.Unit,
		Scale:       entry.Scale,
		StateClass:  entry.StateClass,
		DeviceClass: InferDeviceClass(entry.Unit, entry.DeviceClass),
		DataType:    entry.DataType,
		DeviceType:  deviceType,
		TxtMapping:  entry.TxtMapping,
		Precision:   entry.Precision,
		EntityID:    entityID,
		UniqueID:    uniqueID,
		legacyNames: params.LegacyNames,
		overrides:   params.Overrides,
	}
}

func generalDescriptor(params Params, entry Template, logger *zap.Logger) Descriptor {
	name := entry.Name
	declaredID := entry.ID
	if params.LegacyNames && entry.OverrideName != "" {
		name = entry.OverrideName
		declaredID = entry.OverrideName
		logger.Info("using override name for general sensor",
			zap.String("sensor", entry.ID),
			zap.String("override", entry.OverrideName))
	}

	var entityID string
	if params.LegacyNames {
		entityID = fmt.Sprintf("sensor.%s_%s", params.NamePrefix, declaredID)
	} else {
		entityID = fmt.Sprintf("sensor.%s", declaredID)
	}

	deviceType := entry.DeviceType
	if deviceType == "" {
		deviceType = "main"
	}

	return Descriptor{
		DeclaredID:  declaredID,
		Name:        name,
		Unit:        entry.Unit,
		Scale:       entry.Scale,
		StateClass:  entry.StateClass,
		DeviceClass: InferDeviceClass(entry.Unit, entry.DeviceClass),
		DataType:    entry.DataType,
		DeviceType:  deviceType,
		TxtMapping:  entry.TxtMapping,
		Precision:   entry.Precision,
		EntityID:    entityID,
		UniqueID:    strings.TrimPrefix(entityID, "sensor."),
		legacyNames: params.LegacyNames,
		overrides:   params.Overrides,
	}
}

func derivedIds(params Params, declaredID string) (entityID, uniqueID string) {
	if params.LegacyNames {
		entityID = fmt.Sprintf("sensor.%s_%s", params.NamePrefix, declaredID)
	} else {
		entityID = fmt.Sprintf("sensor.%s", declaredID)
	}
	return entityID, strings.TrimPrefix(entityID, "sensor.")
}

func checkUniqueIds(descriptors []Descriptor) error {
	seen := make(map[string]string, len(descriptors))
	for _, d := range descriptors {
		if other, dup := seen[d.UniqueID]; dup {
			return fmt.Errorf("duplicate unique id %q (sensors %s and %s)", d.UniqueID, other, d.DeclaredID)
		}
		seen[d.UniqueID] = d.DeclaredID
	}
	return nil
}
