package sensor

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Decode turns the raw snapshot value of this sensor into a displayable value.
// A missing snapshot or key yields Absent (the sensor is unavailable, not
// broken). Decode never fails: state sensors degrade to placeholder labels.
func (d *Descriptor) Decode(snapshot map[string]any, logger *zap.Logger) Decoded {
	if len(snapshot) == 0 {
		return AbsentValue()
	}
	raw, ok := snapshot[d.EffectiveID()]
	if !ok || raw == nil {
		return AbsentValue()
	}
	if !d.TxtMapping {
		value, ok := coerceFloat(raw)
		if !ok {
			return AbsentValue()
		}
		return NumberValue(value)
	}
	return d.decodeState(raw, logger)
}

func (d *Descriptor) decodeState(raw any, logger *zap.Logger) Decoded {
	value, ok := coerceFloat(raw)
	if !ok {
		return TextValue(fmt.Sprintf("Unknown state (%v)", raw))
	}
	code := int(value)

	key := d.stateMappingKey()
	mapping, found, err := lookupStateMapping(key)
	if err != nil {
		logger.Error("error accessing state mapping",
			zap.String("mapping", key),
			zap.Error(err))
		return TextValue(fmt.Sprintf("Error loading mappings (%d)", code))
	}
	if !found {
		logger.Warn("no state mapping found for state sensor",
			zap.String("sensor", d.Name),
			zap.String("mapping", key),
			zap.Int("value", code),
			zap.String("device_type", d.DeviceType),
			zap.Uint16("register", d.RelativeAddress),
			zap.String("data_type", d.DataType))
		return TextValue(fmt.Sprintf("Unknown mapping for state (%d)", code))
	}
	label, mapped := mapping[code]
	if !mapped {
		return TextValue(fmt.Sprintf("Unknown state (%d)", code))
	}
	return TextValue(label)
}

// stateMappingKey derives the mapping registry key from the display name:
// a leading "<TYPE><index>" token (e.g. "HP1 Operating State") is stripped,
// the rest is uppercased with spaces and hyphens as underscores, and the
// device type is prepended.
func (d *Descriptor) stateMappingKey() string {
	deviceType := strings.ToUpper(d.DeviceType)
	name := d.Name
	fields := strings.Fields(name)
	if len(fields) > 1 && isInstanceToken(fields[0], deviceType) {
		name = strings.Join(fields[1:], " ")
	}
	normalized := strings.ToUpper(name)
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	return fmt.Sprintf("%s_%s", deviceType, normalized)
}

// isInstanceToken reports whether a name token is the device type followed by
// an instance index, like "HP1" or "BOIL2".
func isInstanceToken(token, deviceType string) bool {
	if !strings.HasPrefix(token, deviceType) {
		return false
	}
	suffix := token[len(deviceType):]
	if suffix == "" {
		return false
	}
	_, err := strconv.Atoi(suffix)
	return err == nil
}

func coerceFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
