package sensor

// State mapping tables of the Lambda controller, keyed by
// "<DEVICE_TYPE>_<NORMALIZED_ATTRIBUTE>". The registry is a plain static map;
// keys are derived at decode time (see stateMappingKey).

var hpErrorState = map[int]string{
	0: "NONE",
	1: "MESSAGE",
	2: "WARNING",
	3: "ALARM",
	4: "FAULT",
}

var hpState = map[int]string{
	0:  "INIT",
	1:  "REFERENCE",
	2:  "RESTART-BLOCK",
	3:  "READY",
	4:  "START PUMPS",
	5:  "START COMPRESSOR",
	6:  "PRE-REGULATION",
	7:  "REGULATION",
	8:  "NOT USED",
	9:  "COOLING",
	10: "DEFROSTING",
	20: "STOPPING",
	30: "FAULT-LOCK",
	31: "ALARM-BLOCK",
	40: "ERROR-RESET",
}

var hpOperatingState = map[int]string{
	0:  "STBY",
	1:  "CH",
	2:  "DHW",
	3:  "CC",
	4:  "CIRCULATE",
	5:  "DEFROST",
	6:  "OFF",
	7:  "FROST",
	8:  "STBY-FROST",
	9:  "NOT USED",
	10: "SUMMER",
	11: "HOLIDAY",
	12: "ERROR",
	13: "WARNING",
	14: "INFO-MESSAGE",
	15: "TIME-BLOCK",
	16: "RELEASE-BLOCK",
	17: "MINTEMP-BLOCK",
	18: "FIRMWARE-DOWNLOAD",
}

var hpRequestType = map[int]string{
	0: "NO REQUEST",
	1: "FLOW PUMP CIRCULATION",
	2: "CENTRAL HEATING",
	3: "CENTRAL COOLING",
	4: "DOMESTIC HOT WATER",
}

var hpRelaisState2ndHeatingStage = map[int]string{
	0: "OFF",
	1: "ON",
}

var boilOperatingState = map[int]string{
	0:  "STBY",
	1:  "DHW",
	2:  "LEGIO",
	3:  "SUMMER",
	4:  "FROST",
	5:  "HOLIDAY",
	6:  "PRIO-STOP",
	7:  "ERROR",
	8:  "OFF",
	9:  "PROMPT-DHW",
	10: "TRAILING-STOP",
	11: "TEMP-LOCK",
	12: "STBY-FROST",
}

var boilCirculationPumpState = map[int]string{
	0: "OFF",
	1: "ON",
}

var hcOperatingState = map[int]string{
	0:  "HEATING",
	1:  "ECO",
	2:  "COOLING",
	3:  "FLOORDRY",
	4:  "FROST",
	5:  "MAX-TEMP",
	6:  "ERROR",
	7:  "SERVICE",
	8:  "HOLIDAY",
	9:  "CH-SUMMER",
	10: "CC-WINTER",
	11: "PRIO-STOP",
	12: "OFF",
	13: "RELEASE-OFF",
	14: "TIME-OFF",
	15: "STBY",
	16: "STBY-HEATING",
	17: "STBY-ECO",
	18: "STBY-COOLING",
	19: "STBY-FROST",
	20: "STBY-FLOORDRY",
}

var hcOperatingMode = map[int]string{
	0: "OFF",
	1: "MANUAL",
	2: "AUTOMATIK",
	3: "AUTO-HEATING",
	4: "AUTO-COOLING",
	5: "FROST",
	6: "SUMMER",
	7: "FLOOR-DRY",
}

var buffOperatingState = map[int]string{
	0: "STBY",
	1: "HEATING",
	2: "COOLING",
	3: "SUMMER",
	4: "FROST",
	5: "HOLIDAY",
	6: "PRIO-STOP",
	7: "ERROR",
	8: "OFF",
	9: "STBY-FROST",
}

var buffRequestType = map[int]string{
	0: "NO REQUEST",
	1: "FLOW PUMP CIRCULATION",
	2: "CENTRAL HEATING",
	3: "CENTRAL COOLING",
}

var solOperatingState = map[int]string{
	0: "STBY",
	1: "HEATING",
	2: "ERROR",
	3: "OFF",
}

var mainAmbientOperatingState = map[int]string{
	0: "OFF",
	1: "AUTOMATIK",
	2: "MANUAL",
	3: "ERROR",
}

var mainEManagerOperatingState = map[int]string{
	0: "OFF",
	1: "AUTOMATIK",
	2: "MANUAL",
	3: "ERROR",
	4: "OFFLINE",
}

var mainCirculationPumpState = map[int]string{
	0: "OFF",
	1: "ON",
}

var stateMappings = map[string]map[int]string{
	"HP_ERROR_STATE":                    hpErrorState,
	"HP_STATE":                          hpState,
	"HP_OPERATING_STATE":                hpOperatingState,
	"HP_REQUEST_TYPE":                   hpRequestType,
	"HP_RELAIS_STATE_2ND_HEATING_STAGE": hpRelaisState2ndHeatingStage,
	"BOIL_OPERATING_STATE":              boilOperatingState,
	"BOIL_CIRCULATION_PUMP_STATE":       boilCirculationPumpState,
	"HC_OPERATING_STATE":                hcOperatingState,
	"HC_OPERATING_MODE":                 hcOperatingMode,
	"BUFF_OPERATING_STATE":              buffOperatingState,
	"BUFF_REQUEST_TYPE":                 buffRequestType,
	"SOL_OPERATING_STATE":               solOperatingState,
	"MAIN_AMBIENT_OPERATING_STATE":      mainAmbientOperatingState,
	"MAIN_E_MANAGER_OPERATING_STATE":    mainEManagerOperatingState,
	"MAIN_CIRCULATION_PUMP_STATE":       mainCirculationPumpState,
}

// lookupStateMapping is a variable so decode error handling can be exercised
// in tests.
var lookupStateMapping = func(key string) (map[int]string, bool, error) {
	mapping, ok := stateMappings[key]
	return mapping, ok, nil
}
