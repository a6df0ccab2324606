package sensor

// Static sensor templates per device type. Entry order determines enumeration
// order, so keep it stable.

func HPTemplates() []Template {
	return []Template{
		{ID: "error_state", Name: "Error State", RelativeAddress: 0, DataType: "uint16", TxtMapping: true},
		{ID: "error_number", Name: "Error Number", RelativeAddress: 1, DataType: "int16"},
		{ID: "state", Name: "State", RelativeAddress: 2, DataType: "uint16", TxtMapping: true},
		{ID: "operating_state", Name: "Operating State", RelativeAddress: 3, DataType: "uint16", TxtMapping: true},
		{ID: "flow_line_temperature", Name: "Flow Line Temperature", RelativeAddress: 4, Unit: "°C", Scale: 0.01, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "return_line_temperature", Name: "Return Line Temperature", RelativeAddress: 5, Unit: "°C", Scale: 0.01, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "volume_flow_heat_sink", Name: "Volume Flow Heat Sink", RelativeAddress: 6, Unit: "l/h", Scale: 0.01, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "energy_source_inlet_temperature", Name: "Energy Source Inlet Temperature", RelativeAddress: 7, Unit: "°C", Scale: 0.01, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "energy_source_outlet_temperature", Name: "Energy Source Outlet Temperature", RelativeAddress: 8, Unit: "°C", Scale: 0.01, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "volume_flow_energy_source", Name: "Volume Flow Energy Source", RelativeAddress: 9, Unit: "l/min", Scale: 0.01, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "compressor_unit_rating", Name: "Compressor Unit Rating", RelativeAddress: 10, Unit: "%", Scale: 0.01, StateClass: STATE_CLASS_MEASUREMENT, DataType: "uint16", Precision: Precision(0)},
		{ID: "actual_heating_capacity", Name: "Actual Heating Capacity", RelativeAddress: 11, Unit: "kW", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, DataType: "int16", Precision: Precision(1)},
		{ID: "inverter_power_consumption", Name: "Inverter Power Consumption", RelativeAddress: 12, Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16"},
		{ID: "cop", Name: "COP", RelativeAddress: 13, Scale: 0.01, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(2)},
		{ID: "request_type", Name: "Request Type", RelativeAddress: 15, DataType: "int16", TxtMapping: true},
		{ID: "requested_flow_line_temperature", Name: "Requested Flow Line Temperature", RelativeAddress: 16, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "requested_return_line_temperature", Name: "Requested Return Line Temperature", RelativeAddress: 17, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "requested_flow_to_return_line_temperature_difference", Name: "Requested Flow To Return Line Temperature Difference", RelativeAddress: 18, Unit: "K", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "relais_state_2nd_heating_stage", Name: "Relais State 2nd Heating Stage", RelativeAddress: 19, DataType: "int16", TxtMapping: true},
		{ID: "compressor_power_consumption_accumulated", Name: "Compressor Power Consumption Accumulated", RelativeAddress: 20, Unit: "Wh", StateClass: STATE_CLASS_TOTAL_INCREASING, DataType: "int32"},
		{ID: "compressor_thermal_energy_output_accumulated", Name: "Compressor Thermal Energy Output Accumulated", RelativeAddress: 22, Unit: "Wh", StateClass: STATE_CLASS_TOTAL_INCREASING, DataType: "int32"},
	}
}

func BoilTemplates() []Template {
	return []Template{
		{ID: "error_number", Name: "Error Number", RelativeAddress: 0, DataType: "int16"},
		{ID: "operating_state", Name: "Operating State", RelativeAddress: 1, DataType: "uint16", TxtMapping: true},
		{ID: "actual_high_temperature", Name: "Actual High Temperature", RelativeAddress: 2, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "actual_low_temperature", Name: "Actual Low Temperature", RelativeAddress: 3, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "circulation_pump_state", Name: "Circulation Pump State", RelativeAddress: 4, DataType: "uint16", TxtMapping: true},
		{ID: "maximum_boiler_temperature", Name: "Maximum Boiler Temperature", RelativeAddress: 50, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
	}
}

func BuffTemplates() []Template {
	return []Template{
		{ID: "error_number", Name: "Error Number", RelativeAddress: 0, DataType: "int16"},
		{ID: "operating_state", Name: "Operating State", RelativeAddress: 1, DataType: "uint16", TxtMapping: true},
		{ID: "actual_high_temperature", Name: "Actual High Temperature", RelativeAddress: 2, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "actual_low_temperature", Name: "Actual Low Temperature", RelativeAddress: 3, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "request_type", Name: "Request Type", RelativeAddress: 4, DataType: "int16", TxtMapping: true},
		{ID: "maximum_buffer_temperature", Name: "Maximum Buffer Temperature", RelativeAddress: 50, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
	}
}

func SolTemplates() []Template {
	return []Template{
		{ID: "error_number", Name: "Error Number", RelativeAddress: 0, DataType: "int16"},
		{ID: "operating_state", Name: "Operating State", RelativeAddress: 1, DataType: "uint16", TxtMapping: true},
		{ID: "collector_temperature", Name: "Collector Temperature", RelativeAddress: 2, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "storage_temperature", Name: "Storage Temperature", RelativeAddress: 3, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "power_current", Name: "Power Current", RelativeAddress: 4, Unit: "kW", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, DataType: "int16", Precision: Precision(1)},
		{ID: "energy_total", Name: "Energy Total", RelativeAddress: 5, Unit: "kWh", Scale: 0.1, StateClass: STATE_CLASS_TOTAL_INCREASING, DeviceClass: DEVICE_CLASS_ENERGY, DataType: "int32", Precision: Precision(1)},
	}
}

func HCTemplates() []Template {
	return []Template{
		{ID: "error_number", Name: "Error Number", RelativeAddress: 0, DataType: "int16"},
		{ID: "operating_state", Name: "Operating State", RelativeAddress: 1, DataType: "uint16", TxtMapping: true},
		{ID: "flow_line_temperature", Name: "Flow Line Temperature", RelativeAddress: 2, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "return_line_temperature", Name: "Return Line Temperature", RelativeAddress: 3, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "room_device_temperature", Name: "Room Temperature Heating Circuit %d", RelativeAddress: 4, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1), DeviceType: "Climate"},
		{ID: "setpoint_flow_line_temperature", Name: "Flow Line Setpoint Temperature Heating Circuit %d", RelativeAddress: 5, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1), DeviceType: "Climate"},
		{ID: "operating_mode", Name: "Operating Mode", RelativeAddress: 6, DataType: "int16", TxtMapping: true},
		{ID: "target_flow_line_temperature", Name: "Target Flow Line Temperature", RelativeAddress: 7, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
	}
}

// GeneralTemplates is the flat, non-indexed set: ambient module and E-manager.
// RelativeAddress is the absolute register address here.
func GeneralTemplates() []Template {
	return []Template{
		{ID: "ambient_error_number", Name: "Ambient Error Number", RelativeAddress: 0, DataType: "int16"},
		{ID: "ambient_operating_state", Name: "Ambient Operating State", RelativeAddress: 1, DataType: "uint16", TxtMapping: true, DeviceType: "main"},
		{ID: "ambient_temperature", Name: "Ambient Temperature", RelativeAddress: 2, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1), OverrideName: "ambient_temp"},
		{ID: "ambient_temperature_1h", Name: "Ambient Temperature 1h", RelativeAddress: 3, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1), OverrideName: "ambient_temp_1h"},
		{ID: "ambient_temperature_calculated", Name: "Ambient Temperature Calculated", RelativeAddress: 4, Unit: "°C", Scale: 0.1, StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16", Precision: Precision(1)},
		{ID: "emgr_error_number", Name: "E-Manager Error Number", RelativeAddress: 100, DataType: "int16"},
		{ID: "emgr_operating_state", Name: "E-Manager Operating State", RelativeAddress: 101, DataType: "uint16", TxtMapping: true, DeviceType: "main"},
		{ID: "emgr_actual_power", Name: "E-Manager Actual Power", RelativeAddress: 102, Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DataType: "uint16"},
		{ID: "emgr_actual_power_consumption", Name: "E-Manager Actual Power Consumption", RelativeAddress: 103, Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16"},
		{ID: "emgr_power_consumption_setpoint", Name: "E-Manager Power Consumption Setpoint", RelativeAddress: 104, Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DataType: "int16"},
	}
}

// DefaultDeviceTemplates wires the static template sets to the configured
// instance counts, in the order sensors are enumerated.
func DefaultDeviceTemplates(numHPs, numBoil, numBuff, numSol, numHC int) []DeviceTemplate {
	return []DeviceTemplate{
		{Prefix: "hp", Count: numHPs, Entries: HPTemplates()},
		{Prefix: "boil", Count: numBoil, Entries: BoilTemplates()},
		{Prefix: "buff", Count: numBuff, Entries: BuffTemplates()},
		{Prefix: "sol", Count: numSol, Entries: SolTemplates()},
		{Prefix: "hc", Count: numHC, Entries: HCTemplates()},
	}
}
