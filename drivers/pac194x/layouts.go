package pac194x

import "pac194x-go/x/conv"

var (
	ctrlLayout = newLayout("CTRL", 2, LSB0,
		enumAt("sample_mode", 15, 12, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 15),
		enumAt("gpio_alert2", 11, 10, 0, 1, 2, 3),
		enumAt("slow_alert1", 9, 8, 0, 1, 2, 3),
		boolAt("ch1_off", 7),
		boolAt("ch2_off", 6),
		boolAt("ch3_off", 5),
		boolAt("ch4_off", 4),
		pad(3, 0),
	)

	accCountLayout = newLayout("ACC_COUNT", 4, LSB0, uintAt("count", 31, 0))
	vaccLayout     = newLayout("VACC", 7, LSB0, uintAt("vacc", 55, 0))
	voltageLayout  = newLayout("VOLTAGE", 2, LSB0, uintAt("value", 15, 0))
	vpowerLayout   = newLayout("VPOWER", 4, LSB0, uintAt("vpower", 31, 2), pad(1, 0))

	smbusLayout = newLayout("SMBUS_SETTINGS", 1, LSB0,
		boolAt("gpio_data2", 7),
		boolAt("gpio_data1", 6),
		boolAt("any_alert", 5),
		boolAt("por", 4),
		boolAt("timeout", 3),
		boolAt("byte_count", 2),
		boolAt("no_skip", 1),
		boolAt("i2c_hispeed", 0),
	)

	fsrLayout = newLayout("NEG_PWR_FSR", 2, LSB0,
		enumAt("cfg_vs1", 15, 14, 0, 1, 2),
		enumAt("cfg_vs2", 13, 12, 0, 1, 2),
		enumAt("cfg_vs3", 11, 10, 0, 1, 2),
		enumAt("cfg_vs4", 9, 8, 0, 1, 2),
		enumAt("cfg_vb1", 7, 6, 0, 1, 2),
		enumAt("cfg_vb2", 5, 4, 0, 1, 2),
		enumAt("cfg_vb3", 3, 2, 0, 1, 2),
		enumAt("cfg_vb4", 1, 0, 0, 1, 2),
	)

	slowLayout = newLayout("SLOW", 1, LSB0,
		boolAt("slow", 7),
		boolAt("slow_lh", 6),
		boolAt("slow_hl", 5),
		boolAt("r_rise", 4),
		boolAt("r_v_rise", 3),
		boolAt("r_fall", 2),
		boolAt("r_v_fall", 1),
		pad(0, 0),
	)

	accumLayout = newLayout("ACCUM_CONFIG", 1, LSB0,
		enumAt("acc1", 7, 6, 0, 1, 2),
		enumAt("acc2", 5, 4, 0, 1, 2),
		enumAt("acc3", 3, 2, 0, 1, 2),
		enumAt("acc4", 1, 0, 0, 1, 2),
	)

	alertStatusLayout = newLayout("ALERT_STATUS", 3, MSB0,
		append(alertBits(), pad(22, 23))...)

	alertMaskLayout = newLayout("ALERT_MASK", 3, MSB0,
		append(alertBits(), boolAt("alert_cc", 22), pad(23, 23))...)

	fullnessLayout = newLayout("ACC_FULLNESS_LIMITS", 2, LSB0,
		enumAt("acc1", 15, 14, 0, 1, 2, 3),
		enumAt("acc2", 13, 12, 0, 1, 2, 3),
		enumAt("acc3", 11, 10, 0, 1, 2, 3),
		enumAt("acc4", 9, 8, 0, 1, 2, 3),
		enumAt("acc_count", 7, 6, 0, 1, 2, 3),
		pad(5, 0),
	)

	limitLayout      = newLayout("LIMIT", 2, LSB0, intAt("limit", 15, 0))
	powerLimitLayout = newLayout("OP_LIMIT", 3, LSB0, intAt("limit", 23, 0))

	nsamplesLayout = newLayout("LIMIT_NSAMPLES", 1, LSB0,
		enumAt("ch1", 7, 6, 0, 1, 2, 3),
		enumAt("ch2", 5, 4, 0, 1, 2, 3),
		enumAt("ch3", 3, 2, 0, 1, 2, 3),
		enumAt("ch4", 1, 0, 0, 1, 2, 3),
	)
)

// alertBits are MSB0 bits 0..21 shared by the status and mask registers.
func alertBits() []field {
	names := [...]string{
		"oc1", "oc2", "oc3", "oc4",
		"uc1", "uc2", "uc3", "uc4",
		"ov1", "ov2", "ov3", "ov4",
		"uv1", "uv2", "uv3", "uv4",
		"op1", "op2", "op3", "op4",
		"acc_ovf", "acc_count",
	}
	fs := make([]field, 0, len(names)+2)
	for i, n := range names {
		fs = append(fs, boolAt(n, uint8(i)))
	}
	return fs
}

// Info describes one register or register family.
type Info struct {
	Name   string
	Addr   Register // CH1 address for families
	Size   int      // bytes; 0 for commands
	Order  BitOrder
	Family int // 1, or Channels for per-channel families
}

type desc struct {
	Info
	l *layout
}

func fixed(name string, addr Register, l *layout) desc {
	return desc{Info: Info{Name: name, Addr: addr, Size: l.size, Order: l.order, Family: 1}, l: l}
}

func family(name string, addr Register, l *layout) desc {
	d := fixed(name, addr, l)
	d.Family = Channels
	return d
}

func command(name string, addr Register) desc {
	return desc{Info: Info{Name: name, Addr: addr, Family: 1}}
}

func idByte(name string, addr Register) desc {
	return desc{Info: Info{Name: name, Addr: addr, Size: 1, Family: 1}}
}

var table = [...]desc{
	command("REFRESH", RegRefresh),
	fixed("CTRL", RegCtrl, ctrlLayout),
	fixed("ACC_COUNT", RegAccCount, accCountLayout),
	family("VACC", RegVacc, vaccLayout),
	family("VBUS", RegVbus, voltageLayout),
	family("VSENSE", RegVsense, voltageLayout),
	family("VBUS_AVG", RegVbusAvg, voltageLayout),
	family("VSENSE_AVG", RegVsenseAvg, voltageLayout),
	family("VPOWER", RegVpower, vpowerLayout),
	fixed("SMBUS_SETTINGS", RegSmbusSettings, smbusLayout),
	fixed("NEG_PWR_FSR", RegNegPwrFsr, fsrLayout),
	command("REFRESH_G", RegRefreshG),
	command("REFRESH_V", RegRefreshV),
	fixed("SLOW", RegSlow, slowLayout),
	fixed("CTRL_ACT", RegCtrlAct, ctrlLayout),
	fixed("NEG_PWR_FSR_ACT", RegNegPwrFsrAct, fsrLayout),
	fixed("CTRL_LAT", RegCtrlLat, ctrlLayout),
	fixed("NEG_PWR_FSR_LAT", RegNegPwrFsrLat, fsrLayout),
	fixed("ACCUM_CONFIG", RegAccumConfig, accumLayout),
	fixed("ALERT_STATUS", RegAlertStatus, alertStatusLayout),
	fixed("SLOW_ALERT1", RegSlowAlert1, alertMaskLayout),
	fixed("GPIO_ALERT2", RegGpioAlert2, alertMaskLayout),
	fixed("ACC_FULLNESS_LIMITS", RegAccFullnessLimits, fullnessLayout),
	family("OC_LIMIT", RegOcLimit, limitLayout),
	family("UC_LIMIT", RegUcLimit, limitLayout),
	family("OP_LIMIT", RegOpLimit, powerLimitLayout),
	family("OV_LIMIT", RegOvLimit, limitLayout),
	family("UV_LIMIT", RegUvLimit, limitLayout),
	fixed("OC_LIMIT_NSAMPLES", RegOcLimitNSamples, nsamplesLayout),
	fixed("UC_LIMIT_NSAMPLES", RegUcLimitNSamples, nsamplesLayout),
	fixed("OP_LIMIT_NSAMPLES", RegOpLimitNSamples, nsamplesLayout),
	fixed("OV_LIMIT_NSAMPLES", RegOvLimitNSamples, nsamplesLayout),
	fixed("UV_LIMIT_NSAMPLES", RegUvLimitNSamples, nsamplesLayout),
	fixed("ALERT_ENABLE", RegAlertEnable, alertMaskLayout),
	fixed("ACCUM_CONFIG_ACT", RegAccumConfigAct, accumLayout),
	fixed("ACCUM_CONFIG_LAT", RegAccumConfigLat, accumLayout),
	idByte("PRODUCT_ID", RegProductID),
	idByte("MANUFACTURER_ID", RegManufacturerID),
	idByte("REVISION_ID", RegRevisionID),
}

// find returns the entry whose address range covers r.
func find(r Register) *desc {
	for i := range table {
		d := &table[i]
		if r >= d.Addr && int(r) < int(d.Addr)+d.Family {
			return d
		}
	}
	return nil
}

// Lookup returns metadata for r. Any channel address of a family resolves
// to that family's entry.
func Lookup(r Register) (Info, bool) {
	if d := find(r); d != nil {
		return d.Info, true
	}
	return Info{}, false
}

// Registers lists every register and family in address order.
func Registers() []Info {
	out := make([]Info, len(table))
	for i := range table {
		out[i] = table[i].Info
	}
	return out
}

// String returns the register name, or its hex address if unknown. Channel
// addresses carry a suffix, e.g. "VBUS3".
func (r Register) String() string {
	d := find(r)
	if d == nil {
		return conv.Hex8(uint8(r))
	}
	if d.Family == 1 {
		return d.Name
	}
	return d.Name + string(rune('1'+r-d.Addr))
}
