package pac194x

import "tinygo.org/x/drivers"

// Device is one PAC194x on an I²C bus. It caches nothing: every accessor
// is a fresh bus round trip. A Device is not safe for concurrent use; to
// share a bus between devices hand each one its own serialized handle.
type Device struct {
	i2c  drivers.I2C
	addr uint16
	sel  AddrSelect

	// Fixed buffers to avoid per-call heap allocations. The widest
	// register (VACC) is 7 bytes.
	w [8]byte
	r [7]byte
}

// New binds a device to the bus at the address given by its strap.
func New(i2c drivers.I2C, sel AddrSelect) (*Device, error) {
	if !sel.Valid() {
		return nil, ErrAddrSelect
	}
	return &Device{i2c: i2c, addr: uint16(sel), sel: sel}, nil
}

// AddrSelect returns the strap the device was constructed with.
func (d *Device) AddrSelect() AddrSelect { return d.sel }

// Address returns the 7-bit bus address.
func (d *Device) Address() uint16 { return d.addr }

func withReg(err error, op string, reg Register) error {
	if e, ok := err.(*Error); ok {
		e.Op, e.Reg = op, reg
	}
	return err
}

func read[T any, P interface {
	*T
	binder
}](d *Device, reg Register) (T, error) {
	var v T
	l := find(reg).l
	b, err := d.blockRead("read", reg, l.size)
	if err != nil {
		return v, err
	}
	if err := decode(l, b, P(&v)); err != nil {
		var zero T
		return zero, withReg(err, "read", reg)
	}
	return v, nil
}

func readChannel[T any, P interface {
	*T
	binder
}](d *Device, base Register, ch int) (T, error) {
	reg, err := base.Channel(ch)
	if err != nil {
		var zero T
		return zero, withReg(err, "read", base)
	}
	return read[T, P](d, reg)
}

func (d *Device) write(reg Register, v binder) error {
	l := find(reg).l
	if err := encode(l, v, d.w[1:1+l.size]); err != nil {
		return withReg(err, "write", reg)
	}
	return d.blockWrite("write", reg, l.size)
}

func (d *Device) writeChannel(base Register, ch int, v binder) error {
	reg, err := base.Channel(ch)
	if err != nil {
		return withReg(err, "write", base)
	}
	return d.write(reg, v)
}

// ---- commands ----

// Refresh latches the pending configuration, snapshots the measurement
// registers and resets the accumulators and count. Wait RefreshSettle
// before reading results.
func (d *Device) Refresh() error { return d.sendByte("refresh", RegRefresh) }

// RefreshV is Refresh without the accumulator reset.
func (d *Device) RefreshV() error { return d.sendByte("refresh", RegRefreshV) }

// RefreshG sends REFRESH to the general call address, refreshing every
// PAC194x on the bus at once.
func (d *Device) RefreshG() error { return d.broadcast("refresh", RegRefreshG) }

// ---- control and configuration ----

// ReadCtrl returns the pending CTRL image (last value written).
func (d *Device) ReadCtrl() (Ctrl, error) { return read[Ctrl](d, RegCtrl) }

// ReadCtrlActive returns the CTRL image governing current conversions.
func (d *Device) ReadCtrlActive() (Ctrl, error) { return read[Ctrl](d, RegCtrlAct) }

// ReadCtrlLatched returns the CTRL image active before the last refresh.
func (d *Device) ReadCtrlLatched() (Ctrl, error) { return read[Ctrl](d, RegCtrlLat) }

// WriteCtrl writes the pending CTRL image; it takes effect on refresh.
func (d *Device) WriteCtrl(v Ctrl) error { return d.write(RegCtrl, &v) }

// ReadNegPwrFSR returns the pending NEG_PWR_FSR image (last value written).
func (d *Device) ReadNegPwrFSR() (NegPwrFSR, error) { return read[NegPwrFSR](d, RegNegPwrFsr) }

// ReadNegPwrFSRActive returns the FSR image governing current conversions.
func (d *Device) ReadNegPwrFSRActive() (NegPwrFSR, error) {
	return read[NegPwrFSR](d, RegNegPwrFsrAct)
}

// ReadNegPwrFSRLatched returns the FSR image active before the last refresh.
func (d *Device) ReadNegPwrFSRLatched() (NegPwrFSR, error) {
	return read[NegPwrFSR](d, RegNegPwrFsrLat)
}

// WriteNegPwrFSR writes the pending FSR image; it takes effect on refresh.
func (d *Device) WriteNegPwrFSR(v NegPwrFSR) error { return d.write(RegNegPwrFsr, &v) }

// ReadAccumConfig returns the pending ACCUM_CONFIG image (last value written).
func (d *Device) ReadAccumConfig() (AccumConfig, error) { return read[AccumConfig](d, RegAccumConfig) }

// ReadAccumConfigActive returns the accumulator setup currently in use.
func (d *Device) ReadAccumConfigActive() (AccumConfig, error) {
	return read[AccumConfig](d, RegAccumConfigAct)
}

// ReadAccumConfigLatched returns the accumulator setup active before the
// last refresh.
func (d *Device) ReadAccumConfigLatched() (AccumConfig, error) {
	return read[AccumConfig](d, RegAccumConfigLat)
}

// WriteAccumConfig writes the pending ACCUM_CONFIG image; it takes effect
// on refresh.
func (d *Device) WriteAccumConfig(v AccumConfig) error { return d.write(RegAccumConfig, &v) }

// SMBUS_SETTINGS and SLOW act immediately, no refresh needed.

func (d *Device) ReadSmbusSettings() (SmbusSettings, error) {
	return read[SmbusSettings](d, RegSmbusSettings)
}

func (d *Device) WriteSmbusSettings(v SmbusSettings) error { return d.write(RegSmbusSettings, &v) }

func (d *Device) ReadSlow() (Slow, error) { return read[Slow](d, RegSlow) }

func (d *Device) WriteSlow(v Slow) error { return d.write(RegSlow, &v) }

// ---- measurements ----

// ReadAccCount returns how many samples the accumulators hold.
func (d *Device) ReadAccCount() (AccCount, error) { return read[AccCount](d, RegAccCount) }

// ReadVAcc returns the accumulator of channel ch (1..4).
func (d *Device) ReadVAcc(ch int) (Accumulator, error) {
	return readChannel[Accumulator](d, RegVacc, ch)
}

// ReadVBus returns the bus voltage of channel ch (1..4).
func (d *Device) ReadVBus(ch int) (Voltage, error) { return readChannel[Voltage](d, RegVbus, ch) }

// ReadVSense returns the sense voltage of channel ch (1..4).
func (d *Device) ReadVSense(ch int) (Voltage, error) {
	return readChannel[Voltage](d, RegVsense, ch)
}

// ReadVBusAvg returns the rolling average of the last eight VBUS samples.
func (d *Device) ReadVBusAvg(ch int) (Voltage, error) {
	return readChannel[Voltage](d, RegVbusAvg, ch)
}

func (d *Device) ReadVSenseAvg(ch int) (Voltage, error) {
	return readChannel[Voltage](d, RegVsenseAvg, ch)
}

// ReadVPower returns the VBUS x VSENSE product of channel ch (1..4).
func (d *Device) ReadVPower(ch int) (Power, error) { return readChannel[Power](d, RegVpower, ch) }

// ---- alerts ----

// ReadAlertStatus returns and clears the latched alert conditions.
func (d *Device) ReadAlertStatus() (AlertStatus, error) {
	return read[AlertStatus](d, RegAlertStatus)
}

// ReadSlowAlert1 returns the conditions routed to the SLOW/ALERT1 pin.
func (d *Device) ReadSlowAlert1() (AlertMask, error) { return read[AlertMask](d, RegSlowAlert1) }

func (d *Device) WriteSlowAlert1(v AlertMask) error { return d.write(RegSlowAlert1, &v) }

// ReadGpioAlert2 returns the conditions routed to the GPIO/ALERT2 pin.
func (d *Device) ReadGpioAlert2() (AlertMask, error) { return read[AlertMask](d, RegGpioAlert2) }

func (d *Device) WriteGpioAlert2(v AlertMask) error { return d.write(RegGpioAlert2, &v) }

// ReadAlertEnable returns the conditions that may raise an alert at all.
func (d *Device) ReadAlertEnable() (AlertMask, error) { return read[AlertMask](d, RegAlertEnable) }

func (d *Device) WriteAlertEnable(v AlertMask) error { return d.write(RegAlertEnable, &v) }

func (d *Device) ReadAccFullnessLimits() (AccFullnessLimits, error) {
	return read[AccFullnessLimits](d, RegAccFullnessLimits)
}

func (d *Device) WriteAccFullnessLimits(v AccFullnessLimits) error {
	return d.write(RegAccFullnessLimits, &v)
}

// ---- limits ----

// ReadOCLimit returns the over-current limit of channel ch.
func (d *Device) ReadOCLimit(ch int) (Limit, error) { return readChannel[Limit](d, RegOcLimit, ch) }

func (d *Device) WriteOCLimit(ch int, v Limit) error { return d.writeChannel(RegOcLimit, ch, &v) }

func (d *Device) ReadUCLimit(ch int) (Limit, error) { return readChannel[Limit](d, RegUcLimit, ch) }

func (d *Device) WriteUCLimit(ch int, v Limit) error { return d.writeChannel(RegUcLimit, ch, &v) }

func (d *Device) ReadOVLimit(ch int) (Limit, error) { return readChannel[Limit](d, RegOvLimit, ch) }

func (d *Device) WriteOVLimit(ch int, v Limit) error { return d.writeChannel(RegOvLimit, ch, &v) }

func (d *Device) ReadUVLimit(ch int) (Limit, error) { return readChannel[Limit](d, RegUvLimit, ch) }

func (d *Device) WriteUVLimit(ch int, v Limit) error { return d.writeChannel(RegUvLimit, ch, &v) }

func (d *Device) ReadOPLimit(ch int) (PowerLimit, error) {
	return readChannel[PowerLimit](d, RegOpLimit, ch)
}

// WriteOPLimit fails with a range error if v does not fit in 24 bits.
func (d *Device) WriteOPLimit(ch int, v PowerLimit) error {
	return d.writeChannel(RegOpLimit, ch, &v)
}

// ReadOCLimitSamples returns how many samples must exceed each OC limit.
func (d *Device) ReadOCLimitSamples() (LimitSamples, error) {
	return read[LimitSamples](d, RegOcLimitNSamples)
}

func (d *Device) WriteOCLimitSamples(v LimitSamples) error {
	return d.write(RegOcLimitNSamples, &v)
}

func (d *Device) ReadUCLimitSamples() (LimitSamples, error) {
	return read[LimitSamples](d, RegUcLimitNSamples)
}

func (d *Device) WriteUCLimitSamples(v LimitSamples) error {
	return d.write(RegUcLimitNSamples, &v)
}

func (d *Device) ReadOPLimitSamples() (LimitSamples, error) {
	return read[LimitSamples](d, RegOpLimitNSamples)
}

func (d *Device) WriteOPLimitSamples(v LimitSamples) error {
	return d.write(RegOpLimitNSamples, &v)
}

func (d *Device) ReadOVLimitSamples() (LimitSamples, error) {
	return read[LimitSamples](d, RegOvLimitNSamples)
}

func (d *Device) WriteOVLimitSamples(v LimitSamples) error {
	return d.write(RegOvLimitNSamples, &v)
}

func (d *Device) ReadUVLimitSamples() (LimitSamples, error) {
	return read[LimitSamples](d, RegUvLimitNSamples)
}

func (d *Device) WriteUVLimitSamples(v LimitSamples) error {
	return d.write(RegUvLimitNSamples, &v)
}

// ---- identification ----

func (d *Device) readID(reg Register) (byte, error) {
	if err := d.sendByte("read", reg); err != nil {
		return 0, err
	}
	return d.receiveByte("read", reg)
}

// ProductID reads and names the part. Unknown codes fail with a decoding
// error.
func (d *Device) ProductID() (Product, error) {
	b, err := d.readID(RegProductID)
	if err != nil {
		return 0, err
	}
	p := Product(b)
	if !p.known() {
		return 0, &Error{Kind: KindDecoding, Op: "read", Reg: RegProductID, Err: ErrUnknownProduct}
	}
	return p, nil
}

// ManufacturerID reads the MANUFACTURER ID byte, 0x54 on every part.
func (d *Device) ManufacturerID() (uint8, error) { return d.readID(RegManufacturerID) }

func (d *Device) RevisionID() (uint8, error) { return d.readID(RegRevisionID) }

// CheckIdentity confirms a PAC194x answers at the device address.
func (d *Device) CheckIdentity() (Product, error) {
	m, err := d.ManufacturerID()
	if err != nil {
		return 0, err
	}
	if m != ManufacturerID {
		return 0, &Error{Kind: KindDecoding, Op: "identify", Reg: RegManufacturerID, Err: ErrManufacturer}
	}
	return d.ProductID()
}
