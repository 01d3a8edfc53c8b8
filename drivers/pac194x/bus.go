package pac194x

// I2C transaction primitives. The chip address is the AddrSelect code.

func (d *Device) txErr(op string, reg Register, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindTransport, Op: op, Reg: reg, Err: err}
}

// sendByte positions the internal address pointer, or issues a command.
func (d *Device) sendByte(op string, reg Register) error {
	d.w[0] = byte(reg)
	return d.txErr(op, reg, d.i2c.Tx(d.addr, d.w[:1], nil))
}

// receiveByte reads one byte at the current address pointer.
func (d *Device) receiveByte(op string, reg Register) (byte, error) {
	if err := d.i2c.Tx(d.addr, nil, d.r[:1]); err != nil {
		return 0, d.txErr(op, reg, err)
	}
	return d.r[0], nil
}

// blockWrite sends the register address followed by the n payload bytes
// already staged in d.w[1:].
func (d *Device) blockWrite(op string, reg Register, n int) error {
	d.w[0] = byte(reg)
	return d.txErr(op, reg, d.i2c.Tx(d.addr, d.w[:1+n], nil))
}

// blockRead is a combined write-then-read of n bytes from reg.
func (d *Device) blockRead(op string, reg Register, n int) ([]byte, error) {
	d.w[0] = byte(reg)
	if err := d.i2c.Tx(d.addr, d.w[:1], d.r[:n]); err != nil {
		return nil, d.txErr(op, reg, err)
	}
	return d.r[:n], nil
}

// broadcast writes one command byte to the general call address.
func (d *Device) broadcast(op string, cmd Register) error {
	d.w[0] = byte(cmd)
	return d.txErr(op, cmd, d.i2c.Tx(GeneralCallAddress, d.w[:1], nil))
}
