package pac194x

// Raw register values. No unit conversion is done here; scaling by the
// FSR and sense resistor belongs to the caller.

// AccCount is the number of samples summed into the accumulators.
type AccCount uint32

// Voltage is a raw VBUS or VSENSE word (or its average).
type Voltage uint16

// Signed interprets v as 15 bits plus sign, for bipolar FSR modes.
func (v Voltage) Signed() int16 { return int16(v) }

// Power is the 30-bit VPOWER product.
type Power uint32

// Signed interprets p as 29 bits plus sign.
func (p Power) Signed() int32 { return int32(p<<2) >> 2 }

// Accumulator is the 56-bit VACC sum.
type Accumulator uint64

// Signed interprets a as 55 bits plus sign.
func (a Accumulator) Signed() int64 { return int64(a<<8) >> 8 }

// Limit is an OC, UC, OV or UV threshold.
type Limit int16

// PowerLimit is a 24-bit signed OP threshold.
type PowerLimit int32

func (v *AccCount) bind(c *codec)    { bindUint(c, v) }
func (v *Voltage) bind(c *codec)     { bindUint(c, v) }
func (v *Power) bind(c *codec)       { bindUint(c, v) }
func (v *Accumulator) bind(c *codec) { bindUint(c, v) }
func (v *Limit) bind(c *codec)       { bindInt(c, v) }
func (v *PowerLimit) bind(c *codec)  { bindInt(c, v) }

// Ctrl is the CTRL register and its ACT and LAT images.
type Ctrl struct {
	SampleMode SampleMode
	GPIOAlert2 PinMode
	SlowAlert1 PinMode
	ChannelOff [Channels]bool // index 0 is CH1
}

func (r *Ctrl) bind(c *codec) {
	bindEnum(c, &r.SampleMode)
	bindEnum(c, &r.GPIOAlert2)
	bindEnum(c, &r.SlowAlert1)
	bindBools(c, r.ChannelOff[:])
}

// SmbusSettings is the SMBUS_SETTINGS register.
type SmbusSettings struct {
	GPIOData2  bool
	GPIOData1  bool
	AnyAlert   bool
	POR        bool // set at power-on; write false to clear
	Timeout    bool
	ByteCount  bool
	NoSkip     bool
	I2CHiSpeed bool
}

func (r *SmbusSettings) bind(c *codec) {
	bindBool(c, &r.GPIOData2)
	bindBool(c, &r.GPIOData1)
	bindBool(c, &r.AnyAlert)
	bindBool(c, &r.POR)
	bindBool(c, &r.Timeout)
	bindBool(c, &r.ByteCount)
	bindBool(c, &r.NoSkip)
	bindBool(c, &r.I2CHiSpeed)
}

// NegPwrFSR is the NEG_PWR_FSR register and its ACT and LAT images.
type NegPwrFSR struct {
	VSense [Channels]VSenseFSR
	VBus   [Channels]VBusFSR
}

func (r *NegPwrFSR) bind(c *codec) {
	for i := range r.VSense {
		bindEnum(c, &r.VSense[i])
	}
	for i := range r.VBus {
		bindEnum(c, &r.VBus[i])
	}
}

// Slow reports SLOW pin state and the refresh events its edges caused.
type Slow struct {
	Slow   bool // SLOW pin is high
	SlowLH bool // low-to-high transition seen
	SlowHL bool // high-to-low transition seen
	RRise  bool // REFRESH on rising edge
	RVRise bool // REFRESH_V on rising edge
	RFall  bool
	RVFall bool
}

func (r *Slow) bind(c *codec) {
	bindBool(c, &r.Slow)
	bindBool(c, &r.SlowLH)
	bindBool(c, &r.SlowHL)
	bindBool(c, &r.RRise)
	bindBool(c, &r.RVRise)
	bindBool(c, &r.RFall)
	bindBool(c, &r.RVFall)
}

// AccumConfig is the ACCUM_CONFIG register and its ACT and LAT images.
type AccumConfig struct {
	Acc [Channels]AccumSetting
}

func (r *AccumConfig) bind(c *codec) {
	for i := range r.Acc {
		bindEnum(c, &r.Acc[i])
	}
}

// AlertFlags are the per-channel limit conditions plus the two
// accumulator overflow conditions.
type AlertFlags struct {
	OC, UC, OV, UV, OP [Channels]bool
	AccOverflow        bool
	AccCountOverflow   bool
}

func (f *AlertFlags) bind(c *codec) {
	bindBools(c, f.OC[:])
	bindBools(c, f.UC[:])
	bindBools(c, f.OV[:])
	bindBools(c, f.UV[:])
	bindBools(c, f.OP[:])
	bindBool(c, &f.AccOverflow)
	bindBool(c, &f.AccCountOverflow)
}

// Any reports whether any condition is flagged.
func (f *AlertFlags) Any() bool {
	for i := 0; i < Channels; i++ {
		if f.OC[i] || f.UC[i] || f.OV[i] || f.UV[i] || f.OP[i] {
			return true
		}
	}
	return f.AccOverflow || f.AccCountOverflow
}

// AlertStatus is the ALERT_STATUS register. Reading it clears it.
type AlertStatus struct {
	AlertFlags
}

// AlertMask routes or enables alert conditions (SLOW_ALERT1,
// GPIO_ALERT2, ALERT_ENABLE).
type AlertMask struct {
	AlertFlags
	ConversionComplete bool
}

func (r *AlertMask) bind(c *codec) {
	r.AlertFlags.bind(c)
	bindBool(c, &r.ConversionComplete)
}

// AccFullnessLimits sets the overflow alert level of each accumulator and
// of the sample count.
type AccFullnessLimits struct {
	Acc   [Channels]AccFullness
	Count AccFullness
}

func (r *AccFullnessLimits) bind(c *codec) {
	for i := range r.Acc {
		bindEnum(c, &r.Acc[i])
	}
	bindEnum(c, &r.Count)
}

// LimitSamples is one of the *_LIMIT_NSAMPLES registers, index 0 is CH1.
type LimitSamples [Channels]SampleCount

func (r *LimitSamples) bind(c *codec) {
	for i := range r {
		bindEnum(c, &r[i])
	}
}
