package pac194x

// SampleMode selects the conversion rate and averaging (CTRL 15:12).
type SampleMode uint8

const (
	Sample1024Adaptive SampleMode = iota // default after POR
	Sample256Adaptive
	Sample64Adaptive
	Sample8Adaptive
	Sample1024
	Sample256
	Sample64
	Sample8
	SampleSingleShot
	SampleSingleShot8X
	SampleFast
	SampleBurst
	SampleSleep SampleMode = 0b1111
)

var sampleModeNames = [...]string{
	"1024sps-adaptive", "256sps-adaptive", "64sps-adaptive", "8sps-adaptive",
	"1024sps", "256sps", "64sps", "8sps",
	"single-shot", "single-shot-8x", "fast", "burst",
}

func (m SampleMode) String() string {
	switch {
	case int(m) < len(sampleModeNames):
		return sampleModeNames[m]
	case m == SampleSleep:
		return "sleep"
	}
	return "invalid"
}

// PinMode is the function of the SLOW/ALERT1 or GPIO/ALERT2 pin.
type PinMode uint8

const (
	PinAlert PinMode = iota
	PinInput
	PinOutput
	PinSlow // SLOW input; only meaningful on SLOW/ALERT1
)

func (m PinMode) String() string {
	switch m {
	case PinAlert:
		return "alert"
	case PinInput:
		return "input"
	case PinOutput:
		return "output"
	case PinSlow:
		return "slow"
	}
	return "invalid"
}

// VSenseFSR is the full-scale range of a channel's sense voltage.
type VSenseFSR uint8

const (
	VSenseUnipolar  VSenseFSR = iota // 0..+100 mV
	VSenseBipolarHV                  // -100..+100 mV
	VSenseBipolarLV                  // -50..+50 mV
)

func (r VSenseFSR) String() string { return fsrName(uint8(r)) }

// VBusFSR is the full-scale range of a channel's bus voltage.
type VBusFSR uint8

const (
	VBusUnipolar  VBusFSR = iota // 0..+32 V
	VBusBipolarHV                // -32..+32 V
	VBusBipolarLV                // -16..+16 V
)

func (r VBusFSR) String() string { return fsrName(uint8(r)) }

func fsrName(v uint8) string {
	switch v {
	case 0:
		return "unipolar"
	case 1:
		return "bipolar-hv"
	case 2:
		return "bipolar-lv"
	}
	return "invalid"
}

// AccumSetting selects what a channel's accumulator sums.
type AccumSetting uint8

const (
	AccumVPower AccumSetting = iota
	AccumVSense
	AccumVBus
)

func (s AccumSetting) String() string {
	switch s {
	case AccumVPower:
		return "vpower"
	case AccumVSense:
		return "vsense"
	case AccumVBus:
		return "vbus"
	}
	return "invalid"
}

// AccFullness is the fill level at which an accumulator (or the count)
// raises its overflow alert.
type AccFullness uint8

const (
	AccFull      AccFullness = iota // full scale
	AccMostly                       // 15/16
	AccSomewhat                     // 7/8
	AccPartially                    // 3/4
)

func (f AccFullness) String() string {
	switch f {
	case AccFull:
		return "full"
	case AccMostly:
		return "15/16"
	case AccSomewhat:
		return "7/8"
	case AccPartially:
		return "3/4"
	}
	return "invalid"
}

// SampleCount is how many consecutive samples must exceed a limit before
// the alert asserts.
type SampleCount uint8

const (
	Samples1 SampleCount = iota
	Samples4
	Samples8
	Samples16
)

// N returns the number of samples.
func (c SampleCount) N() int {
	if c > Samples16 {
		return 0
	}
	return [...]int{1, 4, 8, 16}[c]
}

// Product is the part number reported by the PRODUCT ID register.
type Product uint8

const (
	PAC1941   Product = 0x68
	PAC1942_1 Product = 0x69
	PAC1943   Product = 0x6A
	PAC1944   Product = 0x6B
	PAC1941_2 Product = 0x6C
	PAC1942_2 Product = 0x6D
)

func (p Product) known() bool { return p >= PAC1941 && p <= PAC1942_2 }

func (p Product) String() string {
	switch p {
	case PAC1941:
		return "PAC1941"
	case PAC1942_1:
		return "PAC1942-1"
	case PAC1943:
		return "PAC1943"
	case PAC1944:
		return "PAC1944"
	case PAC1941_2:
		return "PAC1941-2"
	case PAC1942_2:
		return "PAC1942-2"
	}
	return "unknown"
}

// Channels returns how many measurement channels the part populates.
func (p Product) Channels() int {
	switch p {
	case PAC1941, PAC1941_2:
		return 1
	case PAC1942_1, PAC1942_2:
		return 2
	case PAC1943:
		return 3
	case PAC1944:
		return 4
	}
	return 0
}
