package pac194x

import "time"

// Register is a register address on the chip. For per-channel families the
// constant names the CH1 register; use Channel to reach the others.
type Register uint8

const (
	RegRefresh           Register = 0x00 // command, resets accumulators
	RegCtrl              Register = 0x01
	RegAccCount          Register = 0x02
	RegVacc              Register = 0x03 // CH1..CH4 at 0x03..0x06
	RegVbus              Register = 0x07 // CH1..CH4 at 0x07..0x0A
	RegVsense            Register = 0x0B
	RegVbusAvg           Register = 0x0F
	RegVsenseAvg         Register = 0x13
	RegVpower            Register = 0x17
	RegSmbusSettings     Register = 0x1C
	RegNegPwrFsr         Register = 0x1D
	RegRefreshG          Register = 0x1E // command, general call only
	RegRefreshV          Register = 0x1F // command, keeps accumulators
	RegSlow              Register = 0x20
	RegCtrlAct           Register = 0x21
	RegNegPwrFsrAct      Register = 0x22
	RegCtrlLat           Register = 0x23
	RegNegPwrFsrLat      Register = 0x24
	RegAccumConfig       Register = 0x25
	RegAlertStatus       Register = 0x26 // cleared on read
	RegSlowAlert1        Register = 0x27
	RegGpioAlert2        Register = 0x28
	RegAccFullnessLimits Register = 0x29
	RegOcLimit           Register = 0x30
	RegUcLimit           Register = 0x34
	RegOpLimit           Register = 0x38
	RegOvLimit           Register = 0x3C
	RegUvLimit           Register = 0x40
	RegOcLimitNSamples   Register = 0x44
	RegUcLimitNSamples   Register = 0x45
	RegOpLimitNSamples   Register = 0x46
	RegOvLimitNSamples   Register = 0x47
	RegUvLimitNSamples   Register = 0x48
	RegAlertEnable       Register = 0x49
	RegAccumConfigAct    Register = 0x4A
	RegAccumConfigLat    Register = 0x4B
	RegProductID         Register = 0xFD
	RegManufacturerID    Register = 0xFE
	RegRevisionID        Register = 0xFF
)

// Channels is the width of every per-channel register family.
const Channels = 4

// GeneralCallAddress is the reserved broadcast address used by RefreshG.
const GeneralCallAddress uint16 = 0x00

// ManufacturerID is the fixed value of the MANUFACTURER ID register.
const ManufacturerID uint8 = 0x54

// RefreshSettle is the minimum wait after any refresh before the
// accumulator, count and voltage registers hold the new data set.
const RefreshSettle = time.Millisecond

// Channel returns the address of channel n (1..4) of the family starting
// at r. Any other n fails with a range error.
func (r Register) Channel(n int) (Register, error) {
	if n < 1 || n > Channels {
		return 0, &Error{Kind: KindRange, Op: "channel", Reg: r, Err: ErrChannel}
	}
	return r + Register(n-1), nil
}

// AddrSelect is the resistor strap on the ADDRSEL pin. The code is the
// device's 7-bit bus address.
type AddrSelect uint8

const (
	AddrGND    AddrSelect = 0x10
	Addr499    AddrSelect = 0x11
	Addr806    AddrSelect = 0x12
	Addr1270   AddrSelect = 0x13
	Addr2050   AddrSelect = 0x14
	Addr3240   AddrSelect = 0x15
	Addr5230   AddrSelect = 0x16
	Addr8450   AddrSelect = 0x17
	Addr13300  AddrSelect = 0x18
	Addr21500  AddrSelect = 0x19
	Addr34000  AddrSelect = 0x1A
	Addr54900  AddrSelect = 0x1B
	Addr88700  AddrSelect = 0x1C
	Addr140000 AddrSelect = 0x1D
	Addr226000 AddrSelect = 0x1E
	AddrVDD    AddrSelect = 0x1F
)

var addrSelNames = [...]string{
	"GND", "499", "806", "1270", "2050", "3240", "5230", "8450",
	"13300", "21500", "34000", "54900", "88700", "140000", "226000", "VDD",
}

// Valid reports whether s is one of the sixteen strap codes.
func (s AddrSelect) Valid() bool { return s >= AddrGND && s <= AddrVDD }

// String names the strap: "GND", "VDD", or the resistor value in ohms.
func (s AddrSelect) String() string {
	if !s.Valid() {
		return "invalid"
	}
	return addrSelNames[s-AddrGND]
}

// ParseAddrSelect accepts the names produced by String.
func ParseAddrSelect(name string) (AddrSelect, error) {
	for i, n := range addrSelNames {
		if n == name {
			return AddrGND + AddrSelect(i), nil
		}
	}
	return 0, ErrAddrSelect
}
