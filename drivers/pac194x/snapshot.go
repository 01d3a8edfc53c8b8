package pac194x

// Snapshot is one pass over the result registers and the configuration
// images that produced them (the LAT images describe the data set held
// after a refresh). Zero values remain where individual reads fail.
type Snapshot struct {
	Ctrl        Ctrl
	NegPwrFSR   NegPwrFSR
	AccumConfig AccumConfig
	AccCount    AccCount
	VBus        [Channels]Voltage
	VSense      [Channels]Voltage
	VPower      [Channels]Power
	VAcc        [Channels]Accumulator
}

// Snapshot reads every field of a Snapshot and returns the first error.
// It does not refresh; call Refresh or RefreshV and wait RefreshSettle
// first.
func (d *Device) Snapshot() (Snapshot, error) {
	var s Snapshot
	err := d.SnapshotInto(&s)
	return s, err
}

func (d *Device) SnapshotInto(out *Snapshot) error {
	var (
		s     Snapshot
		first error
	)
	keep := func(err error) bool {
		if err != nil && first == nil {
			first = err
		}
		return err == nil
	}
	if v, e := d.ReadCtrlLatched(); keep(e) {
		s.Ctrl = v
	}
	if v, e := d.ReadNegPwrFSRLatched(); keep(e) {
		s.NegPwrFSR = v
	}
	if v, e := d.ReadAccumConfigLatched(); keep(e) {
		s.AccumConfig = v
	}
	if v, e := d.ReadAccCount(); keep(e) {
		s.AccCount = v
	}
	for i := 0; i < Channels; i++ {
		ch := i + 1
		if v, e := d.ReadVBus(ch); keep(e) {
			s.VBus[i] = v
		}
		if v, e := d.ReadVSense(ch); keep(e) {
			s.VSense[i] = v
		}
		if v, e := d.ReadVPower(ch); keep(e) {
			s.VPower[i] = v
		}
		if v, e := d.ReadVAcc(ch); keep(e) {
			s.VAcc[i] = v
		}
	}
	*out = s
	return first
}
