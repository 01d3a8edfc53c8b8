package pac194x

import (
	"bytes"
	"errors"
	"testing"

	"pac194x-go/errcode"
)

func TestNewRejectsBadAddrSelect(t *testing.T) {
	for _, sel := range []AddrSelect{0x00, 0x0F, 0x20, 0x7F} {
		if _, err := New(newFakeChip(AddrGND), sel); !errors.Is(err, ErrAddrSelect) {
			t.Fatalf("New(%#x) err = %v", uint8(sel), err)
		}
	}
	d, err := New(newFakeChip(AddrVDD), AddrVDD)
	if err != nil || d.Address() != 0x1F || d.AddrSelect() != AddrVDD {
		t.Fatalf("New(VDD) = %v, %v", d, err)
	}
}

func TestAddrSelectNames(t *testing.T) {
	for s := AddrGND; s <= AddrVDD; s++ {
		got, err := ParseAddrSelect(s.String())
		if err != nil || got != s {
			t.Fatalf("ParseAddrSelect(%q) = %#x, %v", s.String(), uint8(got), err)
		}
	}
	if _, err := ParseAddrSelect("100k"); !errors.Is(err, ErrAddrSelect) {
		t.Fatalf("unknown name err = %v", err)
	}
	if AddrSelect(0x20).String() != "invalid" {
		t.Fatal("0x20 should not be a valid strap")
	}
}

func TestChannelResolve(t *testing.T) {
	bases := []Register{RegVacc, RegVbus, RegVsense, RegVbusAvg, RegVsenseAvg, RegVpower,
		RegOcLimit, RegUcLimit, RegOpLimit, RegOvLimit, RegUvLimit}
	for _, base := range bases {
		for n := 1; n <= Channels; n++ {
			got, err := base.Channel(n)
			if err != nil || got != base+Register(n-1) {
				t.Fatalf("%s.Channel(%d) = %#x, %v", base, n, uint8(got), err)
			}
		}
		for _, n := range []int{-1, 0, 5} {
			_, err := base.Channel(n)
			if !IsRange(err) || !errors.Is(err, ErrChannel) {
				t.Fatalf("%s.Channel(%d) err = %v", base, n, err)
			}
		}
	}
	if got, _ := Register(0x07).Channel(3); got != 0x09 {
		t.Fatalf("resolve(0x07, 3) = %#x", uint8(got))
	}
}

func TestReadVBusChannel3(t *testing.T) {
	d, c := newTestDevice(t)
	c.set(0x09, 0x12, 0x34)

	v, err := d.ReadVBus(3)
	if err != nil {
		t.Fatalf("ReadVBus: %v", err)
	}
	if v != 0x1234 {
		t.Fatalf("ReadVBus = %#x", uint16(v))
	}
	tx := c.last()
	if tx.addr != uint16(Addr806) || !bytes.Equal(tx.w, []byte{0x09}) || tx.rn != 2 {
		t.Fatalf("tx = %s", pprint.Sdump(tx))
	}
}

func TestInvalidChannelTouchesNoBus(t *testing.T) {
	d, c := newTestDevice(t)
	type check struct {
		name string
		err  error
	}
	var checks []check
	add := func(name string, err error) { checks = append(checks, check{name, err}) }
	_, err := d.ReadVBus(0)
	add("ReadVBus(0)", err)
	_, err = d.ReadVSense(5)
	add("ReadVSense(5)", err)
	_, err = d.ReadVAcc(0)
	add("ReadVAcc(0)", err)
	_, err = d.ReadVPower(5)
	add("ReadVPower(5)", err)
	add("WriteOCLimit(5)", d.WriteOCLimit(5, 1))
	add("WriteOPLimit(0)", d.WriteOPLimit(0, 1))

	for _, ck := range checks {
		if !IsRange(ck.err) || !errors.Is(ck.err, ErrChannel) {
			t.Errorf("%s: err = %v", ck.name, ck.err)
		}
	}
	if n := c.count(); n != 0 {
		t.Fatalf("%d transactions issued", n)
	}
}

func TestFixedAddresses(t *testing.T) {
	d, c := newTestDevice(t)

	if _, err := d.ReadAlertEnable(); err != nil {
		t.Fatalf("ReadAlertEnable: %v", err)
	}
	if tx := c.last(); !bytes.Equal(tx.w, []byte{0x49}) || tx.rn != 3 {
		t.Fatalf("ALERT_ENABLE tx = %s", pprint.Sdump(tx))
	}

	rev, err := d.RevisionID()
	if err != nil || rev != 0x02 {
		t.Fatalf("RevisionID = %#x, %v", rev, err)
	}
	log := c.log[len(c.log)-2:]
	if !bytes.Equal(log[0].w, []byte{0xFF}) || log[0].rn != 0 {
		t.Fatalf("send-byte = %s", pprint.Sdump(log[0]))
	}
	if len(log[1].w) != 0 || log[1].rn != 1 {
		t.Fatalf("receive-byte = %s", pprint.Sdump(log[1]))
	}
}

func TestWriteCtrlBlockWrite(t *testing.T) {
	d, c := newTestDevice(t)
	v := Ctrl{SampleMode: Sample256, GPIOAlert2: PinInput, SlowAlert1: PinOutput, ChannelOff: [4]bool{1: true}}
	if err := d.WriteCtrl(v); err != nil {
		t.Fatalf("WriteCtrl: %v", err)
	}
	if tx := c.last(); !bytes.Equal(tx.w, []byte{0x01, 0x56, 0x40}) || tx.rn != 0 {
		t.Fatalf("tx = %s", pprint.Sdump(tx))
	}
	got, err := d.ReadCtrl()
	if err != nil || got != v {
		t.Fatalf("ReadCtrl = %s, %v", pprint.Sdump(got), err)
	}
}

func TestLimitsSignExtend(t *testing.T) {
	d, _ := newTestDevice(t)
	if err := d.WriteUCLimit(2, -1); err != nil {
		t.Fatalf("WriteUCLimit: %v", err)
	}
	got, err := d.ReadUCLimit(2)
	if err != nil || got != -1 {
		t.Fatalf("ReadUCLimit = %d, %v", got, err)
	}
	if err := d.WriteOPLimit(4, -5000); err != nil {
		t.Fatalf("WriteOPLimit: %v", err)
	}
	op, err := d.ReadOPLimit(4)
	if err != nil || op != -5000 {
		t.Fatalf("ReadOPLimit = %d, %v", op, err)
	}
}

func TestWriteOverflowTouchesNoBus(t *testing.T) {
	d, c := newTestDevice(t)
	err := d.WriteOPLimit(1, 1<<23)
	if !IsRange(err) || !errors.Is(err, ErrOverflow) {
		t.Fatalf("err = %v", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Reg != RegOpLimit || e.Op != "write" || e.Field != "limit" {
		t.Fatalf("error = %s", pprint.Sdump(e))
	}
	if c.count() != 0 {
		t.Fatal("transaction issued for an invalid value")
	}
}

func TestRefreshPromotesImages(t *testing.T) {
	d, c := newTestDevice(t)
	a := Ctrl{SampleMode: Sample64}
	b := Ctrl{SampleMode: Sample8, ChannelOff: [4]bool{3: true}}

	if err := d.WriteCtrl(a); err != nil {
		t.Fatal(err)
	}
	if act, _ := d.ReadCtrlActive(); act != (Ctrl{}) {
		t.Fatalf("active changed before refresh: %s", pprint.Sdump(act))
	}
	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}
	if act, _ := d.ReadCtrlActive(); act != a {
		t.Fatalf("active after refresh = %s", pprint.Sdump(act))
	}

	c.set(RegAccCount, 0, 0, 1, 0)
	c.set(RegVacc+1, 0, 0, 0, 0, 0, 0x10, 0)
	if err := d.WriteCtrl(b); err != nil {
		t.Fatal(err)
	}
	if err := d.RefreshV(); err != nil {
		t.Fatal(err)
	}
	if act, _ := d.ReadCtrlActive(); act != b {
		t.Fatalf("active after refresh_v = %s", pprint.Sdump(act))
	}
	if lat, _ := d.ReadCtrlLatched(); lat != a {
		t.Fatalf("latched after refresh_v = %s", pprint.Sdump(lat))
	}
	if n, _ := d.ReadAccCount(); n != 256 {
		t.Fatalf("refresh_v reset count to %d", n)
	}
	if v, _ := d.ReadVAcc(2); v != 0x1000 {
		t.Fatalf("refresh_v reset VACC2 to %#x", uint64(v))
	}

	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}
	if n, _ := d.ReadAccCount(); n != 0 {
		t.Fatalf("refresh left count %d", n)
	}
	if v, _ := d.ReadVAcc(2); v != 0 {
		t.Fatalf("refresh left VACC2 %#x", uint64(v))
	}
	if tx := c.log[c.count()-3]; !bytes.Equal(tx.w, []byte{0x00}) {
		t.Fatalf("refresh tx = %s", pprint.Sdump(tx))
	}
}

func TestRefreshG(t *testing.T) {
	d, c := newTestDevice(t)
	if err := d.RefreshG(); err != nil {
		t.Fatalf("RefreshG: %v", err)
	}
	tx := c.last()
	if tx.addr != GeneralCallAddress || !bytes.Equal(tx.w, []byte{0x1E}) || tx.rn != 0 {
		t.Fatalf("tx = %s", pprint.Sdump(tx))
	}
	if c.refreshes != 1 {
		t.Fatalf("refreshes = %d", c.refreshes)
	}
}

func TestTransportErrorWrapped(t *testing.T) {
	d, c := newTestDevice(t)
	nack := errors.New("i2c: nack")
	c.failNext = nack

	_, err := d.ReadVBus(3)
	if !IsTransport(err) || !errors.Is(err, nack) {
		t.Fatalf("err = %v", err)
	}
	if got := errcode.Of(err); got != errcode.IOError {
		t.Fatalf("code = %q", got)
	}
	if got, want := err.Error(), "pac194x: read VBUS3: i2c: nack"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	c.failNext = nack
	if err := d.WriteSlow(Slow{RRise: true}); !IsTransport(err) {
		t.Fatalf("write err = %v", err)
	}
}

func TestDecodingErrorFromBus(t *testing.T) {
	d, c := newTestDevice(t)
	c.set(RegCtrlAct, 0xD0, 0x00)

	v, err := d.ReadCtrlActive()
	if !IsDecoding(err) || !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("err = %v", err)
	}
	if v != (Ctrl{}) {
		t.Fatalf("partial value returned: %s", pprint.Sdump(v))
	}
	if got := errcode.Of(err); got != errcode.Decode {
		t.Fatalf("code = %q", got)
	}
	if got, want := err.Error(), "pac194x: read CTRL_ACT.sample_mode: pac194x: invalid enumerated code"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestProductID(t *testing.T) {
	cases := []struct {
		code byte
		want Product
		ch   int
	}{
		{0x68, PAC1941, 1},
		{0x69, PAC1942_1, 2},
		{0x6A, PAC1943, 3},
		{0x6B, PAC1944, 4},
		{0x6C, PAC1941_2, 1},
		{0x6D, PAC1942_2, 2},
	}
	for _, tc := range cases {
		t.Run(tc.want.String(), func(t *testing.T) {
			d, c := newTestDevice(t)
			c.set(RegProductID, tc.code)
			p, err := d.ProductID()
			if err != nil || p != tc.want || p.Channels() != tc.ch {
				t.Fatalf("ProductID = %v (%d ch), %v", p, p.Channels(), err)
			}
		})
	}

	d, c := newTestDevice(t)
	c.set(RegProductID, 0x42)
	if _, err := d.ProductID(); !IsDecoding(err) || !errors.Is(err, ErrUnknownProduct) {
		t.Fatalf("unknown product err = %v", err)
	}
}

func TestCheckIdentity(t *testing.T) {
	d, c := newTestDevice(t)
	p, err := d.CheckIdentity()
	if err != nil || p != PAC1944 {
		t.Fatalf("CheckIdentity = %v, %v", p, err)
	}
	if m, _ := d.ManufacturerID(); m != ManufacturerID {
		t.Fatalf("ManufacturerID = %#x", m)
	}

	c.set(RegManufacturerID, 0x5D)
	if _, err := d.CheckIdentity(); !IsDecoding(err) || !errors.Is(err, ErrManufacturer) {
		t.Fatalf("wrong manufacturer err = %v", err)
	}
}

func TestAlertStatusIsNotCached(t *testing.T) {
	d, c := newTestDevice(t)
	c.set(RegAlertStatus, 0x80, 0x00, 0x04)

	s, err := d.ReadAlertStatus()
	if err != nil || !s.OC[0] || !s.AccCountOverflow || !s.Any() {
		t.Fatalf("first read = %s, %v", pprint.Sdump(s), err)
	}
	s, err = d.ReadAlertStatus()
	if err != nil || s.Any() {
		t.Fatalf("second read = %s, %v", pprint.Sdump(s), err)
	}
}

func TestAlertMasksIndependent(t *testing.T) {
	d, c := newTestDevice(t)
	slow := AlertMask{AlertFlags: AlertFlags{OV: [4]bool{true}}}
	gpio := AlertMask{ConversionComplete: true}
	en := AlertMask{AlertFlags: AlertFlags{OV: [4]bool{true}, AccOverflow: true}, ConversionComplete: true}

	if err := d.WriteSlowAlert1(slow); err != nil {
		t.Fatal(err)
	}
	if err := d.WriteGpioAlert2(gpio); err != nil {
		t.Fatal(err)
	}
	if err := d.WriteAlertEnable(en); err != nil {
		t.Fatal(err)
	}
	if got := c.get(RegAlertEnable); !bytes.Equal(got, []byte{0x00, 0x80, 0x0A}) {
		t.Fatalf("ALERT_ENABLE bytes = % X", got)
	}
	for name, ck := range map[string]struct {
		read func() (AlertMask, error)
		want AlertMask
	}{
		"slow": {d.ReadSlowAlert1, slow},
		"gpio": {d.ReadGpioAlert2, gpio},
		"en":   {d.ReadAlertEnable, en},
	} {
		got, err := ck.read()
		if err != nil || got != ck.want {
			t.Errorf("%s = %s, %v", name, pprint.Sdump(got), err)
		}
	}
}

func TestConfigRegistersRoundTrip(t *testing.T) {
	d, _ := newTestDevice(t)

	fsr := NegPwrFSR{VSense: [4]VSenseFSR{VSenseBipolarHV, VSenseBipolarLV}, VBus: [4]VBusFSR{2: VBusBipolarLV}}
	if err := d.WriteNegPwrFSR(fsr); err != nil {
		t.Fatal(err)
	}
	acc := AccumConfig{Acc: [4]AccumSetting{AccumVSense, AccumVBus, AccumVPower, AccumVBus}}
	if err := d.WriteAccumConfig(acc); err != nil {
		t.Fatal(err)
	}
	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}
	if got, err := d.ReadNegPwrFSRActive(); err != nil || got != fsr {
		t.Fatalf("fsr active = %s, %v", pprint.Sdump(got), err)
	}
	if got, err := d.ReadAccumConfigActive(); err != nil || got != acc {
		t.Fatalf("accum active = %s, %v", pprint.Sdump(got), err)
	}
	if got, err := d.ReadAccumConfigLatched(); err != nil || got != (AccumConfig{}) {
		t.Fatalf("accum latched = %s, %v", pprint.Sdump(got), err)
	}

	lim := AccFullnessLimits{Acc: [4]AccFullness{AccSomewhat, AccFull, AccMostly, AccPartially}, Count: AccSomewhat}
	if err := d.WriteAccFullnessLimits(lim); err != nil {
		t.Fatal(err)
	}
	if got, err := d.ReadAccFullnessLimits(); err != nil || got != lim {
		t.Fatalf("fullness = %s, %v", pprint.Sdump(got), err)
	}

	ns := LimitSamples{Samples4, Samples8, Samples16, Samples1}
	if err := d.WriteUVLimitSamples(ns); err != nil {
		t.Fatal(err)
	}
	if got, err := d.ReadUVLimitSamples(); err != nil || got != ns {
		t.Fatalf("uv samples = %v, %v", got, err)
	}
	if got, err := d.ReadOCLimitSamples(); err != nil || got != (LimitSamples{}) {
		t.Fatalf("oc samples = %v, %v", got, err)
	}

	sm := SmbusSettings{ByteCount: true, NoSkip: true}
	if err := d.WriteSmbusSettings(sm); err != nil {
		t.Fatal(err)
	}
	if got, err := d.ReadSmbusSettings(); err != nil || got != sm {
		t.Fatalf("smbus = %s, %v", pprint.Sdump(got), err)
	}
}

func TestLookup(t *testing.T) {
	in, ok := Lookup(RegAlertEnable)
	if !ok || in.Name != "ALERT_ENABLE" || in.Addr != 0x49 || in.Size != 3 || in.Order != MSB0 {
		t.Fatalf("Lookup(0x49) = %s", pprint.Sdump(in))
	}
	in, ok = Lookup(RegRevisionID)
	if !ok || in.Name != "REVISION_ID" || in.Addr != 0xFF {
		t.Fatalf("Lookup(0xFF) = %s", pprint.Sdump(in))
	}
	in, ok = Lookup(0x0A)
	if !ok || in.Name != "VBUS" || in.Family != Channels {
		t.Fatalf("Lookup(0x0A) = %s", pprint.Sdump(in))
	}
	for _, r := range []Register{0x1B, 0x2A, 0x2F, 0x4C, 0xFC} {
		if _, ok := Lookup(r); ok {
			t.Errorf("Lookup(%#x) found a register", uint8(r))
		}
	}
	names := map[Register]string{0x09: "VBUS3", 0x03: "VACC1", 0x3B: "OP_LIMIT4", 0x1E: "REFRESH_G", 0x2A: "0x2A"}
	for r, want := range names {
		if got := r.String(); got != want {
			t.Errorf("Register(%#x).String() = %q, want %q", uint8(r), got, want)
		}
	}
}
