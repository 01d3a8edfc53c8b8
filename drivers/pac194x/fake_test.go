package pac194x

import (
	"errors"
	"sync"
	"testing"

	"github.com/l0nax/go-spew/spew"
	"tinygo.org/x/drivers"
)

var pprint = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

type txn struct {
	addr uint16
	w    []byte
	rn   int
}

// fakeChip is a register file behind drivers.I2C. It models the address
// pointer, the pending/active/latched images, accumulator reset on
// REFRESH and clear-on-read ALERT_STATUS.
type fakeChip struct {
	mu   sync.Mutex
	addr uint16
	regs map[Register][]byte
	ptr  Register
	log  []txn

	failNext  error
	refreshes int
}

var _ drivers.I2C = (*fakeChip)(nil)

func newFakeChip(sel AddrSelect) *fakeChip {
	c := &fakeChip{addr: uint16(sel), regs: map[Register][]byte{}}
	for _, in := range Registers() {
		for i := 0; i < in.Family; i++ {
			if in.Size > 0 {
				c.regs[in.Addr+Register(i)] = make([]byte, in.Size)
			}
		}
	}
	c.regs[RegProductID][0] = byte(PAC1944)
	c.regs[RegManufacturerID][0] = ManufacturerID
	c.regs[RegRevisionID][0] = 0x02
	return c
}

var images = [...][3]Register{
	{RegCtrl, RegCtrlAct, RegCtrlLat},
	{RegNegPwrFsr, RegNegPwrFsrAct, RegNegPwrFsrLat},
	{RegAccumConfig, RegAccumConfigAct, RegAccumConfigLat},
}

func (c *fakeChip) refresh(reset bool) {
	c.refreshes++
	for _, im := range images {
		copy(c.regs[im[2]], c.regs[im[1]])
		copy(c.regs[im[1]], c.regs[im[0]])
	}
	if reset {
		clear(c.regs[RegAccCount])
		for i := 0; i < Channels; i++ {
			clear(c.regs[RegVacc+Register(i)])
		}
	}
}

func (c *fakeChip) set(r Register, b ...byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copy(c.regs[r], b)
}

func (c *fakeChip) get(r Register) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.regs[r]...)
}

func (c *fakeChip) Tx(addr uint16, w, r []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = append(c.log, txn{addr: addr, w: append([]byte(nil), w...), rn: len(r)})
	if err := c.failNext; err != nil {
		c.failNext = nil
		return err
	}
	if addr == GeneralCallAddress {
		if len(w) == 1 && Register(w[0]) == RegRefreshG && len(r) == 0 {
			c.refresh(true)
			return nil
		}
		return errors.New("fake: unexpected general call")
	}
	if addr != c.addr {
		return errors.New("fake: nack")
	}
	switch {
	case len(w) == 0 && len(r) == 1:
		b, ok := c.regs[c.ptr]
		if !ok {
			return errors.New("fake: pointer not readable")
		}
		r[0] = b[0]
		return nil
	case len(w) == 0:
		return errors.New("fake: empty transaction")
	}
	reg := Register(w[0])
	c.ptr = reg
	switch {
	case len(w) == 1 && len(r) == 0:
		switch reg {
		case RegRefresh:
			c.refresh(true)
		case RegRefreshV:
			c.refresh(false)
		}
		return nil
	case len(r) > 0:
		b, ok := c.regs[reg]
		if !ok || len(r) > len(b) {
			return errors.New("fake: bad read")
		}
		copy(r, b)
		if reg == RegAlertStatus {
			clear(b)
		}
		return nil
	default:
		b, ok := c.regs[reg]
		if !ok || len(w)-1 != len(b) {
			return errors.New("fake: bad write")
		}
		copy(b, w[1:])
		return nil
	}
}

func (c *fakeChip) last() txn {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.log) == 0 {
		return txn{}
	}
	return c.log[len(c.log)-1]
}

func (c *fakeChip) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.log)
}

func newTestDevice(t testing.TB) (*Device, *fakeChip) {
	t.Helper()
	c := newFakeChip(Addr806)
	d, err := New(c, Addr806)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d, c
}
