// Package i2chost adapts Linux host I²C stacks to tinygo.org/x/drivers.I2C
// so the same device drivers run on a Pico and on a single-board computer.
package i2chost

import (
	"errors"
	"io"

	"github.com/kidoman/embd"
	"periph.io/x/conn/v3/i2c"
	"tinygo.org/x/drivers"
)

var (
	ErrUnsupportedTx = errors.New("i2chost: transaction shape not supported by bus")
	ErrAddress       = errors.New("i2chost: address does not fit 7 bits")
	ErrShortRead     = errors.New("i2chost: short read")
)

// Periph wraps a periph.io bus, which already speaks Tx(addr, w, r).
// Close is forwarded when the bus is an i2c.BusCloser.
func Periph(b i2c.Bus) drivers.I2C { return &periphBus{b: b} }

type periphBus struct{ b i2c.Bus }

func (p *periphBus) Tx(addr uint16, w, r []byte) error { return p.b.Tx(addr, w, r) }

func (p *periphBus) Close() error {
	if c, ok := p.b.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (p *periphBus) String() string { return p.b.String() }

// Embd wraps a kidoman/embd bus. embd has no combined write-then-read
// beyond a one-byte register address, so only these shapes are accepted:
// write-only, read-only, and a single address byte followed by a read.
// Each maps onto one embd call.
func Embd(b embd.I2CBus) drivers.I2C { return &embdBus{b: b} }

type embdBus struct{ b embd.I2CBus }

func (e *embdBus) Tx(addr uint16, w, r []byte) error {
	if addr > 0x7F {
		return ErrAddress
	}
	a := byte(addr)
	switch {
	case len(w) > 0 && len(r) == 0:
		return e.b.WriteBytes(a, w)
	case len(w) == 0 && len(r) > 0:
		v, err := e.b.ReadBytes(a, len(r))
		if err != nil {
			return err
		}
		if copy(r, v) < len(r) {
			return ErrShortRead
		}
		return nil
	case len(w) == 1 && len(r) > 0:
		return e.b.ReadFromReg(a, w[0], r)
	}
	return ErrUnsupportedTx
}

func (e *embdBus) Close() error { return e.b.Close() }
