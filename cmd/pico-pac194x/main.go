//go:build rp2040 || rp2350

// Command pico-pac194x prints raw PAC194x readings from a Pico. The chip
// sits on i2c0 at the board-default pins with ADDRSEL tied to GND.
package main

import (
	"machine"
	"time"

	"pac194x-go/drivers/pac194x"
	"pac194x-go/errcode"
)

const (
	strap    = pac194x.AddrGND
	interval = time.Second
)

func main() {
	time.Sleep(2 * time.Second) // let USB serial attach

	bus := machine.I2C0
	_ = bus.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	})

	dev, err := pac194x.New(bus, strap)
	if err != nil {
		fail("new", err)
		return
	}
	for {
		p, err := dev.CheckIdentity()
		if err == nil {
			println("pac194x: found", p.String(), "at", strap.String())
			break
		}
		fail("identify", err)
		time.Sleep(interval)
	}

	for {
		if err := dev.RefreshV(); err != nil {
			fail("refresh", err)
			time.Sleep(interval)
			continue
		}
		time.Sleep(pac194x.RefreshSettle)
		for ch := 1; ch <= pac194x.Channels; ch++ {
			vb, err := dev.ReadVBus(ch)
			if err != nil {
				fail("vbus", err)
				continue
			}
			vs, err := dev.ReadVSense(ch)
			if err != nil {
				fail("vsense", err)
				continue
			}
			println("ch", ch, "vbus", uint16(vb), "vsense", uint16(vs))
		}
		time.Sleep(interval)
	}
}

func fail(what string, err error) {
	println("pac194x:", what, "failed:", string(errcode.Of(err)), err.Error())
}
