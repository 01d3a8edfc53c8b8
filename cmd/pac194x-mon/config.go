package main

import (
	"errors"
	"flag"
	"strings"
	"time"

	"periph.io/x/conn/v3/physic"

	"pac194x-go/drivers/pac194x"
)

type refreshMode string

const (
	refreshV     refreshMode = "v"     // REFRESH_V, accumulators keep running
	refreshReset refreshMode = "reset" // REFRESH, accumulators cleared each pass
	refreshG     refreshMode = "g"     // REFRESH_G via general call, all devices at once
)

type config struct {
	bus      string
	addrs    []pac194x.AddrSelect
	speed    physic.Frequency
	interval time.Duration
	settle   time.Duration
	timeout  time.Duration
	count    int
	refresh  refreshMode
	dump     bool
	verbose  bool
}

func parseConfig(fs *flag.FlagSet, args []string) (config, error) {
	c := config{speed: 400 * physic.KiloHertz}
	fs.StringVar(&c.bus, "bus", "", "I2C bus name or number (empty: first bus)")
	fs.Func("addr", "ADDRSEL strap: GND, VDD or resistor ohms, e.g. 806 (repeatable; default GND)", func(s string) error {
		for _, name := range strings.Split(s, ",") {
			sel, err := pac194x.ParseAddrSelect(strings.TrimSpace(name))
			if err != nil {
				return err
			}
			c.addrs = append(c.addrs, sel)
		}
		return nil
	})
	fs.Var(&c.speed, "speed", "bus clock, e.g. 100kHz or 1MHz")
	fs.DurationVar(&c.interval, "interval", time.Second, "time between passes")
	fs.DurationVar(&c.settle, "settle", 2*pac194x.RefreshSettle, "wait after refresh before reading")
	fs.DurationVar(&c.timeout, "timeout", 100*time.Millisecond, "per-transaction bound on the shared bus (0: none)")
	fs.IntVar(&c.count, "count", 0, "passes to run (0: until interrupted)")
	mode := fs.String("refresh", string(refreshV), "refresh before each pass: v, reset or g")
	fs.BoolVar(&c.dump, "dump", false, "dump each snapshot")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return c, err
	}

	c.refresh = refreshMode(*mode)
	switch c.refresh {
	case refreshV, refreshReset, refreshG:
	default:
		return c, errors.New("-refresh must be v, reset or g")
	}
	if c.settle < pac194x.RefreshSettle {
		return c, errors.New("-settle must be at least 1ms")
	}
	if c.count < 0 {
		return c, errors.New("-count must not be negative")
	}
	if len(c.addrs) == 0 {
		c.addrs = []pac194x.AddrSelect{pac194x.AddrGND}
	}
	seen := map[pac194x.AddrSelect]bool{}
	for _, a := range c.addrs {
		if seen[a] {
			return c, errors.New("-addr " + a.String() + " given twice")
		}
		seen[a] = true
	}
	return c, nil
}
