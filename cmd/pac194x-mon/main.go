// Command pac194x-mon polls one or more PAC194x power monitors sharing a
// Linux I²C bus and logs their raw readings.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/l0nax/go-spew/spew"
	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"pac194x-go/drivers/i2chost"
	"pac194x-go/drivers/i2cshare"
	"pac194x-go/drivers/pac194x"
	"pac194x-go/errcode"
)

var log zerolog.Logger

var pprint = spew.ConfigState{Indent: "\t", SortKeys: true, DisablePointerAddresses: true}

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}
	log = zerolog.New(cw).With().Timestamp().Logger()
}

type monitor struct {
	dev     *pac194x.Device
	h       *i2cshare.Handle
	product pac194x.Product
}

func main() {
	cfg, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("bad flags")
	}
	if cfg.verbose {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	if _, err := host.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load host drivers")
	}
	bus, err := i2creg.Open(cfg.bus)
	if err != nil {
		log.Fatal().Err(err).Str("bus", cfg.bus).Msg("failed to open I2C bus")
	}
	if err := bus.SetSpeed(cfg.speed); err != nil {
		log.Warn().Err(err).Stringer("speed", cfg.speed).Msg("bus speed not applied")
	}
	log.Info().Stringer("bus", bus).Stringer("speed", cfg.speed).Msg("opened I2C bus")

	shared := i2cshare.New(i2chost.Periph(bus), i2cshare.Config{QueueLen: 16, Timeout: cfg.timeout})
	defer shared.Close()

	mons := openMonitors(shared, cfg.addrs)
	defer func() {
		for _, m := range mons {
			m.h.Close()
		}
	}()
	if len(mons) == 0 {
		log.Error().Msg("no PAC194x answered")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	run(ctx, cfg, mons)
}

func openMonitors(shared *i2cshare.Bus, addrs []pac194x.AddrSelect) []monitor {
	var mons []monitor
	for _, sel := range addrs {
		h := shared.Handle()
		dev, err := pac194x.New(h, sel)
		if err != nil {
			h.Close()
			log.Error().Err(err).Str("addrsel", sel.String()).Msg("bad address select")
			continue
		}
		p, err := dev.CheckIdentity()
		if err != nil {
			h.Close()
			log.Error().Err(err).Str("code", string(errcode.Of(err))).
				Str("addrsel", sel.String()).Msg("device did not identify")
			continue
		}
		rev, err := dev.RevisionID()
		if err != nil {
			log.Warn().Err(err).Str("addrsel", sel.String()).Msg("revision read failed")
		}
		log.Info().Str("addrsel", sel.String()).Uint16("addr", dev.Address()).
			Str("product", p.String()).Uint8("rev", rev).Msg("found device")
		mons = append(mons, monitor{dev: dev, h: h, product: p})
	}
	return mons
}

func run(ctx context.Context, cfg config, mons []monitor) {
	tick := time.NewTicker(cfg.interval)
	defer tick.Stop()
	for pass := 1; cfg.count == 0 || pass <= cfg.count; pass++ {
		if err := refresh(cfg.refresh, mons); err != nil {
			log.Error().Err(err).Str("code", string(errcode.Of(err))).Int("pass", pass).Msg("refresh failed")
		} else {
			if !sleep(ctx, cfg.settle) {
				return
			}
			for _, m := range mons {
				sample(m, cfg.dump)
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
	}
}

func refresh(mode refreshMode, mons []monitor) error {
	switch mode {
	case refreshG:
		return mons[0].dev.RefreshG()
	case refreshReset:
		for _, m := range mons {
			if err := m.dev.Refresh(); err != nil {
				return err
			}
		}
	default:
		for _, m := range mons {
			if err := m.dev.RefreshV(); err != nil {
				return err
			}
		}
	}
	return nil
}

func sample(m monitor, dump bool) {
	sel := m.dev.AddrSelect().String()
	s, err := m.dev.Snapshot()
	if err != nil {
		log.Error().Err(err).Str("code", string(errcode.Of(err))).Str("addrsel", sel).Msg("snapshot incomplete")
	}
	log.Debug().Str("addrsel", sel).Stringer("mode", s.Ctrl.SampleMode).Uint32("count", uint32(s.AccCount)).Msg("data set")
	for i := 0; i < m.product.Channels(); i++ {
		if s.Ctrl.ChannelOff[i] {
			continue
		}
		ev := log.Info().Str("addrsel", sel).Int("ch", i+1).
			Uint16("vbus", uint16(s.VBus[i])).
			Uint16("vsense", uint16(s.VSense[i])).
			Uint32("vpower", uint32(s.VPower[i])).
			Uint64("vacc", uint64(s.VAcc[i]))
		vs, vb := bipolar(s.NegPwrFSR, i)
		if vs {
			ev = ev.Int16("vsense_signed", s.VSense[i].Signed())
		}
		if vb {
			ev = ev.Int16("vbus_signed", s.VBus[i].Signed())
		}
		if vs || vb {
			ev = ev.Int32("vpower_signed", s.VPower[i].Signed())
		}
		ev.Msg("sample")
	}
	if dump {
		pprint.Fdump(os.Stdout, s)
	}
}

// bipolar reports which of channel i's readings are two's complement.
// VPOWER is signed when either of them is.
func bipolar(f pac194x.NegPwrFSR, i int) (vsense, vbus bool) {
	return f.VSense[i] != pac194x.VSenseUnipolar, f.VBus[i] != pac194x.VBusUnipolar
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
