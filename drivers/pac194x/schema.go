package pac194x

// BitOrder is the bit numbering a register's datasheet layout uses.
// Bytes are always transmitted most significant first.
type BitOrder uint8

const (
	LSB0 BitOrder = iota // bit 0 is the LSB of the last byte
	MSB0                 // bit 0 is the MSB of the first byte
)

func (o BitOrder) String() string {
	if o == MSB0 {
		return "msb0"
	}
	return "lsb0"
}

type fieldKind uint8

const (
	kindPad fieldKind = iota
	kindBool
	kindUint
	kindInt
	kindEnum
)

// field holds a bit range normalised to LSB0 positions within the register
// read as one big-endian integer.
type field struct {
	name   string
	kind   fieldKind
	hi, lo uint8
	codes  uint16 // enum: bit c set when code c is defined
}

func (f *field) width() uint8 { return f.hi - f.lo + 1 }
func (f *field) mask() uint64 { return 1<<f.width() - 1 }
func (f *field) get(raw uint64) uint64 { return raw >> f.lo & f.mask() }

// layout is the bit-exact contract of one register schema.
type layout struct {
	size   int
	order  BitOrder
	fields []field
}

// Field declarations use the register's own numbering: a is the first
// bit named in the datasheet range and b the last, so "15:12" is (15, 12)
// in LSB0 layouts and "0:21" style ranges are (0, 21) in MSB0 layouts.

func pad(a, b uint8) field { return field{kind: kindPad, hi: a, lo: b} }
func boolAt(name string, bit uint8) field { return field{name: name, kind: kindBool, hi: bit, lo: bit} }
func uintAt(name string, a, b uint8) field { return field{name: name, kind: kindUint, hi: a, lo: b} }
func intAt(name string, a, b uint8) field { return field{name: name, kind: kindInt, hi: a, lo: b} }

func enumAt(name string, a, b uint8, codes ...uint8) field {
	f := field{name: name, kind: kindEnum, hi: a, lo: b}
	for _, c := range codes {
		f.codes |= 1 << c
	}
	return f
}

// newLayout normalises the declared ranges and checks that they tile the
// register exactly. A bad table is a programming error and panics at init.
func newLayout(name string, size int, order BitOrder, fields ...field) *layout {
	n := uint8(size * 8)
	var seen uint64
	for i := range fields {
		f := &fields[i]
		if order == MSB0 {
			f.hi, f.lo = n-1-f.hi, n-1-f.lo
		}
		if f.hi < f.lo || f.hi >= n {
			panic("pac194x: " + name + ": bad range for " + f.name)
		}
		m := f.mask() << f.lo
		if seen&m != 0 {
			panic("pac194x: " + name + ": overlapping field " + f.name)
		}
		if f.kind == kindEnum && (f.width() > 4 || f.codes == 0) {
			panic("pac194x: " + name + ": bad enum " + f.name)
		}
		seen |= m
	}
	if seen != 1<<n-1 {
		panic("pac194x: " + name + ": fields do not cover the register")
	}
	return &layout{size: size, order: order, fields: fields}
}

// binder is implemented by every register value type. bind visits the
// fields in declaration order; the same walk serves packing and unpacking.
type binder interface {
	bind(c *codec)
}

type codec struct {
	l   *layout
	raw uint64
	i   int
	enc bool
	err *Error
}

// next returns the next non-pad field, which must be of kind k.
func (c *codec) next(k fieldKind) *field {
	for c.i < len(c.l.fields) {
		f := &c.l.fields[c.i]
		c.i++
		if f.kind == kindPad {
			continue
		}
		if f.kind != k {
			panic("pac194x: field kind mismatch at " + f.name)
		}
		return f
	}
	panic("pac194x: more fields bound than declared")
}

func (c *codec) put(f *field, v uint64) {
	c.raw |= (v & f.mask()) << f.lo
}

func (c *codec) fail(f *field, err error) {
	if c.err != nil {
		return
	}
	k := KindDecoding
	if c.enc {
		k = KindRange
	}
	c.err = &Error{Kind: k, Field: f.name, Err: err}
}

func (c *codec) finish() {
	for ; c.i < len(c.l.fields); c.i++ {
		if c.l.fields[c.i].kind != kindPad {
			panic("pac194x: field " + c.l.fields[c.i].name + " not bound")
		}
	}
}

type unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

type signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

func bindBool(c *codec, p *bool) {
	f := c.next(kindBool)
	if c.enc {
		if *p {
			c.put(f, 1)
		}
		return
	}
	*p = f.get(c.raw) != 0
}

func bindBools(c *codec, p []bool) {
	for i := range p {
		bindBool(c, &p[i])
	}
}

func bindUint[T unsigned](c *codec, p *T) {
	f := c.next(kindUint)
	if c.enc {
		v := uint64(*p)
		if v > f.mask() {
			c.fail(f, ErrOverflow)
			return
		}
		c.put(f, v)
		return
	}
	*p = T(f.get(c.raw))
}

func bindInt[T signed](c *codec, p *T) {
	f := c.next(kindInt)
	w := f.width()
	if c.enc {
		v := int64(*p)
		lim := int64(1) << (w - 1)
		if v < -lim || v >= lim {
			c.fail(f, ErrOverflow)
			return
		}
		c.put(f, uint64(v))
		return
	}
	s := 64 - w
	*p = T(int64(f.get(c.raw)<<s) >> s)
}

func bindEnum[T ~uint8](c *codec, p *T) {
	f := c.next(kindEnum)
	if c.enc {
		v := uint8(*p)
		if v >= 16 || f.codes&(1<<v) == 0 {
			c.fail(f, ErrInvalidCode)
			return
		}
		c.put(f, uint64(v))
		return
	}
	v := f.get(c.raw)
	if f.codes&(1<<v) == 0 {
		c.fail(f, ErrInvalidCode)
		return
	}
	*p = T(v)
}

// encode packs v into dst, which must hold exactly l.size bytes.
func encode(l *layout, v binder, dst []byte) error {
	c := codec{l: l, enc: true}
	v.bind(&c)
	c.finish()
	if c.err != nil {
		return c.err
	}
	for i := l.size - 1; i >= 0; i-- {
		dst[i] = byte(c.raw)
		c.raw >>= 8
	}
	return nil
}

// decode unpacks src, which must hold exactly l.size bytes, into v.
func decode(l *layout, src []byte, v binder) error {
	c := codec{l: l}
	for _, b := range src[:l.size] {
		c.raw = c.raw<<8 | uint64(b)
	}
	v.bind(&c)
	c.finish()
	if c.err != nil {
		return c.err
	}
	return nil
}
