package packet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantPredicates(t *testing.T) {
	cases := []struct {
		name string
		p    Packet
		want Kind
	}{
		{"void", Void(), KindVoid},
		{"bool", Bool(true), KindBool},
		{"ascii", Ascii('x'), KindAscii},
		{"byte", Byte(7), KindByte},
		{"integer", Integer(-42), KindInteger},
		{"float", Float(1.5), KindFloat},
		{"start", StartBracket(), KindStartBracket},
		{"end", EndBracket(), KindEndBracket},
		{"setup", Setup(), KindSetup},
		{"tick", Tick(), KindTick},
		{"invalid", Invalid(), KindInvalid},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, c.p.Kind())
		})
	}
}

func TestIsData(t *testing.T) {
	assert.True(t, Bool(true).IsData())
	assert.True(t, Integer(1).IsData())
	assert.False(t, Setup().IsData())
	assert.False(t, Tick().IsData())
	assert.False(t, Invalid().IsData())
}

func TestIsNumber(t *testing.T) {
	assert.True(t, Byte(1).IsNumber())
	assert.True(t, Integer(1).IsNumber())
	assert.True(t, Float(1).IsNumber())
	assert.False(t, Bool(true).IsNumber())
	assert.False(t, Ascii('a').IsNumber())
}

func TestAccessorsReturnZeroOnMismatch(t *testing.T) {
	p := Bool(true)
	assert.Equal(t, byte(0), p.AsAscii())
	assert.Equal(t, int64(0), p.AsInteger())
	assert.Equal(t, float32(0), p.AsFloat())
}

func TestAccessorsCoerceNumeric(t *testing.T) {
	i := Integer(65)
	assert.Equal(t, byte(65), i.AsByte())
	assert.Equal(t, float32(65), i.AsFloat())

	f := Float(3.0)
	assert.Equal(t, int64(3), f.AsInteger())
	assert.Equal(t, byte(3), f.AsByte())

	b := Byte(9)
	assert.Equal(t, int64(9), b.AsInteger())
	assert.Equal(t, float32(9), b.AsFloat())
}

func TestAsciiDoesNotCoerceFromNumeric(t *testing.T) {
	assert.Equal(t, byte(0), Integer(65).AsAscii())
}

func TestEquality(t *testing.T) {
	assert.True(t, Bool(true).Equal(Bool(true)))
	assert.False(t, Bool(true).Equal(Bool(false)))
	assert.False(t, Integer(1).Equal(Byte(1)), "numeric variants do not auto-convert for equality")
	assert.True(t, Void().Equal(Void()))
}

func TestFloatEqualityIsBitwise(t *testing.T) {
	nan := Float(float32(math.NaN()))
	assert.True(t, nan.Equal(nan), "bitwise comparison makes identical NaN payloads equal")
	assert.True(t, Float(1.5).Equal(Float(1.5)))
	assert.False(t, Float(1.5).Equal(Float(1.6)))
}
