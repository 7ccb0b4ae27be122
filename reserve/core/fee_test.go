package core

import (
	"bytes"
	"math/rand"
	"testing"

	binary "github.com/gagliardetto/binary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixtureCurve = NewLiquidityLinearFee(Rational{Num: 1, Denom: 1000}, Rational{Num: 8, Denom: 100})
	fixturePool  = PoolLiquidity{IncomingReserved: 54_148_843_273, FreeReserves: 409_374_014_407_718}
)

func TestFlatApply(t *testing.T) {
	curve := NewFlatFee(Rational{Num: 1, Denom: 10_000})
	fee, ok := curve.Apply(PoolLiquidity{}, 1_000_000)
	require.True(t, ok)
	assert.Equal(t, uint64(100), fee)

	fee, ok = curve.Apply(PoolLiquidity{}, 1)
	require.True(t, ok)
	assert.Equal(t, uint64(1), fee)

	fee, ok = NewFlatFee(RationalZero).Apply(PoolLiquidity{}, 1_000_000)
	require.True(t, ok)
	assert.Zero(t, fee)
}

func TestFlatReverse(t *testing.T) {
	curve := NewFlatFee(Rational{Num: 1, Denom: 10_000})
	gross, ok := curve.ReverseFromNet(PoolLiquidity{}, 999_900)
	require.True(t, ok)
	assert.Equal(t, uint64(1_000_000), gross)

	_, ok = NewFlatFee(Rational{Num: 1, Denom: 1}).ReverseFromNet(PoolLiquidity{}, 10)
	assert.False(t, ok)
}

func TestLiquidityLinearApplyFixture(t *testing.T) {
	pool := fixturePool
	pool.FreeReserves -= StakeAccountRecordRent

	rate, ok := fixtureCurve.Rate(pool, 1_002_282_880)
	require.True(t, ok)
	assert.Equal(t, "1010641326", rate.Raw().Dec())

	fee, ok := fixtureCurve.Apply(pool, 1_002_282_880)
	require.True(t, ok)
	assert.Equal(t, uint64(1_012_949), fee)
}

func TestLiquidityLinearReverseFixture(t *testing.T) {
	pool := fixturePool
	pool.FreeReserves -= StakeAccountRecordRent

	tests := []struct {
		net   uint64
		gross uint64
	}{
		{1_001_269_931, 1_002_282_880},
		{1_000_000_000, 1_001_011_664},
		{50_000_000_000_000, 50_538_643_400_117},
	}
	for _, tt := range tests {
		gross, ok := fixtureCurve.ReverseFromNet(pool, tt.net)
		require.True(t, ok)
		assert.Equal(t, tt.gross, gross)

		fee, ok := fixtureCurve.Apply(pool, gross)
		require.True(t, ok)
		assert.Equal(t, tt.net, gross-fee)
	}
}

func TestLiquidityLinearEmptyPool(t *testing.T) {
	_, ok := fixtureCurve.Apply(PoolLiquidity{}, 1_000)
	assert.False(t, ok)
	_, ok = fixtureCurve.ReverseFromNet(PoolLiquidity{}, 1_000)
	assert.False(t, ok)
}

func TestLiquidityLinearInvertedBounds(t *testing.T) {
	curve := NewLiquidityLinearFee(Rational{Num: 8, Denom: 100}, Rational{Num: 1, Denom: 1000})
	_, ok := curve.Apply(fixturePool, 1_000)
	assert.False(t, ok)
	assert.Error(t, curve.Validate())
}

func TestLiquidityLinearFlatLimit(t *testing.T) {
	r := Rational{Num: 3, Denom: 1000}
	ll := NewLiquidityLinearFee(r, r)
	flat := NewFlatFee(r)
	for _, amt := range []uint64{1, 999, 1_000_000, 5_000_000_000} {
		want, ok := flat.Apply(fixturePool, amt)
		require.True(t, ok)
		got, ok := ll.Apply(fixturePool, amt)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestLiquidityLinearMonotonic(t *testing.T) {
	pool := PoolLiquidity{FreeReserves: 10_000_000_000_000}
	var prev uint64
	for i, incoming := range []uint64{0, 1_000_000_000, 1_000_000_000_000, 100_000_000_000_000, 400_000_000_000_000} {
		pool.IncomingReserved = incoming
		fee, ok := fixtureCurve.Apply(pool, 1_000_000_000_000)
		require.True(t, ok)
		if i > 0 {
			assert.GreaterOrEqual(t, fee, prev, "incoming %d", incoming)
		}
		prev = fee
	}
	assert.Equal(t, uint64(78_250_776_069), prev)
}

func TestLiquidityLinearMonotonicRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 2_000; i++ {
		denom := rng.Uint64()%9_999 + 2
		zeroNum := rng.Uint64()%(denom-1) + 1
		maxNum := rng.Uint64() % (zeroNum + 1)
		curve := NewLiquidityLinearFee(Rational{Num: maxNum, Denom: denom}, Rational{Num: zeroNum, Denom: denom})

		free := rng.Uint64()%10_000_000_000_000_000 + 1
		amt := rng.Uint64()%free + 1
		hi := rng.Uint64() % 10_000_000_000_000_000
		lo := rng.Uint64() % (hi + 1)

		feeHi, ok := curve.Apply(PoolLiquidity{IncomingReserved: hi, FreeReserves: free}, amt)
		require.True(t, ok)
		feeLo, ok := curve.Apply(PoolLiquidity{IncomingReserved: lo, FreeReserves: free}, amt)
		require.True(t, ok)
		require.LessOrEqual(t, feeLo, feeHi)
	}
}

func TestRoundTripConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5_000; i++ {
		denom := rng.Uint64()%10_000 + 1
		zeroNum := rng.Uint64() % denom
		maxNum := rng.Uint64() % (zeroNum + 1)

		var curve FeeCurve
		if i%2 == 0 {
			curve = NewLiquidityLinearFee(Rational{Num: maxNum, Denom: denom}, Rational{Num: zeroNum, Denom: denom})
		} else {
			curve = NewFlatFee(Rational{Num: zeroNum, Denom: denom})
		}
		pool := PoolLiquidity{
			IncomingReserved: rng.Uint64() % 10_000_000_000_000_000,
			FreeReserves:     rng.Uint64()%10_000_000_000_000_000 + 1,
		}
		amt := rng.Uint64()%pool.FreeReserves + 1

		fee, ok := curve.Apply(pool, amt)
		require.True(t, ok)
		if fee >= amt {
			continue
		}
		net := amt - fee

		reversed, ok := curve.ReverseFromNet(pool, net)
		require.True(t, ok)
		fee2, ok := curve.Apply(pool, reversed)
		require.True(t, ok)
		require.Equal(t, net, reversed-fee2, "curve %+v pool %+v amount %d", curve, pool, amt)
	}
}

func TestFeeCurveValidate(t *testing.T) {
	assert.NoError(t, fixtureCurve.Validate())
	assert.NoError(t, NewFlatFee(RationalZero).Validate())
	assert.NoError(t, NewFlatFee(Rational{Num: 1, Denom: 1}).Validate())
	assert.Error(t, NewFlatFee(Rational{Num: 2, Denom: 1}).Validate())
	assert.Error(t, NewLiquidityLinearFee(Rational{Num: 1, Denom: 10}, Rational{Num: 11, Denom: 10}).Validate())
	assert.Error(t, FeeCurve{Kind: FeeKind(7)}.Validate())
}

func TestFeeCurveBorsh(t *testing.T) {
	for _, curve := range []FeeCurve{fixtureCurve, NewFlatFee(Rational{Num: 1, Denom: 10_000})} {
		buf := new(bytes.Buffer)
		require.NoError(t, curve.MarshalWithEncoder(binary.NewBorshEncoder(buf)))

		var got FeeCurve
		require.NoError(t, got.UnmarshalWithDecoder(binary.NewBorshDecoder(buf.Bytes())))
		assert.Equal(t, curve, got)
	}

	buf := new(bytes.Buffer)
	require.NoError(t, NewFlatFee(Rational{Num: 1, Denom: 10_000}).MarshalWithEncoder(binary.NewBorshEncoder(buf)))
	assert.Equal(t, []byte{0, 1, 0, 0, 0, 0, 0, 0, 0, 0x10, 0x27, 0, 0, 0, 0, 0, 0}, buf.Bytes())

	var bad FeeCurve
	assert.Error(t, bad.UnmarshalWithDecoder(binary.NewBorshDecoder([]byte{2})))
	assert.Error(t, bad.UnmarshalWithDecoder(binary.NewBorshDecoder([]byte{1, 1, 0})))
}
