package core

import (
	"bytes"
	"errors"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var ErrInvalidDiscriminator = errors.New("invalid anchor account discriminator")

type Pool struct {
	// FeeAuthority may update the fee account.
	FeeAuthority solana.PublicKey
	LpMint       solana.PublicKey
	// IncomingStake is the last known total of lamports in stake accounts
	// owned by the pool that have not been reclaimed yet.
	IncomingStake uint64
	// StakeAccountRecordRentLamports is the rent locked in outstanding
	// StakeAccountRecords.
	StakeAccountRecordRentLamports uint64
}

// Liquidity pairs the pool with the lamport balance of its SOL reserves.
func (p Pool) Liquidity(solReservesLamports uint64) PoolLiquidity {
	return PoolLiquidity{
		IncomingReserved: p.IncomingStake,
		FreeReserves:     solReservesLamports,
	}
}

type Fee struct {
	Fee FeeCurve
}

type ProtocolFee struct {
	// Destination receives the protocol's share of fees.
	Destination solana.PublicKey
	Authority   solana.PublicKey
	// FeeRatio is the proportion of unstake fees that goes to the protocol.
	FeeRatio Rational
	// ReferrerFeeRatio is the proportion of the protocol fee that goes to
	// the referrer.
	ReferrerFeeRatio Rational
}

func (p ProtocolFee) SplitRatios() FeeSplitRatios {
	return FeeSplitRatios{Protocol: p.FeeRatio, Referrer: p.ReferrerFeeRatio}
}

type StakeAccountRecord struct {
	// LamportsAtCreation is the stake account's total lamports at unstake.
	LamportsAtCreation uint64
}

type FlashAccount struct {
	LamportsBorrowed uint64
}

type FlashLoanFee struct {
	FeeRatio Rational
}

func readDiscriminator(decoder *binary.Decoder, want [8]byte) error {
	got, err := decoder.ReadTypeID()
	if err != nil {
		return err
	}
	if !got.Equal(want[:]) {
		return fmt.Errorf("%w: wanted %v, got %v", ErrInvalidDiscriminator, want, got[:])
	}
	return nil
}

func (obj Pool) MarshalWithEncoder(encoder *binary.Encoder) error {
	if _, err := encoder.Write(PoolDiscriminator[:]); err != nil {
		return err
	}
	if err := encoder.Encode(obj.FeeAuthority); err != nil {
		return err
	}
	if err := encoder.Encode(obj.LpMint); err != nil {
		return err
	}
	if err := encoder.WriteUint64(obj.IncomingStake, binary.LE); err != nil {
		return err
	}
	return encoder.WriteUint64(obj.StakeAccountRecordRentLamports, binary.LE)
}

func (obj *Pool) UnmarshalWithDecoder(decoder *binary.Decoder) (err error) {
	if err = readDiscriminator(decoder, PoolDiscriminator); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.FeeAuthority); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.LpMint); err != nil {
		return err
	}
	if obj.IncomingStake, err = decoder.ReadUint64(binary.LE); err != nil {
		return err
	}
	obj.StakeAccountRecordRentLamports, err = decoder.ReadUint64(binary.LE)
	return err
}

func (obj Fee) MarshalWithEncoder(encoder *binary.Encoder) error {
	if _, err := encoder.Write(FeeDiscriminator[:]); err != nil {
		return err
	}
	return obj.Fee.MarshalWithEncoder(encoder)
}

func (obj *Fee) UnmarshalWithDecoder(decoder *binary.Decoder) error {
	if err := readDiscriminator(decoder, FeeDiscriminator); err != nil {
		return err
	}
	return obj.Fee.UnmarshalWithDecoder(decoder)
}

func (obj ProtocolFee) MarshalWithEncoder(encoder *binary.Encoder) error {
	if _, err := encoder.Write(ProtocolFeeDiscriminator[:]); err != nil {
		return err
	}
	for _, v := range []any{obj.Destination, obj.Authority, obj.FeeRatio, obj.ReferrerFeeRatio} {
		if err := encoder.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

func (obj *ProtocolFee) UnmarshalWithDecoder(decoder *binary.Decoder) error {
	if err := readDiscriminator(decoder, ProtocolFeeDiscriminator); err != nil {
		return err
	}
	for _, v := range []any{&obj.Destination, &obj.Authority, &obj.FeeRatio, &obj.ReferrerFeeRatio} {
		if err := decoder.Decode(v); err != nil {
			return err
		}
	}
	return nil
}

func (obj StakeAccountRecord) MarshalWithEncoder(encoder *binary.Encoder) error {
	if _, err := encoder.Write(StakeAccountRecordDiscriminator[:]); err != nil {
		return err
	}
	return encoder.WriteUint64(obj.LamportsAtCreation, binary.LE)
}

func (obj *StakeAccountRecord) UnmarshalWithDecoder(decoder *binary.Decoder) (err error) {
	if err = readDiscriminator(decoder, StakeAccountRecordDiscriminator); err != nil {
		return err
	}
	obj.LamportsAtCreation, err = decoder.ReadUint64(binary.LE)
	return err
}

func (obj FlashAccount) MarshalWithEncoder(encoder *binary.Encoder) error {
	if _, err := encoder.Write(FlashAccountDiscriminator[:]); err != nil {
		return err
	}
	return encoder.WriteUint64(obj.LamportsBorrowed, binary.LE)
}

func (obj *FlashAccount) UnmarshalWithDecoder(decoder *binary.Decoder) (err error) {
	if err = readDiscriminator(decoder, FlashAccountDiscriminator); err != nil {
		return err
	}
	obj.LamportsBorrowed, err = decoder.ReadUint64(binary.LE)
	return err
}

func (obj FlashLoanFee) MarshalWithEncoder(encoder *binary.Encoder) error {
	if _, err := encoder.Write(FlashLoanFeeDiscriminator[:]); err != nil {
		return err
	}
	return encoder.Encode(obj.FeeRatio)
}

func (obj *FlashLoanFee) UnmarshalWithDecoder(decoder *binary.Decoder) error {
	if err := readDiscriminator(decoder, FlashLoanFeeDiscriminator); err != nil {
		return err
	}
	return decoder.Decode(&obj.FeeRatio)
}

// Account is implemented by every anchor account of the unstake program.
type Account interface {
	binary.BinaryMarshaler
}

// Encode serializes an account with its discriminator.
func Encode(account Account) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := account.MarshalWithEncoder(binary.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode[T any, PT interface {
	*T
	binary.BinaryUnmarshaler
}](data []byte) (*T, error) {
	out := PT(new(T))
	if err := out.UnmarshalWithDecoder(binary.NewBorshDecoder(data)); err != nil {
		return nil, err
	}
	return (*T)(out), nil
}

func DecodePool(data []byte) (*Pool, error) {
	return decode[Pool](data)
}

func DecodeFee(data []byte) (*Fee, error) {
	return decode[Fee](data)
}

func DecodeProtocolFee(data []byte) (*ProtocolFee, error) {
	return decode[ProtocolFee](data)
}

func DecodeStakeAccountRecord(data []byte) (*StakeAccountRecord, error) {
	return decode[StakeAccountRecord](data)
}

func DecodeFlashAccount(data []byte) (*FlashAccount, error) {
	return decode[FlashAccount](data)
}

func DecodeFlashLoanFee(data []byte) (*FlashLoanFee, error) {
	return decode[FlashLoanFee](data)
}
