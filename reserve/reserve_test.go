package reserve

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/igneous-labs/sanctum-reserve-sdk/reserve/core"
	solanago "github.com/igneous-labs/sanctum-reserve-sdk/solana"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var (
	poolFixtures = []string{"pool", "fee", "protocol-fee", "pool-sol-reserves"}
	allFixtures  = append(append([]string(nil), poolFixtures...), "stake-account", "stake-account-record")

	testStake    = solana.MustPublicKeyFromBase58("1111111ogCyDbaRMvkdsHB3qfdyFYaG1WtRUAfdh")
	testRecord   = solana.MustPublicKeyFromBase58("DezYH4eCSsdWXSRWh2CrTg5NZtmL2h6FtRzrxVRqgYs1")
	testUnstaker = solana.MustPublicKeyFromBase58("pay1VHNPtXwQkSypEfranUVn2ToxmqqNkbYoyeHVQXj")

	fixtureQuote = core.Quote{
		GrossAmount:   1_002_282_880,
		NetToRedeemer: 1_001_269_931,
		Fee:           core.QuoteFee{PoolShare: 506_474, ProtocolShare: 506_475},
	}
)

func systemAccountJSON(lamports uint64) string {
	return fmt.Sprintf(`{"lamports":%d,"data":["","base64"],"owner":"11111111111111111111111111111111","executable":false,"rentEpoch":0,"space":0}`, lamports)
}

func wsolAccountJSON(owner solana.PublicKey, state solanago.AccountState) string {
	data := make([]byte, solanago.TokenAccountSize)
	copy(data[0:], solana.WrappedSol[:])
	copy(data[32:], owner[:])
	binary.LittleEndian.PutUint64(data[64:], 5_000)
	data[108] = byte(state)
	binary.LittleEndian.PutUint32(data[109:], 1)
	binary.LittleEndian.PutUint64(data[113:], 2_039_280)
	return fmt.Sprintf(`{"lamports":2044280,"data":[%q,"base64"],"owner":%q,"executable":false,"rentEpoch":0,"space":165}`,
		base64.StdEncoding.EncodeToString(data), solana.TokenProgramID)
}

func TestFetchPoolState(t *testing.T) {
	mock, client := newMockRPC(t, poolFixtures...)
	r := NewReserve(client)

	state, err := r.FetchPoolState(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(42), state.Slot)
	assert.Equal(t, core.MainnetPoolAccounts(), state.Accounts)
	assert.Equal(t, core.PoolLiquidity{IncomingReserved: 54_148_843_273, FreeReserves: 409_374_014_407_718}, state.Liquidity())
	assert.Equal(t, core.NewLiquidityLinearFee(core.Rational{Num: 1, Denom: 1000}, core.Rational{Num: 8, Denom: 100}), state.Fee.Fee)
	assert.Equal(t, core.MainnetProtocolFeeVault, state.ProtocolFee.Destination)
	assert.Equal(t, []string{"getMultipleAccounts"}, mock.calls())
}

func TestFetchPoolStateErrors(t *testing.T) {
	mock, client := newMockRPC(t, poolFixtures...)
	r := NewReserve(client)

	mock.remove(core.MainnetFee.String())
	_, err := r.FetchPoolState(context.Background())
	assert.ErrorContains(t, err, "not found")

	mock.set(core.MainnetFee.String(), systemAccountJSON(1))
	_, err = r.FetchPoolState(context.Background())
	assert.ErrorContains(t, err, "owned by")

	// an unfunded reserves account is an empty pool
	_, client = newMockRPC(t, "pool", "fee", "protocol-fee")
	state, err := NewReserve(client).FetchPoolState(context.Background())
	require.NoError(t, err)
	assert.Zero(t, state.SolReserves)
}

func TestUnstakeQuote(t *testing.T) {
	mock, client := newMockRPC(t, allFixtures...)
	r := NewReserve(client)

	result, stake, err := r.UnstakeQuote(context.Background(), testStake, false)
	require.NoError(t, err)
	assert.Equal(t, fixtureQuote, result.Quote)
	assert.Equal(t, &StakeAccount{
		Address:        testStake,
		Lamports:       1_002_282_880,
		Record:         testRecord,
		RecordLamports: core.StakeAccountRecordRent,
	}, stake)
	assert.Equal(t, []string{"getMultipleAccounts"}, mock.calls())

	result, _, err = r.UnstakeQuote(context.Background(), testStake, true)
	require.NoError(t, err)
	assert.Equal(t, core.QuoteFee{PoolShare: 506_474, ProtocolShare: 253_237, ReferrerShare: 253_238}, result.Quote.Fee)

	// without a record the rent comes out of reserves first
	mock.remove(testRecord.String())
	result, stake, err = r.UnstakeQuote(context.Background(), testStake, false)
	require.NoError(t, err)
	assert.Zero(t, stake.RecordLamports)
	assert.Equal(t, fixtureQuote, result.Quote)
}

func TestUnstakeQuoteStakeErrors(t *testing.T) {
	mock, client := newMockRPC(t, allFixtures...)
	r := NewReserve(client)

	mock.set(testStake.String(), systemAccountJSON(1_000_000_000))
	_, _, err := r.UnstakeQuote(context.Background(), testStake, false)
	assert.ErrorIs(t, err, ErrNotStakeAccount)

	mock.remove(testStake.String())
	_, _, err = r.UnstakeQuote(context.Background(), testStake, false)
	assert.ErrorIs(t, err, ErrStakeAccountNotFound)
}

func TestUnstakeQuoteForLamports(t *testing.T) {
	mock, client := newMockRPC(t, poolFixtures...)
	r := NewReserve(client)

	result, err := r.UnstakeQuoteForLamports(context.Background(), 1_000_000_000, false)
	require.NoError(t, err)
	assert.Equal(t, core.Quote{
		GrossAmount:   1_000_000_000,
		NetToRedeemer: 998_989_359,
		Fee:           core.QuoteFee{PoolShare: 505_320, ProtocolShare: 505_321},
	}, result.Quote)

	result, err = r.UnstakeQuoteForLamports(context.Background(), 1_000_000_000, true)
	require.NoError(t, err)
	assert.Equal(t, core.QuoteFee{PoolShare: 505_320, ProtocolShare: 252_660, ReferrerShare: 252_661}, result.Quote.Fee)

	mock.set(core.MainnetPoolSolReserves.String(), systemAccountJSON(1_000))
	_, err = r.UnstakeQuoteForLamports(context.Background(), 1_000_000_000, false)
	assert.ErrorIs(t, err, core.ErrNotEnoughLiquidity)
}

func TestUnstakeQuoteForNet(t *testing.T) {
	_, client := newMockRPC(t, poolFixtures...)
	r := NewReserve(client)

	result, err := r.UnstakeQuoteForNet(context.Background(), 1_000_000_000, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000_000), result.Quote.NetToRedeemer)
	assert.Equal(t, uint64(1_001_011_664), result.Quote.GrossAmount)
}

func TestWithEscrowRent(t *testing.T) {
	_, client := newMockRPC(t, poolFixtures...)
	r := NewReserve(client, WithEscrowRent(409_374_014_407_718))
	assert.Equal(t, uint64(409_374_014_407_718), r.Engine().EscrowRent)

	_, err := r.UnstakeQuoteForLamports(context.Background(), 1_000_000_000, false)
	assert.ErrorIs(t, err, core.ErrNotEnoughLiquidity)
}

func TestQuoteLogging(t *testing.T) {
	_, client := newMockRPC(t, poolFixtures...)
	var buf bytes.Buffer
	r := NewReserve(client, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	_, err := r.UnstakeQuoteForLamports(context.Background(), 1_000_000_000, false)
	require.NoError(t, err)

	line := gjson.ParseBytes(bytes.TrimSpace(buf.Bytes()))
	assert.Equal(t, "reserve:"+core.MainnetPool.String(), line.Get("service").String())
	assert.Equal(t, "debug", line.Get("level").String())
	assert.Equal(t, "lamports", line.Get("kind").String())
	assert.Equal(t, uint64(998_989_359), line.Get("net").Uint())

	buf.Reset()
	_, err = r.UnstakeQuoteForLamports(context.Background(), 500_000_000_000_000, false)
	require.ErrorIs(t, err, core.ErrNotEnoughLiquidity)
	assert.Equal(t, "warn", gjson.GetBytes(buf.Bytes(), "level").String())
}

func TestFetchStakeAccountRecords(t *testing.T) {
	_, client := newMockRPC(t, allFixtures...)
	records, err := NewReserve(client).FetchStakeAccountRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, uint64(4_570_380), records[testRecord].LamportsAtCreation)
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixtureQuote)
	assert.Equal(t, "1.00228288", s.GrossSol.String())
	assert.Equal(t, "1.001269931", s.NetSol.String())
	assert.Equal(t, "0.001012949", s.FeeSol.String())
	assert.Equal(t, "0.000506475", s.ProtocolFee.String())
	assert.Equal(t, "0", s.ReferrerFee.String())
	assert.Equal(t, "10.1064", s.FeeBps.String())
}
