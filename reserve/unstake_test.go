package reserve

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/igneous-labs/sanctum-reserve-sdk/reserve/core"
	solanago "github.com/igneous-labs/sanctum-reserve-sdk/solana"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnstakeInstruction(t *testing.T) {
	_, client := newMockRPC(t, allFixtures...)
	r := NewReserve(client)

	ix, result, err := r.UnstakeInstruction(context.Background(), testUnstaker, testStake, testUnstaker, nil)
	require.NoError(t, err)
	assert.Equal(t, fixtureQuote, result.Quote)
	assert.Equal(t, core.ProgramID, ix.ProgramID())

	want := core.UnstakeAccounts{
		Unstaker:           testUnstaker,
		Stake:              testStake,
		Destination:        testUnstaker,
		StakeAccountRecord: testRecord,
	}.WithMainnetConstPdas().WithConsts()
	metas := ix.Accounts()
	require.Len(t, metas, 12)
	for i, key := range want.Keys() {
		assert.Equal(t, key, metas[i].PublicKey, "account %d", i)
	}

	referrer := solana.MustPublicKeyFromBase58("3etKXcW2fzEJR5YXoSKSmP6UZ633g9uiFv5yuqFUf66k")
	ix, result, err = r.UnstakeInstruction(context.Background(), testUnstaker, testStake, testUnstaker, &referrer)
	require.NoError(t, err)
	assert.NotZero(t, result.Quote.Fee.ReferrerShare)
	require.Len(t, ix.Accounts(), 13)
	assert.Equal(t, referrer, ix.Accounts()[12].PublicKey)
}

func TestUnstakeWsolInstructions(t *testing.T) {
	mock, client := newMockRPC(t, allFixtures...)
	r := NewReserve(client)
	ata, err := solanago.WsolATA(testUnstaker)
	require.NoError(t, err)

	ixs, _, err := r.UnstakeWsolInstructions(context.Background(), testUnstaker, testStake, nil)
	require.NoError(t, err)
	require.Len(t, ixs, 2)
	assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, ixs[0].ProgramID())
	assert.Equal(t, core.ProgramID, ixs[1].ProgramID())
	metas := ixs[1].Accounts()
	require.Len(t, metas, 13)
	assert.Equal(t, ata, metas[2].PublicKey)
	assert.Equal(t, solana.TokenProgramID, metas[12].PublicKey)

	mock.set(ata.String(), wsolAccountJSON(testUnstaker, solanago.AccountStateInitialized))
	ixs, _, err = r.UnstakeWsolInstructions(context.Background(), testUnstaker, testStake, nil)
	require.NoError(t, err)
	require.Len(t, ixs, 1)
	assert.Equal(t, ata, ixs[0].Accounts()[2].PublicKey)

	mock.set(ata.String(), wsolAccountJSON(testUnstaker, solanago.AccountStateFrozen))
	_, _, err = r.UnstakeWsolInstructions(context.Background(), testUnstaker, testStake, nil)
	assert.ErrorContains(t, err, "cannot receive")
}
