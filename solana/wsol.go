package solana

import (
	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
)

// NewCreateATAInstruction creates owner's associated token account for mint,
// paid by payer.
func NewCreateATAInstruction(payer, owner, mint solana.PublicKey) solana.Instruction {
	return associatedtokenaccount.NewCreateInstruction(payer, owner, mint).Build()
}

// WsolATA returns owner's wrapped SOL associated token account.
func WsolATA(owner solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, solana.WrappedSol)
	return ata, err
}
