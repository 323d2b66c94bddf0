package mint

import (
	"fmt"

	"github.com/justmint/JustMint/log"
	"github.com/justmint/JustMint/params"
	"github.com/justmint/JustMint/solana"
	"github.com/justmint/JustMint/solana/programs/associatedtoken"
	"github.com/justmint/JustMint/solana/programs/metaplex"
	"github.com/justmint/JustMint/solana/programs/system"
	"github.com/justmint/JustMint/solana/programs/token"
	"github.com/justmint/JustMint/solana/types"
)

// MintCost on-chain cost of the mint transaction itself, in lamports
type MintCost struct {
	MintRent     uint64
	MetadataRent uint64
	Donation     uint64
}

// Total sum of all parts
func (c *MintCost) Total() uint64 {
	return c.MintRent + c.MetadataRent + c.Donation
}

var cachedMintCost *MintCost

// EstimateMintCost break down the on-chain lamport cost of minting.
// Rent queries are cached after the first call, rent parameters do not
// change within a session.
func EstimateMintCost(bridge *solana.Bridge) (*MintCost, error) {
	if cachedMintCost != nil {
		return cachedMintCost, nil
	}
	mintRent, err := bridge.GetMinimumBalanceForRentExemption(token.MintAccountSpace)
	if err != nil {
		return nil, fmt.Errorf("get mint rent: %w", err)
	}
	metadataRent, err := bridge.GetMinimumBalanceForRentExemption(metaplex.MetadataAccountSpace)
	if err != nil {
		return nil, fmt.Errorf("get metadata rent: %w", err)
	}
	cost := &MintCost{
		MintRent:     mintRent,
		MetadataRent: metadataRent,
	}
	if donation := params.GetDonationConfig(); donation != nil {
		cost.Donation = donation.Lamports
	}
	cachedMintCost = cost
	return cost, nil
}

// MintNFTInstructions assemble the instruction list minting a one of
// one NFT to the wallet: create and initialize the mint account, create
// the wallet associated token account, create the metadata account,
// mint the single token and create the master edition capping supply.
// An optional donation transfer is appended from config.
func MintNFTInstructions(
	bridge *solana.Bridge,
	walletKey types.PublicKey,
	data metaplex.DataV2,
	maxSupply uint64,
) (mintAccount *types.Account, instructions []types.TransactionInstruction, err error) {
	mintRent, err := bridge.GetMinimumBalanceForRentExemption(token.MintAccountSpace)
	if err != nil {
		return nil, nil, fmt.Errorf("get mint rent: %w", err)
	}

	mintAccount = types.NewAccount()
	mintKey := mintAccount.PublicKey()

	ata, err := types.FindAssociatedTokenAddress(walletKey, mintKey)
	if err != nil {
		return nil, nil, fmt.Errorf("find associated token address: %w", err)
	}
	metadataKey, err := metaplex.FindMetadataAddress(mintKey)
	if err != nil {
		return nil, nil, fmt.Errorf("find metadata address: %w", err)
	}
	editionKey, err := metaplex.FindMasterEditionAddress(mintKey)
	if err != nil {
		return nil, nil, fmt.Errorf("find master edition address: %w", err)
	}

	freezeAuthority := walletKey
	instructions = []types.TransactionInstruction{
		system.NewCreateAccountInstruction(
			mintRent, token.MintAccountSpace, token.TokenProgramID,
			walletKey, mintKey),
		token.NewInitializeMintInstruction(
			0, mintKey, walletKey, &freezeAuthority,
			system.SysvarRentProgramID),
		associatedtoken.NewCreateInstruction(
			walletKey, walletKey, mintKey, ata),
		metaplex.NewCreateMetadataAccountV2Instruction(
			metadataKey, mintKey, walletKey, walletKey, walletKey,
			data, true),
		token.NewMintToInstruction(1, mintKey, ata, walletKey),
		metaplex.NewCreateMasterEditionV3Instruction(
			editionKey, mintKey, walletKey, walletKey, walletKey, metadataKey,
			&maxSupply),
	}

	if donation := params.GetDonationConfig(); donation != nil {
		donationKey, errd := types.PublicKeyFromBase58(donation.Address)
		if errd != nil {
			return nil, nil, fmt.Errorf("wrong donation address '%v': %w", donation.Address, errd)
		}
		instructions = append(instructions,
			system.NewTransferSolanaInstruction(walletKey, donationKey, donation.Lamports))
	}

	log.Info("assembled mint instructions",
		"mint", mintKey.String(),
		"ata", ata.String(),
		"metadata", metadataKey.String(),
		"edition", editionKey.String(),
		"instructions", len(instructions),
	)
	return mintAccount, instructions, nil
}

// BuildMintTransaction compile and sign the mint transaction with the
// wallet as fee payer. Both the wallet and the fresh mint account sign.
func BuildMintTransaction(
	bridge *solana.Bridge,
	wallet, mintAccount *types.Account,
	instructions []types.TransactionInstruction,
) (*types.Transaction, error) {
	blockhashResult, err := bridge.GetLatestBlockhash()
	if err != nil {
		return nil, fmt.Errorf("get latest blockhash: %w", err)
	}
	walletKey := wallet.PublicKey()
	tx, err := types.NewTransaction(instructions, blockhashResult.Value.Blockhash,
		types.TransactionPayer(walletKey))
	if err != nil {
		return nil, fmt.Errorf("build mint transaction: %w", err)
	}
	if _, err = tx.Sign(accountGetter(wallet, mintAccount)); err != nil {
		return nil, fmt.Errorf("sign mint transaction: %w", err)
	}
	return tx, nil
}
