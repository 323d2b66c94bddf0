package main

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/justmint/JustMint/bundlr"
	"github.com/justmint/JustMint/cmd/utils"
	"github.com/justmint/JustMint/log"
	"github.com/justmint/JustMint/mint"
	"github.com/justmint/JustMint/params"
	"github.com/justmint/JustMint/solana"
	"github.com/justmint/JustMint/solana/types"
	"github.com/urfave/cli/v2"
)

var (
	assetFlag = &cli.StringSliceFlag{
		Name:    "asset",
		Aliases: []string{"a"},
		Usage:   "asset file to upload, first one is the cover (can repeat)",
	}
	nameFlag = &cli.StringFlag{
		Name:  "name",
		Usage: "NFT name",
	}
	descriptionFlag = &cli.StringFlag{
		Name:  "description",
		Usage: "NFT description",
	}
	externalURLFlag = &cli.StringFlag{
		Name:  "external-url",
		Usage: "external url of the NFT metadata",
	}
	attributeFlag = &cli.StringSliceFlag{
		Name:  "attribute",
		Usage: "display attribute in 'trait=value' form (can repeat)",
	}
	sellerFeeFlag = &cli.Uint64Flag{
		Name:  "seller-fee-basis-points",
		Usage: "royalty in basis points, eg. 500 is 5%",
	}
	creatorFlag = &cli.StringSliceFlag{
		Name:  "creator",
		Usage: "extra creator in 'address:share' form (can repeat)",
	}
	maxEditionsFlag = &cli.Uint64Flag{
		Name:  "max-editions",
		Usage: "cap of printable editions, 0 is a one of one",
	}
	lamportsFlag = &cli.Uint64Flag{
		Name:  "lamports",
		Usage: "amount in lamports",
	}
	recoverFlag = &cli.StringFlag{
		Name:  "recover",
		Usage: "report an already finalized funding tx hash to the node",
	}

	mintFlags = []cli.Flag{
		assetFlag,
		nameFlag,
		descriptionFlag,
		externalURLFlag,
		attributeFlag,
		sellerFeeFlag,
		creatorFlag,
		maxEditionsFlag,
	}

	commonFlags = []cli.Flag{
		utils.DataDirFlag,
		utils.ConfigFileFlag,
		utils.VerbosityFlag,
		utils.JSONFormatFlag,
		utils.ColorFormatFlag,
	}

	estimateCommand = &cli.Command{
		Name:   "estimate",
		Usage:  "estimate the upload price of the given assets",
		Action: estimateAction,
		Flags:  append(append([]cli.Flag{}, commonFlags...), mintFlags...),
	}
	fundCommand = &cli.Command{
		Name:   "fund",
		Usage:  "fund the bundlr node balance from the wallet",
		Action: fundAction,
		Flags:  append(append([]cli.Flag{}, commonFlags...), append(mintFlags, lamportsFlag, recoverFlag)...),
	}
	uploadCommand = &cli.Command{
		Name:   "upload",
		Usage:  "upload assets, metadata and path manifest without minting",
		Action: uploadAction,
		Flags:  append(append([]cli.Flag{}, commonFlags...), mintFlags...),
	}
	signerCommand = &cli.Command{
		Name:   "signer",
		Usage:  "derive and print the upload signer of the wallet",
		Action: signerAction,
		Flags:  commonFlags,
	}
	balanceCommand = &cli.Command{
		Name:   "balance",
		Usage:  "print wallet and bundlr node balances",
		Action: balanceAction,
		Flags:  commonFlags,
	}
	airdropCommand = &cli.Command{
		Name:   "airdrop",
		Usage:  "request a devnet airdrop to the wallet",
		Action: airdropAction,
		Flags:  append(append([]cli.Flag{}, commonFlags...), lamportsFlag),
	}
)

type mintContext struct {
	bridge  *solana.Bridge
	client  *bundlr.Client
	wallet  *types.Account
	session *mint.Session
}

func setup(ctx *cli.Context) (*mintContext, error) {
	utils.SetLogger(ctx)
	configFile := utils.GetConfigFilePath(ctx)
	params.LoadMintConfig(configFile)
	params.SetDataDir(utils.GetDataDir(ctx))

	wallet, err := types.AccountFromKeygenFile(params.GetWalletConfig().KeygenFile)
	if err != nil {
		return nil, fmt.Errorf("load wallet: %w", err)
	}

	session, err := mint.LoadSession(params.GetDataDir())
	if err != nil {
		return nil, err
	}
	if err = applyMintFlags(ctx, session); err != nil {
		return nil, err
	}

	return &mintContext{
		bridge:  solana.NewBridge(params.GetGatewayConfig()),
		client:  bundlr.NewClient(params.GetBundlrConfig()),
		wallet:  wallet,
		session: session,
	}, nil
}

func applyMintFlags(ctx *cli.Context, session *mint.Session) error {
	if ctx.IsSet(nameFlag.Name) {
		session.Name = ctx.String(nameFlag.Name)
	}
	if ctx.IsSet(descriptionFlag.Name) {
		session.Description = ctx.String(descriptionFlag.Name)
	}
	if ctx.IsSet(externalURLFlag.Name) {
		session.ExternalURL = ctx.String(externalURLFlag.Name)
	}
	if ctx.IsSet(sellerFeeFlag.Name) {
		sellerFee := ctx.Uint64(sellerFeeFlag.Name)
		if sellerFee > 10000 {
			return fmt.Errorf("seller fee basis points %v exceeds 10000", sellerFee)
		}
		session.SellerFeeBasisPoints = uint16(sellerFee)
	}
	if ctx.IsSet(maxEditionsFlag.Name) {
		session.MaxEditions = ctx.Uint64(maxEditionsFlag.Name)
	}
	if ctx.IsSet(attributeFlag.Name) {
		session.Attributes = nil
		for _, attr := range ctx.StringSlice(attributeFlag.Name) {
			trait, value, found := strings.Cut(attr, "=")
			if !found {
				return fmt.Errorf("wrong attribute '%v', want 'trait=value'", attr)
			}
			session.Attributes = append(session.Attributes, mint.Attribute{
				TraitType: trait,
				Value:     value,
			})
		}
	}
	if ctx.IsSet(creatorFlag.Name) {
		session.Creators = nil
		for _, creator := range ctx.StringSlice(creatorFlag.Name) {
			address, share, found := strings.Cut(creator, ":")
			if !found {
				return fmt.Errorf("wrong creator '%v', want 'address:share'", creator)
			}
			session.Creators = append(session.Creators, mint.Creator{
				Address: address,
				Share:   share,
			})
		}
	}
	for _, file := range ctx.StringSlice(assetFlag.Name) {
		asset, err := mint.LoadAsset(file)
		if err != nil {
			return err
		}
		session.Assets = append(session.Assets, asset)
	}
	if err := session.Save(); err != nil {
		return err
	}
	return nil
}

func mintAction(ctx *cli.Context) error {
	if ctx.NArg() > 0 {
		return fmt.Errorf("invalid command: %q", ctx.Args().Get(0))
	}
	mc, err := setup(ctx)
	if err != nil {
		return err
	}
	flow := mint.NewFlow(mc.bridge, mc.client, mc.wallet, mc.session)
	flow.OnProgress = func(state mint.State, detail string) {
		fmt.Printf("[%v] %v\n", state, detail)
	}
	result, err := flow.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Println("mint succeeded")
	fmt.Println("mint:", result.Mint)
	fmt.Println("txHash:", result.TxHash)
	fmt.Println("metadata:", result.MetadataLink)
	return nil
}

func estimateAction(ctx *cli.Context) error {
	mc, err := setup(ctx)
	if err != nil {
		return err
	}
	price, err := mc.session.EstimatePrice(mc.client)
	if err != nil {
		return err
	}
	fmt.Printf("price estimate: %v SOL (%v lamports)\n", mint.FormatSol(price), price.String())

	signer, err := mc.session.OnWalletConnected(mc.wallet)
	if err != nil {
		return err
	}
	signerKey := signer.PublicKey()
	balance, err := mc.client.GetBalance(signerKey.String())
	if err != nil {
		return err
	}
	fmt.Printf("bundlr balance: %v SOL (%v lamports)\n", mint.FormatSol(balance), balance.String())
	if balance.Cmp(price) < 0 {
		deficit := new(big.Int).Sub(price, balance)
		fmt.Printf("fund at least: %v lamports\n", mint.ApplyFundMultiplier(deficit).String())
	}

	cost, err := mint.EstimateMintCost(mc.bridge)
	if err != nil {
		return err
	}
	total := new(big.Int).SetUint64(cost.Total())
	fmt.Printf("mint cost: %v SOL (mint rent %v, metadata rent %v, donation %v)\n",
		mint.FormatSol(total), cost.MintRent, cost.MetadataRent, cost.Donation)
	return nil
}

func fundAction(ctx *cli.Context) error {
	mc, err := setup(ctx)
	if err != nil {
		return err
	}
	if ctx.IsSet(recoverFlag.Name) {
		flow := mint.NewFlow(mc.bridge, mc.client, mc.wallet, mc.session)
		if err = flow.RecoverFunding(ctx.String(recoverFlag.Name)); err != nil {
			return err
		}
		fmt.Println("funding transaction reported")
		return nil
	}
	signer, err := mc.session.OnWalletConnected(mc.wallet)
	if err != nil {
		return err
	}

	var amount *big.Int
	if ctx.IsSet(lamportsFlag.Name) {
		amount = new(big.Int).SetUint64(ctx.Uint64(lamportsFlag.Name))
	} else {
		price, errp := mc.session.EstimatePrice(mc.client)
		if errp != nil {
			return errp
		}
		signerKey := signer.PublicKey()
		balance, errb := mc.client.GetBalance(signerKey.String())
		if errb != nil {
			return errb
		}
		if balance.Cmp(price) >= 0 {
			fmt.Println("bundlr balance already covers the price estimate")
			return nil
		}
		amount = mint.ApplyFundMultiplier(new(big.Int).Sub(price, balance))
	}

	err = mc.session.FundBundlr(context.Background(), mc.bridge, mc.client, mc.wallet, signer, amount)
	if err != nil {
		return err
	}
	fmt.Printf("funded %v lamports\n", amount.String())
	return nil
}

func uploadAction(ctx *cli.Context) error {
	mc, err := setup(ctx)
	if err != nil {
		return err
	}
	signer, err := mc.session.OnWalletConnected(mc.wallet)
	if err != nil {
		return err
	}
	metadataLink, err := mc.session.BundlrUpload(mc.client, signer)
	if err != nil {
		return err
	}
	for _, record := range mc.session.Uploaded {
		fmt.Printf("uploaded %v: %v\n", record.Name, mc.client.ItemURL(record.Arweave))
	}
	fmt.Println("metadata:", metadataLink)
	return nil
}

func signerAction(ctx *cli.Context) error {
	mc, err := setup(ctx)
	if err != nil {
		return err
	}
	signer, err := mc.session.OnWalletConnected(mc.wallet)
	if err != nil {
		return err
	}
	walletKey := mc.wallet.PublicKey()
	signerKey := signer.PublicKey()
	fmt.Println("wallet:", walletKey.String())
	fmt.Println("signer:", signerKey.String())
	return nil
}

func balanceAction(ctx *cli.Context) error {
	mc, err := setup(ctx)
	if err != nil {
		return err
	}
	walletKey := mc.wallet.PublicKey()
	walletBalance, err := mc.bridge.GetBalance(walletKey.String())
	if err != nil {
		return err
	}
	fmt.Printf("wallet balance: %v SOL\n", mint.FormatSol(walletBalance))

	signer, err := mc.session.OnWalletConnected(mc.wallet)
	if err != nil {
		return err
	}
	signerKey := signer.PublicKey()
	nodeBalance, err := mc.client.GetBalance(signerKey.String())
	if err != nil {
		return err
	}
	fmt.Printf("bundlr balance: %v SOL\n", mint.FormatSol(nodeBalance))
	return nil
}

func airdropAction(ctx *cli.Context) error {
	mc, err := setup(ctx)
	if err != nil {
		return err
	}
	if !ctx.IsSet(lamportsFlag.Name) {
		return fmt.Errorf("must specify '--%v'", lamportsFlag.Name)
	}
	walletKey := mc.wallet.PublicKey()
	txHash, err := mc.bridge.AirDrop(walletKey.String(), ctx.Uint64(lamportsFlag.Name))
	if err != nil {
		return err
	}
	log.Info("airdrop requested", "txHash", txHash)
	return mc.bridge.AwaitConfirmation(context.Background(), txHash, types.CommitmentConfirmed)
}
