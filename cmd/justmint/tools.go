package main

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/justmint/JustMint/cmd/utils"
	"github.com/mr-tron/base58"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/sha3"
)

var (
	toolsCommand = &cli.Command{
		Name:  "tools",
		Usage: "useful tools",
		Flags: utils.CommonLogFlags,
		Description: `
useful tools
`,
		Subcommands: []*cli.Command{
			{
				Name:      "base58",
				Usage:     "base58 encoding/decoding",
				Action:    base58Codec,
				ArgsUsage: "[message]",
				Flags:     []cli.Flag{messageFlag, isDecodeFlag, isHexFlag},
			},
			{
				Name:      "base64",
				Usage:     "base64 encoding/decoding",
				Action:    base64Codec,
				ArgsUsage: "[message]",
				Flags:     []cli.Flag{messageFlag, isDecodeFlag, isHexFlag, isURLFlag, isRawFlag},
			},
			{
				Name:      "sha256",
				Usage:     "calc sha256 hash",
				Action:    sha256Hash,
				ArgsUsage: "[message]",
				Flags:     []cli.Flag{messageFlag, isHexFlag},
			},
			{
				Name:      "sha3-512",
				Usage:     "calc sha3-512 hash",
				Action:    sha3Hash,
				ArgsUsage: "[message]",
				Flags:     []cli.Flag{messageFlag, isHexFlag},
			},
		},
	}

	messageFlag = &cli.StringFlag{
		Name:    "message",
		Aliases: []string{"m"},
		Usage:   "message text",
	}

	isDecodeFlag = &cli.BoolFlag{
		Name:    "decode",
		Aliases: []string{"d"},
		Usage:   "decode data",
	}

	isHexFlag = &cli.BoolFlag{
		Name:  "hex",
		Usage: "from or to hex string",
	}

	isURLFlag = &cli.BoolFlag{
		Name:  "url",
		Usage: "use URL encoding",
	}

	isRawFlag = &cli.BoolFlag{
		Name:  "raw",
		Usage: "omits padding characters",
	}
)

func getMessage(ctx *cli.Context) (string, error) {
	if ctx.NArg() > 1 {
		return "", fmt.Errorf("has more than one position argument: %v", ctx.Args())
	}
	var message string
	if ctx.NArg() == 1 {
		message = ctx.Args().Get(0) // positional args first
	} else {
		message = ctx.String(messageFlag.Name)
	}
	fmt.Printf("the message is '%v'\n", message)
	return message, nil
}

func fromHex(message string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(message, "0x"))
}

func base58Codec(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	message, err := getMessage(ctx)
	if err != nil {
		return err
	}
	isDecode := ctx.Bool(isDecodeFlag.Name)
	isHex := ctx.Bool(isHexFlag.Name)
	if isDecode {
		data, err := base58.Decode(message)
		if err != nil {
			return fmt.Errorf("base58 decode error: '%v'", err)
		}
		if isHex {
			fmt.Printf("base58 decoding to hex is '0x%v'\n", hex.EncodeToString(data))
		} else {
			fmt.Printf("base58 decoding to text is '%v'\n", string(data))
		}
	} else {
		if isHex {
			data, err := fromHex(message)
			if err != nil {
				return err
			}
			fmt.Printf("base58 encoding from hex is '%v'\n", base58.Encode(data))
		} else {
			fmt.Printf("base58 encoding from text is '%v'\n", base58.Encode([]byte(message)))
		}
	}
	return nil
}

func base64Codec(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	message, err := getMessage(ctx)
	if err != nil {
		return err
	}
	isDecode := ctx.Bool(isDecodeFlag.Name)
	isHex := ctx.Bool(isHexFlag.Name)
	isURL := ctx.Bool(isURLFlag.Name)
	isRaw := ctx.Bool(isRawFlag.Name)
	b64Encoding := base64.StdEncoding
	if isURL {
		if isRaw {
			b64Encoding = base64.RawURLEncoding
		} else {
			b64Encoding = base64.URLEncoding
		}
	} else if isRaw {
		b64Encoding = base64.RawStdEncoding
	}
	if isDecode {
		data, err := b64Encoding.DecodeString(message)
		if err != nil {
			return err
		}
		if isHex {
			fmt.Printf("base64 decoding to hex is '0x%v'\n", hex.EncodeToString(data))
		} else {
			fmt.Printf("base64 decoding to text is '%v'\n", string(data))
		}
	} else {
		if isHex {
			data, err := fromHex(message)
			if err != nil {
				return err
			}
			fmt.Printf("base64 encoding from hex is '%v'\n", b64Encoding.EncodeToString(data))
		} else {
			fmt.Printf("base64 encoding from text is '%v'\n", b64Encoding.EncodeToString([]byte(message)))
		}
	}
	return nil
}

func sha256Hash(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	message, err := getMessage(ctx)
	if err != nil {
		return err
	}
	data := []byte(message)
	if ctx.Bool(isHexFlag.Name) {
		if data, err = fromHex(message); err != nil {
			return err
		}
	}
	calcHash := sha256.Sum256(data)
	fmt.Printf("calc sha256 hash is '0x%v'\n", hex.EncodeToString(calcHash[:]))
	return nil
}

func sha3Hash(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	message, err := getMessage(ctx)
	if err != nil {
		return err
	}
	data := []byte(message)
	if ctx.Bool(isHexFlag.Name) {
		if data, err = fromHex(message); err != nil {
			return err
		}
	}
	calcHash := sha3.Sum512(data)
	fmt.Printf("calc sha3-512 hash is '0x%v'\n", hex.EncodeToString(calcHash[:]))
	return nil
}
