package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/filecoin-project/go-state-types/big"
	"github.com/ipfs/go-cid"
	cbornode "github.com/ipfs/go-ipld-cbor"
	"github.com/multiformats/go-multibase"
	mh "github.com/multiformats/go-multihash"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin/vesting"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/serde"
)

var atFlag = &cli.Int64Flag{
	Name:  "at",
	Usage: "instant, in milliseconds since the Unix epoch, at which to evaluate the schedule",
}

var encodingFlag = &cli.StringFlag{
	Name:    "encoding",
	Usage:   "multibase encoding of printed bytes",
	Value:   "base16",
	EnvVars: []string{"VESTING_ENCODING"},
}

var stateDecodeCmd = &cli.Command{
	Name:        "state",
	ArgsUsage:   "<bytes>",
	Description: "decode a vesting state",
	Flags:       []cli.Flag{atFlag},
	Action:      runDecodeStateCmd,
}

var actionDecodeCmd = &cli.Command{
	Name:        "action",
	ArgsUsage:   "<bytes>",
	Description: "decode a vesting redeemer",
	Action:      runDecodeActionCmd,
}

var vestedCmd = &cli.Command{
	Name:        "vested",
	ArgsUsage:   "<start> <cliff> <end> <total>",
	Description: "compute the vested amount of a schedule",
	Flags:       []cli.Flag{atFlag},
	Action:      runVestedCmd,
}

var addressCmd = &cli.Command{
	Name:        "address",
	ArgsUsage:   "<policy cid> <asset name>",
	Description: "print the address of the vesting validator for an asset",
	Action:      runAddressCmd,
}

var intDecodeCmd = &cli.Command{
	Name:        "int",
	ArgsUsage:   "<bytes>",
	Description: "decode big.Int from bytes",
	Action:      runDecodeIntCmd,
}

var rawDecodeCmd = &cli.Command{
	Name:        "raw",
	ArgsUsage:   "<bytes>",
	Description: "dump any CBOR value as JSON",
	Action:      runDecodeRawCmd,
}

var redeemerCmd = &cli.Command{
	Name:        "redeemer",
	Description: "encode a vesting redeemer",
	Subcommands: []*cli.Command{
		{
			Name:      "claim",
			ArgsUsage: "<amount>",
			Flags:     []cli.Flag{encodingFlag},
			Action:    runEncodeClaimCmd,
		},
		{
			Name:   "refund",
			Flags:  []cli.Flag{encodingFlag},
			Action: runEncodeRefundCmd,
		},
	},
}

func newApp() *cli.App {
	app := &cli.App{
		Name:        "decode",
		Usage:       "Decode vesting data structures",
		Description: "Decode hex or multibase encoded vesting data structures",
		Commands: []*cli.Command{
			stateDecodeCmd,
			actionDecodeCmd,
			vestedCmd,
			addressCmd,
			intDecodeCmd,
			rawDecodeCmd,
			redeemerCmd,
		},
	}
	sort.Sort(cli.CommandsByName(app.Commands))
	for _, c := range app.Commands {
		sort.Sort(cli.FlagsByName(c.Flags))
	}
	return app
}

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Accepts plain hex, or any multibase string.
func decodeInput(s string) ([]byte, error) {
	if b, err := hex.DecodeString(s); err == nil {
		return b, nil
	}
	_, b, err := multibase.Decode(s)
	if err != nil {
		return nil, xerrors.Errorf("input is neither hex nor multibase: %w", err)
	}
	return b, nil
}

func argBytes(ctx *cli.Context) ([]byte, error) {
	if ctx.NArg() != 1 {
		return nil, xerrors.Errorf("expected a single argument, got %d", ctx.NArg())
	}
	return decodeInput(ctx.Args().First())
}

func runDecodeStateCmd(ctx *cli.Context) error {
	b, err := argBytes(ctx)
	if err != nil {
		return err
	}
	var st vesting.State
	if err := serde.Deserialize(b, &st); err != nil {
		return err
	}

	w := ctx.App.Writer
	fmt.Fprintf(w, "owner: %s\n", st.Owner)
	fmt.Fprintf(w, "beneficiary: %s\n", st.Beneficiary)
	fmt.Fprintf(w, "start: %d\ncliff: %d\nend: %d\n", st.StartTime, st.CliffDate, st.EndDate)
	fmt.Fprintf(w, "total: %s\nclaimed: %s\nremaining: %s\n", st.TotalVestingQuantity, st.ClaimedQuantity, st.Remaining())
	if ctx.IsSet(atFlag.Name) {
		now := abi.POSIXTime(ctx.Int64(atFlag.Name))
		fmt.Fprintf(w, "vested: %s\navailable: %s\n", st.VestedAmount(now), st.AvailableToClaim(now))
	}
	_, msgs := vesting.CheckStateInvariants(&st)
	for _, m := range msgs.Messages() {
		fmt.Fprintf(w, "warning: %s\n", m)
	}
	return nil
}

func runDecodeActionCmd(ctx *cli.Context) error {
	b, err := argBytes(ctx)
	if err != nil {
		return err
	}
	var r abi.Redeemer
	if err := serde.Deserialize(b, &r); err != nil {
		return err
	}

	w := ctx.App.Writer
	switch r.Method {
	case builtin.MethodsVesting.Claim:
		var params vesting.ClaimParams
		if err := serde.Deserialize(r.Params, &params); err != nil {
			return xerrors.Errorf("malformed claim params: %w", err)
		}
		fmt.Fprintf(w, "claim %s\n", params.AmountToClaim)
	case builtin.MethodsVesting.Refund:
		fmt.Fprintln(w, "refund")
	default:
		fmt.Fprintf(w, "unknown method %d with %d bytes of params\n", r.Method, len(r.Params))
	}
	return nil
}

func runVestedCmd(ctx *cli.Context) error {
	if ctx.NArg() != 4 {
		return xerrors.Errorf("expected 4 arguments, got %d", ctx.NArg())
	}
	var times [3]abi.POSIXTime
	for i := range times {
		t, err := strconv.ParseInt(ctx.Args().Get(i), 10, 64)
		if err != nil {
			return xerrors.Errorf("bad time %q: %w", ctx.Args().Get(i), err)
		}
		times[i] = abi.POSIXTime(t)
	}
	total, err := big.FromString(ctx.Args().Get(3))
	if err != nil {
		return xerrors.Errorf("bad total %q: %w", ctx.Args().Get(3), err)
	}
	if !ctx.IsSet(atFlag.Name) {
		return xerrors.Errorf("--%s is required", atFlag.Name)
	}

	st := vesting.State{
		StartTime:            times[0],
		CliffDate:            times[1],
		EndDate:              times[2],
		TotalVestingQuantity: total,
		ClaimedQuantity:      big.Zero(),
	}
	fmt.Fprintln(ctx.App.Writer, st.VestedAmount(abi.POSIXTime(ctx.Int64(atFlag.Name))))
	return nil
}

func runAddressCmd(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return xerrors.Errorf("expected 2 arguments, got %d", ctx.NArg())
	}
	policy, err := cid.Decode(ctx.Args().Get(0))
	if err != nil {
		return xerrors.Errorf("bad policy id: %w", err)
	}
	a, err := vesting.NewActor(abi.NewAssetID(policy, ctx.Args().Get(1))).Address()
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, a)
	return nil
}

func runDecodeIntCmd(ctx *cli.Context) error {
	b, err := argBytes(ctx)
	if err != nil {
		return err
	}

	i, err := big.FromBytes(b)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, i)

	return nil
}

func runDecodeRawCmd(ctx *cli.Context) error {
	b, err := argBytes(ctx)
	if err != nil {
		return err
	}
	node, err := cbornode.Decode(b, uint64(mh.BLAKE2B_MIN+31), -1)
	if err != nil {
		return err
	}
	j, err := node.MarshalJSON()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "%s\n%s\n", node.Cid(), j)
	return nil
}

func runEncodeClaimCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return xerrors.Errorf("expected an amount")
	}
	amount, err := big.FromString(ctx.Args().First())
	if err != nil {
		return xerrors.Errorf("bad amount %q: %w", ctx.Args().First(), err)
	}
	return printRedeemer(ctx, vesting.ClaimAction(amount))
}

func runEncodeRefundCmd(ctx *cli.Context) error {
	return printRedeemer(ctx, vesting.RefundAction())
}

func printRedeemer(ctx *cli.Context, r *abi.Redeemer) error {
	buf := new(bytes.Buffer)
	if err := r.MarshalCBOR(buf); err != nil {
		return err
	}
	enc, err := multibase.EncoderByName(ctx.String(encodingFlag.Name))
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, enc.Encode(buf.Bytes()))
	return nil
}
