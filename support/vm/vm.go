package vm

import (
	"context"
	"fmt"
	"sort"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	logging "github.com/ipfs/go-log/v2"
	mh "github.com/multiformats/go-multihash"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/builtin"
	"github.com/https-fairway-global/founder-vesting-smart-contract/actors/runtime"
	"github.com/https-fairway-global/founder-vesting-smart-contract/support/ipld"
)

var log = logging.Logger("vesting-vm")

// ErrScriptRejected is returned, wrapped, when a validator rejects a spend.
var ErrScriptRejected = xerrors.New("script rejected")

// Validator is the code guarding outputs locked at its address.
type Validator interface {
	Code() cid.Cid
	Address() (addr.Address, error)
	Spend(rt runtime.Runtime, redeemer *abi.Redeemer) *abi.EmptyValue
}

// VM is a simplified UTXO ledger for testing validators.
// It has a clock, a set of unspent outputs and a set of deployed validators. It evaluates each
// validator of a transaction in isolation, and applies a transaction only if all accept it.
type VM struct {
	ctx        context.Context
	now        abi.POSIXTime
	utxos      map[abi.OutputRef]abi.TxOut
	validators map[addr.Address]Validator
	txCount    uint64
}

type Option func(*VM) error

// WithTime sets the ledger clock.
func WithTime(t abi.POSIXTime) Option {
	return func(v *VM) error {
		v.now = t
		return nil
	}
}

// WithLogLevel sets the level of the ledger's log, e.g. "debug" or "warn".
func WithLogLevel(level string) Option {
	return func(v *VM) error {
		return logging.SetLogLevel("vesting-vm", level)
	}
}

func NewVM(ctx context.Context, opts ...Option) (*VM, error) {
	v := &VM{
		ctx:        ctx,
		utxos:      make(map[abi.OutputRef]abi.TxOut),
		validators: make(map[addr.Address]Validator),
	}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Input spends an output, supplying the redeemer for the validator guarding it, if any.
type Input struct {
	Ref      abi.OutputRef
	Redeemer *abi.Redeemer
}

// Tx is a transaction as submitted to the ledger.
// Signatures are not modelled: Signatories lists the keys the transaction is taken to be signed by.
type Tx struct {
	Inputs      []Input
	Outputs     []abi.TxOut
	ValidRange  abi.Interval
	Signatories []abi.KeyHash
	// Preimages of hashed datums on spent outputs.
	Datums [][]byte
}

// ScriptResult is the outcome of one validator invocation.
type ScriptResult struct {
	Ref     abi.OutputRef
	Code    exitcode.ExitCode
	Message string
}

type TxResult struct {
	ID      cid.Cid
	Scripts []ScriptResult
}

// Deploy makes the ledger run val for outputs locked at its address.
func (v *VM) Deploy(val Validator) (addr.Address, error) {
	a, err := val.Address()
	if err != nil {
		return addr.Undef, xerrors.Errorf("failed to compute validator address: %w", err)
	}
	if _, found := v.validators[a]; found {
		return addr.Undef, xerrors.Errorf("validator already deployed at %s", a)
	}
	v.validators[a] = val
	log.Debugf("deployed validator %s at %s", builtin.ActorNameByCode(val.Code()), a)
	return a, nil
}

// Fund creates outputs from nothing, as a genesis transaction would.
func (v *VM) Fund(outputs ...abi.TxOut) (cid.Cid, error) {
	id, err := v.nextTxID(nil)
	if err != nil {
		return cid.Undef, err
	}
	for i, out := range outputs {
		v.utxos[abi.OutputRef{TxID: id, Index: uint64(i)}] = out
	}
	log.Debugf("funded %d outputs in %s", len(outputs), id)
	return id, nil
}

func (v *VM) Now() abi.POSIXTime {
	return v.now
}

func (v *VM) SetTime(t abi.POSIXTime) {
	v.now = t
}

// Output returns an unspent output.
func (v *VM) Output(ref abi.OutputRef) (abi.TxOut, bool) {
	out, ok := v.utxos[ref]
	return out, ok
}

// OutputsAt lists the unspent outputs locked at an address, ordered by reference.
func (v *VM) OutputsAt(a addr.Address) []abi.OutputRef {
	var refs []abi.OutputRef
	for ref, out := range v.utxos {
		if out.Address == a {
			refs = append(refs, ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].TxID != refs[j].TxID {
			return refs[i].TxID.KeyString() < refs[j].TxID.KeyString()
		}
		return refs[i].Index < refs[j].Index
	})
	return refs
}

// BalanceAt sums the quantity of asset held by unspent outputs at an address.
func (v *VM) BalanceAt(a addr.Address, asset abi.AssetID) abi.TokenAmount {
	total := big.Zero()
	for _, out := range v.utxos {
		if out.Address == a {
			total = big.Add(total, out.Value.AmountOf(asset))
		}
	}
	return total
}

// ApplyTx validates a transaction and, if every validator it invokes accepts it, replaces the
// outputs it spends with the outputs it creates.
// A rejected transaction has no effect. The returned result lists every validator invocation,
// including those that failed.
func (v *VM) ApplyTx(tx *Tx) (*TxResult, error) {
	if len(tx.Inputs) == 0 {
		return nil, xerrors.Errorf("transaction spends no inputs")
	}
	if !tx.ValidRange.Contains(v.now) {
		return nil, xerrors.Errorf("transaction valid in %s, ledger time is %d", tx.ValidRange, v.now)
	}

	info := &abi.TxInfo{
		Outputs:     tx.Outputs,
		ValidRange:  tx.ValidRange,
		Signatories: tx.Signatories,
	}
	spent := make(map[abi.OutputRef]struct{}, len(tx.Inputs))
	inputValue := abi.Value{}
	for _, in := range tx.Inputs {
		if _, dup := spent[in.Ref]; dup {
			return nil, xerrors.Errorf("input %s spent twice", in.Ref)
		}
		spent[in.Ref] = struct{}{}
		out, found := v.utxos[in.Ref]
		if !found {
			return nil, xerrors.Errorf("input %s is not an unspent output", in.Ref)
		}
		info.Inputs = append(info.Inputs, abi.TxInInfo{OutRef: in.Ref, Output: out})
		inputValue = inputValue.Add(out.Value)
	}

	outputValue := abi.Value{}
	for i, out := range tx.Outputs {
		for _, asset := range out.Value.Assets() {
			if out.Value.AmountOf(asset).LessThan(big.Zero()) {
				return nil, xerrors.Errorf("output %d holds negative quantity of %s", i, asset)
			}
		}
		outputValue = outputValue.Add(out.Value)
	}
	for _, asset := range outputValue.Assets() {
		if outputValue.AmountOf(asset).GreaterThan(inputValue.AmountOf(asset)) {
			return nil, xerrors.Errorf("outputs hold %v of %s, inputs only %v",
				outputValue.AmountOf(asset), asset, inputValue.AmountOf(asset))
		}
	}

	id, err := v.nextTxID(tx.Inputs)
	if err != nil {
		return nil, err
	}
	info.ID = id

	blocks := ipld.NewBlockStoreInMemory()
	for _, d := range tx.Datums {
		if _, err := blocks.PutRaw(d); err != nil {
			return nil, xerrors.Errorf("failed to store datum witness: %w", err)
		}
	}

	result, err := v.runScripts(tx, info, blocks)
	if err != nil {
		return nil, err
	}
	for _, r := range result.Scripts {
		if r.Code != exitcode.Ok {
			log.Infof("transaction %s rejected spending %s: %v %s", id, r.Ref, r.Code, r.Message)
			return result, xerrors.Errorf("spend of %s failed with %v: %s: %w", r.Ref, r.Code, r.Message, ErrScriptRejected)
		}
	}

	for ref := range spent {
		delete(v.utxos, ref)
	}
	for i, out := range tx.Outputs {
		v.utxos[abi.OutputRef{TxID: id, Index: uint64(i)}] = out
	}
	log.Debugf("applied transaction %s spending %d outputs", id, len(tx.Inputs))
	return result, nil
}

// Invokes the validator of every script-locked input concurrently. Each invocation sees the
// same read-only snapshot.
func (v *VM) runScripts(tx *Tx, info *abi.TxInfo, blocks *ipld.BlockStoreInMemory) (*TxResult, error) {
	type job struct {
		val      Validator
		ref      abi.OutputRef
		redeemer *abi.Redeemer
	}
	var jobs []job
	for i, in := range tx.Inputs {
		val, found := v.validators[info.Inputs[i].Output.Address]
		if !found {
			continue
		}
		if in.Redeemer == nil {
			return nil, xerrors.Errorf("input %s is locked by %s but has no redeemer", in.Ref, builtin.ActorNameByCode(val.Code()))
		}
		jobs = append(jobs, job{val, in.Ref, in.Redeemer})
	}

	results := make([]ScriptResult, len(jobs))
	g, ctx := errgroup.WithContext(v.ctx)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			// Skip once another validator has faulted.
			if err := ctx.Err(); err != nil {
				return err
			}
			rt := newInvocationContext(abi.SpendPurpose(j.ref), info, blocks)
			res, err := rt.invoke(j.val, j.redeemer)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &TxResult{ID: info.ID, Scripts: results}, nil
}

// Transaction IDs commit to the spent references and a ledger sequence number, which keeps
// them unique.
func (v *VM) nextTxID(inputs []Input) (cid.Cid, error) {
	v.txCount++
	desc := []string{fmt.Sprintf("tx/%d", v.txCount)}
	for _, in := range inputs {
		desc = append(desc, in.Ref.String())
	}
	node, err := ipldcbor.WrapObject(desc, uint64(mh.BLAKE2B_MIN+31), -1)
	if err != nil {
		return cid.Undef, xerrors.Errorf("failed to compute transaction id: %w", err)
	}
	return node.Cid(), nil
}
