package builtin

import (
	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// The built-in validator code IDs
var VestingActorCodeID cid.Cid

var builtinActors map[cid.Cid]string

func init() {
	builder := cid.V1Builder{Codec: cid.Raw, MhType: mh.IDENTITY}
	makeBuiltin := func(s string) cid.Cid {
		c, err := builder.Sum([]byte(s))
		if err != nil {
			panic(err)
		}
		builtinActors[c] = s
		return c
	}

	builtinActors = make(map[cid.Cid]string)
	VestingActorCodeID = makeBuiltin("fv/1/vesting")
}

// ActorNameByCode returns the (string) name of the validator given a cid code.
// When a code is not a known builtin, a placeholder naming the code is returned.
func ActorNameByCode(code cid.Cid) string {
	if !code.Defined() {
		return "<undefined>"
	}
	name, ok := builtinActors[code]
	if !ok {
		return "<unknown:" + code.String() + ">"
	}
	return name
}
