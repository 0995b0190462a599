package ipld

import (
	blocks "github.com/ipfs/go-block-format"
	"github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	"golang.org/x/xerrors"

	abi "github.com/https-fairway-global/founder-vesting-smart-contract/actors/abi"
)

// BlockStoreInMemory is an unsynchronized in-memory block store holding datums by their hash.
// Concurrent reads are safe once writes have stopped.
// It can back an ipldcbor.IpldStore, though values read that way ignore any bytes following
// them. GetRaw returns the whole datum.
type BlockStoreInMemory struct {
	data map[cid.Cid]blocks.Block
}

var _ ipldcbor.IpldBlockstore = (*BlockStoreInMemory)(nil)

func NewBlockStoreInMemory() *BlockStoreInMemory {
	return &BlockStoreInMemory{make(map[cid.Cid]blocks.Block)}
}

func (mb *BlockStoreInMemory) Get(c cid.Cid) (blocks.Block, error) {
	d, ok := mb.data[c]
	if ok {
		return d, nil
	}
	return nil, xerrors.Errorf("not found: %s", c)
}

func (mb *BlockStoreInMemory) Put(b blocks.Block) error {
	mb.data[b.Cid()] = b
	return nil
}

func (mb *BlockStoreInMemory) Has(c cid.Cid) bool {
	_, ok := mb.data[c]
	return ok
}

// PutRaw stores already-serialized datum bytes under their datum hash.
func (mb *BlockStoreInMemory) PutRaw(data []byte) (cid.Cid, error) {
	c, err := abi.DatumHashOf(data)
	if err != nil {
		return cid.Undef, err
	}
	b, err := blocks.NewBlockWithCid(data, c)
	if err != nil {
		return cid.Undef, err
	}
	return c, mb.Put(b)
}

// GetRaw returns the serialized datum stored under a datum hash.
func (mb *BlockStoreInMemory) GetRaw(c cid.Cid) ([]byte, bool) {
	b, ok := mb.data[c]
	if !ok {
		return nil, false
	}
	return b.RawData(), true
}

func (mb *BlockStoreInMemory) Len() int {
	return len(mb.data)
}
