package storage

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/starkstore/node/internal/codec"
)

// Felt re-exports codec.Felt so callers of this package never need to
// import internal/codec directly for the common case.
type Felt = codec.Felt

// ZeroFelt is the felt value used as the absent/default result of a
// point-in-time lookup that found no write at or before the target block.
var ZeroFelt = codec.ZeroFelt

// BlockIDKind selects how a BlockID names a block.
type BlockIDKind uint8

const (
	BlockIDLatest BlockIDKind = iota
	BlockIDNumber
	BlockIDHash
)

// BlockID names a block the way an RPC caller does: the latest committed
// block, a specific number, or a specific hash.
type BlockID struct {
	Kind   BlockIDKind
	Number uint64
	Hash   Felt
}

// Latest returns a BlockID referring to the most recently committed block.
func Latest() BlockID { return BlockID{Kind: BlockIDLatest} }

// ByNumber returns a BlockID referring to a specific block number.
func ByNumber(n uint64) BlockID { return BlockID{Kind: BlockIDNumber, Number: n} }

// ByHash returns a BlockID referring to a specific block hash.
func ByHash(h Felt) BlockID { return BlockID{Kind: BlockIDHash, Hash: h} }

// MarkerKind names a per-stream append cursor.
type MarkerKind uint8

const (
	MarkerHeader MarkerKind = iota
	MarkerBody
	MarkerState
	MarkerCompiledClass
	MarkerBaseLayer
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerHeader:
		return "header"
	case MarkerBody:
		return "body"
	case MarkerState:
		return "state"
	case MarkerCompiledClass:
		return "compiled_class"
	case MarkerBaseLayer:
		return "base_layer"
	default:
		return fmt.Sprintf("marker(%d)", uint8(k))
	}
}

// BlockHeader is the per-block header record stored in Headers.
type BlockHeader struct {
	BlockHash  Felt
	ParentHash Felt
	Number     uint64
	Sequencer  Felt
	Timestamp  uint64
	StateRoot  Felt
}

const (
	fieldHeaderBlockHash protowire.Number = iota + 1
	fieldHeaderParentHash
	fieldHeaderNumber
	fieldHeaderSequencer
	fieldHeaderTimestamp
	fieldHeaderStateRoot
)

// Marshal encodes h using the self-describing value format.
func (h *BlockHeader) Marshal() []byte {
	w := codec.NewValueWriter()
	w.AppendFelt(fieldHeaderBlockHash, h.BlockHash)
	w.AppendFelt(fieldHeaderParentHash, h.ParentHash)
	w.AppendUint64(fieldHeaderNumber, h.Number)
	w.AppendFelt(fieldHeaderSequencer, h.Sequencer)
	w.AppendUint64(fieldHeaderTimestamp, h.Timestamp)
	w.AppendFelt(fieldHeaderStateRoot, h.StateRoot)
	return w.Bytes()
}

// UnmarshalBlockHeader decodes a BlockHeader, skipping any field number it
// doesn't recognize (forward compatibility with a future writer).
func UnmarshalBlockHeader(b []byte) (*BlockHeader, error) {
	r := codec.NewValueReader(b)
	h := &BlockHeader{}
	for !r.Done() {
		num, _, err := r.Next()
		if err != nil {
			return nil, err
		}
		switch num {
		case fieldHeaderBlockHash:
			h.BlockHash, err = r.ConsumeFelt()
		case fieldHeaderParentHash:
			h.ParentHash, err = r.ConsumeFelt()
		case fieldHeaderNumber:
			h.Number, err = r.ConsumeUint64()
		case fieldHeaderSequencer:
			h.Sequencer, err = r.ConsumeFelt()
		case fieldHeaderTimestamp:
			h.Timestamp, err = r.ConsumeUint64()
		case fieldHeaderStateRoot:
			h.StateRoot, err = r.ConsumeFelt()
		default:
			err = r.Skip()
		}
		if err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Transaction is a single transaction within a block body.
type Transaction struct {
	Hash          Felt
	SenderAddress Felt
	Calldata      []Felt
}

const (
	fieldTxHash protowire.Number = iota + 1
	fieldTxSender
	fieldTxCalldataEntry
)

func (t *Transaction) marshalInto(w *codec.ValueWriter) {
	w.AppendFelt(fieldTxHash, t.Hash)
	w.AppendFelt(fieldTxSender, t.SenderAddress)
	for _, c := range t.Calldata {
		w.AppendFelt(fieldTxCalldataEntry, c)
	}
}

func unmarshalTransaction(b []byte) (*Transaction, error) {
	r := codec.NewValueReader(b)
	t := &Transaction{}
	for !r.Done() {
		num, _, err := r.Next()
		if err != nil {
			return nil, err
		}
		switch num {
		case fieldTxHash:
			t.Hash, err = r.ConsumeFelt()
		case fieldTxSender:
			t.SenderAddress, err = r.ConsumeFelt()
		case fieldTxCalldataEntry:
			var c Felt
			c, err = r.ConsumeFelt()
			if err == nil {
				t.Calldata = append(t.Calldata, c)
			}
		default:
			err = r.Skip()
		}
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Body is the ordered transaction list for one block.
type Body struct {
	Transactions []Transaction
}

const fieldBodyTxEntry protowire.Number = 1

// Marshal encodes the body as a sequence of nested transaction messages.
func (b *Body) Marshal() []byte {
	w := codec.NewValueWriter()
	for i := range b.Transactions {
		sub := codec.NewValueWriter()
		b.Transactions[i].marshalInto(sub)
		w.AppendMessage(fieldBodyTxEntry, sub)
	}
	return w.Bytes()
}

// UnmarshalBody decodes a Body.
func UnmarshalBody(data []byte) (*Body, error) {
	r := codec.NewValueReader(data)
	body := &Body{}
	for !r.Done() {
		num, _, err := r.Next()
		if err != nil {
			return nil, err
		}
		switch num {
		case fieldBodyTxEntry:
			var raw []byte
			raw, err = r.ConsumeBytes()
			if err != nil {
				return nil, err
			}
			tx, terr := unmarshalTransaction(raw)
			if terr != nil {
				return nil, terr
			}
			body.Transactions = append(body.Transactions, *tx)
		default:
			err = r.Skip()
		}
		if err != nil {
			return nil, err
		}
	}
	return body, nil
}

// DeployedContract is one contract deployment in a state diff.
type DeployedContract struct {
	Address   Felt
	ClassHash Felt
}

// StorageEntry is one (key, value) write within a StorageDiff.
type StorageEntry struct {
	Key   Felt
	Value Felt
}

// StorageDiff is the set of storage writes for one contract in a block.
type StorageDiff struct {
	Address Felt
	Entries []StorageEntry
}

// NonceUpdate is one contract's nonce change in a state diff.
type NonceUpdate struct {
	Address Felt
	Nonce   Felt
}

// StateDiff is the full per-block state delta.
type StateDiff struct {
	DeployedContracts []DeployedContract
	StorageDiffs      []StorageDiff
	DeclaredClasses   []Felt
	Nonces            []NonceUpdate
}

const (
	fieldDiffDeployedEntry protowire.Number = iota + 1
	fieldDiffStorageEntry
	fieldDiffDeclaredClassEntry
	fieldDiffNonceEntry

	fieldDeployedAddress protowire.Number = iota + 10
	fieldDeployedClassHash

	fieldStorageDiffAddress protowire.Number = iota + 20
	fieldStorageDiffEntry

	fieldStorageEntryKey protowire.Number = iota + 30
	fieldStorageEntryValue

	fieldNonceAddress protowire.Number = iota + 40
	fieldNonceValue
)

// Marshal encodes the state diff as nested sub-messages per section.
func (d *StateDiff) Marshal() []byte {
	w := codec.NewValueWriter()
	for _, dep := range d.DeployedContracts {
		sub := codec.NewValueWriter()
		sub.AppendFelt(fieldDeployedAddress, dep.Address)
		sub.AppendFelt(fieldDeployedClassHash, dep.ClassHash)
		w.AppendMessage(fieldDiffDeployedEntry, sub)
	}
	for _, sd := range d.StorageDiffs {
		sub := codec.NewValueWriter()
		sub.AppendFelt(fieldStorageDiffAddress, sd.Address)
		for _, e := range sd.Entries {
			esub := codec.NewValueWriter()
			esub.AppendFelt(fieldStorageEntryKey, e.Key)
			esub.AppendFelt(fieldStorageEntryValue, e.Value)
			sub.AppendMessage(fieldStorageDiffEntry, esub)
		}
		w.AppendMessage(fieldDiffStorageEntry, sub)
	}
	for _, c := range d.DeclaredClasses {
		w.AppendFelt(fieldDiffDeclaredClassEntry, c)
	}
	for _, n := range d.Nonces {
		sub := codec.NewValueWriter()
		sub.AppendFelt(fieldNonceAddress, n.Address)
		sub.AppendFelt(fieldNonceValue, n.Nonce)
		w.AppendMessage(fieldDiffNonceEntry, sub)
	}
	return w.Bytes()
}

// UnmarshalStateDiff decodes a StateDiff.
func UnmarshalStateDiff(data []byte) (*StateDiff, error) {
	r := codec.NewValueReader(data)
	d := &StateDiff{}
	for !r.Done() {
		num, _, err := r.Next()
		if err != nil {
			return nil, err
		}
		switch num {
		case fieldDiffDeployedEntry:
			raw, rerr := r.ConsumeBytes()
			if rerr != nil {
				return nil, rerr
			}
			dep, derr := unmarshalDeployedContract(raw)
			if derr != nil {
				return nil, derr
			}
			d.DeployedContracts = append(d.DeployedContracts, *dep)
		case fieldDiffStorageEntry:
			raw, rerr := r.ConsumeBytes()
			if rerr != nil {
				return nil, rerr
			}
			sd, serr := unmarshalStorageDiff(raw)
			if serr != nil {
				return nil, serr
			}
			d.StorageDiffs = append(d.StorageDiffs, *sd)
		case fieldDiffDeclaredClassEntry:
			var c Felt
			c, err = r.ConsumeFelt()
			if err == nil {
				d.DeclaredClasses = append(d.DeclaredClasses, c)
			}
		case fieldDiffNonceEntry:
			raw, rerr := r.ConsumeBytes()
			if rerr != nil {
				return nil, rerr
			}
			n, nerr := unmarshalNonceUpdate(raw)
			if nerr != nil {
				return nil, nerr
			}
			d.Nonces = append(d.Nonces, *n)
		default:
			err = r.Skip()
		}
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

func unmarshalDeployedContract(b []byte) (*DeployedContract, error) {
	r := codec.NewValueReader(b)
	dep := &DeployedContract{}
	for !r.Done() {
		num, _, err := r.Next()
		if err != nil {
			return nil, err
		}
		switch num {
		case fieldDeployedAddress:
			dep.Address, err = r.ConsumeFelt()
		case fieldDeployedClassHash:
			dep.ClassHash, err = r.ConsumeFelt()
		default:
			err = r.Skip()
		}
		if err != nil {
			return nil, err
		}
	}
	return dep, nil
}

func unmarshalStorageDiff(b []byte) (*StorageDiff, error) {
	r := codec.NewValueReader(b)
	sd := &StorageDiff{}
	for !r.Done() {
		num, _, err := r.Next()
		if err != nil {
			return nil, err
		}
		switch num {
		case fieldStorageDiffAddress:
			sd.Address, err = r.ConsumeFelt()
		case fieldStorageDiffEntry:
			var raw []byte
			raw, err = r.ConsumeBytes()
			if err == nil {
				var e *StorageEntry
				e, err = unmarshalStorageEntry(raw)
				if err == nil {
					sd.Entries = append(sd.Entries, *e)
				}
			}
		default:
			err = r.Skip()
		}
		if err != nil {
			return nil, err
		}
	}
	return sd, nil
}

func unmarshalStorageEntry(b []byte) (*StorageEntry, error) {
	r := codec.NewValueReader(b)
	e := &StorageEntry{}
	for !r.Done() {
		num, _, err := r.Next()
		if err != nil {
			return nil, err
		}
		switch num {
		case fieldStorageEntryKey:
			e.Key, err = r.ConsumeFelt()
		case fieldStorageEntryValue:
			e.Value, err = r.ConsumeFelt()
		default:
			err = r.Skip()
		}
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

func unmarshalNonceUpdate(b []byte) (*NonceUpdate, error) {
	r := codec.NewValueReader(b)
	n := &NonceUpdate{}
	for !r.Done() {
		num, _, err := r.Next()
		if err != nil {
			return nil, err
		}
		switch num {
		case fieldNonceAddress:
			n.Address, err = r.ConsumeFelt()
		case fieldNonceValue:
			n.Nonce, err = r.ConsumeFelt()
		default:
			err = r.Skip()
		}
		if err != nil {
			return nil, err
		}
	}
	return n, nil
}
