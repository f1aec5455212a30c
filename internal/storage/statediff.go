package storage

import (
	"github.com/starkstore/node/internal/codec"
	nodeerrors "github.com/starkstore/node/pkg/errors"
)

// AppendStateDiff requires state_marker == number and number < header_marker.
// It records the raw diff, strict-inserts each deployed contract's
// DeployedAt/ClassOfContract entries (duplicate address => ContractAlreadyExists),
// inserts every storage write and nonce update at the composite
// (key, number) history key, and advances state_marker.
func AppendStateDiff(ws *WriteScope, number uint64, diff *StateDiff) error {
	tx, err := ws.tx()
	if err != nil {
		return err
	}
	if err := requireMarker(tx, MarkerState, number); err != nil {
		return ws.fail(err)
	}
	headerMarker, err := getMarker(tx, MarkerHeader)
	if err != nil {
		return ws.fail(err)
	}
	if number >= headerMarker {
		return ws.fail(&nodeerrors.MarkerMismatch{Expected: headerMarker, Found: number + 1})
	}

	numKey := codec.EncodeBlockNumber(number)
	if err := tx.Put(TableStateDiffs, numKey, diff.Marshal()); err != nil {
		return ws.fail(&nodeerrors.SubstrateError{Op: "put_state_diff", Err: err})
	}

	for _, dc := range diff.DeployedContracts {
		existed, err := strictPut(tx, TableDeployedAt, dc.Address.Bytes(), numKey)
		if err != nil {
			return ws.fail(&nodeerrors.SubstrateError{Op: "put_deployed_at", Err: err})
		}
		if existed {
			return ws.fail(&nodeerrors.ContractAlreadyExists{ContractAddress: dc.Address})
		}
		if err := tx.Put(TableClassOfContract, dc.Address.Bytes(), dc.ClassHash.Bytes()); err != nil {
			return ws.fail(&nodeerrors.SubstrateError{Op: "put_class_of_contract", Err: err})
		}
	}

	for _, sd := range diff.StorageDiffs {
		for _, entry := range sd.Entries {
			key := codec.StorageHistoryKey(sd.Address, entry.Key, number)
			if err := tx.Put(TableStorageHistory, key, entry.Value.Bytes()); err != nil {
				return ws.fail(&nodeerrors.SubstrateError{Op: "put_storage_history", Err: err})
			}
		}
	}

	for _, n := range diff.Nonces {
		key := codec.NonceKey(n.Address, number)
		if err := tx.Put(TableNonces, key, n.Nonce.Bytes()); err != nil {
			return ws.fail(&nodeerrors.SubstrateError{Op: "put_nonce", Err: err})
		}
	}

	if err := advanceMarker(tx, MarkerState, number+1); err != nil {
		return ws.fail(err)
	}
	return nil
}

// GetStateDiff returns the raw diff recorded at number, or nil if it
// hasn't been appended yet.
func (s *ReadScope) GetStateDiff(number uint64) (*StateDiff, error) {
	tx, err := s.tx()
	if err != nil {
		return nil, err
	}
	v, err := tx.GetOne(TableStateDiffs, codec.EncodeBlockNumber(number))
	if err != nil {
		return nil, &nodeerrors.SubstrateError{Op: "get_state_diff", Err: err}
	}
	if v == nil {
		return nil, nil
	}
	diff, err := UnmarshalStateDiff(v)
	if err != nil {
		return nil, &nodeerrors.CodecError{Table: TableStateDiffs, Err: err}
	}
	return diff, nil
}

// GetStateMarker returns the next expected state-diff block number.
func (s *ReadScope) GetStateMarker() (uint64, error) {
	return s.GetMarker(MarkerState)
}

// GetContractDeployedAt returns the block number a contract was first
// deployed at, ok=false if it has never been deployed.
func (s *ReadScope) GetContractDeployedAt(address Felt) (number uint64, ok bool, err error) {
	tx, err := s.tx()
	if err != nil {
		return 0, false, err
	}
	return getDeployedAt(tx, address)
}

// GetClassHashAt returns the class currently assigned to address, ok=false
// if it has never been deployed.
func (s *ReadScope) GetClassHashAt(address Felt) (classHash Felt, ok bool, err error) {
	tx, err := s.tx()
	if err != nil {
		return ZeroFelt, false, err
	}
	v, err := tx.GetOne(TableClassOfContract, address.Bytes())
	if err != nil {
		return ZeroFelt, false, &nodeerrors.SubstrateError{Op: "get_class_of_contract", Err: err}
	}
	if v == nil {
		return ZeroFelt, false, nil
	}
	ch, err := codec.FeltFromBytes(v)
	if err != nil {
		return ZeroFelt, false, &nodeerrors.CodecError{Table: TableClassOfContract, Err: err}
	}
	return ch, true, nil
}
