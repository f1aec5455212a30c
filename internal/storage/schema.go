// Package storage implements the transactional block/state storage
// engine: the typed schema, append-only block streams, markers, and
// point-in-time state resolution layered over internal/kv.
//
// # Table Layout
//
//	Headers          : block_number(8) -> BlockHeader
//	BlockHashIndex   : block_hash(32) -> block_number(8)
//	Bodies           : block_number(8) -> Body (ordered transaction list)
//	TxHashIndex      : tx_hash(32) -> block_number(8) + index(8)
//	StateDiffs       : block_number(8) -> StateDiff
//	DeployedAt       : contract_address(32) -> block_number(8)
//	ClassOfContract  : contract_address(32) -> class_hash(32)
//	StorageHistory   : contract_address(32) + storage_key(32) + block_number(8) -> felt(32)
//	Nonces           : contract_address(32) + block_number(8) -> felt(32)
//	Markers          : marker_kind(1) -> block_number(8)
//	DatabaseInfo     : info_key(variable) -> value(variable)
//
// Every key composed of multiple fixed-width fields concatenates them
// big-endian so a byte-lexicographic scan matches the field order above.
package storage

// SchemaVersion identifies the on-disk table layout. Bump it (and add a
// migration) whenever a table's key or value encoding changes shape.
const SchemaVersion = 1

// schemaVersionKey is the DatabaseInfo entry OpenStorage stamps on first
// use and checks against on every later open.
const schemaVersionKey = "schema_version"

// Table names, opened once per environment and reused for its lifetime.
const (
	TableHeaders         = "Headers"
	TableBlockHashIndex  = "BlockHashIndex"
	TableBodies          = "Bodies"
	TableTxHashIndex     = "TxHashIndex"
	TableStateDiffs      = "StateDiffs"
	TableDeployedAt      = "DeployedAt"
	TableClassOfContract = "ClassOfContract"
	TableStorageHistory  = "StorageHistory"
	TableNonces          = "Nonces"
	TableMarkers         = "Markers"
	TableDatabaseInfo    = "DatabaseInfo"
)

// Tables lists every table the schema requires; internal/kv.OpenEnv
// reserves a DBI slot for each.
func Tables() []string {
	return []string{
		TableHeaders,
		TableBlockHashIndex,
		TableBodies,
		TableTxHashIndex,
		TableStateDiffs,
		TableDeployedAt,
		TableClassOfContract,
		TableStorageHistory,
		TableNonces,
		TableMarkers,
		TableDatabaseInfo,
	}
}
