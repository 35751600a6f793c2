// Package protocol implements the UECda wire format: the 8x15 table frame
// exchanged between arbiter and clients, the 4-byte response integers, and
// the profile table used during the handshake.
package protocol

// Table geometry. Every frame on the wire is either a full table of
// big-endian u32 cells or a single u32.
const (
	TableRows  = 8
	TableCols  = 15
	tableCells = TableRows * TableCols
	TableBytes = tableCells * 4
)

// Protocol constants shared by arbiter and clients.
const (
	ProtocolVersion       = 20070
	LegacyProtocolVersion = 20060
	DefaultPort           = 42485

	// Response codes sent after a turn submission.
	CodeAccepted = 9
	CodeRejected = 8

	// Game-state codes broadcast at the end of a turn cycle.
	CodeContinue   = 0
	CodeGameEnd    = 1
	CodeSessionEnd = 2
)

// Rows of the table. Rows 0-3 are the card presence matrix indexed by suit.
const (
	RowJoker   = 4
	RowControl = 5
	RowMeta    = 6
)

// Columns of the control row (row 5).
const (
	ColPhase         = 0 // 1 during initial-hand/exchange broadcast
	ColExchangeCount = 1 // cards to exchange; negatives encoded as 100+|n|
	ColYourTurn      = 2
	ColCurrentPlayer = 3
	ColOnset         = 4 // field is empty
	ColElevenBack    = 5
	ColRevolution    = 6
	ColLock          = 7
)

// Table is the canonical 8x15 wire payload, stored as a flat buffer of 120
// cells. The zero value is an all-zero table ready for use.
type Table struct {
	cells [tableCells]uint32
}

// At returns the cell at (row, col).
func (t *Table) At(row, col int) uint32 {
	return t.cells[cellIndex(row, col)]
}

// Set stores v at (row, col). Negative values are clamped to zero, matching
// the legacy C convention for signed fields carried in unsigned cells.
func (t *Table) Set(row, col, v int) {
	if v < 0 {
		v = 0
	}
	t.cells[cellIndex(row, col)] = uint32(v)
}

// Clear zeroes every cell.
func (t *Table) Clear() {
	t.cells = [tableCells]uint32{}
}

// ClearRow zeroes a single row.
func (t *Table) ClearRow(row int) {
	for col := 0; col < TableCols; col++ {
		t.cells[cellIndex(row, col)] = 0
	}
}

// Equal reports whether two tables match cell-for-cell.
func (t *Table) Equal(o *Table) bool {
	return t.cells == o.cells
}

func cellIndex(row, col int) int {
	if row < 0 || row >= TableRows || col < 0 || col >= TableCols {
		panic("protocol: table cell out of range")
	}
	return row*TableCols + col
}
