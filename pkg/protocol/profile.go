package protocol

// MaxNameLen is the longest player name the profile row can carry while
// staying NUL-terminated within its 15 columns.
const MaxNameLen = 14

// CreateProfileTable builds the handshake frame a client sends on connect:
// protocol version at [0][0], the ASCII display name one byte per column on
// row 1, NUL-terminated.
func CreateProfileTable(version int, name string) *Table {
	var t Table
	t.Set(0, 0, version)
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
	}
	for i := 0; i < len(name); i++ {
		t.Set(1, i, int(name[i]))
	}
	return &t
}

// ParseProfileTable extracts the protocol version and display name from a
// profile frame. The name stops at the first NUL or non-ASCII cell.
func ParseProfileTable(t *Table) (version uint32, name string) {
	version = t.At(0, 0)
	buf := make([]byte, 0, MaxNameLen)
	for col := 0; col < MaxNameLen; col++ {
		c := t.At(1, col)
		if c == 0 || c > 127 {
			break
		}
		buf = append(buf, byte(c))
	}
	return version, string(buf)
}
