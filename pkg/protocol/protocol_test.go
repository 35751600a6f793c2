package protocol

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableEncodeDecodeRoundTrip(t *testing.T) {
	var tab Table
	tab.Set(0, 0, 1)
	tab.Set(3, 13, 1)
	tab.Set(RowJoker, 1, 2)
	tab.Set(RowControl, ColExchangeCount, 102)
	tab.Set(RowMeta, 14, 4)

	data := tab.Encode()
	require.Len(t, data, TableBytes)

	got, err := DecodeTable(data)
	require.NoError(t, err)
	assert.True(t, tab.Equal(got))
}

func TestDecodeTableShortFrame(t *testing.T) {
	_, err := DecodeTable(make([]byte, TableBytes-1))
	assert.True(t, errors.Is(err, ErrShortFrame))
}

func TestUint32RoundTrip(t *testing.T) {
	v, err := DecodeUint32(EncodeUint32(20070))
	require.NoError(t, err)
	assert.Equal(t, uint32(20070), v)
}

func TestEncodeUint32ClampsNegative(t *testing.T) {
	v, err := DecodeUint32(EncodeUint32(-5))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), v)
}

func TestReadWriteTable(t *testing.T) {
	var tab Table
	tab.Set(2, 7, 1)
	tab.Set(RowControl, ColYourTurn, 1)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, &tab))
	require.Equal(t, TableBytes, buf.Len())

	got, err := ReadTable(&buf)
	require.NoError(t, err)
	assert.True(t, tab.Equal(got))
}

func TestReadTableTruncated(t *testing.T) {
	buf := bytes.NewBuffer(make([]byte, 100))
	_, err := ReadTable(buf)
	assert.Error(t, err)
}

func TestReadWriteUint32(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUint32(&buf, CodeAccepted))
	v, err := ReadUint32(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(CodeAccepted), v)
}

func TestSetClampsNegative(t *testing.T) {
	var tab Table
	tab.Set(RowControl, ColExchangeCount, -2)
	assert.Equal(t, uint32(0), tab.At(RowControl, ColExchangeCount))
}

func TestClearRow(t *testing.T) {
	var tab Table
	tab.Set(1, 3, 1)
	tab.Set(2, 3, 1)
	tab.ClearRow(1)
	assert.Equal(t, uint32(0), tab.At(1, 3))
	assert.Equal(t, uint32(1), tab.At(2, 3))
}

func TestProfileTableRoundTrip(t *testing.T) {
	tab := CreateProfileTable(ProtocolVersion, "GoBot")
	version, name := ParseProfileTable(tab)
	assert.Equal(t, uint32(ProtocolVersion), version)
	assert.Equal(t, "GoBot", name)
}

func TestProfileTableTruncatesLongName(t *testing.T) {
	tab := CreateProfileTable(ProtocolVersion, "AVeryLongPlayerName")
	_, name := ParseProfileTable(tab)
	assert.Equal(t, MaxNameLen, len(name))
	assert.Equal(t, "AVeryLongPlaye", name)
}

func TestProfileTableStopsAtNonASCII(t *testing.T) {
	tab := CreateProfileTable(ProtocolVersion, "Bot")
	tab.Set(1, 3, 300)
	tab.Set(1, 4, int('X'))
	_, name := ParseProfileTable(tab)
	assert.Equal(t, "Bot", name)
}
