package main

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/iov-one/poe/cmd/poed/app"
)

const (
	// frameHeaderSize is the size of the big endian length prefix of
	// every transaction passed between commands.
	frameHeaderSize = 4

	// maxFrameSize bounds the transaction size accepted on input.
	maxFrameSize = 1 << 20
)

// writeTx writes a single length prefixed transaction frame.
func writeTx(w io.Writer, tx *app.Tx) (int, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return 0, err
	}
	frame := make([]byte, frameHeaderSize+len(raw))
	binary.BigEndian.PutUint32(frame, uint32(len(raw)))
	copy(frame[frameHeaderSize:], raw)
	return w.Write(frame)
}

// readTx reads a single frame written by writeTx. io.EOF is returned
// unchanged when the input holds no more frames.
func readTx(r io.Reader) (*app.Tx, int, error) {
	var header [frameHeaderSize]byte
	if n, err := io.ReadFull(r, header[:]); err != nil {
		return nil, n, err
	}
	size := binary.BigEndian.Uint32(header[:])
	if size > maxFrameSize {
		return nil, frameHeaderSize, fmt.Errorf("transaction of %d bytes exceeds %d bytes", size, maxFrameSize)
	}
	raw := make([]byte, size)
	if n, err := io.ReadFull(r, raw); err != nil {
		return nil, frameHeaderSize + n, err
	}
	var tx app.Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, frameHeaderSize + len(raw), err
	}
	return &tx, frameHeaderSize + len(raw), nil
}
