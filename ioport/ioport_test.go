package ioport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoOpReadsZero(t *testing.T) {
	var dev Device = NoOp{}
	assert.Equal(t, byte(0), dev.ReadPort(0x03))
}

func TestNoOpWriteDiscardsSilently(t *testing.T) {
	var dev Device = NoOp{}
	dev.WritePort(0x03, 0xFF) // must not panic
}

func TestBindAdaptsDeviceToFunctionFields(t *testing.T) {
	read, write := Bind(NoOp{})
	assert.Equal(t, byte(0), read(0x10))
	write(0x10, 0xAB) // must not panic
}

type recordingDevice struct {
	reads  []byte
	writes map[byte]byte
}

func (d *recordingDevice) ReadPort(port byte) byte {
	d.reads = append(d.reads, port)
	return port
}

func (d *recordingDevice) WritePort(port byte, value byte) {
	d.writes[port] = value
}

func TestBindPreservesDeviceIdentity(t *testing.T) {
	dev := &recordingDevice{writes: map[byte]byte{}}
	read, write := Bind(dev)

	assert.Equal(t, byte(0x42), read(0x42))
	write(0x02, 0x99)

	assert.Equal(t, []byte{0x42}, dev.reads)
	assert.Equal(t, byte(0x99), dev.writes[0x02])
}
