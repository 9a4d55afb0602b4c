package net

import (
	"errors"
	"io"
	"sync"
)

// ErrTransportShutdown is returned when operations on a transport are invoked
// after it's been terminated.
var ErrTransportShutdown = errors.New("transport shutdown")

// InmemTransport implements the Transport interface, to allow nodes to be
// tested in-memory without real streams. Lines are queued with Deliver, and
// CloseInput marks the end of input.
type InmemTransport struct {
	sync.RWMutex
	inCh     chan []byte
	sent     [][]byte
	shutdown bool
}

// NewInmemTransport returns a transport whose input queue holds up to bufSize
// undelivered lines.
func NewInmemTransport(bufSize int) *InmemTransport {
	return &InmemTransport{
		inCh: make(chan []byte, bufSize),
	}
}

// NewInmemTransportFromLines returns a transport that will yield lines, then
// io.EOF.
func NewInmemTransportFromLines(lines ...string) *InmemTransport {
	trans := NewInmemTransport(len(lines))
	for _, l := range lines {
		trans.Deliver([]byte(l))
	}
	trans.CloseInput()
	return trans
}

// Deliver queues an input line. It blocks when the queue is full.
func (i *InmemTransport) Deliver(line []byte) {
	i.inCh <- append([]byte(nil), line...)
}

// CloseInput signals the end of input. ReadLine returns io.EOF once the queued
// lines are consumed.
func (i *InmemTransport) CloseInput() {
	close(i.inCh)
}

// ReadLine implements the Transport interface.
func (i *InmemTransport) ReadLine() ([]byte, error) {
	line, ok := <-i.inCh
	if !ok {
		return nil, io.EOF
	}
	return line, nil
}

// WriteLine implements the Transport interface.
func (i *InmemTransport) WriteLine(line []byte) error {
	i.Lock()
	defer i.Unlock()

	if i.shutdown {
		return ErrTransportShutdown
	}
	i.sent = append(i.sent, append([]byte(nil), line...))
	return nil
}

// Sent returns a copy of the lines written so far.
func (i *InmemTransport) Sent() [][]byte {
	i.RLock()
	defer i.RUnlock()

	res := make([][]byte, len(i.sent))
	copy(res, i.sent)
	return res
}

// Close implements the Transport interface.
func (i *InmemTransport) Close() error {
	i.Lock()
	defer i.Unlock()

	i.shutdown = true
	return nil
}
