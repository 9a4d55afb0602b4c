package net

import (
	"bufio"
	"bytes"
	"io"
	"sync"
)

// StdioTransport implements the Transport interface over a pair of streams.
type StdioTransport struct {
	r *bufio.Reader

	wLock sync.Mutex
	w     *bufio.Writer

	closer io.Closer
}

// NewStdioTransport returns a transport reading lines from r and writing lines
// to w. If r implements io.Closer it is closed by Close.
func NewStdioTransport(r io.Reader, w io.Writer) *StdioTransport {
	trans := &StdioTransport{
		r: bufio.NewReader(r),
		w: bufio.NewWriter(w),
	}
	if c, ok := r.(io.Closer); ok {
		trans.closer = c
	}
	return trans
}

// ReadLine implements the Transport interface. Lines may be of any length. A
// last line that is not newline-terminated is still returned, and io.EOF comes
// with the following call.
func (t *StdioTransport) ReadLine() ([]byte, error) {
	line, err := t.r.ReadBytes('\n')
	if len(line) > 0 {
		return bytes.TrimRight(line, "\r\n"), nil
	}
	if err != nil {
		return nil, err
	}
	return line, nil
}

// WriteLine implements the Transport interface.
func (t *StdioTransport) WriteLine(line []byte) error {
	t.wLock.Lock()
	defer t.wLock.Unlock()

	if _, err := t.w.Write(line); err != nil {
		return err
	}
	if err := t.w.WriteByte('\n'); err != nil {
		return err
	}
	return t.w.Flush()
}

// Close implements the Transport interface.
func (t *StdioTransport) Close() error {
	t.wLock.Lock()
	err := t.w.Flush()
	t.wLock.Unlock()

	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
