// Package console reads player input line by line and writes game output.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputClosed is returned once the input source is exhausted or the
// console has been closed.
var ErrInputClosed = errors.New("input closed")

type line struct {
	text string
	err  error
}

// Console is a line-oriented terminal. Reads happen on a background
// goroutine so a pending ReadLine can be abandoned when its context ends.
// The goroutine exits at EOF, on a read error, or after Close once its
// current read returns.
type Console struct {
	out   io.Writer
	lines chan line
	err   error

	done      chan struct{}
	pumpDone  chan struct{}
	closeOnce sync.Once
}

func New(in io.Reader, out io.Writer) *Console {
	c := &Console{
		out:      out,
		lines:    make(chan line),
		done:     make(chan struct{}),
		pumpDone: make(chan struct{}),
	}
	go c.pump(in)
	return c
}

// pump has no line length limit: an oversized line is delivered whole and
// left to the caller's validation.
func (c *Console) pump(in io.Reader) {
	defer close(c.pumpDone)
	defer close(c.lines)

	r := bufio.NewReader(in)
	for {
		s, err := r.ReadString('\n')
		if len(s) > 0 {
			if !c.deliver(line{text: strings.TrimRight(s, "\r\n")}) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			c.deliver(line{err: fmt.Errorf("read input: %w", err)})
			return
		}
	}
}

func (c *Console) deliver(l line) bool {
	select {
	case c.lines <- l:
		return true
	case <-c.done:
		return false
	}
}

// ReadLine writes prompt (if any) and waits for the next input line.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	if prompt != "" {
		if _, err := io.WriteString(c.out, prompt); err != nil {
			return "", fmt.Errorf("write prompt: %w", err)
		}
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-c.done:
		c.err = ErrInputClosed
		return "", c.err
	case l, ok := <-c.lines:
		if !ok {
			c.err = ErrInputClosed
			return "", c.err
		}
		if l.err != nil {
			c.err = l.err
			return "", l.err
		}
		return l.text, nil
	}
}

// Println writes s followed by a newline.
func (c *Console) Println(s string) error {
	_, err := fmt.Fprintln(c.out, s)
	return err
}

// Close stops delivering input. It is safe to call more than once.
func (c *Console) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}
