package client

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// multilineWait bounds how long Stats waits for another continuation
// line after the bytes already received have been consumed.
const multilineWait = 100 * time.Millisecond

// ErrNotFound is returned by Get and Delete when the daemon responds
// NOT_FOUND.
var ErrNotFound = errors.New("client: key not found")

// Client is a connection to a caskyd daemon.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
	Banner string
}

// Connect dials a caskyd daemon and reads its greeting banner.
func Connect(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	addr := net.JoinHostPort(cfg.host, fmt.Sprintf("%d", cfg.port))
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}

	reader := bufio.NewReader(conn)
	banner, err := reader.ReadString('\n')
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Client{conn: conn, reader: reader, Banner: strings.TrimRight(banner, "\r\n")}, nil
}

// Close sends QUIT and closes the connection.
func (c *Client) Close() {
	fmt.Fprintf(c.conn, "QUIT\n")
	c.conn.Close()
}

// Put stores key/value. value may contain spaces.
func (c *Client) Put(key, value string) error {
	resp, err := c.roundTrip(fmt.Sprintf("PUT %s %s", key, value))
	if err != nil {
		return err
	}
	return responseToError(resp)
}

// Get fetches key, returning ErrNotFound if it is absent.
func (c *Client) Get(key string) (string, error) {
	resp, err := c.roundTrip("GET " + key)
	if err != nil {
		return "", err
	}
	if resp == "NOT_FOUND" {
		return "", ErrNotFound
	}
	if after, ok := strings.CutPrefix(resp, "VALUE "); ok {
		return after, nil
	}
	return "", responseToError(resp)
}

// Delete removes key, returning ErrNotFound if it was not live.
func (c *Client) Delete(key string) error {
	resp, err := c.roundTrip("DEL " + key)
	if err != nil {
		return err
	}
	if resp == "NOT_FOUND" {
		return ErrNotFound
	}
	return responseToError(resp)
}

// Compact requests that the daemon compact its log.
func (c *Client) Compact() error {
	resp, err := c.roundTrip("COMPACT")
	if err != nil {
		return err
	}
	return responseToError(resp)
}

// Stats returns the daemon's raw multi-line STATS response.
func (c *Client) Stats() (string, error) {
	return c.roundTripMultiline("STATS")
}

// Version returns the daemon's version string.
func (c *Client) Version() (string, error) {
	return c.roundTrip("VER")
}

func (c *Client) roundTrip(line string) (string, error) {
	if _, err := fmt.Fprintf(c.conn, "%s\n", line); err != nil {
		return "", err
	}
	resp, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(resp, "\r\n"), nil
}

func (c *Client) roundTripMultiline(line string) (string, error) {
	first, err := c.roundTrip(line)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(first)

	for {
		// The response has no terminator line: once nothing more is
		// buffered, wait only briefly for a further continuation line.
		if c.reader.Buffered() == 0 {
			c.conn.SetReadDeadline(time.Now().Add(multilineWait))
		}
		peeked, err := c.reader.Peek(1)
		c.conn.SetReadDeadline(time.Time{})
		if err != nil || len(peeked) == 0 || peeked[0] != ' ' {
			break
		}
		cont, err := c.reader.ReadString('\n')
		if err != nil {
			break
		}
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(cont, "\r\n"))
	}

	return b.String(), nil
}

func responseToError(resp string) error {
	if resp == "OK" {
		return nil
	}
	if after, ok := strings.CutPrefix(resp, "ERROR "); ok {
		return errors.New("client: " + after)
	}
	return nil
}
