package stream

import (
	"net/http"
	"time"

	"golang.org/x/net/websocket"
)

const (
	writeTimeout = 10 * time.Second
	readTimeout  = 10 * time.Minute
)

// Connector wraps connections so tests are easier
type Connector interface {
	Send(v interface{}) error
	Recv(v interface{}) error
	Close() error

	Request() *http.Request
}

// wsConn is a websocket connection that implements Connector
type wsConn struct {
	conn *websocket.Conn
}

// NewWsConn wraps ws as a Connector speaking JSON frames.
func NewWsConn(ws *websocket.Conn) Connector {
	return &wsConn{conn: ws}
}

func (c *wsConn) Send(v interface{}) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return websocket.JSON.Send(c.conn, v)
}

func (c *wsConn) Recv(v interface{}) error {
	if err := c.conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		return err
	}
	return websocket.JSON.Receive(c.conn, v)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

func (c *wsConn) Request() *http.Request {
	return c.conn.Request()
}
