package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/JonMunkholm/codemash/internal/logging"
)

// stdioSessionID tags log lines from the single stdio session.
const stdioSessionID = "stdio"

// ServeStdio serves newline-delimited JSON-RPC over in/out until in reaches
// EOF or ctx is cancelled.
func ServeStdio(ctx context.Context, s *Server, in io.Reader, out io.Writer) error {
	ctx = logging.WithSessionID(ctx, stdioSessionID)

	stream := jsonrpc2.NewBufferedStream(stdioConn{in: in, out: out}, &jsonrpc2.PlainObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.HandlerWithError(
		func(ctx context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
			return s.Dispatch(ctx, req)
		},
	))

	slog.Info("serving on stdio")

	select {
	case <-conn.DisconnectNotify():
		slog.Info("stdio client disconnected")
		return nil
	case <-ctx.Done():
		if err := conn.Close(); err != nil && !errors.Is(err, jsonrpc2.ErrClosed) {
			return err
		}
		return ctx.Err()
	}
}

// stdioConn joins a reader and writer into the stream jsonrpc2 expects.
type stdioConn struct {
	in  io.Reader
	out io.Writer
}

func (c stdioConn) Read(p []byte) (int, error) {
	return c.in.Read(p)
}

func (c stdioConn) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

func (c stdioConn) Close() error {
	if closer, ok := c.in.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
