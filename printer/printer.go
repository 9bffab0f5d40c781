package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// DefaultChunkSize is the number of bytes handed to the transport per write.
const DefaultChunkSize = 4096

// ErrEmptyProgram is returned by Send for a label without commands.
var ErrEmptyProgram = errors.New("printer: empty program")

// Protocol selects how a Printer frames programs on its connection.
type Protocol int

const (
	// ProtocolAuto speaks LPD to network connections on port 515 and writes
	// raw bytes everywhere else.
	ProtocolAuto Protocol = iota
	// ProtocolRaw writes programs as is (port 9100, USB, serial, spooler).
	ProtocolRaw
	// ProtocolLPD submits programs as RFC 1179 jobs. Needs a net.Conn.
	ProtocolLPD
)

func (p Protocol) String() string {
	switch p {
	case ProtocolRaw:
		return "raw"
	case ProtocolLPD:
		return "lpd"
	}
	return "auto"
}

// Printer sends finished label programs to a device over a Transport.
type Printer struct {
	t Transport

	log       *zap.Logger
	chunkSize int
	queue     string
	protocol  Protocol

	sync.Mutex
}

// PrinterOption configures a Printer.
type PrinterOption func(*Printer)

// WithPrinterLogger sets the logger used for transport events.
func WithPrinterLogger(logger *zap.Logger) PrinterOption {
	return func(p *Printer) {
		if logger != nil {
			p.log = logger
		}
	}
}

// WithChunkSize sets the write size used by Send.
func WithChunkSize(n int) PrinterOption {
	return func(p *Printer) {
		if n > 0 {
			p.chunkSize = n
		}
	}
}

// WithLPDQueue sets the queue name used for LPD connections.
func WithLPDQueue(queue string) PrinterOption {
	return func(p *Printer) { p.queue = queue }
}

// WithProtocol forces the framing instead of guessing it from the remote
// port.
func WithProtocol(proto Protocol) PrinterOption {
	return func(p *Printer) { p.protocol = proto }
}

// NewPrinter wraps w. Unless WithProtocol says otherwise, network
// connections to port 515 speak LPD and anything else is written raw.
func NewPrinter(w io.ReadWriter, opts ...PrinterOption) (*Printer, error) {
	if w == nil {
		return nil, fmt.Errorf("printer: nil writer")
	}
	p := &Printer{
		log:       zap.NewNop(),
		chunkSize: DefaultChunkSize,
		queue:     DefaultLPDQueue,
	}
	for _, opt := range opts {
		opt(p)
	}

	conn, isConn := w.(net.Conn)
	proto := p.protocol
	if proto == ProtocolAuto {
		proto = ProtocolRaw
		if isConn && strings.HasSuffix(conn.RemoteAddr().String(), ":515") {
			proto = ProtocolLPD
		}
	}

	switch {
	case proto == ProtocolLPD:
		if !isConn {
			return nil, fmt.Errorf("printer: LPD needs a network connection, got %T", w)
		}
		p.t = NewLPDTransport(conn, p.queue, p.log)
	case isConn:
		p.t = &RawTransport{conn: conn}
	default:
		if rc, ok := w.(io.ReadWriteCloser); ok {
			p.t = &RawTransport{conn: rc}
		} else {
			p.t = &RawTransport{conn: nopCloser{w}}
		}
	}
	p.protocol = proto
	return p, nil
}

// NewNetworkPrinter dials addr ("host:9100" for raw, "host:515" for LPD).
func NewNetworkPrinter(ctx context.Context, addr string, opts ...PrinterOption) (*Printer, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial printer %s: %w", addr, err)
	}
	p, err := NewPrinter(conn, opts...)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return p, nil
}

// Protocol reports the framing chosen for the connection.
func (p *Printer) Protocol() Protocol {
	return p.protocol
}

// Write writes buf to the transport as is.
func (p *Printer) Write(buf []byte) (int, error) {
	p.Lock()
	defer p.Unlock()
	return p.t.Write(buf)
}

// Send writes the program accumulated by l. Labels carrying an error are
// refused.
func (p *Printer) Send(ctx context.Context, l *Label) error {
	if err := l.Err(); err != nil {
		return fmt.Errorf("printer: label has error: %w", err)
	}
	if l.Len() == 0 {
		return ErrEmptyProgram
	}
	return p.SendProgram(ctx, l.Buffer())
}

// SendProgram writes program in chunks, checking ctx between chunks.
func (p *Printer) SendProgram(ctx context.Context, program string) error {
	if program == "" {
		return ErrEmptyProgram
	}
	p.Lock()
	defer p.Unlock()

	data := []byte(program)
	written := 0
	for written < len(data) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("printer: send interrupted at %d/%d bytes: %w", written, len(data), err)
		}
		end := written + p.chunkSize
		if end > len(data) {
			end = len(data)
		}
		n, err := p.t.Write(data[written:end])
		written += n
		if err == nil && n == 0 {
			err = io.ErrShortWrite
		}
		if err != nil {
			p.log.Error("write failed", zap.Int("written", written), zap.Error(err))
			return fmt.Errorf("printer: write error at %d: %w", written, err)
		}
	}
	p.log.Info("program sent", zap.Int("bytes", written))
	return nil
}

// CloseConnection closes the transport. LPD transports submit the buffered
// job at this point.
func (p *Printer) CloseConnection() error {
	p.Lock()
	defer p.Unlock()
	return p.t.Close()
}
