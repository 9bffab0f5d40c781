package printer

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultLPDQueue is the queue name used when none is configured.
const DefaultLPDQueue = "lp"

const lpdAckTimeout = 5 * time.Second

type Transport interface {
	Write([]byte) (int, error)
	Read([]byte) (int, error)
	Close() error
}

// -------------------- RAW --------------------

// RawTransport passes bytes straight to the connection (port 9100, USB,
// serial, spooler).
type RawTransport struct {
	conn io.ReadWriteCloser
}

func (r *RawTransport) Write(b []byte) (int, error) { return r.conn.Write(b) }
func (r *RawTransport) Read(b []byte) (int, error)  { return r.conn.Read(b) }
func (r *RawTransport) Close() error                { return r.conn.Close() }

// -------------------- LPD --------------------

// LPDTransport buffers everything written and submits it as one RFC 1179
// job when closed.
type LPDTransport struct {
	conn   net.Conn
	queue  string
	jobBuf bytes.Buffer
	closed bool
	log    *zap.Logger
	mu     sync.Mutex
}

func NewLPDTransport(conn net.Conn, queue string, logger *zap.Logger) *LPDTransport {
	if queue == "" {
		queue = DefaultLPDQueue
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LPDTransport{
		conn:  conn,
		queue: queue,
		log:   logger.With(zap.String("transport", "lpd"), zap.String("queue", queue)),
	}
}

func (l *LPDTransport) Write(data []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, io.ErrClosedPipe
	}
	return l.jobBuf.Write(data)
}

func (l *LPDTransport) Read(b []byte) (int, error) {
	return l.conn.Read(b)
}

func (l *LPDTransport) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	defer func() { l.closed = true }()

	if l.jobBuf.Len() == 0 {
		l.log.Debug("empty job, closing connection")
		return l.conn.Close()
	}

	if err := l.flushJob(); err != nil {
		l.log.Error("job submission failed", zap.Error(err))
		_ = l.conn.Close()
		return err
	}
	return l.conn.Close()
}

func (l *LPDTransport) flushJob() error {
	host, _ := os.Hostname()
	if host == "" {
		host = "localhost"
	}
	user := os.Getenv("USER")
	if user == "" {
		user = "tspl"
	}

	jobID := int(time.Now().UnixNano() % 1000000)
	hostShort := host
	if i := strings.IndexByte(hostShort, '.'); i > 0 {
		hostShort = hostShort[:i]
	}
	cfName, dfName := lpdFileNames(jobID, hostShort)
	control := lpdControlFile(host, user, fmt.Sprintf("tspl-%d", jobID), dfName)

	l.log.Debug("stage 1: receive job")
	if err := requestPrintJob(l.conn, l.queue); err != nil {
		return fmt.Errorf("LPD: stage 1 failed: %w", err)
	}

	l.log.Debug("stage 2: control file", zap.String("name", cfName))
	if err := sendControlFile(l.conn, cfName, []byte(control)); err != nil {
		return fmt.Errorf("LPD: stage 2 failed: %w", err)
	}

	data := l.jobBuf.Bytes()
	l.log.Debug("stage 3: data file", zap.String("name", dfName), zap.Int("bytes", len(data)))
	if err := sendDataFile(l.conn, dfName, data); err != nil {
		return fmt.Errorf("LPD: stage 3 failed: %w", err)
	}

	l.log.Info("job submitted", zap.Int("bytes", len(data)))
	l.jobBuf.Reset()
	return nil
}

// -------------------- LPD helpers --------------------

func lpdFileNames(jobID int, host string) (cfName, dfName string) {
	return fmt.Sprintf("cfA%03d%s", jobID%1000, host), fmt.Sprintf("dfA%03d%s", jobID%1000, host)
}

// lpdControlFile lists host, user, job name, source name and the data file
// to print with the "l" (literal, no filtering) command so TSPL reaches the
// printer untouched.
func lpdControlFile(host, user, jobName, dfName string) string {
	return fmt.Sprintf("H%s\nP%s\nJ%s\nN%s\nl%s\nU%s\n", host, user, jobName, dfName, dfName, dfName)
}

func requestPrintJob(conn net.Conn, queue string) error {
	// \x02 + <queue>\n
	if err := writeAll(conn, []byte("\x02"+queue+"\n")); err != nil {
		return err
	}
	return readAck(conn, "stage 1")
}

func sendControlFile(conn net.Conn, cfName string, control []byte) error {
	// \x02 + "<size> <cfName>\n" + <control> + \x00
	return sendSubFile(conn, 0x02, cfName, control, "stage 2")
}

func sendDataFile(conn net.Conn, dfName string, data []byte) error {
	// \x03 + "<size> <dfName>\n" + <data> + \x00
	return sendSubFile(conn, 0x03, dfName, data, "stage 3")
}

func sendSubFile(conn net.Conn, code byte, name string, body []byte, stage string) error {
	header := []byte(string(code) + strconv.Itoa(len(body)) + " " + name + "\n")
	if err := writeAll(conn, header); err != nil {
		return err
	}
	if err := readAck(conn, stage+" header"); err != nil {
		return err
	}
	if err := writeAll(conn, body); err != nil {
		return err
	}
	if err := writeAll(conn, []byte{0x00}); err != nil {
		return err
	}
	return readAck(conn, stage)
}

func readAck(conn net.Conn, stage string) error {
	_ = conn.SetReadDeadline(time.Now().Add(lpdAckTimeout))
	defer conn.SetReadDeadline(time.Time{})

	ack := make([]byte, 1)
	n, err := conn.Read(ack)
	if err != nil {
		return fmt.Errorf("reading ACK on %s: %w", stage, err)
	}
	if n != 1 || ack[0] != 0x00 {
		return fmt.Errorf("LPD request not acknowledged on %s", stage)
	}
	return nil
}

func writeAll(conn net.Conn, b []byte) error {
	sent := 0
	for sent < len(b) {
		n, err := conn.Write(b[sent:])
		if err != nil {
			return err
		}
		sent += n
	}
	return nil
}

// -------------------- helpers --------------------

type nopCloser struct {
	io.ReadWriter
}

func (n nopCloser) Close() error { return nil }
