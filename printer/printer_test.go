package printer

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"strconv"
	"strings"
	"testing"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xgd16/tspl-generator/tspl"
)

func demoLabel() *Label {
	return NewLabel().
		Initialize(LabelConfig{Width: 40, Height: 30}).
		AddText(tspl.TextOptions{X: 10, Y: 10, Text: "hello"}).
		Print(1)
}

func TestSendWritesProgram(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewPrinter(&buf, WithChunkSize(7))
	require.NoError(t, err)

	l := demoLabel()
	require.NoError(t, p.Send(context.Background(), l))
	assert.Equal(t, l.Buffer(), buf.String())
	require.NoError(t, p.CloseConnection())
}

func TestSendRefusesBrokenLabels(t *testing.T) {
	p, err := NewPrinter(&bytes.Buffer{})
	require.NoError(t, err)

	err = p.Send(context.Background(), NewLabel().Print(1))
	assert.ErrorIs(t, err, ErrNotInitialized)

	err = p.Send(context.Background(), NewLabel())
	assert.ErrorIs(t, err, ErrEmptyProgram)
}

func TestSendHonoursContext(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewPrinter(&buf)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = p.Send(ctx, demoLabel())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

type shortWriter struct{}

func (shortWriter) Read([]byte) (int, error)  { return 0, io.EOF }
func (shortWriter) Write([]byte) (int, error) { return 0, nil }

func TestSendDetectsStalledWriter(t *testing.T) {
	p, err := NewPrinter(shortWriter{})
	require.NoError(t, err)
	assert.ErrorIs(t, p.Send(context.Background(), demoLabel()), io.ErrShortWrite)
}

func TestNewPrinterRejectsNil(t *testing.T) {
	_, err := NewPrinter(nil)
	assert.Error(t, err)
}

// lpdServer plays the printer side of RFC 1179 and returns the data file.
func lpdServer(t *testing.T, conn net.Conn, queue chan<- string, data chan<- []byte) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	ack := func() { _, _ = conn.Write([]byte{0}) }

	line, err := r.ReadString('\n')
	if err != nil {
		t.Errorf("read receive job: %v", err)
		return
	}
	queue <- strings.TrimSuffix(line[1:], "\n")
	ack()

	for i := 0; i < 2; i++ {
		header, err := r.ReadString('\n')
		if err != nil {
			t.Errorf("read subcommand: %v", err)
			return
		}
		fields := strings.Fields(header[1:])
		size, _ := strconv.Atoi(fields[0])
		ack()

		body := make([]byte, size+1)
		if _, err := io.ReadFull(r, body); err != nil {
			t.Errorf("read file: %v", err)
			return
		}
		if header[0] == 0x03 {
			data <- body[:size]
		}
		ack()
	}
}

type tcpAddrConn struct {
	net.Conn
}

func (c tcpAddrConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 515}
}

func TestLPDTransportSubmitsJobOnClose(t *testing.T) {
	defer leaktest.Check(t)()

	client, server := net.Pipe()
	queue := make(chan string, 1)
	data := make(chan []byte, 1)
	go lpdServer(t, server, queue, data)

	p, err := NewPrinter(tcpAddrConn{client}, WithLPDQueue("labels"))
	require.NoError(t, err)
	_, ok := p.t.(*LPDTransport)
	require.True(t, ok)

	l := demoLabel()
	require.NoError(t, p.Send(context.Background(), l))
	require.NoError(t, p.CloseConnection())

	assert.Equal(t, "labels", <-queue)
	assert.Equal(t, l.Buffer(), string(<-data))
}

func TestLPDControlFile(t *testing.T) {
	cf, df := lpdFileNames(123456, "host")
	assert.Equal(t, "cfA456host", cf)
	assert.Equal(t, "dfA456host", df)
	assert.Equal(t, "Hh\nPu\nJjob\nNdf\nldf\nUdf\n", lpdControlFile("h", "u", "job", "df"))
}

func TestWithProtocolOverridesPort(t *testing.T) {
	testCases := []struct {
		name  string
		conn  func(net.Conn) io.ReadWriter
		proto Protocol
		want  Protocol
	}{
		{"auto on 515", func(c net.Conn) io.ReadWriter { return tcpAddrConn{c} }, ProtocolAuto, ProtocolLPD},
		{"auto elsewhere", func(c net.Conn) io.ReadWriter { return c }, ProtocolAuto, ProtocolRaw},
		{"lpd on any port", func(c net.Conn) io.ReadWriter { return c }, ProtocolLPD, ProtocolLPD},
		{"raw on 515", func(c net.Conn) io.ReadWriter { return tcpAddrConn{c} }, ProtocolRaw, ProtocolRaw},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, server := net.Pipe()
			defer server.Close()
			defer client.Close()

			p, err := NewPrinter(tc.conn(client), WithProtocol(tc.proto))
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.Protocol())
			_, isLPD := p.t.(*LPDTransport)
			assert.Equal(t, tc.want == ProtocolLPD, isLPD)
		})
	}
}

func TestLPDNeedsNetworkConnection(t *testing.T) {
	_, err := NewPrinter(&bytes.Buffer{}, WithProtocol(ProtocolLPD))
	assert.Error(t, err)
}
