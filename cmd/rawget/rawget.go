package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const usage = `usage: rawget [-method GET] [-proto HTTP/1.1] <host:port> <path>

Sends exactly one request line, unmodified, and prints the raw response.
`

// requestLine renders what goes on the wire. Nothing is validated so
// malformed requests can be sent on purpose.
func requestLine(method, path, proto string) string {
	return fmt.Sprintf("%s %s %s\r\n\r\n", method, path, proto)
}

// fetch writes line to addr and copies the reply to out until the
// server closes the connection.
func fetch(addr, line string, out io.Writer, timeout time.Duration) (int64, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	if timeout > 0 {
		conn.SetDeadline(time.Now().Add(timeout))
	}
	if _, err := io.WriteString(conn, line); err != nil {
		return 0, err
	}
	return io.Copy(out, conn)
}

func main() {
	method := flag.String("method", "GET", "request method")
	proto := flag.String("proto", "HTTP/1.1", "protocol version")
	timeout := flag.Duration("timeout", 10*time.Second, "dial and transfer timeout")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	addr, path := flag.Arg(0), flag.Arg(1)

	line := requestLine(*method, path, *proto)
	n, err := fetch(addr, line, os.Stdout, *timeout)
	if err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("request failed")
	}
	log.Debug().Int64("octets", n).Msg("done")
}
