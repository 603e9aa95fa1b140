// Command hexputd is the process bootstrap: it registers a logger and a
// RuntimeConfig in a container.DIContainer, builds a session.Driver from
// them directly, and drives one session over newline-delimited JSON on stdio — the
// transport the WebSocket framing spec.md's introduction calls an
// out-of-scope external collaborator stands in for here.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"hexput/config"
	"hexput/container"
	"hexput/logging"
	"hexput/session"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a RuntimeConfig YAML file")
		sessionID  = flag.String("session", "stdio", "session id tagged on this connection's logs")
	)
	flag.Parse()

	c := container.NewDIContainer()

	if err := c.Register("logger", func() (interface{}, error) {
		return logging.NewDefaultLogger(), nil
	}, container.Singleton); err != nil {
		fmt.Fprintln(os.Stderr, "hexputd:", err)
		os.Exit(1)
	}

	if err := c.Register("config", func() (interface{}, error) {
		if *configPath == "" {
			return config.Default(), nil
		}
		return config.Load(*configPath)
	}, container.Singleton); err != nil {
		fmt.Fprintln(os.Stderr, "hexputd:", err)
		os.Exit(1)
	}

	logger := c.MustResolve("logger").(logging.Logger)
	cfg := c.MustResolve("config").(config.RuntimeConfig)

	ch := newStdioChannel(os.Stdin, os.Stdout)
	driver := session.NewDriver(ch, cfg, logger, *sessionID)

	if err := driver.Run(context.Background()); err != nil {
		logger.Error("hexputd: session ended with error", logging.LogField{Key: "error", Value: err.Error()})
		os.Exit(1)
	}
}

// stdioChannel implements session.FrameChannel over stdio: one frame per
// line, consistent with spec.md §6's "one [frame] per message".
type stdioChannel struct {
	in  *bufio.Scanner
	out io.Writer
}

func newStdioChannel(in io.Reader, out io.Writer) *stdioChannel {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &stdioChannel{in: scanner, out: out}
}

func (c *stdioChannel) Recv() ([]byte, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	line := c.in.Text()
	return []byte(line), nil
}

func (c *stdioChannel) Send(frame []byte) error {
	if _, err := c.out.Write(frame); err != nil {
		return err
	}
	_, err := c.out.Write([]byte("\n"))
	return err
}
