package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/bigbag/hdlc-framer/internal/config"
	"github.com/bigbag/hdlc-framer/internal/hdlc"
	"github.com/bigbag/hdlc-framer/internal/logging"
	"github.com/bigbag/hdlc-framer/internal/payload"
	"github.com/bigbag/hdlc-framer/internal/sender"
	"github.com/bigbag/hdlc-framer/internal/serial"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	configPath string
	debug      bool
	port       string
	baud       int
	file       string
	raw        bool
	maxPayload int
	delay      time.Duration
}

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "hdlc-framer",
		Short: "Build HDLC-like frames for serial diagnostic links",
		Long: `hdlc-framer wraps raw payloads into HDLC-like frames: a CRC-16/X-25
checksum is appended little-endian, 0x7D and 0x7E are escaped, and the
frame is terminated with 0x7E.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.debug {
				logging.EnableDebug()
			}
			return applyConfig(cmd, opts)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML file with default settings")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	// Encode command
	encodeCmd := &cobra.Command{
		Use:   "encode [hex-payload...]",
		Short: "Print frames for payloads",
		Long: `Print one hex-encoded frame per payload.

Payloads come from arguments or from --file (one hex payload per line,
or a single binary payload with --raw).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, opts, args)
		},
	}
	addPayloadFlags(encodeCmd, opts)

	// Send command
	sendCmd := &cobra.Command{
		Use:   "send [hex-payload...]",
		Short: "Frame payloads and write them to a serial port",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, opts, args)
		},
	}
	addPayloadFlags(sendCmd, opts)
	sendCmd.Flags().StringVarP(&opts.port, "port", "p", "", "Serial port")
	sendCmd.Flags().IntVarP(&opts.baud, "baud", "b", serial.DefaultBaudRate, "Baud rate")
	sendCmd.Flags().DurationVar(&opts.delay, "delay", 0, "Pause between frames")

	// Self-test command
	selftestCmd := &cobra.Command{
		Use:   "selftest",
		Short: "Check the encoder against known frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelfTest(cmd)
		},
	}

	// Version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "hdlc-framer %s\n", version)
			fmt.Fprintf(w, "  commit: %s\n", commit)
			fmt.Fprintf(w, "  built:  %s\n", date)
		},
	}

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available serial ports",
		RunE:  runList,
	}

	rootCmd.AddCommand(encodeCmd, sendCmd, selftestCmd, versionCmd, listCmd)
	return rootCmd
}

func addPayloadFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read payloads from file")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Treat --file as one binary payload")
	cmd.Flags().IntVar(&opts.maxPayload, "max-payload", 0, "Reject payloads longer than this (0 = no limit)")
}

// applyConfig fills options the user did not set explicitly.
func applyConfig(cmd *cobra.Command, opts *options) error {
	if opts.configPath == "" {
		return nil
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logging.Debug("loaded config %s", opts.configPath)

	flags := cmd.Flags()
	if cfg.Port != "" && flags.Lookup("port") != nil && !flags.Changed("port") {
		opts.port = cfg.Port
	}
	if cfg.Baud > 0 && flags.Lookup("baud") != nil && !flags.Changed("baud") {
		opts.baud = cfg.Baud
	}
	if cfg.MaxPayload > 0 && flags.Lookup("max-payload") != nil && !flags.Changed("max-payload") {
		opts.maxPayload = cfg.MaxPayload
	}
	if cfg.DelayMS > 0 && flags.Lookup("delay") != nil && !flags.Changed("delay") {
		opts.delay = cfg.Delay()
	}
	return nil
}

func loadPayloads(opts *options, args []string) ([][]byte, error) {
	if opts.file != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("use either --file or payload arguments, not both")
		}
		return payload.Load(opts.file, opts.raw)
	}
	if opts.raw {
		return nil, fmt.Errorf("--raw requires --file")
	}
	return payload.FromArgs(args)
}

func runEncode(cmd *cobra.Command, opts *options, args []string) error {
	payloads, err := loadPayloads(opts, args)
	if err != nil {
		return err
	}

	framer := &hdlc.Framer{MaxPayload: opts.maxPayload}
	w := cmd.OutOrStdout()
	for i, p := range payloads {
		frame, err := framer.Frame(p)
		if err != nil {
			return fmt.Errorf("payload %d: %w", i+1, err)
		}
		logging.Debug("payload %d: %d bytes -> %d byte frame", i+1, len(p), len(frame))
		fmt.Fprintln(w, hex.EncodeToString(frame))
	}
	return nil
}

func runSend(cmd *cobra.Command, opts *options, args []string) error {
	if opts.port == "" {
		return fmt.Errorf("no serial port given (use --port or set port in --config)")
	}

	payloads, err := loadPayloads(opts, args)
	if err != nil {
		return err
	}

	port, err := serial.Open(opts.port, opts.baud)
	if err != nil {
		return err
	}
	defer func() {
		if err := port.Close(); err != nil {
			logging.Warn("closing %s: %v", port.PortName(), err)
		}
	}()

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Port: %s @ %d baud\n", port.PortName(), port.BaudRate())

	s := sender.New(port, &hdlc.Framer{MaxPayload: opts.maxPayload})
	s.SetDelay(opts.delay)

	bar := progressbar.NewOptions(len(payloads),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("Sending"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	s.SetProgressCallback(func(current, total int) {
		_ = bar.Set(current)
	})

	logging.Info("sending %d frame(s) to %s", len(payloads), port.PortName())
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sent, err := s.Send(ctx, payloads)
	bar.Finish()
	if err != nil {
		logging.Error("sent %d of %d frames: %v", sent, len(payloads), err)
		return err
	}

	fmt.Fprintf(w, "Sent %d frame(s)\n", sent)
	return nil
}

func runSelfTest(cmd *cobra.Command) error {
	results, err := hdlc.RunVectors(hdlc.Vectors)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		fmt.Fprintf(w, "Correct answer: %s\n", r.Frame)
		fmt.Fprintf(w, "Construct:      %s\n", r.Got)
		if !r.OK() {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d self-test vectors failed", failed, len(results))
	}
	fmt.Fprintln(w, "OK")
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	ports, err := serial.ListPorts()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(ports) == 0 {
		fmt.Fprintln(w, "No serial ports found")
		return nil
	}

	fmt.Fprintln(w, "Available serial ports:")
	for _, p := range ports {
		fmt.Fprintf(w, "  %s\n", p)
	}
	return nil
}
