package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/binrec/errors"
	"github.com/wippyai/binrec/layout"
	"github.com/wippyai/binrec/record"
	"github.com/wippyai/binrec/wasmmem"
)

// app carries state shared by every subcommand.
type app struct {
	root     *cobra.Command
	log      *zap.Logger
	closeLog func() error
	file     string
	logOpts  logOptions
	mode     string
	sets     []string
	witName  string
}

func newApp() *app {
	a := &app{}

	root := &cobra.Command{
		Use:   "recordtool",
		Short: "Inspect and build fixed-layout binary records",
		Long: `recordtool compiles a record layout from a descriptor file and
encodes, decodes or edits records against it.

A layout file lists the fields in order:

  name: order-packet
  endian: big
  fields:
    - uint16 packetId
    - cstring packetType[4]
    - uint32 length
    - cstring body[12]
  values:
    packetId: 1
    packetType: buy

Examples:
  recordtool layout -f order.yaml
  recordtool encode -f order.yaml --set body=hello --mode binary
  recordtool decode -f order.yaml 0001627579000000000d68656c6c6f00000000000000`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := newLogger(cmd.ErrOrStderr(), a.logOpts)
			if err != nil {
				return err
			}
			a.log = logger
			a.closeLog = closeLog
			layout.SetLogger(logger.Named("layout"))
			wasmmem.SetLogger(logger.Named("wasmmem"))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.file, "file", "f", "", "layout file (yaml, json or toml)")
	pf.StringVar(&a.logOpts.Level, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&a.logOpts.File, "log-file", "", "also write JSON logs to this file, rotated")
	pf.IntVar(&a.logOpts.MaxSizeMB, "log-max-size", 10, "rotate the log file after this many megabytes")
	pf.IntVar(&a.logOpts.MaxBackups, "log-max-backups", 3, "rotated log files to keep")

	root.AddCommand(
		a.layoutCmd(),
		a.encodeCmd(),
		a.decodeCmd(),
		a.witCmd(),
		a.editCmd(),
	)
	a.root = root
	return a
}

// execute runs the command tree and releases the logger whether or not the
// command succeeded.
func (a *app) execute() error {
	err := a.root.Execute()
	if cerr := a.shutdownLogging(); err == nil {
		err = cerr
	}
	return err
}

func (a *app) shutdownLogging() error {
	if a.log == nil {
		return nil
	}
	_ = a.log.Sync()
	layout.SetLogger(zap.NewNop())
	wasmmem.SetLogger(zap.NewNop())
	a.log = nil

	closeLog := a.closeLog
	a.closeLog = nil
	if closeLog == nil {
		return nil
	}
	if err := closeLog(); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "close log file")
	}
	return nil
}

// compile reads the layout file named by -f and compiles it.
func (a *app) compile() (*layoutFile, *layout.Layout, record.ByteOrder, error) {
	if a.file == "" {
		return nil, nil, record.BigEndian, errors.InvalidInput(errors.PhaseConfig, "no layout file given, use -f")
	}
	f, err := loadLayoutFile(a.file)
	if err != nil {
		return nil, nil, record.BigEndian, err
	}
	l, order, err := f.build()
	if err != nil {
		return nil, nil, record.BigEndian, err
	}
	return f, l, order, nil
}

// load compiles the layout file and returns a record populated with its values.
func (a *app) load() (*layoutFile, *record.Record, error) {
	f, l, order, err := a.compile()
	if err != nil {
		return nil, nil, err
	}
	r := record.New(l, order)
	if err := applyValues(r, f.Values); err != nil {
		return nil, nil, err
	}
	a.log.Debug("layout file loaded",
		zap.String("file", a.file),
		zap.String("name", f.Name),
		zap.Uint32("size", l.Size()),
		zap.Stringer("order", order))
	return f, r, nil
}

func (a *app) layoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the offset table of a layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, r, err := a.load()
			if err != nil {
				return err
			}
			l := r.Layout()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bytes, %s endian\n", f.Name, l.Size(), r.Order())
			fmt.Fprintln(cmd.OutOrStdout(), offsetTable(l))
			return nil
		},
	}
}

func offsetTable(l *layout.Layout) string {
	header := lipgloss.NewStyle().Bold(true)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("OFFSET", "LENGTH", "BYTES", "TYPE", "NAME")
	for _, e := range l.Entries() {
		t.Row(
			strconv.FormatUint(uint64(e.Offset), 10),
			strconv.FormatUint(uint64(e.Length), 10),
			strconv.FormatUint(uint64(e.Size()), 10),
			e.Kind.String(),
			e.Name,
		)
	}
	return t.String()
}

func (a *app) encodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode the layout file's values, plus --set overrides, into a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, r, err := a.load()
			if err != nil {
				return err
			}
			overrides, err := parseAssignments(a.sets)
			if err != nil {
				return err
			}
			if err := applyValues(r, overrides); err != nil {
				return err
			}
			out, err := r.Render(record.RenderMode(a.mode))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			fmt.Fprintf(cmd.OutOrStdout(), "xxhash64: %016x\n", r.Sum64())
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&a.sets, "set", nil, "set a field, name=value (repeatable)")
	cmd.Flags().StringVar(&a.mode, "mode", string(record.RenderHex), "render mode (hex or binary)")
	return cmd
}

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode HEX",
		Short: "Decode a hex-encoded record and print its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, l, order, err := a.compile()
			if err != nil {
				return err
			}
			raw := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(args[0])), "0x")
			buf, err := hex.DecodeString(raw)
			if err != nil {
				return errors.Wrap(errors.PhaseGet, errors.KindInvalidInput, err, "decode hex input")
			}
			r, err := record.Wrap(l, buf, order)
			if err != nil {
				return err
			}
			if len(buf) > r.Len() {
				a.log.Warn("trailing bytes ignored", zap.Int("extra", len(buf)-r.Len()))
			}
			printFields(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func printFields(w io.Writer, r *record.Record) {
	values := r.Fields()
	for _, e := range r.Layout().Entries() {
		if s, ok := values[e.Name].(string); ok {
			fmt.Fprintf(w, "%s = %q\n", e.Name, s)
			continue
		}
		fmt.Fprintf(w, "%s = %v\n", e.Name, values[e.Name])
	}
}

func (a *app) witCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wit",
		Short: "Print the layout as a WIT record definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, r, err := a.load()
			if err != nil {
				return err
			}
			name := f.Name
			if a.witName != "" {
				name = a.witName
			}
			td, err := r.Layout().WIT(name)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatWIT(td))
			return nil
		},
	}
	cmd.Flags().StringVar(&a.witName, "name", "", "record name (defaults to the layout name)")
	return cmd
}

func formatWIT(td *wit.TypeDef) string {
	var b strings.Builder
	name := ""
	if td.Name != nil {
		name = *td.Name
	}
	b.WriteString("record " + name + " {\n")
	if rec, ok := td.Kind.(*wit.Record); ok {
		for _, f := range rec.Fields {
			b.WriteString("    " + f.Name + ": " + witTypeStr(f.Type) + ",\n")
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func witTypeStr(t wit.Type) string {
	switch t.(type) {
	case wit.U8:
		return "u8"
	case wit.U16:
		return "u16"
	case wit.U32:
		return "u32"
	case wit.String:
		return "string"
	default:
		return fmt.Sprintf("%T", t)
	}
}
