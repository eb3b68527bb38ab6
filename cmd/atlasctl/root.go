package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mbrennan/atlaskit/atlas"
	"github.com/mbrennan/atlaskit/atlas/geom"
)

// Exit codes. Domain failures and usage errors are distinguished so shell
// callers can react without parsing output.
const (
	exitOK       = 0
	exitNoSpace  = 1
	exitBadID    = 2
	exitBadUsage = 64
)

var errUsage = errors.New("usage error")

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "atlasctl",
	Short: "Inspect and manipulate atlas allocator snapshots",
	Long: `atlasctl drives a texture atlas allocator through snapshot files.
Each command loads the allocator state from a YAML snapshot, applies one
operation, and writes the state back, so a full allocation session can be
scripted or replayed step by step.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})
}

func execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitCodeFor(err)
	}
	return exitOK
}

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, atlas.ErrInvalidHandle):
		return exitBadID
	case errors.Is(err, errUsage), errors.Is(err, atlas.ErrBadOptions):
		return exitBadUsage
	default:
		// ErrNotEnoughSpace, ErrDoesNotFit, and anything else.
		return exitNoSpace
	}
}

// exactArgs is cobra.ExactArgs with the error wrapped as a usage error, so
// it maps to the right exit code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%w: expected %d argument(s), got %d", errUsage, n, len(args))
		}
		return nil
	}
}

// Helper functions for output

func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// parseSize parses a WxH argument such as "1024x512".
func parseSize(s string) (geom.Size, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return geom.Size{}, fmt.Errorf("%w: size must be WxH, got %q", errUsage, s)
	}
	w, err := strconv.ParseInt(parts[0], 10, 32)
	if err != nil {
		return geom.Size{}, fmt.Errorf("%w: bad width %q", errUsage, parts[0])
	}
	h, err := strconv.ParseInt(parts[1], 10, 32)
	if err != nil {
		return geom.Size{}, fmt.Errorf("%w: bad height %q", errUsage, parts[1])
	}
	return geom.Size{Width: int32(w), Height: int32(h)}, nil
}

// parseID parses an allocation id as printed by the alloc command.
func parseID(s string) (atlas.AllocId, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad allocation id %q", errUsage, s)
	}
	return atlas.AllocId(v), nil
}

// sizeValue adapts geom.Size to the pflag.Value interface for WxH flags.
type sizeValue geom.Size

var _ pflag.Value = (*sizeValue)(nil)

func (s *sizeValue) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

func (s *sizeValue) Set(v string) error {
	parsed, err := parseSize(v)
	if err != nil {
		return err
	}
	*s = sizeValue(parsed)
	return nil
}

func (s *sizeValue) Type() string { return "size" }
