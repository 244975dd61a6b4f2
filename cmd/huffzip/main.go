// Command huffzip compresses and decompresses files with static Huffman
// coding.
//
// Usage:
//
//     huffzip [-q] [-dump] compress <input> <output>
//     huffzip [-q] [-dump] decompress <input> <output>
//     huffzip [-json] inspect <input>
//
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/chronos-tachyon/huffzip"
	"github.com/chronos-tachyon/huffzip/internal/logger"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

type config struct {
	quiet   bool
	dump    bool
	json    bool
	command string
	args    []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(argv, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "huffzip: %v\n", err)
		return exitUsage
	}

	logg := logger.New(stderr, cfg.quiet)

	switch cfg.command {
	case "compress":
		stats, err := huffzip.CompressFileStats(cfg.args[0], cfg.args[1])
		if err != nil {
			logg.Errorf("compress failed (%s): %v", errorKind(err), err)
			return exitFail
		}
		logg.Infof("compressed %s -> %s: %d -> %d bytes (%.1f%%), %d symbols, %d bits + %d padding",
			cfg.args[0], cfg.args[1], stats.InputBytes, stats.OutputBytes, 100*stats.Ratio(),
			stats.Symbols, stats.EncodedBits, stats.Padding)
		if cfg.dump {
			return dumpTable(cfg.args[1], stderr, logg)
		}

	case "decompress":
		if err := huffzip.DecompressFile(cfg.args[0], cfg.args[1]); err != nil {
			logg.Errorf("decompress failed (%s): %v", errorKind(err), err)
			return exitFail
		}
		logg.Infof("decompressed %s -> %s", cfg.args[0], cfg.args[1])
		if cfg.dump {
			return dumpTable(cfg.args[0], stderr, logg)
		}

	case "inspect":
		return inspect(cfg, stdout, logg)
	}
	return exitOK
}

func parseFlags(argv []string, stderr io.Writer) (*config, error) {
	cfg := new(config)
	fs := flag.NewFlagSet("huffzip", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.quiet, "q", false, "suppress informational messages")
	fs.BoolVar(&cfg.dump, "dump", false, "write a debugging dump of the code table to stderr")
	fs.BoolVar(&cfg.json, "json", false, "inspect: print JSON instead of a summary")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: huffzip [flags] compress|decompress <input> <output>")
		fmt.Fprintln(fs.Output(), "       huffzip [flags] inspect <input>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(argv); err != nil {
		return nil, err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return nil, errors.New("missing command")
	}
	cfg.command = fs.Arg(0)
	cfg.args = fs.Args()[1:]

	var want int
	switch cfg.command {
	case "compress", "decompress":
		want = 2
	case "inspect":
		want = 1
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.command)
	}
	if len(cfg.args) != want {
		return nil, fmt.Errorf("%s: expected %d arguments, got %d", cfg.command, want, len(cfg.args))
	}
	return cfg, nil
}

func inspect(cfg *config, stdout io.Writer, logg logger.Logger) int {
	path := cfg.args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		logg.Errorf("inspect failed (%s): %v", errorKind(huffzip.ErrIO), err)
		return exitFail
	}

	info, err := huffzip.Inspect(data)
	if err != nil {
		logg.Errorf("inspect failed (%s): %s: %v", errorKind(err), path, err)
		return exitFail
	}

	if cfg.json {
		raw, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			logg.Errorf("inspect failed: %v", err)
			return exitFail
		}
		fmt.Fprintf(stdout, "%s\n", raw)
		return exitOK
	}

	fmt.Fprintf(stdout, "%s: %d symbols, code sizes %d .. %d bits, %d header bytes, %d payload bytes, %d bits + %d padding\n",
		path, info.Symbols, info.MinCodeSize, info.MaxCodeSize, info.HeaderBytes, info.PayloadBytes, info.EncodedBits, info.Padding)
	return exitOK
}

func dumpTable(path string, stderr io.Writer, logg logger.Logger) int {
	data, err := os.ReadFile(path)
	if err != nil {
		logg.Errorf("dump failed: %v", err)
		return exitFail
	}
	c, err := huffzip.ParseContainer(data)
	if err != nil {
		logg.Errorf("dump failed (%s): %v", errorKind(err), err)
		return exitFail
	}
	d, err := huffzip.NewDecoder(c.Table)
	if err != nil {
		logg.Errorf("dump failed (%s): %v", errorKind(err), err)
		return exitFail
	}
	_, _ = d.Dump(stderr)
	return exitOK
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, huffzip.ErrInvalidInput):
		return "invalid input"
	case errors.Is(err, huffzip.ErrCodeTooLong):
		return "code too long"
	case errors.Is(err, huffzip.ErrCorruptContainer):
		return "corrupt container"
	case errors.Is(err, huffzip.ErrIO):
		return "i/o error"
	default:
		return "error"
	}
}
