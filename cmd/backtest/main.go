// Command backtest replays a NASDAQ ITCH 5.0 file through one of the
// four order-book implementations and reports how long the run took.
package main

import (
	"fmt"
	"os"
	"unsafe"

	"itchbook/backtest"
	"itchbook/book"
	"itchbook/domain"
	"itchbook/feed"
	"itchbook/itch"
)

func printUsage(prog string) {
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", prog)
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  --file <path>, -f <path>    Input ITCH file")
	fmt.Fprintln(os.Stderr, "  --isa <implementation>      Order book implementation")
	fmt.Fprintln(os.Stderr, "                              (scalar, soa, soa_price, avx2)")
	fmt.Fprintln(os.Stderr, "                              Default: scalar")
	fmt.Fprintln(os.Stderr, "  --trace                     Enable trace mode")
	fmt.Fprintln(os.Stderr, "  --help, -h                  Show this help message")
}

// parseArgs mirrors main.cpp's own hand-rolled argv loop rather than
// stdlib flag.Parse: it needs a --file/-f alias, a bare positional
// filename for backwards compatibility, and --isa/--trace/--help in any
// order, none of which flag.FlagSet expresses cleanly on its own.
func parseArgs(args []string) (filename, isa string, trace bool, err error) {
	isa = "scalar"
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--trace":
			trace = true
		case "--file", "-f":
			if i+1 >= len(args) {
				return "", "", false, fmt.Errorf("--file requires an argument")
			}
			i++
			filename = args[i]
		case "--isa":
			if i+1 >= len(args) {
				return "", "", false, fmt.Errorf("--isa requires an argument")
			}
			i++
			isa = args[i]
		case "--help", "-h":
			return "", "", false, errHelp
		default:
			if len(arg) > 0 && arg[0] == '-' {
				return "", "", false, fmt.Errorf("unknown option: %s", arg)
			}
			filename = arg
		}
	}
	if filename == "" {
		return "", "", false, fmt.Errorf("no input file specified")
	}
	return filename, isa, trace, nil
}

var errHelp = fmt.Errorf("help requested")

func run(args []string) int {
	filename, isaFlag, trace, err := parseArgs(args)
	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		printUsage(os.Args[0])
		if err == errHelp {
			return 0
		}
		return 1
	}

	kind, ok := book.ParseKind(isaFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: Unknown ISA '%s'\n", isaFlag)
		fmt.Fprintln(os.Stderr, "Valid options: scalar, soa, soa_price, avx2")
		return 1
	}

	src, err := feed.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open file %s\n", filename)
		return 1
	}
	defer src.Close()

	const orderCapacityHint = 1 << 20
	engine, err := book.NewEngine(kind, domain.MaxBooks, orderCapacityHint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	if trace {
		fmt.Printf("%d\n", bookFootprint(kind)*domain.MaxBooks)
		engine = book.NewTracingEngine(engine, os.Stdout)
	}

	dir := itch.NewDirectory(domain.MaxBooks)
	activity := book.NewActivityReport(domain.MaxBooks)

	stats, err := backtest.Run(src, engine, dir, activity, backtest.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	fmt.Printf("%d packets in %d nanos , %.2f nanos per packet \n",
		stats.Packets, stats.Elapsed.Nanoseconds(), stats.NanosPerPkt)

	for _, entry := range activity.Top(10, dir.Lookup) {
		label := entry.Locate
		if label == "" {
			label = fmt.Sprintf("locate-%d", entry.BookID)
		}
		fmt.Printf("%-8s %d\n", label, entry.Count)
	}

	return 0
}

// bookFootprint returns the in-memory size of one book slot for kind,
// the equivalent of the source's sizeof(T) diagnostic print.
func bookFootprint(kind book.Kind) int {
	switch kind {
	case book.Scalar:
		return int(unsafe.Sizeof(book.ScalarBook{}))
	case book.SoA:
		return int(unsafe.Sizeof(book.SoABook{}))
	case book.SoAPrice:
		return int(unsafe.Sizeof(book.SoAPriceBook{}))
	case book.AVX2:
		return int(unsafe.Sizeof(book.AVX2Book{}))
	default:
		return 0
	}
}

func main() {
	os.Exit(run(os.Args[1:]))
}
