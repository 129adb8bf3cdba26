package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/dotgrid/assets/internal/config"
	"github.com/dotgrid/assets/internal/paths"
	"github.com/dotgrid/assets/internal/runlog"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	args := os.Args[1:]
	configPath := ""
	logMode := ""
	logSet := false

	// Parse flags
	filtered := args[:0]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			} else {
				fatalf("--config requires a file path")
			}
		case "--log":
			if i+1 < len(args) {
				logMode = args[i+1]
				logSet = true
				i++
			} else {
				fatalf("--log requires a mode (file or sqlite)")
			}
		default:
			filtered = append(filtered, args[i])
		}
	}

	if len(filtered) < 1 {
		printUsage()
		os.Exit(1)
	}

	switch filtered[0] {
	case "help", "-h", "--help":
		printUsage()
		return
	case "version", "-V", "--version":
		printVersion()
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fatalf("%v", err)
	}
	if logSet {
		cfg.Options.Log = logMode
	}
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}

	a := newApp(cfg)
	defer a.close()

	switch filtered[0] {
	case "icons":
		err = a.icons()
	case "screenshots":
		err = a.screenshots()
	case "all":
		if err = a.icons(); err == nil {
			fmt.Fprintln(a.out)
			err = a.screenshots()
		}
	case "history":
		days := 0
		if len(filtered) > 1 {
			days, err = strconv.Atoi(filtered[1])
			if err != nil || days < 0 {
				a.close()
				fatalf("days must be a non-negative number")
			}
		}
		err = a.history(days)
	case "clear-history":
		err = a.clearHistory()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", filtered[0])
		fmt.Fprintf(os.Stderr, "Run 'assets help' for usage.\n")
		a.close()
		os.Exit(1)
	}

	if err != nil {
		a.close()
		fatalf("%v", err)
	}
}

// fatalf prints an error to stderr and exits with status 1.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// logDir is where the run log lives (assets.log / assets.db).
func logDir() string {
	return paths.DataDir()
}

// openStore opens the run log for cfg, or returns nil when logging is off
// or the store cannot be opened. Logging is best-effort and never blocks
// a run.
func openStore(cfg config.Config) runlog.Store {
	s, err := runlog.Open(cfg.Options.Log, logDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "runlog: %v\n", err)
		return nil
	}
	return s
}

func printVersion() {
	fmt.Printf("assets %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("assets %s - Generate App Store icons and screenshots for Dot Grid\n", version)
	fmt.Println(`
Usage:
  assets [options] <command>

Options:
  --config, -c <path>    Path to assets-config.json / .yaml
  --log <mode>           Record produced files: "file" or "sqlite"

Commands:
  icons                  Draw the app icon set into the asset catalog
  screenshots            Resize screenshots to the App Store resolution
  all                    icons, then screenshots
  history [days]         List recorded outputs (0 or omitted = all)
  clear-history          Delete the run log
  version, -V            Show version and build date
  help, -h, --help       Show this help message

Config resolution:
  1. --config <path>                              (explicit)
  2. ./assets-config.{json,yaml,yml}              (project)
  3. ~/.config/dotgrid-assets/assets-config.json  (user default)
  4. built-in tables                              (no file needed)

Examples:
  assets icons                     Write icon_<name>_<size>x<size>.png files
  assets screenshots               screenshots/*.png -> screenshots_appstore/
  assets --log sqlite all          Both, recording every file
  assets history 7                 Outputs from the last 7 days`)
}
