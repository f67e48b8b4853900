// cmd/kata/main.go
//
// This is the entry point for the kata CLI.
// When you run `kata` from a project directory, this is what executes.
//
// Flow:
// 1. `kata` with no arguments launches the interactive TUI
// 2. `kata list` prints the exercise catalog
// 3. `kata check <name> <file|->` grades one submission
// 4. `kata verify` grades every exercise's reference implementation

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/louisabraham/QuantumKatas/internal/compile"
	"github.com/louisabraham/QuantumKatas/internal/config"
	"github.com/louisabraham/QuantumKatas/internal/diag"
	"github.com/louisabraham/QuantumKatas/internal/grader"
	"github.com/louisabraham/QuantumKatas/internal/katas"
	"github.com/louisabraham/QuantumKatas/internal/tui"
	"github.com/louisabraham/QuantumKatas/qsim"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		// No subcommand: run the interactive kata browser.
		if err := tui.Run(cwd); err != nil {
			fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
			os.Exit(1)
		}
		return
	}

	switch os.Args[1] {
	case "list":
		os.Exit(runList())
	case "check":
		os.Exit(runCheck(cwd, os.Args[2:]))
	case "verify":
		os.Exit(runVerify(cwd, os.Args[2:]))
	case "init":
		if err := config.InitQKataDir(cwd); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing %s: %v\n", config.QKataDir, err)
			os.Exit(1)
		}
		fmt.Printf("Initialized %s in %s\n", config.QKataDir, cwd)
	case "help", "-h", "--help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  kata                     launch the interactive runner")
	fmt.Fprintln(w, "  kata list                print the exercise catalog")
	fmt.Fprintln(w, "  kata check <name> <file> grade a submission file against an exercise")
	fmt.Fprintln(w, "  kata check <name> -      grade source read from stdin")
	fmt.Fprintln(w, "  kata check -             grade a '<name> <source>' blob read from stdin")
	fmt.Fprintln(w, "  kata verify [-p N]       grade every reference implementation")
	fmt.Fprintln(w, "  kata init                create the .qkata project directory")
}

func runList() int {
	cat, err := katas.NewCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building catalog: %v\n", err)
		return 1
	}
	for _, def := range cat.Exercises() {
		if def.Description != "" {
			fmt.Printf("%-36s %s\n", def.QualifiedName(), def.Description)
		} else {
			fmt.Println(def.QualifiedName())
		}
	}
	return 0
}

func runCheck(projectDir string, args []string) int {
	cat, err := katas.NewCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building catalog: %v\n", err)
		return 1
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	var chOpts []diag.Option
	if cfg.LogsEnabled() {
		if book, err := diag.NewLogbook(cfg.LogbookPath()); err == nil {
			chOpts = append(chOpts, diag.WithLogbook(book))
		}
	}
	ch := diag.New(os.Stdout, os.Stderr, chOpts...)

	var runnerOpts []grader.Option
	if seed := cfg.Seed(); seed != 0 {
		runnerOpts = append(runnerOpts, grader.WithSimulatorOptions(qsim.WithSeed(seed)))
	}
	runner, err := grader.NewRunner(cat, compile.New(), ch, runnerOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building runner: %v\n", err)
		return 1
	}

	var out grader.Outcome
	switch len(args) {
	case 1:
		// `kata check -`: the whole "<name> <source>" blob comes on stdin.
		if args[0] != "-" {
			fmt.Fprintln(os.Stderr, "check needs a submission file; pass '-' to read a blob from stdin")
			return 2
		}
		blob, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			return 1
		}
		out = runner.CheckBlob(string(blob))
	case 2:
		src, err := readSource(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading submission: %v\n", err)
			return 1
		}
		out = runner.Check(grader.Invocation{Kata: args[0], Source: src})
	default:
		usage(os.Stderr)
		return 2
	}

	if out.Passed() {
		fmt.Println(grader.SuccessBanner())
		return 0
	}
	if out.Status == grader.StatusInputError {
		return 2
	}
	return 1
}

func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func runVerify(projectDir string, args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	parallel := fs.Int("p", runtime.NumCPU(), "number of exercises to verify concurrently")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var opts []qsim.Option
	if cfg, err := config.NewConfig(projectDir); err == nil {
		if seed := cfg.Seed(); seed != 0 {
			opts = append(opts, qsim.WithSeed(seed))
		}
	}

	outcomes, err := katas.SelfCheck(*parallel, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running self-check: %v\n", err)
		return 1
	}

	failed := 0
	for _, out := range outcomes {
		if out.Passed() {
			fmt.Printf("ok   %s\n", out.Kata)
			continue
		}
		failed++
		fmt.Printf("FAIL %s (%s)\n", out.Kata, out.Status)
		for _, msg := range out.Messages {
			fmt.Printf("     %s\n", msg)
		}
	}
	fmt.Printf("%d/%d exercises verified\n", len(outcomes)-failed, len(outcomes))
	if failed > 0 {
		return 1
	}
	return 0
}
