// Command vane-ir is a small driver over the vane/ir construction
// toolkit. There is no textual-IR reader in scope (the printer is a
// read-only observer, never a parser back into the graph — see the
// External Interfaces section of the design), so the CLI's "build"
// surface is a fixed catalog of demo modules constructed directly
// through the Go API rather than a file format the tool ingests.
package main

import (
	"fmt"
	"os"

	"github.com/ComedicChimera/olive"

	"vane/config"
	"vane/demo"
	"vane/emit"
	"vane/ir"
	"vane/report"
)

const vaneIRVersion = "0.1.0"

func main() {
	cli := olive.NewCLI("vane-ir", "vane-ir constructs and inspects example SSA IR modules", true)

	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the diagnostic log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	cli.AddStringArg("layout", "L", "path to a data layout TOML file", false)

	buildCmd := cli.AddSubcommand("build", "construct a catalog demo module and print its IR", true)
	buildCmd.AddPrimaryArg("demo-name", "the demo module to construct (see 'vane-ir list')", true)
	buildCmd.AddFlag("emit-llvm", "L", "also lower the module to LLVM IR text and print it")
	buildCmd.AddFlag("no-verify", "nv", "skip structural verification before printing")

	cli.AddSubcommand("list", "list the available demo modules", false)
	cli.AddSubcommand("version", "print the vane-ir version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.Fatal("argument parsing failed: %s", err.Error())
		return
	}

	logLevel := logLevelFromString(result.Arguments["loglevel"].(string))
	report.Init(logLevel)

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		layoutPath, _ := result.Arguments["layout"].(string)
		runBuild(subResult, layoutPath)
	case "list":
		runList()
	case "version":
		report.DisplayInfo("vane-ir", vaneIRVersion)
	default:
		fmt.Println("usage: vane-ir <build|list|version> [options]")
	}

	if report.AnyErrors() {
		os.Exit(1)
	}
}

func runList() {
	for _, name := range demo.Names() {
		fmt.Println(name)
	}
}

func runBuild(result *olive.ArgParseResult, layoutPath string) {
	name, _ := result.PrimaryArg()

	build, ok := demo.Lookup(name)
	if !ok {
		report.Fatal("unknown demo module %q (see 'vane-ir list')", name)
		return
	}

	layout := config.DefaultDataLayout()
	if layoutPath != "" {
		loaded, err := config.LoadDataLayout(layoutPath)
		if err != nil {
			report.Fatal("loading data layout: %s", err.Error())
			return
		}
		layout = loaded
	}

	m := ir.NewModule(name, layout)
	build(m)

	noVerify, _ := result.Arguments["no-verify"].(bool)
	if !noVerify {
		if errs := ir.VerifyModule(m); len(errs) > 0 {
			for _, e := range errs {
				report.DisplayWarning("verify", e.Error())
			}
		} else {
			report.DisplayInfo("verify", "module is well-formed")
		}
	}

	for _, f := range m.Functions {
		fmt.Println(f.String())
	}

	emitLLVM, _ := result.Arguments["emit-llvm"].(bool)
	if emitLLVM {
		lm := emit.NewEmitter(m).Emit()
		fmt.Println(lm.String())
	}
}

func logLevelFromString(s string) int {
	switch s {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarn
	default:
		return report.LogLevelVerbose
	}
}
