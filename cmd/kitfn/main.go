// Package main provides the kitfn CLI for local function development.
//
// The CLI reads an invocation context as JSON from stdin, runs it through
// the SDK, and writes the result to stdout. Designed for harness-based
// testing of functions outside the platform runtime.
//
// Usage:
//
//	# Classify a context and print its event kind
//	echo '{"request": {...}}' | kitfn classify
//
//	# Build the reply body for a context (empty output for webhook kind)
//	echo '{"request": {...}}' | kitfn respond
//
//	# Print version
//	kitfn version
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	kit "github.com/voximplant/kit-functions-sdk-sub000"
	"github.com/voximplant/kit-functions-sdk-sub000/config"
	"github.com/voximplant/kit-functions-sdk-sub000/core/envelope"
	"github.com/voximplant/kit-functions-sdk-sub000/logging"
)

const (
	cmdClassify = "classify"
	cmdRespond  = "respond"
	cmdVersion  = "version"
)

// Version information
const Version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case cmdVersion:
		fmt.Println(Version)
	case cmdClassify:
		handleClassify()
	case cmdRespond:
		handleRespond()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: kitfn <command>

Commands:
  classify  Read context JSON from stdin, print the classified event kind
  respond   Read context JSON from stdin, print the assembled reply body
  version   Print version`)
}

// readContext decodes the invocation context from stdin.
func readContext() (*envelope.Context, error) {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	ctx := &envelope.Context{}
	if err := json.Unmarshal(raw, ctx); err != nil {
		return nil, fmt.Errorf("failed to decode context: %w", err)
	}
	return ctx, nil
}

// newKit builds a Kit with a development logger and the local environment
// (OS env over an optional .env file next to the working directory).
func newKit(ctx *envelope.Context) (*kit.Kit, error) {
	zl, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}

	env := config.Chain{config.OSEnv{}}
	if dotenv, err := config.LoadDotEnv(".env"); err == nil {
		env = append(env, dotenv)
	}

	return kit.NewKit(ctx,
		kit.WithLogger(logging.NewZap(zl)),
		kit.WithConfig(env),
	)
}

func handleClassify() {
	ctx, err := readContext()
	if err != nil {
		fatal(err)
	}
	k, err := newKit(ctx)
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(k.EventKind()))
}

func handleRespond() {
	ctx, err := readContext()
	if err != nil {
		fatal(err)
	}
	k, err := newKit(ctx)
	if err != nil {
		fatal(err)
	}
	body := k.GetResponseBody()
	if body == nil {
		// Webhook kind: no reply body is the valid reply.
		return
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(encoded))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
