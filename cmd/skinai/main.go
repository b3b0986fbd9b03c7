// Command skinai is the terminal client: it loads a selfie, asks the questionnaire, calls the analysis
// API and shows or exports the routine.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/janisto/skinai/internal/client"
	"github.com/janisto/skinai/internal/imagenorm"
	"github.com/janisto/skinai/internal/skincare"
	"github.com/janisto/skinai/internal/wizard"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdin, os.Stdout).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "skinai:", err)
		os.Exit(1)
	}
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:    "skinai",
		Usage:   "personalized skincare routine from a selfie",
		Version: Version,
		Reader:  in,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Value:   "http://localhost:8080",
				Usage:   "analysis API base URL",
				EnvVars: []string{"SKINAI_SERVER"},
			},
			&cli.BoolFlag{
				Name:  "cbor",
				Usage: "talk CBOR instead of JSON to the API",
			},
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			{
				Name:  "wizard",
				Usage: "interactive step-by-step analysis",
				Action: func(c *cli.Context) error {
					s := &wizard.Session{
						In:       c.App.Reader,
						Out:      c.App.Writer,
						Analyzer: newClient(c),
					}
					return s.Run(c.Context)
				},
			},
		},
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "analyze a selfie in one shot",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "image", Aliases: []string{"i"}, Usage: "path to the selfie", Required: true},
			&cli.StringFlag{Name: "gender", Usage: "Male or Female", Required: true},
			&cli.StringSliceFlag{Name: "concern", Usage: "skin concern, repeatable", Required: true},
			&cli.StringFlag{Name: "routine", Usage: "current routine"},
			&cli.StringFlag{Name: "budget", Usage: "budget tier: $, $$ or $$$"},
			&cli.StringSliceFlag{Name: "pref", Usage: "product preference, repeatable"},
			&cli.BoolFlag{Name: "copy", Usage: "print the short summary"},
			&cli.StringFlag{Name: "download", Usage: "write the full routine to this file (e.g. " + wizard.TranscriptFileName + ")"},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	form := skincare.Questionnaire{
		Gender:         c.String("gender"),
		Concerns:       c.StringSlice("concern"),
		CurrentRoutine: c.String("routine"),
		Budget:         c.String("budget"),
		Preferences:    c.StringSlice("pref"),
	}
	if err := form.Validate(); err != nil {
		return err
	}

	image, err := imagenorm.NormalizeFile(c.String("image"))
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}

	result, err := newClient(c).Analyze(c.Context, image, form)
	if err != nil {
		var re *client.RequestError
		if errors.As(err, &re) {
			return fmt.Errorf("%s (HTTP %d)", re.Message, re.Status)
		}
		return err
	}

	out := c.App.Writer
	state := wizard.State{Step: wizard.StepResults, Result: result}
	if err := wizard.Render(out, state); err != nil {
		return err
	}
	if c.Bool("copy") {
		if _, err := fmt.Fprintln(out, "\n"+wizard.Summary(*result)); err != nil {
			return err
		}
	}
	if path := c.String("download"); path != "" {
		if err := os.WriteFile(path, []byte(wizard.Transcript(*result)), 0o644); err != nil {
			return fmt.Errorf("saving routine: %w", err)
		}
		if _, err := fmt.Fprintf(out, "saved %s\n", path); err != nil {
			return err
		}
	}
	return nil
}

func newClient(c *cli.Context) *client.Client {
	return client.New(&http.Client{}, client.WithBaseURL(c.String("server")), client.WithCBOR(c.Bool("cbor")))
}
