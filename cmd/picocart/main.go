package main

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/picocart"
	"github.com/urfave/cli/v2"
)

const defaultDB = "picocart.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newPicoCart(c *cli.Context) (*picocart.PicoCart, error) {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	return picocart.New(c.String("db"), logger)
}

func readImage(file string) (image.Image, error) {
	if file == "" {
		return nil, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}

func main() {
	app := cli.NewApp()

	app.Name = "picocart"
	app.Usage = "PICO-8 cartridge image utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PICOCART_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "info",
			Usage:       "Describe a cartridge",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "code",
					Usage: "print the program",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newPicoCart(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer m.Close()

				cart, err := m.Load(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				contents, err := picocart.Decode(cart)
				if contents == nil {
					return cli.Exit(err, 1)
				}

				if _, err := io.WriteString(c.App.Writer, render(c.Args().First(), contents, err)); err != nil {
					return cli.Exit(err, 1)
				}

				if c.Bool("code") && err == nil {
					if _, err := io.WriteString(c.App.Writer, contents.Code); err != nil {
						return cli.Exit(err, 1)
					}
				}

				return nil
			},
		},
		{
			Name:        "export",
			Usage:       "Export the program and assets of a cartridge",
			Description: "",
			ArgsUsage:   "FILE DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newPicoCart(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer m.Close()

				if err := m.Export(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and cache every cartridge",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newPicoCart(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer m.Close()

				if err := m.Scan(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "pack",
			Usage:       "Create a cartridge image from a program",
			Description: "",
			ArgsUsage:   "PROGRAM FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "gfx",
					Usage: "128x128 sprite sheet image",
				},
				&cli.StringFlag{
					Name:  "cover",
					Usage: "160x205 cover image",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				src, err := os.ReadFile(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}

				sheet, err := readImage(c.String("gfx"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				cover, err := readImage(c.String("cover"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				f, err := os.Create(c.Args().Get(1))
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := picocart.Pack(f, string(src), sheet, cover); err != nil {
					f.Close()
					return cli.Exit(err, 1)
				}

				if err := f.Close(); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
