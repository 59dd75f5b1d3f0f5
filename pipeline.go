package picocart

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/picocart/code"
)

const (
	// Extension is the filename suffix of a cartridge image
	Extension = ".p8.png"

	numWorkers = 10
)

func isCartridge(file string) bool {
	return strings.HasSuffix(strings.ToLower(file), Extension)
}

func (p *PicoCart) findCartridges(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !isCartridge(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (p *PicoCart) cartridgeWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			c, err := p.Load(file)
			if err != nil {
				// A PNG that isn't a cartridge shouldn't stop the scan
				p.logger.Printf("Skipping \"%s\": %s\n", file, err)
				continue
			}

			contents, err := Decode(c)
			switch {
			case errors.Is(err, code.ErrLegacyFormat):
				p.logger.Printf("\"%s\": %s\n", file, err)
			case err != nil:
				errc <- err
				return
			default:
				p.logger.Printf("\"%s\": %s program, %d characters\n", file, contents.Format, len(contents.Code))
			}

			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path loading and decoding every cartridge image found, which
// populates the cache
func (p *PicoCart) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := p.findCartridges(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < numWorkers; i++ {
		errc, err := p.cartridgeWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
