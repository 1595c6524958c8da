// bmp-complement writes the grayscale complement of a 24-bit bitmap
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/anas-shakeel/bmp-complement/internal/complement"
	"github.com/anas-shakeel/bmp-complement/internal/config"
)

const (
	exitInputNotFound = -1
	exitOutputFailed  = -2
	exitFailure       = 1
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log.SetFlags(0)
	log.SetPrefix("complement: ")

	cfg, err := config.Load(os.Args[0], args)
	if err != nil {
		log.Print(err)
		return exitFailure
	}

	input, err := os.Open(cfg.Input)
	if err != nil {
		fmt.Println("Image not found for input")
		return exitInputNotFound
	}
	defer input.Close()

	output, err := os.Create(cfg.Output)
	if err != nil {
		fmt.Println("Image could not be created for output")
		return exitOutputFailed
	}
	defer output.Close() // error paths only, see closeOutput

	stats, err := complement.Transform(output, input, complement.Options{
		LegacyExtraRow: cfg.LegacyExtraRow,
		Permissive:     cfg.Permissive,
		Validate:       cfg.Validate,
	})
	if err != nil {
		log.Printf("%s: %v", cfg.Input, err)
		return exitFailure
	}

	if cfg.Verbose {
		log.Printf("%s -> %s: %dx%d, %d rows, %d padding bytes/row, %d pixels, %d bytes written, %d short reads",
			cfg.Input, cfg.Output, stats.Width, stats.Height, stats.Rows, stats.Padding,
			stats.Pixels, stats.BytesWritten, stats.ShortReads)
	}

	if cfg.Verify {
		if _, err := output.Seek(0, io.SeekStart); err != nil {
			log.Print(err)
			return exitFailure
		}
		if err := complement.Verify(output); err != nil {
			log.Printf("%s: %v", cfg.Output, err)
			return exitFailure
		}
	}

	return closeOutput(output, cfg.Output)
}

// closeOutput reports a failed close as a failed run. The second Close from
// the deferred call is then a no-op.
func closeOutput(c io.Closer, name string) int {
	if err := c.Close(); err != nil {
		log.Printf("%s: %v", name, err)
		return exitFailure
	}
	return 0
}
