// spa-render compiles a sound document to a WAV file. Pass the document
// path as an argument or pick it from a file dialog.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/pflag"
	"github.com/sqweek/dialog"

	"github.com/cbegin/spa-go"
	"github.com/davecgh/go-spew/spew"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "", log.Ldate|log.Ltime)

	cwd, err := os.Getwd()
	if err != nil {
		logger.Fatalf("failed to get current working directory: %v", err)
	}

	var (
		outPath    string
		sampleRate int
		offset     float64
		seed       uint32
		window     float64
		dump       bool
		asFloat    bool
		checkOnly  bool
	)
	pflag.StringVarP(&outPath, "out", "o", "", "output WAV path (default: input with .wav extension)")
	pflag.IntVarP(&sampleRate, "rate", "r", 48000, "output sample rate in Hz")
	pflag.Float64Var(&offset, "offset", 0, "start rendering this many seconds into the document")
	pflag.Uint32Var(&seed, "seed", 1, "noise seed base")
	pflag.Float64Var(&window, "window", 60, "seconds of infinite repeats to materialize")
	pflag.BoolVarP(&dump, "dump", "d", false, "dump the compiled schedule to stdout")
	pflag.BoolVar(&asFloat, "float", false, "write 32-bit float WAV instead of 16-bit PCM")
	pflag.BoolVarP(&checkOnly, "check", "c", false, "validate only, do not render")
	pflag.Parse()

	path, err := choosePath(cwd, pflag.Args())
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			logger.Printf("User cancelled the file dialog")
			os.Exit(1)
		}
		logger.Fatalf("failed to determine file path: %v", err)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		logger.Fatalf("error reading file: %v", err)
	}

	if checkOnly {
		res := spa.Validate(string(src))
		for _, w := range res.Warnings {
			logger.Printf("warning: %s", w)
		}
		for _, e := range res.Errors {
			logger.Printf("error: %s", e)
		}
		if !res.Valid {
			os.Exit(1)
		}
		logger.Printf("%s is valid", filepath.Base(path))
		return
	}

	doc, err := spa.Parse(string(src))
	if err != nil {
		logger.Fatalf("parse error: %v", err)
	}

	events, err := spa.CompileWithOptions(doc, spa.CompileOptions{
		Offset:          offset,
		MaxRepeatWindow: window,
		NoiseSeed:       seed,
	})
	if err != nil {
		logger.Fatalf("compile error: %v", err)
	}
	logger.Printf("Compiled %d events, %.2fs total", len(events), spa.Duration(doc))

	if dump {
		spew.Dump(events)
	}

	samples := spa.RenderSchedule(events, sampleRate)

	if outPath == "" {
		ext := filepath.Ext(path)
		outPath = strings.TrimSuffix(path, ext) + ".wav"
	}
	if asFloat {
		err = os.WriteFile(outPath, spa.EncodeWAVFloat32LE(samples, sampleRate), 0o644)
	} else {
		err = writePCM16(outPath, samples, sampleRate)
	}
	if err != nil {
		logger.Fatalf("Error writing output file: %v", err)
	}
	logger.Printf("Wrote %s", outPath)
}

// writePCM16 writes interleaved stereo float32 samples as a 16-bit PCM WAV.
func writePCM16(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := wav.NewEncoder(f, sampleRate, 16, 2, 1)
	defer enc.Close()
	intBuf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 2,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		intBuf.Data[i] = int(s * 32767)
	}
	return enc.Write(intBuf)
}

// choosePath returns the document path either from the command-line args
// or from an interactive file dialog.
func choosePath(cwd string, args []string) (string, error) {
	if len(args) > 0 {
		absPath, err := filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("cannot get absolute path: %w", err)
		}
		if err := validatePath(absPath); err != nil {
			return "", fmt.Errorf("passed argument is not a valid path: %w", err)
		}
		return absPath, nil
	}

	path, err := dialog.
		File().
		Title("Open sound document").
		Filter("Sound documents (*.xml)", "xml").
		SetStartDir(cwd).
		Load()
	if err != nil {
		// Caller checks for dialog.ErrCancelled.
		return "", err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot get absolute path: %w", err)
	}
	if absPath == "" {
		return "", dialog.ErrCancelled
	}
	if err := validatePath(absPath); err != nil {
		return "", fmt.Errorf("dialog selection invalid: %w", err)
	}
	return absPath, nil
}

func validatePath(p string) error {
	if strings.ToLower(filepath.Ext(p)) != ".xml" {
		return fmt.Errorf("file must have .xml extension")
	}
	if _, err := os.Stat(p); err != nil {
		return fmt.Errorf("cannot stat file: %w", err)
	}
	return nil
}
