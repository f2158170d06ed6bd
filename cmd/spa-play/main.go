// spa-play plays a sound document on the default audio device.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/cbegin/spa-go"
)

const defaultDoc = `<spa version="1.0">
  <sequence>
    <tone wave="square" freq.start="880" freq.end="220" freq.curve="exponential" dur="0.3" envelope="0.005,0.05,0.6,0.1"/>
    <noise color="pink" dur="0.4" amp="0.5" at="0.25"/>
    <tone wave="sine" freq="440" freq.mod.rate="6" freq.mod.depth="12" dur="0.6" at="0.5"/>
  </sequence>
</spa>`

func main() {
	var (
		sampleRate int
		loop       bool
		loops      int
		path       string
		inline     string
		volume     float64
		offset     float64
	)
	pflag.IntVar(&sampleRate, "rate", 48000, "output sample rate")
	pflag.BoolVar(&loop, "loop", false, "loop playback; use with --loops to count then stop")
	pflag.IntVar(&loops, "loops", 3, "when --loop, stop after N loops (0 = loop forever)")
	pflag.StringVarP(&path, "file", "f", "", "path to a sound document")
	pflag.StringVar(&inline, "xml", "", "inline document text")
	pflag.Float64VarP(&volume, "volume", "v", 1.0, "master volume scalar")
	pflag.Float64Var(&offset, "offset", 0, "skip this many seconds before playing")
	pflag.Parse()

	xmlText, err := resolveInput(path, inline, pflag.Args())
	if err != nil {
		log.Fatal(err)
	}

	pl := spa.NewPlayer(
		spa.WithSampleRate(sampleRate),
		spa.WithLoopPlayback(loop),
		spa.WithMasterVolume(volume),
	)
	ch := pl.Watch()

	doc, err := spa.Parse(xmlText)
	if err != nil {
		log.Fatal(err)
	}
	if err := pl.Play(doc); err != nil {
		log.Fatal(err)
	}
	if offset > 0 {
		// Seeking recompiles the tail of the document from the offset,
		// the same path pause/resume takes.
		if err := pl.Seek(offset); err != nil {
			log.Fatal(err)
		}
	}

	loopCount := 0
	for event := range ch {
		switch event.Kind {
		case spa.EventPlaybackEnded:
			fmt.Println("playback completed")
			goto done
		case spa.EventLoopCompleted:
			loopCount++
			fmt.Printf("loop %d completed\n", loopCount)
			if loop && loops > 0 && loopCount >= loops {
				pl.Stop()
			}
		}
	}
done:
	pl.Wait()
}

func resolveInput(path, inline string, args []string) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	if path == "" && len(args) > 0 {
		path = args[0]
	}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return defaultDoc, nil
}
