package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Geek0x0/pngembed"
	log "github.com/sirupsen/logrus"
)

func main() {
	objects := flag.Bool("objects", false, "Print the generated PDF objects")
	debug := flag.Bool("debug", false, "Log skipped chunks and embedding decisions")
	workers := flag.Int("workers", 0, "Number of concurrent workers (0 = NumCPU, at most 4)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: pnginfo [options] file.png...")
		flag.PrintDefaults()
		os.Exit(2)
	}
	pngembed.DebugOn = *debug
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	inputs := make([][]byte, flag.NArg())
	for i, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read %s: %v", path, err)
		}
		log.Debugf("read %s (%d bytes)", path, len(data))
		inputs[i] = data
	}

	doc := pngembed.NewMemoryDocument()
	results := pngembed.EmbedBatch(doc, inputs, pngembed.BatchOptions{Workers: *workers})
	failed := 0
	for i, res := range results {
		if res.Error != nil {
			failed++
		}
		describe(os.Stdout, flag.Arg(i), res)
	}
	if *objects {
		fmt.Print(doc.String())
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// describe prints one line per input: either the error or the descriptor
// summary with the references Embed produced.
func describe(w io.Writer, name string, res pngembed.BatchResult) {
	if res.Error != nil {
		fmt.Fprintf(w, "%s: %v\n", name, res.Error)
		return
	}
	img, emb := res.Image, res.Embedded
	fmt.Fprintf(w, "%s: %dx%d %v depth=%d channels=%d bpp=%d alpha=%v pdf=%v image=%v",
		name, img.Width, img.Height, img.ColorType, img.BitDepth,
		img.Channels(), img.BitsPerPixel(), img.HasAlpha(), emb.Version, emb.Image)
	if emb.SMask != nil {
		fmt.Fprintf(w, " smask=%v", *emb.SMask)
	}
	if emb.Palette != nil {
		fmt.Fprintf(w, " palette=%v", *emb.Palette)
	}
	if t := img.Transparency; t != nil {
		fmt.Fprintf(w, " trns=%s", transparencyName(t.Kind))
	}
	fmt.Fprintln(w)
}

func transparencyName(k pngembed.TransparencyKind) string {
	switch k {
	case pngembed.IndexedAlphas:
		return "indexed"
	case pngembed.GrayKey:
		return "gray-key"
	case pngembed.RGBKey:
		return "rgb-key"
	}
	return "none"
}
