package cli

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"golang.org/x/term"

	"github.com/greatbody/gbkit/internal/config"
)

// Light xterm-256 backgrounds that keep black text readable.
var pastelCodes = []int{151, 152, 153, 158, 159, 180, 181, 186, 187, 189, 193, 194, 195, 217, 218, 219, 223, 224, 225, 229, 230}

const (
	ansiReset   = "\033[0m"
	ansiBlackFG = "\033[30m"
)

// palette paints cells with a random background per distinct key. The
// same key keeps its color for the life of the palette.
type palette struct {
	enabled bool
	rng     *rand.Rand
	assign  map[string]int
}

func newPalette(enabled bool, rng *rand.Rand) *palette {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &palette{enabled: enabled, rng: rng, assign: make(map[string]int)}
}

func (p *palette) paint(key, text string) string {
	if !p.enabled {
		return text
	}
	code, ok := p.assign[key]
	if !ok {
		code = pastelCodes[p.rng.IntN(len(pastelCodes))]
		p.assign[key] = code
	}
	return fmt.Sprintf("\033[48;5;%dm%s %s %s", code, ansiBlackFG, text, ansiReset)
}

// colorEnabled resolves a color mode against the writer output goes to.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
