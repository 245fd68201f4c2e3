package pipeline

import (
	"fmt"
	"io"
	"time"
)

type moduleProgress struct {
	out   io.Writer
	start time.Time
}

func startModule(out io.Writer, file string) *moduleProgress {
	fmt.Fprintf(out, "Decompiling %s... ", file)
	return &moduleProgress{out: out, start: time.Now()}
}

func (p *moduleProgress) Done() time.Duration {
	elapsed := time.Since(p.start)
	fmt.Fprintf(p.out, "done in %dms!\n", elapsed.Milliseconds())
	return elapsed
}

func (p *moduleProgress) Fail() {
	fmt.Fprintln(p.out, "error!")
}
