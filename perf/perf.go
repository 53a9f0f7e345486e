package perf

import (
	"time"

	"github.com/rs/zerolog"
)

// DecodePerf records how long each stage of a single decode took.
type DecodePerf struct {
	Source string
	Start  time.Time
	End    time.Time
	Blocks []PerfBlock
}

func MakeNewDecodePerf(source string) *DecodePerf {
	return &DecodePerf{
		Start:  time.Now(),
		Source: source,
	}
}

func (dp *DecodePerf) EndDecode() {
	for dp.EndBlock() {
	}
	dp.End = time.Now()
}

func (dp *DecodePerf) Checkpoint(category, description string) {
	now := time.Now()
	checkpoint := PerfBlock{
		Start:       now,
		End:         now,
		Category:    category,
		Description: description,
	}
	dp.Blocks = append(dp.Blocks, checkpoint)
}

func (dp *DecodePerf) StartBlock(category, description string) {
	now := time.Now()
	checkpoint := PerfBlock{
		Start:       now,
		End:         time.Time{},
		Category:    category,
		Description: description,
	}
	dp.Blocks = append(dp.Blocks, checkpoint)
}

func (dp *DecodePerf) EndBlock() bool {
	for i := len(dp.Blocks) - 1; i >= 0; i -= 1 {
		if dp.Blocks[i].End.Equal(time.Time{}) {
			dp.Blocks[i].End = time.Now()
			return true
		}
	}
	return false
}

func (dp *DecodePerf) Duration() time.Duration {
	return dp.End.Sub(dp.Start)
}

func (dp *DecodePerf) MarshalZerologArray(a *zerolog.Array) {
	for i := range dp.Blocks {
		a.Object(&dp.Blocks[i])
	}
}

type PerfBlock struct {
	Start       time.Time
	End         time.Time
	Category    string
	Description string
}

func (pb *PerfBlock) Duration() time.Duration {
	return pb.End.Sub(pb.Start)
}

func (pb *PerfBlock) DurationMs() float64 {
	return float64(pb.Duration().Nanoseconds()) / 1000 / 1000
}

func (pb *PerfBlock) MarshalZerologObject(e *zerolog.Event) {
	e.
		Str("category", pb.Category).
		Str("description", pb.Description).
		Float64("ms", pb.DurationMs())
}
