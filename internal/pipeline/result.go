package pipeline

// Stage names a step of pipeline execution at which a failure occurred.
// It lets operators tell "the executable could not be started" apart from
// "the executable ran but reported a bad run".
const (
	StageBuild = "build"
	StageExec  = "exec"
	StageParse = "parse"
	StageRun   = "run"
)

// Stats holds the record counts of a successful run, one per medallion layer.
type Stats struct {
	Bronze int
	Silver int
	Gold   map[string]int // category → record count
}

// GoldTotal sums the gold counts across all categories.
func (s Stats) GoldTotal() int {
	total := 0
	for _, n := range s.Gold {
		total += n
	}
	return total
}

// Failure describes a failed run: the stage it died at and a message for the
// report.
type Failure struct {
	Stage   string
	Message string
}

// Result is the outcome of one pipeline run. Exactly one of Stats or Failure
// is set; use Succeed and Fail to construct it, OK to branch on it. Errors
// are carried inside rather than returned, so the caller always has something
// to display.
type Result struct {
	Stats   *Stats
	Failure *Failure
}

// Succeed builds a success result. A nil gold map is kept nil; GoldTotal
// treats it as zero.
func Succeed(bronze, silver int, gold map[string]int) Result {
	return Result{Stats: &Stats{Bronze: bronze, Silver: silver, Gold: gold}}
}

// Fail builds a failure result for the given stage.
func Fail(stage, message string) Result {
	return Result{Failure: &Failure{Stage: stage, Message: message}}
}

// OK reports whether the run succeeded.
func (r Result) OK() bool {
	return r.Stats != nil
}
