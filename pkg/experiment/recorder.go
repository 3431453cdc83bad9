package experiment

import (
	"fmt"
	"io"
	"os"

	"github.com/boristopalov/recsim/pkg/telemetry"
)

const csvHeader = "Episode,Step,LearnerID,CourseID,Reward,Completed,Repeat,Satisfaction,Done\n"

// CSVRecorder writes one line per step event: the trajectory tuple a trainer
// would consume, in file form.
type CSVRecorder struct {
	w      io.Writer
	closer io.Closer
}

// NewCSVRecorder starts a trajectory stream on w, writing the header
// immediately.
func NewCSVRecorder(w io.Writer) *CSVRecorder {
	fmt.Fprint(w, csvHeader)
	return &CSVRecorder{w: w}
}

// NewCSVFileRecorder creates (or truncates) a trajectory file at path.
func NewCSVFileRecorder(path string) (*CSVRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trajectory file: %w", err)
	}
	r := NewCSVRecorder(f)
	r.closer = f
	return r, nil
}

// Record implements telemetry.Recorder.
func (r *CSVRecorder) Record(ev telemetry.StepEvent) {
	fmt.Fprintf(r.w, "%d,%d,%d,%d,%.2f,%t,%t,%.4f,%t\n",
		ev.Episode, ev.Step, ev.LearnerID, ev.CourseID,
		ev.Reward, ev.Completed, ev.Repeat, ev.Satisfaction, ev.Done)
}

// Close closes the underlying file, if the recorder owns one.
func (r *CSVRecorder) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
