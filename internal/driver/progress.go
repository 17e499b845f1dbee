package driver

// Stage is a step of inspecting one trace.
type Stage string

const (
	StageDecode      Stage = "decode"
	StageReconstruct Stage = "reconstruct"
	StageRender      Stage = "render"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one trace.
type Event struct {
	Trace  string
	Stage  Stage
	Status Status
	Err    error
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use since InspectAll reports from several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func (o Options) emit(trace string, stage Stage, status Status, err error) {
	if o.Progress == nil {
		return
	}
	o.Progress.OnEvent(Event{Trace: trace, Stage: stage, Status: status, Err: err})
}
