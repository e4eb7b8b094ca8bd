package simulation

// Observer receives the events of a run in order: Started once, Snapshot
// once per completed step, Completed once. All calls come from the
// goroutine running Controller.Run.
type Observer interface {
	Started(info RunInfo)
	Snapshot(step int, cells []int)
	Completed(res Result)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) Started(RunInfo)     {}
func (NopObserver) Snapshot(int, []int) {}
func (NopObserver) Completed(Result)    {}

// Recorder keeps every event of a run in memory.
type Recorder struct {
	Info      RunInfo
	Snapshots [][]int
	Result    Result
	Done      bool
}

func (r *Recorder) Started(info RunInfo) {
	r.Info = info
}

func (r *Recorder) Snapshot(step int, cells []int) {
	r.Snapshots = append(r.Snapshots, cells)
}

func (r *Recorder) Completed(res Result) {
	r.Result = res
	r.Done = true
}

// Observers fans every event out to each observer in order.
type Observers []Observer

func (o Observers) Started(info RunInfo) {
	for _, obs := range o {
		obs.Started(info)
	}
}

func (o Observers) Snapshot(step int, cells []int) {
	for _, obs := range o {
		obs.Snapshot(step, cells)
	}
}

func (o Observers) Completed(res Result) {
	for _, obs := range o {
		obs.Completed(res)
	}
}
