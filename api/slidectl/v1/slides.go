package slidectlv1

type PingRequest struct{}

type PingResponse struct {
	Ok       string `json:"ok"`
	Instance string `json:"instance"`
	Pid      int32  `json:"pid"`
}

func (x *PingResponse) GetOk() string {
	if x == nil {
		return ""
	}
	return x.Ok
}

func (x *PingResponse) GetInstance() string {
	if x == nil {
		return ""
	}
	return x.Instance
}

func (x *PingResponse) GetPid() int32 {
	if x == nil {
		return 0
	}
	return x.Pid
}

type LaunchRequest struct {
	Path string `json:"path"`
}

func (x *LaunchRequest) GetPath() string {
	if x == nil {
		return ""
	}
	return x.Path
}

type LaunchResponse struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Job     uint64 `json:"job"`
	Pid     int32  `json:"pid"`
	Command string `json:"command"`
}

// StopRequest targets one process when Index > 0 (1-based), otherwise every
// process of Path.
type StopRequest struct {
	Path  string `json:"path"`
	Index int32  `json:"index,omitempty"`
}

func (x *StopRequest) GetPath() string {
	if x == nil {
		return ""
	}
	return x.Path
}

func (x *StopRequest) GetIndex() int32 {
	if x == nil {
		return 0
	}
	return x.Index
}

type StopResponse struct {
	Stopped int32 `json:"stopped"`
}

func (x *StopResponse) GetStopped() int32 {
	if x == nil {
		return 0
	}
	return x.Stopped
}

type StopEverythingRequest struct{}

type StopEverythingResponse struct {
	Stopped int32 `json:"stopped"`
}

func (x *StopEverythingResponse) GetStopped() int32 {
	if x == nil {
		return 0
	}
	return x.Stopped
}

type ListRequest struct{}

type Proc struct {
	Index          int32  `json:"index"`
	Job            uint64 `json:"job"`
	Pid            int32  `json:"pid"`
	Alive          bool   `json:"alive"`
	Command        string `json:"command"`
	LaunchedAtUnix int64  `json:"launched_at_unix"`
}

type Entry struct {
	Key   string  `json:"key"`
	Title string  `json:"title"`
	Procs []*Proc `json:"procs"`
}

type ListResponse struct {
	Entries []*Entry `json:"entries"`
}

func (x *ListResponse) GetEntries() []*Entry {
	if x == nil {
		return nil
	}
	return x.Entries
}

type CloseRequest struct {
	Path string `json:"path"`
}

func (x *CloseRequest) GetPath() string {
	if x == nil {
		return ""
	}
	return x.Path
}

type CloseResponse struct {
	Tracked bool  `json:"tracked"`
	Stopped int32 `json:"stopped"`
}

type OpenRequest struct {
	Path string `json:"path"`
}

func (x *OpenRequest) GetPath() string {
	if x == nil {
		return ""
	}
	return x.Path
}

// OpenResponse carries Launch only when the file was launched.
type OpenResponse struct {
	Presentation bool            `json:"presentation"`
	Launched     bool            `json:"launched"`
	Launch       *LaunchResponse `json:"launch,omitempty"`
}
