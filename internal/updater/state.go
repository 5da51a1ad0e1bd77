package updater

import "github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/model"

// State is the coordinator's lifecycle position. Exactly one lifecycle is
// active at a time; illegal payload combinations are unrepresentable because
// the payloads live next to the state under one lock.
type State int

const (
	StateIdle State = iota
	StateChecking
	StateAvailable
	StateNotAvailable
	StateDownloading
	StateDownloaded
	StateInstalling
	StateCancelled
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChecking:
		return "checking"
	case StateAvailable:
		return "available"
	case StateNotAvailable:
		return "not-available"
	case StateDownloading:
		return "downloading"
	case StateDownloaded:
		return "downloaded"
	case StateInstalling:
		return "installing"
	case StateCancelled:
		return "cancelled"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Status is the coordinator's visible projection: the current state plus the
// most recent payloads.
type Status struct {
	State          State
	Info           *model.UpdateInfo
	Progress       *model.UpdateProgress
	Err            string
	DownloadedPath string
}
