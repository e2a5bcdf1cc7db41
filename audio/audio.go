package audio

import "strings"

// DataCallback receives one hardware PCM block. It runs on the capture
// thread: it must return promptly and must not retain data, which the
// driver reuses after the call.
type DataCallback func(data []byte, frameCount uint32)

type CaptureConfig struct {
	SampleRate uint32
	Channels   uint32
}

type DeviceInfo struct {
	ID   string // opaque platform-specific identifier
	Name string
}

type Context interface {
	Devices() ([]DeviceInfo, error)
	// NewCapture opens a capture stream with cb installed. The stream is
	// not running until Start.
	NewCapture(device *DeviceInfo, config CaptureConfig, cb DataCallback) (CaptureDevice, error)
	Close()
}

// CaptureDevice is one open microphone stream. Stop blocks until any
// callback invocation already in progress has returned; no callback fires
// after Stop returns.
type CaptureDevice interface {
	Start() error
	Stop()
	Close()
}

var btKeywords = []string{
	"airpods", "beats", "bose", "jabra", "galaxy buds", "pixel buds",
	"sony wh-", "sony wf-", "sennheiser momentum",
	"bluetooth", " bt ", " bt)", " bt]",
}

// IsBluetooth flags devices whose telephony profile degrades capture
// quality enough to hurt transcription accuracy.
func IsBluetooth(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range btKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
