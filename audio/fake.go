package audio

import "sync"

// FakeContext hands out in-memory capture devices for tests. Chunks are
// pushed synchronously through Feed, so tests control exactly when the
// "hardware" callback fires.
type FakeContext struct {
	mu       sync.Mutex
	OpenErr  error
	captures []*FakeCapture
}

func NewFakeContext() *FakeContext {
	return &FakeContext{}
}

func (f *FakeContext) Devices() ([]DeviceInfo, error) {
	return []DeviceInfo{{ID: "fake0", Name: "fake microphone"}}, nil
}

func (f *FakeContext) NewCapture(_ *DeviceInfo, _ CaptureConfig, cb DataCallback) (CaptureDevice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	c := &FakeCapture{cb: cb}
	f.captures = append(f.captures, c)
	return c, nil
}

func (f *FakeContext) Close() {}

// Captures returns every device opened so far, in open order.
func (f *FakeContext) Captures() []*FakeCapture {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*FakeCapture(nil), f.captures...)
}

// Last returns the most recently opened device, or nil.
func (f *FakeContext) Last() *FakeCapture {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.captures) == 0 {
		return nil
	}
	return f.captures[len(f.captures)-1]
}

type FakeCapture struct {
	mu       sync.Mutex
	inflight sync.WaitGroup
	cb       DataCallback
	started  bool
	stopped  bool
	closed   bool
	StartErr error
}

func (c *FakeCapture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.StartErr != nil {
		return c.StartErr
	}
	c.started = true
	return nil
}

// Stop honors the synchronous-stop contract: any Feed already past the
// stopped check finishes its callback before Stop returns, and no Feed
// after Stop delivers anything.
func (c *FakeCapture) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
	c.inflight.Wait()
}

func (c *FakeCapture) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Feed simulates one hardware callback delivering data.
func (c *FakeCapture) Feed(data []byte) {
	c.mu.Lock()
	if !c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	c.inflight.Add(1)
	cb := c.cb
	c.mu.Unlock()

	defer c.inflight.Done()
	cb(data, uint32(len(data)/2))
}

func (c *FakeCapture) Started() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

func (c *FakeCapture) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

func (c *FakeCapture) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
