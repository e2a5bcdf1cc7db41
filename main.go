package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ylamidon/whisper-voice/audio"
	"github.com/ylamidon/whisper-voice/clipboard"
	"github.com/ylamidon/whisper-voice/encoder"
	"github.com/ylamidon/whisper-voice/hotkey"
	"github.com/ylamidon/whisper-voice/log"
	"github.com/ylamidon/whisper-voice/recorder"
	"github.com/ylamidon/whisper-voice/transcriber"
)

var version = "dev"

func main() {
	hotkeyFlag := flag.String("hotkey", "ctrl+alt+space", "Global accelerator that toggles recording")
	langFlag := flag.String("lang", "fr", "Language code for transcription (e.g., fr, en). Empty = auto-detect")
	rateFlag := flag.Int("rate", 16000, "Capture sample rate in Hz")
	modelFlag := flag.String("model", "", "Transcription model (default: provider default)")
	formatFlag := flag.String("format", "wav", "Audio exchange format: wav or flac")
	deviceFlag := flag.String("device", "", "Use named microphone device")
	setupFlag := flag.Bool("setup", false, "Select microphone device interactively (otherwise system default)")
	autoPasteFlag := flag.Bool("autopaste", true, "Paste into the focused window after transcription")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("whisper-voice %s\n", version)
		os.Exit(0)
	}

	// .env is optional; real environment variables win either way.
	godotenv.Load()

	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()

	switch *formatFlag {
	case "wav", "flac":
	default:
		fmt.Printf("Error: unknown format %q (use wav or flac)\n", *formatFlag)
		os.Exit(1)
	}

	combo, err := hotkey.ParseCombo(*hotkeyFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	tr, err := transcriber.New(*modelFlag, *langFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	ctx, err := audio.NewContext()
	if err != nil {
		log.Errorf("audio context init error: %v", err)
		fmt.Printf("Error initializing audio context: %v\n", err)
		os.Exit(1)
	}
	defer ctx.Close()

	var selectedDevice *audio.DeviceInfo
	if *deviceFlag != "" {
		selectedDevice, err = audio.FindDevice(ctx, *deviceFlag)
		if err != nil {
			log.Warnf("device lookup failed: %v", err)
			fmt.Printf("Warning: %v, falling back to default device\n", err)
		}
	} else if *setupFlag {
		selectedDevice, err = audio.SelectDevice(ctx)
		if err != nil {
			log.Warnf("device selection failed: %v", err)
			fmt.Printf("Warning: device selection failed: %v\n", err)
			fmt.Println("Falling back to default device")
		}
	}
	if selectedDevice != nil && audio.IsBluetooth(selectedDevice.Name) {
		fmt.Println("Warning: Bluetooth microphones often capture at phone-call quality; transcription may suffer.")
	}

	if *autoPasteFlag {
		if err := clipboard.Init(); err != nil {
			log.Warnf("paste init failed: %v", err)
			fmt.Printf("Warning: paste init failed: %v\n", err)
		}
	}

	captureConfig := audio.CaptureConfig{
		SampleRate: uint32(*rateFlag),
		Channels:   encoder.Channels,
	}
	pipeline := transcriber.NewPipeline(tr, *formatFlag, *rateFlag)

	deliver := clipboard.Deliver
	if !*autoPasteFlag {
		deliver = clipboard.Copy
	}

	controller := recorder.NewController(recorder.NewSession(), recorder.Config{
		Open: func(cb audio.DataCallback) (audio.CaptureDevice, error) {
			return ctx.NewCapture(selectedDevice, captureConfig, cb)
		},
		Transcribe: pipeline.Transcribe,
		Deliver:    deliver,
		Report: func(format string, args ...any) {
			fmt.Printf(format+"\n", args...)
		},
	})

	hk, err := hotkey.New(combo)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := hk.Register(); err != nil {
		log.Errorf("hotkey register error: %v", err)
		fmt.Printf("Error registering hotkey: %v\n", err)
		os.Exit(1)
	}
	defer hk.Unregister()

	log.SessionStart(tr.Name(), *formatFlag, *langFlag)
	fmt.Println("✅ whisper-voice ready")
	fmt.Printf("   Hotkey   : %s\n", combo)
	fmt.Printf("   Language : %s\n", *langFlag)
	fmt.Printf("   Provider : %s\n", tr.Name())
	fmt.Println("   Press Ctrl+C to quit")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-hk.Presses():
			if _, err := controller.Toggle(); err != nil {
				log.Errorf("recording error: %v", err)
				fmt.Printf("❌ Could not start recording: %v\n", err)
			}
		case <-sigChan:
			fmt.Println("\nBye.")
			return
		}
	}
}
